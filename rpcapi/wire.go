package rpcapi

import "github.com/snapcore/prompting-client/prompt"

// envelope is the outer shape every northbound response uses, matching
// the southbound policy service's own {type, status-code, status,
// result} wrapper so the whole daemon speaks one JSON dialect.
type envelope struct {
	Type       string      `json:"type"`
	StatusCode int         `json:"status-code"`
	Status     string      `json:"status"`
	Result     interface{} `json:"result"`
}

type errResult struct {
	Message string `json:"message"`
}

func ok(statusCode int, status string, result interface{}) envelope {
	return envelope{Type: "sync", StatusCode: statusCode, Status: status, Result: result}
}

func errEnvelope(statusCode int, status, message string) envelope {
	return envelope{Type: "error", StatusCode: statusCode, Status: status, Result: errResult{Message: message}}
}

// metaWire is the meta_data block of a HomePrompt.
type metaWire struct {
	PromptID  prompt.ID `json:"prompt_id"`
	SnapName  string    `json:"snap_name"`
	StoreURL  string    `json:"store_url"`
	Publisher string    `json:"publisher"`
	UpdatedAt string    `json:"updated_at"`
}

// patternOptionWire is one entry of pattern_options.
type patternOptionWire struct {
	HomePatternType int    `json:"home_pattern_type"`
	PathPattern     string `json:"path_pattern"`
	ShowInitially   bool   `json:"show_initially"`
}

// homePromptWire is the HomePrompt payload returned by GetCurrentPrompt.
type homePromptWire struct {
	MetaData             metaWire            `json:"meta_data"`
	RequestedPath        string              `json:"requested_path"`
	HomeDir              string              `json:"home_dir"`
	RequestedPermissions []string            `json:"requested_permissions"`
	SuggestedPermissions []string            `json:"suggested_permissions"`
	AvailablePermissions []string            `json:"available_permissions"`
	InitialPatternOption int                 `json:"initial_pattern_option"`
	PatternOptions       []patternOptionWire `json:"pattern_options"`
}

// currentPromptResult is the result object of GetCurrentPrompt: the
// prompt is omitted (nil) rather than null-valued when there is none,
// so the envelope's "does result contain message" discrimination never
// gets confused by an absent prompt.
type currentPromptResult struct {
	Prompt *homePromptWire `json:"prompt,omitempty"`
}

func toWire(u *prompt.UiInput) *homePromptWire {
	if u == nil {
		return nil
	}
	opts := make([]patternOptionWire, 0, len(u.Home.PatternOptions))
	for _, o := range u.Home.PatternOptions {
		opts = append(opts, patternOptionWire{
			HomePatternType: int(o.PatternType),
			PathPattern:     o.PathPattern,
			ShowInitially:   o.ShowInitially,
		})
	}
	return &homePromptWire{
		MetaData: metaWire{
			PromptID:  u.ID,
			SnapName:  u.Meta.Name,
			StoreURL:  u.Meta.StoreURL,
			Publisher: u.Meta.Publisher,
			UpdatedAt: u.Meta.UpdatedAt,
		},
		RequestedPath:        u.Home.RequestedPath,
		HomeDir:              u.Home.HomeDir,
		RequestedPermissions: u.Home.RequestedPermissions,
		SuggestedPermissions: u.Home.SuggestedPermissions,
		AvailablePermissions: u.Home.AvailablePermissions,
		InitialPatternOption: u.Home.InitialPatternOption,
		PatternOptions:       opts,
	}
}

// replyRequestWire is the ReplyToPrompt request body.
type replyRequestWire struct {
	PromptID    prompt.ID      `json:"prompt_id"`
	Action      string         `json:"action"`
	Lifespan    string         `json:"lifespan"`
	PromptReply *homeReplyWire `json:"prompt_reply"`
}

type homeReplyWire struct {
	PathPattern string   `json:"path_pattern"`
	Permissions []string `json:"permissions"`
}

// replyResponseType is the tri-valued PromptReplyType ReplyToPrompt
// reports back to the UI.
type replyResponseType int

const (
	ReplyUnknown replyResponseType = iota
	ReplySuccess
	ReplyPromptNotFound
)

type replyResponseWire struct {
	PromptReplyType replyResponseType `json:"prompt_reply_type"`
	Message         string            `json:"message"`
}

type loggingFilterRequestWire struct {
	Filter string `json:"filter"`
}

type loggingFilterResponseWire struct {
	Current string `json:"current"`
}
