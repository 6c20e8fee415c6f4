package prompt

import (
	"encoding/json"

	"github.com/snapcore/prompting-client/prompt/home"
)

// Action is the user's allow/deny decision.
type Action string

const (
	ActionAllow Action = "allow"
	ActionDeny  Action = "deny"
)

// Lifespan is how long the decision should be remembered for.
type Lifespan string

const (
	LifespanSingle  Lifespan = "single"
	LifespanSession Lifespan = "session"
	LifespanForever Lifespan = "forever"
)

// TypedPromptReply is the decision sent back to the policy service for a
// given prompt. Duration is always absent in this core (it only applies
// to a lifespan this core never produces).
type TypedPromptReply struct {
	Action   Action
	Lifespan Lifespan
	Duration *string
	Variant  Variant
	Home     home.ReplyConstraints // valid iff Variant == VariantHome
}

// wireReply is the on-the-wire shape POSTed to
// /v2/interfaces/requests/prompts/{id}.
type wireReply struct {
	Action      Action                `json:"action"`
	Lifespan    Lifespan              `json:"lifespan"`
	Duration    *string               `json:"duration,omitempty"`
	Constraints home.ReplyConstraints `json:"constraints"`
}

// MarshalJSON encodes the reply for the policy service. Only the home
// variant exists in this core, so there is nothing to branch on yet.
func (r TypedPromptReply) MarshalJSON() ([]byte, error) {
	return json.Marshal(wireReply{
		Action:      r.Action,
		Lifespan:    r.Lifespan,
		Duration:    r.Duration,
		Constraints: r.Home,
	})
}
