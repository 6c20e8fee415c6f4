package prompt

import (
	"github.com/snapcore/prompting-client/perrors"
	"github.com/snapcore/prompting-client/prompt/home"
)

// UiInput is the projection of a TypedPrompt that the RPC service hands
// to the UI: the raw request enriched with snap metadata and the
// synthesized pattern choices.
type UiInput struct {
	ID      ID
	Meta    SnapMeta
	Variant Variant
	Home    home.UiInputData // valid iff Variant == VariantHome
}

// Project builds a UiInput from a TypedPrompt and the home directory the
// request was resolved against. meta may be the zero value: absent snap
// metadata is tolerated everywhere downstream and simply renders as
// empty strings.
func Project(p TypedPrompt, meta SnapMeta, homeDir string) (UiInput, error) {
	switch p.Variant {
	case VariantHome:
		options, initial := home.Patterns(p.Home.Path, homeDir)
		return UiInput{
			ID:      p.ID,
			Meta:    meta,
			Variant: VariantHome,
			Home: home.UiInputData{
				RequestedPath:        p.Home.Path,
				HomeDir:              homeDir,
				RequestedPermissions: p.Home.RequestedPermissions,
				AvailablePermissions: p.Home.AvailablePermissions,
				SuggestedPermissions: suggestedPermissions(p.Home),
				InitialPatternOption: initial,
				PatternOptions:       options,
			},
		}, nil
	default:
		return UiInput{}, &perrors.DecodeError{
			Op:  "project prompt",
			Err: &perrors.UnsupportedInterface{Interface: "unknown"},
		}
	}
}

// suggestedPermissions falls back to the requested set when the policy
// service did not send an explicit suggestion, so the UI always has
// something sensible to pre-select.
func suggestedPermissions(c home.Constraints) []string {
	if len(c.SuggestedPermissions) > 0 {
		return c.SuggestedPermissions
	}
	return c.RequestedPermissions
}
