package prompt

import (
	"encoding/json"

	"github.com/snapcore/prompting-client/perrors"
	"github.com/snapcore/prompting-client/prompt/home"
)

// Variant discriminates the interfaces a TypedPrompt can carry. Only
// VariantHome is defined in this core; every other interface name is
// rejected at decode time.
type Variant int

const (
	VariantHome Variant = iota
)

// RawPrompt is the as-received shape of GET .../prompts and
// GET .../prompts/{id}: everything but constraints is interface-
// agnostic, and constraints is only decodable once the interface name
// is known.
type RawPrompt struct {
	ID          ID              `json:"id"`
	Timestamp   string          `json:"timestamp"`
	Snap        string          `json:"snap"`
	Interface   string          `json:"interface"`
	Constraints json.RawMessage `json:"constraints"`
}

// TypedPrompt is the decoded, interface-specific view of a RawPrompt.
type TypedPrompt struct {
	ID        ID
	Timestamp string
	Snap      string
	Variant   Variant
	Home      home.Constraints // valid iff Variant == VariantHome
}

// Decode validates the interface name and parses the interface-specific
// constraints, producing a TypedPrompt or a DecodeError wrapping an
// UnsupportedInterface.
func (r RawPrompt) Decode() (TypedPrompt, error) {
	switch r.Interface {
	case "home":
		var hc home.Constraints
		if err := json.Unmarshal(r.Constraints, &hc); err != nil {
			return TypedPrompt{}, &perrors.DecodeError{Op: "decode home constraints", Err: err}
		}
		return TypedPrompt{
			ID:        r.ID,
			Timestamp: r.Timestamp,
			Snap:      r.Snap,
			Variant:   VariantHome,
			Home:      hc,
		}, nil
	default:
		return TypedPrompt{}, &perrors.DecodeError{
			Op:  "decode prompt",
			Err: &perrors.UnsupportedInterface{Interface: r.Interface},
		}
	}
}
