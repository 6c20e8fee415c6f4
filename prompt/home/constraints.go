// Package home implements the "home" interface: the only AppArmor
// prompting interface this core understands. It holds the request/reply
// constraint shapes and the path pattern synthesis used to populate the
// UI's suggested-pattern picker.
package home

import "encoding/json"

// Constraints is the request-side shape carried by a raw prompt whose
// interface is "home". Permissions are drawn from an open set (read,
// write, execute, and whatever the kernel/policy service adds later);
// unknown values are preserved verbatim rather than rejected.
type Constraints struct {
	Path                 string   `json:"path"`
	RequestedPermissions []string `json:"requested-permissions"`
	AvailablePermissions []string `json:"available-permissions"`
	SuggestedPermissions []string `json:"suggested-permissions,omitempty"`
}

// ReplyConstraints is the reply-side shape sent back to the policy
// service: a path pattern rather than a single path, and the granted
// permission set in place of the requested one. AvailablePermissions is
// part of the wire shape but this core never populates it.
type ReplyConstraints struct {
	PathPattern          string   `json:"path-pattern"`
	Permissions          []string `json:"permissions"`
	AvailablePermissions []string `json:"available-permissions"`
}

// MarshalJSON normalizes a nil AvailablePermissions to the empty set:
// it is always emitted as "[]", never "null", since this core never
// populates it on a reply.
func (r ReplyConstraints) MarshalJSON() ([]byte, error) {
	type alias ReplyConstraints
	a := alias(r)
	if a.AvailablePermissions == nil {
		a.AvailablePermissions = []string{}
	}
	return json.Marshal(a)
}

// UiInputData is the home-specific payload of a UiInput projection: the
// raw request enriched with the home directory and the synthesized
// pattern choices the UI offers the user.
type UiInputData struct {
	RequestedPath        string
	HomeDir              string
	RequestedPermissions []string
	AvailablePermissions []string
	SuggestedPermissions []string
	InitialPatternOption int
	PatternOptions       []TypedPathPattern
}
