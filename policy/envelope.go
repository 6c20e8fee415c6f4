package policy

import (
	"encoding/json"
	"net/http"

	"github.com/snapcore/prompting-client/perrors"
)

// envelope is the outer shape of every response: {type, status-code,
// status, result}. result is decoded in two steps (see decodeEnvelope) rather
// than relying on a single struct tag so that success and error share no
// accidental field collision in either direction.
type envelope struct {
	Type       string          `json:"type"`
	StatusCode int             `json:"status-code"`
	Status     string          `json:"status"`
	Result     json.RawMessage `json:"result"`
}

// errResult is checked for first: if result decodes as an object carrying
// a "message" key at all, it is treated as an error regardless of
// whether it might otherwise also look like a valid T, and regardless of
// whether that message is the empty string. Presence of the key is what
// discriminates an error result from a success result, not the value.
type errResult struct {
	Message *string `json:"message"`
}

func decodeEnvelope(resp *http.Response, v any) error {
	var env envelope
	dec := json.NewDecoder(resp.Body)
	if err := dec.Decode(&env); err != nil {
		return &perrors.DecodeError{Op: "decode envelope", Err: err}
	}

	var maybeErr errResult
	if err := json.Unmarshal(env.Result, &maybeErr); err == nil && maybeErr.Message != nil {
		return &perrors.PolicyServiceError{Status: resp.StatusCode, Message: *maybeErr.Message}
	}

	if v == nil || len(env.Result) == 0 {
		return nil
	}
	if err := json.Unmarshal(env.Result, v); err != nil {
		return &perrors.DecodeError{Op: "decode result", Err: err}
	}
	return nil
}
