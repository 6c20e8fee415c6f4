// Package perrors holds the error taxonomy shared by the policy client,
// worker and RPC service: transport failures, decode failures, and the
// typed errors the policy service itself reports.
package perrors

import (
	"fmt"
	"net/http"

	"golang.org/x/xerrors"
)

// NotAvailable is returned when snapd has no apparmor-prompting feature
// entry at all (too old, or compiled without prompting support).
var NotAvailable = xerrors.New("prompting feature not available")

// NotEnabled is returned at startup when the apparmor-prompting feature
// is known but currently switched off. The daemon must exit non-zero so
// that its supervisor does not restart it.
var NotEnabled = xerrors.New("apparmor-prompting feature is not enabled")

// NotSupported is returned when snapd reports a non-empty
// unsupported-reason for the apparmor-prompting feature.
type NotSupported struct {
	Reason string
}

func (e *NotSupported) Error() string {
	return fmt.Sprintf("apparmor-prompting feature is not supported: %s", e.Reason)
}

// PolicyServiceError wraps a non-2xx response from the policy service,
// carrying the HTTP status so that callers such as the RPC service can
// distinguish "not found" from every other failure.
type PolicyServiceError struct {
	Status  int
	Message string
}

func (e *PolicyServiceError) Error() string {
	return fmt.Sprintf("policy service error (status %d): %s", e.Status, e.Message)
}

// NotFound reports whether this error is a 404 from the policy service.
func (e *PolicyServiceError) NotFound() bool {
	return e.Status == http.StatusNotFound
}

// TransportError wraps a failure to talk to the policy service at all
// (connection refused, socket gone, timed out, cancelled).
type TransportError struct {
	Op  string
	Err error
}

func (e *TransportError) Error() string {
	return fmt.Sprintf("transport error during %s: %v", e.Op, e.Err)
}

func (e *TransportError) Unwrap() error { return e.Err }

// DecodeError wraps a failure to make sense of a policy service response:
// malformed JSON, or a recognised-but-unsupported interface name.
type DecodeError struct {
	Op  string
	Err error
}

func (e *DecodeError) Error() string {
	return fmt.Sprintf("decode error during %s: %v", e.Op, e.Err)
}

func (e *DecodeError) Unwrap() error { return e.Err }

// UnsupportedInterface is the specific DecodeError cause used when a raw
// prompt or reply names an interface this core does not understand.
type UnsupportedInterface struct {
	Interface string
}

func (e *UnsupportedInterface) Error() string {
	return fmt.Sprintf("unsupported interface %q", e.Interface)
}

// ClientMalformed is returned by the RPC service when the UI sends a
// request that cannot be translated into the internal model: an absent
// or unrecognised prompt_reply variant, for instance.
type ClientMalformed struct {
	Reason string
}

func (e *ClientMalformed) Error() string { return e.Reason }

// LogFilterInvalid is returned when SetLoggingFilter is given an
// expression the log filter cannot parse or install.
type LogFilterInvalid struct {
	Expr   string
	Reason string
}

func (e *LogFilterInvalid) Error() string {
	return fmt.Sprintf("invalid log filter %q: %s", e.Expr, e.Reason)
}
