// Package policy implements the Policy Client: the southbound half of
// the daemon that speaks the HTTP-over-UDS JSON protocol to snapd.
package policy

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net"
	"net/http"
	"os"
	"time"

	"go.uber.org/zap"
	"golang.org/x/time/rate"

	"github.com/snapcore/prompting-client/perrors"
)

const (
	baseURI            = "http://localhost/v2"
	systemSocket       = "/run/snapd.socket"
	snapScopedSocket   = "/run/snapd-snap.socket"
	featureName        = "apparmor-prompting"
	noticeTypes        = "interfaces-requests-prompt"
	longPollTimeout    = "1h"
	snapMetaRateLimit  = 5  // lookups per second
	snapMetaRateBurst  = 10 // allow a burst when many prompts arrive at once
)

// Doer is the minimal HTTP transport contract the Client needs, making
// it possible to substitute a fake transport in tests the same way
// snapd's own client package does.
type Doer interface {
	Do(req *http.Request) (*http.Response, error)
}

// Client is the Policy Client: a thin, UDS-pinned HTTP/JSON client plus
// the notice cursor it owns.
type Client struct {
	doer         Doer
	notifierLim  *rate.Limiter
	noticesAfter string
	log          *zap.Logger
}

// SocketPath returns the control socket to use: the snap-scoped one when
// running inside the confined package (SNAP_NAME set in the
// environment), otherwise the system-wide one.
func SocketPath() string {
	if _, ok := os.LookupEnv("SNAP_NAME"); ok {
		return snapScopedSocket
	}
	return systemSocket
}

// New returns a Client dialing socketPath, with its notice cursor
// initialized to the current time, formatted per spec (RFC 3339 with
// nanosecond precision and a "Z" zone).
func New(socketPath string) *Client {
	return NewWithNoticesAfter(socketPath, time.Now().UTC())
}

// NewWithNoticesAfter is New with an explicit initial cursor, used by
// tests that need a deterministic starting point.
func NewWithNoticesAfter(socketPath string, after time.Time) *Client {
	transport := &http.Transport{
		DialContext: func(ctx context.Context, _, _ string) (net.Conn, error) {
			var d net.Dialer
			return d.DialContext(ctx, "unix", socketPath)
		},
	}
	return &Client{
		doer:         &http.Client{Transport: transport},
		notifierLim:  rate.NewLimiter(rate.Limit(snapMetaRateLimit), snapMetaRateBurst),
		noticesAfter: after.Format("2006-01-02T15:04:05.000000000Z07:00"),
		log:          zap.NewNop(),
	}
}

// SetDoer overrides the HTTP transport, for tests.
func (c *Client) SetDoer(d Doer) { c.doer = d }

// SetLogger installs the logger used for warnings about individual
// records the Client has to drop (a malformed or unsupported-interface
// prompt, for instance) without failing the whole request.
func (c *Client) SetLogger(log *zap.Logger) {
	if log == nil {
		log = zap.NewNop()
	}
	c.log = log
}

// getJSON issues a GET against the policy service and decodes its
// envelope into v.
func (c *Client) getJSON(ctx context.Context, path string, v any) error {
	return c.doJSON(ctx, http.MethodGet, path, nil, v)
}

// postJSON issues a POST with a JSON-encoded body and decodes the
// response envelope into v.
func (c *Client) postJSON(ctx context.Context, path string, body any, v any) error {
	b, err := json.Marshal(body)
	if err != nil {
		return &perrors.DecodeError{Op: "encode request body", Err: err}
	}
	return c.doJSON(ctx, http.MethodPost, path, bytes.NewReader(b), v)
}

func (c *Client) doJSON(ctx context.Context, method, path string, body io.Reader, v any) error {
	req, err := http.NewRequestWithContext(ctx, method, baseURI+"/"+path, body)
	if err != nil {
		return &perrors.TransportError{Op: method + " " + path, Err: err}
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.doer.Do(req)
	if err != nil {
		return &perrors.TransportError{Op: method + " " + path, Err: err}
	}
	defer resp.Body.Close()

	return decodeEnvelope(resp, v)
}
