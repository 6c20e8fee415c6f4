// Package rpcapi implements the RPC Service: the northbound surface the
// UI process talks to. It is deliberately plain HTTP/JSON over a
// Unix-domain socket rather than a generated RPC stack, carrying the
// same four logical operations and field names a generated transport
// would, without the stub generation step.
package rpcapi

import (
	"encoding/json"
	"net"
	"net/http"
	"os"

	"github.com/gorilla/mux"
	"go.uber.org/zap"

	"github.com/snapcore/prompting-client/logfilter"
	"github.com/snapcore/prompting-client/perrors"
	"github.com/snapcore/prompting-client/policy"
	"github.com/snapcore/prompting-client/prompt"
	"github.com/snapcore/prompting-client/prompt/home"
	"github.com/snapcore/prompting-client/worker"
)

// Worker is the capability set the Service needs from the worker
// package, narrowed to what the RPC handlers actually call.
type Worker interface {
	Current() *prompt.UiInput
	Actioned() chan<- worker.ActionedPrompt
	Dying() <-chan struct{}
}

// Server serves the northbound RPC surface over a Unix-domain socket.
type Server struct {
	w      Worker
	client policy.PolicyClient
	filter *logfilter.Filter
	log    *zap.Logger

	httpSrv *http.Server
	ln      net.Listener
}

// New builds a Server. socketPath is the listener address; it is
// removed (best-effort) before binding, so a socket left behind by a
// prior unclean shutdown doesn't keep this one from starting.
func New(socketPath string, w Worker, client policy.PolicyClient, filter *logfilter.Filter, log *zap.Logger) (*Server, error) {
	if log == nil {
		log = zap.NewNop()
	}
	os.Remove(socketPath)
	ln, err := net.Listen("unix", socketPath)
	if err != nil {
		return nil, &perrors.TransportError{Op: "listen " + socketPath, Err: err}
	}

	s := &Server{w: w, client: client, filter: filter, log: log, ln: newThrottledListener(ln)}

	r := mux.NewRouter()
	r.HandleFunc("/v1/current-prompt", s.handleGetCurrentPrompt).Methods(http.MethodGet)
	r.HandleFunc("/v1/reply", s.handleReplyToPrompt).Methods(http.MethodPost)
	r.HandleFunc("/v1/resolve-home-pattern-type", s.handleResolveHomePatternType).Methods(http.MethodPost)
	r.HandleFunc("/v1/logging-filter", s.handleSetLoggingFilter).Methods(http.MethodPost)
	s.httpSrv = &http.Server{Handler: r}

	return s, nil
}

// Handler returns the underlying http.Handler, letting tests drive the
// routes directly with httptest instead of a real socket.
func (s *Server) Handler() http.Handler { return s.httpSrv.Handler }

// Serve blocks accepting connections until the listener is closed.
func (s *Server) Serve() error {
	err := s.httpSrv.Serve(s.ln)
	if err == http.ErrServerClosed {
		return nil
	}
	return err
}

// Close shuts the listener down and removes the socket file, so a
// restart doesn't have to contend with a stale one.
func (s *Server) Close() error {
	addr := s.ln.Addr().String()
	err := s.httpSrv.Close()
	os.Remove(addr)
	return err
}

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

func (s *Server) handleGetCurrentPrompt(w http.ResponseWriter, r *http.Request) {
	cur := s.w.Current()
	if cur == nil {
		s.log.Warn("GetCurrentPrompt called with no active prompt")
	}
	writeJSON(w, http.StatusOK, ok(http.StatusOK, "OK", currentPromptResult{Prompt: toWire(cur)}))
}

func (s *Server) handleReplyToPrompt(w http.ResponseWriter, r *http.Request) {
	var req replyRequestWire
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		ce := &perrors.ClientMalformed{Reason: "malformed request body"}
		writeJSON(w, http.StatusBadRequest, errEnvelope(http.StatusBadRequest, "Bad Request", ce.Error()))
		return
	}
	if req.PromptReply == nil {
		ce := &perrors.ClientMalformed{Reason: "received empty prompt_reply"}
		writeJSON(w, http.StatusBadRequest, errEnvelope(http.StatusBadRequest, "Bad Request", ce.Error()))
		return
	}

	typed := prompt.TypedPromptReply{
		Action:   prompt.Action(req.Action),
		Lifespan: prompt.Lifespan(req.Lifespan),
		Variant:  prompt.VariantHome,
		Home: home.ReplyConstraints{
			PathPattern: req.PromptReply.PathPattern,
			Permissions: req.PromptReply.Permissions,
		},
	}

	others, err := s.client.Reply(r.Context(), req.PromptID, typed)
	if err != nil {
		if policy.IsNotFound(err) {
			s.postActioned(worker.ActionedPrompt{ID: req.PromptID, NotFound: true})
			writeJSON(w, http.StatusOK, ok(http.StatusOK, "OK", replyResponseWire{
				PromptReplyType: ReplyPromptNotFound,
				Message:         "prompt not found",
			}))
			return
		}
		writeJSON(w, http.StatusOK, ok(http.StatusOK, "OK", replyResponseWire{
			PromptReplyType: ReplyUnknown,
			Message:         err.Error(),
		}))
		return
	}

	s.postActioned(worker.Actioned(req.PromptID, others))
	writeJSON(w, http.StatusOK, ok(http.StatusOK, "OK", replyResponseWire{
		PromptReplyType: ReplySuccess,
		Message:         "success",
	}))
}

// postActioned delivers ev to the Worker. A blocked send that loses the
// race to Dying() means the Worker has already terminated, a daemon-wide
// fatal condition: the Service aborts the process rather than risk
// silent desync between the queue and the policy service's view of
// resolved prompts.
func (s *Server) postActioned(ev worker.ActionedPrompt) {
	select {
	case s.w.Actioned() <- ev:
	case <-s.w.Dying():
		s.log.Fatal("worker terminated while posting actioned event", zap.String("id", string(ev.ID)))
	}
}

func (s *Server) handleResolveHomePatternType(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusNotImplemented,
		errEnvelope(http.StatusNotImplemented, "Not Implemented", "this endpoint is not yet implemented"))
}

func (s *Server) handleSetLoggingFilter(w http.ResponseWriter, r *http.Request) {
	var req loggingFilterRequestWire
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		ce := &perrors.ClientMalformed{Reason: "malformed request body"}
		writeJSON(w, http.StatusBadRequest, errEnvelope(http.StatusBadRequest, "Bad Request", ce.Error()))
		return
	}
	if err := s.filter.Set(req.Filter); err != nil {
		writeJSON(w, http.StatusBadRequest, errEnvelope(http.StatusBadRequest, "Bad Request", err.Error()))
		return
	}
	writeJSON(w, http.StatusOK, ok(http.StatusOK, "OK", loggingFilterResponseWire{Current: s.filter.Current()}))
}
