package httpserver

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"time"

	"github.com/dmitrijs2005/gatekeeper/internal/common"
	"github.com/dmitrijs2005/gatekeeper/internal/logging"
	"github.com/dmitrijs2005/gatekeeper/internal/server/services"
	"github.com/dmitrijs2005/gatekeeper/internal/wire"
)

// MaxLoginBodyBytes caps the login request body; larger bodies are malformed.
const MaxLoginBodyBytes = 64 << 10

// Authenticator is the part of services.AuthService the handlers need.
type Authenticator interface {
	AuthenticateBody(ctx context.Context, body io.Reader) services.Verdict
}

// Handlers serves the auth endpoints.
type Handlers struct {
	Auth    Authenticator
	Logger  logging.Logger
	Timeout time.Duration
}

var healthBody = []byte(`{"ok":true}`)

// Health answers liveness probes. It never touches the credential store.
func (h *Handlers) Health(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", common.ContentTypeJSON)
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(healthBody)
}

// Login authenticates the submitted credentials and renders the verdict.
func (h *Handlers) Login(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	if h.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, h.Timeout)
		defer cancel()
	}

	body := http.MaxBytesReader(w, r.Body, MaxLoginBodyBytes)
	v := h.Auth.AuthenticateBody(ctx, body)

	writeJSON(w, v.StatusCode(), renderVerdict(v))
}

func renderVerdict(v services.Verdict) wire.LoginResponse {
	switch v.Kind {
	case services.VerdictSuccess:
		return wire.LoginResponse{OK: true, UID: v.UserID, Name: v.DisplayName}
	case services.VerdictInvalidCredentials:
		return wire.LoginResponse{Msg: wire.MsgInvalidCredentials}
	case services.VerdictMalformedRequest:
		return wire.LoginResponse{Msg: wire.MsgBadRequest}
	default:
		return wire.LoginResponse{Msg: wire.MsgStoreUnavailable}
	}
}

func writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", common.ContentTypeJSON)
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(body)
}

func methodNotAllowed(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusMethodNotAllowed, wire.LoginResponse{Msg: "method not allowed"})
}

func notFound(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusNotFound, wire.LoginResponse{Msg: "not found"})
}
