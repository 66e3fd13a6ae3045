// Package httpserver exposes the auth server over HTTP: the router, its
// handlers and middleware, and the listening Server.
package httpserver

import (
	"net/http"

	"github.com/dmitrijs2005/gatekeeper/internal/common"
	"github.com/gorilla/mux"
)

// NewRouter builds the HTTP surface:
//
//	GET  /health
//	POST /login
//
// Every request passes through panic recovery, request id assignment and
// access logging, including 404 and 405 answers.
func NewRouter(h *Handlers) http.Handler {
	r := mux.NewRouter()

	r.HandleFunc(common.HealthPath, h.Health).Methods(http.MethodGet)
	r.HandleFunc(common.LoginPath, h.Login).Methods(http.MethodPost)

	r.MethodNotAllowedHandler = http.HandlerFunc(methodNotAllowed)
	r.NotFoundHandler = http.HandlerFunc(notFound)

	return chain(r, recoverer(h.Logger), requestID, accessLog(h.Logger))
}

// chain applies mws so that the first one is outermost.
func chain(h http.Handler, mws ...func(http.Handler) http.Handler) http.Handler {
	for i := len(mws) - 1; i >= 0; i-- {
		h = mws[i](h)
	}
	return h
}
