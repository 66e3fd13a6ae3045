package common

// HTTP paths served by the auth server.
const (
	HealthPath = "/health"
	LoginPath  = "/login"
)

// ContentTypeJSON is used for every request and response body on the wire.
const ContentTypeJSON = "application/json"

// RequestIDHeaderName carries the per-request correlation id.
const RequestIDHeaderName = "X-Request-ID"
