// Package common defines shared constants and sentinel errors used across
// client and server layers of gatekeeper. Callers should use errors.Is to
// match these values.
package common

import "errors"

var (
	// Repository-level errors.
	ErrorNotFound = errors.New("not found")

	// Service-level errors.
	ErrorInternal     = errors.New("internal error")
	ErrorUnauthorized = errors.New("unauthorized")

	// Input errors, detected on either side of the wire.
	ErrorMalformedRequest = errors.New("malformed request")

	// ErrorStoreUnavailable reports that the credential store could not be
	// reached or failed mid-query. It is a server fault, never a credentials
	// problem.
	ErrorStoreUnavailable = errors.New("store unavailable")

	// ErrorUnparseable reports a response body that is not the expected JSON object.
	ErrorUnparseable = errors.New("unparseable response")
)
