package services

import "net/http"

// VerdictKind enumerates the possible outcomes of one authentication attempt.
type VerdictKind int

const (
	VerdictSuccess VerdictKind = iota
	VerdictInvalidCredentials
	VerdictMalformedRequest
	VerdictStoreUnavailable
)

func (k VerdictKind) String() string {
	switch k {
	case VerdictSuccess:
		return "success"
	case VerdictInvalidCredentials:
		return "invalid_credentials"
	case VerdictMalformedRequest:
		return "malformed_request"
	case VerdictStoreUnavailable:
		return "store_unavailable"
	default:
		return "unknown"
	}
}

// Verdict is the result of Authenticate. UserID and DisplayName are set only
// for VerdictSuccess. A Verdict is a value; it is never modified once built.
type Verdict struct {
	Kind        VerdictKind
	UserID      int64
	DisplayName string
}

func success(id int64, name string) Verdict {
	return Verdict{Kind: VerdictSuccess, UserID: id, DisplayName: name}
}

// StatusCode maps the verdict to its HTTP status.
func (v Verdict) StatusCode() int {
	switch v.Kind {
	case VerdictSuccess:
		return http.StatusOK
	case VerdictInvalidCredentials:
		return http.StatusUnauthorized
	case VerdictMalformedRequest:
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}
