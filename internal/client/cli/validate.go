package cli

import (
	"errors"
	"regexp"
)

// identifierPattern is the local@domain.tld shape accepted before submission.
// The server does its own validation; this only catches typos early.
var identifierPattern = regexp.MustCompile(`^[\w.-]+@[\w.-]+\.[A-Za-z]{2,}$`)

var (
	ErrEmptyIdentifier = errors.New("identifier must not be empty")
	ErrEmptySecret     = errors.New("password must not be empty")
	ErrBadIdentifier   = errors.New("identifier must look like an email address (local@domain.tld)")
)

// ValidateCredentials checks the client-side input rules.
func ValidateCredentials(identifier string, secret []byte) error {
	switch {
	case identifier == "":
		return ErrEmptyIdentifier
	case len(secret) == 0:
		return ErrEmptySecret
	case !identifierPattern.MatchString(identifier):
		return ErrBadIdentifier
	}
	return nil
}
