// Package verifier implements the opaque password verify capability used by
// the auth pipeline. The pipeline only sees the Verifier interface, so the
// stored format (bcrypt, argon2id or plaintext) is a deployment choice.
package verifier

import "fmt"

// Scheme names accepted by New.
const (
	SchemeBcrypt   = "bcrypt"
	SchemeArgon2id = "argon2id"
	SchemePlain    = "plain"
)

// Verifier checks a submitted secret against a stored verifier and produces
// verifiers for provisioning. Verify must not leak timing information about
// where the secret and the verifier differ.
type Verifier interface {
	Scheme() string
	Hash(secret string) (string, error)
	Verify(secret, stored string) bool
}

// New returns the Verifier for scheme.
func New(scheme string) (Verifier, error) {
	switch scheme {
	case SchemeBcrypt:
		return NewBcrypt(0), nil
	case SchemeArgon2id:
		return NewArgon2id(), nil
	case SchemePlain:
		return Plain{}, nil
	default:
		return nil, fmt.Errorf("unknown password scheme %q", scheme)
	}
}
