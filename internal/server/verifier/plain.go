package verifier

import (
	"crypto/sha256"
	"crypto/subtle"
)

// Plain is the degraded mode where the stored verifier is the password itself.
// Both sides are digested first so the comparison time does not depend on
// the stored length either.
type Plain struct{}

func (Plain) Scheme() string { return SchemePlain }

func (Plain) Hash(secret string) (string, error) { return secret, nil }

func (Plain) Verify(secret, stored string) bool {
	a := sha256.Sum256([]byte(secret))
	b := sha256.Sum256([]byte(stored))
	return subtle.ConstantTimeCompare(a[:], b[:]) == 1
}
