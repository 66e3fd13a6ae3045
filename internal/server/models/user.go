package models

import "time"

// User is a stored credential record. Verifier is the opaque stored form of
// the password (a bcrypt or argon2id hash, or plaintext in degraded mode)
// and never the submitted secret itself.
type User struct {
	ID          int64
	Identifier  string
	Verifier    string
	DisplayName string
	CreatedAt   time.Time
}
