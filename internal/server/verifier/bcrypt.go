package verifier

import "golang.org/x/crypto/bcrypt"

// Bcrypt stores verifiers as bcrypt hashes.
type Bcrypt struct {
	cost int
}

// NewBcrypt returns a bcrypt verifier; cost <= 0 selects bcrypt.DefaultCost.
func NewBcrypt(cost int) Bcrypt {
	if cost <= 0 {
		cost = bcrypt.DefaultCost
	}
	return Bcrypt{cost: cost}
}

func (Bcrypt) Scheme() string { return SchemeBcrypt }

func (b Bcrypt) Hash(secret string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(secret), b.cost)
	if err != nil {
		return "", err
	}
	return string(hash), nil
}

// Verify relies on bcrypt's own constant-time comparison.
func (Bcrypt) Verify(secret, stored string) bool {
	return bcrypt.CompareHashAndPassword([]byte(stored), []byte(secret)) == nil
}
