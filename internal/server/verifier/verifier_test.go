package verifier

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNew(t *testing.T) {
	for _, scheme := range []string{SchemeBcrypt, SchemeArgon2id, SchemePlain} {
		v, err := New(scheme)
		require.NoError(t, err)
		assert.Equal(t, scheme, v.Scheme())
	}

	_, err := New("md5")
	require.Error(t, err)
}

func TestVerifiers_RoundTrip(t *testing.T) {
	fast := Argon2id{Time: 1, Memory: 1024, Threads: 1, KeyLen: 16, SaltLen: 8}

	tests := []struct {
		name string
		v    Verifier
	}{
		{name: "bcrypt", v: NewBcrypt(4)},
		{name: "argon2id", v: fast},
		{name: "plain", v: Plain{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			stored, err := tt.v.Hash("correct")
			require.NoError(t, err)

			assert.True(t, tt.v.Verify("correct", stored))
			assert.False(t, tt.v.Verify("wrong", stored))
			assert.False(t, tt.v.Verify("", stored))
			assert.False(t, tt.v.Verify("Correct", stored))
		})
	}
}

func TestBcrypt_DefaultCost(t *testing.T) {
	b := NewBcrypt(0)
	assert.Equal(t, 10, b.cost)
}

func TestBcrypt_GarbageVerifierNeverMatches(t *testing.T) {
	assert.False(t, NewBcrypt(4).Verify("correct", "correct"))
	assert.False(t, NewBcrypt(4).Verify("correct", ""))
}

func TestArgon2id_Format(t *testing.T) {
	a := Argon2id{Time: 2, Memory: 1024, Threads: 1, KeyLen: 16, SaltLen: 8}
	stored, err := a.Hash("pw")
	require.NoError(t, err)

	assert.True(t, strings.HasPrefix(stored, "$argon2id$v=19$m=1024,t=2,p=1$"), stored)
	assert.Len(t, strings.Split(stored, "$"), 6)

	// Parameters come from the stored string, not from the receiver.
	assert.True(t, NewArgon2id().Verify("pw", stored))

	// Two hashes of the same secret differ by salt.
	other, err := a.Hash("pw")
	require.NoError(t, err)
	assert.NotEqual(t, stored, other)
}

func TestArgon2id_MalformedVerifiers(t *testing.T) {
	a := NewArgon2id()
	for _, bad := range []string{
		"",
		"plaintext",
		"$argon2i$v=19$m=1024,t=1,p=1$c2FsdA$aGFzaA",
		"$argon2id$v=18$m=1024,t=1,p=1$c2FsdA$aGFzaA",
		"$argon2id$v=19$m=1024,t=0,p=1$c2FsdA$aGFzaA",
		"$argon2id$v=19$garbage$c2FsdA$aGFzaA",
		"$argon2id$v=19$m=1024,t=1,p=1$!!!$aGFzaA",
		"$argon2id$v=19$m=1024,t=1,p=1$c2FsdA$",
	} {
		assert.False(t, a.Verify("pw", bad), "verifier %q must not match", bad)
	}
}

func TestPlain_HashIsIdentity(t *testing.T) {
	stored, err := Plain{}.Hash("1216")
	require.NoError(t, err)
	assert.Equal(t, "1216", stored)
}
