package services

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/dmitrijs2005/gatekeeper/internal/logging"
	"github.com/dmitrijs2005/gatekeeper/internal/server/models"
	"github.com/dmitrijs2005/gatekeeper/internal/server/store"
	"github.com/dmitrijs2005/gatekeeper/internal/server/verifier"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeSeed(t *testing.T, body string) string {
	t.Helper()
	p := filepath.Join(t.TempDir(), "users.yaml")
	require.NoError(t, os.WriteFile(p, []byte(body), 0o600))
	return p
}

func TestSeedFromFile(t *testing.T) {
	path := writeSeed(t, `
users:
  - id: a@b.com
    password: correct
    name: Alice
  - id: c@d.com
    password: hunter2
`)
	s := store.NewMemoryStore()
	b := verifier.NewBcrypt(4)
	seeder := NewSeeder(s, b, logging.Nop{})

	n, err := seeder.SeedFromFile(context.Background(), path)
	require.NoError(t, err)
	assert.Equal(t, 2, n)

	u, err := s.Lookup(context.Background(), "a@b.com")
	require.NoError(t, err)
	assert.Equal(t, "Alice", u.DisplayName)
	assert.NotEqual(t, "correct", u.Verifier)
	assert.True(t, b.Verify("correct", u.Verifier))

	// Missing name falls back to the identifier.
	c, err := s.Lookup(context.Background(), "c@d.com")
	require.NoError(t, err)
	assert.Equal(t, "c@d.com", c.DisplayName)

	// Re-seeding skips everything.
	n, err = seeder.SeedFromFile(context.Background(), path)
	require.NoError(t, err)
	assert.Equal(t, 0, n)
}

func TestSeedFromFile_Errors(t *testing.T) {
	seeder := NewSeeder(store.NewMemoryStore(), verifier.Plain{}, logging.Nop{})
	ctx := context.Background()

	_, err := seeder.SeedFromFile(ctx, filepath.Join(t.TempDir(), "missing.yaml"))
	require.Error(t, err)

	_, err = seeder.SeedFromFile(ctx, writeSeed(t, "users: [unclosed"))
	require.Error(t, err)

	_, err = seeder.SeedFromFile(ctx, writeSeed(t, "users:\n  - id: a@b.com\n"))
	require.Error(t, err)
}

type failingProvisioner struct{}

func (failingProvisioner) Provision(context.Context, []models.User) (int, error) {
	return 0, errors.New("tx failed")
}

func TestSeed_ProvisionError(t *testing.T) {
	seeder := NewSeeder(failingProvisioner{}, verifier.Plain{}, logging.Nop{})
	_, err := seeder.Seed(context.Background(), []SeedUser{{ID: "a@b.com", Password: "x"}})
	require.Error(t, err)
}
