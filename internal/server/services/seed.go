package services

import (
	"context"
	"fmt"
	"os"

	"github.com/dmitrijs2005/gatekeeper/internal/logging"
	"github.com/dmitrijs2005/gatekeeper/internal/server/models"
	"github.com/dmitrijs2005/gatekeeper/internal/server/store"
	"github.com/dmitrijs2005/gatekeeper/internal/server/verifier"
	"gopkg.in/yaml.v3"
)

// SeedUser is one entry of a seed file.
type SeedUser struct {
	ID       string `yaml:"id"`
	Password string `yaml:"password"`
	Name     string `yaml:"name"`
}

// SeedFile is the YAML document accepted by Seeder:
//
//	users:
//	  - id: a@b.com
//	    password: correct
//	    name: Alice
type SeedFile struct {
	Users []SeedUser `yaml:"users"`
}

// Seeder provisions users from a seed file, hashing passwords with the
// configured verifier. Identifiers already in the store are skipped.
type Seeder struct {
	store    store.Provisioner
	verifier verifier.Verifier
	logger   logging.Logger
}

func NewSeeder(p store.Provisioner, v verifier.Verifier, logger logging.Logger) *Seeder {
	return &Seeder{store: p, verifier: v, logger: logger.With("module", "seed")}
}

// SeedFromFile loads path and seeds its users. It returns how many users were
// created.
func (s *Seeder) SeedFromFile(ctx context.Context, path string) (int, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return 0, fmt.Errorf("read seed file: %w", err)
	}

	var f SeedFile
	if err := yaml.Unmarshal(data, &f); err != nil {
		return 0, fmt.Errorf("parse seed file %s: %w", path, err)
	}

	return s.Seed(ctx, f.Users)
}

func (s *Seeder) Seed(ctx context.Context, seed []SeedUser) (int, error) {
	users := make([]models.User, 0, len(seed))
	for i, su := range seed {
		if su.ID == "" || su.Password == "" {
			return 0, fmt.Errorf("seed user #%d: id and password are required", i+1)
		}
		v, err := s.verifier.Hash(su.Password)
		if err != nil {
			return 0, fmt.Errorf("hash password for %s: %w", su.ID, err)
		}
		name := su.Name
		if name == "" {
			name = su.ID
		}
		users = append(users, models.User{Identifier: su.ID, Verifier: v, DisplayName: name})
	}

	created, err := s.store.Provision(ctx, users)
	if err != nil {
		return 0, err
	}

	s.logger.Info(ctx, "users seeded", "created", created, "skipped", len(users)-created)
	return created, nil
}
