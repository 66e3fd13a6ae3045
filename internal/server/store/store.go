// Package store is the credential store adapter: it resolves an identifier to
// a stored user record and reports store outages as a distinct condition.
package store

import (
	"context"
	"fmt"

	"github.com/dmitrijs2005/gatekeeper/internal/server/config"
	"github.com/dmitrijs2005/gatekeeper/internal/server/models"
)

// Store resolves identifiers to user records.
//
// Lookup returns common.ErrorNotFound when no record matches and an error
// wrapping common.ErrorStoreUnavailable for any other failure. Matching is
// exact: no case folding and no trimming.
type Store interface {
	Lookup(ctx context.Context, identifier string) (*models.User, error)
	Ping(ctx context.Context) error
}

// Provisioner inserts users that are not yet present and reports how many
// were created.
type Provisioner interface {
	Provision(ctx context.Context, users []models.User) (int, error)
}

// Backend is what Open returns: a store that can also be seeded and closed.
type Backend interface {
	Store
	Provisioner
	Close() error
}

// Open returns the backend for driver. SQL backends are connected, pinged
// and migrated before returning.
func Open(ctx context.Context, driver, dsn string) (Backend, error) {
	switch driver {
	case config.StoreDriverMemory:
		return NewMemoryStore(), nil
	case config.StoreDriverPostgres, config.StoreDriverSQLite:
		return OpenSQL(ctx, driver, dsn)
	default:
		return nil, fmt.Errorf("unsupported store driver %q", driver)
	}
}
