package repomanager

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/dmitrijs2005/gatekeeper/internal/dbx"
	"github.com/dmitrijs2005/gatekeeper/internal/server/repositories/users"
)

// RepositoryManager vends dialect-specific repositories bound to a DBTX and
// applies the dialect's schema migrations.
type RepositoryManager interface {
	// DriverName is the database/sql driver to open for this dialect.
	DriverName() string
	RunMigrations(context.Context, *sql.DB) error
	Users(db dbx.DBTX) users.Repository
}

// ForDriver returns the RepositoryManager for a configured store driver
// ("postgres" or "sqlite").
func ForDriver(driver string) (RepositoryManager, error) {
	switch driver {
	case "postgres":
		return &PostgresRepositoryManager{}, nil
	case "sqlite":
		return &SQLiteRepositoryManager{}, nil
	default:
		return nil, fmt.Errorf("unsupported store driver %q", driver)
	}
}
