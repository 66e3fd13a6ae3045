package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/dmitrijs2005/gatekeeper/internal/common"
	"github.com/dmitrijs2005/gatekeeper/internal/dbx"
	"github.com/dmitrijs2005/gatekeeper/internal/filex"
	"github.com/dmitrijs2005/gatekeeper/internal/server/config"
	"github.com/dmitrijs2005/gatekeeper/internal/server/models"
	"github.com/dmitrijs2005/gatekeeper/internal/server/repositories/repomanager"
)

// SQLStore looks users up in a SQL database. Every Lookup runs on its own
// pooled connection which is released before Lookup returns.
type SQLStore struct {
	db    *sql.DB
	repos repomanager.RepositoryManager
}

func NewSQLStore(db *sql.DB, repos repomanager.RepositoryManager) *SQLStore {
	return &SQLStore{db: db, repos: repos}
}

// OpenSQL opens the database for driver, checks it is reachable and applies
// migrations.
func OpenSQL(ctx context.Context, driver, dsn string) (*SQLStore, error) {
	repos, err := repomanager.ForDriver(driver)
	if err != nil {
		return nil, err
	}

	if driver == config.StoreDriverSQLite {
		if path := filex.SQLitePath(dsn); path != "" {
			if err := filex.EnsureParentDir(path); err != nil {
				return nil, err
			}
		}
	}

	db, err := sql.Open(repos.DriverName(), dsn)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", driver, err)
	}

	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("%w: %w", common.ErrorStoreUnavailable, err)
	}

	if err := repos.RunMigrations(ctx, db); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("migrate %s: %w", driver, err)
	}

	return NewSQLStore(db, repos), nil
}

func (s *SQLStore) Lookup(ctx context.Context, identifier string) (*models.User, error) {
	var user *models.User

	err := dbx.WithConn(ctx, s.db, func(ctx context.Context, conn dbx.DBTX) error {
		u, err := s.repos.Users(conn).GetUserByIdentifier(ctx, identifier)
		if err != nil {
			return err
		}
		user = u
		return nil
	})

	switch {
	case err == nil:
		return user, nil
	case errors.Is(err, common.ErrorNotFound):
		return nil, common.ErrorNotFound
	default:
		return nil, fmt.Errorf("%w: %w", common.ErrorStoreUnavailable, err)
	}
}

func (s *SQLStore) Ping(ctx context.Context) error {
	if err := s.db.PingContext(ctx); err != nil {
		return fmt.Errorf("%w: %w", common.ErrorStoreUnavailable, err)
	}
	return nil
}

// Provision inserts the users whose identifiers are missing, all in one
// transaction. Existing records are left untouched.
func (s *SQLStore) Provision(ctx context.Context, users []models.User) (int, error) {
	created := 0

	err := dbx.WithTx(ctx, s.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		repo := s.repos.Users(tx)
		for i := range users {
			_, err := repo.GetUserByIdentifier(ctx, users[i].Identifier)
			if err == nil {
				continue
			}
			if !errors.Is(err, common.ErrorNotFound) {
				return err
			}

			u := users[i]
			if _, err := repo.Create(ctx, &u); err != nil {
				return err
			}
			created++
		}
		return nil
	})
	if err != nil {
		return 0, fmt.Errorf("%w: %w", common.ErrorStoreUnavailable, err)
	}

	return created, nil
}

func (s *SQLStore) Close() error {
	return s.db.Close()
}
