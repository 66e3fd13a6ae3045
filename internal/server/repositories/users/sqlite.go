package users

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/dmitrijs2005/gatekeeper/internal/common"
	"github.com/dmitrijs2005/gatekeeper/internal/dbx"
	"github.com/dmitrijs2005/gatekeeper/internal/server/models"
)

// SQLiteRepository is the users repository for single-node deployments
// backed by modernc.org/sqlite.
type SQLiteRepository struct {
	db dbx.DBTX
}

func NewSQLiteRepository(db dbx.DBTX) *SQLiteRepository {
	return &SQLiteRepository{db: db}
}

func (r *SQLiteRepository) Create(ctx context.Context, user *models.User) (*models.User, error) {
	query := `INSERT INTO users (identifier, verifier, display_name)
		VALUES (?, ?, ?)
		RETURNING id, created_at`

	var created sqliteTime
	err := r.db.QueryRowContext(ctx, query,
		user.Identifier, user.Verifier, user.DisplayName).Scan(&user.ID, &created)
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	user.CreatedAt = created.t
	return user, nil
}

func (r *SQLiteRepository) GetUserByIdentifier(ctx context.Context, identifier string) (*models.User, error) {
	query := `SELECT id, identifier, verifier, display_name, created_at FROM users
		WHERE identifier = ?`

	user := &models.User{}
	var created sqliteTime
	err := r.db.QueryRowContext(ctx, query, identifier).
		Scan(&user.ID, &user.Identifier, &user.Verifier, &user.DisplayName, &created)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrorNotFound
		}
		return nil, fmt.Errorf("db error: %w", err)
	}
	user.CreatedAt = created.t
	return user, nil
}

// sqliteTime scans CURRENT_TIMESTAMP values, which the driver may hand back
// either as time.Time or as text depending on the column's declared type.
type sqliteTime struct {
	t time.Time
}

func (s *sqliteTime) Scan(v any) error {
	switch x := v.(type) {
	case time.Time:
		s.t = x
	case string:
		return s.parse(x)
	case []byte:
		return s.parse(string(x))
	case int64:
		s.t = time.Unix(x, 0).UTC()
	case nil:
		s.t = time.Time{}
	default:
		return fmt.Errorf("unsupported timestamp type %T", v)
	}
	return nil
}

func (s *sqliteTime) parse(v string) error {
	for _, layout := range []string{"2006-01-02 15:04:05", time.RFC3339Nano, "2006-01-02 15:04:05.999999999-07:00"} {
		if t, err := time.Parse(layout, v); err == nil {
			s.t = t.UTC()
			return nil
		}
	}
	return fmt.Errorf("unparseable timestamp %q", v)
}
