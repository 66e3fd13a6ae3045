// Package users provides the SQL repositories over the users table: lookup
// by identifier for the auth pipeline and inserts for provisioning.
package users

import (
	"context"

	"github.com/dmitrijs2005/gatekeeper/internal/server/models"
)

// Repository is implemented for each supported SQL dialect.
type Repository interface {
	Create(ctx context.Context, user *models.User) (*models.User, error)
	GetUserByIdentifier(ctx context.Context, identifier string) (*models.User, error)
}
