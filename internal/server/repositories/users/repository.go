package users

import (
	"context"

	"github.com/dmitrijs2005/bookmarks/internal/server/models"
)

// Repository is the credential store. Email uniqueness is enforced here, by
// the database constraint, and surfaced as common.ErrDuplicateAccount.
type Repository interface {
	Create(ctx context.Context, user *models.User) (*models.User, error)
	GetUserByEmail(ctx context.Context, email string) (*models.User, error)
	GetUserByID(ctx context.Context, id string) (*models.User, error)
	Update(ctx context.Context, user *models.User) (*models.User, error)
}
