package bookmarks

import (
	"context"

	"github.com/dmitrijs2005/bookmarks/internal/server/models"
)

// Repository stores bookmarks. Every method takes the owner's id and never
// returns or touches rows belonging to anyone else.
type Repository interface {
	Create(ctx context.Context, b *models.Bookmark) (*models.Bookmark, error)
	List(ctx context.Context, userID string) ([]*models.Bookmark, error)
	Get(ctx context.Context, userID, id string) (*models.Bookmark, error)
	Update(ctx context.Context, b *models.Bookmark) (*models.Bookmark, error)
	Delete(ctx context.Context, userID, id string) error
}
