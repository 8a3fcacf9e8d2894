package services

import (
	"context"
	"database/sql"
	"errors"

	"github.com/dmitrijs2005/bookmarks/internal/common"
	"github.com/dmitrijs2005/bookmarks/internal/dbx"
	"github.com/dmitrijs2005/bookmarks/internal/logging"
	"github.com/dmitrijs2005/bookmarks/internal/server/models"
	"github.com/dmitrijs2005/bookmarks/internal/server/repositories/repomanager"
)

// BookmarkService manages bookmarks on behalf of their owner. A bookmark
// that belongs to someone else is reported as common.ErrorNotFound.
type BookmarkService struct {
	db          *sql.DB
	repomanager repomanager.RepositoryManager
	logger      logging.Logger
}

func NewBookmarkService(db *sql.DB, m repomanager.RepositoryManager, l logging.Logger) *BookmarkService {
	return &BookmarkService{
		db:          db,
		repomanager: m,
		logger:      l.With("module", "bookmark-service"),
	}
}

func (s *BookmarkService) List(ctx context.Context, userID string) ([]*models.Bookmark, error) {
	list, err := s.repomanager.Bookmarks(s.db).List(ctx, userID)
	if err != nil {
		return nil, s.mapErr(ctx, "error listing bookmarks", err)
	}
	return list, nil
}

func (s *BookmarkService) Get(ctx context.Context, userID, id string) (*models.Bookmark, error) {
	b, err := s.repomanager.Bookmarks(s.db).Get(ctx, userID, id)
	if err != nil {
		return nil, s.mapErr(ctx, "error loading bookmark", err)
	}
	return b, nil
}

func (s *BookmarkService) Create(ctx context.Context, userID string, in NewBookmark) (*models.Bookmark, error) {
	if err := validateStruct(in); err != nil {
		return nil, err
	}

	b, err := s.repomanager.Bookmarks(s.db).Create(ctx, &models.Bookmark{
		UserID:      userID,
		Title:       in.Title,
		Link:        in.Link,
		Description: in.Description,
	})
	if err != nil {
		return nil, s.mapErr(ctx, "error creating bookmark", err)
	}
	return b, nil
}

// Edit loads the owner's bookmark and writes the merged result in one
// transaction.
func (s *BookmarkService) Edit(ctx context.Context, userID, id string, ch BookmarkChanges) (*models.Bookmark, error) {
	if err := validateStruct(ch); err != nil {
		return nil, err
	}

	var updated *models.Bookmark
	err := dbx.WithTx(ctx, s.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		repo := s.repomanager.Bookmarks(tx)

		b, err := repo.Get(ctx, userID, id)
		if err != nil {
			return err
		}

		models.BookmarkPatch{Title: ch.Title, Link: ch.Link, Description: ch.Description}.Apply(b)

		updated, err = repo.Update(ctx, b)
		return err
	})
	if err != nil {
		return nil, s.mapErr(ctx, "error updating bookmark", err)
	}
	return updated, nil
}

func (s *BookmarkService) Delete(ctx context.Context, userID, id string) error {
	if err := s.repomanager.Bookmarks(s.db).Delete(ctx, userID, id); err != nil {
		return s.mapErr(ctx, "error deleting bookmark", err)
	}
	return nil
}

func (s *BookmarkService) mapErr(ctx context.Context, msg string, err error) error {
	if errors.Is(err, common.ErrorNotFound) {
		return common.ErrorNotFound
	}
	s.logger.Error(ctx, msg, "error", err)
	return common.ErrorInternal
}
