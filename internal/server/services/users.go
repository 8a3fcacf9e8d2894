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

// UserService reads and edits the profile of the authenticated user.
type UserService struct {
	db          *sql.DB
	repomanager repomanager.RepositoryManager
	logger      logging.Logger
}

func NewUserService(db *sql.DB, m repomanager.RepositoryManager, l logging.Logger) *UserService {
	return &UserService{
		db:          db,
		repomanager: m,
		logger:      l.With("module", "user-service"),
	}
}

// Me returns the user behind userID. A token that outlived its account
// yields common.ErrorNotFound.
func (s *UserService) Me(ctx context.Context, userID string) (*models.User, error) {
	user, err := s.repomanager.Users(s.db).GetUserByID(ctx, userID)
	if err != nil {
		return nil, s.mapErr(ctx, "error loading user", err)
	}
	return user, nil
}

// Edit applies the non-nil fields of ch. A new email is normalized and may
// collide with another account, yielding common.ErrDuplicateAccount.
func (s *UserService) Edit(ctx context.Context, userID string, ch ProfileChanges) (*models.User, error) {
	if ch.Email != nil {
		e := NormalizeEmail(*ch.Email)
		ch.Email = &e
	}
	if err := validateStruct(ch); err != nil {
		return nil, err
	}

	var updated *models.User
	err := dbx.WithTx(ctx, s.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		repo := s.repomanager.Users(tx)

		user, err := repo.GetUserByID(ctx, userID)
		if err != nil {
			return err
		}

		models.UserPatch{Email: ch.Email, FirstName: ch.FirstName, LastName: ch.LastName}.Apply(user)

		updated, err = repo.Update(ctx, user)
		return err
	})
	if err != nil {
		return nil, s.mapErr(ctx, "error updating user", err)
	}
	return updated, nil
}

func (s *UserService) mapErr(ctx context.Context, msg string, err error) error {
	switch {
	case errors.Is(err, common.ErrorNotFound):
		return common.ErrorNotFound
	case errors.Is(err, common.ErrDuplicateAccount):
		return common.ErrDuplicateAccount
	default:
		s.logger.Error(ctx, msg, "error", err)
		return common.ErrorInternal
	}
}
