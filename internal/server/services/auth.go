// Package services contains server-side business logic. AuthService signs
// users up and in, UserService manages the caller's profile and
// BookmarkService manages the caller's bookmarks.
package services

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/dmitrijs2005/bookmarks/internal/common"
	"github.com/dmitrijs2005/bookmarks/internal/logging"
	"github.com/dmitrijs2005/bookmarks/internal/server/auth"
	"github.com/dmitrijs2005/bookmarks/internal/server/models"
	"github.com/dmitrijs2005/bookmarks/internal/server/repositories/repomanager"
)

// TokenIssuer is satisfied by *auth.TokenIssuer.
type TokenIssuer interface {
	Issue(c auth.Claims) (string, error)
}

// AuthResult is returned by a successful sign-up or sign-in.
type AuthResult struct {
	AccessToken string
	User        *models.User
}

type AuthService struct {
	db          *sql.DB
	repomanager repomanager.RepositoryManager
	hasher      auth.PasswordHasher
	issuer      TokenIssuer
	logger      logging.Logger
}

func NewAuthService(db *sql.DB, m repomanager.RepositoryManager, h auth.PasswordHasher, i TokenIssuer, l logging.Logger) *AuthService {
	return &AuthService{
		db:          db,
		repomanager: m,
		hasher:      h,
		issuer:      i,
		logger:      l.With("module", "auth-service"),
	}
}

// SignUp hashes the password and inserts the credential in one statement.
// A taken email yields common.ErrDuplicateAccount and no token.
func (s *AuthService) SignUp(ctx context.Context, email, password string) (*AuthResult, error) {
	email, err := normalizeCredentials(email, password)
	if err != nil {
		return nil, err
	}

	hash, err := s.hasher.Hash(ctx, password)
	if err != nil {
		if errors.Is(err, common.ErrorValidation) {
			return nil, err
		}
		s.logger.Error(ctx, "error hashing password", "error", err)
		return nil, common.ErrorInternal
	}

	repo := s.repomanager.Users(s.db)
	user, err := repo.Create(ctx, &models.User{Email: email, PasswordHash: hash})
	if err != nil {
		if errors.Is(err, common.ErrDuplicateAccount) {
			return nil, common.ErrDuplicateAccount
		}
		s.logger.Error(ctx, "error creating user", "error", err)
		return nil, common.ErrorInternal
	}

	return s.issue(ctx, user)
}

// SignIn checks the password against the stored hash. An unknown email and
// a wrong password both yield common.ErrInvalidCredentials after the same
// amount of hashing work.
func (s *AuthService) SignIn(ctx context.Context, email, password string) (*AuthResult, error) {
	email, err := normalizeCredentials(email, password)
	if err != nil {
		return nil, err
	}

	repo := s.repomanager.Users(s.db)
	user, err := repo.GetUserByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			s.hasher.VerifyDummy(ctx, password)
			return nil, common.ErrInvalidCredentials
		}
		s.logger.Error(ctx, "error looking up user", "error", err)
		return nil, common.ErrorInternal
	}

	if !s.hasher.Verify(ctx, password, user.PasswordHash) {
		// A deadline hit mid-compare is a server failure, not a bad password.
		if err := ctx.Err(); err != nil {
			s.logger.Warn(ctx, "sign-in aborted", "error", err)
			return nil, common.ErrorInternal
		}
		return nil, common.ErrInvalidCredentials
	}

	return s.issue(ctx, user)
}

func (s *AuthService) issue(ctx context.Context, user *models.User) (*AuthResult, error) {
	token, err := s.issuer.Issue(auth.Claims{UserID: user.ID, Email: user.Email})
	if err != nil {
		s.logger.Error(ctx, "error issuing token", "error", err)
		return nil, common.ErrorInternal
	}
	return &AuthResult{AccessToken: token, User: user}, nil
}

// NormalizeEmail trims surrounding space and lowercases, so lookups and the
// unique constraint treat "A@B.com" and "a@b.com" as one account.
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

func normalizeCredentials(email, password string) (string, error) {
	email = NormalizeEmail(email)
	if email == "" || password == "" {
		return "", fmt.Errorf("%w: email and password are required", common.ErrorValidation)
	}
	if err := validate.Var(email, "email"); err != nil {
		return "", fmt.Errorf("%w: malformed email", common.ErrorValidation)
	}
	return email, nil
}
