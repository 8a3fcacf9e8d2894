package auth

import (
	"context"
	"strings"

	"github.com/dmitrijs2005/bookmarks/internal/common"
)

// Identity is the authenticated principal of one request.
type Identity struct {
	UserID string
	Email  string
}

// Verifier is satisfied by *TokenVerifier.
type Verifier interface {
	Verify(token string) (Claims, error)
}

// Guard resolves an Authorization header into an Identity.
type Guard struct {
	verifier Verifier
}

func NewGuard(v Verifier) *Guard {
	return &Guard{verifier: v}
}

// Authenticate expects "Bearer <token>". A missing header yields
// common.ErrUnauthenticated without consulting the verifier; any other
// scheme or an empty token yields common.ErrInvalidToken.
func (g *Guard) Authenticate(header string) (Identity, error) {
	header = strings.TrimSpace(header)
	if header == "" {
		return Identity{}, common.ErrUnauthenticated
	}

	scheme, token, ok := strings.Cut(header, " ")
	token = strings.TrimSpace(token)
	if !ok || !strings.EqualFold(scheme, common.BearerScheme) || token == "" {
		return Identity{}, common.ErrInvalidToken
	}

	claims, err := g.verifier.Verify(token)
	if err != nil {
		return Identity{}, err
	}

	return Identity{UserID: claims.UserID, Email: claims.Email}, nil
}

type ctxKey string

const identityKey ctxKey = "bookmarks.auth.identity"

// WithIdentity returns a child context carrying id for the rest of the
// request.
func WithIdentity(ctx context.Context, id Identity) context.Context {
	return context.WithValue(ctx, identityKey, id)
}

func IdentityFromContext(ctx context.Context) (Identity, bool) {
	id, ok := ctx.Value(identityKey).(Identity)
	return id, ok
}
