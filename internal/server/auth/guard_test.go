package auth

import (
	"context"
	"testing"
	"time"

	"github.com/dmitrijs2005/bookmarks/internal/common"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeVerifier struct {
	calls  int
	claims Claims
	err    error
}

func (f *fakeVerifier) Verify(string) (Claims, error) {
	f.calls++
	return f.claims, f.err
}

func TestGuard_Authenticate(t *testing.T) {
	tests := []struct {
		name       string
		header     string
		verifier   *fakeVerifier
		want       Identity
		wantErr    error
		wantCalled bool
	}{
		{
			name:     "missing header",
			header:   "",
			verifier: &fakeVerifier{},
			wantErr:  common.ErrUnauthenticated,
		},
		{
			name:     "blank header",
			header:   "   ",
			verifier: &fakeVerifier{},
			wantErr:  common.ErrUnauthenticated,
		},
		{
			name:     "basic scheme",
			header:   "Basic dXNlcjpwdw==",
			verifier: &fakeVerifier{},
			wantErr:  common.ErrInvalidToken,
		},
		{
			name:     "scheme without token",
			header:   "Bearer ",
			verifier: &fakeVerifier{},
			wantErr:  common.ErrInvalidToken,
		},
		{
			name:     "token without scheme",
			header:   "eyJhbGciOi",
			verifier: &fakeVerifier{},
			wantErr:  common.ErrInvalidToken,
		},
		{
			name:       "verifier rejects",
			header:     "Bearer abc",
			verifier:   &fakeVerifier{err: common.ErrTokenExpired},
			wantErr:    common.ErrTokenExpired,
			wantCalled: true,
		},
		{
			name:       "valid",
			header:     "Bearer abc",
			verifier:   &fakeVerifier{claims: Claims{UserID: "u1", Email: "a@b.com"}},
			want:       Identity{UserID: "u1", Email: "a@b.com"},
			wantCalled: true,
		},
		{
			name:       "scheme is case insensitive",
			header:     "bearer abc",
			verifier:   &fakeVerifier{claims: Claims{UserID: "u1"}},
			want:       Identity{UserID: "u1"},
			wantCalled: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := NewGuard(tt.verifier).Authenticate(tt.header)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				assert.Equal(t, Identity{}, got)
			} else {
				require.NoError(t, err)
				assert.Equal(t, tt.want, got)
			}
			assert.Equal(t, tt.wantCalled, tt.verifier.calls == 1)
		})
	}
}

func TestGuard_WithRealVerifier(t *testing.T) {
	secret := []byte("guard-secret")
	tok, err := NewTokenIssuer(secret, time.Minute).Issue(Claims{UserID: "u-7", Email: "x@y.z"})
	require.NoError(t, err)

	id, err := NewGuard(NewTokenVerifier(secret)).Authenticate("Bearer " + tok)
	require.NoError(t, err)
	assert.Equal(t, Identity{UserID: "u-7", Email: "x@y.z"}, id)
}

func TestIdentityContext(t *testing.T) {
	_, ok := IdentityFromContext(context.Background())
	assert.False(t, ok)

	want := Identity{UserID: "u1", Email: "a@b.com"}
	ctx := WithIdentity(context.Background(), want)

	got, ok := IdentityFromContext(ctx)
	require.True(t, ok)
	assert.Equal(t, want, got)
}
