package auth

import (
	"context"
	"errors"
	"fmt"

	"github.com/dmitrijs2005/bookmarks/internal/common"
	"github.com/dmitrijs2005/bookmarks/internal/shared"
	"golang.org/x/crypto/bcrypt"
)

// PasswordHasher turns plaintext passwords into salted one-way hashes and
// checks candidates against them.
type PasswordHasher interface {
	Hash(ctx context.Context, plaintext string) (string, error)
	Verify(ctx context.Context, plaintext, hash string) bool
	// VerifyDummy spends the same work as Verify against a throwaway hash and
	// always reports false. It keeps unknown-account sign-ins as slow as
	// wrong-password ones.
	VerifyDummy(ctx context.Context, plaintext string)
}

// BcryptHasher implements PasswordHasher with bcrypt. Hashing runs off the
// caller's goroutine so a cancelled context returns immediately.
type BcryptHasher struct {
	cost  int
	dummy []byte
}

func NewBcryptHasher(cost int) (*BcryptHasher, error) {
	dummy, err := bcrypt.GenerateFromPassword([]byte("bookmarks-dummy-password"), cost)
	if err != nil {
		return nil, fmt.Errorf("bcrypt init: %w", err)
	}
	return &BcryptHasher{cost: cost, dummy: dummy}, nil
}

type hashResult struct {
	hash []byte
	err  error
}

// Hash returns a bcrypt hash with a fresh random salt. Passwords longer than
// bcrypt's 72-byte limit are reported as common.ErrorValidation.
func (h *BcryptHasher) Hash(ctx context.Context, plaintext string) (string, error) {
	res, err := await(ctx, func() hashResult {
		pw := []byte(plaintext)
		defer shared.WipeByteArray(pw)
		hash, err := bcrypt.GenerateFromPassword(pw, h.cost)
		return hashResult{hash: hash, err: err}
	})
	if err != nil {
		return "", err
	}
	if res.err != nil {
		if errors.Is(res.err, bcrypt.ErrPasswordTooLong) {
			return "", fmt.Errorf("%w: password too long", common.ErrorValidation)
		}
		return "", fmt.Errorf("bcrypt: %w", res.err)
	}
	return string(res.hash), nil
}

// Verify reports whether plaintext matches hash. A malformed hash or a
// cancelled context counts as a mismatch.
func (h *BcryptHasher) Verify(ctx context.Context, plaintext, hash string) bool {
	ok, err := await(ctx, func() bool {
		pw := []byte(plaintext)
		defer shared.WipeByteArray(pw)
		return bcrypt.CompareHashAndPassword([]byte(hash), pw) == nil
	})
	return err == nil && ok
}

func (h *BcryptHasher) VerifyDummy(ctx context.Context, plaintext string) {
	_ = h.Verify(ctx, plaintext, string(h.dummy))
}

// await runs fn in its own goroutine and waits for it or for ctx, whichever
// comes first. fn keeps running after a cancellation; its result is dropped.
func await[T any](ctx context.Context, fn func() T) (T, error) {
	var zero T
	if err := ctx.Err(); err != nil {
		return zero, err
	}

	done := make(chan T, 1)
	go func() { done <- fn() }()

	select {
	case v := <-done:
		return v, nil
	case <-ctx.Done():
		return zero, ctx.Err()
	}
}
