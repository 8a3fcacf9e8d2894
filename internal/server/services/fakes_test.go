package services

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/dmitrijs2005/bookmarks/internal/common"
	"github.com/dmitrijs2005/bookmarks/internal/dbx"
	"github.com/dmitrijs2005/bookmarks/internal/server/auth"
	"github.com/dmitrijs2005/bookmarks/internal/server/models"
	"github.com/dmitrijs2005/bookmarks/internal/server/repositories/bookmarks"
	"github.com/dmitrijs2005/bookmarks/internal/server/repositories/users"
)

var errBoom = errors.New("boom")

func newSQLMockDB(t *testing.T) (*sql.DB, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New error: %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })
	return db, mock
}

// fakeUsersRepo is an in-memory credential store keyed by email.
type fakeUsersRepo struct {
	mu      sync.Mutex
	byEmail map[string]*models.User
	seq     int

	createErr error
	getErr    error
	updateErr error
}

func newFakeUsersRepo() *fakeUsersRepo {
	return &fakeUsersRepo{byEmail: map[string]*models.User{}}
}

func (f *fakeUsersRepo) Create(_ context.Context, u *models.User) (*models.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.createErr != nil {
		return nil, f.createErr
	}
	if _, ok := f.byEmail[u.Email]; ok {
		return nil, common.ErrDuplicateAccount
	}
	f.seq++
	cp := *u
	cp.ID = fmt.Sprintf("u%d", f.seq)
	cp.CreatedAt = time.Now()
	cp.UpdatedAt = cp.CreatedAt
	f.byEmail[cp.Email] = &cp
	out := cp
	return &out, nil
}

func (f *fakeUsersRepo) GetUserByEmail(_ context.Context, email string) (*models.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.getErr != nil {
		return nil, f.getErr
	}
	u, ok := f.byEmail[email]
	if !ok {
		return nil, common.ErrorNotFound
	}
	out := *u
	return &out, nil
}

func (f *fakeUsersRepo) GetUserByID(_ context.Context, id string) (*models.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.getErr != nil {
		return nil, f.getErr
	}
	for _, u := range f.byEmail {
		if u.ID == id {
			out := *u
			return &out, nil
		}
	}
	return nil, common.ErrorNotFound
}

func (f *fakeUsersRepo) Update(_ context.Context, u *models.User) (*models.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.updateErr != nil {
		return nil, f.updateErr
	}
	var current *models.User
	for _, existing := range f.byEmail {
		if existing.ID == u.ID {
			current = existing
		}
	}
	if current == nil {
		return nil, common.ErrorNotFound
	}
	if other, ok := f.byEmail[u.Email]; ok && other.ID != u.ID {
		return nil, common.ErrDuplicateAccount
	}
	delete(f.byEmail, current.Email)
	cp := *u
	cp.UpdatedAt = time.Now()
	f.byEmail[cp.Email] = &cp
	out := cp
	return &out, nil
}

func (f *fakeUsersRepo) count() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.byEmail)
}

// fakeBookmarksRepo stores bookmarks in insertion order.
type fakeBookmarksRepo struct {
	mu    sync.Mutex
	items []*models.Bookmark
	seq   int

	err error
}

func (f *fakeBookmarksRepo) Create(_ context.Context, b *models.Bookmark) (*models.Bookmark, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.err != nil {
		return nil, f.err
	}
	f.seq++
	cp := *b
	cp.ID = fmt.Sprintf("b%d", f.seq)
	f.items = append(f.items, &cp)
	out := cp
	return &out, nil
}

func (f *fakeBookmarksRepo) List(_ context.Context, userID string) ([]*models.Bookmark, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.err != nil {
		return nil, f.err
	}
	out := []*models.Bookmark{}
	for _, b := range f.items {
		if b.UserID == userID {
			cp := *b
			out = append(out, &cp)
		}
	}
	return out, nil
}

func (f *fakeBookmarksRepo) Get(_ context.Context, userID, id string) (*models.Bookmark, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.err != nil {
		return nil, f.err
	}
	for _, b := range f.items {
		if b.ID == id && b.UserID == userID {
			cp := *b
			return &cp, nil
		}
	}
	return nil, common.ErrorNotFound
}

func (f *fakeBookmarksRepo) Update(_ context.Context, b *models.Bookmark) (*models.Bookmark, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.err != nil {
		return nil, f.err
	}
	for i, existing := range f.items {
		if existing.ID == b.ID && existing.UserID == b.UserID {
			cp := *b
			f.items[i] = &cp
			out := cp
			return &out, nil
		}
	}
	return nil, common.ErrorNotFound
}

func (f *fakeBookmarksRepo) Delete(_ context.Context, userID, id string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.err != nil {
		return f.err
	}
	for i, b := range f.items {
		if b.ID == id && b.UserID == userID {
			f.items = append(f.items[:i], f.items[i+1:]...)
			return nil
		}
	}
	return common.ErrorNotFound
}

type fakeRepoManager struct {
	u *fakeUsersRepo
	b *fakeBookmarksRepo
}

func newFakeRepoManager() *fakeRepoManager {
	return &fakeRepoManager{u: newFakeUsersRepo(), b: &fakeBookmarksRepo{}}
}

func (m *fakeRepoManager) RunMigrations(context.Context, *sql.DB) error { return nil }
func (m *fakeRepoManager) Users(dbx.DBTX) users.Repository             { return m.u }
func (m *fakeRepoManager) Bookmarks(dbx.DBTX) bookmarks.Repository     { return m.b }

// fakeHasher "hashes" by prefixing, and counts dummy verifications.
type fakeHasher struct {
	mu        sync.Mutex
	hashErr   error
	dummyRuns int
	verifies  int
}

func (h *fakeHasher) Hash(_ context.Context, plaintext string) (string, error) {
	if h.hashErr != nil {
		return "", h.hashErr
	}
	return "hashed:" + plaintext, nil
}

func (h *fakeHasher) Verify(ctx context.Context, plaintext, hash string) bool {
	h.mu.Lock()
	h.verifies++
	h.mu.Unlock()
	return ctx.Err() == nil && hash == "hashed:"+plaintext
}

func (h *fakeHasher) VerifyDummy(context.Context, string) {
	h.mu.Lock()
	h.dummyRuns++
	h.mu.Unlock()
}

type fakeIssuer struct {
	err    error
	issued []auth.Claims
}

func (i *fakeIssuer) Issue(c auth.Claims) (string, error) {
	if i.err != nil {
		return "", i.err
	}
	i.issued = append(i.issued, c)
	return fmt.Sprintf("token-%d-%s", len(i.issued), c.UserID), nil
}
