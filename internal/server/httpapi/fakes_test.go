package httpapi

import (
	"context"
	"database/sql"
	"sync"
	"time"

	"github.com/dmitrijs2005/bookmarks/internal/common"
	"github.com/dmitrijs2005/bookmarks/internal/dbx"
	"github.com/dmitrijs2005/bookmarks/internal/server/models"
	"github.com/dmitrijs2005/bookmarks/internal/server/repositories/bookmarks"
	"github.com/dmitrijs2005/bookmarks/internal/server/repositories/users"
	"github.com/google/uuid"
)

// memStore backs both repositories in memory. The DBTX handed to the
// manager is ignored, so transactions only exercise Begin/Commit.
type memStore struct {
	mu        sync.Mutex
	users     map[string]*models.User
	bookmarks map[string]*models.Bookmark
}

func newMemStore() *memStore {
	return &memStore{users: map[string]*models.User{}, bookmarks: map[string]*models.Bookmark{}}
}

func (m *memStore) RunMigrations(context.Context, *sql.DB) error { return nil }
func (m *memStore) Users(dbx.DBTX) users.Repository             { return memUsers{m} }
func (m *memStore) Bookmarks(dbx.DBTX) bookmarks.Repository     { return memBookmarks{m} }

type memUsers struct{ *memStore }

func (r memUsers) Create(_ context.Context, u *models.User) (*models.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, existing := range r.users {
		if existing.Email == u.Email {
			return nil, common.ErrDuplicateAccount
		}
	}
	cp := *u
	cp.ID = uuid.NewString()
	cp.CreatedAt = time.Now().UTC()
	cp.UpdatedAt = cp.CreatedAt
	r.users[cp.ID] = &cp
	out := cp
	return &out, nil
}

func (r memUsers) GetUserByEmail(_ context.Context, email string) (*models.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, u := range r.users {
		if u.Email == email {
			out := *u
			return &out, nil
		}
	}
	return nil, common.ErrorNotFound
}

func (r memUsers) GetUserByID(_ context.Context, id string) (*models.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	u, ok := r.users[id]
	if !ok {
		return nil, common.ErrorNotFound
	}
	out := *u
	return &out, nil
}

func (r memUsers) Update(_ context.Context, u *models.User) (*models.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.users[u.ID]; !ok {
		return nil, common.ErrorNotFound
	}
	for _, other := range r.users {
		if other.ID != u.ID && other.Email == u.Email {
			return nil, common.ErrDuplicateAccount
		}
	}
	cp := *u
	cp.UpdatedAt = time.Now().UTC()
	r.users[cp.ID] = &cp
	out := cp
	return &out, nil
}

func (m *memStore) countUsers(email string) int {
	m.mu.Lock()
	defer m.mu.Unlock()
	n := 0
	for _, u := range m.users {
		if u.Email == email {
			n++
		}
	}
	return n
}

type memBookmarks struct{ *memStore }

func (r memBookmarks) Create(_ context.Context, b *models.Bookmark) (*models.Bookmark, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	cp := *b
	cp.ID = uuid.NewString()
	cp.CreatedAt = time.Now().UTC()
	cp.UpdatedAt = cp.CreatedAt
	r.bookmarks[cp.ID] = &cp
	out := cp
	return &out, nil
}

func (r memBookmarks) List(_ context.Context, userID string) ([]*models.Bookmark, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := []*models.Bookmark{}
	for _, b := range r.bookmarks {
		if b.UserID == userID {
			cp := *b
			out = append(out, &cp)
		}
	}
	return out, nil
}

func (r memBookmarks) Get(_ context.Context, userID, id string) (*models.Bookmark, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	b, ok := r.bookmarks[id]
	if !ok || b.UserID != userID {
		return nil, common.ErrorNotFound
	}
	out := *b
	return &out, nil
}

func (r memBookmarks) Update(_ context.Context, b *models.Bookmark) (*models.Bookmark, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	existing, ok := r.bookmarks[b.ID]
	if !ok || existing.UserID != b.UserID {
		return nil, common.ErrorNotFound
	}
	cp := *b
	cp.UpdatedAt = time.Now().UTC()
	r.bookmarks[cp.ID] = &cp
	out := cp
	return &out, nil
}

func (r memBookmarks) Delete(_ context.Context, userID, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	b, ok := r.bookmarks[id]
	if !ok || b.UserID != userID {
		return common.ErrorNotFound
	}
	delete(r.bookmarks, id)
	return nil
}
