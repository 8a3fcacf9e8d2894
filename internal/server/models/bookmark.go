package models

import "time"

// Bookmark is a link saved by one user. UserID is the owner and every
// query is scoped by it.
type Bookmark struct {
	ID          string
	UserID      string
	Title       string
	Link        string
	Description *string
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// BookmarkPatch carries optional bookmark changes.
type BookmarkPatch struct {
	Title       *string
	Link        *string
	Description *string
}

func (p BookmarkPatch) Apply(b *Bookmark) {
	if p.Title != nil {
		b.Title = *p.Title
	}
	if p.Link != nil {
		b.Link = *p.Link
	}
	if p.Description != nil {
		b.Description = p.Description
	}
}
