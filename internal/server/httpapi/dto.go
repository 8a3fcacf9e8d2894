package httpapi

import (
	"time"

	"github.com/dmitrijs2005/bookmarks/internal/server/models"
)

type credentialsRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required,max=72"`
}

type tokenResponse struct {
	AccessToken string `json:"access_token"`
}

type userResponse struct {
	ID        string    `json:"id"`
	Email     string    `json:"email"`
	FirstName *string   `json:"firstName"`
	LastName  *string   `json:"lastName"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

func toUserResponse(u *models.User) userResponse {
	return userResponse{
		ID:        u.ID,
		Email:     u.Email,
		FirstName: u.FirstName,
		LastName:  u.LastName,
		CreatedAt: u.CreatedAt,
		UpdatedAt: u.UpdatedAt,
	}
}

type editUserRequest struct {
	Email     *string `json:"email" binding:"omitempty,email"`
	FirstName *string `json:"firstName" binding:"omitempty,max=100"`
	LastName  *string `json:"lastName" binding:"omitempty,max=100"`
}

type createBookmarkRequest struct {
	Title       string  `json:"title" binding:"required,max=500"`
	Link        string  `json:"link" binding:"required,url,max=2048"`
	Description *string `json:"description" binding:"omitempty,max=5000"`
}

type editBookmarkRequest struct {
	Title       *string `json:"title" binding:"omitempty,min=1,max=500"`
	Link        *string `json:"link" binding:"omitempty,url,max=2048"`
	Description *string `json:"description" binding:"omitempty,max=5000"`
}

type bookmarkResponse struct {
	ID          string    `json:"id"`
	UserID      string    `json:"userId"`
	Title       string    `json:"title"`
	Link        string    `json:"link"`
	Description *string   `json:"description"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

func toBookmarkResponse(b *models.Bookmark) bookmarkResponse {
	return bookmarkResponse{
		ID:          b.ID,
		UserID:      b.UserID,
		Title:       b.Title,
		Link:        b.Link,
		Description: b.Description,
		CreatedAt:   b.CreatedAt,
		UpdatedAt:   b.UpdatedAt,
	}
}

func toBookmarkResponses(list []*models.Bookmark) []bookmarkResponse {
	out := make([]bookmarkResponse, 0, len(list))
	for _, b := range list {
		out = append(out, toBookmarkResponse(b))
	}
	return out
}
