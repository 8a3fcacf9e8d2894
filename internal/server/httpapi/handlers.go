package httpapi

import (
	"context"
	"net/http"

	"github.com/dmitrijs2005/bookmarks/internal/logging"
	"github.com/dmitrijs2005/bookmarks/internal/server/auth"
	"github.com/dmitrijs2005/bookmarks/internal/server/models"
	"github.com/dmitrijs2005/bookmarks/internal/server/services"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// AuthService is satisfied by *services.AuthService.
type AuthService interface {
	SignUp(ctx context.Context, email, password string) (*services.AuthResult, error)
	SignIn(ctx context.Context, email, password string) (*services.AuthResult, error)
}

// UserService is satisfied by *services.UserService.
type UserService interface {
	Me(ctx context.Context, userID string) (*models.User, error)
	Edit(ctx context.Context, userID string, ch services.ProfileChanges) (*models.User, error)
}

// BookmarkService is satisfied by *services.BookmarkService.
type BookmarkService interface {
	List(ctx context.Context, userID string) ([]*models.Bookmark, error)
	Get(ctx context.Context, userID, id string) (*models.Bookmark, error)
	Create(ctx context.Context, userID string, in services.NewBookmark) (*models.Bookmark, error)
	Edit(ctx context.Context, userID, id string, ch services.BookmarkChanges) (*models.Bookmark, error)
	Delete(ctx context.Context, userID, id string) error
}

// Pinger is satisfied by *sql.DB.
type Pinger interface {
	PingContext(ctx context.Context) error
}

type handler struct {
	auth      AuthService
	users     UserService
	bookmarks BookmarkService
	db        Pinger
	logger    logging.Logger
}

func (h *handler) signUp(c *gin.Context) {
	var req credentialsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondValidation(c, "email and password are required")
		return
	}

	res, err := h.auth.SignUp(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	h.logger.Info(c.Request.Context(), "signed up", "user_id", res.User.ID)
	c.JSON(http.StatusCreated, tokenResponse{AccessToken: res.AccessToken})
}

func (h *handler) signIn(c *gin.Context) {
	var req credentialsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondValidation(c, "email and password are required")
		return
	}

	res, err := h.auth.SignIn(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, tokenResponse{AccessToken: res.AccessToken})
}

func (h *handler) me(c *gin.Context, id auth.Identity) {
	u, err := h.users.Me(c.Request.Context(), id.UserID)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, toUserResponse(u))
}

func (h *handler) editUser(c *gin.Context, id auth.Identity) {
	var req editUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondValidation(c, "invalid profile")
		return
	}

	u, err := h.users.Edit(c.Request.Context(), id.UserID, services.ProfileChanges{
		Email:     req.Email,
		FirstName: req.FirstName,
		LastName:  req.LastName,
	})
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, toUserResponse(u))
}

// listBookmarks returns every bookmark of the caller, or just one when the
// id query parameter is present.
func (h *handler) listBookmarks(c *gin.Context, id auth.Identity) {
	if _, ok := c.GetQuery("id"); ok {
		h.getBookmark(c, id)
		return
	}

	list, err := h.bookmarks.List(c.Request.Context(), id.UserID)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, toBookmarkResponses(list))
}

func (h *handler) getBookmark(c *gin.Context, id auth.Identity) {
	bookmarkID, ok := bookmarkIDParam(c)
	if !ok {
		return
	}

	b, err := h.bookmarks.Get(c.Request.Context(), id.UserID, bookmarkID)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, toBookmarkResponse(b))
}

func (h *handler) createBookmark(c *gin.Context, id auth.Identity) {
	var req createBookmarkRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondValidation(c, "title and a valid link are required")
		return
	}

	b, err := h.bookmarks.Create(c.Request.Context(), id.UserID, services.NewBookmark{
		Title:       req.Title,
		Link:        req.Link,
		Description: req.Description,
	})
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusCreated, toBookmarkResponse(b))
}

func (h *handler) editBookmark(c *gin.Context, id auth.Identity) {
	bookmarkID, ok := bookmarkIDParam(c)
	if !ok {
		return
	}

	var req editBookmarkRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondValidation(c, "invalid bookmark")
		return
	}

	b, err := h.bookmarks.Edit(c.Request.Context(), id.UserID, bookmarkID, services.BookmarkChanges{
		Title:       req.Title,
		Link:        req.Link,
		Description: req.Description,
	})
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, toBookmarkResponse(b))
}

func (h *handler) deleteBookmark(c *gin.Context, id auth.Identity) {
	bookmarkID, ok := bookmarkIDParam(c)
	if !ok {
		return
	}

	if err := h.bookmarks.Delete(c.Request.Context(), id.UserID, bookmarkID); err != nil {
		respondServiceError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func (h *handler) healthz(c *gin.Context) {
	if err := h.db.PingContext(c.Request.Context()); err != nil {
		h.logger.Warn(c.Request.Context(), "health check failed", "error", err)
		respondError(c, http.StatusServiceUnavailable, CodeUnavailable, "database unavailable")
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

// bookmarkIDParam reads the bookmark id from the path or the id query
// parameter and checks it is a UUID. On failure it responds 400.
func bookmarkIDParam(c *gin.Context) (string, bool) {
	raw := c.Param("id")
	if raw == "" {
		raw = c.Query("id")
	}

	id, err := uuid.Parse(raw)
	if err != nil {
		respondValidation(c, "bookmark id must be a UUID")
		return "", false
	}
	return id.String(), true
}
