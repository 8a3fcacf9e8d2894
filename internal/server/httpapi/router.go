// Package httpapi is the JSON-over-HTTP surface: sign-up and sign-in, the
// caller's profile and bookmarks behind the bearer-token guard, and a
// health probe.
package httpapi

import (
	"time"

	"github.com/dmitrijs2005/bookmarks/internal/logging"
	"github.com/gin-gonic/gin"
)

// Deps are the collaborators the router dispatches to.
type Deps struct {
	Auth           AuthService
	Users          UserService
	Bookmarks      BookmarkService
	Guard          Authenticator
	DB             Pinger
	Logger         logging.Logger
	RequestTimeout time.Duration
}

// NewRouter constructs the Gin engine with routes wired.
func NewRouter(d Deps) *gin.Engine {
	logger := d.Logger.With("module", "http")
	h := &handler{
		auth:      d.Auth,
		users:     d.Users,
		bookmarks: d.Bookmarks,
		db:        d.DB,
		logger:    logger,
	}
	guarded := func(fn AuthedHandler) gin.HandlerFunc { return authed(d.Guard, fn) }

	r := gin.New()
	r.Use(
		RequestIDMiddleware(),
		LoggingMiddleware(logger),
		RecoveryMiddleware(logger),
		TimeoutMiddleware(d.RequestTimeout),
	)

	r.GET("/healthz", h.healthz)

	a := r.Group("/auth")
	{
		a.POST("/sign-up", h.signUp)
		a.POST("/sign-in", h.signIn)
	}

	u := r.Group("/users")
	{
		u.GET("/me", guarded(h.me))
		u.PATCH("", guarded(h.editUser))
	}

	b := r.Group("/bookmarks")
	{
		b.GET("", guarded(h.listBookmarks))
		b.GET("/:id", guarded(h.getBookmark))
		b.POST("", guarded(h.createBookmark))
		b.PATCH("", guarded(h.editBookmark))
		b.PATCH("/:id", guarded(h.editBookmark))
		b.DELETE("", guarded(h.deleteBookmark))
		b.DELETE("/:id", guarded(h.deleteBookmark))
	}

	return r
}
