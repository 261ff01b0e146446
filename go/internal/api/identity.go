package api

import (
	"context"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/pgdem/desporto/go/internal/models"
)

// UserHeader carries the id of the acting user
const UserHeader = "X-User-ID"

const userKey = "pgdem.user"

// UserLookup resolves a user id to the stored profile
type UserLookup interface {
	GetUser(ctx context.Context, id string) (*models.User, error)
}

// RequireUser resolves the X-User-ID header and stores the user on the context.
// Requests without a known user are rejected with 401.
func RequireUser(users UserLookup) gin.HandlerFunc {
	return func(c *gin.Context) {
		id := c.GetHeader(UserHeader)
		if id == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "missing " + UserHeader + " header"})
			return
		}

		user, err := users.GetUser(c.Request.Context(), id)
		if err != nil {
			if errors.Is(err, models.ErrNotFound) {
				c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "unknown user"})
				return
			}
			WriteError(c, err)
			return
		}

		c.Set(userKey, *user)
		c.Next()
	}
}

// CurrentUser returns the user set by RequireUser. The zero User is returned
// on routes mounted without the middleware and is denied by every policy check.
func CurrentUser(c *gin.Context) models.User {
	v, ok := c.Get(userKey)
	if !ok {
		return models.User{}
	}
	u, _ := v.(models.User)
	return u
}

// WithUser sets u as the current user; used by tests that mount handlers directly
func WithUser(u models.User) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Set(userKey, u)
		c.Next()
	}
}
