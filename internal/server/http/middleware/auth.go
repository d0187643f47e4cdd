package middleware

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/polkiloo/papermill/internal/domain/model"
	pkgAuth "github.com/polkiloo/papermill/internal/pkg/auth"
)

const (
	// ActorContextKey is a gin context key for the authenticated model.Actor.
	ActorContextKey = "actor"
	authCookieName  = "papermill_token"
)

// TokenParser resolves an auth token to the actor it was issued for.
type TokenParser interface {
	ParseToken(token string) (model.Actor, error)
}

// AuthRequired ensures user is authenticated before accessing handler.
func AuthRequired(parser TokenParser) gin.HandlerFunc {
	return func(c *gin.Context) {
		token := extractToken(c)
		if token == "" {
			abortJSON(c, http.StatusUnauthorized, "unauthorized", "authentication required")
			return
		}

		actor, err := parser.ParseToken(token)
		if err != nil {
			if errors.Is(err, pkgAuth.ErrInvalidToken) {
				abortJSON(c, http.StatusUnauthorized, "unauthorized", "invalid auth token")
				return
			}
			abortJSON(c, http.StatusInternalServerError, "unexpected", "internal server error")
			return
		}

		c.Set(ActorContextKey, actor)
		c.Next()
	}
}

// RequireAdmin rejects actors without administrator capability. It must run after AuthRequired.
func RequireAdmin() gin.HandlerFunc {
	return func(c *gin.Context) {
		actor, ok := ActorFrom(c)
		if !ok {
			abortJSON(c, http.StatusUnauthorized, "unauthorized", "authentication required")
			return
		}
		if !actor.IsAdmin() {
			abortJSON(c, http.StatusForbidden, "forbidden", "administrator role required")
			return
		}
		c.Next()
	}
}

// ActorFrom returns the actor stored by AuthRequired.
func ActorFrom(c *gin.Context) (model.Actor, bool) {
	val, ok := c.Get(ActorContextKey)
	if !ok {
		return model.Actor{}, false
	}
	actor, ok := val.(model.Actor)
	return actor, ok
}

func abortJSON(c *gin.Context, status int, kind, message string) {
	c.AbortWithStatusJSON(status, gin.H{"error": kind, "message": message})
}

func extractToken(c *gin.Context) string {
	authHeader := c.GetHeader("Authorization")
	if strings.HasPrefix(strings.ToLower(authHeader), "bearer ") {
		return strings.TrimSpace(authHeader[7:])
	}

	if cookie, err := c.Cookie(authCookieName); err == nil {
		return cookie
	}
	return ""
}

// SetAuthCookie writes auth token cookie to response.
func SetAuthCookie(c *gin.Context, token string) {
	c.SetCookie(authCookieName, token, 0, "/", "", false, true)
	c.Header("Authorization", "Bearer "+token)
}
