package middleware

import (
	"context"
	"net/http"
	"net/url"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/noah-isme/pbis-gateway/internal/models"
	appErrors "github.com/noah-isme/pbis-gateway/pkg/errors"
	"github.com/noah-isme/pbis-gateway/pkg/logger"
	"github.com/noah-isme/pbis-gateway/pkg/response"
)

// ContextSessionKey is the gin context key storing the resolved session.
const ContextSessionKey = "currentSession"

// LoginPath is where browsers without a session are sent.
const LoginPath = "/login"

type sessionResolver interface {
	Current(ctx context.Context, token string) (*models.Session, error)
}

// Session requires a valid session token from the cookie or a bearer header.
// Browser navigations are redirected to the login page, API calls get 401.
func Session(auth sessionResolver, cookieName string) gin.HandlerFunc {
	return func(c *gin.Context) {
		token := SessionToken(c, cookieName)
		if token == "" {
			rejectUnauthenticated(c, appErrors.ErrUnauthorized)
			return
		}

		session, err := auth.Current(c.Request.Context(), token)
		if err != nil {
			rejectUnauthenticated(c, err)
			return
		}

		c.Set(ContextSessionKey, session)
		c.Set(logger.ContextUserKey, session.User.ID)
		c.Next()
	}
}

// RequireAdmin blocks non-admin sessions. Browsers are sent home, API calls get 403.
func RequireAdmin() gin.HandlerFunc {
	return func(c *gin.Context) {
		session := CurrentSession(c)
		if session == nil {
			rejectUnauthenticated(c, appErrors.ErrUnauthorized)
			return
		}
		if !session.User.IsAdmin() {
			if WantsHTML(c) {
				c.Redirect(http.StatusFound, "/")
				c.Abort()
				return
			}
			response.Error(c, appErrors.Clone(appErrors.ErrForbidden, "admin role required"))
			return
		}
		c.Next()
	}
}

// CurrentSession returns the session stored by Session, if any.
func CurrentSession(c *gin.Context) *models.Session {
	value, exists := c.Get(ContextSessionKey)
	if !exists {
		return nil
	}
	session, ok := value.(*models.Session)
	if !ok {
		return nil
	}
	return session
}

// SessionToken reads the token from the session cookie, falling back to a
// bearer Authorization header.
func SessionToken(c *gin.Context, cookieName string) string {
	if cookieName != "" {
		if cookie, err := c.Cookie(cookieName); err == nil && cookie != "" {
			return cookie
		}
	}
	header := c.GetHeader("Authorization")
	parts := strings.SplitN(header, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
		return ""
	}
	return strings.TrimSpace(parts[1])
}

// WantsHTML reports whether the request comes from a browser navigation.
func WantsHTML(c *gin.Context) bool {
	return strings.Contains(c.GetHeader("Accept"), "text/html")
}

func rejectUnauthenticated(c *gin.Context, err error) {
	if WantsHTML(c) {
		target := LoginPath + "?next=" + url.QueryEscape(c.Request.URL.RequestURI())
		c.Redirect(http.StatusFound, target)
		c.Abort()
		return
	}
	response.Error(c, err)
}
