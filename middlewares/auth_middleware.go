package middlewares

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/PrathamTiwari-max/fullstack-food-ordering-rbac/models"
	"github.com/PrathamTiwari-max/fullstack-food-ordering-rbac/services"
	"github.com/PrathamTiwari-max/fullstack-food-ordering-rbac/utils"
	"github.com/PrathamTiwari-max/fullstack-food-ordering-rbac/views"
)

const (
	// SessionCookie carries the browser's opaque session key. The bearer
	// token itself never leaves the server.
	SessionCookie = "portal_session"

	sessionKey = "session"
	userKey    = "user"

	cookieMaxAge = 7 * 24 * 60 * 60
)

// SessionMiddleware attaches the browser's Session to the context, issuing a
// new session cookie when the request has none or a forged one.
func SessionMiddleware(mgr *services.SessionManager, secure bool) gin.HandlerFunc {
	return func(c *gin.Context) {
		key, err := c.Cookie(SessionCookie)
		if err != nil || !mgr.ValidKey(key) {
			key = mgr.NewKey()
			SetSessionCookie(c, key, secure)
		}

		c.Set(sessionKey, mgr.Get(c.Request.Context(), key))
		c.Next()
	}
}

// SetSessionCookie writes key as an HttpOnly, SameSite=Strict cookie.
func SetSessionCookie(c *gin.Context, key string, secure bool) {
	c.SetSameSite(http.SameSiteStrictMode)
	c.SetCookie(SessionCookie, key, cookieMaxAge, "/", "", secure, true)
}

// RequireSession guards the protected pages. A session still resolving a
// restored token gets up to wait to settle; after that the loading page is
// shown instead of the login form so a returning user is not bounced.
func RequireSession(wait time.Duration) gin.HandlerFunc {
	return func(c *gin.Context) {
		session := CurrentSession(c)
		if session == nil {
			utils.ErrorLogger.Error("RequireSession used without SessionMiddleware")
			c.AbortWithStatus(http.StatusInternalServerError)
			return
		}

		status := session.Status()
		if status == services.SessionLoading {
			ctx, cancel := context.WithTimeout(c.Request.Context(), wait)
			status = session.Wait(ctx)
			cancel()
		}

		switch status {
		case services.SessionLoading:
			c.HTML(http.StatusOK, views.PageLoading, views.Page{Title: "Loading"})
			c.Abort()
			return
		case services.SessionUnauthenticated:
			c.Redirect(http.StatusSeeOther, "/login")
			c.Abort()
			return
		}

		user, _ := session.CurrentUser()
		c.Set(userKey, user)
		c.Next()
	}
}

// CurrentSession returns the Session set by SessionMiddleware, or nil.
func CurrentSession(c *gin.Context) *services.Session {
	v, ok := c.Get(sessionKey)
	if !ok {
		return nil
	}
	s, _ := v.(*services.Session)
	return s
}

// CurrentUser returns the profile RequireSession verified, or nil.
func CurrentUser(c *gin.Context) *models.User {
	v, ok := c.Get(userKey)
	if !ok {
		return nil
	}
	u, _ := v.(*models.User)
	return u
}
