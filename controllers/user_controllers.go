package controllers

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/PrathamTiwari-max/fullstack-food-ordering-rbac/middlewares"
	"github.com/PrathamTiwari-max/fullstack-food-ordering-rbac/services"
	"github.com/PrathamTiwari-max/fullstack-food-ordering-rbac/utils"
	"github.com/PrathamTiwari-max/fullstack-food-ordering-rbac/views"
)

// loginFailed is shown for every login failure so the form never tells a
// wrong password apart from an unreachable backend.
const loginFailed = "Invalid credentials or server error"

type UserController struct {
	Sessions *services.SessionManager
}

func NewUserController(sessions *services.SessionManager) *UserController {
	return &UserController{Sessions: sessions}
}

// LoginForm renders the login page, or skips it for a signed-in browser.
func (uc *UserController) LoginForm(c *gin.Context) {
	if middlewares.CurrentSession(c).Status() == services.SessionAuthenticated {
		c.Redirect(http.StatusSeeOther, "/")
		return
	}
	c.HTML(http.StatusOK, views.PageLogin, views.LoginView{Page: page(c, "Login")})
}

// Login authenticates the session with the submitted credentials.
func (uc *UserController) Login(c *gin.Context) {
	username := strings.TrimSpace(c.PostForm("username"))
	password := c.PostForm("password")

	session := middlewares.CurrentSession(c)
	if username == "" || password == "" {
		uc.renderLoginError(c, http.StatusBadRequest, username)
		return
	}

	if err := session.Login(c.Request.Context(), username, password); err != nil {
		uc.renderLoginError(c, http.StatusUnauthorized, username)
		return
	}

	c.Redirect(http.StatusSeeOther, "/")
}

func (uc *UserController) renderLoginError(c *gin.Context, code int, username string) {
	c.HTML(code, views.PageLogin, views.LoginView{
		Page:     page(c, "Login"),
		Username: username,
		Error:    loginFailed,
	})
}

// Logout ends the session. Logging out twice is harmless.
func (uc *UserController) Logout(c *gin.Context) {
	session := middlewares.CurrentSession(c)
	session.Logout()
	utils.InfoLogger.Infof("session %s logged out", session.Key())
	c.Redirect(http.StatusSeeOther, "/login")
}

// SessionInfo reports the session status and profile as JSON.
func (uc *UserController) SessionInfo(c *gin.Context) {
	user, status := middlewares.CurrentSession(c).CurrentUser()
	utils.RespondJSON(c, http.StatusOK, "Session", gin.H{
		"status": status,
		"user":   user,
	})
}
