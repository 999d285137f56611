package controllers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/PrathamTiwari-max/fullstack-food-ordering-rbac/middlewares"
	"github.com/PrathamTiwari-max/fullstack-food-ordering-rbac/services"
	"github.com/PrathamTiwari-max/fullstack-food-ordering-rbac/utils"
	"github.com/PrathamTiwari-max/fullstack-food-ordering-rbac/views"
)

func page(c *gin.Context, title string) views.Page {
	return views.Page{
		Title:     title,
		User:      middlewares.CurrentUser(c),
		CSRFField: middlewares.CSRFField(c),
	}
}

func bearer(c *gin.Context) string {
	return middlewares.CurrentSession(c).Token()
}

// sessionExpired ends the session and sends the browser to the login form
// when the backend no longer accepts its token.
func sessionExpired(c *gin.Context, err error) bool {
	if !errors.Is(err, services.ErrAuthentication) {
		return false
	}
	session := middlewares.CurrentSession(c)
	utils.InfoLogger.Infof("session %s rejected by backend, logging out", session.Key())
	session.Logout()
	c.Redirect(http.StatusSeeOther, "/login")
	return true
}

func pathID(c *gin.Context, name string) (uint, bool) {
	id, err := strconv.ParseUint(c.Param(name), 10, 64)
	if err != nil || id == 0 {
		return 0, false
	}
	return uint(id), true
}

func renderDenied(c *gin.Context, code int, heading, message string) {
	c.HTML(code, views.PageDenied, views.DeniedView{
		Page:    page(c, heading),
		Heading: heading,
		Message: message,
	})
}
