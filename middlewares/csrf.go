package middlewares

import (
	"html/template"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/csrf"

	"github.com/PrathamTiwari-max/fullstack-food-ordering-rbac/utils"
)

// CSRFProtect wraps h with gorilla/csrf. Every form then carries the hidden
// token field rendered by CSRFField.
func CSRFProtect(key []byte, secure bool, h http.Handler) http.Handler {
	return csrf.Protect(key,
		csrf.Secure(secure),
		csrf.Path("/"),
		csrf.SameSite(csrf.SameSiteStrictMode),
		csrf.ErrorHandler(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			utils.InfoLogger.Warnf("csrf rejected %s %s: %v", r.Method, r.URL.Path, csrf.FailureReason(r))
			http.Error(w, "Forbidden - invalid CSRF token", http.StatusForbidden)
		})),
	)(h)
}

// CSRFField is the hidden form input for the request's CSRF token. It is
// empty when protection is off.
func CSRFField(c *gin.Context) template.HTML {
	return csrf.TemplateField(c.Request)
}
