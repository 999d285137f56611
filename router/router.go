package router

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/PrathamTiwari-max/fullstack-food-ordering-rbac/config"
	"github.com/PrathamTiwari-max/fullstack-food-ordering-rbac/controllers"
	"github.com/PrathamTiwari-max/fullstack-food-ordering-rbac/middlewares"
	"github.com/PrathamTiwari-max/fullstack-food-ordering-rbac/services"
	"github.com/PrathamTiwari-max/fullstack-food-ordering-rbac/views"
)

// Dependencies are the long-lived services the portal's routes share.
type Dependencies struct {
	Config   config.Config
	API      services.Gateway
	Sessions *services.SessionManager
}

func SetupRouter(deps Dependencies) (*gin.Engine, error) {
	renderer, err := views.NewRenderer()
	if err != nil {
		return nil, fmt.Errorf("load templates: %w", err)
	}

	r := gin.New()
	r.HTMLRender = renderer
	r.Use(gin.Recovery())
	r.Use(middlewares.LoggerMiddleware())
	r.Use(middlewares.SecurityHeaders(deps.Config.CookieSecure))
	r.Use(middlewares.CORSMiddleware(deps.Config.CORSOrigins))

	r.GET("/ping", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"message": "pong"})
	})

	userCtrl := controllers.NewUserController(deps.Sessions)
	restaurantCtrl := controllers.NewRestaurantController(deps.API)
	orderCtrl := controllers.NewOrderController(deps.API)
	paymentCtrl := controllers.NewPaymentController(deps.API)
	loginLimiter := middlewares.NewRateLimiter(deps.Config.LoginRatePerMinute)

	// ----------------------------------------------------------------
	//                      SESSION ROUTES
	// ----------------------------------------------------------------
	web := r.Group("/")
	web.Use(middlewares.SessionMiddleware(deps.Sessions, deps.Config.CookieSecure))
	{
		web.GET("/api/session", userCtrl.SessionInfo)
		web.GET("/login", userCtrl.LoginForm)
		web.POST("/login", loginLimiter.LoginRateLimit(), userCtrl.Login)
		web.POST("/logout", userCtrl.Logout)
	}

	// ----------------------------------------------------------------
	//                      GUARDED ROUTES
	// ----------------------------------------------------------------
	guarded := web.Group("/")
	guarded.Use(middlewares.RequireSession(deps.Config.SessionResolveWait))
	{
		guarded.GET("/", restaurantCtrl.Dashboard)
		guarded.GET("/restaurants/:id", restaurantCtrl.Detail)
		guarded.POST("/restaurants/:id/cart", restaurantCtrl.UpdateCart)
		guarded.POST("/restaurants/:id/orders", restaurantCtrl.PlaceOrder)

		guarded.GET("/orders", orderCtrl.List)
		guarded.POST("/orders/:id/:action", orderCtrl.Action)

		guarded.POST("/payment-methods/:id", paymentCtrl.UpdatePaymentMethod)
	}

	return r, nil
}

// Handler wraps the engine with CSRF protection when a key is configured.
func Handler(r *gin.Engine, cfg config.Config) http.Handler {
	if cfg.CSRFKey == "" {
		return r
	}
	return middlewares.CSRFProtect([]byte(cfg.CSRFKey), cfg.CookieSecure, r)
}
