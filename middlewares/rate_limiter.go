package middlewares

import (
	"net/http"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"golang.org/x/time/rate"

	"github.com/PrathamTiwari-max/fullstack-food-ordering-rbac/utils"
	"github.com/PrathamTiwari-max/fullstack-food-ordering-rbac/views"
)

const tooManyAttempts = "Too many login attempts, please wait a moment"

// RateLimiter keeps one token bucket per client IP. A bucket idle for a
// full window has refilled, so it is dropped and rebuilt on the next visit.
type RateLimiter struct {
	limit  rate.Limit
	burst  int
	window time.Duration
	now    func() time.Time

	mu        sync.Mutex
	ips       map[string]*visitor
	lastSweep time.Time
}

type visitor struct {
	limiter  *rate.Limiter
	lastSeen time.Time
}

// NewRateLimiter allows perMinute requests per IP, all of which may arrive
// in a burst.
func NewRateLimiter(perMinute int) *RateLimiter {
	return &RateLimiter{
		limit:  rate.Every(time.Minute / time.Duration(perMinute)),
		burst:  perMinute,
		window: time.Minute,
		now:    time.Now,
		ips:    make(map[string]*visitor),
	}
}

func (rl *RateLimiter) limiter(ip string) *rate.Limiter {
	rl.mu.Lock()
	defer rl.mu.Unlock()

	now := rl.now()
	if now.Sub(rl.lastSweep) >= rl.window {
		rl.sweep(now)
	}

	v, ok := rl.ips[ip]
	if !ok {
		v = &visitor{limiter: rate.NewLimiter(rl.limit, rl.burst)}
		rl.ips[ip] = v
	}
	v.lastSeen = now
	return v.limiter
}

func (rl *RateLimiter) sweep(now time.Time) {
	cutoff := now.Add(-rl.window)
	for ip, v := range rl.ips {
		if !v.lastSeen.After(cutoff) {
			delete(rl.ips, ip)
		}
	}
	rl.lastSweep = now
}

// LoginRateLimit rejects login attempts over the limit with the login page
// and status 429.
func (rl *RateLimiter) LoginRateLimit() gin.HandlerFunc {
	return func(c *gin.Context) {
		ip := c.ClientIP()
		if rl.limiter(ip).Allow() {
			c.Next()
			return
		}

		utils.InfoLogger.Warnf("login rate limit hit for %s", ip)
		c.HTML(http.StatusTooManyRequests, views.PageLogin, views.LoginView{
			Page:     views.Page{Title: "Login", CSRFField: CSRFField(c)},
			Username: c.PostForm("username"),
			Error:    tooManyAttempts,
		})
		c.Abort()
	}
}
