// Package apitest runs an in-memory stand-in for the ordering API. It speaks
// the same REST contract, enforces the same role and country rules and ships
// with the same seed data, so portal tests can run end to end without the
// real backend.
package apitest

import (
	"fmt"
	"net/http"
	"net/http/httptest"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"
)

const (
	// Password is the password of every seeded user.
	Password = "password123"

	countryAll = "ALL"
)

var signingKey = []byte("apitest-signing-key")

type user struct {
	ID             uint   `json:"id"`
	Name           string `json:"name"`
	Username       string `json:"username"`
	Role           string `json:"role"`
	Country        string `json:"country"`
	hashedPassword []byte
}

type menuItem struct {
	ID           uint    `json:"id"`
	RestaurantID uint    `json:"restaurant_id"`
	Name         string  `json:"name"`
	Price        float64 `json:"price"`
}

type restaurant struct {
	ID        uint       `json:"id"`
	Name      string     `json:"name"`
	Country   string     `json:"country"`
	MenuItems []menuItem `json:"menu_items"`
}

type orderItem struct {
	ID       uint     `json:"id"`
	MenuItem menuItem `json:"menu_item"`
	Quantity int      `json:"quantity"`
}

type order struct {
	ID      uint        `json:"id"`
	UserID  uint        `json:"user_id"`
	Status  string      `json:"status"`
	Country string      `json:"country"`
	Items   []orderItem `json:"items"`
}

type paymentMethod struct {
	ID     uint   `json:"id"`
	UserID uint   `json:"user_id"`
	Type   string `json:"type"`
}

type failure struct {
	status int
	detail string
}

// Server is the fake API. Create it with New and stop it with Close.
type Server struct {
	*httptest.Server

	mu             sync.Mutex
	users          []*user
	restaurants    []*restaurant
	orders         []*order
	paymentMethods []*paymentMethod
	nextOrderID    uint
	nextItemID     uint
	calls          map[string]int
	failures       map[string]failure
}

// New starts a seeded server.
func New() *Server {
	gin.SetMode(gin.TestMode)

	s := &Server{
		calls:    make(map[string]int),
		failures: make(map[string]failure),
	}
	s.seed()

	r := gin.New()
	r.Use(s.record())
	r.POST("/login", s.login)

	authed := r.Group("/")
	authed.Use(s.authenticate())
	{
		authed.GET("/me", s.me)
		authed.GET("/restaurants", s.listRestaurants)
		authed.GET("/restaurants/:id", s.getRestaurant)
		authed.GET("/orders", s.listOrders)
		authed.POST("/orders", s.createOrder)
		authed.POST("/orders/:id/checkout", s.requireRole("ADMIN", "MANAGER"), s.transition("COMPLETED"))
		authed.POST("/orders/:id/cancel", s.requireRole("ADMIN", "MANAGER"), s.transition("CANCELLED"))
		authed.GET("/payment-methods", s.listPaymentMethods)
		authed.PUT("/payment-methods/:id", s.requireRole("ADMIN"), s.updatePaymentMethod)
	}

	s.Server = httptest.NewServer(r)
	return s
}

// Calls returns how many times "METHOD /path" was requested, e.g.
// Calls("POST /orders").
func (s *Server) Calls(route string) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.calls[route]
}

// Fail makes every request to route answer with status and detail until
// Recover is called.
func (s *Server) Fail(route string, status int, detail string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.failures[route] = failure{status: status, detail: detail}
}

func (s *Server) Recover(route string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.failures, route)
}

// Token signs a token for username as the real API would after /login.
func (s *Server) Token(username string, ttl time.Duration) string {
	claims := jwt.RegisteredClaims{
		Subject:   username,
		ExpiresAt: jwt.NewNumericDate(time.Now().Add(ttl)),
	}
	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(signingKey)
	if err != nil {
		panic(err)
	}
	return signed
}

// AddOrder seeds an order for username holding qty of each listed menu item
// and returns its id.
func (s *Server) AddOrder(username, status string, items map[uint]int) uint {
	s.mu.Lock()
	defer s.mu.Unlock()

	u := s.userByName(username)
	if u == nil {
		panic("apitest: unknown user " + username)
	}
	o := &order{ID: s.nextOrderID, UserID: u.ID, Status: status, Country: u.Country}
	s.nextOrderID++
	for id, qty := range items {
		mi, _ := s.menuItemByID(id)
		o.Items = append(o.Items, orderItem{ID: s.nextItemID, MenuItem: mi, Quantity: qty})
		s.nextItemID++
	}
	s.orders = append(s.orders, o)
	return o.ID
}

// OrderStatus returns the current status of an order, or "" if unknown.
func (s *Server) OrderStatus(id uint) string {
	s.mu.Lock()
	defer s.mu.Unlock()
	if o := s.orderByID(id); o != nil {
		return o.Status
	}
	return ""
}

// PaymentType returns the type of a payment method, or "" if unknown.
func (s *Server) PaymentType(id uint) string {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, pm := range s.paymentMethods {
		if pm.ID == id {
			return pm.Type
		}
	}
	return ""
}

func (s *Server) record() gin.HandlerFunc {
	return func(c *gin.Context) {
		route := c.Request.Method + " " + c.Request.URL.Path

		s.mu.Lock()
		s.calls[route]++
		f, failing := s.failures[route]
		s.mu.Unlock()

		if failing {
			c.AbortWithStatusJSON(f.status, gin.H{"detail": f.detail})
			return
		}
		c.Next()
	}
}

func (s *Server) authenticate() gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		if !strings.HasPrefix(header, "Bearer ") {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"detail": "Not authenticated"})
			return
		}

		claims := jwt.RegisteredClaims{}
		_, err := jwt.ParseWithClaims(strings.TrimPrefix(header, "Bearer "), &claims, func(t *jwt.Token) (interface{}, error) {
			if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
				return nil, fmt.Errorf("unexpected signing method")
			}
			return signingKey, nil
		})
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"detail": "Could not validate credentials"})
			return
		}

		s.mu.Lock()
		u := s.userByName(claims.Subject)
		s.mu.Unlock()
		if u == nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"detail": "Could not validate credentials"})
			return
		}
		c.Set("user", u)
		c.Next()
	}
}

func (s *Server) requireRole(roles ...string) gin.HandlerFunc {
	return func(c *gin.Context) {
		u := currentUser(c)
		for _, role := range roles {
			if u.Role == role {
				c.Next()
				return
			}
		}
		c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"detail": "Operation not permitted for your role"})
	}
}

func (s *Server) login(c *gin.Context) {
	username := c.PostForm("username")
	password := c.PostForm("password")

	s.mu.Lock()
	u := s.userByName(username)
	s.mu.Unlock()

	if u == nil || bcrypt.CompareHashAndPassword(u.hashedPassword, []byte(password)) != nil {
		c.Header("WWW-Authenticate", "Bearer")
		c.JSON(http.StatusUnauthorized, gin.H{"detail": "Incorrect username or password"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"access_token": s.Token(u.Username, 30*time.Minute), "token_type": "bearer"})
}

func (s *Server) me(c *gin.Context) {
	c.JSON(http.StatusOK, currentUser(c))
}

func (s *Server) listRestaurants(c *gin.Context) {
	u := currentUser(c)

	s.mu.Lock()
	defer s.mu.Unlock()
	out := []restaurant{}
	for _, r := range s.restaurants {
		if u.Role == "ADMIN" || r.Country == u.Country {
			out = append(out, *r)
		}
	}
	c.JSON(http.StatusOK, out)
}

func (s *Server) getRestaurant(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	u := currentUser(c)

	s.mu.Lock()
	defer s.mu.Unlock()
	for _, r := range s.restaurants {
		if r.ID != id {
			continue
		}
		if !countryAccess(u, r.Country) {
			c.JSON(http.StatusForbidden, gin.H{"detail": "Access denied to this country's data"})
			return
		}
		c.JSON(http.StatusOK, r)
		return
	}
	c.JSON(http.StatusNotFound, gin.H{"detail": "Restaurant not found"})
}

func (s *Server) listOrders(c *gin.Context) {
	u := currentUser(c)

	s.mu.Lock()
	defer s.mu.Unlock()
	out := []order{}
	for _, o := range s.orders {
		if u.Role == "ADMIN" || o.Country == u.Country {
			out = append(out, *o)
		}
	}
	c.JSON(http.StatusOK, out)
}

func (s *Server) createOrder(c *gin.Context) {
	var req struct {
		Items []struct {
			MenuItemID uint `json:"menu_item_id"`
			Quantity   int  `json:"quantity"`
		} `json:"items"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusUnprocessableEntity, gin.H{"detail": []gin.H{{"msg": err.Error()}}})
		return
	}
	u := currentUser(c)

	s.mu.Lock()
	defer s.mu.Unlock()

	o := &order{UserID: u.ID, Status: "PENDING", Country: u.Country}
	for _, line := range req.Items {
		mi, ok := s.menuItemByID(line.MenuItemID)
		if !ok {
			c.JSON(http.StatusNotFound, gin.H{"detail": fmt.Sprintf("Menu item %d not found", line.MenuItemID)})
			return
		}
		if !countryAccess(u, s.restaurantCountry(mi.RestaurantID)) {
			c.JSON(http.StatusForbidden, gin.H{"detail": "Cannot add items from another country"})
			return
		}
		o.Items = append(o.Items, orderItem{MenuItem: mi, Quantity: line.Quantity})
	}

	o.ID = s.nextOrderID
	s.nextOrderID++
	for i := range o.Items {
		o.Items[i].ID = s.nextItemID
		s.nextItemID++
	}
	s.orders = append(s.orders, o)
	c.JSON(http.StatusOK, o)
}

func (s *Server) transition(status string) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, ok := pathID(c)
		if !ok {
			return
		}
		u := currentUser(c)

		s.mu.Lock()
		defer s.mu.Unlock()
		o := s.orderByID(id)
		if o == nil {
			c.JSON(http.StatusNotFound, gin.H{"detail": "Order not found"})
			return
		}
		if !countryAccess(u, o.Country) {
			c.JSON(http.StatusForbidden, gin.H{"detail": "Access denied to this country's data"})
			return
		}
		o.Status = status
		c.JSON(http.StatusOK, o)
	}
}

func (s *Server) listPaymentMethods(c *gin.Context) {
	u := currentUser(c)

	s.mu.Lock()
	defer s.mu.Unlock()
	out := []paymentMethod{}
	for _, pm := range s.paymentMethods {
		if u.Role == "ADMIN" || pm.UserID == u.ID {
			out = append(out, *pm)
		}
	}
	c.JSON(http.StatusOK, out)
}

func (s *Server) updatePaymentMethod(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	var req struct {
		Type string `json:"type" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusUnprocessableEntity, gin.H{"detail": []gin.H{{"msg": "field required"}}})
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	for _, pm := range s.paymentMethods {
		if pm.ID == id {
			pm.Type = req.Type
			c.JSON(http.StatusOK, pm)
			return
		}
	}
	c.JSON(http.StatusNotFound, gin.H{"detail": "Payment method not found"})
}

func currentUser(c *gin.Context) *user {
	return c.MustGet("user").(*user)
}

func countryAccess(u *user, country string) bool {
	return u.Role == "ADMIN" || u.Country == country
}

func pathID(c *gin.Context) (uint, bool) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusUnprocessableEntity, gin.H{"detail": []gin.H{{"msg": "value is not a valid integer"}}})
		return 0, false
	}
	return uint(id), true
}

func (s *Server) userByName(username string) *user {
	for _, u := range s.users {
		if u.Username == username {
			return u
		}
	}
	return nil
}

func (s *Server) menuItemByID(id uint) (menuItem, bool) {
	for _, r := range s.restaurants {
		for _, mi := range r.MenuItems {
			if mi.ID == id {
				return mi, true
			}
		}
	}
	return menuItem{}, false
}

func (s *Server) restaurantCountry(id uint) string {
	for _, r := range s.restaurants {
		if r.ID == id {
			return r.Country
		}
	}
	return ""
}

func (s *Server) orderByID(id uint) *order {
	for _, o := range s.orders {
		if o.ID == id {
			return o
		}
	}
	return nil
}
