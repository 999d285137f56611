// Package views holds the portal's HTML pages. Each page is parsed together
// with the shared layout so every screen carries the same navbar.
package views

import (
	"embed"
	"fmt"
	"html/template"
	"strings"

	"github.com/gin-gonic/gin/render"
	"github.com/shopspring/decimal"

	"github.com/PrathamTiwari-max/fullstack-food-ordering-rbac/models"
	"github.com/PrathamTiwari-max/fullstack-food-ordering-rbac/utils"
)

//go:embed templates/*.html
var files embed.FS

// Page names accepted by c.HTML.
const (
	PageLogin      = "login"
	PageDashboard  = "dashboard"
	PageRestaurant = "restaurant"
	PageOrders     = "orders"
	PageDenied     = "denied"
	PageLoading    = "loading"
)

var pages = []string{PageLogin, PageDashboard, PageRestaurant, PageOrders, PageDenied, PageLoading}

var funcs = template.FuncMap{
	"price": func(d decimal.Decimal) string { return utils.FormatPrice(d) },
	"lower": strings.ToLower,
}

// Renderer implements gin's render.HTMLRender over the embedded pages.
type Renderer struct {
	templates map[string]*template.Template
}

// NewRenderer parses every page once. It fails if a template is broken.
func NewRenderer() (*Renderer, error) {
	r := &Renderer{templates: make(map[string]*template.Template, len(pages))}
	for _, name := range pages {
		tpl, err := template.New("layout.html").Funcs(funcs).ParseFS(files, "templates/layout.html", "templates/"+name+".html")
		if err != nil {
			return nil, fmt.Errorf("parse page %s: %w", name, err)
		}
		r.templates[name] = tpl
	}
	return r, nil
}

func (r *Renderer) Instance(name string, data interface{}) render.Render {
	tpl, ok := r.templates[name]
	if !ok {
		panic("views: unknown page " + name)
	}
	return render.HTML{Template: tpl, Name: "layout.html", Data: data}
}

// Page is embedded by every view model; the layout reads only these fields.
type Page struct {
	Title     string
	User      *models.User
	CSRFField template.HTML
	// Notice is a success message, Alert a failed action the user must
	// acknowledge, Banner a page-load failure.
	Notice string
	Alert  string
	Banner string
	// Dismiss is the GET URL the alert's OK link leads to. Defaults to "/".
	Dismiss string
}

type LoginView struct {
	Page
	Username string
	Error    string
}

type DashboardView struct {
	Page
	Restaurants []models.Restaurant
}

// CartLine is one row of the basket.
type CartLine struct {
	Item     models.MenuItem
	Quantity int
	Subtotal decimal.Decimal
}

type MenuRow struct {
	Item     models.MenuItem
	Quantity int
}

type RestaurantView struct {
	Page
	Restaurant *models.Restaurant
	Menu       []MenuRow
	Cart       string
	Lines      []CartLine
	ItemCount  int
	Subtotal   decimal.Decimal
	Total      decimal.Decimal
}

// NewRestaurantView derives the menu rows, basket lines and totals from one
// cart snapshot so subtotal and total always agree.
func NewRestaurantView(page Page, restaurant *models.Restaurant, cart models.Cart) RestaurantView {
	v := RestaurantView{
		Page:       page,
		Restaurant: restaurant,
		Cart:       cart.Encode(),
		ItemCount:  cart.ItemCount(),
	}
	for _, item := range restaurant.MenuItems {
		v.Menu = append(v.Menu, MenuRow{Item: item, Quantity: cart[item.ID]})
	}
	for _, id := range cart.IDs() {
		item, ok := restaurant.FindItem(id)
		if !ok {
			continue
		}
		qty := cart[id]
		v.Lines = append(v.Lines, CartLine{Item: item, Quantity: qty, Subtotal: item.Price.Mul(decimal.NewFromInt(int64(qty)))})
	}
	total := models.CartTotal(cart, restaurant.PriceLookup())
	v.Subtotal = total
	v.Total = total
	return v
}

type OrderCard struct {
	Order       models.Order
	Total       decimal.Decimal
	ItemCount   int
	CanCheckout bool
	CanCancel   bool
}

type OrdersView struct {
	Page
	Orders         []OrderCard
	PaymentMethods []models.PaymentMethod
	CanEditPayment bool
	Role           models.Role
}

type DeniedView struct {
	Page
	Heading string
	Message string
}
