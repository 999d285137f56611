package controllers

import (
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/PrathamTiwari-max/fullstack-food-ordering-rbac/models"
	"github.com/PrathamTiwari-max/fullstack-food-ordering-rbac/services"
	"github.com/PrathamTiwari-max/fullstack-food-ordering-rbac/utils"
	"github.com/PrathamTiwari-max/fullstack-food-ordering-rbac/views"
)

type RestaurantController struct {
	API services.Gateway
}

func NewRestaurantController(api services.Gateway) *RestaurantController {
	return &RestaurantController{API: api}
}

// Dashboard lists the restaurants the backend lets this user see.
func (rc *RestaurantController) Dashboard(c *gin.Context) {
	view := views.DashboardView{Page: page(c, "Restaurants")}

	restaurants, err := rc.API.ListRestaurants(c.Request.Context(), bearer(c))
	if err != nil {
		if sessionExpired(c, err) {
			return
		}
		utils.ErrorLogger.Errorf("list restaurants: %v", err)
		view.Banner = "Failed to load restaurants"
	}
	view.Restaurants = restaurants

	c.HTML(http.StatusOK, views.PageDashboard, view)
}

// Detail shows one restaurant's menu next to the basket held in the
// "cart" query parameter.
func (rc *RestaurantController) Detail(c *gin.Context) {
	restaurant, ok := rc.loadRestaurant(c)
	if !ok {
		return
	}
	cart := menuCart(restaurant, c.Query("cart"))
	c.HTML(http.StatusOK, views.PageRestaurant, views.NewRestaurantView(page(c, restaurant.Name), restaurant, cart))
}

// UpdateCart applies one +/- step to the posted cart and redirects back to
// the menu carrying the new cart.
func (rc *RestaurantController) UpdateCart(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		renderDenied(c, http.StatusNotFound, "Restaurant not found", "The restaurant you are looking for does not exist.")
		return
	}

	cart := models.ParseCart(c.PostForm("cart"))
	itemID, errItem := strconv.ParseUint(c.PostForm("item_id"), 10, 64)
	delta, errDelta := strconv.Atoi(c.PostForm("delta"))
	if errItem == nil && errDelta == nil {
		cart = models.UpdateCart(cart, uint(itemID), delta)
	}

	c.Redirect(http.StatusSeeOther, restaurantURL(id, cart))
}

// PlaceOrder submits the posted cart. An empty cart goes straight back to
// the menu without contacting the backend.
func (rc *RestaurantController) PlaceOrder(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		renderDenied(c, http.StatusNotFound, "Restaurant not found", "The restaurant you are looking for does not exist.")
		return
	}
	cart := models.ParseCart(c.PostForm("cart"))

	_, err := services.PlaceOrder(c.Request.Context(), rc.API, bearer(c), cart)
	switch {
	case err == nil:
		c.Redirect(http.StatusSeeOther, "/orders?notice="+noticeOrderPlaced)
		return
	case errors.Is(err, services.ErrEmptyCart):
		c.Redirect(http.StatusSeeOther, restaurantURL(id, cart))
		return
	case sessionExpired(c, err):
		return
	}
	utils.ErrorLogger.Errorf("place order at restaurant %d: %v", id, err)

	restaurant, ok := rc.loadRestaurant(c)
	if !ok {
		return
	}
	// The basket is kept as posted so the user can retry.
	view := views.NewRestaurantView(page(c, restaurant.Name), restaurant, menuCart(restaurant, cart.Encode()))
	view.Alert = services.DetailOr(err, "Failed to place order")
	view.Dismiss = restaurantURL(restaurant.ID, menuCart(restaurant, cart.Encode()))
	c.HTML(http.StatusOK, views.PageRestaurant, view)
}

// loadRestaurant fetches the restaurant named by the :id parameter. When it
// cannot, the matching error page has already been rendered.
func (rc *RestaurantController) loadRestaurant(c *gin.Context) (*models.Restaurant, bool) {
	id, ok := pathID(c, "id")
	if !ok {
		renderDenied(c, http.StatusNotFound, "Restaurant not found", "The restaurant you are looking for does not exist.")
		return nil, false
	}

	restaurant, err := rc.API.GetRestaurant(c.Request.Context(), bearer(c), id)
	if err == nil {
		return restaurant, true
	}
	if sessionExpired(c, err) {
		return nil, false
	}

	switch {
	case errors.Is(err, services.ErrAuthorization):
		utils.InfoLogger.Infof("restaurant %d denied: %v", id, err)
		renderDenied(c, http.StatusForbidden, "Access Denied",
			services.DetailOr(err, "This restaurant is outside your region."))
	case errors.Is(err, services.ErrNotFound):
		renderDenied(c, http.StatusNotFound, "Restaurant not found", "The restaurant you are looking for does not exist.")
	default:
		utils.ErrorLogger.Errorf("get restaurant %d: %v", id, err)
		renderDenied(c, http.StatusBadGateway, "Restaurant unavailable", "Failed to load restaurant")
	}
	return nil, false
}

// menuCart parses raw and keeps only items on restaurant's menu.
func menuCart(restaurant *models.Restaurant, raw string) models.Cart {
	cart := models.ParseCart(raw)
	for id := range cart {
		if _, ok := restaurant.FindItem(id); !ok {
			delete(cart, id)
		}
	}
	return cart
}

func restaurantURL(id uint, cart models.Cart) string {
	target := fmt.Sprintf("/restaurants/%d", id)
	if cart.IsEmpty() {
		return target
	}
	return target + "?cart=" + url.QueryEscape(cart.Encode())
}
