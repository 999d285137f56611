package controllers_test

import (
	"net/http"
	"net/url"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDashboard_ScopedByCountry(t *testing.T) {
	p := newPortal(t)
	p.login(t, "thanos")

	w := p.do(http.MethodGet, "/", nil)
	require.Equal(t, http.StatusOK, w.Code)
	body := w.Body.String()
	assert.Contains(t, body, "Available Restaurants")
	assert.Contains(t, body, "Taj Mahal Delights")
	assert.Contains(t, body, "Spice Route")
	assert.NotContains(t, body, "Liberty Burger")
	assert.Contains(t, body, "Thanos")
	assert.Contains(t, body, "MEMBER")
}

func TestDashboard_AdminSeesAll(t *testing.T) {
	p := newPortal(t)
	p.login(t, "fury")

	body := p.do(http.MethodGet, "/", nil).Body.String()
	for _, name := range []string{"Taj Mahal Delights", "Spice Route", "Liberty Burger", "Empire Steakhouse"} {
		assert.Contains(t, body, name)
	}
}

func TestDashboard_LoadFailureShowsBanner(t *testing.T) {
	p := newPortal(t)
	p.login(t, "thanos")
	p.api.Fail("GET /restaurants", http.StatusInternalServerError, "db down")

	w := p.do(http.MethodGet, "/", nil)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "Failed to load restaurants")
}

func TestRestaurantDetail_OutOfCountryDenied(t *testing.T) {
	p := newPortal(t)
	p.login(t, "thanos")

	w := p.do(http.MethodGet, "/restaurants/3", nil)
	assert.Equal(t, http.StatusForbidden, w.Code)
	body := w.Body.String()
	assert.Contains(t, body, "Access Denied")
	assert.Contains(t, body, "Back to Dashboard")
	assert.NotContains(t, body, "Cheeseburger")
	assert.NotContains(t, body, "Your Basket")
}

func TestRestaurantDetail_NotFound(t *testing.T) {
	p := newPortal(t)
	p.login(t, "fury")

	for _, path := range []string{"/restaurants/99", "/restaurants/abc"} {
		w := p.do(http.MethodGet, path, nil)
		assert.Equal(t, http.StatusNotFound, w.Code, path)
		assert.Contains(t, w.Body.String(), "Restaurant not found", path)
	}
}

func TestRestaurantDetail_EmptyBasket(t *testing.T) {
	p := newPortal(t)
	p.login(t, "thanos")

	w := p.do(http.MethodGet, "/restaurants/1", nil)
	require.Equal(t, http.StatusOK, w.Code)
	body := w.Body.String()
	assert.Contains(t, body, "Butter Chicken")
	assert.Contains(t, body, "$450.00")
	assert.Contains(t, body, "Select items to start your feast")
	assert.NotContains(t, body, "Confirm Order")
}

func TestRestaurantDetail_BasketTotals(t *testing.T) {
	p := newPortal(t)
	p.login(t, "thanos")

	w := p.do(http.MethodGet, "/restaurants/1?cart="+url.QueryEscape("1:2,2:3,4:9"), nil)
	require.Equal(t, http.StatusOK, w.Code)
	body := w.Body.String()
	// 450 x 2 + 50 x 3; item 4 belongs to another restaurant and is dropped.
	assert.Contains(t, body, `class="subtotal">$1,050.00`)
	assert.Contains(t, body, `class="total">$1,050.00`)
	assert.Contains(t, body, "Confirm Order")
	assert.NotContains(t, body, "Cheeseburger")
}

func TestUpdateCart(t *testing.T) {
	p := newPortal(t)
	p.login(t, "thanos")

	w := p.do(http.MethodPost, "/restaurants/1/cart", url.Values{"cart": {""}, "item_id": {"1"}, "delta": {"1"}})
	assert.Equal(t, http.StatusSeeOther, w.Code)
	assert.Equal(t, "/restaurants/1?cart="+url.QueryEscape("1:1"), w.Header().Get("Location"))

	w = p.do(http.MethodPost, "/restaurants/1/cart", url.Values{"cart": {"1:1,2:2"}, "item_id": {"2"}, "delta": {"1"}})
	assert.Equal(t, "/restaurants/1?cart="+url.QueryEscape("1:1,2:3"), w.Header().Get("Location"))

	w = p.do(http.MethodPost, "/restaurants/1/cart", url.Values{"cart": {"1:1"}, "item_id": {"1"}, "delta": {"-1"}})
	assert.Equal(t, "/restaurants/1", w.Header().Get("Location"))

	w = p.do(http.MethodPost, "/restaurants/1/cart", url.Values{"cart": {"1:1"}, "item_id": {"x"}, "delta": {"1"}})
	assert.Equal(t, "/restaurants/1?cart="+url.QueryEscape("1:1"), w.Header().Get("Location"))

	assert.Equal(t, 0, p.api.Calls("POST /orders"))
}

func TestPlaceOrder_EmptyCartSendsNothing(t *testing.T) {
	p := newPortal(t)
	p.login(t, "thanos")

	for _, raw := range []string{"", "1:0", "garbage"} {
		w := p.do(http.MethodPost, "/restaurants/1/orders", url.Values{"cart": {raw}})
		assert.Equal(t, http.StatusSeeOther, w.Code, raw)
		assert.Equal(t, "/restaurants/1", w.Header().Get("Location"), raw)
	}
	assert.Equal(t, 0, p.api.Calls("POST /orders"))
}

func TestPlaceOrder_Success(t *testing.T) {
	p := newPortal(t)
	p.login(t, "thanos")

	w := p.do(http.MethodPost, "/restaurants/1/orders", url.Values{"cart": {"1:2,2:1"}})
	require.Equal(t, http.StatusSeeOther, w.Code, w.Body.String())
	assert.Equal(t, "/orders?notice=order_placed", w.Header().Get("Location"))
	assert.Equal(t, 1, p.api.Calls("POST /orders"))

	w = p.do(http.MethodGet, "/orders?notice=order_placed", nil)
	require.Equal(t, http.StatusOK, w.Code)
	body := w.Body.String()
	assert.Contains(t, body, "Order Placed Successfully!")
	assert.Contains(t, body, "Butter Chicken")
	assert.Contains(t, body, "PENDING")
	assert.Contains(t, body, `class="total">$950.00`)
}

func TestPlaceOrder_FailureKeepsCart(t *testing.T) {
	p := newPortal(t)
	p.login(t, "thanos")
	p.api.Fail("POST /orders", http.StatusBadRequest, "Kitchen closed")

	w := p.do(http.MethodPost, "/restaurants/1/orders", url.Values{"cart": {"1:2"}})
	assert.Equal(t, http.StatusOK, w.Code)
	body := w.Body.String()
	assert.Contains(t, body, "Kitchen closed")
	assert.Contains(t, body, `value="1:2"`)
	assert.Contains(t, body, "Confirm Order")
}

func TestPlaceOrder_AlertReturnsToBasket(t *testing.T) {
	p := newPortal(t)
	p.login(t, "thanos")
	p.api.Fail("POST /orders", http.StatusBadRequest, "Kitchen closed")

	w := p.do(http.MethodPost, "/restaurants/1/orders", url.Values{"cart": {"1:2,2:1"}})
	require.Equal(t, http.StatusOK, w.Code)

	w = p.dismissAlert(t, w.Body.String())
	require.Equal(t, http.StatusOK, w.Code)
	body := w.Body.String()
	assert.NotContains(t, body, "Kitchen closed")
	assert.Contains(t, body, `value="1:2,2:1"`)
	assert.Contains(t, body, "Confirm Order")
	assert.Equal(t, 1, p.api.Calls("POST /orders"))
}

func TestPlaceOrder_FailureWithoutDetail(t *testing.T) {
	p := newPortal(t)
	p.login(t, "thanos")
	p.api.Fail("POST /orders", http.StatusInternalServerError, "")

	w := p.do(http.MethodPost, "/restaurants/1/orders", url.Values{"cart": {"1:1"}})
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "Failed to place order")
}
