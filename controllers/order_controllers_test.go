package controllers_test

import (
	"fmt"
	"net/http"
	"net/url"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOrders_AdminControls(t *testing.T) {
	p := newPortal(t)
	p.api.AddOrder("thanos", "PENDING", map[uint]int{1: 1})
	p.login(t, "fury")

	w := p.do(http.MethodGet, "/orders", nil)
	require.Equal(t, http.StatusOK, w.Code)
	body := w.Body.String()
	assert.Contains(t, body, `class="btn btn-primary">Process Payment`)
	assert.Contains(t, body, `class="btn btn-danger">Abort Order`)
	assert.NotContains(t, body, "is insufficient for transaction authorization")
	assert.Contains(t, body, "Reconfigure")
	assert.NotContains(t, body, "SECURED")
	assert.NotContains(t, body, "Transaction methods are locked")
}

func TestOrders_MemberControls(t *testing.T) {
	p := newPortal(t)
	p.api.AddOrder("thanos", "PENDING", map[uint]int{1: 1})
	p.login(t, "thanos")

	w := p.do(http.MethodGet, "/orders", nil)
	require.Equal(t, http.StatusOK, w.Code)
	body := w.Body.String()
	assert.Contains(t, body, `class="btn btn-disabled" disabled>Process Payment`)
	assert.Contains(t, body, `class="btn btn-disabled" disabled>Abort Order`)
	assert.Contains(t, body, "Your current clearance (MEMBER) is insufficient for transaction authorization.")
	assert.Contains(t, body, "SECURED")
	assert.Contains(t, body, "Transaction methods are locked for non-administrative entities.")
	assert.NotContains(t, body, "Reconfigure")
}

func TestOrders_ActionsOnlyForPending(t *testing.T) {
	p := newPortal(t)
	p.api.AddOrder("thanos", "COMPLETED", map[uint]int{2: 4})
	p.login(t, "marvel")

	body := p.do(http.MethodGet, "/orders", nil).Body.String()
	assert.Contains(t, body, "COMPLETED")
	assert.Contains(t, body, "$200.00")
	assert.NotContains(t, body, "Process Payment")
	assert.NotContains(t, body, "Abort Order")
}

func TestOrders_EmptyList(t *testing.T) {
	p := newPortal(t)
	p.login(t, "thanos")

	body := p.do(http.MethodGet, "/orders", nil).Body.String()
	assert.Contains(t, body, "No active orders")
}

func TestOrders_PartialFailure(t *testing.T) {
	p := newPortal(t)
	p.api.AddOrder("thanos", "PENDING", map[uint]int{3: 1})
	p.api.Fail("GET /payment-methods", http.StatusInternalServerError, "boom")
	p.login(t, "marvel")

	w := p.do(http.MethodGet, "/orders", nil)
	require.Equal(t, http.StatusOK, w.Code)
	body := w.Body.String()
	assert.Contains(t, body, "Failed to load payment methods")
	assert.Contains(t, body, "Biryani")
}

func TestOrderAction_Checkout(t *testing.T) {
	p := newPortal(t)
	id := p.api.AddOrder("thanos", "PENDING", map[uint]int{1: 1})
	p.login(t, "marvel")

	w := p.do(http.MethodPost, fmt.Sprintf("/orders/%d/checkout", id), nil)
	assert.Equal(t, http.StatusSeeOther, w.Code)
	assert.Equal(t, "/orders", w.Header().Get("Location"))
	assert.Equal(t, "COMPLETED", p.api.OrderStatus(id))
}

func TestOrderAction_Cancel(t *testing.T) {
	p := newPortal(t)
	id := p.api.AddOrder("travis", "PENDING", map[uint]int{4: 1})
	p.login(t, "fury")

	w := p.do(http.MethodPost, fmt.Sprintf("/orders/%d/cancel", id), nil)
	assert.Equal(t, http.StatusSeeOther, w.Code)
	assert.Equal(t, "CANCELLED", p.api.OrderStatus(id))
}

func TestOrderAction_MemberIsForwardedAndRejected(t *testing.T) {
	p := newPortal(t)
	id := p.api.AddOrder("thanos", "PENDING", map[uint]int{1: 1})
	p.login(t, "thanos")

	w := p.do(http.MethodPost, fmt.Sprintf("/orders/%d/cancel", id), nil)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "Operation not permitted for your role")
	assert.Equal(t, 1, p.api.Calls(fmt.Sprintf("POST /orders/%d/cancel", id)))
	assert.Equal(t, "PENDING", p.api.OrderStatus(id))
}

func TestOrderAction_AlertReturnsToOrders(t *testing.T) {
	p := newPortal(t)
	id := p.api.AddOrder("thanos", "PENDING", map[uint]int{1: 1})
	p.login(t, "thanos")

	w := p.do(http.MethodPost, fmt.Sprintf("/orders/%d/checkout", id), nil)
	require.Equal(t, http.StatusOK, w.Code)

	w = p.dismissAlert(t, w.Body.String())
	require.Equal(t, http.StatusOK, w.Code)
	body := w.Body.String()
	assert.Contains(t, body, "Order Management")
	assert.Contains(t, body, fmt.Sprintf("Order #%d", id))
	assert.NotContains(t, body, "Operation not permitted for your role")
	assert.Equal(t, 1, p.api.Calls(fmt.Sprintf("POST /orders/%d/checkout", id)))
}

func TestOrderAction_FailureWithoutDetail(t *testing.T) {
	p := newPortal(t)
	id := p.api.AddOrder("thanos", "PENDING", map[uint]int{1: 1})
	route := fmt.Sprintf("POST /orders/%d/checkout", id)
	p.api.Fail(route, http.StatusInternalServerError, "")
	p.login(t, "fury")

	w := p.do(http.MethodPost, fmt.Sprintf("/orders/%d/checkout", id), nil)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "Failed to checkout")
}

func TestOrderAction_Unknown(t *testing.T) {
	p := newPortal(t)
	p.login(t, "fury")

	w := p.do(http.MethodPost, "/orders/1/refund", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Equal(t, 0, p.api.Calls("POST /orders/1/refund"))
}

func TestUpdatePaymentMethod(t *testing.T) {
	p := newPortal(t)
	p.login(t, "fury")

	w := p.do(http.MethodPost, "/payment-methods/2", url.Values{"type": {"  BITCOIN "}})
	assert.Equal(t, http.StatusSeeOther, w.Code)
	assert.Equal(t, "/orders", w.Header().Get("Location"))
	assert.Equal(t, "BITCOIN", p.api.PaymentType(2))
}

func TestUpdatePaymentMethod_BlankIsCancelled(t *testing.T) {
	p := newPortal(t)
	p.login(t, "fury")

	w := p.do(http.MethodPost, "/payment-methods/2", url.Values{"type": {"   "}})
	assert.Equal(t, http.StatusSeeOther, w.Code)
	assert.Equal(t, 0, p.api.Calls("PUT /payment-methods/2"))
	assert.Equal(t, "UPI", p.api.PaymentType(2))
}

func TestUpdatePaymentMethod_Rejected(t *testing.T) {
	p := newPortal(t)
	p.login(t, "thanos")

	w := p.do(http.MethodPost, "/payment-methods/4", url.Values{"type": {"CASH"}})
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "Operation not permitted for your role")
	assert.Equal(t, "UPI", p.api.PaymentType(4))
}

func TestUpdatePaymentMethod_FailureWithoutDetail(t *testing.T) {
	p := newPortal(t)
	p.api.Fail("PUT /payment-methods/2", http.StatusInternalServerError, "")
	p.login(t, "fury")

	w := p.do(http.MethodPost, "/payment-methods/2", url.Values{"type": {"CASH"}})
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "Failed to update payment method")
}
