package controllers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/PrathamTiwari-max/fullstack-food-ordering-rbac/middlewares"
	"github.com/PrathamTiwari-max/fullstack-food-ordering-rbac/models"
	"github.com/PrathamTiwari-max/fullstack-food-ordering-rbac/services"
	"github.com/PrathamTiwari-max/fullstack-food-ordering-rbac/utils"
	"github.com/PrathamTiwari-max/fullstack-food-ordering-rbac/views"
)

const noticeOrderPlaced = "order_placed"

var notices = map[string]string{
	noticeOrderPlaced: "Order Placed Successfully!",
}

type OrderController struct {
	API services.Gateway
}

func NewOrderController(api services.Gateway) *OrderController {
	return &OrderController{API: api}
}

// List renders the orders and payment methods visible to the user.
func (oc *OrderController) List(c *gin.Context) {
	renderOrders(c, oc.API, notices[c.Query("notice")], "")
}

// Action checks out or cancels a pending order. The request is forwarded
// whatever the user's role; the backend has the final word.
func (oc *OrderController) Action(c *gin.Context) {
	action, ok := models.ParseOrderAction(c.Param("action"))
	id, okID := pathID(c, "id")
	if !ok || !okID {
		renderDenied(c, http.StatusNotFound, "Not found", "Unknown order action.")
		return
	}

	if _, err := oc.API.TransitionOrder(c.Request.Context(), bearer(c), id, action); err != nil {
		if sessionExpired(c, err) {
			return
		}
		utils.ErrorLogger.Errorf("%s order %d: %v", action, id, err)
		renderOrders(c, oc.API, "", services.DetailOr(err, "Failed to "+string(action)))
		return
	}

	utils.InfoLogger.Infof("order %d: %s done", id, action)
	c.Redirect(http.StatusSeeOther, "/orders")
}

// renderOrders re-fetches both lists and renders the orders page. alert is
// the failure of the action that led here, if any.
func renderOrders(c *gin.Context, api services.Gateway, notice, alert string) {
	board := services.LoadOrdersBoard(c.Request.Context(), api, bearer(c))
	if sessionExpired(c, errors.Join(board.OrdersErr, board.PaymentsErr)) {
		return
	}

	user := middlewares.CurrentUser(c)
	view := views.OrdersView{
		Page:           page(c, "Orders"),
		PaymentMethods: board.PaymentMethods,
		CanEditPayment: models.CanPerform(user, models.ActionReconfigurePayment),
	}
	if user != nil {
		view.Role = user.Role
	}
	view.Notice = notice
	view.Alert = alert
	view.Dismiss = "/orders"
	switch {
	case board.OrdersErr != nil:
		view.Banner = "Failed to load orders"
	case board.PaymentsErr != nil:
		view.Banner = "Failed to load payment methods"
	}

	canCheckout := models.CanPerform(user, models.ActionCheckout)
	canCancel := models.CanPerform(user, models.ActionCancel)
	for _, o := range board.Orders {
		view.Orders = append(view.Orders, views.OrderCard{
			Order:       o,
			Total:       o.Total(),
			ItemCount:   o.ItemCount(),
			CanCheckout: canCheckout,
			CanCancel:   canCancel,
		})
	}

	c.HTML(http.StatusOK, views.PageOrders, view)
}
