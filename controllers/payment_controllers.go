package controllers

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/PrathamTiwari-max/fullstack-food-ordering-rbac/services"
	"github.com/PrathamTiwari-max/fullstack-food-ordering-rbac/utils"
)

type PaymentController struct {
	API services.Gateway
}

func NewPaymentController(api services.Gateway) *PaymentController {
	return &PaymentController{API: api}
}

// UpdatePaymentMethod changes a payment method's type. A blank type is a
// cancelled edit and sends nothing.
func (pc *PaymentController) UpdatePaymentMethod(c *gin.Context) {
	methodType := strings.TrimSpace(c.PostForm("type"))
	id, ok := pathID(c, "id")
	if !ok || methodType == "" {
		c.Redirect(http.StatusSeeOther, "/orders")
		return
	}

	if _, err := pc.API.UpdatePaymentMethod(c.Request.Context(), bearer(c), id, methodType); err != nil {
		if sessionExpired(c, err) {
			return
		}
		utils.ErrorLogger.Errorf("update payment method %d: %v", id, err)
		renderOrders(c, pc.API, "", services.DetailOr(err, "Failed to update payment method"))
		return
	}

	utils.InfoLogger.Infof("payment method %d set to %s", id, methodType)
	c.Redirect(http.StatusSeeOther, "/orders")
}
