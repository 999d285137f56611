package services

import (
	"context"
	"fmt"

	"golang.org/x/sync/errgroup"

	"github.com/PrathamTiwari-max/fullstack-food-ordering-rbac/models"
	"github.com/PrathamTiwari-max/fullstack-food-ordering-rbac/utils"
)

// Gateway is every remote operation the portal's views use. *APIClient
// implements it.
type Gateway interface {
	Authenticator
	ListRestaurants(ctx context.Context, token string) ([]models.Restaurant, error)
	GetRestaurant(ctx context.Context, token string, id uint) (*models.Restaurant, error)
	ListOrders(ctx context.Context, token string) ([]models.Order, error)
	CreateOrder(ctx context.Context, token string, lines []models.OrderLine) (*models.Order, error)
	TransitionOrder(ctx context.Context, token string, orderID uint, action models.Action) (*models.Order, error)
	ListPaymentMethods(ctx context.Context, token string) ([]models.PaymentMethod, error)
	UpdatePaymentMethod(ctx context.Context, token string, id uint, methodType string) (*models.PaymentMethod, error)
}

var _ Gateway = (*APIClient)(nil)

// PlaceOrder submits cart as one order. An empty cart never reaches the API.
func PlaceOrder(ctx context.Context, gw Gateway, token string, cart models.Cart) (*models.Order, error) {
	if cart.IsEmpty() {
		return nil, ErrEmptyCart
	}
	order, err := gw.CreateOrder(ctx, token, cart.Lines())
	if err != nil {
		return nil, fmt.Errorf("place order: %w", err)
	}
	utils.InfoLogger.Infof("order %d placed with %d items", order.ID, cart.ItemCount())
	return order, nil
}

// OrdersBoard is what the Orders view renders. A list whose fetch failed is
// empty and its error is kept for the banner.
type OrdersBoard struct {
	Orders         []models.Order
	PaymentMethods []models.PaymentMethod
	OrdersErr      error
	PaymentsErr    error
}

// LoadOrdersBoard fetches orders and payment methods concurrently and waits
// for both. One failing does not hold back the other.
func LoadOrdersBoard(ctx context.Context, gw Gateway, token string) OrdersBoard {
	var board OrdersBoard
	var g errgroup.Group

	g.Go(func() error {
		orders, err := gw.ListOrders(ctx, token)
		if err != nil {
			utils.ErrorLogger.Errorf("fetch orders: %v", err)
			board.OrdersErr = err
			return nil
		}
		board.Orders = orders
		return nil
	})
	g.Go(func() error {
		methods, err := gw.ListPaymentMethods(ctx, token)
		if err != nil {
			utils.ErrorLogger.Errorf("fetch payment methods: %v", err)
			board.PaymentsErr = err
			return nil
		}
		board.PaymentMethods = methods
		return nil
	})

	_ = g.Wait()
	return board
}
