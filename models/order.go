package models

import "github.com/shopspring/decimal"

type OrderStatus string

const (
	OrderStatusPending   OrderStatus = "PENDING"
	OrderStatusCompleted OrderStatus = "COMPLETED"
	OrderStatusCancelled OrderStatus = "CANCELLED"
)

type Order struct {
	ID      uint        `json:"id"`
	UserID  uint        `json:"user_id"`
	Status  OrderStatus `json:"status"`
	Country string      `json:"country"`
	Items   []OrderItem `json:"items"`
}

// IsPending reports whether the order still accepts checkout or cancel.
func (o Order) IsPending() bool {
	return o.Status == OrderStatusPending
}

// Total is recomputed from the line items on every call.
func (o Order) Total() decimal.Decimal {
	total := decimal.Zero
	for _, item := range o.Items {
		total = total.Add(item.Subtotal())
	}
	return total
}

func (o Order) ItemCount() int {
	count := 0
	for _, item := range o.Items {
		count += item.Quantity
	}
	return count
}
