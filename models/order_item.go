package models

import "github.com/shopspring/decimal"

// OrderItem embeds a snapshot of the menu item as it was when the order was
// listed; price and name come from that snapshot.
type OrderItem struct {
	ID       uint     `json:"id"`
	MenuItem MenuItem `json:"menu_item"`
	Quantity int      `json:"quantity"`
}

func (i OrderItem) Subtotal() decimal.Decimal {
	return i.MenuItem.Price.Mul(decimal.NewFromInt(int64(i.Quantity)))
}

// OrderLine is one entry of an order-creation request.
type OrderLine struct {
	MenuItemID uint `json:"menu_item_id"`
	Quantity   int  `json:"quantity"`
}
