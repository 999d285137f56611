package models

import "github.com/shopspring/decimal"

type MenuItem struct {
	ID           uint            `json:"id"`
	RestaurantID uint            `json:"restaurant_id"`
	Name         string          `json:"name"`
	Price        decimal.Decimal `json:"price"`
}

type Restaurant struct {
	ID        uint       `json:"id"`
	Name      string     `json:"name"`
	Country   string     `json:"country"`
	MenuItems []MenuItem `json:"menu_items"`
}

// PriceLookup returns the unit price of every menu item keyed by item id.
func (r *Restaurant) PriceLookup() PriceLookup {
	prices := make(PriceLookup, len(r.MenuItems))
	for _, item := range r.MenuItems {
		prices[item.ID] = item.Price
	}
	return prices
}

// FindItem returns the menu item with the given id, if the restaurant serves it.
func (r *Restaurant) FindItem(id uint) (MenuItem, bool) {
	for _, item := range r.MenuItems {
		if item.ID == id {
			return item, true
		}
	}
	return MenuItem{}, false
}
