package models

import (
	"sort"
	"strconv"
	"strings"

	"github.com/shopspring/decimal"
)

// Cart maps a menu item id to the requested quantity. Quantities are always
// at least 1; an item whose quantity would drop to zero is removed.
type Cart map[uint]int

// PriceLookup maps a menu item id to its unit price.
type PriceLookup map[uint]decimal.Decimal

// UpdateCart returns a copy of cart with delta applied to itemID.
func UpdateCart(cart Cart, itemID uint, delta int) Cart {
	next := make(Cart, len(cart)+1)
	for id, qty := range cart {
		next[id] = qty
	}

	qty := next[itemID] + delta
	if qty <= 0 {
		delete(next, itemID)
		return next
	}
	next[itemID] = qty
	return next
}

// CartTotal sums quantity x unit price over the cart. Items missing from
// prices contribute nothing.
func CartTotal(cart Cart, prices PriceLookup) decimal.Decimal {
	total := decimal.Zero
	for id, qty := range cart {
		price, ok := prices[id]
		if !ok {
			continue
		}
		total = total.Add(price.Mul(decimal.NewFromInt(int64(qty))))
	}
	return total
}

func (c Cart) IsEmpty() bool {
	return len(c) == 0
}

func (c Cart) ItemCount() int {
	count := 0
	for _, qty := range c {
		count += qty
	}
	return count
}

// IDs returns the item ids in ascending order.
func (c Cart) IDs() []uint {
	ids := make([]uint, 0, len(c))
	for id := range c {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	return ids
}

// Lines converts the cart into the order-creation payload.
func (c Cart) Lines() []OrderLine {
	lines := make([]OrderLine, 0, len(c))
	for _, id := range c.IDs() {
		lines = append(lines, OrderLine{MenuItemID: id, Quantity: c[id]})
	}
	return lines
}

// Encode renders the cart as "id:qty,id:qty" so a page can carry it in a
// form field.
func (c Cart) Encode() string {
	parts := make([]string, 0, len(c))
	for _, id := range c.IDs() {
		parts = append(parts, strconv.FormatUint(uint64(id), 10)+":"+strconv.Itoa(c[id]))
	}
	return strings.Join(parts, ",")
}

// ParseCart is the inverse of Encode. Malformed pairs and non-positive
// quantities are dropped.
func ParseCart(raw string) Cart {
	cart := Cart{}
	for _, pair := range strings.Split(raw, ",") {
		idPart, qtyPart, ok := strings.Cut(strings.TrimSpace(pair), ":")
		if !ok {
			continue
		}
		id, err := strconv.ParseUint(idPart, 10, 64)
		if err != nil || id == 0 {
			continue
		}
		qty, err := strconv.Atoi(qtyPart)
		if err != nil || qty <= 0 {
			continue
		}
		cart[uint(id)] += qty
	}
	return cart
}
