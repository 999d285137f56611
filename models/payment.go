package models

// PaymentMethod type is free text; the backend decides what it accepts.
type PaymentMethod struct {
	ID     uint   `json:"id"`
	UserID uint   `json:"user_id"`
	Type   string `json:"type"`
}
