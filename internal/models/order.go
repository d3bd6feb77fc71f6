package models

import (
	"time"

	"github.com/google/uuid"
)

type OrderStatus string

const (
	OrderStatusPlaced    OrderStatus = "placed"
	OrderStatusDelivered OrderStatus = "delivered"
	OrderStatusCancelled OrderStatus = "cancelled"
)

// Order is a snapshot of the cart at checkout time. Prices are captured on
// the order so later catalog changes do not rewrite history.
type Order struct {
	ID            uuid.UUID    `json:"id"`
	UserID        uuid.UUID    `json:"user_id"`
	Lines         []PricedLine `json:"lines"`
	ItemCount     int          `json:"item_count"`
	TotalPrice    float64      `json:"total_price"`
	TotalDiscount float64      `json:"total_discount"`
	Address       string       `json:"address"`
	Email         string       `json:"email,omitempty"`
	Status        OrderStatus  `json:"status"`
	CreatedAt     time.Time    `json:"created_at"`
}

type CheckoutRequest struct {
	Address string `json:"address" validate:"required,min=3,max=300"`
	Email   string `json:"email,omitempty" validate:"omitempty,email"`
}
