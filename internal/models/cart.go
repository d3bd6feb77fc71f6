package models

import (
	"time"

	"github.com/google/uuid"
)

// CartLine is one row of cart contents. At most one line exists per
// (product id, variant) pair; adding a matching product merges quantities.
type CartLine struct {
	ID        string `json:"id"`
	ProductID int    `json:"product_id"`
	Variant   string `json:"variant,omitempty"`
	Quantity  int    `json:"quantity"`
}

// Cart holds the lines in insertion order plus the panel visibility flag.
// It is serialized as-is to the key-value store after every mutation.
type Cart struct {
	UserID    uuid.UUID  `json:"user_id"`
	Lines     []CartLine `json:"lines"`
	Visible   bool       `json:"visible"`
	UpdatedAt time.Time  `json:"updated_at"`
}

// FindLine returns the index of the line matching (productID, variant),
// or -1. An empty variant matches an empty variant only.
func (c *Cart) FindLine(productID int, variant string) int {
	for i, line := range c.Lines {
		if line.ProductID == productID && line.Variant == variant {
			return i
		}
	}

	return -1
}

func (c *Cart) FindLineByID(lineID string) int {
	for i, line := range c.Lines {
		if line.ID == lineID {
			return i
		}
	}

	return -1
}

type AddItemRequest struct {
	ProductID int    `json:"product_id" validate:"required,min=1"`
	Quantity  int    `json:"quantity"   validate:"required,min=1"`
	Variant   string `json:"variant,omitempty" validate:"omitempty,max=32"`
}

type UpdateQuantityRequest struct {
	LineID   string `json:"line_id" validate:"required,uuid"`
	Quantity int    `json:"quantity"`
}

// PricedLine is a cart line joined with catalog pricing for responses.
type PricedLine struct {
	CartLine
	Name          string  `json:"name"`
	UnitPrice     float64 `json:"unit_price"`
	OriginalPrice float64 `json:"original_price"`
	LineTotal     float64 `json:"line_total"`
}

type CartSummary struct {
	Lines         []PricedLine `json:"lines"`
	ItemCount     int          `json:"item_count"`
	TotalPrice    float64      `json:"total_price"`
	TotalDiscount float64      `json:"total_discount"`
	UpdatedAt     time.Time    `json:"updated_at"`
}
