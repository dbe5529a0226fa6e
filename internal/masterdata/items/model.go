package items

import "time"

// Item is a sellable catalog entry.
type Item struct {
	ID           int64     `json:"id"`
	Name         string    `json:"name"`
	SKU          *string   `json:"sku,omitempty"`
	Category     string    `json:"category,omitempty"`
	SellingPrice float64   `json:"selling_price"`
	Unit         string    `json:"unit"`
	IsActive     bool      `json:"is_active"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}
