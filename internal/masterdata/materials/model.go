package materials

import "time"

// Material is a purchasable raw-material catalog entry. SupplierID is a weak
// reference; deleting the supplier leaves it dangling.
type Material struct {
	ID         int64     `json:"id"`
	Name       string    `json:"name"`
	SKU        *string   `json:"sku,omitempty"`
	Unit       string    `json:"unit"`
	Cost       float64   `json:"cost"`
	SupplierID *int64    `json:"supplier_id,omitempty"`
	IsActive   bool      `json:"is_active"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`
}
