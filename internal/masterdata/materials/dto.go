package materials

// MaterialForm carries the client payload for create and update.
type MaterialForm struct {
	Name       string  `json:"name" validate:"required"`
	SKU        *string `json:"sku,omitempty"`
	Unit       string  `json:"unit" validate:"required"`
	Cost       float64 `json:"cost" validate:"gte=0"`
	SupplierID *int64  `json:"supplier_id,omitempty"`
	IsActive   *bool   `json:"is_active,omitempty"`
}
