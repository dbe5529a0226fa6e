package items

// ItemForm carries the client payload for create and update.
type ItemForm struct {
	Name         string  `json:"name" validate:"required"`
	SKU          *string `json:"sku,omitempty"`
	Category     string  `json:"category"`
	SellingPrice float64 `json:"selling_price" validate:"gte=0"`
	Unit         string  `json:"unit" validate:"required"`
	IsActive     *bool   `json:"is_active,omitempty"`
}
