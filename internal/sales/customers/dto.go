package customers

// CustomerForm carries the client payload for create and update.
type CustomerForm struct {
	Name           string  `json:"name" validate:"required"`
	Phone          string  `json:"phone"`
	Email          string  `json:"email" validate:"omitempty,email"`
	Address        string  `json:"address"`
	OpeningBalance float64 `json:"opening_balance"`
	IsActive       *bool   `json:"is_active,omitempty"`
}
