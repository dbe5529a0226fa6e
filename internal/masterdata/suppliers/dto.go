package suppliers

// SupplierForm carries the client payload for create and update.
type SupplierForm struct {
	Name          string `json:"name" validate:"required"`
	ContactPerson string `json:"contact_person"`
	Phone         string `json:"phone"`
	Email         string `json:"email" validate:"omitempty,email"`
	Address       string `json:"address"`
	IsActive      *bool  `json:"is_active,omitempty"`
}
