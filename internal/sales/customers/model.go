package customers

import "time"

// Customer is a sales counterparty. OpeningBalance is the carried-over balance
// at the time the record was created; it is never recomputed.
type Customer struct {
	ID             int64     `json:"id"`
	Name           string    `json:"name"`
	Phone          string    `json:"phone,omitempty"`
	Email          string    `json:"email,omitempty"`
	Address        string    `json:"address,omitempty"`
	OpeningBalance float64   `json:"opening_balance"`
	IsActive       bool      `json:"is_active"`
	CreatedAt      time.Time `json:"created_at"`
	UpdatedAt      time.Time `json:"updated_at"`
}
