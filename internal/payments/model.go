// Package payments records money moving in from customers and out to
// suppliers. Payments never touch the stock ledger.
package payments

import "time"

type Type string

const (
	TypeCustomer Type = "Customer"
	TypeSupplier Type = "Supplier"
)

func (t Type) Valid() bool {
	return t == TypeCustomer || t == TypeSupplier
}

type Mode string

const (
	ModeCash   Mode = "Cash"
	ModeBank   Mode = "Bank"
	ModeOnline Mode = "Online"
)

func (m Mode) Valid() bool {
	switch m {
	case ModeCash, ModeBank, ModeOnline:
		return true
	}
	return false
}

// Payment has exactly one counterpart, matching its type: a customer for
// incoming money, a supplier for outgoing. Both ids are weak references.
type Payment struct {
	ID               int64     `json:"id"`
	PaymentNumber    string    `json:"payment_number"`
	Type             Type      `json:"type"`
	CustomerID       *int64    `json:"customer_id,omitempty"`
	SupplierID       *int64    `json:"supplier_id,omitempty"`
	CounterpartyName string    `json:"counterparty_name,omitempty"`
	Amount           float64   `json:"amount"`
	Mode             Mode      `json:"mode"`
	PaymentDate      time.Time `json:"payment_date"`
	Reference        string    `json:"reference,omitempty"`
	Notes            string    `json:"notes,omitempty"`
	CreatedAt        time.Time `json:"created_at"`
	UpdatedAt        time.Time `json:"updated_at"`
}
