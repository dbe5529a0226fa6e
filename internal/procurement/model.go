// Package procurement owns purchase orders and their effect on the stock
// ledger: completed purchases add material stock, amendments reverse it.
package procurement

import "time"

type Status string

const (
	StatusPending   Status = "Pending"
	StatusCompleted Status = "Completed"
	StatusCancelled Status = "Cancelled"
)

func (s Status) Valid() bool {
	switch s {
	case StatusPending, StatusCompleted, StatusCancelled:
		return true
	}
	return false
}

// PurchaseOrder is an inbound order. SupplierID and line MaterialIDs are weak
// references; reads resolve deleted counterparts to placeholders.
type PurchaseOrder struct {
	ID           int64               `json:"id"`
	OrderNumber  string              `json:"order_number"`
	SupplierID   int64               `json:"supplier_id"`
	SupplierName string              `json:"supplier_name,omitempty"`
	OrderDate    time.Time           `json:"order_date"`
	Status       Status              `json:"status"`
	TotalAmount  float64             `json:"total_amount"`
	Notes        string              `json:"notes,omitempty"`
	CreatedAt    time.Time           `json:"created_at"`
	UpdatedAt    time.Time           `json:"updated_at"`
	Lines        []PurchaseOrderLine `json:"materials,omitempty"`
}

// PurchaseOrderLine totals are always derived server side as quantity times
// unit cost; client supplied totals are ignored.
type PurchaseOrderLine struct {
	ID              int64   `json:"id"`
	PurchaseOrderID int64   `json:"purchase_order_id"`
	MaterialID      int64   `json:"material_id"`
	MaterialName    string  `json:"material_name,omitempty"`
	Quantity        float64 `json:"quantity"`
	UnitCost        float64 `json:"unit_cost"`
	Total           float64 `json:"total"`
}
