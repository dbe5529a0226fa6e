package orders

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

// SalesOrder is an outbound order. CustomerID and line ItemIDs are weak
// references; reads resolve deleted counterparts to placeholders.
type SalesOrder struct {
	ID           int64            `json:"id"`
	OrderNumber  string           `json:"order_number"`
	CustomerID   int64            `json:"customer_id"`
	CustomerName string           `json:"customer_name,omitempty"`
	OrderDate    time.Time        `json:"order_date"`
	Status       Status           `json:"status"`
	TotalAmount  float64          `json:"total_amount"`
	Notes        string           `json:"notes,omitempty"`
	CreatedAt    time.Time        `json:"created_at"`
	UpdatedAt    time.Time        `json:"updated_at"`
	Lines        []SalesOrderLine `json:"items,omitempty"`
}

// SalesOrderLine totals are always derived server side as quantity times
// unit price; client supplied totals are ignored.
type SalesOrderLine struct {
	ID           int64   `json:"id"`
	SalesOrderID int64   `json:"sales_order_id"`
	ItemID       int64   `json:"item_id"`
	ItemName     string  `json:"item_name,omitempty"`
	Quantity     float64 `json:"quantity"`
	UnitPrice    float64 `json:"unit_price"`
	Total        float64 `json:"total"`
}
