// Package inventory keeps the stock ledger: one record per catalog entry,
// mutated only through the ledger primitives so the clamping and available
// stock invariants hold everywhere.
package inventory

import "time"

// RefKind names the catalog an inventory record belongs to. Items and
// materials have independent id sequences, so ledger rows are keyed by kind
// and id together; a sale of item 1 must never touch material 1's stock.
type RefKind string

const (
	KindItem     RefKind = "item"
	KindMaterial RefKind = "material"
)

// Record is the stock ledger row for one catalog entry. RefType plus ItemID
// form a weak reference into the item or material catalog; rows are created
// lazily on the first mutation. AvailableStock is derived and recomputed on
// every write.
type Record struct {
	ID             int64     `json:"id"`
	RefType        RefKind   `json:"ref_type"`
	ItemID         int64     `json:"item_id"`
	CurrentStock   float64   `json:"current_stock"`
	ReservedStock  float64   `json:"reserved_stock"`
	AvailableStock float64   `json:"available_stock"`
	CreatedAt      time.Time `json:"created_at"`
	UpdatedAt      time.Time `json:"updated_at"`
}

// StockView is a Record joined with the catalog name for listings.
type StockView struct {
	Record
	ItemName string `json:"item_name"`
	Unit     string `json:"unit,omitempty"`
}
