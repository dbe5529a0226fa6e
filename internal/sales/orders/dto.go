package orders

import (
	"net/http"
	"strconv"
	"time"

	"github.com/omar-zaman/omam-fms/internal/masterdata/shared"
)

type OrderLineRequest struct {
	ItemID    int64   `json:"item_id" validate:"required,gt=0"`
	Quantity  float64 `json:"quantity" validate:"required,gt=0"`
	UnitPrice float64 `json:"unit_price" validate:"gte=0"`
}

// OrderRequest serves both create and update. Create requires a customer and
// at least one item (enforced in the service); update treats every field as
// optional and merges with the stored order.
type OrderRequest struct {
	OrderNumber string             `json:"order_number"`
	CustomerID  int64              `json:"customer_id" validate:"omitempty,gt=0"`
	OrderDate   *time.Time         `json:"order_date,omitempty"`
	Status      string             `json:"status"`
	Notes       string             `json:"notes"`
	Lines       []OrderLineRequest `json:"items" validate:"omitempty,dive"`
}

type ListFilters struct {
	Page       int
	Limit      int
	Search     string
	Status     string
	CustomerID *int64
	DateFrom   *time.Time
	DateTo     *time.Time
}

func FiltersFromQuery(r *http.Request) ListFilters {
	q := r.URL.Query()

	page, _ := strconv.Atoi(q.Get("page"))
	if page < 1 {
		page = shared.DefaultPage
	}
	limit, _ := strconv.Atoi(q.Get("limit"))
	if limit < 1 {
		limit = shared.DefaultLimit
	}

	filters := ListFilters{
		Page:   page,
		Limit:  limit,
		Search: q.Get("search"),
		Status: q.Get("status"),
	}
	if v := q.Get("customer_id"); v != "" {
		if id, err := strconv.ParseInt(v, 10, 64); err == nil {
			filters.CustomerID = &id
		}
	}
	if v := q.Get("date_from"); v != "" {
		if t, err := time.Parse("2006-01-02", v); err == nil {
			filters.DateFrom = &t
		}
	}
	if v := q.Get("date_to"); v != "" {
		if t, err := time.Parse("2006-01-02", v); err == nil {
			filters.DateTo = &t
		}
	}
	return filters
}
