package payments

import (
	"net/http"
	"strconv"
	"time"

	"github.com/omar-zaman/omam-fms/internal/masterdata/shared"
)

type PaymentForm struct {
	PaymentNumber string     `json:"payment_number"`
	Type          string     `json:"type" validate:"required"`
	CustomerID    *int64     `json:"customer_id,omitempty"`
	SupplierID    *int64     `json:"supplier_id,omitempty"`
	Amount        float64    `json:"amount" validate:"required,gt=0"`
	Mode          string     `json:"mode" validate:"required"`
	PaymentDate   *time.Time `json:"payment_date,omitempty"`
	Reference     string     `json:"reference"`
	Notes         string     `json:"notes"`
}

type ListFilters struct {
	Page       int
	Limit      int
	Search     string
	Type       string
	Mode       string
	CustomerID *int64
	SupplierID *int64
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
		Type:   q.Get("type"),
		Mode:   q.Get("mode"),
	}
	if v := q.Get("customer_id"); v != "" {
		if id, err := strconv.ParseInt(v, 10, 64); err == nil {
			filters.CustomerID = &id
		}
	}
	if v := q.Get("supplier_id"); v != "" {
		if id, err := strconv.ParseInt(v, 10, 64); err == nil {
			filters.SupplierID = &id
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
