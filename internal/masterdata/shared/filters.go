package shared

import (
	"net/http"
	"strconv"
)

// ListFilters represents standard list filters shared by catalog endpoints.
type ListFilters struct {
	Page    int
	Limit   int
	Search  string
	SortBy  string
	SortDir string

	IsActive *bool

	// Entity specific filters
	SupplierID *int64
}

// FiltersFromQuery extracts the common list filters from a request.
func FiltersFromQuery(r *http.Request) ListFilters {
	q := r.URL.Query()

	page, _ := strconv.Atoi(q.Get("page"))
	if page < 1 {
		page = DefaultPage
	}
	limit, _ := strconv.Atoi(q.Get("limit"))
	if limit < 1 {
		limit = DefaultLimit
	}

	filters := ListFilters{
		Page:    page,
		Limit:   limit,
		Search:  q.Get("search"),
		SortBy:  q.Get("sort"),
		SortDir: q.Get("dir"),
	}
	if v := q.Get("is_active"); v != "" {
		isActive := v == "true"
		filters.IsActive = &isActive
	}
	if v := q.Get("supplier_id"); v != "" {
		if id, err := strconv.ParseInt(v, 10, 64); err == nil {
			filters.SupplierID = &id
		}
	}
	return filters
}
