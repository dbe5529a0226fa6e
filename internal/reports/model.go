// Package reports aggregates order and payment totals over date and
// counterparty filters. Results are cached briefly in redis and identical
// concurrent requests collapse into one query.
package reports

import (
	"net/http"
	"strconv"
	"time"

	"github.com/omar-zaman/omam-fms/internal/payments"
	"github.com/omar-zaman/omam-fms/internal/procurement"
	"github.com/omar-zaman/omam-fms/internal/sales/orders"
)

type SalesReport struct {
	Orders     []orders.SalesOrder `json:"orders"`
	TotalSales float64             `json:"total_sales"`
	Count      int                 `json:"count"`
}

type PurchaseReport struct {
	Orders         []procurement.PurchaseOrder `json:"orders"`
	TotalPurchases float64                     `json:"total_purchases"`
	Count          int                         `json:"count"`
}

type PaymentReport struct {
	Payments      []payments.Payment `json:"payments"`
	TotalPayments float64            `json:"total_payments"`
	Count         int                `json:"count"`
}

type Filter struct {
	DateFrom   *time.Time
	DateTo     *time.Time
	CustomerID *int64
	SupplierID *int64
}

func FilterFromQuery(r *http.Request) Filter {
	q := r.URL.Query()

	var f Filter
	if v := q.Get("dateFrom"); v != "" {
		if t, err := time.Parse("2006-01-02", v); err == nil {
			f.DateFrom = &t
		}
	}
	if v := q.Get("dateTo"); v != "" {
		if t, err := time.Parse("2006-01-02", v); err == nil {
			f.DateTo = &t
		}
	}
	if v := q.Get("customerId"); v != "" {
		if id, err := strconv.ParseInt(v, 10, 64); err == nil {
			f.CustomerID = &id
		}
	}
	if v := q.Get("supplierId"); v != "" {
		if id, err := strconv.ParseInt(v, 10, 64); err == nil {
			f.SupplierID = &id
		}
	}
	return f
}

func (f Filter) cacheKey(kind string) string {
	key := "fms:report:" + kind
	if f.DateFrom != nil {
		key += ":from=" + f.DateFrom.Format("2006-01-02")
	}
	if f.DateTo != nil {
		key += ":to=" + f.DateTo.Format("2006-01-02")
	}
	if f.CustomerID != nil {
		key += ":customer=" + strconv.FormatInt(*f.CustomerID, 10)
	}
	if f.SupplierID != nil {
		key += ":supplier=" + strconv.FormatInt(*f.SupplierID, 10)
	}
	return key
}
