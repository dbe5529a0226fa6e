package app

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"

	"github.com/omar-zaman/omam-fms/internal/auth"
	"github.com/omar-zaman/omam-fms/internal/inventory"
	"github.com/omar-zaman/omam-fms/internal/masterdata/items"
	"github.com/omar-zaman/omam-fms/internal/masterdata/materials"
	"github.com/omar-zaman/omam-fms/internal/masterdata/suppliers"
	"github.com/omar-zaman/omam-fms/internal/observability"
	"github.com/omar-zaman/omam-fms/internal/payments"
	"github.com/omar-zaman/omam-fms/internal/procurement"
	"github.com/omar-zaman/omam-fms/internal/reports"
	"github.com/omar-zaman/omam-fms/internal/sales/customers"
	"github.com/omar-zaman/omam-fms/internal/sales/orders"
)

// RouterParams groups dependencies for building the HTTP router.
type RouterParams struct {
	Logger             *slog.Logger
	Config             *Config
	AuthHandler        *auth.Handler
	AuthMiddleware     auth.Middleware
	ItemsHandler       *items.Handler
	MaterialsHandler   *materials.Handler
	SuppliersHandler   *suppliers.Handler
	CustomersHandler   *customers.Handler
	SalesOrdersHandler *orders.Handler
	ProcurementHandler *procurement.Handler
	PaymentsHandler    *payments.Handler
	InventoryHandler   *inventory.Handler
	ReportsHandler     *reports.Handler
	Metrics            *observability.Metrics
}

// NewRouter constructs the chi.Router with application defaults.
func NewRouter(params RouterParams) http.Handler {
	r := chi.NewRouter()

	for _, mw := range MiddlewareStack(MiddlewareConfig{
		Logger:  params.Logger,
		Config:  params.Config,
		Metrics: params.Metrics,
	}) {
		r.Use(mw)
	}

	r.Use(chimw.Logger)

	r.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte(`{"status":"ok"}`))
	})
	r.Method(http.MethodGet, "/metrics", params.Metrics.Handler())

	r.Route("/api", func(api chi.Router) {
		api.Route("/auth", func(ar chi.Router) {
			params.AuthHandler.MountRoutes(ar)
			ar.Group(func(pr chi.Router) {
				pr.Use(params.AuthMiddleware.Require)
				params.AuthHandler.MountProtectedRoutes(pr)
			})
		})

		api.Group(func(pr chi.Router) {
			pr.Use(params.AuthMiddleware.Require)

			pr.Route("/items", params.ItemsHandler.MountRoutes)
			pr.Route("/materials", params.MaterialsHandler.MountRoutes)
			pr.Route("/suppliers", params.SuppliersHandler.MountRoutes)
			pr.Route("/customers", params.CustomersHandler.MountRoutes)
			pr.Route("/sales-orders", params.SalesOrdersHandler.MountRoutes)
			pr.Route("/purchase-orders", params.ProcurementHandler.MountRoutes)
			pr.Route("/payments", params.PaymentsHandler.MountRoutes)
			pr.Route("/inventory", params.InventoryHandler.MountRoutes)
			pr.Route("/reports", params.ReportsHandler.MountRoutes)
		})
	})

	return r
}
