package reports

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/xuri/excelize/v2"

	"github.com/omar-zaman/omam-fms/internal/platform/httpx"
)

type Handler struct {
	logger  *slog.Logger
	service *Service
}

func NewHandler(logger *slog.Logger, service *Service) *Handler {
	return &Handler{logger: logger, service: service}
}

func (h *Handler) MountRoutes(r chi.Router) {
	r.Get("/sales-orders", h.Sales)
	r.Get("/purchase-orders", h.Purchases)
	r.Get("/customer-payments", h.CustomerPayments)
}

func (h *Handler) Sales(w http.ResponseWriter, r *http.Request) {
	report, err := h.service.Sales(r.Context(), FilterFromQuery(r))
	if err != nil {
		h.logger.Error("sales report failed", slog.Any("error", err))
		httpx.RespondError(w, err)
		return
	}
	if wantsExport(r) {
		f, err := SalesWorkbook(report)
		if err != nil {
			h.logger.Error("sales report export failed", slog.Any("error", err))
			httpx.RespondError(w, err)
			return
		}
		h.sendWorkbook(w, f, "sales-orders.xlsx")
		return
	}
	httpx.JSON(w, http.StatusOK, report)
}

func (h *Handler) Purchases(w http.ResponseWriter, r *http.Request) {
	report, err := h.service.Purchases(r.Context(), FilterFromQuery(r))
	if err != nil {
		h.logger.Error("purchase report failed", slog.Any("error", err))
		httpx.RespondError(w, err)
		return
	}
	if wantsExport(r) {
		f, err := PurchaseWorkbook(report)
		if err != nil {
			h.logger.Error("purchase report export failed", slog.Any("error", err))
			httpx.RespondError(w, err)
			return
		}
		h.sendWorkbook(w, f, "purchase-orders.xlsx")
		return
	}
	httpx.JSON(w, http.StatusOK, report)
}

func (h *Handler) CustomerPayments(w http.ResponseWriter, r *http.Request) {
	report, err := h.service.CustomerPayments(r.Context(), FilterFromQuery(r))
	if err != nil {
		h.logger.Error("payments report failed", slog.Any("error", err))
		httpx.RespondError(w, err)
		return
	}
	if wantsExport(r) {
		f, err := PaymentsWorkbook(report)
		if err != nil {
			h.logger.Error("payments report export failed", slog.Any("error", err))
			httpx.RespondError(w, err)
			return
		}
		h.sendWorkbook(w, f, "customer-payments.xlsx")
		return
	}
	httpx.JSON(w, http.StatusOK, report)
}

func wantsExport(r *http.Request) bool {
	return r.URL.Query().Get("export") == "xlsx"
}

func (h *Handler) sendWorkbook(w http.ResponseWriter, f *excelize.File, filename string) {
	w.Header().Set("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	w.Header().Set("Content-Disposition", `attachment; filename="`+filename+`"`)
	if err := f.Write(w); err != nil {
		h.logger.Error("workbook write failed", slog.Any("error", err))
	}
}
