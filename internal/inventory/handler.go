package inventory

import (
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/omar-zaman/omam-fms/internal/masterdata/shared"
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
	r.Get("/", h.List)
	r.Get("/item/{itemId}", h.ShowByItem)
}

func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	filters := shared.FiltersFromQuery(r)
	views, total, err := h.service.List(r.Context(), filters)
	if err != nil {
		h.logger.Error("list inventory failed", slog.Any("error", err))
		httpx.RespondError(w, err)
		return
	}
	if views == nil {
		views = []StockView{}
	}
	shared.NewPagination(filters.Page, filters.Limit, total).SetHeaders(w)
	httpx.JSON(w, http.StatusOK, views)
}

func (h *Handler) ShowByItem(w http.ResponseWriter, r *http.Request) {
	itemID, err := strconv.ParseInt(chi.URLParam(r, "itemId"), 10, 64)
	if err != nil {
		httpx.Msg(w, http.StatusBadRequest, "invalid item ID")
		return
	}

	// item and material ids live in separate ledger keyspaces
	kind := KindItem
	if r.URL.Query().Get("kind") == string(KindMaterial) {
		kind = KindMaterial
	}

	rec, err := h.service.GetByItemID(r.Context(), kind, itemID)
	if err != nil {
		httpx.RespondError(w, err)
		return
	}
	httpx.JSON(w, http.StatusOK, rec)
}
