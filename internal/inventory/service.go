package inventory

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/omar-zaman/omam-fms/internal/masterdata/shared"
	"github.com/omar-zaman/omam-fms/internal/observability"
	"github.com/omar-zaman/omam-fms/internal/platform/httpx"
)

// RecordStore is the transactional surface the ledger mutates through.
// *TxStore implements it over pgx; tests substitute an in-memory store.
type RecordStore interface {
	GetForUpdate(ctx context.Context, kind RefKind, itemID int64) (Record, error)
	Save(ctx context.Context, rec Record) error
}

// Ledger applies the stock mutation primitives. Negative results clamp at
// zero rather than failing the order, and every clamp is counted.
type Ledger struct {
	logger  *slog.Logger
	metrics *observability.Metrics
}

func NewLedger(logger *slog.Logger, metrics *observability.Metrics) *Ledger {
	return &Ledger{logger: logger, metrics: metrics}
}

// Reserve earmarks quantity for a pending order.
func (l *Ledger) Reserve(ctx context.Context, store RecordStore, kind RefKind, itemID int64, qty float64) error {
	return l.mutate(ctx, store, kind, itemID, func(rec *Record) {
		rec.ReservedStock += qty
	})
}

// Release returns a reservation, e.g. when a pending order is cancelled.
func (l *Ledger) Release(ctx context.Context, store RecordStore, kind RefKind, itemID int64, qty float64) error {
	return l.mutate(ctx, store, kind, itemID, func(rec *Record) {
		rec.ReservedStock = l.clamp(rec.ReservedStock-qty, itemID, "reserved_stock")
	})
}

// Deduct consumes stock for a completed sale, dropping both the on-hand
// quantity and any reservation the order held.
func (l *Ledger) Deduct(ctx context.Context, store RecordStore, kind RefKind, itemID int64, qty float64) error {
	return l.mutate(ctx, store, kind, itemID, func(rec *Record) {
		rec.CurrentStock = l.clamp(rec.CurrentStock-qty, itemID, "current_stock")
		rec.ReservedStock = l.clamp(rec.ReservedStock-qty, itemID, "reserved_stock")
	})
}

// Add receives stock from a completed purchase.
func (l *Ledger) Add(ctx context.Context, store RecordStore, kind RefKind, itemID int64, qty float64) error {
	return l.mutate(ctx, store, kind, itemID, func(rec *Record) {
		rec.CurrentStock += qty
	})
}

// Reverse backs out previously added stock when a completed purchase is
// amended or removed.
func (l *Ledger) Reverse(ctx context.Context, store RecordStore, kind RefKind, itemID int64, qty float64) error {
	return l.mutate(ctx, store, kind, itemID, func(rec *Record) {
		rec.CurrentStock = l.clamp(rec.CurrentStock-qty, itemID, "current_stock")
	})
}

func (l *Ledger) mutate(ctx context.Context, store RecordStore, kind RefKind, itemID int64, apply func(*Record)) error {
	rec, err := store.GetForUpdate(ctx, kind, itemID)
	if err != nil {
		return err
	}
	apply(&rec)
	rec.AvailableStock = rec.CurrentStock - rec.ReservedStock
	if rec.AvailableStock < 0 {
		rec.AvailableStock = 0
	}
	return store.Save(ctx, rec)
}

func (l *Ledger) clamp(v float64, itemID int64, field string) float64 {
	if v >= 0 {
		return v
	}
	l.metrics.CountStockClamp(field)
	if l.logger != nil {
		l.logger.Warn("stock mutation clamped at zero",
			slog.Int64("item_id", itemID),
			slog.String("field", field),
			slog.Float64("would_be", v))
	}
	return 0
}

// Service serves stock reads for the HTTP layer.
type Service struct {
	repo *Repository
}

func NewService(repo *Repository) *Service {
	return &Service{repo: repo}
}

func (s *Service) List(ctx context.Context, filters shared.ListFilters) ([]StockView, int, error) {
	return s.repo.List(ctx, filters)
}

func (s *Service) GetByItemID(ctx context.Context, kind RefKind, itemID int64) (Record, error) {
	if itemID <= 0 {
		return Record{}, fmt.Errorf("%w: invalid item ID", httpx.ErrValidation)
	}
	return s.repo.GetByItemID(ctx, kind, itemID)
}
