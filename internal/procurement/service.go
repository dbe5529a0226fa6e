package procurement

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/omar-zaman/omam-fms/internal/inventory"
	"github.com/omar-zaman/omam-fms/internal/platform/db"
	"github.com/omar-zaman/omam-fms/internal/platform/httpx"
)

// Service owns the purchase order lifecycle. Stock moves only when an order
// crosses the Completed boundary: entering adds the lines, leaving reverses
// them. Order rows and ledger rows commit in the same transaction.
type Service struct {
	pool    *pgxpool.Pool
	queries *Queries
	ledger  *inventory.Ledger
	logger  *slog.Logger
}

func NewService(pool *pgxpool.Pool, ledger *inventory.Ledger, logger *slog.Logger) *Service {
	return &Service{
		pool:    pool,
		queries: NewQueries(pool),
		ledger:  ledger,
		logger:  logger,
	}
}

func (s *Service) List(ctx context.Context, filters ListFilters) ([]PurchaseOrder, int, error) {
	return s.queries.List(ctx, filters)
}

func (s *Service) Get(ctx context.Context, id int64) (PurchaseOrder, error) {
	if id <= 0 {
		return PurchaseOrder{}, fmt.Errorf("%w: invalid order ID", httpx.ErrValidation)
	}
	return s.queries.Get(ctx, id)
}

func (s *Service) Create(ctx context.Context, req OrderRequest) (PurchaseOrder, error) {
	order, err := orderFromRequest(req)
	if err != nil {
		return PurchaseOrder{}, err
	}

	err = db.WithTx(ctx, s.pool, func(tx pgx.Tx) error {
		q := NewQueries(tx)
		id, err := q.Insert(ctx, order)
		if err != nil {
			return err
		}
		order.ID = id
		for i := range order.Lines {
			order.Lines[i].PurchaseOrderID = id
		}
		if err := q.InsertLines(ctx, id, order.Lines); err != nil {
			return err
		}
		return s.applyCreate(ctx, inventory.NewTxStore(tx), order)
	})
	if err != nil {
		return PurchaseOrder{}, err
	}

	s.logger.Info("purchase order created",
		slog.Int64("order_id", order.ID),
		slog.String("order_number", order.OrderNumber),
		slog.String("status", string(order.Status)))
	return s.queries.Get(ctx, order.ID)
}

func (s *Service) Update(ctx context.Context, id int64, req OrderRequest) (PurchaseOrder, error) {
	if id <= 0 {
		return PurchaseOrder{}, fmt.Errorf("%w: invalid order ID", httpx.ErrValidation)
	}

	var next PurchaseOrder
	err := db.WithTx(ctx, s.pool, func(tx pgx.Tx) error {
		q := NewQueries(tx)
		old, err := q.GetForUpdate(ctx, id)
		if err != nil {
			return err
		}
		next, err = mergeUpdate(old, req)
		if err != nil {
			return err
		}

		if err := s.applyTransition(ctx, inventory.NewTxStore(tx), old, next); err != nil {
			return err
		}

		if err := q.DeleteLines(ctx, id); err != nil {
			return err
		}
		for i := range next.Lines {
			next.Lines[i].PurchaseOrderID = id
		}
		if err := q.InsertLines(ctx, id, next.Lines); err != nil {
			return err
		}
		return q.Update(ctx, next)
	})
	if err != nil {
		return PurchaseOrder{}, err
	}

	s.logger.Info("purchase order updated",
		slog.Int64("order_id", id),
		slog.String("status", string(next.Status)))
	return s.queries.Get(ctx, id)
}

func (s *Service) Delete(ctx context.Context, id int64) error {
	if id <= 0 {
		return fmt.Errorf("%w: invalid order ID", httpx.ErrValidation)
	}

	err := db.WithTx(ctx, s.pool, func(tx pgx.Tx) error {
		q := NewQueries(tx)
		old, err := q.GetForUpdate(ctx, id)
		if err != nil {
			return err
		}

		if err := s.applyDelete(ctx, inventory.NewTxStore(tx), old); err != nil {
			return err
		}

		if err := q.DeleteLines(ctx, id); err != nil {
			return err
		}
		return q.Delete(ctx, id)
	})
	if err != nil {
		return err
	}

	s.logger.Info("purchase order deleted", slog.Int64("order_id", id))
	return nil
}

// applyCreate adds stock when a purchase is created already completed.
// Pending and cancelled purchases never touch the ledger.
func (s *Service) applyCreate(ctx context.Context, store inventory.RecordStore, order PurchaseOrder) error {
	if order.Status != StatusCompleted {
		return nil
	}
	for _, l := range order.Lines {
		if err := s.ledger.Add(ctx, store, inventory.KindMaterial, l.MaterialID, l.Quantity); err != nil {
			return err
		}
	}
	return nil
}

// applyTransition reverses the old lines when an order leaves Completed and
// adds the new lines when it enters. An update that keeps the status has no
// stock effect.
func (s *Service) applyTransition(ctx context.Context, store inventory.RecordStore, old, next PurchaseOrder) error {
	if old.Status == next.Status {
		return nil
	}

	if old.Status == StatusCompleted {
		for _, l := range old.Lines {
			if err := s.ledger.Reverse(ctx, store, inventory.KindMaterial, l.MaterialID, l.Quantity); err != nil {
				return err
			}
		}
	}
	if next.Status == StatusCompleted {
		for _, l := range next.Lines {
			if err := s.ledger.Add(ctx, store, inventory.KindMaterial, l.MaterialID, l.Quantity); err != nil {
				return err
			}
		}
	}
	return nil
}

// applyDelete backs out the stock a completed purchase brought in.
func (s *Service) applyDelete(ctx context.Context, store inventory.RecordStore, order PurchaseOrder) error {
	if order.Status != StatusCompleted {
		return nil
	}
	for _, l := range order.Lines {
		if err := s.ledger.Reverse(ctx, store, inventory.KindMaterial, l.MaterialID, l.Quantity); err != nil {
			return err
		}
	}
	return nil
}

func orderFromRequest(req OrderRequest) (PurchaseOrder, error) {
	if req.SupplierID <= 0 {
		return PurchaseOrder{}, fmt.Errorf("%w: supplier is required", httpx.ErrValidation)
	}
	if len(req.Lines) == 0 {
		return PurchaseOrder{}, fmt.Errorf("%w: at least one order line is required", httpx.ErrValidation)
	}

	status := StatusPending
	if req.Status != "" {
		status = Status(req.Status)
		if !status.Valid() {
			return PurchaseOrder{}, fmt.Errorf("%w: invalid status %q", httpx.ErrValidation, req.Status)
		}
	}

	order := PurchaseOrder{
		OrderNumber: strings.TrimSpace(req.OrderNumber),
		SupplierID:  req.SupplierID,
		OrderDate:   time.Now().UTC(),
		Status:      status,
		Notes:       strings.TrimSpace(req.Notes),
	}
	if req.OrderDate != nil {
		order.OrderDate = *req.OrderDate
	}
	if order.OrderNumber == "" {
		order.OrderNumber = "PO-" + strings.ToUpper(uuid.NewString()[:8])
	}

	lines, total, err := linesFromRequest(req.Lines)
	if err != nil {
		return PurchaseOrder{}, err
	}
	order.Lines = lines
	order.TotalAmount = total
	return order, nil
}

// mergeUpdate overlays an update request on the stored order. Fields absent
// from the request keep their stored values, so editing the materials of a
// Completed order never re-runs the Completed transition against the ledger.
func mergeUpdate(old PurchaseOrder, req OrderRequest) (PurchaseOrder, error) {
	next := old
	if req.Status != "" {
		status := Status(req.Status)
		if !status.Valid() {
			return PurchaseOrder{}, fmt.Errorf("%w: invalid status %q", httpx.ErrValidation, req.Status)
		}
		next.Status = status
	}
	if req.SupplierID > 0 {
		next.SupplierID = req.SupplierID
	}
	if req.OrderDate != nil {
		next.OrderDate = *req.OrderDate
	}
	if n := strings.TrimSpace(req.OrderNumber); n != "" {
		next.OrderNumber = n
	}
	if n := strings.TrimSpace(req.Notes); n != "" {
		next.Notes = n
	}
	if len(req.Lines) > 0 {
		lines, total, err := linesFromRequest(req.Lines)
		if err != nil {
			return PurchaseOrder{}, err
		}
		next.Lines = lines
		next.TotalAmount = total
	}
	return next, nil
}

func linesFromRequest(reqs []OrderLineRequest) ([]PurchaseOrderLine, float64, error) {
	var lines []PurchaseOrderLine
	var total float64
	for _, lr := range reqs {
		if lr.MaterialID <= 0 {
			return nil, 0, fmt.Errorf("%w: line material is required", httpx.ErrValidation)
		}
		if lr.Quantity <= 0 {
			return nil, 0, fmt.Errorf("%w: line quantity must be positive", httpx.ErrValidation)
		}
		if lr.UnitCost < 0 {
			return nil, 0, fmt.Errorf("%w: line unit cost must not be negative", httpx.ErrValidation)
		}
		line := PurchaseOrderLine{
			MaterialID: lr.MaterialID,
			Quantity:   lr.Quantity,
			UnitCost:   lr.UnitCost,
			Total:      lr.Quantity * lr.UnitCost,
		}
		total += line.Total
		lines = append(lines, line)
	}
	return lines, total, nil
}
