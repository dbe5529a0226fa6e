package orders

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

// Service owns the sales order lifecycle. Every mutation runs in a single
// transaction covering the order rows and the stock ledger, so an order can
// never be written with its stock effect half applied.
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

func (s *Service) List(ctx context.Context, filters ListFilters) ([]SalesOrder, int, error) {
	return s.queries.List(ctx, filters)
}

func (s *Service) Get(ctx context.Context, id int64) (SalesOrder, error) {
	if id <= 0 {
		return SalesOrder{}, fmt.Errorf("%w: invalid order ID", httpx.ErrValidation)
	}
	return s.queries.Get(ctx, id)
}

func (s *Service) Create(ctx context.Context, req OrderRequest) (SalesOrder, error) {
	order, err := orderFromRequest(req)
	if err != nil {
		return SalesOrder{}, err
	}

	err = db.WithTx(ctx, s.pool, func(tx pgx.Tx) error {
		q := NewQueries(tx)
		id, err := q.Insert(ctx, order)
		if err != nil {
			return err
		}
		order.ID = id
		for i := range order.Lines {
			order.Lines[i].SalesOrderID = id
		}
		if err := q.InsertLines(ctx, id, order.Lines); err != nil {
			return err
		}
		return s.applyCreate(ctx, inventory.NewTxStore(tx), order)
	})
	if err != nil {
		return SalesOrder{}, err
	}

	s.logger.Info("sales order created",
		slog.Int64("order_id", order.ID),
		slog.String("order_number", order.OrderNumber),
		slog.String("status", string(order.Status)))
	return s.queries.Get(ctx, order.ID)
}

func (s *Service) Update(ctx context.Context, id int64, req OrderRequest) (SalesOrder, error) {
	if id <= 0 {
		return SalesOrder{}, fmt.Errorf("%w: invalid order ID", httpx.ErrValidation)
	}

	var next SalesOrder
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
			next.Lines[i].SalesOrderID = id
		}
		if err := q.InsertLines(ctx, id, next.Lines); err != nil {
			return err
		}
		return q.Update(ctx, next)
	})
	if err != nil {
		return SalesOrder{}, err
	}

	s.logger.Info("sales order updated",
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

	s.logger.Info("sales order deleted", slog.Int64("order_id", id))
	return nil
}

// applyCreate runs the stock effect of a brand new order: pending orders
// reserve their lines, completed orders deduct them immediately.
func (s *Service) applyCreate(ctx context.Context, store inventory.RecordStore, order SalesOrder) error {
	switch order.Status {
	case StatusPending:
		for _, l := range order.Lines {
			if err := s.ledger.Reserve(ctx, store, inventory.KindItem, l.ItemID, l.Quantity); err != nil {
				return err
			}
		}
	case StatusCompleted:
		for _, l := range order.Lines {
			if err := s.ledger.Deduct(ctx, store, inventory.KindItem, l.ItemID, l.Quantity); err != nil {
				return err
			}
		}
	}
	return nil
}

// applyTransition runs the stock effect of an update. Only status boundary
// crossings move stock: leaving Pending releases the old lines, entering
// Pending reserves the new lines, entering Completed deducts the new lines.
// An update that keeps the status has no stock effect at all.
func (s *Service) applyTransition(ctx context.Context, store inventory.RecordStore, old, next SalesOrder) error {
	if old.Status == next.Status {
		return nil
	}

	if old.Status == StatusPending {
		for _, l := range old.Lines {
			if err := s.ledger.Release(ctx, store, inventory.KindItem, l.ItemID, l.Quantity); err != nil {
				return err
			}
		}
	}

	switch next.Status {
	case StatusPending:
		for _, l := range next.Lines {
			if err := s.ledger.Reserve(ctx, store, inventory.KindItem, l.ItemID, l.Quantity); err != nil {
				return err
			}
		}
	case StatusCompleted:
		for _, l := range next.Lines {
			if err := s.ledger.Deduct(ctx, store, inventory.KindItem, l.ItemID, l.Quantity); err != nil {
				return err
			}
		}
	}
	return nil
}

// applyDelete releases the reservation of a pending order. Completed orders
// keep their deduction; removing the document does not restock.
func (s *Service) applyDelete(ctx context.Context, store inventory.RecordStore, order SalesOrder) error {
	if order.Status != StatusPending {
		return nil
	}
	for _, l := range order.Lines {
		if err := s.ledger.Release(ctx, store, inventory.KindItem, l.ItemID, l.Quantity); err != nil {
			return err
		}
	}
	return nil
}

func orderFromRequest(req OrderRequest) (SalesOrder, error) {
	if req.CustomerID <= 0 {
		return SalesOrder{}, fmt.Errorf("%w: customer is required", httpx.ErrValidation)
	}
	if len(req.Lines) == 0 {
		return SalesOrder{}, fmt.Errorf("%w: at least one order line is required", httpx.ErrValidation)
	}

	status := StatusPending
	if req.Status != "" {
		status = Status(req.Status)
		if !status.Valid() {
			return SalesOrder{}, fmt.Errorf("%w: invalid status %q", httpx.ErrValidation, req.Status)
		}
	}

	order := SalesOrder{
		OrderNumber: strings.TrimSpace(req.OrderNumber),
		CustomerID:  req.CustomerID,
		OrderDate:   time.Now().UTC(),
		Status:      status,
		Notes:       strings.TrimSpace(req.Notes),
	}
	if req.OrderDate != nil {
		order.OrderDate = *req.OrderDate
	}
	if order.OrderNumber == "" {
		order.OrderNumber = generateOrderNumber("SO")
	}

	lines, total, err := linesFromRequest(req.Lines)
	if err != nil {
		return SalesOrder{}, err
	}
	order.Lines = lines
	order.TotalAmount = total
	return order, nil
}

// mergeUpdate overlays an update request on the stored order. Fields absent
// from the request keep their stored values: a status-only update leaves the
// lines and totals alone, and a lines-only update keeps the current status so
// no transition fires.
func mergeUpdate(old SalesOrder, req OrderRequest) (SalesOrder, error) {
	next := old
	if req.Status != "" {
		status := Status(req.Status)
		if !status.Valid() {
			return SalesOrder{}, fmt.Errorf("%w: invalid status %q", httpx.ErrValidation, req.Status)
		}
		next.Status = status
	}
	if req.CustomerID > 0 {
		next.CustomerID = req.CustomerID
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
			return SalesOrder{}, err
		}
		next.Lines = lines
		next.TotalAmount = total
	}
	return next, nil
}

func linesFromRequest(reqs []OrderLineRequest) ([]SalesOrderLine, float64, error) {
	var lines []SalesOrderLine
	var total float64
	for _, lr := range reqs {
		if lr.ItemID <= 0 {
			return nil, 0, fmt.Errorf("%w: line item is required", httpx.ErrValidation)
		}
		if lr.Quantity <= 0 {
			return nil, 0, fmt.Errorf("%w: line quantity must be positive", httpx.ErrValidation)
		}
		if lr.UnitPrice < 0 {
			return nil, 0, fmt.Errorf("%w: line unit price must not be negative", httpx.ErrValidation)
		}
		line := SalesOrderLine{
			ItemID:    lr.ItemID,
			Quantity:  lr.Quantity,
			UnitPrice: lr.UnitPrice,
			Total:     lr.Quantity * lr.UnitPrice,
		}
		total += line.Total
		lines = append(lines, line)
	}
	return lines, total, nil
}

func generateOrderNumber(prefix string) string {
	return prefix + "-" + strings.ToUpper(uuid.NewString()[:8])
}
