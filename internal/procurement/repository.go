package procurement

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/omar-zaman/omam-fms/internal/platform/httpx"
)

type dbtx interface {
	Exec(context.Context, string, ...interface{}) (pgconn.CommandTag, error)
	Query(context.Context, string, ...interface{}) (pgx.Rows, error)
	QueryRow(context.Context, string, ...interface{}) pgx.Row
}

// Queries runs the purchase order SQL over either the pool or a transaction.
type Queries struct {
	db dbtx
}

func NewQueries(db dbtx) *Queries {
	return &Queries{db: db}
}

const orderColumns = `po.id, po.order_number, po.supplier_id, po.order_date, po.status, po.total_amount, po.notes, po.created_at, po.updated_at`

func (q *Queries) List(ctx context.Context, filters ListFilters) ([]PurchaseOrder, int, error) {
	where := ` WHERE 1=1`
	args := []interface{}{}
	argPos := 0

	if filters.Search != "" {
		argPos++
		where += fmt.Sprintf(` AND (po.order_number ILIKE $%d OR s.name ILIKE $%d)`, argPos, argPos)
		args = append(args, "%"+filters.Search+"%")
	}
	if filters.Status != "" {
		argPos++
		where += fmt.Sprintf(` AND po.status = $%d`, argPos)
		args = append(args, filters.Status)
	}
	if filters.SupplierID != nil {
		argPos++
		where += fmt.Sprintf(` AND po.supplier_id = $%d`, argPos)
		args = append(args, *filters.SupplierID)
	}
	if filters.DateFrom != nil {
		argPos++
		where += fmt.Sprintf(` AND po.order_date >= $%d`, argPos)
		args = append(args, *filters.DateFrom)
	}
	if filters.DateTo != nil {
		argPos++
		where += fmt.Sprintf(` AND po.order_date <= $%d`, argPos)
		args = append(args, *filters.DateTo)
	}

	const from = ` FROM purchase_orders po LEFT JOIN suppliers s ON s.id = po.supplier_id`

	var total int
	if err := q.db.QueryRow(ctx, `SELECT COUNT(*)`+from+where, args...).Scan(&total); err != nil {
		return nil, 0, err
	}

	query := `SELECT ` + orderColumns + `, COALESCE(s.name, 'Unknown supplier')` + from + where + ` ORDER BY po.order_date DESC, po.id DESC`
	if filters.Limit > 0 {
		argPos++
		query += fmt.Sprintf(` LIMIT $%d`, argPos)
		args = append(args, filters.Limit)

		argPos++
		query += fmt.Sprintf(` OFFSET $%d`, argPos)
		offset := (filters.Page - 1) * filters.Limit
		if offset < 0 {
			offset = 0
		}
		args = append(args, offset)
	}

	rows, err := q.db.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	var result []PurchaseOrder
	for rows.Next() {
		var o PurchaseOrder
		if err := rows.Scan(&o.ID, &o.OrderNumber, &o.SupplierID, &o.OrderDate, &o.Status, &o.TotalAmount, &o.Notes, &o.CreatedAt, &o.UpdatedAt, &o.SupplierName); err != nil {
			return nil, 0, err
		}
		result = append(result, o)
	}
	return result, total, rows.Err()
}

func (q *Queries) Get(ctx context.Context, id int64) (PurchaseOrder, error) {
	var o PurchaseOrder
	err := q.db.QueryRow(ctx, `SELECT `+orderColumns+`, COALESCE(s.name, 'Unknown supplier')
		FROM purchase_orders po LEFT JOIN suppliers s ON s.id = po.supplier_id WHERE po.id = $1`, id).
		Scan(&o.ID, &o.OrderNumber, &o.SupplierID, &o.OrderDate, &o.Status, &o.TotalAmount, &o.Notes, &o.CreatedAt, &o.UpdatedAt, &o.SupplierName)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return PurchaseOrder{}, fmt.Errorf("%w: purchase order not found", httpx.ErrNotFound)
		}
		return PurchaseOrder{}, err
	}

	lines, err := q.Lines(ctx, id)
	if err != nil {
		return PurchaseOrder{}, err
	}
	o.Lines = lines
	return o, nil
}

// GetForUpdate locks the order row so concurrent lifecycle transitions on the
// same order serialise. Lines are loaded alongside.
func (q *Queries) GetForUpdate(ctx context.Context, id int64) (PurchaseOrder, error) {
	var o PurchaseOrder
	err := q.db.QueryRow(ctx, `SELECT `+orderColumns+` FROM purchase_orders po WHERE po.id = $1 FOR UPDATE`, id).
		Scan(&o.ID, &o.OrderNumber, &o.SupplierID, &o.OrderDate, &o.Status, &o.TotalAmount, &o.Notes, &o.CreatedAt, &o.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return PurchaseOrder{}, fmt.Errorf("%w: purchase order not found", httpx.ErrNotFound)
		}
		return PurchaseOrder{}, err
	}

	lines, err := q.Lines(ctx, id)
	if err != nil {
		return PurchaseOrder{}, err
	}
	o.Lines = lines
	return o, nil
}

func (q *Queries) Lines(ctx context.Context, orderID int64) ([]PurchaseOrderLine, error) {
	rows, err := q.db.Query(ctx, `SELECT l.id, l.purchase_order_id, l.material_id, COALESCE(m.name, 'Unknown material'), l.quantity, l.unit_cost, l.total
		FROM purchase_order_materials l LEFT JOIN materials m ON m.id = l.material_id
		WHERE l.purchase_order_id = $1 ORDER BY l.id`, orderID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var lines []PurchaseOrderLine
	for rows.Next() {
		var l PurchaseOrderLine
		if err := rows.Scan(&l.ID, &l.PurchaseOrderID, &l.MaterialID, &l.MaterialName, &l.Quantity, &l.UnitCost, &l.Total); err != nil {
			return nil, err
		}
		lines = append(lines, l)
	}
	return lines, rows.Err()
}

func (q *Queries) Insert(ctx context.Context, order PurchaseOrder) (int64, error) {
	const query = `INSERT INTO purchase_orders (order_number, supplier_id, order_date, status, total_amount, notes, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $7) RETURNING id`
	var id int64
	err := q.db.QueryRow(ctx, query, order.OrderNumber, order.SupplierID, order.OrderDate, order.Status, order.TotalAmount, order.Notes, time.Now().UTC()).Scan(&id)
	if err != nil {
		return 0, mapDuplicate(err)
	}
	return id, nil
}

func (q *Queries) Update(ctx context.Context, order PurchaseOrder) error {
	const query = `UPDATE purchase_orders SET order_number = $1, supplier_id = $2, order_date = $3, status = $4, total_amount = $5, notes = $6, updated_at = $7 WHERE id = $8`
	tag, err := q.db.Exec(ctx, query, order.OrderNumber, order.SupplierID, order.OrderDate, order.Status, order.TotalAmount, order.Notes, time.Now().UTC(), order.ID)
	if err != nil {
		return mapDuplicate(err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("%w: purchase order not found", httpx.ErrNotFound)
	}
	return nil
}

func (q *Queries) InsertLines(ctx context.Context, orderID int64, lines []PurchaseOrderLine) error {
	const query = `INSERT INTO purchase_order_materials (purchase_order_id, material_id, quantity, unit_cost, total) VALUES ($1, $2, $3, $4, $5)`
	for _, l := range lines {
		if _, err := q.db.Exec(ctx, query, orderID, l.MaterialID, l.Quantity, l.UnitCost, l.Total); err != nil {
			return err
		}
	}
	return nil
}

func (q *Queries) DeleteLines(ctx context.Context, orderID int64) error {
	_, err := q.db.Exec(ctx, `DELETE FROM purchase_order_materials WHERE purchase_order_id = $1`, orderID)
	return err
}

func (q *Queries) Delete(ctx context.Context, id int64) error {
	tag, err := q.db.Exec(ctx, `DELETE FROM purchase_orders WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("%w: purchase order not found", httpx.ErrNotFound)
	}
	return nil
}

func mapDuplicate(err error) error {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == "23505" {
		return fmt.Errorf("%w: order number already exists", httpx.ErrDuplicate)
	}
	return err
}
