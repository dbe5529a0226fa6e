package orders

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

// Queries runs the sales order SQL over either the pool or a transaction.
type Queries struct {
	db dbtx
}

func NewQueries(db dbtx) *Queries {
	return &Queries{db: db}
}

const orderColumns = `so.id, so.order_number, so.customer_id, so.order_date, so.status, so.total_amount, so.notes, so.created_at, so.updated_at`

func (q *Queries) List(ctx context.Context, filters ListFilters) ([]SalesOrder, int, error) {
	where := ` WHERE 1=1`
	args := []interface{}{}
	argPos := 0

	if filters.Search != "" {
		argPos++
		where += fmt.Sprintf(` AND (so.order_number ILIKE $%d OR c.name ILIKE $%d)`, argPos, argPos)
		args = append(args, "%"+filters.Search+"%")
	}
	if filters.Status != "" {
		argPos++
		where += fmt.Sprintf(` AND so.status = $%d`, argPos)
		args = append(args, filters.Status)
	}
	if filters.CustomerID != nil {
		argPos++
		where += fmt.Sprintf(` AND so.customer_id = $%d`, argPos)
		args = append(args, *filters.CustomerID)
	}
	if filters.DateFrom != nil {
		argPos++
		where += fmt.Sprintf(` AND so.order_date >= $%d`, argPos)
		args = append(args, *filters.DateFrom)
	}
	if filters.DateTo != nil {
		argPos++
		where += fmt.Sprintf(` AND so.order_date <= $%d`, argPos)
		args = append(args, *filters.DateTo)
	}

	const from = ` FROM sales_orders so LEFT JOIN customers c ON c.id = so.customer_id`

	var total int
	if err := q.db.QueryRow(ctx, `SELECT COUNT(*)`+from+where, args...).Scan(&total); err != nil {
		return nil, 0, err
	}

	query := `SELECT ` + orderColumns + `, COALESCE(c.name, 'Unknown customer')` + from + where + ` ORDER BY so.order_date DESC, so.id DESC`
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

	var result []SalesOrder
	for rows.Next() {
		var o SalesOrder
		if err := rows.Scan(&o.ID, &o.OrderNumber, &o.CustomerID, &o.OrderDate, &o.Status, &o.TotalAmount, &o.Notes, &o.CreatedAt, &o.UpdatedAt, &o.CustomerName); err != nil {
			return nil, 0, err
		}
		result = append(result, o)
	}
	return result, total, rows.Err()
}

func (q *Queries) Get(ctx context.Context, id int64) (SalesOrder, error) {
	var o SalesOrder
	err := q.db.QueryRow(ctx, `SELECT `+orderColumns+`, COALESCE(c.name, 'Unknown customer')
		FROM sales_orders so LEFT JOIN customers c ON c.id = so.customer_id WHERE so.id = $1`, id).
		Scan(&o.ID, &o.OrderNumber, &o.CustomerID, &o.OrderDate, &o.Status, &o.TotalAmount, &o.Notes, &o.CreatedAt, &o.UpdatedAt, &o.CustomerName)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return SalesOrder{}, fmt.Errorf("%w: sales order not found", httpx.ErrNotFound)
		}
		return SalesOrder{}, err
	}

	lines, err := q.Lines(ctx, id)
	if err != nil {
		return SalesOrder{}, err
	}
	o.Lines = lines
	return o, nil
}

// GetForUpdate locks the order row so concurrent lifecycle transitions on the
// same order serialise. Lines are loaded alongside.
func (q *Queries) GetForUpdate(ctx context.Context, id int64) (SalesOrder, error) {
	var o SalesOrder
	err := q.db.QueryRow(ctx, `SELECT `+orderColumns+` FROM sales_orders so WHERE so.id = $1 FOR UPDATE`, id).
		Scan(&o.ID, &o.OrderNumber, &o.CustomerID, &o.OrderDate, &o.Status, &o.TotalAmount, &o.Notes, &o.CreatedAt, &o.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return SalesOrder{}, fmt.Errorf("%w: sales order not found", httpx.ErrNotFound)
		}
		return SalesOrder{}, err
	}

	lines, err := q.Lines(ctx, id)
	if err != nil {
		return SalesOrder{}, err
	}
	o.Lines = lines
	return o, nil
}

func (q *Queries) Lines(ctx context.Context, orderID int64) ([]SalesOrderLine, error) {
	rows, err := q.db.Query(ctx, `SELECT l.id, l.sales_order_id, l.item_id, COALESCE(i.name, 'Unknown item'), l.quantity, l.unit_price, l.total
		FROM sales_order_items l LEFT JOIN items i ON i.id = l.item_id
		WHERE l.sales_order_id = $1 ORDER BY l.id`, orderID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var lines []SalesOrderLine
	for rows.Next() {
		var l SalesOrderLine
		if err := rows.Scan(&l.ID, &l.SalesOrderID, &l.ItemID, &l.ItemName, &l.Quantity, &l.UnitPrice, &l.Total); err != nil {
			return nil, err
		}
		lines = append(lines, l)
	}
	return lines, rows.Err()
}

func (q *Queries) Insert(ctx context.Context, order SalesOrder) (int64, error) {
	const query = `INSERT INTO sales_orders (order_number, customer_id, order_date, status, total_amount, notes, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $7) RETURNING id`
	var id int64
	err := q.db.QueryRow(ctx, query, order.OrderNumber, order.CustomerID, order.OrderDate, order.Status, order.TotalAmount, order.Notes, time.Now().UTC()).Scan(&id)
	if err != nil {
		return 0, mapDuplicate(err)
	}
	return id, nil
}

func (q *Queries) Update(ctx context.Context, order SalesOrder) error {
	const query = `UPDATE sales_orders SET order_number = $1, customer_id = $2, order_date = $3, status = $4, total_amount = $5, notes = $6, updated_at = $7 WHERE id = $8`
	tag, err := q.db.Exec(ctx, query, order.OrderNumber, order.CustomerID, order.OrderDate, order.Status, order.TotalAmount, order.Notes, time.Now().UTC(), order.ID)
	if err != nil {
		return mapDuplicate(err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("%w: sales order not found", httpx.ErrNotFound)
	}
	return nil
}

func (q *Queries) InsertLines(ctx context.Context, orderID int64, lines []SalesOrderLine) error {
	const query = `INSERT INTO sales_order_items (sales_order_id, item_id, quantity, unit_price, total) VALUES ($1, $2, $3, $4, $5)`
	for _, l := range lines {
		if _, err := q.db.Exec(ctx, query, orderID, l.ItemID, l.Quantity, l.UnitPrice, l.Total); err != nil {
			return err
		}
	}
	return nil
}

func (q *Queries) DeleteLines(ctx context.Context, orderID int64) error {
	_, err := q.db.Exec(ctx, `DELETE FROM sales_order_items WHERE sales_order_id = $1`, orderID)
	return err
}

func (q *Queries) Delete(ctx context.Context, id int64) error {
	tag, err := q.db.Exec(ctx, `DELETE FROM sales_orders WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("%w: sales order not found", httpx.ErrNotFound)
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
