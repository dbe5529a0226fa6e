package payments

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/omar-zaman/omam-fms/internal/platform/httpx"
)

type Repository interface {
	List(ctx context.Context, filters ListFilters) ([]Payment, int, error)
	Get(ctx context.Context, id int64) (Payment, error)
	Create(ctx context.Context, payment Payment) (Payment, error)
	Update(ctx context.Context, id int64, payment Payment) error
	Delete(ctx context.Context, id int64) error
}

type repository struct {
	db *pgxpool.Pool
}

func NewRepository(db *pgxpool.Pool) Repository {
	return &repository{db: db}
}

const paymentColumns = `p.id, p.payment_number, p.type, p.customer_id, p.supplier_id, p.amount, p.mode, p.payment_date, p.reference, p.notes, p.created_at, p.updated_at`

const counterpartyExpr = `CASE
	WHEN p.type = 'Customer' THEN COALESCE(c.name, 'Unknown customer')
	ELSE COALESCE(s.name, 'Unknown supplier')
END`

func (r *repository) List(ctx context.Context, filters ListFilters) ([]Payment, int, error) {
	where := ` WHERE 1=1`
	args := []interface{}{}
	argPos := 0

	if filters.Search != "" {
		argPos++
		where += fmt.Sprintf(` AND (p.payment_number ILIKE $%d OR p.reference ILIKE $%d OR c.name ILIKE $%d OR s.name ILIKE $%d)`, argPos, argPos, argPos, argPos)
		args = append(args, "%"+filters.Search+"%")
	}
	if filters.Type != "" {
		argPos++
		where += fmt.Sprintf(` AND p.type = $%d`, argPos)
		args = append(args, filters.Type)
	}
	if filters.Mode != "" {
		argPos++
		where += fmt.Sprintf(` AND p.mode = $%d`, argPos)
		args = append(args, filters.Mode)
	}
	if filters.CustomerID != nil {
		argPos++
		where += fmt.Sprintf(` AND p.customer_id = $%d`, argPos)
		args = append(args, *filters.CustomerID)
	}
	if filters.SupplierID != nil {
		argPos++
		where += fmt.Sprintf(` AND p.supplier_id = $%d`, argPos)
		args = append(args, *filters.SupplierID)
	}
	if filters.DateFrom != nil {
		argPos++
		where += fmt.Sprintf(` AND p.payment_date >= $%d`, argPos)
		args = append(args, *filters.DateFrom)
	}
	if filters.DateTo != nil {
		argPos++
		where += fmt.Sprintf(` AND p.payment_date <= $%d`, argPos)
		args = append(args, *filters.DateTo)
	}

	const from = ` FROM payments p
		LEFT JOIN customers c ON c.id = p.customer_id
		LEFT JOIN suppliers s ON s.id = p.supplier_id`

	var total int
	if err := r.db.QueryRow(ctx, `SELECT COUNT(*)`+from+where, args...).Scan(&total); err != nil {
		return nil, 0, err
	}

	query := `SELECT ` + paymentColumns + `, ` + counterpartyExpr + from + where + ` ORDER BY p.payment_date DESC, p.id DESC`
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

	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	var result []Payment
	for rows.Next() {
		var p Payment
		if err := rows.Scan(&p.ID, &p.PaymentNumber, &p.Type, &p.CustomerID, &p.SupplierID, &p.Amount, &p.Mode, &p.PaymentDate, &p.Reference, &p.Notes, &p.CreatedAt, &p.UpdatedAt, &p.CounterpartyName); err != nil {
			return nil, 0, err
		}
		result = append(result, p)
	}
	return result, total, rows.Err()
}

func (r *repository) Get(ctx context.Context, id int64) (Payment, error) {
	var p Payment
	err := r.db.QueryRow(ctx, `SELECT `+paymentColumns+`, `+counterpartyExpr+`
		FROM payments p
		LEFT JOIN customers c ON c.id = p.customer_id
		LEFT JOIN suppliers s ON s.id = p.supplier_id
		WHERE p.id = $1`, id).
		Scan(&p.ID, &p.PaymentNumber, &p.Type, &p.CustomerID, &p.SupplierID, &p.Amount, &p.Mode, &p.PaymentDate, &p.Reference, &p.Notes, &p.CreatedAt, &p.UpdatedAt, &p.CounterpartyName)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return Payment{}, fmt.Errorf("%w: payment not found", httpx.ErrNotFound)
		}
		return Payment{}, err
	}
	return p, nil
}

func (r *repository) Create(ctx context.Context, payment Payment) (Payment, error) {
	const query = `INSERT INTO payments (payment_number, type, customer_id, supplier_id, amount, mode, payment_date, reference, notes, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $10) RETURNING id, created_at, updated_at`
	now := time.Now().UTC()
	err := r.db.QueryRow(ctx, query, payment.PaymentNumber, payment.Type, payment.CustomerID, payment.SupplierID, payment.Amount, payment.Mode, payment.PaymentDate, payment.Reference, payment.Notes, now).
		Scan(&payment.ID, &payment.CreatedAt, &payment.UpdatedAt)
	if err != nil {
		return Payment{}, mapDuplicate(err)
	}
	return payment, nil
}

func (r *repository) Update(ctx context.Context, id int64, payment Payment) error {
	const query = `UPDATE payments SET payment_number = $1, type = $2, customer_id = $3, supplier_id = $4, amount = $5, mode = $6, payment_date = $7, reference = $8, notes = $9, updated_at = $10 WHERE id = $11`
	tag, err := r.db.Exec(ctx, query, payment.PaymentNumber, payment.Type, payment.CustomerID, payment.SupplierID, payment.Amount, payment.Mode, payment.PaymentDate, payment.Reference, payment.Notes, time.Now().UTC(), id)
	if err != nil {
		return mapDuplicate(err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("%w: payment not found", httpx.ErrNotFound)
	}
	return nil
}

func (r *repository) Delete(ctx context.Context, id int64) error {
	tag, err := r.db.Exec(ctx, `DELETE FROM payments WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("%w: payment not found", httpx.ErrNotFound)
	}
	return nil
}

func mapDuplicate(err error) error {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == "23505" {
		return fmt.Errorf("%w: payment number already exists", httpx.ErrDuplicate)
	}
	return err
}
