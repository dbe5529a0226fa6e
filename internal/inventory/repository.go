package inventory

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/omar-zaman/omam-fms/internal/masterdata/shared"
	"github.com/omar-zaman/omam-fms/internal/platform/httpx"
)

// Repository reads the stock ledger outside of transactions.
type Repository struct {
	db *pgxpool.Pool
}

func NewRepository(db *pgxpool.Pool) *Repository {
	return &Repository{db: db}
}

const recordColumns = `id, ref_type, item_id, current_stock, reserved_stock, available_stock, created_at, updated_at`

// List returns stock records joined with the catalog name. Records whose
// catalog entry was deleted keep their ledger row and render a placeholder.
func (r *Repository) List(ctx context.Context, filters shared.ListFilters) ([]StockView, int, error) {
	where := ` WHERE 1=1`
	args := []interface{}{}
	argCount := 0

	if filters.Search != "" {
		argCount++
		where += ` AND COALESCE(i.name, m.name) ILIKE $` + strconv.Itoa(argCount)
		args = append(args, "%"+filters.Search+"%")
	}

	const from = ` FROM inventory_records r
		LEFT JOIN items i ON r.ref_type = 'item' AND i.id = r.item_id
		LEFT JOIN materials m ON r.ref_type = 'material' AND m.id = r.item_id`

	var total int
	if err := r.db.QueryRow(ctx, `SELECT COUNT(*)`+from+where, args...).Scan(&total); err != nil {
		return nil, 0, err
	}

	query := `SELECT r.id, r.ref_type, r.item_id, r.current_stock, r.reserved_stock, r.available_stock, r.created_at, r.updated_at,
		COALESCE(i.name, m.name, 'Unknown item') AS item_name,
		COALESCE(i.unit, m.unit, '') AS unit` + from + where + ` ORDER BY item_name ASC`
	if filters.Limit > 0 {
		argCount++
		query += ` LIMIT $` + strconv.Itoa(argCount)
		args = append(args, filters.Limit)

		argCount++
		query += ` OFFSET $` + strconv.Itoa(argCount)
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

	var views []StockView
	for rows.Next() {
		var v StockView
		if err := rows.Scan(&v.ID, &v.RefType, &v.ItemID, &v.CurrentStock, &v.ReservedStock, &v.AvailableStock, &v.CreatedAt, &v.UpdatedAt, &v.ItemName, &v.Unit); err != nil {
			return nil, 0, err
		}
		views = append(views, v)
	}
	return views, total, rows.Err()
}

// GetByItemID returns the ledger row for one catalog entry.
func (r *Repository) GetByItemID(ctx context.Context, kind RefKind, itemID int64) (Record, error) {
	var rec Record
	err := r.db.QueryRow(ctx, `SELECT `+recordColumns+` FROM inventory_records WHERE ref_type = $1 AND item_id = $2`, kind, itemID).
		Scan(&rec.ID, &rec.RefType, &rec.ItemID, &rec.CurrentStock, &rec.ReservedStock, &rec.AvailableStock, &rec.CreatedAt, &rec.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return Record{}, fmt.Errorf("%w: inventory record not found", httpx.ErrNotFound)
		}
		return Record{}, err
	}
	return rec, nil
}

// Exhausted lists records with no available stock but outstanding
// reservations, used by the low-stock scan job.
func (r *Repository) Exhausted(ctx context.Context) ([]StockView, error) {
	const query = `SELECT r.id, r.ref_type, r.item_id, r.current_stock, r.reserved_stock, r.available_stock, r.created_at, r.updated_at,
		COALESCE(i.name, m.name, 'Unknown item') AS item_name,
		COALESCE(i.unit, m.unit, '') AS unit
		FROM inventory_records r
		LEFT JOIN items i ON r.ref_type = 'item' AND i.id = r.item_id
		LEFT JOIN materials m ON r.ref_type = 'material' AND m.id = r.item_id
		WHERE r.available_stock <= 0 AND r.reserved_stock > 0
		ORDER BY item_name ASC`
	rows, err := r.db.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var views []StockView
	for rows.Next() {
		var v StockView
		if err := rows.Scan(&v.ID, &v.RefType, &v.ItemID, &v.CurrentStock, &v.ReservedStock, &v.AvailableStock, &v.CreatedAt, &v.UpdatedAt, &v.ItemName, &v.Unit); err != nil {
			return nil, err
		}
		views = append(views, v)
	}
	return views, rows.Err()
}

// TxStore mutates ledger rows inside a caller-owned transaction. The row lock
// taken by GetForUpdate serialises concurrent mutations per catalog entry.
type TxStore struct {
	tx pgx.Tx
}

func NewTxStore(tx pgx.Tx) *TxStore {
	return &TxStore{tx: tx}
}

// GetForUpdate locks the ledger row for the catalog entry, creating a zero
// record when none exists yet.
func (s *TxStore) GetForUpdate(ctx context.Context, kind RefKind, itemID int64) (Record, error) {
	var rec Record
	err := s.tx.QueryRow(ctx, `SELECT `+recordColumns+` FROM inventory_records WHERE ref_type = $1 AND item_id = $2 FOR UPDATE`, kind, itemID).
		Scan(&rec.ID, &rec.RefType, &rec.ItemID, &rec.CurrentStock, &rec.ReservedStock, &rec.AvailableStock, &rec.CreatedAt, &rec.UpdatedAt)
	if err == nil {
		return rec, nil
	}
	if !errors.Is(err, pgx.ErrNoRows) {
		return Record{}, err
	}

	now := time.Now().UTC()
	err = s.tx.QueryRow(ctx, `INSERT INTO inventory_records (ref_type, item_id, current_stock, reserved_stock, available_stock, created_at, updated_at)
		VALUES ($1, $2, 0, 0, 0, $3, $3) RETURNING `+recordColumns, kind, itemID, now).
		Scan(&rec.ID, &rec.RefType, &rec.ItemID, &rec.CurrentStock, &rec.ReservedStock, &rec.AvailableStock, &rec.CreatedAt, &rec.UpdatedAt)
	if err != nil {
		return Record{}, err
	}
	return rec, nil
}

// Save writes back a mutated ledger row.
func (s *TxStore) Save(ctx context.Context, rec Record) error {
	const query = `UPDATE inventory_records SET current_stock = $1, reserved_stock = $2, available_stock = $3, updated_at = $4 WHERE id = $5`
	tag, err := s.tx.Exec(ctx, query, rec.CurrentStock, rec.ReservedStock, rec.AvailableStock, time.Now().UTC(), rec.ID)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("%w: inventory record not found", httpx.ErrNotFound)
	}
	return nil
}
