package materials

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/omar-zaman/omam-fms/internal/masterdata/shared"
	"github.com/omar-zaman/omam-fms/internal/platform/httpx"
)

type Repository interface {
	List(ctx context.Context, filters shared.ListFilters) ([]Material, int, error)
	Get(ctx context.Context, id int64) (Material, error)
	Create(ctx context.Context, material Material) (Material, error)
	Update(ctx context.Context, id int64, material Material) error
	Delete(ctx context.Context, id int64) error
}

type repository struct {
	db *pgxpool.Pool
}

func NewRepository(db *pgxpool.Pool) Repository {
	return &repository{db: db}
}

const materialColumns = `id, name, sku, unit, cost, supplier_id, is_active, created_at, updated_at`

func (r *repository) List(ctx context.Context, filters shared.ListFilters) ([]Material, int, error) {
	where := ` WHERE 1=1`
	args := []interface{}{}
	argCount := 0

	if filters.Search != "" {
		argCount++
		where += ` AND (name ILIKE $` + strconv.Itoa(argCount) + ` OR sku ILIKE $` + strconv.Itoa(argCount) + `)`
		args = append(args, "%"+filters.Search+"%")
	}
	if filters.IsActive != nil {
		argCount++
		where += ` AND is_active = $` + strconv.Itoa(argCount)
		args = append(args, *filters.IsActive)
	}
	if filters.SupplierID != nil {
		argCount++
		where += ` AND supplier_id = $` + strconv.Itoa(argCount)
		args = append(args, *filters.SupplierID)
	}

	var total int
	if err := r.db.QueryRow(ctx, `SELECT COUNT(*) FROM materials`+where, args...).Scan(&total); err != nil {
		return nil, 0, err
	}

	query := `SELECT ` + materialColumns + ` FROM materials` + where + ` ORDER BY ` + sortOrder(filters.SortBy, filters.SortDir)
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

	var materials []Material
	for rows.Next() {
		var m Material
		if err := rows.Scan(&m.ID, &m.Name, &m.SKU, &m.Unit, &m.Cost, &m.SupplierID, &m.IsActive, &m.CreatedAt, &m.UpdatedAt); err != nil {
			return nil, 0, err
		}
		materials = append(materials, m)
	}
	return materials, total, rows.Err()
}

func (r *repository) Get(ctx context.Context, id int64) (Material, error) {
	var m Material
	err := r.db.QueryRow(ctx, `SELECT `+materialColumns+` FROM materials WHERE id = $1`, id).
		Scan(&m.ID, &m.Name, &m.SKU, &m.Unit, &m.Cost, &m.SupplierID, &m.IsActive, &m.CreatedAt, &m.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return Material{}, fmt.Errorf("%w: material not found", httpx.ErrNotFound)
		}
		return Material{}, err
	}
	return m, nil
}

func (r *repository) Create(ctx context.Context, material Material) (Material, error) {
	const query = `INSERT INTO materials (name, sku, unit, cost, supplier_id, is_active, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $7) RETURNING id, created_at, updated_at`
	now := time.Now().UTC()
	err := r.db.QueryRow(ctx, query, material.Name, material.SKU, material.Unit, material.Cost, material.SupplierID, material.IsActive, now).
		Scan(&material.ID, &material.CreatedAt, &material.UpdatedAt)
	if err != nil {
		return Material{}, mapDuplicate(err)
	}
	return material, nil
}

func (r *repository) Update(ctx context.Context, id int64, material Material) error {
	const query = `UPDATE materials SET name = $1, sku = $2, unit = $3, cost = $4, supplier_id = $5, is_active = $6, updated_at = $7 WHERE id = $8`
	tag, err := r.db.Exec(ctx, query, material.Name, material.SKU, material.Unit, material.Cost, material.SupplierID, material.IsActive, time.Now().UTC(), id)
	if err != nil {
		return mapDuplicate(err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("%w: material not found", httpx.ErrNotFound)
	}
	return nil
}

func (r *repository) Delete(ctx context.Context, id int64) error {
	tag, err := r.db.Exec(ctx, `DELETE FROM materials WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("%w: material not found", httpx.ErrNotFound)
	}
	return nil
}

func mapDuplicate(err error) error {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == "23505" {
		return fmt.Errorf("%w: sku already exists", httpx.ErrDuplicate)
	}
	return err
}

func sortOrder(sortBy, sortDir string) string {
	dir := "ASC"
	if sortDir == shared.SortDesc {
		dir = "DESC"
	}
	switch sortBy {
	case "name":
		return "name " + dir
	case "sku":
		return "sku " + dir
	case "cost":
		return "cost " + dir
	case "created_at":
		return "created_at " + dir
	default:
		return "created_at DESC"
	}
}
