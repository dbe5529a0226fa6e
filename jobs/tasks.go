// Package jobs holds the background tasks processed by cmd/worker.
package jobs

import (
	"context"
	"log/slog"

	"github.com/hibiken/asynq"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/omar-zaman/omam-fms/internal/inventory"
)

const (
	// QueueDefault is the default queue name for background jobs.
	QueueDefault = "default"
	// TaskTypeLowStockScan flags inventory records whose reservations can no
	// longer be covered by available stock.
	TaskTypeLowStockScan = "inventory:low_stock_scan"
)

// NewLowStockScanTask constructs an Asynq task. The scan takes no payload.
func NewLowStockScanTask() *asynq.Task {
	return asynq.NewTask(TaskTypeLowStockScan, nil)
}

// LowStockScanJob runs the scan against the stock ledger.
type LowStockScanJob struct {
	repo   *inventory.Repository
	logger *slog.Logger
}

func NewLowStockScanJob(pool *pgxpool.Pool, logger *slog.Logger) *LowStockScanJob {
	return &LowStockScanJob{repo: inventory.NewRepository(pool), logger: logger}
}

// Handle processes TaskTypeLowStockScan tasks.
func (j *LowStockScanJob) Handle(ctx context.Context, t *asynq.Task) error {
	views, err := j.repo.Exhausted(ctx)
	if err != nil {
		return err
	}
	for _, v := range views {
		j.logger.Warn("stock exhausted with outstanding reservations",
			slog.String("ref_type", string(v.RefType)),
			slog.Int64("item_id", v.ItemID),
			slog.String("item_name", v.ItemName),
			slog.Float64("current_stock", v.CurrentStock),
			slog.Float64("reserved_stock", v.ReservedStock))
	}
	j.logger.Info("low stock scan finished", slog.Int("flagged", len(views)))
	return nil
}
