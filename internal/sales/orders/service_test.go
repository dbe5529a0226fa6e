package orders

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/omar-zaman/omam-fms/internal/inventory"
	"github.com/omar-zaman/omam-fms/internal/platform/httpx"
)

type memoryStore struct {
	records map[int64]inventory.Record
	nextID  int64
}

func newMemoryStore() *memoryStore {
	return &memoryStore{records: make(map[int64]inventory.Record)}
}

func (s *memoryStore) GetForUpdate(ctx context.Context, kind inventory.RefKind, itemID int64) (inventory.Record, error) {
	if rec, ok := s.records[itemID]; ok {
		return rec, nil
	}
	s.nextID++
	rec := inventory.Record{ID: s.nextID, RefType: kind, ItemID: itemID}
	s.records[itemID] = rec
	return rec, nil
}

func (s *memoryStore) Save(ctx context.Context, rec inventory.Record) error {
	s.records[rec.ItemID] = rec
	return nil
}

func (s *memoryStore) seed(itemID int64, current, reserved float64) {
	s.nextID++
	available := current - reserved
	if available < 0 {
		available = 0
	}
	s.records[itemID] = inventory.Record{ID: s.nextID, RefType: inventory.KindItem, ItemID: itemID, CurrentStock: current, ReservedStock: reserved, AvailableStock: available}
}

func newTestService() *Service {
	return &Service{ledger: inventory.NewLedger(nil, nil)}
}

func order(status Status, lines ...SalesOrderLine) SalesOrder {
	return SalesOrder{ID: 1, Status: status, Lines: lines}
}

func line(itemID int64, qty float64) SalesOrderLine {
	return SalesOrderLine{ItemID: itemID, Quantity: qty}
}

func TestCreatePendingReservesLines(t *testing.T) {
	svc := newTestService()
	store := newMemoryStore()
	store.seed(1, 10, 0)

	err := svc.applyCreate(context.Background(), store, order(StatusPending, line(1, 4)))
	require.NoError(t, err)

	rec := store.records[1]
	require.Equal(t, float64(10), rec.CurrentStock)
	require.Equal(t, float64(4), rec.ReservedStock)
	require.Equal(t, float64(6), rec.AvailableStock)
}

func TestCreateCompletedDeductsLines(t *testing.T) {
	svc := newTestService()
	store := newMemoryStore()
	store.seed(1, 10, 0)

	err := svc.applyCreate(context.Background(), store, order(StatusCompleted, line(1, 4)))
	require.NoError(t, err)

	rec := store.records[1]
	require.Equal(t, float64(6), rec.CurrentStock)
	require.Equal(t, float64(0), rec.ReservedStock)
	require.Equal(t, float64(6), rec.AvailableStock)
}

func TestCreateCancelledHasNoStockEffect(t *testing.T) {
	svc := newTestService()
	store := newMemoryStore()
	store.seed(1, 10, 0)

	err := svc.applyCreate(context.Background(), store, order(StatusCancelled, line(1, 4)))
	require.NoError(t, err)

	rec := store.records[1]
	require.Equal(t, float64(10), rec.CurrentStock)
	require.Equal(t, float64(0), rec.ReservedStock)
}

func TestTransitionPendingToCompleted(t *testing.T) {
	svc := newTestService()
	store := newMemoryStore()
	store.seed(1, 10, 4)

	old := order(StatusPending, line(1, 4))
	next := order(StatusCompleted, line(1, 4))
	require.NoError(t, svc.applyTransition(context.Background(), store, old, next))

	rec := store.records[1]
	require.Equal(t, float64(6), rec.CurrentStock)
	require.Equal(t, float64(0), rec.ReservedStock)
	require.Equal(t, float64(6), rec.AvailableStock)
}

func TestTransitionPendingToCancelledReleasesOldLines(t *testing.T) {
	svc := newTestService()
	store := newMemoryStore()
	store.seed(1, 10, 4)

	old := order(StatusPending, line(1, 4))
	next := order(StatusCancelled, line(1, 4))
	require.NoError(t, svc.applyTransition(context.Background(), store, old, next))

	rec := store.records[1]
	require.Equal(t, float64(10), rec.CurrentStock)
	require.Equal(t, float64(0), rec.ReservedStock)
	require.Equal(t, float64(10), rec.AvailableStock)
}

func TestTransitionCancelledToPendingReservesNewLines(t *testing.T) {
	svc := newTestService()
	store := newMemoryStore()
	store.seed(1, 10, 0)
	store.seed(2, 5, 0)

	old := order(StatusCancelled, line(1, 4))
	next := order(StatusPending, line(2, 3))
	require.NoError(t, svc.applyTransition(context.Background(), store, old, next))

	require.Equal(t, float64(0), store.records[1].ReservedStock)
	require.Equal(t, float64(3), store.records[2].ReservedStock)
	require.Equal(t, float64(2), store.records[2].AvailableStock)
}

func TestTransitionSameStatusIsIdempotent(t *testing.T) {
	svc := newTestService()
	store := newMemoryStore()
	store.seed(1, 10, 4)

	old := order(StatusPending, line(1, 4))
	next := order(StatusPending, line(1, 9))
	require.NoError(t, svc.applyTransition(context.Background(), store, old, next))

	rec := store.records[1]
	require.Equal(t, float64(4), rec.ReservedStock)
	require.Equal(t, float64(6), rec.AvailableStock)
}

func TestTransitionReleaseUsesOldLinesReserveUsesNew(t *testing.T) {
	svc := newTestService()
	store := newMemoryStore()
	store.seed(1, 10, 4)
	store.seed(2, 10, 0)

	// line changed from item 1 to item 2 while leaving and re-entering Pending
	old := order(StatusPending, line(1, 4))
	mid := order(StatusCancelled, line(2, 7))
	require.NoError(t, svc.applyTransition(context.Background(), store, old, mid))
	require.NoError(t, svc.applyTransition(context.Background(), store, mid, order(StatusPending, line(2, 7))))

	require.Equal(t, float64(0), store.records[1].ReservedStock)
	require.Equal(t, float64(7), store.records[2].ReservedStock)
}

func TestDeletePendingReleasesReservation(t *testing.T) {
	svc := newTestService()
	store := newMemoryStore()
	store.seed(1, 10, 4)

	require.NoError(t, svc.applyDelete(context.Background(), store, order(StatusPending, line(1, 4))))

	rec := store.records[1]
	require.Equal(t, float64(0), rec.ReservedStock)
	require.Equal(t, float64(10), rec.AvailableStock)
}

func TestDeleteCompletedKeepsDeduction(t *testing.T) {
	svc := newTestService()
	store := newMemoryStore()
	store.seed(1, 6, 0)

	require.NoError(t, svc.applyDelete(context.Background(), store, order(StatusCompleted, line(1, 4))))

	rec := store.records[1]
	require.Equal(t, float64(6), rec.CurrentStock)
}

func TestCreatePendingAgainstMissingStockRecord(t *testing.T) {
	svc := newTestService()
	store := newMemoryStore()

	req := OrderRequest{
		CustomerID: 3,
		Lines:      []OrderLineRequest{{ItemID: 9, Quantity: 5, UnitPrice: 10}},
	}
	o, err := orderFromRequest(req)
	require.NoError(t, err)
	require.Equal(t, float64(50), o.TotalAmount)

	require.NoError(t, svc.applyCreate(context.Background(), store, o))

	rec := store.records[9]
	require.Equal(t, inventory.KindItem, rec.RefType)
	require.Equal(t, float64(0), rec.CurrentStock)
	require.Equal(t, float64(5), rec.ReservedStock)
	require.Equal(t, float64(0), rec.AvailableStock)
}

func TestMergeUpdateStatusOnlyKeepsLines(t *testing.T) {
	old := SalesOrder{
		ID:          1,
		OrderNumber: "SO-1",
		CustomerID:  3,
		Status:      StatusPending,
		TotalAmount: 50,
		Lines:       []SalesOrderLine{{ItemID: 9, Quantity: 5, UnitPrice: 10, Total: 50}},
	}

	next, err := mergeUpdate(old, OrderRequest{Status: "Cancelled"})
	require.NoError(t, err)
	require.Equal(t, StatusCancelled, next.Status)
	require.Equal(t, old.Lines, next.Lines)
	require.Equal(t, float64(50), next.TotalAmount)
	require.Equal(t, int64(3), next.CustomerID)
	require.Equal(t, "SO-1", next.OrderNumber)
}

func TestMergeUpdateLinesOnlyKeepsStatus(t *testing.T) {
	svc := newTestService()
	store := newMemoryStore()
	store.seed(1, 4, 0)
	old := order(StatusCompleted, line(1, 4))

	next, err := mergeUpdate(old, OrderRequest{
		Lines: []OrderLineRequest{{ItemID: 2, Quantity: 3, UnitPrice: 7}},
	})
	require.NoError(t, err)
	require.Equal(t, StatusCompleted, next.Status)
	require.Equal(t, float64(21), next.TotalAmount)

	// status unchanged, so editing the lines moves no stock
	require.NoError(t, svc.applyTransition(context.Background(), store, old, next))
	require.Equal(t, float64(4), store.records[1].CurrentStock)
	_, touched := store.records[2]
	require.False(t, touched)
}

func TestMergeUpdateRejectsInvalidStatus(t *testing.T) {
	_, err := mergeUpdate(order(StatusPending, line(1, 1)), OrderRequest{Status: "Shipped"})
	require.ErrorIs(t, err, httpx.ErrValidation)
}

func TestOrderFromRequestRecomputesTotals(t *testing.T) {
	req := OrderRequest{
		CustomerID: 3,
		Lines: []OrderLineRequest{
			{ItemID: 1, Quantity: 2, UnitPrice: 10},
			{ItemID: 2, Quantity: 3, UnitPrice: 5.5},
		},
	}

	o, err := orderFromRequest(req)
	require.NoError(t, err)
	require.Equal(t, StatusPending, o.Status)
	require.Equal(t, float64(20), o.Lines[0].Total)
	require.Equal(t, 16.5, o.Lines[1].Total)
	require.Equal(t, 36.5, o.TotalAmount)
	require.NotEmpty(t, o.OrderNumber)
}

func TestOrderFromRequestRejectsInvalidStatus(t *testing.T) {
	req := OrderRequest{
		CustomerID: 3,
		Status:     "Shipped",
		Lines:      []OrderLineRequest{{ItemID: 1, Quantity: 1, UnitPrice: 1}},
	}

	_, err := orderFromRequest(req)
	require.ErrorIs(t, err, httpx.ErrValidation)
}

func TestOrderFromRequestRejectsEmptyLines(t *testing.T) {
	_, err := orderFromRequest(OrderRequest{CustomerID: 3})
	require.ErrorIs(t, err, httpx.ErrValidation)
}

func TestOrderRequestDecodesItemsKey(t *testing.T) {
	var req OrderRequest
	err := json.Unmarshal([]byte(`{"customer_id":3,"items":[{"item_id":1,"quantity":2,"unit_price":5}]}`), &req)
	require.NoError(t, err)
	require.Len(t, req.Lines, 1)
	require.Equal(t, int64(1), req.Lines[0].ItemID)
}
