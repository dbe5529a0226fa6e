package procurement

import (
	"context"
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

func (s *memoryStore) seed(itemID int64, current float64) {
	s.nextID++
	s.records[itemID] = inventory.Record{ID: s.nextID, RefType: inventory.KindMaterial, ItemID: itemID, CurrentStock: current, AvailableStock: current}
}

func newTestService() *Service {
	return &Service{ledger: inventory.NewLedger(nil, nil)}
}

func order(status Status, lines ...PurchaseOrderLine) PurchaseOrder {
	return PurchaseOrder{ID: 1, Status: status, Lines: lines}
}

func line(materialID int64, qty float64) PurchaseOrderLine {
	return PurchaseOrderLine{MaterialID: materialID, Quantity: qty}
}

func TestCreateCompletedAddsStock(t *testing.T) {
	svc := newTestService()
	store := newMemoryStore()

	err := svc.applyCreate(context.Background(), store, order(StatusCompleted, line(1, 12)))
	require.NoError(t, err)

	rec := store.records[1]
	require.Equal(t, inventory.KindMaterial, rec.RefType)
	require.Equal(t, float64(12), rec.CurrentStock)
	require.Equal(t, float64(12), rec.AvailableStock)
}

func TestMergeUpdateStatusOnlyKeepsLines(t *testing.T) {
	old := PurchaseOrder{
		ID:          1,
		OrderNumber: "PO-1",
		SupplierID:  2,
		Status:      StatusPending,
		TotalAmount: 40,
		Lines:       []PurchaseOrderLine{{MaterialID: 5, Quantity: 20, UnitCost: 2, Total: 40}},
	}

	next, err := mergeUpdate(old, OrderRequest{Status: "Completed"})
	require.NoError(t, err)
	require.Equal(t, StatusCompleted, next.Status)
	require.Equal(t, old.Lines, next.Lines)
	require.Equal(t, float64(40), next.TotalAmount)
	require.Equal(t, int64(2), next.SupplierID)
}

func TestMergeUpdateLinesOnlyDoesNotReverseStock(t *testing.T) {
	svc := newTestService()
	store := newMemoryStore()
	store.seed(1, 10)
	old := order(StatusCompleted, line(1, 10))

	next, err := mergeUpdate(old, OrderRequest{
		Lines: []OrderLineRequest{{MaterialID: 1, Quantity: 8, UnitCost: 3}},
	})
	require.NoError(t, err)
	require.Equal(t, StatusCompleted, next.Status)
	require.Equal(t, float64(24), next.TotalAmount)

	// status unchanged, so the received stock stays put
	require.NoError(t, svc.applyTransition(context.Background(), store, old, next))
	require.Equal(t, float64(10), store.records[1].CurrentStock)
}

func TestCreatePendingHasNoStockEffect(t *testing.T) {
	svc := newTestService()
	store := newMemoryStore()
	store.seed(1, 5)

	err := svc.applyCreate(context.Background(), store, order(StatusPending, line(1, 12)))
	require.NoError(t, err)

	require.Equal(t, float64(5), store.records[1].CurrentStock)
}

func TestTransitionPendingToCompletedAddsNewLines(t *testing.T) {
	svc := newTestService()
	store := newMemoryStore()
	store.seed(1, 5)

	old := order(StatusPending, line(1, 10))
	next := order(StatusCompleted, line(1, 10))
	require.NoError(t, svc.applyTransition(context.Background(), store, old, next))

	require.Equal(t, float64(15), store.records[1].CurrentStock)
}

func TestTransitionCompletedToCancelledReversesOldLines(t *testing.T) {
	svc := newTestService()
	store := newMemoryStore()
	store.seed(1, 15)

	old := order(StatusCompleted, line(1, 10))
	next := order(StatusCancelled, line(1, 10))
	require.NoError(t, svc.applyTransition(context.Background(), store, old, next))

	require.Equal(t, float64(5), store.records[1].CurrentStock)
}

func TestTransitionCompletedStaysCompletedIsIdempotent(t *testing.T) {
	svc := newTestService()
	store := newMemoryStore()
	store.seed(1, 15)

	old := order(StatusCompleted, line(1, 10))
	next := order(StatusCompleted, line(1, 99))
	require.NoError(t, svc.applyTransition(context.Background(), store, old, next))

	require.Equal(t, float64(15), store.records[1].CurrentStock)
}

func TestTransitionReverseClampsWhenStockAlreadyConsumed(t *testing.T) {
	svc := newTestService()
	store := newMemoryStore()
	store.seed(1, 3)

	old := order(StatusCompleted, line(1, 10))
	next := order(StatusPending, line(1, 10))
	require.NoError(t, svc.applyTransition(context.Background(), store, old, next))

	rec := store.records[1]
	require.Equal(t, float64(0), rec.CurrentStock)
	require.Equal(t, float64(0), rec.AvailableStock)
}

func TestDeleteCompletedReversesStock(t *testing.T) {
	svc := newTestService()
	store := newMemoryStore()
	store.seed(1, 12)

	require.NoError(t, svc.applyDelete(context.Background(), store, order(StatusCompleted, line(1, 12))))

	require.Equal(t, float64(0), store.records[1].CurrentStock)
}

func TestDeletePendingHasNoStockEffect(t *testing.T) {
	svc := newTestService()
	store := newMemoryStore()
	store.seed(1, 12)

	require.NoError(t, svc.applyDelete(context.Background(), store, order(StatusPending, line(1, 12))))

	require.Equal(t, float64(12), store.records[1].CurrentStock)
}

func TestOrderFromRequestRecomputesTotals(t *testing.T) {
	req := OrderRequest{
		SupplierID: 2,
		Lines: []OrderLineRequest{
			{MaterialID: 1, Quantity: 4, UnitCost: 2.5},
			{MaterialID: 2, Quantity: 1, UnitCost: 30},
		},
	}

	o, err := orderFromRequest(req)
	require.NoError(t, err)
	require.Equal(t, StatusPending, o.Status)
	require.Equal(t, float64(10), o.Lines[0].Total)
	require.Equal(t, float64(30), o.Lines[1].Total)
	require.Equal(t, float64(40), o.TotalAmount)
	require.NotEmpty(t, o.OrderNumber)
}

func TestOrderFromRequestRejectsInvalidStatus(t *testing.T) {
	req := OrderRequest{
		SupplierID: 2,
		Status:     "Received",
		Lines:      []OrderLineRequest{{MaterialID: 1, Quantity: 1, UnitCost: 1}},
	}

	_, err := orderFromRequest(req)
	require.ErrorIs(t, err, httpx.ErrValidation)
}
