package inventory

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/omar-zaman/omam-fms/internal/observability"
)

type recordKey struct {
	kind RefKind
	id   int64
}

type memoryStore struct {
	records map[recordKey]Record
	nextID  int64
}

func newMemoryStore() *memoryStore {
	return &memoryStore{records: make(map[recordKey]Record)}
}

func (s *memoryStore) GetForUpdate(ctx context.Context, kind RefKind, itemID int64) (Record, error) {
	key := recordKey{kind: kind, id: itemID}
	if rec, ok := s.records[key]; ok {
		return rec, nil
	}
	s.nextID++
	rec := Record{ID: s.nextID, RefType: kind, ItemID: itemID}
	s.records[key] = rec
	return rec, nil
}

func (s *memoryStore) Save(ctx context.Context, rec Record) error {
	s.records[recordKey{kind: rec.RefType, id: rec.ItemID}] = rec
	return nil
}

func (s *memoryStore) rec(kind RefKind, itemID int64) Record {
	return s.records[recordKey{kind: kind, id: itemID}]
}

func (s *memoryStore) seed(kind RefKind, itemID int64, current, reserved float64) {
	s.nextID++
	available := current - reserved
	if available < 0 {
		available = 0
	}
	s.records[recordKey{kind: kind, id: itemID}] = Record{
		ID:             s.nextID,
		RefType:        kind,
		ItemID:         itemID,
		CurrentStock:   current,
		ReservedStock:  reserved,
		AvailableStock: available,
	}
}

func TestLedgerReserveCreatesRecordLazily(t *testing.T) {
	store := newMemoryStore()
	ledger := NewLedger(nil, nil)

	require.NoError(t, ledger.Reserve(context.Background(), store, KindItem, 7, 5))

	rec := store.rec(KindItem, 7)
	require.Equal(t, float64(0), rec.CurrentStock)
	require.Equal(t, float64(5), rec.ReservedStock)
	require.Equal(t, float64(0), rec.AvailableStock)
}

func TestLedgerReserveAndRelease(t *testing.T) {
	store := newMemoryStore()
	store.seed(KindItem, 1, 10, 0)
	ledger := NewLedger(nil, nil)
	ctx := context.Background()

	require.NoError(t, ledger.Reserve(ctx, store, KindItem, 1, 4))
	rec := store.rec(KindItem, 1)
	require.Equal(t, float64(10), rec.CurrentStock)
	require.Equal(t, float64(4), rec.ReservedStock)
	require.Equal(t, float64(6), rec.AvailableStock)

	require.NoError(t, ledger.Release(ctx, store, KindItem, 1, 4))
	rec = store.rec(KindItem, 1)
	require.Equal(t, float64(0), rec.ReservedStock)
	require.Equal(t, float64(10), rec.AvailableStock)
}

func TestLedgerReleaseClampsAtZero(t *testing.T) {
	store := newMemoryStore()
	store.seed(KindItem, 1, 10, 2)
	ledger := NewLedger(nil, nil)

	require.NoError(t, ledger.Release(context.Background(), store, KindItem, 1, 5))

	rec := store.rec(KindItem, 1)
	require.Equal(t, float64(0), rec.ReservedStock)
	require.Equal(t, float64(10), rec.AvailableStock)
}

func TestLedgerDeductDropsBothFields(t *testing.T) {
	store := newMemoryStore()
	store.seed(KindItem, 1, 10, 4)
	ledger := NewLedger(nil, nil)

	require.NoError(t, ledger.Deduct(context.Background(), store, KindItem, 1, 4))

	rec := store.rec(KindItem, 1)
	require.Equal(t, float64(6), rec.CurrentStock)
	require.Equal(t, float64(0), rec.ReservedStock)
	require.Equal(t, float64(6), rec.AvailableStock)
}

func TestLedgerDeductClampsWhenOversold(t *testing.T) {
	store := newMemoryStore()
	store.seed(KindItem, 1, 3, 0)
	ledger := NewLedger(nil, nil)

	require.NoError(t, ledger.Deduct(context.Background(), store, KindItem, 1, 5))

	rec := store.rec(KindItem, 1)
	require.Equal(t, float64(0), rec.CurrentStock)
	require.Equal(t, float64(0), rec.ReservedStock)
	require.Equal(t, float64(0), rec.AvailableStock)
}

func TestLedgerAddAndReverse(t *testing.T) {
	store := newMemoryStore()
	ledger := NewLedger(nil, nil)
	ctx := context.Background()

	require.NoError(t, ledger.Add(ctx, store, KindMaterial, 2, 8))
	rec := store.rec(KindMaterial, 2)
	require.Equal(t, float64(8), rec.CurrentStock)
	require.Equal(t, float64(8), rec.AvailableStock)

	require.NoError(t, ledger.Reverse(ctx, store, KindMaterial, 2, 3))
	rec = store.rec(KindMaterial, 2)
	require.Equal(t, float64(5), rec.CurrentStock)
	require.Equal(t, float64(5), rec.AvailableStock)

	// reversing more than on hand clamps instead of going negative
	require.NoError(t, ledger.Reverse(ctx, store, KindMaterial, 2, 50))
	rec = store.rec(KindMaterial, 2)
	require.Equal(t, float64(0), rec.CurrentStock)
	require.Equal(t, float64(0), rec.AvailableStock)
}

func TestLedgerKeepsItemAndMaterialStockApart(t *testing.T) {
	store := newMemoryStore()
	ledger := NewLedger(nil, nil)
	ctx := context.Background()

	// material 1 and item 1 share an id but must never share a ledger row
	require.NoError(t, ledger.Add(ctx, store, KindMaterial, 1, 20))
	require.NoError(t, ledger.Deduct(ctx, store, KindItem, 1, 5))

	material := store.rec(KindMaterial, 1)
	require.Equal(t, float64(20), material.CurrentStock)
	require.Equal(t, float64(20), material.AvailableStock)

	item := store.rec(KindItem, 1)
	require.NotEqual(t, material.ID, item.ID)
	require.Equal(t, float64(0), item.CurrentStock)
}

func TestLedgerClampCountsMetric(t *testing.T) {
	store := newMemoryStore()
	store.seed(KindItem, 1, 3, 0)
	metrics := observability.NewMetrics()
	ledger := NewLedger(nil, metrics)

	require.NoError(t, ledger.Deduct(context.Background(), store, KindItem, 1, 5))

	rec := httptest.NewRecorder()
	metrics.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	require.Contains(t, rec.Body.String(), `fms_stock_clamp_total{field="current_stock"} 1`)
	require.Contains(t, rec.Body.String(), `fms_stock_clamp_total{field="reserved_stock"} 1`)
}

func TestLedgerAvailableNeverNegative(t *testing.T) {
	store := newMemoryStore()
	store.seed(KindItem, 1, 2, 0)
	ledger := NewLedger(nil, nil)

	require.NoError(t, ledger.Reserve(context.Background(), store, KindItem, 1, 9))

	rec := store.rec(KindItem, 1)
	require.Equal(t, float64(2), rec.CurrentStock)
	require.Equal(t, float64(9), rec.ReservedStock)
	require.Equal(t, float64(0), rec.AvailableStock)
}
