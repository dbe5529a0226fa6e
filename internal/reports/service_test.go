package reports

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/require"

	"github.com/omar-zaman/omam-fms/internal/payments"
	"github.com/omar-zaman/omam-fms/internal/procurement"
	"github.com/omar-zaman/omam-fms/internal/sales/orders"
)

type fakeSales struct {
	result []orders.SalesOrder
	calls  int
}

func (f *fakeSales) List(ctx context.Context, filters orders.ListFilters) ([]orders.SalesOrder, int, error) {
	f.calls++
	return f.result, len(f.result), nil
}

type fakePurchases struct {
	result []procurement.PurchaseOrder
}

func (f *fakePurchases) List(ctx context.Context, filters procurement.ListFilters) ([]procurement.PurchaseOrder, int, error) {
	return f.result, len(f.result), nil
}

type fakePayments struct {
	result  []payments.Payment
	lastReq payments.ListFilters
}

func (f *fakePayments) List(ctx context.Context, filters payments.ListFilters) ([]payments.Payment, int, error) {
	f.lastReq = filters
	return f.result, len(f.result), nil
}

func newTestCache(t *testing.T) *Cache {
	t.Helper()
	srv := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: srv.Addr()})
	t.Cleanup(func() { _ = client.Close() })
	return NewCache(client, time.Minute)
}

func TestSalesReportSumsTotals(t *testing.T) {
	sales := &fakeSales{result: []orders.SalesOrder{
		{ID: 1, TotalAmount: 100},
		{ID: 2, TotalAmount: 250.5},
	}}
	svc := NewService(sales, &fakePurchases{}, &fakePayments{}, newTestCache(t))

	rep, err := svc.Sales(context.Background(), Filter{})
	require.NoError(t, err)
	require.Equal(t, 2, rep.Count)
	require.Equal(t, 350.5, rep.TotalSales)
	require.Len(t, rep.Orders, 2)
}

func TestSalesReportServedFromCache(t *testing.T) {
	sales := &fakeSales{result: []orders.SalesOrder{{ID: 1, TotalAmount: 10}}}
	svc := NewService(sales, &fakePurchases{}, &fakePayments{}, newTestCache(t))
	ctx := context.Background()

	_, err := svc.Sales(ctx, Filter{})
	require.NoError(t, err)
	rep, err := svc.Sales(ctx, Filter{})
	require.NoError(t, err)

	require.Equal(t, 1, sales.calls)
	require.Equal(t, float64(10), rep.TotalSales)
}

func TestFilterFromQueryReadsCamelCaseParams(t *testing.T) {
	r := httptest.NewRequest(http.MethodGet, "/api/reports/sales-orders?dateFrom=2024-01-01&dateTo=2024-02-01&customerId=7&supplierId=9", nil)

	f := FilterFromQuery(r)
	require.NotNil(t, f.DateFrom)
	require.Equal(t, "2024-01-01", f.DateFrom.Format("2006-01-02"))
	require.NotNil(t, f.DateTo)
	require.NotNil(t, f.CustomerID)
	require.Equal(t, int64(7), *f.CustomerID)
	require.NotNil(t, f.SupplierID)
	require.Equal(t, int64(9), *f.SupplierID)
}

func TestCacheKeyVariesWithFilters(t *testing.T) {
	from := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	customer := int64(7)

	plain := Filter{}.cacheKey("sales")
	filtered := Filter{DateFrom: &from, CustomerID: &customer}.cacheKey("sales")
	require.NotEqual(t, plain, filtered)
}

func TestPurchaseReportSumsTotals(t *testing.T) {
	purchases := &fakePurchases{result: []procurement.PurchaseOrder{
		{ID: 1, TotalAmount: 40},
		{ID: 2, TotalAmount: 60},
	}}
	svc := NewService(&fakeSales{}, purchases, &fakePayments{}, newTestCache(t))

	rep, err := svc.Purchases(context.Background(), Filter{})
	require.NoError(t, err)
	require.Equal(t, float64(100), rep.TotalPurchases)
	require.Equal(t, 2, rep.Count)
}

func TestCustomerPaymentsReportFiltersCustomerType(t *testing.T) {
	pay := &fakePayments{result: []payments.Payment{
		{ID: 1, Amount: 25},
		{ID: 2, Amount: 75},
	}}
	svc := NewService(&fakeSales{}, &fakePurchases{}, pay, newTestCache(t))

	rep, err := svc.CustomerPayments(context.Background(), Filter{})
	require.NoError(t, err)
	require.Equal(t, string(payments.TypeCustomer), pay.lastReq.Type)
	require.Equal(t, float64(100), rep.TotalPayments)
}

func TestSalesWorkbookLayout(t *testing.T) {
	rep := SalesReport{
		Orders: []orders.SalesOrder{
			{OrderNumber: "SO-1", CustomerName: "Acme", OrderDate: time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC), Status: orders.StatusCompleted, TotalAmount: 1500},
		},
		TotalSales: 1500,
		Count:      1,
	}

	f, err := SalesWorkbook(rep)
	require.NoError(t, err)

	v, err := f.GetCellValue("Sales Orders", "A1")
	require.NoError(t, err)
	require.Equal(t, "Order Number", v)

	v, err = f.GetCellValue("Sales Orders", "A2")
	require.NoError(t, err)
	require.Equal(t, "SO-1", v)

	v, err = f.GetCellValue("Sales Orders", "E3")
	require.NoError(t, err)
	require.Equal(t, "1,500.00", v)
}
