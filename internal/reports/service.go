package reports

import (
	"context"

	"github.com/omar-zaman/omam-fms/internal/payments"
	"github.com/omar-zaman/omam-fms/internal/procurement"
	"github.com/omar-zaman/omam-fms/internal/sales/orders"
)

type salesLister interface {
	List(ctx context.Context, filters orders.ListFilters) ([]orders.SalesOrder, int, error)
}

type purchaseLister interface {
	List(ctx context.Context, filters procurement.ListFilters) ([]procurement.PurchaseOrder, int, error)
}

type paymentLister interface {
	List(ctx context.Context, filters payments.ListFilters) ([]payments.Payment, int, error)
}

type Service struct {
	sales     salesLister
	purchases purchaseLister
	payments  paymentLister
	cache     *Cache
}

func NewService(sales salesLister, purchases purchaseLister, pay paymentLister, cache *Cache) *Service {
	return &Service{sales: sales, purchases: purchases, payments: pay, cache: cache}
}

func (s *Service) Sales(ctx context.Context, f Filter) (SalesReport, error) {
	var report SalesReport
	err := s.cache.Do(ctx, f.cacheKey("sales"), &report, func() (any, error) {
		list, _, err := s.sales.List(ctx, orders.ListFilters{
			CustomerID: f.CustomerID,
			DateFrom:   f.DateFrom,
			DateTo:     f.DateTo,
		})
		if err != nil {
			return nil, err
		}
		rep := SalesReport{Orders: list, Count: len(list)}
		if rep.Orders == nil {
			rep.Orders = []orders.SalesOrder{}
		}
		for _, o := range list {
			rep.TotalSales += o.TotalAmount
		}
		return rep, nil
	})
	return report, err
}

func (s *Service) Purchases(ctx context.Context, f Filter) (PurchaseReport, error) {
	var report PurchaseReport
	err := s.cache.Do(ctx, f.cacheKey("purchases"), &report, func() (any, error) {
		list, _, err := s.purchases.List(ctx, procurement.ListFilters{
			SupplierID: f.SupplierID,
			DateFrom:   f.DateFrom,
			DateTo:     f.DateTo,
		})
		if err != nil {
			return nil, err
		}
		rep := PurchaseReport{Orders: list, Count: len(list)}
		if rep.Orders == nil {
			rep.Orders = []procurement.PurchaseOrder{}
		}
		for _, o := range list {
			rep.TotalPurchases += o.TotalAmount
		}
		return rep, nil
	})
	return report, err
}

func (s *Service) CustomerPayments(ctx context.Context, f Filter) (PaymentReport, error) {
	var report PaymentReport
	err := s.cache.Do(ctx, f.cacheKey("customer-payments"), &report, func() (any, error) {
		list, _, err := s.payments.List(ctx, payments.ListFilters{
			Type:       string(payments.TypeCustomer),
			CustomerID: f.CustomerID,
			DateFrom:   f.DateFrom,
			DateTo:     f.DateTo,
		})
		if err != nil {
			return nil, err
		}
		rep := PaymentReport{Payments: list, Count: len(list)}
		if rep.Payments == nil {
			rep.Payments = []payments.Payment{}
		}
		for _, p := range list {
			rep.TotalPayments += p.Amount
		}
		return rep, nil
	})
	return report, err
}
