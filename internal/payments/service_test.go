package payments

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/omar-zaman/omam-fms/internal/platform/httpx"
)

func ptr(v int64) *int64 { return &v }

func TestPaymentFromFormCustomer(t *testing.T) {
	p, err := paymentFromForm(PaymentForm{
		Type:       "Customer",
		CustomerID: ptr(4),
		Amount:     120.50,
		Mode:       "Bank",
	})
	require.NoError(t, err)
	require.Equal(t, TypeCustomer, p.Type)
	require.Equal(t, ModeBank, p.Mode)
	require.Equal(t, int64(4), *p.CustomerID)
	require.Nil(t, p.SupplierID)
	require.NotEmpty(t, p.PaymentNumber)
	require.False(t, p.PaymentDate.IsZero())
}

func TestPaymentFromFormSupplierTypeRequiresSupplier(t *testing.T) {
	_, err := paymentFromForm(PaymentForm{
		Type:   "Supplier",
		Amount: 10,
		Mode:   "Cash",
	})
	require.ErrorIs(t, err, httpx.ErrValidation)
}

func TestPaymentFromFormRejectsBothCounterparts(t *testing.T) {
	_, err := paymentFromForm(PaymentForm{
		Type:       "Customer",
		CustomerID: ptr(1),
		SupplierID: ptr(2),
		Amount:     10,
		Mode:       "Cash",
	})
	require.ErrorIs(t, err, httpx.ErrValidation)
}

func TestPaymentFromFormRejectsNonPositiveAmount(t *testing.T) {
	_, err := paymentFromForm(PaymentForm{
		Type:       "Customer",
		CustomerID: ptr(1),
		Amount:     0,
		Mode:       "Cash",
	})
	require.ErrorIs(t, err, httpx.ErrValidation)
}

func TestPaymentFromFormRejectsUnknownMode(t *testing.T) {
	_, err := paymentFromForm(PaymentForm{
		Type:       "Customer",
		CustomerID: ptr(1),
		Amount:     10,
		Mode:       "Cheque",
	})
	require.ErrorIs(t, err, httpx.ErrValidation)
}

func TestPaymentFromFormKeepsExplicitDateAndNumber(t *testing.T) {
	date := time.Date(2024, 5, 2, 0, 0, 0, 0, time.UTC)
	p, err := paymentFromForm(PaymentForm{
		PaymentNumber: "PAY-001",
		Type:          "Supplier",
		SupplierID:    ptr(9),
		Amount:        55,
		Mode:          "Online",
		PaymentDate:   &date,
	})
	require.NoError(t, err)
	require.Equal(t, "PAY-001", p.PaymentNumber)
	require.Equal(t, date, p.PaymentDate)
}
