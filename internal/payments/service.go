package payments

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/omar-zaman/omam-fms/internal/platform/httpx"
)

type Service struct {
	repo Repository
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

func (s *Service) List(ctx context.Context, filters ListFilters) ([]Payment, int, error) {
	return s.repo.List(ctx, filters)
}

func (s *Service) Get(ctx context.Context, id int64) (Payment, error) {
	if id <= 0 {
		return Payment{}, fmt.Errorf("%w: invalid payment ID", httpx.ErrValidation)
	}
	return s.repo.Get(ctx, id)
}

func (s *Service) Create(ctx context.Context, form PaymentForm) (Payment, error) {
	payment, err := paymentFromForm(form)
	if err != nil {
		return Payment{}, err
	}
	return s.repo.Create(ctx, payment)
}

func (s *Service) Update(ctx context.Context, id int64, form PaymentForm) (Payment, error) {
	if id <= 0 {
		return Payment{}, fmt.Errorf("%w: invalid payment ID", httpx.ErrValidation)
	}
	payment, err := paymentFromForm(form)
	if err != nil {
		return Payment{}, err
	}
	if err := s.repo.Update(ctx, id, payment); err != nil {
		return Payment{}, err
	}
	return s.repo.Get(ctx, id)
}

func (s *Service) Delete(ctx context.Context, id int64) error {
	if id <= 0 {
		return fmt.Errorf("%w: invalid payment ID", httpx.ErrValidation)
	}
	return s.repo.Delete(ctx, id)
}

// paymentFromForm enforces the counterpart rule: customer payments carry a
// customer and no supplier, supplier payments the other way round.
func paymentFromForm(form PaymentForm) (Payment, error) {
	ptype := Type(form.Type)
	if !ptype.Valid() {
		return Payment{}, fmt.Errorf("%w: invalid payment type %q", httpx.ErrValidation, form.Type)
	}
	mode := Mode(form.Mode)
	if !mode.Valid() {
		return Payment{}, fmt.Errorf("%w: invalid payment mode %q", httpx.ErrValidation, form.Mode)
	}
	if form.Amount <= 0 {
		return Payment{}, fmt.Errorf("%w: amount must be positive", httpx.ErrValidation)
	}

	switch ptype {
	case TypeCustomer:
		if form.CustomerID == nil || *form.CustomerID <= 0 {
			return Payment{}, fmt.Errorf("%w: customer payment requires a customer", httpx.ErrValidation)
		}
		if form.SupplierID != nil {
			return Payment{}, fmt.Errorf("%w: customer payment must not reference a supplier", httpx.ErrValidation)
		}
	case TypeSupplier:
		if form.SupplierID == nil || *form.SupplierID <= 0 {
			return Payment{}, fmt.Errorf("%w: supplier payment requires a supplier", httpx.ErrValidation)
		}
		if form.CustomerID != nil {
			return Payment{}, fmt.Errorf("%w: supplier payment must not reference a customer", httpx.ErrValidation)
		}
	}

	payment := Payment{
		PaymentNumber: strings.TrimSpace(form.PaymentNumber),
		Type:          ptype,
		CustomerID:    form.CustomerID,
		SupplierID:    form.SupplierID,
		Amount:        form.Amount,
		Mode:          mode,
		PaymentDate:   time.Now().UTC(),
		Reference:     strings.TrimSpace(form.Reference),
		Notes:         strings.TrimSpace(form.Notes),
	}
	if form.PaymentDate != nil {
		payment.PaymentDate = *form.PaymentDate
	}
	if payment.PaymentNumber == "" {
		payment.PaymentNumber = "PAY-" + strings.ToUpper(uuid.NewString()[:8])
	}
	return payment, nil
}
