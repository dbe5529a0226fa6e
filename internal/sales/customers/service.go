package customers

import (
	"context"
	"fmt"
	"strings"

	"github.com/omar-zaman/omam-fms/internal/masterdata/shared"
	"github.com/omar-zaman/omam-fms/internal/platform/httpx"
)

type Service struct {
	repo Repository
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

func (s *Service) List(ctx context.Context, filters shared.ListFilters) ([]Customer, int, error) {
	return s.repo.List(ctx, filters)
}

func (s *Service) Get(ctx context.Context, id int64) (Customer, error) {
	if id <= 0 {
		return Customer{}, fmt.Errorf("%w: invalid customer ID", httpx.ErrValidation)
	}
	return s.repo.Get(ctx, id)
}

func (s *Service) Create(ctx context.Context, form CustomerForm) (Customer, error) {
	customer, err := customerFromForm(form)
	if err != nil {
		return Customer{}, err
	}
	return s.repo.Create(ctx, customer)
}

func (s *Service) Update(ctx context.Context, id int64, form CustomerForm) (Customer, error) {
	if id <= 0 {
		return Customer{}, fmt.Errorf("%w: invalid customer ID", httpx.ErrValidation)
	}
	customer, err := customerFromForm(form)
	if err != nil {
		return Customer{}, err
	}
	if err := s.repo.Update(ctx, id, customer); err != nil {
		return Customer{}, err
	}
	return s.repo.Get(ctx, id)
}

// Delete removes the customer. Existing orders keep the dangling customer id;
// reads resolve it to an "Unknown customer" placeholder.
func (s *Service) Delete(ctx context.Context, id int64) error {
	if id <= 0 {
		return fmt.Errorf("%w: invalid customer ID", httpx.ErrValidation)
	}
	return s.repo.Delete(ctx, id)
}

func customerFromForm(form CustomerForm) (Customer, error) {
	if strings.TrimSpace(form.Name) == "" {
		return Customer{}, fmt.Errorf("%w: customer name is required", httpx.ErrValidation)
	}

	customer := Customer{
		Name:           strings.TrimSpace(form.Name),
		Phone:          strings.TrimSpace(form.Phone),
		Email:          strings.TrimSpace(form.Email),
		Address:        strings.TrimSpace(form.Address),
		OpeningBalance: form.OpeningBalance,
		IsActive:       true,
	}
	if form.IsActive != nil {
		customer.IsActive = *form.IsActive
	}
	return customer, nil
}
