package suppliers

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

func (s *Service) List(ctx context.Context, filters shared.ListFilters) ([]Supplier, int, error) {
	return s.repo.List(ctx, filters)
}

func (s *Service) Get(ctx context.Context, id int64) (Supplier, error) {
	if id <= 0 {
		return Supplier{}, fmt.Errorf("%w: invalid supplier ID", httpx.ErrValidation)
	}
	return s.repo.Get(ctx, id)
}

func (s *Service) Create(ctx context.Context, form SupplierForm) (Supplier, error) {
	supplier, err := supplierFromForm(form)
	if err != nil {
		return Supplier{}, err
	}
	return s.repo.Create(ctx, supplier)
}

func (s *Service) Update(ctx context.Context, id int64, form SupplierForm) (Supplier, error) {
	if id <= 0 {
		return Supplier{}, fmt.Errorf("%w: invalid supplier ID", httpx.ErrValidation)
	}
	supplier, err := supplierFromForm(form)
	if err != nil {
		return Supplier{}, err
	}
	if err := s.repo.Update(ctx, id, supplier); err != nil {
		return Supplier{}, err
	}
	return s.repo.Get(ctx, id)
}

// Delete removes the supplier. Materials referencing it keep the dangling id.
func (s *Service) Delete(ctx context.Context, id int64) error {
	if id <= 0 {
		return fmt.Errorf("%w: invalid supplier ID", httpx.ErrValidation)
	}
	return s.repo.Delete(ctx, id)
}

func supplierFromForm(form SupplierForm) (Supplier, error) {
	if strings.TrimSpace(form.Name) == "" {
		return Supplier{}, fmt.Errorf("%w: supplier name is required", httpx.ErrValidation)
	}

	supplier := Supplier{
		Name:          strings.TrimSpace(form.Name),
		ContactPerson: strings.TrimSpace(form.ContactPerson),
		Phone:         strings.TrimSpace(form.Phone),
		Email:         strings.TrimSpace(form.Email),
		Address:       strings.TrimSpace(form.Address),
		IsActive:      true,
	}
	if form.IsActive != nil {
		supplier.IsActive = *form.IsActive
	}
	return supplier, nil
}
