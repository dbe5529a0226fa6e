package materials

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

func (s *Service) List(ctx context.Context, filters shared.ListFilters) ([]Material, int, error) {
	return s.repo.List(ctx, filters)
}

func (s *Service) Get(ctx context.Context, id int64) (Material, error) {
	if id <= 0 {
		return Material{}, fmt.Errorf("%w: invalid material ID", httpx.ErrValidation)
	}
	return s.repo.Get(ctx, id)
}

func (s *Service) Create(ctx context.Context, form MaterialForm) (Material, error) {
	material, err := materialFromForm(form)
	if err != nil {
		return Material{}, err
	}
	return s.repo.Create(ctx, material)
}

func (s *Service) Update(ctx context.Context, id int64, form MaterialForm) (Material, error) {
	if id <= 0 {
		return Material{}, fmt.Errorf("%w: invalid material ID", httpx.ErrValidation)
	}
	material, err := materialFromForm(form)
	if err != nil {
		return Material{}, err
	}
	if err := s.repo.Update(ctx, id, material); err != nil {
		return Material{}, err
	}
	return s.repo.Get(ctx, id)
}

func (s *Service) Delete(ctx context.Context, id int64) error {
	if id <= 0 {
		return fmt.Errorf("%w: invalid material ID", httpx.ErrValidation)
	}
	return s.repo.Delete(ctx, id)
}

func materialFromForm(form MaterialForm) (Material, error) {
	if strings.TrimSpace(form.Name) == "" {
		return Material{}, fmt.Errorf("%w: material name is required", httpx.ErrValidation)
	}
	if strings.TrimSpace(form.Unit) == "" {
		return Material{}, fmt.Errorf("%w: unit is required", httpx.ErrValidation)
	}
	if form.Cost < 0 {
		return Material{}, fmt.Errorf("%w: cost must be positive", httpx.ErrValidation)
	}

	material := Material{
		Name:       strings.TrimSpace(form.Name),
		Unit:       strings.TrimSpace(form.Unit),
		Cost:       form.Cost,
		SupplierID: form.SupplierID,
		IsActive:   true,
	}
	if form.SKU != nil {
		sku := strings.TrimSpace(*form.SKU)
		if sku != "" {
			material.SKU = &sku
		}
	}
	if form.IsActive != nil {
		material.IsActive = *form.IsActive
	}
	return material, nil
}
