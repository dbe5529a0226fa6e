package items

import (
	"context"
	"fmt"

	"github.com/omar-zaman/omam-fms/internal/masterdata/shared"
	"github.com/omar-zaman/omam-fms/internal/platform/httpx"
)

type Service struct {
	repo Repository
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

func (s *Service) List(ctx context.Context, filters shared.ListFilters) ([]Item, int, error) {
	return s.repo.List(ctx, filters)
}

func (s *Service) Get(ctx context.Context, id int64) (Item, error) {
	if id <= 0 {
		return Item{}, fmt.Errorf("%w: invalid item ID", httpx.ErrValidation)
	}
	return s.repo.Get(ctx, id)
}

func (s *Service) Create(ctx context.Context, form ItemForm) (Item, error) {
	item, err := itemFromForm(form)
	if err != nil {
		return Item{}, err
	}
	return s.repo.Create(ctx, item)
}

func (s *Service) Update(ctx context.Context, id int64, form ItemForm) (Item, error) {
	if id <= 0 {
		return Item{}, fmt.Errorf("%w: invalid item ID", httpx.ErrValidation)
	}
	item, err := itemFromForm(form)
	if err != nil {
		return Item{}, err
	}
	if err := s.repo.Update(ctx, id, item); err != nil {
		return Item{}, err
	}
	return s.repo.Get(ctx, id)
}

// Delete removes the item. Historical orders keep their item id; reads resolve
// the gone row to an "Unknown item" placeholder.
func (s *Service) Delete(ctx context.Context, id int64) error {
	if id <= 0 {
		return fmt.Errorf("%w: invalid item ID", httpx.ErrValidation)
	}
	return s.repo.Delete(ctx, id)
}
