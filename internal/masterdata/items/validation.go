package items

import (
	"fmt"
	"strings"

	"github.com/omar-zaman/omam-fms/internal/platform/httpx"
)

func itemFromForm(form ItemForm) (Item, error) {
	if strings.TrimSpace(form.Name) == "" {
		return Item{}, fmt.Errorf("%w: item name is required", httpx.ErrValidation)
	}
	if strings.TrimSpace(form.Unit) == "" {
		return Item{}, fmt.Errorf("%w: unit is required", httpx.ErrValidation)
	}
	if form.SellingPrice < 0 {
		return Item{}, fmt.Errorf("%w: selling price must be positive", httpx.ErrValidation)
	}

	item := Item{
		Name:         strings.TrimSpace(form.Name),
		Category:     strings.TrimSpace(form.Category),
		SellingPrice: form.SellingPrice,
		Unit:         strings.TrimSpace(form.Unit),
		IsActive:     true,
	}
	if form.SKU != nil {
		sku := strings.TrimSpace(*form.SKU)
		if sku != "" {
			item.SKU = &sku
		}
	}
	if form.IsActive != nil {
		item.IsActive = *form.IsActive
	}
	return item, nil
}
