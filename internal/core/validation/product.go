package validation

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/zebrands/catalog-api/internal/core/domain"
	"github.com/zebrands/catalog-api/internal/core/ports"
	"github.com/zebrands/catalog-api/internal/core/resource"
)

// ProductRules validates product field sets against a product repository.
type ProductRules struct {
	v    *Validator
	repo ports.ProductRepository
}

func NewProductRules(v *Validator, repo ports.ProductRepository) *ProductRules {
	return &ProductRules{v: v, repo: repo}
}

// Validate implements resource.Validator. Visits is carried over from
// current and never taken from the caller.
func (r *ProductRules) Validate(ctx context.Context, f domain.ProductFields, current *domain.Product, mode resource.Mode) (*domain.Product, error) {
	if mode == resource.PartialUpdate && f.IsEmpty() {
		return nil, domain.FieldError(domain.NonFieldErrors, msgNoFields)
	}

	next := domain.Product{}
	if current != nil {
		next = *current
	}
	full := mode == resource.FullReplace
	ve := domain.NewValidationError()

	if present(ve, "sku", f.SKU, full) {
		sku := strings.TrimSpace(*f.SKU)
		if r.v.field(ve, "sku", sku, "required,max=100") {
			next.SKU = sku
		}
	}
	if present(ve, "name", f.Name, full) {
		name := strings.TrimSpace(*f.Name)
		if r.v.field(ve, "name", name, "required,max=255") {
			next.Name = name
		}
	}
	if present(ve, "price", f.Price, full) {
		if r.v.field(ve, "price", *f.Price, "gte=0") {
			next.Price = *f.Price
		}
	}
	if present(ve, "brand", f.Brand, full) {
		brand := strings.TrimSpace(*f.Brand)
		if r.v.field(ve, "brand", brand, "required,max=255") {
			next.Brand = brand
		}
	}

	if f.SKU != nil && !ve.Has("sku") {
		if err := r.checkSKU(ctx, ve, next.SKU, current); err != nil {
			return nil, err
		}
	}
	if err := ve.OrNil(); err != nil {
		return nil, err
	}
	return &next, nil
}

func (r *ProductRules) checkSKU(ctx context.Context, ve *domain.ValidationError, sku string, current *domain.Product) error {
	existing, err := r.repo.FindBySKU(ctx, sku)
	if errors.Is(err, domain.ErrNotFound) {
		return nil
	}
	if err != nil {
		return fmt.Errorf("check sku: %w", err)
	}
	if current == nil || existing.ID != current.ID {
		ve.Add("sku", "product with this sku already exists.")
	}
	return nil
}
