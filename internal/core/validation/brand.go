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

// BrandRules validates brand field sets against a brand repository.
type BrandRules struct {
	v    *Validator
	repo ports.BrandRepository
}

func NewBrandRules(v *Validator, repo ports.BrandRepository) *BrandRules {
	return &BrandRules{v: v, repo: repo}
}

func (r *BrandRules) Validate(ctx context.Context, f domain.BrandFields, current *domain.Brand, mode resource.Mode) (*domain.Brand, error) {
	if mode == resource.PartialUpdate && f.IsEmpty() {
		return nil, domain.FieldError(domain.NonFieldErrors, msgNoFields)
	}

	next := domain.Brand{}
	if current != nil {
		next = *current
	}
	full := mode == resource.FullReplace
	ve := domain.NewValidationError()

	if present(ve, "name", f.Name, full) {
		name := strings.TrimSpace(*f.Name)
		if r.v.field(ve, "name", name, "required,max=150") {
			next.Name = name
		}
	}
	if present(ve, "category", f.Category, full) {
		category := strings.TrimSpace(*f.Category)
		if r.v.field(ve, "category", category, "required,max=150") {
			next.Category = category
		}
	}

	if f.Name != nil && !ve.Has("name") {
		existing, err := r.repo.FindByName(ctx, next.Name)
		switch {
		case errors.Is(err, domain.ErrNotFound):
		case err != nil:
			return nil, fmt.Errorf("check brand name: %w", err)
		case current == nil || existing.ID != current.ID:
			ve.Add("name", "brand with this name already exists.")
		}
	}
	if err := ve.OrNil(); err != nil {
		return nil, err
	}
	return &next, nil
}
