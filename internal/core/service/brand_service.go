package service

import (
	"github.com/rs/zerolog"

	"github.com/zebrands/catalog-api/internal/core/domain"
	"github.com/zebrands/catalog-api/internal/core/ports"
	"github.com/zebrands/catalog-api/internal/core/resource"
)

// BrandController is the resource controller for brands.
type BrandController = resource.Controller[domain.Brand, domain.BrandFields]

// NewBrandService returns the brand controller. Brands have no anonymous
// access path and no side effects.
func NewBrandService(
	repo ports.BrandRepository,
	validator resource.Validator[domain.Brand, domain.BrandFields],
	log zerolog.Logger,
) *BrandController {
	return resource.New(resource.Config[domain.Brand, domain.BrandFields]{
		Resource:    "brand",
		Store:       repo,
		Validator:   validator,
		Policy:      resource.Private(),
		UniqueField: "name",
		Logger:      log,
	})
}
