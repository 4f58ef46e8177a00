package ports

import (
	"context"

	"github.com/zebrands/catalog-api/internal/core/domain"
)

// Store is the persistence contract shared by every resource type. Lookups
// that do not resolve return domain.ErrNotFound; unique index violations
// return an error wrapping domain.ErrDuplicateKey.
type Store[T any] interface {
	// FindAll returns every row in insertion order.
	FindAll(ctx context.Context) ([]*T, error)
	FindByID(ctx context.Context, id int64) (*T, error)
	// Insert assigns a fresh id and persists v.
	Insert(ctx context.Context, v *T) (*T, error)
	// Replace overwrites the row identified by id with v.
	Replace(ctx context.Context, id int64, v *T) (*T, error)
	Delete(ctx context.Context, id int64) error
}

// UserRepository persists users. Email is stored normalized and is unique.
type UserRepository interface {
	Store[domain.User]
	FindByEmail(ctx context.Context, email string) (*domain.User, error)
}

// ProductRepository persists products. SKU is unique.
type ProductRepository interface {
	Store[domain.Product]
	FindBySKU(ctx context.Context, sku string) (*domain.Product, error)
	// IncrementVisits adds one to the visit counter and returns the row as
	// it is after the increment.
	IncrementVisits(ctx context.Context, id int64) (*domain.Product, error)
}

// BrandRepository persists brands. Name is unique.
type BrandRepository interface {
	Store[domain.Brand]
	FindByName(ctx context.Context, name string) (*domain.Brand, error)
}
