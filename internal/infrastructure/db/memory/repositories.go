package memory

import (
	"context"

	"github.com/zebrands/catalog-api/internal/core/domain"
)

// UserRepository implements ports.UserRepository in memory.
type UserRepository struct {
	*table[domain.User]
}

func NewUserRepository() *UserRepository {
	return &UserRepository{newTable(
		func(u *domain.User) *int64 { return &u.ID },
		func(u *domain.User) string { return u.Email },
	)}
}

func (r *UserRepository) FindByEmail(_ context.Context, email string) (*domain.User, error) {
	return r.findByKey(email)
}

// ProductRepository implements ports.ProductRepository in memory.
type ProductRepository struct {
	*table[domain.Product]
}

// NewProductRepository returns a product table whose Replace keeps the
// stored visit counter.
func NewProductRepository() *ProductRepository {
	t := newTable(
		func(p *domain.Product) *int64 { return &p.ID },
		func(p *domain.Product) string { return p.SKU },
	)
	t.keep = func(stored, next *domain.Product) { next.Visits = stored.Visits }
	return &ProductRepository{t}
}

func (r *ProductRepository) FindBySKU(_ context.Context, sku string) (*domain.Product, error) {
	return r.findByKey(sku)
}

func (r *ProductRepository) IncrementVisits(_ context.Context, id int64) (*domain.Product, error) {
	return r.update(id, func(p *domain.Product) { p.Visits++ })
}

// BrandRepository implements ports.BrandRepository in memory.
type BrandRepository struct {
	*table[domain.Brand]
}

func NewBrandRepository() *BrandRepository {
	return &BrandRepository{newTable(
		func(b *domain.Brand) *int64 { return &b.ID },
		func(b *domain.Brand) string { return b.Name },
	)}
}

func (r *BrandRepository) FindByName(_ context.Context, name string) (*domain.Brand, error) {
	return r.findByKey(name)
}
