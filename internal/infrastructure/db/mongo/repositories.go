package mongo

import (
	"context"
	"errors"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/zebrands/catalog-api/internal/core/domain"
)

const (
	collectionUsers    = "users"
	collectionProducts = "products"
	collectionBrands   = "brands"
)

type UserRepository struct {
	*collection[domain.User]
}

func NewUserRepository(db *mongo.Database) *UserRepository {
	return &UserRepository{newCollection(db, collectionUsers, func(u *domain.User) *int64 { return &u.ID })}
}

func (r *UserRepository) FindByEmail(ctx context.Context, email string) (*domain.User, error) {
	return r.findOne(ctx, bson.M{"email": email})
}

type ProductRepository struct {
	*collection[domain.Product]
}

func NewProductRepository(db *mongo.Database) *ProductRepository {
	return &ProductRepository{newCollection(db, collectionProducts, func(p *domain.Product) *int64 { return &p.ID })}
}

func (r *ProductRepository) FindBySKU(ctx context.Context, sku string) (*domain.Product, error) {
	return r.findOne(ctx, bson.M{"sku": sku})
}

// Replace sets the writable fields only. Visits is owned by
// IncrementVisits and is never written back from a stale read.
func (r *ProductRepository) Replace(ctx context.Context, id int64, p *domain.Product) (*domain.Product, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	var out domain.Product
	err := r.col.FindOneAndUpdate(ctx,
		bson.M{"_id": id},
		bson.M{"$set": bson.M{"sku": p.SKU, "name": p.Name, "price": p.Price, "brand": p.Brand}},
		options.FindOneAndUpdate().SetReturnDocument(options.After),
	).Decode(&out)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrNotFound
		}
		return nil, writeErr(err)
	}
	return &out, nil
}

// IncrementVisits bumps the counter server-side so concurrent reads never
// lose an increment.
func (r *ProductRepository) IncrementVisits(ctx context.Context, id int64) (*domain.Product, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	var p domain.Product
	err := r.col.FindOneAndUpdate(ctx,
		bson.M{"_id": id},
		bson.M{"$inc": bson.M{"visits": int64(1)}},
		options.FindOneAndUpdate().SetReturnDocument(options.After),
	).Decode(&p)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("increment visits: %w", err)
	}
	return &p, nil
}

type BrandRepository struct {
	*collection[domain.Brand]
}

func NewBrandRepository(db *mongo.Database) *BrandRepository {
	return &BrandRepository{newCollection(db, collectionBrands, func(b *domain.Brand) *int64 { return &b.ID })}
}

func (r *BrandRepository) FindByName(ctx context.Context, name string) (*domain.Brand, error) {
	return r.findOne(ctx, bson.M{"name": name})
}
