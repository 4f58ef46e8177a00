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

// collection implements ports.Store[T] over one MongoDB collection whose
// documents use an int64 _id drawn from a sequence.
type collection[T any] struct {
	col *mongo.Collection
	seq *sequence
	id  func(*T) *int64
}

func newCollection[T any](db *mongo.Database, name string, id func(*T) *int64) *collection[T] {
	return &collection[T]{col: db.Collection(name), seq: newSequence(db, name), id: id}
}

func (c *collection[T]) FindAll(ctx context.Context) ([]*T, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	cur, err := c.col.Find(ctx, bson.M{}, options.Find().SetSort(bsonKey("_id")))
	if err != nil {
		return nil, fmt.Errorf("find %s: %w", c.col.Name(), err)
	}
	out := []*T{}
	if err := cur.All(ctx, &out); err != nil {
		return nil, fmt.Errorf("decode %s: %w", c.col.Name(), err)
	}
	return out, nil
}

func (c *collection[T]) FindByID(ctx context.Context, id int64) (*T, error) {
	return c.findOne(ctx, bson.M{"_id": id})
}

func (c *collection[T]) Insert(ctx context.Context, v *T) (*T, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	id, err := c.seq.next(ctx)
	if err != nil {
		return nil, err
	}
	row := *v
	*c.id(&row) = id
	if _, err := c.col.InsertOne(ctx, &row); err != nil {
		return nil, writeErr(err)
	}
	return &row, nil
}

func (c *collection[T]) Replace(ctx context.Context, id int64, v *T) (*T, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	row := *v
	*c.id(&row) = id
	res, err := c.col.ReplaceOne(ctx, bson.M{"_id": id}, &row)
	if err != nil {
		return nil, writeErr(err)
	}
	if res.MatchedCount == 0 {
		return nil, domain.ErrNotFound
	}
	return &row, nil
}

func (c *collection[T]) Delete(ctx context.Context, id int64) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	res, err := c.col.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return fmt.Errorf("delete from %s: %w", c.col.Name(), err)
	}
	if res.DeletedCount == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (c *collection[T]) findOne(ctx context.Context, filter bson.M) (*T, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	var v T
	if err := c.col.FindOne(ctx, filter).Decode(&v); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("find in %s: %w", c.col.Name(), err)
	}
	return &v, nil
}

func writeErr(err error) error {
	if mongo.IsDuplicateKeyError(err) {
		return fmt.Errorf("%w: %v", domain.ErrDuplicateKey, err)
	}
	return err
}

func bsonKey(field string) bson.D {
	return bson.D{{Key: field, Value: 1}}
}
