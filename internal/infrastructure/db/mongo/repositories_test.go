package mongo

import (
	"errors"
	"testing"

	"go.mongodb.org/mongo-driver/mongo"

	"github.com/zebrands/catalog-api/internal/core/domain"
	"github.com/zebrands/catalog-api/internal/core/ports"
)

var (
	_ ports.UserRepository    = (*UserRepository)(nil)
	_ ports.ProductRepository = (*ProductRepository)(nil)
	_ ports.BrandRepository   = (*BrandRepository)(nil)
)

func TestWriteErr_DuplicateKey(t *testing.T) {
	dup := mongo.WriteException{WriteErrors: []mongo.WriteError{{Code: 11000, Message: "E11000 duplicate key"}}}

	if err := writeErr(dup); !errors.Is(err, domain.ErrDuplicateKey) {
		t.Fatalf("expected ErrDuplicateKey, got %v", err)
	}
}

func TestWriteErr_PassesThroughOtherErrors(t *testing.T) {
	other := errors.New("connection reset")

	if err := writeErr(other); err != other {
		t.Fatalf("expected error to pass through, got %v", err)
	}
}
