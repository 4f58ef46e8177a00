package service

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/zebrands/catalog-api/internal/core/domain"
	"github.com/zebrands/catalog-api/internal/core/ports"
	"github.com/zebrands/catalog-api/internal/core/resource"
	"github.com/zebrands/catalog-api/internal/pkg/metrics"
)

// ProductController is the resource controller for products.
type ProductController = resource.Controller[domain.Product, domain.ProductFields]

// ProductService exposes products through two controllers over the same
// repository: Catalog is the public view (list and read-one, anonymous reads
// count a visit), Manage is the authenticated view used for every mutation.
type ProductService struct {
	Catalog *ProductController
	Manage  *ProductController

	repo     ports.ProductRepository
	notifier ports.Notifier
	log      zerolog.Logger
}

func NewProductService(
	repo ports.ProductRepository,
	validator resource.Validator[domain.Product, domain.ProductFields],
	notifier ports.Notifier,
	log zerolog.Logger,
) *ProductService {
	s := &ProductService{repo: repo, notifier: notifier, log: log}

	s.Catalog = resource.New(resource.Config[domain.Product, domain.ProductFields]{
		Resource:    "product",
		Store:       repo,
		Validator:   validator,
		Policy:      resource.Policy{resource.OpList: resource.Public, resource.OpRead: resource.Public},
		Hooks:       resource.Hooks[domain.Product]{AfterAnonymousRead: s.recordVisit},
		UniqueField: "sku",
		Logger:      log,
	})
	s.Manage = resource.New(resource.Config[domain.Product, domain.ProductFields]{
		Resource:    "product",
		Store:       repo,
		Validator:   validator,
		Policy:      resource.Private(),
		Hooks:       resource.Hooks[domain.Product]{AfterUpdate: s.notifyUpdated},
		UniqueField: "sku",
		Logger:      log,
	})
	return s
}

// recordVisit increments the visit counter. The returned row carries the
// post-increment value.
func (s *ProductService) recordVisit(ctx context.Context, p *domain.Product) (*domain.Product, error) {
	updated, err := s.repo.IncrementVisits(ctx, p.ID)
	if err != nil {
		return nil, fmt.Errorf("increment visits: %w", err)
	}
	metrics.ProductVisitsTotal.Inc()
	return updated, nil
}

// notifyUpdated hands a summary of the updated product to the notifier. The
// delivery result is logged and otherwise ignored: no retry, no queue. The
// update is already committed, so delivery is detached from the request's
// cancellation.
func (s *ProductService) notifyUpdated(ctx context.Context, p *domain.Product) {
	res := s.notifier.Notify(context.WithoutCancel(ctx), ProductUpdatedNotification(p))
	if !res.Delivered {
		s.log.Warn().
			Int64("product_id", p.ID).
			Str("sku", p.SKU).
			Str("detail", res.Detail).
			Msg("product update notification not delivered")
		return
	}
	s.log.Debug().Int64("product_id", p.ID).Str("detail", res.Detail).Msg("product update notification sent")
}

// ProductUpdatedNotification formats the message sent after a product update.
func ProductUpdatedNotification(p *domain.Product) ports.Notification {
	return ports.Notification{
		Key:   "product.updated",
		Title: fmt.Sprintf("Product %s updated", p.SKU),
		Text: fmt.Sprintf("New product information:\n- *Name:* %s\n- *Price:* %.2f\n- *Brand:* %s\n",
			p.Name, p.Price, p.Brand),
		Color: "good",
	}
}
