// Package resource implements the controller shared by every resource type:
// authorize, validate, persist, then run the type's side-effect hooks.
package resource

import (
	"context"
	"errors"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/zebrands/catalog-api/internal/core/domain"
	"github.com/zebrands/catalog-api/internal/core/ports"
	"github.com/zebrands/catalog-api/internal/pkg/metrics"
)

// Validator turns a candidate field set into the row to persist. current is
// nil on create. Expected domain violations are returned as
// *domain.ValidationError.
type Validator[T, F any] interface {
	Validate(ctx context.Context, fields F, current *T, mode Mode) (*T, error)
}

// ValidateFunc adapts a function to the Validator interface.
type ValidateFunc[T, F any] func(ctx context.Context, fields F, current *T, mode Mode) (*T, error)

func (f ValidateFunc[T, F]) Validate(ctx context.Context, fields F, current *T, mode Mode) (*T, error) {
	return f(ctx, fields, current, mode)
}

// Hooks are optional side effects attached to a resource type.
type Hooks[T any] struct {
	// AfterAnonymousRead runs when an unauthenticated caller reads a single
	// row, before the response is built. The returned row is what the caller
	// sees.
	AfterAnonymousRead func(ctx context.Context, v *T) (*T, error)
	// AfterUpdate runs after an update has been persisted. It has no way to
	// fail the request: the mutation is already committed.
	AfterUpdate func(ctx context.Context, v *T)
	// AfterDelete runs after a row has been removed.
	AfterDelete func(ctx context.Context, id int64)
}

// Config parameterizes a Controller.
type Config[T, F any] struct {
	// Resource is the singular resource name used in logs, metrics and
	// conflict messages, e.g. "product".
	Resource  string
	Store     ports.Store[T]
	Validator Validator[T, F]
	Policy    Policy
	Hooks     Hooks[T]
	// UniqueField is the field reported when the store rejects a write with
	// domain.ErrDuplicateKey.
	UniqueField string
	Logger      zerolog.Logger
}

// Service is the operation set exposed by a Controller.
type Service[T, F any] interface {
	Authorize(op Operation, caller domain.Caller) error
	List(ctx context.Context, caller domain.Caller) ([]*T, error)
	Create(ctx context.Context, caller domain.Caller, fields F) (*T, error)
	Get(ctx context.Context, caller domain.Caller, id int64) (*T, error)
	Update(ctx context.Context, caller domain.Caller, id int64, fields F, mode Mode) (*T, error)
	Delete(ctx context.Context, caller domain.Caller, id int64) error
}

// Controller orchestrates one resource type. It holds no per-request state.
type Controller[T, F any] struct {
	resource    string
	store       ports.Store[T]
	validator   Validator[T, F]
	policy      Policy
	hooks       Hooks[T]
	uniqueField string
	log         zerolog.Logger
}

func New[T, F any](cfg Config[T, F]) *Controller[T, F] {
	policy := cfg.Policy
	if policy == nil {
		policy = Private()
	}
	return &Controller[T, F]{
		resource:    cfg.Resource,
		store:       cfg.Store,
		validator:   cfg.Validator,
		policy:      policy,
		hooks:       cfg.Hooks,
		uniqueField: cfg.UniqueField,
		log:         cfg.Logger.With().Str("resource", cfg.Resource).Logger(),
	}
}

// List returns every row in store order.
func (c *Controller[T, F]) List(ctx context.Context, caller domain.Caller) (out []*T, err error) {
	defer func() { c.observe(OpList, err) }()

	if err = c.Authorize(OpList, caller); err != nil {
		return nil, err
	}
	out, err = c.store.FindAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("list %s: %w", c.resource, err)
	}
	return out, nil
}

// Create validates fields in full-replace mode and inserts a new row.
func (c *Controller[T, F]) Create(ctx context.Context, caller domain.Caller, fields F) (out *T, err error) {
	defer func() { c.observe(OpCreate, err) }()

	if err = c.Authorize(OpCreate, caller); err != nil {
		return nil, err
	}
	candidate, err := c.validator.Validate(ctx, fields, nil, FullReplace)
	if err != nil {
		return nil, err
	}
	out, err = c.store.Insert(ctx, candidate)
	if err != nil {
		err = c.writeError("create", err)
		return nil, err
	}
	return out, nil
}

// Get resolves a single row. Anonymous reads run the AfterAnonymousRead hook
// and return its result.
func (c *Controller[T, F]) Get(ctx context.Context, caller domain.Caller, id int64) (out *T, err error) {
	defer func() { c.observe(OpRead, err) }()

	if err = c.Authorize(OpRead, caller); err != nil {
		return nil, err
	}
	out, err = c.store.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if !caller.Authenticated() && c.hooks.AfterAnonymousRead != nil {
		out, err = c.hooks.AfterAnonymousRead(ctx, out)
		if err != nil {
			err = fmt.Errorf("read %s %d: %w", c.resource, id, err)
			return nil, err
		}
	}
	return out, nil
}

// Update validates fields against the current row in the given mode and
// persists the merged result. Nothing is written when validation fails.
func (c *Controller[T, F]) Update(ctx context.Context, caller domain.Caller, id int64, fields F, mode Mode) (out *T, err error) {
	defer func() { c.observe(OpUpdate, err) }()

	if err = c.Authorize(OpUpdate, caller); err != nil {
		return nil, err
	}
	current, err := c.store.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	next, err := c.validator.Validate(ctx, fields, current, mode)
	if err != nil {
		return nil, err
	}
	out, err = c.store.Replace(ctx, id, next)
	if err != nil {
		err = c.writeError("update", err)
		return nil, err
	}

	c.log.Debug().Int64("id", id).Stringer("mode", mode).Msg("resource updated")

	// Fire-and-forget: the hook sees the committed row and its outcome never
	// reaches the caller.
	if c.hooks.AfterUpdate != nil {
		c.hooks.AfterUpdate(ctx, out)
	}
	return out, nil
}

// Delete removes a row. The operation is terminal; there is no undelete.
func (c *Controller[T, F]) Delete(ctx context.Context, caller domain.Caller, id int64) (err error) {
	defer func() { c.observe(OpDelete, err) }()

	if err = c.Authorize(OpDelete, caller); err != nil {
		return err
	}
	if err = c.store.Delete(ctx, id); err != nil {
		return err
	}
	if c.hooks.AfterDelete != nil {
		c.hooks.AfterDelete(ctx, id)
	}
	return nil
}

// Authorize reports domain.ErrUnauthenticated when the policy does not let
// caller perform op. Every operation checks it before touching the store.
func (c *Controller[T, F]) Authorize(op Operation, caller domain.Caller) error {
	if !c.policy.Permits(op, caller) {
		return domain.ErrUnauthenticated
	}
	return nil
}

// writeError reports a unique index violation as a validation failure on the
// resource's unique field. Any other store failure is wrapped and surfaces as
// a server error.
func (c *Controller[T, F]) writeError(op string, err error) error {
	if errors.Is(err, domain.ErrNotFound) {
		return err
	}
	if errors.Is(err, domain.ErrDuplicateKey) && c.uniqueField != "" {
		return domain.FieldError(c.uniqueField,
			fmt.Sprintf("%s with this %s already exists.", c.resource, c.uniqueField))
	}
	return fmt.Errorf("%s %s: %w", op, c.resource, err)
}

func (c *Controller[T, F]) observe(op Operation, err error) {
	result := outcome(err)
	metrics.ResourceOperationsTotal.WithLabelValues(c.resource, string(op), result).Inc()
	if result == "error" {
		c.log.Error().Err(err).Str("operation", string(op)).Msg("resource operation failed")
	}
}

func outcome(err error) string {
	switch {
	case err == nil:
		return "ok"
	case errors.Is(err, domain.ErrValidation):
		return "invalid"
	case errors.Is(err, domain.ErrNotFound):
		return "not_found"
	case errors.Is(err, domain.ErrUnauthenticated):
		return "unauthenticated"
	default:
		return "error"
	}
}
