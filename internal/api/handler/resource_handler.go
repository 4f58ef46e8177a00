package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/zebrands/catalog-api/internal/api/middleware"
	"github.com/zebrands/catalog-api/internal/core/domain"
	"github.com/zebrands/catalog-api/internal/core/resource"
)

// ResourceHandler serves the CRUD endpoints of one resource type. Errors are
// returned to the router's HTTPErrorHandler. Authorization is checked before
// the path or body is looked at.
type ResourceHandler[T, F any] struct {
	svc resource.Service[T, F]
}

func NewResourceHandler[T, F any](svc resource.Service[T, F]) *ResourceHandler[T, F] {
	return &ResourceHandler[T, F]{svc: svc}
}

func (h *ResourceHandler[T, F]) List(c echo.Context) error {
	rows, err := h.svc.List(c.Request().Context(), middleware.Caller(c))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, rows)
}

func (h *ResourceHandler[T, F]) Create(c echo.Context) error {
	caller := middleware.Caller(c)
	if err := h.svc.Authorize(resource.OpCreate, caller); err != nil {
		return err
	}
	var fields F
	if err := bindFields(c, &fields); err != nil {
		return err
	}
	row, err := h.svc.Create(c.Request().Context(), caller, fields)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, row)
}

func (h *ResourceHandler[T, F]) Get(c echo.Context) error {
	caller := middleware.Caller(c)
	id, err := h.target(resource.OpRead, caller, c)
	if err != nil {
		return err
	}
	row, err := h.svc.Get(c.Request().Context(), caller, id)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, row)
}

// Update serves both PUT (full replace) and PATCH (partial update).
func (h *ResourceHandler[T, F]) Update(c echo.Context) error {
	caller := middleware.Caller(c)
	id, err := h.target(resource.OpUpdate, caller, c)
	if err != nil {
		return err
	}
	mode := resource.FullReplace
	if c.Request().Method == http.MethodPatch {
		mode = resource.PartialUpdate
	}
	var fields F
	if err := bindFields(c, &fields); err != nil {
		return err
	}
	row, err := h.svc.Update(c.Request().Context(), caller, id, fields, mode)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, row)
}

// Delete answers 200 with an empty body.
func (h *ResourceHandler[T, F]) Delete(c echo.Context) error {
	caller := middleware.Caller(c)
	id, err := h.target(resource.OpDelete, caller, c)
	if err != nil {
		return err
	}
	if err := h.svc.Delete(c.Request().Context(), caller, id); err != nil {
		return err
	}
	return c.NoContent(http.StatusOK)
}

func (h *ResourceHandler[T, F]) target(op resource.Operation, caller domain.Caller, c echo.Context) (int64, error) {
	if err := h.svc.Authorize(op, caller); err != nil {
		return 0, err
	}
	return pathID(c)
}

// MethodNotAllowed is registered for the methods a private route does not
// serve: anonymous callers get 401, authenticated callers 405.
func MethodNotAllowed(c echo.Context) error {
	if !middleware.Caller(c).Authenticated() {
		return domain.ErrUnauthenticated
	}
	return echo.ErrMethodNotAllowed
}
