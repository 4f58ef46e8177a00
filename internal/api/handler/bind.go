package handler

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/zebrands/catalog-api/internal/core/domain"
)

// bindFields decodes a JSON body into dst. An empty body leaves dst at its
// zero value so validation can report every missing field. Decode failures
// are validation errors, keyed by field where the decoder names one.
func bindFields(c echo.Context, dst any) error {
	body := c.Request().Body
	if body == nil {
		return nil
	}
	err := json.NewDecoder(body).Decode(dst)
	if err == nil || errors.Is(err, io.EOF) {
		return nil
	}

	var typeErr *json.UnmarshalTypeError
	if errors.As(err, &typeErr) && typeErr.Field != "" {
		return domain.FieldError(typeErr.Field, fmt.Sprintf("Incorrect type. Expected %s.", typeErr.Type))
	}
	return domain.FieldError(domain.NonFieldErrors, "JSON parse error - "+err.Error())
}

// pathID parses the :id path parameter. Anything that is not a positive
// integer cannot name a row.
func pathID(c echo.Context) (int64, error) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		return 0, domain.ErrNotFound
	}
	return id, nil
}
