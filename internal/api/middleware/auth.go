package middleware

import (
	"context"
	"strings"

	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"

	"github.com/zebrands/catalog-api/internal/core/domain"
)

// CallerKey is the echo.Context key holding the resolved domain.Caller.
const CallerKey = "caller"

// Authenticator resolves a presented token to its caller.
type Authenticator interface {
	Authenticate(ctx context.Context, token string) (domain.Caller, error)
}

// Auth resolves the Authorization header, if any, and stores the caller in
// the context. A request without the header continues as anonymous; whether
// that is acceptable is decided per operation further down. A malformed
// header or an unknown token fails the request.
//
// Accepted schemes: "Token <key>" and "Bearer <key>".
func Auth(a Authenticator, skipper echomiddleware.Skipper) echo.MiddlewareFunc {
	if skipper == nil {
		skipper = echomiddleware.DefaultSkipper
	}
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			c.Set(CallerKey, domain.Anonymous)
			if skipper(c) {
				return next(c)
			}

			header := c.Request().Header.Get(echo.HeaderAuthorization)
			if header == "" {
				return next(c)
			}

			token, ok := parseHeader(header)
			if !ok {
				return domain.ErrInvalidToken
			}

			caller, err := a.Authenticate(c.Request().Context(), token)
			if err != nil {
				return err
			}
			c.Set(CallerKey, caller)
			return next(c)
		}
	}
}

// Caller returns the caller stored by Auth, or domain.Anonymous.
func Caller(c echo.Context) domain.Caller {
	caller, ok := c.Get(CallerKey).(domain.Caller)
	if !ok {
		return domain.Anonymous
	}
	return caller
}

func parseHeader(header string) (string, bool) {
	parts := strings.Fields(header)
	if len(parts) != 2 {
		return "", false
	}
	if !strings.EqualFold(parts[0], "token") && !strings.EqualFold(parts[0], "bearer") {
		return "", false
	}
	return parts[1], true
}
