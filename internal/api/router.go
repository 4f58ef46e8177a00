package api

import (
	"net/http"
	"strings"

	"github.com/labstack/echo-contrib/echoprometheus"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/rs/zerolog"

	"github.com/zebrands/catalog-api/internal/api/handler"
	"github.com/zebrands/catalog-api/internal/api/middleware"
	"github.com/zebrands/catalog-api/internal/core/domain"
	"github.com/zebrands/catalog-api/internal/core/service"
)

// Deps are the services the router exposes.
type Deps struct {
	Products *service.ProductService
	Brands   *service.BrandController
	Users    *service.UserService
	Auth     *service.AuthService
	Checkers []handler.Checker
	Logger   zerolog.Logger
	// Registry receives the HTTP metrics and is served on /metrics. Nil
	// means the default Prometheus registry.
	Registry Registry
}

// Registry is a Prometheus registry that can also be gathered.
type Registry interface {
	prometheus.Registerer
	prometheus.Gatherer
}

type defaultRegistry struct {
	prometheus.Registerer
	prometheus.Gatherer
}

var allMethods = []string{
	http.MethodGet, http.MethodPost, http.MethodPut, http.MethodPatch, http.MethodDelete,
}

// NewRouter builds and returns the Echo instance with all routes registered.
func NewRouter(d Deps) *echo.Echo {
	reg := d.Registry
	if reg == nil {
		reg = defaultRegistry{prometheus.DefaultRegisterer, prometheus.DefaultGatherer}
	}

	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.HTTPErrorHandler = NewHTTPErrorHandler(d.Logger)

	// --- Global middleware ---
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.RequestID())
	e.Use(echoprometheus.NewMiddlewareWithConfig(echoprometheus.MiddlewareConfig{
		Subsystem:  "catalog",
		Registerer: reg,
		Skipper:    isProbe,
	}))
	e.Use(requestLogger(d.Logger))
	e.Use(middleware.Auth(d.Auth, isProbe))

	// --- Probes (no auth) ---
	health := handler.NewHealthHandler(d.Checkers...)
	e.GET("/health", health.Liveness)
	e.GET("/health/ready", health.Readiness)
	e.GET("/metrics", echoprometheus.NewHandlerWithConfig(echoprometheus.HandlerConfig{Gatherer: reg}))

	// --- Brands ---
	brands := handler.NewResourceHandler[domain.Brand, domain.BrandFields](d.Brands)
	route(e, "/brands", map[string]echo.HandlerFunc{http.MethodGet: brands.List})
	route(e, "/brands/create", map[string]echo.HandlerFunc{http.MethodPost: brands.Create})
	route(e, "/brands/manage/:id", manage(brands))

	// --- Products ---
	catalog := handler.NewResourceHandler[domain.Product, domain.ProductFields](d.Products.Catalog)
	products := handler.NewResourceHandler[domain.Product, domain.ProductFields](d.Products.Manage)
	e.GET("/products", catalog.List)
	e.GET("/products/:id", catalog.Get)
	route(e, "/products/create", map[string]echo.HandlerFunc{http.MethodPost: products.Create})
	route(e, "/products/manage/:id", manage(products))

	// --- Users ---
	users := handler.NewResourceHandler[domain.User, domain.UserFields](d.Users)
	auth := handler.NewAuthHandler(d.Auth)
	route(e, "/users", map[string]echo.HandlerFunc{http.MethodGet: users.List})
	route(e, "/users/manage/create", map[string]echo.HandlerFunc{http.MethodPost: users.Create})
	route(e, "/users/manage/:id", manage(users))
	e.POST("/users/token", auth.Token)

	return e
}

// route registers the given handlers on an authenticated path and answers
// every other method with handler.MethodNotAllowed.
func route(e *echo.Echo, path string, handlers map[string]echo.HandlerFunc) {
	for _, m := range allMethods {
		h, ok := handlers[m]
		if !ok {
			h = handler.MethodNotAllowed
		}
		e.Add(m, path, h)
	}
}

type crud interface {
	Get(echo.Context) error
	Update(echo.Context) error
	Delete(echo.Context) error
}

func manage(h crud) map[string]echo.HandlerFunc {
	return map[string]echo.HandlerFunc{
		http.MethodGet:    h.Get,
		http.MethodPut:    h.Update,
		http.MethodPatch:  h.Update,
		http.MethodDelete: h.Delete,
	}
}

func isProbe(c echo.Context) bool {
	p := c.Request().URL.Path
	return p == "/metrics" || strings.HasPrefix(p, "/health")
}

func requestLogger(log zerolog.Logger) echo.MiddlewareFunc {
	return echomiddleware.RequestLoggerWithConfig(echomiddleware.RequestLoggerConfig{
		LogMethod:    true,
		LogURI:       true,
		LogStatus:    true,
		LogLatency:   true,
		LogRequestID: true,
		LogError:     true,
		HandleError:  true,
		LogValuesFunc: func(c echo.Context, v echomiddleware.RequestLoggerValues) error {
			ev := log.Info()
			if v.Status >= http.StatusInternalServerError {
				ev = log.Error().Err(v.Error)
			}
			ev.Str("method", v.Method).
				Str("uri", v.URI).
				Int("status", v.Status).
				Dur("latency", v.Latency).
				Str("request_id", v.RequestID).
				Msg("request")
			return nil
		},
	})
}
