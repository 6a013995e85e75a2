package httpserver

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/secondchance/catalog-service/internal/adapter/httpserver/middleware"
	"github.com/secondchance/catalog-service/internal/platform/metrics"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
	"go.uber.org/zap"
)

// NewRouter wires the catalog and auth routes. Reads and search are public;
// mutating catalog routes require a bearer token.
func NewRouter(
	catalogHandler *CatalogHandler,
	authHandler *AuthHandler,
	m *metrics.Manager,
	log *zap.Logger,
	jwtSecret string,
) *chi.Mux {
	r := chi.NewRouter()

	r.Use(func(next http.Handler) http.Handler {
		return otelhttp.NewHandler(next, "catalog-service")
	})
	r.Use(middleware.Logger(log))
	if m != nil {
		r.Use(middleware.Metrics(m))
	}

	r.Get("/api/secondchance/search", catalogHandler.Search)
	r.Get("/api/secondchance/items", catalogHandler.List)
	r.Get("/api/secondchance/items/{id}", catalogHandler.GetByID)

	r.Group(func(r chi.Router) {
		r.Use(middleware.JWTAuth(jwtSecret))

		r.Post("/api/secondchance/items", catalogHandler.Create)
		r.Put("/api/secondchance/items/{id}", catalogHandler.Update)
		r.Delete("/api/secondchance/items/{id}", catalogHandler.Delete)
	})

	if authHandler != nil {
		r.Post("/api/auth/register", authHandler.Register)
		r.Post("/api/auth/login", authHandler.Login)
	}

	if m != nil {
		r.Method(http.MethodGet, "/metrics", m.Handler())
	}

	return r
}
