package api

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"go.uber.org/zap"

	"icecream-service/internal/api/handlers"
)

// NewRouter wires the full HTTP surface. Static segments (cheapest, priciest,
// stats, type, price) are registered alongside the {id} routes; chi resolves
// static paths before the wildcard.
func NewRouter(
	logger *zap.Logger,
	flavourH *handlers.FlavourHandler,
	customerH *handlers.CustomerHandler,
	orderH *handlers.OrderHandler,
	healthH *handlers.HealthHandler,
) http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(requestLogger(logger))
	r.Use(middleware.Recoverer)

	r.Get("/", func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "text/plain; charset=utf-8")
		_, _ = w.Write([]byte("Willkommen auf der Homepage unserer Eisdiele"))
	})
	r.Get("/health", healthH.Check)

	r.Route("/api", func(r chi.Router) {
		r.Route("/flavours", func(r chi.Router) {
			r.Get("/", flavourH.GetAll)
			r.Post("/", flavourH.Create)
			r.Get("/cheapest", flavourH.GetCheapest)
			r.Get("/priciest", flavourH.GetPriciest)
			r.Get("/stats", flavourH.GetStats)
			r.Get("/type/{type}", flavourH.GetByType)
			r.Get("/price/{min}/{max}", flavourH.GetByPriceRange)
			r.Get("/{id}", flavourH.GetByID)
			r.Put("/{id}", flavourH.Replace)
			r.Patch("/{id}", flavourH.Patch)
			r.Delete("/{id}", flavourH.Delete)
		})

		r.Route("/customers", func(r chi.Router) {
			r.Get("/", customerH.GetAll)
			r.Post("/", customerH.Create)
			r.Get("/{id}", customerH.GetByID)
			r.Put("/{id}", customerH.Replace)
			r.Patch("/{id}", customerH.Patch)
			r.Delete("/{id}", customerH.Delete)
			r.Get("/{id}/orders", orderH.GetByCustomer)
		})

		r.Route("/orders", func(r chi.Router) {
			r.Get("/", orderH.GetAll)
			r.Post("/", orderH.Create)
			r.Get("/{id}", orderH.GetByID)
		})
	})

	return r
}

func requestLogger(logger *zap.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)

			next.ServeHTTP(ww, r)

			logger.Info("http request",
				zap.String("method", r.Method),
				zap.String("path", r.URL.Path),
				zap.Int("status", ww.Status()),
				zap.Duration("duration", time.Since(start)),
				zap.String("request_id", middleware.GetReqID(r.Context())),
			)
		})
	}
}
