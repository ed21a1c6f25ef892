package transport

import (
	"net/http"

	"shopfront-be/internal/logger"
	"shopfront-be/internal/metrics"
	"shopfront-be/internal/middleware"

	"github.com/go-chi/chi/v5"
)

// NewRouter wires the REST API: public catalog and auth endpoints, and
// the authenticated checkout and order-history routes.
func NewRouter(authH *AuthHandler, productH *ProductHandler, orderH *OrderHandler) http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.CORS)
	r.Use(logger.RequestIDMiddleware)
	r.Use(logger.LoggingMiddleware)
	r.Use(metrics.Middleware)
	r.Use(middleware.AuthMiddleware)
	r.Use(middleware.RateLimitMiddleware)

	r.Get("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	})
	r.Method(http.MethodGet, "/metrics", metrics.Handler())

	r.Route("/api", func(api chi.Router) {
		api.Post("/register", authH.Register)
		api.Post("/login", authH.Login)
		api.Post("/logout", authH.Logout)

		api.Get("/products", productH.List)
		api.Get("/products/{id}", productH.Detail)

		api.Group(func(priv chi.Router) {
			priv.Use(middleware.RequireAuth)
			priv.Post("/checkout", orderH.Checkout)
			priv.Get("/orders", orderH.History)
		})
	})

	return r
}
