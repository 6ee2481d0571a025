package http

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/rogerio-castellano/greenmarket/internal/http/handlers"
)

// NewRouter assembles the public storefront API and the admin surface.
func NewRouter() http.Handler {
	r := chi.NewRouter()
	r.Use(RateLimitMiddleware)

	r.Get("/", handlers.HomeHandler)

	r.Route("/api", func(r chi.Router) {
		r.Get("/products", handlers.GetProductsHandler)
		r.Get("/products/{id}", handlers.GetProductByIDHandler)
		r.Get("/products/{id}/stock", handlers.CheckStockHandler)
		r.Post("/cart/verify", handlers.VerifyCartHandler)
		r.Post("/checkout", handlers.CheckoutHandler)
		r.Post("/auth/login", handlers.LoginHandler)

		// catalog management requires an admin token
		r.Group(func(r chi.Router) {
			r.Use(AuthMiddleware)
			r.Post("/products", handlers.CreateProductHandler)
			r.Put("/products/{id}/stock", handlers.AdjustStockHandler)
		})
	})

	return r
}
