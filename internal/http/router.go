package http

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/jason-li-codes/capstone-api-starter/internal/identity"
)

type RouterDeps struct {
	Cart       *CartHandler
	Orders     *OrdersHandler
	Products   *ProductHandler
	Categories *CategoryHandler
	Profile    *ProfileHandler
	Verifier   TokenVerifier
	Resolver   identity.Resolver
	Timeout    time.Duration
}

func NewRouter(deps RouterDeps) *chi.Mux {
	r := chi.NewRouter()

	// Global middleware
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(middleware.RequestID)
	r.Use(RequestIDMiddleware)
	r.Use(middleware.Timeout(deps.Timeout))
	r.Use(middleware.Compress(5))

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})

	auth := AuthMiddleware(deps.Verifier, deps.Resolver)

	// Catalog browsing is public; catalog mutation is admin-only.
	r.Route("/products", func(r chi.Router) {
		r.Get("/", deps.Products.List)
		r.Get("/{productID}", deps.Products.Get)
		r.Group(func(r chi.Router) {
			r.Use(auth, RequireAdmin)
			r.Post("/", deps.Products.Create)
			r.Put("/{productID}", deps.Products.Update)
			r.Delete("/{productID}", deps.Products.Delete)
		})
	})

	r.Route("/categories", func(r chi.Router) {
		r.Get("/", deps.Categories.List)
		r.Get("/{categoryID}", deps.Categories.Get)
		r.Get("/{categoryID}/products", deps.Categories.ListProducts)
		r.Group(func(r chi.Router) {
			r.Use(auth, RequireAdmin)
			r.Post("/", deps.Categories.Create)
			r.Put("/{categoryID}", deps.Categories.Update)
			r.Delete("/{categoryID}", deps.Categories.Delete)
		})
	})

	r.Route("/cart", func(r chi.Router) {
		r.Use(auth)
		r.Get("/", deps.Cart.GetCart)
		r.Post("/products/{productID}", deps.Cart.AddItem)
		r.Put("/products/{productID}", deps.Cart.UpdateItem)
		r.Delete("/", deps.Cart.Clear)
	})

	r.Route("/orders", func(r chi.Router) {
		r.Use(auth)
		r.Get("/", deps.Orders.List)
		r.Post("/", deps.Orders.Checkout)
	})

	r.Route("/profile", func(r chi.Router) {
		r.Use(auth)
		r.Get("/", deps.Profile.Get)
		r.Put("/", deps.Profile.Update)
	})

	return r
}
