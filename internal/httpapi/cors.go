package httpapi

import (
	"net/http"

	"github.com/go-chi/cors"
)

// corsPolicy lets a storefront page on another origin drive the cart.
func corsPolicy(origins []string) func(http.Handler) http.Handler {
	return cors.New(cors.Options{
		AllowedOrigins: origins,
		AllowedMethods: []string{http.MethodGet, http.MethodPost, http.MethodDelete, http.MethodOptions},
		AllowedHeaders: []string{"Accept", "Content-Type", requestIDHeader, "X-Requested-With"},
		ExposedHeaders: []string{requestIDHeader},
		MaxAge:         300,
	}).Handler
}
