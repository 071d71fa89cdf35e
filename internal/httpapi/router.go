// Package httpapi serves the cart page surface: the modal fragment, the
// summary used for the badge, active toasts and the cart commands.
package httpapi

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/nikolayk812/storefront-cart/internal/logger"
	"github.com/nikolayk812/storefront-cart/internal/presenter"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

type Deps struct {
	Controller *presenter.Controller
	Presenter  *presenter.Presenter
	Toasts     *presenter.ToastBoard
	Gatherer   prometheus.Gatherer
	Pinger     Pinger
	Logger     *logger.Logger

	// AllowedOrigins enables CORS for these origins when non-empty.
	AllowedOrigins []string
}

func NewRouter(deps Deps) http.Handler {
	logg := deps.Logger
	if logg == nil {
		logg = logger.Nop()
	}

	r := chi.NewRouter()
	r.Use(
		recoverer(logg),
		requestID(logg),
		logging(logg),
	)
	if len(deps.AllowedOrigins) > 0 {
		r.Use(corsPolicy(deps.AllowedOrigins))
	}

	r.Get("/healthz", health(deps.Pinger, logg))
	if deps.Gatherer != nil {
		r.Method(http.MethodGet, "/metrics", promhttp.HandlerFor(deps.Gatherer, promhttp.HandlerOpts{}))
	}

	r.Route("/cart", func(r chi.Router) {
		r.Get("/", openModal(deps.Presenter, logg))
		r.Get("/summary", summary(deps.Presenter))
		r.Get("/toasts", toasts(deps.Toasts))
		r.Post("/items", addItem(deps.Controller, deps.Presenter, logg))
		r.Post("/items/{id}/{action}", itemAction(deps.Controller, deps.Presenter, logg))
		r.Post("/clear", clearCart(deps.Controller, deps.Presenter, logg))
		r.Delete("/modal", closeModal(deps.Presenter))
	})

	return r
}
