package httpapi

import (
	"bytes"
	"context"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/nikolayk812/storefront-cart/internal/domain"
	"github.com/nikolayk812/storefront-cart/internal/logger"
	"github.com/nikolayk812/storefront-cart/internal/presenter"
)

const (
	// maxFormBytes bounds the add-to-cart form.
	maxFormBytes = 64 << 10
	pingTimeout  = 2 * time.Second
)

// Pinger reports whether the storage backend is reachable.
type Pinger interface {
	Ping(ctx context.Context) error
}

func health(pinger Pinger, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if pinger != nil {
			ctx, cancel := context.WithTimeout(r.Context(), pingTimeout)
			defer cancel()

			if err := pinger.Ping(ctx); err != nil {
				logg.Warn(r.Context(), "storage ping failed", err)
				writeJSON(w, http.StatusServiceUnavailable, map[string]string{"status": "unavailable"})
				return
			}
		}
		writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	}
}

func openModal(p *presenter.Presenter, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		renderModal(w, r, p.OpenModal(), logg)
	}
}

func closeModal(p *presenter.Presenter) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		p.CloseModal()
		w.WriteHeader(http.StatusNoContent)
	}
}

func summary(p *presenter.Presenter) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, newSummaryResponse(p.Summary()))
	}
}

func toasts(board *presenter.ToastBoard) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, newToastResponses(board.Active()))
	}
}

// addItem reads the trigger attributes from the form. Missing or malformed
// values fall back to defaults, so the only failure is an unreadable body.
func addItem(c *presenter.Controller, p *presenter.Presenter, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		r.Body = http.MaxBytesReader(w, r.Body, maxFormBytes)
		if err := r.ParseForm(); err != nil {
			logg.Warn(r.Context(), "add item form unreadable", err)
			writeError(w, http.StatusBadRequest, codeValidation, "form body is not valid")
			return
		}

		attrs := domain.ProductAttributes{
			ProductID:       r.PostForm.Get("productId"),
			ProductName:     r.PostForm.Get("productName"),
			ProductPrice:    r.PostForm.Get("productPrice"),
			ProductImage:    r.PostForm.Get("productImage"),
			ProductCategory: r.PostForm.Get("productCategory"),
		}

		item := c.Add(r.Context(), attrs)
		logg.Debug(logg.WithItemID(r.Context(), item.ID), "item added")

		writeJSON(w, http.StatusCreated, newSummaryResponse(p.Summary()))
	}
}

func itemAction(c *presenter.Controller, p *presenter.Presenter, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		action, err := presenter.ParseAction(chi.URLParam(r, "action"))
		if err != nil {
			writeError(w, http.StatusBadRequest, codeValidation, err.Error())
			return
		}

		if err := c.Dispatch(r.Context(), action, chi.URLParam(r, "id")); err != nil {
			writeError(w, http.StatusBadRequest, codeValidation, err.Error())
			return
		}

		renderModal(w, r, p.OpenModal(), logg)
	}
}

func clearCart(c *presenter.Controller, p *presenter.Presenter, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		c.Clear(r.Context())
		renderModal(w, r, p.OpenModal(), logg)
	}
}

func renderModal(w http.ResponseWriter, r *http.Request, modal *presenter.Modal, logg *logger.Logger) {
	var buf bytes.Buffer
	if err := modal.Render(&buf); err != nil {
		logg.Error(r.Context(), "modal render failed", err)
		writeError(w, http.StatusInternalServerError, codeInternal, "unexpected error")
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	_, _ = buf.WriteTo(w)
}
