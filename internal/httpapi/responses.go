package httpapi

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/nikolayk812/storefront-cart/internal/presenter"
)

const (
	codeValidation = "VALIDATION"
	codeInternal   = "INTERNAL"
)

type apiError struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

type errorEnvelope struct {
	Error apiError `json:"error"`
}

type itemResponse struct {
	ID        string `json:"id"`
	Name      string `json:"name"`
	Category  string `json:"category"`
	Image     string `json:"image"`
	UnitPrice string `json:"unitPrice"`
	Quantity  int    `json:"quantity"`
	LineTotal string `json:"lineTotal"`
}

type summaryResponse struct {
	Count        int            `json:"count"`
	Badge        string         `json:"badge"`
	BadgeVisible bool           `json:"badgeVisible"`
	Total        string         `json:"total"`
	Items        []itemResponse `json:"items"`
}

type toastResponse struct {
	ID      string    `json:"id"`
	Message string    `json:"message"`
	ShownAt time.Time `json:"shownAt"`
}

func newSummaryResponse(s presenter.Summary) summaryResponse {
	items := make([]itemResponse, 0, len(s.Items))
	for _, row := range s.Items {
		items = append(items, itemResponse{
			ID:        row.ID,
			Name:      row.Name,
			Category:  row.Category,
			Image:     row.ImageRef,
			UnitPrice: row.UnitPrice,
			Quantity:  row.Quantity,
			LineTotal: row.LineTotal,
		})
	}

	return summaryResponse{
		Count:        s.Count,
		Badge:        s.Badge,
		BadgeVisible: s.BadgeVisible,
		Total:        s.Total,
		Items:        items,
	}
}

func newToastResponses(toasts []presenter.Toast) []toastResponse {
	out := make([]toastResponse, 0, len(toasts))
	for _, t := range toasts {
		out = append(out, toastResponse{ID: t.ID, Message: t.Message, ShownAt: t.ShownAt})
	}
	return out
}

func writeError(w http.ResponseWriter, status int, code, message string) {
	writeJSON(w, status, errorEnvelope{Error: apiError{Code: code, Message: message}})
}

func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	// the status is already sent, an encode failure can only be dropped
	_ = json.NewEncoder(w).Encode(payload)
}
