package handlers

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/kalobtand/table-reservations/internal/domain"
	"github.com/kalobtand/table-reservations/internal/http/response"
)

// PublicHandler serves the unauthenticated marketing data endpoints.
type PublicHandler struct{}

func NewPublicHandler() *PublicHandler { return &PublicHandler{} }

func (h *PublicHandler) Menu(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(domain.Menu)
}

type slotsResponse struct {
	Date  string   `json:"date"`
	Slots []string `json:"slots"`
}

// Slots returns the published slot set for a date. This is a static
// publication of admissible times, not an availability computation.
func (h *PublicHandler) Slots(w http.ResponseWriter, r *http.Request) {
	date := r.URL.Query().Get("date")
	if date != "" {
		if _, err := time.Parse(domain.DateLayout, date); err != nil {
			response.BadRequest(w, "invalid date")
			return
		}
	}

	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(slotsResponse{Date: date, Slots: domain.Slots})
}
