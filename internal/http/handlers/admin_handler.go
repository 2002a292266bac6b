package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/kalobtand/table-reservations/internal/domain"
	mw "github.com/kalobtand/table-reservations/internal/http/middleware"
	"github.com/kalobtand/table-reservations/internal/http/response"
	"github.com/kalobtand/table-reservations/internal/service"
)

type AdminHandler struct {
	svc service.AdminService
}

func NewAdminHandler(svc service.AdminService) *AdminHandler {
	return &AdminHandler{svc: svc}
}

// List handles GET /admin/bookings. Phones arrive already masked from the
// service; the raw record never crosses this boundary.
func (h *AdminHandler) List(w http.ResponseWriter, r *http.Request) {
	limit := 20
	if v := r.URL.Query().Get("limit"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 && n <= 100 {
			limit = n
		}
	}

	var statusPtr *domain.BookingStatus
	if raw := r.URL.Query().Get("status"); raw != "" {
		st, ok := domain.ParseBookingStatus(raw)
		if !ok {
			response.BadRequest(w, "invalid status")
			return
		}
		statusPtr = &st
	}

	bookings, err := h.svc.ListBookings(r.Context(), mw.Claims(r), r.URL.Path, limit, statusPtr)
	if err != nil {
		writeRejection(w, err)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(bookings)
}

func (h *AdminHandler) Stats(w http.ResponseWriter, r *http.Request) {
	stats, err := h.svc.Stats(r.Context(), mw.Claims(r), r.URL.Path)
	if err != nil {
		writeRejection(w, err)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(stats)
}

type statusPatch struct {
	Status string `json:"status"`
}

func (h *AdminHandler) UpdateStatus(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		response.BadRequest(w, "bad id")
		return
	}

	var in statusPatch
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		response.BadRequest(w, "invalid json")
		return
	}

	status, ok := domain.ParseBookingStatus(in.Status)
	if !ok || status == domain.BookingPending {
		response.BadRequest(w, "status must be 'confirmed' or 'cancelled'")
		return
	}

	booking, err := h.svc.UpdateStatus(r.Context(), mw.Claims(r), r.URL.Path, id, status)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrNotFound):
			response.NotFound(w, "booking not found")
		case errors.Is(err, service.ErrInvalidTransition):
			response.Conflict(w, err.Error())
		default:
			writeRejection(w, err)
		}
		return
	}

	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(booking)
}
