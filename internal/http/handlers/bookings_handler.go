package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/kalobtand/table-reservations/internal/domain"
	"github.com/kalobtand/table-reservations/internal/http/response"
	"github.com/kalobtand/table-reservations/internal/service"
	"github.com/kalobtand/table-reservations/internal/whatsapp"
	"github.com/kalobtand/table-reservations/pkg/middleware"
)

type BookingsHandler struct {
	svc   service.BookingService
	links *whatsapp.LinkBuilder
}

func NewBookingsHandler(svc service.BookingService, links *whatsapp.LinkBuilder) *BookingsHandler {
	return &BookingsHandler{svc: svc, links: links}
}

type submitPayload struct {
	domain.BookingRequest
	CaptchaToken string `json:"captcha_token"`
	ClientKey    string `json:"client_key"`
}

type bookingCreatedResponse struct {
	Booking     *domain.Booking `json:"booking"`
	WhatsAppURL string          `json:"whatsapp_url"`
}

// Create handles POST /bookings. The client key comes from the body, the
// X-Client-Key header, or falls back to the caller's IP.
func (h *BookingsHandler) Create(w http.ResponseWriter, r *http.Request) {
	var in submitPayload
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		response.BadRequest(w, "invalid json")
		return
	}

	clientKey := in.ClientKey
	if clientKey == "" {
		clientKey = r.Header.Get("X-Client-Key")
	}
	if clientKey == "" {
		clientKey = middleware.ClientIP(r)
	}

	booking, err := h.svc.Submit(r.Context(), &service.SubmitInput{
		Request:        in.BookingRequest,
		ClientKey:      clientKey,
		CaptchaToken:   in.CaptchaToken,
		IdempotencyKey: r.Header.Get("Idempotency-Key"),
	})
	if err != nil {
		writeRejection(w, err)
		return
	}

	out := bookingCreatedResponse{
		Booking:     booking,
		WhatsAppURL: h.links.ConfirmationLink(booking),
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)
	_ = json.NewEncoder(w).Encode(out)
}

// writeRejection maps a pipeline rejection onto the wire format.
func writeRejection(w http.ResponseWriter, err error) {
	rej := service.AsRejection(err)
	if rej == nil {
		response.InternalError(w)
		return
	}

	switch rej.Kind {
	case service.RejectBotCheck:
		response.BotCheckFailed(w)
	case service.RejectRateLimited:
		response.RateLimited(w, rej.RetryAfter)
	case service.RejectInvalidFields:
		response.InvalidFields(w, rej.Fields)
	case service.RejectUnauthorized:
		response.UnauthorizedRedirect(w, rej.RedirectTo)
	default:
		response.InternalError(w)
	}
}
