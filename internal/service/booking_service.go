package service

import (
	"context"

	"github.com/kalobtand/table-reservations/internal/captcha"
	"github.com/kalobtand/table-reservations/internal/domain"
	"github.com/kalobtand/table-reservations/internal/mask"
	"github.com/kalobtand/table-reservations/internal/repo/postgres"
	"github.com/kalobtand/table-reservations/internal/sanitize"
	"github.com/kalobtand/table-reservations/internal/throttle"
	"github.com/kalobtand/table-reservations/internal/validate"
	"github.com/kalobtand/table-reservations/pkg/events"
	"github.com/kalobtand/table-reservations/pkg/logger"
)

type SubmitInput struct {
	Request        domain.BookingRequest
	ClientKey      string
	CaptchaToken   string
	IdempotencyKey string // optional, replays return the original booking
}

type BookingService interface {
	Submit(ctx context.Context, in *SubmitInput) (*domain.Booking, error)
}

// IdempotencyStore is optional; a nil store disables replay detection.
type IdempotencyStore interface {
	Get(ctx context.Context, key string) (int64, bool, error)
	Set(ctx context.Context, key string, bookingID int64) error
}

type bookingService struct {
	repo        postgres.BookingRepo
	gate        captcha.Gate
	limiter     *throttle.Limiter
	validator   *validate.Validator
	idempotency IdempotencyStore
	bus         events.Publisher
}

func NewBookingService(
	repo postgres.BookingRepo,
	gate captcha.Gate,
	limiter *throttle.Limiter,
	validator *validate.Validator,
	idempotency IdempotencyStore,
	bus events.Publisher,
) BookingService {
	return &bookingService{
		repo:        repo,
		gate:        gate,
		limiter:     limiter,
		validator:   validator,
		idempotency: idempotency,
		bus:         bus,
	}
}

// Submit runs the admission pipeline: bot gate, throttle, validation,
// sanitization, persistence. It short-circuits on the first failure and
// guarantees no record is created on any rejection path. The throttle
// timestamp is consumed at check time, so a submission that later fails
// validation still uses up the cooldown window.
func (s *bookingService) Submit(ctx context.Context, in *SubmitInput) (*domain.Booking, error) {
	if err := s.gate.Admit(ctx, in.CaptchaToken); err != nil {
		return nil, &Rejection{Kind: RejectBotCheck}
	}

	if s.idempotency != nil && in.IdempotencyKey != "" {
		if id, found, err := s.idempotency.Get(ctx, in.IdempotencyKey); err != nil {
			logger.WarnContext(ctx, "Idempotency lookup failed", "error", err)
		} else if found {
			existing, err := s.repo.GetByID(ctx, id)
			if err == nil && existing != nil {
				logger.InfoContext(ctx, "Replayed submission, returning existing booking", "booking_id", id)
				return existing, nil
			}
		}
	}

	res, err := s.limiter.Check(ctx, in.ClientKey)
	if err != nil {
		logger.WarnContext(ctx, "Throttle check failed", "error", err)
	}
	if !res.Allowed {
		return nil, &Rejection{Kind: RejectRateLimited, RetryAfter: res.RetryAfter}
	}

	if fields := s.validator.Request(&in.Request); len(fields) > 0 {
		return nil, &Rejection{Kind: RejectInvalidFields, Fields: fields}
	}

	clean := sanitize.Request(in.Request)

	booking, err := s.repo.Create(ctx, &clean)
	if err != nil {
		logger.ErrorContext(ctx, "Failed to create booking", "error", err)
		return nil, &Rejection{Kind: RejectStorage}
	}

	if s.idempotency != nil && in.IdempotencyKey != "" {
		if err := s.idempotency.Set(ctx, in.IdempotencyKey, booking.ID); err != nil {
			logger.WarnContext(ctx, "Failed to store idempotency record", "error", err, "booking_id", booking.ID)
		}
	}

	event := events.ReservationCreatedEvent{
		BookingID:   booking.ID,
		Name:        booking.Name,
		MaskedPhone: mask.Phone(booking.Phone),
		Date:        booking.Date,
		Time:        booking.Time,
		Guests:      booking.Guests,
		CreatedAt:   booking.CreatedAt,
	}
	if err := s.bus.Publish(ctx, events.ReservationCreated, event); err != nil {
		logger.ErrorContext(ctx, "Failed to publish reservation created event", "error", err, "booking_id", booking.ID)
	}

	return booking, nil
}
