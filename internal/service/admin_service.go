package service

import (
	"context"
	"fmt"
	"time"

	"github.com/kalobtand/table-reservations/internal/domain"
	"github.com/kalobtand/table-reservations/internal/mask"
	"github.com/kalobtand/table-reservations/internal/repo/postgres"
	"github.com/kalobtand/table-reservations/pkg/auth"
	"github.com/kalobtand/table-reservations/pkg/events"
	"github.com/kalobtand/table-reservations/pkg/logger"
)

type AdminService interface {
	ListBookings(ctx context.Context, claims *auth.Claims, path string, limit int, status *domain.BookingStatus) ([]domain.MaskedBooking, error)
	Stats(ctx context.Context, claims *auth.Claims, path string) (*domain.BookingStats, error)
	UpdateStatus(ctx context.Context, claims *auth.Claims, path string, id int64, status domain.BookingStatus) (*domain.MaskedBooking, error)
}

type adminService struct {
	repo      postgres.BookingRepo
	bus       events.Publisher
	loginPath string
	now       func() time.Time
}

func NewAdminService(repo postgres.BookingRepo, bus events.Publisher, loginPath string) AdminService {
	return &adminService{repo: repo, bus: bus, loginPath: loginPath, now: time.Now}
}

// ListBookings returns the most recent bookings, phones masked. The guard
// re-runs here even though the router middleware already checked it; the
// authorization decision is never cached across requests.
func (s *adminService) ListBookings(ctx context.Context, claims *auth.Claims, path string, limit int, status *domain.BookingStatus) ([]domain.MaskedBooking, error) {
	if rej := Authorize(claims, path, s.loginPath); rej != nil {
		return nil, rej
	}

	bookings, err := s.repo.List(ctx, limit, status)
	if err != nil {
		logger.ErrorContext(ctx, "Failed to list bookings", "error", err)
		return nil, &Rejection{Kind: RejectStorage}
	}

	out := make([]domain.MaskedBooking, 0, len(bookings))
	for _, b := range bookings {
		out = append(out, mask.Booking(b))
	}
	return out, nil
}

func (s *adminService) Stats(ctx context.Context, claims *auth.Claims, path string) (*domain.BookingStats, error) {
	if rej := Authorize(claims, path, s.loginPath); rej != nil {
		return nil, rej
	}

	today := s.now().Format(domain.DateLayout)
	stats, err := s.repo.Stats(ctx, today)
	if err != nil {
		logger.ErrorContext(ctx, "Failed to compute booking stats", "error", err)
		return nil, &Rejection{Kind: RejectStorage}
	}
	return stats, nil
}

func (s *adminService) UpdateStatus(ctx context.Context, claims *auth.Claims, path string, id int64, status domain.BookingStatus) (*domain.MaskedBooking, error) {
	if rej := Authorize(claims, path, s.loginPath); rej != nil {
		return nil, rej
	}

	existing, err := s.repo.GetByID(ctx, id)
	if err != nil {
		logger.ErrorContext(ctx, "Failed to get booking", "error", err, "booking_id", id)
		return nil, &Rejection{Kind: RejectStorage}
	}
	if existing == nil {
		return nil, ErrNotFound
	}

	if !canTransition(existing.Status, status) {
		return nil, fmt.Errorf("%w: %s -> %s", ErrInvalidTransition, existing.Status, status)
	}

	ok, err := s.repo.UpdateStatus(ctx, id, status)
	if err != nil {
		logger.ErrorContext(ctx, "Failed to update booking status", "error", err, "booking_id", id)
		return nil, &Rejection{Kind: RejectStorage}
	}
	if !ok {
		return nil, ErrNotFound
	}

	event := events.ReservationStatusChangedEvent{
		BookingID: id,
		OldStatus: string(existing.Status),
		NewStatus: string(status),
		ChangedAt: s.now(),
	}
	if err := s.bus.Publish(ctx, events.ReservationStatusChanged, event); err != nil {
		logger.ErrorContext(ctx, "Failed to publish status changed event", "error", err, "booking_id", id)
	}

	existing.Status = status
	view := mask.Booking(*existing)
	return &view, nil
}

func canTransition(from, to domain.BookingStatus) bool {
	switch from {
	case domain.BookingPending:
		return to == domain.BookingConfirmed || to == domain.BookingCancelled
	case domain.BookingConfirmed:
		return to == domain.BookingCancelled
	default:
		return false
	}
}
