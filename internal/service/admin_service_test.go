package service_test

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/kalobtand/table-reservations/internal/domain"
	"github.com/kalobtand/table-reservations/internal/service"
	"github.com/kalobtand/table-reservations/pkg/auth"
)

func adminClaims() *auth.Claims {
	return &auth.Claims{Email: "admin@example.com", Role: auth.RoleAdmin, EmailVerified: true}
}

func setupAdmin() (*mockBookingRepo, *recordingBus, service.AdminService) {
	clock := &fakeClock{t: time.Date(2026, 8, 30, 12, 0, 0, 0, time.UTC)}
	repo := newMockBookingRepo(clock.now)
	bus := &recordingBus{}
	svc := service.NewAdminService(repo, bus, "/login")
	return repo, bus, svc
}

func seedBooking(repo *mockBookingRepo) *domain.Booking {
	b, _ := repo.Create(context.Background(), &domain.BookingRequest{
		Name:   "Jane Doe",
		Phone:  "6281234567890",
		Date:   "2026-09-01",
		Time:   "18:00",
		Guests: 4,
	})
	return b
}

func TestListBookings_MasksPhones(t *testing.T) {
	repo, _, svc := setupAdmin()
	seedBooking(repo)

	out, err := svc.ListBookings(context.Background(), adminClaims(), "/admin/bookings", 20, nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(out) != 1 {
		t.Fatalf("got %d bookings", len(out))
	}
	if out[0].Phone != "628****890" {
		t.Fatalf("phone not masked: %q", out[0].Phone)
	}
}

func TestListBookings_UnverifiedEmailDenied(t *testing.T) {
	repo, _, svc := setupAdmin()
	seedBooking(repo)

	claims := adminClaims()
	claims.EmailVerified = false

	_, err := svc.ListBookings(context.Background(), claims, "/admin/bookings", 20, nil)
	rej := service.AsRejection(err)
	if rej == nil || rej.Kind != service.RejectUnauthorized {
		t.Fatalf("expected Unauthorized, got %v", err)
	}
	if !strings.HasPrefix(rej.RedirectTo, "/login?redirect=") {
		t.Fatalf("redirect = %q", rej.RedirectTo)
	}
}

func TestListBookings_NonAdminRoleDenied(t *testing.T) {
	_, _, svc := setupAdmin()

	claims := adminClaims()
	claims.Role = "guest"

	_, err := svc.ListBookings(context.Background(), claims, "/admin/bookings", 20, nil)
	if rej := service.AsRejection(err); rej == nil || rej.Kind != service.RejectUnauthorized {
		t.Fatalf("expected Unauthorized, got %v", err)
	}
}

func TestListBookings_MissingSessionDenied(t *testing.T) {
	_, _, svc := setupAdmin()

	_, err := svc.ListBookings(context.Background(), nil, "/admin/bookings", 20, nil)
	if rej := service.AsRejection(err); rej == nil || rej.Kind != service.RejectUnauthorized {
		t.Fatalf("expected Unauthorized, got %v", err)
	}
}

func TestStats(t *testing.T) {
	repo, _, svc := setupAdmin()
	seedBooking(repo)
	seedBooking(repo)

	stats, err := svc.Stats(context.Background(), adminClaims(), "/admin/bookings/stats")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if stats.Total != 2 || stats.Pending != 2 {
		t.Fatalf("stats = %+v", stats)
	}
}

func TestUpdateStatus_ConfirmPending(t *testing.T) {
	repo, bus, svc := setupAdmin()
	b := seedBooking(repo)

	out, err := svc.UpdateStatus(context.Background(), adminClaims(), "/admin/bookings", b.ID, domain.BookingConfirmed)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if out.Status != domain.BookingConfirmed {
		t.Fatalf("status = %q", out.Status)
	}
	if len(bus.subjects) != 1 || bus.subjects[0] != "reservation.status_changed" {
		t.Fatalf("subjects = %v", bus.subjects)
	}
}

func TestUpdateStatus_CancelledIsTerminal(t *testing.T) {
	repo, _, svc := setupAdmin()
	b := seedBooking(repo)
	repo.bookings[b.ID].Status = domain.BookingCancelled

	_, err := svc.UpdateStatus(context.Background(), adminClaims(), "/admin/bookings", b.ID, domain.BookingConfirmed)
	if !errors.Is(err, service.ErrInvalidTransition) {
		t.Fatalf("expected ErrInvalidTransition, got %v", err)
	}
}

func TestUpdateStatus_NotFound(t *testing.T) {
	_, _, svc := setupAdmin()

	_, err := svc.UpdateStatus(context.Background(), adminClaims(), "/admin/bookings", 999, domain.BookingConfirmed)
	if !errors.Is(err, service.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}
