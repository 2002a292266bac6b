package sanitize_test

import (
	"testing"

	"github.com/kalobtand/table-reservations/internal/domain"
	"github.com/kalobtand/table-reservations/internal/sanitize"
)

func TestPhone_StripsNonDigits(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"+62 812-3456-7890", "6281234567890"},
		{"(0812) 3456 7890", "081234567890"},
		{"6281234567890", "6281234567890"},
		{"", ""},
	}

	for _, tt := range tests {
		if got := sanitize.Phone(tt.in); got != tt.want {
			t.Fatalf("Phone(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestPhone_Idempotent(t *testing.T) {
	for _, in := range []string{"6281234567890", "+62 812-3456-7890", ""} {
		once := sanitize.Phone(in)
		twice := sanitize.Phone(once)
		if once != twice {
			t.Fatalf("Phone not idempotent for %q: %q != %q", in, once, twice)
		}
	}
}

func TestRequest_Canonicalizes(t *testing.T) {
	in := domain.BookingRequest{
		Name:   "  Jane Doe  ",
		Phone:  "+62 812-3456-7890",
		Date:   "2026-09-01",
		Time:   "18:00",
		Guests: 4,
		Notes:  "  window seat please\n",
	}

	out := sanitize.Request(in)

	if out.Name != "Jane Doe" {
		t.Fatalf("name not trimmed: %q", out.Name)
	}
	if out.Phone != "6281234567890" {
		t.Fatalf("phone not digits-only: %q", out.Phone)
	}
	if out.Notes != "window seat please" {
		t.Fatalf("notes not trimmed: %q", out.Notes)
	}
	if in.Name != "  Jane Doe  " {
		t.Fatal("input mutated")
	}
	if out.Date != in.Date || out.Time != in.Time || out.Guests != in.Guests {
		t.Fatal("untouched fields changed")
	}
}
