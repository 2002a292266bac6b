// Package sanitize canonicalizes a booking request after validation.
// Calling it on unvalidated input is a programming error.
package sanitize

import (
	"strings"
	"unicode"

	"github.com/kalobtand/table-reservations/internal/domain"
)

// Request returns a canonical copy: name and notes trimmed, phone reduced
// to digits only. Idempotent and side-effect-free.
func Request(in domain.BookingRequest) domain.BookingRequest {
	out := in
	out.Name = strings.TrimSpace(in.Name)
	out.Notes = strings.TrimSpace(in.Notes)
	out.Phone = Phone(in.Phone)
	return out
}

// Phone strips every non-digit character, including a leading +.
func Phone(phone string) string {
	var b strings.Builder
	for _, r := range phone {
		if unicode.IsDigit(r) {
			b.WriteRune(r)
		}
	}
	return b.String()
}
