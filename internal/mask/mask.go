// Package mask partially redacts contact fields for low-trust readers.
package mask

import "github.com/kalobtand/table-reservations/internal/domain"

const (
	keepLead  = 3
	keepTrail = 3
	interior  = "****"
)

// Phone keeps the first three and last three digits and replaces the
// interior with a fixed-width mask. Inputs too short to keep both ends are
// masked entirely. Deterministic and total; never mutates stored records.
func Phone(phone string) string {
	if len(phone) < keepLead+keepTrail+1 {
		return interior
	}
	return phone[:keepLead] + interior + phone[len(phone)-keepTrail:]
}

// Booking projects a stored record into its display form. Always returns a
// new view; `status`, `guests` and `created_at` stay unmasked.
func Booking(b domain.Booking) domain.MaskedBooking {
	return domain.MaskedBooking{
		ID:        b.ID,
		Status:    b.Status,
		Name:      b.Name,
		Phone:     Phone(b.Phone),
		Date:      b.Date,
		Time:      b.Time,
		Guests:    b.Guests,
		Notes:     b.Notes,
		CreatedAt: b.CreatedAt,
	}
}
