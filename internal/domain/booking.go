package domain

import "time"

type BookingStatus string

const (
	BookingPending   BookingStatus = "pending"
	BookingConfirmed BookingStatus = "confirmed"
	BookingCancelled BookingStatus = "cancelled"
)

func ParseBookingStatus(s string) (BookingStatus, bool) {
	switch BookingStatus(s) {
	case BookingPending, BookingConfirmed, BookingCancelled:
		return BookingStatus(s), true
	default:
		return "", false
	}
}

// Business rules
const (
	MinGuests   = 1
	MaxGuests   = 20
	MaxNameLen  = 100
	MaxNotesLen = 500

	// Phone length bounds apply to the compact form, digits plus an
	// optional leading +, so separator characters never affect the limit.
	PhoneMinCompact = 11
	PhoneMaxCompact = 15
	PhoneMinDigits  = 10
	PhoneMaxDigits  = 15

	DateLayout = "2006-01-02"
	TimeLayout = "15:04"
)

// Slots is the published set of admissible booking times. A syntactically
// valid HH:MM outside this set is rejected on the booking path.
var Slots = []string{"08:00", "10:00", "12:00", "14:00", "16:00", "18:00", "20:00"}

func IsSlot(t string) bool {
	for _, s := range Slots {
		if s == t {
			return true
		}
	}
	return false
}

// Booking is the durable record. The admission pipeline only ever creates
// one; confirmation and cancellation are admin actions.
type Booking struct {
	ID        int64         `json:"id"`
	Status    BookingStatus `json:"status"`
	Name      string        `json:"name"`
	Phone     string        `json:"phone"`
	Date      string        `json:"date"`
	Time      string        `json:"time"`
	Guests    int           `json:"guests"`
	Notes     string        `json:"notes"`
	CreatedAt time.Time     `json:"created_at"`
}

// BookingRequest is the transient submission shape. Validation rule names
// map to custom validators registered in internal/validate.
type BookingRequest struct {
	Name   string `json:"name" validate:"notblank,max=100"`
	Phone  string `json:"phone" validate:"required,phone_input"`
	Date   string `json:"date" validate:"required,future_date"`
	Time   string `json:"time" validate:"required,time_slot"`
	Guests int    `json:"guests" validate:"min=1,max=20"`
	Notes  string `json:"notes" validate:"max=500"`
}

// MaskedBooking is the read-time projection with the phone partially
// redacted. It is built fresh on every read and never persisted.
type MaskedBooking struct {
	ID        int64         `json:"id"`
	Status    BookingStatus `json:"status"`
	Name      string        `json:"name"`
	Phone     string        `json:"phone"`
	Date      string        `json:"date"`
	Time      string        `json:"time"`
	Guests    int           `json:"guests"`
	Notes     string        `json:"notes"`
	CreatedAt time.Time     `json:"created_at"`
}

// BookingStats backs the admin dashboard cards.
type BookingStats struct {
	Total         int64 `json:"total"`
	Pending       int64 `json:"pending"`
	Confirmed     int64 `json:"confirmed"`
	Cancelled     int64 `json:"cancelled"`
	TodayBookings int64 `json:"today_bookings"`
	TodayGuests   int64 `json:"today_guests"`
}
