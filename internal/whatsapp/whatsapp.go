// Package whatsapp builds pre-filled wa.me deep links. Nothing is ever
// sent; opening the link is up to the customer.
package whatsapp

import (
	"fmt"

	"github.com/google/go-querystring/query"

	"github.com/kalobtand/table-reservations/internal/domain"
)

type LinkBuilder struct {
	number         string
	restaurantName string
}

func NewLinkBuilder(number, restaurantName string) *LinkBuilder {
	return &LinkBuilder{number: number, restaurantName: restaurantName}
}

type linkParams struct {
	Text string `url:"text"`
}

// ConfirmationLink returns a wa.me URL pre-filled with the booking summary.
func (b *LinkBuilder) ConfirmationLink(bk *domain.Booking) string {
	text := fmt.Sprintf(
		"Halo %s! Booking atas nama %s untuk %d orang pada %s pukul %s. Nomor booking: %d.",
		b.restaurantName, bk.Name, bk.Guests, bk.Date, bk.Time, bk.ID,
	)

	params, err := query.Values(linkParams{Text: text})
	if err != nil {
		return "https://wa.me/" + b.number
	}
	return "https://wa.me/" + b.number + "?" + params.Encode()
}
