// Package booking builds the outbound deep links used for reservations and
// orders: a WhatsApp chat with a prefilled message and a telephone dialer.
package booking

import (
	"fmt"
	"net/url"
	"strings"
)

// Digits strips everything but 0-9 from a phone number.
func Digits(phone string) string {
	var b strings.Builder
	for _, r := range phone {
		if r >= '0' && r <= '9' {
			b.WriteRune(r)
		}
	}
	return b.String()
}

// WhatsApp returns a wa.me link opening a chat with phone prefilled with
// message. It returns "" when phone has no digits.
func WhatsApp(phone, message string) string {
	d := Digits(phone)
	if d == "" {
		return ""
	}
	link := "https://wa.me/" + d
	if message = strings.TrimSpace(message); message != "" {
		link += "?text=" + url.QueryEscape(message)
	}
	return link
}

// Tel returns a tel: link in international form, or "" without digits.
func Tel(phone string) string {
	d := Digits(phone)
	if d == "" {
		return ""
	}
	return "tel:+" + d
}

// Default message formats, keyed like Messages.Formats.
var defaultFormats = map[string]string{
	"room":      "Hello %[1]s, I would like to check availability for the %[2]s (%[3]s per night).",
	"order":     "Hello %[1]s, I would like to order %[2]s (%[3]s).",
	"treatment": "Hello %[1]s, I would like to book the %[2]s (%[3]d min).",
	"service":   "Hello %[1]s, I have a question about %[2]s.",
	"general":   "Hello %[1]s, I would like to make a reservation.",
}

// Messages formats the prefilled texts. Formats overrides the English
// defaults per key (room, order, treatment, service, general); the hotel name
// is always argument 1. Price strings are already localized.
type Messages struct {
	Hotel   string
	Formats map[string]string
}

func (m Messages) format(key string, args ...any) string {
	f, ok := m.Formats[key]
	if !ok || strings.TrimSpace(f) == "" {
		f = defaultFormats[key]
	}
	return fmt.Sprintf(f, append([]any{m.Hotel}, args...)...)
}

// Room asks about availability for a room type.
func (m Messages) Room(name, price string) string { return m.format("room", name, price) }

// Order places a restaurant order.
func (m Messages) Order(item, price string) string { return m.format("order", item, price) }

// Treatment books a spa treatment.
func (m Messages) Treatment(name string, minutes int) string {
	return m.format("treatment", name, minutes)
}

// Service asks about a hotel service.
func (m Messages) Service(name string) string { return m.format("service", name) }

// General opens a chat without a specific subject.
func (m Messages) General() string { return m.format("general") }
