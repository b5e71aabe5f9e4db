// Package inquiry handles the contact form: validation, submission to an
// external collaborator (or an in-process fake) and the pending, succeeded
// and failed states the page renders.
package inquiry

import (
	"net/mail"
	"net/url"
	"strconv"
	"strings"
	"time"
	"unicode/utf8"
)

// Topic is what the guest is asking about.
type Topic string

const (
	TopicGeneral    Topic = "general"
	TopicRoom       Topic = "room"
	TopicEvent      Topic = "event"
	TopicSpa        Topic = "spa"
	TopicRestaurant Topic = "restaurant"
)

// Topics lists the selectable topics in display order.
var Topics = []Topic{TopicGeneral, TopicRoom, TopicEvent, TopicSpa, TopicRestaurant}

// ParseTopic returns the matching topic or TopicGeneral.
func ParseTopic(s string) Topic {
	t := Topic(strings.ToLower(strings.TrimSpace(s)))
	for _, known := range Topics {
		if t == known {
			return t
		}
	}
	return TopicGeneral
}

const (
	dateLayout    = "2006-01-02"
	maxNameLen    = 120
	maxMessageLen = 2000
	maxGuests     = 12
)

// Field error codes, rendered through the i18n bundle as contact.error.<code>.
const (
	ErrCodeRequired = "required"
	ErrCodeTooLong  = "too_long"
	ErrCodeInvalid  = "invalid"
	ErrCodeInPast   = "in_past"
	ErrCodeOrder    = "order"
)

// Form is a contact submission as entered by the guest.
type Form struct {
	Name     string
	Email    string
	Phone    string
	Topic    Topic
	RoomID   string
	CheckIn  string
	CheckOut string
	Guests   int
	Message  string
	Locale   string
}

// ParseForm reads a submitted form. Unknown topics fall back to general and
// an unparsable guest count reads as zero.
func ParseForm(v url.Values) Form {
	guests, _ := strconv.Atoi(strings.TrimSpace(v.Get("guests")))
	return Form{
		Name:     strings.TrimSpace(v.Get("name")),
		Email:    strings.TrimSpace(v.Get("email")),
		Phone:    strings.TrimSpace(v.Get("phone")),
		Topic:    ParseTopic(v.Get("topic")),
		RoomID:   strings.TrimSpace(v.Get("room")),
		CheckIn:  strings.TrimSpace(v.Get("check_in")),
		CheckOut: strings.TrimSpace(v.Get("check_out")),
		Guests:   guests,
		Message:  strings.TrimSpace(v.Get("message")),
	}
}

// FieldErrors maps form field names to error codes.
type FieldErrors map[string]string

// Has reports whether field has an error.
func (fe FieldErrors) Has(field string) bool {
	_, ok := fe[field]
	return ok
}

// Validate checks the form against today's date and returns nil when valid.
func (f Form) Validate(now time.Time) FieldErrors {
	errs := FieldErrors{}

	switch {
	case f.Name == "":
		errs["name"] = ErrCodeRequired
	case utf8.RuneCountInString(f.Name) > maxNameLen:
		errs["name"] = ErrCodeTooLong
	}

	if f.Email == "" {
		errs["email"] = ErrCodeRequired
	} else if addr, err := mail.ParseAddress(f.Email); err != nil || addr.Address != f.Email {
		errs["email"] = ErrCodeInvalid
	}

	if f.Phone != "" {
		n := 0
		for _, r := range f.Phone {
			if r >= '0' && r <= '9' {
				n++
			} else if !strings.ContainsRune("+-() .", r) {
				n = -1
				break
			}
		}
		if n < 7 || n > 15 {
			errs["phone"] = ErrCodeInvalid
		}
	}

	switch {
	case f.Message == "":
		errs["message"] = ErrCodeRequired
	case utf8.RuneCountInString(f.Message) > maxMessageLen:
		errs["message"] = ErrCodeTooLong
	}

	if f.Guests < 0 || f.Guests > maxGuests {
		errs["guests"] = ErrCodeInvalid
	}

	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	in, inOK := parseDate(f.CheckIn, now.Location(), errs, "check_in")
	out, outOK := parseDate(f.CheckOut, now.Location(), errs, "check_out")
	if inOK && in.Before(today) {
		errs["check_in"] = ErrCodeInPast
	}
	if inOK && outOK && !out.After(in) {
		errs["check_out"] = ErrCodeOrder
	}

	if len(errs) == 0 {
		return nil
	}
	return errs
}

// Nights returns the stay length when both dates are valid.
func (f Form) Nights() int {
	in, err1 := time.Parse(dateLayout, f.CheckIn)
	out, err2 := time.Parse(dateLayout, f.CheckOut)
	if err1 != nil || err2 != nil || !out.After(in) {
		return 0
	}
	return int(out.Sub(in).Hours() / 24)
}

func parseDate(raw string, loc *time.Location, errs FieldErrors, field string) (time.Time, bool) {
	if raw == "" {
		return time.Time{}, false
	}
	t, err := time.ParseInLocation(dateLayout, raw, loc)
	if err != nil {
		errs[field] = ErrCodeInvalid
		return time.Time{}, false
	}
	return t, true
}
