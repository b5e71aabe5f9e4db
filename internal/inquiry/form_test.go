package inquiry

import (
	"net/url"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

var today = time.Date(2026, 5, 10, 15, 0, 0, 0, time.UTC)

func validForm() Form {
	return Form{
		Name:     "Ana López",
		Email:    "ana@example.com",
		Phone:    "+52 (322) 555-0147",
		Topic:    TopicRoom,
		RoomID:   "ocean-suite",
		CheckIn:  "2026-05-10",
		CheckOut: "2026-05-14",
		Guests:   2,
		Message:  "Do you have a crib?",
	}
}

func TestParseForm(t *testing.T) {
	f := ParseForm(url.Values{
		"name":     {"  Ana "},
		"email":    {"ana@example.com"},
		"topic":    {"SPA"},
		"guests":   {"x"},
		"message":  {"hi"},
		"check_in": {"2026-06-01"},
	})
	require.Equal(t, "Ana", f.Name)
	require.Equal(t, TopicSpa, f.Topic)
	require.Zero(t, f.Guests)
	require.Equal(t, "2026-06-01", f.CheckIn)
	require.Equal(t, TopicGeneral, ParseForm(url.Values{"topic": {"wedding"}}).Topic)
}

func TestValidateAcceptsValidForm(t *testing.T) {
	f := validForm()
	require.Nil(t, f.Validate(today))
	require.Equal(t, 4, f.Nights())
}

func TestValidateFieldErrors(t *testing.T) {
	cases := []struct {
		name  string
		edit  func(*Form)
		field string
		code  string
	}{
		{"missing name", func(f *Form) { f.Name = "" }, "name", ErrCodeRequired},
		{"long name", func(f *Form) { f.Name = strings.Repeat("a", 121) }, "name", ErrCodeTooLong},
		{"missing email", func(f *Form) { f.Email = "" }, "email", ErrCodeRequired},
		{"bad email", func(f *Form) { f.Email = "ana@" }, "email", ErrCodeInvalid},
		{"display name email", func(f *Form) { f.Email = "Ana <ana@example.com>" }, "email", ErrCodeInvalid},
		{"short phone", func(f *Form) { f.Phone = "123" }, "phone", ErrCodeInvalid},
		{"letters in phone", func(f *Form) { f.Phone = "call me 5550147" }, "phone", ErrCodeInvalid},
		{"missing message", func(f *Form) { f.Message = "" }, "message", ErrCodeRequired},
		{"long message", func(f *Form) { f.Message = strings.Repeat("x", 2001) }, "message", ErrCodeTooLong},
		{"too many guests", func(f *Form) { f.Guests = 13 }, "guests", ErrCodeInvalid},
		{"bad date", func(f *Form) { f.CheckIn = "10/05/2026" }, "check_in", ErrCodeInvalid},
		{"past check-in", func(f *Form) { f.CheckIn = "2026-05-09" }, "check_in", ErrCodeInPast},
		{"checkout before check-in", func(f *Form) { f.CheckOut = "2026-05-10" }, "check_out", ErrCodeOrder},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			f := validForm()
			tc.edit(&f)
			errs := f.Validate(today)
			require.True(t, errs.Has(tc.field), "errors: %v", errs)
			require.Equal(t, tc.code, errs[tc.field])
		})
	}
}

func TestValidateOptionalFields(t *testing.T) {
	f := Form{Name: "Ana", Email: "ana@example.com", Message: "hello"}
	require.Nil(t, f.Validate(today))
	require.Zero(t, f.Nights())
}
