package format

import (
	"testing"
	"time"
)

func TestFmtCurrency(t *testing.T) {
	cases := []struct {
		minor int64
		code  string
		want  string
	}{
		{25000, "USD", "$250"},
		{125000, "usd", "$1,250"},
		{1250, "USD", "$12.50"},
		{-4500, "USD", "-$45"},
		{900, "", "$9"},
		{3000, "EUR", "€30"},
		{750, "JPY", "JPY 7.50"},
		{700, "ZZZZ", "ZZZZ 700"},
	}
	for _, tc := range cases {
		if got := FmtCurrency(tc.minor, tc.code, "en"); got != tc.want {
			t.Errorf("FmtCurrency(%d, %q) = %q, want %q", tc.minor, tc.code, got, tc.want)
		}
	}
}

func TestFmtDate(t *testing.T) {
	d := time.Date(2026, time.August, 3, 0, 0, 0, 0, time.UTC)
	if got := FmtDate(d, "en-US"); got != "Aug 3, 2026" {
		t.Errorf("en = %q", got)
	}
	if got := FmtDate(d, "es"); got != "3 ago 2026" {
		t.Errorf("es = %q", got)
	}
	if got := FmtDate(time.Time{}, "en"); got != "" {
		t.Errorf("zero = %q", got)
	}
}

func TestFmtMinutes(t *testing.T) {
	cases := map[int]string{0: "", 45: "45 min", 60: "1 h", 90: "1 h 30 min"}
	for in, want := range cases {
		if got := FmtMinutes(in); got != want {
			t.Errorf("FmtMinutes(%d) = %q, want %q", in, got, want)
		}
	}
}
