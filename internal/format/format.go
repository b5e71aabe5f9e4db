package format

import (
	"fmt"
	"strings"
	"time"

	"golang.org/x/text/currency"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/number"
)

var symbols = map[string]string{
	"USD": "$",
	"EUR": "€",
	"MXN": "MX$",
	"GBP": "£",
}

// Currency formats an amount in minor units (cents) for lang. Whole amounts
// drop the fraction: FmtCurrency(25000, "USD", "en") => "$250".
func FmtCurrency(minor int64, currencyCode, lang string) string {
	code := strings.ToUpper(strings.TrimSpace(currencyCode))
	if code == "" {
		code = "USD"
	}
	if _, err := currency.ParseISO(code); err != nil {
		return fmt.Sprintf("%s %d", code, minor)
	}
	p := printer(lang)
	neg := minor < 0
	if neg {
		minor = -minor
	}
	var amount string
	if minor%100 == 0 {
		amount = p.Sprintf("%d", minor/100)
	} else {
		amount = p.Sprint(number.Decimal(float64(minor)/100, number.Scale(2)))
	}
	symbol, ok := symbols[code]
	if !ok {
		symbol = code + " "
	}
	if neg {
		return "-" + symbol + amount
	}
	return symbol + amount
}

// FmtDate formats t in a locale-friendly short form.
func FmtDate(t time.Time, lang string) string {
	if t.IsZero() {
		return ""
	}
	switch base(lang) {
	case "es":
		return fmt.Sprintf("%d %s %d", t.Day(), monthsES[t.Month()-1], t.Year())
	default:
		return t.Format("Jan 2, 2006")
	}
}

// FmtMinutes renders a treatment duration, e.g. 90 => "1 h 30 min".
func FmtMinutes(m int) string {
	switch {
	case m <= 0:
		return ""
	case m < 60:
		return fmt.Sprintf("%d min", m)
	case m%60 == 0:
		return fmt.Sprintf("%d h", m/60)
	default:
		return fmt.Sprintf("%d h %d min", m/60, m%60)
	}
}

var monthsES = [...]string{"ene", "feb", "mar", "abr", "may", "jun", "jul", "ago", "sept", "oct", "nov", "dic"}

func printer(lang string) *message.Printer {
	tag, err := language.Parse(base(lang))
	if err != nil {
		tag = language.English
	}
	return message.NewPrinter(tag)
}

func base(lang string) string {
	lang = strings.ToLower(strings.TrimSpace(lang))
	if i := strings.IndexAny(lang, "-_"); i > 0 {
		lang = lang[:i]
	}
	if lang == "" {
		return "en"
	}
	return lang
}
