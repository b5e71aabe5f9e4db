package booking

import (
	"net/url"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestWhatsApp(t *testing.T) {
	msgs := Messages{Hotel: "Villa Marisol"}
	link := WhatsApp("+52 (322) 555-0147", msgs.Room("Ocean Suite", "$520.00"))
	u, err := url.Parse(link)
	require.NoError(t, err)
	require.Equal(t, "wa.me", u.Host)
	require.Equal(t, "/523225550147", u.Path)
	require.Equal(t, "Hello Villa Marisol, I would like to check availability for the Ocean Suite ($520.00 per night).", u.Query().Get("text"))

	require.Equal(t, "https://wa.me/523225550147", WhatsApp("523225550147", " "))
	require.Empty(t, WhatsApp("n/a", "hi"))
}

func TestTel(t *testing.T) {
	require.Equal(t, "tel:+523225550147", Tel("+52 322 555 0147"))
	require.Empty(t, Tel(""))
}

func TestMessages(t *testing.T) {
	m := Messages{Hotel: "Villa Marisol"}
	require.Contains(t, m.Treatment("Hot stone", 90), "(90 min)")
	require.Contains(t, m.Order("Churros", "$9.00"), "order Churros ($9.00)")
}

func TestMessagesOverride(t *testing.T) {
	m := Messages{Hotel: "Villa Marisol", Formats: map[string]string{
		"order": "Hola %[1]s, quiero pedir %[2]s (%[3]s).",
	}}
	require.Equal(t, "Hola Villa Marisol, quiero pedir Churros ($9.00).", m.Order("Churros", "$9.00"))
	require.Equal(t, "Hello Villa Marisol, I would like to make a reservation.", m.General())
}
