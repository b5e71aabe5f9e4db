package seo

import (
	"encoding/json"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestHotelSchema(t *testing.T) {
	payload := Hotel(HotelInfo{
		Name:      "Villa Marisol",
		URL:       "https://villamarisol.com",
		Telephone: "+52 322 555 0101",
		Address:   Address{Locality: "Puerto Vallarta", Country: "MX"},
		Amenities: []string{"Spa", "Pool"},
	})
	raw := JSON(payload)
	var decoded map[string]any
	require.NoError(t, json.Unmarshal([]byte(raw), &decoded))
	require.Equal(t, "Hotel", decoded["@type"])
	require.Equal(t, "Puerto Vallarta", decoded["address"].(map[string]any)["addressLocality"])
	require.Len(t, decoded["amenityFeature"], 2)
	require.NotContains(t, decoded, "email")
}

func TestMenuAndRoomSchemas(t *testing.T) {
	menu := Menu("Dinner", "", []MenuSection{{
		Name:  "Mains",
		Items: []MenuEntry{{Name: "Catch of the day", Price: Decimal(3200), Currency: "USD"}},
	}})
	require.Contains(t, JSON(menu), `"price":"32.00"`)

	room := HotelRoom(RoomOffer{Name: "Ocean Suite", Occupancy: 3, Price: Decimal(42050), Currency: "USD"})
	require.Contains(t, JSON(room), `"price":"420.50"`)
	require.Contains(t, JSON(room), `"maxValue":3`)
}

func TestJSONLDEscapesScriptClose(t *testing.T) {
	js := JSONLD(map[string]string{"name": "</script><b>"})
	require.False(t, strings.Contains(string(js), "</script>"))
}

func TestMetaFill(t *testing.T) {
	m := Meta{Title: "Rooms | Villa Marisol", Description: "Sea views", Canonical: "https://x/rooms"}
	m.OG.Image = "https://x/og.jpg"
	m.Fill("Villa Marisol")
	require.Equal(t, "Rooms | Villa Marisol", m.OG.Title)
	require.Equal(t, "https://x/rooms", m.OG.URL)
	require.Equal(t, "website", m.OG.Type)
	require.Equal(t, "summary_large_image", m.Twitter.Card)
	require.Equal(t, "https://x/og.jpg", m.Twitter.Image)

	m.AddJSONLD(BreadcrumbList([]BreadcrumbItem{{Name: "Home", Item: "https://x/"}}))
	require.Len(t, m.JSONLD, 1)
	m.AddJSONLD(func() {})
	require.Len(t, m.JSONLD, 1)
}

func TestDecimal(t *testing.T) {
	require.Equal(t, "0.05", Decimal(5))
	require.Equal(t, "250.00", Decimal(25000))
	require.Equal(t, "-1.10", Decimal(-110))
}
