package seo

import (
	"encoding/json"
	"html/template"
	"strconv"
)

// JSON marshals v to a compact JSON string. It returns an empty string on error.
func JSON(v any) string {
	b, err := json.Marshal(v)
	if err != nil {
		return ""
	}
	return string(b)
}

// JSONLD marshals v for a <script type="application/ld+json"> block.
// encoding/json escapes <, > and &, so the output cannot close the script.
func JSONLD(v any) template.JS {
	return template.JS(JSON(v))
}

// Address is a postal address.
type Address struct {
	Street   string
	Locality string
	Region   string
	Postal   string
	Country  string
}

// HotelInfo describes the property for the Hotel schema.
type HotelInfo struct {
	Name        string
	URL         string
	Description string
	Image       string
	Telephone   string
	Email       string
	Address     Address
	PriceRange  string
	Amenities   []string
}

// Hotel returns a schema.org Hotel payload.
func Hotel(h HotelInfo) map[string]any {
	m := map[string]any{
		"@context": "https://schema.org",
		"@type":    "Hotel",
		"name":     h.Name,
	}
	setIf(m, "url", h.URL)
	setIf(m, "description", h.Description)
	setIf(m, "image", h.Image)
	setIf(m, "telephone", h.Telephone)
	setIf(m, "email", h.Email)
	setIf(m, "priceRange", h.PriceRange)
	if h.Address != (Address{}) {
		addr := map[string]any{"@type": "PostalAddress"}
		setIf(addr, "streetAddress", h.Address.Street)
		setIf(addr, "addressLocality", h.Address.Locality)
		setIf(addr, "addressRegion", h.Address.Region)
		setIf(addr, "postalCode", h.Address.Postal)
		setIf(addr, "addressCountry", h.Address.Country)
		m["address"] = addr
	}
	if len(h.Amenities) > 0 {
		features := make([]map[string]any, 0, len(h.Amenities))
		for _, a := range h.Amenities {
			features = append(features, map[string]any{
				"@type": "LocationFeatureSpecification",
				"name":  a,
				"value": true,
			})
		}
		m["amenityFeature"] = features
	}
	return m
}

// RoomOffer describes a room type with its nightly price.
type RoomOffer struct {
	Name        string
	Description string
	URL         string
	Image       string
	Occupancy   int
	Price       string // decimal, e.g. "250.00"
	Currency    string
}

// HotelRoom returns a schema.org HotelRoom with an Offer.
func HotelRoom(r RoomOffer) map[string]any {
	m := map[string]any{
		"@context": "https://schema.org",
		"@type":    "HotelRoom",
		"name":     r.Name,
	}
	setIf(m, "description", r.Description)
	setIf(m, "url", r.URL)
	setIf(m, "image", r.Image)
	if r.Occupancy > 0 {
		m["occupancy"] = map[string]any{"@type": "QuantitativeValue", "maxValue": r.Occupancy}
	}
	if r.Price != "" {
		m["offers"] = map[string]any{
			"@type":         "Offer",
			"price":         r.Price,
			"priceCurrency": r.Currency,
			"unitCode":      "DAY",
		}
	}
	return m
}

// MenuSection groups dishes under a heading.
type MenuSection struct {
	Name  string
	Items []MenuEntry
}

// MenuEntry is one dish.
type MenuEntry struct {
	Name        string
	Description string
	Price       string
	Currency    string
}

// Menu returns a schema.org Menu payload.
func Menu(name, url string, sections []MenuSection) map[string]any {
	out := make([]map[string]any, 0, len(sections))
	for _, s := range sections {
		items := make([]map[string]any, 0, len(s.Items))
		for _, it := range s.Items {
			item := map[string]any{"@type": "MenuItem", "name": it.Name}
			setIf(item, "description", it.Description)
			if it.Price != "" {
				item["offers"] = map[string]any{"@type": "Offer", "price": it.Price, "priceCurrency": it.Currency}
			}
			items = append(items, item)
		}
		out = append(out, map[string]any{
			"@type":       "MenuSection",
			"name":        s.Name,
			"hasMenuItem": items,
		})
	}
	m := map[string]any{
		"@context":       "https://schema.org",
		"@type":          "Menu",
		"name":           name,
		"hasMenuSection": out,
	}
	setIf(m, "url", url)
	return m
}

// BreadcrumbItem maps name and absolute item URL.
type BreadcrumbItem struct {
	Name string
	Item string
}

// BreadcrumbList builds schema.org BreadcrumbList.
func BreadcrumbList(items []BreadcrumbItem) map[string]any {
	el := make([]map[string]any, 0, len(items))
	for i, it := range items {
		el = append(el, map[string]any{
			"@type":    "ListItem",
			"position": i + 1,
			"name":     it.Name,
			"item":     it.Item,
		})
	}
	return map[string]any{
		"@context":        "https://schema.org",
		"@type":           "BreadcrumbList",
		"itemListElement": el,
	}
}

// Decimal renders minor units as a schema.org price string.
func Decimal(minor int64) string {
	neg := minor < 0
	if neg {
		minor = -minor
	}
	s := strconv.FormatInt(minor/100, 10) + "." + strconv.FormatInt(100+minor%100, 10)[1:]
	if neg {
		return "-" + s
	}
	return s
}

func setIf(m map[string]any, key, value string) {
	if value != "" {
		m[key] = value
	}
}
