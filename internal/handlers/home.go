package handlers

import (
	"strconv"

	"villamarisol.com/marisol-web/internal/catalog"
)

// HomeData is the view model for the landing page.
type HomeData struct {
	Hero       catalog.GalleryMedia
	Rooms      []catalog.Room
	Highlights []Highlight
	Treatments []catalog.Treatment
	Services   []catalog.Service
	FromPrice  int64
	Currency   string
}

// Highlight is a gallery teaser that opens the full gallery's overlay on the
// same item.
type Highlight struct {
	Media catalog.GalleryMedia
	Href  string
}

// BuildHomeData picks the featured records for the landing page: the first
// few of each catalog and the cheapest nightly rate.
func BuildHomeData(site *catalog.Site) HomeData {
	var home HomeData
	if site == nil {
		return home
	}
	rooms := site.Rooms.Items()
	home.Rooms = head(rooms, 3)
	for _, r := range rooms {
		if r.PricePerNight > 0 && (home.FromPrice == 0 || r.PricePerNight < home.FromPrice) {
			home.FromPrice = r.PricePerNight
			home.Currency = r.Currency
		}
	}
	gallery := site.Gallery.Items()
	for _, g := range gallery {
		if g.Kind != catalog.MediaImage {
			continue
		}
		if home.Hero.ID == "" {
			home.Hero = g
			continue
		}
		if len(home.Highlights) < 6 {
			href := "/gallery?open=" + strconv.Itoa(catalog.IndexOf(gallery, g.ID))
			home.Highlights = append(home.Highlights, Highlight{Media: g, Href: href})
		}
	}
	home.Treatments = head(site.Treatments.Items(), 3)
	home.Services = head(site.Services.Items(), 4)
	return home
}

func head[T any](items []T, n int) []T {
	if len(items) > n {
		return items[:n]
	}
	return items
}
