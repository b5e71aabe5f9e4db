// Package media decides how image references are rendered: straight from
// /assets or through the /_img optimisation endpoint at a clamped quality.
package media

import (
	"net/url"
	"strconv"
	"strings"
)

const (
	MinQuality = 30
	MaxQuality = 100

	// Call-site defaults used when no quality is configured.
	CardQuality = 75
	HeroQuality = 80

	// Endpoint serves resized images when optimisation is enabled.
	Endpoint = "/_img"
)

// Options are the presentation flags read at startup.
type Options struct {
	Optimize bool
	// Quality is the configured quality; zero means unset.
	Quality int
}

// ClampQuality bounds q to [MinQuality, MaxQuality].
func ClampQuality(q int) int {
	switch {
	case q < MinQuality:
		return MinQuality
	case q > MaxQuality:
		return MaxQuality
	}
	return q
}

// QualityOr returns the configured quality, or fallback when unset, clamped.
func (o Options) QualityOr(fallback int) int {
	if o.Quality == 0 {
		return ClampQuality(fallback)
	}
	return ClampQuality(o.Quality)
}

// URL returns the reference to render for src at the given display width.
// With optimisation off it is src unchanged. External and data URLs are
// never rewritten.
func (o Options) URL(src string, width, fallbackQuality int) string {
	if !o.Optimize || src == "" || !strings.HasPrefix(src, "/") || strings.HasPrefix(src, "//") {
		return src
	}
	q := url.Values{}
	q.Set("src", src)
	if width > 0 {
		q.Set("w", strconv.Itoa(width))
	}
	q.Set("q", strconv.Itoa(o.QualityOr(fallbackQuality)))
	return Endpoint + "?" + q.Encode()
}

// Card renders a thumbnail or gallery reference.
func (o Options) Card(src string, width int) string { return o.URL(src, width, CardQuality) }

// Hero renders a full-bleed reference.
func (o Options) Hero(src string, width int) string { return o.URL(src, width, HeroQuality) }

// SrcSet builds a srcset attribute value over widths. It is empty when
// optimisation is off.
func (o Options) SrcSet(src string, fallbackQuality int, widths ...int) string {
	if !o.Optimize {
		return ""
	}
	parts := make([]string, 0, len(widths))
	for _, w := range widths {
		parts = append(parts, o.URL(src, w, fallbackQuality)+" "+strconv.Itoa(w)+"w")
	}
	return strings.Join(parts, ", ")
}
