package main

import (
	"encoding/xml"
	"net/http"
	"net/url"
	"strings"

	"go.uber.org/zap"

	"villamarisol.com/marisol-web/internal/observability"
)

func (a *app) healthz(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("ok"))
}

func (a *app) robots(w http.ResponseWriter, r *http.Request) {
	var b strings.Builder
	b.WriteString("User-agent: *\n")
	if a.cfg.Server.Dev {
		b.WriteString("Disallow: /\n")
	} else {
		b.WriteString("Allow: /\n")
		b.WriteString("Disallow: /media/\nDisallow: /gallery/grid\nDisallow: /gallery/lightbox\n")
	}
	b.WriteString("Sitemap: " + a.absoluteURL("/sitemap.xml") + "\n")
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	_, _ = w.Write([]byte(b.String()))
}

type sitemapURLSet struct {
	XMLName xml.Name     `xml:"urlset"`
	NS      string       `xml:"xmlns,attr"`
	XHTML   string       `xml:"xmlns:xhtml,attr"`
	URLs    []sitemapURL `xml:"url"`
}

type sitemapURL struct {
	Loc        string           `xml:"loc"`
	LastMod    string           `xml:"lastmod,omitempty"`
	Alternates []sitemapAltLink `xml:"xhtml:link"`
}

type sitemapAltLink struct {
	Rel      string `xml:"rel,attr"`
	Hreflang string `xml:"hreflang,attr"`
	Href     string `xml:"href,attr"`
}

// sitemapPaths lists every indexable path: fixed sections, room details and
// content pages present in the default language.
func (a *app) sitemapPaths() []string {
	paths := []string{"/", "/rooms", "/gallery", "/menu", "/spa", "/services", "/contact"}
	for _, rm := range a.site.Rooms.Items() {
		paths = append(paths, "/rooms/"+url.PathEscape(rm.ID))
	}
	slugs, err := a.pages.Slugs(a.bundle.Fallback())
	if err != nil {
		a.logger.Warn("sitemap: list content", zap.Error(err))
	}
	for _, s := range slugs {
		paths = append(paths, "/"+s)
	}
	return paths
}

func (a *app) sitemap(w http.ResponseWriter, r *http.Request) {
	set := sitemapURLSet{
		NS:    "http://www.sitemaps.org/schemas/sitemap/0.9",
		XHTML: "http://www.w3.org/1999/xhtml",
	}
	for _, p := range a.sitemapPaths() {
		u := sitemapURL{Loc: a.absoluteURL(p)}
		for _, l := range a.bundle.Supported() {
			u.Alternates = append(u.Alternates, sitemapAltLink{
				Rel:      "alternate",
				Hreflang: l,
				Href:     a.absoluteURL(p + "?hl=" + l),
			})
		}
		set.URLs = append(set.URLs, u)
	}
	out, err := xml.MarshalIndent(set, "", "  ")
	if err != nil {
		observability.FromContext(r.Context()).Error("sitemap", zap.Error(err))
		a.errorPage(w, r, http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/xml; charset=utf-8")
	_, _ = w.Write([]byte(xml.Header))
	_, _ = w.Write(out)
}
