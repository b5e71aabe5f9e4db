// Package seo builds page metadata and schema.org JSON-LD payloads.
package seo

import "html/template"

type OpenGraph struct {
	Title       string
	Description string
	Image       string
	Type        string
	URL         string
	SiteName    string
	Locale      string
}

type Twitter struct {
	Card  string
	Site  string
	Image string
}

// Alternate is an hreflang link to the same page in another language.
type Alternate struct {
	Href     string
	Hreflang string
}

// Meta is everything the layout renders in <head>.
type Meta struct {
	Title       string
	Description string
	Canonical   string
	Robots      string
	OG          OpenGraph
	Twitter     Twitter
	Alternates  []Alternate
	JSONLD      []template.JS
}

// Fill copies title/description into the OpenGraph block and defaults the
// card type.
func (m *Meta) Fill(siteName string) {
	if m.OG.Title == "" {
		m.OG.Title = m.Title
	}
	if m.OG.Description == "" {
		m.OG.Description = m.Description
	}
	if m.OG.URL == "" {
		m.OG.URL = m.Canonical
	}
	if m.OG.SiteName == "" {
		m.OG.SiteName = siteName
	}
	if m.OG.Type == "" {
		m.OG.Type = "website"
	}
	if m.Twitter.Card == "" {
		m.Twitter.Card = "summary_large_image"
	}
	if m.Twitter.Image == "" {
		m.Twitter.Image = m.OG.Image
	}
}

// AddJSONLD appends a schema payload; payloads that fail to marshal are skipped.
func (m *Meta) AddJSONLD(v any) {
	if js := JSONLD(v); js != "" {
		m.JSONLD = append(m.JSONLD, js)
	}
}
