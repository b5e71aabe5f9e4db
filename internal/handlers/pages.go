// Package handlers holds the view models shared by every page template.
package handlers

import (
	"villamarisol.com/marisol-web/internal/middleware"
	"villamarisol.com/marisol-web/internal/nav"
	"villamarisol.com/marisol-web/internal/seo"
)

// PageData is a generic view model for pages using the shared layout.
type PageData struct {
	Title     string
	Lang      string
	Langs     []LangLink
	SEO       seo.Meta
	Analytics Analytics
	Site      Site
	CSRFToken string
	Flash     *middleware.Flash

	Path        string
	Nav         []nav.RenderedItem
	Footer      []nav.RenderedItem
	Breadcrumbs []nav.Crumb

	// ScrollLocked is rendered on <body> while an overlay is open.
	ScrollLocked bool

	// Optional per-page view model payloads
	Home     any
	Rooms    any
	Room     any
	Gallery  any
	Menu     any
	Spa      any
	Services any
	Content  any
	Contact  any
	Error    any
}

// LangLink switches the page language.
type LangLink struct {
	Code   string
	Href   string
	Active bool
}

// Site carries the hotel's contact details for the layout.
type Site struct {
	Name         string
	BaseURL      string
	Phone        string
	PhoneHref    string
	WhatsAppHref string
	Email        string
	Address      string
}
