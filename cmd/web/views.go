package main

import (
	"net/url"

	"villamarisol.com/marisol-web/internal/booking"
	"villamarisol.com/marisol-web/internal/catalog"
	"villamarisol.com/marisol-web/internal/format"
	"villamarisol.com/marisol-web/internal/inquiry"
	"villamarisol.com/marisol-web/internal/lazymedia"
	"villamarisol.com/marisol-web/internal/lightbox"
	"villamarisol.com/marisol-web/internal/showcase"
)

// RoomCard is a room in the listing with its booking links.
type RoomCard struct {
	Room      catalog.Room
	Href      string
	Price     string
	WhatsApp  string
	InquireAt string
}

// RoomsView is the /rooms payload.
type RoomsView struct {
	Page  showcase.Page[catalog.Room]
	Cards []RoomCard
}

// RoomView is the /rooms/{id} payload.
type RoomView struct {
	RoomCard
	Carousel lightbox.View
	Photo    catalog.Photo
	Related  []RoomCard
}

// GalleryView is the /gallery payload, also used by its fragments.
type GalleryView struct {
	Lang string
	Page showcase.Page[catalog.GalleryMedia]
}

// PriceLine is a menu item or treatment with its order link.
type PriceLine[T catalog.Record] struct {
	Record   T
	Price    string
	Duration string
	WhatsApp string
}

// Section groups lines under a category heading.
type Section[T catalog.Record] struct {
	Name  string
	Lines []PriceLine[T]
}

// MenuView is the /menu payload.
type MenuView struct {
	Page     showcase.Page[catalog.MenuItem]
	Sections []Section[catalog.MenuItem]
}

// SpaView is the /spa payload.
type SpaView struct {
	Page     showcase.Page[catalog.Treatment]
	Sections []Section[catalog.Treatment]
}

// ServiceCard is a service with its chat link.
type ServiceCard struct {
	Service  catalog.Service
	WhatsApp string
}

// ServicesView is the /services payload.
type ServicesView struct {
	Page  showcase.Page[catalog.Service]
	Cards []ServiceCard
}

// ContactView is the /contact payload and the form fragment's data.
type ContactView struct {
	Lang      string
	State     inquiry.State
	Topics    []inquiry.Topic
	Rooms     []catalog.Room
	CSRFToken string
	MinDate   string
	Phone     string
	PhoneHref string
	WhatsApp  string
	Email     string
}

func (a *app) roomCard(r catalog.Room, lang string) RoomCard {
	price := format.FmtCurrency(r.PricePerNight, r.Currency, lang)
	q := url.Values{"topic": {string(inquiry.TopicRoom)}, "room": {r.ID}}
	return RoomCard{
		Room:      r,
		Href:      "/rooms/" + url.PathEscape(r.ID),
		Price:     price,
		WhatsApp:  booking.WhatsApp(a.cfg.Site.WhatsApp, a.messages(lang).Room(r.Name, price)),
		InquireAt: "/contact?" + q.Encode(),
	}
}

func (a *app) buildRooms(q url.Values, lang string) RoomsView {
	page := showcase.Build(a.site.Rooms, "/rooms", q)
	v := RoomsView{Page: page, Cards: make([]RoomCard, 0, len(page.Entries))}
	for _, e := range page.Entries {
		v.Cards = append(v.Cards, a.roomCard(e.Record, lang))
	}
	return v
}

// buildRoom renders the photo carousel of a room. The carousel is always
// showing a photo: without ?open it starts at the first one.
func (a *app) buildRoom(r catalog.Room, q url.Values, lang string) RoomView {
	path := "/rooms/" + url.PathEscape(r.ID)
	ctrl := lightbox.FromQuery(q, len(r.Photos))
	defer ctrl.Dispose()
	if !ctrl.IsOpen() {
		ctrl.Open(0)
	}
	v := RoomView{
		RoomCard: a.roomCard(r, lang),
		Carousel: ctrl.View(path, url.Values{}),
	}
	if i := ctrl.Index(); i >= 0 {
		v.Photo = r.Photos[i]
	}
	for _, other := range a.site.Rooms.Filter(catalog.FilterState{Category: r.Category}) {
		if other.ID != r.ID {
			v.Related = append(v.Related, a.roomCard(other, lang))
		}
	}
	return v
}

func (a *app) buildGallery(q url.Values, lang string) GalleryView {
	return GalleryView{Lang: lang, Page: showcase.Build(a.site.Gallery, "/gallery", q)}
}

func (a *app) buildMenu(q url.Values, lang string) MenuView {
	page := showcase.Build(a.site.Menu, "/menu", q)
	msgs := a.messages(lang)
	v := MenuView{Page: page}
	for _, e := range page.Entries {
		it := e.Record
		price := format.FmtCurrency(it.Price, it.Currency, lang)
		line := PriceLine[catalog.MenuItem]{
			Record:   it,
			Price:    price,
			WhatsApp: booking.WhatsApp(a.cfg.Site.WhatsApp, msgs.Order(it.Name, price)),
		}
		v.Sections = appendLine(v.Sections, it.Category, line)
	}
	return v
}

func (a *app) buildSpa(q url.Values, lang string) SpaView {
	page := showcase.Build(a.site.Treatments, "/spa", q)
	msgs := a.messages(lang)
	v := SpaView{Page: page}
	for _, e := range page.Entries {
		t := e.Record
		line := PriceLine[catalog.Treatment]{
			Record:   t,
			Price:    format.FmtCurrency(t.Price, t.Currency, lang),
			Duration: format.FmtMinutes(t.DurationMinutes),
			WhatsApp: booking.WhatsApp(a.cfg.Site.WhatsApp, msgs.Treatment(t.Name, t.DurationMinutes)),
		}
		v.Sections = appendLine(v.Sections, t.Category, line)
	}
	return v
}

func (a *app) buildServices(q url.Values, lang string) ServicesView {
	page := showcase.Build(a.site.Services, "/services", q)
	msgs := a.messages(lang)
	v := ServicesView{Page: page}
	for _, e := range page.Entries {
		v.Cards = append(v.Cards, ServiceCard{
			Service:  e.Record,
			WhatsApp: booking.WhatsApp(a.cfg.Site.WhatsApp, msgs.Service(e.Record.Name)),
		})
	}
	return v
}

// appendLine keeps sections in first-appearance order.
func appendLine[T catalog.Record](sections []Section[T], name string, line PriceLine[T]) []Section[T] {
	for i := range sections {
		if sections[i].Name == name {
			sections[i].Lines = append(sections[i].Lines, line)
			return sections
		}
	}
	return append(sections, Section[T]{Name: name, Lines: []PriceLine[T]{line}})
}

func (a *app) buildContact(st inquiry.State, lang, csrf string) ContactView {
	return ContactView{
		Lang:      lang,
		State:     st,
		Topics:    inquiry.Topics,
		Rooms:     a.site.Rooms.Items(),
		CSRFToken: csrf,
		MinDate:   a.now().Format("2006-01-02"),
		Phone:     a.cfg.Site.Phone,
		PhoneHref: booking.Tel(a.cfg.Site.Phone),
		WhatsApp:  booking.WhatsApp(a.cfg.Site.WhatsApp, a.messages(lang).General()),
		Email:     a.cfg.Site.Email,
	}
}

// mediaTarget maps a gallery record onto the lazy loader. Grid videos play
// muted in a loop; the overlay copy has controls.
func (a *app) mediaTarget(g catalog.GalleryMedia, ambient bool) lazymedia.Target {
	t := lazymedia.Target{
		ID:     g.ID,
		Src:    g.Src,
		Alt:    g.Title,
		Width:  g.Width,
		Height: g.Height,
	}
	if g.IsVideo() {
		t.Kind = lazymedia.KindVideo
		t.Poster = a.media.Card(g.Poster, 1200)
		t.Autoplay = ambient
		t.Muted = ambient
		t.Loop = ambient
	} else {
		t.Kind = lazymedia.KindImage
		t.Src = a.media.Card(g.Src, 1200)
	}
	return t
}
