package main

import (
	"errors"
	"net/http"
	"net/url"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"villamarisol.com/marisol-web/internal/content"
	"villamarisol.com/marisol-web/internal/format"
	handlersPkg "villamarisol.com/marisol-web/internal/handlers"
	mw "villamarisol.com/marisol-web/internal/middleware"
	"villamarisol.com/marisol-web/internal/observability"
	"villamarisol.com/marisol-web/internal/seo"
)

// home renders the landing page.
func (a *app) home(w http.ResponseWriter, r *http.Request) {
	vm := a.basePage(r, "home.title", "home.description", nil)
	vm.Home = handlersPkg.BuildHomeData(a.site)
	vm.SEO.AddJSONLD(seo.Hotel(seo.HotelInfo{
		Name:        a.cfg.Site.Name,
		URL:         a.cfg.Site.BaseURL,
		Description: vm.SEO.Description,
		Image:       vm.SEO.OG.Image,
		Telephone:   a.cfg.Site.Phone,
		Email:       a.cfg.Site.Email,
		Address:     seo.Address{Street: a.cfg.Site.Address},
		PriceRange:  "$$$",
		Amenities:   []string{"Spa", "Restaurant", "Plunge pools", "Airport transfer"},
	}))
	a.finish(&vm)
	a.render.page(w, r, http.StatusOK, "home", vm)
}

// rooms lists room types with category/tag pills.
func (a *app) rooms(w http.ResponseWriter, r *http.Request) {
	vm := a.basePage(r, "rooms.title", "rooms.description", nil)
	vm.Rooms = a.buildRooms(r.URL.Query(), vm.Lang)
	a.finish(&vm)
	a.render.page(w, r, http.StatusOK, "rooms", vm)
}

// room renders a room type with its photo carousel.
func (a *app) room(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	rm, ok := a.site.Rooms.Lookup(id)
	if !ok {
		a.notFound(w, r)
		return
	}
	vm := a.basePage(r, "rooms.title", "rooms.description", map[string]string{id: rm.Name})
	view := a.buildRoom(rm, r.URL.Query(), vm.Lang)
	vm.Room = view
	vm.Title = rm.Name
	vm.SEO.Title = rm.Name + " | " + a.cfg.Site.Name
	vm.SEO.Description = rm.Summary
	if cover := rm.Cover(); cover.Src != "" {
		vm.SEO.OG.Image = a.absoluteURL(cover.Src)
	}
	vm.SEO.AddJSONLD(seo.HotelRoom(seo.RoomOffer{
		Name:        rm.Name,
		Description: rm.Summary,
		URL:         a.absoluteURL(view.Href),
		Image:       vm.SEO.OG.Image,
		Occupancy:   rm.Capacity,
		Price:       seo.Decimal(rm.PricePerNight),
		Currency:    rm.Currency,
	}))
	a.finish(&vm)
	a.render.page(w, r, http.StatusOK, "room", vm)
}

// roomCarousel swaps the carousel when a dot or arrow is used.
func (a *app) roomCarousel(w http.ResponseWriter, r *http.Request) {
	rm, ok := a.site.Rooms.Lookup(chi.URLParam(r, "id"))
	if !ok {
		mw.WriteError(w, r, http.StatusNotFound, "not_found", "room not found")
		return
	}
	lang := mw.Lang(r)
	view := a.buildRoom(rm, r.URL.Query(), lang)
	w.Header().Set("HX-Push-Url", view.Carousel.Self)
	a.render.fragment(w, r, "frag_room_carousel", map[string]any{"Lang": lang, "Room": view})
}

// gallery renders the filterable media grid and, with ?open, the overlay.
func (a *app) gallery(w http.ResponseWriter, r *http.Request) {
	vm := a.basePage(r, "gallery.title", "gallery.description", nil)
	view := a.buildGallery(r.URL.Query(), vm.Lang)
	vm.Gallery = view
	vm.ScrollLocked = view.Page.ScrollLocked
	if cur := view.Page.Current; cur != nil {
		vm.SEO.Canonical = a.absoluteURL(view.Page.Lightbox.Self)
		vm.SEO.OG.Image = a.absoluteURL(firstNonEmpty(cur.Record.Poster, cur.Record.Src))
	}
	a.finish(&vm)
	a.render.page(w, r, http.StatusOK, "gallery", vm)
}

// galleryGrid re-renders pills and grid after a filter change. Any open
// overlay is dropped since the index referred to the previous subset.
func (a *app) galleryGrid(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	q.Del("open")
	q.Del("key")
	view := a.buildGallery(q, mw.Lang(r))
	w.Header().Set("HX-Push-Url", view.Page.Lightbox.Close)
	a.render.fragment(w, r, "frag_gallery_grid", view)
}

// galleryLightbox renders the overlay for ?open and ?key.
func (a *app) galleryLightbox(w http.ResponseWriter, r *http.Request) {
	view := a.buildGallery(r.URL.Query(), mw.Lang(r))
	w.Header().Set("HX-Push-Url", view.Page.Lightbox.Self)
	a.render.fragment(w, r, "frag_lightbox", view)
}

// menu lists dishes grouped by course.
func (a *app) menu(w http.ResponseWriter, r *http.Request) {
	vm := a.basePage(r, "menu.title", "menu.description", nil)
	view := a.buildMenu(r.URL.Query(), vm.Lang)
	vm.Menu = view
	sections := make([]seo.MenuSection, 0, len(view.Sections))
	for _, s := range view.Sections {
		sec := seo.MenuSection{Name: s.Name}
		for _, l := range s.Lines {
			sec.Items = append(sec.Items, seo.MenuEntry{
				Name:        l.Record.Name,
				Description: l.Record.Description,
				Price:       seo.Decimal(l.Record.Price),
				Currency:    l.Record.Currency,
			})
		}
		sections = append(sections, sec)
	}
	vm.SEO.AddJSONLD(seo.Menu(a.i18nOrDefault(vm.Lang, "menu.title", "Menu"), a.absoluteURL("/menu"), sections))
	a.finish(&vm)
	a.render.page(w, r, http.StatusOK, "menu", vm)
}

// spa lists treatments grouped by kind.
func (a *app) spa(w http.ResponseWriter, r *http.Request) {
	vm := a.basePage(r, "spa.title", "spa.description", nil)
	vm.Spa = a.buildSpa(r.URL.Query(), vm.Lang)
	a.finish(&vm)
	a.render.page(w, r, http.StatusOK, "spa", vm)
}

// services lists hotel services.
func (a *app) services(w http.ResponseWriter, r *http.Request) {
	vm := a.basePage(r, "services.title", "services.description", nil)
	vm.Services = a.buildServices(r.URL.Query(), vm.Lang)
	a.finish(&vm)
	a.render.page(w, r, http.StatusOK, "services", vm)
}

// contentPage serves a markdown page from the content store.
func (a *app) contentPage(slug string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		lang := mw.Lang(r)
		page, err := a.pages.Get(r.Context(), slug, lang)
		if errors.Is(err, content.ErrNotFound) {
			a.notFound(w, r)
			return
		}
		if err != nil {
			observability.FromContext(r.Context()).Error("content page", zap.String("slug", slug), zap.Error(err))
			a.errorPage(w, r, http.StatusInternalServerError)
			return
		}
		vm := a.basePage(r, "nav."+slug, "home.description", nil)
		vm.Title = page.Title
		vm.SEO.Title = firstNonEmpty(page.SEO.Title, page.Title+" | "+a.cfg.Site.Name)
		vm.SEO.Description = firstNonEmpty(page.SEO.Description, page.Summary)
		if img := firstNonEmpty(page.SEO.OGImage, page.Hero); img != "" {
			vm.SEO.OG.Image = a.absoluteURL(img)
		}
		vm.SEO.OG.Type = "article"
		vm.Content = map[string]any{
			"Page":    page,
			"Updated": format.FmtDate(page.UpdatedAt, lang),
		}
		a.finish(&vm)
		a.render.page(w, r, http.StatusOK, "content", vm)
	}
}

// consent records the analytics cookie choice.
func (a *app) consent(w http.ResponseWriter, r *http.Request) {
	s := mw.GetSession(r)
	choice := "denied"
	if r.PostFormValue("choice") == "granted" {
		choice = "granted"
	}
	if s.Consent != choice {
		s.Consent = choice
		s.MarkDirty()
	}
	if mw.IsHTMX(r.Context()) {
		w.Header().Set("HX-Refresh", "true")
		w.WriteHeader(http.StatusNoContent)
		return
	}
	http.Redirect(w, r, safeReturn(r.PostFormValue("return")), http.StatusSeeOther)
}

func (a *app) notFound(w http.ResponseWriter, r *http.Request) {
	a.errorPage(w, r, http.StatusNotFound)
}

func (a *app) errorPage(w http.ResponseWriter, r *http.Request, status int) {
	if mw.IsHTMX(r.Context()) {
		mw.WriteError(w, r, status, http.StatusText(status), http.StatusText(status))
		return
	}
	key := "error.not_found"
	if status >= http.StatusInternalServerError {
		key = "error.server"
	}
	vm := a.basePage(r, key+".title", key+".body", nil)
	vm.Breadcrumbs = nil
	vm.SEO.JSONLD = nil
	vm.SEO.Robots = "noindex"
	vm.Error = map[string]any{"Status": status, "Key": key}
	a.finish(&vm)
	a.render.page(w, r, status, "error", vm)
}

// safeReturn allows only local paths as redirect targets.
func safeReturn(raw string) string {
	u, err := url.Parse(raw)
	if err != nil || raw == "" || u.IsAbs() || u.Host != "" || len(u.Path) == 0 || u.Path[0] != '/' || (len(u.Path) > 1 && u.Path[1] == '/') {
		return "/"
	}
	return u.RequestURI()
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}
