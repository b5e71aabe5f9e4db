package main

import (
	"net/http"
	"net/url"
	"strings"

	"villamarisol.com/marisol-web/internal/booking"
	handlersPkg "villamarisol.com/marisol-web/internal/handlers"
	mw "villamarisol.com/marisol-web/internal/middleware"
	"villamarisol.com/marisol-web/internal/nav"
	"villamarisol.com/marisol-web/internal/seo"
)

// basePage fills the layout fields shared by every page. labels override
// breadcrumb labels for path segments such as record ids.
func (a *app) basePage(r *http.Request, titleKey, descKey string, labels map[string]string) handlersPkg.PageData {
	lang := mw.Lang(r)
	s := mw.GetSession(r)
	brand := a.cfg.Site.Name

	title := a.bundle.T(lang, titleKey)
	vm := handlersPkg.PageData{
		Title:       title,
		Lang:        lang,
		Langs:       a.langLinks(r, lang),
		Analytics:   handlersPkg.AnalyticsFromConfig(a.cfg.Analytics, s.Consent),
		Site:        a.siteInfo(lang),
		CSRFToken:   s.CSRFToken,
		Flash:       s.TakeFlash(),
		Path:        r.URL.Path,
		Nav:         nav.Build(r.URL.Path),
		Footer:      nav.BuildFooter(r.URL.Path),
		Breadcrumbs: nav.Breadcrumbs(r.URL.Path, labels),
	}
	vm.SEO.Title = title + " | " + brand
	if r.URL.Path == "/" {
		vm.SEO.Title = brand + " | " + title
	}
	vm.SEO.Description = a.bundle.T(lang, descKey)
	vm.SEO.Canonical = a.absoluteURL(r.URL.Path)
	vm.SEO.Alternates = a.buildAlternates(r)
	vm.SEO.OG.Locale = lang
	vm.SEO.OG.Image = a.absoluteURL("/assets/img/og.jpg")

	if len(vm.Breadcrumbs) > 1 {
		items := make([]seo.BreadcrumbItem, 0, len(vm.Breadcrumbs))
		for _, c := range vm.Breadcrumbs {
			name := c.Label
			if c.LabelKey != "" {
				name = a.bundle.T(lang, c.LabelKey)
			}
			items = append(items, seo.BreadcrumbItem{Name: name, Item: a.absoluteURL(c.Href)})
		}
		vm.SEO.AddJSONLD(seo.BreadcrumbList(items))
	}
	return vm
}

// finish completes SEO defaults once the page has set its own fields.
func (a *app) finish(vm *handlersPkg.PageData) {
	vm.SEO.Fill(a.cfg.Site.Name)
}

func (a *app) siteInfo(lang string) handlersPkg.Site {
	return handlersPkg.Site{
		Name:         a.cfg.Site.Name,
		BaseURL:      a.cfg.Site.BaseURL,
		Phone:        a.cfg.Site.Phone,
		PhoneHref:    booking.Tel(a.cfg.Site.Phone),
		WhatsAppHref: booking.WhatsApp(a.cfg.Site.WhatsApp, a.messages(lang).General()),
		Email:        a.cfg.Site.Email,
		Address:      a.cfg.Site.Address,
	}
}

// messages returns the prefilled chat texts in lang.
func (a *app) messages(lang string) booking.Messages {
	m := booking.Messages{Hotel: a.cfg.Site.Name, Formats: map[string]string{}}
	for _, key := range []string{"room", "order", "treatment", "service", "general"} {
		k := "booking." + key
		if v := a.bundle.T(lang, k); v != k {
			m.Formats[key] = v
		}
	}
	return m
}

func (a *app) i18nOrDefault(lang, key, def string) string {
	if v := a.bundle.T(lang, key); v != key {
		return v
	}
	return def
}

func (a *app) absoluteURL(path string) string {
	if !strings.HasPrefix(path, "/") {
		path = "/" + path
	}
	return a.cfg.Site.BaseURL + path
}

// buildAlternates links the same page in every supported language.
func (a *app) buildAlternates(r *http.Request) []seo.Alternate {
	out := make([]seo.Alternate, 0, len(a.bundle.Supported())+1)
	for _, l := range a.bundle.Supported() {
		out = append(out, seo.Alternate{Href: a.absoluteURL(withLang(r.URL, l)), Hreflang: l})
	}
	out = append(out, seo.Alternate{Href: a.absoluteURL(r.URL.Path), Hreflang: "x-default"})
	return out
}

func (a *app) langLinks(r *http.Request, current string) []handlersPkg.LangLink {
	out := make([]handlersPkg.LangLink, 0, len(a.bundle.Supported()))
	for _, l := range a.bundle.Supported() {
		out = append(out, handlersPkg.LangLink{Code: l, Href: withLang(r.URL, l), Active: l == current})
	}
	return out
}

func withLang(u *url.URL, lang string) string {
	q := u.Query()
	q.Set("hl", lang)
	return u.Path + "?" + q.Encode()
}
