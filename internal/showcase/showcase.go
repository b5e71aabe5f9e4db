// Package showcase combines the facet filter and the lightbox controller into
// the view model of a filterable, browsable collection page.
package showcase

import (
	"net/url"

	"villamarisol.com/marisol-web/internal/catalog"
	"villamarisol.com/marisol-web/internal/lightbox"
)

// Pill is one filter option with the link that selects it.
type Pill struct {
	Value  string
	Count  int
	Active bool
	Href   string
}

// Entry is a visible record with the link that opens it in the overlay.
type Entry[T catalog.Record] struct {
	Record T
	Index  int
	Href   string
}

// Page is the view of a collection for one request.
type Page[T catalog.Record] struct {
	Path       string
	State      catalog.FilterState
	Query      url.Values
	Total      int
	Entries    []Entry[T]
	Tags       []Pill
	Categories []Pill
	AllTags    Pill
	AllCats    Pill
	Lightbox   lightbox.View
	Current    *Entry[T]
	// ScrollLocked mirrors the page scroll lock held while the overlay is open.
	ScrollLocked bool
}

// Empty reports whether the filter matched nothing.
func (p Page[T]) Empty() bool { return len(p.Entries) == 0 }

// Build filters c with the tag/category query parameters, restores the
// overlay from ?open and ?key, and renders every link of the page.
func Build[T catalog.Record](c *catalog.Catalog[T], path string, q url.Values) Page[T] {
	state := c.Normalize(catalog.ParseFilterState(q))
	items := c.Filter(state)
	base := state.Values()

	lock := &lightbox.Counter{}
	ctrl := lightbox.FromQuery(q, len(items), lightbox.WithScrollLock(lock))
	defer ctrl.Dispose()

	facets := c.Facets(state)
	p := Page[T]{
		Path:     path,
		State:    state,
		Query:    base,
		Total:    facets.Total,
		Entries:  make([]Entry[T], len(items)),
		Lightbox: ctrl.View(path, base),
	}
	for i, rec := range items {
		p.Entries[i] = Entry[T]{Record: rec, Index: i, Href: lightbox.Href(path, base, i)}
	}
	if ctrl.IsOpen() {
		cur := p.Entries[ctrl.Index()]
		p.Current = &cur
	}
	p.ScrollLocked = lock.Locked()

	p.AllTags = Pill{
		Value:  catalog.AllTags,
		Count:  c.Facets(catalog.FilterState{Category: state.Category}).Matched,
		Active: state.Tag == "",
		Href:   href(path, catalog.FilterState{Category: state.Category}),
	}
	for _, f := range facets.Tags {
		next := catalog.FilterState{Tag: f.Value, Category: state.Category}
		if f.Active {
			next.Tag = ""
		}
		p.Tags = append(p.Tags, Pill{Value: f.Value, Count: f.Count, Active: f.Active, Href: href(path, next)})
	}
	p.AllCats = Pill{
		Count:  c.Facets(catalog.FilterState{Tag: state.Tag}).Matched,
		Active: state.Category == "",
		Href:   href(path, catalog.FilterState{Tag: state.Tag}),
	}
	for _, f := range facets.Categories {
		next := catalog.FilterState{Tag: state.Tag, Category: f.Value}
		if f.Active {
			next.Category = ""
		}
		p.Categories = append(p.Categories, Pill{Value: f.Value, Count: f.Count, Active: f.Active, Href: href(path, next)})
	}
	return p
}

func href(path string, s catalog.FilterState) string {
	if enc := s.Values().Encode(); enc != "" {
		return path + "?" + enc
	}
	return path
}
