package catalog

import (
	"net/url"
	"strings"
)

// AllTags is the tag value meaning "no tag constraint".
const AllTags = "all"

// FilterState is the user's current facet selection. The zero value selects
// everything.
type FilterState struct {
	Tag      string
	Category string
}

// ParseFilterState reads the tag and category query parameters.
func ParseFilterState(q url.Values) FilterState {
	return FilterState{
		Tag:      strings.TrimSpace(q.Get("tag")),
		Category: strings.TrimSpace(q.Get("category")),
	}
}

// IsZero reports whether no constraint is selected.
func (s FilterState) IsZero() bool {
	return (s.Tag == "" || s.Tag == AllTags) && s.Category == ""
}

// Values encodes the state as query parameters, omitting empty constraints.
func (s FilterState) Values() url.Values {
	q := url.Values{}
	if s.Tag != "" && s.Tag != AllTags {
		q.Set("tag", s.Tag)
	}
	if s.Category != "" {
		q.Set("category", s.Category)
	}
	return q
}

// Normalize drops constraints naming values no record carries, so an
// unrecognised selection behaves like "all".
func (c *Catalog[T]) Normalize(s FilterState) FilterState {
	out := FilterState{}
	if s.Tag != "" && s.Tag != AllTags && c.HasTag(s.Tag) {
		out.Tag = s.Tag
	}
	if s.Category != "" && c.HasCategory(s.Category) {
		out.Category = s.Category
	}
	return out
}

// Match reports whether an item satisfies both the tag and the category
// predicate of s. Empty constraints are vacuously true.
func Match(it Item, s FilterState) bool {
	if s.Tag != "" && s.Tag != AllTags && !it.HasTag(s.Tag) {
		return false
	}
	if s.Category != "" && it.Category != s.Category {
		return false
	}
	return true
}

// Filter returns the records matching s in catalog order. The result is a new
// slice; an empty result is not an error.
func (c *Catalog[T]) Filter(s FilterState) []T {
	if c == nil {
		return []T{}
	}
	s = c.Normalize(s)
	out := make([]T, 0, len(c.items))
	for _, rec := range c.items {
		if Match(rec.Facets(), s) {
			out = append(out, rec)
		}
	}
	return out
}
