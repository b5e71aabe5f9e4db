package catalog

// Facet is one selectable pill with the number of records it would show.
type Facet struct {
	Value  string
	Count  int
	Active bool
}

// FacetSet summarises the selectable tags and categories for a filter state.
type FacetSet struct {
	Tags       []Facet
	Categories []Facet
	Total      int
	Matched    int
}

// Facets counts, for every known tag and category, how many records would
// match if that value were selected while keeping the other constraint.
func (c *Catalog[T]) Facets(s FilterState) FacetSet {
	if c == nil {
		return FacetSet{}
	}
	s = c.Normalize(s)
	set := FacetSet{
		Total:      len(c.items),
		Tags:       make([]Facet, 0, len(c.tags)),
		Categories: make([]Facet, 0, len(c.categories)),
	}
	for _, tag := range c.tags {
		candidate := FilterState{Tag: tag, Category: s.Category}
		set.Tags = append(set.Tags, Facet{Value: tag, Count: c.count(candidate), Active: s.Tag == tag})
	}
	for _, cat := range c.categories {
		candidate := FilterState{Tag: s.Tag, Category: cat}
		set.Categories = append(set.Categories, Facet{Value: cat, Count: c.count(candidate), Active: s.Category == cat})
	}
	set.Matched = c.count(s)
	return set
}

func (c *Catalog[T]) count(s FilterState) int {
	n := 0
	for _, rec := range c.items {
		if Match(rec.Facets(), s) {
			n++
		}
	}
	return n
}
