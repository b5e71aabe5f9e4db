// Package catalog holds the fixed, read-only collections rendered by the site
// (rooms, gallery media, menu items, spa treatments, services) and the facet
// filter that derives the visible subset of a collection.
package catalog

import (
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrMissingID is returned when a record has no identifier.
	ErrMissingID = errors.New("catalog: missing id")
	// ErrDuplicateID is returned when two records share an identifier.
	ErrDuplicateID = errors.New("catalog: duplicate id")
)

// Item carries the facet fields shared by every catalog record.
type Item struct {
	ID       string   `yaml:"id"`
	Tags     []string `yaml:"tags"`
	Category string   `yaml:"category"`
}

// Facets returns the facet fields. Records embedding Item inherit it.
func (i Item) Facets() Item { return i }

// HasTag reports whether tag is one of the item's tags (exact match).
func (i Item) HasTag(tag string) bool {
	for _, t := range i.Tags {
		if t == tag {
			return true
		}
	}
	return false
}

// Record is any catalog entry exposing its facet fields.
type Record interface {
	Facets() Item
}

// Catalog is an immutable ordered collection of records.
type Catalog[T Record] struct {
	name       string
	items      []T
	index      map[string]int
	tags       []string
	categories []string
}

// New validates items and freezes them into a catalog. The slice is copied.
func New[T Record](name string, items []T) (*Catalog[T], error) {
	c := &Catalog[T]{
		name:  name,
		items: make([]T, len(items)),
		index: make(map[string]int, len(items)),
	}
	copy(c.items, items)

	seenTag := map[string]struct{}{}
	seenCat := map[string]struct{}{}
	for i, rec := range c.items {
		it := rec.Facets()
		id := strings.TrimSpace(it.ID)
		if id == "" {
			return nil, fmt.Errorf("%s[%d]: %w", name, i, ErrMissingID)
		}
		if prev, ok := c.index[id]; ok {
			return nil, fmt.Errorf("%s: %q at %d and %d: %w", name, id, prev, i, ErrDuplicateID)
		}
		c.index[id] = i
		for _, tag := range it.Tags {
			if _, ok := seenTag[tag]; ok || tag == "" {
				continue
			}
			seenTag[tag] = struct{}{}
			c.tags = append(c.tags, tag)
		}
		if it.Category != "" {
			if _, ok := seenCat[it.Category]; !ok {
				seenCat[it.Category] = struct{}{}
				c.categories = append(c.categories, it.Category)
			}
		}
	}
	return c, nil
}

// Name returns the catalog name, e.g. "gallery".
func (c *Catalog[T]) Name() string { return c.name }

// Len returns the number of records.
func (c *Catalog[T]) Len() int {
	if c == nil {
		return 0
	}
	return len(c.items)
}

// Items returns a copy of all records in catalog order.
func (c *Catalog[T]) Items() []T {
	if c == nil {
		return nil
	}
	out := make([]T, len(c.items))
	copy(out, c.items)
	return out
}

// Lookup finds a record by id.
func (c *Catalog[T]) Lookup(id string) (T, bool) {
	var zero T
	if c == nil {
		return zero, false
	}
	i, ok := c.index[strings.TrimSpace(id)]
	if !ok {
		return zero, false
	}
	return c.items[i], true
}

// Tags lists every tag used in the catalog in first-appearance order.
func (c *Catalog[T]) Tags() []string {
	if c == nil {
		return nil
	}
	return append([]string(nil), c.tags...)
}

// Categories lists every category used in the catalog in first-appearance order.
func (c *Catalog[T]) Categories() []string {
	if c == nil {
		return nil
	}
	return append([]string(nil), c.categories...)
}

// HasTag reports whether any record carries tag.
func (c *Catalog[T]) HasTag(tag string) bool {
	return c != nil && contains(c.tags, tag)
}

// HasCategory reports whether any record belongs to category.
func (c *Catalog[T]) HasCategory(category string) bool {
	return c != nil && contains(c.categories, category)
}

// IndexOf returns the position of id within items, or -1.
func IndexOf[T Record](items []T, id string) int {
	for i, rec := range items {
		if rec.Facets().ID == id {
			return i
		}
	}
	return -1
}

func contains(list []string, v string) bool {
	for _, s := range list {
		if s == v {
			return true
		}
	}
	return false
}
