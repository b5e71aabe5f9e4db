package nav

import (
	"path"
	"strings"
)

// Item represents a top-level navigation item.
type Item struct {
	Path     string // e.g. "/rooms"
	LabelKey string // i18n key, e.g. "nav.rooms"
}

// RenderedItem is a view model for templates.
type RenderedItem struct {
	Href     string
	LabelKey string
	Active   bool
}

// Crumb represents a breadcrumb entry. If LabelKey is empty, use Label.
type Crumb struct {
	Href     string
	LabelKey string
	Label    string
	Active   bool
}

// Main is the primary navigation definition.
var Main = []Item{
	{Path: "/", LabelKey: "nav.home"},
	{Path: "/rooms", LabelKey: "nav.rooms"},
	{Path: "/gallery", LabelKey: "nav.gallery"},
	{Path: "/menu", LabelKey: "nav.menu"},
	{Path: "/spa", LabelKey: "nav.spa"},
	{Path: "/services", LabelKey: "nav.services"},
	{Path: "/about", LabelKey: "nav.about"},
	{Path: "/contact", LabelKey: "nav.contact"},
}

// Footer lists secondary pages linked from the footer.
var Footer = []Item{
	{Path: "/policies", LabelKey: "nav.policies"},
	{Path: "/privacy", LabelKey: "nav.privacy"},
}

// Build renders navigation items with active state given the current path.
func Build(currentPath string) []RenderedItem {
	return render(Main, currentPath)
}

// BuildFooter renders the footer links.
func BuildFooter(currentPath string) []RenderedItem {
	return render(Footer, currentPath)
}

func render(items []Item, currentPath string) []RenderedItem {
	if currentPath == "" {
		currentPath = "/"
	}
	out := make([]RenderedItem, 0, len(items))
	for _, it := range items {
		out = append(out, RenderedItem{
			Href:     it.Path,
			LabelKey: it.LabelKey,
			Active:   isActive(it.Path, currentPath),
		})
	}
	return out
}

func isActive(itemPath, currentPath string) bool {
	if itemPath == "/" {
		return currentPath == "/"
	}
	// match exact or prefix boundary: "/rooms" or "/rooms/..."
	return currentPath == itemPath || strings.HasPrefix(currentPath, itemPath+"/")
}

// Breadcrumbs builds breadcrumb entries from the current path. Known
// sections use their nav label key; deeper segments use labels, falling
// back to a prettified segment.
func Breadcrumbs(currentPath string, labels map[string]string) []Crumb {
	if currentPath == "" {
		currentPath = "/"
	}
	crumbs := []Crumb{{Href: "/", LabelKey: "nav.home", Active: currentPath == "/"}}
	if currentPath == "/" {
		return crumbs
	}

	clean := path.Clean("/" + strings.TrimPrefix(currentPath, "/"))
	parts := strings.Split(strings.TrimPrefix(clean, "/"), "/")
	href := ""
	for i, seg := range parts {
		if seg == "" {
			continue
		}
		href += "/" + seg
		c := Crumb{Href: href, Label: titleFromSegment(seg), Active: i == len(parts)-1}
		if i == 0 {
			c.LabelKey = labelKeyFor(href)
		}
		if l, ok := labels[seg]; ok && l != "" {
			c.Label = l
			c.LabelKey = ""
		}
		crumbs = append(crumbs, c)
	}
	return crumbs
}

func labelKeyFor(href string) string {
	for _, group := range [][]Item{Main, Footer} {
		for _, it := range group {
			if it.Path == href {
				return it.LabelKey
			}
		}
	}
	return ""
}

func titleFromSegment(seg string) string {
	if seg == "" {
		return seg
	}
	s := strings.NewReplacer("-", " ", "_", " ").Replace(seg)
	return strings.ToUpper(s[:1]) + s[1:]
}
