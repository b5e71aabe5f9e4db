// Package content serves the long-form pages (about, policies, privacy)
// written as markdown files with YAML front matter.
package content

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"html/template"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/microcosm-cc/bluemonday"
	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/parser"
	gmhtml "github.com/yuin/goldmark/renderer/html"
	"golang.org/x/net/html"
	"gopkg.in/yaml.v3"
)

// ErrNotFound is returned when no page exists for a slug in any language.
var ErrNotFound = errors.New("content: not found")

const (
	defaultDir      = "content"
	defaultLang     = "en"
	defaultCacheTTL = 5 * time.Minute
	summaryLimit    = 160
)

// Page is a rendered long-form page.
type Page struct {
	Slug      string
	Lang      string
	Title     string
	Summary   string
	Body      template.HTML
	Hero      string
	UpdatedAt time.Time
	SEO       SEO
}

// SEO holds optional metadata overrides.
type SEO struct {
	Title       string
	Description string
	OGImage     string
}

type frontMatter struct {
	Title     string `yaml:"title"`
	Summary   string `yaml:"summary"`
	Lang      string `yaml:"lang"`
	Hero      string `yaml:"hero"`
	UpdatedAt string `yaml:"updated_at"`
	SEO       struct {
		Title       string `yaml:"title"`
		Description string `yaml:"description"`
		OGImage     string `yaml:"og_image"`
	} `yaml:"seo"`
}

type cacheEntry struct {
	page    Page
	expires time.Time
}

// Store reads pages from <dir>/pages/<lang>/<slug>.md and caches the
// rendered result.
type Store struct {
	dir      string
	fallback string
	ttl      time.Duration
	md       goldmark.Markdown
	policy   *bluemonday.Policy
	now      func() time.Time

	mu    sync.RWMutex
	cache map[string]cacheEntry
}

// Option configures a Store.
type Option func(*Store)

// WithCacheTTL overrides how long rendered pages are kept. Zero disables
// caching, which dev mode uses to pick up edits.
func WithCacheTTL(d time.Duration) Option {
	return func(s *Store) { s.ttl = d }
}

// WithFallbackLang sets the language tried when a page is missing in the
// requested one.
func WithFallbackLang(lang string) Option {
	return func(s *Store) {
		if lang = normalizeLang(lang); lang != "" {
			s.fallback = lang
		}
	}
}

// NewStore returns a store rooted at dir.
func NewStore(dir string, opts ...Option) *Store {
	dir = strings.TrimSpace(dir)
	if dir == "" {
		dir = defaultDir
	}
	s := &Store{
		dir:      dir,
		fallback: defaultLang,
		ttl:      defaultCacheTTL,
		md: goldmark.New(
			goldmark.WithExtensions(extension.GFM, extension.Typographer),
			goldmark.WithParserOptions(parser.WithAutoHeadingID()),
			goldmark.WithRendererOptions(gmhtml.WithUnsafe()),
		),
		policy: newPolicy(),
		now:    time.Now,
		cache:  map[string]cacheEntry{},
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Dir returns the root directory.
func (s *Store) Dir() string { return s.dir }

func newPolicy() *bluemonday.Policy {
	policy := bluemonday.UGCPolicy()
	policy.AllowElements("figure", "figcaption")
	policy.AllowAttrs("class").OnElements("figure", "figcaption", "p", "span", "table")
	policy.AllowAttrs("id").OnElements("h2", "h3", "h4")
	policy.AllowAttrs("loading").OnElements("img")
	policy.RequireNoFollowOnLinks(true)
	return policy
}

// Get returns the page for slug in lang, falling back to the store's
// fallback language.
func (s *Store) Get(ctx context.Context, slug, lang string) (Page, error) {
	slug = sanitizeSlug(slug)
	if slug == "" {
		return Page{}, ErrNotFound
	}
	lang = normalizeLang(lang)
	if lang == "" {
		lang = s.fallback
	}

	key := lang + "|" + slug
	if page, ok := s.cached(key); ok {
		return page, nil
	}

	priority := []string{lang}
	if lang != s.fallback {
		priority = append(priority, s.fallback)
	}
	for _, candidate := range priority {
		if err := ctx.Err(); err != nil {
			return Page{}, err
		}
		page, err := s.read(slug, candidate)
		if errors.Is(err, ErrNotFound) {
			continue
		}
		if err != nil {
			return Page{}, err
		}
		s.store(key, page)
		return page, nil
	}
	return Page{}, ErrNotFound
}

// Slugs lists the pages available in lang, for the sitemap.
func (s *Store) Slugs(lang string) ([]string, error) {
	entries, err := os.ReadDir(filepath.Join(s.dir, "pages", normalizeLang(lang)))
	if errors.Is(err, fs.ErrNotExist) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	var out []string
	for _, e := range entries {
		if e.IsDir() || !strings.HasSuffix(e.Name(), ".md") {
			continue
		}
		out = append(out, strings.TrimSuffix(e.Name(), ".md"))
	}
	return out, nil
}

func (s *Store) read(slug, lang string) (Page, error) {
	file := filepath.Join(s.dir, "pages", lang, slug+".md")
	data, err := os.ReadFile(file)
	if errors.Is(err, fs.ErrNotExist) {
		return Page{}, ErrNotFound
	}
	if err != nil {
		return Page{}, err
	}

	fm, body := splitFrontMatter(string(data))
	var front frontMatter
	if strings.TrimSpace(fm) != "" {
		if err := yaml.Unmarshal([]byte(fm), &front); err != nil {
			return Page{}, fmt.Errorf("content: parse front matter %s: %w", file, err)
		}
	}

	var buf bytes.Buffer
	if err := s.md.Convert([]byte(body), &buf); err != nil {
		return Page{}, fmt.Errorf("content: render %s: %w", file, err)
	}
	rendered := s.policy.SanitizeBytes(buf.Bytes())

	page := Page{
		Slug:    slug,
		Lang:    firstNonEmpty(normalizeLang(front.Lang), lang),
		Title:   strings.TrimSpace(front.Title),
		Summary: strings.TrimSpace(front.Summary),
		Body:    template.HTML(rendered),
		Hero:    strings.TrimSpace(front.Hero),
		SEO: SEO{
			Title:       strings.TrimSpace(front.SEO.Title),
			Description: strings.TrimSpace(front.SEO.Description),
			OGImage:     strings.TrimSpace(front.SEO.OGImage),
		},
	}
	if page.Title == "" {
		page.Title = prettifySlug(slug)
	}
	if page.Summary == "" {
		page.Summary = summarize(rendered, summaryLimit)
	}
	page.UpdatedAt = parseDate(front.UpdatedAt)
	if page.UpdatedAt.IsZero() {
		if info, err := os.Stat(file); err == nil {
			page.UpdatedAt = info.ModTime()
		}
	}
	return page, nil
}

func (s *Store) cached(key string) (Page, bool) {
	if s.ttl <= 0 {
		return Page{}, false
	}
	s.mu.RLock()
	entry, ok := s.cache[key]
	s.mu.RUnlock()
	if !ok || s.now().After(entry.expires) {
		return Page{}, false
	}
	return entry.page, true
}

func (s *Store) store(key string, page Page) {
	if s.ttl <= 0 {
		return
	}
	s.mu.Lock()
	s.cache[key] = cacheEntry{page: page, expires: s.now().Add(s.ttl)}
	s.mu.Unlock()
}

// summarize extracts the first paragraph's text, trimmed to limit runes.
func summarize(rendered []byte, limit int) string {
	doc, err := html.Parse(bytes.NewReader(rendered))
	if err != nil {
		return ""
	}
	var p *html.Node
	var find func(*html.Node)
	find = func(n *html.Node) {
		if p != nil {
			return
		}
		if n.Type == html.ElementNode && n.Data == "p" {
			p = n
			return
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			find(c)
		}
	}
	find(doc)
	if p == nil {
		return ""
	}
	var sb strings.Builder
	var text func(*html.Node)
	text = func(n *html.Node) {
		if n.Type == html.TextNode {
			sb.WriteString(n.Data)
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			text(c)
		}
	}
	text(p)
	out := strings.Join(strings.Fields(sb.String()), " ")
	if runes := []rune(out); len(runes) > limit {
		cut := string(runes[:limit])
		if i := strings.LastIndex(cut, " "); i > limit/2 {
			cut = cut[:i]
		}
		out = strings.TrimRight(cut, " ,.;:") + "…"
	}
	return out
}

func splitFrontMatter(input string) (string, string) {
	input = strings.TrimPrefix(input, "\ufeff")
	lines := strings.Split(input, "\n")
	if len(lines) == 0 || strings.TrimSpace(lines[0]) != "---" {
		return "", input
	}
	for i := 1; i < len(lines); i++ {
		if strings.TrimSpace(lines[i]) == "---" {
			fm := strings.Join(lines[1:i], "\n")
			body := strings.Join(lines[i+1:], "\n")
			return fm, strings.TrimLeft(body, "\n\r")
		}
	}
	return "", input
}

func parseDate(v string) time.Time {
	v = strings.TrimSpace(v)
	if v == "" {
		return time.Time{}
	}
	for _, layout := range []string{time.RFC3339, "2006-01-02"} {
		if t, err := time.Parse(layout, v); err == nil {
			return t
		}
	}
	return time.Time{}
}

func prettifySlug(slug string) string {
	parts := strings.Split(slug, "-")
	for i, part := range parts {
		if part == "" {
			continue
		}
		parts[i] = strings.ToUpper(part[:1]) + part[1:]
	}
	return strings.Join(parts, " ")
}

func sanitizeSlug(slug string) string {
	slug = strings.Trim(strings.TrimSpace(strings.ToLower(slug)), "/")
	if slug == "" || strings.Contains(slug, "..") || strings.ContainsAny(slug, `/\`) {
		return ""
	}
	return slug
}

func normalizeLang(lang string) string {
	lang = strings.ToLower(strings.TrimSpace(lang))
	if i := strings.IndexAny(lang, "-_"); i > 0 {
		lang = lang[:i]
	}
	return lang
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if strings.TrimSpace(v) != "" {
			return v
		}
	}
	return ""
}
