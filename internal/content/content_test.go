package content

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func writePage(t *testing.T, dir, lang, slug, body string) {
	t.Helper()
	p := filepath.Join(dir, "pages", lang)
	require.NoError(t, os.MkdirAll(p, 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(p, slug+".md"), []byte(body), 0o644))
}

func TestGetRendersFrontMatterAndMarkdown(t *testing.T) {
	dir := t.TempDir()
	writePage(t, dir, "en", "about", "---\ntitle: About us\nupdated_at: 2026-03-01\nseo:\n  title: About | Hotel\n---\n## Story\n\nWe opened in **1987**.\n")

	page, err := NewStore(dir).Get(context.Background(), "about", "en")
	require.NoError(t, err)
	require.Equal(t, "About us", page.Title)
	require.Equal(t, "About | Hotel", page.SEO.Title)
	require.Equal(t, "en", page.Lang)
	require.Equal(t, time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC), page.UpdatedAt)
	require.Contains(t, string(page.Body), `<h2 id="story">Story</h2>`)
	require.Contains(t, string(page.Body), "<strong>1987</strong>")
	require.Equal(t, "We opened in 1987.", page.Summary)
}

func TestGetFallsBackToDefaultLanguage(t *testing.T) {
	dir := t.TempDir()
	writePage(t, dir, "en", "policies", "---\ntitle: Policies\n---\nCheck-in from 3 pm.\n")

	page, err := NewStore(dir).Get(context.Background(), "policies", "es-MX")
	require.NoError(t, err)
	require.Equal(t, "en", page.Lang)
	require.Equal(t, "Policies", page.Title)
}

func TestGetPrefersRequestedLanguage(t *testing.T) {
	dir := t.TempDir()
	writePage(t, dir, "en", "about", "---\ntitle: About\n---\nHello.\n")
	writePage(t, dir, "es", "about", "---\ntitle: Nosotros\n---\nHola.\n")

	page, err := NewStore(dir).Get(context.Background(), "about", "es")
	require.NoError(t, err)
	require.Equal(t, "Nosotros", page.Title)
	require.Equal(t, "es", page.Lang)
}

func TestGetSanitizesRawHTML(t *testing.T) {
	dir := t.TempDir()
	writePage(t, dir, "en", "x", "Hi <script>alert(1)</script> [link](https://example.com)\n")

	page, err := NewStore(dir).Get(context.Background(), "x", "en")
	require.NoError(t, err)
	require.NotContains(t, string(page.Body), "<script>")
	require.Contains(t, string(page.Body), `rel="nofollow"`)
	require.Equal(t, "X", page.Title)
}

func TestGetRejectsTraversalAndMissing(t *testing.T) {
	store := NewStore(t.TempDir())
	for _, slug := range []string{"", "../secret", "a/b", "missing"} {
		_, err := store.Get(context.Background(), slug, "en")
		require.ErrorIs(t, err, ErrNotFound, slug)
	}
}

func TestGetCachesUntilTTL(t *testing.T) {
	dir := t.TempDir()
	writePage(t, dir, "en", "about", "---\ntitle: First\n---\nbody\n")
	now := time.Date(2026, 5, 1, 12, 0, 0, 0, time.UTC)
	store := NewStore(dir, WithCacheTTL(time.Minute))
	store.now = func() time.Time { return now }

	page, err := store.Get(context.Background(), "about", "en")
	require.NoError(t, err)
	require.Equal(t, "First", page.Title)

	writePage(t, dir, "en", "about", "---\ntitle: Second\n---\nbody\n")
	page, err = store.Get(context.Background(), "about", "en")
	require.NoError(t, err)
	require.Equal(t, "First", page.Title)

	now = now.Add(2 * time.Minute)
	page, err = store.Get(context.Background(), "about", "en")
	require.NoError(t, err)
	require.Equal(t, "Second", page.Title)
}

func TestSummarizeTruncatesOnWordBoundary(t *testing.T) {
	long := "<p>" + strings.Repeat("sunset terrace ", 30) + "</p>"
	got := summarize([]byte(long), 40)
	require.True(t, strings.HasSuffix(got, "…"))
	require.LessOrEqual(t, len([]rune(got)), 41)
	require.Empty(t, summarize([]byte("<h2>No paragraph</h2>"), 40))
}

func TestSlugsListsMarkdownFiles(t *testing.T) {
	dir := t.TempDir()
	writePage(t, dir, "en", "about", "a")
	writePage(t, dir, "en", "privacy", "b")
	require.NoError(t, os.WriteFile(filepath.Join(dir, "pages", "en", "notes.txt"), []byte("x"), 0o644))

	slugs, err := NewStore(dir).Slugs("en")
	require.NoError(t, err)
	require.Equal(t, []string{"about", "privacy"}, slugs)

	slugs, err = NewStore(dir).Slugs("fr")
	require.NoError(t, err)
	require.Empty(t, slugs)
}

func TestSiteContentLoads(t *testing.T) {
	store := NewStore(filepath.Join("..", "..", "content"))
	for _, slug := range []string{"about", "policies", "privacy"} {
		page, err := store.Get(context.Background(), slug, "en")
		require.NoError(t, err, slug)
		require.NotEmpty(t, page.Title)
		require.NotEmpty(t, page.Summary)
	}
}
