package i18n

import (
	"os"
	"path/filepath"
	"testing"
)

func TestResolveHonorsQValues(t *testing.T) {
	b, err := Load("../../locales", "en", []string{"en", "es"})
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	got := b.Resolve("en;q=0.8, es;q=0.9")
	if got != "es" {
		t.Fatalf("expected es, got %s", got)
	}
}

func TestResolveRegionalVariants(t *testing.T) {
	b, err := Load("../../locales", "en", []string{"en", "es"})
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	cases := map[string]string{
		"es-MX,es;q=0.9": "es",
		"en-GB":          "en",
		"fr-FR, de":      "en",
		"":               "en",
		"not a header;;": "en",
	}
	for header, want := range cases {
		if got := b.Resolve(header); got != want {
			t.Errorf("Resolve(%q) = %s, want %s", header, got, want)
		}
	}
	if got := b.Match("es-AR"); got != "es" {
		t.Errorf("Match(es-AR) = %q", got)
	}
	if got := b.Match("ja"); got != "" {
		t.Errorf("Match(ja) = %q, want empty", got)
	}
}

func TestTranslateFallsBack(t *testing.T) {
	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, "en.json"), []byte(`{"nav.rooms":"Rooms","only.en":"English only","greet":"Hello %s"}`), 0o644); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(dir, "es.json"), []byte(`{"nav.rooms":"Habitaciones"}`), 0o644); err != nil {
		t.Fatal(err)
	}
	b, err := Load(dir, "en", []string{"en", "es"})
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if got := b.T("es", "nav.rooms"); got != "Habitaciones" {
		t.Errorf("es nav.rooms = %q", got)
	}
	if got := b.T("es", "only.en"); got != "English only" {
		t.Errorf("fallback = %q", got)
	}
	if got := b.T("es", "missing.key"); got != "missing.key" {
		t.Errorf("missing = %q", got)
	}
	if got := b.Tf("en", "greet", "Ana"); got != "Hello Ana" {
		t.Errorf("Tf = %q", got)
	}
}

func TestLoadRequiresFallbackFile(t *testing.T) {
	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, "es.json"), []byte(`{}`), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, err := Load(dir, "en", []string{"en", "es"}); err == nil {
		t.Fatal("expected error without fallback locale file")
	}
	b, err := Load(dir, "es", []string{"es", "fr"})
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if got := b.Supported(); len(got) != 1 || got[0] != "es" {
		t.Fatalf("supported = %v", got)
	}
}
