package media

import (
	"net/url"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestClampQuality(t *testing.T) {
	require.Equal(t, 30, ClampQuality(5))
	require.Equal(t, 100, ClampQuality(180))
	require.Equal(t, 64, ClampQuality(64))
}

func TestQualityDefaultsPerCallSite(t *testing.T) {
	var o Options
	require.Equal(t, 75, o.QualityOr(CardQuality))
	require.Equal(t, 80, o.QualityOr(HeroQuality))
	o.Quality = 10
	require.Equal(t, 30, o.QualityOr(HeroQuality))
	o.Quality = 90
	require.Equal(t, 90, o.QualityOr(CardQuality))
}

func TestURLPlainWhenDisabled(t *testing.T) {
	o := Options{Quality: 50}
	require.Equal(t, "/assets/img/a.jpg", o.Card("/assets/img/a.jpg", 800))
	require.Empty(t, o.SrcSet("/assets/img/a.jpg", CardQuality, 400, 800))
}

func TestURLOptimised(t *testing.T) {
	o := Options{Optimize: true}
	got := o.Hero("/assets/img/hero.jpg", 1600)
	u, err := url.Parse(got)
	require.NoError(t, err)
	require.Equal(t, Endpoint, u.Path)
	require.Equal(t, "/assets/img/hero.jpg", u.Query().Get("src"))
	require.Equal(t, "1600", u.Query().Get("w"))
	require.Equal(t, "80", u.Query().Get("q"))

	require.Equal(t, "https://cdn.example.com/a.jpg", o.Card("https://cdn.example.com/a.jpg", 400))
	require.Contains(t, o.SrcSet("/a.jpg", CardQuality, 400, 800), "800w")
}
