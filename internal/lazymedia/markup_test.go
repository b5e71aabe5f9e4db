package lazymedia

import (
	"strings"
	"testing"

	"github.com/PuerkitoBio/goquery"
	"github.com/stretchr/testify/require"
)

func parse(t *testing.T, html string) *goquery.Document {
	t.Helper()
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	require.NoError(t, err)
	return doc
}

func TestDirectiveDefersLoading(t *testing.T) {
	out, err := Directive(Target{ID: "g06", Src: "/assets/video/a.mp4", Poster: "/p.jpg", Kind: KindVideo, Autoplay: true, Muted: true}, DirectiveOptions{})
	require.NoError(t, err)
	doc := parse(t, string(out))

	ph := doc.Find("#lazy-g06")
	require.Equal(t, 1, ph.Length())
	require.Equal(t, "/media/g06", ph.AttrOr("hx-get", ""))
	require.Equal(t, "load-visible once, load-eager once", ph.AttrOr("hx-trigger", ""))
	require.Equal(t, DefaultMargin, ph.AttrOr("data-root-margin", ""))
	require.Equal(t, "outerHTML", ph.AttrOr("hx-swap", ""))
	require.Contains(t, string(out), "<noscript>")
}

func TestElementAutoplayRequiresMuted(t *testing.T) {
	out, err := Element(Target{ID: "v", Src: "/v.mp4", Kind: KindVideo, Autoplay: true, Muted: false})
	require.NoError(t, err)
	v := parse(t, string(out)).Find("video")
	_, autoplay := v.Attr("autoplay")
	_, controls := v.Attr("controls")
	require.False(t, autoplay)
	require.True(t, controls)

	out, err = Element(Target{ID: "v", Src: "/v.mp4", Kind: KindVideo, Autoplay: true, Muted: true, Loop: true})
	require.NoError(t, err)
	v = parse(t, string(out)).Find("video")
	_, autoplay = v.Attr("autoplay")
	_, muted := v.Attr("muted")
	require.True(t, autoplay)
	require.True(t, muted)
}

func TestElementImage(t *testing.T) {
	out, err := Element(Target{ID: "g01", Src: "/a.jpg", Alt: "Pool at dusk", Kind: KindImage, Width: 1600, Height: 1067})
	require.NoError(t, err)
	img := parse(t, string(out)).Find("img#media-g01")
	require.Equal(t, "Pool at dusk", img.AttrOr("alt", ""))
	require.Equal(t, "1600", img.AttrOr("width", ""))
}

func TestDirectiveCustomMargin(t *testing.T) {
	out, err := Directive(Target{ID: "g01", Src: "/a.jpg", Kind: KindImage}, DirectiveOptions{Margin: "400px 0px"})
	require.NoError(t, err)
	ph := parse(t, string(out)).Find("#lazy-g01")
	require.Equal(t, "400px 0px", ph.AttrOr("data-root-margin", ""))
	require.NotContains(t, ph.AttrOr("hx-trigger", ""), "rootMargin")
}
