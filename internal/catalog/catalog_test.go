package catalog

import (
	"testing"
	"testing/fstest"

	"github.com/stretchr/testify/require"
)

func TestNewRejectsDuplicateAndMissingIDs(t *testing.T) {
	_, err := New("rooms", []Item{{ID: "a"}, {ID: "b"}, {ID: "a"}})
	require.ErrorIs(t, err, ErrDuplicateID)

	_, err = New("rooms", []Item{{ID: "a"}, {ID: "  "}})
	require.ErrorIs(t, err, ErrMissingID)
}

func TestNewCopiesInput(t *testing.T) {
	in := []Item{{ID: "a"}, {ID: "b"}}
	c, err := New("x", in)
	require.NoError(t, err)
	in[0].ID = "changed"

	got, ok := c.Lookup("a")
	require.True(t, ok)
	require.Equal(t, "a", got.ID)

	items := c.Items()
	items[1].ID = "changed"
	require.Equal(t, []string{"a", "b"}, ids(c.Items()))
}

func TestTagsAndCategoriesFirstAppearance(t *testing.T) {
	c, err := New("x", []Item{
		{ID: "1", Tags: []string{"b", "a"}, Category: "Z"},
		{ID: "2", Tags: []string{"a", "c", ""}, Category: ""},
		{ID: "3", Tags: []string{"b"}, Category: "Y"},
	})
	require.NoError(t, err)
	require.Equal(t, []string{"b", "a", "c"}, c.Tags())
	require.Equal(t, []string{"Z", "Y"}, c.Categories())
	require.True(t, c.HasTag("c"))
	require.False(t, c.HasCategory(""))
}

func TestLoadSiteDecodesEmbeddedData(t *testing.T) {
	site, err := LoadSite()
	require.NoError(t, err)
	require.NotZero(t, site.Rooms.Len())
	require.NotZero(t, site.Menu.Len())
	require.NotZero(t, site.Treatments.Len())
	require.NotZero(t, site.Services.Len())

	room, ok := site.Rooms.Lookup("ocean-suite")
	require.True(t, ok)
	require.Equal(t, "Suite", room.Category)
	require.Greater(t, room.PricePerNight, int64(0))
	require.NotEmpty(t, room.Cover().Src)

	var videos int
	for _, g := range site.Gallery.Items() {
		require.NotEmpty(t, g.Src, g.ID)
		if g.IsVideo() {
			videos++
			require.NotEmpty(t, g.Poster, g.ID)
		}
	}
	require.NotZero(t, videos)
}

func TestLoadMissingFileIsEmpty(t *testing.T) {
	c, err := Load[Room](fstest.MapFS{}, "rooms")
	require.NoError(t, err)
	require.Zero(t, c.Len())
	require.Empty(t, c.Filter(FilterState{Tag: "sea-view"}))
}

func TestLoadRejectsDuplicateIDs(t *testing.T) {
	fsys := fstest.MapFS{
		"menu.yaml": {Data: []byte("items:\n  - {id: a, name: One}\n  - {id: a, name: Two}\n")},
	}
	_, err := Load[MenuItem](fsys, "menu")
	require.ErrorIs(t, err, ErrDuplicateID)
}
