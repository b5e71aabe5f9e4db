package lightbox

import (
	"net/url"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestFromQueryRestoresAndAppliesKey(t *testing.T) {
	q := url.Values{"tag": {"groups"}, "open": {"2"}, "key": {"ArrowRight"}}
	c := FromQuery(q, 5)
	require.Equal(t, State{Open: true, Index: 3}, c.State())

	c = FromQuery(url.Values{"open": {"0"}, "key": {"ArrowLeft"}}, 5)
	require.Equal(t, 4, c.Index())
}

func TestFromQueryEscapeReleasesLock(t *testing.T) {
	lock := &Counter{}
	c := FromQuery(url.Values{"open": {"1"}, "key": {"Escape"}}, 3, WithScrollLock(lock))
	require.False(t, c.IsOpen())
	require.False(t, lock.Locked())
}

func TestFromQueryClampsAndRejects(t *testing.T) {
	c := FromQuery(url.Values{"open": {"9"}}, 4)
	require.Equal(t, State{Open: true, Index: 3}, c.State())

	lock := &Counter{}
	c = FromQuery(url.Values{"open": {"9223372036854775807"}}, 4, WithScrollLock(lock))
	require.Equal(t, State{Open: true, Index: 3}, c.State())
	require.True(t, lock.Locked())

	for _, raw := range []string{"", "x", "-1"} {
		c = FromQuery(url.Values{"open": {raw}}, 4)
		require.False(t, c.IsOpen(), raw)
	}

	lock = &Counter{}
	c = FromQuery(url.Values{"open": {"0"}}, 0, WithScrollLock(lock))
	require.False(t, c.IsOpen())
	require.False(t, lock.Locked())
}

func TestFromQueryIgnoresKeyWhenClosed(t *testing.T) {
	c := FromQuery(url.Values{"key": {"ArrowRight"}}, 3)
	require.False(t, c.IsOpen())
}

func TestViewLinks(t *testing.T) {
	base := url.Values{"category": {"Group Events"}, "open": {"1"}, "key": {"Escape"}}
	c := New(3)
	c.Open(0)
	v := c.View("/gallery", base)

	require.True(t, v.Open)
	require.Equal(t, 1, v.Position)
	require.Equal(t, "/gallery?category=Group+Events&open=0", v.Self)
	require.Equal(t, "/gallery?category=Group+Events&open=2", v.Prev)
	require.Equal(t, "/gallery?category=Group+Events&open=1", v.Next)
	require.Equal(t, "/gallery?category=Group+Events", v.Close)
	require.Len(t, v.Dots, 3)
	require.True(t, v.Dots[0].Active)
	require.Equal(t, 3, v.Dots[2].Label)

	// base was not modified
	require.Equal(t, "1", base.Get("open"))
}

func TestViewClosed(t *testing.T) {
	v := New(3).View("/rooms", nil)
	require.False(t, v.Open)
	require.Equal(t, -1, v.Index)
	require.Equal(t, "/rooms", v.Close)
	require.Empty(t, v.Dots)
}

func TestScenarioFilteredGallery(t *testing.T) {
	// five results remain after filtering; open the third, next twice, escape
	lock := &Counter{}
	kb := &Keyboard{}
	c := New(5, WithScrollLock(lock), WithKeyBinder(kb))
	require.True(t, c.Open(2))
	require.True(t, lock.Locked())
	kb.Dispatch(KeyNext)
	kb.Dispatch(KeyNext)
	require.Equal(t, 4, c.Index())
	kb.Dispatch(KeyClose)
	require.Equal(t, Closed, c.State())
	require.False(t, lock.Locked())

	// with only four results the second next wraps to the first
	c = New(4, WithScrollLock(lock), WithKeyBinder(kb))
	c.Open(2)
	kb.Dispatch(KeyNext)
	kb.Dispatch(KeyNext)
	require.Equal(t, 0, c.Index())
	kb.Dispatch(KeyClose)
	require.False(t, lock.Locked())
}
