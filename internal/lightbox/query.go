package lightbox

import (
	"net/url"
	"strconv"
	"strings"
)

// Query parameters carrying the overlay state of a page view.
const (
	ParamOpen = "open"
	ParamKey  = "key"
)

// FromQuery restores a controller from ?open=<i>, then delivers ?key=<k>
// through a Keyboard the controller binds to while open. An index past the
// end is clamped to the last item; a malformed or negative one leaves the
// controller closed.
func FromQuery(q url.Values, length int, opts ...Option) *Controller {
	kb := &Keyboard{}
	c := New(length, append(append([]Option(nil), opts...), WithKeyBinder(kb))...)

	raw := strings.TrimSpace(q.Get(ParamOpen))
	if raw == "" {
		return c
	}
	i, err := strconv.Atoi(raw)
	if err != nil || i < 0 {
		return c
	}
	if i >= length {
		i = length - 1
	}
	c.Open(i)
	if k, ok := ParseKey(q.Get(ParamKey)); ok {
		kb.Dispatch(k)
	}
	return c
}

// Link is a navigation target inside the overlay.
type Link struct {
	Index  int
	Label  int
	Href   string
	Active bool
}

// View is what templates need to render the overlay chrome.
type View struct {
	Open     bool
	Index    int
	Position int
	Len      int
	Self     string
	Close    string
	Prev     string
	Next     string
	Dots     []Link
}

// Href builds the URL opening item i at path, keeping the other parameters
// of base.
func Href(path string, base url.Values, i int) string {
	q := stripState(base)
	if i >= 0 {
		q.Set(ParamOpen, strconv.Itoa(i))
	}
	if enc := q.Encode(); enc != "" {
		return path + "?" + enc
	}
	return path
}

// View renders the current state into hrefs rooted at path.
func (c *Controller) View(path string, base url.Values) View {
	v := View{Len: c.length, Close: Href(path, base, -1)}
	if !c.state.Open || c.length == 0 {
		v.Index = -1
		v.Self = v.Close
		return v
	}
	i := c.state.Index
	v.Open = true
	v.Index = i
	v.Position = i + 1
	v.Self = Href(path, base, i)
	v.Prev = Href(path, base, (i-1+c.length)%c.length)
	v.Next = Href(path, base, (i+1)%c.length)
	v.Dots = make([]Link, c.length)
	for j := range v.Dots {
		v.Dots[j] = Link{Index: j, Label: j + 1, Href: Href(path, base, j), Active: j == i}
	}
	return v
}

func stripState(base url.Values) url.Values {
	q := url.Values{}
	for k, vs := range base {
		if k == ParamOpen || k == ParamKey {
			continue
		}
		q[k] = append([]string(nil), vs...)
	}
	return q
}
