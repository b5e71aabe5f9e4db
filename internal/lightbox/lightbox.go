// Package lightbox implements the overlay selection controller used by the
// gallery and the other catalog pages: a Closed/Open(i) state machine over the
// currently displayed sequence with cyclic navigation, keyboard bindings that
// exist only while open, and a scroll lock held for the duration of Open.
package lightbox

// State is a snapshot of the controller.
type State struct {
	Open  bool
	Index int
}

// Closed is the initial state.
var Closed = State{}

// Controller tracks which item of a displayed sequence is enlarged. A
// Controller belongs to a single page view and is not safe for concurrent use.
type Controller struct {
	length int
	state  State

	lock    ScrollLock
	keys    KeyBinder
	release func()
	unbind  func()
}

// Option configures a Controller.
type Option func(*Controller)

// WithScrollLock sets the lock acquired while the overlay is open.
func WithScrollLock(l ScrollLock) Option {
	return func(c *Controller) { c.lock = l }
}

// WithKeyBinder sets where key handlers are attached while open.
func WithKeyBinder(b KeyBinder) Option {
	return func(c *Controller) { c.keys = b }
}

// New returns a closed controller over a sequence of the given length.
func New(length int, opts ...Option) *Controller {
	if length < 0 {
		length = 0
	}
	c := &Controller{length: length}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// State returns the current state.
func (c *Controller) State() State { return c.state }

// IsOpen reports whether the overlay is open.
func (c *Controller) IsOpen() bool { return c.state.Open }

// Index returns the focused index, or -1 when closed.
func (c *Controller) Index() int {
	if !c.state.Open {
		return -1
	}
	return c.state.Index
}

// Len returns the length of the displayed sequence.
func (c *Controller) Len() int { return c.length }

// Open focuses item i. It reports false and leaves the state untouched when i
// is out of range, which includes every i on an empty sequence. Opening while
// already open moves the focus like JumpTo.
func (c *Controller) Open(i int) bool {
	if i < 0 || i >= c.length {
		return false
	}
	if c.state.Open {
		c.state.Index = i
		return true
	}
	c.state = State{Open: true, Index: i}
	c.enter()
	return true
}

// Close returns to Closed. Closing a closed controller is a no-op.
func (c *Controller) Close() {
	if !c.state.Open {
		return
	}
	c.state = Closed
	c.leave()
}

// Next moves to the following item, wrapping from last to first.
func (c *Controller) Next() {
	if !c.state.Open || c.length == 0 {
		return
	}
	c.state.Index = (c.state.Index + 1) % c.length
}

// Prev moves to the preceding item, wrapping from first to last.
func (c *Controller) Prev() {
	if !c.state.Open || c.length == 0 {
		return
	}
	c.state.Index = (c.state.Index - 1 + c.length) % c.length
}

// JumpTo focuses item j while open. Invalid j and a closed controller are
// no-ops.
func (c *Controller) JumpTo(j int) bool {
	if !c.state.Open || j < 0 || j >= c.length {
		return false
	}
	c.state.Index = j
	return true
}

// HandleKey applies a key press. Keys are ignored while closed.
func (c *Controller) HandleKey(k Key) bool {
	if !c.state.Open {
		return false
	}
	switch k {
	case KeyNext:
		c.Next()
	case KeyPrev:
		c.Prev()
	case KeyClose:
		c.Close()
	default:
		return false
	}
	return true
}

// Resize records that the displayed sequence now has n items. An open index
// is clamped into [0, n); an empty sequence closes the overlay.
func (c *Controller) Resize(n int) {
	if n < 0 {
		n = 0
	}
	c.length = n
	if !c.state.Open {
		return
	}
	if n == 0 {
		c.Close()
		return
	}
	if c.state.Index >= n {
		c.state.Index = n - 1
	}
}

// Dispose releases everything held by an open controller without changing
// the state. It is the unmount path and may be called more than once.
func (c *Controller) Dispose() {
	c.leave()
}

func (c *Controller) enter() {
	if c.lock != nil {
		c.release = c.lock.Acquire()
	}
	if c.keys != nil {
		c.unbind = c.keys.Bind(c.HandleKey)
	}
}

func (c *Controller) leave() {
	if c.unbind != nil {
		c.unbind()
		c.unbind = nil
	}
	if c.release != nil {
		c.release()
		c.release = nil
	}
}
