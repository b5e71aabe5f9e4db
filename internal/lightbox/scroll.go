package lightbox

import "sync"

// ScrollLock suspends background scrolling. Acquire returns the matching
// release, which must be safe to call more than once.
type ScrollLock interface {
	Acquire() (release func())
}

// Counter is a reference-counted ScrollLock. Scrolling is suspended while at
// least one acquisition is outstanding.
type Counter struct {
	mu      sync.Mutex
	holders int
}

// Acquire takes one reference.
func (c *Counter) Acquire() func() {
	c.mu.Lock()
	c.holders++
	c.mu.Unlock()

	var once sync.Once
	return func() {
		once.Do(func() {
			c.mu.Lock()
			c.holders--
			c.mu.Unlock()
		})
	}
}

// Locked reports whether any acquisition is outstanding.
func (c *Counter) Locked() bool {
	return c.Holders() > 0
}

// Holders returns the number of outstanding acquisitions.
func (c *Counter) Holders() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.holders
}
