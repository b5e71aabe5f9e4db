package lightbox

import (
	"sort"
	"strings"
	"sync"
)

// Key is a DOM KeyboardEvent.key value understood by the overlay.
type Key string

const (
	KeyNext  Key = "ArrowRight"
	KeyPrev  Key = "ArrowLeft"
	KeyClose Key = "Escape"
)

// ParseKey maps a key name, including the legacy "Esc"/"Right"/"Left"
// spellings, to a Key.
func ParseKey(s string) (Key, bool) {
	switch strings.TrimSpace(s) {
	case "ArrowRight", "Right":
		return KeyNext, true
	case "ArrowLeft", "Left":
		return KeyPrev, true
	case "Escape", "Esc":
		return KeyClose, true
	}
	return "", false
}

// KeyBinder attaches a key handler and returns a function detaching it.
type KeyBinder interface {
	Bind(handler func(Key) bool) (unbind func())
}

// Keyboard is a KeyBinder that dispatches keys to every attached handler.
type Keyboard struct {
	mu       sync.Mutex
	next     int
	handlers map[int]func(Key) bool
}

// Bind attaches handler until the returned function is called.
func (k *Keyboard) Bind(handler func(Key) bool) func() {
	k.mu.Lock()
	if k.handlers == nil {
		k.handlers = map[int]func(Key) bool{}
	}
	id := k.next
	k.next++
	k.handlers[id] = handler
	k.mu.Unlock()

	return func() {
		k.mu.Lock()
		delete(k.handlers, id)
		k.mu.Unlock()
	}
}

// Dispatch delivers key to the attached handlers in bind order and reports
// whether any of them handled it.
func (k *Keyboard) Dispatch(key Key) bool {
	k.mu.Lock()
	ids := make([]int, 0, len(k.handlers))
	for id := range k.handlers {
		ids = append(ids, id)
	}
	sort.Ints(ids)
	hs := make([]func(Key) bool, 0, len(ids))
	for _, id := range ids {
		hs = append(hs, k.handlers[id])
	}
	k.mu.Unlock()

	handled := false
	for _, h := range hs {
		if h(key) {
			handled = true
		}
	}
	return handled
}

// Bound returns the number of attached handlers.
func (k *Keyboard) Bound() int {
	k.mu.Lock()
	defer k.mu.Unlock()
	return len(k.handlers)
}
