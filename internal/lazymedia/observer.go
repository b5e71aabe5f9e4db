package lazymedia

import "context"

// Intersected is the Observer for requests that are themselves the
// intersection notification, such as the load-visible trigger site.js fires. It
// reports a single visible observation.
type Intersected struct{}

// Observe implements Observer.
func (Intersected) Observe(context.Context, Target, string) (<-chan Visibility, func(), error) {
	ch := make(chan Visibility, 1)
	ch <- Visibility{Visible: true}
	close(ch)
	return ch, func() {}, nil
}

// Unavailable is the Observer used when visibility cannot be observed, for
// example when a client announces it has no IntersectionObserver.
type Unavailable struct{}

// Observe implements Observer.
func (Unavailable) Observe(context.Context, Target, string) (<-chan Visibility, func(), error) {
	return nil, nil, ErrObserverUnavailable
}
