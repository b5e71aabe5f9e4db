// Package lazymedia defers fetching heavy media until its element comes near
// the viewport. A Loader waits for the first transition into near-visibility
// reported by an Observer, activates the media exactly once, optionally starts
// muted autoplay, and always releases the observation.
package lazymedia

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"

	"go.uber.org/zap"
)

// DefaultMargin starts loading slightly before the element scrolls into view.
const DefaultMargin = "200px"

// ErrObserverUnavailable is returned by an Observer that cannot watch
// visibility. The Loader then activates immediately.
var ErrObserverUnavailable = errors.New("lazymedia: visibility observer unavailable")

// Kind distinguishes images from videos.
type Kind string

const (
	KindImage Kind = "image"
	KindVideo Kind = "video"
)

// Target is the media element being deferred.
type Target struct {
	ID       string
	Src      string
	Poster   string
	Alt      string
	Kind     Kind
	Width    int
	Height   int
	Autoplay bool
	Muted    bool
	Loop     bool
}

// CanAutoplay reports whether autoplay may be attempted. Autoplay with sound
// is never attempted.
func (t Target) CanAutoplay() bool {
	return t.Kind == KindVideo && t.Autoplay && t.Muted
}

// Visibility is one observation of the target. Visible means the element is
// within the viewport extended by the observation margin.
type Visibility struct {
	Visible bool
}

// Observer reports visibility changes for a target until stop is called or
// ctx ends. The channel may be closed by the observer.
type Observer interface {
	Observe(ctx context.Context, t Target, margin string) (<-chan Visibility, func(), error)
}

// Fetcher activates the media (starts the network fetch).
type Fetcher interface {
	Fetch(ctx context.Context, t Target) error
}

// FetchFunc adapts a function to Fetcher.
type FetchFunc func(ctx context.Context, t Target) error

// Fetch calls f.
func (f FetchFunc) Fetch(ctx context.Context, t Target) error { return f(ctx, t) }

// Player starts playback of activated media.
type Player interface {
	Play(ctx context.Context, t Target) error
}

// PlayFunc adapts a function to Player.
type PlayFunc func(ctx context.Context, t Target) error

// Play calls f.
func (f PlayFunc) Play(ctx context.Context, t Target) error { return f(ctx, t) }

// Loader activates one target at most once.
type Loader struct {
	target   Target
	fetcher  Fetcher
	observer Observer
	player   Player
	margin   string
	logger   *zap.Logger

	once      sync.Once
	activated atomic.Bool
	fetchErr  error
}

// Option configures a Loader.
type Option func(*Loader)

// WithObserver sets the visibility observer. Without one the loader is eager.
func WithObserver(o Observer) Option { return func(l *Loader) { l.observer = o } }

// WithPlayer sets the playback collaborator used for autoplay.
func WithPlayer(p Player) Option { return func(l *Loader) { l.player = p } }

// WithMargin overrides DefaultMargin.
func WithMargin(m string) Option {
	return func(l *Loader) {
		if m != "" {
			l.margin = m
		}
	}
}

// WithLogger sets the logger used for non-fatal playback failures.
func WithLogger(lg *zap.Logger) Option {
	return func(l *Loader) {
		if lg != nil {
			l.logger = lg
		}
	}
}

// New returns a loader for t.
func New(t Target, f Fetcher, opts ...Option) *Loader {
	l := &Loader{target: t, fetcher: f, margin: DefaultMargin, logger: zap.NewNop()}
	for _, opt := range opts {
		opt(l)
	}
	return l
}

// Activated reports whether the fetch has been triggered.
func (l *Loader) Activated() bool { return l.activated.Load() }

// Run observes the target and activates it on the first transition into
// visibility. It returns nil once activated or when the observer closes its
// channel first, and ctx.Err() when ctx ends first. The observation is
// released on every path. Calling Run after activation returns immediately.
func (l *Loader) Run(ctx context.Context) error {
	if l.Activated() {
		return l.activate(ctx)
	}
	if l.observer == nil {
		return l.activate(ctx)
	}
	events, stop, err := l.observer.Observe(ctx, l.target, l.margin)
	if err != nil {
		if !errors.Is(err, ErrObserverUnavailable) {
			l.logger.Warn("lazymedia: observe failed, loading eagerly", zap.String("media_id", l.target.ID), zap.Error(err))
		}
		if stop != nil {
			stop()
		}
		return l.activate(ctx)
	}
	defer stop()

	visible := false
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case v, ok := <-events:
			if !ok {
				return nil
			}
			if v.Visible && !visible {
				return l.activate(ctx)
			}
			visible = v.Visible
		}
	}
}

func (l *Loader) activate(ctx context.Context) error {
	l.once.Do(func() {
		l.activated.Store(true)
		if l.fetcher != nil {
			if err := l.fetcher.Fetch(ctx, l.target); err != nil {
				l.fetchErr = err
				return
			}
		}
		if l.player == nil || !l.target.CanAutoplay() {
			return
		}
		if err := l.player.Play(ctx, l.target); err != nil {
			l.logger.Debug("lazymedia: autoplay rejected", zap.String("media_id", l.target.ID), zap.Error(err))
		}
	})
	return l.fetchErr
}
