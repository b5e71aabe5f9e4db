package lazymedia

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

// scriptedObserver replays events from a goroutine until stopped.
type scriptedObserver struct {
	events  []Visibility
	keep    bool // leave the channel open after the script
	stopped atomic.Int32
	margin  string
	done    chan struct{}
}

func (o *scriptedObserver) Observe(ctx context.Context, _ Target, margin string) (<-chan Visibility, func(), error) {
	o.margin = margin
	ch := make(chan Visibility)
	stop := make(chan struct{})
	o.done = make(chan struct{})
	go func() {
		defer close(o.done)
		if !o.keep {
			defer close(ch)
		}
		for _, ev := range o.events {
			select {
			case ch <- ev:
			case <-stop:
				return
			case <-ctx.Done():
				return
			}
		}
		if o.keep {
			select {
			case <-stop:
			case <-ctx.Done():
			}
		}
	}()
	var once sync.Once
	return ch, func() {
		once.Do(func() {
			o.stopped.Add(1)
			close(stop)
		})
	}, nil
}

type countingFetcher struct {
	calls atomic.Int32
	err   error
}

func (f *countingFetcher) Fetch(context.Context, Target) error {
	f.calls.Add(1)
	return f.err
}

func video(autoplay, muted bool) Target {
	return Target{ID: "g06", Src: "/v.mp4", Kind: KindVideo, Autoplay: autoplay, Muted: muted}
}

func TestRunActivatesOnceOnFirstTransition(t *testing.T) {
	obs := &scriptedObserver{events: []Visibility{{false}, {true}, {false}, {true}}}
	f := &countingFetcher{}
	l := New(video(false, false), f, WithObserver(obs))

	require.NoError(t, l.Run(context.Background()))
	<-obs.done
	require.Equal(t, int32(1), f.calls.Load())
	require.True(t, l.Activated())
	require.Equal(t, int32(1), obs.stopped.Load())
	require.Equal(t, DefaultMargin, obs.margin)

	// a second run neither observes nor fetches again
	require.NoError(t, l.Run(context.Background()))
	require.Equal(t, int32(1), f.calls.Load())
	require.Equal(t, int32(1), obs.stopped.Load())
}

func TestRunWithoutVisibilityNeverFetches(t *testing.T) {
	obs := &scriptedObserver{events: []Visibility{{false}, {false}}}
	f := &countingFetcher{}
	l := New(video(false, false), f, WithObserver(obs), WithMargin("400px"))

	require.NoError(t, l.Run(context.Background()))
	<-obs.done
	require.Zero(t, f.calls.Load())
	require.False(t, l.Activated())
	require.Equal(t, int32(1), obs.stopped.Load())
	require.Equal(t, "400px", obs.margin)
}

func TestRunReleasesObserverOnCancel(t *testing.T) {
	obs := &scriptedObserver{events: []Visibility{{false}}, keep: true}
	f := &countingFetcher{}
	l := New(video(false, false), f, WithObserver(obs))

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()
	err := l.Run(ctx)
	require.ErrorIs(t, err, context.DeadlineExceeded)
	<-obs.done
	require.Zero(t, f.calls.Load())
	require.Equal(t, int32(1), obs.stopped.Load())
}

func TestRunFallsBackToEagerLoading(t *testing.T) {
	f := &countingFetcher{}
	require.NoError(t, New(video(false, false), f).Run(context.Background()))
	require.Equal(t, int32(1), f.calls.Load())

	f = &countingFetcher{}
	require.NoError(t, New(video(false, false), f, WithObserver(Unavailable{})).Run(context.Background()))
	require.Equal(t, int32(1), f.calls.Load())
}

type failingObserver struct{ stopped bool }

func (o *failingObserver) Observe(context.Context, Target, string) (<-chan Visibility, func(), error) {
	return nil, func() { o.stopped = true }, errors.New("boom")
}

func TestRunObserveErrorLoadsEagerly(t *testing.T) {
	core, logs := observer.New(zapcore.WarnLevel)
	obs := &failingObserver{}
	f := &countingFetcher{}
	l := New(video(false, false), f, WithObserver(obs), WithLogger(zap.New(core)))
	require.NoError(t, l.Run(context.Background()))
	require.Equal(t, int32(1), f.calls.Load())
	require.True(t, obs.stopped)
	require.Equal(t, 1, logs.Len())
}

func TestAutoplayOnlyWhenMuted(t *testing.T) {
	var plays atomic.Int32
	player := PlayFunc(func(context.Context, Target) error {
		plays.Add(1)
		return nil
	})

	require.NoError(t, New(video(true, false), &countingFetcher{}, WithPlayer(player)).Run(context.Background()))
	require.Zero(t, plays.Load())

	require.NoError(t, New(video(true, true), &countingFetcher{}, WithPlayer(player)).Run(context.Background()))
	require.Equal(t, int32(1), plays.Load())

	img := Target{ID: "g01", Src: "/a.jpg", Kind: KindImage, Autoplay: true, Muted: true}
	require.NoError(t, New(img, &countingFetcher{}, WithPlayer(player)).Run(context.Background()))
	require.Equal(t, int32(1), plays.Load())
}

func TestAutoplayRejectionIsSwallowed(t *testing.T) {
	core, logs := observer.New(zapcore.DebugLevel)
	player := PlayFunc(func(context.Context, Target) error {
		return errors.New("NotAllowedError")
	})
	l := New(video(true, true), &countingFetcher{}, WithPlayer(player), WithLogger(zap.New(core)))
	require.NoError(t, l.Run(context.Background()))
	require.True(t, l.Activated())
	require.Equal(t, 1, logs.FilterLevelExact(zapcore.DebugLevel).Len())
}

func TestAutoplayAfterFetch(t *testing.T) {
	var order []string
	f := FetchFunc(func(context.Context, Target) error {
		order = append(order, "fetch")
		return nil
	})
	p := PlayFunc(func(context.Context, Target) error {
		order = append(order, "play")
		return nil
	})
	require.NoError(t, New(video(true, true), f, WithPlayer(p), WithObserver(Intersected{})).Run(context.Background()))
	require.Equal(t, []string{"fetch", "play"}, order)
}

func TestFetchErrorIsReturnedAndNotRetried(t *testing.T) {
	f := &countingFetcher{err: errors.New("offline")}
	var plays atomic.Int32
	l := New(video(true, true), f, WithPlayer(PlayFunc(func(context.Context, Target) error {
		plays.Add(1)
		return nil
	})))
	require.EqualError(t, l.Run(context.Background()), "offline")
	require.EqualError(t, l.Run(context.Background()), "offline")
	require.Equal(t, int32(1), f.calls.Load())
	require.Zero(t, plays.Load())
}
