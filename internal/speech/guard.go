package speech

import (
	"context"
	"sync/atomic"

	"golang.org/x/sync/singleflight"
)

// Opener loads a backend and verifies that its model can be used.
type Opener[T any] func(ctx context.Context) (T, error)

// guard owns a lazily opened backend handle. Concurrent callers that find
// the backend not ready share one open attempt. The state is readable at
// any time, including while an open is in flight.
type guard[T any] struct {
	state  atomic.Int32
	handle atomic.Pointer[T]
	group  singleflight.Group
	open   Opener[T]
}

func newGuard[T any](open Opener[T]) *guard[T] {
	return &guard[T]{open: open}
}

// acquire returns the open handle, attempting one open when the backend is
// not ready yet.
func (g *guard[T]) acquire(ctx context.Context) (T, error) {
	if h := g.handle.Load(); h != nil {
		return *h, nil
	}

	// The attempt is shared, so one caller's cancellation must not fail
	// the others. Backend clients bound the open with their own timeouts.
	v, err, _ := g.group.Do("open", func() (any, error) {
		if h := g.handle.Load(); h != nil {
			return h, nil
		}
		h, err := g.open(context.WithoutCancel(ctx))
		if err != nil {
			g.state.Store(int32(Unavailable))
			return nil, err
		}
		g.handle.Store(&h)
		g.state.Store(int32(Ready))
		return &h, nil
	})
	if err != nil {
		var zero T
		return zero, err
	}
	return *v.(*T), nil
}

func (g *guard[T]) current() State {
	return State(g.state.Load())
}
