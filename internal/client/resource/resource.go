// Package resource is the state container behind every read-only screen:
// given parameters it fetches once, tracks loading and error, and refetches
// only when the parameters change.
//
// Each Load takes a generation number. A fetch may only commit its result
// while its generation is still the newest, so a slow response for old
// parameters can never overwrite the state of newer ones.
package resource

import (
	"context"
	"errors"
	"sync"
)

// ErrSuperseded is returned by Load when newer parameters were requested
// while the fetch was in flight; its result was discarded.
var ErrSuperseded = errors.New("superseded by a newer request")

// Fetcher loads T for params.
type Fetcher[P comparable, T any] func(ctx context.Context, params P) (T, error)

// State is a snapshot of a Resource. After a settled fetch exactly one of
// HasData and Err is set.
type State[P comparable, T any] struct {
	Params  P
	Data    T
	HasData bool
	Loading bool
	Err     error
}

type Resource[P comparable, T any] struct {
	mu      sync.Mutex
	fetch   Fetcher[P, T]
	state   State[P, T]
	gen     uint64
	started bool
}

func New[P comparable, T any](fetch Fetcher[P, T]) *Resource[P, T] {
	return &Resource[P, T]{fetch: fetch}
}

// State returns the current snapshot.
func (r *Resource[P, T]) State() State[P, T] {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.state
}

// Load makes params current and fetches for them, unless they already are
// current, in which case the existing state is returned without a request.
func (r *Resource[P, T]) Load(ctx context.Context, params P) (State[P, T], error) {
	r.mu.Lock()
	if r.started && r.state.Params == params {
		s := r.state
		r.mu.Unlock()
		return s, s.Err
	}
	return r.begin(ctx, params)
}

// Reload refetches the current parameters.
func (r *Resource[P, T]) Reload(ctx context.Context) (State[P, T], error) {
	r.mu.Lock()
	return r.begin(ctx, r.state.Params)
}

// begin must be called with r.mu held; it releases it.
func (r *Resource[P, T]) begin(ctx context.Context, params P) (State[P, T], error) {
	r.started = true
	r.gen++
	gen := r.gen
	r.state.Params = params
	r.state.Loading = true
	r.state.Err = nil
	r.mu.Unlock()

	data, err := r.fetch(ctx, params)

	r.mu.Lock()
	defer r.mu.Unlock()

	if gen != r.gen {
		return r.state, ErrSuperseded
	}

	r.state.Loading = false
	if err != nil {
		var zero T
		r.state.Data = zero
		r.state.HasData = false
		r.state.Err = err
		return r.state, err
	}
	r.state.Data = data
	r.state.HasData = true
	return r.state, nil
}
