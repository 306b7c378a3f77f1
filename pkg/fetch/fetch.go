// Package fetch holds the client-side request machinery: a loading-state
// coordinator for single queries, a debouncer for settling text input, and a
// page accumulator for infinite lists.
package fetch

import (
	"context"
	"sync"
)

// QueryFunc loads one value.
type QueryFunc[T any] func(ctx context.Context) (T, error)

// State is a snapshot of one in-progress or settled query.
type State[T any] struct {
	Data    T
	Loading bool
	Err     error
}

// Fetcher tracks loading/error/data for a single asynchronous query and
// supports manual refetch and reset. A changed query is a new logical query:
// construct a new Fetcher rather than swapping the function.
type Fetcher[T any] struct {
	query    QueryFunc[T]
	onChange func(State[T])

	mu    sync.Mutex
	seq   uint64 // latest issued call; older resolutions are discarded
	state State[T]
}

// New builds a Fetcher for query. When immediate is true the first load runs
// on the calling goroutine before New returns.
func New[T any](ctx context.Context, query QueryFunc[T], immediate bool) *Fetcher[T] {
	f := &Fetcher[T]{query: query}
	if immediate {
		f.Refetch(ctx)
	}
	return f
}

// OnChange registers a callback invoked after every state transition. Set it
// before the Fetcher is shared between goroutines.
func (f *Fetcher[T]) OnChange(fn func(State[T])) { f.onChange = fn }

// State returns the current snapshot.
func (f *Fetcher[T]) State() State[T] {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.state
}

// Refetch runs the query, unconditionally, and applies the outcome unless a
// newer Refetch was issued while this one was in flight. On failure the
// error is captured into state and previous data is retained so callers can
// keep rendering it.
func (f *Fetcher[T]) Refetch(ctx context.Context) {
	f.mu.Lock()
	f.seq++
	call := f.seq
	f.state.Loading = true
	f.state.Err = nil
	st := f.state
	f.mu.Unlock()
	f.notify(st)

	data, err := f.query(ctx)

	f.mu.Lock()
	if call != f.seq {
		// a newer call owns the state now
		f.mu.Unlock()
		return
	}
	f.state.Loading = false
	if err != nil {
		f.state.Err = err
	} else {
		f.state.Data = data
		f.state.Err = nil
	}
	st = f.state
	f.mu.Unlock()
	f.notify(st)
}

// Reset clears data and error without invoking the query. Any in-flight
// Refetch resolves without effect.
func (f *Fetcher[T]) Reset() {
	f.mu.Lock()
	f.seq++
	var zero T
	f.state = State[T]{Data: zero}
	st := f.state
	f.mu.Unlock()
	f.notify(st)
}

func (f *Fetcher[T]) notify(st State[T]) {
	if f.onChange != nil {
		f.onChange(st)
	}
}
