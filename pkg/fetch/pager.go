package fetch

import (
	"context"
	"sync"
)

// DefaultMaxPages caps how deep an accumulator will page into the catalog.
const DefaultMaxPages = 10

// PageFunc returns one page of items, 1-based.
type PageFunc[T any] func(ctx context.Context, page int) ([]T, error)

// PageState is a snapshot of an accumulator.
type PageState[T any] struct {
	Items     []T
	Page      int
	Exhausted bool
	Err       error
}

// Pager accumulates successive pages of one query shape into a single
// ordered list. Items are appended in arrival order and never de-duplicated;
// upstream catalog ordering is trusted.
type Pager[T any] struct {
	fetch    PageFunc[T]
	maxPages int

	mu        sync.Mutex
	inFlight  bool
	items     []T
	page      int
	exhausted bool
	err       error
}

func NewPager[T any](fetch PageFunc[T]) *Pager[T] {
	return &Pager[T]{fetch: fetch, maxPages: DefaultMaxPages}
}

// SetMaxPages overrides the page ceiling. Call it before the first load.
func (p *Pager[T]) SetMaxPages(n int) {
	if n > 0 {
		p.maxPages = n
	}
}

// LoadFirst discards accumulated state and loads page 1.
func (p *Pager[T]) LoadFirst(ctx context.Context) error {
	p.mu.Lock()
	if p.inFlight {
		p.mu.Unlock()
		return nil
	}
	p.inFlight = true
	p.items = nil
	p.page = 1
	p.exhausted = false
	p.err = nil
	p.mu.Unlock()
	return p.load(ctx, 1, true)
}

// LoadNext fetches the following page and appends it. It is a no-op while a
// fetch is in flight or once the pager is exhausted.
func (p *Pager[T]) LoadNext(ctx context.Context) error {
	p.mu.Lock()
	if p.inFlight || p.exhausted {
		p.mu.Unlock()
		return nil
	}
	if p.page == 0 {
		// LoadNext before LoadFirst starts from the beginning
		p.inFlight = true
		p.items = nil
		p.mu.Unlock()
		return p.load(ctx, 1, true)
	}
	p.inFlight = true
	next := p.page + 1
	p.mu.Unlock()
	return p.load(ctx, next, false)
}

func (p *Pager[T]) load(ctx context.Context, page int, replace bool) error {
	items, err := p.fetch(ctx, page)

	p.mu.Lock()
	defer p.mu.Unlock()
	p.inFlight = false
	if err != nil {
		// accumulated items stay put and exhaustion is untouched, so the
		// caller can retry the same page
		p.err = err
		return err
	}
	p.err = nil
	p.page = page
	if replace {
		p.items = items
	} else {
		p.items = append(p.items, items...)
	}
	if len(items) == 0 || page >= p.maxPages {
		p.exhausted = true
	}
	return nil
}

// State returns a snapshot; the item slice is copied.
func (p *Pager[T]) State() PageState[T] {
	p.mu.Lock()
	defer p.mu.Unlock()
	items := make([]T, len(p.items))
	copy(items, p.items)
	return PageState[T]{Items: items, Page: p.page, Exhausted: p.exhausted, Err: p.err}
}
