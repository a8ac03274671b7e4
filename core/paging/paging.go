// Package paging implements the shared infinite-scroll state machine: it
// turns any "fetch page N of size S" operation into a monotonic accumulated
// item sequence with exhaustion tracking and duplicate-request guards.
package paging

import (
	"context"
	"sync"
)

// FetchFunc loads one page. total is the backend's overall item count for the
// current filter.
type FetchFunc[T any] func(ctx context.Context, page, pageSize int) (items []T, total int, err error)

// State is a render-ready snapshot of a Paginator.
type State[T any] struct {
	Items          []T
	Page           int // next page number to request, starts at 1
	PageSize       int
	Total          int
	HasMore        bool
	LoadingInitial bool
	LoadingMore    bool
}

// Paginator folds successive page fetches into an accumulated item sequence.
// At most one fetch is in flight per instance: LoadMore calls issued while
// loading, or once exhausted, are no-ops. A Reset started while an older
// fetch is still in flight wins; the stale completion is discarded.
type Paginator[T any] struct {
	fetch FetchFunc[T]

	mu      sync.Mutex
	state   State[T]
	started bool   // set by the first Reset; LoadMore is a no-op before it
	gen     uint64 // bumped by Reset; stale completions compare against it
}

func NewPaginator[T any](pageSize int, fetch FetchFunc[T]) *Paginator[T] {
	if pageSize < 1 {
		pageSize = 20
	}
	return &Paginator[T]{
		fetch: fetch,
		state: State[T]{Page: 1, PageSize: pageSize, HasMore: true},
	}
}

// State returns a copy of the current state. The Items slice is shared but
// never mutated in place: every successful fold produces a fresh slice.
func (p *Paginator[T]) State() State[T] {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.state
}

// Reset discards accumulated items and loads page 1. Valid from any state.
func (p *Paginator[T]) Reset(ctx context.Context) error {
	p.mu.Lock()
	p.started = true
	p.gen++
	gen := p.gen
	p.state.Items = nil
	p.state.Page = 1
	p.state.Total = 0
	p.state.HasMore = true
	p.state.LoadingInitial = true
	p.state.LoadingMore = false
	page, size := p.state.Page, p.state.PageSize
	p.mu.Unlock()

	items, total, err := p.fetch(ctx, page, size)
	return p.settle(gen, items, total, err)
}

// LoadMore fetches the next page and appends it. It is a no-op (nil error)
// unless the paginator is settled and more items remain.
func (p *Paginator[T]) LoadMore(ctx context.Context) error {
	p.mu.Lock()
	if !p.started || p.state.LoadingInitial || p.state.LoadingMore || !p.state.HasMore {
		p.mu.Unlock()
		return nil
	}
	gen := p.gen
	p.state.LoadingMore = true
	page, size := p.state.Page, p.state.PageSize
	p.mu.Unlock()

	items, total, err := p.fetch(ctx, page, size)
	return p.settle(gen, items, total, err)
}

// settle folds a fetch completion into the state. Completions from before the
// latest Reset are dropped wholesale so stale pages never reappear.
func (p *Paginator[T]) settle(gen uint64, items []T, total int, err error) error {
	p.mu.Lock()
	defer p.mu.Unlock()

	if gen != p.gen {
		return nil
	}

	initial := p.state.LoadingInitial
	p.state.LoadingInitial = false
	p.state.LoadingMore = false

	if err != nil {
		// accumulated state untouched; the caller may retry
		return err
	}

	if initial {
		p.state.Items = items
	} else {
		merged := make([]T, 0, len(p.state.Items)+len(items))
		merged = append(merged, p.state.Items...)
		merged = append(merged, items...)
		p.state.Items = merged
	}
	if len(p.state.Items) > total {
		total = len(p.state.Items)
	}
	p.state.Total = total
	p.state.HasMore = len(p.state.Items) < total
	p.state.Page++
	return nil
}
