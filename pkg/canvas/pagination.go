package canvas

import (
	"context"
	"errors"
	"fmt"
)

// ErrNoMoreItems is returned by PaginationIterator.Next after the last item.
var ErrNoMoreItems = errors.New("no more items")

// ErrPaginationLoop is returned when a next link points at a page already visited.
var ErrPaginationLoop = errors.New("pagination loop detected")

// Page is a single page of a Canvas list endpoint. Canvas returns a bare JSON
// array and advertises the following page in the Link header.
type Page[T any] struct {
	Resources []T
	// NextURL is the absolute URL of the rel="next" link, empty on the last page.
	NextURL string
}

// PageFetcher fetches one page. An empty pageURL asks for the first page.
type PageFetcher[T any] func(ctx context.Context, pageURL string) (*Page[T], error)

// PaginationIterator walks every item of a paginated list in server order.
type PaginationIterator[T any] struct {
	ctx     context.Context
	fetch   PageFetcher[T]
	items   []T
	index   int
	nextURL string
	started bool
	visited map[string]struct{}
}

// NewPaginationIterator creates an iterator that lazily fetches pages.
func NewPaginationIterator[T any](ctx context.Context, fetch PageFetcher[T]) *PaginationIterator[T] {
	return &PaginationIterator[T]{
		ctx:     ctx,
		fetch:   fetch,
		visited: make(map[string]struct{}),
	}
}

// HasNext reports whether Next may return another item.
func (it *PaginationIterator[T]) HasNext() bool {
	if !it.started {
		return true
	}

	return it.index < len(it.items) || it.nextURL != ""
}

// Next returns the next item, fetching the following page when needed.
func (it *PaginationIterator[T]) Next() (T, error) {
	var zero T

	for it.index >= len(it.items) {
		if it.started && it.nextURL == "" {
			return zero, ErrNoMoreItems
		}

		err := it.fetchPage()
		if err != nil {
			return zero, err
		}
	}

	item := it.items[it.index]
	it.index++

	return item, nil
}

// All drains the iterator.
func (it *PaginationIterator[T]) All() ([]T, error) {
	var all []T

	for it.HasNext() {
		item, err := it.Next()
		if errors.Is(err, ErrNoMoreItems) {
			break
		}

		if err != nil {
			return nil, err
		}

		all = append(all, item)
	}

	if all == nil {
		all = []T{}
	}

	return all, nil
}

// ForEach calls fn for every item, stopping at the first error.
func (it *PaginationIterator[T]) ForEach(fn func(T) error) error {
	for it.HasNext() {
		item, err := it.Next()
		if errors.Is(err, ErrNoMoreItems) {
			return nil
		}

		if err != nil {
			return err
		}

		err = fn(item)
		if err != nil {
			return err
		}
	}

	return nil
}

func (it *PaginationIterator[T]) fetchPage() error {
	pageURL := it.nextURL

	if pageURL != "" {
		if _, seen := it.visited[pageURL]; seen {
			return fmt.Errorf("%w: %s", ErrPaginationLoop, pageURL)
		}

		it.visited[pageURL] = struct{}{}
	}

	page, err := it.fetch(it.ctx, pageURL)
	if err != nil {
		return err
	}

	it.started = true
	it.items = page.Resources
	it.index = 0
	it.nextURL = page.NextURL

	return nil
}

// FetchAllPages collects every item of a paginated list in server order.
func FetchAllPages[T any](ctx context.Context, fetch PageFetcher[T]) ([]T, error) {
	return NewPaginationIterator(ctx, fetch).All()
}
