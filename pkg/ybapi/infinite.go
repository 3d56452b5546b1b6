package ybapi

import (
	"context"
	"encoding/json"
	"errors"
	"slices"
	"sync"

	"github.com/fivetwenty-io/ybcloud-client/internal/constants"
)

// Page is one fetched page of an infinite query.
type Page struct {
	Cursor    Cursor
	Data      json.RawMessage
	NextToken string
}

// HasNext reports whether another page follows this one.
func (p Page) HasNext() bool {
	return p.NextToken != ""
}

// InfiniteQuery walks a cursor-paginated list one page at a time. Page
// fetches are serialized: a page is never requested before the previous
// one has arrived.
type InfiniteQuery struct {
	client    *QueryClient
	op        *Operation
	params    Params
	key       CacheKey
	paginated bool

	mu       sync.Mutex
	pages    []Page
	fetching bool
	status   QueryStatus
	err      error
}

// newInfiniteQuery fixes the parameters sent with every page, including the
// client's default page size, so that page keys match the requests sent.
func newInfiniteQuery(client *QueryClient, op *Operation, params Params) *InfiniteQuery {
	params = params.Clone()

	if client.pageSize > 0 && slices.Contains(op.queryParams, constants.ParamLimit) && !params.Has(constants.ParamLimit) {
		params = params.With(constants.ParamLimit, client.pageSize)
	}

	return &InfiniteQuery{
		client:    client,
		op:        op,
		params:    params,
		key:       op.Key(FirstPage, params),
		paginated: slices.Contains(op.queryParams, constants.ParamContinuationToken),
	}
}

// Key returns the key of the first page, which identifies the query.
func (q *InfiniteQuery) Key() CacheKey {
	return q.key
}

// FetchNextPage fetches the page after the last one loaded, or the first
// page if none is loaded. It returns ErrPageFetchInProgress while another
// page fetch of this query is outstanding and ErrNoMorePages after the
// last page.
func (q *InfiniteQuery) FetchNextPage(ctx context.Context) (Page, error) {
	q.mu.Lock()

	if q.fetching {
		q.mu.Unlock()

		return Page{}, ErrPageFetchInProgress
	}

	cursor := FirstPage

	if n := len(q.pages); n > 0 {
		last := q.pages[n-1]
		if !last.HasNext() {
			q.mu.Unlock()

			return Page{}, ErrNoMorePages
		}

		cursor = CursorAt(last.NextToken)
	}

	if len(q.pages) > 0 && q.status == StatusSuccess {
		q.status = StatusFetchingNextPage
	} else {
		q.status = StatusLoading
	}

	q.fetching = true
	q.mu.Unlock()

	return q.settle(q.fetchPage(ctx, cursor, false))
}

// Refetch drops the loaded pages and fetches the first page again.
func (q *InfiniteQuery) Refetch(ctx context.Context) (Page, error) {
	q.mu.Lock()

	if q.fetching {
		q.mu.Unlock()

		return Page{}, ErrPageFetchInProgress
	}

	q.pages = nil
	q.status = StatusLoading
	q.fetching = true
	q.mu.Unlock()

	return q.settle(q.fetchPage(ctx, FirstPage, true))
}

// All fetches the remaining pages and returns every loaded page.
func (q *InfiniteQuery) All(ctx context.Context) ([]Page, error) {
	for {
		_, err := q.FetchNextPage(ctx)
		if errors.Is(err, ErrNoMorePages) {
			return q.Pages(), nil
		}

		if err != nil {
			return q.Pages(), err
		}
	}
}

// Pages returns the loaded pages in order.
func (q *InfiniteQuery) Pages() []Page {
	q.mu.Lock()
	defer q.mu.Unlock()

	return slices.Clone(q.pages)
}

// HasNextPage reports whether FetchNextPage can load another page.
func (q *InfiniteQuery) HasNextPage() bool {
	q.mu.Lock()
	defer q.mu.Unlock()

	return len(q.pages) == 0 || q.pages[len(q.pages)-1].HasNext()
}

// Status returns the query status.
func (q *InfiniteQuery) Status() QueryStatus {
	q.mu.Lock()
	defer q.mu.Unlock()

	return q.status
}

// Err returns the error of the last failed page fetch.
func (q *InfiniteQuery) Err() error {
	q.mu.Lock()
	defer q.mu.Unlock()

	return q.err
}

func (q *InfiniteQuery) fetchPage(ctx context.Context, cursor Cursor, force bool) (Page, error) {
	reqParams := q.params

	if !cursor.IsFirst() {
		reqParams = reqParams.With(constants.ParamContinuationToken, cursor.Token())
	}

	data, err := q.client.fetch(ctx, q.op, cursor, q.params, reqParams, force)
	if err != nil {
		return Page{}, err
	}

	page := Page{Cursor: cursor, Data: data}
	if q.paginated {
		page.NextToken = ContinuationToken(data)
	}

	return page, nil
}

func (q *InfiniteQuery) settle(page Page, err error) (Page, error) {
	q.mu.Lock()
	defer q.mu.Unlock()

	q.fetching = false

	if err != nil {
		q.status = StatusError
		q.err = err

		return Page{}, err
	}

	q.pages = append(q.pages, page)
	q.status = StatusSuccess
	q.err = nil

	return page, nil
}
