package ybapi

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"
	"time"
)

// QueryStatus is the lifecycle state of a cached query.
type QueryStatus int

const (
	StatusIdle QueryStatus = iota
	StatusLoading
	StatusSuccess
	StatusError
	StatusFetchingNextPage
)

// String returns the status name.
func (s QueryStatus) String() string {
	switch s {
	case StatusIdle:
		return "idle"
	case StatusLoading:
		return "loading"
	case StatusSuccess:
		return "success"
	case StatusError:
		return "error"
	case StatusFetchingNextPage:
		return "fetching_next_page"
	default:
		return fmt.Sprintf("QueryStatus(%d)", int(s))
	}
}

// QueryState is a snapshot of one cache entry. Data holds the last
// successful payload and survives later loading or error states.
type QueryState struct {
	Status    QueryStatus
	Data      json.RawMessage
	Err       error
	UpdatedAt time.Time
}

// Observer is notified with the new state on every transition of a key.
type Observer func(key CacheKey, state QueryState)

// call is one outstanding transport call shared by every caller of a key.
type call struct {
	done chan struct{}
	data json.RawMessage
	err  error
}

type observerSlot struct {
	id int
	fn Observer
}

type queryEntry struct {
	state      QueryState
	generation uint64
	call       *call
	observers  []observerSlot
}

func (e *queryEntry) observerFuncs() []Observer {
	if len(e.observers) == 0 {
		return nil
	}

	fns := make([]Observer, len(e.observers))
	for i, slot := range e.observers {
		fns[i] = slot.fn
	}

	return fns
}

// QueryClient caches read results by CacheKey and coalesces concurrent
// fetches of the same key into one transport call.
type QueryClient struct {
	transport Transport
	cache     Cache
	staleTime time.Duration
	pageSize  int
	logger    Logger
	telemetry *telemetry

	mu         sync.Mutex
	entries    map[CacheKey]*queryEntry
	infinite   map[CacheKey]*InfiniteQuery
	observerID int
}

// NewQueryClient creates a query client over transport.
func NewQueryClient(transport Transport, opts ...Option) (*QueryClient, error) {
	if transport == nil {
		return nil, ErrTransportRequired
	}

	o := newOptions(opts)

	return &QueryClient{
		transport: transport,
		cache:     o.cache,
		staleTime: o.staleTime,
		pageSize:  o.pageSize,
		logger:    o.logger,
		telemetry: newTelemetry(o.meterProvider, o.tracerProvider),
		entries:   make(map[CacheKey]*queryEntry),
		infinite:  make(map[CacheKey]*InfiniteQuery),
	}, nil
}

// Fetch returns the payload for op with params. A fresh cached result is
// returned without a transport call; otherwise the caller joins the
// outstanding call for the key or starts one. Construction errors are
// returned before any state changes.
func (c *QueryClient) Fetch(ctx context.Context, op *Operation, params Params) (json.RawMessage, error) {
	return c.fetch(ctx, op, FirstPage, params, params, false)
}

// Refetch ignores any fresh cached result and re-issues the request, still
// joining a call that is already outstanding for the key.
func (c *QueryClient) Refetch(ctx context.Context, op *Operation, params Params) (json.RawMessage, error) {
	return c.fetch(ctx, op, FirstPage, params, params, true)
}

// fetch keys the entry with keyParams and sends reqParams, which differ for
// pages beyond the first of an infinite query.
func (c *QueryClient) fetch(
	ctx context.Context, op *Operation, cursor Cursor, keyParams, reqParams Params, force bool,
) (json.RawMessage, error) {
	req, err := op.Build(reqParams)
	if err != nil {
		return nil, err
	}

	key := op.Key(cursor, keyParams)

	if !force {
		data, ok := c.fresh(ctx, key)
		if ok {
			c.telemetry.recordFetch(ctx, op.Name(), outcomeCacheHit)

			return data, nil
		}
	}

	c.mu.Lock()

	entry := c.entryLocked(key)
	if entry.call != nil {
		inflight := entry.call
		c.mu.Unlock()

		c.logger.Debug("Joining in-flight query", map[string]interface{}{
			"operation": op.Name(),
			"key":       key.String(),
		})
		c.telemetry.recordFetch(ctx, op.Name(), outcomeDeduplicated)

		return wait(ctx, inflight)
	}

	inflight := &call{done: make(chan struct{})}
	entry.call = inflight
	entry.state.Status = StatusLoading
	entry.state.Err = nil
	state := entry.state
	observers := entry.observerFuncs()

	c.mu.Unlock()

	notify(observers, key, state)
	c.telemetry.recordFetch(ctx, op.Name(), outcomeNetwork)

	go c.run(context.WithoutCancel(ctx), key, req, inflight)

	return wait(ctx, inflight)
}

func wait(ctx context.Context, inflight *call) (json.RawMessage, error) {
	select {
	case <-inflight.done:
		return inflight.data, inflight.err
	case <-ctx.Done():
		return nil, ctx.Err()
	}
}

// run performs the transport call and settles the entry, unless the entry
// was invalidated or removed while the call was outstanding. The cache write
// happens under the lock so that a discarded result never reaches the cache.
func (c *QueryClient) run(ctx context.Context, key CacheKey, req *Request, inflight *call) {
	defer close(inflight.done)

	data, err := c.telemetry.execute(ctx, c.transport, req)
	inflight.data, inflight.err = data, err

	now := time.Now()

	c.mu.Lock()

	entry, ok := c.entries[key]
	applied := ok && entry.call == inflight

	var (
		state     QueryState
		observers []Observer
		setErr    error
	)

	if applied {
		if err == nil && c.staleTime > 0 {
			setErr = c.cache.Set(ctx, key.Hash(), &CacheEntry{
				Key:       key.String(),
				Data:      data,
				StoredAt:  now,
				ExpiresAt: now.Add(c.staleTime),
			})
		}

		entry.call = nil
		entry.state.UpdatedAt = now

		if err != nil {
			entry.state.Status = StatusError
			entry.state.Err = err
		} else {
			entry.state.Status = StatusSuccess
			entry.state.Data = data
			entry.state.Err = nil
		}

		state = entry.state
		observers = entry.observerFuncs()
	}

	c.mu.Unlock()

	if !applied {
		c.logger.Debug("Discarding result for invalidated query", map[string]interface{}{
			"operation": req.Operation,
			"key":       key.String(),
		})

		return
	}

	if setErr != nil {
		c.logger.Warn("Failed to store query result", map[string]interface{}{
			"key":   key.String(),
			"error": setErr.Error(),
		})
	}

	if err != nil {
		c.logger.Error("Query failed", map[string]interface{}{
			"operation": req.Operation,
			"path":      req.Path,
			"error":     err.Error(),
		})
	}

	notify(observers, key, state)
}

// fresh returns a cached payload still within the stale time.
func (c *QueryClient) fresh(ctx context.Context, key CacheKey) (json.RawMessage, bool) {
	if c.staleTime <= 0 {
		return nil, false
	}

	c.mu.Lock()
	generation := uint64(0)

	if entry, ok := c.entries[key]; ok {
		if entry.call != nil {
			c.mu.Unlock()

			return nil, false
		}

		generation = entry.generation
	}
	c.mu.Unlock()

	cached, err := c.cache.Get(ctx, key.Hash())
	if err != nil {
		return nil, false
	}

	c.mu.Lock()

	entry := c.entryLocked(key)
	if entry.generation != generation || entry.call != nil {
		c.mu.Unlock()

		return nil, false
	}

	var observers []Observer

	if entry.state.Status != StatusSuccess {
		entry.state = QueryState{Status: StatusSuccess, Data: cached.Data, UpdatedAt: cached.StoredAt}
		observers = entry.observerFuncs()
	}

	state := entry.state
	c.mu.Unlock()

	notify(observers, key, state)

	return cached.Data, true
}

func (c *QueryClient) entryLocked(key CacheKey) *queryEntry {
	entry, ok := c.entries[key]
	if !ok {
		entry = &queryEntry{}
		c.entries[key] = entry
	}

	return entry
}

// State returns the current state for key.
func (c *QueryClient) State(key CacheKey) (QueryState, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	entry, ok := c.entries[key]
	if !ok {
		return QueryState{}, false
	}

	return entry.state, true
}

// Invalidate marks key idle and drops its cached copy. The last payload stays
// in the state. A result still outstanding for key is delivered to its
// callers but not applied.
func (c *QueryClient) Invalidate(ctx context.Context, key CacheKey) error {
	c.mu.Lock()

	entry, ok := c.entries[key]

	var observers []Observer

	if ok {
		c.resetLocked(entry)
		observers = entry.observerFuncs()
	}

	state := QueryState{}
	if ok {
		state = entry.state
	}

	c.mu.Unlock()

	notify(observers, key, state)

	err := c.cache.Delete(ctx, key.Hash())
	if err != nil {
		return fmt.Errorf("invalidating %s: %w", key, err)
	}

	return nil
}

// InvalidateResource invalidates every key with the given resource tag and
// forgets the infinite queries of that resource.
func (c *QueryClient) InvalidateResource(ctx context.Context, resource string) error {
	c.mu.Lock()

	keys := make([]CacheKey, 0)

	for key := range c.entries {
		if key.Resource == resource {
			keys = append(keys, key)
		}
	}

	for key := range c.infinite {
		if key.Resource == resource {
			delete(c.infinite, key)
		}
	}

	c.mu.Unlock()

	for _, key := range keys {
		err := c.Invalidate(ctx, key)
		if err != nil {
			return err
		}
	}

	return nil
}

// Remove forgets key. Observers stay subscribed and see an idle state.
func (c *QueryClient) Remove(ctx context.Context, key CacheKey) error {
	c.mu.Lock()

	entry, ok := c.entries[key]

	var observers []Observer

	if ok {
		c.resetLocked(entry)
		entry.state = QueryState{}

		if len(entry.observers) == 0 {
			delete(c.entries, key)
		}

		observers = entry.observerFuncs()
	}

	delete(c.infinite, key)
	c.mu.Unlock()

	notify(observers, key, QueryState{})

	err := c.cache.Delete(ctx, key.Hash())
	if err != nil {
		return fmt.Errorf("removing %s: %w", key, err)
	}

	return nil
}

// Clear forgets every key and empties the cache backend.
func (c *QueryClient) Clear(ctx context.Context) error {
	c.mu.Lock()

	type pending struct {
		key       CacheKey
		observers []Observer
	}

	notifications := make([]pending, 0)

	for key, entry := range c.entries {
		c.resetLocked(entry)
		entry.state = QueryState{}

		if len(entry.observers) == 0 {
			delete(c.entries, key)

			continue
		}

		notifications = append(notifications, pending{key: key, observers: entry.observerFuncs()})
	}

	c.infinite = make(map[CacheKey]*InfiniteQuery)
	c.mu.Unlock()

	for _, n := range notifications {
		notify(n.observers, n.key, QueryState{})
	}

	err := c.cache.Clear(ctx)
	if err != nil {
		return fmt.Errorf("clearing query cache: %w", err)
	}

	return nil
}

func (c *QueryClient) resetLocked(entry *queryEntry) {
	entry.generation++
	entry.call = nil
	entry.state.Status = StatusIdle
	entry.state.Err = nil
}

// Subscribe registers fn for transitions of key and returns a function that
// removes it.
func (c *QueryClient) Subscribe(key CacheKey, fn Observer) func() {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.observerID++
	id := c.observerID

	entry := c.entryLocked(key)
	entry.observers = append(entry.observers, observerSlot{id: id, fn: fn})

	return func() {
		c.mu.Lock()
		defer c.mu.Unlock()

		entry, ok := c.entries[key]
		if !ok {
			return
		}

		for i, slot := range entry.observers {
			if slot.id == id {
				entry.observers = append(entry.observers[:i], entry.observers[i+1:]...)

				break
			}
		}
	}
}

// Infinite returns the paginated query for op and params. Repeated calls
// with the same identity return the same query.
func (c *QueryClient) Infinite(op *Operation, params Params) *InfiniteQuery {
	candidate := newInfiniteQuery(c, op, params)

	c.mu.Lock()
	defer c.mu.Unlock()

	query, ok := c.infinite[candidate.key]
	if !ok {
		query = candidate
		c.infinite[candidate.key] = query
	}

	return query
}

// Paginate walks every page of op with params and returns them in order.
// The walk is private to the caller; each page fetch still joins a call
// already outstanding for its key.
func (c *QueryClient) Paginate(ctx context.Context, op *Operation, params Params) ([]Page, error) {
	query := newInfiniteQuery(c, op, params)

	return query.All(ctx)
}

func notify(observers []Observer, key CacheKey, state QueryState) {
	for _, fn := range observers {
		fn(key, state)
	}
}
