// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package query

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"golang.org/x/sync/singleflight"
)

var fetchTotal = promauto.NewCounterVec(prometheus.CounterOpts{
	Name: "quickly_vote_query_fetch_total",
	Help: "Query fetches by query name and outcome.",
}, []string{"query", "outcome"})

// DefaultFetchTimeout bounds a single background fetch
const DefaultFetchTimeout = 10 * time.Second

type FetchFunc[T any] func(ctx context.Context) (T, error)

// Query caches the last value returned by a fetch function.
// Concurrent reads share one in-flight fetch.
type Query[T any] struct {
	name    string
	fetch   FetchFunc[T]
	ttl     time.Duration
	timeout time.Duration

	group singleflight.Group

	mu        sync.RWMutex
	value     T
	hasValue  bool
	fetchedAt time.Time
	gen       uint64 // bumped by Invalidate
	valueGen  uint64 // gen the cached value was fetched under

	subMu sync.Mutex
	subs  map[chan struct{}]struct{}
}

func New[T any](name string, fetch FetchFunc[T], ttl time.Duration) *Query[T] {
	return &Query[T]{
		name:    name,
		fetch:   fetch,
		ttl:     ttl,
		timeout: DefaultFetchTimeout,
		subs:    make(map[chan struct{}]struct{}),
	}
}

// Read returns the cached value while it is fresh. Otherwise it starts (or
// joins) a fetch and waits for it until ctx is done. If ctx ends first, the
// stale value is returned when there is one, else a pending Result.
func (q *Query[T]) Read(ctx context.Context) Result[T] {
	if v, ok := q.fresh(); ok {
		return Ready(v)
	}

	ch := q.group.DoChan(q.name, q.load)
	select {
	case res := <-ch:
		if res.Err != nil {
			return Failed[T](res.Err)
		}
		return Ready(res.Val.(T))
	case <-ctx.Done():
		if v, ok := q.cached(); ok {
			return Ready(v)
		}
		return Pending[T]()
	}
}

// Invalidate marks the cached value stale and notifies subscribers.
// A fetch already in flight is not joined by later reads.
func (q *Query[T]) Invalidate() {
	q.mu.Lock()
	q.gen++
	q.mu.Unlock()
	q.group.Forget(q.name)

	q.subMu.Lock()
	for ch := range q.subs {
		select {
		case ch <- struct{}{}:
		default:
		}
	}
	q.subMu.Unlock()
}

// Subscribe returns a channel signalled after every Invalidate and a
// function that releases it.
func (q *Query[T]) Subscribe() (<-chan struct{}, func()) {
	ch := make(chan struct{}, 1)
	q.subMu.Lock()
	q.subs[ch] = struct{}{}
	q.subMu.Unlock()

	return ch, func() {
		q.subMu.Lock()
		delete(q.subs, ch)
		q.subMu.Unlock()
	}
}

func (q *Query[T]) fresh() (T, bool) {
	q.mu.RLock()
	defer q.mu.RUnlock()
	if q.hasValue && q.valueGen == q.gen && time.Since(q.fetchedAt) < q.ttl {
		return q.value, true
	}
	var zero T
	return zero, false
}

func (q *Query[T]) cached() (T, bool) {
	q.mu.RLock()
	defer q.mu.RUnlock()
	return q.value, q.hasValue
}

// load runs detached from any single caller so that an abandoned read does
// not cancel the fetch other readers are waiting on.
func (q *Query[T]) load() (any, error) {
	q.mu.RLock()
	gen := q.gen
	q.mu.RUnlock()

	ctx, cancel := context.WithTimeout(context.Background(), q.timeout)
	defer cancel()

	start := time.Now()
	v, err := q.fetch(ctx)
	if err != nil {
		fetchTotal.WithLabelValues(q.name, "error").Inc()
		slog.Warn("query fetch failed", "query", q.name, "error", err)
		return nil, err
	}
	fetchTotal.WithLabelValues(q.name, "ok").Inc()

	q.mu.Lock()
	if q.hasValue && q.valueGen > gen {
		// A fetch started after an Invalidate already stored newer data
		v = q.value
		q.mu.Unlock()
		return v, nil
	}
	q.value = v
	q.hasValue = true
	q.fetchedAt = time.Now()
	q.valueGen = gen
	q.mu.Unlock()

	slog.Debug("query fetched", "query", q.name, "duration_ms", time.Since(start).Milliseconds())
	return v, nil
}
