// Package configcache serves a configuration value that is fetched from the
// backend, persisted with its fetch time, and refreshed once it is older than
// the freshness window. Reads never fail: a failed fetch keeps the previous
// value (or the default) and says so in the Result.
package configcache

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"time"

	"go-attendance/internal/kvstore"
	"go-attendance/internal/shared/metrics"

	"go.uber.org/zap"
)

// DefaultFreshness is how long a fetched value is served without refetching.
const DefaultFreshness = 5 * time.Minute

// Source tells where a served value came from.
type Source string

const (
	// SourceFresh: fetched from the backend by this call.
	SourceFresh Source = "fresh"
	// SourceCache: a previously fetched or persisted value, still within the window
	// or returned while another fetch is in flight.
	SourceCache Source = "cache"
	// SourceDefault: nothing was ever fetched; the hard-coded default.
	SourceDefault Source = "default"
	// SourceFallback: a fetch was attempted and failed; the previous value is served.
	SourceFallback Source = "fallback"
)

type Result[T any] struct {
	Value     T
	Source    Source
	FetchedAt time.Time
	// Err is the swallowed fetch error when Source is SourceFallback.
	Err error
}

// Stale reports whether the value was not freshly confirmed by the backend
// because a fetch failed or nothing was ever fetched.
func (r Result[T]) Stale() bool {
	return r.Source == SourceFallback || r.Source == SourceDefault
}

type Fetcher[T any] func(ctx context.Context) (T, error)

// Snapshot is the persisted form: the value tagged with its fetch time.
type Snapshot[T any] struct {
	Value     T         `json:"value"`
	FetchedAt time.Time `json:"fetched_at"`
}

type Options[T any] struct {
	// Name labels logs and metrics, e.g. "work_time".
	Name      string
	Key       kvstore.Key[Snapshot[T]]
	Store     kvstore.Store
	Fetch     Fetcher[T]
	Default   T
	Freshness time.Duration
	Metrics   *metrics.Metrics
	Logger    *zap.Logger
	Now       func() time.Time
}

type Provider[T any] struct {
	name      string
	key       kvstore.Key[Snapshot[T]]
	store     kvstore.Store
	fetch     Fetcher[T]
	freshness time.Duration
	metrics   *metrics.Metrics
	logger    *zap.Logger
	now       func() time.Time

	mu        sync.RWMutex
	value     T
	fetchedAt time.Time // zero until the first successful fetch or restored snapshot
	// generation changes on every commit, Set and Invalidate. A fetch only
	// commits when the generation it started from is still current.
	generation uint64

	persistMu    sync.Mutex
	persistedGen uint64 // guarded by persistMu
	fetching     atomic.Bool
}

// NewProvider builds a provider and restores a persisted snapshot when its
// age is within the freshness window. Older snapshots are discarded.
func NewProvider[T any](ctx context.Context, opts Options[T]) *Provider[T] {
	p := &Provider[T]{
		name:      opts.Name,
		key:       opts.Key,
		store:     opts.Store,
		fetch:     opts.Fetch,
		freshness: opts.Freshness,
		metrics:   opts.Metrics,
		logger:    opts.Logger,
		now:       opts.Now,
		value:     opts.Default,
	}
	if p.freshness <= 0 {
		p.freshness = DefaultFreshness
	}
	if p.now == nil {
		p.now = time.Now
	}
	if p.logger == nil {
		p.logger = zap.L()
	}
	p.logger = p.logger.Named("configcache").With(zap.String("config", p.name))

	p.restore(ctx)
	return p
}

func (p *Provider[T]) restore(ctx context.Context) {
	if p.store == nil {
		return
	}
	snap, err := kvstore.Load(ctx, p.store, p.key)
	if err != nil {
		if !errors.Is(err, kvstore.ErrNotFound) {
			p.logger.Warn("restore snapshot failed", zap.Error(err))
		}
		return
	}
	age := p.now().Sub(snap.FetchedAt)
	if age < 0 || age > p.freshness {
		p.logger.Debug("persisted snapshot expired, discarding", zap.Duration("age", age))
		_ = kvstore.Clear(ctx, p.store, p.key)
		return
	}
	p.value = snap.Value
	p.fetchedAt = snap.FetchedAt
	p.logger.Debug("restored snapshot", zap.Time("fetched_at", snap.FetchedAt))
}

// GetSync returns the last known value immediately: the restored or fetched
// value, or the default.
func (p *Provider[T]) GetSync() T {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return p.value
}

// Get returns the current value, refetching first when it is older than the
// freshness window or when forceRefresh is set. It never returns an error;
// inspect Result.Source and Result.Err instead.
func (p *Provider[T]) Get(ctx context.Context, forceRefresh bool) Result[T] {
	cur := p.current()
	if !forceRefresh && cur.Source == SourceCache && p.isFresh(cur.FetchedAt) {
		return cur
	}

	// One fetch at a time. Late arrivals get what is cached right now.
	if !p.fetching.CompareAndSwap(false, true) {
		return cur
	}
	defer p.fetching.Store(false)

	startGen := p.currentGeneration()
	value, err := p.fetch(ctx)
	p.metrics.ObserveConfigFetch(p.name, err)
	if err != nil {
		p.logger.Warn("fetch failed, serving previous value",
			zap.String("previous_source", string(cur.Source)),
			zap.Error(err),
		)
		cur.Source = SourceFallback
		cur.Err = err
		return cur
	}

	fetchedAt := p.now()
	p.mu.Lock()
	if p.generation != startGen {
		p.mu.Unlock()
		p.logger.Debug("discarding fetch superseded by a newer value")
		return p.current()
	}
	p.value = value
	p.fetchedAt = fetchedAt
	p.generation++
	gen := p.generation
	p.mu.Unlock()

	p.persist(ctx, gen, value, fetchedAt)
	return Result[T]{Value: value, Source: SourceFresh, FetchedAt: fetchedAt}
}

// Set replaces the cached value wholesale, e.g. after the backend accepted an
// update, and persists it as freshly fetched.
func (p *Provider[T]) Set(ctx context.Context, value T) {
	fetchedAt := p.now()
	p.mu.Lock()
	p.value = value
	p.fetchedAt = fetchedAt
	p.generation++
	gen := p.generation
	p.mu.Unlock()
	p.persist(ctx, gen, value, fetchedAt)
}

// Invalidate marks the cached value stale so the next Get refetches. The
// value itself keeps being served by GetSync.
func (p *Provider[T]) Invalidate() {
	p.mu.Lock()
	if !p.fetchedAt.IsZero() {
		p.fetchedAt = p.now().Add(-p.freshness - time.Nanosecond)
	}
	p.generation++
	p.mu.Unlock()
}

func (p *Provider[T]) currentGeneration() uint64 {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return p.generation
}

func (p *Provider[T]) current() Result[T] {
	p.mu.RLock()
	defer p.mu.RUnlock()
	src := SourceCache
	if p.fetchedAt.IsZero() {
		src = SourceDefault
	}
	return Result[T]{Value: p.value, Source: src, FetchedAt: p.fetchedAt}
}

func (p *Provider[T]) isFresh(fetchedAt time.Time) bool {
	return !fetchedAt.IsZero() && p.now().Sub(fetchedAt) <= p.freshness
}

// persist writes the snapshot of generation gen unless a newer generation
// was already written, so an older value never lands last.
func (p *Provider[T]) persist(ctx context.Context, gen uint64, value T, fetchedAt time.Time) {
	if p.store == nil {
		return
	}
	p.persistMu.Lock()
	defer p.persistMu.Unlock()
	if gen < p.persistedGen {
		return
	}
	snap := Snapshot[T]{Value: value, FetchedAt: fetchedAt}
	// No TTL: restore decides whether a snapshot is still usable.
	if err := kvstore.Save(ctx, p.store, p.key, snap, 0); err != nil {
		p.logger.Warn("persist snapshot failed", zap.Error(err))
		return
	}
	p.persistedGen = gen
}
