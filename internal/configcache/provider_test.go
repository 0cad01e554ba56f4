package configcache

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"go-attendance/internal/kvstore"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type schedule struct {
	Start string `json:"start"`
	End   string `json:"end"`
}

var defaultSchedule = schedule{Start: "09:00", End: "17:00"}

type fakeClock struct{ t time.Time }

func (c *fakeClock) Now() time.Time          { return c.t }
func (c *fakeClock) Advance(d time.Duration) { c.t = c.t.Add(d) }

type countingFetcher struct {
	mu    sync.Mutex
	calls int
	value schedule
	err   error
}

func (f *countingFetcher) Fetch(ctx context.Context) (schedule, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls++
	return f.value, f.err
}

func (f *countingFetcher) Calls() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.calls
}

var scheduleKey = kvstore.NewKey[Snapshot[schedule]]("config:test_schedule")

func newTestProvider(store kvstore.Store, clock *fakeClock, f *countingFetcher) *Provider[schedule] {
	return NewProvider(context.Background(), Options[schedule]{
		Name:    "test_schedule",
		Key:     scheduleKey,
		Store:   store,
		Fetch:   f.Fetch,
		Default: defaultSchedule,
		Now:     clock.Now,
	})
}

func TestProvider_ColdStartServesDefault(t *testing.T) {
	clock := &fakeClock{t: time.Date(2026, 4, 1, 8, 0, 0, 0, time.UTC)}
	f := &countingFetcher{}
	p := newTestProvider(kvstore.NewMemoryStore(), clock, f)

	assert.Equal(t, defaultSchedule, p.GetSync())
	assert.Equal(t, 0, f.Calls())
}

func TestProvider_FetchPersistsAndRestores(t *testing.T) {
	ctx := context.Background()
	store := kvstore.NewMemoryStore()
	clock := &fakeClock{t: time.Date(2026, 4, 1, 8, 0, 0, 0, time.UTC)}
	fetched := schedule{Start: "08:30", End: "16:30"}
	f := &countingFetcher{value: fetched}

	p := newTestProvider(store, clock, f)
	res := p.Get(ctx, false)
	assert.Equal(t, SourceFresh, res.Source)
	assert.Equal(t, fetched, res.Value)
	assert.Equal(t, fetched, p.GetSync())
	assert.False(t, res.Stale())

	snap, err := kvstore.Load(ctx, store, scheduleKey)
	require.NoError(t, err)
	assert.Equal(t, fetched, snap.Value)
	assert.True(t, snap.FetchedAt.Equal(clock.Now()))

	// A new provider within the window reuses the snapshot without fetching.
	clock.Advance(4 * time.Minute)
	f2 := &countingFetcher{value: schedule{Start: "x", End: "y"}}
	p2 := newTestProvider(store, clock, f2)
	assert.Equal(t, fetched, p2.GetSync())

	res = p2.Get(ctx, false)
	assert.Equal(t, SourceCache, res.Source)
	assert.Equal(t, fetched, res.Value)
	assert.Equal(t, 0, f2.Calls())
}

func TestProvider_ExpiredSnapshotIsDiscarded(t *testing.T) {
	ctx := context.Background()
	store := kvstore.NewMemoryStore()
	clock := &fakeClock{t: time.Date(2026, 4, 1, 8, 0, 0, 0, time.UTC)}
	old := schedule{Start: "07:00", End: "15:00"}
	require.NoError(t, kvstore.Save(ctx, store, scheduleKey, Snapshot[schedule]{Value: old, FetchedAt: clock.Now()}, 0))

	clock.Advance(DefaultFreshness + time.Second)
	p := newTestProvider(store, clock, &countingFetcher{err: errors.New("down")})

	assert.Equal(t, defaultSchedule, p.GetSync())
	_, err := kvstore.Load(ctx, store, scheduleKey)
	assert.ErrorIs(t, err, kvstore.ErrNotFound)
}

func TestProvider_FailureKeepsPreviousValue(t *testing.T) {
	ctx := context.Background()
	clock := &fakeClock{t: time.Date(2026, 4, 1, 8, 0, 0, 0, time.UTC)}

	t.Run("default survives a failed first fetch", func(t *testing.T) {
		f := &countingFetcher{err: errors.New("connection refused")}
		p := newTestProvider(kvstore.NewMemoryStore(), clock, f)

		res := p.Get(ctx, false)
		assert.Equal(t, SourceFallback, res.Source)
		assert.EqualError(t, res.Err, "connection refused")
		assert.Equal(t, defaultSchedule, res.Value)
		assert.True(t, res.Stale())
		assert.True(t, res.FetchedAt.IsZero())
	})

	t.Run("fetched value survives a failed refresh", func(t *testing.T) {
		good := schedule{Start: "10:00", End: "18:00"}
		f := &countingFetcher{value: good}
		p := newTestProvider(kvstore.NewMemoryStore(), clock, f)
		p.Get(ctx, false)

		f.err = errors.New("503")
		res := p.Get(ctx, true)
		assert.Equal(t, SourceFallback, res.Source)
		assert.Equal(t, good, res.Value)
		assert.Equal(t, good, p.GetSync())
	})
}

func TestProvider_RefetchAfterWindow(t *testing.T) {
	ctx := context.Background()
	clock := &fakeClock{t: time.Date(2026, 4, 1, 8, 0, 0, 0, time.UTC)}
	f := &countingFetcher{value: schedule{Start: "09:00", End: "18:00"}}
	p := newTestProvider(kvstore.NewMemoryStore(), clock, f)

	p.Get(ctx, false)
	clock.Advance(DefaultFreshness)
	assert.Equal(t, SourceCache, p.Get(ctx, false).Source)
	assert.Equal(t, 1, f.Calls())

	clock.Advance(time.Second)
	assert.Equal(t, SourceFresh, p.Get(ctx, false).Source)
	assert.Equal(t, 2, f.Calls())

	assert.Equal(t, SourceFresh, p.Get(ctx, true).Source)
	assert.Equal(t, 3, f.Calls())
}

func TestProvider_SetAndInvalidate(t *testing.T) {
	ctx := context.Background()
	store := kvstore.NewMemoryStore()
	clock := &fakeClock{t: time.Date(2026, 4, 1, 8, 0, 0, 0, time.UTC)}
	f := &countingFetcher{value: schedule{Start: "06:00", End: "14:00"}}
	p := newTestProvider(store, clock, f)

	updated := schedule{Start: "08:00", End: "16:00"}
	p.Set(ctx, updated)
	assert.Equal(t, updated, p.GetSync())
	assert.Equal(t, SourceCache, p.Get(ctx, false).Source)
	assert.Equal(t, 0, f.Calls())

	snap, err := kvstore.Load(ctx, store, scheduleKey)
	require.NoError(t, err)
	assert.Equal(t, updated, snap.Value)

	p.Invalidate()
	assert.Equal(t, updated, p.GetSync())
	res := p.Get(ctx, false)
	assert.Equal(t, SourceFresh, res.Source)
	assert.Equal(t, 1, f.Calls())
}

func TestProvider_OverlappingFetchServesCurrentValue(t *testing.T) {
	ctx := context.Background()
	clock := &fakeClock{t: time.Date(2026, 4, 1, 8, 0, 0, 0, time.UTC)}

	entered := make(chan struct{})
	release := make(chan struct{})
	slow := func(ctx context.Context) (schedule, error) {
		close(entered)
		<-release
		return schedule{Start: "11:00", End: "19:00"}, nil
	}
	p := NewProvider(ctx, Options[schedule]{
		Name:    "slow",
		Key:     scheduleKey,
		Store:   kvstore.NewMemoryStore(),
		Fetch:   slow,
		Default: defaultSchedule,
		Now:     clock.Now,
	})

	done := make(chan Result[schedule])
	go func() { done <- p.Get(ctx, false) }()
	<-entered

	second := p.Get(ctx, false)
	assert.Equal(t, SourceDefault, second.Source)
	assert.Equal(t, defaultSchedule, second.Value)

	close(release)
	first := <-done
	assert.Equal(t, SourceFresh, first.Source)
	assert.Equal(t, "11:00", p.GetSync().Start)
}

func TestProvider_SetDuringFetchWins(t *testing.T) {
	ctx := context.Background()
	store := kvstore.NewMemoryStore()
	clock := &fakeClock{t: time.Date(2026, 4, 1, 8, 0, 0, 0, time.UTC)}

	entered := make(chan struct{})
	release := make(chan struct{})
	slow := func(ctx context.Context) (schedule, error) {
		close(entered)
		<-release
		return schedule{Start: "old-from-backend", End: "17:00"}, nil
	}
	p := NewProvider(ctx, Options[schedule]{
		Name:    "slow",
		Key:     scheduleKey,
		Store:   store,
		Fetch:   slow,
		Default: defaultSchedule,
		Now:     clock.Now,
	})

	done := make(chan Result[schedule])
	go func() { done <- p.Get(ctx, false) }()
	<-entered

	updated := schedule{Start: "admin-update", End: "18:00"}
	p.Set(ctx, updated)

	close(release)
	res := <-done
	assert.Equal(t, updated, res.Value)
	assert.Equal(t, SourceCache, res.Source)
	assert.Equal(t, updated, p.GetSync())

	snap, err := kvstore.Load(ctx, store, scheduleKey)
	require.NoError(t, err)
	assert.Equal(t, updated, snap.Value)
}
