package hours

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/l-pommeret/RAG-DiBiSo/internal/pkg/logger"

	"github.com/stretchr/testify/assert"
)

// mapCacheStore is an in-memory CacheStore for chain tests.
type mapCacheStore struct {
	records map[string]*CacheRecord
	puts    int
}

func newMapCacheStore() *mapCacheStore {
	return &mapCacheStore{records: make(map[string]*CacheRecord)}
}

func (s *mapCacheStore) Get(ctx context.Context, key string) (*CacheRecord, bool) {
	record, ok := s.records[key]
	if !ok || !record.Valid(time.Now()) {
		return nil, false
	}
	return record, true
}

func (s *mapCacheStore) Put(ctx context.Context, key string, payload *Schedule, ttl time.Duration) error {
	s.puts++
	s.records[key] = &CacheRecord{Key: key, Payload: payload, FetchedAt: time.Now(), TTL: ttl}
	return nil
}

// stubSource counts calls and returns a fixed result.
type stubSource struct {
	name     string
	schedule *Schedule
	err      error
	calls    int
}

func (s *stubSource) Name() string { return s.name }

func (s *stubSource) Fetch(ctx context.Context, f *Facility) (*Schedule, error) {
	s.calls++
	if s.err != nil {
		return nil, s.err
	}
	sched := *s.schedule
	sched.FacilityId = f.Id
	sched.FacilityName = f.DisplayName
	return &sched, nil
}

func newTestResolver(cache CacheStore, sources []Source, defaults map[string]*Schedule) *Resolver {
	return NewResolver(DefaultDirectory(), cache, sources, defaults, 24*time.Hour, logger.NewNoopLogger())
}

func TestResolveUnknownFacility(t *testing.T) {
	r := newTestResolver(newMapCacheStore(), nil, nil)

	_, err := r.Resolve(context.Background(), "atlantis")
	assert.ErrorIs(t, err, ErrUnknownFacility)
}

func TestResolveCacheShortCircuitsSources(t *testing.T) {
	cache := newMapCacheStore()
	cached := &Schedule{FacilityId: "orsay", Source: SourceAffluences, Text: "8h30 - 22h30"}
	_ = cache.Put(context.Background(), CacheKey("orsay", DataKindOpeningHours), cached, 24*time.Hour)
	cache.puts = 0

	src := &stubSource{name: SourceAffluences, schedule: &Schedule{Source: SourceAffluences}}
	r := newTestResolver(cache, []Source{src}, nil)

	sched, err := r.Resolve(context.Background(), "orsay")
	assert.NoError(t, err)
	assert.Equal(t, "8h30 - 22h30", sched.Text)
	assert.Equal(t, 0, src.calls, "valid cache must prevent any live fetch")
	assert.Equal(t, 0, cache.puts, "cache hit must not rewrite the record")
}

func TestResolveCacheHitRetaggedAsCache(t *testing.T) {
	cache := newMapCacheStore()
	cached := &Schedule{FacilityId: "orsay", Source: SourceAffluences, Text: "8h30 - 22h30"}
	_ = cache.Put(context.Background(), CacheKey("orsay", DataKindOpeningHours), cached, 24*time.Hour)

	r := newTestResolver(cache, nil, nil)

	sched, err := r.Resolve(context.Background(), "orsay")
	assert.NoError(t, err)
	assert.Equal(t, SourceCache, sched.Source, "cache-served schedules must be distinguishable from real fetches")
	assert.Equal(t, SourceAffluences, cached.Source, "the stored record must keep its upstream tag")
}

func TestResolveFallsThroughSourcesInOrder(t *testing.T) {
	cache := newMapCacheStore()
	failing := &stubSource{name: SourceAffluences, err: errors.New("boom")}
	working := &stubSource{name: SourceWeb, schedule: &Schedule{Source: SourceWeb, Text: "9h - 18h"}}

	r := newTestResolver(cache, []Source{failing, working}, nil)

	sched, err := r.Resolve(context.Background(), "sceaux")
	assert.NoError(t, err)
	assert.Equal(t, SourceWeb, sched.Source)
	assert.Equal(t, 1, failing.calls)
	assert.Equal(t, 1, working.calls)
	assert.Equal(t, 1, cache.puts, "successful live fetch must be cached")
}

func TestResolveFirstSourceWins(t *testing.T) {
	first := &stubSource{name: SourceAffluences, schedule: &Schedule{Source: SourceAffluences}}
	second := &stubSource{name: SourceWeb, schedule: &Schedule{Source: SourceWeb}}

	r := newTestResolver(newMapCacheStore(), []Source{first, second}, nil)

	sched, err := r.Resolve(context.Background(), "orsay")
	assert.NoError(t, err)
	assert.Equal(t, SourceAffluences, sched.Source)
	assert.Equal(t, 0, second.calls, "later tiers must not run once one succeeds")
}

func TestResolveDefaultServedButNotCached(t *testing.T) {
	cache := newMapCacheStore()
	failing := &stubSource{name: SourceAffluences, err: errors.New("down")}
	defaults := map[string]*Schedule{
		"orsay": {FacilityId: "orsay", Source: SourceDefault, Text: "Lun-Ven: 8h30 - 22h30"},
	}

	r := newTestResolver(cache, []Source{failing}, defaults)

	sched, err := r.Resolve(context.Background(), "orsay")
	assert.NoError(t, err)
	assert.Equal(t, SourceDefault, sched.Source)
	assert.False(t, sched.FetchedAt.IsZero(), "served default gets a fresh timestamp")
	assert.Equal(t, 0, cache.puts, "defaults must never be cached")

	// A second call retries the live tier instead of hitting a cached default.
	_, err = r.Resolve(context.Background(), "orsay")
	assert.NoError(t, err)
	assert.Equal(t, 2, failing.calls)
}

func TestResolveUnavailableWhenNoDefault(t *testing.T) {
	failing := &stubSource{name: SourceWeb, err: errors.New("down")}
	r := newTestResolver(newMapCacheStore(), []Source{failing}, nil)

	_, err := r.Resolve(context.Background(), "lumen")
	var unavailable *SourceUnavailableError
	assert.ErrorAs(t, err, &unavailable)
	assert.Equal(t, "lumen", unavailable.FacilityId)
	assert.NotEmpty(t, unavailable.FallbackURL)
}

func TestResolveAllIsolatesFailures(t *testing.T) {
	// Source succeeds for everything; defaults exist for nobody. Lumen has no
	// Affluences id, so an affluences-only chain fails for it alone.
	affluencesOnly := &stubSource{name: SourceAffluences, schedule: &Schedule{Source: SourceAffluences, Text: "ouvert"}}
	r := newTestResolver(newMapCacheStore(), []Source{&affluencesGate{inner: affluencesOnly}}, nil)

	outcomes := r.ResolveAll(context.Background())
	assert.Len(t, outcomes, 4)

	byId := make(map[string]Outcome)
	for _, o := range outcomes {
		byId[o.FacilityId] = o
	}
	assert.NoError(t, byId["orsay"].Err)
	assert.NoError(t, byId["sceaux"].Err)
	assert.NoError(t, byId["kremlin-bicetre"].Err)
	assert.Error(t, byId["lumen"].Err)
}

// affluencesGate mimics the real client's guard on facilities without an
// Affluences endpoint.
type affluencesGate struct {
	inner Source
}

func (g *affluencesGate) Name() string { return g.inner.Name() }

func (g *affluencesGate) Fetch(ctx context.Context, f *Facility) (*Schedule, error) {
	if f.AffluencesId == "" {
		return nil, errors.New("no affluences endpoint")
	}
	return g.inner.Fetch(ctx, f)
}
