package hours

import (
	"context"
	"time"

	"github.com/l-pommeret/RAG-DiBiSo/internal/pkg/logger"
)

// Source is one live provider in the chain (structured API, page scrape).
type Source interface {
	Name() string
	Fetch(ctx context.Context, f *Facility) (*Schedule, error)
}

// Outcome is the per-facility result of an all-facility fan-out.
type Outcome struct {
	FacilityId string
	Schedule   *Schedule
	Err        error
}

// Resolver walks the tiered source chain for a facility:
// cache → sources in priority order → static default → unavailable.
// Only real fetches (API, scrape) are written back to the cache; defaults
// never are, so future calls keep re-attempting the live tiers.
type Resolver struct {
	directory *Directory
	cache     CacheStore
	sources   []Source
	defaults  map[string]*Schedule
	ttl       time.Duration
	logger    logger.ILogger
}

func NewResolver(
	directory *Directory,
	cache CacheStore,
	sources []Source,
	defaults map[string]*Schedule,
	ttl time.Duration,
	log logger.ILogger,
) *Resolver {
	return &Resolver{
		directory: directory,
		cache:     cache,
		sources:   sources,
		defaults:  defaults,
		ttl:       ttl,
		logger:    log,
	}
}

// Resolve returns the freshest known schedule for one facility.
// A *SourceUnavailableError is returned when every tier failed and no
// static default exists.
func (r *Resolver) Resolve(ctx context.Context, facilityId string) (*Schedule, error) {
	facility := r.directory.Get(facilityId)
	if facility == nil {
		return nil, ErrUnknownFacility
	}

	key := CacheKey(facilityId, DataKindOpeningHours)

	// Tier 1: cache. A valid record short-circuits every live source.
	// The served copy is re-tagged so callers can tell a cache hit from a
	// real fetch.
	if record, ok := r.cache.Get(ctx, key); ok {
		r.logger.Info("hours", "cache hit", map[string]interface{}{"facility": facilityId})
		cached := *record.Payload
		cached.Source = SourceCache
		return &cached, nil
	}

	// Tier 2..n: live sources in priority order.
	for _, src := range r.sources {
		sched, err := src.Fetch(ctx, facility)
		if err != nil {
			r.logger.Warn("hours", "source failed", map[string]interface{}{
				"facility": facilityId,
				"source":   src.Name(),
				"error":    err.Error(),
			})
			continue
		}
		if err := r.cache.Put(ctx, key, sched, r.ttl); err != nil {
			// Cache write failures are a miss, never fatal.
			r.logger.Error("hours", "cache write failed", map[string]interface{}{
				"facility": facilityId,
				"error":    err.Error(),
			})
		}
		return sched, nil
	}

	// Static default: served but NOT cached, so real data keeps being retried.
	if def, ok := r.defaults[facilityId]; ok {
		r.logger.Warn("hours", "serving static default", map[string]interface{}{"facility": facilityId})
		copied := *def
		copied.FetchedAt = time.Now()
		return &copied, nil
	}

	return nil, &SourceUnavailableError{
		FacilityId:   facilityId,
		FacilityName: facility.DisplayName,
		FallbackURL:  facility.PageURL,
	}
}

// ResolveAll fans out over every registered facility. One facility's failure
// never aborts the others.
func (r *Resolver) ResolveAll(ctx context.Context) []Outcome {
	facilities := r.directory.All()
	outcomes := make([]Outcome, 0, len(facilities))
	for _, f := range facilities {
		sched, err := r.Resolve(ctx, f.Id)
		outcomes = append(outcomes, Outcome{FacilityId: f.Id, Schedule: sched, Err: err})
	}
	return outcomes
}

// Directory exposes the underlying facility registry.
func (r *Resolver) Directory() *Directory {
	return r.directory
}
