package memory

import (
	"context"
	"time"

	"github.com/l-pommeret/RAG-DiBiSo/pkg/hours"

	"github.com/patrickmn/go-cache"
)

// HoursCacheStore keeps live schedules in process memory. Suitable for the
// CLI and for tests; REST deployments use the database or redis store so
// the cache survives restarts.
type HoursCacheStore struct {
	cache *cache.Cache
}

var _ hours.CacheStore = &HoursCacheStore{}

func NewHoursCacheStore() *HoursCacheStore {
	// Purge expired entries every 10 minutes; per-record TTL is carried by
	// the CacheRecord itself.
	c := cache.New(24*time.Hour, 10*time.Minute)
	return &HoursCacheStore{
		cache: c,
	}
}

func (s *HoursCacheStore) Get(ctx context.Context, key string) (*hours.CacheRecord, bool) {
	x, found := s.cache.Get(key)
	if !found {
		return nil, false
	}
	record := x.(*hours.CacheRecord)
	if !record.Valid(time.Now()) {
		s.cache.Delete(key)
		return nil, false
	}
	return record, true
}

func (s *HoursCacheStore) Put(ctx context.Context, key string, payload *hours.Schedule, ttl time.Duration) error {
	record := &hours.CacheRecord{
		Key:       key,
		Payload:   payload,
		FetchedAt: time.Now(),
		TTL:       ttl,
	}
	s.cache.Set(key, record, ttl)
	return nil
}
