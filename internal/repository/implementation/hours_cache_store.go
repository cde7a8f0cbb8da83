package implementation

import (
	"context"
	"encoding/json"
	"time"

	"github.com/l-pommeret/RAG-DiBiSo/internal/entity"
	"github.com/l-pommeret/RAG-DiBiSo/internal/pkg/logger"
	"github.com/l-pommeret/RAG-DiBiSo/internal/repository/contract"
	"github.com/l-pommeret/RAG-DiBiSo/pkg/hours"
)

// DatabaseHoursCacheStore persists live schedules through the
// HoursCacheRepository so cached hours survive process restarts.
// Storage failures degrade to cache misses.
type DatabaseHoursCacheStore struct {
	repository contract.HoursCacheRepository
	logger     logger.ILogger
}

var _ hours.CacheStore = &DatabaseHoursCacheStore{}

func NewDatabaseHoursCacheStore(repository contract.HoursCacheRepository, log logger.ILogger) *DatabaseHoursCacheStore {
	return &DatabaseHoursCacheStore{
		repository: repository,
		logger:     log,
	}
}

func (s *DatabaseHoursCacheStore) Get(ctx context.Context, key string) (*hours.CacheRecord, bool) {
	entry, err := s.repository.Get(ctx, key)
	if err != nil {
		s.logger.Warn("hours_cache", "read failed, treating as miss", map[string]interface{}{"key": key, "error": err.Error()})
		return nil, false
	}
	if entry == nil {
		return nil, false
	}

	var schedule hours.Schedule
	if err := json.Unmarshal(entry.Payload, &schedule); err != nil {
		s.logger.Warn("hours_cache", "corrupt payload, treating as miss", map[string]interface{}{"key": key, "error": err.Error()})
		return nil, false
	}

	record := &hours.CacheRecord{
		Key:       entry.Key,
		Payload:   &schedule,
		FetchedAt: entry.FetchedAt,
		TTL:       time.Duration(entry.TTLSeconds) * time.Second,
	}
	if !record.Valid(time.Now()) {
		return nil, false
	}
	return record, true
}

func (s *DatabaseHoursCacheStore) Put(ctx context.Context, key string, payload *hours.Schedule, ttl time.Duration) error {
	raw, err := json.Marshal(payload)
	if err != nil {
		return err
	}
	return s.repository.Put(ctx, &entity.HoursCacheEntry{
		Key:        key,
		Payload:    raw,
		FetchedAt:  time.Now(),
		TTLSeconds: int(ttl / time.Second),
	})
}
