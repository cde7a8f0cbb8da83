package redis

import (
	"context"
	"encoding/json"
	"time"

	"github.com/l-pommeret/RAG-DiBiSo/internal/pkg/logger"
	"github.com/l-pommeret/RAG-DiBiSo/pkg/hours"

	goredis "github.com/redis/go-redis/v9"
)

const keyPrefix = "hours:"

// HoursCacheStore keeps live schedules in redis. The record carries its own
// FetchedAt and TTL; the redis expiry is only a safety net for cleanup.
type HoursCacheStore struct {
	client *goredis.Client
	logger logger.ILogger
}

var _ hours.CacheStore = &HoursCacheStore{}

func NewHoursCacheStore(client *goredis.Client, log logger.ILogger) *HoursCacheStore {
	return &HoursCacheStore{
		client: client,
		logger: log,
	}
}

func (s *HoursCacheStore) Get(ctx context.Context, key string) (*hours.CacheRecord, bool) {
	raw, err := s.client.Get(ctx, keyPrefix+key).Bytes()
	if err != nil {
		if err != goredis.Nil {
			s.logger.Warn("hours_cache", "redis read failed, treating as miss", map[string]interface{}{"key": key, "error": err.Error()})
		}
		return nil, false
	}

	var record hours.CacheRecord
	if err := json.Unmarshal(raw, &record); err != nil {
		s.logger.Warn("hours_cache", "corrupt payload, treating as miss", map[string]interface{}{"key": key, "error": err.Error()})
		return nil, false
	}
	if !record.Valid(time.Now()) {
		return nil, false
	}
	return &record, true
}

func (s *HoursCacheStore) Put(ctx context.Context, key string, payload *hours.Schedule, ttl time.Duration) error {
	record := &hours.CacheRecord{
		Key:       key,
		Payload:   payload,
		FetchedAt: time.Now(),
		TTL:       ttl,
	}
	raw, err := json.Marshal(record)
	if err != nil {
		return err
	}
	return s.client.Set(ctx, keyPrefix+key, raw, ttl).Err()
}
