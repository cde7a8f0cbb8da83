package hours

import (
	"context"
	"time"
)

// DataKindOpeningHours is the only data kind cached today. The key scheme
// leaves room for other volatile facts (occupancy, closures) later.
const DataKindOpeningHours = "opening_hours"

// CacheKey builds the store key for a facility and data kind.
func CacheKey(facilityId, dataKind string) string {
	return facilityId + ":" + dataKind
}

// CacheRecord wraps a cached schedule with its own freshness metadata.
// FetchedAt lives inside the record, never derived from storage-medium
// side effects, so any key-value backend can hold it.
type CacheRecord struct {
	Key       string        `json:"key"`
	Payload   *Schedule     `json:"payload"`
	FetchedAt time.Time     `json:"fetched_at"`
	TTL       time.Duration `json:"ttl"`
}

// Valid reports whether the record is still trusted at the given instant.
func (r *CacheRecord) Valid(now time.Time) bool {
	return now.Sub(r.FetchedAt) < r.TTL
}

// CacheStore is the durable key→record map backing the live-data path.
// Get must return only valid records; expired or missing records are
// absent, never partially returned. Put replaces the prior record
// atomically from the caller's perspective. Persistence failures are
// the caller's to log and treat as a miss; they are never fatal.
type CacheStore interface {
	Get(ctx context.Context, key string) (*CacheRecord, bool)
	Put(ctx context.Context, key string, payload *Schedule, ttl time.Duration) error
}
