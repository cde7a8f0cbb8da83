package entity

import (
	"encoding/json"
	"time"
)

// HoursCacheEntry is one cached live-data payload keyed by facility and data
// kind. Payload stays opaque JSON here; the repository adapter owns the
// schedule shape.
type HoursCacheEntry struct {
	Key        string
	Payload    json.RawMessage
	FetchedAt  time.Time
	TTLSeconds int
}
