package contract

import (
	"context"
	"time"

	"github.com/l-pommeret/RAG-DiBiSo/internal/entity"
)

type HoursCacheRepository interface {
	// Get returns nil when no entry exists for key
	Get(ctx context.Context, key string) (*entity.HoursCacheEntry, error)
	// Put upserts the entry by key
	Put(ctx context.Context, entry *entity.HoursCacheEntry) error
	// Purge removes entries fetched before the cutoff
	Purge(ctx context.Context, fetchedBefore time.Time) error
}
