package implementation

import (
	"context"
	"errors"
	"time"

	"github.com/l-pommeret/RAG-DiBiSo/internal/entity"
	"github.com/l-pommeret/RAG-DiBiSo/internal/mapper"
	"github.com/l-pommeret/RAG-DiBiSo/internal/model"
	"github.com/l-pommeret/RAG-DiBiSo/internal/repository/contract"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type HoursCacheRepositoryImpl struct {
	db     *gorm.DB
	mapper *mapper.HoursCacheMapper
}

func NewHoursCacheRepository(db *gorm.DB) contract.HoursCacheRepository {
	return &HoursCacheRepositoryImpl{
		db:     db,
		mapper: mapper.NewHoursCacheMapper(),
	}
}

func (r *HoursCacheRepositoryImpl) Get(ctx context.Context, key string) (*entity.HoursCacheEntry, error) {
	var m model.HoursCacheEntry
	if err := r.db.WithContext(ctx).Where("key = ?", key).First(&m).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return r.mapper.ToEntity(&m), nil
}

func (r *HoursCacheRepositoryImpl) Put(ctx context.Context, entry *entity.HoursCacheEntry) error {
	m := r.mapper.ToModel(entry)
	return r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "key"}},
			DoUpdates: clause.AssignmentColumns([]string{"payload", "fetched_at", "ttl_seconds", "updated_at"}),
		}).
		Create(m).Error
}

func (r *HoursCacheRepositoryImpl) Purge(ctx context.Context, fetchedBefore time.Time) error {
	return r.db.WithContext(ctx).
		Where("fetched_at < ?", fetchedBefore).
		Delete(&model.HoursCacheEntry{}).Error
}
