package mapper

import (
	"github.com/l-pommeret/RAG-DiBiSo/internal/entity"
	"github.com/l-pommeret/RAG-DiBiSo/internal/model"

	"gorm.io/datatypes"
)

type HoursCacheMapper struct{}

func NewHoursCacheMapper() *HoursCacheMapper {
	return &HoursCacheMapper{}
}

func (m *HoursCacheMapper) ToEntity(e *model.HoursCacheEntry) *entity.HoursCacheEntry {
	if e == nil {
		return nil
	}
	return &entity.HoursCacheEntry{
		Key:        e.Key,
		Payload:    []byte(e.Payload),
		FetchedAt:  e.FetchedAt,
		TTLSeconds: e.TTLSeconds,
	}
}

func (m *HoursCacheMapper) ToModel(e *entity.HoursCacheEntry) *model.HoursCacheEntry {
	if e == nil {
		return nil
	}
	return &model.HoursCacheEntry{
		Key:        e.Key,
		Payload:    datatypes.JSON(e.Payload),
		FetchedAt:  e.FetchedAt,
		TTLSeconds: e.TTLSeconds,
	}
}
