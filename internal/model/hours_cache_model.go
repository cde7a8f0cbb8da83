package model

import (
	"time"

	"gorm.io/datatypes"
)

type HoursCacheEntry struct {
	Key        string         `gorm:"type:varchar(128);primaryKey"`
	Payload    datatypes.JSON `gorm:"not null"`
	FetchedAt  time.Time      `gorm:"not null;index"`
	TTLSeconds int            `gorm:"not null"`
	CreatedAt  time.Time      `gorm:"autoCreateTime"`
	UpdatedAt  time.Time      `gorm:"autoUpdateTime"`
}

func (HoursCacheEntry) TableName() string {
	return "hours_cache"
}
