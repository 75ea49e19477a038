package model

import "time"

// DailyStat 일별 통계 스냅샷, written by the daily stats job.
type DailyStat struct {
	ID        int64     `json:"id" gorm:"primaryKey"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	StatDate        string `json:"stat_date" gorm:"uniqueIndex;not null"` // "2026-08-30"
	OrderCount      int64  `json:"order_count" gorm:"default:0"`
	OrderAmount     int64  `json:"order_amount" gorm:"default:0"`
	NewProjectCount int64  `json:"new_project_count" gorm:"default:0"`
	NewMakerCount   int64  `json:"new_maker_count" gorm:"default:0"`
}

func (DailyStat) TableName() string {
	return "daily_stat"
}
