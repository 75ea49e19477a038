package model

import "time"

// Reward 리워드 구성
type Reward struct {
	ID        int64     `json:"id" gorm:"primaryKey"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	ProjectID   int64  `json:"project_id" gorm:"not null;index"`
	Title       string `json:"title" gorm:"not null"`
	Description string `json:"description" gorm:"type:text"`
	Price       int64  `json:"price" gorm:"not null"`

	// "2026-09" style; blank means the maker never set one
	EstimatedShippingMonth string `json:"estimated_shipping_month"`

	LimitCount   int `json:"limit_count" gorm:"default:0"` // 0 = unlimited
	ClaimedCount int `json:"claimed_count" gorm:"default:0"`
}

func (Reward) TableName() string {
	return "reward"
}
