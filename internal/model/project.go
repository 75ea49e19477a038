package model

import "time"

// Project 크라우드펀딩 프로젝트
type Project struct {
	ID        int64     `json:"id" gorm:"primaryKey"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	MakerID  int64  `json:"maker_id" gorm:"not null;index"`
	Title    string `json:"title" gorm:"not null"`
	Category string `json:"category"`
	Story    string `json:"story" gorm:"type:text"`
	ImageURL string `json:"image_url"`

	TargetAmount  int64 `json:"target_amount" gorm:"not null"`
	CurrentAmount int64 `json:"current_amount" gorm:"default:0"`

	StartTime time.Time `json:"start_time"`
	EndTime   time.Time `json:"end_time"`

	LifecycleStatus LifecycleStatus `json:"lifecycle_status" gorm:"default:'DRAFT';index"`
	ReviewStatus    ReviewStatus    `json:"review_status" gorm:"default:'NONE';index"`
	RejectReason    string          `json:"reject_reason"`
	SubmittedAt     *time.Time      `json:"submitted_at"`
	ReviewedAt      *time.Time      `json:"reviewed_at"`

	Maker   Maker    `json:"maker,omitempty" gorm:"foreignKey:MakerID"`
	Rewards []Reward `json:"rewards,omitempty" gorm:"foreignKey:ProjectID"`
}

func (Project) TableName() string {
	return "project"
}

// LifecycleStatus 프로젝트 상태
type LifecycleStatus string

const (
	LifecycleStatusDraft        LifecycleStatus = "DRAFT"         // being written
	LifecycleStatusReview       LifecycleStatus = "REVIEW"        // submitted, under review
	LifecycleStatusApproved     LifecycleStatus = "APPROVED"      // approved, no schedule yet
	LifecycleStatusScheduled    LifecycleStatus = "SCHEDULED"     // approved, waiting for start time
	LifecycleStatusLive         LifecycleStatus = "LIVE"          // funding open
	LifecycleStatusEndedSuccess LifecycleStatus = "ENDED_SUCCESS" // ended, target reached
	LifecycleStatusEndedFailed  LifecycleStatus = "ENDED_FAILED"  // ended, target missed
	LifecycleStatusRejected     LifecycleStatus = "REJECTED"
)

// ReviewStatus 심사 상태
type ReviewStatus string

const (
	ReviewStatusNone     ReviewStatus = "NONE" // never submitted
	ReviewStatusReview   ReviewStatus = "REVIEW"
	ReviewStatusApproved ReviewStatus = "APPROVED"
	ReviewStatusRejected ReviewStatus = "REJECTED"
)
