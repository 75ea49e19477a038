package model

import "time"

// Settlement 정산. One row per project, created by explicit admin action
// once the project has ended successfully.
type Settlement struct {
	ID        int64     `json:"id" gorm:"primaryKey"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	ProjectID int64 `json:"project_id" gorm:"uniqueIndex;not null"`

	Status             SettlementStatus   `json:"status" gorm:"default:'PENDING';index"`
	FirstPaymentStatus PaymentStatus      `json:"first_payment_status" gorm:"default:'PENDING'"`
	FinalPaymentStatus FinalPaymentStatus `json:"final_payment_status" gorm:"default:'PENDING'"`

	// Amounts are fixed at creation from paid orders and fee rates.
	TotalOrderAmount   int64 `json:"total_order_amount" gorm:"not null"`
	PGFeeAmount        int64 `json:"pg_fee_amount" gorm:"not null"`
	PlatformFeeAmount  int64 `json:"platform_fee_amount" gorm:"not null"`
	NetAmount          int64 `json:"net_amount" gorm:"not null"`
	FirstPaymentAmount int64 `json:"first_payment_amount" gorm:"not null"`
	FinalPaymentAmount int64 `json:"final_payment_amount" gorm:"not null"`

	FirstPayoutRef string     `json:"first_payout_ref"`
	FinalPayoutRef string     `json:"final_payout_ref"`
	FirstPaidAt    *time.Time `json:"first_paid_at"`
	CompletedAt    *time.Time `json:"completed_at"`

	Project Project `json:"project,omitempty" gorm:"foreignKey:ProjectID"`
}

func (Settlement) TableName() string {
	return "settlement"
}

// SettlementStatus 정산 상태 (strictly ordered)
type SettlementStatus string

const (
	SettlementStatusPending    SettlementStatus = "PENDING"
	SettlementStatusFirstPaid  SettlementStatus = "FIRST_PAID"
	SettlementStatusFinalReady SettlementStatus = "FINAL_READY"
	SettlementStatusCompleted  SettlementStatus = "COMPLETED"
)

// PaymentStatus 1차 지급 상태
type PaymentStatus string

const (
	PaymentStatusPending PaymentStatus = "PENDING"
	PaymentStatusDone    PaymentStatus = "DONE"
)

// FinalPaymentStatus 잔금 지급 상태
type FinalPaymentStatus string

const (
	FinalPaymentStatusPending FinalPaymentStatus = "PENDING"
	FinalPaymentStatusReady   FinalPaymentStatus = "READY"
	FinalPaymentStatusDone    FinalPaymentStatus = "DONE"
)
