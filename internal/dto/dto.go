// Package dto defines the canonical JSON shapes of the admin API. The
// backend contract historically leaked alias fields for the same concept
// (reviewStatus vs projectReviewStatus, id vs projectId); here every entity
// has exactly one wire shape, produced server-side and decoded verbatim by
// the client.
package dto

import "time"

// ReviewProjectSummary 심사 목록 행
type ReviewProjectSummary struct {
	ProjectID       int64      `json:"projectId"`
	Title           string     `json:"title"`
	Category        string     `json:"category"`
	MakerID         int64      `json:"makerId"`
	MakerName       string     `json:"makerName"`
	TargetAmount    int64      `json:"targetAmount"`
	ReviewStatus    string     `json:"reviewStatus"`
	LifecycleStatus string     `json:"lifecycleStatus"`
	SubmittedAt     *time.Time `json:"submittedAt"`
}

// RewardDTO 리워드
type RewardDTO struct {
	RewardID               int64  `json:"rewardId"`
	Title                  string `json:"title"`
	Description            string `json:"description"`
	Price                  int64  `json:"price"`
	EstimatedShippingMonth string `json:"estimatedShippingMonth"`
	LimitCount             int    `json:"limitCount"`
	ClaimedCount           int    `json:"claimedCount"`
}

// ProjectReviewDetail 심사 상세
type ProjectReviewDetail struct {
	ProjectID       int64        `json:"projectId"`
	Title           string       `json:"title"`
	Category        string       `json:"category"`
	Story           string       `json:"story"`
	ImageURL        string       `json:"imageUrl"`
	TargetAmount    int64        `json:"targetAmount"`
	StartTime       time.Time    `json:"startTime"`
	EndTime         time.Time    `json:"endTime"`
	ReviewStatus    string       `json:"reviewStatus"`
	LifecycleStatus string       `json:"lifecycleStatus"`
	RejectReason    string       `json:"rejectReason,omitempty"`
	SubmittedAt     *time.Time   `json:"submittedAt"`
	Maker           MakerProfile `json:"maker"`
	Rewards         []RewardDTO  `json:"rewards"`
}

// ReviewStatusResponse result of an approve/reject call.
type ReviewStatusResponse struct {
	ProjectID       int64  `json:"projectId"`
	ReviewStatus    string `json:"reviewStatus"`
	LifecycleStatus string `json:"lifecycleStatus"`
	RejectReason    string `json:"rejectReason,omitempty"`
}

// RejectReasonPresets canned reject reasons.
type RejectReasonPresets struct {
	Presets []string `json:"presets"`
}

// MakerProfile 메이커 프로필
type MakerProfile struct {
	MakerID        int64  `json:"makerId"`
	Name           string `json:"name"`
	Email          string `json:"email"`
	Phone          string `json:"phone"`
	BusinessNumber string `json:"businessNumber"`
	BankName       string `json:"bankName"`
	BankAccount    string `json:"bankAccount"`
	AccountHolder  string `json:"accountHolder"`
}

// SettlementSummary per-status counts and amounts for the summary cards.
type SettlementSummary struct {
	PendingCount     int64 `json:"pendingCount"`
	PendingAmount    int64 `json:"pendingAmount"`
	FirstPaidCount   int64 `json:"firstPaidCount"`
	FirstPaidAmount  int64 `json:"firstPaidAmount"`
	FinalReadyCount  int64 `json:"finalReadyCount"`
	FinalReadyAmount int64 `json:"finalReadyAmount"`
	CompletedCount   int64 `json:"completedCount"`
	CompletedAmount  int64 `json:"completedAmount"`
}

// SettlementDTO 정산 상세
type SettlementDTO struct {
	SettlementID       int64      `json:"settlementId"`
	ProjectID          int64      `json:"projectId"`
	ProjectTitle       string     `json:"projectTitle"`
	Status             string     `json:"status"`
	FirstPaymentStatus string     `json:"firstPaymentStatus"`
	FinalPaymentStatus string     `json:"finalPaymentStatus"`
	TotalOrderAmount   int64      `json:"totalOrderAmount"`
	PGFeeAmount        int64      `json:"pgFeeAmount"`
	PlatformFeeAmount  int64      `json:"platformFeeAmount"`
	NetAmount          int64      `json:"netAmount"`
	FirstPaymentAmount int64      `json:"firstPaymentAmount"`
	FinalPaymentAmount int64      `json:"finalPaymentAmount"`
	FirstPayoutRef     string     `json:"firstPayoutRef,omitempty"`
	FinalPayoutRef     string     `json:"finalPayoutRef,omitempty"`
	CreatedAt          time.Time  `json:"createdAt"`
	FirstPaidAt        *time.Time `json:"firstPaidAt"`
	CompletedAt        *time.Time `json:"completedAt"`
}

// SettlementPage offset page of settlements, Spring-style contract:
// 0-based number plus totals.
type SettlementPage struct {
	Content       []SettlementDTO `json:"content"`
	Number        int             `json:"number"`
	Size          int             `json:"size"`
	TotalPages    int             `json:"totalPages"`
	TotalElements int64           `json:"totalElements"`
}

// ShipmentDTO 배송 상세
type ShipmentDTO struct {
	ShipmentID     int64      `json:"shipmentId"`
	ProjectID      int64      `json:"projectId"`
	OrderCode      string     `json:"orderCode"`
	SupporterName  string     `json:"supporterName"`
	Address        string     `json:"address"`
	RewardTitle    string     `json:"rewardTitle"`
	Status         string     `json:"status"`
	CourierName    string     `json:"courierName"`
	TrackingNumber string     `json:"trackingNumber"`
	IssueReason    string     `json:"issueReason,omitempty"`
	ShippedAt      *time.Time `json:"shippedAt"`
	DeliveredAt    *time.Time `json:"deliveredAt"`
}

// ShipmentPage offset page of shipments.
type ShipmentPage struct {
	Content       []ShipmentDTO `json:"content"`
	Number        int           `json:"number"`
	Size          int           `json:"size"`
	TotalPages    int           `json:"totalPages"`
	TotalElements int64         `json:"totalElements"`
}

// ShipmentStatusUpdate single-item status change request.
type ShipmentStatusUpdate struct {
	Status      string `json:"status"`
	IssueReason string `json:"issueReason,omitempty"`
}

// BulkShipmentStatusUpdate bulk status change request.
type BulkShipmentStatusUpdate struct {
	ShipmentIDs []int64 `json:"shipmentIds"`
	Status      string  `json:"status"`
	IssueReason string  `json:"issueReason,omitempty"`
}

// BulkStatusResult 일괄 상태 변경 결과
type BulkStatusResult struct {
	UpdatedCount int64 `json:"updatedCount"`
}

// TrackingRow one row of a bulk tracking-number upload.
type TrackingRow struct {
	OrderCode      string `json:"orderCode"`
	CourierName    string `json:"courierName"`
	TrackingNumber string `json:"trackingNumber"`
}

// BulkTrackingRequest 운송장 일괄 업로드 요청
type BulkTrackingRequest struct {
	Shipments []TrackingRow `json:"shipments"`
}

// BulkTrackingFailure one failed upload row and why.
type BulkTrackingFailure struct {
	OrderCode string `json:"orderCode"`
	Reason    string `json:"reason"`
}

// BulkTrackingResult 운송장 일괄 업로드 결과
type BulkTrackingResult struct {
	SuccessCount int                   `json:"successCount"`
	FailureCount int                   `json:"failureCount"`
	Failures     []BulkTrackingFailure `json:"failures"`
}

// DashboardStats 대시보드 KPI
type DashboardStats struct {
	TotalProjects          int64 `json:"totalProjects"`
	LiveProjects           int64 `json:"liveProjects"`
	PendingReviewCount     int64 `json:"pendingReviewCount"`
	PendingSettlementCount int64 `json:"pendingSettlementCount"`
	TotalMakerCount        int64 `json:"totalMakerCount"`
	TotalOrderCount        int64 `json:"totalOrderCount"`
	TotalFundedAmount      int64 `json:"totalFundedAmount"`
}

// DailyStatRow 일별 리포트 행
type DailyStatRow struct {
	Date            string `json:"date"`
	OrderCount      int64  `json:"orderCount"`
	OrderAmount     int64  `json:"orderAmount"`
	NewProjectCount int64  `json:"newProjectCount"`
	NewMakerCount   int64  `json:"newMakerCount"`
}

// MonthlyStatRow 월별 리포트 행
type MonthlyStatRow struct {
	Month       string `json:"month"` // "2026-08"
	OrderCount  int64  `json:"orderCount"`
	OrderAmount int64  `json:"orderAmount"`
}

// RevenueRow 수수료 수익 리포트 행, from completed settlements.
type RevenueRow struct {
	Month             string `json:"month"`
	PGFeeAmount       int64  `json:"pgFeeAmount"`
	PlatformFeeAmount int64  `json:"platformFeeAmount"`
	PayoutAmount      int64  `json:"payoutAmount"`
}

// ProjectPerformanceRow 프로젝트 성과 리포트 행
type ProjectPerformanceRow struct {
	ProjectID       int64   `json:"projectId"`
	Title           string  `json:"title"`
	TargetAmount    int64   `json:"targetAmount"`
	CurrentAmount   int64   `json:"currentAmount"`
	AchievementRate float64 `json:"achievementRate"` // percent
	OrderCount      int64   `json:"orderCount"`
	LifecycleStatus string  `json:"lifecycleStatus"`
}
