// Package client is the typed consumer of the admin API. The console talks
// to a DataSource rather than to HTTP directly, so live traffic and seeded
// fixtures are interchangeable implementations instead of an ambient
// mock-data flag.
package client

import (
	"context"

	"github.com/modan/fas/internal/dto"
)

// DataSource is everything the console can do, one method per endpoint.
type DataSource interface {
	// Review console
	FetchReviewProjects(ctx context.Context) ([]dto.ReviewProjectSummary, error)
	FetchProjectDetail(ctx context.Context, projectID int64) (*dto.ProjectReviewDetail, error)
	ApproveProject(ctx context.Context, projectID int64) (*dto.ReviewStatusResponse, error)
	RejectProject(ctx context.Context, projectID int64, reason string) (*dto.ReviewStatusResponse, error)
	FetchRejectReasonPresets(ctx context.Context) ([]string, error)
	FetchMakerProfile(ctx context.Context, makerID int64) (*dto.MakerProfile, error)

	// Settlement console
	FetchSettlementSummary(ctx context.Context) (*dto.SettlementSummary, error)
	FetchSettlements(ctx context.Context, page, size int, status string) (*dto.SettlementPage, error)
	FetchSettlementDetail(ctx context.Context, settlementID int64) (*dto.SettlementDTO, error)
	CreateSettlement(ctx context.Context, projectID int64) (*dto.SettlementDTO, error)
	FirstPayout(ctx context.Context, settlementID int64) (*dto.SettlementDTO, error)
	FinalReady(ctx context.Context, settlementID int64) (*dto.SettlementDTO, error)
	FinalPayout(ctx context.Context, settlementID int64) (*dto.SettlementDTO, error)
	ExportSettlementsCSV(ctx context.Context) ([]byte, error)

	// Shipment console
	FetchShipments(ctx context.Context, projectID int64, status string, page, size int) (*dto.ShipmentPage, error)
	FetchShipment(ctx context.Context, projectID, shipmentID int64) (*dto.ShipmentDTO, error)
	UpdateShipmentStatus(ctx context.Context, projectID, shipmentID int64, status, issueReason string) (*dto.ShipmentDTO, error)
	BulkUpdateShipmentStatus(ctx context.Context, projectID int64, req dto.BulkShipmentStatusUpdate) (*dto.BulkStatusResult, error)
	BulkUploadTracking(ctx context.Context, projectID int64, rows []dto.TrackingRow) (*dto.BulkTrackingResult, error)

	// Statistics
	FetchDashboard(ctx context.Context) (*dto.DashboardStats, error)
	FetchDailyStats(ctx context.Context, from, to string) ([]dto.DailyStatRow, error)
	FetchMonthlyStats(ctx context.Context, year string) ([]dto.MonthlyStatRow, error)
	FetchRevenueStats(ctx context.Context, from, to string) ([]dto.RevenueRow, error)
	FetchProjectPerformance(ctx context.Context) ([]dto.ProjectPerformanceRow, error)
}

// DefaultRejectReasonPresets is the fixed fallback list used when the preset
// endpoint cannot be reached.
var DefaultRejectReasonPresets = []string{
	"스토리 내용이 부족합니다. 프로젝트 소개를 보완해 주세요.",
	"환불/교환 정책이 명시되어 있지 않습니다.",
	"리워드 구성에 설명 또는 예상 발송 시기가 누락되었습니다.",
	"목표 금액 산정 근거가 불분명합니다.",
	"금지 품목 또는 정책 위반 소지가 있습니다.",
}
