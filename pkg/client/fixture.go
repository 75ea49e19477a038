package client

import (
	"bytes"
	"context"
	"encoding/csv"
	"fmt"
	"sort"
	"strconv"
	"sync"
	"time"

	"github.com/modan/fas/internal/dto"
	"github.com/modan/fas/internal/model"
	"github.com/modan/fas/internal/workflow"
)

// Fixture is the seeded in-memory DataSource used for demos and tests. It
// honors the same transition rules as the server so console behavior against
// it matches live behavior.
type Fixture struct {
	mu          sync.Mutex
	projects    map[int64]*dto.ProjectReviewDetail
	settlements map[int64]*dto.SettlementDTO
	shipments   map[int64][]*dto.ShipmentDTO // by project id
	nextID      int64
}

// NewFixture seeds a small, internally consistent data set.
func NewFixture() *Fixture {
	f := &Fixture{
		projects:    make(map[int64]*dto.ProjectReviewDetail),
		settlements: make(map[int64]*dto.SettlementDTO),
		shipments:   make(map[int64][]*dto.ShipmentDTO),
		nextID:      100,
	}
	f.seed()
	return f
}

func (f *Fixture) seed() {
	submitted := time.Now().Add(-48 * time.Hour)
	maker := dto.MakerProfile{
		MakerID: 1, Name: "스튜디오 달", Email: "moon@studio-dal.kr",
		Phone: "010-1234-5678", BusinessNumber: "123-45-67890",
		BankName: "국민은행", BankAccount: "123456-78-901234", AccountHolder: "스튜디오 달",
	}

	f.projects[1] = &dto.ProjectReviewDetail{
		ProjectID: 1, Title: "달빛 무드등", Category: "리빙",
		Story: "달의 위상을 따라 밝기가 변하는 무드등입니다. 수공예 유리 셰이드와 " +
			"원목 받침으로 제작하며, 3단계 밝기 조절을 지원합니다. 배송 후 7일 이내 " +
			"단순 변심 환불 및 불량 교환이 가능합니다.",
		TargetAmount: 5000000, StartTime: time.Now().Add(72 * time.Hour),
		EndTime: time.Now().Add(30 * 24 * time.Hour), ReviewStatus: "REVIEW",
		LifecycleStatus: "REVIEW", SubmittedAt: &submitted, Maker: maker,
		Rewards: []dto.RewardDTO{
			{RewardID: 11, Title: "무드등 1개", Description: "기본 구성", Price: 49000, EstimatedShippingMonth: "2026-11"},
			{RewardID: 12, Title: "무드등 2개 세트", Description: "선물 포장 포함", Price: 89000, EstimatedShippingMonth: "2026-11"},
		},
	}
	submittedLater := time.Now().Add(-24 * time.Hour)
	f.projects[2] = &dto.ProjectReviewDetail{
		ProjectID: 2, Title: "고양이 자동 급식기", Category: "펫",
		Story:           "짧은 소개.",
		TargetAmount:    10000000,
		ReviewStatus:    "REVIEW", LifecycleStatus: "REVIEW", SubmittedAt: &submittedLater,
		Maker:   maker,
		Rewards: []dto.RewardDTO{{RewardID: 21, Title: "급식기 1대", Price: 129000}},
	}

	created := time.Now().Add(-72 * time.Hour)
	f.settlements[1] = &dto.SettlementDTO{
		SettlementID: 1, ProjectID: 3, ProjectTitle: "여행용 백팩",
		Status: "PENDING", FirstPaymentStatus: "PENDING", FinalPaymentStatus: "PENDING",
		TotalOrderAmount: 12000000, PGFeeAmount: 396000, PlatformFeeAmount: 600000,
		NetAmount: 11004000, FirstPaymentAmount: 5502000, FinalPaymentAmount: 5502000,
		CreatedAt: created,
	}

	f.shipments[3] = []*dto.ShipmentDTO{
		{ShipmentID: 1, ProjectID: 3, OrderCode: "ORD-2026-0001", SupporterName: "김서연",
			Address: "서울시 마포구", RewardTitle: "백팩 1개", Status: "READY"},
		{ShipmentID: 2, ProjectID: 3, OrderCode: "ORD-2026-0002", SupporterName: "이준호",
			Address: "부산시 해운대구", RewardTitle: "백팩 1개", Status: "READY"},
	}
}

func (f *Fixture) FetchReviewProjects(ctx context.Context) ([]dto.ReviewProjectSummary, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	var out []dto.ReviewProjectSummary
	for _, p := range f.projects {
		out = append(out, dto.ReviewProjectSummary{
			ProjectID: p.ProjectID, Title: p.Title, Category: p.Category,
			MakerID: p.Maker.MakerID, MakerName: p.Maker.Name,
			TargetAmount: p.TargetAmount, ReviewStatus: p.ReviewStatus,
			LifecycleStatus: p.LifecycleStatus, SubmittedAt: p.SubmittedAt,
		})
	}
	// newest submission first, same as the live list
	sort.Slice(out, func(i, j int) bool {
		ti, tj := out[i].SubmittedAt, out[j].SubmittedAt
		if ti != nil && tj != nil && !ti.Equal(*tj) {
			return ti.After(*tj)
		}
		return out[i].ProjectID > out[j].ProjectID
	})
	return out, nil
}

func (f *Fixture) FetchProjectDetail(ctx context.Context, projectID int64) (*dto.ProjectReviewDetail, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	p, ok := f.projects[projectID]
	if !ok {
		return nil, fmt.Errorf("project %d not found", projectID)
	}
	copied := *p
	return &copied, nil
}

func (f *Fixture) ApproveProject(ctx context.Context, projectID int64) (*dto.ReviewStatusResponse, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	p, ok := f.projects[projectID]
	if !ok {
		return nil, fmt.Errorf("project %d not found", projectID)
	}
	if !workflow.CanReview(model.ReviewStatus(p.ReviewStatus)) {
		return nil, fmt.Errorf("project %d is not under review", projectID)
	}

	p.ReviewStatus = string(model.ReviewStatusApproved)
	p.LifecycleStatus = string(workflow.LifecycleAfterApproval(p.StartTime, time.Now()))
	return &dto.ReviewStatusResponse{
		ProjectID: p.ProjectID, ReviewStatus: p.ReviewStatus, LifecycleStatus: p.LifecycleStatus,
	}, nil
}

func (f *Fixture) RejectProject(ctx context.Context, projectID int64, reason string) (*dto.ReviewStatusResponse, error) {
	if err := workflow.ValidateRejectReason(reason); err != nil {
		return nil, err
	}

	f.mu.Lock()
	defer f.mu.Unlock()

	p, ok := f.projects[projectID]
	if !ok {
		return nil, fmt.Errorf("project %d not found", projectID)
	}
	if !workflow.CanReview(model.ReviewStatus(p.ReviewStatus)) {
		return nil, fmt.Errorf("project %d is not under review", projectID)
	}

	p.ReviewStatus = string(model.ReviewStatusRejected)
	p.LifecycleStatus = string(model.LifecycleStatusRejected)
	p.RejectReason = reason
	return &dto.ReviewStatusResponse{
		ProjectID: p.ProjectID, ReviewStatus: p.ReviewStatus,
		LifecycleStatus: p.LifecycleStatus, RejectReason: reason,
	}, nil
}

func (f *Fixture) FetchRejectReasonPresets(ctx context.Context) ([]string, error) {
	return DefaultRejectReasonPresets, nil
}

func (f *Fixture) FetchMakerProfile(ctx context.Context, makerID int64) (*dto.MakerProfile, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	for _, p := range f.projects {
		if p.Maker.MakerID == makerID {
			m := p.Maker
			return &m, nil
		}
	}
	return nil, fmt.Errorf("maker %d not found", makerID)
}

func (f *Fixture) FetchSettlementSummary(ctx context.Context) (*dto.SettlementSummary, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	var summary dto.SettlementSummary
	for _, s := range f.settlements {
		switch model.SettlementStatus(s.Status) {
		case model.SettlementStatusPending:
			summary.PendingCount++
			summary.PendingAmount += s.NetAmount
		case model.SettlementStatusFirstPaid:
			summary.FirstPaidCount++
			summary.FirstPaidAmount += s.NetAmount
		case model.SettlementStatusFinalReady:
			summary.FinalReadyCount++
			summary.FinalReadyAmount += s.NetAmount
		case model.SettlementStatusCompleted:
			summary.CompletedCount++
			summary.CompletedAmount += s.NetAmount
		}
	}
	return &summary, nil
}

func (f *Fixture) FetchSettlements(ctx context.Context, page, size int, status string) (*dto.SettlementPage, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	if page < 0 {
		page = 0
	}
	if size <= 0 {
		size = 20
	}

	var all []dto.SettlementDTO
	for _, s := range f.settlements {
		if status == "" || s.Status == status {
			all = append(all, *s)
		}
	}

	total := int64(len(all))
	start := page * size
	end := start + size
	if start > len(all) {
		start = len(all)
	}
	if end > len(all) {
		end = len(all)
	}

	return &dto.SettlementPage{
		Content: all[start:end], Number: page, Size: size,
		TotalPages: dto.TotalPages(total, size), TotalElements: total,
	}, nil
}

func (f *Fixture) FetchSettlementDetail(ctx context.Context, settlementID int64) (*dto.SettlementDTO, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	s, ok := f.settlements[settlementID]
	if !ok {
		return nil, fmt.Errorf("settlement %d not found", settlementID)
	}
	copied := *s
	return &copied, nil
}

func (f *Fixture) CreateSettlement(ctx context.Context, projectID int64) (*dto.SettlementDTO, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	for _, s := range f.settlements {
		if s.ProjectID == projectID {
			return nil, fmt.Errorf("settlement for project %d already exists", projectID)
		}
	}

	f.nextID++
	s := &dto.SettlementDTO{
		SettlementID: f.nextID, ProjectID: projectID,
		Status:             string(model.SettlementStatusPending),
		FirstPaymentStatus: string(model.PaymentStatusPending),
		FinalPaymentStatus: string(model.FinalPaymentStatusPending),
		CreatedAt:          time.Now(),
	}
	f.settlements[s.SettlementID] = s
	copied := *s
	return &copied, nil
}

func (f *Fixture) FirstPayout(ctx context.Context, settlementID int64) (*dto.SettlementDTO, error) {
	return f.applySettlementAction(settlementID, workflow.SettlementActionFirstPayout)
}

func (f *Fixture) FinalReady(ctx context.Context, settlementID int64) (*dto.SettlementDTO, error) {
	return f.applySettlementAction(settlementID, workflow.SettlementActionFinalReady)
}

func (f *Fixture) FinalPayout(ctx context.Context, settlementID int64) (*dto.SettlementDTO, error) {
	return f.applySettlementAction(settlementID, workflow.SettlementActionFinalPayout)
}

func (f *Fixture) applySettlementAction(settlementID int64, action workflow.SettlementAction) (*dto.SettlementDTO, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	s, ok := f.settlements[settlementID]
	if !ok {
		return nil, fmt.Errorf("settlement %d not found", settlementID)
	}

	next, err := workflow.ApplySettlementAction(workflow.SettlementState{
		Status:             model.SettlementStatus(s.Status),
		FirstPaymentStatus: model.PaymentStatus(s.FirstPaymentStatus),
		FinalPaymentStatus: model.FinalPaymentStatus(s.FinalPaymentStatus),
	}, action)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	s.Status = string(next.Status)
	s.FirstPaymentStatus = string(next.FirstPaymentStatus)
	s.FinalPaymentStatus = string(next.FinalPaymentStatus)
	switch action {
	case workflow.SettlementActionFirstPayout:
		s.FirstPaidAt = &now
	case workflow.SettlementActionFinalPayout:
		s.CompletedAt = &now
	}

	copied := *s
	return &copied, nil
}

// ExportSettlementsCSV renders the same columns as the server-side export.
func (f *Fixture) ExportSettlementsCSV(ctx context.Context) ([]byte, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	ids := make([]int64, 0, len(f.settlements))
	for id := range f.settlements {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })

	var buf bytes.Buffer
	w := csv.NewWriter(&buf)
	w.Write([]string{
		"settlement_id", "project_id", "project_title", "status",
		"total_order_amount", "pg_fee_amount", "platform_fee_amount",
		"net_amount", "first_payment_amount", "final_payment_amount",
		"first_paid_at", "completed_at",
	})
	for _, id := range ids {
		s := f.settlements[id]
		w.Write([]string{
			strconv.FormatInt(s.SettlementID, 10),
			strconv.FormatInt(s.ProjectID, 10),
			s.ProjectTitle,
			s.Status,
			strconv.FormatInt(s.TotalOrderAmount, 10),
			strconv.FormatInt(s.PGFeeAmount, 10),
			strconv.FormatInt(s.PlatformFeeAmount, 10),
			strconv.FormatInt(s.NetAmount, 10),
			strconv.FormatInt(s.FirstPaymentAmount, 10),
			strconv.FormatInt(s.FinalPaymentAmount, 10),
			exportTime(s.FirstPaidAt),
			exportTime(s.CompletedAt),
		})
	}
	w.Flush()
	return buf.Bytes(), w.Error()
}

func exportTime(t *time.Time) string {
	if t == nil {
		return ""
	}
	return t.Format(time.RFC3339)
}

func (f *Fixture) FetchShipments(ctx context.Context, projectID int64, status string, page, size int) (*dto.ShipmentPage, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	if page < 0 {
		page = 0
	}
	if size <= 0 {
		size = 20
	}

	var all []dto.ShipmentDTO
	for _, s := range f.shipments[projectID] {
		if status == "" || s.Status == status {
			all = append(all, *s)
		}
	}

	total := int64(len(all))
	start := page * size
	end := start + size
	if start > len(all) {
		start = len(all)
	}
	if end > len(all) {
		end = len(all)
	}

	return &dto.ShipmentPage{
		Content: all[start:end], Number: page, Size: size,
		TotalPages: dto.TotalPages(total, size), TotalElements: total,
	}, nil
}

func (f *Fixture) FetchShipment(ctx context.Context, projectID, shipmentID int64) (*dto.ShipmentDTO, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	for _, s := range f.shipments[projectID] {
		if s.ShipmentID == shipmentID {
			copied := *s
			return &copied, nil
		}
	}
	return nil, fmt.Errorf("shipment %d not found", shipmentID)
}

func (f *Fixture) UpdateShipmentStatus(ctx context.Context, projectID, shipmentID int64, status, issueReason string) (*dto.ShipmentDTO, error) {
	if err := workflow.ValidateShipmentUpdate(model.ShipmentStatus(status), issueReason); err != nil {
		return nil, err
	}

	f.mu.Lock()
	defer f.mu.Unlock()

	for _, s := range f.shipments[projectID] {
		if s.ShipmentID == shipmentID {
			s.Status = status
			s.IssueReason = ""
			if status == string(model.ShipmentStatusIssue) {
				s.IssueReason = issueReason
			}
			copied := *s
			return &copied, nil
		}
	}
	return nil, fmt.Errorf("shipment %d not found", shipmentID)
}

func (f *Fixture) BulkUpdateShipmentStatus(ctx context.Context, projectID int64, req dto.BulkShipmentStatusUpdate) (*dto.BulkStatusResult, error) {
	if err := workflow.ValidateShipmentUpdate(model.ShipmentStatus(req.Status), req.IssueReason); err != nil {
		return nil, err
	}

	f.mu.Lock()
	defer f.mu.Unlock()

	wanted := make(map[int64]bool, len(req.ShipmentIDs))
	for _, id := range req.ShipmentIDs {
		wanted[id] = true
	}

	var updated int64
	for _, s := range f.shipments[projectID] {
		if wanted[s.ShipmentID] {
			s.Status = req.Status
			s.IssueReason = ""
			if req.Status == string(model.ShipmentStatusIssue) {
				s.IssueReason = req.IssueReason
			}
			updated++
		}
	}
	return &dto.BulkStatusResult{UpdatedCount: updated}, nil
}

func (f *Fixture) BulkUploadTracking(ctx context.Context, projectID int64, rows []dto.TrackingRow) (*dto.BulkTrackingResult, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	byCode := make(map[string]*dto.ShipmentDTO)
	for _, s := range f.shipments[projectID] {
		byCode[s.OrderCode] = s
	}

	result := &dto.BulkTrackingResult{Failures: []dto.BulkTrackingFailure{}}
	now := time.Now()
	for _, row := range rows {
		s, ok := byCode[row.OrderCode]
		if !ok {
			result.Failures = append(result.Failures, dto.BulkTrackingFailure{
				OrderCode: row.OrderCode, Reason: fmt.Sprintf("order %s not found", row.OrderCode),
			})
			continue
		}
		s.CourierName = row.CourierName
		s.TrackingNumber = row.TrackingNumber
		s.Status = string(model.ShipmentStatusShipped)
		s.ShippedAt = &now
		result.SuccessCount++
	}
	result.FailureCount = len(result.Failures)
	return result, nil
}

func (f *Fixture) FetchDashboard(ctx context.Context) (*dto.DashboardStats, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	stats := &dto.DashboardStats{TotalMakerCount: 1}
	stats.TotalProjects = int64(len(f.projects))
	for _, p := range f.projects {
		if p.ReviewStatus == string(model.ReviewStatusReview) {
			stats.PendingReviewCount++
		}
	}
	for _, s := range f.settlements {
		if s.Status != string(model.SettlementStatusCompleted) {
			stats.PendingSettlementCount++
		}
		stats.TotalFundedAmount += s.TotalOrderAmount
	}
	return stats, nil
}

func (f *Fixture) FetchDailyStats(ctx context.Context, from, to string) ([]dto.DailyStatRow, error) {
	day := time.Now().AddDate(0, 0, -1).Format("2006-01-02")
	return []dto.DailyStatRow{
		{Date: day, OrderCount: 42, OrderAmount: 2184000, NewProjectCount: 3, NewMakerCount: 1},
	}, nil
}

func (f *Fixture) FetchMonthlyStats(ctx context.Context, year string) ([]dto.MonthlyStatRow, error) {
	if year == "" {
		year = time.Now().Format("2006")
	}
	return []dto.MonthlyStatRow{
		{Month: year + "-07", OrderCount: 980, OrderAmount: 51200000},
		{Month: year + "-08", OrderCount: 1210, OrderAmount: 63400000},
	}, nil
}

// FetchRevenueStats derives fee income from the completed settlements, by
// month of completion, the way the live report does.
func (f *Fixture) FetchRevenueStats(ctx context.Context, from, to string) ([]dto.RevenueRow, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	byMonth := make(map[string]*dto.RevenueRow)
	for _, s := range f.settlements {
		if s.Status != string(model.SettlementStatusCompleted) || s.CompletedAt == nil {
			continue
		}
		day := s.CompletedAt.Format("2006-01-02")
		if from != "" && day < from {
			continue
		}
		if to != "" && day > to {
			continue
		}
		month := day[:7]
		row, ok := byMonth[month]
		if !ok {
			row = &dto.RevenueRow{Month: month}
			byMonth[month] = row
		}
		row.PGFeeAmount += s.PGFeeAmount
		row.PlatformFeeAmount += s.PlatformFeeAmount
		row.PayoutAmount += s.NetAmount
	}

	rows := make([]dto.RevenueRow, 0, len(byMonth))
	for _, row := range byMonth {
		rows = append(rows, *row)
	}
	sort.Slice(rows, func(i, j int) bool { return rows[i].Month < rows[j].Month })
	return rows, nil
}

func (f *Fixture) FetchProjectPerformance(ctx context.Context) ([]dto.ProjectPerformanceRow, error) {
	return []dto.ProjectPerformanceRow{
		{ProjectID: 3, Title: "여행용 백팩", TargetAmount: 8000000, CurrentAmount: 12000000,
			AchievementRate: 150, OrderCount: 214, LifecycleStatus: "ENDED_SUCCESS"},
		{ProjectID: 4, Title: "핸드드립 세트", TargetAmount: 3000000, CurrentAmount: 600000,
			AchievementRate: 20, OrderCount: 12, LifecycleStatus: "ENDED_FAILED"},
	}, nil
}
