package logic

import (
	"context"
	"errors"
	"fmt"
	"math"
	"time"

	"github.com/modan/fas/internal/cache"
	"github.com/modan/fas/internal/config"
	"github.com/modan/fas/internal/dto"
	"github.com/modan/fas/internal/logger"
	"github.com/modan/fas/internal/model"
	"github.com/modan/fas/internal/payment"
	"github.com/modan/fas/internal/workflow"
	"gorm.io/gorm"
)

// SettlementLogic 정산 로직. Transitions are strictly sequential; every
// mutation runs a guarded conditional update so a stale console tab or a
// double-click loses the race with a state conflict instead of a double payout.
type SettlementLogic struct {
	db    *gorm.DB
	cache *cache.Cache
	pay   *payment.Client
	fees  config.PaymentConfig
}

func NewSettlementLogic(db *gorm.DB, c *cache.Cache, pay *payment.Client, fees config.PaymentConfig) *SettlementLogic {
	return &SettlementLogic{db: db, cache: c, pay: pay, fees: fees}
}

// Create opens a PENDING settlement for a successfully ended project.
// Amounts are computed here, once, from the project's paid orders; the unique
// project_id index is the idempotency guarantee for a duplicated create.
func (l *SettlementLogic) Create(ctx context.Context, projectID int64) (*model.Settlement, error) {
	var project model.Project
	if err := l.db.WithContext(ctx).First(&project, projectID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: project %d", ErrNotFound, projectID)
		}
		return nil, fmt.Errorf("failed to load project %d: %w", projectID, err)
	}

	if project.LifecycleStatus != model.LifecycleStatusEndedSuccess {
		return nil, fmt.Errorf("%w: project %d has not ended successfully (status %s)",
			ErrStateConflict, projectID, project.LifecycleStatus)
	}

	var total int64
	err := l.db.WithContext(ctx).Model(&model.Order{}).
		Where("project_id = ? AND paid = ?", projectID, true).
		Select("COALESCE(SUM(amount), 0)").
		Scan(&total).Error
	if err != nil {
		return nil, fmt.Errorf("failed to sum orders for project %d: %w", projectID, err)
	}
	if total == 0 {
		return nil, fmt.Errorf("%w: project %d has no paid orders", ErrStateConflict, projectID)
	}

	settlement := model.Settlement{ProjectID: projectID}
	applyAmounts(&settlement, total, l.fees)
	st := workflow.NewSettlementState()
	settlement.Status = st.Status
	settlement.FirstPaymentStatus = st.FirstPaymentStatus
	settlement.FinalPaymentStatus = st.FinalPaymentStatus

	if err := l.db.WithContext(ctx).Create(&settlement).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, fmt.Errorf("%w: settlement for project %d", ErrDuplicate, projectID)
		}
		return nil, fmt.Errorf("failed to create settlement for project %d: %w", projectID, err)
	}

	l.cache.Invalidate(ctx, cache.KeySettlementSummary, cache.KeyDashboard)
	logger.Info("settlement %d created for project %d: total=%d net=%d",
		settlement.ID, projectID, total, settlement.NetAmount)

	return l.Get(ctx, settlement.ID)
}

// applyAmounts fixes all monetary fields from the gross order total. KRW has
// no fractional unit, so fees round half up to whole won and the final
// payment takes whatever remainder the first payment leaves behind.
func applyAmounts(s *model.Settlement, total int64, fees config.PaymentConfig) {
	pgFee := int64(math.Round(float64(total) * fees.PGFeeRate))
	platformFee := int64(math.Round(float64(total) * fees.PlatformFeeRate))
	net := total - pgFee - platformFee
	first := int64(math.Round(float64(net) * fees.FirstPaymentRate))

	s.TotalOrderAmount = total
	s.PGFeeAmount = pgFee
	s.PlatformFeeAmount = platformFee
	s.NetAmount = net
	s.FirstPaymentAmount = first
	s.FinalPaymentAmount = net - first
}

// Get loads one settlement with its project.
func (l *SettlementLogic) Get(ctx context.Context, id int64) (*model.Settlement, error) {
	var s model.Settlement
	err := l.db.WithContext(ctx).Preload("Project").First(&s, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: settlement %d", ErrNotFound, id)
		}
		return nil, fmt.Errorf("failed to load settlement %d: %w", id, err)
	}
	return &s, nil
}

// List returns one offset page, newest first. page is 0-based.
func (l *SettlementLogic) List(ctx context.Context, page, size int, status string) ([]model.Settlement, int64, error) {
	if page < 0 {
		page = 0
	}
	if size <= 0 {
		size = 20
	}

	query := l.db.WithContext(ctx).Model(&model.Settlement{})
	if status != "" {
		query = query.Where("status = ?", status)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to count settlements: %w", err)
	}

	var settlements []model.Settlement
	err := query.Preload("Project").
		Order("id DESC").
		Offset(page * size).
		Limit(size).
		Find(&settlements).Error
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list settlements: %w", err)
	}

	return settlements, total, nil
}

// ListAll returns every settlement for the CSV export.
func (l *SettlementLogic) ListAll(ctx context.Context) ([]model.Settlement, error) {
	var settlements []model.Settlement
	err := l.db.WithContext(ctx).Preload("Project").Order("id").Find(&settlements).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list settlements: %w", err)
	}
	return settlements, nil
}

// Summary aggregates counts and net amounts per status for the summary cards.
func (l *SettlementLogic) Summary(ctx context.Context) (*dto.SettlementSummary, error) {
	var summary dto.SettlementSummary
	if l.cache.GetJSON(ctx, cache.KeySettlementSummary, &summary) {
		return &summary, nil
	}

	var rows []struct {
		Status model.SettlementStatus
		Count  int64
		Amount int64
	}
	err := l.db.WithContext(ctx).Model(&model.Settlement{}).
		Select("status, COUNT(*) as count, COALESCE(SUM(net_amount), 0) as amount").
		Group("status").
		Scan(&rows).Error
	if err != nil {
		return nil, fmt.Errorf("failed to aggregate settlements: %w", err)
	}

	for _, row := range rows {
		switch row.Status {
		case model.SettlementStatusPending:
			summary.PendingCount, summary.PendingAmount = row.Count, row.Amount
		case model.SettlementStatusFirstPaid:
			summary.FirstPaidCount, summary.FirstPaidAmount = row.Count, row.Amount
		case model.SettlementStatusFinalReady:
			summary.FinalReadyCount, summary.FinalReadyAmount = row.Count, row.Amount
		case model.SettlementStatusCompleted:
			summary.CompletedCount, summary.CompletedAmount = row.Count, row.Amount
		}
	}

	l.cache.SetJSON(ctx, cache.KeySettlementSummary, &summary)
	return &summary, nil
}

// FirstPayout pays the advance and moves PENDING -> FIRST_PAID. The guarded
// update claims the transition before any money moves, so the loser of a
// concurrent duplicate gets a state conflict instead of a second transfer.
func (l *SettlementLogic) FirstPayout(ctx context.Context, id int64) (*model.Settlement, error) {
	s, err := l.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	next, err := workflow.ApplySettlementAction(settlementState(s), workflow.SettlementActionFirstPayout)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrStateConflict, err)
	}

	maker, err := l.payoutDestination(ctx, s.ProjectID)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	res := l.db.WithContext(ctx).Model(&model.Settlement{}).
		Where("id = ? AND status = ?", id, model.SettlementStatusPending).
		Updates(map[string]interface{}{
			"status":               next.Status,
			"first_payment_status": next.FirstPaymentStatus,
			"first_paid_at":        now,
		})
	if res.Error != nil {
		return nil, fmt.Errorf("failed to claim first payout: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return nil, fmt.Errorf("%w: settlement %d left PENDING concurrently", ErrStateConflict, id)
	}

	result, err := l.pay.ExecutePayout(ctx, payment.PayoutRequest{
		SettlementID:  s.ID,
		Kind:          payment.PayoutKindFirst,
		Amount:        s.FirstPaymentAmount,
		BankName:      maker.BankName,
		BankAccount:   maker.BankAccount,
		AccountHolder: maker.AccountHolder,
	})
	if err != nil {
		l.releaseClaim(ctx, id, next.Status, map[string]interface{}{
			"status":               model.SettlementStatusPending,
			"first_payment_status": model.PaymentStatusPending,
			"first_paid_at":        nil,
		})
		return nil, fmt.Errorf("first payout for settlement %d failed: %w", id, err)
	}

	if err := l.db.WithContext(ctx).Model(&model.Settlement{}).
		Where("id = ?", id).
		Update("first_payout_ref", result.Reference).Error; err != nil {
		logger.Error("settlement %d paid (ref=%s) but recording the ref failed: %v", id, result.Reference, err)
	}

	l.cache.Invalidate(ctx, cache.KeySettlementSummary, cache.KeyDashboard)
	logger.Info("settlement %d first payout done: amount=%d ref=%s", id, s.FirstPaymentAmount, result.Reference)
	return l.Get(ctx, id)
}

// releaseClaim undoes a claimed transition after a failed payout so the
// action can be retried.
func (l *SettlementLogic) releaseClaim(ctx context.Context, id int64, claimed model.SettlementStatus, restore map[string]interface{}) {
	res := l.db.WithContext(ctx).Model(&model.Settlement{}).
		Where("id = ? AND status = ?", id, claimed).
		Updates(restore)
	if res.Error != nil || res.RowsAffected == 0 {
		logger.Error("settlement %d: failed to release %s claim after payout failure: %v",
			id, claimed, res.Error)
	}
}

// FinalReady marks the final payment as ready for payout. No money moves.
func (l *SettlementLogic) FinalReady(ctx context.Context, id int64) (*model.Settlement, error) {
	s, err := l.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	next, err := workflow.ApplySettlementAction(settlementState(s), workflow.SettlementActionFinalReady)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrStateConflict, err)
	}

	res := l.db.WithContext(ctx).Model(&model.Settlement{}).
		Where("id = ? AND status = ?", id, model.SettlementStatusFirstPaid).
		Updates(map[string]interface{}{
			"status":               next.Status,
			"final_payment_status": next.FinalPaymentStatus,
		})
	if res.Error != nil {
		return nil, fmt.Errorf("failed to mark settlement %d final-ready: %w", id, res.Error)
	}
	if res.RowsAffected == 0 {
		return nil, fmt.Errorf("%w: settlement %d left FIRST_PAID concurrently", ErrStateConflict, id)
	}

	l.cache.Invalidate(ctx, cache.KeySettlementSummary)
	logger.Info("settlement %d marked final-ready", id)
	return l.Get(ctx, id)
}

// FinalPayout pays the remainder and completes the settlement. Same claim
// ordering as FirstPayout: the state moves first, the transfer follows.
func (l *SettlementLogic) FinalPayout(ctx context.Context, id int64) (*model.Settlement, error) {
	s, err := l.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	next, err := workflow.ApplySettlementAction(settlementState(s), workflow.SettlementActionFinalPayout)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrStateConflict, err)
	}

	maker, err := l.payoutDestination(ctx, s.ProjectID)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	res := l.db.WithContext(ctx).Model(&model.Settlement{}).
		Where("id = ? AND status = ?", id, model.SettlementStatusFinalReady).
		Updates(map[string]interface{}{
			"status":               next.Status,
			"final_payment_status": next.FinalPaymentStatus,
			"completed_at":         now,
		})
	if res.Error != nil {
		return nil, fmt.Errorf("failed to claim final payout: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return nil, fmt.Errorf("%w: settlement %d left FINAL_READY concurrently", ErrStateConflict, id)
	}

	result, err := l.pay.ExecutePayout(ctx, payment.PayoutRequest{
		SettlementID:  s.ID,
		Kind:          payment.PayoutKindFinal,
		Amount:        s.FinalPaymentAmount,
		BankName:      maker.BankName,
		BankAccount:   maker.BankAccount,
		AccountHolder: maker.AccountHolder,
	})
	if err != nil {
		l.releaseClaim(ctx, id, next.Status, map[string]interface{}{
			"status":               model.SettlementStatusFinalReady,
			"final_payment_status": model.FinalPaymentStatusReady,
			"completed_at":         nil,
		})
		return nil, fmt.Errorf("final payout for settlement %d failed: %w", id, err)
	}

	if err := l.db.WithContext(ctx).Model(&model.Settlement{}).
		Where("id = ?", id).
		Update("final_payout_ref", result.Reference).Error; err != nil {
		logger.Error("settlement %d paid (ref=%s) but recording the ref failed: %v", id, result.Reference, err)
	}

	l.cache.Invalidate(ctx, cache.KeySettlementSummary, cache.KeyDashboard)
	logger.Info("settlement %d completed: amount=%d ref=%s", id, s.FinalPaymentAmount, result.Reference)
	return l.Get(ctx, id)
}

func (l *SettlementLogic) payoutDestination(ctx context.Context, projectID int64) (*model.Maker, error) {
	var project model.Project
	if err := l.db.WithContext(ctx).Preload("Maker").First(&project, projectID).Error; err != nil {
		return nil, fmt.Errorf("failed to load payout destination for project %d: %w", projectID, err)
	}
	return &project.Maker, nil
}

func settlementState(s *model.Settlement) workflow.SettlementState {
	return workflow.SettlementState{
		Status:             s.Status,
		FirstPaymentStatus: s.FirstPaymentStatus,
		FinalPaymentStatus: s.FinalPaymentStatus,
	}
}
