package logic

import (
	"context"
	"fmt"
	"sort"

	"github.com/modan/fas/internal/cache"
	"github.com/modan/fas/internal/dto"
	"github.com/modan/fas/internal/model"
	"gorm.io/gorm"
)

// StatsLogic 통계/대시보드 로직. Read-only; each report is independent and
// a failure in one does not affect the others.
type StatsLogic struct {
	db    *gorm.DB
	cache *cache.Cache
}

func NewStatsLogic(db *gorm.DB, c *cache.Cache) *StatsLogic {
	return &StatsLogic{db: db, cache: c}
}

// Dashboard returns the KPI card values.
func (l *StatsLogic) Dashboard(ctx context.Context) (*dto.DashboardStats, error) {
	var stats dto.DashboardStats
	if l.cache.GetJSON(ctx, cache.KeyDashboard, &stats) {
		return &stats, nil
	}

	db := l.db.WithContext(ctx)

	db.Model(&model.Project{}).Count(&stats.TotalProjects)
	db.Model(&model.Project{}).
		Where("lifecycle_status = ?", model.LifecycleStatusLive).
		Count(&stats.LiveProjects)
	db.Model(&model.Project{}).
		Where("review_status = ?", model.ReviewStatusReview).
		Count(&stats.PendingReviewCount)
	db.Model(&model.Settlement{}).
		Where("status <> ?", model.SettlementStatusCompleted).
		Count(&stats.PendingSettlementCount)
	db.Model(&model.Maker{}).Count(&stats.TotalMakerCount)

	var orderAgg struct {
		Count  int64
		Amount int64
	}
	err := db.Model(&model.Order{}).
		Where("paid = ?", true).
		Select("COUNT(*) as count, COALESCE(SUM(amount), 0) as amount").
		Scan(&orderAgg).Error
	if err != nil {
		return nil, fmt.Errorf("failed to aggregate orders: %w", err)
	}
	stats.TotalOrderCount = orderAgg.Count
	stats.TotalFundedAmount = orderAgg.Amount

	l.cache.SetJSON(ctx, cache.KeyDashboard, &stats)
	return &stats, nil
}

// Daily returns snapshot rows in [from, to], dates as "2006-01-02".
func (l *StatsLogic) Daily(ctx context.Context, from, to string) ([]dto.DailyStatRow, error) {
	query := l.db.WithContext(ctx).Model(&model.DailyStat{})
	if from != "" {
		query = query.Where("stat_date >= ?", from)
	}
	if to != "" {
		query = query.Where("stat_date <= ?", to)
	}

	var snapshots []model.DailyStat
	if err := query.Order("stat_date").Find(&snapshots).Error; err != nil {
		return nil, fmt.Errorf("failed to load daily stats: %w", err)
	}

	rows := make([]dto.DailyStatRow, 0, len(snapshots))
	for _, s := range snapshots {
		rows = append(rows, dto.DailyStatRow{
			Date:            s.StatDate,
			OrderCount:      s.OrderCount,
			OrderAmount:     s.OrderAmount,
			NewProjectCount: s.NewProjectCount,
			NewMakerCount:   s.NewMakerCount,
		})
	}
	return rows, nil
}

// Monthly rolls the daily snapshots of one year up by month.
func (l *StatsLogic) Monthly(ctx context.Context, year string) ([]dto.MonthlyStatRow, error) {
	var snapshots []model.DailyStat
	err := l.db.WithContext(ctx).
		Where("stat_date LIKE ?", year+"-%").
		Find(&snapshots).Error
	if err != nil {
		return nil, fmt.Errorf("failed to load daily stats for %s: %w", year, err)
	}

	byMonth := make(map[string]*dto.MonthlyStatRow)
	for _, s := range snapshots {
		if len(s.StatDate) < 7 {
			continue
		}
		month := s.StatDate[:7]
		row, ok := byMonth[month]
		if !ok {
			row = &dto.MonthlyStatRow{Month: month}
			byMonth[month] = row
		}
		row.OrderCount += s.OrderCount
		row.OrderAmount += s.OrderAmount
	}

	rows := make([]dto.MonthlyStatRow, 0, len(byMonth))
	for _, row := range byMonth {
		rows = append(rows, *row)
	}
	sort.Slice(rows, func(i, j int) bool { return rows[i].Month < rows[j].Month })
	return rows, nil
}

// Revenue reports platform and PG fee income by month of settlement
// completion. Only completed settlements count; fees on unfinished
// settlements are not yet realized.
func (l *StatsLogic) Revenue(ctx context.Context, from, to string) ([]dto.RevenueRow, error) {
	query := l.db.WithContext(ctx).Model(&model.Settlement{}).
		Where("status = ?", model.SettlementStatusCompleted)
	if from != "" {
		query = query.Where("completed_at >= ?", from)
	}
	if to != "" {
		query = query.Where("completed_at <= ?", to)
	}

	var settlements []model.Settlement
	if err := query.Order("completed_at").Find(&settlements).Error; err != nil {
		return nil, fmt.Errorf("failed to load completed settlements: %w", err)
	}

	byMonth := make(map[string]*dto.RevenueRow)
	for _, s := range settlements {
		if s.CompletedAt == nil {
			continue
		}
		month := s.CompletedAt.Format("2006-01")
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

// ProjectPerformance returns funding performance per project, best first.
func (l *StatsLogic) ProjectPerformance(ctx context.Context) ([]dto.ProjectPerformanceRow, error) {
	var rows []struct {
		ProjectID       int64
		Title           string
		TargetAmount    int64
		CurrentAmount   int64
		LifecycleStatus string
		OrderCount      int64
	}

	err := l.db.WithContext(ctx).Raw(`
		SELECT
			p.id as project_id,
			p.title,
			p.target_amount,
			p.current_amount,
			p.lifecycle_status,
			COALESCE(o.order_count, 0) as order_count
		FROM project p
		LEFT JOIN (
			SELECT project_id, COUNT(*) as order_count
			FROM orders
			WHERE paid = ?
			GROUP BY project_id
		) o ON o.project_id = p.id
		WHERE p.lifecycle_status IN (?, ?, ?)
		ORDER BY p.current_amount DESC
	`, true,
		model.LifecycleStatusLive,
		model.LifecycleStatusEndedSuccess,
		model.LifecycleStatusEndedFailed,
	).Scan(&rows).Error
	if err != nil {
		return nil, fmt.Errorf("failed to load project performance: %w", err)
	}

	result := make([]dto.ProjectPerformanceRow, 0, len(rows))
	for _, r := range rows {
		rate := float64(0)
		if r.TargetAmount > 0 {
			rate = float64(r.CurrentAmount) / float64(r.TargetAmount) * 100
		}
		result = append(result, dto.ProjectPerformanceRow{
			ProjectID:       r.ProjectID,
			Title:           r.Title,
			TargetAmount:    r.TargetAmount,
			CurrentAmount:   r.CurrentAmount,
			AchievementRate: rate,
			OrderCount:      r.OrderCount,
			LifecycleStatus: r.LifecycleStatus,
		})
	}
	return result, nil
}
