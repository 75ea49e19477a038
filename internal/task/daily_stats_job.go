package task

import (
	"time"

	"github.com/go-co-op/gocron/v2"
	"github.com/modan/fas/internal/config"
	"github.com/modan/fas/internal/logger"
	"github.com/modan/fas/internal/model"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// DailyStatsJob snapshots yesterday's order, project and maker counts into
// the daily_stat table the report endpoints read from.
type DailyStatsJob struct {
	db     *gorm.DB
	config *config.Config
}

func NewDailyStatsJob(db *gorm.DB, cfg *config.Config) *DailyStatsJob {
	return &DailyStatsJob{db: db, config: cfg}
}

func (j *DailyStatsJob) GetName() string {
	return "daily_stats_snapshot"
}

func (j *DailyStatsJob) GetSchedule() gocron.JobDefinition {
	return gocron.DailyJob(1, gocron.NewAtTimes(
		gocron.NewAtTime(uint(j.config.Task.StatsHour), uint(j.config.Task.StatsMinute), 0),
	))
}

func (j *DailyStatsJob) Execute() {
	yesterday := time.Now().AddDate(0, 0, -1)
	if err := j.Snapshot(yesterday); err != nil {
		logger.Error("daily stats snapshot failed: %v", err)
	}
}

// Snapshot aggregates one calendar day and upserts its row, so re-running
// the job for the same day is harmless.
func (j *DailyStatsJob) Snapshot(day time.Time) error {
	dayStart := time.Date(day.Year(), day.Month(), day.Day(), 0, 0, 0, 0, day.Location())
	dayEnd := dayStart.AddDate(0, 0, 1)
	statDate := dayStart.Format("2006-01-02")

	var orderAgg struct {
		Count  int64
		Amount int64
	}
	err := j.db.Model(&model.Order{}).
		Where("paid = ? AND created_at >= ? AND created_at < ?", true, dayStart, dayEnd).
		Select("COUNT(*) as count, COALESCE(SUM(amount), 0) as amount").
		Scan(&orderAgg).Error
	if err != nil {
		return err
	}

	var newProjects int64
	j.db.Model(&model.Project{}).
		Where("created_at >= ? AND created_at < ?", dayStart, dayEnd).
		Count(&newProjects)

	var newMakers int64
	j.db.Model(&model.Maker{}).
		Where("created_at >= ? AND created_at < ?", dayStart, dayEnd).
		Count(&newMakers)

	stat := model.DailyStat{
		StatDate:        statDate,
		OrderCount:      orderAgg.Count,
		OrderAmount:     orderAgg.Amount,
		NewProjectCount: newProjects,
		NewMakerCount:   newMakers,
	}

	err = j.db.Clauses(clause.OnConflict{
		Columns: []clause.Column{{Name: "stat_date"}},
		DoUpdates: clause.AssignmentColumns([]string{
			"order_count", "order_amount", "new_project_count", "new_maker_count",
		}),
	}).Create(&stat).Error
	if err != nil {
		return err
	}

	logger.Info("daily stats snapshot for %s: orders=%d amount=%d",
		statDate, orderAgg.Count, orderAgg.Amount)
	return nil
}
