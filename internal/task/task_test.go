package task

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/glebarez/sqlite"
	"github.com/modan/fas/internal/config"
	"github.com/modan/fas/internal/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(filepath.Join(t.TempDir(), "test.db")), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(
		&model.Maker{}, &model.Project{}, &model.Reward{},
		&model.Order{}, &model.Settlement{}, &model.Shipment{}, &model.DailyStat{},
	))
	return db
}

func seedLifecycleProject(t *testing.T, db *gorm.DB, status model.LifecycleStatus, start, end time.Time, current, target int64) *model.Project {
	t.Helper()

	project := model.Project{
		Title:           "테스트 프로젝트",
		TargetAmount:    target,
		CurrentAmount:   current,
		StartTime:       start,
		EndTime:         end,
		LifecycleStatus: status,
	}
	require.NoError(t, db.Create(&project).Error)
	return &project
}

func lifecycleOf(t *testing.T, db *gorm.DB, id int64) model.LifecycleStatus {
	t.Helper()

	var project model.Project
	require.NoError(t, db.First(&project, id).Error)
	return project.LifecycleStatus
}

func TestProjectLifecycleJobOpensAndCloses(t *testing.T) {
	db := newTestDB(t)
	cfg := &config.Config{Task: config.TaskConfig{Interval: 60}}
	job := NewProjectLifecycleJob(db, cfg)

	now := time.Now()

	opens := seedLifecycleProject(t, db, model.LifecycleStatusScheduled,
		now.Add(-time.Hour), now.Add(24*time.Hour), 0, 1000000)
	waits := seedLifecycleProject(t, db, model.LifecycleStatusScheduled,
		now.Add(time.Hour), now.Add(24*time.Hour), 0, 1000000)
	succeeds := seedLifecycleProject(t, db, model.LifecycleStatusLive,
		now.Add(-48*time.Hour), now.Add(-time.Hour), 1500000, 1000000)
	fails := seedLifecycleProject(t, db, model.LifecycleStatusLive,
		now.Add(-48*time.Hour), now.Add(-time.Hour), 400000, 1000000)
	running := seedLifecycleProject(t, db, model.LifecycleStatusLive,
		now.Add(-time.Hour), now.Add(24*time.Hour), 400000, 1000000)

	job.Execute()

	assert.Equal(t, model.LifecycleStatusLive, lifecycleOf(t, db, opens.ID))
	assert.Equal(t, model.LifecycleStatusScheduled, lifecycleOf(t, db, waits.ID))
	assert.Equal(t, model.LifecycleStatusEndedSuccess, lifecycleOf(t, db, succeeds.ID))
	assert.Equal(t, model.LifecycleStatusEndedFailed, lifecycleOf(t, db, fails.ID))
	assert.Equal(t, model.LifecycleStatusLive, lifecycleOf(t, db, running.ID))
}

func TestDailyStatsSnapshotUpsert(t *testing.T) {
	db := newTestDB(t)
	cfg := &config.Config{Task: config.TaskConfig{StatsHour: 0, StatsMinute: 10}}
	job := NewDailyStatsJob(db, cfg)

	day := time.Now().AddDate(0, 0, -1)
	dayStart := time.Date(day.Year(), day.Month(), day.Day(), 9, 0, 0, 0, day.Location())

	maker := model.Maker{Name: "스튜디오 달", Email: "moon@studio-dal.kr", CreatedAt: dayStart}
	require.NoError(t, db.Create(&maker).Error)

	orders := []model.Order{
		{OrderCode: "ORD-0001", ProjectID: 1, SupporterName: "김서연", Amount: 49000, Paid: true, CreatedAt: dayStart},
		{OrderCode: "ORD-0002", ProjectID: 1, SupporterName: "이준호", Amount: 89000, Paid: true, CreatedAt: dayStart},
		{OrderCode: "ORD-0003", ProjectID: 1, SupporterName: "박지민", Amount: 49000, Paid: false, CreatedAt: dayStart},
	}
	for i := range orders {
		require.NoError(t, db.Create(&orders[i]).Error)
	}

	require.NoError(t, job.Snapshot(day))

	var stat model.DailyStat
	statDate := day.Format("2006-01-02")
	require.NoError(t, db.Where("stat_date = ?", statDate).First(&stat).Error)

	assert.Equal(t, int64(2), stat.OrderCount, "unpaid orders are not counted")
	assert.Equal(t, int64(138000), stat.OrderAmount)
	assert.Equal(t, int64(1), stat.NewMakerCount)

	// re-running the same day replaces the row instead of duplicating it
	extra := model.Order{OrderCode: "ORD-0004", ProjectID: 1, SupporterName: "최수아",
		Amount: 10000, Paid: true, CreatedAt: dayStart}
	require.NoError(t, db.Create(&extra).Error)
	require.NoError(t, job.Snapshot(day))

	var count int64
	db.Model(&model.DailyStat{}).Where("stat_date = ?", statDate).Count(&count)
	assert.Equal(t, int64(1), count)

	require.NoError(t, db.Where("stat_date = ?", statDate).First(&stat).Error)
	assert.Equal(t, int64(3), stat.OrderCount)
	assert.Equal(t, int64(148000), stat.OrderAmount)
}
