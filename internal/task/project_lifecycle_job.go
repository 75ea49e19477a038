package task

import (
	"time"

	"github.com/go-co-op/gocron/v2"
	"github.com/modan/fas/internal/config"
	"github.com/modan/fas/internal/logger"
	"github.com/modan/fas/internal/model"
	"gorm.io/gorm"
)

// ProjectLifecycleJob rolls projects forward along their schedule:
// SCHEDULED opens at start time, LIVE closes at end time as a success or a
// failure depending on whether the target was reached.
type ProjectLifecycleJob struct {
	db     *gorm.DB
	config *config.Config
}

func NewProjectLifecycleJob(db *gorm.DB, cfg *config.Config) *ProjectLifecycleJob {
	return &ProjectLifecycleJob{db: db, config: cfg}
}

func (j *ProjectLifecycleJob) GetName() string {
	return "project_lifecycle_updater"
}

func (j *ProjectLifecycleJob) GetSchedule() gocron.JobDefinition {
	return gocron.DurationJob(time.Duration(j.config.Task.Interval) * time.Second)
}

func (j *ProjectLifecycleJob) Execute() {
	now := time.Now()

	var projects []model.Project
	err := j.db.Where("lifecycle_status IN ?", []model.LifecycleStatus{
		model.LifecycleStatusScheduled,
		model.LifecycleStatusLive,
	}).Find(&projects).Error
	if err != nil {
		logger.Error("Failed to fetch projects for lifecycle update: %v", err)
		return
	}

	updated := 0
	for _, project := range projects {
		var next model.LifecycleStatus

		switch project.LifecycleStatus {
		case model.LifecycleStatusScheduled:
			if !project.StartTime.IsZero() && now.After(project.StartTime) {
				next = model.LifecycleStatusLive
			}
		case model.LifecycleStatusLive:
			if !project.EndTime.IsZero() && now.After(project.EndTime) {
				if project.CurrentAmount >= project.TargetAmount {
					next = model.LifecycleStatusEndedSuccess
				} else {
					next = model.LifecycleStatusEndedFailed
				}
			}
		}

		if next == "" {
			continue
		}

		// Guarded on the current status so a concurrent run cannot
		// double-apply the transition.
		res := j.db.Model(&model.Project{}).
			Where("id = ? AND lifecycle_status = ?", project.ID, project.LifecycleStatus).
			Update("lifecycle_status", next)
		if res.Error != nil {
			logger.Error("Failed to update project %d lifecycle: %v", project.ID, res.Error)
			continue
		}
		if res.RowsAffected > 0 {
			logger.Info("project %d lifecycle: %s -> %s", project.ID, project.LifecycleStatus, next)
			updated++
		}
	}

	if updated > 0 {
		logger.Info("project lifecycle job updated %d projects", updated)
	}
}
