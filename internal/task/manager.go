package task

import (
	"github.com/go-co-op/gocron/v2"
	"github.com/modan/fas/internal/config"
	"github.com/modan/fas/internal/logger"
	"gorm.io/gorm"
)

// Job is the contract every scheduled job implements.
type Job interface {
	GetName() string
	GetSchedule() gocron.JobDefinition
	Execute()
}

// Manager 정기 작업 관리자
type Manager struct {
	scheduler gocron.Scheduler
	db        *gorm.DB
	config    *config.Config
}

func NewManager(db *gorm.DB, cfg *config.Config) *Manager {
	s, err := gocron.NewScheduler()
	if err != nil {
		logger.Fatal("Failed to create scheduler: %v", err)
	}

	return &Manager{
		scheduler: s,
		db:        db,
		config:    cfg,
	}
}

// Start builds a manager, registers every job and starts the scheduler.
func Start(db *gorm.DB, cfg *config.Config) *Manager {
	manager := NewManager(db, cfg)
	manager.RegisterJobs()
	manager.scheduler.Start()
	logger.Info("Task manager started successfully")
	return manager
}

// RegisterJobs registers all scheduled jobs.
func (m *Manager) RegisterJobs() {
	m.register(NewProjectLifecycleJob(m.db, m.config))
	m.register(NewDailyStatsJob(m.db, m.config))
}

func (m *Manager) register(job Job) {
	_, err := m.scheduler.NewJob(
		job.GetSchedule(),
		gocron.NewTask(job.Execute),
		gocron.WithName(job.GetName()),
		gocron.WithSingletonMode(gocron.LimitModeReschedule),
	)
	if err != nil {
		logger.Error("Failed to register job %s: %v", job.GetName(), err)
	}
}

// Stop shuts the scheduler down.
func (m *Manager) Stop() {
	if err := m.scheduler.Shutdown(); err != nil {
		logger.Error("Failed to shutdown scheduler: %v", err)
	}
	logger.Info("Task manager stopped")
}
