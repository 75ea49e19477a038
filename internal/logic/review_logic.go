package logic

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/modan/fas/internal/logger"
	"github.com/modan/fas/internal/model"
	"github.com/modan/fas/internal/workflow"
	"gorm.io/gorm"
)

// ReviewLogic 프로젝트 심사 로직
type ReviewLogic struct {
	db      *gorm.DB
	presets []string
}

func NewReviewLogic(db *gorm.DB, presets []string) *ReviewLogic {
	return &ReviewLogic{db: db, presets: presets}
}

// ListReviewProjects returns every project that has ever been submitted for
// review, newest submission first. Status filtering happens client-side.
func (l *ReviewLogic) ListReviewProjects(ctx context.Context) ([]model.Project, error) {
	var projects []model.Project
	err := l.db.WithContext(ctx).
		Preload("Maker").
		Where("review_status <> ?", model.ReviewStatusNone).
		Order("submitted_at DESC").
		Find(&projects).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list review projects: %w", err)
	}
	return projects, nil
}

// GetProjectDetail loads one project with maker and rewards for the review panel.
func (l *ReviewLogic) GetProjectDetail(ctx context.Context, id int64) (*model.Project, error) {
	var project model.Project
	err := l.db.WithContext(ctx).
		Preload("Maker").
		Preload("Rewards").
		First(&project, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: project %d", ErrNotFound, id)
		}
		return nil, fmt.Errorf("failed to load project %d: %w", id, err)
	}
	return &project, nil
}

// Approve transitions a project out of the review queue. Legal only while
// the project is in REVIEW; the guarded update turns a stale or concurrent
// approve into a state conflict instead of a double decision.
func (l *ReviewLogic) Approve(ctx context.Context, id int64) (*model.Project, error) {
	project, err := l.GetProjectDetail(ctx, id)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	lifecycle := workflow.LifecycleAfterApproval(project.StartTime, now)

	res := l.db.WithContext(ctx).Model(&model.Project{}).
		Where("id = ? AND review_status = ?", id, model.ReviewStatusReview).
		Updates(map[string]interface{}{
			"review_status":    model.ReviewStatusApproved,
			"lifecycle_status": lifecycle,
			"reviewed_at":      now,
		})
	if res.Error != nil {
		return nil, fmt.Errorf("failed to approve project %d: %w", id, res.Error)
	}
	if res.RowsAffected == 0 {
		return nil, fmt.Errorf("%w: project %d is not under review (status %s)",
			ErrStateConflict, id, project.ReviewStatus)
	}

	logger.Info("project %d approved, lifecycle=%s", id, lifecycle)
	return l.GetProjectDetail(ctx, id)
}

// Reject transitions a project to REJECTED with a mandatory reason.
func (l *ReviewLogic) Reject(ctx context.Context, id int64, reason string) (*model.Project, error) {
	if err := workflow.ValidateRejectReason(reason); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrValidation, err)
	}

	project, err := l.GetProjectDetail(ctx, id)
	if err != nil {
		return nil, err
	}

	res := l.db.WithContext(ctx).Model(&model.Project{}).
		Where("id = ? AND review_status = ?", id, model.ReviewStatusReview).
		Updates(map[string]interface{}{
			"review_status":    model.ReviewStatusRejected,
			"lifecycle_status": model.LifecycleStatusRejected,
			"reject_reason":    reason,
			"reviewed_at":      time.Now(),
		})
	if res.Error != nil {
		return nil, fmt.Errorf("failed to reject project %d: %w", id, res.Error)
	}
	if res.RowsAffected == 0 {
		return nil, fmt.Errorf("%w: project %d is not under review (status %s)",
			ErrStateConflict, id, project.ReviewStatus)
	}

	logger.Info("project %d rejected: %s", id, reason)
	return l.GetProjectDetail(ctx, id)
}

// RejectReasonPresets returns the configured canned reasons.
func (l *ReviewLogic) RejectReasonPresets() []string {
	return l.presets
}
