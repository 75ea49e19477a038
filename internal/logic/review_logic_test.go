package logic

import (
	"context"
	"testing"
	"time"

	"github.com/modan/fas/internal/config"
	"github.com/modan/fas/internal/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestListReviewProjectsExcludesNeverSubmitted(t *testing.T) {
	db := newTestDB(t)
	l := NewReviewLogic(db, config.DefaultRejectReasonPresets)
	maker := seedMaker(t, db)

	seedProject(t, db, maker.ID, model.LifecycleStatusDraft, model.ReviewStatusNone)
	inReview := seedProject(t, db, maker.ID, model.LifecycleStatusReview, model.ReviewStatusReview)
	rejected := seedProject(t, db, maker.ID, model.LifecycleStatusRejected, model.ReviewStatusRejected)

	projects, err := l.ListReviewProjects(context.Background())
	require.NoError(t, err)
	require.Len(t, projects, 2, "drafts never submitted must not appear")

	ids := []int64{projects[0].ID, projects[1].ID}
	assert.Contains(t, ids, inReview.ID)
	assert.Contains(t, ids, rejected.ID)
	assert.Equal(t, maker.Name, projects[0].Maker.Name, "maker must be preloaded")
}

func TestApproveSchedulesFutureProject(t *testing.T) {
	db := newTestDB(t)
	l := NewReviewLogic(db, config.DefaultRejectReasonPresets)
	maker := seedMaker(t, db)

	project := seedProject(t, db, maker.ID, model.LifecycleStatusReview, model.ReviewStatusReview)
	future := time.Now().Add(72 * time.Hour)
	require.NoError(t, db.Model(project).Update("start_time", future).Error)

	got, err := l.Approve(context.Background(), project.ID)
	require.NoError(t, err)

	assert.Equal(t, model.ReviewStatusApproved, got.ReviewStatus)
	assert.Equal(t, model.LifecycleStatusScheduled, got.LifecycleStatus)
	assert.NotNil(t, got.ReviewedAt)
}

func TestApprovePastStartTime(t *testing.T) {
	db := newTestDB(t)
	l := NewReviewLogic(db, config.DefaultRejectReasonPresets)
	maker := seedMaker(t, db)
	project := seedProject(t, db, maker.ID, model.LifecycleStatusReview, model.ReviewStatusReview)

	got, err := l.Approve(context.Background(), project.ID)
	require.NoError(t, err)
	assert.Equal(t, model.LifecycleStatusApproved, got.LifecycleStatus)
}

func TestApproveAlreadyDecided(t *testing.T) {
	db := newTestDB(t)
	l := NewReviewLogic(db, config.DefaultRejectReasonPresets)
	maker := seedMaker(t, db)
	project := seedProject(t, db, maker.ID, model.LifecycleStatusRejected, model.ReviewStatusRejected)

	_, err := l.Approve(context.Background(), project.ID)
	assert.ErrorIs(t, err, ErrStateConflict)
}

func TestRejectStoresReason(t *testing.T) {
	db := newTestDB(t)
	l := NewReviewLogic(db, config.DefaultRejectReasonPresets)
	maker := seedMaker(t, db)
	project := seedProject(t, db, maker.ID, model.LifecycleStatusReview, model.ReviewStatusReview)

	reason := "환불/교환 정책이 명시되어 있지 않습니다."
	got, err := l.Reject(context.Background(), project.ID, reason)
	require.NoError(t, err)

	assert.Equal(t, model.ReviewStatusRejected, got.ReviewStatus)
	assert.Equal(t, model.LifecycleStatusRejected, got.LifecycleStatus)
	assert.Equal(t, reason, got.RejectReason)
}

func TestRejectBlankReason(t *testing.T) {
	db := newTestDB(t)
	l := NewReviewLogic(db, config.DefaultRejectReasonPresets)
	maker := seedMaker(t, db)
	project := seedProject(t, db, maker.ID, model.LifecycleStatusReview, model.ReviewStatusReview)

	for _, reason := range []string{"", "   "} {
		_, err := l.Reject(context.Background(), project.ID, reason)
		assert.ErrorIs(t, err, ErrValidation)
	}

	got, err := l.GetProjectDetail(context.Background(), project.ID)
	require.NoError(t, err)
	assert.Equal(t, model.ReviewStatusReview, got.ReviewStatus, "a blank reason must not change anything")
}

func TestRejectReasonPresets(t *testing.T) {
	l := NewReviewLogic(newTestDB(t), config.DefaultRejectReasonPresets)
	assert.Equal(t, config.DefaultRejectReasonPresets, l.RejectReasonPresets())
}
