package workflow

import (
	"testing"
	"time"

	"github.com/modan/fas/internal/model"
	"github.com/stretchr/testify/assert"
)

func TestAllowedReviewActions(t *testing.T) {
	assert.Equal(t,
		[]ReviewAction{ReviewActionApprove, ReviewActionReject},
		AllowedReviewActions(model.ReviewStatusReview))

	for _, rs := range []model.ReviewStatus{
		model.ReviewStatusNone, model.ReviewStatusApproved, model.ReviewStatusRejected,
	} {
		assert.Empty(t, AllowedReviewActions(rs), "status %s must offer no actions", rs)
	}
}

func TestValidateRejectReason(t *testing.T) {
	assert.NoError(t, ValidateRejectReason("스토리 내용이 부족합니다."))

	for _, reason := range []string{"", "   ", "\t\n"} {
		assert.ErrorIs(t, ValidateRejectReason(reason), ErrBlankRejectReason)
	}
}

func TestLifecycleAfterApproval(t *testing.T) {
	now := time.Now()

	assert.Equal(t, model.LifecycleStatusScheduled,
		LifecycleAfterApproval(now.Add(24*time.Hour), now),
		"future start time schedules the project")

	assert.Equal(t, model.LifecycleStatusApproved,
		LifecycleAfterApproval(now.Add(-time.Hour), now),
		"past start time leaves the project merely approved")

	assert.Equal(t, model.LifecycleStatusApproved,
		LifecycleAfterApproval(time.Time{}, now),
		"no schedule leaves the project merely approved")
}

func TestValidateShipmentUpdate(t *testing.T) {
	for _, status := range []model.ShipmentStatus{
		model.ShipmentStatusReady, model.ShipmentStatusShipped, model.ShipmentStatusDelivered,
	} {
		assert.NoError(t, ValidateShipmentUpdate(status, ""))
	}

	assert.NoError(t, ValidateShipmentUpdate(model.ShipmentStatusIssue, "주소 불명"))
	assert.ErrorIs(t, ValidateShipmentUpdate(model.ShipmentStatusIssue, ""), ErrIssueNeedsReason)
	assert.ErrorIs(t, ValidateShipmentUpdate(model.ShipmentStatusIssue, "  "), ErrIssueNeedsReason)
	assert.ErrorIs(t, ValidateShipmentUpdate("CANCELLED", ""), ErrUnknownStatus)
}
