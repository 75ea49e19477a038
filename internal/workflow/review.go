package workflow

import (
	"strings"
	"time"

	"github.com/modan/fas/internal/model"
)

// ReviewAction 심사 액션
type ReviewAction string

const (
	ReviewActionApprove ReviewAction = "APPROVE"
	ReviewActionReject  ReviewAction = "REJECT"
)

// AllowedReviewActions returns the actions legal for a project's review
// status. Approve and reject are only legal while the project sits in the
// review queue; once decided it drops out of the actionable set.
func AllowedReviewActions(rs model.ReviewStatus) []ReviewAction {
	if rs == model.ReviewStatusReview {
		return []ReviewAction{ReviewActionApprove, ReviewActionReject}
	}
	return nil
}

// CanReview reports whether a project can still be approved or rejected.
func CanReview(rs model.ReviewStatus) bool {
	return rs == model.ReviewStatusReview
}

// ValidateRejectReason enforces the non-blank reject reason rule applied on
// both sides of the wire.
func ValidateRejectReason(reason string) error {
	if strings.TrimSpace(reason) == "" {
		return ErrBlankRejectReason
	}
	return nil
}

// LifecycleAfterApproval picks the lifecycle status an approved project moves
// to: SCHEDULED when its funding window is set in the future, APPROVED when
// no usable schedule exists yet.
func LifecycleAfterApproval(startTime time.Time, now time.Time) model.LifecycleStatus {
	if !startTime.IsZero() && startTime.After(now) {
		return model.LifecycleStatusScheduled
	}
	return model.LifecycleStatusApproved
}
