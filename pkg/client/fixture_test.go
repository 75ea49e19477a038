package client

import (
	"context"
	"testing"

	"github.com/modan/fas/internal/dto"
	"github.com/modan/fas/internal/workflow"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFixtureReviewLifecycle(t *testing.T) {
	f := NewFixture()
	ctx := context.Background()

	projects, err := f.FetchReviewProjects(ctx)
	require.NoError(t, err)
	require.NotEmpty(t, projects)

	resp, err := f.ApproveProject(ctx, 1)
	require.NoError(t, err)
	assert.Equal(t, "APPROVED", resp.ReviewStatus)
	assert.Equal(t, "SCHEDULED", resp.LifecycleStatus, "the seeded project starts in the future")

	// a decided project cannot be decided again
	_, err = f.ApproveProject(ctx, 1)
	assert.Error(t, err)
	_, err = f.RejectProject(ctx, 1, "정책 위반")
	assert.Error(t, err)

	// a re-fetch no longer shows the project under REVIEW
	projects, err = f.FetchReviewProjects(ctx)
	require.NoError(t, err)
	for _, p := range projects {
		if p.ProjectID == 1 {
			assert.Equal(t, "APPROVED", p.ReviewStatus)
		}
	}
}

func TestFixtureReviewListNewestSubmissionFirst(t *testing.T) {
	f := NewFixture()

	projects, err := f.FetchReviewProjects(context.Background())
	require.NoError(t, err)
	require.Len(t, projects, 2)
	assert.Equal(t, int64(2), projects[0].ProjectID, "project 2 was submitted more recently")
	assert.Equal(t, int64(1), projects[1].ProjectID)
}

func TestFixtureRejectValidatesReason(t *testing.T) {
	f := NewFixture()

	_, err := f.RejectProject(context.Background(), 2, "  ")
	assert.ErrorIs(t, err, workflow.ErrBlankRejectReason)

	resp, err := f.RejectProject(context.Background(), 2, "스토리 내용이 부족합니다.")
	require.NoError(t, err)
	assert.Equal(t, "REJECTED", resp.ReviewStatus)
	assert.Equal(t, "스토리 내용이 부족합니다.", resp.RejectReason)
}

func TestFixtureSettlementSequence(t *testing.T) {
	f := NewFixture()
	ctx := context.Background()

	// the seeded settlement starts PENDING
	s, err := f.FetchSettlementDetail(ctx, 1)
	require.NoError(t, err)
	require.Equal(t, "PENDING", s.Status)

	_, err = f.FinalReady(ctx, 1)
	assert.Error(t, err, "final-ready must not skip the first payout")

	s, err = f.FirstPayout(ctx, 1)
	require.NoError(t, err)
	assert.Equal(t, "FIRST_PAID", s.Status)
	assert.NotNil(t, s.FirstPaidAt)

	s, err = f.FinalReady(ctx, 1)
	require.NoError(t, err)
	assert.Equal(t, "FINAL_READY", s.Status)

	s, err = f.FinalPayout(ctx, 1)
	require.NoError(t, err)
	assert.Equal(t, "COMPLETED", s.Status)
	assert.NotNil(t, s.CompletedAt)

	_, err = f.FirstPayout(ctx, 1)
	assert.Error(t, err, "nothing follows COMPLETED")
}

func TestFixtureCreateSettlementRejectsDuplicate(t *testing.T) {
	f := NewFixture()
	ctx := context.Background()

	created, err := f.CreateSettlement(ctx, 42)
	require.NoError(t, err)
	assert.Equal(t, "PENDING", created.Status)

	_, err = f.CreateSettlement(ctx, 42)
	assert.Error(t, err)
}

func TestFixtureSettlementPagination(t *testing.T) {
	f := NewFixture()
	ctx := context.Background()

	for projectID := int64(100); projectID < 105; projectID++ {
		_, err := f.CreateSettlement(ctx, projectID)
		require.NoError(t, err)
	}

	page, err := f.FetchSettlements(ctx, 0, 4, "")
	require.NoError(t, err)
	assert.Equal(t, 0, page.Number)
	assert.Equal(t, 4, page.Size)
	assert.Equal(t, int64(6), page.TotalElements, "five created plus one seeded")
	assert.Equal(t, 2, page.TotalPages)
	assert.Len(t, page.Content, 4)

	last, err := f.FetchSettlements(ctx, 1, 4, "")
	require.NoError(t, err)
	assert.Len(t, last.Content, 2)

	filtered, err := f.FetchSettlements(ctx, 0, 20, "COMPLETED")
	require.NoError(t, err)
	assert.Empty(t, filtered.Content)
}

func TestFixtureRevenueFollowsCompletedSettlements(t *testing.T) {
	f := NewFixture()
	ctx := context.Background()

	rows, err := f.FetchRevenueStats(ctx, "", "")
	require.NoError(t, err)
	assert.Empty(t, rows, "nothing completed yet, nothing realized")

	_, err = f.FirstPayout(ctx, 1)
	require.NoError(t, err)
	_, err = f.FinalReady(ctx, 1)
	require.NoError(t, err)
	_, err = f.FinalPayout(ctx, 1)
	require.NoError(t, err)

	rows, err = f.FetchRevenueStats(ctx, "", "")
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, int64(396000), rows[0].PGFeeAmount)
	assert.Equal(t, int64(600000), rows[0].PlatformFeeAmount)
	assert.Equal(t, int64(11004000), rows[0].PayoutAmount)
}

func TestFixtureProjectPerformanceBestFirst(t *testing.T) {
	f := NewFixture()

	rows, err := f.FetchProjectPerformance(context.Background())
	require.NoError(t, err)
	require.NotEmpty(t, rows)
	assert.Equal(t, "여행용 백팩", rows[0].Title)
	for i := 1; i < len(rows); i++ {
		assert.GreaterOrEqual(t, rows[i-1].CurrentAmount, rows[i].CurrentAmount)
	}
}

func TestFixtureExportSettlementsCSV(t *testing.T) {
	f := NewFixture()

	raw, err := f.ExportSettlementsCSV(context.Background())
	require.NoError(t, err)

	out := string(raw)
	assert.Contains(t, out, "settlement_id,project_id,project_title,status")
	assert.Contains(t, out, "여행용 백팩")
	assert.Contains(t, out, "12000000")
}

func TestFixtureShipmentGet(t *testing.T) {
	f := NewFixture()

	s, err := f.FetchShipment(context.Background(), 3, 2)
	require.NoError(t, err)
	assert.Equal(t, "ORD-2026-0002", s.OrderCode)

	_, err = f.FetchShipment(context.Background(), 3, 99)
	assert.Error(t, err)
}

func TestFixtureShipmentGuards(t *testing.T) {
	f := NewFixture()
	ctx := context.Background()

	_, err := f.UpdateShipmentStatus(ctx, 3, 1, "ISSUE", "")
	assert.ErrorIs(t, err, workflow.ErrIssueNeedsReason)

	s, err := f.UpdateShipmentStatus(ctx, 3, 1, "ISSUE", "주소 불명")
	require.NoError(t, err)
	assert.Equal(t, "주소 불명", s.IssueReason)

	s, err = f.UpdateShipmentStatus(ctx, 3, 1, "READY", "")
	require.NoError(t, err)
	assert.Empty(t, s.IssueReason, "leaving ISSUE clears the reason")
}

func TestFixtureBulkTrackingPartialFailure(t *testing.T) {
	f := NewFixture()

	result, err := f.BulkUploadTracking(context.Background(), 3, []dto.TrackingRow{
		{OrderCode: "ORD-2026-0001", CourierName: "CJ대한통운", TrackingNumber: "1234567890"},
		{OrderCode: "ORD-NOPE", CourierName: "한진택배", TrackingNumber: "2345678901"},
	})
	require.NoError(t, err)

	assert.Equal(t, 1, result.SuccessCount)
	assert.Equal(t, 1, result.FailureCount)
	require.Len(t, result.Failures, 1)
	assert.Equal(t, "ORD-NOPE", result.Failures[0].OrderCode)

	page, err := f.FetchShipments(context.Background(), 3, "SHIPPED", 0, 20)
	require.NoError(t, err)
	require.Len(t, page.Content, 1)
	assert.Equal(t, "CJ대한통운", page.Content[0].CourierName)
}
