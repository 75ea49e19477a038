package logic

import (
	"context"
	"testing"

	"github.com/modan/fas/internal/dto"
	"github.com/modan/fas/internal/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestShipmentListScopedToProject(t *testing.T) {
	db := newTestDB(t)
	l := NewShipmentLogic(db, 1)
	maker := seedMaker(t, db)

	projectA := seedProject(t, db, maker.ID, model.LifecycleStatusEndedSuccess, model.ReviewStatusApproved)
	projectB := seedProject(t, db, maker.ID, model.LifecycleStatusEndedSuccess, model.ReviewStatusApproved)

	orderA := seedPaidOrder(t, db, projectA.ID, "ORD-A-0001", 49000)
	orderB := seedPaidOrder(t, db, projectB.ID, "ORD-B-0001", 49000)
	seedShipment(t, db, projectA.ID, orderA.ID)
	seedShipment(t, db, projectB.ID, orderB.ID)

	shipments, total, err := l.List(context.Background(), projectA.ID, "", 0, 20)
	require.NoError(t, err)
	assert.Equal(t, int64(1), total)
	require.Len(t, shipments, 1)
	assert.Equal(t, "ORD-A-0001", shipments[0].Order.OrderCode, "order must be preloaded")
}

func TestShipmentListStatusFilter(t *testing.T) {
	db := newTestDB(t)
	l := NewShipmentLogic(db, 1)
	maker := seedMaker(t, db)
	project := seedProject(t, db, maker.ID, model.LifecycleStatusEndedSuccess, model.ReviewStatusApproved)

	ready := seedShipment(t, db, project.ID, seedPaidOrder(t, db, project.ID, "ORD-0001", 49000).ID)
	shipped := seedShipment(t, db, project.ID, seedPaidOrder(t, db, project.ID, "ORD-0002", 49000).ID)
	require.NoError(t, db.Model(shipped).Update("status", model.ShipmentStatusShipped).Error)

	got, total, err := l.List(context.Background(), project.ID, "READY", 0, 20)
	require.NoError(t, err)
	assert.Equal(t, int64(1), total)
	require.Len(t, got, 1)
	assert.Equal(t, ready.ID, got[0].ID)
}

func TestUpdateStatusIssueRequiresReason(t *testing.T) {
	db := newTestDB(t)
	l := NewShipmentLogic(db, 1)
	maker := seedMaker(t, db)
	project := seedProject(t, db, maker.ID, model.LifecycleStatusEndedSuccess, model.ReviewStatusApproved)
	shipment := seedShipment(t, db, project.ID, seedPaidOrder(t, db, project.ID, "ORD-0001", 49000).ID)

	_, err := l.UpdateStatus(context.Background(), project.ID, shipment.ID, model.ShipmentStatusIssue, "")
	assert.ErrorIs(t, err, ErrValidation)

	got, err := l.Get(context.Background(), project.ID, shipment.ID)
	require.NoError(t, err)
	assert.Equal(t, model.ShipmentStatusReady, got.Status, "a rejected update must not change anything")
}

func TestUpdateStatusLifetimes(t *testing.T) {
	db := newTestDB(t)
	l := NewShipmentLogic(db, 1)
	maker := seedMaker(t, db)
	project := seedProject(t, db, maker.ID, model.LifecycleStatusEndedSuccess, model.ReviewStatusApproved)
	shipment := seedShipment(t, db, project.ID, seedPaidOrder(t, db, project.ID, "ORD-0001", 49000).ID)
	ctx := context.Background()

	got, err := l.UpdateStatus(ctx, project.ID, shipment.ID, model.ShipmentStatusShipped, "")
	require.NoError(t, err)
	assert.Equal(t, model.ShipmentStatusShipped, got.Status)
	assert.NotNil(t, got.ShippedAt)

	got, err = l.UpdateStatus(ctx, project.ID, shipment.ID, model.ShipmentStatusIssue, "주소 불명")
	require.NoError(t, err)
	assert.Equal(t, "주소 불명", got.IssueReason)

	got, err = l.UpdateStatus(ctx, project.ID, shipment.ID, model.ShipmentStatusDelivered, "")
	require.NoError(t, err)
	assert.Equal(t, model.ShipmentStatusDelivered, got.Status)
	assert.NotNil(t, got.DeliveredAt)
	assert.Empty(t, got.IssueReason, "leaving ISSUE clears the stored reason")
}

func TestUpdateStatusWrongProject(t *testing.T) {
	db := newTestDB(t)
	l := NewShipmentLogic(db, 1)
	maker := seedMaker(t, db)
	project := seedProject(t, db, maker.ID, model.LifecycleStatusEndedSuccess, model.ReviewStatusApproved)
	other := seedProject(t, db, maker.ID, model.LifecycleStatusEndedSuccess, model.ReviewStatusApproved)
	shipment := seedShipment(t, db, project.ID, seedPaidOrder(t, db, project.ID, "ORD-0001", 49000).ID)

	_, err := l.UpdateStatus(context.Background(), other.ID, shipment.ID, model.ShipmentStatusShipped, "")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestBulkUpdateStatus(t *testing.T) {
	db := newTestDB(t)
	l := NewShipmentLogic(db, 1)
	maker := seedMaker(t, db)
	project := seedProject(t, db, maker.ID, model.LifecycleStatusEndedSuccess, model.ReviewStatusApproved)

	a := seedShipment(t, db, project.ID, seedPaidOrder(t, db, project.ID, "ORD-0001", 49000).ID)
	b := seedShipment(t, db, project.ID, seedPaidOrder(t, db, project.ID, "ORD-0002", 49000).ID)
	c := seedShipment(t, db, project.ID, seedPaidOrder(t, db, project.ID, "ORD-0003", 49000).ID)

	result, err := l.BulkUpdateStatus(context.Background(), project.ID,
		[]int64{a.ID, b.ID, 999999}, model.ShipmentStatusShipped, "")
	require.NoError(t, err)
	assert.Equal(t, int64(2), result.UpdatedCount, "unknown ids simply do not match")

	got, err := l.Get(context.Background(), project.ID, c.ID)
	require.NoError(t, err)
	assert.Equal(t, model.ShipmentStatusReady, got.Status)
}

func TestBulkUpdateStatusValidation(t *testing.T) {
	l := NewShipmentLogic(newTestDB(t), 1)

	_, err := l.BulkUpdateStatus(context.Background(), 1, []int64{1}, model.ShipmentStatusIssue, "")
	assert.ErrorIs(t, err, ErrValidation)

	_, err = l.BulkUpdateStatus(context.Background(), 1, nil, model.ShipmentStatusShipped, "")
	assert.ErrorIs(t, err, ErrValidation)
}

func TestBulkUploadTrackingPartialFailure(t *testing.T) {
	db := newTestDB(t)
	l := NewShipmentLogic(db, 1)
	maker := seedMaker(t, db)
	project := seedProject(t, db, maker.ID, model.LifecycleStatusEndedSuccess, model.ReviewStatusApproved)

	orderA := seedPaidOrder(t, db, project.ID, "ORD-2026-0001", 49000)
	orderB := seedPaidOrder(t, db, project.ID, "ORD-2026-0002", 49000)
	shipmentA := seedShipment(t, db, project.ID, orderA.ID)
	seedShipment(t, db, project.ID, orderB.ID)

	result, err := l.BulkUploadTracking(context.Background(), project.ID, []dto.TrackingRow{
		{OrderCode: "ORD-2026-0001", CourierName: "CJ대한통운", TrackingNumber: "1234567890"},
		{OrderCode: "ORD-2026-0002", CourierName: "한진택배", TrackingNumber: "2345678901"},
		{OrderCode: "ORD-2026-9999", CourierName: "CJ대한통운", TrackingNumber: "3456789012"},
	})
	require.NoError(t, err)

	assert.Equal(t, 2, result.SuccessCount)
	assert.Equal(t, 1, result.FailureCount)
	require.Len(t, result.Failures, 1)
	assert.Equal(t, "ORD-2026-9999", result.Failures[0].OrderCode)
	assert.Contains(t, result.Failures[0].Reason, "not found")

	got, err := l.Get(context.Background(), project.ID, shipmentA.ID)
	require.NoError(t, err)
	assert.Equal(t, model.ShipmentStatusShipped, got.Status)
	assert.Equal(t, "CJ대한통운", got.CourierName)
	assert.Equal(t, "1234567890", got.TrackingNumber)
	assert.NotNil(t, got.ShippedAt)
}

func TestBulkUploadTrackingMissingColumns(t *testing.T) {
	db := newTestDB(t)
	l := NewShipmentLogic(db, 1)
	maker := seedMaker(t, db)
	project := seedProject(t, db, maker.ID, model.LifecycleStatusEndedSuccess, model.ReviewStatusApproved)
	order := seedPaidOrder(t, db, project.ID, "ORD-2026-0001", 49000)
	seedShipment(t, db, project.ID, order.ID)

	result, err := l.BulkUploadTracking(context.Background(), project.ID, []dto.TrackingRow{
		{OrderCode: "ORD-2026-0001", CourierName: "", TrackingNumber: "1234567890"},
	})
	require.NoError(t, err)
	assert.Equal(t, 0, result.SuccessCount)
	assert.Equal(t, 1, result.FailureCount)
}
