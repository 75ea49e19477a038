package logic

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/modan/fas/internal/dto"
	"github.com/modan/fas/internal/logger"
	"github.com/modan/fas/internal/model"
	"github.com/modan/fas/internal/workflow"
	"github.com/panjf2000/ants/v2"
	"gorm.io/gorm"
)

// ShipmentLogic 배송 로직
type ShipmentLogic struct {
	db          *gorm.DB
	bulkWorkers int
}

func NewShipmentLogic(db *gorm.DB, bulkWorkers int) *ShipmentLogic {
	if bulkWorkers <= 0 {
		bulkWorkers = 8
	}
	return &ShipmentLogic{db: db, bulkWorkers: bulkWorkers}
}

// List returns one offset page of a project's shipments. page is 0-based.
func (l *ShipmentLogic) List(ctx context.Context, projectID int64, status string, page, size int) ([]model.Shipment, int64, error) {
	if page < 0 {
		page = 0
	}
	if size <= 0 {
		size = 20
	}

	query := l.db.WithContext(ctx).Model(&model.Shipment{}).
		Where("project_id = ?", projectID)
	if status != "" {
		query = query.Where("status = ?", status)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to count shipments: %w", err)
	}

	var shipments []model.Shipment
	err := query.Preload("Order").Preload("Order.Reward").
		Order("id").
		Offset(page * size).
		Limit(size).
		Find(&shipments).Error
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list shipments: %w", err)
	}

	return shipments, total, nil
}

// Get loads one shipment scoped to its project.
func (l *ShipmentLogic) Get(ctx context.Context, projectID, id int64) (*model.Shipment, error) {
	var s model.Shipment
	err := l.db.WithContext(ctx).
		Preload("Order").Preload("Order.Reward").
		Where("project_id = ?", projectID).
		First(&s, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: shipment %d", ErrNotFound, id)
		}
		return nil, fmt.Errorf("failed to load shipment %d: %w", id, err)
	}
	return &s, nil
}

// UpdateStatus sets a shipment's status. Any status may follow any other;
// ISSUE must carry a reason, and leaving ISSUE clears the stored reason.
func (l *ShipmentLogic) UpdateStatus(ctx context.Context, projectID, id int64, status model.ShipmentStatus, issueReason string) (*model.Shipment, error) {
	if err := workflow.ValidateShipmentUpdate(status, issueReason); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrValidation, err)
	}

	if _, err := l.Get(ctx, projectID, id); err != nil {
		return nil, err
	}

	updates := map[string]interface{}{
		"status":       status,
		"issue_reason": "",
	}
	now := time.Now()
	switch status {
	case model.ShipmentStatusShipped:
		updates["shipped_at"] = now
	case model.ShipmentStatusDelivered:
		updates["delivered_at"] = now
	case model.ShipmentStatusIssue:
		updates["issue_reason"] = issueReason
	}

	err := l.db.WithContext(ctx).Model(&model.Shipment{}).
		Where("id = ? AND project_id = ?", id, projectID).
		Updates(updates).Error
	if err != nil {
		return nil, fmt.Errorf("failed to update shipment %d: %w", id, err)
	}

	return l.Get(ctx, projectID, id)
}

// BulkUpdateStatus applies one status to many shipments at once.
func (l *ShipmentLogic) BulkUpdateStatus(ctx context.Context, projectID int64, ids []int64, status model.ShipmentStatus, issueReason string) (*dto.BulkStatusResult, error) {
	if err := workflow.ValidateShipmentUpdate(status, issueReason); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrValidation, err)
	}
	if len(ids) == 0 {
		return nil, fmt.Errorf("%w: no shipment ids given", ErrValidation)
	}

	updates := map[string]interface{}{
		"status":       status,
		"issue_reason": "",
	}
	now := time.Now()
	switch status {
	case model.ShipmentStatusShipped:
		updates["shipped_at"] = now
	case model.ShipmentStatusDelivered:
		updates["delivered_at"] = now
	case model.ShipmentStatusIssue:
		updates["issue_reason"] = issueReason
	}

	res := l.db.WithContext(ctx).Model(&model.Shipment{}).
		Where("id IN ? AND project_id = ?", ids, projectID).
		Updates(updates)
	if res.Error != nil {
		return nil, fmt.Errorf("failed to bulk-update shipments: %w", res.Error)
	}

	logger.Info("bulk status update: project=%d status=%s updated=%d", projectID, status, res.RowsAffected)
	return &dto.BulkStatusResult{UpdatedCount: res.RowsAffected}, nil
}

// BulkUploadTracking matches uploaded tracking rows to shipments by order
// code and marks them SHIPPED. Rows are independent, so they fan out over a
// worker pool and failures are collected per row rather than aborting the
// batch.
func (l *ShipmentLogic) BulkUploadTracking(ctx context.Context, projectID int64, rows []dto.TrackingRow) (*dto.BulkTrackingResult, error) {
	if len(rows) == 0 {
		return nil, fmt.Errorf("%w: no tracking rows given", ErrValidation)
	}

	pool, err := ants.NewPool(l.bulkWorkers)
	if err != nil {
		return nil, fmt.Errorf("failed to create worker pool: %w", err)
	}
	defer pool.Release()

	var (
		wg       sync.WaitGroup
		mu       sync.Mutex
		success  int
		failures []dto.BulkTrackingFailure
	)

	for _, row := range rows {
		row := row
		wg.Add(1)
		submitErr := pool.Submit(func() {
			defer wg.Done()
			if err := l.applyTrackingRow(ctx, projectID, row); err != nil {
				mu.Lock()
				failures = append(failures, dto.BulkTrackingFailure{
					OrderCode: row.OrderCode,
					Reason:    err.Error(),
				})
				mu.Unlock()
				return
			}
			mu.Lock()
			success++
			mu.Unlock()
		})
		if submitErr != nil {
			wg.Done()
			mu.Lock()
			failures = append(failures, dto.BulkTrackingFailure{
				OrderCode: row.OrderCode,
				Reason:    submitErr.Error(),
			})
			mu.Unlock()
		}
	}
	wg.Wait()

	logger.Info("bulk tracking upload: project=%d success=%d failed=%d",
		projectID, success, len(failures))

	if failures == nil {
		failures = []dto.BulkTrackingFailure{}
	}
	return &dto.BulkTrackingResult{
		SuccessCount: success,
		FailureCount: len(failures),
		Failures:     failures,
	}, nil
}

func (l *ShipmentLogic) applyTrackingRow(ctx context.Context, projectID int64, row dto.TrackingRow) error {
	if row.CourierName == "" || row.TrackingNumber == "" {
		return errors.New("courier name and tracking number are required")
	}

	var order model.Order
	err := l.db.WithContext(ctx).
		Where("order_code = ? AND project_id = ?", row.OrderCode, projectID).
		First(&order).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return fmt.Errorf("order %s not found", row.OrderCode)
		}
		return err
	}

	res := l.db.WithContext(ctx).Model(&model.Shipment{}).
		Where("order_id = ?", order.ID).
		Updates(map[string]interface{}{
			"courier_name":    row.CourierName,
			"tracking_number": row.TrackingNumber,
			"status":          model.ShipmentStatusShipped,
			"shipped_at":      time.Now(),
		})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return fmt.Errorf("no shipment for order %s", row.OrderCode)
	}
	return nil
}
