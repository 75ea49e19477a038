package model

import "time"

// Shipment 배송 내역. One row per paid order.
type Shipment struct {
	ID        int64     `json:"id" gorm:"primaryKey"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	ProjectID int64 `json:"project_id" gorm:"not null;index"`
	OrderID   int64 `json:"order_id" gorm:"uniqueIndex;not null"`

	Status         ShipmentStatus `json:"status" gorm:"default:'READY';index"`
	CourierName    string         `json:"courier_name"`
	TrackingNumber string         `json:"tracking_number"`
	IssueReason    string         `json:"issue_reason"`

	ShippedAt   *time.Time `json:"shipped_at"`
	DeliveredAt *time.Time `json:"delivered_at"`

	Order Order `json:"order,omitempty" gorm:"foreignKey:OrderID"`
}

func (Shipment) TableName() string {
	return "shipment"
}

// ShipmentStatus 배송 상태. Plain status field, not a guarded workflow:
// any value may be set from any other.
type ShipmentStatus string

const (
	ShipmentStatusReady     ShipmentStatus = "READY"
	ShipmentStatusShipped   ShipmentStatus = "SHIPPED"
	ShipmentStatusDelivered ShipmentStatus = "DELIVERED"
	ShipmentStatusIssue     ShipmentStatus = "ISSUE"
)
