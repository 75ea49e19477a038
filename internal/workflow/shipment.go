package workflow

import (
	"errors"
	"strings"

	"github.com/modan/fas/internal/model"
)

var (
	ErrBlankRejectReason = errors.New("reject reason must not be blank")
	ErrUnknownStatus     = errors.New("unknown shipment status")
	ErrIssueNeedsReason  = errors.New("ISSUE status requires an issue reason")
)

// ValidateShipmentUpdate checks a shipment status change. Shipments are a
// plain status field rather than a guarded workflow; the only conditional
// rule is that ISSUE carries a reason.
func ValidateShipmentUpdate(status model.ShipmentStatus, issueReason string) error {
	switch status {
	case model.ShipmentStatusReady, model.ShipmentStatusShipped,
		model.ShipmentStatusDelivered, model.ShipmentStatusIssue:
	default:
		return ErrUnknownStatus
	}

	if status == model.ShipmentStatusIssue && strings.TrimSpace(issueReason) == "" {
		return ErrIssueNeedsReason
	}
	return nil
}
