// Package workflow holds the pure transition tables for the review and
// settlement lifecycles. Server logic consults them to enforce transitions
// and the console consults the same tables to decide which action to offer,
// so "what can happen next" lives in exactly one place.
package workflow

import (
	"fmt"

	"github.com/modan/fas/internal/model"
)

// SettlementAction 정산 전이 액션
type SettlementAction string

const (
	SettlementActionFirstPayout SettlementAction = "FIRST_PAYOUT"
	SettlementActionFinalReady  SettlementAction = "FINAL_READY"
	SettlementActionFinalPayout SettlementAction = "FINAL_PAYOUT"
)

// SettlementState is the (status, sub-status) triple a settlement row carries.
type SettlementState struct {
	Status             model.SettlementStatus
	FirstPaymentStatus model.PaymentStatus
	FinalPaymentStatus model.FinalPaymentStatus
}

// NewSettlementState is the state a freshly created settlement starts in.
func NewSettlementState() SettlementState {
	return SettlementState{
		Status:             model.SettlementStatusPending,
		FirstPaymentStatus: model.PaymentStatusPending,
		FinalPaymentStatus: model.FinalPaymentStatusPending,
	}
}

// AllowedSettlementActions returns the actions legal from st. The lifecycle
// is strictly sequential, so this is always zero or one action.
func AllowedSettlementActions(st SettlementState) []SettlementAction {
	switch {
	case st.Status == model.SettlementStatusPending &&
		st.FirstPaymentStatus == model.PaymentStatusPending:
		return []SettlementAction{SettlementActionFirstPayout}
	case st.Status == model.SettlementStatusFirstPaid &&
		st.FinalPaymentStatus == model.FinalPaymentStatusPending:
		return []SettlementAction{SettlementActionFinalReady}
	case st.Status == model.SettlementStatusFinalReady &&
		st.FinalPaymentStatus == model.FinalPaymentStatusReady:
		return []SettlementAction{SettlementActionFinalPayout}
	default:
		return nil
	}
}

// ApplySettlementAction returns the state after action, or an error when the
// action is not legal from st.
func ApplySettlementAction(st SettlementState, action SettlementAction) (SettlementState, error) {
	if !settlementActionAllowed(st, action) {
		return st, fmt.Errorf("action %s not allowed from status %s (first=%s, final=%s)",
			action, st.Status, st.FirstPaymentStatus, st.FinalPaymentStatus)
	}

	switch action {
	case SettlementActionFirstPayout:
		st.Status = model.SettlementStatusFirstPaid
		st.FirstPaymentStatus = model.PaymentStatusDone
	case SettlementActionFinalReady:
		st.Status = model.SettlementStatusFinalReady
		st.FinalPaymentStatus = model.FinalPaymentStatusReady
	case SettlementActionFinalPayout:
		st.Status = model.SettlementStatusCompleted
		st.FinalPaymentStatus = model.FinalPaymentStatusDone
	}
	return st, nil
}

func settlementActionAllowed(st SettlementState, action SettlementAction) bool {
	for _, a := range AllowedSettlementActions(st) {
		if a == action {
			return true
		}
	}
	return false
}
