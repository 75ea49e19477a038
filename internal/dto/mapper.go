package dto

import "github.com/modan/fas/internal/model"

// FromProjectSummary maps a project (with Maker preloaded) to a review list row.
func FromProjectSummary(p *model.Project) ReviewProjectSummary {
	return ReviewProjectSummary{
		ProjectID:       p.ID,
		Title:           p.Title,
		Category:        p.Category,
		MakerID:         p.MakerID,
		MakerName:       p.Maker.Name,
		TargetAmount:    p.TargetAmount,
		ReviewStatus:    string(p.ReviewStatus),
		LifecycleStatus: string(p.LifecycleStatus),
		SubmittedAt:     p.SubmittedAt,
	}
}

// FromProjectDetail maps a project (Maker and Rewards preloaded) to the
// review detail shape.
func FromProjectDetail(p *model.Project) *ProjectReviewDetail {
	rewards := make([]RewardDTO, 0, len(p.Rewards))
	for i := range p.Rewards {
		rewards = append(rewards, FromReward(&p.Rewards[i]))
	}

	return &ProjectReviewDetail{
		ProjectID:       p.ID,
		Title:           p.Title,
		Category:        p.Category,
		Story:           p.Story,
		ImageURL:        p.ImageURL,
		TargetAmount:    p.TargetAmount,
		StartTime:       p.StartTime,
		EndTime:         p.EndTime,
		ReviewStatus:    string(p.ReviewStatus),
		LifecycleStatus: string(p.LifecycleStatus),
		RejectReason:    p.RejectReason,
		SubmittedAt:     p.SubmittedAt,
		Maker:           FromMaker(&p.Maker),
		Rewards:         rewards,
	}
}

// FromReviewDecision maps a decided project to the approve/reject response.
func FromReviewDecision(p *model.Project) *ReviewStatusResponse {
	return &ReviewStatusResponse{
		ProjectID:       p.ID,
		ReviewStatus:    string(p.ReviewStatus),
		LifecycleStatus: string(p.LifecycleStatus),
		RejectReason:    p.RejectReason,
	}
}

func FromMaker(m *model.Maker) MakerProfile {
	return MakerProfile{
		MakerID:        m.ID,
		Name:           m.Name,
		Email:          m.Email,
		Phone:          m.Phone,
		BusinessNumber: m.BusinessNumber,
		BankName:       m.BankName,
		BankAccount:    m.BankAccount,
		AccountHolder:  m.AccountHolder,
	}
}

func FromReward(r *model.Reward) RewardDTO {
	return RewardDTO{
		RewardID:               r.ID,
		Title:                  r.Title,
		Description:            r.Description,
		Price:                  r.Price,
		EstimatedShippingMonth: r.EstimatedShippingMonth,
		LimitCount:             r.LimitCount,
		ClaimedCount:           r.ClaimedCount,
	}
}

// FromSettlement maps a settlement (Project preloaded) to its wire shape.
func FromSettlement(s *model.Settlement) SettlementDTO {
	return SettlementDTO{
		SettlementID:       s.ID,
		ProjectID:          s.ProjectID,
		ProjectTitle:       s.Project.Title,
		Status:             string(s.Status),
		FirstPaymentStatus: string(s.FirstPaymentStatus),
		FinalPaymentStatus: string(s.FinalPaymentStatus),
		TotalOrderAmount:   s.TotalOrderAmount,
		PGFeeAmount:        s.PGFeeAmount,
		PlatformFeeAmount:  s.PlatformFeeAmount,
		NetAmount:          s.NetAmount,
		FirstPaymentAmount: s.FirstPaymentAmount,
		FinalPaymentAmount: s.FinalPaymentAmount,
		FirstPayoutRef:     s.FirstPayoutRef,
		FinalPayoutRef:     s.FinalPayoutRef,
		CreatedAt:          s.CreatedAt,
		FirstPaidAt:        s.FirstPaidAt,
		CompletedAt:        s.CompletedAt,
	}
}

// FromShipment maps a shipment (Order and Order.Reward preloaded).
func FromShipment(s *model.Shipment) ShipmentDTO {
	return ShipmentDTO{
		ShipmentID:     s.ID,
		ProjectID:      s.ProjectID,
		OrderCode:      s.Order.OrderCode,
		SupporterName:  s.Order.SupporterName,
		Address:        s.Order.Address,
		RewardTitle:    s.Order.Reward.Title,
		Status:         string(s.Status),
		CourierName:    s.CourierName,
		TrackingNumber: s.TrackingNumber,
		IssueReason:    s.IssueReason,
		ShippedAt:      s.ShippedAt,
		DeliveredAt:    s.DeliveredAt,
	}
}

// TotalPages computes ceil(total/size) for the page envelope. Size must be
// positive; callers clamp it beforehand.
func TotalPages(total int64, size int) int {
	if total == 0 {
		return 0
	}
	return int((total + int64(size) - 1) / int64(size))
}
