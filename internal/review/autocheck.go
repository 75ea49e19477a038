// Package review implements the advisory pre-screening checks the admin
// console surfaces next to a project under review. The checks are
// informational only; an operator can approve a project regardless of what
// they flag.
package review

import (
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/modan/fas/internal/dto"
	"github.com/modan/fas/internal/model"
)

// MinStoryLength is the story length (in runes) under which a project is
// flagged as too thin to review meaningfully.
const MinStoryLength = 120

// refundKeywords: the story must mention a refund or exchange policy in some
// form. Checked as plain substrings.
var refundKeywords = []string{"환불", "교환", "refund", "exchange"}

// CheckResult 자동 점검 결과
type CheckResult struct {
	Passed bool     `json:"passed"`
	Issues []string `json:"issues"`
}

// Check runs every heuristic against a project and its rewards.
func Check(project *model.Project, rewards []model.Reward) CheckResult {
	var issues []string

	if utf8.RuneCountInString(strings.TrimSpace(project.Story)) < MinStoryLength {
		issues = append(issues,
			fmt.Sprintf("스토리가 너무 짧습니다 (%d자 미만)", MinStoryLength))
	}

	if !containsRefundPolicy(project.Story) {
		issues = append(issues, "스토리에 환불/교환 정책 안내가 없습니다")
	}

	for _, r := range rewards {
		if strings.TrimSpace(r.Description) == "" {
			issues = append(issues,
				fmt.Sprintf("리워드 '%s'에 설명이 없습니다", r.Title))
		}
		if strings.TrimSpace(r.EstimatedShippingMonth) == "" {
			issues = append(issues,
				fmt.Sprintf("리워드 '%s'에 예상 발송 시기가 없습니다", r.Title))
		}
	}

	return CheckResult{Passed: len(issues) == 0, Issues: issues}
}

// CheckDetail runs the same heuristics against the wire shape, for callers
// that only hold the API answer.
func CheckDetail(detail *dto.ProjectReviewDetail) CheckResult {
	project := model.Project{Story: detail.Story}
	rewards := make([]model.Reward, 0, len(detail.Rewards))
	for _, r := range detail.Rewards {
		rewards = append(rewards, model.Reward{
			Title:                  r.Title,
			Description:            r.Description,
			EstimatedShippingMonth: r.EstimatedShippingMonth,
		})
	}
	return Check(&project, rewards)
}

func containsRefundPolicy(story string) bool {
	lowered := strings.ToLower(story)
	for _, kw := range refundKeywords {
		if strings.Contains(lowered, kw) {
			return true
		}
	}
	return false
}
