package review

import (
	"strings"
	"testing"

	"github.com/modan/fas/internal/dto"
	"github.com/modan/fas/internal/model"
	"github.com/stretchr/testify/assert"
)

func longStoryWithRefundPolicy() string {
	return strings.Repeat("달의 위상을 따라 밝기가 변하는 무드등입니다. ", 10) +
		"배송 후 7일 이내 단순 변심 환불이 가능합니다."
}

func TestCheckPasses(t *testing.T) {
	project := &model.Project{Story: longStoryWithRefundPolicy()}
	rewards := []model.Reward{
		{Title: "무드등 1개", Description: "기본 구성", EstimatedShippingMonth: "2026-11"},
	}

	result := Check(project, rewards)
	assert.True(t, result.Passed)
	assert.Empty(t, result.Issues)
}

func TestCheckFlagsShortStory(t *testing.T) {
	result := Check(&model.Project{Story: "짧은 소개. 환불 가능."}, nil)
	assert.False(t, result.Passed)
	assert.Len(t, result.Issues, 1)
	assert.Contains(t, result.Issues[0], "스토리가 너무 짧습니다")
}

func TestCheckFlagsMissingRefundPolicy(t *testing.T) {
	story := strings.Repeat("아주 길지만 정책 안내는 없는 소개 문단입니다. ", 10)
	result := Check(&model.Project{Story: story}, nil)
	assert.False(t, result.Passed)
	assert.Contains(t, result.Issues, "스토리에 환불/교환 정책 안내가 없습니다")
}

func TestCheckAcceptsEnglishRefundKeyword(t *testing.T) {
	story := strings.Repeat("A fairly long English project story paragraph. ", 10) +
		"Refund available within 7 days."
	result := Check(&model.Project{Story: story}, nil)
	assert.True(t, result.Passed)
}

func TestCheckFlagsIncompleteRewards(t *testing.T) {
	project := &model.Project{Story: longStoryWithRefundPolicy()}
	rewards := []model.Reward{
		{Title: "설명 없는 리워드", EstimatedShippingMonth: "2026-11"},
		{Title: "발송 시기 없는 리워드", Description: "설명"},
	}

	result := Check(project, rewards)
	assert.False(t, result.Passed)
	assert.Len(t, result.Issues, 2)
	assert.Contains(t, result.Issues[0], "설명이 없습니다")
	assert.Contains(t, result.Issues[1], "예상 발송 시기가 없습니다")
}

func TestCheckDetailMatchesCheck(t *testing.T) {
	detail := &dto.ProjectReviewDetail{
		Story: "짧은 소개.",
		Rewards: []dto.RewardDTO{
			{Title: "리워드 A"},
			{Title: "리워드 B", Description: "설명", EstimatedShippingMonth: "2026-11"},
		},
	}

	result := CheckDetail(detail)
	assert.False(t, result.Passed)
	assert.Equal(t, Check(
		&model.Project{Story: detail.Story},
		[]model.Reward{
			{Title: "리워드 A"},
			{Title: "리워드 B", Description: "설명", EstimatedShippingMonth: "2026-11"},
		},
	), result)
}
