package console

import (
	"testing"

	"github.com/modan/fas/internal/dto"
	"github.com/stretchr/testify/assert"
)

func TestFormatKRW(t *testing.T) {
	assert.Equal(t, "₩0", FormatKRW(0))
	assert.Equal(t, "₩999", FormatKRW(999))
	assert.Equal(t, "₩900,000", FormatKRW(900000))
	assert.Equal(t, "₩12,345,678", FormatKRW(12345678))
}

func TestSummaryCard(t *testing.T) {
	assert.Equal(t, "정산 대기 3건 / ₩900,000", SummaryCard("PENDING", 3, 900000))
	assert.Equal(t, "정산 완료 0건 / ₩0", SummaryCard("COMPLETED", 0, 0))
}

func TestSummaryCards(t *testing.T) {
	cards := SummaryCards(&dto.SettlementSummary{
		PendingCount: 3, PendingAmount: 900000,
		FirstPaidCount: 1, FirstPaidAmount: 5502000,
		FinalReadyCount: 2, FinalReadyAmount: 11004000,
		CompletedCount: 7, CompletedAmount: 77028000,
	})

	assert.Equal(t, []string{
		"정산 대기 3건 / ₩900,000",
		"1차 지급 완료 1건 / ₩5,502,000",
		"잔금 지급 대기 2건 / ₩11,004,000",
		"정산 완료 7건 / ₩77,028,000",
	}, cards)
}

func TestSettlementStatusLabelUnknownPassesThrough(t *testing.T) {
	assert.Equal(t, "WEIRD", SettlementStatusLabel("WEIRD"))
}

func TestPageRangeLabel(t *testing.T) {
	assert.Equal(t, "1-20 of 45", PageRangeLabel(0, 20, 20, 45))
	assert.Equal(t, "21-40 of 45", PageRangeLabel(1, 20, 20, 45))
	assert.Equal(t, "41-45 of 45", PageRangeLabel(2, 20, 5, 45))
	assert.Equal(t, "0 of 0", PageRangeLabel(0, 20, 0, 0))
}
