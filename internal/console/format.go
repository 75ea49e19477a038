package console

import (
	"fmt"

	"github.com/modan/fas/internal/dto"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

var krwPrinter = message.NewPrinter(language.Korean)

// FormatKRW renders an amount in won with thousands grouping, e.g. "₩900,000".
func FormatKRW(amount int64) string {
	return krwPrinter.Sprintf("₩%d", amount)
}

// SettlementStatusLabel is the Korean label shown for each settlement status.
func SettlementStatusLabel(status string) string {
	switch status {
	case "PENDING":
		return "정산 대기"
	case "FIRST_PAID":
		return "1차 지급 완료"
	case "FINAL_READY":
		return "잔금 지급 대기"
	case "COMPLETED":
		return "정산 완료"
	default:
		return status
	}
}

// SummaryCard renders one status card line, e.g. "정산 대기 3건 / ₩900,000".
func SummaryCard(status string, count, amount int64) string {
	return fmt.Sprintf("%s %d건 / %s", SettlementStatusLabel(status), count, FormatKRW(amount))
}

// SummaryCards renders the four cards in lifecycle order.
func SummaryCards(s *dto.SettlementSummary) []string {
	return []string{
		SummaryCard("PENDING", s.PendingCount, s.PendingAmount),
		SummaryCard("FIRST_PAID", s.FirstPaidCount, s.FirstPaidAmount),
		SummaryCard("FINAL_READY", s.FinalReadyCount, s.FinalReadyAmount),
		SummaryCard("COMPLETED", s.CompletedCount, s.CompletedAmount),
	}
}

// PageRangeLabel renders "X–Y of Z" for an offset page; "0 of 0" when empty.
func PageRangeLabel(number, size, contentLen int, total int64) string {
	if contentLen == 0 {
		return fmt.Sprintf("0 of %d", total)
	}
	first := number*size + 1
	last := number*size + contentLen
	return fmt.Sprintf("%d-%d of %d", first, last, total)
}
