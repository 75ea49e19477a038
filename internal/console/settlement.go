package console

import (
	"fmt"
	"os"
	"text/tabwriter"
	"time"

	"github.com/modan/fas/internal/model"
	"github.com/modan/fas/internal/workflow"
	"github.com/spf13/cobra"
)

func newSettlementCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "settlement",
		Short: "Settlement pipeline",
	}
	cmd.AddCommand(newSettlementSummaryCommand())
	cmd.AddCommand(newSettlementListCommand())
	cmd.AddCommand(newSettlementShowCommand())
	cmd.AddCommand(newSettlementCreateCommand())
	cmd.AddCommand(newSettlementExportCommand())
	cmd.AddCommand(newSettlementActionCommand("first-payout", "Execute the first payout",
		workflow.SettlementActionFirstPayout))
	cmd.AddCommand(newSettlementActionCommand("final-ready", "Mark the remaining balance ready to pay",
		workflow.SettlementActionFinalReady))
	cmd.AddCommand(newSettlementActionCommand("final-payout", "Execute the final payout and complete",
		workflow.SettlementActionFinalPayout))
	return cmd
}

func newSettlementSummaryCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "summary",
		Short: "Per-status counts and amounts",
		RunE: func(cmd *cobra.Command, args []string) error {
			ds := newDataSource()
			summary, err := ds.FetchSettlementSummary(cmd.Context())
			if err != nil {
				return err
			}
			for _, card := range SummaryCards(summary) {
				fmt.Fprintln(cmd.OutOrStdout(), card)
			}
			return nil
		},
	}
}

func newSettlementListCommand() *cobra.Command {
	var page, size int
	var status string

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List settlements, newest first",
		RunE: func(cmd *cobra.Command, args []string) error {
			ds := newDataSource()
			result, err := ds.FetchSettlements(cmd.Context(), page, size, status)
			if err != nil {
				return err
			}

			w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
			fmt.Fprintln(w, "ID\t프로젝트\t상태\t실지급액\t1차 지급액\t잔금")
			for _, s := range result.Content {
				fmt.Fprintf(w, "%d\t%s\t%s\t%s\t%s\t%s\n",
					s.SettlementID, s.ProjectTitle, SettlementStatusLabel(s.Status),
					FormatKRW(s.NetAmount), FormatKRW(s.FirstPaymentAmount),
					FormatKRW(s.FinalPaymentAmount))
			}
			if err := w.Flush(); err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(),
				PageRangeLabel(result.Number, result.Size, len(result.Content), result.TotalElements))
			return nil
		},
	}

	cmd.Flags().IntVar(&page, "page", 0, "0-based page number")
	cmd.Flags().IntVar(&size, "size", 20, "page size")
	cmd.Flags().StringVar(&status, "status", "", "filter by status (PENDING, FIRST_PAID, FINAL_READY, COMPLETED)")
	return cmd
}

func newSettlementShowCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "show <settlement-id>",
		Short: "Show one settlement with its next available action",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}

			ds := newDataSource()
			s, err := ds.FetchSettlementDetail(cmd.Context(), id)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "정산 #%d / 프로젝트 %d %s\n", s.SettlementID, s.ProjectID, s.ProjectTitle)
			fmt.Fprintf(out, "상태: %s (1차 %s / 잔금 %s)\n",
				SettlementStatusLabel(s.Status), s.FirstPaymentStatus, s.FinalPaymentStatus)
			fmt.Fprintf(out, "총 주문 금액:   %s\n", FormatKRW(s.TotalOrderAmount))
			fmt.Fprintf(out, "PG 수수료:      %s\n", FormatKRW(s.PGFeeAmount))
			fmt.Fprintf(out, "플랫폼 수수료:  %s\n", FormatKRW(s.PlatformFeeAmount))
			fmt.Fprintf(out, "실지급액:       %s\n", FormatKRW(s.NetAmount))
			fmt.Fprintf(out, "1차 지급액:     %s\n", FormatKRW(s.FirstPaymentAmount))
			fmt.Fprintf(out, "잔금:           %s\n", FormatKRW(s.FinalPaymentAmount))
			if s.FirstPaidAt != nil {
				fmt.Fprintf(out, "1차 지급일: %s (ref %s)\n",
					s.FirstPaidAt.Format(time.RFC3339), s.FirstPayoutRef)
			}
			if s.CompletedAt != nil {
				fmt.Fprintf(out, "정산 완료일: %s (ref %s)\n",
					s.CompletedAt.Format(time.RFC3339), s.FinalPayoutRef)
			}

			actions := allowedActions(s.Status, s.FirstPaymentStatus, s.FinalPaymentStatus)
			if len(actions) == 0 {
				fmt.Fprintln(out, "가능한 액션: 없음")
			} else {
				fmt.Fprintf(out, "가능한 액션: %s\n", actions[0])
			}
			return nil
		},
	}
}

func newSettlementCreateCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "create <project-id>",
		Short: "Create the settlement for a successfully ended project",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}

			ds := newDataSource()
			s, err := ds.CreateSettlement(cmd.Context(), id)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "정산 생성 완료: #%d (프로젝트 %d, 실지급액 %s)\n",
				s.SettlementID, s.ProjectID, FormatKRW(s.NetAmount))
			return nil
		},
	}
}

func newSettlementExportCommand() *cobra.Command {
	var out string

	cmd := &cobra.Command{
		Use:   "export",
		Short: "Download the settlement CSV export",
		RunE: func(cmd *cobra.Command, args []string) error {
			ds := newDataSource()
			raw, err := ds.ExportSettlementsCSV(cmd.Context())
			if err != nil {
				return err
			}

			if err := os.WriteFile(out, raw, 0o644); err != nil {
				return fmt.Errorf("failed to write %s: %w", out, err)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s 저장 완료 (%d bytes)\n", out, len(raw))
			return nil
		},
	}

	cmd.Flags().StringVar(&out, "out", "settlements.csv", "output file path")
	return cmd
}

// newSettlementActionCommand checks the transition table before calling, so
// an out-of-order action fails locally with the reason instead of a 409.
func newSettlementActionCommand(use, short string, action workflow.SettlementAction) *cobra.Command {
	return &cobra.Command{
		Use:   use + " <settlement-id>",
		Short: short,
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}

			ds := newDataSource()
			current, err := ds.FetchSettlementDetail(cmd.Context(), id)
			if err != nil {
				return err
			}

			allowed := allowedActions(current.Status, current.FirstPaymentStatus, current.FinalPaymentStatus)
			if !containsAction(allowed, action) {
				return fmt.Errorf("settlement %d is %s; %s is not available now",
					id, current.Status, action)
			}

			var updated = current
			switch action {
			case workflow.SettlementActionFirstPayout:
				updated, err = ds.FirstPayout(cmd.Context(), id)
			case workflow.SettlementActionFinalReady:
				updated, err = ds.FinalReady(cmd.Context(), id)
			case workflow.SettlementActionFinalPayout:
				updated, err = ds.FinalPayout(cmd.Context(), id)
			}
			if err != nil {
				return err
			}

			fmt.Fprintf(cmd.OutOrStdout(), "정산 #%d → %s\n",
				updated.SettlementID, SettlementStatusLabel(updated.Status))
			return nil
		},
	}
}

func allowedActions(status, first, final string) []workflow.SettlementAction {
	return workflow.AllowedSettlementActions(workflow.SettlementState{
		Status:             model.SettlementStatus(status),
		FirstPaymentStatus: model.PaymentStatus(first),
		FinalPaymentStatus: model.FinalPaymentStatus(final),
	})
}

func containsAction(actions []workflow.SettlementAction, action workflow.SettlementAction) bool {
	for _, a := range actions {
		if a == action {
			return true
		}
	}
	return false
}
