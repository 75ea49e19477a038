package console

import (
	"fmt"
	"strconv"
	"text/tabwriter"

	"github.com/modan/fas/internal/review"
	"github.com/spf13/cobra"
)

func newReviewCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "review",
		Short: "Project review queue",
	}
	cmd.AddCommand(newReviewListCommand())
	cmd.AddCommand(newReviewShowCommand())
	cmd.AddCommand(newReviewApproveCommand())
	cmd.AddCommand(newReviewRejectCommand())
	return cmd
}

func newReviewListCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List projects with a review history, newest submission first",
		RunE: func(cmd *cobra.Command, args []string) error {
			ds := newDataSource()
			projects, err := ds.FetchReviewProjects(cmd.Context())
			if err != nil {
				return err
			}

			w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
			fmt.Fprintln(w, "ID\t제목\t카테고리\t메이커\t목표 금액\t심사 상태\t제출일")
			for _, p := range projects {
				submitted := "-"
				if p.SubmittedAt != nil {
					submitted = p.SubmittedAt.Format("2006-01-02")
				}
				fmt.Fprintf(w, "%d\t%s\t%s\t%s\t%s\t%s\t%s\n",
					p.ProjectID, p.Title, p.Category, p.MakerName,
					FormatKRW(p.TargetAmount), p.ReviewStatus, submitted)
			}
			return w.Flush()
		},
	}
}

func newReviewShowCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "show <project-id>",
		Short: "Show project detail with automatic pre-screening advisories",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}

			ds := newDataSource()
			detail, err := ds.FetchProjectDetail(cmd.Context(), id)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "[%d] %s (%s)\n", detail.ProjectID, detail.Title, detail.Category)
			fmt.Fprintf(out, "심사 상태: %s / 진행 상태: %s\n", detail.ReviewStatus, detail.LifecycleStatus)
			fmt.Fprintf(out, "목표 금액: %s\n", FormatKRW(detail.TargetAmount))
			fmt.Fprintf(out, "펀딩 기간: %s ~ %s\n",
				detail.StartTime.Format("2006-01-02"), detail.EndTime.Format("2006-01-02"))
			if detail.RejectReason != "" {
				fmt.Fprintf(out, "반려 사유: %s\n", detail.RejectReason)
			}
			fmt.Fprintf(out, "\n메이커: %s (%s / %s)\n",
				detail.Maker.Name, detail.Maker.Email, detail.Maker.Phone)
			fmt.Fprintf(out, "정산 계좌: %s %s (%s)\n",
				detail.Maker.BankName, detail.Maker.BankAccount, detail.Maker.AccountHolder)

			fmt.Fprintln(out, "\n리워드:")
			for _, r := range detail.Rewards {
				fmt.Fprintf(out, "  - %s / %s / 발송 예정 %s\n",
					r.Title, FormatKRW(r.Price), orDash(r.EstimatedShippingMonth))
			}

			result := review.CheckDetail(detail)
			if result.Passed {
				fmt.Fprintln(out, "\n자동 점검: 통과")
			} else {
				fmt.Fprintln(out, "\n자동 점검 권고:")
				for _, issue := range result.Issues {
					fmt.Fprintf(out, "  ! %s\n", issue)
				}
			}

			fmt.Fprintf(out, "\n스토리:\n%s\n", detail.Story)
			return nil
		},
	}
}

func newReviewApproveCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "approve <project-id>",
		Short: "Approve a project under review",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}

			ds := newDataSource()
			resp, err := ds.ApproveProject(cmd.Context(), id)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "승인 완료: 프로젝트 %d → %s (%s)\n",
				resp.ProjectID, resp.ReviewStatus, resp.LifecycleStatus)
			return nil
		},
	}
}

func newReviewRejectCommand() *cobra.Command {
	var reason string
	var listPresets bool

	cmd := &cobra.Command{
		Use:   "reject <project-id>",
		Short: "Reject a project under review (requires --reason)",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}

			ds := newDataSource()
			if listPresets {
				presets, _ := ds.FetchRejectReasonPresets(cmd.Context())
				for i, p := range presets {
					fmt.Fprintf(cmd.OutOrStdout(), "%d. %s\n", i+1, p)
				}
				return nil
			}

			resp, err := ds.RejectProject(cmd.Context(), id, reason)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "반려 완료: 프로젝트 %d → %s\n사유: %s\n",
				resp.ProjectID, resp.ReviewStatus, resp.RejectReason)
			return nil
		},
	}

	cmd.Flags().StringVar(&reason, "reason", "", "reject reason shown to the maker")
	cmd.Flags().BoolVar(&listPresets, "presets", false, "print the preset reasons and exit")
	return cmd
}

func parseID(raw string) (int64, error) {
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || id <= 0 {
		return 0, fmt.Errorf("invalid id %q", raw)
	}
	return id, nil
}

func orDash(s string) string {
	if s == "" {
		return "-"
	}
	return s
}
