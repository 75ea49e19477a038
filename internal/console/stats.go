package console

import (
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"
)

func newStatsCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "stats",
		Short: "Platform statistics",
	}
	cmd.AddCommand(newStatsDashboardCommand())
	cmd.AddCommand(newStatsDailyCommand())
	cmd.AddCommand(newStatsMonthlyCommand())
	cmd.AddCommand(newStatsRevenueCommand())
	cmd.AddCommand(newStatsPerformanceCommand())
	return cmd
}

func newStatsDashboardCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "dashboard",
		Short: "Headline KPI numbers",
		RunE: func(cmd *cobra.Command, args []string) error {
			ds := newDataSource()
			stats, err := ds.FetchDashboard(cmd.Context())
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "전체 프로젝트:  %d (진행 중 %d)\n", stats.TotalProjects, stats.LiveProjects)
			fmt.Fprintf(out, "심사 대기:      %d\n", stats.PendingReviewCount)
			fmt.Fprintf(out, "정산 대기:      %d\n", stats.PendingSettlementCount)
			fmt.Fprintf(out, "메이커:         %d\n", stats.TotalMakerCount)
			fmt.Fprintf(out, "누적 주문:      %d\n", stats.TotalOrderCount)
			fmt.Fprintf(out, "누적 펀딩 금액: %s\n", FormatKRW(stats.TotalFundedAmount))
			return nil
		},
	}
}

func newStatsDailyCommand() *cobra.Command {
	var from, to string

	cmd := &cobra.Command{
		Use:   "daily",
		Short: "Daily order and signup report",
		RunE: func(cmd *cobra.Command, args []string) error {
			ds := newDataSource()
			rows, err := ds.FetchDailyStats(cmd.Context(), from, to)
			if err != nil {
				return err
			}

			w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
			fmt.Fprintln(w, "날짜\t주문 수\t주문 금액\t신규 프로젝트\t신규 메이커")
			for _, r := range rows {
				fmt.Fprintf(w, "%s\t%d\t%s\t%d\t%d\n",
					r.Date, r.OrderCount, FormatKRW(r.OrderAmount),
					r.NewProjectCount, r.NewMakerCount)
			}
			return w.Flush()
		},
	}

	cmd.Flags().StringVar(&from, "from", "", "start date, inclusive (2006-01-02)")
	cmd.Flags().StringVar(&to, "to", "", "end date, inclusive (2006-01-02)")
	return cmd
}

func newStatsMonthlyCommand() *cobra.Command {
	var year string

	cmd := &cobra.Command{
		Use:   "monthly",
		Short: "Monthly order report",
		RunE: func(cmd *cobra.Command, args []string) error {
			ds := newDataSource()
			rows, err := ds.FetchMonthlyStats(cmd.Context(), year)
			if err != nil {
				return err
			}

			w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
			fmt.Fprintln(w, "월\t주문 수\t주문 금액")
			for _, r := range rows {
				fmt.Fprintf(w, "%s\t%d\t%s\n", r.Month, r.OrderCount, FormatKRW(r.OrderAmount))
			}
			return w.Flush()
		},
	}

	cmd.Flags().StringVar(&year, "year", "", "year, e.g. 2026 (defaults to the current year)")
	return cmd
}

func newStatsRevenueCommand() *cobra.Command {
	var from, to string

	cmd := &cobra.Command{
		Use:   "revenue",
		Short: "Fee income from completed settlements, by month",
		RunE: func(cmd *cobra.Command, args []string) error {
			ds := newDataSource()
			rows, err := ds.FetchRevenueStats(cmd.Context(), from, to)
			if err != nil {
				return err
			}

			w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
			fmt.Fprintln(w, "월\tPG 수수료\t플랫폼 수수료\t지급액")
			for _, r := range rows {
				fmt.Fprintf(w, "%s\t%s\t%s\t%s\n",
					r.Month, FormatKRW(r.PGFeeAmount),
					FormatKRW(r.PlatformFeeAmount), FormatKRW(r.PayoutAmount))
			}
			return w.Flush()
		},
	}

	cmd.Flags().StringVar(&from, "from", "", "start date, inclusive (2006-01-02)")
	cmd.Flags().StringVar(&to, "to", "", "end date, inclusive (2006-01-02)")
	return cmd
}

func newStatsPerformanceCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "performance",
		Short: "Funding performance per project, best first",
		RunE: func(cmd *cobra.Command, args []string) error {
			ds := newDataSource()
			rows, err := ds.FetchProjectPerformance(cmd.Context())
			if err != nil {
				return err
			}

			w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
			fmt.Fprintln(w, "프로젝트\t목표 금액\t달성 금액\t달성률\t주문 수\t상태")
			for _, r := range rows {
				fmt.Fprintf(w, "%s\t%s\t%s\t%.1f%%\t%d\t%s\n",
					r.Title, FormatKRW(r.TargetAmount), FormatKRW(r.CurrentAmount),
					r.AchievementRate, r.OrderCount, r.LifecycleStatus)
			}
			return w.Flush()
		},
	}
}
