package console

import (
	"encoding/csv"
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/modan/fas/internal/dto"
	"github.com/spf13/cobra"
)

func newShipmentCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "shipment",
		Short: "Maker shipment console",
	}
	cmd.AddCommand(newShipmentListCommand())
	cmd.AddCommand(newShipmentShowCommand())
	cmd.AddCommand(newShipmentStatusCommand())
	cmd.AddCommand(newShipmentBulkStatusCommand())
	cmd.AddCommand(newShipmentBulkTrackingCommand())
	return cmd
}

func newShipmentListCommand() *cobra.Command {
	var projectID int64
	var status string
	var page, size int

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List shipments for a project",
		RunE: func(cmd *cobra.Command, args []string) error {
			ds := newDataSource()
			result, err := ds.FetchShipments(cmd.Context(), projectID, status, page, size)
			if err != nil {
				return err
			}

			w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
			fmt.Fprintln(w, "ID\t주문번호\t서포터\t리워드\t상태\t택배사\t운송장")
			for _, s := range result.Content {
				fmt.Fprintf(w, "%d\t%s\t%s\t%s\t%s\t%s\t%s\n",
					s.ShipmentID, s.OrderCode, s.SupporterName, s.RewardTitle,
					s.Status, orDash(s.CourierName), orDash(s.TrackingNumber))
			}
			if err := w.Flush(); err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(),
				PageRangeLabel(result.Number, result.Size, len(result.Content), result.TotalElements))
			return nil
		},
	}

	cmd.Flags().Int64Var(&projectID, "project", 0, "project id")
	cmd.Flags().StringVar(&status, "status", "", "filter by status (READY, SHIPPED, DELIVERED, ISSUE)")
	cmd.Flags().IntVar(&page, "page", 0, "0-based page number")
	cmd.Flags().IntVar(&size, "size", 20, "page size")
	_ = cmd.MarkFlagRequired("project")
	return cmd
}

func newShipmentShowCommand() *cobra.Command {
	var projectID int64

	cmd := &cobra.Command{
		Use:   "show <shipment-id>",
		Short: "Show one shipment",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}

			ds := newDataSource()
			s, err := ds.FetchShipment(cmd.Context(), projectID, id)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "배송 #%d (%s)\n", s.ShipmentID, s.OrderCode)
			fmt.Fprintf(out, "서포터: %s / %s\n", s.SupporterName, s.Address)
			fmt.Fprintf(out, "리워드: %s\n", s.RewardTitle)
			fmt.Fprintf(out, "상태: %s\n", s.Status)
			fmt.Fprintf(out, "택배사: %s / 운송장: %s\n", orDash(s.CourierName), orDash(s.TrackingNumber))
			if s.IssueReason != "" {
				fmt.Fprintf(out, "이슈 사유: %s\n", s.IssueReason)
			}
			return nil
		},
	}

	cmd.Flags().Int64Var(&projectID, "project", 0, "project id")
	_ = cmd.MarkFlagRequired("project")
	return cmd
}

func newShipmentStatusCommand() *cobra.Command {
	var projectID int64
	var status, issueReason string

	cmd := &cobra.Command{
		Use:   "status <shipment-id>",
		Short: "Change one shipment's status (ISSUE requires --issue-reason)",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}

			ds := newDataSource()
			s, err := ds.UpdateShipmentStatus(cmd.Context(), projectID, id, status, issueReason)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "배송 #%d (%s) → %s\n", s.ShipmentID, s.OrderCode, s.Status)
			return nil
		},
	}

	cmd.Flags().Int64Var(&projectID, "project", 0, "project id")
	cmd.Flags().StringVar(&status, "to", "", "new status (READY, SHIPPED, DELIVERED, ISSUE)")
	cmd.Flags().StringVar(&issueReason, "issue-reason", "", "reason, required when --to ISSUE")
	_ = cmd.MarkFlagRequired("project")
	_ = cmd.MarkFlagRequired("to")
	return cmd
}

func newShipmentBulkStatusCommand() *cobra.Command {
	var projectID int64
	var status, issueReason string
	var ids []int64

	cmd := &cobra.Command{
		Use:   "bulk-status",
		Short: "Change several shipments' status in one call",
		RunE: func(cmd *cobra.Command, args []string) error {
			ds := newDataSource()
			result, err := ds.BulkUpdateShipmentStatus(cmd.Context(), projectID, dto.BulkShipmentStatusUpdate{
				ShipmentIDs: ids,
				Status:      status,
				IssueReason: issueReason,
			})
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%d건 상태 변경 완료 → %s\n", result.UpdatedCount, status)
			return nil
		},
	}

	cmd.Flags().Int64Var(&projectID, "project", 0, "project id")
	cmd.Flags().Int64SliceVar(&ids, "ids", nil, "shipment ids")
	cmd.Flags().StringVar(&status, "to", "", "new status")
	cmd.Flags().StringVar(&issueReason, "issue-reason", "", "reason, required when --to ISSUE")
	_ = cmd.MarkFlagRequired("project")
	_ = cmd.MarkFlagRequired("ids")
	_ = cmd.MarkFlagRequired("to")
	return cmd
}

// newShipmentBulkTrackingCommand uploads a CSV of order_code, courier,
// tracking_number rows. A header row is skipped when present.
func newShipmentBulkTrackingCommand() *cobra.Command {
	var projectID int64
	var file string

	cmd := &cobra.Command{
		Use:   "bulk-tracking",
		Short: "Upload tracking numbers from a CSV file",
		RunE: func(cmd *cobra.Command, args []string) error {
			rows, err := readTrackingCSV(file)
			if err != nil {
				return err
			}
			if len(rows) == 0 {
				return fmt.Errorf("no rows in %s", file)
			}

			ds := newDataSource()
			result, err := ds.BulkUploadTracking(cmd.Context(), projectID, rows)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "성공 %d건 / 실패 %d건\n", result.SuccessCount, result.FailureCount)
			for _, f := range result.Failures {
				fmt.Fprintf(out, "  ! %s: %s\n", f.OrderCode, f.Reason)
			}
			return nil
		},
	}

	cmd.Flags().Int64Var(&projectID, "project", 0, "project id")
	cmd.Flags().StringVar(&file, "file", "", "CSV file: order_code,courier,tracking_number")
	_ = cmd.MarkFlagRequired("project")
	_ = cmd.MarkFlagRequired("file")
	return cmd
}

func readTrackingCSV(path string) ([]dto.TrackingRow, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	records, err := csv.NewReader(f).ReadAll()
	if err != nil {
		return nil, fmt.Errorf("failed to parse %s: %w", path, err)
	}

	var rows []dto.TrackingRow
	for i, rec := range records {
		if len(rec) < 3 {
			return nil, fmt.Errorf("%s line %d: want 3 columns, got %d", path, i+1, len(rec))
		}
		if i == 0 && rec[0] == "order_code" {
			continue
		}
		rows = append(rows, dto.TrackingRow{
			OrderCode:      rec[0],
			CourierName:    rec[1],
			TrackingNumber: rec[2],
		})
	}
	return rows, nil
}
