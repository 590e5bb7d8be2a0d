package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"studyspace/internal/blob"
	"studyspace/internal/core"
)

func (a *app) reportCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "report",
		Short: "Export an analysis report to the blob store",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return a.withService(cmd, func(ctx context.Context, svc *core.Service) error {
				report, err := svc.ExportReport(ctx)
				if err != nil {
					return err
				}
				if a.jsonOutput {
					return a.printJSON(report)
				}
				fmt.Fprintf(a.out, "Report written to %s (%d bytes)\n", report.Key, report.Size)
				if report.URL != "" {
					fmt.Fprintln(a.out, mutedStyle.Render(report.URL))
				}
				return nil
			})
		},
	}
	cmd.AddCommand(&cobra.Command{
		Use:   "list",
		Short: "List exported reports",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return a.withService(cmd, func(ctx context.Context, svc *core.Service) error {
				reports, err := svc.Reports(ctx)
				if err != nil {
					return err
				}
				if a.jsonOutput {
					if reports == nil {
						reports = []blob.Info{}
					}
					return a.printJSON(reports)
				}
				for _, r := range reports {
					fmt.Fprintf(a.out, "%s  %d bytes\n", r.Key, r.Size)
				}
				return nil
			})
		},
	})
	return cmd
}
