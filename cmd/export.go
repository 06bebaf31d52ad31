package cmd

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/spf13/cobra"
)

var exportCmd = &cobra.Command{
	Use:   "export [empId]",
	Short: "Export survey responses to an xlsx workbook",
	Long: "Export one employee's responses to survey_responses_{empId}.xlsx, or every " +
		"submission to all_survey_responses_{date}.xlsx with --all.",
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		all, _ := cmd.Flags().GetBool("all")
		if all == (len(args) == 1) {
			return errors.New("pass either an employee id or --all")
		}

		cfg, err := loadConfig(cmd)
		if err != nil {
			return err
		}
		deps, err := newClientDeps(cfg)
		if err != nil {
			return err
		}
		defer deps.close()

		out := cmd.OutOrStdout()
		if !all {
			ctx, cancel := context.WithTimeout(cmd.Context(), cfg.API.Timeout)
			defer cancel()
			path, err := deps.exporter.ExportOne(ctx, args[0])
			if err != nil {
				return err
			}
			fmt.Fprintln(out, "Saved", path)
			return nil
		}

		ctx, cancel := context.WithTimeout(cmd.Context(), cfg.API.Timeout)
		subs, err := deps.client.FetchAll(ctx)
		cancel()
		if err != nil {
			return err
		}
		ids := make([]string, len(subs))
		for i, s := range subs {
			ids[i] = s.EmpID
		}

		ctx, cancel = context.WithTimeout(cmd.Context(), cfg.API.Timeout*time.Duration(max(len(ids), 1)))
		defer cancel()
		res, err := deps.exporter.ExportAll(ctx, ids)
		if err != nil {
			return err
		}
		fmt.Fprintf(out, "Saved %d employees to %s\n", len(res.Exported), res.Path)
		for _, id := range res.Skipped {
			fmt.Fprintln(out, "  skipped", id)
		}
		return nil
	},
}

func init() {
	exportCmd.Flags().Bool("all", false, "Export every submission into one workbook")
}
