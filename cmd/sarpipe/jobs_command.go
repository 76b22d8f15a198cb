package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"sarpipe/internal/jobs"
)

func newJobsCommand(ctx *commandContext) *cobra.Command {
	var runID string

	cmd := &cobra.Command{
		Use:   "jobs",
		Short: "Show recorded batch submissions",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			ledger, err := jobs.OpenLedger(cfg)
			if err != nil {
				return err
			}
			defer ledger.Close()

			subs, err := ledger.ByRun(cmd.Context(), runID)
			if err != nil {
				return err
			}
			if len(subs) == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), "no submissions recorded")
				return nil
			}

			rows := make([][]string, 0, len(subs))
			for _, sub := range subs {
				deps := make([]string, 0, len(sub.DependsOn))
				for _, dep := range sub.DependsOn {
					deps = append(deps, string(dep))
				}
				rows = append(rows, []string{
					sub.Stage,
					sub.UnitKey,
					string(sub.Handle),
					strings.Join(deps, " "),
					sub.SubmittedAt.Local().Format("2006-01-02 15:04:05"),
				})
			}
			fmt.Fprintln(cmd.OutOrStdout(), renderTable(
				[]string{"Stage", "Unit", "Handle", "Depends On", "Submitted"},
				rows,
				[]columnAlignment{alignLeft, alignLeft, alignLeft, alignLeft, alignRight},
			))
			return nil
		},
	}

	cmd.Flags().StringVar(&runID, "run", "", "Run identifier to show submissions for")
	_ = cmd.MarkFlagRequired("run")
	return cmd
}
