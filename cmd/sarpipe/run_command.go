package main

import (
	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"sarpipe/internal/config"
	"sarpipe/internal/gamma"
	"sarpipe/internal/jobs"
	"sarpipe/internal/lists"
	"sarpipe/internal/logging"
	"sarpipe/internal/pbs"
	"sarpipe/internal/pipeline"
	"sarpipe/internal/report"
	"sarpipe/internal/runlock"
)

func newRunCommand(ctx *commandContext) *cobra.Command {
	var incremental bool

	cmd := &cobra.Command{
		Use:   "run",
		Short: "Execute the configured pipeline stages",
		Long: "Run walks the pipeline stage order, skipping stages whose toggle is " +
			"off, and either processes units inline (interactive platform) or " +
			"submits them as chained batch jobs. Unit failures are collated, not " +
			"fatal; the exit code is non-zero only for configuration or " +
			"missing-input errors.",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			logger, err := ctx.ensureLogger()
			if err != nil {
				return err
			}

			if err := cfg.EnsureDirectories(); err != nil {
				return err
			}
			lock := runlock.New(cfg)
			if err := lock.Acquire(); err != nil {
				return err
			}
			defer lock.Release()

			runID := uuid.NewString()
			logger.Info("run starting",
				logging.String(logging.FieldRunID, runID),
				logging.String("platform", string(cfg.Platform)),
				logging.Bool("incremental", incremental))

			manager, err := lists.NewManager(cfg, logger)
			if err != nil {
				return err
			}
			collator, err := report.NewCollator(cfg, logger)
			if err != nil {
				return err
			}
			invoker := gamma.NewInvoker(logger, gamma.WithBinDir(cfg.Paths.ToolkitBin))

			var generator *jobs.Generator
			if cfg.Platform == config.PlatformBatchCluster {
				ledger, err := jobs.OpenLedger(cfg)
				if err != nil {
					return err
				}
				defer ledger.Close()
				generator = jobs.NewGenerator(cfg, ledger, pbs.NewQsubClient(logger), logger, runID)
			}

			controller, err := pipeline.New(cfg, manager, collator, invoker, generator, logger, runID)
			if err != nil {
				return err
			}
			if err := controller.Run(cmd.Context(), incremental); err != nil {
				return err
			}
			if controller.Halted() {
				logger.Info("run halted; re-run after deciding the subsetting extent")
				return nil
			}
			logger.Info("run finished", logging.String(logging.FieldRunID, runID))
			return nil
		},
	}

	cmd.Flags().BoolVar(&incremental, "incremental", false, "Process only newly added scenes from the additional-scenes list")
	return cmd
}
