package main

import (
	"errors"
	"log/slog"

	"github.com/spf13/cobra"

	"sarpipe/internal/config"
	"sarpipe/internal/logging"
)

func newRootCommand() *cobra.Command {
	var procFlag string

	ctx := &commandContext{procFlag: &procFlag}

	rootCmd := &cobra.Command{
		Use:           "sarpipe",
		Short:         "SAR interferometry pipeline orchestrator",
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return cmd.Help()
		},
	}

	rootCmd.PersistentFlags().StringVarP(&procFlag, "proc", "p", "", "Proc file path")

	rootCmd.AddCommand(newRunCommand(ctx))
	rootCmd.AddCommand(newListsCommand(ctx))
	rootCmd.AddCommand(newCollateCommand(ctx))
	rootCmd.AddCommand(newJobsCommand(ctx))
	rootCmd.AddCommand(newPreflightCommand(ctx))
	rootCmd.AddCommand(newConfigCommand(ctx))

	return rootCmd
}

// commandContext lazily loads the proc file and logger shared by the
// subcommands.
type commandContext struct {
	procFlag *string
	cfg      *config.Config
	logger   *slog.Logger
}

func (c *commandContext) ensureConfig() (*config.Config, error) {
	if c.cfg != nil {
		return c.cfg, nil
	}
	if c.procFlag == nil || *c.procFlag == "" {
		return nil, errors.New("a proc file is required: pass --proc")
	}
	cfg, err := config.Load(*c.procFlag)
	if err != nil {
		return nil, err
	}
	c.cfg = cfg
	return cfg, nil
}

func (c *commandContext) ensureLogger() (*slog.Logger, error) {
	if c.logger != nil {
		return c.logger, nil
	}
	cfg, err := c.ensureConfig()
	if err != nil {
		return nil, err
	}
	logger, err := logging.NewFromConfig(cfg)
	if err != nil {
		return nil, err
	}
	c.logger = logger
	return logger, nil
}
