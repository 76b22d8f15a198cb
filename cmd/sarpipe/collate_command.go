package main

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/spf13/cobra"

	"sarpipe/internal/report"
)

func newCollateCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "collate STAGE",
		Short: "Collate per-unit error logs into the stage error report",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			logger, err := ctx.ensureLogger()
			if err != nil {
				return err
			}
			stage := strings.TrimSpace(args[0])

			collator, err := report.NewCollator(cfg, logger)
			if err != nil {
				return err
			}
			units, err := stageUnits(filepath.Join(cfg.Paths.LogDir, stage))
			if err != nil {
				return err
			}
			path, err := collator.Collate(stage, units)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), path)
			return nil
		},
	}
}

// stageUnits discovers the units processed in a stage from its per-unit
// error logs.
func stageUnits(logDir string) ([]report.Unit, error) {
	entries, err := os.ReadDir(logDir)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("no unit logs found under %s", logDir)
		}
		return nil, err
	}
	var units []report.Unit
	for _, entry := range entries {
		name := entry.Name()
		if entry.IsDir() || !strings.HasSuffix(name, ".err") {
			continue
		}
		units = append(units, report.Unit{
			Name:   strings.TrimSuffix(name, ".err"),
			ErrLog: filepath.Join(logDir, name),
		})
	}
	sort.Slice(units, func(i, j int) bool { return units[i].Name < units[j].Name })
	return units, nil
}
