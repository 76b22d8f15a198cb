package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"sarpipe/internal/config"
)

func newConfigCommand(ctx *commandContext) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Inspect or create run configuration",
	}
	cmd.AddCommand(newConfigInitCommand())
	cmd.AddCommand(newConfigShowCommand(ctx))
	return cmd
}

func newConfigInitCommand() *cobra.Command {
	var path string

	cmd := &cobra.Command{
		Use:   "init",
		Short: "Write a sample proc file",
		RunE: func(cmd *cobra.Command, args []string) error {
			if path == "" {
				path = "sarpipe.proc"
			}
			expanded, err := config.ExpandPath(path)
			if err != nil {
				return err
			}
			if err := config.CreateSample(expanded); err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), expanded)
			return nil
		},
	}

	cmd.Flags().StringVarP(&path, "output", "o", "", "Where to write the sample proc file")
	return cmd
}

func newConfigShowCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "show",
		Short: "Print the resolved run configuration",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "proc file:     %s\n", cfg.ProcPath)
			fmt.Fprintf(out, "platform:      %s\n", cfg.Platform)
			fmt.Fprintf(out, "sensor:        %s\n", cfg.Sensor)
			fmt.Fprintf(out, "track/frame:   %s/%s\n", cfg.Track, cfg.Frame)
			fmt.Fprintf(out, "master scene:  %s\n", cfg.MasterScene)
			fmt.Fprintf(out, "project dir:   %s\n", cfg.Paths.ProjectDir)
			fmt.Fprintf(out, "raw data dir:  %s\n", cfg.Paths.RawDataDir)
			fmt.Fprintf(out, "slc looks:     %dr x %da\n", cfg.MultiLook.SLCRangeLooks, cfg.MultiLook.SLCAzimuthLooks)
			fmt.Fprintf(out, "ifg looks:     %dr x %da\n", cfg.MultiLook.IfgRangeLooks, cfg.MultiLook.IfgAzimuthLooks)

			fmt.Fprintln(out, "stage toggles:")
			for _, toggle := range []struct {
				name  string
				value config.Toggle
			}{
				{"extract_raw", cfg.Stages.ExtractRaw},
				{"create_slc", cfg.Stages.CreateSLC},
				{"coreg_dem", cfg.Stages.CoregisterDEM},
				{"coreg_slaves", cfg.Stages.CoregisterSlaves},
				{"process_ifgs", cfg.Stages.ProcessIfgs},
				{"add_extract_raw", cfg.Stages.AddExtractRaw},
				{"add_create_slc", cfg.Stages.AddCreateSLC},
				{"add_coreg_slaves", cfg.Stages.AddCoregSlaves},
				{"add_process_ifgs", cfg.Stages.AddProcessIfgs},
			} {
				fmt.Fprintf(out, "  %-18s %s\n", toggle.name, toggle.value)
			}
			return nil
		},
	}
}
