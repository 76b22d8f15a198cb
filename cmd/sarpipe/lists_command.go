package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"sarpipe/internal/lists"
)

func newListsCommand(ctx *commandContext) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "lists",
		Short: "Build and print the run's entity lists",
	}
	cmd.AddCommand(newListsScenesCommand(ctx))
	cmd.AddCommand(newListsSlavesCommand(ctx))
	cmd.AddCommand(newListsIfgsCommand(ctx))
	return cmd
}

func listManager(ctx *commandContext) (*lists.Manager, error) {
	cfg, err := ctx.ensureConfig()
	if err != nil {
		return nil, err
	}
	logger, err := ctx.ensureLogger()
	if err != nil {
		return nil, err
	}
	if err := cfg.EnsureDirectories(); err != nil {
		return nil, err
	}
	return lists.NewManager(cfg, logger)
}

func newListsScenesCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "scenes",
		Short: "Refresh the scene list from the raw archive",
		RunE: func(cmd *cobra.Command, args []string) error {
			manager, err := listManager(ctx)
			if err != nil {
				return err
			}
			scenes, err := manager.RefreshSceneList()
			if err != nil {
				return err
			}
			for _, scene := range scenes {
				fmt.Fprintln(cmd.OutOrStdout(), scene.Identifier())
			}
			return nil
		},
	}
}

func newListsSlavesCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "slaves",
		Short: "Rebuild the slave list from the scene list",
		RunE: func(cmd *cobra.Command, args []string) error {
			manager, err := listManager(ctx)
			if err != nil {
				return err
			}
			slaves, err := manager.RefreshSlaveList()
			if err != nil {
				return err
			}
			for _, scene := range slaves {
				fmt.Fprintln(cmd.OutOrStdout(), scene.Identifier())
			}
			return nil
		},
	}
}

func newListsIfgsCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "ifgs",
		Short: "Rebuild the interferogram pair list from the scene list",
		RunE: func(cmd *cobra.Command, args []string) error {
			manager, err := listManager(ctx)
			if err != nil {
				return err
			}
			pairs, err := manager.RefreshPairList()
			if err != nil {
				return err
			}
			for _, pair := range pairs {
				fmt.Fprintln(cmd.OutOrStdout(), pair.Identifier())
			}
			return nil
		},
	}
}
