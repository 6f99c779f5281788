package cmd

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/s3drop/s3drop/internal/cli"
	"github.com/s3drop/s3drop/internal/config"
)

func newFavoritesCommand() *cobra.Command {
	favCmd := &cobra.Command{
		Use:   "favorites",
		Short: "Manage favorite buckets",
		Long:  "List, add, or remove the favorite buckets offered first in bucket selection.",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runFavoritesList(cmd)
		},
	}

	favCmd.AddCommand(&cobra.Command{
		Use:   "list",
		Short: "List favorite buckets",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runFavoritesList(cmd)
		},
	})

	favCmd.AddCommand(&cobra.Command{
		Use:   "add <bucket>",
		Short: "Add a favorite bucket",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			configDir := config.DefaultConfigDir()
			cfg, err := config.Load(configDir)
			if err != nil {
				return err
			}
			if !cfg.AddFavorite(args[0]) {
				fmt.Fprintf(cmd.OutOrStdout(), "%s is already a favorite\n", args[0])
				return nil
			}
			if err := config.Save(cfg, configDir); err != nil {
				return fmt.Errorf("save config: %w", err)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Added %s to favorites\n", args[0])
			return nil
		},
	})

	favCmd.AddCommand(&cobra.Command{
		Use:   "remove <bucket>",
		Short: "Remove a favorite bucket",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			configDir := config.DefaultConfigDir()
			cfg, err := config.Load(configDir)
			if err != nil {
				return err
			}
			if !cfg.RemoveFavorite(args[0]) {
				return fmt.Errorf("%s is not a favorite", args[0])
			}
			if err := config.Save(cfg, configDir); err != nil {
				return fmt.Errorf("save config: %w", err)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Removed %s from favorites\n", args[0])
			return nil
		},
	})

	return favCmd
}

func runFavoritesList(cmd *cobra.Command) error {
	cfg, err := config.Load(config.DefaultConfigDir())
	if err != nil {
		return err
	}

	cliCtx := cli.FromCommand(cmd)
	if cliCtx != nil && cliCtx.JSON {
		enc := json.NewEncoder(cmd.OutOrStdout())
		enc.SetIndent("", "  ")
		favorites := cfg.FavoriteBuckets
		if favorites == nil {
			favorites = []string{}
		}
		return enc.Encode(favorites)
	}

	if len(cfg.FavoriteBuckets) == 0 {
		fmt.Fprintln(cmd.OutOrStdout(), "No favorite buckets saved")
		return nil
	}
	for _, b := range cfg.FavoriteBuckets {
		fmt.Fprintln(cmd.OutOrStdout(), b)
	}
	return nil
}
