package cmd

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/s3drop/s3drop/internal/cli"
	"github.com/s3drop/s3drop/internal/config"
)

func newConfigSetCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "set <key> <value>",
		Short: "Set a configuration value",
		Long:  "Validate and persist a single configuration value to ~/.s3drop/config.json.",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			key, value := args[0], args[1]

			configDir := config.DefaultConfigDir()
			cfg, err := config.Load(configDir)
			if err != nil {
				return err
			}
			if err := cfg.Set(key, value); err != nil {
				return err
			}
			if err := config.Save(cfg, configDir); err != nil {
				return fmt.Errorf("save config: %w", err)
			}

			cliCtx := cli.FromCommand(cmd)
			if cliCtx != nil && cliCtx.JSON {
				enc := json.NewEncoder(cmd.OutOrStdout())
				enc.SetIndent("", "  ")
				return enc.Encode(map[string]any{key: configValue(cfg, key)})
			}

			fmt.Fprintf(cmd.OutOrStdout(), "%s = %s\n", key, configValue(cfg, key))
			return nil
		},
	}
}
