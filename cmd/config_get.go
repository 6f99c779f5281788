package cmd

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/s3drop/s3drop/internal/cli"
	"github.com/s3drop/s3drop/internal/config"
)

func newConfigGetCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "get <key>",
		Short: "Get a configuration value",
		Long:  "Print a single configuration value from ~/.s3drop/config.json.",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			key := args[0]

			// Validate the key is known before loading config.
			validKeys := config.ValidKeys()
			valid := false
			for _, k := range validKeys {
				if k == key {
					valid = true
					break
				}
			}
			if !valid {
				return fmt.Errorf("unknown config key %q; valid keys: %s", key, strings.Join(validKeys, ", "))
			}

			cfg, err := config.Load(config.DefaultConfigDir())
			if err != nil {
				return err
			}

			value := configValue(cfg, key)

			cliCtx := cli.FromCommand(cmd)
			if cliCtx != nil && cliCtx.JSON {
				enc := json.NewEncoder(cmd.OutOrStdout())
				enc.SetIndent("", "  ")
				return enc.Encode(map[string]any{key: value})
			}

			fmt.Fprintln(cmd.OutOrStdout(), value)
			return nil
		},
	}
}
