package cmd

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/s3drop/s3drop/internal/cli"
	"github.com/s3drop/s3drop/internal/config"
)

func newConfigCommand() *cobra.Command {
	configCmd := &cobra.Command{
		Use:   "config",
		Short: "View and edit s3drop configuration",
		Long:  "View the configuration stored in ~/.s3drop/config.json, or use the get/set subcommands for single values.",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runConfigShow(cmd)
		},
	}

	configCmd.AddCommand(newConfigGetCommand())
	configCmd.AddCommand(newConfigSetCommand())

	return configCmd
}

// runConfigShow prints the full configuration, as JSON with --json or as
// an aligned key/value table otherwise.
func runConfigShow(cmd *cobra.Command) error {
	cfg, err := config.Load(config.DefaultConfigDir())
	if err != nil {
		return err
	}

	cliCtx := cli.FromCommand(cmd)
	if cliCtx != nil && cliCtx.JSON {
		enc := json.NewEncoder(cmd.OutOrStdout())
		enc.SetIndent("", "  ")
		return enc.Encode(cfg)
	}

	w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
	for _, key := range config.ValidKeys() {
		fmt.Fprintf(w, "%s\t%s\n", key, configValue(cfg, key))
	}
	favorites := "(none)"
	if len(cfg.FavoriteBuckets) > 0 {
		favorites = strings.Join(cfg.FavoriteBuckets, ", ")
	}
	fmt.Fprintf(w, "favorite_buckets\t%s\n", favorites)
	return w.Flush()
}

// configValue returns the display string for a config field by key name.
func configValue(cfg *config.Settings, key string) string {
	switch key {
	case "default_bucket":
		if cfg.DefaultBucket == "" {
			return "(not set)"
		}
		return cfg.DefaultBucket
	case "default_region":
		return cfg.DefaultRegion
	case "default_prefix":
		return cfg.DefaultPrefix
	case "default_max_size_mb":
		return strconv.FormatInt(cfg.DefaultMaxSizeMB, 10)
	case "default_expiration_hours":
		return strconv.FormatFloat(cfg.DefaultExpirationHours, 'g', -1, 64)
	case "verify_ssl":
		return strconv.FormatBool(cfg.VerifySSL)
	default:
		return ""
	}
}
