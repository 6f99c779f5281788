package cmd

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/s3drop/s3drop/internal/cli"
	"github.com/s3drop/s3drop/internal/config"
	"github.com/s3drop/s3drop/internal/history"
)

func newHistoryCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "history",
		Short: "Show recent operations",
		Long:  "Show recent upload-form and download operations recorded in ~/.s3drop/history.json, newest first.",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			limit, _ := cmd.Flags().GetInt("limit")
			return runHistory(cmd, limit)
		},
	}

	cmd.Flags().Int("limit", 10, "Maximum number of entries to show")

	return cmd
}

func runHistory(cmd *cobra.Command, limit int) error {
	store := history.Open(config.DefaultConfigDir())
	entries := store.Recent(limit)

	cliCtx := cli.FromCommand(cmd)
	if cliCtx != nil && cliCtx.JSON {
		enc := json.NewEncoder(cmd.OutOrStdout())
		enc.SetIndent("", "  ")
		return enc.Encode(entries)
	}

	w := cmd.OutOrStdout()
	if len(entries) == 0 {
		fmt.Fprintln(w, "No recent operations")
		return nil
	}

	for _, e := range entries {
		timeStr := e.Timestamp
		if t, err := time.Parse(time.RFC3339, e.Timestamp); err == nil {
			timeStr = t.Format("01/02 15:04")
		}

		switch e.Operation {
		case history.OpUploadForm:
			fmt.Fprintf(w, "%s  upload-form  %s/%s (%dMB max, %gh)\n", timeStr, e.Bucket, e.Prefix, e.MaxSizeMB, e.ExpirationHours)
		case history.OpDownload:
			fmt.Fprintf(w, "%s  download     %s/%s (%gh)\n", timeStr, e.Bucket, e.Key, e.ExpirationHours)
		default:
			fmt.Fprintf(w, "%s  %s  %s\n", timeStr, e.Operation, e.Bucket)
		}
	}
	return nil
}
