// Package cmd provides the s3drop command tree. A bare invocation runs
// the interactive shell; subcommands cover config, history, favorites,
// and version. The direct upload-form and download subcommands are
// accepted but point at interactive mode.
package cmd

import (
	"context"

	"github.com/spf13/cobra"

	"github.com/s3drop/s3drop/internal/cli"
)

// NewRootCommand creates and returns the root cobra command with all
// global persistent flags registered. Subcommands are attached here.
func NewRootCommand() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:           "s3drop",
		Short:         "Generate presigned S3 upload forms and download links",
		Long:          "Generate self-contained HTML pages with presigned S3 upload forms and download links, without sharing AWS credentials.",
		SilenceUsage:  true,
		SilenceErrors: true,
		Args:          cobra.NoArgs,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			cliCtx := cli.NewCLIContext(cmd)
			cmd.SetContext(cli.WithContext(context.Background(), cliCtx))
			return nil
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return runShell(cmd)
		},
	}

	rootCmd.PersistentFlags().Bool("debug", false, "Show AWS SDK details and write per-call logs")
	rootCmd.PersistentFlags().Bool("json", false, "Machine-readable JSON output")

	rootCmd.AddCommand(newVersionCommand())
	rootCmd.AddCommand(newConfigCommand())
	rootCmd.AddCommand(newHistoryCommand())
	rootCmd.AddCommand(newFavoritesCommand())
	rootCmd.AddCommand(newUploadFormCommand())
	rootCmd.AddCommand(newDownloadCommand())

	return rootCmd
}

// Execute creates the root command and runs it. Called from main.
func Execute() error {
	return NewRootCommand().Execute()
}
