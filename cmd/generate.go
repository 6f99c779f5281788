package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

// The direct generation commands accept the full flag grammar for
// scripting compatibility, but the flows are interactive-only today:
// both print a pointer to the shell instead of generating anything.

func newUploadFormCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "upload-form",
		Short: "Generate an upload form (interactive mode only)",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			fmt.Fprintln(cmd.OutOrStdout(), "📤 Direct upload form generation coming soon!")
			fmt.Fprintln(cmd.OutOrStdout(), "💡 Use interactive mode: s3drop")
			return nil
		},
	}

	cmd.Flags().StringP("bucket", "b", "", "S3 bucket name")
	cmd.Flags().StringP("prefix", "p", "", "File prefix/folder")
	cmd.Flags().Int64P("max-size", "s", 0, "Max file size (MB)")
	cmd.Flags().Float64P("expiration", "e", 0, "Expiration (hours)")
	cmd.Flags().StringP("types", "t", "", "Allowed file types (comma-separated)")
	cmd.Flags().StringP("region", "r", "", "AWS region")
	cmd.Flags().Bool("no-ssl", false, "Disable SSL verification")

	return cmd
}

func newDownloadCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "download",
		Short: "Generate a download URL (interactive mode only)",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			fmt.Fprintln(cmd.OutOrStdout(), "📥 Direct download URL generation coming soon!")
			fmt.Fprintln(cmd.OutOrStdout(), "💡 Use interactive mode: s3drop")
			return nil
		},
	}

	cmd.Flags().StringP("bucket", "b", "", "S3 bucket name")
	cmd.Flags().StringP("key", "k", "", "S3 object key")
	cmd.Flags().Float64P("expiration", "e", 0, "Expiration (hours)")
	cmd.Flags().StringP("region", "r", "", "AWS region")
	cmd.Flags().Bool("no-ssl", false, "Disable SSL verification")

	return cmd
}
