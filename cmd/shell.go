package cmd

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/s3drop/s3drop/internal/cli"
	"github.com/s3drop/s3drop/internal/progress"
	"github.com/s3drop/s3drop/internal/shell"
	"github.com/s3drop/s3drop/internal/storage"
)

// runShell wires the application together and hands control to the
// interactive menu loop.
func runShell(cmd *cobra.Command) error {
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}

	cliCtx := cli.FromCommand(cmd)
	debug := cliCtx != nil && cliCtx.Debug

	deps, err := initAppDeps(ctx, debug)
	if err != nil {
		if storage.IsCredentialError(err) {
			fmt.Fprintf(cmd.ErrOrStderr(), "❌ %s\n", storage.Describe(err))
			return silentExitError{}
		}
		return err
	}
	defer deps.close()

	// Best-effort credential probe. The shell still starts without
	// credentials; every AWS-backed flow reports its own failure.
	spin := progress.New(cmd.OutOrStdout())
	spin.Start("Checking AWS credentials...")
	callerARN := ""
	if caller, resolveErr := deps.resolver.Resolve(ctx); resolveErr == nil {
		callerARN = caller.ARN
		spin.Stop(fmt.Sprintf("✅ AWS credentials OK (account %s)", caller.Account))
	} else {
		spin.Fail("⚠️  " + storage.Describe(resolveErr))
	}

	deps.audit("shell", deps.settings.DefaultBucket, callerARN)

	sh := shell.New(shell.Deps{
		Store:     deps.store,
		Settings:  deps.settings,
		ConfigDir: deps.configDir,
		History:   deps.history,
		In:        cmd.InOrStdin(),
		Out:       cmd.OutOrStdout(),
		Version:   version,
	})
	return sh.Run(ctx)
}
