package cli

import (
	"context"
	"testing"

	"github.com/spf13/cobra"
)

func TestNewCLIContextReadsFlags(t *testing.T) {
	cmd := &cobra.Command{Use: "test"}
	cmd.PersistentFlags().Bool("debug", false, "")
	cmd.PersistentFlags().Bool("json", false, "")
	if err := cmd.PersistentFlags().Set("json", "true"); err != nil {
		t.Fatal(err)
	}

	cliCtx := NewCLIContext(cmd)
	if cliCtx.Debug {
		t.Error("Debug = true, want false")
	}
	if !cliCtx.JSON {
		t.Error("JSON = false, want true")
	}
}

func TestContextRoundTrip(t *testing.T) {
	cliCtx := &CLIContext{Debug: true}
	ctx := WithContext(context.Background(), cliCtx)

	if got := FromContext(ctx); got != cliCtx {
		t.Errorf("FromContext() = %v, want %v", got, cliCtx)
	}
}

func TestFromContextMissing(t *testing.T) {
	if got := FromContext(context.Background()); got != nil {
		t.Errorf("FromContext() = %v, want nil", got)
	}
}

func TestFromCommandNoContext(t *testing.T) {
	cmd := &cobra.Command{Use: "test"}
	if got := FromCommand(cmd); got != nil {
		t.Errorf("FromCommand() = %v, want nil", got)
	}
}

func TestFromCommandWithContext(t *testing.T) {
	cmd := &cobra.Command{Use: "test"}
	cliCtx := &CLIContext{JSON: true}
	cmd.SetContext(WithContext(context.Background(), cliCtx))

	if got := FromCommand(cmd); got != cliCtx {
		t.Errorf("FromCommand() = %v, want %v", got, cliCtx)
	}
}
