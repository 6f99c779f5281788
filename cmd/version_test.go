package cmd

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"
)

func TestVersionCommandOutput(t *testing.T) {
	buf := new(bytes.Buffer)
	rootCmd := NewRootCommand()
	rootCmd.SetOut(buf)
	rootCmd.SetErr(buf)
	rootCmd.SetArgs([]string{"version"})

	if err := rootCmd.Execute(); err != nil {
		t.Fatalf("version command returned error: %v", err)
	}

	output := buf.String()

	for _, field := range []string{"version:", "commit:", "date:"} {
		if !strings.Contains(output, field) {
			t.Errorf("version output missing %q field, got: %s", field, output)
		}
	}

	// Dev defaults when no ldflags are injected.
	for _, want := range []string{"dev", "none", "unknown"} {
		if !strings.Contains(output, want) {
			t.Errorf("expected dev default %q, got: %s", want, output)
		}
	}
}

func TestVersionCommandJSONOutput(t *testing.T) {
	buf := new(bytes.Buffer)
	rootCmd := NewRootCommand()
	rootCmd.SetOut(buf)
	rootCmd.SetErr(buf)
	rootCmd.SetArgs([]string{"--json", "version"})

	if err := rootCmd.Execute(); err != nil {
		t.Fatalf("version --json returned error: %v", err)
	}

	var result map[string]string
	if err := json.Unmarshal(buf.Bytes(), &result); err != nil {
		t.Fatalf("version --json output is not valid JSON: %v\noutput: %s", err, buf.String())
	}
	for _, key := range []string{"version", "commit", "date"} {
		if _, ok := result[key]; !ok {
			t.Errorf("JSON output missing %q key, got: %s", key, buf.String())
		}
	}
}
