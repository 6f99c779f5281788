package logging

import (
	"bytes"
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestNewStructuredLoggerCreatesLogDir(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "logs")

	_, err := NewStructuredLogger(dir, false)
	if err != nil {
		t.Fatalf("NewStructuredLogger() unexpected error: %v", err)
	}

	info, err := os.Stat(dir)
	if err != nil {
		t.Fatalf("log directory not created: %v", err)
	}
	if !info.IsDir() {
		t.Fatalf("log path is not a directory")
	}
}

func TestStructuredLoggerWritesJSONFile(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "logs")
	logger, err := NewStructuredLogger(dir, false)
	if err != nil {
		t.Fatalf("NewStructuredLogger() unexpected error: %v", err)
	}

	logger.Log("s3", "ListBuckets", 42*time.Millisecond, nil)

	entries, err := os.ReadDir(dir)
	if err != nil {
		t.Fatalf("ReadDir() error: %v", err)
	}
	if len(entries) == 0 {
		t.Fatal("no log files created")
	}

	data, err := os.ReadFile(filepath.Join(dir, entries[0].Name()))
	if err != nil {
		t.Fatalf("ReadFile() error: %v", err)
	}

	var entry StructuredLogEntry
	if err := json.Unmarshal(data, &entry); err != nil {
		t.Fatalf("log entry is not valid JSON: %v", err)
	}

	if entry.Service != "s3" {
		t.Errorf("Service = %q, want %q", entry.Service, "s3")
	}
	if entry.Operation != "ListBuckets" {
		t.Errorf("Operation = %q, want %q", entry.Operation, "ListBuckets")
	}
	if entry.DurationMs != 42 {
		t.Errorf("DurationMs = %d, want 42", entry.DurationMs)
	}
	if entry.Result != "success" {
		t.Errorf("Result = %q, want %q", entry.Result, "success")
	}
	if entry.Timestamp == "" {
		t.Error("Timestamp is empty")
	}
}

func TestStructuredLoggerRecordsErrorResult(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "logs")
	logger, err := NewStructuredLogger(dir, false)
	if err != nil {
		t.Fatalf("NewStructuredLogger() unexpected error: %v", err)
	}

	logger.Log("s3", "GetBucketCors", time.Millisecond, errors.New("NoSuchCORSConfiguration"))

	entries, err := os.ReadDir(dir)
	if err != nil || len(entries) == 0 {
		t.Fatalf("no log files created: %v", err)
	}

	data, err := os.ReadFile(filepath.Join(dir, entries[0].Name()))
	if err != nil {
		t.Fatalf("ReadFile() error: %v", err)
	}

	var entry StructuredLogEntry
	if err := json.Unmarshal(data, &entry); err != nil {
		t.Fatalf("log entry is not valid JSON: %v", err)
	}
	if entry.Result != "error" {
		t.Errorf("Result = %q, want %q", entry.Result, "error")
	}
}

func TestStructuredLoggerDebugMirrorsToStderr(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "logs")
	logger, err := NewStructuredLogger(dir, true)
	if err != nil {
		t.Fatalf("NewStructuredLogger() unexpected error: %v", err)
	}

	var buf bytes.Buffer
	logger.SetStderr(&buf)

	logger.Log("sts", "GetCallerIdentity", time.Millisecond, nil)

	if buf.Len() == 0 {
		t.Fatal("debug mode did not mirror entry to stderr")
	}
	var entry StructuredLogEntry
	if err := json.Unmarshal(buf.Bytes(), &entry); err != nil {
		t.Fatalf("stderr mirror is not valid JSON: %v", err)
	}
	if entry.Operation != "GetCallerIdentity" {
		t.Errorf("Operation = %q, want %q", entry.Operation, "GetCallerIdentity")
	}
}

func TestNopLoggerDiscards(t *testing.T) {
	logger := NewNopLogger()
	// Must not panic or write anywhere.
	logger.Log("s3", "HeadBucket", time.Millisecond, nil)
	logger.SetStderr(nil)
}
