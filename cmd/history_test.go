package cmd

import (
	"encoding/json"
	"strings"
	"testing"

	"github.com/s3drop/s3drop/internal/history"
)

func TestHistoryCommandEmpty(t *testing.T) {
	output, err := execute(t, t.TempDir(), "history")
	if err != nil {
		t.Fatalf("history returned error: %v", err)
	}
	if !strings.Contains(output, "No recent operations") {
		t.Errorf("missing empty message, got: %s", output)
	}
}

func TestHistoryCommandListsNewestFirst(t *testing.T) {
	dir := t.TempDir()
	store := history.Open(dir)
	if err := store.Append(history.Entry{
		Operation: history.OpUploadForm,
		Bucket:    "first-bucket",
		Prefix:    "uploads",
		MaxSizeMB: 100,
	}); err != nil {
		t.Fatal(err)
	}
	if err := store.Append(history.Entry{
		Operation: history.OpDownload,
		Bucket:    "second-bucket",
		Key:       "report.pdf",
	}); err != nil {
		t.Fatal(err)
	}

	output, err := execute(t, dir, "history")
	if err != nil {
		t.Fatalf("history returned error: %v", err)
	}

	downloadPos := strings.Index(output, "second-bucket")
	uploadPos := strings.Index(output, "first-bucket")
	if downloadPos < 0 || uploadPos < 0 {
		t.Fatalf("missing entries, got:\n%s", output)
	}
	if downloadPos > uploadPos {
		t.Errorf("entries should be newest first, got:\n%s", output)
	}
}

func TestHistoryCommandJSON(t *testing.T) {
	dir := t.TempDir()
	store := history.Open(dir)
	if err := store.Append(history.Entry{
		Operation: history.OpDownload,
		Bucket:    "drops",
		Key:       "a.txt",
	}); err != nil {
		t.Fatal(err)
	}

	output, err := execute(t, dir, "--json", "history")
	if err != nil {
		t.Fatalf("history --json returned error: %v", err)
	}

	var entries []history.Entry
	if err := json.Unmarshal([]byte(output), &entries); err != nil {
		t.Fatalf("history --json output is not valid JSON: %v\noutput: %s", err, output)
	}
	if len(entries) != 1 || entries[0].Bucket != "drops" {
		t.Errorf("entries = %+v", entries)
	}
}

func TestHistoryCommandLimit(t *testing.T) {
	dir := t.TempDir()
	store := history.Open(dir)
	for i := 0; i < 5; i++ {
		if err := store.Append(history.Entry{
			Operation: history.OpDownload,
			Bucket:    "drops",
			Key:       "file.txt",
		}); err != nil {
			t.Fatal(err)
		}
	}

	output, err := execute(t, dir, "history", "--limit", "2")
	if err != nil {
		t.Fatalf("history --limit returned error: %v", err)
	}
	if got := strings.Count(output, "drops"); got != 2 {
		t.Errorf("expected 2 entries, counted %d in:\n%s", got, output)
	}
}
