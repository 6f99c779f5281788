// Package history keeps the append-only operation log in
// ~/.s3drop/history.json. The log is capped at the most recent 50
// entries; older entries are dropped on every save.
package history

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"
)

// MaxEntries is the retention cap. Saves trim to the newest MaxEntries.
const MaxEntries = 50

// Operation kinds recorded in history entries.
const (
	OpUploadForm = "upload-form"
	OpDownload   = "download"
)

// Entry is one recorded operation. Operation-specific fields are empty
// for kinds that do not use them.
type Entry struct {
	Timestamp       string  `json:"timestamp"`
	Operation       string  `json:"operation"`
	Bucket          string  `json:"bucket"`
	Prefix          string  `json:"prefix,omitempty"`
	Key             string  `json:"key,omitempty"`
	MaxSizeMB       int64   `json:"max_size_mb,omitempty"`
	ExpirationHours float64 `json:"expiration_hours,omitempty"`
	Filename        string  `json:"filename,omitempty"`
	URL             string  `json:"url,omitempty"`
}

// urlKeepLen is how much of a presigned URL is retained in history.
// Full URLs embed live signatures and do not belong in a local log.
const urlKeepLen = 100

// TruncateURL shortens a presigned URL for history storage.
func TruncateURL(url string) string {
	if len(url) <= urlKeepLen {
		return url
	}
	return url[:urlKeepLen] + "..."
}

// Store reads and writes the history file under dir.
type Store struct {
	dir     string
	entries []Entry
}

// Open loads the history file from dir/history.json. A missing or
// unreadable file yields an empty log. Files longer than the cap are
// trimmed on load so state written by older versions shrinks on first
// touch.
func Open(dir string) *Store {
	s := &Store{dir: dir}

	data, err := os.ReadFile(s.path())
	if err != nil {
		return s
	}

	var entries []Entry
	if err := json.Unmarshal(data, &entries); err != nil {
		return s
	}
	s.entries = trim(entries)
	return s
}

func (s *Store) path() string {
	return filepath.Join(s.dir, "history.json")
}

// Entries returns the retained entries, oldest first.
func (s *Store) Entries() []Entry {
	return s.entries
}

// Recent returns up to n entries, newest first.
func (s *Store) Recent(n int) []Entry {
	if n > len(s.entries) {
		n = len(s.entries)
	}
	out := make([]Entry, 0, n)
	for i := len(s.entries) - 1; i >= len(s.entries)-n; i-- {
		out = append(out, s.entries[i])
	}
	return out
}

// Append records an entry, stamps it if the caller did not, trims to the
// cap, and persists. The persist error is returned so the caller can warn,
// but the in-memory log is updated regardless.
func (s *Store) Append(e Entry) error {
	if e.Timestamp == "" {
		e.Timestamp = time.Now().Format(time.RFC3339)
	}
	s.entries = trim(append(s.entries, e))
	return s.save()
}

func (s *Store) save() error {
	if err := os.MkdirAll(s.dir, 0o700); err != nil {
		return fmt.Errorf("create history dir: %w", err)
	}

	data, err := json.MarshalIndent(s.entries, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal history: %w", err)
	}

	if err := os.WriteFile(s.path(), data, 0o600); err != nil {
		return fmt.Errorf("write history: %w", err)
	}
	return nil
}

// trim drops the oldest entries beyond MaxEntries.
func trim(entries []Entry) []Entry {
	if len(entries) <= MaxEntries {
		return entries
	}
	return entries[len(entries)-MaxEntries:]
}
