package render

import (
	"strings"
	"testing"
	"time"
)

func TestUploadPage(t *testing.T) {
	data := UploadData{
		Bucket:          "team-drops",
		Prefix:          "uploads",
		MaxSizeMB:       5120,
		AllowedTypes:    []string{"image/png", "application/pdf"},
		ExpirationHours: 1.0,
		URL:             "https://team-drops.s3.amazonaws.com/",
		Fields: map[string]string{
			"key":    "uploads/${filename}",
			"policy": "eyJleHBpcmF0aW9uIjoibmV2ZXIifQ==",
		},
		ExpiresAt: time.Date(2025, 6, 15, 14, 30, 0, 0, time.UTC),
	}

	page, err := UploadPage(data)
	if err != nil {
		t.Fatalf("UploadPage() error = %v", err)
	}
	html := string(page)

	for _, want := range []string{
		"team-drops",
		`const uploadUrl = 'https:\/\/team-drops.s3.amazonaws.com\/';`,
		`"key":"uploads/${filename}"`,
		`"policy":"eyJleHBpcmF0aW9uIjoibmV2ZXIifQ=="`,
		"const maxFileSize = 5368709120;",
		"5.0 GB",
		"June 15, 2025 at 2:30 PM",
		`accept="image/png,application/pdf"`,
		"image/png, application/pdf",
		"const prefix = 'uploads';",
	} {
		if !strings.Contains(html, want) {
			t.Errorf("upload page missing %q", want)
		}
	}

	if strings.Contains(html, "{{") {
		t.Error("upload page contains unexpanded template syntax")
	}
}

func TestUploadPageNoTypeRestriction(t *testing.T) {
	page, err := UploadPage(UploadData{
		Bucket:    "open-drops",
		MaxSizeMB: 100,
		URL:       "https://open-drops.s3.amazonaws.com/",
		Fields:    map[string]string{"key": "${filename}"},
		ExpiresAt: time.Now(),
	})
	if err != nil {
		t.Fatalf("UploadPage() error = %v", err)
	}
	html := string(page)

	if strings.Contains(html, "accept=") {
		t.Error("upload page has accept attribute without type restriction")
	}
	if !strings.Contains(html, "All file types allowed") {
		t.Error("upload page missing unrestricted-types notice")
	}
}

func TestDownloadPage(t *testing.T) {
	page, err := DownloadPage(DownloadData{
		Bucket:    "team-drops",
		Key:       "uploads/report.pdf",
		URL:       "https://team-drops.s3.amazonaws.com/uploads/report.pdf?X-Amz-Signature=abc",
		ExpiresAt: time.Date(2025, 6, 15, 15, 30, 0, 0, time.UTC),
	})
	if err != nil {
		t.Fatalf("DownloadPage() error = %v", err)
	}
	html := string(page)

	for _, want := range []string{
		"team-drops",
		"uploads/report.pdf",
		"X-Amz-Signature=abc",
		"June 15, 2025 at 3:30 PM",
	} {
		if !strings.Contains(html, want) {
			t.Errorf("download page missing %q", want)
		}
	}

	if strings.Contains(html, "{{") {
		t.Error("download page contains unexpanded template syntax")
	}
}

func TestFileNames(t *testing.T) {
	ts := time.Unix(1718461800, 0)

	tests := []struct {
		name string
		got  string
		want string
	}{
		{"upload", UploadFileName("team-drops", ts), "s3drop-upload-team-drops-1718461800.html"},
		{"download", DownloadFileName("team-drops", ts), "s3drop-download-team-drops-1718461800.html"},
		{"slashes", UploadFileName("team/drops", ts), "s3drop-upload-team-drops-1718461800.html"},
	}
	for _, tt := range tests {
		if tt.got != tt.want {
			t.Errorf("%s file name = %q, want %q", tt.name, tt.got, tt.want)
		}
	}
}
