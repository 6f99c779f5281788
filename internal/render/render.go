// Package render produces the standalone HTML pages s3drop hands out:
// the drag-and-drop upload form and the download instructions page. Both
// are pure functions of their inputs; the caller writes the bytes to
// disk. All CSS and script is embedded so the pages have no external
// asset dependencies.
package render

import (
	"bytes"
	"embed"
	"encoding/json"
	"fmt"
	"html/template"
	"strings"
	"time"

	"github.com/s3drop/s3drop/internal/format"
)

//go:embed templates/upload.html.tmpl templates/download.html.tmpl
var templateFS embed.FS

var pageTemplates = template.Must(template.ParseFS(templateFS, "templates/*.tmpl"))

// expiryDisplayLayout is how expiration times are shown on the pages.
const expiryDisplayLayout = "January 2, 2006 at 3:04 PM"

// UploadData carries everything the upload page needs.
type UploadData struct {
	Bucket          string
	Prefix          string
	MaxSizeMB       int64
	AllowedTypes    []string
	ExpirationHours float64
	URL             string
	Fields          map[string]string
	ExpiresAt       time.Time
}

// DownloadData carries everything the download instructions page needs.
type DownloadData struct {
	Bucket    string
	Key       string
	URL       string
	ExpiresAt time.Time
}

// uploadView is the template-facing shape of UploadData.
type uploadView struct {
	Bucket         string
	Prefix         string
	MaxSizeBytes   int64
	MaxSizeDisplay string
	ExpiresDisplay string
	AcceptAttr     string
	TypesDisplay   string
	HasTypes       bool
	URL            string
	FieldsJSON     template.JS
}

// UploadPage renders the drag-and-drop upload form around the presigned
// POST descriptor. The page's own script substitutes ${filename} into the
// key field and talks to S3 directly; nothing here runs on the generating
// machine.
func UploadPage(d UploadData) ([]byte, error) {
	fieldsJSON, err := json.Marshal(d.Fields)
	if err != nil {
		return nil, fmt.Errorf("marshal presigned fields: %w", err)
	}

	view := uploadView{
		Bucket:         d.Bucket,
		Prefix:         d.Prefix,
		MaxSizeBytes:   d.MaxSizeMB * 1024 * 1024,
		MaxSizeDisplay: format.Size(d.MaxSizeMB * 1024 * 1024),
		ExpiresDisplay: d.ExpiresAt.Format(expiryDisplayLayout),
		AcceptAttr:     strings.Join(d.AllowedTypes, ","),
		TypesDisplay:   strings.Join(d.AllowedTypes, ", "),
		HasTypes:       len(d.AllowedTypes) > 0,
		URL:            d.URL,
		FieldsJSON:     template.JS(fieldsJSON),
	}

	var buf bytes.Buffer
	if err := pageTemplates.ExecuteTemplate(&buf, "upload.html.tmpl", view); err != nil {
		return nil, fmt.Errorf("render upload page: %w", err)
	}
	return buf.Bytes(), nil
}

// downloadView is the template-facing shape of DownloadData.
type downloadView struct {
	Bucket         string
	Key            string
	URL            string
	ExpiresDisplay string
}

// DownloadPage renders the download instructions page around a presigned
// GET URL.
func DownloadPage(d DownloadData) ([]byte, error) {
	view := downloadView{
		Bucket:         d.Bucket,
		Key:            d.Key,
		URL:            d.URL,
		ExpiresDisplay: d.ExpiresAt.Format(expiryDisplayLayout),
	}

	var buf bytes.Buffer
	if err := pageTemplates.ExecuteTemplate(&buf, "download.html.tmpl", view); err != nil {
		return nil, fmt.Errorf("render download page: %w", err)
	}
	return buf.Bytes(), nil
}

// UploadFileName returns the output file name for an upload page:
// s3drop-upload-{bucket}-{unixTime}.html.
func UploadFileName(bucket string, t time.Time) string {
	return fmt.Sprintf("s3drop-upload-%s-%d.html", sanitizeBucket(bucket), t.Unix())
}

// DownloadFileName returns the output file name for a download page:
// s3drop-download-{bucket}-{unixTime}.html.
func DownloadFileName(bucket string, t time.Time) string {
	return fmt.Sprintf("s3drop-download-%s-%d.html", sanitizeBucket(bucket), t.Unix())
}

func sanitizeBucket(bucket string) string {
	return strings.ReplaceAll(bucket, "/", "-")
}
