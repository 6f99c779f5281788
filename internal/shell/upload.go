package shell

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/s3drop/s3drop/internal/format"
	"github.com/s3drop/s3drop/internal/history"
	"github.com/s3drop/s3drop/internal/presign"
	"github.com/s3drop/s3drop/internal/render"
)

// uploadForm is the upload-form generation flow: gather parameters,
// verify the bucket and its CORS state, presign the POST, and write the
// self-contained upload page next to the working directory.
func (s *Shell) uploadForm(ctx context.Context) error {
	fmt.Fprintln(s.out, "\n📤 Generate Upload Form")
	fmt.Fprintln(s.out, strings.Repeat("=", 50))

	bucket, err := s.chooseBucket(ctx)
	if err != nil {
		return err
	}
	if bucket == "" {
		fmt.Fprintln(s.out, "❌ Bucket name required")
		return nil
	}

	prefix, ok := s.prompt(fmt.Sprintf("Prefix [%s]: ", s.cfg.DefaultPrefix))
	if !ok {
		return errInputDone
	}
	if prefix == "" {
		prefix = s.cfg.DefaultPrefix
	}

	maxSizeMB := s.cfg.DefaultMaxSizeMB
	raw, ok := s.prompt(fmt.Sprintf("Max file size in MB [%d]: ", maxSizeMB))
	if !ok {
		return errInputDone
	}
	if raw != "" {
		v, convErr := strconv.ParseInt(raw, 10, 64)
		if convErr != nil || v <= 0 {
			fmt.Fprintln(s.out, "❌ Please enter a valid number")
			return nil
		}
		maxSizeMB = v
	}

	hours := s.cfg.DefaultExpirationHours
	raw, ok = s.prompt(fmt.Sprintf("Expiration in hours [%g]: ", hours))
	if !ok {
		return errInputDone
	}
	if raw != "" {
		v, convErr := strconv.ParseFloat(raw, 64)
		if convErr != nil || v <= 0 {
			fmt.Fprintln(s.out, "❌ Please enter a valid number")
			return nil
		}
		hours = v
	}

	raw, ok = s.prompt("Allowed file types (comma-separated, e.g., image/*,video/*) [all]: ")
	if !ok {
		return errInputDone
	}
	var allowedTypes []string
	if raw != "" {
		for _, t := range strings.Split(raw, ",") {
			if t = strings.TrimSpace(t); t != "" {
				allowedTypes = append(allowedTypes, t)
			}
		}
	}

	fmt.Fprintf(s.out, "\n🔍 Checking bucket: %s\n", bucket)
	exists, err := s.store.BucketExists(ctx, bucket)
	if err != nil {
		s.reportAWS(err)
		return nil
	}
	if !exists {
		fmt.Fprintf(s.out, "❌ Bucket '%s' not found or not accessible\n", bucket)
		return nil
	}

	proceed, err := s.ensureCORS(ctx, bucket)
	if err != nil {
		return err
	}
	if !proceed {
		return nil
	}

	fmt.Fprintln(s.out, "🚀 Generating upload form...")

	req := presign.Request{
		Bucket:          bucket,
		Prefix:          prefix,
		MaxSizeMB:       maxSizeMB,
		AllowedTypes:    allowedTypes,
		ExpirationHours: hours,
	}
	post, err := s.store.PresignUpload(ctx, req)
	if err != nil {
		s.reportAWS(err)
		return nil
	}

	now := s.now()
	page, err := render.UploadPage(render.UploadData{
		Bucket:          bucket,
		Prefix:          prefix,
		MaxSizeMB:       maxSizeMB,
		AllowedTypes:    allowedTypes,
		ExpirationHours: hours,
		URL:             post.URL,
		Fields:          post.Fields,
		ExpiresAt:       now.Add(req.Expiry()),
	})
	if err != nil {
		return err
	}

	filename := render.UploadFileName(bucket, now)
	if err := s.writeFile(filename, page); err != nil {
		return fmt.Errorf("writing %s: %w", filename, err)
	}

	fmt.Fprintln(s.out, "\n✅ Upload form generated successfully!")
	fmt.Fprintf(s.out, "📄 File: %s\n", filename)
	if region, regErr := s.store.BucketRegion(ctx, bucket); regErr == nil {
		fmt.Fprintf(s.out, "🌍 Bucket: %s (%s)\n", bucket, region)
	} else {
		fmt.Fprintf(s.out, "🌍 Bucket: %s\n", bucket)
	}
	if prefix != "" {
		fmt.Fprintf(s.out, "📁 Prefix: %s\n", prefix)
	}
	fmt.Fprintf(s.out, "📏 Max size: %s\n", format.Size(req.MaxSizeBytes()))
	fmt.Fprintf(s.out, "⏰ Expires: %s\n", format.Duration(int64(hours*3600)))
	if len(allowedTypes) > 0 {
		fmt.Fprintf(s.out, "🎯 File types: %s\n", strings.Join(allowedTypes, ", "))
	}
	fmt.Fprintln(s.out, "\n🎉 Share this HTML file with users to upload files!")

	if err := s.hist.Append(history.Entry{
		Operation:       history.OpUploadForm,
		Bucket:          bucket,
		Prefix:          prefix,
		MaxSizeMB:       maxSizeMB,
		ExpirationHours: hours,
		Filename:        filename,
	}); err != nil {
		fmt.Fprintf(s.out, "⚠️  Could not save history: %v\n", err)
	}

	return s.offerFavorite(bucket)
}

// ensureCORS reports the bucket's CORS state and offers to install the
// permissive upload rule when none is configured. Browser POSTs fail
// without it, so declining or a failed setup still proceeds, but an
// unreadable CORS state aborts the flow (proceed is false, the error
// already displayed).
func (s *Shell) ensureCORS(ctx context.Context, bucket string) (proceed bool, err error) {
	fmt.Fprintln(s.out, "🔍 Checking CORS configuration...")
	hasCORS, err := s.store.HasCORS(ctx, bucket)
	if err != nil {
		s.reportAWS(err)
		return false, nil
	}
	if hasCORS {
		fmt.Fprintln(s.out, "✅ CORS is configured")
		return true, nil
	}

	fmt.Fprintf(s.out, "⚠️  CORS not configured for bucket '%s'\n", bucket)
	ans, ok := s.prompt("Set up CORS now? (Y/n): ")
	if !ok {
		return false, errInputDone
	}
	if strings.EqualFold(ans, "n") {
		return true, nil
	}

	fmt.Fprintln(s.out, "🔧 Setting up CORS...")
	if err := s.store.SetupCORS(ctx, bucket); err != nil {
		fmt.Fprintln(s.out, "❌ Failed to set up CORS. You may need to configure it manually.")
		fmt.Fprintln(s.out, "💡 See the documentation for CORS configuration instructions.")
		return true, nil
	}
	fmt.Fprintln(s.out, "✅ CORS configured successfully!")
	return true, nil
}
