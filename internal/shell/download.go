package shell

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/s3drop/s3drop/internal/format"
	"github.com/s3drop/s3drop/internal/history"
	"github.com/s3drop/s3drop/internal/render"
)

// expiryPrintLayout matches the expiry stamp rendered into the pages.
const expiryPrintLayout = "January 2, 2006 at 3:04 PM"

// downloadURL is the download-link generation flow: pick a bucket,
// browse to an object (or enter its key), presign a GET, and write the
// instructions page.
func (s *Shell) downloadURL(ctx context.Context) error {
	fmt.Fprintln(s.out, "\n📥 Generate Download URL")
	fmt.Fprintln(s.out, strings.Repeat("=", 50))

	bucket, err := s.chooseBucket(ctx)
	if err != nil {
		return err
	}
	if bucket == "" {
		fmt.Fprintln(s.out, "❌ Bucket name required")
		return nil
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

	fmt.Fprintln(s.out, "🔍 Loading files from bucket...")
	key, err := s.browseObjects(ctx, bucket)
	if err != nil {
		return err
	}
	if key == "" {
		return nil
	}

	hours := s.cfg.DefaultExpirationHours
	raw, ok := s.prompt(fmt.Sprintf("\nExpiration in hours [%g]: ", hours))
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

	fmt.Fprintln(s.out, "\n🚀 Generating download URL...")

	expiry := time.Duration(hours * float64(time.Hour))
	url, err := s.store.PresignDownload(ctx, bucket, key, expiry)
	if err != nil {
		s.reportAWS(err)
		return nil
	}

	now := s.now()
	expiresAt := now.Add(expiry)
	page, err := render.DownloadPage(render.DownloadData{
		Bucket:    bucket,
		Key:       key,
		URL:       url,
		ExpiresAt: expiresAt,
	})
	if err != nil {
		return err
	}

	filename := render.DownloadFileName(bucket, now)
	if err := s.writeFile(filename, page); err != nil {
		return fmt.Errorf("writing %s: %w", filename, err)
	}

	fmt.Fprintln(s.out, "\n✅ Download URL generated successfully!")
	fmt.Fprintf(s.out, "📄 Instructions file: %s\n", filename)
	fmt.Fprintf(s.out, "🌍 Bucket: %s\n", bucket)
	fmt.Fprintf(s.out, "📁 File: %s\n", key)
	fmt.Fprintf(s.out, "⏰ Expires: %s\n", expiresAt.Format(expiryPrintLayout))
	fmt.Fprintln(s.out, "\n🔗 Direct URL:")
	fmt.Fprintf(s.out, "   %s\n", previewURL(url))
	fmt.Fprintln(s.out, "\n🎉 Open the HTML file for easy downloading and sharing!")

	if err := s.hist.Append(history.Entry{
		Operation:       history.OpDownload,
		Bucket:          bucket,
		Key:             key,
		ExpirationHours: hours,
		Filename:        filename,
		URL:             history.TruncateURL(url),
	}); err != nil {
		fmt.Fprintf(s.out, "⚠️  Could not save history: %v\n", err)
	}

	return s.offerFavorite(bucket)
}

// browseOption is one selectable row in the object browser.
type browseOption struct {
	kind  string // "back", "folder", or "file"
	value string
}

// browseObjects walks the bucket one prefix level at a time until the
// user picks a file, enters a key manually, or cancels. Returns "" on
// cancel or after a reported provider error.
func (s *Shell) browseObjects(ctx context.Context, bucket string) (string, error) {
	current := ""
	for {
		prefixes, err := s.store.ListPrefixes(ctx, bucket, current, "/")
		if err != nil {
			s.reportAWS(err)
			return "", nil
		}
		objects, err := s.store.ListObjects(ctx, bucket, current, 50)
		if err != nil {
			s.reportAWS(err)
			return "", nil
		}

		fmt.Fprintf(s.out, "\n📁 Current location: s3://%s/%s\n", bucket, current)
		fmt.Fprintln(s.out, strings.Repeat("=", 60))

		var options []browseOption
		if current != "" {
			options = append(options, browseOption{kind: "back"})
			fmt.Fprintf(s.out, "   %d. 📂 .. (go back)\n", len(options))
		}
		for _, p := range prefixes {
			folder := strings.TrimSuffix(strings.TrimPrefix(p, current), "/")
			options = append(options, browseOption{kind: "folder", value: p})
			fmt.Fprintf(s.out, "   %d. 📂 %s/\n", len(options), folder)
		}
		for _, obj := range objects {
			if obj.Key == current {
				continue
			}
			name := strings.TrimPrefix(obj.Key, current)
			if strings.Contains(name, "/") {
				// Nested under a deeper prefix; reachable via its folder.
				continue
			}
			options = append(options, browseOption{kind: "file", value: obj.Key})
			fmt.Fprintf(s.out, "   %d. 📄 %s (%s, %s)\n",
				len(options), name, format.Size(obj.Size), obj.Modified.Format("01/02/2006"))
		}
		if len(options) == 0 {
			fmt.Fprintln(s.out, "   (empty)")
		}

		fmt.Fprintln(s.out, "\n💡 Options:")
		fmt.Fprintln(s.out, "   m. Enter file path manually")
		fmt.Fprintln(s.out, "   r. Refresh")
		fmt.Fprintln(s.out, "   q. Cancel")

		choice, ok := s.prompt("\nSelect option: ")
		if !ok {
			return "", errInputDone
		}
		switch strings.ToLower(choice) {
		case "q":
			fmt.Fprintln(s.out, "👋 Cancelled")
			return "", nil
		case "r":
			continue
		case "m":
			key, ok := s.prompt("Enter file path/key: ")
			if !ok {
				return "", errInputDone
			}
			if key == "" {
				fmt.Fprintln(s.out, "❌ File path required")
				continue
			}
			return key, nil
		default:
			n, convErr := strconv.Atoi(choice)
			if convErr != nil {
				fmt.Fprintln(s.out, "❌ Please enter a valid number or option")
				continue
			}
			if n < 1 || n > len(options) {
				fmt.Fprintln(s.out, "❌ Invalid option number")
				continue
			}
			switch opt := options[n-1]; opt.kind {
			case "back":
				current = parentPrefix(current)
			case "folder":
				current = opt.value
			case "file":
				return opt.value, nil
			}
		}
	}
}

// parentPrefix strips the last path segment: "a/b/" -> "a/", "a/" -> "".
func parentPrefix(prefix string) string {
	trimmed := strings.TrimSuffix(prefix, "/")
	i := strings.LastIndex(trimmed, "/")
	if i < 0 {
		return ""
	}
	return trimmed[:i+1]
}

// previewURL shortens a presigned URL for terminal display; the full
// URL lives in the generated page.
func previewURL(url string) string {
	if len(url) <= 80 {
		return url
	}
	return url[:80] + "..."
}
