// Package shell implements the interactive menu loop: a finite set of
// screens (main menu, upload form, download URL, settings, favorites,
// history, config view) driven by line-oriented prompts. Each selection
// runs one synchronous flow against the storage facade; nothing carries
// over between selections except what the config and history stores
// persist.
package shell

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/s3drop/s3drop/internal/config"
	"github.com/s3drop/s3drop/internal/format"
	"github.com/s3drop/s3drop/internal/history"
	"github.com/s3drop/s3drop/internal/presign"
	"github.com/s3drop/s3drop/internal/storage"
)

// Storage is the subset of the storage facade the shell drives.
type Storage interface {
	ListBuckets(ctx context.Context) ([]string, error)
	BucketExists(ctx context.Context, bucket string) (bool, error)
	BucketRegion(ctx context.Context, bucket string) (string, error)
	HasCORS(ctx context.Context, bucket string) (bool, error)
	SetupCORS(ctx context.Context, bucket string) error
	ListObjects(ctx context.Context, bucket, prefix string, maxKeys int32) ([]storage.Object, error)
	ListPrefixes(ctx context.Context, bucket, prefix, delimiter string) ([]string, error)
	PresignUpload(ctx context.Context, req presign.Request) (*storage.PresignedPost, error)
	PresignDownload(ctx context.Context, bucket, key string, expiry time.Duration) (string, error)
}

// Compile-time check that the storage facade satisfies the interface.
var _ Storage = (*storage.Client)(nil)

// errInputDone signals that stdin is exhausted. Flows propagate it to
// Run, which exits the loop cleanly instead of spinning on EOF.
var errInputDone = errors.New("input closed")

// Deps carries the shell's collaborators. Nil In/Out/Now/WriteFile get
// working defaults; Store, Settings, and History must be set.
type Deps struct {
	Store     Storage
	Settings  *config.Settings
	ConfigDir string
	History   *history.Store
	In        io.Reader
	Out       io.Writer
	Version   string
	Now       func() time.Time
	WriteFile func(name string, data []byte) error
}

// Shell is the interactive menu loop. Create one with New and drive it
// with Run.
type Shell struct {
	store     Storage
	cfg       *config.Settings
	configDir string
	hist      *history.Store
	in        *bufio.Scanner
	out       io.Writer
	version   string
	now       func() time.Time
	writeFile func(name string, data []byte) error
}

// New constructs a Shell from deps, filling in defaults for unset
// optional fields.
func New(deps Deps) *Shell {
	if deps.In == nil {
		deps.In = os.Stdin
	}
	if deps.Out == nil {
		deps.Out = os.Stdout
	}
	if deps.Now == nil {
		deps.Now = time.Now
	}
	if deps.WriteFile == nil {
		deps.WriteFile = func(name string, data []byte) error {
			return os.WriteFile(name, data, 0o644)
		}
	}
	if deps.Version == "" {
		deps.Version = "dev"
	}

	return &Shell{
		store:     deps.Store,
		cfg:       deps.Settings,
		configDir: deps.ConfigDir,
		hist:      deps.History,
		in:        bufio.NewScanner(deps.In),
		out:       deps.Out,
		version:   deps.Version,
		now:       deps.Now,
		writeFile: deps.WriteFile,
	}
}

// Run drives the main menu until the user quits or input is exhausted.
// Flow errors are displayed and the loop continues; only a broken output
// stream or a cancelled context would make Run itself fail, and neither
// is surfaced as an error today, so Run always returns nil.
func (s *Shell) Run(ctx context.Context) error {
	for {
		s.printMenu()

		choice, ok := s.prompt("\nSelect option: ")
		if !ok {
			s.farewell()
			return nil
		}

		var err error
		switch strings.ToLower(choice) {
		case "q":
			s.farewell()
			return nil
		case "1":
			err = s.uploadForm(ctx)
		case "2":
			err = s.downloadURL(ctx)
		case "3":
			err = s.configure(ctx)
		case "4":
			s.showHistory()
		case "5":
			s.showConfig()
		case "r":
			fmt.Fprintln(s.out, "🔄 Refreshed!")
			continue
		default:
			fmt.Fprintln(s.out, "❌ Invalid option. Please try again.")
			if _, ok := s.prompt("Press Enter to continue..."); !ok {
				s.farewell()
				return nil
			}
		}

		if errors.Is(err, errInputDone) {
			s.farewell()
			return nil
		}
		if err != nil {
			fmt.Fprintf(s.out, "❌ Unexpected error: %v\n", err)
		}
	}
}

func (s *Shell) printMenu() {
	fmt.Fprintf(s.out, "\n🚀 S3-Drop v%s\n", s.version)
	fmt.Fprintln(s.out, strings.Repeat("=", 50))

	if s.cfg.DefaultBucket != "" {
		fmt.Fprintf(s.out, "📍 Default bucket: %s\n", s.cfg.DefaultBucket)
	} else {
		fmt.Fprintln(s.out, "📍 No default bucket configured")
	}
	fmt.Fprintf(s.out, "🌍 Region: %s\n", s.cfg.DefaultRegion)

	fmt.Fprintln(s.out, "\n🎯 What would you like to do?")
	fmt.Fprintln(s.out, "   1. 📤 Generate upload form")
	fmt.Fprintln(s.out, "   2. 📥 Generate download URL")
	fmt.Fprintln(s.out, "   3. 🔧 Configure settings")
	fmt.Fprintln(s.out, "   4. 📋 View recent operations")
	fmt.Fprintln(s.out, "   5. ⭐ View current config")
	fmt.Fprintln(s.out, "   r. Refresh")
	fmt.Fprintln(s.out, "   q. Quit")
}

func (s *Shell) farewell() {
	fmt.Fprintln(s.out, "👋 Thanks for using S3-Drop!")
}

// prompt prints label and returns the next input line, trimmed. ok is
// false once input is exhausted.
func (s *Shell) prompt(label string) (value string, ok bool) {
	fmt.Fprint(s.out, label)
	if !s.in.Scan() {
		return "", false
	}
	return strings.TrimSpace(s.in.Text()), true
}

// reportAWS prints a provider error in user terms. Flows call it and
// return nil: the operation is aborted but the menu loop continues.
func (s *Shell) reportAWS(err error) {
	fmt.Fprintf(s.out, "❌ %s\n", storage.Describe(err))
}

// saveConfig persists settings, downgrading I/O failures to a warning so
// the in-memory state stays usable.
func (s *Shell) saveConfig() {
	if err := config.Save(s.cfg, s.configDir); err != nil {
		fmt.Fprintf(s.out, "⚠️  Could not save config: %v\n", err)
	}
}

// chooseBucket resolves the target bucket for a flow: confirm the
// default if one is set, otherwise (or on decline) offer favorites plus
// discovered buckets as a numbered list, falling back to free-form
// entry. Returns "" when the user supplies nothing usable.
func (s *Shell) chooseBucket(ctx context.Context) (string, error) {
	bucket := s.cfg.DefaultBucket
	if bucket != "" {
		ans, ok := s.prompt(fmt.Sprintf("Use default bucket '%s'? (Y/n): ", bucket))
		if !ok {
			return "", errInputDone
		}
		if !strings.EqualFold(ans, "n") {
			return bucket, nil
		}
	}

	// Discovery is best-effort: without credentials or permissions the
	// user can still type a bucket name.
	discovered, err := s.store.ListBuckets(ctx)
	if err != nil {
		discovered = nil
	}

	var candidates []string
	if len(s.cfg.FavoriteBuckets) > 0 {
		fmt.Fprintln(s.out, "\n⭐ Favorite buckets:")
		for _, fav := range s.cfg.FavoriteBuckets {
			candidates = append(candidates, fav)
			fmt.Fprintf(s.out, "   %d. %s\n", len(candidates), fav)
		}
	}
	if len(discovered) > 0 {
		fmt.Fprintln(s.out, "\n📋 Available buckets:")
		for _, b := range discovered {
			if s.cfg.IsFavorite(b) {
				continue
			}
			candidates = append(candidates, b)
			fmt.Fprintf(s.out, "   %d. %s\n", len(candidates), b)
		}
	}

	if len(candidates) == 0 {
		name, ok := s.prompt("Enter bucket name: ")
		if !ok {
			return "", errInputDone
		}
		return name, nil
	}

	choice, ok := s.prompt("\nSelect bucket (number or name): ")
	if !ok {
		return "", errInputDone
	}
	if n, convErr := strconv.Atoi(choice); convErr == nil {
		if n >= 1 && n <= len(candidates) {
			return candidates[n-1], nil
		}
		return "", nil
	}
	return choice, nil
}

// offerFavorite asks whether to remember a bucket that is not yet a
// favorite. Called at the end of successful generate flows.
func (s *Shell) offerFavorite(bucket string) error {
	if s.cfg.IsFavorite(bucket) {
		return nil
	}
	ans, ok := s.prompt(fmt.Sprintf("\nAdd '%s' to favorites? (y/N): ", bucket))
	if !ok {
		return errInputDone
	}
	if strings.EqualFold(ans, "y") {
		s.cfg.AddFavorite(bucket)
		s.saveConfig()
		fmt.Fprintln(s.out, "⭐ Added to favorites")
	}
	return nil
}

// showConfig prints the current configuration screen.
func (s *Shell) showConfig() {
	fmt.Fprintln(s.out, "\n🔧 S3-Drop Configuration")
	fmt.Fprintln(s.out, strings.Repeat("=", 50))

	bucket := s.cfg.DefaultBucket
	if bucket == "" {
		bucket = "Not set"
	}
	fmt.Fprintf(s.out, "📍 Default bucket: %s\n", bucket)
	fmt.Fprintf(s.out, "🌍 Default region: %s\n", s.cfg.DefaultRegion)
	fmt.Fprintf(s.out, "📁 Default prefix: %s\n", s.cfg.DefaultPrefix)
	fmt.Fprintf(s.out, "📏 Default max size: %s\n", format.Size(s.cfg.DefaultMaxSizeMB*1024*1024))
	fmt.Fprintf(s.out, "⏰ Default expiration: %s\n", format.Duration(int64(s.cfg.DefaultExpirationHours*3600)))
	fmt.Fprintf(s.out, "🔒 SSL verification: %s\n", enabledWord(s.cfg.VerifySSL))

	if len(s.cfg.FavoriteBuckets) > 0 {
		fmt.Fprintf(s.out, "\n⭐ Favorite buckets (%d):\n", len(s.cfg.FavoriteBuckets))
		for i, b := range s.cfg.FavoriteBuckets {
			fmt.Fprintf(s.out, "   %d. %s\n", i+1, b)
		}
	} else {
		fmt.Fprintln(s.out, "\n⭐ No favorite buckets saved")
	}
}

// showHistory prints the ten most recent operations, newest first.
func (s *Shell) showHistory() {
	entries := s.hist.Entries()
	if len(entries) == 0 {
		fmt.Fprintln(s.out, "📋 No recent operations")
		return
	}

	fmt.Fprintf(s.out, "\n📋 Recent Operations (%d total)\n", len(entries))
	fmt.Fprintln(s.out, strings.Repeat("=", 50))

	for _, e := range s.hist.Recent(10) {
		timeStr := e.Timestamp
		if t, err := time.Parse(time.RFC3339, e.Timestamp); err == nil {
			timeStr = t.Format("01/02 15:04")
		}

		switch e.Operation {
		case history.OpUploadForm:
			fmt.Fprintf(s.out, "📤 %s - Upload form: %s/%s (%dMB max)\n", timeStr, e.Bucket, e.Prefix, e.MaxSizeMB)
		case history.OpDownload:
			fmt.Fprintf(s.out, "📥 %s - Download: %s/%s\n", timeStr, e.Bucket, e.Key)
		default:
			fmt.Fprintf(s.out, "🔧 %s - %s: %s\n", timeStr, e.Operation, e.Bucket)
		}
	}
}

func enabledWord(on bool) string {
	if on {
		return "Enabled"
	}
	return "Disabled"
}
