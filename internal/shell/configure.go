package shell

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/s3drop/s3drop/internal/format"
)

// configure is the settings screen. Scalar edits accumulate on a draft
// copy and only land (in memory and on disk) when the user picks "save
// and return"; "return without saving" discards them. Favorite-bucket
// edits are live and persist immediately.
func (s *Shell) configure(ctx context.Context) error {
	draft := *s.cfg

	for {
		fmt.Fprintln(s.out, "\n🔧 Configuration Settings")
		fmt.Fprintln(s.out, strings.Repeat("=", 50))

		bucket := draft.DefaultBucket
		if bucket == "" {
			bucket = "Not set"
		}
		fmt.Fprintf(s.out, "1. Default bucket: %s\n", bucket)
		fmt.Fprintf(s.out, "2. Default region: %s\n", draft.DefaultRegion)
		fmt.Fprintf(s.out, "3. Default prefix: %s\n", draft.DefaultPrefix)
		fmt.Fprintf(s.out, "4. Default max size: %s\n", format.Size(draft.DefaultMaxSizeMB*1024*1024))
		fmt.Fprintf(s.out, "5. Default expiration: %s\n", format.Duration(int64(draft.DefaultExpirationHours*3600)))
		fmt.Fprintf(s.out, "6. SSL verification: %s\n", enabledWord(draft.VerifySSL))
		fmt.Fprintln(s.out, "7. Manage favorite buckets")
		fmt.Fprintln(s.out, "s. Save and return")
		fmt.Fprintln(s.out, "q. Return without saving")

		choice, ok := s.prompt("\nSelect option: ")
		if !ok {
			return errInputDone
		}

		switch strings.ToLower(choice) {
		case "q":
			return nil
		case "s":
			s.cfg.DefaultBucket = draft.DefaultBucket
			s.cfg.DefaultRegion = draft.DefaultRegion
			s.cfg.DefaultPrefix = draft.DefaultPrefix
			s.cfg.DefaultMaxSizeMB = draft.DefaultMaxSizeMB
			s.cfg.DefaultExpirationHours = draft.DefaultExpirationHours
			s.cfg.VerifySSL = draft.VerifySSL
			s.saveConfig()
			fmt.Fprintln(s.out, "✅ Configuration saved!")
			return nil
		case "1":
			if err := s.editDefaultBucket(ctx, &draft.DefaultBucket); err != nil {
				return err
			}
		case "2":
			region, ok := s.prompt(fmt.Sprintf("Enter region (current: %s): ", draft.DefaultRegion))
			if !ok {
				return errInputDone
			}
			if region != "" {
				draft.DefaultRegion = region
			}
		case "3":
			// Empty means no prefix, so the answer is taken verbatim.
			prefix, ok := s.prompt(fmt.Sprintf("Enter prefix (current: %s): ", draft.DefaultPrefix))
			if !ok {
				return errInputDone
			}
			draft.DefaultPrefix = prefix
		case "4":
			raw, ok := s.prompt(fmt.Sprintf("Enter max size in MB (current: %d): ", draft.DefaultMaxSizeMB))
			if !ok {
				return errInputDone
			}
			if v, err := strconv.ParseInt(raw, 10, 64); err == nil && v > 0 {
				draft.DefaultMaxSizeMB = v
			} else {
				fmt.Fprintln(s.out, "❌ Please enter a valid number")
			}
		case "5":
			raw, ok := s.prompt(fmt.Sprintf("Enter expiration in hours (current: %g): ", draft.DefaultExpirationHours))
			if !ok {
				return errInputDone
			}
			if v, err := strconv.ParseFloat(raw, 64); err == nil && v > 0 {
				draft.DefaultExpirationHours = v
			} else {
				fmt.Fprintln(s.out, "❌ Please enter a valid number")
			}
		case "6":
			raw, ok := s.prompt("Enable SSL verification? (y/n): ")
			if !ok {
				return errInputDone
			}
			draft.VerifySSL = strings.HasPrefix(strings.ToLower(raw), "y")
		case "7":
			if err := s.manageFavorites(); err != nil {
				return err
			}
		default:
			fmt.Fprintln(s.out, "❌ Invalid option")
		}
	}
}

// editDefaultBucket sets the draft default bucket, offering discovered
// buckets as a numbered list when listing succeeds.
func (s *Shell) editDefaultBucket(ctx context.Context, target *string) error {
	buckets, err := s.store.ListBuckets(ctx)
	if err != nil {
		buckets = nil
	}

	if len(buckets) == 0 {
		name, ok := s.prompt(fmt.Sprintf("Enter bucket name (current: %s): ", *target))
		if !ok {
			return errInputDone
		}
		if name != "" {
			*target = name
		}
		return nil
	}

	fmt.Fprintln(s.out, "\nAvailable buckets:")
	for i, b := range buckets {
		fmt.Fprintf(s.out, "   %d. %s\n", i+1, b)
	}

	choice, ok := s.prompt(fmt.Sprintf("\nEnter bucket name or number (current: %s): ", *target))
	if !ok {
		return errInputDone
	}
	if choice == "" {
		return nil
	}
	if n, convErr := strconv.Atoi(choice); convErr == nil {
		if n >= 1 && n <= len(buckets) {
			*target = buckets[n-1]
		}
		return nil
	}
	*target = choice
	return nil
}

// manageFavorites is the favorites screen. Every mutation persists
// immediately.
func (s *Shell) manageFavorites() error {
	for {
		fmt.Fprintln(s.out, "\n⭐ Favorite Buckets")
		fmt.Fprintln(s.out, strings.Repeat("=", 30))

		if len(s.cfg.FavoriteBuckets) > 0 {
			for i, b := range s.cfg.FavoriteBuckets {
				fmt.Fprintf(s.out, "   %d. %s\n", i+1, b)
			}
		} else {
			fmt.Fprintln(s.out, "   No favorites saved")
		}

		fmt.Fprintln(s.out, "\nOptions:")
		fmt.Fprintln(s.out, "   a. Add bucket")
		fmt.Fprintln(s.out, "   r. Remove bucket")
		fmt.Fprintln(s.out, "   c. Clear all")
		fmt.Fprintln(s.out, "   b. Back")

		choice, ok := s.prompt("\nSelect option: ")
		if !ok {
			return errInputDone
		}

		switch strings.ToLower(choice) {
		case "b":
			return nil
		case "a":
			name, ok := s.prompt("Enter bucket name to add: ")
			if !ok {
				return errInputDone
			}
			if name != "" {
				s.cfg.AddFavorite(name)
				s.saveConfig()
				fmt.Fprintf(s.out, "✅ Added %s to favorites\n", name)
			}
		case "r":
			if len(s.cfg.FavoriteBuckets) == 0 {
				fmt.Fprintln(s.out, "❌ No favorites to remove")
				continue
			}
			raw, ok := s.prompt("Enter number to remove: ")
			if !ok {
				return errInputDone
			}
			n, convErr := strconv.Atoi(raw)
			if convErr != nil {
				fmt.Fprintln(s.out, "❌ Please enter a valid number")
				continue
			}
			if n >= 1 && n <= len(s.cfg.FavoriteBuckets) {
				bucket := s.cfg.FavoriteBuckets[n-1]
				s.cfg.RemoveFavorite(bucket)
				s.saveConfig()
				fmt.Fprintf(s.out, "✅ Removed %s from favorites\n", bucket)
			}
		case "c":
			if len(s.cfg.FavoriteBuckets) == 0 {
				continue
			}
			confirm, ok := s.prompt("Clear all favorites? (y/N): ")
			if !ok {
				return errInputDone
			}
			if strings.EqualFold(confirm, "y") {
				s.cfg.FavoriteBuckets = []string{}
				s.saveConfig()
				fmt.Fprintln(s.out, "✅ All favorites cleared")
			}
		default:
			fmt.Fprintln(s.out, "❌ Invalid option")
		}
	}
}
