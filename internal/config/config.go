// Package config manages user preferences stored in ~/.s3drop/config.json.
// Config stores only local defaults for URL generation (bucket, region,
// prefix, limits); AWS is the source of truth for bucket state.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"sort"
	"strconv"
	"strings"

	"github.com/spf13/viper"
)

// Settings holds user preferences from ~/.s3drop/config.json.
// All fields use flat snake_case JSON keys.
type Settings struct {
	DefaultBucket          string   `mapstructure:"default_bucket" json:"default_bucket"`
	DefaultRegion          string   `mapstructure:"default_region" json:"default_region"`
	DefaultPrefix          string   `mapstructure:"default_prefix" json:"default_prefix"`
	DefaultMaxSizeMB       int64    `mapstructure:"default_max_size_mb" json:"default_max_size_mb"`
	DefaultExpirationHours float64  `mapstructure:"default_expiration_hours" json:"default_expiration_hours"`
	VerifySSL              bool     `mapstructure:"verify_ssl" json:"verify_ssl"`
	FavoriteBuckets        []string `mapstructure:"favorite_buckets" json:"favorite_buckets"`
}

// validator is a function that validates a string value for a config key.
type validator func(value string) error

// validators maps config keys to their validation functions.
var validators = map[string]validator{
	"default_bucket":           validateBucket,
	"default_region":           validateRegion,
	"default_prefix":           validatePrefix,
	"default_max_size_mb":      validateMaxSizeMB,
	"default_expiration_hours": validateExpirationHours,
	"verify_ssl":               validateVerifySSL,
}

// ValidKeys returns the sorted list of valid config key names.
func ValidKeys() []string {
	keys := make([]string, 0, len(validators))
	for k := range validators {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// DefaultConfigDir returns the default config directory path (~/.s3drop).
// If S3DROP_CONFIG_DIR is set, that value is used instead.
func DefaultConfigDir() string {
	if dir := os.Getenv("S3DROP_CONFIG_DIR"); dir != "" {
		return dir
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return filepath.Join(".", ".s3drop")
	}
	return filepath.Join(home, ".s3drop")
}

// setDefaults registers the built-in value for every settings key so a
// persisted file that predates a key still loads fully populated.
func setDefaults(v *viper.Viper) {
	v.SetDefault("default_bucket", "")
	v.SetDefault("default_region", "us-east-1")
	v.SetDefault("default_prefix", "uploads")
	v.SetDefault("default_max_size_mb", 5120)
	v.SetDefault("default_expiration_hours", 1.0)
	v.SetDefault("verify_ssl", true)
	v.SetDefault("favorite_buckets", []string{})
}

// Load reads the config file from configDir/config.json and returns
// Settings with defaults applied for any missing keys. A missing or
// unreadable file yields pure defaults rather than an error: local state
// must never block URL generation.
func Load(configDir string) (*Settings, error) {
	v := viper.New()
	v.SetConfigName("config")
	v.SetConfigType("json")
	v.AddConfigPath(configDir)
	setDefaults(v)

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok && !os.IsNotExist(err) {
			// Corrupt file: fall back to defaults, same as a missing file.
			fresh := viper.New()
			setDefaults(fresh)
			v = fresh
		}
	}

	cfg := &Settings{}
	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}
	if cfg.FavoriteBuckets == nil {
		cfg.FavoriteBuckets = []string{}
	}

	return cfg, nil
}

// Save writes the config to configDir/config.json, creating the directory
// if it does not exist.
func Save(cfg *Settings, configDir string) error {
	if err := os.MkdirAll(configDir, 0o700); err != nil {
		return fmt.Errorf("create config dir: %w", err)
	}

	v := viper.New()
	v.SetConfigType("json")
	v.Set("default_bucket", cfg.DefaultBucket)
	v.Set("default_region", cfg.DefaultRegion)
	v.Set("default_prefix", cfg.DefaultPrefix)
	v.Set("default_max_size_mb", cfg.DefaultMaxSizeMB)
	v.Set("default_expiration_hours", cfg.DefaultExpirationHours)
	v.Set("verify_ssl", cfg.VerifySSL)
	v.Set("favorite_buckets", cfg.FavoriteBuckets)

	path := filepath.Join(configDir, "config.json")
	if err := v.WriteConfigAs(path); err != nil {
		return err
	}
	return os.Chmod(path, 0o600)
}

// AddFavorite appends bucket to the favorites list. Adding a bucket that
// is already present is a no-op; the list stays duplicate-free.
func (s *Settings) AddFavorite(bucket string) bool {
	for _, b := range s.FavoriteBuckets {
		if b == bucket {
			return false
		}
	}
	s.FavoriteBuckets = append(s.FavoriteBuckets, bucket)
	return true
}

// RemoveFavorite deletes bucket from the favorites list. Removing an
// absent bucket is a no-op.
func (s *Settings) RemoveFavorite(bucket string) bool {
	for i, b := range s.FavoriteBuckets {
		if b == bucket {
			s.FavoriteBuckets = append(s.FavoriteBuckets[:i], s.FavoriteBuckets[i+1:]...)
			return true
		}
	}
	return false
}

// IsFavorite reports whether bucket is in the favorites list.
func (s *Settings) IsFavorite(bucket string) bool {
	for _, b := range s.FavoriteBuckets {
		if b == bucket {
			return true
		}
	}
	return false
}

// Set validates and applies a single key-value pair to the settings.
// Returns an error if the key is unknown or the value fails validation.
func (s *Settings) Set(key, value string) error {
	validate, ok := validators[key]
	if !ok {
		return fmt.Errorf("unknown config key %q; valid keys: %s", key, strings.Join(ValidKeys(), ", "))
	}

	if err := validate(value); err != nil {
		return fmt.Errorf("invalid value for %s: %w", key, err)
	}

	switch key {
	case "default_bucket":
		s.DefaultBucket = value
	case "default_region":
		s.DefaultRegion = value
	case "default_prefix":
		s.DefaultPrefix = value
	case "default_max_size_mb":
		n, _ := strconv.ParseInt(value, 10, 64) // already validated
		s.DefaultMaxSizeMB = n
	case "default_expiration_hours":
		f, _ := strconv.ParseFloat(value, 64) // already validated
		s.DefaultExpirationHours = f
	case "verify_ssl":
		s.VerifySSL = value == "true"
	}

	return nil
}

// regionPattern matches valid AWS region formats like us-west-2, eu-central-1.
var regionPattern = regexp.MustCompile(`^[a-z]{2}(-[a-z]+)+-\d+$`)

func validateBucket(value string) error {
	// Empty clears the default; bucket existence is checked against AWS
	// at generation time, not here.
	return nil
}

func validateRegion(value string) error {
	if value == "" {
		return fmt.Errorf("default_region cannot be empty")
	}
	if !regionPattern.MatchString(value) {
		return fmt.Errorf("%q does not match AWS region format (e.g., us-west-2)", value)
	}
	return nil
}

func validatePrefix(value string) error {
	// Empty means objects land at the bucket root.
	return nil
}

func validateMaxSizeMB(value string) error {
	n, err := strconv.ParseInt(value, 10, 64)
	if err != nil {
		return fmt.Errorf("%q is not a valid integer", value)
	}
	if n <= 0 {
		return fmt.Errorf("must be > 0 (got %d)", n)
	}
	return nil
}

func validateExpirationHours(value string) error {
	f, err := strconv.ParseFloat(value, 64)
	if err != nil {
		return fmt.Errorf("%q is not a valid number", value)
	}
	if f <= 0 {
		return fmt.Errorf("must be > 0 (got %v)", f)
	}
	return nil
}

func validateVerifySSL(value string) error {
	if value != "true" && value != "false" {
		return fmt.Errorf("%q is not a valid boolean (use true or false)", value)
	}
	return nil
}
