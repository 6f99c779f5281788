// This file defines the shared application wiring built once per
// invocation: settings, history, SDK clients, the storage facade, and
// the audit log.
package cmd

import (
	"context"
	"crypto/tls"
	"fmt"
	"net/http"
	"path/filepath"

	awscfg "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/aws-sdk-go-v2/service/sts"

	"github.com/s3drop/s3drop/internal/config"
	"github.com/s3drop/s3drop/internal/history"
	"github.com/s3drop/s3drop/internal/identity"
	"github.com/s3drop/s3drop/internal/logging"
	"github.com/s3drop/s3drop/internal/storage"
)

// appDeps bundles the collaborators AWS-facing commands need.
type appDeps struct {
	store     *storage.Client
	settings  *config.Settings
	configDir string
	history   *history.Store
	auditor   logging.Auditor
	resolver  *identity.Resolver
}

// initAppDeps loads settings, builds the SDK clients around them, and
// opens the local stores. The AWS config is loaded with the configured
// default region; SSL verification can be disabled in settings for
// private endpoints with self-signed certificates.
func initAppDeps(ctx context.Context, debug bool) (*appDeps, error) {
	configDir := config.DefaultConfigDir()
	settings, err := config.Load(configDir)
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}

	opts := []func(*awscfg.LoadOptions) error{
		awscfg.WithRegion(settings.DefaultRegion),
	}
	if !settings.VerifySSL {
		opts = append(opts, awscfg.WithHTTPClient(&http.Client{
			Transport: &http.Transport{
				TLSClientConfig: &tls.Config{InsecureSkipVerify: true},
			},
		}))
	}

	awsCfg, err := awscfg.LoadDefaultConfig(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("load AWS config: %w", err)
	}

	// Per-call logs live under the config dir; a failure to set them up
	// must not block the tool.
	logger, err := logging.NewStructuredLogger(filepath.Join(configDir, "logs"), debug)
	if err != nil {
		logger = logging.NewNopLogger()
	}

	var auditor logging.Auditor
	if a, err := logging.NewAuditLogger(filepath.Join(configDir, "audit.log")); err == nil {
		auditor = a
	}

	s3Client := s3.NewFromConfig(awsCfg)

	return &appDeps{
		store:     storage.New(s3Client, s3.NewPresignClient(s3Client), logger),
		settings:  settings,
		configDir: configDir,
		history:   history.Open(configDir),
		auditor:   auditor,
		resolver:  identity.NewResolver(sts.NewFromConfig(awsCfg)),
	}, nil
}

// audit records a command invocation when the audit log is available.
func (d *appDeps) audit(command, bucket, callerARN string) {
	if d.auditor == nil {
		return
	}
	_ = d.auditor.LogCommand(command, bucket, callerARN)
}

// close releases resources held by the deps.
func (d *appDeps) close() {
	if d.auditor != nil {
		_ = d.auditor.Close()
	}
}
