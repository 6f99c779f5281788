// Package storage wraps the S3 SDK calls s3drop makes with uniform error
// translation and per-call structured logging. Every operation returns an
// explicit error; callers decide where a failure degrades to empty-list
// UX instead of the facade swallowing it.
package storage

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	s3types "github.com/aws/aws-sdk-go-v2/service/s3/types"
	"github.com/aws/smithy-go"

	awsx "github.com/s3drop/s3drop/internal/aws"
	"github.com/s3drop/s3drop/internal/logging"
	"github.com/s3drop/s3drop/internal/presign"
)

// Object is one S3 object listing row.
type Object struct {
	Key          string
	Size         int64
	Modified     time.Time
	StorageClass string
}

// PresignedPost carries the form action URL and the policy fields a
// multipart upload form must submit.
type PresignedPost struct {
	URL    string
	Fields map[string]string
}

// Client is the storage facade. All provider calls go through it so they
// are timed and logged uniformly.
type Client struct {
	api       awsx.BucketAPI
	presigner awsx.PresignAPI
	logger    logging.Logger
}

// New creates a Client over the given SDK interfaces. A nil logger
// disables call logging.
func New(api awsx.BucketAPI, presigner awsx.PresignAPI, logger logging.Logger) *Client {
	if logger == nil {
		logger = logging.NewNopLogger()
	}
	return &Client{api: api, presigner: presigner, logger: logger}
}

// logged records one S3 call in the structured log.
func (c *Client) logged(operation string, start time.Time, err error) {
	c.logger.Log("s3", operation, time.Since(start), err)
}

// ListBuckets returns the names of all accessible buckets, sorted.
func (c *Client) ListBuckets(ctx context.Context) ([]string, error) {
	start := time.Now()
	out, err := c.api.ListBuckets(ctx, &s3.ListBucketsInput{})
	c.logged("ListBuckets", start, err)
	if err != nil {
		return nil, fmt.Errorf("list buckets: %w", err)
	}

	names := make([]string, 0, len(out.Buckets))
	for _, b := range out.Buckets {
		if b.Name != nil {
			names = append(names, *b.Name)
		}
	}
	sort.Strings(names)
	return names, nil
}

// notAccessibleCodes are the HeadBucket error codes that mean "this bucket
// is not usable by the caller" rather than a transport or config failure.
var notAccessibleCodes = map[string]bool{
	"NotFound":     true,
	"NoSuchBucket": true,
	"Forbidden":    true,
	"AccessDenied": true,
}

// BucketExists probes the bucket with a metadata request. Not-found and
// access-denied responses report false without an error; anything else
// (credentials, network) is returned to the caller.
func (c *Client) BucketExists(ctx context.Context, bucket string) (bool, error) {
	start := time.Now()
	_, err := c.api.HeadBucket(ctx, &s3.HeadBucketInput{
		Bucket: aws.String(bucket),
	})
	c.logged("HeadBucket", start, err)
	if err == nil {
		return true, nil
	}

	var notFound *s3types.NotFound
	if errors.As(err, &notFound) {
		return false, nil
	}
	var apiErr smithy.APIError
	if errors.As(err, &apiErr) && notAccessibleCodes[apiErr.ErrorCode()] {
		return false, nil
	}
	return false, fmt.Errorf("head bucket %q: %w", bucket, err)
}

// BucketRegion resolves the bucket's region. S3 reports an empty location
// constraint for us-east-1.
func (c *Client) BucketRegion(ctx context.Context, bucket string) (string, error) {
	start := time.Now()
	out, err := c.api.GetBucketLocation(ctx, &s3.GetBucketLocationInput{
		Bucket: aws.String(bucket),
	})
	c.logged("GetBucketLocation", start, err)
	if err != nil {
		return "", fmt.Errorf("get bucket location for %q: %w", bucket, err)
	}

	if out.LocationConstraint == "" {
		return "us-east-1", nil
	}
	return string(out.LocationConstraint), nil
}

// HasCORS reports whether the bucket has any CORS configuration. Only the
// NoSuchCORSConfiguration response maps to false; other failures
// propagate so the caller does not mistake a permissions problem for a
// missing policy.
func (c *Client) HasCORS(ctx context.Context, bucket string) (bool, error) {
	start := time.Now()
	_, err := c.api.GetBucketCors(ctx, &s3.GetBucketCorsInput{
		Bucket: aws.String(bucket),
	})
	c.logged("GetBucketCors", start, err)
	if err == nil {
		return true, nil
	}

	var apiErr smithy.APIError
	if errors.As(err, &apiErr) && apiErr.ErrorCode() == "NoSuchCORSConfiguration" {
		return false, nil
	}
	return false, fmt.Errorf("get bucket cors for %q: %w", bucket, err)
}

// SetupCORS installs the permissive browser-upload rule: all origins,
// GET/POST/PUT, all headers, with a one-hour preflight cache.
func (c *Client) SetupCORS(ctx context.Context, bucket string) error {
	start := time.Now()
	_, err := c.api.PutBucketCors(ctx, &s3.PutBucketCorsInput{
		Bucket: aws.String(bucket),
		CORSConfiguration: &s3types.CORSConfiguration{
			CORSRules: []s3types.CORSRule{
				{
					AllowedHeaders: []string{"*"},
					AllowedMethods: []string{"GET", "POST", "PUT"},
					AllowedOrigins: []string{"*"},
					ExposeHeaders:  []string{},
					MaxAgeSeconds:  aws.Int32(3600),
				},
			},
		},
	})
	c.logged("PutBucketCors", start, err)
	if err != nil {
		return fmt.Errorf("put bucket cors for %q: %w", bucket, err)
	}
	return nil
}

// ListObjects lists up to maxKeys objects under prefix, sorted
// lexicographically by key.
func (c *Client) ListObjects(ctx context.Context, bucket, prefix string, maxKeys int32) ([]Object, error) {
	input := &s3.ListObjectsV2Input{
		Bucket:  aws.String(bucket),
		MaxKeys: aws.Int32(maxKeys),
	}
	if prefix != "" {
		input.Prefix = aws.String(prefix)
	}

	start := time.Now()
	out, err := c.api.ListObjectsV2(ctx, input)
	c.logged("ListObjectsV2", start, err)
	if err != nil {
		return nil, fmt.Errorf("list objects in %q: %w", bucket, err)
	}

	objects := make([]Object, 0, len(out.Contents))
	for _, obj := range out.Contents {
		o := Object{StorageClass: "STANDARD"}
		if obj.Key != nil {
			o.Key = *obj.Key
		}
		if obj.Size != nil {
			o.Size = *obj.Size
		}
		if obj.LastModified != nil {
			o.Modified = *obj.LastModified
		}
		if obj.StorageClass != "" {
			o.StorageClass = string(obj.StorageClass)
		}
		objects = append(objects, o)
	}
	sort.Slice(objects, func(i, j int) bool { return objects[i].Key < objects[j].Key })
	return objects, nil
}

// ListPrefixes lists the common prefixes (folders) under prefix using the
// given delimiter, sorted.
func (c *Client) ListPrefixes(ctx context.Context, bucket, prefix, delimiter string) ([]string, error) {
	input := &s3.ListObjectsV2Input{
		Bucket:    aws.String(bucket),
		Delimiter: aws.String(delimiter),
		MaxKeys:   aws.Int32(100),
	}
	if prefix != "" {
		input.Prefix = aws.String(prefix)
	}

	start := time.Now()
	out, err := c.api.ListObjectsV2(ctx, input)
	c.logged("ListObjectsV2", start, err)
	if err != nil {
		return nil, fmt.Errorf("list prefixes in %q: %w", bucket, err)
	}

	prefixes := make([]string, 0, len(out.CommonPrefixes))
	for _, cp := range out.CommonPrefixes {
		if cp.Prefix != nil {
			prefixes = append(prefixes, *cp.Prefix)
		}
	}
	sort.Strings(prefixes)
	return prefixes, nil
}

// PresignUpload generates the presigned POST descriptor for the given
// request: the builder supplies the key template, policy conditions, and
// expiry; the SDK signs them.
func (c *Client) PresignUpload(ctx context.Context, req presign.Request) (*PresignedPost, error) {
	start := time.Now()
	out, err := c.presigner.PresignPostObject(ctx, &s3.PutObjectInput{
		Bucket: aws.String(req.Bucket),
		Key:    aws.String(req.KeyTemplate()),
	}, func(opts *s3.PresignPostOptions) {
		opts.Expires = req.Expiry()
		opts.Conditions = req.Conditions()
	})
	c.logged("PresignPostObject", start, err)
	if err != nil {
		return nil, fmt.Errorf("presign upload form for %q: %w", req.Bucket, err)
	}

	return &PresignedPost{URL: out.URL, Fields: out.Values}, nil
}

// PresignDownload generates a presigned GET URL for the object, valid for
// the given duration.
func (c *Client) PresignDownload(ctx context.Context, bucket, key string, expiry time.Duration) (string, error) {
	start := time.Now()
	req, err := c.presigner.PresignGetObject(ctx, &s3.GetObjectInput{
		Bucket: aws.String(bucket),
		Key:    aws.String(key),
	}, s3.WithPresignExpires(expiry))
	c.logged("PresignGetObject", start, err)
	if err != nil {
		return "", fmt.Errorf("presign download URL for s3://%s/%s: %w", bucket, key, err)
	}

	return req.URL, nil
}
