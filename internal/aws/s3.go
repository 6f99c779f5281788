// Package aws provides thin wrappers around AWS SDK clients used by
// s3drop. This file defines narrow interfaces for the S3 operations the
// storage facade needs, enabling mock injection in tests.
package aws

import (
	"context"

	v4 "github.com/aws/aws-sdk-go-v2/aws/signer/v4"
	"github.com/aws/aws-sdk-go-v2/service/s3"
)

// ListBucketsAPI defines the subset of the S3 API used for bucket discovery.
type ListBucketsAPI interface {
	ListBuckets(ctx context.Context, params *s3.ListBucketsInput, optFns ...func(*s3.Options)) (*s3.ListBucketsOutput, error)
}

// HeadBucketAPI defines the subset used to probe bucket accessibility.
type HeadBucketAPI interface {
	HeadBucket(ctx context.Context, params *s3.HeadBucketInput, optFns ...func(*s3.Options)) (*s3.HeadBucketOutput, error)
}

// GetBucketLocationAPI defines the subset used to resolve a bucket's region.
type GetBucketLocationAPI interface {
	GetBucketLocation(ctx context.Context, params *s3.GetBucketLocationInput, optFns ...func(*s3.Options)) (*s3.GetBucketLocationOutput, error)
}

// GetBucketCorsAPI defines the subset used to read a bucket's CORS policy.
type GetBucketCorsAPI interface {
	GetBucketCors(ctx context.Context, params *s3.GetBucketCorsInput, optFns ...func(*s3.Options)) (*s3.GetBucketCorsOutput, error)
}

// PutBucketCorsAPI defines the subset used to install a CORS policy.
type PutBucketCorsAPI interface {
	PutBucketCors(ctx context.Context, params *s3.PutBucketCorsInput, optFns ...func(*s3.Options)) (*s3.PutBucketCorsOutput, error)
}

// ListObjectsV2API defines the subset used to browse bucket contents.
type ListObjectsV2API interface {
	ListObjectsV2(ctx context.Context, params *s3.ListObjectsV2Input, optFns ...func(*s3.Options)) (*s3.ListObjectsV2Output, error)
}

// PresignGetObjectAPI defines the subset used to presign S3 GET requests.
// The return type is *v4.PresignedHTTPRequest (from aws/signer/v4), which
// is what s3.PresignClient.PresignGetObject returns.
type PresignGetObjectAPI interface {
	PresignGetObject(ctx context.Context, params *s3.GetObjectInput, optFns ...func(*s3.PresignOptions)) (*v4.PresignedHTTPRequest, error)
}

// PresignPostObjectAPI defines the subset used to presign browser POST
// uploads. PresignedPostRequest carries the form action URL plus the
// policy fields the multipart form must include.
type PresignPostObjectAPI interface {
	PresignPostObject(ctx context.Context, params *s3.PutObjectInput, optFns ...func(*s3.PresignPostOptions)) (*s3.PresignedPostRequest, error)
}

// BucketAPI groups the bucket management and listing operations used by
// the storage facade into a single interface for mock injection in tests.
type BucketAPI interface {
	ListBucketsAPI
	HeadBucketAPI
	GetBucketLocationAPI
	GetBucketCorsAPI
	PutBucketCorsAPI
	ListObjectsV2API
}

// PresignAPI groups the presigning operations used by the storage facade.
type PresignAPI interface {
	PresignGetObjectAPI
	PresignPostObjectAPI
}

// Compile-time checks: the SDK clients satisfy all narrow interfaces.
var (
	_ ListBucketsAPI       = (*s3.Client)(nil)
	_ HeadBucketAPI        = (*s3.Client)(nil)
	_ GetBucketLocationAPI = (*s3.Client)(nil)
	_ GetBucketCorsAPI     = (*s3.Client)(nil)
	_ PutBucketCorsAPI     = (*s3.Client)(nil)
	_ ListObjectsV2API     = (*s3.Client)(nil)
	_ BucketAPI            = (*s3.Client)(nil)
	_ PresignGetObjectAPI  = (*s3.PresignClient)(nil)
	_ PresignPostObjectAPI = (*s3.PresignClient)(nil)
	_ PresignAPI           = (*s3.PresignClient)(nil)
)
