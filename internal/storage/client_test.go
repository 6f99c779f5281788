package storage

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	v4 "github.com/aws/aws-sdk-go-v2/aws/signer/v4"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	s3types "github.com/aws/aws-sdk-go-v2/service/s3/types"
	"github.com/aws/smithy-go"

	"github.com/s3drop/s3drop/internal/presign"
)

// mockBucketAPI implements awsx.BucketAPI with canned responses.
type mockBucketAPI struct {
	listBucketsOut   *s3.ListBucketsOutput
	listBucketsErr   error
	headBucketErr    error
	locationOut      *s3.GetBucketLocationOutput
	locationErr      error
	getCorsErr       error
	putCorsErr       error
	putCorsInput     *s3.PutBucketCorsInput
	listObjectsOut   *s3.ListObjectsV2Output
	listObjectsErr   error
	listObjectsInput *s3.ListObjectsV2Input
}

func (m *mockBucketAPI) ListBuckets(ctx context.Context, params *s3.ListBucketsInput, optFns ...func(*s3.Options)) (*s3.ListBucketsOutput, error) {
	return m.listBucketsOut, m.listBucketsErr
}

func (m *mockBucketAPI) HeadBucket(ctx context.Context, params *s3.HeadBucketInput, optFns ...func(*s3.Options)) (*s3.HeadBucketOutput, error) {
	if m.headBucketErr != nil {
		return nil, m.headBucketErr
	}
	return &s3.HeadBucketOutput{}, nil
}

func (m *mockBucketAPI) GetBucketLocation(ctx context.Context, params *s3.GetBucketLocationInput, optFns ...func(*s3.Options)) (*s3.GetBucketLocationOutput, error) {
	return m.locationOut, m.locationErr
}

func (m *mockBucketAPI) GetBucketCors(ctx context.Context, params *s3.GetBucketCorsInput, optFns ...func(*s3.Options)) (*s3.GetBucketCorsOutput, error) {
	if m.getCorsErr != nil {
		return nil, m.getCorsErr
	}
	return &s3.GetBucketCorsOutput{}, nil
}

func (m *mockBucketAPI) PutBucketCors(ctx context.Context, params *s3.PutBucketCorsInput, optFns ...func(*s3.Options)) (*s3.PutBucketCorsOutput, error) {
	m.putCorsInput = params
	if m.putCorsErr != nil {
		return nil, m.putCorsErr
	}
	return &s3.PutBucketCorsOutput{}, nil
}

func (m *mockBucketAPI) ListObjectsV2(ctx context.Context, params *s3.ListObjectsV2Input, optFns ...func(*s3.Options)) (*s3.ListObjectsV2Output, error) {
	m.listObjectsInput = params
	return m.listObjectsOut, m.listObjectsErr
}

// mockPresignAPI implements awsx.PresignAPI.
type mockPresignAPI struct {
	postOut   *s3.PresignedPostRequest
	postErr   error
	postInput *s3.PutObjectInput
	postOpts  s3.PresignPostOptions
	getOut    *v4.PresignedHTTPRequest
	getErr    error
}

func (m *mockPresignAPI) PresignPostObject(ctx context.Context, params *s3.PutObjectInput, optFns ...func(*s3.PresignPostOptions)) (*s3.PresignedPostRequest, error) {
	m.postInput = params
	for _, fn := range optFns {
		fn(&m.postOpts)
	}
	return m.postOut, m.postErr
}

func (m *mockPresignAPI) PresignGetObject(ctx context.Context, params *s3.GetObjectInput, optFns ...func(*s3.PresignOptions)) (*v4.PresignedHTTPRequest, error) {
	return m.getOut, m.getErr
}

func TestListBucketsSorted(t *testing.T) {
	api := &mockBucketAPI{
		listBucketsOut: &s3.ListBucketsOutput{
			Buckets: []s3types.Bucket{
				{Name: aws.String("zeta")},
				{Name: aws.String("alpha")},
				{Name: aws.String("mid")},
			},
		},
	}
	c := New(api, nil, nil)

	got, err := c.ListBuckets(context.Background())
	if err != nil {
		t.Fatalf("ListBuckets() unexpected error: %v", err)
	}
	want := []string{"alpha", "mid", "zeta"}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("ListBuckets()[%d] = %q, want %q", i, got[i], want[i])
		}
	}
}

func TestListBucketsPropagatesError(t *testing.T) {
	api := &mockBucketAPI{listBucketsErr: errors.New("boom")}
	c := New(api, nil, nil)

	if _, err := c.ListBuckets(context.Background()); err == nil {
		t.Fatal("ListBuckets() error = nil, want error")
	}
}

func TestBucketExists(t *testing.T) {
	tests := []struct {
		name    string
		err     error
		want    bool
		wantErr bool
	}{
		{"accessible", nil, true, false},
		{"typed not found", &s3types.NotFound{}, false, false},
		{"forbidden code", &smithy.GenericAPIError{Code: "Forbidden"}, false, false},
		{"access denied code", &smithy.GenericAPIError{Code: "AccessDenied"}, false, false},
		{"other failure propagates", errors.New("dial tcp: timeout"), false, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := New(&mockBucketAPI{headBucketErr: tt.err}, nil, nil)
			got, err := c.BucketExists(context.Background(), "b")
			if got != tt.want {
				t.Errorf("BucketExists() = %v, want %v", got, tt.want)
			}
			if (err != nil) != tt.wantErr {
				t.Errorf("BucketExists() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestBucketRegionEmptyConstraintIsUSEast1(t *testing.T) {
	api := &mockBucketAPI{locationOut: &s3.GetBucketLocationOutput{}}
	c := New(api, nil, nil)

	got, err := c.BucketRegion(context.Background(), "b")
	if err != nil {
		t.Fatalf("BucketRegion() unexpected error: %v", err)
	}
	if got != "us-east-1" {
		t.Errorf("BucketRegion() = %q, want us-east-1", got)
	}
}

func TestBucketRegionConstraint(t *testing.T) {
	api := &mockBucketAPI{locationOut: &s3.GetBucketLocationOutput{
		LocationConstraint: s3types.BucketLocationConstraint("eu-west-1"),
	}}
	c := New(api, nil, nil)

	got, err := c.BucketRegion(context.Background(), "b")
	if err != nil {
		t.Fatalf("BucketRegion() unexpected error: %v", err)
	}
	if got != "eu-west-1" {
		t.Errorf("BucketRegion() = %q, want eu-west-1", got)
	}
}

func TestHasCORS(t *testing.T) {
	tests := []struct {
		name    string
		err     error
		want    bool
		wantErr bool
	}{
		{"configured", nil, true, false},
		{"no cors config", &smithy.GenericAPIError{Code: "NoSuchCORSConfiguration"}, false, false},
		{"access denied propagates", &smithy.GenericAPIError{Code: "AccessDenied"}, false, true},
		{"network failure propagates", errors.New("dial tcp: refused"), false, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := New(&mockBucketAPI{getCorsErr: tt.err}, nil, nil)
			got, err := c.HasCORS(context.Background(), "b")
			if got != tt.want {
				t.Errorf("HasCORS() = %v, want %v", got, tt.want)
			}
			if (err != nil) != tt.wantErr {
				t.Errorf("HasCORS() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestSetupCORSInstallsPermissiveRule(t *testing.T) {
	api := &mockBucketAPI{}
	c := New(api, nil, nil)

	if err := c.SetupCORS(context.Background(), "b"); err != nil {
		t.Fatalf("SetupCORS() unexpected error: %v", err)
	}

	rules := api.putCorsInput.CORSConfiguration.CORSRules
	if len(rules) != 1 {
		t.Fatalf("got %d CORS rules, want 1", len(rules))
	}
	rule := rules[0]
	if len(rule.AllowedOrigins) != 1 || rule.AllowedOrigins[0] != "*" {
		t.Errorf("AllowedOrigins = %v, want [*]", rule.AllowedOrigins)
	}
	if len(rule.AllowedMethods) != 3 {
		t.Errorf("AllowedMethods = %v, want GET/POST/PUT", rule.AllowedMethods)
	}
	if len(rule.AllowedHeaders) != 1 || rule.AllowedHeaders[0] != "*" {
		t.Errorf("AllowedHeaders = %v, want [*]", rule.AllowedHeaders)
	}
	if rule.MaxAgeSeconds == nil || *rule.MaxAgeSeconds != 3600 {
		t.Errorf("MaxAgeSeconds = %v, want 3600", rule.MaxAgeSeconds)
	}
}

func TestListObjectsSortedByKey(t *testing.T) {
	mod := time.Date(2024, 5, 1, 0, 0, 0, 0, time.UTC)
	api := &mockBucketAPI{
		listObjectsOut: &s3.ListObjectsV2Output{
			Contents: []s3types.Object{
				{Key: aws.String("b.txt"), Size: aws.Int64(2), LastModified: &mod},
				{Key: aws.String("a.txt"), Size: aws.Int64(1), LastModified: &mod, StorageClass: s3types.ObjectStorageClassGlacier},
			},
		},
	}
	c := New(api, nil, nil)

	got, err := c.ListObjects(context.Background(), "b", "docs/", 50)
	if err != nil {
		t.Fatalf("ListObjects() unexpected error: %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("got %d objects, want 2", len(got))
	}
	if got[0].Key != "a.txt" || got[1].Key != "b.txt" {
		t.Errorf("objects not sorted: %v", got)
	}
	if got[0].StorageClass != "GLACIER" {
		t.Errorf("StorageClass = %q, want GLACIER", got[0].StorageClass)
	}
	if got[1].StorageClass != "STANDARD" {
		t.Errorf("missing StorageClass did not default to STANDARD: %q", got[1].StorageClass)
	}

	if api.listObjectsInput.Prefix == nil || *api.listObjectsInput.Prefix != "docs/" {
		t.Errorf("Prefix = %v, want docs/", api.listObjectsInput.Prefix)
	}
	if api.listObjectsInput.MaxKeys == nil || *api.listObjectsInput.MaxKeys != 50 {
		t.Errorf("MaxKeys = %v, want 50", api.listObjectsInput.MaxKeys)
	}
}

func TestListPrefixesSorted(t *testing.T) {
	api := &mockBucketAPI{
		listObjectsOut: &s3.ListObjectsV2Output{
			CommonPrefixes: []s3types.CommonPrefix{
				{Prefix: aws.String("zz/")},
				{Prefix: aws.String("aa/")},
			},
		},
	}
	c := New(api, nil, nil)

	got, err := c.ListPrefixes(context.Background(), "b", "", "/")
	if err != nil {
		t.Fatalf("ListPrefixes() unexpected error: %v", err)
	}
	if len(got) != 2 || got[0] != "aa/" || got[1] != "zz/" {
		t.Errorf("ListPrefixes() = %v, want [aa/ zz/]", got)
	}
	if api.listObjectsInput.Delimiter == nil || *api.listObjectsInput.Delimiter != "/" {
		t.Errorf("Delimiter = %v, want /", api.listObjectsInput.Delimiter)
	}
}

func TestPresignUploadForwardsBuilderOutput(t *testing.T) {
	p := &mockPresignAPI{
		postOut: &s3.PresignedPostRequest{
			URL:    "https://my-bucket.s3.amazonaws.com",
			Values: map[string]string{"key": "uploads/${filename}", "policy": "abc"},
		},
	}
	c := New(nil, p, nil)

	req := presign.Request{
		Bucket:          "my-bucket",
		Prefix:          "uploads",
		MaxSizeMB:       100,
		AllowedTypes:    []string{"image/"},
		ExpirationHours: 2,
	}
	got, err := c.PresignUpload(context.Background(), req)
	if err != nil {
		t.Fatalf("PresignUpload() unexpected error: %v", err)
	}

	if got.URL != "https://my-bucket.s3.amazonaws.com" {
		t.Errorf("URL = %q", got.URL)
	}
	if got.Fields["key"] != "uploads/${filename}" {
		t.Errorf("Fields[key] = %q", got.Fields["key"])
	}

	if *p.postInput.Key != "uploads/${filename}" {
		t.Errorf("presigned key = %q, want uploads/${filename}", *p.postInput.Key)
	}
	if p.postOpts.Expires != 2*time.Hour {
		t.Errorf("Expires = %v, want 2h", p.postOpts.Expires)
	}
	if len(p.postOpts.Conditions) != 2 {
		t.Errorf("got %d conditions, want 2 (size + one type)", len(p.postOpts.Conditions))
	}
}

func TestPresignDownload(t *testing.T) {
	p := &mockPresignAPI{
		getOut: &v4.PresignedHTTPRequest{URL: "https://b.s3.amazonaws.com/k?X-Amz-Signature=sig"},
	}
	c := New(nil, p, nil)

	got, err := c.PresignDownload(context.Background(), "b", "k", time.Hour)
	if err != nil {
		t.Fatalf("PresignDownload() unexpected error: %v", err)
	}
	if !strings.Contains(got, "X-Amz-Signature") {
		t.Errorf("URL = %q, want signed URL", got)
	}
}

func TestPresignDownloadError(t *testing.T) {
	p := &mockPresignAPI{getErr: errors.New("boom")}
	c := New(nil, p, nil)

	if _, err := c.PresignDownload(context.Background(), "b", "k", time.Hour); err == nil {
		t.Fatal("PresignDownload() error = nil, want error")
	}
}
