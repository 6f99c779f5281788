// Package identity resolves the current AWS caller via STS. The resolved
// ARN is recorded in the audit log, and resolution doubles as the
// credential check before any presign operation.
package identity

import (
	"context"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/service/sts"
)

// Caller holds the resolved AWS caller identity.
type Caller struct {
	Account string
	ARN     string
}

// STSClient defines the subset of the STS API used for identity
// resolution. This interface enables mock injection for testing.
type STSClient interface {
	GetCallerIdentity(ctx context.Context, params *sts.GetCallerIdentityInput, optFns ...func(*sts.Options)) (*sts.GetCallerIdentityOutput, error)
}

// Compile-time check: *sts.Client satisfies STSClient.
var _ STSClient = (*sts.Client)(nil)

// Resolver resolves the current AWS caller identity.
type Resolver struct {
	client STSClient
}

// NewResolver creates a Resolver with the given STS client.
func NewResolver(client STSClient) *Resolver {
	return &Resolver{client: client}
}

// Resolve calls STS GetCallerIdentity and returns the caller's account
// and ARN.
func (r *Resolver) Resolve(ctx context.Context) (*Caller, error) {
	out, err := r.client.GetCallerIdentity(ctx, &sts.GetCallerIdentityInput{})
	if err != nil {
		return nil, fmt.Errorf("sts get-caller-identity: %w", err)
	}

	if out.Arn == nil {
		return nil, fmt.Errorf("sts get-caller-identity returned nil ARN")
	}

	caller := &Caller{ARN: *out.Arn}
	if out.Account != nil {
		caller.Account = *out.Account
	}
	return caller, nil
}
