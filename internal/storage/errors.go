package storage

import (
	"errors"
	"fmt"
	"strings"

	"github.com/aws/smithy-go"
)

// credentialErrorKeywords are substrings found in AWS SDK credential
// errors. When any of these appear we replace the raw SDK chain with a
// single actionable message.
var credentialErrorKeywords = []string{
	"get credentials",
	"NoCredentialProviders",
	"no EC2 IMDS role found",
	"failed to refresh cached credentials",
	"credential",
}

// IsCredentialError reports whether err looks like an AWS credential
// failure.
func IsCredentialError(err error) bool {
	if err == nil {
		return false
	}
	msg := err.Error()
	for _, kw := range credentialErrorKeywords {
		if strings.Contains(msg, kw) {
			return true
		}
	}
	return false
}

// Describe renders a provider error for display: the API error code and
// message when the SDK exposes them, the plain error text otherwise.
// Credential failures get the one message that tells the user what to do.
func Describe(err error) string {
	if IsCredentialError(err) {
		return `AWS credentials not found — run "aws configure" or set AWS_PROFILE`
	}

	var apiErr smithy.APIError
	if errors.As(err, &apiErr) {
		return fmt.Sprintf("AWS error (%s): %s", apiErr.ErrorCode(), apiErr.ErrorMessage())
	}
	return err.Error()
}
