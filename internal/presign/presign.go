// Package presign builds the parameters for S3 presigned requests from
// user-facing units. It owns the POST policy condition list and the
// object key template; the storage facade forwards its output to the SDK
// unchanged, so the same inputs always produce the same policy.
package presign

import "time"

// FilenamePlaceholder is substituted with the real file name by the
// browser when the upload form is submitted. It must appear literally in
// the policy key so S3 accepts the rewritten key.
const FilenamePlaceholder = "${filename}"

// Request carries the user-supplied parameters for one presigned POST.
type Request struct {
	Bucket          string
	Prefix          string
	MaxSizeMB       int64
	AllowedTypes    []string
	ExpirationHours float64
}

// KeyTemplate returns the object key pattern for the upload form:
// "{prefix}/${filename}", or bare "${filename}" when no prefix is set.
func (r Request) KeyTemplate() string {
	if r.Prefix == "" {
		return FilenamePlaceholder
	}
	return r.Prefix + "/" + FilenamePlaceholder
}

// MaxSizeBytes converts the megabyte limit to bytes.
func (r Request) MaxSizeBytes() int64 {
	return r.MaxSizeMB * 1024 * 1024
}

// Expiry converts the fractional hour count to a duration.
func (r Request) Expiry() time.Duration {
	return time.Duration(r.ExpirationHours * float64(time.Hour))
}

// Conditions assembles the POST policy condition list: the
// content-length-range condition first, then one starts-with condition on
// the Content-Type field per allowed type, in input order. The elements
// use the SDK's untyped condition representation.
func (r Request) Conditions() []interface{} {
	conditions := []interface{}{
		[]interface{}{"content-length-range", int64(0), r.MaxSizeBytes()},
	}
	for _, t := range r.AllowedTypes {
		conditions = append(conditions, []interface{}{"starts-with", "$Content-Type", t})
	}
	return conditions
}
