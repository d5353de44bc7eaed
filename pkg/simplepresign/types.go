package simplepresign

import (
	"fmt"
	"log/slog"
	"time"
)

// Credentials is a long-term access key pair for an S3-compatible service.
//
// The secret access key is used only as HMAC key material. It never appears
// in a signed URL, and both String and LogValue redact it so accidental
// logging cannot leak it. The access key ID does appear in plaintext inside
// the X-Amz-Credential parameter of every signed URL.
type Credentials struct {
	AccessKeyID     string `json:"access_key_id"`
	SecretAccessKey string `json:"-"`
}

// String implements fmt.Stringer with the secret redacted.
func (c Credentials) String() string {
	return fmt.Sprintf("Credentials{AccessKeyID: %s}", c.AccessKeyID)
}

// LogValue implements slog.LogValuer so structured logs carry only the
// access key ID.
func (c Credentials) LogValue() slog.Value {
	return slog.GroupValue(slog.String("access_key_id", c.AccessKeyID))
}

// isZero reports whether either half of the pair is missing.
func (c Credentials) isZero() bool {
	return c.AccessKeyID == "" || c.SecretAccessKey == ""
}

// SignRequest describes one presigning operation. A fresh value is passed to
// every call; the Signer never stores it.
type SignRequest struct {
	// Bucket is the bucket holding the object. Leading and trailing
	// whitespace is trimmed; the result must be non-empty.
	Bucket string

	// ObjectKey is the key of the object to grant access to. Slashes are
	// preserved as path separators; a literal '+' is read as a space.
	// Trimmed like Bucket.
	ObjectKey string

	// ValidityMinutes is how long the URL stays valid, in minutes. It must
	// be positive; it is converted to seconds for X-Amz-Expires.
	ValidityMinutes int

	// ExtraQueryParam, when non-empty, is appended to the signed query
	// string as a bare "&name=" parameter with an empty value. It overrides
	// any signer-level default set with WithExtraQueryParam.
	ExtraQueryParam string

	// Timestamp is the instant the signature is bound to. The zero value
	// means "now". Every timestamp-dependent computation in one call uses
	// this single instant; supplying a fixed value makes the output fully
	// deterministic.
	Timestamp time.Time
}

// PresignedURL is the result of a presigning operation.
type PresignedURL struct {
	// URL is the complete signed URL.
	URL string `json:"url"`

	// Method is the HTTP method the URL is valid for. Always GET: this
	// package signs read access only.
	Method string `json:"method"`

	// SignedAt is the timestamp the signature was computed against.
	SignedAt time.Time `json:"signed_at"`

	// ExpiresAt is the instant the URL stops being accepted.
	ExpiresAt time.Time `json:"expires_at"`
}
