package simplepresign

// Protocol constants for SigV4 query-string signing.
const (
	// SigningAlgorithm identifies the signature scheme in X-Amz-Algorithm.
	SigningAlgorithm = "AWS4-HMAC-SHA256"

	// ServiceName is the service component of the credential scope.
	ServiceName = "s3"

	// RequestSuffix terminates both the credential scope and the key
	// derivation chain.
	RequestSuffix = "aws4_request"

	// UnsignedPayload is the payload hash placeholder used for
	// query-string signing, where the body is never part of the signature.
	UnsignedPayload = "UNSIGNED-PAYLOAD"

	// TimeFormat is the full UTC timestamp layout carried in X-Amz-Date.
	TimeFormat = "20060102T150405Z"

	// ShortTimeFormat is the date-only layout used in the credential scope.
	ShortTimeFormat = "20060102"
)

// Names of the authentication query parameters, in the order they appear in
// the signed query string.
const (
	AmzAlgorithmKey     = "X-Amz-Algorithm"
	AmzCredentialKey    = "X-Amz-Credential"
	AmzDateKey          = "X-Amz-Date"
	AmzExpiresKey       = "X-Amz-Expires"
	AmzSignedHeadersKey = "X-Amz-SignedHeaders"
	AmzSignatureKey     = "X-Amz-Signature"
)

// Defaults applied when the caller leaves a knob unset.
const (
	// DefaultRegion is the region a Signer uses unless WithRegion is given.
	DefaultRegion = "us-west-1"

	// DefaultValidityMinutes is the validity the convenience helpers apply
	// when a request leaves ValidityMinutes at zero.
	DefaultValidityMinutes = 5
)
