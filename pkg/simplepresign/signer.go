package simplepresign

import (
	"encoding/hex"
	"strings"
	"time"
)

// Signer mints SigV4 query-string presigned GET URLs for S3-compatible
// object storage.
//
// All configuration is fixed at construction. Presign takes its inputs from
// an immutable SignRequest and writes nothing back to the Signer besides the
// derived-key cache, so a single Signer is safe for concurrent use.
type Signer struct {
	creds           Credentials
	endpointHost    string
	region          string
	usePathStyle    bool
	extraQueryParam string
	hooks           *Hooks
	now             func() time.Time
	keys            *derivedKeyCache
}

// New creates a Signer from the given options. Credentials and an endpoint
// host are required; the region defaults to DefaultRegion and addressing
// defaults to path-style.
func New(opts ...Option) (*Signer, error) {
	s := &Signer{
		region:       DefaultRegion,
		usePathStyle: true,
		now:          time.Now,
		keys:         newDerivedKeyCache(),
	}
	for _, opt := range opts {
		opt(s)
	}

	if s.creds.isZero() {
		return nil, ErrNoCredentials
	}
	if s.endpointHost == "" {
		return nil, ErrNoEndpoint
	}
	if s.region == "" {
		return nil, ErrNoRegion
	}
	return s, nil
}

// Presign validates req and computes a presigned GET URL for it.
//
// The request's timestamp (or the current time) is captured once up front
// and feeds the scope date, X-Amz-Date, the string to sign, and the key
// derivation. Validation failures return a sentinel error before any
// cryptographic work happens.
func (s *Signer) Presign(req SignRequest) (*PresignedURL, error) {
	t := newSigningTime(s.timestampFor(req))

	bucket := strings.TrimSpace(req.Bucket)
	objectKey := strings.TrimSpace(req.ObjectKey)
	if err := s.validate(bucket, objectKey, req.ValidityMinutes); err != nil {
		s.hooks.executeOnError("presign", err)
		return nil, err
	}
	if err := s.hooks.executeBeforeSign(req); err != nil {
		wrapped := &SignError{Bucket: bucket, ObjectKey: objectKey, Op: "before sign", Err: err}
		s.hooks.executeOnError("presign", wrapped)
		return nil, wrapped
	}

	host, path := s.address(bucket, encodeObjectKey(objectKey))
	scope := credentialScope(t, s.region)
	expiresSeconds := int64(req.ValidityMinutes) * 60
	query := buildQueryString(s.creds.AccessKeyID, scope, t, expiresSeconds, s.extraParamFor(req))

	canonicalRequest := buildCanonicalRequest(path, query, host)
	stringToSign := buildStringToSign(t, scope, canonicalRequest)
	signingKey := s.keys.get(s.creds, s.region, ServiceName, t.shortDate)
	signature := hex.EncodeToString(hmacSHA256(signingKey, stringToSign))

	result := &PresignedURL{
		URL:       "https://" + host + path + "?" + query + "&" + AmzSignatureKey + "=" + signature,
		Method:    "GET",
		SignedAt:  t.Time,
		ExpiresAt: t.Add(time.Duration(expiresSeconds) * time.Second),
	}
	if err := s.hooks.executeAfterSign(req, result); err != nil {
		wrapped := &SignError{Bucket: bucket, ObjectKey: objectKey, Op: "after sign", Err: err}
		s.hooks.executeOnError("presign", wrapped)
		return nil, wrapped
	}
	return result, nil
}

// SignURL is shorthand for Presign when only the URL string is needed.
func (s *Signer) SignURL(req SignRequest) (string, error) {
	result, err := s.Presign(req)
	if err != nil {
		return "", err
	}
	return result.URL, nil
}

// AccessKeyID returns the public half of the configured credentials, for
// audit records. The secret key has no accessor.
func (s *Signer) AccessKeyID() string {
	return s.creds.AccessKeyID
}

// validate checks configuration and request inputs in one place. The
// configuration checks repeat New's so that a Signer misassembled some other
// way still fails cleanly instead of signing with empty key material.
func (s *Signer) validate(bucket, objectKey string, validityMinutes int) error {
	if s.creds.isZero() {
		return ErrNoCredentials
	}
	if s.endpointHost == "" {
		return ErrNoEndpoint
	}
	if s.region == "" {
		return ErrNoRegion
	}
	if bucket == "" {
		return ErrEmptyBucket
	}
	if objectKey == "" {
		return ErrEmptyObjectKey
	}
	if validityMinutes <= 0 {
		return ErrInvalidValidity
	}
	return nil
}

// address places the bucket according to the configured style: inside the
// path with the plain endpoint as host, or as a host subdomain with the key
// alone in the path. The host value is also what gets signed as the lone
// canonical header.
func (s *Signer) address(bucket, encodedKey string) (host, path string) {
	if s.usePathStyle {
		return s.endpointHost, "/" + bucket + "/" + encodedKey
	}
	return bucket + "." + s.endpointHost, "/" + encodedKey
}

func (s *Signer) timestampFor(req SignRequest) time.Time {
	if req.Timestamp.IsZero() {
		return s.now()
	}
	return req.Timestamp
}

func (s *Signer) extraParamFor(req SignRequest) string {
	if req.ExtraQueryParam != "" {
		return req.ExtraQueryParam
	}
	return s.extraQueryParam
}
