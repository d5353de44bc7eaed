package simplepresign

import (
	"errors"
	"fmt"
)

// Input validation errors, all detected synchronously before any
// cryptographic work.
var (
	// ErrNoCredentials is returned when the signer has no access key pair.
	ErrNoCredentials = errors.New("simplepresign: missing credentials")

	// ErrNoEndpoint is returned when the signer has no endpoint host.
	ErrNoEndpoint = errors.New("simplepresign: missing endpoint host")

	// ErrNoRegion is returned when the signer has an empty region.
	ErrNoRegion = errors.New("simplepresign: missing region")

	// ErrEmptyBucket is returned when the bucket is empty after trimming.
	ErrEmptyBucket = errors.New("simplepresign: bucket name is empty")

	// ErrEmptyObjectKey is returned when the object key is empty after trimming.
	ErrEmptyObjectKey = errors.New("simplepresign: object key is empty")

	// ErrInvalidValidity is returned when the validity is zero or negative.
	ErrInvalidValidity = errors.New("simplepresign: validity must be a positive number of minutes")
)

// SignError represents an error related to a signing operation that got past
// input validation, carrying the operation context. It unwraps to the
// underlying cause so errors.Is keeps matching.
type SignError struct {
	Bucket    string
	ObjectKey string
	Op        string
	Err       error
}

func (e *SignError) Error() string {
	return fmt.Sprintf("sign operation %s failed for %s/%s: %v", e.Op, e.Bucket, e.ObjectKey, e.Err)
}

func (e *SignError) Unwrap() error {
	return e.Err
}

// IsInputError reports whether err is one of the invalid-input errors
// produced by this package.
func IsInputError(err error) bool {
	return errors.Is(err, ErrNoCredentials) ||
		errors.Is(err, ErrNoEndpoint) ||
		errors.Is(err, ErrNoRegion) ||
		errors.Is(err, ErrEmptyBucket) ||
		errors.Is(err, ErrEmptyObjectKey) ||
		errors.Is(err, ErrInvalidValidity)
}
