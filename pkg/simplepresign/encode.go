package simplepresign

import (
	"strings"

	"github.com/aws/smithy-go/encoding/httpbinding"
)

// encodeObjectKey prepares a raw object key for URL embedding. A literal '+'
// is read as an already-decoded space (keys handed over from form-encoded
// contexts carry them), then the key is percent-encoded with the strict
// RFC 3986 rules the canonical request requires. '/' stays literal so the
// path structure of the key remains visible.
func encodeObjectKey(key string) string {
	return httpbinding.EscapePath(strings.ReplaceAll(key, "+", " "), false)
}

// encodeQueryComponent percent-encodes a single query-string component.
// Unlike the object key, '/' is not a separator here and becomes %2F; this
// is what folds the credential scope into one X-Amz-Credential value.
func encodeQueryComponent(s string) string {
	return httpbinding.EscapePath(s, true)
}
