package config

import (
	"errors"
	"fmt"
	"regexp"
	"strings"
	"unicode"
	"unicode/utf8"
)

// MaxObjectKeyBytes is the longest object key S3-compatible services
// accept, measured in UTF-8 bytes.
const MaxObjectKeyBytes = 1024

var (
	bucketNamePattern = regexp.MustCompile(`^[a-z0-9][a-z0-9.-]{1,61}[a-z0-9]$`)
	ipv4Pattern       = regexp.MustCompile(`^(\d{1,3}\.){3}\d{1,3}$`)
)

// ValidateBucketName checks name against the naming rules shared by
// S3-compatible services: 3 to 63 characters of lowercase letters, digits,
// hyphens, and dots, starting and ending with a letter or digit. Names that
// pass are also safe to place in the host for virtual-hosted addressing.
func ValidateBucketName(name string) error {
	if len(name) < 3 || len(name) > 63 {
		return fmt.Errorf("bucket name must be 3 to 63 characters, got %d", len(name))
	}
	if !bucketNamePattern.MatchString(name) {
		return fmt.Errorf("bucket name %q may only contain lowercase letters, digits, hyphens, and dots, and must start and end with a letter or digit", name)
	}
	if strings.Contains(name, "..") {
		return fmt.Errorf("bucket name %q must not contain consecutive dots", name)
	}
	if ipv4Pattern.MatchString(name) {
		return fmt.Errorf("bucket name %q must not look like an IP address", name)
	}
	return nil
}

// ValidateObjectKey checks key against the limits S3-compatible services
// place on object keys: valid UTF-8 of at most MaxObjectKeyBytes bytes with
// no control characters. Spaces and other characters needing percent
// encoding are fine, the signer encodes them.
func ValidateObjectKey(key string) error {
	if key == "" {
		return errors.New("object key cannot be empty")
	}
	if len(key) > MaxObjectKeyBytes {
		return fmt.Errorf("object key must not exceed %d bytes, got %d", MaxObjectKeyBytes, len(key))
	}
	if !utf8.ValidString(key) {
		return errors.New("object key must be valid UTF-8")
	}
	for _, r := range key {
		if unicode.IsControl(r) {
			return fmt.Errorf("object key contains control character %U", r)
		}
	}
	return nil
}
