// Package urllog records presigned URL issuances for audit.
//
// Entries deliberately never contain the signed URL: a stored URL is a
// stored bearer credential. The SHA-256 digest is kept instead, enough to
// match a URL found in the wild back to who minted it and when.
package urllog

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/tendant/simple-presign/pkg/simplepresign"
)

// ErrEntryNotFound is returned when no entry exists for the given ID.
var ErrEntryNotFound = errors.New("urllog: entry not found")

// Entry records one issued presigned URL.
type Entry struct {
	ID          uuid.UUID `json:"id"`
	Bucket      string    `json:"bucket"`
	ObjectKey   string    `json:"object_key"`
	Host        string    `json:"host"`
	AccessKeyID string    `json:"access_key_id"`
	URLDigest   string    `json:"url_digest"`
	SignedAt    time.Time `json:"signed_at"`
	ExpiresAt   time.Time `json:"expires_at"`
	CreatedAt   time.Time `json:"created_at"`
}

// Active reports whether the recorded URL is still within its validity
// window at the given instant.
func (e *Entry) Active(at time.Time) bool {
	return !e.SignedAt.After(at) && e.ExpiresAt.After(at)
}

// Filter narrows List results. Zero values match everything.
type Filter struct {
	Bucket    string
	ObjectKey string
	ActiveAt  time.Time // only entries still valid at this instant
	Limit     int       // cap on returned entries, newest first
}

// Store persists issuance entries.
type Store interface {
	Create(ctx context.Context, entry *Entry) error
	Get(ctx context.Context, id uuid.UUID) (*Entry, error)
	List(ctx context.Context, filter Filter) ([]*Entry, error)
	// DeleteExpired removes entries whose validity window closed at or
	// before the given instant and returns how many were removed.
	DeleteExpired(ctx context.Context, before time.Time) (int, error)
}

// DigestURL returns the lowercase hex SHA-256 of a signed URL, the only form
// in which entries reference the URL.
func DigestURL(signedURL string) string {
	sum := sha256.Sum256([]byte(signedURL))
	return hex.EncodeToString(sum[:])
}

// NewEntry builds an Entry from a signing request and its result.
func NewEntry(req simplepresign.SignRequest, result *simplepresign.PresignedURL, accessKeyID string) (*Entry, error) {
	if result == nil {
		return nil, errors.New("urllog: nil signing result")
	}
	u, err := url.Parse(result.URL)
	if err != nil {
		return nil, fmt.Errorf("urllog: unparseable signed URL: %w", err)
	}

	return &Entry{
		ID:          uuid.New(),
		Bucket:      strings.TrimSpace(req.Bucket),
		ObjectKey:   strings.TrimSpace(req.ObjectKey),
		Host:        u.Host,
		AccessKeyID: accessKeyID,
		URLDigest:   DigestURL(result.URL),
		SignedAt:    result.SignedAt,
		ExpiresAt:   result.ExpiresAt,
		CreatedAt:   time.Now().UTC(),
	}, nil
}
