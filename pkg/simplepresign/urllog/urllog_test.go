package urllog_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tendant/simple-presign/pkg/simplepresign"
	"github.com/tendant/simple-presign/pkg/simplepresign/urllog"
)

func TestDigestURL(t *testing.T) {
	digest := urllog.DigestURL("https://s3.amazonaws.com/my-bucket/file.txt?X-Amz-Signature=abc")

	assert.Len(t, digest, 64)
	assert.Equal(t, digest, urllog.DigestURL("https://s3.amazonaws.com/my-bucket/file.txt?X-Amz-Signature=abc"))
	assert.NotEqual(t, digest, urllog.DigestURL("https://s3.amazonaws.com/my-bucket/other.txt?X-Amz-Signature=abc"))
}

func TestNewEntry(t *testing.T) {
	signedAt := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	req := simplepresign.SignRequest{
		Bucket:          "  my-bucket ",
		ObjectKey:       " path/to/file.zip ",
		ValidityMinutes: 60,
	}
	result := &simplepresign.PresignedURL{
		URL:       "https://my-bucket.s3.amazonaws.com/path/to/file.zip?X-Amz-Signature=abc",
		Method:    "GET",
		SignedAt:  signedAt,
		ExpiresAt: signedAt.Add(time.Hour),
	}

	entry, err := urllog.NewEntry(req, result, "AKIDEXAMPLE")
	require.NoError(t, err)

	assert.NotEqual(t, entry.ID.String(), "00000000-0000-0000-0000-000000000000")
	assert.Equal(t, "my-bucket", entry.Bucket)
	assert.Equal(t, "path/to/file.zip", entry.ObjectKey)
	assert.Equal(t, "my-bucket.s3.amazonaws.com", entry.Host)
	assert.Equal(t, "AKIDEXAMPLE", entry.AccessKeyID)
	assert.Equal(t, urllog.DigestURL(result.URL), entry.URLDigest)
	assert.Equal(t, signedAt, entry.SignedAt)
	assert.Equal(t, signedAt.Add(time.Hour), entry.ExpiresAt)
	assert.False(t, entry.CreatedAt.IsZero())

	t.Run("nil result", func(t *testing.T) {
		_, err := urllog.NewEntry(req, nil, "AKIDEXAMPLE")
		assert.Error(t, err)
	})
}

func TestEntryActive(t *testing.T) {
	signedAt := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	entry := &urllog.Entry{
		SignedAt:  signedAt,
		ExpiresAt: signedAt.Add(time.Hour),
	}

	assert.True(t, entry.Active(signedAt))
	assert.True(t, entry.Active(signedAt.Add(30*time.Minute)))
	assert.False(t, entry.Active(signedAt.Add(-time.Second)))
	assert.False(t, entry.Active(signedAt.Add(time.Hour)))
}
