package simplepresign_test

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tendant/simple-presign/pkg/simplepresign"
)

func TestSignURLFunction(t *testing.T) {
	t.Run("matches a signer with the same configuration", func(t *testing.T) {
		req := simplepresign.SignRequest{
			Bucket:          "my-bucket",
			ObjectKey:       "file.txt",
			ValidityMinutes: 10,
			Timestamp:       testTimestamp,
		}
		want, err := newTestSigner(t).SignURL(req)
		require.NoError(t, err)

		got, err := simplepresign.SignURL(req, testCredentials(), testEndpoint)
		require.NoError(t, err)
		assert.Equal(t, want, got)
	})

	t.Run("zero validity defaults to five minutes", func(t *testing.T) {
		url, err := simplepresign.SignURL(simplepresign.SignRequest{
			Bucket:    "my-bucket",
			ObjectKey: "file.txt",
			Timestamp: testTimestamp,
		}, testCredentials(), testEndpoint)
		require.NoError(t, err)
		assert.Contains(t, url, "X-Amz-Expires=300&")
	})

	t.Run("negative validity still fails", func(t *testing.T) {
		_, err := simplepresign.SignURL(simplepresign.SignRequest{
			Bucket:          "my-bucket",
			ObjectKey:       "file.txt",
			ValidityMinutes: -5,
		}, testCredentials(), testEndpoint)
		require.ErrorIs(t, err, simplepresign.ErrInvalidValidity)
	})

	t.Run("options pass through", func(t *testing.T) {
		url, err := simplepresign.SignURL(simplepresign.SignRequest{
			Bucket:          "my-bucket",
			ObjectKey:       "file.txt",
			ValidityMinutes: 5,
			Timestamp:       testTimestamp,
		}, testCredentials(), testEndpoint,
			simplepresign.WithRegion("eu-central-1"),
			simplepresign.WithPathStyle(false),
		)
		require.NoError(t, err)
		assert.True(t, strings.HasPrefix(url, "https://my-bucket.s3.amazonaws.com/file.txt?"))
		assert.Contains(t, url, "%2Feu-central-1%2F")
	})

	t.Run("configuration errors surface", func(t *testing.T) {
		_, err := simplepresign.SignURL(simplepresign.SignRequest{
			Bucket:    "my-bucket",
			ObjectKey: "file.txt",
		}, simplepresign.Credentials{}, testEndpoint)
		require.ErrorIs(t, err, simplepresign.ErrNoCredentials)
	})
}

func TestSignURLWithHandler(t *testing.T) {
	t.Run("success skips the handler", func(t *testing.T) {
		called := false
		url := simplepresign.SignURLWithHandler(simplepresign.SignRequest{
			Bucket:    "my-bucket",
			ObjectKey: "file.txt",
			Timestamp: testTimestamp,
		}, testCredentials(), testEndpoint, func(error) { called = true })
		assert.NotEmpty(t, url)
		assert.False(t, called)
	})

	t.Run("failure invokes the handler and returns empty", func(t *testing.T) {
		var got error
		url := simplepresign.SignURLWithHandler(simplepresign.SignRequest{
			ObjectKey: "file.txt",
		}, testCredentials(), testEndpoint, func(err error) { got = err })
		assert.Empty(t, url)
		assert.ErrorIs(t, got, simplepresign.ErrEmptyBucket)
	})

	t.Run("nil handler is safe", func(t *testing.T) {
		url := simplepresign.SignURLWithHandler(simplepresign.SignRequest{}, testCredentials(), testEndpoint, nil)
		assert.Empty(t, url)
	})
}
