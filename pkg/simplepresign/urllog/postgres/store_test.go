package postgres_test

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/exp/slog"

	"github.com/tendant/simple-presign/pkg/simplepresign/urllog"
	"github.com/tendant/simple-presign/pkg/simplepresign/urllog/postgres"
)

func testEntry(bucket, objectKey string, signedAt time.Time, validity time.Duration) *urllog.Entry {
	return &urllog.Entry{
		ID:          uuid.New(),
		Bucket:      bucket,
		ObjectKey:   objectKey,
		Host:        "s3.amazonaws.com",
		AccessKeyID: "AKIDEXAMPLE",
		URLDigest:   urllog.DigestURL("https://s3.amazonaws.com/" + bucket + "/" + objectKey),
		SignedAt:    signedAt,
		ExpiresAt:   signedAt.Add(validity),
		CreatedAt:   signedAt,
	}
}

func TestPostgresStore_CreateAndGet(t *testing.T) {
	RunTest(t, func(t *testing.T, db *TestDB) {
		store := postgres.NewWithPool(db.Pool)
		ctx := context.Background()

		signedAt := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
		entry := testEntry("my-bucket", "path/to/file.zip", signedAt, time.Hour)

		err := store.Create(ctx, entry)
		require.NoError(t, err)
		slog.Info("Recorded entry", "id", entry.ID)

		retrieved, err := store.Get(ctx, entry.ID)
		require.NoError(t, err)
		assert.Equal(t, entry.ID, retrieved.ID)
		assert.Equal(t, entry.Bucket, retrieved.Bucket)
		assert.Equal(t, entry.ObjectKey, retrieved.ObjectKey)
		assert.Equal(t, entry.Host, retrieved.Host)
		assert.Equal(t, entry.AccessKeyID, retrieved.AccessKeyID)
		assert.Equal(t, entry.URLDigest, retrieved.URLDigest)
		assert.True(t, entry.SignedAt.Equal(retrieved.SignedAt))
		assert.True(t, entry.ExpiresAt.Equal(retrieved.ExpiresAt))
	})
}

func TestPostgresStore_GetNotFound(t *testing.T) {
	RunTest(t, func(t *testing.T, db *TestDB) {
		store := postgres.NewWithPool(db.Pool)

		_, err := store.Get(context.Background(), uuid.New())
		assert.ErrorIs(t, err, urllog.ErrEntryNotFound)
	})
}

func TestPostgresStore_CreateDuplicate(t *testing.T) {
	RunTest(t, func(t *testing.T, db *TestDB) {
		store := postgres.NewWithPool(db.Pool)
		ctx := context.Background()

		signedAt := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
		entry := testEntry("my-bucket", "file.txt", signedAt, time.Hour)

		require.NoError(t, store.Create(ctx, entry))
		err := store.Create(ctx, entry)
		assert.Error(t, err)
		assert.Contains(t, err.Error(), "already exists")
	})
}

func TestPostgresStore_List(t *testing.T) {
	RunTest(t, func(t *testing.T, db *TestDB) {
		store := postgres.NewWithPool(db.Pool)
		ctx := context.Background()
		base := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)

		first := testEntry("bucket-a", "one.txt", base, time.Hour)
		second := testEntry("bucket-a", "two.txt", base.Add(time.Minute), time.Hour)
		third := testEntry("bucket-b", "one.txt", base.Add(2*time.Minute), time.Minute)
		for _, e := range []*urllog.Entry{first, second, third} {
			require.NoError(t, store.Create(ctx, e))
		}

		t.Run("newest first", func(t *testing.T) {
			entries, err := store.List(ctx, urllog.Filter{})
			require.NoError(t, err)
			require.Len(t, entries, 3)
			assert.Equal(t, third.ID, entries[0].ID)
			assert.Equal(t, second.ID, entries[1].ID)
			assert.Equal(t, first.ID, entries[2].ID)
		})

		t.Run("filter by bucket", func(t *testing.T) {
			entries, err := store.List(ctx, urllog.Filter{Bucket: "bucket-a"})
			require.NoError(t, err)
			require.Len(t, entries, 2)
			assert.Equal(t, second.ID, entries[0].ID)
			assert.Equal(t, first.ID, entries[1].ID)
		})

		t.Run("filter by object key", func(t *testing.T) {
			entries, err := store.List(ctx, urllog.Filter{ObjectKey: "one.txt"})
			require.NoError(t, err)
			require.Len(t, entries, 2)
			assert.Equal(t, third.ID, entries[0].ID)
			assert.Equal(t, first.ID, entries[1].ID)
		})

		t.Run("filter by active instant", func(t *testing.T) {
			entries, err := store.List(ctx, urllog.Filter{ActiveAt: base.Add(10 * time.Minute)})
			require.NoError(t, err)
			require.Len(t, entries, 2)
			assert.Equal(t, second.ID, entries[0].ID)
			assert.Equal(t, first.ID, entries[1].ID)
		})

		t.Run("limit keeps newest", func(t *testing.T) {
			entries, err := store.List(ctx, urllog.Filter{Limit: 2})
			require.NoError(t, err)
			require.Len(t, entries, 2)
			assert.Equal(t, third.ID, entries[0].ID)
			assert.Equal(t, second.ID, entries[1].ID)
		})
	})
}

func TestPostgresStore_DeleteExpired(t *testing.T) {
	RunTest(t, func(t *testing.T, db *TestDB) {
		store := postgres.NewWithPool(db.Pool)
		ctx := context.Background()
		base := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)

		shortLived := testEntry("bucket-a", "one.txt", base, time.Minute)
		longLived := testEntry("bucket-a", "two.txt", base, time.Hour)
		for _, e := range []*urllog.Entry{shortLived, longLived} {
			require.NoError(t, store.Create(ctx, e))
		}

		removed, err := store.DeleteExpired(ctx, base)
		require.NoError(t, err)
		assert.Zero(t, removed)

		removed, err = store.DeleteExpired(ctx, base.Add(time.Minute))
		require.NoError(t, err)
		assert.Equal(t, 1, removed)

		_, err = store.Get(ctx, shortLived.ID)
		assert.ErrorIs(t, err, urllog.ErrEntryNotFound)

		entries, err := store.List(ctx, urllog.Filter{})
		require.NoError(t, err)
		require.Len(t, entries, 1)
		assert.Equal(t, longLived.ID, entries[0].ID)
	})
}
