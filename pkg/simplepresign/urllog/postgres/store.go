// Package postgres provides a PostgreSQL-backed urllog.Store.
//
// Entries live in the presign.url_log table:
//
//	CREATE SCHEMA IF NOT EXISTS presign;
//	CREATE TABLE IF NOT EXISTS presign.url_log (
//	    id UUID PRIMARY KEY,
//	    bucket TEXT NOT NULL,
//	    object_key TEXT NOT NULL,
//	    host TEXT NOT NULL,
//	    access_key_id TEXT NOT NULL,
//	    url_digest TEXT NOT NULL,
//	    signed_at TIMESTAMP NOT NULL,
//	    expires_at TIMESTAMP NOT NULL,
//	    created_at TIMESTAMP NOT NULL DEFAULT (now() AT TIME ZONE 'utc')
//	);
//
// url_digest carries no uniqueness constraint: signing is deterministic, so
// re-issuing the same request within the same second legitimately produces
// the same digest twice.
package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/tendant/simple-presign/pkg/simplepresign/urllog"
)

// DBTX is an interface that allows us to use either a database connection or a transaction
type DBTX interface {
	Exec(context.Context, string, ...interface{}) (pgconn.CommandTag, error)
	Query(context.Context, string, ...interface{}) (pgx.Rows, error)
	QueryRow(context.Context, string, ...interface{}) pgx.Row
}

// Store implements urllog.Store using PostgreSQL
type Store struct {
	db DBTX
}

// New creates a new PostgreSQL store
func New(db DBTX) urllog.Store {
	return &Store{db: db}
}

// NewWithPool creates a new PostgreSQL store with connection pool
func NewWithPool(pool *pgxpool.Pool) urllog.Store {
	return &Store{db: pool}
}

// Error handling helper
func (s *Store) handlePostgresError(operation string, err error) error {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		switch pgErr.Code {
		case "23505": // unique_violation
			return fmt.Errorf("entry already exists")
		case "23502": // not_null_violation
			return fmt.Errorf("required field %s is missing", pgErr.ColumnName)
		case "42P01": // undefined_table
			return fmt.Errorf("table does not exist - database migration required")
		default:
			return fmt.Errorf("database error in %s: %s (code: %s)", operation, pgErr.Message, pgErr.Code)
		}
	}

	return fmt.Errorf("database error in %s: %w", operation, err)
}

func (s *Store) Create(ctx context.Context, entry *urllog.Entry) error {
	query := `
		INSERT INTO presign.url_log (
			id, bucket, object_key, host, access_key_id,
			url_digest, signed_at, expires_at, created_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`

	_, err := s.db.Exec(ctx, query,
		entry.ID, entry.Bucket, entry.ObjectKey, entry.Host, entry.AccessKeyID,
		entry.URLDigest, entry.SignedAt, entry.ExpiresAt, entry.CreatedAt)

	if err != nil {
		return s.handlePostgresError("create entry", err)
	}

	return nil
}

func (s *Store) Get(ctx context.Context, id uuid.UUID) (*urllog.Entry, error) {
	query := `
		SELECT id, bucket, object_key, host, access_key_id,
		       url_digest, signed_at, expires_at, created_at
		FROM presign.url_log WHERE id = $1`

	var entry urllog.Entry
	err := s.db.QueryRow(ctx, query, id).Scan(
		&entry.ID, &entry.Bucket, &entry.ObjectKey, &entry.Host, &entry.AccessKeyID,
		&entry.URLDigest, &entry.SignedAt, &entry.ExpiresAt, &entry.CreatedAt)

	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, urllog.ErrEntryNotFound
		}
		return nil, s.handlePostgresError("get entry", err)
	}

	return &entry, nil
}

func (s *Store) List(ctx context.Context, filter urllog.Filter) ([]*urllog.Entry, error) {
	query := `
		SELECT id, bucket, object_key, host, access_key_id,
		       url_digest, signed_at, expires_at, created_at
		FROM presign.url_log
		WHERE 1=1`

	var args []interface{}
	argIndex := 1

	if filter.Bucket != "" {
		query += fmt.Sprintf(" AND bucket = $%d", argIndex)
		args = append(args, filter.Bucket)
		argIndex++
	}
	if filter.ObjectKey != "" {
		query += fmt.Sprintf(" AND object_key = $%d", argIndex)
		args = append(args, filter.ObjectKey)
		argIndex++
	}
	if !filter.ActiveAt.IsZero() {
		query += fmt.Sprintf(" AND signed_at <= $%d AND expires_at > $%d", argIndex, argIndex)
		args = append(args, filter.ActiveAt)
		argIndex++
	}

	query += " ORDER BY created_at DESC, id DESC"
	if filter.Limit > 0 {
		query += fmt.Sprintf(" LIMIT $%d", argIndex)
		args = append(args, filter.Limit)
	}

	rows, err := s.db.Query(ctx, query, args...)
	if err != nil {
		return nil, s.handlePostgresError("list entries", err)
	}
	defer rows.Close()

	var entries []*urllog.Entry
	for rows.Next() {
		var entry urllog.Entry
		err := rows.Scan(
			&entry.ID, &entry.Bucket, &entry.ObjectKey, &entry.Host, &entry.AccessKeyID,
			&entry.URLDigest, &entry.SignedAt, &entry.ExpiresAt, &entry.CreatedAt)
		if err != nil {
			return nil, s.handlePostgresError("scan entry", err)
		}
		entries = append(entries, &entry)
	}
	if err = rows.Err(); err != nil {
		return nil, s.handlePostgresError("list entries", err)
	}

	return entries, nil
}

func (s *Store) DeleteExpired(ctx context.Context, before time.Time) (int, error) {
	query := `DELETE FROM presign.url_log WHERE expires_at <= $1`

	tag, err := s.db.Exec(ctx, query, before)
	if err != nil {
		return 0, s.handlePostgresError("delete expired entries", err)
	}

	return int(tag.RowsAffected()), nil
}
