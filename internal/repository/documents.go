package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
)

// ErrStoreUnavailable is returned when no database connection was established.
var ErrStoreUnavailable = errors.New("document store unavailable")

const insertDocumentSQL = `
        INSERT INTO documents (id, collection, data, created_at, updated_at)
        VALUES ($1, $2, $3::jsonb, $4, $4)
    `

const listCollectionsSQL = `
        SELECT DISTINCT collection
        FROM documents
        ORDER BY collection
        LIMIT $1
    `

// PGXDocumentStore keeps schemaless JSON documents in a single Postgres table,
// partitioned by collection name.
type PGXDocumentStore struct {
	pool pgxPool
	name string
	now  func() time.Time
}

// NewPGXDocumentStore wires a pgx backed store. A nil pool yields a store whose
// operations all fail with ErrStoreUnavailable.
func NewPGXDocumentStore(pool *pgxpool.Pool) *PGXDocumentStore {
	if pool == nil {
		return &PGXDocumentStore{now: time.Now}
	}
	return &PGXDocumentStore{
		pool: pool,
		name: pool.Config().ConnConfig.Database,
		now:  time.Now,
	}
}

func newDocumentStore(pool pgxPool, name string, now func() time.Time) *PGXDocumentStore {
	return &PGXDocumentStore{pool: pool, name: name, now: now}
}

// Available reports whether the store holds a connection pool.
func (r *PGXDocumentStore) Available() bool {
	return r.pool != nil
}

// Name returns the database the store is connected to.
func (r *PGXDocumentStore) Name() string {
	return r.name
}

// InsertOne stores document in collection, adding created_at and updated_at
// timestamps, and returns the generated document id.
func (r *PGXDocumentStore) InsertOne(ctx context.Context, collection string, document any) (uuid.UUID, error) {
	if r.pool == nil {
		return uuid.Nil, ErrStoreUnavailable
	}
	collection = strings.TrimSpace(collection)
	if collection == "" {
		return uuid.Nil, fmt.Errorf("collection name must not be empty")
	}

	now := r.now().UTC()
	data, err := encodeDocument(document, now)
	if err != nil {
		return uuid.Nil, err
	}

	id := uuid.New()
	if _, err := r.pool.Exec(ctx, insertDocumentSQL, id, collection, data, now); err != nil {
		return uuid.Nil, fmt.Errorf("insert document into %s: %w", collection, err)
	}
	return id, nil
}

// ListCollections returns up to limit distinct collection names.
func (r *PGXDocumentStore) ListCollections(ctx context.Context, limit int) ([]string, error) {
	if r.pool == nil {
		return nil, ErrStoreUnavailable
	}
	if limit <= 0 {
		limit = 10
	}

	rows, err := r.pool.Query(ctx, listCollectionsSQL, limit)
	if err != nil {
		return nil, fmt.Errorf("list collections: %w", err)
	}
	defer rows.Close()

	collections := make([]string, 0, limit)
	for rows.Next() {
		var name string
		if err := rows.Scan(&name); err != nil {
			return nil, fmt.Errorf("scan collection: %w", err)
		}
		collections = append(collections, name)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate collections: %w", err)
	}
	return collections, nil
}

// Ping verifies the connection is alive.
func (r *PGXDocumentStore) Ping(ctx context.Context) error {
	if r.pool == nil {
		return ErrStoreUnavailable
	}
	if err := r.pool.Ping(ctx); err != nil {
		return fmt.Errorf("ping document store: %w", err)
	}
	return nil
}

func encodeDocument(document any, now time.Time) ([]byte, error) {
	raw, err := json.Marshal(document)
	if err != nil {
		return nil, fmt.Errorf("encode document: %w", err)
	}

	fields := map[string]any{}
	if err := json.Unmarshal(raw, &fields); err != nil {
		return nil, fmt.Errorf("document must encode to a JSON object: %w", err)
	}
	fields["created_at"] = now
	fields["updated_at"] = now

	data, err := json.Marshal(fields)
	if err != nil {
		return nil, fmt.Errorf("encode document: %w", err)
	}
	return data, nil
}
