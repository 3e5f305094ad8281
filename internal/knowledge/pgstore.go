package knowledge

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/pgvector/pgvector-go"
	pgxvector "github.com/pgvector/pgvector-go/pgx"

	"github.com/Nazmul0005/simple-chatbot-rag-conversational/internal/log"
)

// PgStore is the Postgres-backed alternative to the file index. Nearest
// neighbors come from pgvector's `<->` operator, which returns plain L2
// distance, so Search squares it to match the file index's metric.
type PgStore struct {
	pool   *pgxpool.Pool
	model  string
	logger log.Logger
}

// OpenPool connects a pgxpool with pgvector type support registered on
// every connection.
func OpenPool(ctx context.Context, url string) (*pgxpool.Pool, error) {
	cfg, err := pgxpool.ParseConfig(url)
	if err != nil {
		return nil, fmt.Errorf("parse database url: %w", err)
	}
	cfg.AfterConnect = func(ctx context.Context, conn *pgx.Conn) error {
		return pgxvector.RegisterTypes(ctx, conn)
	}

	pool, err := pgxpool.NewWithConfig(ctx, cfg)
	if err != nil {
		return nil, fmt.Errorf("connect database: %w", err)
	}
	return pool, nil
}

// NewPgStore wraps pool as a chunk store. The model name is recorded so
// query-time embedder mismatches can be detected, same as the file artifact.
func NewPgStore(pool *pgxpool.Pool, model string, logger log.Logger) *PgStore {
	if logger == nil {
		logger = log.NewNop()
	}
	return &PgStore{pool: pool, model: model, logger: logger}
}

// Search returns the k nearest chunks to embedding, closest first, with
// squared L2 distances.
func (s *PgStore) Search(ctx context.Context, embedding []float32, k int) ([]Neighbor, error) {
	if len(embedding) == 0 {
		return nil, fmt.Errorf("empty query embedding")
	}
	if k <= 0 {
		return nil, nil
	}

	rows, err := s.pool.Query(ctx, `
		SELECT id, content, source, resource_type, embedding <-> $1 AS distance
		FROM resource_chunks
		ORDER BY embedding <-> $1
		LIMIT $2`,
		pgvector.NewVector(embedding), k)
	if err != nil {
		return nil, fmt.Errorf("vector search failed: %w", err)
	}
	defer rows.Close()

	var neighbors []Neighbor
	for rows.Next() {
		var n Neighbor
		var dist float64
		if err := rows.Scan(&n.ID, &n.Content, &n.Source, &n.ResourceType, &dist); err != nil {
			return nil, fmt.Errorf("scan chunk: %w", err)
		}
		n.Distance = float32(dist * dist)
		neighbors = append(neighbors, n)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("read chunks: %w", err)
	}
	return neighbors, nil
}

// Upsert writes chunks in a single transaction. Used by the offline indexer.
func (s *PgStore) Upsert(ctx context.Context, chunks []Chunk) error {
	tx, err := s.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	for _, c := range chunks {
		if len(c.Embedding) != VectorDimension {
			return fmt.Errorf("chunk %s has %d dimensions, want %d",
				c.ID, len(c.Embedding), VectorDimension)
		}
		_, err := tx.Exec(ctx, `
			INSERT INTO resource_chunks (id, content, source, resource_type, embedding)
			VALUES ($1, $2, $3, $4, $5)
			ON CONFLICT (id) DO UPDATE SET
				content = EXCLUDED.content,
				source = EXCLUDED.source,
				resource_type = EXCLUDED.resource_type,
				embedding = EXCLUDED.embedding`,
			c.ID, c.Content, c.Source, c.ResourceType, pgvector.NewVector(c.Embedding))
		if err != nil {
			return fmt.Errorf("upsert chunk %s: %w", c.ID, err)
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit upsert: %w", err)
	}
	s.logger.Info("chunks upserted", "count", len(chunks))
	return nil
}

// Count returns the number of stored chunks.
func (s *PgStore) Count(ctx context.Context) (int64, error) {
	var n int64
	err := s.pool.QueryRow(ctx, `SELECT count(*) FROM resource_chunks`).Scan(&n)
	if err != nil {
		return 0, fmt.Errorf("count chunks: %w", err)
	}
	return n, nil
}

// Model returns the embedding model configured for this store.
func (s *PgStore) Model() string {
	return s.model
}

// Ready reports whether the database is reachable.
func (s *PgStore) Ready(ctx context.Context) error {
	return s.pool.Ping(ctx)
}

// Close releases the connection pool.
func (s *PgStore) Close() {
	s.pool.Close()
}
