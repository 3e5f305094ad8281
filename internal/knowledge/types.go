// Package knowledge holds the embedded professional-resource chunks and the
// nearest-neighbor search over them.
//
// Two interchangeable backends exist:
//
//   - Index: an in-memory index loaded once at startup from a gob artifact
//     written by the offline indexer (the default; the serving path treats
//     the index as a read-only file on disk).
//   - PgStore: a PostgreSQL + pgvector table, searched per request.
//
// Both are read-only in the serving path and safe for concurrent use.
package knowledge

import "time"

// VectorDimension is the embedding width the index and the pgvector schema
// are built for. gemini-embedding-001 is truncated to this size at indexing
// time; query embeddings must match.
const VectorDimension = 768

// Chunk is one pre-embedded fragment of a professional resource document.
// Chunks are created by the offline indexer and never mutated afterwards.
type Chunk struct {
	ID           string
	Content      string
	Source       string // originating filename, e.g. "quit_smoking_guide.txt"
	ResourceType string // category-like tag taken from the resource subdirectory
	Embedding    []float32
}

// Neighbor is one nearest-neighbor search result. Distance is the backend's
// raw distance (squared L2 for the file index, L2 for pgvector); smaller is
// closer.
type Neighbor struct {
	Chunk
	Distance float32
}

// Artifact is the persisted form of a file-backed index.
type Artifact struct {
	Version   int
	Model     string // embedding model the chunks were embedded with
	CreatedAt time.Time
	Chunks    []Chunk
}
