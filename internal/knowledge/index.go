package knowledge

import (
	"context"
	"fmt"
	"sort"

	"github.com/Nazmul0005/simple-chatbot-rag-conversational/internal/log"
)

// Index is the in-memory, file-backed vector index. It is immutable after
// LoadIndex returns: concurrent Search calls need no locking because nothing
// writes in the serving path.
type Index struct {
	chunks []Chunk
	model  string
	logger log.Logger
}

// LoadIndex loads the index artifact at path. A missing or unreadable
// artifact is a startup-fatal condition for the caller: the service cannot
// answer resource-backed categories without it, and the only repair is a
// full offline rebuild.
func LoadIndex(path string, logger log.Logger) (*Index, error) {
	if logger == nil {
		logger = log.NewNop()
	}

	art, err := readArtifact(path)
	if err != nil {
		return nil, err
	}
	if len(art.Chunks) == 0 {
		return nil, fmt.Errorf("%w: artifact holds no chunks", ErrArtifactCorrupt)
	}

	logger.Info("vector index loaded",
		"path", path,
		"chunks", len(art.Chunks),
		"embedding_model", art.Model,
		"built_at", art.CreatedAt)

	return &Index{chunks: art.Chunks, model: art.Model, logger: logger}, nil
}

// NewIndex builds an index directly from chunks, bypassing the artifact
// file. Used by tests and by the indexer before persisting.
func NewIndex(chunks []Chunk, model string, logger log.Logger) *Index {
	if logger == nil {
		logger = log.NewNop()
	}
	return &Index{chunks: chunks, model: model, logger: logger}
}

// Search returns the k nearest chunks to embedding by squared L2 distance,
// closest first. For unit-normalized embeddings the squared L2 distance lies
// in [0, 4] and equals 2*(1-cos), which is what the retriever's similarity
// rescaling assumes.
func (ix *Index) Search(_ context.Context, embedding []float32, k int) ([]Neighbor, error) {
	if len(embedding) == 0 {
		return nil, fmt.Errorf("empty query embedding")
	}
	if k <= 0 {
		return nil, nil
	}

	neighbors := make([]Neighbor, 0, len(ix.chunks))
	for _, c := range ix.chunks {
		d, err := squaredL2(embedding, c.Embedding)
		if err != nil {
			return nil, fmt.Errorf("chunk %s: %w", c.ID, err)
		}
		neighbors = append(neighbors, Neighbor{Chunk: c, Distance: d})
	}

	sort.SliceStable(neighbors, func(i, j int) bool {
		return neighbors[i].Distance < neighbors[j].Distance
	})

	if len(neighbors) > k {
		neighbors = neighbors[:k]
	}
	return neighbors, nil
}

// Count returns the number of indexed chunks.
func (ix *Index) Count(_ context.Context) (int64, error) {
	return int64(len(ix.chunks)), nil
}

// Model returns the embedding model the index was built with.
func (ix *Index) Model() string {
	return ix.model
}

// Ready reports whether the index can serve searches. Loading already
// guarantees a non-empty index, so this is a cheap liveness hook for the
// readiness probe.
func (ix *Index) Ready(_ context.Context) error {
	if len(ix.chunks) == 0 {
		return fmt.Errorf("index is empty")
	}
	return nil
}

// squaredL2 computes the squared Euclidean distance between two vectors.
func squaredL2(a, b []float32) (float32, error) {
	if len(a) != len(b) {
		return 0, fmt.Errorf("dimension mismatch: %d vs %d", len(a), len(b))
	}
	var sum float32
	for i := range a {
		d := a[i] - b[i]
		sum += d * d
	}
	return sum, nil
}
