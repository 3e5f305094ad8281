// Package rag turns user queries into ranked, similarity-filtered resource
// hits and renders them as prompt context. It sits between the vector
// backend and the chat pipeline: retrieval failures are reported, never
// propagated as request failures.
package rag

import (
	"context"
	"fmt"
	"math"

	"github.com/firebase/genkit/go/ai"
	"google.golang.org/genai"

	"github.com/Nazmul0005/simple-chatbot-rag-conversational/internal/knowledge"
	"github.com/Nazmul0005/simple-chatbot-rag-conversational/internal/log"
)

// DefaultThreshold is the minimum similarity a chunk must reach to be
// surfaced. Similarity is rescaled from squared L2 distance and lands in
// [0, 1] for unit-normalized embeddings.
const DefaultThreshold = 0.7

// Searcher is the slice of the vector backend the retriever needs. Both the
// file index and the Postgres store satisfy it.
type Searcher interface {
	Search(ctx context.Context, embedding []float32, k int) ([]knowledge.Neighbor, error)
}

// Hit is a retrieved chunk with its raw distance and rescaled similarity.
type Hit struct {
	knowledge.Chunk
	Distance   float32
	Similarity float64
}

// Outcome carries the result of a retrieval attempt. Err being non-nil means
// the attempt failed and Hits is empty; callers decide whether to degrade or
// abort. An empty Hits with a nil Err means nothing cleared the threshold.
type Outcome struct {
	Hits []Hit
	Err  error
}

// Retriever embeds queries and searches the backend, keeping only hits above
// the similarity threshold.
type Retriever struct {
	embedder  ai.Embedder
	searcher  Searcher
	threshold float64
	logger    log.Logger
}

// Option configures a Retriever.
type Option func(*Retriever)

// WithThreshold overrides the similarity cutoff. Values are expected in
// [0, 1]; config validation enforces the range upstream.
func WithThreshold(t float64) Option {
	return func(r *Retriever) { r.threshold = t }
}

// NewRetriever wires an embedder to a search backend.
func NewRetriever(embedder ai.Embedder, searcher Searcher, logger log.Logger, opts ...Option) *Retriever {
	if logger == nil {
		logger = log.NewNop()
	}
	r := &Retriever{
		embedder:  embedder,
		searcher:  searcher,
		threshold: DefaultThreshold,
		logger:    logger,
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Search embeds query, asks the backend for the topK nearest chunks, and
// filters them by similarity. All failures land in Outcome.Err so the chat
// pipeline can continue without context.
func (r *Retriever) Search(ctx context.Context, query string, topK int) Outcome {
	embedding, err := r.embedQuery(ctx, query)
	if err != nil {
		r.logger.Warn("query embedding failed, continuing without context", "error", err)
		return Outcome{Err: err}
	}

	neighbors, err := r.searcher.Search(ctx, embedding, topK)
	if err != nil {
		r.logger.Warn("vector search failed, continuing without context", "error", err)
		return Outcome{Err: err}
	}

	hits := make([]Hit, 0, len(neighbors))
	for _, n := range neighbors {
		sim := similarity(n.Distance)
		if sim < r.threshold {
			continue
		}
		hits = append(hits, Hit{Chunk: n.Chunk, Distance: n.Distance, Similarity: sim})
	}

	r.logger.Debug("retrieval complete",
		"query_len", len(query), "candidates", len(neighbors), "hits", len(hits))
	return Outcome{Hits: hits}
}

func (r *Retriever) embedQuery(ctx context.Context, query string) ([]float32, error) {
	// The query must live in the same 768-dim space as the indexed chunks.
	dim := int32(knowledge.VectorDimension)
	resp, err := r.embedder.Embed(ctx, &ai.EmbedRequest{
		Input: []*ai.Document{
			{Content: []*ai.Part{ai.NewTextPart(query)}},
		},
		Options: &genai.EmbedContentConfig{OutputDimensionality: &dim},
	})
	if err != nil {
		return nil, fmt.Errorf("embed query: %w", err)
	}
	if len(resp.Embeddings) == 0 || len(resp.Embeddings[0].Embedding) == 0 {
		return nil, fmt.Errorf("embedder returned no embedding")
	}
	return resp.Embeddings[0].Embedding, nil
}

// similarity rescales a squared L2 distance between unit vectors into a
// cosine-equivalent score in [0, 1], rounded to three decimals.
func similarity(distance float32) float64 {
	s := 1 - float64(distance)/2
	if s < 0 {
		s = 0
	}
	return math.Round(s*1000) / 1000
}
