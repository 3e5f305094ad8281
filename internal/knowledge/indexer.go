package knowledge

import (
	"context"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/firebase/genkit/go/ai"
	"github.com/google/uuid"
	"google.golang.org/genai"

	"github.com/Nazmul0005/simple-chatbot-rag-conversational/internal/log"
)

// Indexer builds chunks from a directory of resource documents. It is an
// offline tool: the serving path never embeds documents, only queries.
type Indexer struct {
	embedder ai.Embedder
	model    string
	size     int
	overlap  int
	logger   log.Logger
}

// NewIndexer returns an Indexer that embeds with embedder. The model name is
// recorded in the artifact so loads can warn on embedder mismatch.
func NewIndexer(embedder ai.Embedder, model string, logger log.Logger) *Indexer {
	if logger == nil {
		logger = log.NewNop()
	}
	return &Indexer{
		embedder: embedder,
		model:    model,
		size:     DefaultChunkSize,
		overlap:  DefaultChunkOverlap,
		logger:   logger,
	}
}

// BuildFromDir walks dir, chunks every .txt and .md file, embeds each chunk,
// and returns the chunks ready for persistence. Each chunk's Source is the
// file name and its ResourceType is the file's parent directory name, so the
// layout data/resources/<type>/<file> carries the metadata.
func (ix *Indexer) BuildFromDir(ctx context.Context, dir string) ([]Chunk, error) {
	var chunks []Chunk

	err := filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			return nil
		}
		ext := strings.ToLower(filepath.Ext(path))
		if ext != ".txt" && ext != ".md" {
			return nil
		}

		fileChunks, err := ix.indexFile(ctx, path)
		if err != nil {
			return fmt.Errorf("index %s: %w", path, err)
		}
		chunks = append(chunks, fileChunks...)
		return nil
	})
	if err != nil {
		return nil, err
	}
	if len(chunks) == 0 {
		return nil, fmt.Errorf("no .txt or .md resources found under %s", dir)
	}

	ix.logger.Info("resource indexing complete", "dir", dir, "chunks", len(chunks))
	return chunks, nil
}

func (ix *Indexer) indexFile(ctx context.Context, path string) ([]Chunk, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	source := filepath.Base(path)
	resourceType := filepath.Base(filepath.Dir(path))

	pieces := SplitText(string(data), ix.size, ix.overlap)
	if len(pieces) == 0 {
		ix.logger.Warn("resource file is empty, skipping", "path", path)
		return nil, nil
	}

	embeddings, err := ix.embed(ctx, pieces)
	if err != nil {
		return nil, err
	}

	chunks := make([]Chunk, 0, len(pieces))
	for i, content := range pieces {
		chunks = append(chunks, Chunk{
			ID:           uuid.NewString(),
			Content:      content,
			Source:       source,
			ResourceType: resourceType,
			Embedding:    embeddings[i],
		})
	}

	ix.logger.Debug("resource file indexed",
		"path", path, "resource_type", resourceType, "chunks", len(chunks))
	return chunks, nil
}

func (ix *Indexer) embed(ctx context.Context, texts []string) ([][]float32, error) {
	docs := make([]*ai.Document, 0, len(texts))
	for _, t := range texts {
		docs = append(docs, &ai.Document{Content: []*ai.Part{ai.NewTextPart(t)}})
	}

	dim := int32(VectorDimension)
	resp, err := ix.embedder.Embed(ctx, &ai.EmbedRequest{
		Input:   docs,
		Options: &genai.EmbedContentConfig{OutputDimensionality: &dim},
	})
	if err != nil {
		return nil, fmt.Errorf("embedding failed: %w", err)
	}
	if len(resp.Embeddings) != len(texts) {
		return nil, fmt.Errorf("embedding count mismatch: got %d, want %d",
			len(resp.Embeddings), len(texts))
	}

	out := make([][]float32, 0, len(resp.Embeddings))
	for i, e := range resp.Embeddings {
		if len(e.Embedding) != VectorDimension {
			return nil, fmt.Errorf("embedding %d has %d dimensions, want %d",
				i, len(e.Embedding), VectorDimension)
		}
		out = append(out, e.Embedding)
	}
	return out, nil
}
