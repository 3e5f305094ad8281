package knowledge

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadIndex(t *testing.T) {
	path := filepath.Join(t.TempDir(), "resources.idx")
	require.NoError(t, WriteArtifact(path, "gemini-embedding-001", testChunks()))

	ix, err := LoadIndex(path, nil)
	require.NoError(t, err)

	count, err := ix.Count(context.Background())
	require.NoError(t, err)
	assert.Equal(t, int64(2), count)
	assert.Equal(t, "gemini-embedding-001", ix.Model())
	assert.NoError(t, ix.Ready(context.Background()))
}

func TestLoadIndexMissing(t *testing.T) {
	_, err := LoadIndex(filepath.Join(t.TempDir(), "resources.idx"), nil)
	assert.ErrorIs(t, err, ErrArtifactMissing)
}

func TestIndexSearchOrdering(t *testing.T) {
	chunks := []Chunk{
		{ID: "far", Content: "far", Embedding: []float32{0, 1, 0}},
		{ID: "near", Content: "near", Embedding: []float32{1, 0, 0}},
		{ID: "mid", Content: "mid", Embedding: []float32{0.7, 0.7, 0}},
	}
	ix := NewIndex(chunks, "test-model", nil)

	got, err := ix.Search(context.Background(), []float32{1, 0, 0}, 3)
	require.NoError(t, err)
	require.Len(t, got, 3)

	assert.Equal(t, "near", got[0].ID)
	assert.Equal(t, "mid", got[1].ID)
	assert.Equal(t, "far", got[2].ID)

	assert.InDelta(t, 0.0, got[0].Distance, 1e-6)
	assert.InDelta(t, 2.0, got[2].Distance, 1e-6)
}

func TestIndexSearchLimitsK(t *testing.T) {
	ix := NewIndex(testChunks(), "test-model", nil)

	got, err := ix.Search(context.Background(), []float32{1, 0, 0}, 1)
	require.NoError(t, err)
	assert.Len(t, got, 1)

	got, err = ix.Search(context.Background(), []float32{1, 0, 0}, 10)
	require.NoError(t, err)
	assert.Len(t, got, 2, "k beyond corpus size returns everything")

	got, err = ix.Search(context.Background(), []float32{1, 0, 0}, 0)
	require.NoError(t, err)
	assert.Empty(t, got)
}

func TestIndexSearchDimensionMismatch(t *testing.T) {
	ix := NewIndex(testChunks(), "test-model", nil)

	_, err := ix.Search(context.Background(), []float32{1, 0}, 3)
	assert.Error(t, err)

	_, err = ix.Search(context.Background(), nil, 3)
	assert.Error(t, err)
}
