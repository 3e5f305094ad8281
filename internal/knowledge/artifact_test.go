package knowledge

import (
	"encoding/gob"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testChunks() []Chunk {
	return []Chunk{
		{
			ID:           "c1",
			Content:      "Deep breathing helps manage acute cravings.",
			Source:       "coping_strategies.txt",
			ResourceType: "coping",
			Embedding:    []float32{1, 0, 0},
		},
		{
			ID:           "c2",
			Content:      "Call a crisis line if you are in immediate danger.",
			Source:       "crisis_support.txt",
			ResourceType: "crisis",
			Embedding:    []float32{0, 1, 0},
		},
	}
}

func TestArtifactRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "resources.idx")
	chunks := testChunks()

	require.NoError(t, WriteArtifact(path, "gemini-embedding-001", chunks))

	art, err := readArtifact(path)
	require.NoError(t, err)

	assert.Equal(t, ArtifactVersion, art.Version)
	assert.Equal(t, "gemini-embedding-001", art.Model)
	assert.False(t, art.CreatedAt.IsZero())
	assert.Equal(t, chunks, art.Chunks)
}

func TestArtifactMissing(t *testing.T) {
	_, err := readArtifact(filepath.Join(t.TempDir(), "nope.idx"))
	assert.ErrorIs(t, err, ErrArtifactMissing)
}

func TestArtifactCorrupt(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bad.idx")
	require.NoError(t, os.WriteFile(path, []byte("not a gob stream"), 0o600))

	_, err := readArtifact(path)
	assert.ErrorIs(t, err, ErrArtifactCorrupt)
}

func TestArtifactVersionMismatch(t *testing.T) {
	path := filepath.Join(t.TempDir(), "old.idx")

	f, err := os.Create(path)
	require.NoError(t, err)
	art := Artifact{Version: ArtifactVersion + 1, Model: "m", Chunks: testChunks()}
	require.NoError(t, gob.NewEncoder(f).Encode(art))
	require.NoError(t, f.Close())

	_, err = readArtifact(path)
	assert.ErrorIs(t, err, ErrArtifactVersion)
}
