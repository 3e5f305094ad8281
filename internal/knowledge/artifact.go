package knowledge

import (
	"encoding/gob"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"time"
)

// ArtifactVersion is the current on-disk format version. Readers reject
// artifacts written with a different version instead of guessing.
const ArtifactVersion = 1

var (
	// ErrArtifactMissing indicates the index artifact does not exist. The
	// only remedy is rebuilding it with the offline indexer ("sora index").
	ErrArtifactMissing = errors.New("index artifact not found")

	// ErrArtifactCorrupt indicates the artifact exists but cannot be decoded.
	ErrArtifactCorrupt = errors.New("index artifact corrupt")

	// ErrArtifactVersion indicates an incompatible artifact format version.
	ErrArtifactVersion = errors.New("index artifact version mismatch")
)

// WriteArtifact writes chunks to path as a gob-encoded artifact, recording
// the embedding model they were built with. The parent directory is created
// if needed. Writes go through a temp file and rename so a crash never
// leaves a truncated artifact behind.
func WriteArtifact(path, model string, chunks []Chunk) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o750); err != nil {
		return fmt.Errorf("creating artifact directory: %w", err)
	}

	tmp, err := os.CreateTemp(filepath.Dir(path), ".resources-*.idx")
	if err != nil {
		return fmt.Errorf("creating temp artifact: %w", err)
	}
	defer func() {
		// Best effort; the temp file is gone after a successful rename.
		_ = os.Remove(tmp.Name())
	}()

	art := Artifact{
		Version:   ArtifactVersion,
		Model:     model,
		CreatedAt: time.Now().UTC(),
		Chunks:    chunks,
	}

	if err := gob.NewEncoder(tmp).Encode(art); err != nil {
		tmp.Close()
		return fmt.Errorf("encoding artifact: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("closing temp artifact: %w", err)
	}

	if err := os.Rename(tmp.Name(), path); err != nil {
		return fmt.Errorf("replacing artifact: %w", err)
	}
	return nil
}

// readArtifact loads and validates the artifact at path.
func readArtifact(path string) (*Artifact, error) {
	f, err := os.Open(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("%w: %s (run 'sora index' to build it)", ErrArtifactMissing, path)
		}
		return nil, fmt.Errorf("opening artifact: %w", err)
	}
	defer f.Close()

	var art Artifact
	if err := gob.NewDecoder(f).Decode(&art); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrArtifactCorrupt, err)
	}
	if art.Version != ArtifactVersion {
		return nil, fmt.Errorf("%w: got %d, want %d", ErrArtifactVersion, art.Version, ArtifactVersion)
	}
	return &art, nil
}
