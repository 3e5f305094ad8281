package config

import (
	"fmt"
	"strings"
)

// Validate checks all configuration values and fails fast with a sentinel
// error describing the first problem found.
func (c *Config) Validate() error {
	if c.GeminiAPIKey == "" {
		return fmt.Errorf("%w: set GEMINI_API_KEY", ErrMissingAPIKey)
	}

	if strings.TrimSpace(c.ModelName) == "" {
		return fmt.Errorf("%w: model_name is empty", ErrInvalidModelName)
	}
	if strings.TrimSpace(c.TitleModelName) == "" {
		return fmt.Errorf("%w: title_model_name is empty", ErrInvalidModelName)
	}
	if strings.TrimSpace(c.EmbedderModel) == "" {
		return fmt.Errorf("%w: embedder_model is empty", ErrInvalidEmbedderModel)
	}

	if c.Temperature < 0 || c.Temperature > 2 {
		return fmt.Errorf("%w: %v not in [0, 2]", ErrInvalidTemperature, c.Temperature)
	}

	if c.SimilarityThreshold < 0 || c.SimilarityThreshold > 1 {
		return fmt.Errorf("%w: %v not in [0, 1]", ErrInvalidThreshold, c.SimilarityThreshold)
	}
	if c.TopK < 1 || c.TopK > 10 {
		return fmt.Errorf("%w: %d not in [1, 10]", ErrInvalidTopK, c.TopK)
	}

	switch c.Backend {
	case BackendFile:
		if strings.TrimSpace(c.IndexPath) == "" {
			return fmt.Errorf("%w: index_path is empty", ErrInvalidIndexPath)
		}
	case BackendPostgres:
		if c.PostgresHost == "" || c.PostgresUser == "" || c.PostgresDBName == "" {
			return fmt.Errorf("%w: host, user and db name are required", ErrInvalidPostgres)
		}
		if c.PostgresPort < 1 || c.PostgresPort > 65535 {
			return fmt.Errorf("%w: port %d out of range", ErrInvalidPostgres, c.PostgresPort)
		}
	default:
		return fmt.Errorf("%w: %q (expected %q or %q)",
			ErrInvalidBackend, c.Backend, BackendFile, BackendPostgres)
	}

	return nil
}
