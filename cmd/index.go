package cmd

import (
	"context"
	"fmt"
	"os/signal"
	"syscall"

	"github.com/firebase/genkit/go/genkit"
	"github.com/firebase/genkit/go/plugins/googlegenai"
	"github.com/spf13/cobra"

	"github.com/Nazmul0005/simple-chatbot-rag-conversational/db"
	"github.com/Nazmul0005/simple-chatbot-rag-conversational/internal/app"
	"github.com/Nazmul0005/simple-chatbot-rag-conversational/internal/config"
	"github.com/Nazmul0005/simple-chatbot-rag-conversational/internal/knowledge"
	"github.com/Nazmul0005/simple-chatbot-rag-conversational/internal/log"
)

var (
	indexResourcesDir string
	indexOutputPath   string
)

var indexCmd = &cobra.Command{
	Use:   "index",
	Short: "Build the vector index from the resource corpus",
	Long: `Index walks the resource directory, chunks every .txt and .md file,
embeds the chunks, and writes them to the configured backend.

The directory layout carries the metadata: data/resources/<type>/<file>
records <type> as the resource type and <file> as the source.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runIndex(cmd.Context())
	},
}

func init() {
	indexCmd.Flags().StringVar(&indexResourcesDir, "resources", "",
		"resource directory (overrides configuration)")
	indexCmd.Flags().StringVar(&indexOutputPath, "out", "",
		"artifact output path, file backend only (overrides configuration)")
	rootCmd.AddCommand(indexCmd)
}

func runIndex(parent context.Context) error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}
	if indexResourcesDir != "" {
		cfg.ResourcesDir = indexResourcesDir
	}
	if indexOutputPath != "" {
		cfg.IndexPath = indexOutputPath
	}

	logger := log.New(log.Config{Level: levelFromEnv()})

	ctx, cancel := signal.NotifyContext(parent, syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	if cfg.GeminiAPIKey == "" {
		return config.ErrMissingAPIKey
	}
	g := genkit.Init(ctx, genkit.WithPlugins(&googlegenai.GoogleAI{}))
	embedder, err := app.ProvideEmbedder(g, cfg)
	if err != nil {
		return err
	}

	indexer := knowledge.NewIndexer(embedder, cfg.EmbedderModel, logger)
	chunks, err := indexer.BuildFromDir(ctx, cfg.ResourcesDir)
	if err != nil {
		return fmt.Errorf("indexing resources: %w", err)
	}

	switch cfg.Backend {
	case config.BackendFile:
		if err := knowledge.WriteArtifact(cfg.IndexPath, cfg.EmbedderModel, chunks); err != nil {
			return fmt.Errorf("writing index artifact: %w", err)
		}
		logger.Info("index artifact written", "path", cfg.IndexPath, "chunks", len(chunks))

	case config.BackendPostgres:
		if err := db.Migrate(cfg.PostgresURL(), logger); err != nil {
			return fmt.Errorf("migrating database: %w", err)
		}
		pool, err := knowledge.OpenPool(ctx, cfg.PostgresURL())
		if err != nil {
			return err
		}
		defer pool.Close()

		store := knowledge.NewPgStore(pool, cfg.EmbedderModel, logger)
		if err := store.Upsert(ctx, chunks); err != nil {
			return fmt.Errorf("storing chunks: %w", err)
		}
		logger.Info("chunks stored", "chunks", len(chunks))

	default:
		return fmt.Errorf("%w: %s", config.ErrInvalidBackend, cfg.Backend)
	}

	return nil
}
