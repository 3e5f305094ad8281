package app

import (
	"context"
	"fmt"
	"os"

	"github.com/firebase/genkit/go/ai"
	"github.com/firebase/genkit/go/genkit"
	"github.com/firebase/genkit/go/plugins/googlegenai"

	"github.com/Nazmul0005/simple-chatbot-rag-conversational/api"
	"github.com/Nazmul0005/simple-chatbot-rag-conversational/db"
	"github.com/Nazmul0005/simple-chatbot-rag-conversational/internal/chat"
	"github.com/Nazmul0005/simple-chatbot-rag-conversational/internal/config"
	"github.com/Nazmul0005/simple-chatbot-rag-conversational/internal/knowledge"
	"github.com/Nazmul0005/simple-chatbot-rag-conversational/internal/log"
	"github.com/Nazmul0005/simple-chatbot-rag-conversational/internal/rag"
	"github.com/Nazmul0005/simple-chatbot-rag-conversational/internal/title"
)

// Setup assembles the full serving application: Genkit runtime, embedder,
// vector backend, retriever, chat pipeline, and title service. Call Close()
// on the returned App to release resources.
func Setup(ctx context.Context, cfg *config.Config, logger log.Logger) (_ *App, retErr error) {
	a := &App{Config: cfg, Logger: logger}

	defer func() {
		if retErr != nil {
			a.Close()
		}
	}()

	g, err := provideGenkit(ctx, cfg)
	if err != nil {
		return nil, err
	}
	a.Genkit = g

	embedder, err := ProvideEmbedder(g, cfg)
	if err != nil {
		return nil, err
	}

	searcher, checker, err := a.provideBackend(ctx, cfg, logger)
	if err != nil {
		return nil, err
	}
	a.Checker = checker

	retriever := rag.NewRetriever(embedder, searcher, logger,
		rag.WithThreshold(cfg.SimilarityThreshold))

	chatPipeline, err := chat.New(chat.Config{
		Generator: chat.NewGenkitGenerator(g, cfg.ModelName, float64(cfg.Temperature)),
		Searcher:  retriever,
		Logger:    logger,
		TopK:      cfg.TopK,
	})
	if err != nil {
		return nil, fmt.Errorf("building chat pipeline: %w", err)
	}
	a.Chat = chatPipeline

	// Title generation runs on a lighter model with a lower temperature.
	a.Titles = title.NewService(
		chat.NewGenkitGenerator(g, cfg.TitleModelName, 0.3), logger)

	return a, nil
}

// provideGenkit initializes the Genkit runtime with the Google AI plugin.
// The plugin reads GEMINI_API_KEY from the environment.
func provideGenkit(ctx context.Context, cfg *config.Config) (*genkit.Genkit, error) {
	if cfg.GeminiAPIKey == "" {
		return nil, config.ErrMissingAPIKey
	}
	// The plugin resolves the key from the environment, so make sure it is
	// set even when it arrived through another channel.
	if os.Getenv("GEMINI_API_KEY") == "" {
		if err := os.Setenv("GEMINI_API_KEY", cfg.GeminiAPIKey); err != nil {
			return nil, fmt.Errorf("setting GEMINI_API_KEY: %w", err)
		}
	}
	return genkit.Init(ctx, genkit.WithPlugins(&googlegenai.GoogleAI{})), nil
}

// ProvideEmbedder resolves the configured embedding model. Exported so the
// offline indexer command can reuse it without building the full App.
func ProvideEmbedder(g *genkit.Genkit, cfg *config.Config) (ai.Embedder, error) {
	embedder := googlegenai.GoogleAIEmbedder(g, cfg.EmbedderModel)
	if embedder == nil {
		return nil, fmt.Errorf("%w: %s", config.ErrInvalidEmbedderModel, cfg.EmbedderModel)
	}
	return embedder, nil
}

// provideBackend builds the configured vector backend. The file backend is
// fatal when its artifact is missing; the service cannot degrade into a
// chatbot with no resource corpus.
func (a *App) provideBackend(ctx context.Context, cfg *config.Config, logger log.Logger) (rag.Searcher, api.ReadyChecker, error) {
	switch cfg.Backend {
	case config.BackendFile:
		index, err := knowledge.LoadIndex(cfg.IndexPath, logger)
		if err != nil {
			return nil, nil, fmt.Errorf("loading vector index: %w", err)
		}
		warnModelMismatch(logger, index.Model(), cfg.EmbedderModel)
		return index, index, nil

	case config.BackendPostgres:
		if err := db.Migrate(cfg.PostgresURL(), logger); err != nil {
			return nil, nil, fmt.Errorf("migrating database: %w", err)
		}
		pool, err := knowledge.OpenPool(ctx, cfg.PostgresURL())
		if err != nil {
			return nil, nil, err
		}
		a.Pool = pool
		store := knowledge.NewPgStore(pool, cfg.EmbedderModel, logger)
		return store, store, nil

	default:
		return nil, nil, fmt.Errorf("%w: %s", config.ErrInvalidBackend, cfg.Backend)
	}
}

// warnModelMismatch flags an index built with a different embedding model.
// Distances between mismatched embedding spaces are meaningless.
func warnModelMismatch(logger log.Logger, indexModel, configured string) {
	if indexModel != "" && indexModel != configured {
		logger.Warn("index was built with a different embedding model",
			"index_model", indexModel, "configured_model", configured)
	}
}
