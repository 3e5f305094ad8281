package cmd

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/Nazmul0005/simple-chatbot-rag-conversational/api"
	"github.com/Nazmul0005/simple-chatbot-rag-conversational/internal/app"
	"github.com/Nazmul0005/simple-chatbot-rag-conversational/internal/config"
	"github.com/Nazmul0005/simple-chatbot-rag-conversational/internal/log"
)

var serveAddr string

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the HTTP API server",
	RunE: func(cmd *cobra.Command, args []string) error {
		return runServe()
	},
}

func init() {
	serveCmd.Flags().StringVar(&serveAddr, "addr", "",
		"listen address (overrides configuration)")
	rootCmd.AddCommand(serveCmd)
}

// runServe initializes and starts the HTTP API server, blocking until
// SIGINT or SIGTERM.
func runServe() error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}

	logger := log.New(log.Config{
		Level: levelFromEnv(),
		JSON:  os.Getenv("SORA_LOG_FORMAT") == "json",
	})

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	logger.Info("starting sora", "version", AppVersion)

	a, err := app.Setup(ctx, cfg, logger)
	if err != nil {
		return fmt.Errorf("initializing application: %w", err)
	}
	defer a.Close()

	server, err := api.NewServer(api.ServerConfig{
		Chat:    a.Chat,
		Titles:  a.Titles,
		Checker: a.Checker,
		Logger:  logger,
	})
	if err != nil {
		return fmt.Errorf("creating server: %w", err)
	}

	addr := serveAddr
	if addr == "" {
		addr = cfg.Addr
	}
	return server.Run(ctx, addr)
}

// levelFromEnv maps SORA_LOG_LEVEL to a log level, defaulting to info.
func levelFromEnv() slog.Level {
	switch strings.ToLower(os.Getenv("SORA_LOG_LEVEL")) {
	case "debug":
		return slog.LevelDebug
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
