// Package app wires configuration, the Genkit runtime, the vector backend,
// and the services into a runnable application.
package app

import (
	"github.com/firebase/genkit/go/genkit"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/Nazmul0005/simple-chatbot-rag-conversational/api"
	"github.com/Nazmul0005/simple-chatbot-rag-conversational/internal/chat"
	"github.com/Nazmul0005/simple-chatbot-rag-conversational/internal/config"
	"github.com/Nazmul0005/simple-chatbot-rag-conversational/internal/log"
	"github.com/Nazmul0005/simple-chatbot-rag-conversational/internal/title"
)

// App holds the assembled application.
type App struct {
	Config *config.Config
	Logger log.Logger

	Genkit *genkit.Genkit
	Chat   *chat.Chat
	Titles *title.Service

	// Checker is the vector backend, exposed for the readiness probe.
	Checker api.ReadyChecker

	// Pool is non-nil only for the postgres backend.
	Pool *pgxpool.Pool
}

// Close releases held resources.
func (a *App) Close() {
	if a.Pool != nil {
		a.Pool.Close()
	}
}
