// Package chat implements the conversational pipeline: classify the query,
// retrieve professional resources when the category calls for it, build the
// persona prompt, and generate a reply with retry protection.
package chat

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/firebase/genkit/go/ai"
	"golang.org/x/time/rate"

	"github.com/Nazmul0005/simple-chatbot-rag-conversational/internal/classify"
	"github.com/Nazmul0005/simple-chatbot-rag-conversational/internal/log"
	"github.com/Nazmul0005/simple-chatbot-rag-conversational/internal/rag"
)

// DefaultTopK is how many chunks retrieval asks the backend for per turn.
const DefaultTopK = 3

// fallbackResponseMessage is returned when the model produces an empty reply.
const fallbackResponseMessage = "I apologize, but I couldn't generate a response. Please try rephrasing your question."

// ErrProcessFailed indicates the pipeline could not produce a reply.
var ErrProcessFailed = errors.New("chat processing failed")

// Role identifies who authored a conversation turn.
type Role string

const (
	RoleUser      Role = "user"
	RoleAssistant Role = "assistant"
)

// Turn is one prior message of the conversation, oldest first.
type Turn struct {
	Role    Role
	Content string
}

// Generator abstracts the model call so the pipeline can be tested without
// a live provider.
type Generator interface {
	Generate(ctx context.Context, system string, messages []*ai.Message) (string, error)
}

// ResourceSearcher is the retrieval capability the pipeline consumes.
type ResourceSearcher interface {
	Search(ctx context.Context, query string, topK int) rag.Outcome
}

// Config contains all required parameters for the chat pipeline.
type Config struct {
	Generator Generator
	Searcher  ResourceSearcher
	Logger    log.Logger

	TopK int // chunks requested per retrieval (0 = DefaultTopK)

	RetryConfig RetryConfig   // zero-value uses defaults
	RateLimiter *rate.Limiter // nil = use default
}

func (cfg Config) validate() error {
	if cfg.Generator == nil {
		return errors.New("generator is required")
	}
	if cfg.Searcher == nil {
		return errors.New("resource searcher is required")
	}
	return nil
}

// Result is the outcome of one processed turn.
type Result struct {
	Response  string
	Category  classify.Category
	Resources []rag.Hit // resources that informed the reply, empty when none
}

// Chat runs the pipeline. Safe for concurrent use.
type Chat struct {
	generator   Generator
	searcher    ResourceSearcher
	topK        int
	retryConfig RetryConfig
	rateLimiter *rate.Limiter
	logger      log.Logger
}

// New validates cfg and builds the pipeline.
func New(cfg Config) (*Chat, error) {
	if err := cfg.validate(); err != nil {
		return nil, err
	}

	logger := cfg.Logger
	if logger == nil {
		logger = log.NewNop()
	}
	topK := cfg.TopK
	if topK <= 0 {
		topK = DefaultTopK
	}
	retryConfig := cfg.RetryConfig
	if retryConfig.MaxRetries == 0 && retryConfig.InitialInterval == 0 {
		retryConfig = DefaultRetryConfig()
	}
	rl := cfg.RateLimiter
	if rl == nil {
		rl = rate.NewLimiter(10, 30)
	}

	return &Chat{
		generator:   cfg.Generator,
		searcher:    cfg.Searcher,
		topK:        topK,
		retryConfig: retryConfig,
		rateLimiter: rl,
		logger:      logger,
	}, nil
}

// Process runs one conversational turn. History is the prior conversation,
// oldest first; query is the new user message.
//
// Retrieval is best-effort: a failed or empty retrieval degrades to the
// plain persona prompt instead of failing the turn.
func (c *Chat) Process(ctx context.Context, query string, history []Turn) (Result, error) {
	query = strings.TrimSpace(query)
	if query == "" {
		return Result{}, fmt.Errorf("%w: empty query", ErrProcessFailed)
	}

	category := classify.Classify(query)
	c.logger.Debug("query classified", "category", category)

	var hits []rag.Hit
	if category.NeedsRetrieval() {
		hits = c.retrieve(ctx, query, category)
	}

	contextBlock := rag.FormatContext(hits)
	system := systemPrompt(contextBlock)
	messages := buildMessages(history, query)

	text, err := c.generateWithRetry(ctx, func(ctx context.Context) (string, error) {
		return c.generator.Generate(ctx, system, messages)
	})
	if err != nil {
		return Result{}, fmt.Errorf("%w: %w", ErrProcessFailed, err)
	}

	text = strings.TrimSpace(text)
	if text == "" {
		c.logger.Warn("model returned empty response, using fallback")
		text = fallbackResponseMessage
	}

	return Result{Response: text, Category: category, Resources: hits}, nil
}

// retrieve searches with the category-enhanced query, falling back to the
// raw query once when the enhanced form surfaces nothing.
func (c *Chat) retrieve(ctx context.Context, query string, category classify.Category) []rag.Hit {
	enhanced := classify.Enhance(query, category)
	out := c.searcher.Search(ctx, enhanced, c.topK)
	if out.Err != nil {
		return nil
	}
	if len(out.Hits) == 0 && enhanced != query {
		c.logger.Debug("enhanced query found nothing, retrying raw query")
		out = c.searcher.Search(ctx, query, c.topK)
		if out.Err != nil {
			return nil
		}
	}
	return out.Hits
}

// buildMessages converts history plus the current query into model messages.
// Unknown roles are treated as user turns.
func buildMessages(history []Turn, query string) []*ai.Message {
	messages := make([]*ai.Message, 0, len(history)+1)
	for _, t := range history {
		switch t.Role {
		case RoleAssistant:
			messages = append(messages, ai.NewModelMessage(ai.NewTextPart(t.Content)))
		default:
			messages = append(messages, ai.NewUserMessage(ai.NewTextPart(t.Content)))
		}
	}
	messages = append(messages, ai.NewUserMessage(ai.NewTextPart(query)))
	return messages
}
