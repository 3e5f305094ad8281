// Package title generates three-word session titles from conversation
// history.
package title

import (
	"context"
	"fmt"
	"strings"

	"github.com/firebase/genkit/go/ai"

	"github.com/Nazmul0005/simple-chatbot-rag-conversational/internal/chat"
	"github.com/Nazmul0005/simple-chatbot-rag-conversational/internal/log"
)

// FallbackTitle is returned when generation fails or the model produces
// fewer than three words.
const FallbackTitle = "Chat Session History"

const systemPrompt = `You are an expert at creating concise, descriptive session titles for health and habit-related conversations.
Analyze the conversation and generate EXACTLY 3 words that capture the main health topic or habit discussed.
Rules:
- EXACTLY 3 words only
- Use title case (capitalize each word)
- Be specific and descriptive about the health/habit topic
- No punctuation or special characters
- Focus on the primary health concern or habit being addressed
- Prefer actionable or condition-specific terms (e.g., "Quit Smoking Plan", "Sleep Schedule Fix", "Reduce Sugar Intake")
Respond with ONLY the 3-word title, nothing else.`

// Service generates titles. Safe for concurrent use.
type Service struct {
	generator chat.Generator
	logger    log.Logger
}

// NewService builds a title service on top of generator, typically a
// lighter model than the chat pipeline uses.
func NewService(generator chat.Generator, logger log.Logger) *Service {
	if logger == nil {
		logger = log.NewNop()
	}
	return &Service{generator: generator, logger: logger}
}

// Generate produces a three-word title for the conversation. Generation
// never fails the caller: any error or malformed output degrades to
// FallbackTitle.
func (s *Service) Generate(ctx context.Context, history []chat.Turn) string {
	prompt := fmt.Sprintf("Conversation:\n%s\n\nGenerate a 3-word title:",
		formatHistory(history))

	raw, err := s.generator.Generate(ctx, systemPrompt,
		[]*ai.Message{ai.NewUserMessage(ai.NewTextPart(prompt))})
	if err != nil {
		s.logger.Warn("title generation failed, using fallback", "error", err)
		return FallbackTitle
	}

	title := strings.TrimSpace(raw)
	words := strings.Fields(title)
	switch {
	case len(words) > 3:
		return strings.Join(words[:3], " ")
	case len(words) < 3:
		return FallbackTitle
	default:
		return strings.Join(words, " ")
	}
}

// formatHistory renders turns as "Role: content" lines, matching the shape
// the title prompt describes.
func formatHistory(history []chat.Turn) string {
	lines := make([]string, 0, len(history))
	for _, t := range history {
		role := string(t.Role)
		if role != "" {
			role = strings.ToUpper(role[:1]) + role[1:]
		}
		lines = append(lines, role+": "+t.Content)
	}
	return strings.Join(lines, "\n")
}
