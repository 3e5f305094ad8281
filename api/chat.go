package api

import (
	"encoding/json"
	"net/http"

	"github.com/Nazmul0005/simple-chatbot-rag-conversational/internal/chat"
	"github.com/Nazmul0005/simple-chatbot-rag-conversational/internal/log"
)

// Message is one conversation turn on the wire.
type Message struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// ChatRequest is the POST /api/v1/ai_chat request body.
type ChatRequest struct {
	Query   string    `json:"query"`
	History []Message `json:"history"`
}

// ChatResponse echoes the query alongside the generated reply.
type ChatResponse struct {
	Query    string `json:"query"`
	Response string `json:"response"`
}

// ChatHandler handles the conversational endpoint. The endpoint is
// stateless: clients carry the conversation history themselves.
type ChatHandler struct {
	chat   *chat.Chat
	logger log.Logger
}

// NewChatHandler creates a chat handler backed by the pipeline.
func NewChatHandler(c *chat.Chat, logger log.Logger) *ChatHandler {
	return &ChatHandler{chat: c, logger: logger}
}

// RegisterRoutes registers chat routes on the given mux.
func (h *ChatHandler) RegisterRoutes(mux *http.ServeMux) {
	mux.HandleFunc("POST /api/v1/ai_chat", h.handleChat)
}

func (h *ChatHandler) handleChat(w http.ResponseWriter, r *http.Request) {
	var req ChatRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	history, errMsg := validateChatRequest(req)
	if errMsg != "" {
		writeError(w, http.StatusBadRequest, errMsg)
		return
	}

	result, err := h.chat.Process(r.Context(), req.Query, history)
	if err != nil {
		h.logger.Error("chat processing failed",
			"error", err,
			"request_id", requestIDFromContext(r.Context()))
		status, msg := mapProcessingError(err)
		writeError(w, status, msg)
		return
	}

	h.logger.Info("chat turn completed",
		"category", result.Category,
		"resources", len(result.Resources),
		"request_id", requestIDFromContext(r.Context()))

	writeJSON(w, http.StatusOK, ChatResponse{
		Query:    req.Query,
		Response: result.Response,
	})
}

// validateChatRequest checks the request shape and converts the history.
// Returns a non-empty message describing the first violation found.
func validateChatRequest(req ChatRequest) ([]chat.Turn, string) {
	if !hasContent(req.Query) {
		return nil, "query cannot be empty"
	}

	history := make([]chat.Turn, 0, len(req.History))
	for _, m := range req.History {
		switch m.Role {
		case string(chat.RoleUser), string(chat.RoleAssistant):
		default:
			return nil, "Role must be either 'user' or 'assistant'"
		}
		history = append(history, chat.Turn{Role: chat.Role(m.Role), Content: m.Content})
	}
	return history, ""
}

func hasContent(s string) bool {
	for _, r := range s {
		if r != ' ' && r != '\t' && r != '\n' && r != '\r' {
			return true
		}
	}
	return false
}
