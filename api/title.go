package api

import (
	"encoding/json"
	"net/http"

	"github.com/Nazmul0005/simple-chatbot-rag-conversational/internal/chat"
	"github.com/Nazmul0005/simple-chatbot-rag-conversational/internal/log"
	"github.com/Nazmul0005/simple-chatbot-rag-conversational/internal/title"
)

// TitleRequest is the POST /api/v1/session-title request body.
type TitleRequest struct {
	History []Message `json:"history"`
}

// TitleResponse carries the generated three-word title.
type TitleResponse struct {
	SessionTitle string `json:"session_title"`
}

// TitleHandler handles session title generation.
type TitleHandler struct {
	titles *title.Service
	logger log.Logger
}

// NewTitleHandler creates a title handler.
func NewTitleHandler(s *title.Service, logger log.Logger) *TitleHandler {
	return &TitleHandler{titles: s, logger: logger}
}

// RegisterRoutes registers title routes on the given mux.
func (h *TitleHandler) RegisterRoutes(mux *http.ServeMux) {
	mux.HandleFunc("POST /api/v1/session-title", h.handleTitle)
}

func (h *TitleHandler) handleTitle(w http.ResponseWriter, r *http.Request) {
	var req TitleRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if len(req.History) == 0 {
		writeError(w, http.StatusBadRequest, "history cannot be empty")
		return
	}

	history := make([]chat.Turn, 0, len(req.History))
	for _, m := range req.History {
		switch m.Role {
		case string(chat.RoleUser), string(chat.RoleAssistant):
		default:
			writeError(w, http.StatusBadRequest, "Role must be either 'user' or 'assistant'")
			return
		}
		history = append(history, chat.Turn{Role: chat.Role(m.Role), Content: m.Content})
	}

	sessionTitle := h.titles.Generate(r.Context(), history)

	h.logger.Info("session title generated",
		"title", sessionTitle,
		"request_id", requestIDFromContext(r.Context()))

	writeJSON(w, http.StatusOK, TitleResponse{SessionTitle: sessionTitle})
}
