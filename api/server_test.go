package api

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/firebase/genkit/go/ai"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/time/rate"

	"github.com/Nazmul0005/simple-chatbot-rag-conversational/internal/chat"
	"github.com/Nazmul0005/simple-chatbot-rag-conversational/internal/rag"
	"github.com/Nazmul0005/simple-chatbot-rag-conversational/internal/title"
)

type stubGenerator struct {
	response string
	err      error
}

func (s *stubGenerator) Generate(context.Context, string, []*ai.Message) (string, error) {
	if s.err != nil {
		return "", s.err
	}
	return s.response, nil
}

type stubSearcher struct {
	outcome rag.Outcome
}

func (s *stubSearcher) Search(context.Context, string, int) rag.Outcome {
	return s.outcome
}

type stubChecker struct {
	err error
}

func (s *stubChecker) Ready(context.Context) error { return s.err }

func newTestServer(t *testing.T, gen chat.Generator, checker ReadyChecker) *Server {
	t.Helper()

	c, err := chat.New(chat.Config{
		Generator:   gen,
		Searcher:    &stubSearcher{},
		RetryConfig: chat.RetryConfig{MaxRetries: 0, InitialInterval: time.Millisecond},
		RateLimiter: rate.NewLimiter(rate.Inf, 1),
	})
	require.NoError(t, err)

	srv, err := NewServer(ServerConfig{
		Chat:    c,
		Titles:  title.NewService(gen, nil),
		Checker: checker,
	})
	require.NoError(t, err)
	return srv
}

func postJSON(t *testing.T, handler http.Handler, path, body string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)
	return rec
}

func TestChatEndpoint(t *testing.T) {
	srv := newTestServer(t, &stubGenerator{response: "Small steps add up!"}, &stubChecker{})
	handler := srv.Handler()

	rec := postJSON(t, handler, "/api/v1/ai_chat",
		`{"query": "help me build a running habit", "history": [{"role": "user", "content": "hi"}, {"role": "assistant", "content": "hey!"}]}`)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.NotEmpty(t, rec.Header().Get("X-Request-ID"))

	var resp ChatResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, "help me build a running habit", resp.Query)
	assert.Equal(t, "Small steps add up!", resp.Response)
}

func TestChatEndpointValidation(t *testing.T) {
	srv := newTestServer(t, &stubGenerator{response: "ok"}, &stubChecker{})
	handler := srv.Handler()

	tests := []struct {
		name   string
		body   string
		detail string
	}{
		{"malformed json", `{"query": `, "invalid request body"},
		{"empty query", `{"query": "   "}`, "query cannot be empty"},
		{"missing query", `{"history": []}`, "query cannot be empty"},
		{"bad role", `{"query": "hi", "history": [{"role": "system", "content": "x"}]}`,
			"Role must be either 'user' or 'assistant'"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := postJSON(t, handler, "/api/v1/ai_chat", tt.body)
			assert.Equal(t, http.StatusBadRequest, rec.Code)

			var resp ErrorResponse
			require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
			assert.Equal(t, tt.detail, resp.Detail)
		})
	}
}

func TestChatEndpointErrorMapping(t *testing.T) {
	tests := []struct {
		name       string
		err        error
		wantStatus int
		wantDetail string
	}{
		{"invalid api key", errors.New("API key not valid. Please pass a valid API key."),
			http.StatusInternalServerError, msgConfigError},
		{"quota exhausted", errors.New("googleapi: quota exceeded"),
			http.StatusTooManyRequests, msgRateLimited},
		{"timeout", errors.New("context deadline exceeded: timeout"),
			http.StatusGatewayTimeout, msgTimeout},
		{"unknown", errors.New("something odd happened"),
			http.StatusInternalServerError, msgGeneric},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv := newTestServer(t, &stubGenerator{err: tt.err}, &stubChecker{})
			rec := postJSON(t, srv.Handler(), "/api/v1/ai_chat", `{"query": "hello"}`)

			assert.Equal(t, tt.wantStatus, rec.Code)

			var resp ErrorResponse
			require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
			assert.Equal(t, tt.wantDetail, resp.Detail)
			assert.NotContains(t, resp.Detail, tt.err.Error(),
				"provider details must not leak to clients")
		})
	}
}

func TestTitleEndpoint(t *testing.T) {
	srv := newTestServer(t, &stubGenerator{response: "Quit Smoking Plan"}, &stubChecker{})

	rec := postJSON(t, srv.Handler(), "/api/v1/session-title",
		`{"history": [{"role": "user", "content": "I want to quit smoking"}]}`)

	require.Equal(t, http.StatusOK, rec.Code)

	var resp TitleResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, "Quit Smoking Plan", resp.SessionTitle)
}

func TestTitleEndpointFallsBackOnGeneratorError(t *testing.T) {
	srv := newTestServer(t, &stubGenerator{err: errors.New("boom")}, &stubChecker{})

	rec := postJSON(t, srv.Handler(), "/api/v1/session-title",
		`{"history": [{"role": "user", "content": "hi"}]}`)

	require.Equal(t, http.StatusOK, rec.Code, "title generation degrades, never fails")

	var resp TitleResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, title.FallbackTitle, resp.SessionTitle)
}

func TestTitleEndpointValidation(t *testing.T) {
	srv := newTestServer(t, &stubGenerator{response: "A B C"}, &stubChecker{})
	handler := srv.Handler()

	rec := postJSON(t, handler, "/api/v1/session-title", `{"history": []}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = postJSON(t, handler, "/api/v1/session-title",
		`{"history": [{"role": "tool", "content": "x"}]}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestHealthEndpoints(t *testing.T) {
	srv := newTestServer(t, &stubGenerator{response: "ok"}, &stubChecker{})
	handler := srv.Handler()

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/health", nil))
	assert.Equal(t, http.StatusOK, rec.Code)

	rec = httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/ready", nil))
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestReadyEndpointFailure(t *testing.T) {
	srv := newTestServer(t, &stubGenerator{response: "ok"},
		&stubChecker{err: errors.New("index empty")})

	rec := httptest.NewRecorder()
	srv.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/ready", nil))
	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
}

func TestNewServerRequiresDependencies(t *testing.T) {
	_, err := NewServer(ServerConfig{})
	assert.Error(t, err)
}
