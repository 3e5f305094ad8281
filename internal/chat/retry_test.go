package chat

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/time/rate"
)

func TestRetryableError(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want bool
	}{
		{"nil", nil, false},
		{"rate limit", errors.New("googleapi: rate limit exceeded"), true},
		{"quota", errors.New("Quota Exceeded for project"), true},
		{"http 429", errors.New("unexpected status 429"), true},
		{"resource exhausted", errors.New("rpc error: RESOURCE_EXHAUSTED"), true},
		{"server error", errors.New("503 Service Unavailable"), true},
		{"timeout", errors.New("context deadline exceeded: timeout"), true},
		{"connection reset", errors.New("read: connection reset by peer"), true},
		{"bad api key", errors.New("API key not valid. Please pass a valid API key."), false},
		{"validation", errors.New("invalid request payload"), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, retryableError(tt.err))
		})
	}
}

func retryTestChat(t *testing.T, cfg RetryConfig) *Chat {
	t.Helper()
	c, err := New(Config{
		Generator:   &mockGenerator{response: "ok"},
		Searcher:    &mockSearcher{},
		RetryConfig: cfg,
		RateLimiter: rate.NewLimiter(rate.Inf, 1),
	})
	require.NoError(t, err)
	return c
}

func TestGenerateWithRetryRecoversFromTransientError(t *testing.T) {
	c := retryTestChat(t, RetryConfig{
		MaxRetries:      2,
		InitialInterval: time.Millisecond,
		MaxInterval:     5 * time.Millisecond,
	})

	calls := 0
	text, err := c.generateWithRetry(context.Background(), func(context.Context) (string, error) {
		calls++
		if calls < 3 {
			return "", errors.New("503 Service Unavailable")
		}
		return "recovered", nil
	})

	require.NoError(t, err)
	assert.Equal(t, "recovered", text)
	assert.Equal(t, 3, calls)
}

func TestGenerateWithRetryStopsOnPermanentError(t *testing.T) {
	c := retryTestChat(t, RetryConfig{
		MaxRetries:      3,
		InitialInterval: time.Millisecond,
		MaxInterval:     5 * time.Millisecond,
	})

	calls := 0
	_, err := c.generateWithRetry(context.Background(), func(context.Context) (string, error) {
		calls++
		return "", errors.New("API key not valid")
	})

	require.Error(t, err)
	assert.Equal(t, 1, calls)
}

func TestGenerateWithRetryExhaustsAttempts(t *testing.T) {
	c := retryTestChat(t, RetryConfig{
		MaxRetries:      2,
		InitialInterval: time.Millisecond,
		MaxInterval:     2 * time.Millisecond,
	})

	calls := 0
	_, err := c.generateWithRetry(context.Background(), func(context.Context) (string, error) {
		calls++
		return "", errors.New("429 too many requests")
	})

	require.Error(t, err)
	assert.Equal(t, 3, calls, "initial attempt plus two retries")
	assert.Contains(t, err.Error(), "429")
}

func TestGenerateWithRetryHonorsContextCancellation(t *testing.T) {
	c := retryTestChat(t, RetryConfig{
		MaxRetries:      5,
		InitialInterval: time.Hour, // never elapses, cancellation must win
		MaxInterval:     time.Hour,
	})

	ctx, cancel := context.WithCancel(context.Background())
	go func() {
		time.Sleep(10 * time.Millisecond)
		cancel()
	}()

	_, err := c.generateWithRetry(ctx, func(context.Context) (string, error) {
		return "", errors.New("503 Service Unavailable")
	})

	require.Error(t, err)
	assert.ErrorIs(t, err, context.Canceled)
}
