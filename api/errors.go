package api

import (
	"net/http"
	"strings"
)

// User-facing error messages. Provider error details never reach clients.
const (
	msgConfigError = "AI service configuration error. Please contact support."
	msgRateLimited = "Service temporarily unavailable. Please try again later."
	msgTimeout     = "Request timeout. Please try again."
	msgGeneric     = "Unable to process your request. Please try again later."
)

// mapProcessingError translates a pipeline error into an HTTP status and a
// safe client message. Provider SDKs expose no typed errors, so this matches
// on message substrings the same way the retry layer does.
func mapProcessingError(err error) (int, string) {
	if err == nil {
		return http.StatusInternalServerError, msgGeneric
	}
	msg := err.Error()
	lower := strings.ToLower(msg)

	switch {
	case strings.Contains(msg, "API_KEY_INVALID") || strings.Contains(msg, "API key not valid"):
		return http.StatusInternalServerError, msgConfigError
	case strings.Contains(lower, "quota") || strings.Contains(lower, "rate limit") ||
		strings.Contains(lower, "resource_exhausted") || strings.Contains(lower, "429"):
		return http.StatusTooManyRequests, msgRateLimited
	case strings.Contains(lower, "timeout") || strings.Contains(lower, "deadline exceeded"):
		return http.StatusGatewayTimeout, msgTimeout
	default:
		return http.StatusInternalServerError, msgGeneric
	}
}
