package util

import (
	"io"
	"net/http"
	"strings"
	"testing"

	relaymodel "github.com/pixelforge/pixelforge/relay/model"
	"github.com/stretchr/testify/assert"
)

func newResponse(statusCode int, body string) *http.Response {
	return &http.Response{
		StatusCode: statusCode,
		Body:       io.NopCloser(strings.NewReader(body)),
	}
}

func TestRelayErrorHandler(t *testing.T) {
	tests := []struct {
		name       string
		statusCode int
		body       string
		message    string
		errType    string
	}{
		{
			name:       "openai error object",
			statusCode: http.StatusBadRequest,
			body:       `{"error":{"message":"Invalid file format.","type":"invalid_request_error"}}`,
			message:    "Invalid file format.",
			errType:    "invalid_request_error",
		},
		{
			name:       "problem details prefers detail",
			statusCode: http.StatusUnprocessableEntity,
			body:       `{"title":"Input validation failed","detail":"prompt is required","status":422}`,
			message:    "prompt is required",
			errType:    relaymodel.ErrorTypeUpstream,
		},
		{
			name:       "problem details title only",
			statusCode: http.StatusNotFound,
			body:       `{"title":"Not found"}`,
			message:    "Not found",
			errType:    relaymodel.ErrorTypeUpstream,
		},
		{
			name:       "msg field",
			statusCode: http.StatusInternalServerError,
			body:       `{"msg":"internal"}`,
			message:    "internal",
			errType:    relaymodel.ErrorTypeUpstream,
		},
		{
			name:       "plain text body",
			statusCode: http.StatusBadGateway,
			body:       "upstream connect error",
			message:    "upstream connect error",
			errType:    relaymodel.ErrorTypeUpstream,
		},
		{
			name:       "empty body falls back to status text",
			statusCode: http.StatusTooManyRequests,
			body:       "",
			message:    "too many requests (429): upstream rate limit reached",
			errType:    relaymodel.ErrorTypeUpstream,
		},
		{
			name:       "unknown status without message",
			statusCode: http.StatusTeapot,
			body:       `{}`,
			message:    "upstream error (status code: 418)",
			errType:    relaymodel.ErrorTypeUpstream,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			errWithCode := RelayErrorHandler(newResponse(tt.statusCode, tt.body))
			assert.Equal(t, tt.statusCode, errWithCode.StatusCode)
			assert.Equal(t, tt.message, errWithCode.Error.Message)
			assert.Equal(t, tt.errType, errWithCode.Error.Type)
		})
	}
}

func TestNewRelayMeta(t *testing.T) {
	meta := NewRelayMeta(1, 7, "https://api.example.com", "key")
	assert.Equal(t, 1, meta.Mode)
	assert.Equal(t, 7, meta.UserId)
	assert.Equal(t, "https://api.example.com", meta.BaseURL)
	assert.Equal(t, "key", meta.APIKey)
	assert.False(t, meta.StartTime.IsZero())
}
