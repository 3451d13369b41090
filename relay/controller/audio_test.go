package controller

import (
	"context"
	"encoding/base64"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/pixelforge/pixelforge/relay/channel"
	"github.com/pixelforge/pixelforge/relay/channel/openai"
	"github.com/pixelforge/pixelforge/relay/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestTranscriber(baseURL string) *Transcriber {
	return &Transcriber{
		BaseURL: baseURL,
		APIKey:  "sk-test",
		NewAdaptor: func() channel.AudioAdaptor {
			return &openai.Adaptor{Model: "whisper-1"}
		},
	}
}

func TestTranscribePassesResponseThrough(t *testing.T) {
	var received []byte
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if file, _, err := r.FormFile("file"); assert.NoError(t, err) {
			received, _ = io.ReadAll(file)
			_ = file.Close()
		}
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"text":"hello there","extra":{"kept":true}}`))
	}))
	defer server.Close()

	audio := base64.StdEncoding.EncodeToString([]byte("RIFF....WAVEfmt "))
	response, errWithCode := newTestTranscriber(server.URL).Transcribe(context.Background(), &model.TranscriptionRequest{Audio: audio})
	require.Nil(t, errWithCode)
	assert.Equal(t, http.StatusOK, response.StatusCode)
	assert.Equal(t, "application/json", response.ContentType)
	assert.Equal(t, `{"text":"hello there","extra":{"kept":true}}`, string(response.Body))
	assert.Equal(t, "RIFF....WAVEfmt ", string(received))
}

func TestTranscribeFailures(t *testing.T) {
	var calls int
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls++
		w.WriteHeader(http.StatusInternalServerError)
		_, _ = w.Write([]byte(`{"error":{"message":"server overloaded"}}`))
	}))
	defer server.Close()

	tests := []struct {
		name    string
		request *model.TranscriptionRequest
		calls   int
	}{
		{name: "missing body", request: nil, calls: 0},
		{name: "empty audio", request: &model.TranscriptionRequest{}, calls: 0},
		{name: "invalid base64", request: &model.TranscriptionRequest{Audio: "not base64!!"}, calls: 0},
		{name: "upstream failure", request: &model.TranscriptionRequest{Audio: base64.StdEncoding.EncodeToString([]byte("RIFF"))}, calls: 1},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			calls = 0
			response, errWithCode := newTestTranscriber(server.URL).Transcribe(context.Background(), tt.request)
			assert.Nil(t, response)
			require.NotNil(t, errWithCode)
			assert.Equal(t, http.StatusInternalServerError, errWithCode.StatusCode)
			assert.Equal(t, "Failed to process audio", errWithCode.Message)
			assert.Equal(t, tt.calls, calls)
		})
	}
}

func TestTranscribeUnreachableProvider(t *testing.T) {
	server := httptest.NewServer(http.NotFoundHandler())
	baseURL := server.URL
	server.Close()

	audio := base64.StdEncoding.EncodeToString([]byte("RIFF"))
	_, errWithCode := newTestTranscriber(baseURL).Transcribe(context.Background(), &model.TranscriptionRequest{Audio: audio})
	require.NotNil(t, errWithCode)
	assert.Equal(t, "Failed to process audio", errWithCode.Message)
}
