package controller

import (
	"context"
	"encoding/base64"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/pixelforge/pixelforge/common/config"
	"github.com/pixelforge/pixelforge/model"
	"github.com/pixelforge/pixelforge/relay/channel"
	"github.com/pixelforge/pixelforge/relay/channel/openai"
	relaycontroller "github.com/pixelforge/pixelforge/relay/controller"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newFakeDispatcher(output any, err error) *relaycontroller.Dispatcher {
	return relaycontroller.NewDispatcher("google-imagen", time.Second).
		Register("google-imagen", relaycontroller.ImageProviderFunc(func(ctx context.Context, prompt string) (any, error) {
			return output, err
		})).
		Register("ideogram", relaycontroller.ImageProviderFunc(func(ctx context.Context, prompt string) (any, error) {
			return "https://replicate.delivery/ideogram.png", nil
		}))
}

func TestRelayImageGenerate(t *testing.T) {
	tests := []struct {
		name     string
		output   any
		err      error
		body     any
		status   int
		imageUrl string
		errMsg   string
	}{
		{
			name:     "array output",
			output:   []any{"https://replicate.delivery/a.png", "https://replicate.delivery/b.png"},
			body:     map[string]any{"prompt": "a cat"},
			status:   http.StatusOK,
			imageUrl: "https://replicate.delivery/a.png",
		},
		{
			name:     "selected model",
			body:     map[string]any{"prompt": "a cat", "model": "ideogram"},
			status:   http.StatusOK,
			imageUrl: "https://replicate.delivery/ideogram.png",
		},
		{
			name:   "empty prompt",
			body:   map[string]any{"prompt": "  "},
			status: http.StatusBadRequest,
			errMsg: "Prompt is required",
		},
		{
			name:   "unknown model",
			body:   map[string]any{"prompt": "a cat", "model": "midjourney"},
			status: http.StatusBadRequest,
			errMsg: "Unsupported model: midjourney",
		},
		{
			name:   "provider failure",
			err:    errors.New("quota exceeded"),
			body:   map[string]any{"prompt": "a cat"},
			status: http.StatusInternalServerError,
			errMsg: "Error generating image: quota exceeded",
		},
		{
			name:   "unexpected output",
			output: map[string]any{"url": "x"},
			body:   map[string]any{"prompt": "a cat"},
			status: http.StatusInternalServerError,
			errMsg: "Unexpected response format from image generation model",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			engine := newTestEngine(0)
			engine.POST("/api/replicate", RelayImageGenerate(newFakeDispatcher(tt.output, tt.err)))

			w, body := doJSON(t, engine, http.MethodPost, "/api/replicate", tt.body)
			assert.Equal(t, tt.status, w.Code)
			if tt.errMsg != "" {
				assert.Equal(t, map[string]any{"error": tt.errMsg}, body)
				return
			}
			assert.Equal(t, map[string]any{"imageUrl": tt.imageUrl}, body)
		})
	}
}

func TestRelayImageGenerateMalformedBody(t *testing.T) {
	engine := newTestEngine(0)
	engine.POST("/api/replicate", RelayImageGenerate(newFakeDispatcher("u", nil)))

	w, body := doJSON(t, engine, http.MethodPost, "/api/replicate", "{not json")
	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.Contains(t, body["error"], "Image generation failed: ")
}

func TestRelayImageGenerateAutoSave(t *testing.T) {
	setupTestDB(t)
	previous := config.AutoSaveGenerations
	config.AutoSaveGenerations = true
	t.Cleanup(func() { config.AutoSaveGenerations = previous })

	engine := newTestEngine(7)
	engine.POST("/api/replicate", RelayImageGenerate(newFakeDispatcher([]any{"https://replicate.delivery/a.png"}, nil)))

	w, _ := doJSON(t, engine, http.MethodPost, "/api/replicate", map[string]any{"prompt": "a cat"})
	require.Equal(t, http.StatusOK, w.Code)

	assert.Eventually(t, func() bool {
		count, err := model.CountUserImages(7)
		return err == nil && count == 1
	}, 2*time.Second, 10*time.Millisecond)

	images, err := model.GetUserImages(7)
	require.NoError(t, err)
	require.Len(t, images, 1)
	assert.Equal(t, "a cat", images[0].Prompt)
	assert.Equal(t, "google-imagen", images[0].Model)
	assert.Equal(t, "https://replicate.delivery/a.png", images[0].ImageUrl)
}

func TestRelayTranscribe(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"text":"hello","language":"english"}`))
	}))
	defer server.Close()

	transcriber := &relaycontroller.Transcriber{
		BaseURL: server.URL,
		APIKey:  "sk-test",
		NewAdaptor: func() channel.AudioAdaptor {
			return &openai.Adaptor{Model: "whisper-1"}
		},
	}
	engine := newTestEngine(0)
	engine.POST("/api/openai/transcribe", RelayTranscribe(transcriber))

	audio := base64.StdEncoding.EncodeToString([]byte("RIFF"))
	w, _ := doJSON(t, engine, http.MethodPost, "/api/openai/transcribe", map[string]any{"audio": audio})
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, `{"text":"hello","language":"english"}`, w.Body.String())

	for _, body := range []any{"{oops", map[string]any{"audio": "@@@"}, map[string]any{}} {
		w, decoded := doJSON(t, engine, http.MethodPost, "/api/openai/transcribe", body)
		assert.Equal(t, http.StatusInternalServerError, w.Code)
		assert.Equal(t, map[string]any{"error": "Failed to process audio"}, decoded)
	}
}
