package openai

import (
	"context"
	"io"
	"mime"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/pixelforge/pixelforge/relay/channel"
	"github.com/pixelforge/pixelforge/relay/constant"
	"github.com/pixelforge/pixelforge/relay/util"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestConvertTranscriptionRequest(t *testing.T) {
	a := &Adaptor{Model: "whisper-1"}
	body, contentType, err := a.ConvertTranscriptionRequest([]byte("RIFFdata"))
	require.NoError(t, err)

	mediaType, params, err := mime.ParseMediaType(contentType)
	require.NoError(t, err)
	assert.Equal(t, "multipart/form-data", mediaType)

	reader := multipart.NewReader(body, params["boundary"])
	part, err := reader.NextPart()
	require.NoError(t, err)
	assert.Equal(t, "file", part.FormName())
	assert.Equal(t, TranscriptionFileName, part.FileName())
	assert.Equal(t, TranscriptionContentType, part.Header.Get("Content-Type"))
	data, err := io.ReadAll(part)
	require.NoError(t, err)
	assert.Equal(t, "RIFFdata", string(data))

	part, err = reader.NextPart()
	require.NoError(t, err)
	assert.Equal(t, "model", part.FormName())
	data, err = io.ReadAll(part)
	require.NoError(t, err)
	assert.Equal(t, "whisper-1", string(data))

	_, err = reader.NextPart()
	assert.Equal(t, io.EOF, err)
}

func TestConvertTranscriptionRequestEmpty(t *testing.T) {
	_, _, err := (&Adaptor{Model: "whisper-1"}).ConvertTranscriptionRequest(nil)
	assert.Error(t, err)
}

func TestRunTranscriptionPassesBodyThrough(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/v1/audio/transcriptions", r.URL.Path)
		assert.Equal(t, "Bearer sk-test", r.Header.Get("Authorization"))
		assert.NoError(t, r.ParseMultipartForm(1<<20))
		assert.Equal(t, "whisper-1", r.FormValue("model"))
		if file, header, err := r.FormFile("file"); assert.NoError(t, err) {
			defer file.Close()
			assert.Equal(t, "audio.wav", header.Filename)
		}

		w.Header().Set("Content-Type", "application/json; charset=utf-8")
		_, _ = w.Write([]byte(`{"text":"hello world"}`))
	}))
	defer server.Close()

	meta := util.NewRelayMeta(constant.RelayModeAudioTranscription, 0, server.URL, "sk-test")
	response, err := channel.RunTranscription(context.Background(), &Adaptor{Model: "whisper-1"}, meta, []byte("RIFFdata"))
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, response.StatusCode)
	assert.Equal(t, "application/json; charset=utf-8", response.ContentType)
	assert.Equal(t, `{"text":"hello world"}`, string(response.Body))
	assert.Equal(t, "whisper-1", meta.ActualModelName)
}

func TestRunTranscriptionUpstreamError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		_, _ = w.Write([]byte(`{"error":{"message":"Incorrect API key provided","type":"invalid_request_error"}}`))
	}))
	defer server.Close()

	meta := util.NewRelayMeta(constant.RelayModeAudioTranscription, 0, server.URL, "sk-bad")
	_, err := channel.RunTranscription(context.Background(), &Adaptor{Model: "whisper-1"}, meta, []byte("RIFFdata"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "401")
	assert.Contains(t, err.Error(), "Incorrect API key provided")
}

func TestAdaptorChannelName(t *testing.T) {
	assert.Equal(t, "openai", (&Adaptor{}).GetChannelName())
}
