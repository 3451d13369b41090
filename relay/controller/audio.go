package controller

import (
	"context"
	"encoding/base64"
	"net/http"
	"strings"

	"github.com/pixelforge/pixelforge/common/config"
	"github.com/pixelforge/pixelforge/common/logger"
	"github.com/pixelforge/pixelforge/relay/channel"
	"github.com/pixelforge/pixelforge/relay/channel/openai"
	"github.com/pixelforge/pixelforge/relay/constant"
	"github.com/pixelforge/pixelforge/relay/model"
	"github.com/pixelforge/pixelforge/relay/util"
)

const transcriptionFailedMessage = "Failed to process audio"

// Transcriber forwards base64 audio to the transcription provider.
type Transcriber struct {
	BaseURL    string
	APIKey     string
	NewAdaptor func() channel.AudioAdaptor
}

func NewOpenAITranscriber() *Transcriber {
	return &Transcriber{
		BaseURL: strings.TrimSuffix(config.OpenAIBaseURL, "/"),
		APIKey:  config.OpenAIAPIKey,
		NewAdaptor: func() channel.AudioAdaptor {
			return &openai.Adaptor{}
		},
	}
}

// Transcribe returns the provider response untouched on success. Every
// failure collapses into one 500 error; the cause is only logged.
func (t *Transcriber) Transcribe(ctx context.Context, request *model.TranscriptionRequest) (*model.TranscriptionResponse, *model.ErrorWithStatusCode) {
	fail := func(reason string) *model.ErrorWithStatusCode {
		logger.Errorf(ctx, "error processing audio: %s", reason)
		return model.NewErrorWithStatusCode(transcriptionFailedMessage, model.ErrorTypeInternal, http.StatusInternalServerError)
	}
	if request == nil || request.Audio == "" {
		return nil, fail("audio is empty")
	}
	audio, err := base64.StdEncoding.DecodeString(request.Audio)
	if err != nil {
		return nil, fail("invalid base64 audio: " + err.Error())
	}
	adaptor := t.NewAdaptor()
	meta := util.NewRelayMeta(constant.RelayModeAudioTranscription, 0, t.BaseURL, t.APIKey)
	response, err := channel.RunTranscription(ctx, adaptor, meta, audio)
	if err != nil {
		return nil, fail(err.Error())
	}
	logger.Infof(ctx, "transcribed %d bytes of audio with %s on %s channel", len(audio), meta.ActualModelName, adaptor.GetChannelName())
	return response, nil
}
