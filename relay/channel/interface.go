package channel

import (
	"context"
	"io"
	"net/http"

	"github.com/pixelforge/pixelforge/relay/model"
	"github.com/pixelforge/pixelforge/relay/util"
)

// ImageAdaptor talks to one image generation provider.
type ImageAdaptor interface {
	Init(meta *util.RelayMeta)
	GetRequestURL(meta *util.RelayMeta) (string, error)
	SetupRequestHeader(req *http.Request, meta *util.RelayMeta) error
	ConvertImageRequest(request *model.GenerationRequest) (any, error)
	DoRequest(ctx context.Context, meta *util.RelayMeta, requestBody io.Reader) (*http.Response, error)
	// DoResponse returns the provider output exactly as decoded from JSON.
	DoResponse(ctx context.Context, resp *http.Response, meta *util.RelayMeta) (output any, err error)
	GetModelList() []string
	GetChannelName() string
}

// AudioAdaptor talks to one transcription provider.
type AudioAdaptor interface {
	Init(meta *util.RelayMeta)
	GetRequestURL(meta *util.RelayMeta) (string, error)
	SetupRequestHeader(req *http.Request, meta *util.RelayMeta) error
	// ConvertTranscriptionRequest returns the encoded body and its content type.
	ConvertTranscriptionRequest(audio []byte) (body io.Reader, contentType string, err error)
	DoResponse(ctx context.Context, resp *http.Response, meta *util.RelayMeta) (*model.TranscriptionResponse, error)
	GetChannelName() string
}
