package channel

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"

	"github.com/pixelforge/pixelforge/relay/model"
	"github.com/pixelforge/pixelforge/relay/util"
)

type requestHeaderSetter interface {
	GetRequestURL(meta *util.RelayMeta) (string, error)
	SetupRequestHeader(req *http.Request, meta *util.RelayMeta) error
}

// DoRequestHelper posts requestBody to the adaptor's URL. The request is bound
// to ctx, so cancelling ctx aborts the upstream call.
func DoRequestHelper(a requestHeaderSetter, ctx context.Context, meta *util.RelayMeta, requestBody io.Reader) (*http.Response, error) {
	fullRequestURL, err := a.GetRequestURL(meta)
	if err != nil {
		return nil, fmt.Errorf("get request url failed: %w", err)
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, fullRequestURL, requestBody)
	if err != nil {
		return nil, fmt.Errorf("new request failed: %w", err)
	}
	err = a.SetupRequestHeader(req, meta)
	if err != nil {
		return nil, fmt.Errorf("setup request header failed: %w", err)
	}
	resp, err := DoRequest(req)
	if err != nil {
		return nil, fmt.Errorf("do request failed: %w", err)
	}
	return resp, nil
}

func DoRequest(req *http.Request) (*http.Response, error) {
	resp, err := util.HTTPClient.Do(req)
	if err != nil {
		return nil, err
	}
	if resp == nil {
		return nil, errors.New("resp is nil")
	}
	return resp, nil
}

// RunImage performs one full provider round trip for request.
func RunImage(ctx context.Context, a ImageAdaptor, meta *util.RelayMeta, request *model.GenerationRequest) (any, error) {
	a.Init(meta)
	convertedRequest, err := a.ConvertImageRequest(request)
	if err != nil {
		return nil, fmt.Errorf("convert request failed: %w", err)
	}
	jsonData, err := json.Marshal(convertedRequest)
	if err != nil {
		return nil, fmt.Errorf("marshal request failed: %w", err)
	}
	resp, err := a.DoRequest(ctx, meta, bytes.NewBuffer(jsonData))
	if err != nil {
		return nil, err
	}
	return a.DoResponse(ctx, resp, meta)
}

// RunTranscription performs one full transcription round trip.
func RunTranscription(ctx context.Context, a AudioAdaptor, meta *util.RelayMeta, audio []byte) (*model.TranscriptionResponse, error) {
	a.Init(meta)
	body, contentType, err := a.ConvertTranscriptionRequest(audio)
	if err != nil {
		return nil, fmt.Errorf("convert request failed: %w", err)
	}
	fullRequestURL, err := a.GetRequestURL(meta)
	if err != nil {
		return nil, fmt.Errorf("get request url failed: %w", err)
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, fullRequestURL, body)
	if err != nil {
		return nil, fmt.Errorf("new request failed: %w", err)
	}
	if err = a.SetupRequestHeader(req, meta); err != nil {
		return nil, fmt.Errorf("setup request header failed: %w", err)
	}
	req.Header.Set("Content-Type", contentType)
	resp, err := DoRequest(req)
	if err != nil {
		return nil, fmt.Errorf("do request failed: %w", err)
	}
	return a.DoResponse(ctx, resp, meta)
}
