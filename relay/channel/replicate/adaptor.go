package replicate

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/pixelforge/pixelforge/common/config"
	"github.com/pixelforge/pixelforge/common/helper"
	"github.com/pixelforge/pixelforge/common/logger"
	"github.com/pixelforge/pixelforge/relay/channel"
	"github.com/pixelforge/pixelforge/relay/model"
	"github.com/pixelforge/pixelforge/relay/util"
	"github.com/pkg/errors"
)

type Adaptor struct {
	PollInterval time.Duration
}

var _ channel.ImageAdaptor = (*Adaptor)(nil)

func (a *Adaptor) Init(meta *util.RelayMeta) {
	if a.PollInterval <= 0 {
		a.PollInterval = config.ReplicatePollInterval
	}
	if meta.ActualModelName == "" {
		meta.ActualModelName = ModelVersions[meta.OriginModelName]
	}
}

func (a *Adaptor) GetRequestURL(meta *util.RelayMeta) (string, error) {
	if meta.ActualModelName == "" {
		return "", fmt.Errorf("unknown replicate model: %s", meta.OriginModelName)
	}
	return fmt.Sprintf("%s/v1/models/%s/predictions", meta.BaseURL, meta.ActualModelName), nil
}

func (a *Adaptor) SetupRequestHeader(req *http.Request, meta *util.RelayMeta) error {
	req.Header.Set("Authorization", "Bearer "+meta.APIKey)
	if req.Method == http.MethodPost {
		req.Header.Set("Content-Type", "application/json")
		// hold the connection until the prediction finishes (server caps it at 60s)
		req.Header.Set("Prefer", "wait")
	}
	return nil
}

// ConvertImageRequest applies the fixed per-model input. Callers cannot tune
// aspect ratio or safety options.
func (a *Adaptor) ConvertImageRequest(request *model.GenerationRequest) (any, error) {
	if request == nil {
		return nil, errors.New("request cannot be nil")
	}
	switch request.Model {
	case ModelGoogleImagen:
		return PredictionRequest{Input: ImagenInput{
			AspectRatio:       "1:1",
			Prompt:            request.Prompt,
			SafetyFilterLevel: "block_medium_and_above",
		}}, nil
	case ModelIdeogram:
		return PredictionRequest{Input: IdeogramInput{
			AspectRatio:       "1:1",
			MagicPromptOption: "Auto",
			Prompt:            request.Prompt,
			Resolution:        "None",
			StyleType:         "None",
		}}, nil
	default:
		return nil, errors.Errorf("unsupported model: %s", request.Model)
	}
}

func (a *Adaptor) DoRequest(ctx context.Context, meta *util.RelayMeta, requestBody io.Reader) (*http.Response, error) {
	return channel.DoRequestHelper(a, ctx, meta, requestBody)
}

// DoResponse decodes the prediction and polls until it reaches a terminal
// state or ctx is done.
func (a *Adaptor) DoResponse(ctx context.Context, resp *http.Response, meta *util.RelayMeta) (any, error) {
	prediction, err := decodePrediction(resp)
	if err != nil {
		return nil, err
	}
	for {
		switch prediction.Status {
		case PredictionStatusSucceeded:
			logger.Debugf(ctx, "replicate prediction %s succeeded in %.2fs", prediction.ID, prediction.Metrics.PredictTime)
			return prediction.Output, nil
		case PredictionStatusFailed, PredictionStatusCanceled:
			message := helper.Interface2String(prediction.Error)
			if message == "" {
				message = "prediction " + prediction.Status
			}
			return nil, errors.New(message)
		}
		if prediction.URLs.Get == "" {
			return nil, errors.Errorf("prediction %s is %s but has no polling url", prediction.ID, prediction.Status)
		}
		select {
		case <-ctx.Done():
			return nil, errors.Wrap(ctx.Err(), "wait for prediction")
		case <-time.After(a.PollInterval):
		}
		prediction, err = a.getPrediction(ctx, prediction.URLs.Get, meta)
		if err != nil {
			return nil, err
		}
	}
}

func (a *Adaptor) getPrediction(ctx context.Context, url string, meta *util.RelayMeta) (*Prediction, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, errors.Wrap(err, "new poll request failed")
	}
	if err = a.SetupRequestHeader(req, meta); err != nil {
		return nil, err
	}
	resp, err := channel.DoRequest(req)
	if err != nil {
		return nil, errors.Wrap(err, "poll prediction failed")
	}
	return decodePrediction(resp)
}

func decodePrediction(resp *http.Response) (*Prediction, error) {
	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		errWithCode := util.RelayErrorHandler(resp)
		return nil, errors.New(errWithCode.Error.Message)
	}
	defer util.CloseResponseBodyGracefully(resp)
	var prediction Prediction
	if err := json.NewDecoder(resp.Body).Decode(&prediction); err != nil {
		return nil, errors.Wrap(err, "decode prediction failed")
	}
	return &prediction, nil
}

func (a *Adaptor) GetModelList() []string {
	return ModelList
}

func (a *Adaptor) GetChannelName() string {
	return "replicate"
}
