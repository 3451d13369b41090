package openai

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/textproto"
	"strings"

	"github.com/pixelforge/pixelforge/common/config"
	"github.com/pixelforge/pixelforge/relay/channel"
	"github.com/pixelforge/pixelforge/relay/model"
	"github.com/pixelforge/pixelforge/relay/util"
)

// Adaptor relays speech transcription to the OpenAI audio API.
type Adaptor struct {
	Model string
}

var _ channel.AudioAdaptor = (*Adaptor)(nil)

func (a *Adaptor) Init(meta *util.RelayMeta) {
	if a.Model == "" {
		a.Model = config.TranscriptionModel
	}
	meta.ActualModelName = a.Model
}

func (a *Adaptor) GetRequestURL(meta *util.RelayMeta) (string, error) {
	return fmt.Sprintf("%s/v1/audio/transcriptions", strings.TrimSuffix(meta.BaseURL, "/")), nil
}

func (a *Adaptor) SetupRequestHeader(req *http.Request, meta *util.RelayMeta) error {
	req.Header.Set("Authorization", "Bearer "+meta.APIKey)
	req.Header.Set("Accept", "application/json")
	return nil
}

func (a *Adaptor) ConvertTranscriptionRequest(audio []byte) (io.Reader, string, error) {
	if len(audio) == 0 {
		return nil, "", fmt.Errorf("audio is empty")
	}
	body := &bytes.Buffer{}
	writer := multipart.NewWriter(body)

	partHeader := make(textproto.MIMEHeader)
	partHeader.Set("Content-Disposition", fmt.Sprintf(`form-data; name="file"; filename="%s"`, TranscriptionFileName))
	partHeader.Set("Content-Type", TranscriptionContentType)
	part, err := writer.CreatePart(partHeader)
	if err != nil {
		return nil, "", err
	}
	if _, err = part.Write(audio); err != nil {
		return nil, "", err
	}
	if err = writer.WriteField("model", a.Model); err != nil {
		return nil, "", err
	}
	if err = writer.Close(); err != nil {
		return nil, "", err
	}
	return body, writer.FormDataContentType(), nil
}

// DoResponse keeps a 2xx body byte for byte; anything else becomes an error.
func (a *Adaptor) DoResponse(ctx context.Context, resp *http.Response, meta *util.RelayMeta) (*model.TranscriptionResponse, error) {
	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		errWithCode := util.RelayErrorHandler(resp)
		return nil, fmt.Errorf("transcription failed with status %d: %s", errWithCode.StatusCode, errWithCode.Error.Message)
	}
	defer util.CloseResponseBodyGracefully(resp)
	responseBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read response body failed: %w", err)
	}
	contentType := resp.Header.Get("Content-Type")
	if contentType == "" {
		contentType = "application/json"
	}
	return &model.TranscriptionResponse{
		StatusCode:  resp.StatusCode,
		ContentType: contentType,
		Body:        responseBody,
	}, nil
}

func (a *Adaptor) GetChannelName() string {
	return "openai"
}
