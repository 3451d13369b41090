package controller

import (
	"context"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/pixelforge/pixelforge/common"
	"github.com/pixelforge/pixelforge/common/config"
	"github.com/pixelforge/pixelforge/common/logger"
	"github.com/pixelforge/pixelforge/monitor"
	"github.com/pixelforge/pixelforge/relay/channel"
	"github.com/pixelforge/pixelforge/relay/channel/replicate"
	"github.com/pixelforge/pixelforge/relay/constant"
	"github.com/pixelforge/pixelforge/relay/model"
	"github.com/pixelforge/pixelforge/relay/util"
)

// ImageProvider runs a single generation and returns the provider's raw output.
type ImageProvider interface {
	Generate(ctx context.Context, prompt string) (any, error)
}

type ImageProviderFunc func(ctx context.Context, prompt string) (any, error)

func (f ImageProviderFunc) Generate(ctx context.Context, prompt string) (any, error) {
	return f(ctx, prompt)
}

// adaptorProvider runs a channel adaptor against a fixed model.
type adaptorProvider struct {
	model      string
	baseURL    string
	apiKey     string
	newAdaptor func() channel.ImageAdaptor
}

func (p *adaptorProvider) Generate(ctx context.Context, prompt string) (any, error) {
	adaptor := p.newAdaptor()
	meta := util.NewRelayMeta(constant.RelayModeImagesGenerations, 0, p.baseURL, p.apiKey)
	meta.OriginModelName = p.model
	logger.Debugf(ctx, "relaying %s to %s channel", p.model, adaptor.GetChannelName())
	return channel.RunImage(ctx, adaptor, meta, &model.GenerationRequest{
		Prompt: prompt,
		Model:  p.model,
	})
}

// Dispatcher routes a prompt to the provider registered for the requested
// model and normalizes the answer into a GenerationResult.
type Dispatcher struct {
	models       []string
	providers    map[string]ImageProvider
	defaultModel string
	timeout      time.Duration
}

func NewDispatcher(defaultModel string, timeout time.Duration) *Dispatcher {
	return &Dispatcher{
		providers:    make(map[string]ImageProvider),
		defaultModel: defaultModel,
		timeout:      timeout,
	}
}

// NewReplicateDispatcher registers every Replicate model with the configured
// credentials and timeout.
func NewReplicateDispatcher() *Dispatcher {
	return NewAdaptorDispatcher(func() channel.ImageAdaptor {
		return &replicate.Adaptor{}
	}, config.ReplicateBaseURL, config.ReplicateAPIToken, config.GenerationTimeout)
}

// NewAdaptorDispatcher registers one provider per model the adaptor lists.
// The first listed model is the default.
func NewAdaptorDispatcher(newAdaptor func() channel.ImageAdaptor, baseURL string, apiKey string, timeout time.Duration) *Dispatcher {
	models := newAdaptor().GetModelList()
	defaultModel := ""
	if len(models) > 0 {
		defaultModel = models[0]
	}
	d := NewDispatcher(defaultModel, timeout)
	for _, modelName := range models {
		d.Register(modelName, &adaptorProvider{
			model:      modelName,
			baseURL:    strings.TrimSuffix(baseURL, "/"),
			apiKey:     apiKey,
			newAdaptor: newAdaptor,
		})
	}
	return d
}

func (d *Dispatcher) Register(modelName string, provider ImageProvider) *Dispatcher {
	if _, ok := d.providers[modelName]; !ok {
		d.models = append(d.models, modelName)
	}
	d.providers[modelName] = provider
	return d
}

// Models lists the accepted model selectors in registration order.
func (d *Dispatcher) Models() []string {
	return append([]string(nil), d.models...)
}

func (d *Dispatcher) DefaultModel() string {
	return d.defaultModel
}

func (d *Dispatcher) Timeout() time.Duration {
	return d.timeout
}

// Generate validates the request, calls exactly one provider and races it
// against the dispatcher timeout.
func (d *Dispatcher) Generate(ctx context.Context, request *model.GenerationRequest) (result *model.GenerationResult, errWithCode *model.ErrorWithStatusCode) {
	if request == nil || strings.TrimSpace(request.Prompt) == "" {
		return nil, model.NewErrorWithStatusCode("Prompt is required", model.ErrorTypeValidation, http.StatusBadRequest)
	}
	modelName := request.Model
	if modelName == "" {
		modelName = d.defaultModel
	}
	provider, ok := d.providers[modelName]
	if !ok {
		return nil, model.NewErrorWithStatusCode(fmt.Sprintf("Unsupported model: %s", modelName), model.ErrorTypeUnsupportedModel, http.StatusBadRequest)
	}

	startTime := time.Now()
	defer func() {
		outcome := monitor.OutcomeSuccess
		if errWithCode != nil {
			outcome = errWithCode.Type
		}
		monitor.RecordGeneration(modelName, outcome, time.Since(startTime))
	}()

	logger.Infof(ctx, "starting image generation with %s model and prompt: %s", modelName, request.Prompt)
	output, err := d.run(ctx, provider, request.Prompt)
	if err != nil {
		if err == errGenerationTimeout {
			logger.Errorf(ctx, "model %s timed out after %s", modelName, d.timeout)
			return nil, model.NewErrorWithStatusCode(
				fmt.Sprintf("Error generating image: Operation timed out after %dms", d.timeout.Milliseconds()),
				model.ErrorTypeTimeout, http.StatusInternalServerError)
		}
		logger.Errorf(ctx, "model error with %s: %s", modelName, err.Error())
		message := err.Error()
		if message == "" {
			message = "Model error"
		}
		return nil, model.NewErrorWithStatusCode("Error generating image: "+message, model.ErrorTypeModel, http.StatusInternalServerError)
	}

	logger.Infof(ctx, "received output from %s: %s", modelName, describeOutput(output))
	imageUrl, ok := NormalizeOutput(output)
	if !ok {
		logger.Errorf(ctx, "unexpected output format from %s: %v", modelName, output)
		return nil, model.NewErrorWithStatusCode("Unexpected response format from image generation model", model.ErrorTypeUnexpectedFormat, http.StatusInternalServerError)
	}
	return &model.GenerationResult{ImageUrl: imageUrl}, nil
}

var errGenerationTimeout = fmt.Errorf("generation timed out")

type providerResult struct {
	output any
	err    error
}

// run starts the provider call on the relay pool and waits for it or for the
// timer. The provider context is detached from the caller's cancellation and
// cancelled once run returns, so a provider that loses the race is aborted.
func (d *Dispatcher) run(ctx context.Context, provider ImageProvider, prompt string) (any, error) {
	providerCtx, cancel := context.WithCancel(context.WithoutCancel(ctx))
	defer cancel()

	// buffered so a late provider never blocks
	done := make(chan providerResult, 1)
	common.RelayCtxGo(providerCtx, func() {
		defer func() {
			if r := recover(); r != nil {
				done <- providerResult{err: fmt.Errorf("provider panic: %v", r)}
			}
		}()
		output, err := provider.Generate(providerCtx, prompt)
		done <- providerResult{output: output, err: err}
	})

	timer := time.NewTimer(d.timeout)
	defer timer.Stop()
	select {
	case res := <-done:
		return res.output, res.err
	case <-timer.C:
		return nil, errGenerationTimeout
	}
}

// NormalizeOutput accepts a non-empty list (first element wins) or a bare
// string. Any other shape is rejected.
func NormalizeOutput(output any) (string, bool) {
	switch v := output.(type) {
	case string:
		return v, true
	case []string:
		if len(v) > 0 {
			return v[0], true
		}
	case []any:
		if len(v) > 0 {
			if first, ok := v[0].(string); ok {
				return first, true
			}
		}
	}
	return "", false
}

func describeOutput(output any) string {
	switch v := output.(type) {
	case []any:
		return fmt.Sprintf("array with %d items", len(v))
	case []string:
		return fmt.Sprintf("array with %d items", len(v))
	case nil:
		return "null"
	default:
		return fmt.Sprintf("%T", v)
	}
}
