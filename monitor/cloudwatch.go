package monitor

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"sync/atomic"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/cloudwatch"
	"github.com/aws/aws-sdk-go-v2/service/cloudwatch/types"
	"github.com/pixelforge/pixelforge/common/config"
	"github.com/pixelforge/pixelforge/common/logger"
)

// OutcomeSuccess marks a generation that produced an image URL. Failed
// generations are recorded under their error type.
const OutcomeSuccess = "success"

// MetricPutter is the subset of the CloudWatch client the reporter needs.
type MetricPutter interface {
	PutMetricData(ctx context.Context, params *cloudwatch.PutMetricDataInput, optFns ...func(*cloudwatch.Options)) (*cloudwatch.PutMetricDataOutput, error)
}

type generationKey struct {
	model   string
	outcome string
}

// MetricData holds everything collected between two flushes.
type MetricData struct {
	SuccessLatencies []float64
	FailureLatencies []float64
	RequestCount     int64
	ClientErrors     int64
	ServerErrors     int64
	AuthErrors       int64
	MaxConcurrent    int64

	Generations         map[generationKey]int64
	GenerationLatencies map[string][]float64
}

type CloudWatchReporter struct {
	client             MetricPutter
	namespace          string
	interval           time.Duration
	mutex              sync.Mutex
	buffer             *MetricData
	concurrentRequests int64
	flushTicker        *time.Ticker
	ctx                context.Context
	cancel             context.CancelFunc
}

var (
	globalReporter *CloudWatchReporter
	reporterMutex  sync.RWMutex
)

func newMetricData() *MetricData {
	return &MetricData{
		Generations:         make(map[generationKey]int64),
		GenerationLatencies: make(map[string][]float64),
	}
}

func newReporter(ctx context.Context, client MetricPutter, namespace string, interval time.Duration) *CloudWatchReporter {
	if interval <= 0 {
		interval = time.Minute
	}
	reporterCtx, cancel := context.WithCancel(ctx)
	return &CloudWatchReporter{
		client:    client,
		namespace: namespace,
		interval:  interval,
		buffer:    newMetricData(),
		ctx:       reporterCtx,
		cancel:    cancel,
	}
}

// StartCloudWatchReporter starts the background flusher when CLOUDWATCH_ENABLED is set.
func StartCloudWatchReporter(ctx context.Context) error {
	if !config.CloudWatchEnabled {
		logger.SysLog("CloudWatch reporter disabled")
		return nil
	}

	cfg, err := awsconfig.LoadDefaultConfig(ctx, awsconfig.WithRegion(config.CloudWatchRegion))
	if err != nil {
		return fmt.Errorf("failed to load AWS config: %w", err)
	}
	startReporter(ctx, cloudwatch.NewFromConfig(cfg), config.CloudWatchNamespace, config.CloudWatchFlushInterval)

	logger.SysLogf("CloudWatch reporter started (namespace: %s, region: %s, flush: %s)",
		config.CloudWatchNamespace, config.CloudWatchRegion, config.CloudWatchFlushInterval)
	return nil
}

func startReporter(ctx context.Context, client MetricPutter, namespace string, interval time.Duration) *CloudWatchReporter {
	reporterMutex.Lock()
	defer reporterMutex.Unlock()

	if globalReporter != nil {
		return globalReporter
	}
	reporter := newReporter(ctx, client, namespace, interval)
	reporter.flushTicker = time.NewTicker(reporter.interval)
	globalReporter = reporter
	go reporter.flushLoop()
	return reporter
}

// StopCloudWatchReporter stops the flusher and pushes whatever is still buffered.
func StopCloudWatchReporter() {
	reporterMutex.Lock()
	defer reporterMutex.Unlock()

	if globalReporter != nil {
		globalReporter.cancel()
		if globalReporter.flushTicker != nil {
			globalReporter.flushTicker.Stop()
		}
		globalReporter.flush()
		globalReporter = nil
		logger.SysLog("CloudWatch reporter stopped")
	}
}

func currentReporter() *CloudWatchReporter {
	reporterMutex.RLock()
	defer reporterMutex.RUnlock()
	return globalReporter
}

// RecordRequest records one HTTP request.
func RecordRequest(latency time.Duration, statusCode int, success bool) {
	if r := currentReporter(); r != nil {
		r.recordRequest(latency, statusCode, success)
	}
}

// RecordGeneration records one image generation attempt and its outcome.
func RecordGeneration(model string, outcome string, latency time.Duration) {
	if r := currentReporter(); r != nil {
		r.recordGeneration(model, outcome, latency)
	}
}

func IncrementConcurrent() {
	if r := currentReporter(); r != nil {
		current := atomic.AddInt64(&r.concurrentRequests, 1)
		r.updateMaxConcurrent(current)
	}
}

func DecrementConcurrent() {
	if r := currentReporter(); r != nil {
		atomic.AddInt64(&r.concurrentRequests, -1)
	}
}

func (r *CloudWatchReporter) recordRequest(latency time.Duration, statusCode int, success bool) {
	r.mutex.Lock()
	defer r.mutex.Unlock()

	latencyMs := float64(latency.Milliseconds())
	if success {
		r.buffer.SuccessLatencies = append(r.buffer.SuccessLatencies, latencyMs)
	} else {
		r.buffer.FailureLatencies = append(r.buffer.FailureLatencies, latencyMs)
	}
	r.buffer.RequestCount++

	switch classifyStatus(statusCode) {
	case "auth_error":
		r.buffer.AuthErrors++
	case "client_error":
		r.buffer.ClientErrors++
	case "server_error":
		r.buffer.ServerErrors++
	}
}

func (r *CloudWatchReporter) recordGeneration(model string, outcome string, latency time.Duration) {
	r.mutex.Lock()
	defer r.mutex.Unlock()

	r.buffer.Generations[generationKey{model: model, outcome: outcome}]++
	if outcome == OutcomeSuccess {
		r.buffer.GenerationLatencies[model] = append(r.buffer.GenerationLatencies[model], float64(latency.Milliseconds()))
	}
}

func (r *CloudWatchReporter) updateMaxConcurrent(current int64) {
	r.mutex.Lock()
	defer r.mutex.Unlock()

	if current > r.buffer.MaxConcurrent {
		r.buffer.MaxConcurrent = current
	}
}

func classifyStatus(statusCode int) string {
	switch {
	case statusCode >= 200 && statusCode < 400:
		return "success"
	case statusCode == 401 || statusCode == 403:
		return "auth_error"
	case statusCode >= 400 && statusCode < 500:
		return "client_error"
	default:
		return "server_error"
	}
}

func (r *CloudWatchReporter) flushLoop() {
	for {
		select {
		case <-r.ctx.Done():
			return
		case <-r.flushTicker.C:
			r.flush()
		}
	}
}

func (r *CloudWatchReporter) takeBuffer() *MetricData {
	r.mutex.Lock()
	data := r.buffer
	r.buffer = newMetricData()
	r.mutex.Unlock()
	return data
}

func (r *CloudWatchReporter) flush() {
	data := r.takeBuffer()
	metricData := r.buildMetrics(data, time.Now())
	if len(metricData) > 0 {
		r.sendMetrics(metricData)
	}
}

func (r *CloudWatchReporter) buildMetrics(data *MetricData, now time.Time) []types.MetricDatum {
	if data.RequestCount == 0 && len(data.Generations) == 0 {
		return nil
	}

	timestamp := aws.Time(now)
	var metricData []types.MetricDatum

	metricData = append(metricData, buildLatencyMetrics("SuccessLatency", data.SuccessLatencies, timestamp, nil)...)
	metricData = append(metricData, buildLatencyMetrics("FailureLatency", data.FailureLatencies, timestamp, nil)...)

	if data.RequestCount > 0 {
		metricData = append(metricData,
			countDatum("RequestCount", data.RequestCount, timestamp, nil),
			types.MetricDatum{
				MetricName: aws.String("QPS"),
				Value:      aws.Float64(float64(data.RequestCount) / r.interval.Seconds()),
				Unit:       types.StandardUnitCountSecond,
				Timestamp:  timestamp,
			},
			countDatum("ClientErrors", data.ClientErrors, timestamp, nil),
			countDatum("ServerErrors", data.ServerErrors, timestamp, nil),
			countDatum("AuthErrors", data.AuthErrors, timestamp, nil),
			countDatum("MaxConcurrentRequests", data.MaxConcurrent, timestamp, nil),
		)
	}

	keys := make([]generationKey, 0, len(data.Generations))
	for key := range data.Generations {
		keys = append(keys, key)
	}
	sort.Slice(keys, func(i, j int) bool {
		if keys[i].model != keys[j].model {
			return keys[i].model < keys[j].model
		}
		return keys[i].outcome < keys[j].outcome
	})
	for _, key := range keys {
		dimensions := []types.Dimension{
			{Name: aws.String("Model"), Value: aws.String(key.model)},
			{Name: aws.String("Outcome"), Value: aws.String(key.outcome)},
		}
		metricData = append(metricData, countDatum("Generations", data.Generations[key], timestamp, dimensions))
	}

	models := make([]string, 0, len(data.GenerationLatencies))
	for model := range data.GenerationLatencies {
		models = append(models, model)
	}
	sort.Strings(models)
	for _, model := range models {
		dimensions := []types.Dimension{{Name: aws.String("Model"), Value: aws.String(model)}}
		metricData = append(metricData, buildLatencyMetrics("GenerationLatency", data.GenerationLatencies[model], timestamp, dimensions)...)
	}
	return metricData
}

func countDatum(name string, value int64, timestamp *time.Time, dimensions []types.Dimension) types.MetricDatum {
	return types.MetricDatum{
		MetricName: aws.String(name),
		Value:      aws.Float64(float64(value)),
		Unit:       types.StandardUnitCount,
		Timestamp:  timestamp,
		Dimensions: dimensions,
	}
}

// buildLatencyMetrics emits Avg, P50, P95, P99 and Max for one latency series.
func buildLatencyMetrics(metricName string, latencies []float64, timestamp *time.Time, dimensions []types.Dimension) []types.MetricDatum {
	if len(latencies) == 0 {
		return nil
	}

	sorted := make([]float64, len(latencies))
	copy(sorted, latencies)
	sort.Float64s(sorted)

	stats := []struct {
		suffix string
		value  float64
	}{
		{"Avg", calculateAverage(sorted)},
		{"P50", calculatePercentile(sorted, 0.50)},
		{"P95", calculatePercentile(sorted, 0.95)},
		{"P99", calculatePercentile(sorted, 0.99)},
		{"Max", sorted[len(sorted)-1]},
	}
	result := make([]types.MetricDatum, 0, len(stats))
	for _, stat := range stats {
		result = append(result, types.MetricDatum{
			MetricName: aws.String(metricName + stat.suffix),
			Value:      aws.Float64(stat.value),
			Unit:       types.StandardUnitMilliseconds,
			Timestamp:  timestamp,
			Dimensions: dimensions,
		})
	}
	return result
}

// sendMetrics pushes in batches of at most 1000 datums per request.
func (r *CloudWatchReporter) sendMetrics(metricData []types.MetricDatum) {
	const maxMetricsPerRequest = 1000

	for i := 0; i < len(metricData); i += maxMetricsPerRequest {
		end := i + maxMetricsPerRequest
		if end > len(metricData) {
			end = len(metricData)
		}

		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		_, err := r.client.PutMetricData(ctx, &cloudwatch.PutMetricDataInput{
			Namespace:  aws.String(r.namespace),
			MetricData: metricData[i:end],
		})
		cancel()
		if err != nil {
			logger.SysErrorf("failed to send metrics to CloudWatch: %s", err.Error())
		}
	}
}

func calculateAverage(values []float64) float64 {
	if len(values) == 0 {
		return 0
	}
	sum := 0.0
	for _, v := range values {
		sum += v
	}
	return sum / float64(len(values))
}

// calculatePercentile expects sorted input.
func calculatePercentile(sorted []float64, percentile float64) float64 {
	if len(sorted) == 0 {
		return 0
	}
	index := int(float64(len(sorted)-1) * percentile)
	return sorted[index]
}
