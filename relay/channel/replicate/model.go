package replicate

import "time"

type PredictionRequest struct {
	Input any `json:"input"`
}

type ImagenInput struct {
	AspectRatio       string `json:"aspect_ratio"`
	Prompt            string `json:"prompt"`
	SafetyFilterLevel string `json:"safety_filter_level"`
}

type IdeogramInput struct {
	AspectRatio       string `json:"aspect_ratio"`
	MagicPromptOption string `json:"magic_prompt_option"`
	Prompt            string `json:"prompt"`
	Resolution        string `json:"resolution"`
	StyleType         string `json:"style_type"`
}

// Prediction is returned both when creating and when polling.
// Output is either a list of URLs or a single URL depending on the model.
type Prediction struct {
	ID          string     `json:"id"`
	Model       string     `json:"model"`
	Version     string     `json:"version"`
	Input       any        `json:"input"`
	Logs        string     `json:"logs"`
	Output      any        `json:"output"`
	DataRemoved bool       `json:"data_removed"`
	Error       any        `json:"error"`
	Status      string     `json:"status"`
	CreatedAt   *time.Time `json:"created_at,omitempty"`
	StartedAt   *time.Time `json:"started_at,omitempty"`
	CompletedAt *time.Time `json:"completed_at,omitempty"`
	URLs        URLs       `json:"urls"`
	Metrics     Metrics    `json:"metrics"`
}

type URLs struct {
	Cancel string `json:"cancel"`
	Get    string `json:"get"`
}

type Metrics struct {
	ImageCount  int     `json:"image_count"`
	PredictTime float64 `json:"predict_time"`
}
