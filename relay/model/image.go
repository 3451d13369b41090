package model

// GenerationRequest is the body of POST /api/replicate.
type GenerationRequest struct {
	Prompt string `json:"prompt"`
	Model  string `json:"model,omitempty"`
}

// GenerationResult is the only success shape of an image generation.
type GenerationResult struct {
	ImageUrl string `json:"imageUrl"`
}
