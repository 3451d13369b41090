package model

// TranscriptionRequest is the body of POST /api/openai/transcribe.
type TranscriptionRequest struct {
	Audio string `json:"audio"` // base64
}

// TranscriptionResponse carries the provider answer back untouched.
type TranscriptionResponse struct {
	StatusCode  int
	ContentType string
	Body        []byte
}
