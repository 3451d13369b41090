package openai

const (
	TranscriptionFileName    = "audio.wav"
	TranscriptionContentType = "audio/wav"
)
