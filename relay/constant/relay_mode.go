package constant

import "strings"

const (
	RelayModeUnknown = iota
	RelayModeImagesGenerations
	RelayModeAudioTranscription
)

func Path2RelayMode(path string) int {
	relayMode := RelayModeUnknown
	if strings.HasPrefix(path, "/api/replicate") {
		relayMode = RelayModeImagesGenerations
	} else if strings.HasPrefix(path, "/api/openai/transcribe") {
		relayMode = RelayModeAudioTranscription
	}
	return relayMode
}

func RelayModeName(mode int) string {
	switch mode {
	case RelayModeImagesGenerations:
		return "images_generations"
	case RelayModeAudioTranscription:
		return "audio_transcription"
	default:
		return "unknown"
	}
}
