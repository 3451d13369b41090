package util

import (
	"time"
)

type RelayMeta struct {
	Mode   int
	UserId int
	// BaseURL is the provider endpoint, without trailing slash
	BaseURL string
	APIKey  string
	// OriginModelName is the model selector from the raw user request
	OriginModelName string
	// ActualModelName is the provider side model identifier
	ActualModelName string
	StartTime       time.Time
}

func NewRelayMeta(mode int, userId int, baseURL string, apiKey string) *RelayMeta {
	return &RelayMeta{
		Mode:      mode,
		UserId:    userId,
		BaseURL:   baseURL,
		APIKey:    apiKey,
		StartTime: time.Now(),
	}
}
