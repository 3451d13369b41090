package util

import (
	"net/http"

	"github.com/pixelforge/pixelforge/common/config"
	"github.com/pixelforge/pixelforge/common/logger"
	"github.com/pixelforge/pixelforge/service"
)

var HTTPClient *http.Client

func init() {
	client, err := service.GetHttpClientWithProxy(config.RelayProxy)
	if err != nil {
		logger.SysError("failed to create relay proxy client, falling back to direct connection: " + err.Error())
		client = service.GetHttpClient()
	}
	HTTPClient = client
}
