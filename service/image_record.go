package service

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strings"

	"github.com/pixelforge/pixelforge/common/blob"
	"github.com/pixelforge/pixelforge/common/config"
	imgutil "github.com/pixelforge/pixelforge/common/image"
	"github.com/pixelforge/pixelforge/common/logger"
	"github.com/pixelforge/pixelforge/model"
)

// checkMirrorURL accepts only https URLs on one of config.MirrorAllowedHosts.
func checkMirrorURL(rawURL string) error {
	u, err := url.Parse(rawURL)
	if err != nil {
		return fmt.Errorf("invalid image url: %w", err)
	}
	if u.Scheme != "https" {
		return fmt.Errorf("image url scheme %q is not allowed", u.Scheme)
	}
	host := strings.ToLower(u.Hostname())
	for _, allowed := range config.MirrorAllowedHosts {
		allowed = strings.ToLower(strings.TrimSpace(allowed))
		if allowed == "" {
			continue
		}
		if host == allowed || strings.HasSuffix(host, "."+allowed) {
			return nil
		}
	}
	return fmt.Errorf("image host %q is not allowed", host)
}

// mirrorHttpClient is the shared client with every redirect hop re-checked
// against the allowed hosts.
func mirrorHttpClient() *http.Client {
	client := *GetHttpClient()
	client.CheckRedirect = func(req *http.Request, via []*http.Request) error {
		if len(via) >= 10 {
			return errors.New("stopped after 10 redirects")
		}
		return checkMirrorURL(req.URL.String())
	}
	return &client
}

// MirrorImage copies a generated image into the blob store and returns its
// public URL.
func MirrorImage(ctx context.Context, userId int, imageUrl string) (string, error) {
	if err := checkMirrorURL(imageUrl); err != nil {
		return "", err
	}
	if !blob.Enabled() {
		return "", fmt.Errorf("blob store is not configured")
	}
	data, err := imgutil.Fetch(ctx, mirrorHttpClient(), imageUrl, config.MaxUploadBytes)
	if err != nil {
		return "", fmt.Errorf("download image: %w", err)
	}
	info, err := imgutil.Detect(data)
	if err != nil {
		return "", fmt.Errorf("detect image format: %w", err)
	}
	return blob.Upload(ctx, fmt.Sprintf("images/%d", userId), data, info.MimeType)
}

// SaveGeneration stores a generation record for the user. When mirroring is
// enabled a copy is uploaded first; a failed mirror only leaves store_url empty.
func SaveGeneration(ctx context.Context, image *model.Image) error {
	if config.MirrorImagesEnabled && image.StoreUrl == "" {
		storeUrl, err := MirrorImage(ctx, image.UserId, image.ImageUrl)
		if err != nil {
			logger.Warnf(ctx, "failed to mirror image for user %d: %s", image.UserId, err.Error())
		} else {
			image.StoreUrl = storeUrl
		}
	}
	if err := image.Insert(); err != nil {
		return err
	}
	model.CacheInvalidateUserImages(image.UserId)
	return nil
}
