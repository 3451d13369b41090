package image

import (
	"bytes"
	"context"
	"encoding/base64"
	"fmt"
	"image"
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"
	"io"
	"net/http"
	"regexp"
	"strings"

	_ "golang.org/x/image/webp"
)

// Regex to match data URL pattern
var dataURLPattern = regexp.MustCompile(`^data:image/([^;]+);base64,(.*)$`)

// Info describes a decoded image header.
type Info struct {
	Format   string
	MimeType string
	Width    int
	Height   int
}

// Fetch loads image bytes from a data URL or an http(s) URL.
func Fetch(ctx context.Context, client *http.Client, url string, maxBytes int64) ([]byte, error) {
	if matches := dataURLPattern.FindStringSubmatch(url); len(matches) == 3 {
		// DecodedLen overshoots by at most two padding bytes
		if maxBytes > 0 && int64(base64.StdEncoding.DecodedLen(len(matches[2]))) > maxBytes+2 {
			return nil, fmt.Errorf("fetch image: larger than %d bytes", maxBytes)
		}
		data, err := base64.StdEncoding.DecodeString(matches[2])
		if err != nil {
			return nil, err
		}
		if maxBytes > 0 && int64(len(data)) > maxBytes {
			return nil, fmt.Errorf("fetch image: larger than %d bytes", maxBytes)
		}
		return data, nil
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, err
	}
	resp, err := client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("fetch image: unexpected status %d", resp.StatusCode)
	}
	reader := io.Reader(resp.Body)
	if maxBytes > 0 {
		reader = io.LimitReader(resp.Body, maxBytes+1)
	}
	data, err := io.ReadAll(reader)
	if err != nil {
		return nil, err
	}
	if maxBytes > 0 && int64(len(data)) > maxBytes {
		return nil, fmt.Errorf("fetch image: larger than %d bytes", maxBytes)
	}
	return data, nil
}

// Detect decodes only the image header.
func Detect(data []byte) (*Info, error) {
	cfg, format, err := image.DecodeConfig(bytes.NewReader(data))
	if err != nil {
		return nil, err
	}
	return &Info{
		Format:   format,
		MimeType: MimeTypeFromFormat(format),
		Width:    cfg.Width,
		Height:   cfg.Height,
	}, nil
}

func MimeTypeFromFormat(format string) string {
	switch strings.ToLower(format) {
	case "jpeg", "jpg":
		return "image/jpeg"
	case "png":
		return "image/png"
	case "gif":
		return "image/gif"
	case "webp":
		return "image/webp"
	default:
		return "application/octet-stream"
	}
}
