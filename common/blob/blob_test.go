package blob

import (
	"strings"
	"testing"

	"github.com/pixelforge/pixelforge/common/config"
	"github.com/stretchr/testify/assert"
)

func withBlobConfig(t *testing.T, endpoint string, bucket string, publicUrl string) {
	t.Helper()
	prevEndpoint, prevBucket, prevPublic := config.BlobEndpoint, config.BlobBucketName, config.BlobPublicUrl
	config.BlobEndpoint, config.BlobBucketName, config.BlobPublicUrl = endpoint, bucket, publicUrl
	t.Cleanup(func() {
		config.BlobEndpoint, config.BlobBucketName, config.BlobPublicUrl = prevEndpoint, prevBucket, prevPublic
	})
}

func TestPublicURLAndKeyFromURL(t *testing.T) {
	withBlobConfig(t, "https://acc.r2.cloudflarestorage.com", "pixelforge", "https://cdn.example.com/")

	url := PublicURL("images/7/a.png")
	assert.Equal(t, "https://cdn.example.com/images/7/a.png", url)
	assert.Equal(t, "images/7/a.png", KeyFromURL(url))
	assert.Equal(t, "", KeyFromURL("https://replicate.delivery/a.png"))
	assert.Equal(t, "", KeyFromURL("https://cdn.example.com/"))
}

func TestPublicURLWithoutCDN(t *testing.T) {
	withBlobConfig(t, "https://acc.r2.cloudflarestorage.com/", "pixelforge", "")

	url := PublicURL("uploads/1/a.wav")
	assert.Equal(t, "https://acc.r2.cloudflarestorage.com/pixelforge/uploads/1/a.wav", url)
	assert.Equal(t, "uploads/1/a.wav", KeyFromURL(url))
}

func TestObjectKey(t *testing.T) {
	key := ObjectKey("images/7", "image/png")
	assert.True(t, strings.HasPrefix(key, "images/7/"))
	assert.True(t, strings.HasSuffix(key, ".png"))
	assert.Equal(t, ".jpg", ExtensionFromMimeType("image/JPEG"))
	assert.Equal(t, ".bin", ExtensionFromMimeType("application/pdf"))
}
