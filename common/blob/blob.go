package blob

import (
	"bytes"
	"context"
	"fmt"
	"path"
	"strings"
	"sync"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/pixelforge/pixelforge/common/config"
	"github.com/pixelforge/pixelforge/common/helper"
	"github.com/pixelforge/pixelforge/common/logger"
)

var (
	clientOnce sync.Once
	client     *s3.Client
	clientErr  error
)

// Enabled reports whether the blob store configuration is complete.
func Enabled() bool {
	return config.BlobAccessKey != "" && config.BlobSecretKey != "" &&
		config.BlobBucketName != "" && config.BlobEndpoint != ""
}

// ExtensionFromMimeType maps a MIME type to a file extension.
func ExtensionFromMimeType(mimeType string) string {
	mimeType = strings.ToLower(mimeType)
	switch {
	case strings.Contains(mimeType, "jpeg"), strings.Contains(mimeType, "jpg"):
		return ".jpg"
	case strings.Contains(mimeType, "png"):
		return ".png"
	case strings.Contains(mimeType, "gif"):
		return ".gif"
	case strings.Contains(mimeType, "webp"):
		return ".webp"
	case strings.Contains(mimeType, "wav"):
		return ".wav"
	case strings.Contains(mimeType, "mpeg"):
		return ".mp3"
	default:
		return ".bin"
	}
}

// ObjectKey builds dir/<timestamp>-<uuid><ext>.
func ObjectKey(dir string, mimeType string) string {
	filename := fmt.Sprintf("%s-%s%s", time.Now().Format("20060102-150405"), helper.GetUUID(), ExtensionFromMimeType(mimeType))
	return path.Join(dir, filename)
}

// PublicURL returns the URL an uploaded object is reachable at.
func PublicURL(objectKey string) string {
	if config.BlobPublicUrl != "" {
		return fmt.Sprintf("%s/%s", strings.TrimSuffix(config.BlobPublicUrl, "/"), objectKey)
	}
	return fmt.Sprintf("%s/%s/%s", strings.TrimSuffix(config.BlobEndpoint, "/"), config.BlobBucketName, objectKey)
}

// KeyFromURL reverses PublicURL. It returns "" for foreign URLs.
func KeyFromURL(url string) string {
	prefix := PublicURL("")
	if !strings.HasPrefix(url, prefix) || len(url) == len(prefix) {
		return ""
	}
	return strings.TrimPrefix(url, prefix)
}

func getClient(ctx context.Context) (*s3.Client, error) {
	clientOnce.Do(func() {
		cfg, err := awsconfig.LoadDefaultConfig(ctx,
			awsconfig.WithRegion(config.BlobRegion),
			awsconfig.WithCredentialsProvider(credentials.NewStaticCredentialsProvider(config.BlobAccessKey, config.BlobSecretKey, "")),
		)
		if err != nil {
			clientErr = fmt.Errorf("failed to create AWS config: %w", err)
			return
		}
		// path style avoids virtual host sub-domain TLS issues on R2
		client = s3.NewFromConfig(cfg, func(o *s3.Options) {
			o.BaseEndpoint = aws.String(config.BlobEndpoint)
			o.UsePathStyle = true
		})
	})
	return client, clientErr
}

// Upload stores data under dir and returns its public URL.
func Upload(ctx context.Context, dir string, data []byte, mimeType string) (string, error) {
	if !Enabled() {
		return "", fmt.Errorf("blob store configuration is incomplete")
	}
	s3Client, err := getClient(ctx)
	if err != nil {
		return "", err
	}
	objectKey := ObjectKey(dir, mimeType)
	_, err = s3Client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(config.BlobBucketName),
		Key:         aws.String(objectKey),
		Body:        bytes.NewReader(data),
		ContentType: aws.String(mimeType),
	})
	if err != nil {
		return "", fmt.Errorf("failed to upload to blob store: %w", err)
	}
	url := PublicURL(objectKey)
	logger.SysLog(fmt.Sprintf("object uploaded: %s (size: %d bytes)", url, len(data)))
	return url, nil
}

// Delete removes an object previously written by Upload.
func Delete(ctx context.Context, objectKey string) error {
	if objectKey == "" {
		return fmt.Errorf("object key is required")
	}
	s3Client, err := getClient(ctx)
	if err != nil {
		return err
	}
	_, err = s3Client.DeleteObject(ctx, &s3.DeleteObjectInput{
		Bucket: aws.String(config.BlobBucketName),
		Key:    aws.String(objectKey),
	})
	if err != nil {
		return fmt.Errorf("failed to delete from blob store: %w", err)
	}
	return nil
}
