package config

import (
	"os"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/pixelforge/pixelforge/common/env"
)

var SystemName = env.String("SYSTEM_NAME", "PixelForge")
var ServerAddress = env.String("SERVER_ADDRESS", "http://localhost:3000")

var ServiceName = env.String("SERVICE_NAME", "pixelforge")
var InstanceId = env.String("INSTANCE_ID", hostnameOr("local"))

// Any options with "Secret", "Token" in its key won't be returned by GetStatus

var SessionSecret = uuid.New().String()
var JWTSecret = env.String("JWT_SECRET", SessionSecret)
var AccessTokenTTL = env.Duration("ACCESS_TOKEN_TTL", 24*time.Hour)

var ItemsPerPage = 10

var PasswordLoginEnabled = env.Bool("PASSWORD_LOGIN_ENABLED", true)
var RegisterEnabled = env.Bool("REGISTER_ENABLED", true)

var IsMasterNode = env.Get("NODE_TYPE") != "slave"

var DebugEnabled = env.Bool("DEBUG", false)
var DebugSQLEnabled = env.Bool("DEBUG_SQL", false)

// Image generation
var ReplicateBaseURL = env.String("REPLICATE_BASE_URL", "https://api.replicate.com")
var ReplicateAPIToken = env.Get("REPLICATE_API_TOKEN")
var ReplicatePollInterval = env.Duration("REPLICATE_POLL_INTERVAL", time.Second)
var GenerationTimeout = env.Duration("GENERATION_TIMEOUT", 60*time.Second)
var AutoSaveGenerations = env.Bool("AUTO_SAVE_GENERATIONS", false)

// Transcription
var OpenAIBaseURL = env.String("OPENAI_BASE_URL", "https://api.openai.com")
var OpenAIAPIKey = env.Get("OPENAI_API_KEY")
var TranscriptionModel = env.String("TRANSCRIPTION_MODEL", "whisper-1")

var RelayTimeout = env.Int("RELAY_TIMEOUT", 0) // unit is second
var RelayProxy = env.String("RELAY_PROXY", "")

// S3 compatible blob store (Cloudflare R2 by default)
var BlobBucketName = env.Get("BLOB_BUCKET_NAME")
var BlobAccessKey = env.Get("BLOB_ACCESS_KEY")
var BlobSecretKey = env.Get("BLOB_SECRET_KEY")
var BlobEndpoint = env.Get("BLOB_ENDPOINT")
var BlobRegion = env.String("BLOB_REGION", "auto")
var BlobPublicUrl = env.Get("BLOB_PUBLIC_URL")
var MirrorImagesEnabled = env.Bool("MIRROR_IMAGES_ENABLED", false)

// MirrorAllowedHosts lists the hosts generated images may be mirrored from.
// Subdomains of an entry are accepted too.
var MirrorAllowedHosts = strings.Split(env.String("MIRROR_ALLOWED_HOSTS", "replicate.delivery"), ",")
var MaxUploadBytes = int64(env.Int("MAX_UPLOAD_MB", 20)) << 20
var UserStorageLimitBytes = int64(env.Int("USER_STORAGE_LIMIT_MB", 500)) << 20

var GoogleOAuthEnabled = env.Bool("GOOGLE_OAUTH_ENABLED", false)
var GoogleClientId = env.Get("GOOGLE_CLIENT_ID")
var GoogleClientSecret = env.Get("GOOGLE_CLIENT_SECRET")
var GoogleRedirectUri = env.Get("GOOGLE_REDIRECT_URI")

var SyncFrequency = env.Int("SYNC_FREQUENCY", 10*60) // unit is second

// All duration's unit is seconds
// Shouldn't larger then RateLimitKeyExpirationDuration
var (
	CriticalRateLimitNum            = env.Int("CRITICAL_RATE_LIMIT", 20)
	CriticalRateLimitDuration int64 = 20 * 60
)

var RateLimitKeyExpirationDuration = 20 * time.Minute

var CloudWatchEnabled = env.Bool("CLOUDWATCH_ENABLED", false)
var CloudWatchRegion = env.String("CLOUDWATCH_REGION", "us-east-1")
var CloudWatchNamespace = env.String("CLOUDWATCH_NAMESPACE", "PixelForge")
var CloudWatchFlushInterval = env.Duration("CLOUDWATCH_FLUSH_INTERVAL", time.Minute)

var FrontendDir = env.Get("FRONTEND_DIR")

func hostnameOr(fallback string) string {
	name, err := os.Hostname()
	if err != nil || name == "" {
		return fallback
	}
	return name
}
