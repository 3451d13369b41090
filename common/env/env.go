package env

import (
	"log"
	"os"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/joho/godotenv"
)

var loadOnce sync.Once

// load reads ENV_FILE (default .env) once. Variables already present in the
// process environment win.
func load() {
	loadOnce.Do(func() {
		path := os.Getenv("ENV_FILE")
		if path == "" {
			path = ".env"
		}
		if _, err := os.Stat(path); err != nil {
			return
		}
		if err := godotenv.Load(path); err != nil {
			log.Printf("failed to load env file %s: %v", path, err)
		}
	})
}

func Get(env string) string {
	load()
	return os.Getenv(env)
}

func Bool(env string, defaultValue bool) bool {
	if env == "" || Get(env) == "" {
		return defaultValue
	}
	return strings.ToLower(os.Getenv(env)) == "true"
}

func Int(env string, defaultValue int) int {
	if env == "" || Get(env) == "" {
		return defaultValue
	}
	num, err := strconv.Atoi(os.Getenv(env))
	if err != nil {
		return defaultValue
	}
	return num
}

func Float64(env string, defaultValue float64) float64 {
	if env == "" || Get(env) == "" {
		return defaultValue
	}
	num, err := strconv.ParseFloat(os.Getenv(env), 64)
	if err != nil {
		return defaultValue
	}
	return num
}

func String(env string, defaultValue string) string {
	if env == "" || Get(env) == "" {
		return defaultValue
	}
	return os.Getenv(env)
}

// Duration reads a value in seconds.
func Duration(env string, defaultValue time.Duration) time.Duration {
	if env == "" || Get(env) == "" {
		return defaultValue
	}
	seconds, err := strconv.ParseFloat(os.Getenv(env), 64)
	if err != nil || seconds <= 0 {
		return defaultValue
	}
	return time.Duration(seconds * float64(time.Second))
}
