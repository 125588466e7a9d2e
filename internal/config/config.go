package config

import (
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
	"go.uber.org/zap"
)

type Config struct {
	Server struct {
		Port         string
		ReadTimeout  time.Duration
		WriteTimeout time.Duration
	}

	Providers struct {
		OpenMeteoURL      string
		IPAPIURL          string
		UnsplashURL       string
		UnsplashAccessKey string
	}

	Settings struct {
		Path string // empty means the platform default
	}

	Photos struct {
		Width  int
		Height int
	}

	Panel struct {
		StaticDir string
	}

	CircuitBreaker struct {
		Timeout time.Duration
	}

	Retry struct {
		MaxRetries int
		Delay      time.Duration
		Multiplier float64
	}
}

func LoadConfig() (*Config, error) {
	// Load .env file if exists
	if err := godotenv.Load(); err != nil {
		zap.L().Info("No .env file found, using environment variables")
	}

	cfg := &Config{}

	// Server configuration
	cfg.Server.Port = getEnv("IDLEVIEW_PORT", "8737")
	cfg.Server.ReadTimeout = parseDuration(getEnv("IDLEVIEW_READ_TIMEOUT", "10s"))
	cfg.Server.WriteTimeout = parseDuration(getEnv("IDLEVIEW_WRITE_TIMEOUT", "10s"))

	// Provider configuration
	cfg.Providers.OpenMeteoURL = getEnv("OPENMETEO_URL", "https://api.open-meteo.com/v1")
	cfg.Providers.IPAPIURL = getEnv("IPAPI_URL", "http://ip-api.com")
	cfg.Providers.UnsplashURL = getEnv("UNSPLASH_URL", "https://api.unsplash.com")
	cfg.Providers.UnsplashAccessKey = getEnv("UNSPLASH_ACCESS_KEY", "")

	// Settings storage
	cfg.Settings.Path = getEnv("IDLEVIEW_SETTINGS_PATH", "")

	// Photo dimensions requested from Unsplash
	cfg.Photos.Width = parseInt(getEnv("PHOTO_WIDTH", "1920"))
	cfg.Photos.Height = parseInt(getEnv("PHOTO_HEIGHT", "1080"))

	// Control panel static files
	cfg.Panel.StaticDir = getEnv("IDLEVIEW_PANEL_DIR", "./idleview-control")

	// Circuit breaker configuration
	cfg.CircuitBreaker.Timeout = parseDuration(getEnv("CIRCUIT_BREAKER_TIMEOUT", "30s"))

	// Retry configuration
	cfg.Retry.MaxRetries = parseInt(getEnv("MAX_RETRIES", "3"))
	cfg.Retry.Delay = parseDuration(getEnv("RETRY_DELAY", "1s"))
	cfg.Retry.Multiplier = parseFloat(getEnv("RETRY_MULTIPLIER", "2"))

	return cfg, nil
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func parseDuration(value string) time.Duration {
	duration, err := time.ParseDuration(value)
	if err != nil {
		zap.L().Warn("Failed to parse duration", zap.String("value", value), zap.Error(err))
		return 0
	}
	return duration
}

func parseInt(value string) int {
	intValue, err := strconv.Atoi(value)
	if err != nil {
		zap.L().Warn("Failed to parse int", zap.String("value", value), zap.Error(err))
		return 0
	}
	return intValue
}

func parseFloat(value string) float64 {
	floatValue, err := strconv.ParseFloat(value, 64)
	if err != nil {
		zap.L().Warn("Failed to parse float", zap.String("value", value), zap.Error(err))
		return 0
	}
	return floatValue
}
