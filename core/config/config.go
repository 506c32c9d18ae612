package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	Azure AzureConfig
	Chat  ChatConfig
	Video VideoConfig
	OTel  OTelConfig
	Env   string
	Port  string
}

// AzureConfig holds the shared Azure OpenAI resource settings.
// Credentials are passed through as-is; no auth flows live here.
type AzureConfig struct {
	APIKey     string
	Endpoint   string
	APIVersion string
}

type ChatConfig struct {
	Deployment  string
	Temperature float64
	TopP        float64
	MaxTokens   int
	KeepPairs   int
}

type VideoConfig struct {
	Endpoint     string
	APIVersion   string
	Deployment   string
	PollInterval time.Duration
	PollTimeout  time.Duration
}

type OTelConfig struct {
	Endpoint       string
	Headers        string
	ServiceName    string
	ServiceVersion string
}

type ServiceType string

const (
	ServiceTypeServer ServiceType = "server"
	ServiceTypeStudio ServiceType = "studio"
)

// Load loads configuration from environment variables.
// In development, it loads from service-specific .env files:
//   - .env.server for the API server
//   - .env.studio for the CLI
//
// Falls back to .env if service-specific file doesn't exist.
func Load(serviceType ServiceType) (Config, error) {
	if getEnv("STUDIO_ENV", "development") == "development" {
		// Try service-specific env file first, fall back to .env
		envFile := fmt.Sprintf(".env.%s", serviceType)
		if err := godotenv.Load(envFile); err != nil {
			_ = godotenv.Load(".env")
		}
	}

	endpoint := strings.TrimSpace(getEnv("AZURE_OPENAI_ENDPOINT", ""))

	cfg := Config{
		Env:  getEnv("STUDIO_ENV", "development"),
		Port: getEnv("PORT", "8080"),
		Azure: AzureConfig{
			APIKey:     getEnv("AZURE_OPENAI_API_KEY", ""),
			Endpoint:   endpoint,
			APIVersion: getEnv("AZURE_OPENAI_API_VERSION", ""),
		},
		Chat: ChatConfig{
			Deployment:  getEnv("AZURE_OPENAI_DEPLOYMENT_NAME", ""),
			Temperature: getEnvFloat("CHAT_TEMPERATURE", 0.7),
			TopP:        getEnvFloat("CHAT_TOP_P", 1.0),
			MaxTokens:   getEnvInt("CHAT_MAX_TOKENS", 500),
			KeepPairs:   getEnvInt("CHAT_KEEP_PAIRS", 20),
		},
		Video: VideoConfig{
			Endpoint:     strings.TrimSpace(getEnv("AZURE_OPENAI_VIDEO_ENDPOINT", endpoint)),
			APIVersion:   getEnv("AZURE_OPENAI_VIDEO_API_VERSION", "preview"),
			Deployment:   getEnv("AZURE_OPENAI_VIDEO_DEPLOYMENT", "sora"),
			PollInterval: getEnvSeconds("VIDEO_POLL_INTERVAL_SECONDS", 3),
			PollTimeout:  getEnvSeconds("VIDEO_POLL_TIMEOUT_SECONDS", 600),
		},
		OTel: OTelConfig{
			Endpoint:       getEnv("OTEL_EXPORTER_OTLP_ENDPOINT", ""),
			Headers:        getEnv("OTEL_EXPORTER_OTLP_HEADERS", ""),
			ServiceName:    getEnv("OTEL_SERVICE_NAME", "studio"),
			ServiceVersion: getEnv("OTEL_SERVICE_VERSION", "dev"),
		},
	}

	if cfg.Azure.APIKey == "" {
		return Config{}, fmt.Errorf("AZURE_OPENAI_API_KEY is required")
	}

	if cfg.Azure.Endpoint == "" {
		return Config{}, fmt.Errorf("AZURE_OPENAI_ENDPOINT is required")
	}

	return cfg, nil
}

func (c Config) IsProduction() bool {
	return c.Env == "production"
}

func (c Config) IsDevelopment() bool {
	return c.Env == "development"
}

// ChatEnabled reports whether the chat surface can run. Chat is off when the
// configured endpoint points at the video jobs API instead of a resource root.
func (c Config) ChatEnabled() bool {
	return c.Azure.APIVersion != "" && !c.Azure.IsJobsEndpoint()
}

// IsJobsEndpoint reports whether the endpoint already addresses the
// video jobs API rather than an Azure resource root.
func (c AzureConfig) IsJobsEndpoint() bool {
	return strings.Contains(c.Endpoint, "/video/generations/jobs")
}

func (c OTelConfig) Enabled() bool {
	return c.Endpoint != ""
}

func (c VideoConfig) Enabled() bool {
	return c.Endpoint != ""
}

func getEnv(key, fallback string) string {
	if value, ok := os.LookupEnv(key); ok {
		return value
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	if value, ok := os.LookupEnv(key); ok {
		if i, err := strconv.Atoi(value); err == nil {
			return i
		}
	}
	return fallback
}

func getEnvFloat(key string, fallback float64) float64 {
	if value, ok := os.LookupEnv(key); ok {
		if f, err := strconv.ParseFloat(value, 64); err == nil {
			return f
		}
	}
	return fallback
}

func getEnvSeconds(key string, fallback int) time.Duration {
	return time.Duration(getEnvInt(key, fallback)) * time.Second
}
