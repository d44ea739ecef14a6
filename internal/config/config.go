package config

import (
	"log"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	App    AppConfig
	Keys   APIKeys
	Ai     AIConfig
	Search SearchConfig
	Media  MediaConfig
}

type AppConfig struct {
	Port               string
	Environment        string
	LogFilePath        string
	CorsAllowedOrigins string
	NatsURL            string // empty disables the NATS publisher
	RedisURL           string // empty disables redis cache + hub fan-out
	OtelEnabled        bool
	OtelEndpoint       string
}

type APIKeys struct {
	GoogleGemini string
}

type AIConfig struct {
	LLMProvider     string   // "gemini" or "ollama"
	ModelCandidates []string // tried in order at startup
	OllamaBaseURL   string
	GeminiBaseURL   string
	ProbePrompt     string
}

type SearchConfig struct {
	OpenLibraryBaseURL string
	CoverBaseURL       string
	ArchiveBaseURL     string
	CacheDriver        string // "memory", "redis" or "none"
	CacheTTL           time.Duration
}

type MediaConfig struct {
	Dir            string
	UploadMaxBytes int
}

func Load() *Config {
	if err := godotenv.Load(); err != nil {
		log.Println("Note: .env file not found, using system environment")
	}

	return &Config{
		App: AppConfig{
			Port:               getEnv("APP_PORT", "5000"),
			Environment:        getEnv("GO_ENV", "development"),
			LogFilePath:        getEnv("LOG_FILE_PATH", "logs/app.log"),
			CorsAllowedOrigins: getEnv("CORS_ALLOWED_ORIGINS", "*"),
			NatsURL:            getEnv("NATS_URL", ""),
			RedisURL:           getEnv("REDIS_URL", ""),
			OtelEnabled:        getEnv("OTEL_ENABLED", "false") == "true",
			OtelEndpoint:       getEnv("OTEL_EXPORTER_OTLP_ENDPOINT", "localhost:4318"),
		},
		Keys: APIKeys{
			GoogleGemini: getEnv("GOOGLE_GEMINI_API_KEY", ""),
		},
		Ai: AIConfig{
			LLMProvider:     getEnv("LLM_PROVIDER", "gemini"),
			ModelCandidates: getEnvAsList("LLM_MODEL_CANDIDATES", []string{"gemini-2.5-flash", "gemini-2.5-pro", "gemini-2.0-pro"}),
			OllamaBaseURL:   getEnv("OLLAMA_BASE_URL", "http://localhost:11434"),
			GeminiBaseURL:   getEnv("GEMINI_BASE_URL", "https://generativelanguage.googleapis.com/v1beta"),
			ProbePrompt:     getEnv("LLM_PROBE_PROMPT", "Hello"),
		},
		Search: SearchConfig{
			OpenLibraryBaseURL: getEnv("OPEN_LIBRARY_BASE_URL", "https://openlibrary.org"),
			CoverBaseURL:       getEnv("OPEN_LIBRARY_COVER_BASE_URL", "https://covers.openlibrary.org"),
			ArchiveBaseURL:     getEnv("ARCHIVE_BASE_URL", "https://archive.org"),
			CacheDriver:        getEnv("SEARCH_CACHE_DRIVER", "memory"),
			CacheTTL:           getEnvAsDuration("SEARCH_CACHE_TTL", 10*time.Minute),
		},
		Media: MediaConfig{
			Dir:            getEnv("MEDIA_DIR", "static/music"),
			UploadMaxBytes: getEnvAsInt("UPLOAD_MAX_BYTES", 50*1024*1024),
		},
	}
}

func (c *Config) IsProduction() bool {
	return c.App.Environment == "production"
}

func getEnv(key, fallback string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return fallback
}

func getEnvAsInt(key string, fallback int) int {
	strValue := getEnv(key, "")
	if value, err := strconv.Atoi(strValue); err == nil {
		return value
	}
	return fallback
}

func getEnvAsDuration(key string, fallback time.Duration) time.Duration {
	strValue := getEnv(key, "")
	if value, err := time.ParseDuration(strValue); err == nil {
		return value
	}
	return fallback
}

// getEnvAsList splits a comma separated value, dropping blank entries.
func getEnvAsList(key string, fallback []string) []string {
	strValue := getEnv(key, "")
	if strValue == "" {
		return fallback
	}
	var out []string
	for _, part := range strings.Split(strValue, ",") {
		if p := strings.TrimSpace(part); p != "" {
			out = append(out, p)
		}
	}
	if len(out) == 0 {
		return fallback
	}
	return out
}
