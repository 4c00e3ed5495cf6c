package config

import (
	"os"
	"strconv"
	"strings"
	"time"

	"job-recommender/internal/shared/telemetry"
)

const (
	defaultJobRows        = 60
	defaultMaxUploadBytes = 10 << 20
)

// Config holds application configuration.
type Config struct {
	Port            string
	Env             string
	CORSAllowOrigin []string
	LogLevel        string
	LogFormat       string

	LLMProvider   string
	LLMModel      string
	OpenAIAPIKey  string
	OpenAIBaseURL string
	OpenAITimeout time.Duration
	GeminiAPIKey  string
	GeminiBaseURL string
	PromptsFile   string

	// Empty actor ids and location select the job sources' built-in defaults.
	ApifyToken       string
	ApifyBaseURL     string
	LinkedInActorID  string
	LinkedInLocation string
	NaukriActorID    string
	JobRows          int
	JobSearchTimeout time.Duration

	MaxUploadBytes int64
	RateLimitRPS   float64
	RateLimitBurst int
}

// Load reads configuration from environment variables with sensible defaults.
func Load() Config {
	// Best-effort load of local env files for dev convenience.
	loadEnvFiles(".env", "cmd/.env")

	env := normalizeEnv(getEnv("ENV", "dev"))
	provider := normalizeProvider(getEnv("LLM_PROVIDER", "openai"))

	cfg := Config{
		Port:            getEnv("PORT", "8080"),
		Env:             env,
		CORSAllowOrigin: splitAndTrim(getEnv("CORS_ALLOW_ORIGINS", "http://localhost:5173")),
		LogLevel:        getEnv("LOG_LEVEL", "info"),
		LogFormat:       getEnv("LOG_FORMAT", "json"),

		LLMProvider:   provider,
		LLMModel:      getEnv("LLM_MODEL", defaultModel(provider)),
		OpenAIAPIKey:  os.Getenv("OPENAI_API_KEY"),
		OpenAIBaseURL: getEnv("OPENAI_BASE_URL", "https://api.openai.com/v1"),
		OpenAITimeout: getSeconds("OPENAI_TIMEOUT_SECONDS", 120*time.Second),
		GeminiAPIKey:  os.Getenv("GEMINI_API_KEY"),
		GeminiBaseURL: getEnv("GEMINI_BASE_URL", ""),
		PromptsFile:   getEnv("PROMPTS_FILE", ""),

		ApifyToken:       os.Getenv("APIFY_TOKEN"),
		ApifyBaseURL:     getEnv("APIFY_BASE_URL", "https://api.apify.com"),
		LinkedInActorID:  os.Getenv("LINKEDIN_ACTOR_ID"),
		LinkedInLocation: os.Getenv("LINKEDIN_LOCATION"),
		NaukriActorID:    os.Getenv("NAUKRI_ACTOR_ID"),
		JobRows:          getInt("JOB_ROWS", defaultJobRows),
		JobSearchTimeout: getSeconds("JOB_SEARCH_TIMEOUT_SECONDS", 5*time.Minute),

		MaxUploadBytes: int64(getInt("MAX_UPLOAD_BYTES", defaultMaxUploadBytes)),
		RateLimitRPS:   getFloat("RATE_LIMIT_RPS", 1),
		RateLimitBurst: getInt("RATE_LIMIT_BURST", 10),
	}

	if cfg.ApifyToken == "" {
		telemetry.Warn("config.apify_token_missing", map[string]any{"effect": "job searches return no results"})
	}
	return cfg
}

func getEnv(key, def string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return def
}

func getInt(key string, def int) int {
	raw := strings.TrimSpace(os.Getenv(key))
	if raw == "" {
		return def
	}
	parsed, err := strconv.Atoi(raw)
	if err != nil || parsed <= 0 {
		telemetry.Warn("config.invalid_value", map[string]any{"key": key, "value": raw, "default": def})
		return def
	}
	return parsed
}

func getFloat(key string, def float64) float64 {
	raw := strings.TrimSpace(os.Getenv(key))
	if raw == "" {
		return def
	}
	parsed, err := strconv.ParseFloat(raw, 64)
	if err != nil || parsed < 0 {
		telemetry.Warn("config.invalid_value", map[string]any{"key": key, "value": raw, "default": def})
		return def
	}
	return parsed
}

func getSeconds(key string, def time.Duration) time.Duration {
	raw := strings.TrimSpace(os.Getenv(key))
	if raw == "" {
		return def
	}
	parsed, err := strconv.Atoi(raw)
	if err != nil || parsed <= 0 {
		return def
	}
	return time.Duration(parsed) * time.Second
}

func splitAndTrim(raw string) []string {
	parts := strings.Split(raw, ",")
	var out []string
	for _, p := range parts {
		if trimmed := strings.TrimSpace(p); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return out
}

func normalizeEnv(raw string) string {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "production", "prod":
		return "production"
	case "staging":
		return "staging"
	case "local":
		return "local"
	default:
		return "dev"
	}
}

func normalizeProvider(raw string) string {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "gemini", "google":
		return "gemini"
	case "none", "off", "disabled":
		return "none"
	default:
		return "openai"
	}
}

func defaultModel(provider string) string {
	switch provider {
	case "gemini":
		return "gemini-2.5-flash"
	default:
		return "gpt-4o-mini"
	}
}
