package config

import (
	"fmt"
	"log/slog"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Chat variants served on POST /chat.
const (
	VariantProfile = "profile"
	VariantSimple  = "simple"
)

// Model providers understood by services.NewConversationClient.
const (
	ProviderGemini    = "gemini"
	ProviderArk       = "ark"
	ProviderOpenAI    = "openai"
	ProviderAnthropic = "anthropic"
	ProviderOllama    = "ollama"
)

type Config struct {
	// Server
	Port             string
	Env              string
	ChatVariant      string
	HTTPWriteTimeout time.Duration
	FrontendURL      string
	RateLimitPerMin  int

	// Database
	DatabaseURL   string
	MigrationsDir string

	// Redis (optional)
	RedisURL string

	// JWT (optional)
	JWTSecret string

	// Model
	ModelProvider     string
	ModelName         string
	ModelTemperature  float64
	GeminiAPIKey      string
	ArkAPIKey         string
	ArkBaseURL        string
	ArkRegion         string
	OpenAIAPIKey      string
	AnthropicAPIKey   string
	OllamaHost        string
	DriveSafetyNotice bool

	// Logging
	LogFile  string
	LogLevel slog.Level
}

func Load() *Config {
	// Load .env file if it exists
	godotenv.Load()

	cfg := &Config{
		Port:              getEnvOrDefault("PORT", "5000"),
		Env:               getEnvOrDefault("ENV", "development"),
		ChatVariant:       strings.ToLower(getEnvOrDefault("CHAT_VARIANT", VariantProfile)),
		HTTPWriteTimeout:  getEnvAsDurationOrDefault("HTTP_WRITE_TIMEOUT", 60*time.Second),
		FrontendURL:       getEnvOrDefault("FRONTEND_URL", "*"),
		RateLimitPerMin:   getEnvAsIntOrDefault("RATE_LIMIT_PER_MINUTE", 30),
		MigrationsDir:     getEnvOrDefault("MIGRATIONS_DIR", "migrations"),
		RedisURL:          getEnvOrDefault("REDIS_URL", ""),
		JWTSecret:         getEnvOrDefault("JWT_SECRET", ""),
		ModelProvider:     strings.ToLower(getEnvOrDefault("MODEL_PROVIDER", ProviderGemini)),
		ModelTemperature:  getEnvAsFloatOrDefault("MODEL_TEMPERATURE", 0.3),
		ArkBaseURL:        getEnvOrDefault("ARK_BASE_URL", "https://ark.cn-beijing.volces.com/api/v3"),
		ArkRegion:         getEnvOrDefault("ARK_REGION", "cn-beijing"),
		OllamaHost:        getEnvOrDefault("OLLAMA_HOST", "http://localhost:11434"),
		DriveSafetyNotice: getEnvAsBoolOrDefault("DRIVE_SAFETY_NOTICE", true),
		LogFile:           getEnvOrDefault("LOG_FILE", ""),
		LogLevel:          parseLogLevel(getEnvOrDefault("LOG_LEVEL", "INFO")),
	}

	if cfg.ChatVariant != VariantSimple {
		cfg.ChatVariant = VariantProfile
		cfg.DatabaseURL = mustGetEnv("DATABASE_URL")
	} else {
		cfg.DatabaseURL = getEnvOrDefault("DATABASE_URL", "")
	}

	// Only the selected provider's credential is required.
	switch cfg.ModelProvider {
	case ProviderGemini:
		cfg.GeminiAPIKey = mustGetEnv("GEMINI_API_KEY")
	case ProviderArk:
		cfg.ArkAPIKey = mustGetEnv("ARK_API_KEY")
	case ProviderOpenAI:
		cfg.OpenAIAPIKey = mustGetEnv("OPENAI_API_KEY")
	case ProviderAnthropic:
		cfg.AnthropicAPIKey = mustGetEnv("ANTHROPIC_API_KEY")
	case ProviderOllama:
	default:
		panic(fmt.Sprintf("unsupported MODEL_PROVIDER %q", cfg.ModelProvider))
	}
	cfg.ModelName = getEnvOrDefault("MODEL_NAME", defaultModelName(cfg.ModelProvider))

	return cfg
}

// LoadDatabase reads only what the migrate command needs.
func LoadDatabase() (databaseURL, migrationsDir string) {
	godotenv.Load()
	return mustGetEnv("DATABASE_URL"), getEnvOrDefault("MIGRATIONS_DIR", "migrations")
}

// LoadJWTSecret reads only JWT_SECRET.
func LoadJWTSecret() string {
	godotenv.Load()
	return mustGetEnv("JWT_SECRET")
}

// ProfileEnabled reports whether the profile-aware endpoints are served.
func (c *Config) ProfileEnabled() bool {
	return c.ChatVariant == VariantProfile
}

func defaultModelName(provider string) string {
	switch provider {
	case ProviderOpenAI:
		return "gpt-4o-mini"
	case ProviderAnthropic:
		return "claude-3-5-haiku-latest"
	case ProviderOllama:
		return "llama3.1"
	case ProviderArk:
		return "doubao-seed-1-6-flash-250615"
	default:
		return "gemini-2.5-flash"
	}
}

func mustGetEnv(key string) string {
	val := os.Getenv(key)
	if val == "" {
		panic(fmt.Sprintf("required environment variable %s is not set", key))
	}
	return val
}

func getEnvOrDefault(key, defaultVal string) string {
	val := os.Getenv(key)
	if val == "" {
		return defaultVal
	}
	return val
}

func getEnvAsIntOrDefault(key string, defaultVal int) int {
	val := os.Getenv(key)
	if val == "" {
		return defaultVal
	}
	n, err := strconv.Atoi(val)
	if err != nil {
		return defaultVal
	}
	return n
}

func getEnvAsFloatOrDefault(key string, defaultVal float64) float64 {
	val := os.Getenv(key)
	if val == "" {
		return defaultVal
	}
	f, err := strconv.ParseFloat(val, 64)
	if err != nil {
		return defaultVal
	}
	return f
}

func getEnvAsBoolOrDefault(key string, defaultVal bool) bool {
	val := os.Getenv(key)
	if val == "" {
		return defaultVal
	}
	b, err := strconv.ParseBool(val)
	if err != nil {
		return defaultVal
	}
	return b
}

func getEnvAsDurationOrDefault(key string, defaultVal time.Duration) time.Duration {
	val := os.Getenv(key)
	if val == "" {
		return defaultVal
	}
	d, err := time.ParseDuration(val)
	if err != nil {
		return defaultVal
	}
	return d
}

func parseLogLevel(s string) slog.Level {
	switch strings.ToUpper(s) {
	case "DEBUG":
		return slog.LevelDebug
	case "WARN", "WARNING":
		return slog.LevelWarn
	case "ERROR":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
