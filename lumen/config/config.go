package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	ServerAddr string
	LogDir     string

	LLMProvider    string
	LLMBaseURL     string
	LLMAPIKey      string
	DecisionModel  string
	SynthesisModel string
	VisionModel    string
	LLMTimeout     time.Duration

	SearchProvider   string
	BraveAPIKey      string
	TavilyAPIKey     string
	SearchMaxResults int

	FetchMode        string
	FetchTimeout     time.Duration
	FetchMaxChars    int
	FetchConcurrency int

	PromptsFile string

	UploadDir      string
	MaxUploadBytes int64
	MinIOEndpoint  string
	MinIOAccessKey string
	MinIOSecretKey string
	MinIOBucket    string

	DBUser     string
	DBPassword string
	DBHost     string
	DBPort     string
	DBName     string
	JWTSecret  string
}

const defaultModel = "qwen/qwen-2.5-coder-32b-instruct:free"

func LoadConfig() Config {
	// a missing .env is fine, the process environment still applies
	_ = godotenv.Load()

	apiKey := getEnv("LLM_API_KEY", "")
	if apiKey == "" {
		apiKey = getEnv("OPENROUTER_API_KEY", "")
	}

	return Config{
		ServerAddr: getEnv("SERVER_ADDR", ":5000"),
		LogDir:     getEnv("LOG_DIR", "./logs"),

		LLMProvider:    getEnv("LLM_PROVIDER", "openrouter"),
		LLMBaseURL:     getEnv("LLM_BASE_URL", ""),
		LLMAPIKey:      apiKey,
		DecisionModel:  getEnv("DECISION_MODEL", defaultModel),
		SynthesisModel: getEnv("SYNTHESIS_MODEL", defaultModel),
		VisionModel:    getEnv("VISION_MODEL", "qwen/qwen2.5-vl-32b-instruct:free"),
		LLMTimeout:     getDuration("LLM_TIMEOUT", 60*time.Second),

		SearchProvider:   getEnv("SEARCH_PROVIDER", "duckduckgo"),
		BraveAPIKey:      getEnv("BRAVE_API_KEY", ""),
		TavilyAPIKey:     getEnv("TAVILY_API_KEY", ""),
		SearchMaxResults: getInt("SEARCH_MAX_RESULTS", 12),

		FetchMode:        getEnv("FETCH_MODE", "http"),
		FetchTimeout:     getDuration("FETCH_TIMEOUT", 15*time.Second),
		FetchMaxChars:    getInt("FETCH_MAX_CHARS", 9500),
		FetchConcurrency: getInt("FETCH_CONCURRENCY", 12),

		PromptsFile: getEnv("PROMPTS_FILE", ""),

		UploadDir:      getEnv("UPLOAD_DIR", "uploads"),
		MaxUploadBytes: int64(getInt("MAX_UPLOAD_BYTES", 16*1024*1024)),
		MinIOEndpoint:  getEnv("MINIO_ENDPOINT", ""),
		MinIOAccessKey: getEnv("MINIO_ACCESS_KEY", ""),
		MinIOSecretKey: getEnv("MINIO_SECRET_KEY", ""),
		MinIOBucket:    getEnv("MINIO_BUCKET", "lumen-uploads"),

		DBUser:     getEnv("DB_USER", ""),
		DBPassword: getEnv("DB_PASSWORD", ""),
		DBHost:     getEnv("DB_HOST", ""),
		DBPort:     getEnv("DB_PORT", "5432"),
		DBName:     getEnv("DB_NAME", ""),
		JWTSecret:  getEnv("JWT_SECRET", ""),
	}
}

// Validate reports the first setting that cannot be used to build the service.
func (c Config) Validate() error {
	switch c.LLMProvider {
	case "openrouter", "openai", "groq", "ollama":
	default:
		return fmt.Errorf("unknown LLM_PROVIDER %q", c.LLMProvider)
	}
	switch c.SearchProvider {
	case "duckduckgo", "brave", "tavily":
	default:
		return fmt.Errorf("unknown SEARCH_PROVIDER %q", c.SearchProvider)
	}
	switch c.FetchMode {
	case "http", "browser":
	default:
		return fmt.Errorf("unknown FETCH_MODE %q", c.FetchMode)
	}
	if c.SearchMaxResults <= 0 {
		return fmt.Errorf("SEARCH_MAX_RESULTS must be positive, got %d", c.SearchMaxResults)
	}
	if c.FetchMaxChars <= 0 {
		return fmt.Errorf("FETCH_MAX_CHARS must be positive, got %d", c.FetchMaxChars)
	}
	if c.FetchConcurrency <= 0 {
		return fmt.Errorf("FETCH_CONCURRENCY must be positive, got %d", c.FetchConcurrency)
	}
	if c.FetchTimeout <= 0 || c.LLMTimeout <= 0 {
		return fmt.Errorf("timeouts must be positive")
	}
	if c.LLMProvider != "ollama" && c.LLMAPIKey == "" {
		return fmt.Errorf("LLM_API_KEY (or OPENROUTER_API_KEY) not defined")
	}
	return nil
}

// DatabaseEnabled is true when enough settings exist to open postgres.
func (c Config) DatabaseEnabled() bool {
	return c.DBHost != "" && c.DBName != ""
}

// AuthEnabled gates the JWT middleware and the /auth routes.
func (c Config) AuthEnabled() bool {
	return c.JWTSecret != "" && c.DatabaseEnabled()
}

func (c Config) MinIOEnabled() bool {
	return c.MinIOEndpoint != ""
}

func getEnv(key, fallback string) string {
	value := os.Getenv(key)
	if value != "" {
		return value
	}
	return fallback
}

func getInt(key string, fallback int) int {
	raw := os.Getenv(key)
	if raw == "" {
		return fallback
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		return fallback
	}
	return v
}

// getDuration accepts Go durations ("15s") or bare seconds ("15").
func getDuration(key string, fallback time.Duration) time.Duration {
	raw := os.Getenv(key)
	if raw == "" {
		return fallback
	}
	if d, err := time.ParseDuration(raw); err == nil {
		return d
	}
	if secs, err := strconv.Atoi(raw); err == nil {
		return time.Duration(secs) * time.Second
	}
	return fallback
}
