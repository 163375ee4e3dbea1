package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"
)

// Store backends
const (
	StoreNeo4j    = "neo4j"
	StorePostgres = "postgres"
	StoreMemory   = "memory"
)

// Config contains runtime settings for the job board server
type Config struct {
	LogLevel string
	Host     string // default 0.0.0.0
	Port     string // default PORT env or 8080
	Feed     struct {
		BaseURL       string
		Endpoint      string
		Token         string
		UserAgent     string
		Timeout       time.Duration
		RetryAttempts int
		RetryDelay    time.Duration
		RefreshLimit  int
		RateLimit     float64 // requests per second, 0 = unlimited
	} // external job feed
	Refresh struct {
		Interval time.Duration
		OnStart  bool
	}
	Pagination struct {
		DefaultLimit   int
		MaxLimit       int
		MaxQueryLength int
	}
	StoreBackend string
	Neo4j        struct {
		URI      string
		Username string
		Password string
	}
	DatabaseURL     string
	SheetsCredsPath string
}

// Load populates config from environment variables. Every missing or
// invalid variable is reported in one error.
func Load() (Config, error) {
	cfg := Config{
		LogLevel: getEnv("LOG_LEVEL", "info"),
		Host:     getEnv("MCP_HOST", "0.0.0.0"),
		Port:     getEnv("PORT", "8080"),
	}

	var problems []string
	var missingVars []string

	cfg.Feed.BaseURL = os.Getenv("FEED_BASE_URL")
	cfg.Feed.Endpoint = getEnv("FEED_ENDPOINT", "/jobs")
	cfg.Feed.Token = os.Getenv("FEED_AUTH_TOKEN")
	cfg.Feed.UserAgent = getEnv("FEED_USER_AGENT", "JobBoard-API/1.0")
	cfg.Feed.Timeout = getEnvDuration("FEED_TIMEOUT", 30*time.Second, &problems)
	cfg.Feed.RetryAttempts = getEnvInt("FEED_RETRY_ATTEMPTS", 3, &problems)
	cfg.Feed.RetryDelay = getEnvDuration("FEED_RETRY_DELAY", time.Second, &problems)
	cfg.Feed.RefreshLimit = getEnvInt("FEED_REFRESH_LIMIT", 200000, &problems)
	cfg.Feed.RateLimit = getEnvFloat("FEED_RATE_LIMIT", 0, &problems)

	cfg.Refresh.Interval = getEnvDuration("REFRESH_INTERVAL", time.Hour, &problems)
	cfg.Refresh.OnStart = getEnvBool("REFRESH_ON_START", true, &problems)

	cfg.Pagination.DefaultLimit = getEnvInt("PAGINATION_DEFAULT_LIMIT", 50, &problems)
	cfg.Pagination.MaxLimit = getEnvInt("PAGINATION_MAX_LIMIT", 500, &problems)
	cfg.Pagination.MaxQueryLength = getEnvInt("SEARCH_MAX_QUERY_LENGTH", 200, &problems)

	cfg.Neo4j.URI = os.Getenv("NEO4J_URI")
	cfg.Neo4j.Username = os.Getenv("NEO4J_USERNAME")
	cfg.Neo4j.Password = os.Getenv("NEO4J_PASSWORD")
	cfg.DatabaseURL = os.Getenv("DATABASE_URL")
	cfg.SheetsCredsPath = os.Getenv("GOOGLE_SHEETS_CREDENTIALS_PATH")

	cfg.StoreBackend = strings.ToLower(strings.TrimSpace(os.Getenv("STORE_BACKEND")))
	if cfg.StoreBackend == "" {
		switch {
		case cfg.Neo4j.URI != "":
			cfg.StoreBackend = StoreNeo4j
		case cfg.DatabaseURL != "":
			cfg.StoreBackend = StorePostgres
		default:
			cfg.StoreBackend = StoreMemory
		}
	}

	if cfg.Feed.BaseURL == "" {
		missingVars = append(missingVars, "FEED_BASE_URL")
	}

	switch cfg.StoreBackend {
	case StoreNeo4j:
		if cfg.Neo4j.URI == "" {
			missingVars = append(missingVars, "NEO4J_URI")
		}
		if cfg.Neo4j.Username == "" {
			missingVars = append(missingVars, "NEO4J_USERNAME")
		}
		if cfg.Neo4j.Password == "" {
			missingVars = append(missingVars, "NEO4J_PASSWORD")
		}
	case StorePostgres:
		if cfg.DatabaseURL == "" {
			missingVars = append(missingVars, "DATABASE_URL")
		}
	case StoreMemory:
	default:
		problems = append(problems, fmt.Sprintf("STORE_BACKEND: unknown backend %q", cfg.StoreBackend))
	}

	if cfg.Feed.RetryAttempts < 1 {
		problems = append(problems, "FEED_RETRY_ATTEMPTS: must be at least 1")
	}
	if cfg.Refresh.Interval <= 0 {
		problems = append(problems, "REFRESH_INTERVAL: must be positive")
	}
	if cfg.Pagination.DefaultLimit < 1 || cfg.Pagination.DefaultLimit > cfg.Pagination.MaxLimit {
		problems = append(problems, "PAGINATION_DEFAULT_LIMIT: must be between 1 and PAGINATION_MAX_LIMIT")
	}

	if len(missingVars) > 0 {
		problems = append([]string{"missing required environment variables: " + strings.Join(missingVars, ", ")}, problems...)
	}
	if len(problems) > 0 {
		return cfg, fmt.Errorf("invalid configuration: %s", strings.Join(problems, "; "))
	}

	return cfg, nil
}

func getEnv(key, fallback string) string {
	if v := strings.TrimSpace(os.Getenv(key)); v != "" {
		return v
	}
	return fallback
}

func getEnvInt(key string, fallback int, problems *[]string) int {
	v := strings.TrimSpace(os.Getenv(key))
	if v == "" {
		return fallback
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		*problems = append(*problems, fmt.Sprintf("%s: not an integer: %q", key, v))
		return fallback
	}
	return n
}

func getEnvFloat(key string, fallback float64, problems *[]string) float64 {
	v := strings.TrimSpace(os.Getenv(key))
	if v == "" {
		return fallback
	}
	f, err := strconv.ParseFloat(v, 64)
	if err != nil || f < 0 {
		*problems = append(*problems, fmt.Sprintf("%s: not a non-negative number: %q", key, v))
		return fallback
	}
	return f
}

func getEnvBool(key string, fallback bool, problems *[]string) bool {
	v := strings.TrimSpace(os.Getenv(key))
	if v == "" {
		return fallback
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		*problems = append(*problems, fmt.Sprintf("%s: not a boolean: %q", key, v))
		return fallback
	}
	return b
}

// getEnvDuration accepts Go durations ("30s") or bare milliseconds ("30000")
func getEnvDuration(key string, fallback time.Duration, problems *[]string) time.Duration {
	v := strings.TrimSpace(os.Getenv(key))
	if v == "" {
		return fallback
	}
	if ms, err := strconv.Atoi(v); err == nil {
		return time.Duration(ms) * time.Millisecond
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		*problems = append(*problems, fmt.Sprintf("%s: not a duration: %q", key, v))
		return fallback
	}
	return d
}
