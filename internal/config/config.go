package config

import (
	"os"
	"strconv"
	"strings"
	"time"

	"voice-trends-go/internal/alerts"
)

type Config struct {
	Port        string
	Environment string
	LogLevel    string
	DatasetPath string

	Copilot Copilot
	Alerts  Alerts
}

// Copilot configures the remote model used by the chart resolver.
// An empty APIKey disables the remote path.
type Copilot struct {
	APIKey     string
	Model      string
	BaseURL    string
	Timeout    time.Duration
	MaxRetries uint64
}

type Alerts struct {
	ComplaintThreshold int
	Window             time.Duration
}

// Load reads configuration from the environment. Call godotenv.Load first
// if a .env file should be honoured.
func Load() *Config {
	return &Config{
		Port:        envOr("PORT", "8080"),
		Environment: os.Getenv("ENVIRONMENT"),
		LogLevel:    envOr("LOG_LEVEL", "info"),
		DatasetPath: envOr("DATASET_PATH", "calls.json"),
		Copilot: Copilot{
			APIKey:     strings.TrimSpace(os.Getenv("OPENAI_API_KEY")),
			Model:      envOr("OPENAI_MODEL", "gpt-4o-mini"),
			BaseURL:    envOr("OPENAI_BASE_URL", "https://api.openai.com/v1/chat/completions"),
			Timeout:    envOrDuration("COPILOT_TIMEOUT", 15*time.Second),
			MaxRetries: uint64(envOrInt("COPILOT_MAX_RETRIES", 1)),
		},
		Alerts: Alerts{
			ComplaintThreshold: envOrInt("ALERT_COMPLAINT_THRESHOLD", alerts.DefaultComplaintThreshold),
			Window:             envOrDuration("ALERT_WINDOW", alerts.DefaultWindow),
		},
	}
}

func envOr(k, def string) string {
	if v := os.Getenv(k); v != "" {
		return v
	}
	return def
}

func envOrInt(k string, def int) int {
	v := os.Getenv(k)
	if v == "" {
		return def
	}
	n, err := strconv.Atoi(v)
	if err != nil || n < 0 {
		return def
	}
	return n
}

func envOrDuration(k string, def time.Duration) time.Duration {
	v := os.Getenv(k)
	if v == "" {
		return def
	}
	d, err := time.ParseDuration(v)
	if err != nil || d <= 0 {
		return def
	}
	return d
}
