package config

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"
)

// Config contains all runtime settings for the assistant.
type Config struct {
	DataDir      string
	MemoryFile   string
	ReminderLog  string
	LogFile      string
	LogLevel     slog.Level
	OutputDir    string
	TemplateFile string

	BindAddr         string
	MetricsNamespace string

	PersonaID     string
	Language      string
	HistoryWindow int

	BrainProvider string
	BrainModel    string
	BrainMaxTok   int
	BrainTimeout  time.Duration
	BrainHTTPURL  string

	AnthropicAPIKey string
	OpenAIAPIKey    string

	VoiceProvider    string
	VoiceGatewayURL  string
	VoiceGatewayKey  string
	ListenTimeout    time.Duration
	SpeakEnabled     bool
	ReminderInterval time.Duration

	DatabaseURL string
}

// Load reads environment variables and applies safe defaults.
func Load() (Config, error) {
	dataDir := envOrDefault("ARIA_DATA_DIR", ".aria")
	cfg := Config{
		DataDir:          dataDir,
		MemoryFile:       envOrDefault("ARIA_MEMORY_FILE", filepath.Join(dataDir, "memory.json")),
		ReminderLog:      envOrDefault("ARIA_REMINDER_LOG", filepath.Join(dataDir, "reminders.jsonl")),
		LogFile:          envOrDefault("ARIA_LOG_FILE", filepath.Join(dataDir, "aria.log")),
		LogLevel:         parseLogLevel(envOrDefault("ARIA_LOG_LEVEL", "info")),
		OutputDir:        envOrDefault("ARIA_OUTPUT_DIR", filepath.Join(dataDir, "output")),
		TemplateFile:     trimmedEnv("ARIA_TEMPLATE_FILE"),
		BindAddr:         trimmedEnv("ARIA_BIND_ADDR"),
		MetricsNamespace: envOrDefault("ARIA_METRICS_NAMESPACE", "aria"),
		PersonaID:        envOrDefault("ARIA_PERSONA", "warm"),
		Language:         envOrDefault("ARIA_VOICE_LANGUAGE", "en-US"),
		HistoryWindow:    20,
		BrainProvider:    envOrDefault("ARIA_BRAIN_PROVIDER", "auto"),
		BrainModel:       trimmedEnv("ARIA_BRAIN_MODEL"),
		BrainMaxTok:      1024,
		BrainTimeout:     60 * time.Second,
		BrainHTTPURL:     trimmedEnv("ARIA_BRAIN_HTTP_URL"),
		AnthropicAPIKey:  trimmedEnv("ANTHROPIC_API_KEY"),
		OpenAIAPIKey:     trimmedEnv("OPENAI_API_KEY"),
		VoiceProvider:    envOrDefault("ARIA_VOICE_PROVIDER", "auto"),
		VoiceGatewayURL:  trimmedEnv("ARIA_VOICE_GATEWAY_URL"),
		VoiceGatewayKey:  trimmedEnv("ARIA_VOICE_GATEWAY_KEY"),
		ListenTimeout:    12 * time.Second,
		SpeakEnabled:     true,
		ReminderInterval: time.Minute,
		DatabaseURL:      trimmedEnv("DATABASE_URL"),
	}

	var err error
	cfg.HistoryWindow, err = intFromEnv("ARIA_HISTORY_WINDOW", cfg.HistoryWindow)
	if err != nil {
		return Config{}, err
	}
	cfg.BrainMaxTok, err = intFromEnv("ARIA_BRAIN_MAX_TOKENS", cfg.BrainMaxTok)
	if err != nil {
		return Config{}, err
	}
	cfg.BrainTimeout, err = durationFromEnv("ARIA_BRAIN_TIMEOUT", cfg.BrainTimeout)
	if err != nil {
		return Config{}, err
	}
	cfg.ListenTimeout, err = durationFromEnv("ARIA_LISTEN_TIMEOUT", cfg.ListenTimeout)
	if err != nil {
		return Config{}, err
	}
	cfg.ReminderInterval, err = durationFromEnv("ARIA_REMINDER_INTERVAL", cfg.ReminderInterval)
	if err != nil {
		return Config{}, err
	}
	cfg.SpeakEnabled, err = boolFromEnv("ARIA_TTS_ENABLED", cfg.SpeakEnabled)
	if err != nil {
		return Config{}, err
	}

	if cfg.HistoryWindow < 1 {
		return Config{}, fmt.Errorf("ARIA_HISTORY_WINDOW must be at least 1")
	}
	if cfg.BrainMaxTok <= 0 {
		return Config{}, fmt.Errorf("ARIA_BRAIN_MAX_TOKENS must be positive")
	}
	if cfg.BrainTimeout < time.Second {
		return Config{}, fmt.Errorf("ARIA_BRAIN_TIMEOUT must be at least 1s")
	}
	if cfg.ListenTimeout < time.Second {
		return Config{}, fmt.Errorf("ARIA_LISTEN_TIMEOUT must be at least 1s")
	}

	return cfg, nil
}

func envOrDefault(key, fallback string) string {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	return v
}

func trimmedEnv(key string) string {
	return strings.TrimSpace(os.Getenv(key))
}

func parseLogLevel(v string) slog.Level {
	switch strings.ToLower(strings.TrimSpace(v)) {
	case "debug":
		return slog.LevelDebug
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

func durationFromEnv(key string, fallback time.Duration) (time.Duration, error) {
	v := trimmedEnv(key)
	if v == "" {
		return fallback, nil
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		return 0, fmt.Errorf("%s parse error: %w", key, err)
	}
	return d, nil
}

func intFromEnv(key string, fallback int) (int, error) {
	v := trimmedEnv(key)
	if v == "" {
		return fallback, nil
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return 0, fmt.Errorf("%s parse error: %w", key, err)
	}
	return n, nil
}

func boolFromEnv(key string, fallback bool) (bool, error) {
	v := strings.ToLower(trimmedEnv(key))
	if v == "" {
		return fallback, nil
	}
	switch v {
	case "1", "true", "t", "yes", "y", "on":
		return true, nil
	case "0", "false", "f", "no", "n", "off":
		return false, nil
	default:
		return false, fmt.Errorf("%s parse error: expected bool", key)
	}
}
