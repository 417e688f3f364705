package config

import (
	"testing"
	"time"
)

func TestLoadDefaults(t *testing.T) {
	setCoreEnvEmpty(t)

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	if cfg.BrainProvider != "auto" {
		t.Fatalf("BrainProvider = %q, want %q", cfg.BrainProvider, "auto")
	}
	if cfg.VoiceProvider != "auto" {
		t.Fatalf("VoiceProvider = %q, want %q", cfg.VoiceProvider, "auto")
	}
	if cfg.HistoryWindow != 20 {
		t.Fatalf("HistoryWindow = %d, want 20", cfg.HistoryWindow)
	}
	if cfg.PersonaID != "warm" {
		t.Fatalf("PersonaID = %q, want %q", cfg.PersonaID, "warm")
	}
	if !cfg.SpeakEnabled {
		t.Fatalf("SpeakEnabled = false, want true by default")
	}
	if cfg.BindAddr != "" {
		t.Fatalf("BindAddr = %q, want empty default", cfg.BindAddr)
	}
}

func TestLoadExplicitValues(t *testing.T) {
	setCoreEnvEmpty(t)
	t.Setenv("ARIA_HISTORY_WINDOW", "6")
	t.Setenv("ARIA_BRAIN_TIMEOUT", "30s")
	t.Setenv("ARIA_TTS_ENABLED", "false")
	t.Setenv("ARIA_MEMORY_FILE", "/tmp/aria-mem.json")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if cfg.HistoryWindow != 6 {
		t.Fatalf("HistoryWindow = %d, want 6", cfg.HistoryWindow)
	}
	if cfg.BrainTimeout != 30*time.Second {
		t.Fatalf("BrainTimeout = %v, want 30s", cfg.BrainTimeout)
	}
	if cfg.SpeakEnabled {
		t.Fatalf("SpeakEnabled = true, want false")
	}
	if cfg.MemoryFile != "/tmp/aria-mem.json" {
		t.Fatalf("MemoryFile = %q, want explicit value", cfg.MemoryFile)
	}
}

func TestLoadRejectsBadValues(t *testing.T) {
	cases := []struct {
		name  string
		key   string
		value string
	}{
		{"zero window", "ARIA_HISTORY_WINDOW", "0"},
		{"non-numeric window", "ARIA_HISTORY_WINDOW", "many"},
		{"short brain timeout", "ARIA_BRAIN_TIMEOUT", "100ms"},
		{"bad bool", "ARIA_TTS_ENABLED", "maybe"},
		{"negative max tokens", "ARIA_BRAIN_MAX_TOKENS", "-5"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			setCoreEnvEmpty(t)
			t.Setenv(tc.key, tc.value)
			if _, err := Load(); err == nil {
				t.Fatalf("Load() expected error for %s=%q", tc.key, tc.value)
			}
		})
	}
}

func setCoreEnvEmpty(t *testing.T) {
	t.Helper()
	keys := []string{
		"ARIA_DATA_DIR",
		"ARIA_MEMORY_FILE",
		"ARIA_REMINDER_LOG",
		"ARIA_LOG_FILE",
		"ARIA_LOG_LEVEL",
		"ARIA_OUTPUT_DIR",
		"ARIA_TEMPLATE_FILE",
		"ARIA_BIND_ADDR",
		"ARIA_METRICS_NAMESPACE",
		"ARIA_PERSONA",
		"ARIA_VOICE_LANGUAGE",
		"ARIA_HISTORY_WINDOW",
		"ARIA_BRAIN_PROVIDER",
		"ARIA_BRAIN_MODEL",
		"ARIA_BRAIN_MAX_TOKENS",
		"ARIA_BRAIN_TIMEOUT",
		"ARIA_BRAIN_HTTP_URL",
		"ANTHROPIC_API_KEY",
		"OPENAI_API_KEY",
		"ARIA_VOICE_PROVIDER",
		"ARIA_VOICE_GATEWAY_URL",
		"ARIA_VOICE_GATEWAY_KEY",
		"ARIA_LISTEN_TIMEOUT",
		"ARIA_REMINDER_INTERVAL",
		"ARIA_TTS_ENABLED",
		"DATABASE_URL",
	}
	for _, k := range keys {
		t.Setenv(k, "")
	}
}
