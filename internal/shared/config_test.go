package shared

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestConfig(t *testing.T) {
	t.Run("DefaultConfig", func(t *testing.T) {
		config := DefaultConfig()

		if config.API.BaseURL != "http://localhost:8000" {
			t.Errorf("expected base URL http://localhost:8000, got %s", config.API.BaseURL)
		}
		if config.Output.JSONFilename != "brief-musical.json" {
			t.Errorf("expected json filename brief-musical.json, got %s", config.Output.JSONFilename)
		}
		if config.Output.PDFFilename != "brief-musical.pdf" {
			t.Errorf("expected pdf filename brief-musical.pdf, got %s", config.Output.PDFFilename)
		}
		if !config.History.Enabled {
			t.Error("expected history to be enabled by default")
		}
		if config.History.Path != "./musicbrief.db" {
			t.Errorf("expected history path ./musicbrief.db, got %s", config.History.Path)
		}
		if !config.UI.Stream {
			t.Error("expected streaming to be the default TUI mode")
		}
	})

	t.Run("CreateConfigFile", func(t *testing.T) {
		configPath := filepath.Join(t.TempDir(), "config.toml")

		if err := CreateConfigFile(configPath); err != nil {
			t.Fatalf("failed to create config file: %v", err)
		}

		config, err := LoadConfig(configPath)
		if err != nil {
			t.Fatalf("failed to load created config: %v", err)
		}

		if config.API.BaseURL != DefaultConfig().API.BaseURL {
			t.Errorf("created config base URL doesn't match default")
		}

		if err := CreateConfigFile(configPath); err == nil {
			t.Error("creating config file again should fail")
		}
	})

	t.Run("LoadConfig", func(t *testing.T) {
		configPath := filepath.Join(t.TempDir(), "config.toml")

		testConfig := `log_level = "debug"

[api]
base_url = "https://briefs.example.com"
request_timeout = "30s"

[history]
enabled = false
`
		if err := os.WriteFile(configPath, []byte(testConfig), 0644); err != nil {
			t.Fatalf("failed to write test config: %v", err)
		}

		config, err := LoadConfig(configPath)
		if err != nil {
			t.Fatalf("failed to load config: %v", err)
		}

		if config.API.BaseURL != "https://briefs.example.com" {
			t.Errorf("expected overridden base URL, got %s", config.API.BaseURL)
		}
		if config.LogLevel != "debug" {
			t.Errorf("expected log level debug, got %s", config.LogLevel)
		}
		if config.History.Enabled {
			t.Error("expected history to be disabled")
		}
		if config.Output.PDFFilename != "brief-musical.pdf" {
			t.Errorf("expected missing keys to keep defaults, got %s", config.Output.PDFFilename)
		}

		timeout, err := config.Timeout()
		if err != nil {
			t.Fatalf("Timeout() error = %v", err)
		}
		if timeout != 30*time.Second {
			t.Errorf("expected 30s timeout, got %v", timeout)
		}
	})

	t.Run("LoadConfig rejects bad timeout", func(t *testing.T) {
		configPath := filepath.Join(t.TempDir(), "config.toml")
		if err := os.WriteFile(configPath, []byte("[api]\nrequest_timeout = \"soon\"\n"), 0644); err != nil {
			t.Fatalf("failed to write test config: %v", err)
		}

		_, err := LoadConfig(configPath)
		if !errors.Is(err, ErrInvalidConfig) {
			t.Errorf("expected ErrInvalidConfig, got %v", err)
		}
	})

	t.Run("LoadConfig missing file", func(t *testing.T) {
		if _, err := LoadConfig(filepath.Join(t.TempDir(), "nope.toml")); err == nil {
			t.Error("expected error for missing file")
		}
	})
}

func TestEnv(t *testing.T) {
	t.Run("ApplyEnv prefers MUSICBRIEF_API_URL over VITE_API_URL", func(t *testing.T) {
		t.Setenv(EnvViteAPIURL, "http://vite.local")
		t.Setenv(EnvAPIURL, "http://brief.local")

		config := DefaultConfig()
		config.ApplyEnv()

		if config.API.BaseURL != "http://brief.local" {
			t.Errorf("expected http://brief.local, got %s", config.API.BaseURL)
		}
	})

	t.Run("ApplyEnv falls back to VITE_API_URL", func(t *testing.T) {
		t.Setenv(EnvViteAPIURL, "http://vite.local")
		t.Setenv(EnvAPIURL, "")

		config := DefaultConfig()
		config.ApplyEnv()

		if config.API.BaseURL != "http://vite.local" {
			t.Errorf("expected http://vite.local, got %s", config.API.BaseURL)
		}
	})

	t.Run("LoadEnv reads dotenv file without overriding", func(t *testing.T) {
		t.Setenv(EnvLogLevel, "warn")
		t.Setenv(EnvHistoryPath, "")
		os.Unsetenv(EnvHistoryPath)

		envPath := filepath.Join(t.TempDir(), ".env")
		content := "MUSICBRIEF_LOG_LEVEL=debug\nMUSICBRIEF_HISTORY_PATH=/tmp/briefs.db\n"
		if err := os.WriteFile(envPath, []byte(content), 0644); err != nil {
			t.Fatalf("failed to write env file: %v", err)
		}

		if err := LoadEnv(envPath, filepath.Join(t.TempDir(), "missing.env")); err != nil {
			t.Fatalf("LoadEnv() error = %v", err)
		}
		t.Cleanup(func() { os.Unsetenv(EnvHistoryPath) })

		if got := os.Getenv(EnvLogLevel); got != "warn" {
			t.Errorf("expected existing variable to win, got %s", got)
		}
		if got := os.Getenv(EnvHistoryPath); got != "/tmp/briefs.db" {
			t.Errorf("expected history path from dotenv, got %s", got)
		}
	})
}
