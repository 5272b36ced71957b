package shared

import (
	_ "embed"
	"fmt"
	"os"
	"time"

	"github.com/BurntSushi/toml"
	"github.com/joho/godotenv"
)

//go:embed config.example.toml
var exampleConf []byte

const (
	EnvAPIURL      = "MUSICBRIEF_API_URL"
	EnvViteAPIURL  = "VITE_API_URL"
	EnvLogLevel    = "MUSICBRIEF_LOG_LEVEL"
	EnvHistoryPath = "MUSICBRIEF_HISTORY_PATH"
)

// Config represents the application configuration loaded from a TOML file.
type Config struct {
	LogLevel string        `toml:"log_level"`
	API      APIConfig     `toml:"api"`
	Output   OutputConfig  `toml:"output"`
	History  HistoryConfig `toml:"history"`
	UI       UIConfig      `toml:"ui"`
}

// APIConfig locates the brief generation API.
type APIConfig struct {
	BaseURL        string `toml:"base_url"`
	RequestTimeout string `toml:"request_timeout"`
}

// OutputConfig controls where exported files are written.
type OutputConfig struct {
	Dir              string `toml:"dir"`
	JSONFilename     string `toml:"json_filename"`
	PDFFilename      string `toml:"pdf_filename"`
	MarkdownFilename string `toml:"markdown_filename"`
}

// HistoryConfig contains local brief history (SQLite) settings.
type HistoryConfig struct {
	Enabled      bool   `toml:"enabled"`
	Path         string `toml:"path"`
	MaxOpenConns int    `toml:"max_open_conns"`
	MaxIdleConns int    `toml:"max_idle_conns"`
}

// UIConfig contains interactive TUI defaults.
type UIConfig struct {
	Stream  bool   `toml:"stream"`
	LogFile string `toml:"log_file"`
}

// LoadConfig reads and parses a TOML configuration file from the specified path.
//
// Keys missing from the file keep the embedded defaults.
func LoadConfig(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	config := DefaultConfig()
	if err := toml.Unmarshal(data, config); err != nil {
		return nil, fmt.Errorf("%w: failed to parse config: %v", ErrInvalidConfig, err)
	}

	if _, err := config.Timeout(); err != nil {
		return nil, err
	}

	return config, nil
}

// DefaultConfig returns a Config with sensible defaults loaded from the embedded example config.
func DefaultConfig() *Config {
	var config Config
	if err := toml.Unmarshal(exampleConf, &config); err != nil {
		panic(fmt.Sprintf("failed to parse embedded default config: %v", err))
	}
	return &config
}

// CreateConfigFile creates a config.toml file at the specified path using the embedded example config.
func CreateConfigFile(path string) error {
	if _, err := os.Stat(path); err == nil {
		return fmt.Errorf("config file already exists at %s", path)
	}

	if err := os.WriteFile(path, exampleConf, 0644); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	return nil
}

// LoadEnv loads variables from the given dotenv files into the process environment.
//
// Missing files are skipped and variables already set are never overridden.
func LoadEnv(paths ...string) error {
	for _, path := range paths {
		if _, err := os.Stat(path); err != nil {
			continue
		}
		if err := godotenv.Load(path); err != nil {
			return fmt.Errorf("%w: failed to load %s: %v", ErrInvalidConfig, path, err)
		}
	}
	return nil
}

// ApplyEnv overrides config values with environment variables.
//
// [EnvAPIURL] wins over [EnvViteAPIURL], which is read for compatibility with existing .env files.
func (c *Config) ApplyEnv() {
	if v := os.Getenv(EnvViteAPIURL); v != "" {
		c.API.BaseURL = v
	}
	if v := os.Getenv(EnvAPIURL); v != "" {
		c.API.BaseURL = v
	}
	if v := os.Getenv(EnvLogLevel); v != "" {
		c.LogLevel = v
	}
	if v := os.Getenv(EnvHistoryPath); v != "" {
		c.History.Path = v
	}
}

// Timeout parses the configured request timeout. An empty value means no timeout.
func (c *Config) Timeout() (time.Duration, error) {
	if c.API.RequestTimeout == "" {
		return 0, nil
	}
	d, err := time.ParseDuration(c.API.RequestTimeout)
	if err != nil {
		return 0, fmt.Errorf("%w: request_timeout %q: %v", ErrInvalidConfig, c.API.RequestTimeout, err)
	}
	if d < 0 {
		return 0, fmt.Errorf("%w: request_timeout must not be negative", ErrInvalidConfig)
	}
	return d, nil
}
