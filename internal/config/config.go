// Package config resolves runtime settings from defaults, a .env file,
// and DQI_* environment variables.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"net/url"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/abhisek/dqi/internal/surveyapi"
	"github.com/joho/godotenv"
	"go.uber.org/zap/zapcore"
)

// Config holds everything the CLI and the backend need.
type Config struct {
	API APIConfig
	Log LogConfig

	// QuestionsDir overrides the embedded question bank. Empty means embedded.
	QuestionsDir string

	// TreeFile overrides the embedded survey tree. Empty means embedded.
	TreeFile string

	// ExportDir is where xlsx workbooks are written. Default: current dir.
	ExportDir string

	Server ServerConfig
}

// APIConfig configures the submission client.
type APIConfig struct {
	BaseURL string
	Timeout time.Duration // Default: 30s
}

// LogConfig configures the zap logger.
type LogConfig struct {
	File  string // Empty means the XDG state dir default.
	Level string // Default: "info"
}

// ServerConfig configures `dqi serve`.
type ServerConfig struct {
	Addr   string // Default: ":8000"
	DBPath string // Empty means the XDG data dir default.

	// WriteRate and WriteBurst bound submissions per client IP.
	WriteRate  float64 // tokens per second. Default: 1
	WriteBurst int     // Default: 10

	// AllowOrigins lists CORS origins. Default: all.
	AllowOrigins []string
}

// DefaultConfig returns a Config with sensible defaults.
func DefaultConfig() Config {
	return Config{
		API: APIConfig{
			BaseURL: surveyapi.DefaultBaseURL,
			Timeout: 30 * time.Second,
		},
		Log: LogConfig{
			Level: "info",
		},
		ExportDir: ".",
		Server: ServerConfig{
			Addr:         ":8000",
			WriteRate:    1,
			WriteBurst:   10,
			AllowOrigins: []string{"*"},
		},
	}
}

// LoadDotEnv loads variables from the given .env files (default ".env")
// without overriding variables already set. Missing files are ignored.
func LoadDotEnv(paths ...string) error {
	if len(paths) == 0 {
		paths = []string{".env"}
	}
	for _, p := range paths {
		if err := godotenv.Load(p); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return fmt.Errorf("load %s: %w", p, err)
		}
	}
	return nil
}

// ConfigFromEnv builds a Config from environment variables, falling back
// to defaults for unset values.
func ConfigFromEnv() (Config, error) {
	cfg := DefaultConfig()

	if u := os.Getenv("DQI_API_URL"); u != "" {
		cfg.API.BaseURL = u
	}
	if t := os.Getenv("DQI_REQUEST_TIMEOUT"); t != "" {
		d, err := time.ParseDuration(t)
		if err != nil {
			return cfg, fmt.Errorf("DQI_REQUEST_TIMEOUT: %w", err)
		}
		cfg.API.Timeout = d
	}

	if f := os.Getenv("DQI_LOG_FILE"); f != "" {
		cfg.Log.File = f
	}
	if l := os.Getenv("DQI_LOG_LEVEL"); l != "" {
		cfg.Log.Level = l
	}

	if d := os.Getenv("DQI_QUESTIONS_DIR"); d != "" {
		cfg.QuestionsDir = d
	}
	if f := os.Getenv("DQI_TREE_FILE"); f != "" {
		cfg.TreeFile = f
	}
	if d := os.Getenv("DQI_EXPORT_DIR"); d != "" {
		cfg.ExportDir = d
	}

	if a := os.Getenv("DQI_ADDR"); a != "" {
		cfg.Server.Addr = a
	}
	if p := os.Getenv("DQI_DB"); p != "" {
		cfg.Server.DBPath = p
	}
	if r := os.Getenv("DQI_WRITE_RATE"); r != "" {
		v, err := strconv.ParseFloat(r, 64)
		if err != nil {
			return cfg, fmt.Errorf("DQI_WRITE_RATE: %w", err)
		}
		cfg.Server.WriteRate = v
	}
	if b := os.Getenv("DQI_WRITE_BURST"); b != "" {
		v, err := strconv.Atoi(b)
		if err != nil {
			return cfg, fmt.Errorf("DQI_WRITE_BURST: %w", err)
		}
		cfg.Server.WriteBurst = v
	}
	if o := os.Getenv("DQI_CORS_ORIGINS"); o != "" {
		cfg.Server.AllowOrigins = splitList(o)
	}

	return cfg, nil
}

func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if p := strings.TrimSpace(part); p != "" {
			out = append(out, p)
		}
	}
	return out
}

// Validate checks the settings shared by every command.
func (c Config) Validate() error {
	u, err := url.Parse(c.API.BaseURL)
	if err != nil {
		return fmt.Errorf("DQI_API_URL: %w", err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return fmt.Errorf("DQI_API_URL must be an http(s) URL, got %q", c.API.BaseURL)
	}
	if u.Host == "" {
		return fmt.Errorf("DQI_API_URL has no host: %q", c.API.BaseURL)
	}
	if c.API.Timeout <= 0 {
		return fmt.Errorf("DQI_REQUEST_TIMEOUT must be positive, got %s", c.API.Timeout)
	}
	if _, err := zapcore.ParseLevel(c.Log.Level); err != nil {
		return fmt.Errorf("DQI_LOG_LEVEL: %w", err)
	}
	return nil
}

// ValidateServer checks the settings used by `dqi serve`.
func (c Config) ValidateServer() error {
	if _, err := zapcore.ParseLevel(c.Log.Level); err != nil {
		return fmt.Errorf("DQI_LOG_LEVEL: %w", err)
	}
	if c.Server.Addr == "" {
		return fmt.Errorf("DQI_ADDR is required")
	}
	if c.Server.WriteRate <= 0 {
		return fmt.Errorf("DQI_WRITE_RATE must be positive, got %v", c.Server.WriteRate)
	}
	if c.Server.WriteBurst < 1 {
		return fmt.Errorf("DQI_WRITE_BURST must be at least 1, got %d", c.Server.WriteBurst)
	}
	if len(c.Server.AllowOrigins) == 0 {
		return fmt.Errorf("DQI_CORS_ORIGINS must list at least one origin")
	}
	return nil
}
