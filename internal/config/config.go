package config

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	toml "github.com/pelletier/go-toml/v2"
)

// Config captures the settings flashdeck needs to reach its backend.
type Config struct {
	APIBase       string        `key:"api_base" validate:"required,http_url"`
	HealthTimeout time.Duration `key:"health_timeout" validate:"gt=0"`
	UploadTimeout time.Duration `key:"upload_timeout" validate:"gt=0"`
	LogFile       string        `key:"log_file" validate:"required"`
}

const (
	defaultConfigPath    = "~/.config/flashdeck/config.toml"
	defaultLogFile       = "~/.local/state/flashdeck/flashdeck.log"
	defaultAPIBase       = "http://localhost:8000/api/v1"
	defaultHealthTimeout = 10 * time.Second
	defaultUploadTimeout = 2 * time.Minute
)

// DefaultPath returns the default config file location.
func DefaultPath() string {
	return defaultConfigPath
}

// Default returns the configuration used when no file is present.
func Default() Config {
	return Config{
		APIBase:       defaultAPIBase,
		HealthTimeout: defaultHealthTimeout,
		UploadTimeout: defaultUploadTimeout,
		LogFile:       mustExpand(defaultLogFile),
	}
}

// Load locates and parses the flashdeck config, falling back to defaults when missing.
func Load(path string) (Config, error) {
	resolved, err := resolvePath(path)
	if err != nil {
		return Config{}, err
	}

	cfg := Default()

	file, err := os.Open(resolved)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return cfg, nil
		}
		return Config{}, fmt.Errorf("open config: %w", err)
	}
	defer file.Close()

	bytes, err := io.ReadAll(file)
	if err != nil {
		return Config{}, fmt.Errorf("read config: %w", err)
	}

	var raw struct {
		APIBase       string `toml:"api_base"`
		HealthTimeout string `toml:"health_timeout"`
		UploadTimeout string `toml:"upload_timeout"`
		LogFile       string `toml:"log_file"`
	}
	if err := toml.Unmarshal(bytes, &raw); err != nil {
		return Config{}, fmt.Errorf("parse config: %w", err)
	}

	if base := strings.TrimSpace(raw.APIBase); base != "" {
		cfg.APIBase = strings.TrimRight(base, "/")
	}
	if cfg.HealthTimeout, err = parseTimeout("health_timeout", raw.HealthTimeout, defaultHealthTimeout); err != nil {
		return Config{}, err
	}
	if cfg.UploadTimeout, err = parseTimeout("upload_timeout", raw.UploadTimeout, defaultUploadTimeout); err != nil {
		return Config{}, err
	}
	if logFile := strings.TrimSpace(raw.LogFile); logFile != "" {
		cfg.LogFile = mustExpand(logFile)
	}

	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// WithAPIBase returns a copy of c pointing at base when base is non-empty.
func (c Config) WithAPIBase(base string) (Config, error) {
	base = strings.TrimSpace(base)
	if base == "" {
		return c, nil
	}
	c.APIBase = strings.TrimRight(base, "/")
	if err := c.Validate(); err != nil {
		return Config{}, err
	}
	return c, nil
}

// Validate reports every invalid field in one error.
func (c Config) Validate() error {
	v, err := getValidator()
	if err != nil {
		return err
	}
	if err := v.validate.Struct(c); err != nil {
		var fieldErrs validator.ValidationErrors
		if !errors.As(err, &fieldErrs) {
			return fmt.Errorf("validate config: %w", err)
		}
		msgs := make([]string, 0, len(fieldErrs))
		for _, fe := range fieldErrs {
			msgs = append(msgs, fe.Translate(v.translator))
		}
		return fmt.Errorf("invalid configuration: %s", strings.Join(msgs, ", "))
	}
	return nil
}

func parseTimeout(key, value string, fallback time.Duration) (time.Duration, error) {
	trimmed := strings.TrimSpace(value)
	if trimmed == "" {
		return fallback, nil
	}
	d, err := time.ParseDuration(trimmed)
	if err != nil {
		return 0, fmt.Errorf("parse config: %s: %w", key, err)
	}
	return d, nil
}

func resolvePath(path string) (string, error) {
	if strings.TrimSpace(path) == "" {
		return expandPath(defaultConfigPath)
	}
	return expandPath(path)
}

func mustExpand(path string) string {
	expanded, err := expandPath(path)
	if err != nil {
		return path
	}
	return expanded
}

func expandPath(path string) (string, error) {
	trimmed := strings.TrimSpace(path)
	if trimmed == "" {
		return "", fmt.Errorf("path is empty")
	}
	if strings.HasPrefix(trimmed, "~") {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("resolve home dir: %w", err)
		}
		trimmed = filepath.Join(home, strings.TrimPrefix(trimmed, "~"))
	}
	return filepath.Abs(trimmed)
}
