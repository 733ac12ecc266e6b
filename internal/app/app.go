package app

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/five82/flashdeck/internal/backend"
	"github.com/five82/flashdeck/internal/config"
	"github.com/five82/flashdeck/internal/prefs"
	"github.com/five82/flashdeck/internal/ui"
)

// Options configure the flashdeck application.
type Options struct {
	ConfigPath  string
	PrefsPath   string // empty uses default ~/.config/flashdeck/prefs.toml
	APIBase     string // overrides api_base from the config file
	Debug       bool
	InitialFile string // PDF to select when the TUI starts
}

// Env holds what every command shares: the validated config, a logger
// writing to the log file and a backend client.
type Env struct {
	Config config.Config
	Logger *slog.Logger
	Client *backend.Client

	logFile *os.File
}

// Setup loads the config, opens the log file and builds the backend client.
// Callers must Close the returned Env.
func Setup(opts Options) (*Env, error) {
	cfg, err := config.Load(opts.ConfigPath)
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}
	cfg, err = cfg.WithAPIBase(opts.APIBase)
	if err != nil {
		return nil, fmt.Errorf("--api: %w", err)
	}

	logger, file, err := openLogger(cfg.LogFile, opts.Debug)
	if err != nil {
		return nil, err
	}

	client, err := backend.NewClient(backend.Options{
		BaseURL:       cfg.APIBase,
		HealthTimeout: cfg.HealthTimeout,
		UploadTimeout: cfg.UploadTimeout,
		Logger:        logger,
	})
	if err != nil {
		_ = file.Close()
		return nil, fmt.Errorf("init backend client: %w", err)
	}

	logger.Debug("flashdeck starting",
		"api_base", cfg.APIBase,
		"health_timeout", cfg.HealthTimeout,
		"upload_timeout", cfg.UploadTimeout)

	return &Env{Config: cfg, Logger: logger, Client: client, logFile: file}, nil
}

// Close flushes and closes the log file.
func (e *Env) Close() error {
	if e == nil || e.logFile == nil {
		return nil
	}
	err := e.logFile.Close()
	e.logFile = nil
	if errors.Is(err, os.ErrClosed) {
		return nil
	}
	return err
}

// openLogger appends to path, creating parent directories as needed.
func openLogger(path string, debug bool) (*slog.Logger, *os.File, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, nil, fmt.Errorf("create log dir: %w", err)
	}
	file, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return nil, nil, fmt.Errorf("open log file: %w", err)
	}
	level := slog.LevelInfo
	if debug {
		level = slog.LevelDebug
	}
	return slog.New(slog.NewTextHandler(file, &slog.HandlerOptions{Level: level})), file, nil
}

// Run boots the flashdeck TUI until the user quits or the context is cancelled.
func Run(ctx context.Context, env *Env, opts Options) error {
	userPrefs := prefs.Load(opts.PrefsPath)

	uiOpts := ui.Options{
		Context:     ctx,
		API:         env.Client,
		APIBase:     env.Config.APIBase,
		LogFile:     env.Config.LogFile,
		InitialFile: opts.InitialFile,
		ThemeName:   userPrefs.Theme,
		PrefsPath:   opts.PrefsPath,
		Logger:      env.Logger,
	}
	return ui.Run(uiOpts)
}
