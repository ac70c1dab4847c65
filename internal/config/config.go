// Package config reads officeflow settings from the environment.
package config

import (
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/alexanderramin/officeflow/internal/scheduler"
)

type LogFormat string

const (
	LogText LogFormat = "text"
	LogJSON LogFormat = "json"
)

// Config holds process-wide settings.
type Config struct {
	DBPath         string
	TemplateDir    string
	HTTPAddr       string
	SweepInterval  time.Duration
	DependencyMode scheduler.DependencyMode
	LogLevel       slog.Level
	LogFormat      LogFormat
	// LogUseCases reports every service use case through the logger.
	LogUseCases bool
}

// DefaultConfig returns the settings used when no environment overrides
// are present. Paths live under ~/.officeflow unless ./templates exists.
func DefaultConfig() Config {
	home, err := os.UserHomeDir()
	if err != nil {
		home = "."
	}
	templateDir := filepath.Join(home, ".officeflow", "templates")
	if stat, err := os.Stat("./templates"); err == nil && stat.IsDir() {
		templateDir = "./templates"
	}
	return Config{
		DBPath:         filepath.Join(home, ".officeflow", "officeflow.db"),
		TemplateDir:    templateDir,
		HTTPAddr:       ":8080",
		SweepInterval:  time.Minute,
		DependencyMode: scheduler.DependenciesAdvisory,
		LogLevel:       slog.LevelInfo,
		LogFormat:      LogText,
	}
}

// Load reads configuration from environment variables, falling back to
// defaults for unset or invalid values.
func Load() Config {
	cfg := DefaultConfig()

	if v := os.Getenv("OFFICEFLOW_DB"); v != "" {
		cfg.DBPath = v
	}
	if v := os.Getenv("OFFICEFLOW_TEMPLATES"); v != "" {
		cfg.TemplateDir = v
	}
	if v := os.Getenv("OFFICEFLOW_HTTP_ADDR"); v != "" {
		cfg.HTTPAddr = v
	}
	if v := os.Getenv("OFFICEFLOW_SWEEP_INTERVAL"); v != "" {
		if d, err := time.ParseDuration(v); err == nil && d > 0 {
			cfg.SweepInterval = d
		}
	}
	if v := os.Getenv("OFFICEFLOW_DEPENDENCY_MODE"); v != "" {
		if m := scheduler.DependencyMode(strings.ToLower(v)); m.Valid() {
			cfg.DependencyMode = m
		}
	}
	if v := os.Getenv("OFFICEFLOW_LOG_LEVEL"); v != "" {
		var lvl slog.Level
		if err := lvl.UnmarshalText([]byte(v)); err == nil {
			cfg.LogLevel = lvl
		}
	}
	if v := os.Getenv("OFFICEFLOW_LOG_FORMAT"); v != "" {
		switch f := LogFormat(strings.ToLower(v)); f {
		case LogText, LogJSON:
			cfg.LogFormat = f
		}
	}
	if v := os.Getenv("OFFICEFLOW_LOG_USE_CASES"); v != "" {
		cfg.LogUseCases, _ = strconv.ParseBool(v)
	}

	return cfg
}

// NewLogger builds the process logger writing to w.
func NewLogger(w io.Writer, cfg Config) *slog.Logger {
	opts := &slog.HandlerOptions{Level: cfg.LogLevel}
	if cfg.LogFormat == LogJSON {
		return slog.New(slog.NewJSONHandler(w, opts))
	}
	return slog.New(slog.NewTextHandler(w, opts))
}
