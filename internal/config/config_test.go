package config

import (
	"bytes"
	"encoding/json"
	"log/slog"
	"testing"
	"time"

	"github.com/alexanderramin/officeflow/internal/scheduler"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	assert.Equal(t, ":8080", cfg.HTTPAddr)
	assert.Equal(t, time.Minute, cfg.SweepInterval)
	assert.Equal(t, scheduler.DependenciesAdvisory, cfg.DependencyMode)
	assert.Equal(t, slog.LevelInfo, cfg.LogLevel)
	assert.Equal(t, LogText, cfg.LogFormat)
	assert.False(t, cfg.LogUseCases)
	assert.NotEmpty(t, cfg.DBPath)
}

func TestLoad_Overrides(t *testing.T) {
	t.Setenv("OFFICEFLOW_DB", "/tmp/of.db")
	t.Setenv("OFFICEFLOW_TEMPLATES", "/etc/officeflow/templates")
	t.Setenv("OFFICEFLOW_HTTP_ADDR", "127.0.0.1:9090")
	t.Setenv("OFFICEFLOW_SWEEP_INTERVAL", "30s")
	t.Setenv("OFFICEFLOW_DEPENDENCY_MODE", "Enforced")
	t.Setenv("OFFICEFLOW_LOG_LEVEL", "debug")
	t.Setenv("OFFICEFLOW_LOG_FORMAT", "json")
	t.Setenv("OFFICEFLOW_LOG_USE_CASES", "true")

	cfg := Load()

	assert.Equal(t, "/tmp/of.db", cfg.DBPath)
	assert.Equal(t, "/etc/officeflow/templates", cfg.TemplateDir)
	assert.Equal(t, "127.0.0.1:9090", cfg.HTTPAddr)
	assert.Equal(t, 30*time.Second, cfg.SweepInterval)
	assert.Equal(t, scheduler.DependenciesEnforced, cfg.DependencyMode)
	assert.Equal(t, slog.LevelDebug, cfg.LogLevel)
	assert.Equal(t, LogJSON, cfg.LogFormat)
	assert.True(t, cfg.LogUseCases)
}

func TestLoad_InvalidValuesIgnored(t *testing.T) {
	t.Setenv("OFFICEFLOW_SWEEP_INTERVAL", "-5s")
	t.Setenv("OFFICEFLOW_DEPENDENCY_MODE", "strict")
	t.Setenv("OFFICEFLOW_LOG_LEVEL", "loud")
	t.Setenv("OFFICEFLOW_LOG_FORMAT", "xml")

	cfg := Load()

	assert.Equal(t, time.Minute, cfg.SweepInterval)
	assert.Equal(t, scheduler.DependenciesAdvisory, cfg.DependencyMode)
	assert.Equal(t, slog.LevelInfo, cfg.LogLevel)
	assert.Equal(t, LogText, cfg.LogFormat)
}

func TestNewLogger_JSON(t *testing.T) {
	var buf bytes.Buffer
	cfg := DefaultConfig()
	cfg.LogFormat = LogJSON
	cfg.LogLevel = slog.LevelWarn

	logger := NewLogger(&buf, cfg)
	logger.Info("dropped")
	logger.Warn("kept", "task", "t1")

	var line map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &line))
	assert.Equal(t, "kept", line["msg"])
	assert.Equal(t, "t1", line["task"])
}
