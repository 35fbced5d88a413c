package logx

import (
	"encoding/json"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseLevel(t *testing.T) {
	tests := []struct {
		in   string
		want slog.Level
	}{
		{"debug", slog.LevelDebug},
		{"", slog.LevelInfo},
		{"INFO", slog.LevelInfo},
		{"warning", slog.LevelWarn},
		{"error", slog.LevelError},
	}
	for _, tt := range tests {
		got, err := ParseLevel(tt.in)
		require.NoError(t, err, tt.in)
		assert.Equal(t, tt.want, got, tt.in)
	}

	_, err := ParseLevel("verbose")
	assert.Error(t, err)
}

func TestNewRejectsBadConfig(t *testing.T) {
	_, _, err := New(Config{Level: "loud"})
	assert.Error(t, err)

	_, _, err = New(Config{Format: "xml"})
	assert.Error(t, err)
}

func TestJSONFileOutput(t *testing.T) {
	path := filepath.Join(t.TempDir(), "chainrpc.log")
	cfg := DefaultConfig()
	cfg.Level = "debug"
	cfg.Format = FormatJSON
	cfg.Output = path

	logger, closer, err := New(cfg)
	require.NoError(t, err)
	logger.Debug("Sending request", "method", "eth_chainId", "id", 1)
	require.NoError(t, closer.Close())

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	line := strings.TrimSpace(string(data))

	var record map[string]any
	require.NoError(t, json.Unmarshal([]byte(line), &record))
	assert.Equal(t, "DEBUG", record["level"])
	assert.Equal(t, "Sending request", record["msg"])
	assert.Equal(t, "eth_chainId", record["method"])
}

func TestLevelFilters(t *testing.T) {
	path := filepath.Join(t.TempDir(), "warn.log")
	logger, closer, err := New(Config{Level: "warn", Output: path})
	require.NoError(t, err)
	logger.Info("dropped")
	logger.Warn("kept")
	require.NoError(t, closer.Close())

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.NotContains(t, string(data), "dropped")
	assert.Contains(t, string(data), "kept")
}

func TestStandardStreams(t *testing.T) {
	for _, out := range []string{Stdout, Stderr, ""} {
		logger, closer, err := New(Config{Output: out})
		require.NoError(t, err)
		assert.NotNil(t, logger)
		assert.NoError(t, closer.Close())
	}
	assert.NotNil(t, Discard())
}
