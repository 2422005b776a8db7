package logger

import (
	"bytes"
	"context"
	"encoding/json"
	"log/slog"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNew_JSONOutput(t *testing.T) {
	buf := &bytes.Buffer{}
	log := New(Config{Level: slog.LevelInfo, Output: buf, Format: "json"})
	require.NotNil(t, log)

	log.InfoContext(context.Background(), "carrier resolved", "carrier", "LH")

	var record map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &record))
	assert.Equal(t, "carrier resolved", record["msg"])
	assert.Equal(t, "LH", record["carrier"])
}

func TestNew_TextOutput(t *testing.T) {
	buf := &bytes.Buffer{}
	log := New(Config{Level: slog.LevelInfo, Output: buf, Format: "text"})

	log.Info("plan selected", "plan", "BSP")

	assert.Contains(t, buf.String(), "plan=BSP")
}

func TestNewWithOptions_Service(t *testing.T) {
	buf := &bytes.Buffer{}
	log := NewWithOptions(WithOutput(buf), WithService("validating-carrier-service"))

	log.Info("started")

	assert.Contains(t, buf.String(), `"service":"validating-carrier-service"`)
}

func TestLevelFiltering(t *testing.T) {
	buf := &bytes.Buffer{}
	log := NewWithOptions(WithOutput(buf), WithLevelName("warn"))

	log.Info("dropped")
	log.DebugContext(context.Background(), "dropped too")
	log.WarnContext(context.Background(), "kept")

	out := buf.String()
	assert.NotContains(t, out, "dropped")
	assert.Contains(t, out, "kept")
	assert.False(t, log.Enabled(context.Background(), slog.LevelInfo))
	assert.True(t, log.Enabled(context.Background(), slog.LevelError))
}

func TestParseLevel(t *testing.T) {
	tests := []struct {
		in   string
		want slog.Level
	}{
		{"debug", slog.LevelDebug},
		{"DEBUG", slog.LevelDebug},
		{"warn", slog.LevelWarn},
		{"warning", slog.LevelWarn},
		{"error", slog.LevelError},
		{"info", slog.LevelInfo},
		{"", slog.LevelInfo},
		{"verbose", slog.LevelInfo},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			assert.Equal(t, tt.want, ParseLevel(tt.in))
		})
	}
}

func TestWith(t *testing.T) {
	buf := &bytes.Buffer{}
	log := NewWithOptions(WithOutput(buf)).With("country", "AU")

	log.Info("lookup")

	assert.True(t, strings.Contains(buf.String(), `"country":"AU"`))
}

func TestNoOpLogger(t *testing.T) {
	log := NoOpLogger()
	require.NotNil(t, log)

	assert.NotPanics(t, func() {
		log.Info("ignored")
		log.ErrorContext(context.Background(), "ignored")
		log.With("k", "v").Warn("ignored")
	})
	assert.False(t, log.Enabled(context.Background(), slog.LevelError))
}
