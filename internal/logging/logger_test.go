package logging

import (
	"bytes"
	"io"
	"log/slog"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHandler_LineLayout(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(NewHandler(&buf, slog.LevelInfo))

	logger.Info("Found report file", slog.String("path", "/owasp/app1/report.csv"))

	line := strings.TrimSuffix(buf.String(), "\n")
	parts := strings.SplitN(line, " | ", 3)
	require.Len(t, parts, 3)

	_, err := time.Parse(TimeLayout, parts[0])
	assert.NoError(t, err)
	assert.Equal(t, "    INFO", parts[1])
	assert.Equal(t, "Found report file path=/owasp/app1/report.csv", parts[2])
}

func TestHandler_WarningLevelName(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(NewHandler(&buf, slog.LevelInfo))

	logger.Warn("Skipping file")

	parts := strings.SplitN(strings.TrimSuffix(buf.String(), "\n"), " | ", 3)
	require.Len(t, parts, 3)
	assert.Equal(t, " WARNING", parts[1])
	assert.Equal(t, "Skipping file", parts[2])
}

func TestHandler_FiltersBelowLevel(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(NewHandler(&buf, slog.LevelWarn))

	logger.Info("not shown")
	logger.Debug("not shown")

	assert.Empty(t, buf.String())
}

func TestHandler_AttrsAndGroups(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(NewHandler(&buf, slog.LevelInfo)).
		With(slog.String("run_id", "abc")).
		WithGroup("report")

	logger.Info("converted", slog.Int("rows", 3), slog.String("name", "my report"))

	out := buf.String()
	assert.Contains(t, out, "converted run_id=abc report.rows=3 report.name=\"my report\"")
}

func TestWithRunID_AddsAttribute(t *testing.T) {
	var buf bytes.Buffer
	logger, id := WithRunID(slog.New(NewHandler(&buf, slog.LevelInfo)))

	logger.Info("start")

	assert.NotEmpty(t, id)
	assert.Contains(t, buf.String(), "run_id="+id)
}

func TestParseLevel(t *testing.T) {
	tests := []struct {
		in      string
		want    slog.Level
		wantErr bool
	}{
		{"", slog.LevelInfo, false},
		{"INFO", slog.LevelInfo, false},
		{"warning", slog.LevelWarn, false},
		{"warn", slog.LevelWarn, false},
		{"debug", slog.LevelDebug, false},
		{"error", slog.LevelError, false},
		{"loud", slog.LevelInfo, true},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseLevel(tt.in)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestNew_RejectsUnknownLevel(t *testing.T) {
	_, err := New(io.Discard, "chatty")
	assert.Error(t, err)
}

func TestOrDefault(t *testing.T) {
	assert.Equal(t, slog.Default(), OrDefault(nil))

	custom := slog.New(slog.NewTextHandler(io.Discard, nil))
	assert.Equal(t, custom, OrDefault(custom))
}
