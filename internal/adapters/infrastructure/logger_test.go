package infrastructure

import (
	"bytes"
	"encoding/json"
	"log/slog"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"lakeweather.bot/internal/mocks"
	"lakeweather.bot/internal/ports"
)

func TestSlogLoggerAdapter(t *testing.T) {
	var buf bytes.Buffer
	handler := slog.NewJSONHandler(&buf, &slog.HandlerOptions{Level: slog.LevelInfo})
	logger := NewSlogLoggerAdapter(slog.New(handler))

	logger.Debug("hidden")
	logger.Info("Location stored", ports.F("userID", int64(42)), ports.F("latitude", 61.1))
	logger.Warn("Cache read failed")
	logger.Error("Provider failed", ports.F("error", "timeout"))

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	require.Len(t, lines, 3)

	var entry map[string]interface{}
	require.NoError(t, json.Unmarshal([]byte(lines[0]), &entry))
	assert.Equal(t, "INFO", entry["level"])
	assert.Equal(t, "Location stored", entry["msg"])
	assert.Equal(t, float64(42), entry["userID"])
	assert.Equal(t, 61.1, entry["latitude"])

	assert.Contains(t, lines[1], `"level":"WARN"`)
	assert.Contains(t, lines[2], `"error":"timeout"`)
}

func TestSlogLoggerAdapter_NilFallsBackToDefault(t *testing.T) {
	var buf bytes.Buffer
	previous := slog.Default()
	slog.SetDefault(slog.New(slog.NewTextHandler(&buf, nil)))
	t.Cleanup(func() { slog.SetDefault(previous) })

	NewSlogLoggerAdapter(nil).Info("via default", ports.F("k", "v"))

	assert.Contains(t, buf.String(), "via default")
	assert.Contains(t, buf.String(), "k=v")
}

func TestMultiLogger(t *testing.T) {
	first := mocks.NewLogger(t)
	second := mocks.NewLogger(t)
	field := ports.F("provider", "openweathermap")

	first.EXPECT().Info("started", field).Once()
	second.EXPECT().Info("started", field).Once()
	first.EXPECT().Error("failed").Once()
	second.EXPECT().Error("failed").Once()

	multi := NewMultiLogger(first, nil, second)
	multi.Info("started", field)
	multi.Error("failed")
}
