package log

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseLevel(t *testing.T) {
	tests := map[string]slog.Level{
		"":        slog.LevelInfo,
		"debug":   slog.LevelDebug,
		"INFO":    slog.LevelInfo,
		"warning": slog.LevelWarn,
		"error":   slog.LevelError,
	}
	for in, want := range tests {
		got, err := ParseLevel(in)
		require.NoError(t, err, in)
		assert.Equal(t, want, got, in)
	}

	_, err := ParseLevel("loud")
	assert.Error(t, err)
}

func TestParseFormat(t *testing.T) {
	f, err := ParseFormat("JSON")
	require.NoError(t, err)
	assert.Equal(t, FormatJSON, f)

	f, err = ParseFormat("")
	require.NoError(t, err)
	assert.Equal(t, FormatText, f)

	_, err = ParseFormat("xml")
	assert.Error(t, err)
}

func TestLoggerStampsComponent(t *testing.T) {
	var buf bytes.Buffer
	logger := New(Config{Level: slog.LevelDebug, Format: FormatJSON, Output: &buf, Component: ComponentData})

	logger.Info("loaded", FieldCount, 12)

	var rec map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &rec))
	assert.Equal(t, ComponentData, rec[FieldComponent])
	assert.Equal(t, "loaded", rec["msg"])
	assert.EqualValues(t, 12, rec[FieldCount])
}

func TestWithComponentDoesNotDuplicateKey(t *testing.T) {
	var buf bytes.Buffer
	logger := New(Config{Format: FormatText, Output: &buf}).WithComponent(ComponentCache)

	logger.Warn("evicted")

	line := buf.String()
	assert.Equal(t, 1, strings.Count(line, "component="))
	assert.Contains(t, line, "component=cache")
}

func TestLevelFiltering(t *testing.T) {
	var buf bytes.Buffer
	logger := New(Config{Level: slog.LevelWarn, Output: &buf})

	logger.Info("quiet")
	assert.Empty(t, buf.String())

	logger.Error("loud")
	assert.Contains(t, buf.String(), "loud")
}

func TestFromContext(t *testing.T) {
	logger := New(Config{Output: &bytes.Buffer{}, Component: ComponentHTTP})
	ctx := context.WithValue(context.Background(), LoggerContextKey, logger)

	assert.Same(t, logger, FromContext(ctx))
	assert.Equal(t, "unknown", FromContext(context.Background()).Component())
}

func TestStructuredLoggerHTTPLevels(t *testing.T) {
	var buf bytes.Buffer
	sl := NewStructuredLogger(New(Config{Format: FormatJSON, Output: &buf}))
	req := httptest.NewRequest("GET", "/expenses?q=rent", nil)

	sl.LogHTTPEnd(context.Background(), req, 422, 3, "10.0.0.1")

	var rec map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &rec))
	assert.Equal(t, "WARN", rec["level"])
	assert.Equal(t, "/expenses", rec[FieldPath])
	assert.Equal(t, "q=rent", rec[FieldQuery])
	assert.Equal(t, ComponentHTTP, rec[FieldComponent])
}

func TestLogErrorNilFields(t *testing.T) {
	var buf bytes.Buffer
	sl := NewStructuredLogger(New(Config{Output: &buf}))

	sl.LogError(context.Background(), "load failed", errors.New("boom"), ComponentData, OpLoad, nil)

	assert.Contains(t, buf.String(), "error=boom")
	assert.Contains(t, buf.String(), "operation=load")
}
