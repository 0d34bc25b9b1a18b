package logger_test

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MrJamesThe3rd/poflow/internal/logger"
)

func decodeLine(t *testing.T, buf *bytes.Buffer) map[string]any {
	t.Helper()

	var entry map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))

	return entry
}

func TestLogger_ContextFields(t *testing.T) {
	var buf bytes.Buffer

	log := logger.New(logger.Options{ServiceName: "poflow-test", Output: &buf})

	ctx := log.WithRequestID(context.Background(), "req-1")
	ctx = log.WithFields(ctx, map[string]any{"po_number": 42})

	log.Info(ctx, "saved")

	entry := decodeLine(t, &buf)
	assert.Equal(t, "poflow-test", entry["service"])
	assert.Equal(t, "req-1", entry["request_id"])
	assert.Equal(t, float64(42), entry["po_number"])
	assert.Equal(t, "saved", entry["message"])
	assert.Equal(t, "info", entry["level"])
}

func TestLogger_ErrorIncludesErr(t *testing.T) {
	var buf bytes.Buffer

	log := logger.New(logger.Options{ServiceName: "poflow-test", Output: &buf})
	log.Error(context.Background(), "store failed", errors.New("boom"))

	entry := decodeLine(t, &buf)
	assert.Equal(t, "error", entry["level"])
	assert.Equal(t, "boom", entry["error"])
}

func TestLogger_LevelFilters(t *testing.T) {
	var buf bytes.Buffer

	log := logger.New(logger.Options{Level: zerolog.WarnLevel, Output: &buf})
	log.Info(context.Background(), "hidden")

	assert.Zero(t, buf.Len())
}

func TestParseLevel(t *testing.T) {
	assert.Equal(t, zerolog.DebugLevel, logger.ParseLevel(" DEBUG "))
	assert.Equal(t, zerolog.InfoLevel, logger.ParseLevel(""))
	assert.Equal(t, zerolog.InfoLevel, logger.ParseLevel("nonsense"))
}
