package logging

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

func TestNewWithSinkWritesJSON(t *testing.T) {
	var buf bytes.Buffer
	log, err := NewWithSink("info", zapcore.AddSync(&buf))
	require.NoError(t, err)

	log.Debug("hidden")
	log.Info("loaded", zap.String("path", "a.wav"))
	require.NoError(t, log.Sync())

	var entry map[string]any
	require.NoError(t, json.Unmarshal(bytes.TrimSpace(buf.Bytes()), &entry))
	assert.Equal(t, "loaded", entry["msg"])
	assert.Equal(t, "a.wav", entry["path"])
	assert.Equal(t, "info", entry["level"])
}

func TestNewRejectsUnknownLevel(t *testing.T) {
	_, err := New("loud")
	assert.Error(t, err)
}
