package logging

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseLevel(t *testing.T) {
	tests := []struct {
		in   string
		want zerolog.Level
	}{
		{"debug", zerolog.DebugLevel},
		{"warn", zerolog.WarnLevel},
		{"ERROR", zerolog.ErrorLevel},
		{"", zerolog.InfoLevel},
		{"chatty", zerolog.InfoLevel},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			assert.Equal(t, tt.want, ParseLevel(tt.in))
		})
	}
}

func TestNewFiltersByLevel(t *testing.T) {
	var buf bytes.Buffer
	logger := New("warn", &buf)

	logger.Info().Msg("hidden")
	logger.Warn().Int("pages", 3).Msg("shown")

	out := buf.String()
	assert.NotContains(t, out, "hidden")
	assert.Contains(t, out, "shown")
	assert.Contains(t, out, "pages=3")
}

func TestNewJSON(t *testing.T) {
	var buf bytes.Buffer
	logger := NewJSON("info", &buf)
	logger.Info().Str("grid", "5x1").Msg("laid out")

	var entry map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
	assert.Equal(t, "info", entry["level"])
	assert.Equal(t, "5x1", entry["grid"])
	assert.Equal(t, "laid out", entry["message"])
}

func TestNewWithFormat(t *testing.T) {
	var buf bytes.Buffer
	logger, err := NewWithFormat(FormatJSON, "debug", &buf)
	require.NoError(t, err)
	logger.Debug().Msg("json line")

	var entry map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
	assert.Equal(t, "json line", entry["message"])

	buf.Reset()
	logger, err = NewWithFormat("", "info", &buf)
	require.NoError(t, err)
	logger.Info().Msg("console line")
	assert.Contains(t, buf.String(), "INF")
	assert.False(t, json.Valid(bytes.TrimSpace(buf.Bytes())))

	_, err = NewWithFormat("xml", "info", &buf)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unknown log format")
}
