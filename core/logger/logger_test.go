package logger_test

import (
	"bytes"
	"encoding/json"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/dds/core/logger"
)

func TestNew_JSON(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	log := logger.New(
		logger.WithJSONFormatter(),
		logger.WithOutput(&buf),
		logger.WithAttr(slog.String("service", "test")),
	)

	log.Info("sample written", logger.Topic("SensorTopic"))

	var rec map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &rec))
	assert.Equal(t, "sample written", rec["msg"])
	assert.Equal(t, "SensorTopic", rec["topic"])
	assert.Equal(t, "test", rec["service"])
}

func TestNew_Level(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	log := logger.New(logger.WithOutput(&buf), logger.WithLevel(slog.LevelWarn))

	log.Info("hidden")
	assert.Empty(t, buf.String())

	log.Warn("shown")
	assert.Contains(t, buf.String(), "shown")
}

func TestNew_Presets(t *testing.T) {
	t.Parallel()

	t.Run("development", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer
		log := logger.New(logger.WithDevelopment("ddsdemo"), logger.WithOutput(&buf))
		log.Debug("debug enabled")

		out := buf.String()
		assert.Contains(t, out, "debug enabled")
		assert.Contains(t, out, "service=ddsdemo")
		assert.Contains(t, out, "env=development")
	})

	t.Run("production", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer
		log := logger.New(logger.WithProduction("ddsdemo"), logger.WithOutput(&buf))
		log.Debug("dropped")
		assert.Empty(t, buf.String())

		log.Info("kept")
		assert.Contains(t, buf.String(), `"env":"production"`)
	})
}

func TestDiscard(t *testing.T) {
	t.Parallel()

	log := logger.Discard()
	require.NotNil(t, log)
	log.Error("nowhere")
}

func TestParseLevel(t *testing.T) {
	t.Parallel()

	tests := []struct {
		in      string
		want    slog.Level
		wantErr bool
	}{
		{"debug", slog.LevelDebug, false},
		{"INFO", slog.LevelInfo, false},
		{"", slog.LevelInfo, false},
		{"warn", slog.LevelWarn, false},
		{"warning", slog.LevelWarn, false},
		{" error ", slog.LevelError, false},
		{"trace", slog.LevelInfo, true},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			t.Parallel()

			got, err := logger.ParseLevel(tt.in)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}
