package logger

import (
	"bytes"
	"testing"

	"digitomize/internal/config"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func restoreGlobalLevel(t *testing.T) {
	prev := zerolog.GlobalLevel()
	t.Cleanup(func() { zerolog.SetGlobalLevel(prev) })
}

func TestNew_DefaultsToInfo(t *testing.T) {
	restoreGlobalLevel(t)
	t.Setenv("LOG_LEVEL", "")

	New()
	assert.Equal(t, zerolog.InfoLevel, zerolog.GlobalLevel())
}

func TestApplyLevel_UsesConfig(t *testing.T) {
	restoreGlobalLevel(t)
	t.Setenv("LOG_LEVEL", "debug")
	New()

	var buf bytes.Buffer
	log := zerolog.New(&buf)
	require.NoError(t, ApplyLevel(&config.Config{LogLevel: "warn"}, log))

	log.Info().Msg("dropped")
	log.Warn().Msg("kept")
	assert.NotContains(t, buf.String(), "dropped")
	assert.Contains(t, buf.String(), "kept")
}

func TestApplyLevel_RejectsUnknownLevel(t *testing.T) {
	restoreGlobalLevel(t)
	assert.Error(t, ApplyLevel(&config.Config{LogLevel: "loud"}, zerolog.Nop()))
}
