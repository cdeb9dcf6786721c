package logger

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"
)

func TestInitialize_ValidLevels(t *testing.T) {
	originalLog := Log
	defer func() { Log = originalLog }()

	levels := []string{"debug", "info", "warn", "error", "dpanic", "panic", "fatal"}

	for _, lvl := range levels {
		t.Run(lvl, func(t *testing.T) {
			err := Initialize(lvl, FormatJSON)
			assert.NoError(t, err, "expected no error for level %s", lvl)
			assert.NotNil(t, Log, "Log should be initialized")
			assert.IsType(t, &zap.SugaredLogger{}, Log, "Log should be a SugaredLogger")

			assert.NotPanics(t, func() {
				Log.Infow("test log", "level", lvl)
			})
		})
	}
}

func TestInitialize_Formats(t *testing.T) {
	originalLog := Log
	defer func() { Log = originalLog }()

	for _, format := range []string{"", FormatJSON, FormatConsole} {
		t.Run("format="+format, func(t *testing.T) {
			assert.NoError(t, Initialize("info", format))
			assert.NotPanics(t, func() {
				Log.Infow("formatted", "format", format)
			})
		})
	}
}

func TestInitialize_InvalidInput(t *testing.T) {
	originalLog := Log
	defer func() { Log = originalLog }()

	assert.Error(t, Initialize("not-a-level", FormatJSON), "expected error for invalid log level")
	assert.Error(t, Initialize("info", "xml"), "expected error for unknown format")
}

func TestLog_NopBeforeInitialize(t *testing.T) {
	originalLog := Log
	defer func() { Log = originalLog }()

	assert.NotNil(t, Log)
	assert.IsType(t, &zap.SugaredLogger{}, Log)

	assert.NotPanics(t, func() {
		Log.Infow("nop logger test")
		Sync()
	})
}
