package logging

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zapcore"
)

func TestNew(t *testing.T) {
	testCases := []struct {
		level string
		want  zapcore.Level
	}{
		{"debug", zapcore.DebugLevel},
		{"info", zapcore.InfoLevel},
		{"warn", zapcore.WarnLevel},
		{"error", zapcore.ErrorLevel},
		{"", zapcore.InfoLevel},
	}

	for _, tc := range testCases {
		t.Run(tc.level, func(t *testing.T) {
			logger, err := New(tc.level)
			require.NoError(t, err)
			assert.True(t, logger.Core().Enabled(tc.want))
			assert.False(t, logger.Core().Enabled(tc.want-1))
		})
	}
}

func TestNew_InvalidLevel(t *testing.T) {
	_, err := New("loud")
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "invalid log level")
}
