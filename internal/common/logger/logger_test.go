package logger

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"go.uber.org/zap/zapcore"
)

func TestParseLevel(t *testing.T) {
	tests := []struct {
		in   string
		want zapcore.Level
	}{
		{"debug", zapcore.DebugLevel},
		{"warn", zapcore.WarnLevel},
		{"error", zapcore.ErrorLevel},
		{"info", zapcore.InfoLevel},
		{"verbose", zapcore.InfoLevel},
		{"", zapcore.InfoLevel},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			assert.Equal(t, tt.want, ParseLevel(tt.in))
		})
	}
}

func TestExcerpt(t *testing.T) {
	assert.Equal(t, "bonjour", Excerpt("bonjour", 10))
	assert.Equal(t, "évalu…", Excerpt("évaluation", 5))
	assert.Equal(t, "", Excerpt("", 3))
}

func TestLoggerChaining(t *testing.T) {
	log := NewTestLogger(t)
	scoped := log.With(map[string]interface{}{"component": "test"}).
		WithError(errors.New("boom")).
		WithFields(map[string]interface{}{"requestId": "abc"})

	assert.NotNil(t, scoped)
	scoped.Info("chained", map[string]interface{}{"err": errors.New("inner")})
	scoped.Debug("debug", nil)

	NewNoOpLogger().Warn("ignored", map[string]interface{}{"k": 1})
}
