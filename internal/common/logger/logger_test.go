package logger

import (
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zapcore"
)

func TestNew_Levels(t *testing.T) {
	tests := []struct {
		in   string
		want zapcore.Level
	}{
		{"debug", zapcore.DebugLevel},
		{"WARN", zapcore.WarnLevel},
		{"error", zapcore.ErrorLevel},
		{"info", zapcore.InfoLevel},
		{"unknown", zapcore.InfoLevel},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			l := New(tt.in, "json")
			assert.True(t, l.Core().Enabled(tt.want))
			if tt.want > zapcore.DebugLevel {
				assert.False(t, l.Core().Enabled(tt.want-1))
			}
		})
	}
}

func TestNewStructured_WritesJSONFields(t *testing.T) {
	path := filepath.Join(t.TempDir(), "matching.log")
	log := NewStructured("info", "json", path)

	log.With(map[string]interface{}{"component": "matching-engine"}).
		Info("find matches", map[string]interface{}{"userId": "u1", "count": 3})
	log.WithError(errors.New("boom")).Error("cache failed", nil)
	log.Debug("hidden", nil)

	raw, err := os.ReadFile(path)
	require.NoError(t, err)
	lines := strings.Split(strings.TrimSpace(string(raw)), "\n")
	require.Len(t, lines, 2)

	var first map[string]interface{}
	require.NoError(t, json.Unmarshal([]byte(lines[0]), &first))
	assert.Equal(t, "find matches", first["msg"])
	assert.Equal(t, "matching-engine", first["component"])
	assert.Equal(t, "u1", first["userId"])
	assert.Equal(t, float64(3), first["count"])

	var second map[string]interface{}
	require.NoError(t, json.Unmarshal([]byte(lines[1]), &second))
	assert.Equal(t, "boom", second["error"])
}

func TestNoOpAndTestLoggers(t *testing.T) {
	assert.NotPanics(t, func() {
		NewNoOpLogger().WithFields(map[string]interface{}{"a": 1}).Warn("x", nil)
		NewTestLogger(t).Info("hello", map[string]interface{}{"k": "v"})
	})
}
