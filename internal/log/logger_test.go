package log

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"dndbridge/internal/errors"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBasicLogging(t *testing.T) {
	var buf bytes.Buffer
	l := NewLogger(WithOutput(&buf))

	l.Info("info message")
	assert.Contains(t, buf.String(), "INFO: info message")
	buf.Reset()

	l.Warn("warn message")
	assert.Contains(t, buf.String(), "WARN: warn message")
	buf.Reset()

	l.Error("error message")
	assert.Contains(t, buf.String(), "ERROR: error message")
	buf.Reset()

	l.Infof("formatted %s", "message")
	assert.Contains(t, buf.String(), "formatted message")
}

func TestDebugLogging(t *testing.T) {
	var buf bytes.Buffer
	l := NewLogger(WithOutput(&buf))

	SetDebug(false)
	l.Debug("debug message")
	assert.Empty(t, buf.String())

	SetDebug(true)
	defer SetDebug(false)
	l.Debug("debug message")
	assert.Contains(t, buf.String(), "DEBUG: debug message")
	buf.Reset()

	l.Debugf("formatted %s", "debug")
	assert.Contains(t, buf.String(), "formatted debug")
	assert.True(t, DebugEnabled())
}

func TestStructuredLogging(t *testing.T) {
	var buf bytes.Buffer
	l := NewLogger(WithOutput(&buf))

	l.With(F("signal", "drag-drop"), F("x", 15)).Info("structured message")
	output := buf.String()
	assert.Contains(t, output, "structured message")
	assert.Contains(t, output, "signal=drag-drop")
	assert.Contains(t, output, "x=15")
	buf.Reset()

	l.With(F("a", 1)).With(F("b", 2)).Info("chained fields")
	output = buf.String()
	// Keys are sorted
	assert.Contains(t, output, "chained fields a=1 b=2")
}

func TestJSONLogging(t *testing.T) {
	var buf bytes.Buffer
	l := NewLogger(WithOutput(&buf), WithJSON())

	l.With(F("kind", "Drop"), F("paths", 2)).Info("json message")

	var logEntry map[string]interface{}
	err := json.Unmarshal([]byte(strings.TrimSpace(buf.String())), &logEntry)
	require.NoError(t, err)

	assert.Equal(t, "info", logEntry["level"])
	assert.Equal(t, "json message", logEntry["message"])
	assert.Contains(t, logEntry, "timestamp")
	assert.Equal(t, "Drop", logEntry["kind"])
	assert.Equal(t, float64(2), logEntry["paths"]) // JSON numbers are float64
}

func TestErrorLogging(t *testing.T) {
	var buf bytes.Buffer
	originalLogger := logger
	Configure(WithOutput(&buf))
	defer func() { logger = originalLogger }()

	stdErr := fmt.Errorf("standard error")
	LogWithFields(F("error", stdErr.Error())).Error("error occurred")
	assert.Contains(t, buf.String(), "error occurred")
	assert.Contains(t, buf.String(), "standard error")
	buf.Reset()

	configErr := errors.NewConfigError("config error", "controller.shape", errors.InvalidConfig, nil)
	LogWithError(configErr).Error("config error occurred")
	output := buf.String()
	assert.Contains(t, output, "config error: controller.shape")
	assert.Contains(t, output, "param=controller.shape")
	assert.Contains(t, output, fmt.Sprintf("error_kind=%d", errors.InvalidConfig))
	buf.Reset()

	traceErr := errors.NewTraceError("unknown signal", 4, errors.UnknownSignal, nil)
	LogError(traceErr, "trace rejected")
	output = buf.String()
	assert.Contains(t, output, "trace rejected")
	assert.Contains(t, output, "step=4")
	assert.Contains(t, output, fmt.Sprintf("error_kind=%d", errors.UnknownSignal))
}

func TestNilErrorHandling(t *testing.T) {
	var buf bytes.Buffer
	originalLogger := logger
	Configure(WithOutput(&buf))
	defer func() { logger = originalLogger }()

	LogWithError(nil).Error("nil error test")
	assert.Contains(t, buf.String(), "nil error test")
	assert.Contains(t, buf.String(), "error=<nil>")
}

func TestFileOutput(t *testing.T) {
	path := filepath.Join(t.TempDir(), "dndbridge.log")
	var buf bytes.Buffer
	l := NewLogger(WithOutput(&buf), WithFile(path))
	defer l.Close()

	l.Info("file test message")
	assert.Contains(t, buf.String(), "file test message")

	content, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(content), "file test message")
	assert.NoError(t, l.Close())
}

func TestWithContext(t *testing.T) {
	var buf bytes.Buffer
	l := NewLogger(WithOutput(&buf))

	l.WithContext(context.Background()).Info("context message")
	assert.Contains(t, buf.String(), "context message")
}

func TestConfigure(t *testing.T) {
	originalLogger := logger
	defer func() { logger = originalLogger }()

	var buf bytes.Buffer
	Configure(WithOutput(&buf), WithJSON())
	Infof("global %s test", "config")

	var logEntry map[string]interface{}
	err := json.Unmarshal([]byte(strings.TrimSpace(buf.String())), &logEntry)
	require.NoError(t, err)
	assert.Equal(t, "global config test", logEntry["message"])
	assert.Same(t, logger, Default())
}

func TestConfigureClosesPreviousFile(t *testing.T) {
	originalLogger := logger
	defer func() { logger = originalLogger }()

	path := filepath.Join(t.TempDir(), "dndbridge.log")
	Configure(WithOutput(io.Discard), WithFile(path))
	withFile := Default()
	require.NotNil(t, withFile.file)

	Configure(WithOutput(io.Discard))
	assert.Nil(t, withFile.file, "replaced logger releases its file")
	assert.NotSame(t, withFile, Default())
}
