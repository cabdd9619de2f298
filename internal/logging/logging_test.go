package logging_test

import (
	"bytes"
	"fmt"
	"os"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/fivetwenty-io/canvas-client/internal/logging"
)

func TestAdapter(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer

	logger := logging.NewAdapter(logging.New(logging.Options{Output: &buf, Debug: true}))
	logger.Info("Retrieved courses", map[string]interface{}{"count": 3, "base_url": "https://x"})

	line := buf.String()
	assert.Contains(t, line, "[INFO]")
	assert.Contains(t, line, fmt.Sprintf("p%d", os.Getpid()))
	assert.Contains(t, line, "logging_test.go:")
	assert.Contains(t, line, "Retrieved courses")
	assert.Contains(t, line, "base_url=https://x count=3")
}

func TestLevels(t *testing.T) {
	t.Parallel()

	t.Run("info by default", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer

		logger := logging.NewAdapter(logging.New(logging.Options{Output: &buf}))
		logger.Debug("hidden", nil)
		logger.Warn("shown", nil)

		assert.NotContains(t, buf.String(), "hidden")
		assert.Contains(t, buf.String(), "[WARN]")
	})

	t.Run("debug", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer

		logger := logging.NewAdapter(logging.New(logging.Options{Output: &buf, Debug: true}))
		logger.Debug("HTTP Request", map[string]interface{}{"method": "GET"})
		logger.Error("failed", nil)

		assert.Contains(t, buf.String(), "[DEBUG]")
		assert.Contains(t, buf.String(), "method=GET")
		assert.Contains(t, buf.String(), "[ERROR]")
	})
}
