package log

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoggerWritesToFile(t *testing.T) {
	outputFile := filepath.Join(t.TempDir(), "hlmcp-test.log")

	logger := Logger(logrus.New(), outputFile, "hlmcp", "unit-test")
	logger.Info("hello")

	data, err := os.ReadFile(filepath.Clean(outputFile))
	require.NoError(t, err)

	var entry map[string]interface{}
	require.NoError(t, json.Unmarshal(data, &entry))
	assert.Equal(t, "hlmcp", entry["application"])
	assert.Equal(t, "unit-test", entry["environment"])
	assert.Equal(t, "hello", entry["msg"])
}

func TestLoggerBadOutputFileFallsBackToStderr(t *testing.T) {
	logger := Logger(logrus.New(), "/this/path/does/not/exist/out.log", "hlmcp", "unit-test")
	assert.NotPanics(t, func() { logger.Info("still works") })
}

func TestPackageLoggersInitialized(t *testing.T) {
	assert.NotNil(t, Tool)
	assert.NotNil(t, AWS)
	assert.NotNil(t, FHIR)
}
