package logger_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/eduzap/eduzap/utils/logger"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"
)

func TestReplace(t *testing.T) {
	core, logs := observer.New(zap.InfoLevel)
	logger.Replace(zap.New(core))
	t.Cleanup(func() { logger.Replace(zap.NewNop()) })

	logger.Info("[Load] list refreshed", zap.Int("count", 3))
	logger.Debug("dropped below level")

	require.Equal(t, 1, logs.Len())
	entry := logs.All()[0]
	assert.Equal(t, "[Load] list refreshed", entry.Message)
	assert.Equal(t, int64(3), entry.ContextMap()["count"])
}

func TestInit_Test(t *testing.T) {
	require.NoError(t, logger.Init("test"))
	assert.NotNil(t, logger.Get())
	assert.NoError(t, logger.Close())
}

func TestInit_WithOutput(t *testing.T) {
	path := filepath.Join(t.TempDir(), "eduzap.log")
	require.NoError(t, logger.Init("development", logger.WithLevel("warn"), logger.WithOutput(path)))
	t.Cleanup(func() { logger.Replace(zap.NewNop()) })

	logger.Info("[List] below level")
	logger.Named("cli").Warn("[Watch] err consumer.Start")
	require.NoError(t, logger.Close())

	raw, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.NotContains(t, string(raw), "below level")
	assert.Contains(t, string(raw), "[Watch] err consumer.Start")
	assert.Contains(t, string(raw), "cli")
}
