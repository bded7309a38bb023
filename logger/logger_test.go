package logger

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

func TestNewWritesToRotatedFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "logs", "unicorn.log")
	log, err := New(Config{Level: "debug", Format: "json", File: path})
	require.NoError(t, err)

	log.Debug("artifact loaded", zap.String("artifact", "supervised"))
	_ = log.Sync()

	body, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(body), `"msg":"artifact loaded"`)
	assert.Contains(t, string(body), `"artifact":"supervised"`)
}

func TestNewRespectsLevel(t *testing.T) {
	log, err := New(Config{Level: "warn"})
	require.NoError(t, err)
	assert.False(t, log.Core().Enabled(zapcore.InfoLevel))
	assert.True(t, log.Core().Enabled(zapcore.WarnLevel))
}

func TestNewRejectsUnknownLevel(t *testing.T) {
	_, err := New(Config{Level: "verbose"})
	assert.ErrorContains(t, err, `unknown log level "verbose"`)
}
