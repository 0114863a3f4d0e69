package log_test

import (
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ludo-technologies/codedist/internal/log"
)

func initializeToFile(t *testing.T, opts log.Options) string {
	t.Helper()

	previous := slog.Default()
	t.Cleanup(func() { slog.SetDefault(previous) })

	path := filepath.Join(t.TempDir(), "codedist.log")
	opts.OutputPaths = []string{path}

	logger, err := log.Initialize(opts)
	require.NoError(t, err)

	slog.Debug("debug message")
	slog.Warn("warn message", "grammar", "java")
	_ = logger.Sync()

	content, err := os.ReadFile(path)
	require.NoError(t, err)
	return string(content)
}

func TestInitialize_DefaultLevel(t *testing.T) {
	output := initializeToFile(t, log.Options{Env: "dev"})

	assert.Contains(t, output, "warn message")
	assert.NotContains(t, output, "debug message")
}

func TestInitialize_Verbose(t *testing.T) {
	output := initializeToFile(t, log.Options{Env: "dev", Verbose: true})

	assert.Contains(t, output, "debug message")
	assert.Contains(t, output, "warn message")
}

func TestInitialize_ProdWritesJSON(t *testing.T) {
	output := initializeToFile(t, log.Options{Env: "PROD"})

	assert.Contains(t, output, `"msg":"warn message"`)
	assert.Contains(t, output, `"grammar":"java"`)
}

func TestInitialize_RecordsCaller(t *testing.T) {
	output := initializeToFile(t, log.Options{Env: "prod"})

	assert.Contains(t, output, `"caller":"log/log_test.go:`)
}

func TestLoggingEnv_String(t *testing.T) {
	assert.Equal(t, "dev", log.LoggingEnvDev.String())
	assert.Equal(t, "prod", log.LoggingEnvProd.String())
}
