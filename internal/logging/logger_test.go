package logging

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"
)

func TestGetBeforeInitializeIsSilent(t *testing.T) {
	SetLogger(nil)
	// Must not panic or write anywhere.
	Get("test").Infow("noop", "k", "v")
	Sync()
}

func TestInitializeWritesToFile(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, Initialize(dir, false))
	t.Cleanup(func() { SetLogger(nil) })

	Get("session").Infow("session resolved", "user", "u1")
	Sync()

	data, err := os.ReadFile(filepath.Join(dir, "agrimarket.log"))
	require.NoError(t, err)
	assert.Contains(t, string(data), "session resolved")
	assert.Contains(t, string(data), "u1")
}

func TestInitializeRequiresDir(t *testing.T) {
	assert.Error(t, Initialize("", false))
}

func TestVerboseEnablesDebug(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, Initialize(dir, true))
	t.Cleanup(func() { SetLogger(nil) })

	Get("api").Debugw("request complete", "status", 200)
	Sync()

	data, err := os.ReadFile(filepath.Join(dir, "agrimarket.log"))
	require.NoError(t, err)
	assert.True(t, strings.Contains(string(data), "request complete"))
}

func TestComponentNaming(t *testing.T) {
	core, logs := observer.New(zap.DebugLevel)
	SetLogger(zap.New(core))
	t.Cleanup(func() { SetLogger(nil) })

	Get("api").Warnw("request failed", "path", "/produce")

	entries := logs.All()
	require.Len(t, entries, 1)
	assert.Equal(t, "api", entries[0].LoggerName)
	assert.Equal(t, "request failed", entries[0].Message)
}
