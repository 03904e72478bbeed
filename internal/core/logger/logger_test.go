package logger

import (
	"log"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

func TestBuildWritesRotatedFile(t *testing.T) {
	file := filepath.Join(t.TempDir(), "app.log")
	l, cleanup := Build(Options{
		Level:  "info",
		JSON:   true,
		Rotate: FileRotate{Enable: true, Filename: file, MaxSizeMB: 1},
	})
	l.Info("patient created", zap.String("id", "p-1"))
	l.Debug("dropped")
	cleanup()

	b, err := os.ReadFile(file)
	require.NoError(t, err)
	assert.Contains(t, string(b), `"msg":"patient created"`)
	assert.Contains(t, string(b), `"id":"p-1"`)
	assert.NotContains(t, string(b), "dropped")
}

func TestBuildBadLevelFallsBackToInfo(t *testing.T) {
	l, cleanup := New("loud", false)
	defer cleanup()
	assert.True(t, l.Core().Enabled(zapcore.InfoLevel))
	assert.False(t, l.Core().Enabled(zapcore.DebugLevel))
}

func TestStdLogBridges(t *testing.T) {
	file := filepath.Join(t.TempDir(), "std.log")
	l, cleanup := Build(Options{Level: "debug", Rotate: FileRotate{Enable: true, Filename: file}})

	std, err := ToStdLogger(l, zapcore.WarnLevel)
	require.NoError(t, err)
	std.Print("slow sql")

	undo := RedirectStdLog(l)
	log.Print("from std log")
	undo()
	cleanup()

	b, err := os.ReadFile(file)
	require.NoError(t, err)
	assert.Contains(t, string(b), "slow sql")
	assert.Contains(t, string(b), "from std log")
}
