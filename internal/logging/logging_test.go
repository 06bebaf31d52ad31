package logging

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestDefaultLogPath(t *testing.T) {
	t.Setenv("XDG_STATE_HOME", "/var/state")
	p, err := DefaultLogPath()
	require.NoError(t, err)
	assert.Equal(t, filepath.Join("/var/state", "dqi", "dqi.log"), p)
}

func TestNewFileWritesJSON(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "dqi.log")
	logger, err := NewFile(path, "info")
	require.NoError(t, err)

	logger.Debug("hidden")
	logger.Info("submitted", zap.String("emp_id", "A1234"))
	_ = logger.Sync()

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	lines := strings.Split(strings.TrimSpace(string(data)), "\n")
	require.Len(t, lines, 1)

	var entry map[string]any
	require.NoError(t, json.Unmarshal([]byte(lines[0]), &entry))
	assert.Equal(t, "submitted", entry["msg"])
	assert.Equal(t, "A1234", entry["emp_id"])
}

func TestBadLevel(t *testing.T) {
	_, err := NewConsole("chatty")
	assert.Error(t, err)
}
