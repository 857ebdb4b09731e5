package logging

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestNewWritesJSONWithSession(t *testing.T) {
	path := filepath.Join(t.TempDir(), "logs", "test.log")
	log, err := New("debug", path)
	require.NoError(t, err)

	log.Debug("first")
	log.Info("second")
	_ = log.Sync()

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	lines := strings.Split(strings.TrimSpace(string(data)), "\n")
	require.Len(t, lines, 2)

	var sessions []string
	for _, line := range lines {
		var entry map[string]any
		require.NoError(t, json.Unmarshal([]byte(line), &entry))
		s, ok := entry["session"].(string)
		require.True(t, ok, "entry without session: %s", line)
		sessions = append(sessions, s)
	}
	require.Equal(t, sessions[0], sessions[1])
	require.Len(t, sessions[0], 36)
}

func TestNewRespectsLevel(t *testing.T) {
	path := filepath.Join(t.TempDir(), "test.log")
	log, err := New("warn", path)
	require.NoError(t, err)

	log.Info("dropped")
	log.Warn("kept")
	_ = log.Sync()

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	require.NotContains(t, string(data), "dropped")
	require.Contains(t, string(data), "kept")
}

func TestNewDiscard(t *testing.T) {
	log, err := New("nonsense", Discard)
	require.NoError(t, err)
	log.Info("nowhere")
}

func TestNewErrors(t *testing.T) {
	_, err := New("loud", filepath.Join(t.TempDir(), "x.log"))
	require.Error(t, err)

	_, err = New("info", "")
	require.Error(t, err)
}

func TestDefaultPath(t *testing.T) {
	p := DefaultPath()
	require.Equal(t, "meatymidi.log", filepath.Base(p))
	require.Equal(t, "meatymidi", filepath.Base(filepath.Dir(p)))
}
