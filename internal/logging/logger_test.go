package logging

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/charmbracelet/log"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHelpersAreSafeWithoutLogger(t *testing.T) {
	Logger = nil
	assert.NotPanics(t, func() {
		Info("x")
		Debug("x")
		Warn("x")
		Error("x")
	})
}

func TestSetOutputRespectsLevel(t *testing.T) {
	var buf bytes.Buffer
	SetOutput(&buf, log.WarnLevel)
	t.Cleanup(func() { Logger = nil })

	Info("hidden")
	Warn("clipboard write failed", "seq", 3)

	out := buf.String()
	assert.NotContains(t, out, "hidden")
	assert.Contains(t, out, "clipboard write failed")
	assert.Contains(t, out, "seq=3")
}

func TestInitWritesFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "logs", "panel.log")
	require.NoError(t, Init(path, "debug"))
	Debug("feed pushed", "version", 7)
	Close()
	Logger = nil

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), "updatepanel started")
	assert.Contains(t, string(data), "feed pushed")
}
