package logging

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"nn2go/internal/config"
)

func TestJSON(t *testing.T) {
	var buf bytes.Buffer
	log, err := New(config.Log{Level: "info", Format: "json"}, &buf)
	require.NoError(t, err)
	log.Debug("hidden")
	log.Info("generated code", zap.String("function", "mlp"))
	require.NoError(t, log.Sync())

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	require.Len(t, lines, 1)
	var entry map[string]any
	require.NoError(t, json.Unmarshal([]byte(lines[0]), &entry))
	assert.Equal(t, "generated code", entry["msg"])
	assert.Equal(t, "mlp", entry["function"])
	assert.Equal(t, "info", entry["level"])
	assert.Contains(t, entry, "time")
}

func TestConsole(t *testing.T) {
	var buf bytes.Buffer
	log, err := New(config.Log{Level: "debug", Format: "console"}, &buf)
	require.NoError(t, err)
	log.Debug("sampled test case", zap.Int("case", 3))
	assert.Contains(t, buf.String(), "DEBUG\tsampled test case\t{\"case\": 3}")
}

func TestBadConfig(t *testing.T) {
	_, err := New(config.Log{Level: "loud", Format: "json"}, &bytes.Buffer{})
	assert.Error(t, err)
	_, err = New(config.Log{Level: "info", Format: "xml"}, &bytes.Buffer{})
	assert.Error(t, err)
}
