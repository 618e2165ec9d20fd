package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"nn2go/internal/eval"
)

func TestDefaults(t *testing.T) {
	cfg, err := Load(New(), "")
	require.NoError(t, err)
	assert.Equal(t, ".", cfg.Dir)
	assert.Equal(t, 10, cfg.Tests)
	assert.Equal(t, 1e-3, cfg.Tolerance)
	assert.Equal(t, int64(0), cfg.Seed)
	assert.Equal(t, eval.Float64, cfg.Mode())
	assert.Equal(t, "nn2go/infer", cfg.Runtime)
	assert.Equal(t, "info", cfg.Log.Level)
	assert.Equal(t, "console", cfg.Log.Format)
	assert.True(t, cfg.S3.Secure)
}

func TestEnvironmentOverridesFile(t *testing.T) {
	file := filepath.Join(t.TempDir(), "nn2go.yaml")
	require.NoError(t, os.WriteFile(file, []byte(
		"tests: 4\n"+
			"eval-mode: float32\n"+
			"log:\n  format: json\n"+
			"s3:\n  endpoint: localhost:9000\n  secure: false\n"), 0o644))
	t.Setenv("NN2GO_TESTS", "6")
	t.Setenv("NN2GO_LOG_LEVEL", "debug")

	cfg, err := Load(New(), file)
	require.NoError(t, err)
	assert.Equal(t, 6, cfg.Tests)
	assert.Equal(t, eval.Float32, cfg.Mode())
	assert.Equal(t, "json", cfg.Log.Format)
	assert.Equal(t, "debug", cfg.Log.Level)
	assert.Equal(t, "localhost:9000", cfg.S3.Endpoint)
	assert.False(t, cfg.S3.Secure)
}

func TestValidation(t *testing.T) {
	for _, tc := range []struct {
		key   string
		value any
		msg   string
	}{
		{KeyTests, 0, "tests must be at least 1"},
		{KeyTolerance, -1.0, "tolerance must be non-negative"},
		{KeyEvalMode, "float16", "eval-mode"},
		{KeyLogFormat, "xml", "log.format"},
		{KeyLogLevel, "loud", "log.level"},
		{KeyRuntime, "", "runtime must not be empty"},
	} {
		v := New()
		v.Set(tc.key, tc.value)
		_, err := Load(v, "")
		require.Error(t, err, tc.key)
		assert.Contains(t, err.Error(), tc.msg)
	}
}

func TestZeroTolerance(t *testing.T) {
	v := New()
	v.Set(KeyTolerance, 0.0)
	cfg, err := Load(v, "")
	require.NoError(t, err)
	assert.Zero(t, cfg.Tolerance)
}

func TestMissingFile(t *testing.T) {
	_, err := Load(New(), filepath.Join(t.TempDir(), "none.yaml"))
	assert.Error(t, err)
}
