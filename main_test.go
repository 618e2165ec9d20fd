package main

import (
	"bytes"
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"nn2go/internal/example"
	"nn2go/internal/fail"
)

func runArgs(t *testing.T, stdin string, args ...string) (string, string, error) {
	var stdout, stderr bytes.Buffer
	e := &env{stdin: strings.NewReader(stdin), stdout: &stdout, stderr: &stderr}
	err := run(context.Background(), e, args)
	return stdout.String(), stderr.String(), err
}

func TestCompileFromStdin(t *testing.T) {
	dir := t.TempDir()
	out, logs, err := runArgs(t, string(example.MLP()),
		"compile", "-", "--dir", dir, "--tests", "3", "--function", "classify", "--package", "nets",
		"--log-format", "json")
	require.NoError(t, err, logs)
	code := filepath.Join(dir, "classify.go")
	test := filepath.Join(dir, "classify_test.go")
	assert.Equal(t, code+"\n"+test+"\n", out)
	assert.Contains(t, logs, `"run":`)

	data, err := os.ReadFile(test)
	require.NoError(t, err)
	assert.Contains(t, string(data), "package nets\n")
	assert.Contains(t, string(data), "var errs [3]float64")

	_, _, err = runArgs(t, string(example.MLP()), "compile", "-", "--dir", dir, "--function", "classify")
	assert.True(t, errors.Is(err, fail.ErrArtifactExists))
}

func TestCompileFromEnvAndMetrics(t *testing.T) {
	dir := t.TempDir()
	graph := filepath.Join(dir, "lstm.graph")
	require.NoError(t, os.WriteFile(graph, example.LSTM(), 0o644))
	prom := filepath.Join(dir, "nn2go.prom")
	t.Setenv("NN2GO_DIR", dir)
	t.Setenv("NN2GO_EVAL_MODE", "float32")
	t.Setenv("NN2GO_TESTS", "4")

	_, logs, err := runArgs(t, "", "compile", graph, "--metrics-file", prom)
	require.NoError(t, err, logs)
	data, err := os.ReadFile(filepath.Join(dir, "forecast_test.go"))
	require.NoError(t, err)
	assert.Contains(t, string(data), "var errs [4]float64")
	assert.Contains(t, string(data), "forecastResetStates()")

	metrics, err := os.ReadFile(prom)
	require.NoError(t, err)
	assert.Contains(t, string(metrics), `nn2go_artifacts_written_total{kind="code"} 1`)
}

func TestCompileRejectsBadInput(t *testing.T) {
	_, _, err := runArgs(t, "", "compile", "ftp://host/m.graph", "--dir", t.TempDir())
	assert.True(t, errors.Is(err, fail.ErrUnsupportedInput))

	_, _, err = runArgs(t, "", "compile", "-", "--eval-mode", "float16")
	assert.ErrorContains(t, err, "eval-mode")
}

func TestDocExampleVersion(t *testing.T) {
	out, _, err := runArgs(t, "", "doc")
	require.NoError(t, err)
	assert.Contains(t, out, "LSTM FromTensor=")

	out, _, err = runArgs(t, "", "example", "GRU")
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(out, "Config Name=sentiment"))

	_, _, err = runArgs(t, "", "example", "ResNet50")
	assert.ErrorContains(t, err, "MLP")

	out, _, err = runArgs(t, "", "version")
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(out, "nn2go version "))
}

func TestCompileHelpNamesRuntime(t *testing.T) {
	out, _, err := runArgs(t, "", "compile", "--help")
	require.NoError(t, err)
	assert.Contains(t, out, "nn2go/infer by default")
	assert.Contains(t, out, "--runtime example.com/app/infer")
}
