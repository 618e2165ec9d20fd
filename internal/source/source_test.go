package source

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"

	"nn2go/internal/fail"
)

const text = "Config Name=m Batch=0\n"

func TestPathAndStdin(t *testing.T) {
	path := filepath.Join(t.TempDir(), "m.graph")
	require.NoError(t, os.WriteFile(path, []byte(text), 0o644))
	l := &Loader{Stdin: strings.NewReader(text), Log: zaptest.NewLogger(t)}

	got, err := l.Load(context.Background(), path)
	require.NoError(t, err)
	assert.Equal(t, text, got)

	got, err = l.Load(context.Background(), "-")
	require.NoError(t, err)
	assert.Equal(t, text, got)
}

func TestUnsupported(t *testing.T) {
	l := &Loader{}
	for _, src := range []string{
		t.TempDir(),
		"http://example.com/m.graph",
		"s3://bucket",
		"s3://bucket/m.graph",
		"-",
	} {
		_, err := l.Load(context.Background(), src)
		require.Error(t, err, src)
		assert.True(t, errors.Is(err, fail.ErrUnsupportedInput), "%s: %v", src, err)
	}
}

func TestMissingFile(t *testing.T) {
	_, err := (&Loader{}).Load(context.Background(), filepath.Join(t.TempDir(), "none"))
	require.Error(t, err)
	assert.True(t, errors.Is(err, os.ErrNotExist))
	assert.Nil(t, fail.Kind(err))
}

func TestObject(t *testing.T) {
	bucket, key, err := Object("s3://models/nets/mlp.graph")
	require.NoError(t, err)
	assert.Equal(t, "models", bucket)
	assert.Equal(t, "nets/mlp.graph", key)
}

func TestCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := (&Loader{}).Load(ctx, "-")
	assert.ErrorIs(t, err, context.Canceled)
}
