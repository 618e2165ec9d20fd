package artifact

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"nn2go/internal/fail"
)

func entries(t *testing.T, dir string) []string {
	des, err := os.ReadDir(dir)
	require.NoError(t, err)
	var names []string
	for _, de := range des {
		names = append(names, de.Name())
	}
	return names
}

func TestWritePublishesAll(t *testing.T) {
	dir := t.TempDir()
	a := filepath.Join(dir, "net.go")
	b := filepath.Join(dir, "net_test.go")
	require.NoError(t, Check(a, b))
	require.NoError(t, Write(File{a, []byte("package a\n")}, File{b, []byte("package b\n")}))

	data, err := os.ReadFile(b)
	require.NoError(t, err)
	assert.Equal(t, "package b\n", string(data))
	assert.ElementsMatch(t, []string{"net.go", "net_test.go"}, entries(t, dir))
}

func TestCheckFindsExistingFiles(t *testing.T) {
	dir := t.TempDir()
	a := filepath.Join(dir, "net.go")
	require.NoError(t, os.WriteFile(a, []byte("keep"), 0o644))
	err := Check(filepath.Join(dir, "net_test.go"), a)
	require.Error(t, err)
	assert.True(t, errors.Is(err, fail.ErrArtifactExists))
	assert.Contains(t, err.Error(), a)

	link := filepath.Join(dir, "dangling.go")
	require.NoError(t, os.Symlink(filepath.Join(dir, "missing"), link))
	assert.True(t, errors.Is(Check(link), fail.ErrArtifactExists))
}

func TestWriteNeverOverwrites(t *testing.T) {
	dir := t.TempDir()
	a := filepath.Join(dir, "net.go")
	b := filepath.Join(dir, "net_test.go")
	require.NoError(t, os.WriteFile(b, []byte("keep"), 0o644))

	err := Write(File{a, []byte("new")}, File{b, []byte("new")})
	require.Error(t, err)
	assert.True(t, errors.Is(err, fail.ErrArtifactExists))

	data, err := os.ReadFile(b)
	require.NoError(t, err)
	assert.Equal(t, "keep", string(data))
	assert.Equal(t, []string{"net_test.go"}, entries(t, dir))
}

func TestWriteIntoMissingDirectory(t *testing.T) {
	err := Write(File{filepath.Join(t.TempDir(), "no", "net.go"), nil})
	require.Error(t, err)
	assert.Nil(t, fail.Kind(err))
}
