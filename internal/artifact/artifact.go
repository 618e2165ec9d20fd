// Package artifact publishes generated files. A published file is never
// overwritten and a group of files is published whole or not at all.
package artifact

import (
	"errors"
	"io/fs"
	"os"
	"path/filepath"

	pkgerrors "github.com/pkg/errors"

	"nn2go/internal/fail"
)

type File struct {
	Path string
	Data []byte
}

// Check fails with ErrArtifactExists if any of paths exists, even as a
// dangling symlink.
func Check(paths ...string) error {
	for _, path := range paths {
		_, err := os.Lstat(path)
		if err == nil {
			return fail.Exists(path)
		}
		if !errors.Is(err, fs.ErrNotExist) {
			return pkgerrors.Wrap(err, "check artifact")
		}
	}
	return nil
}

// Write publishes every file or, on failure, none of them. Each file is
// fully written to a temporary file in its own directory and then hard
// linked to its path, which fails rather than replace an existing file.
func Write(files ...File) (err error) {
	var published []string
	defer func() {
		if err != nil {
			for _, path := range published {
				os.Remove(path)
			}
		}
	}()
	for _, f := range files {
		if err := publish(f); err != nil {
			return err
		}
		published = append(published, f.Path)
	}
	return nil
}

func publish(f File) error {
	tmp, err := os.CreateTemp(filepath.Dir(f.Path), "."+filepath.Base(f.Path)+".*")
	if err != nil {
		return pkgerrors.Wrap(err, "write artifact")
	}
	name := tmp.Name()
	defer os.Remove(name)
	if _, err := tmp.Write(f.Data); err != nil {
		tmp.Close()
		return pkgerrors.Wrapf(err, "write %s", name)
	}
	if err := tmp.Sync(); err != nil {
		tmp.Close()
		return pkgerrors.Wrapf(err, "sync %s", name)
	}
	if err := tmp.Close(); err != nil {
		return pkgerrors.Wrapf(err, "close %s", name)
	}
	if err := os.Chmod(name, 0o644); err != nil {
		return pkgerrors.Wrapf(err, "chmod %s", name)
	}
	if err := os.Link(name, f.Path); err != nil {
		if errors.Is(err, fs.ErrExist) {
			return fail.Exists(f.Path)
		}
		return pkgerrors.Wrap(err, "publish artifact")
	}
	return nil
}
