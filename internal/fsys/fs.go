// Package fsys abstracts the three filesystem reads the loader performs
// (read a file, list a directory, stat a path) so tests can run against
// fstest.MapFS instead of the real disk.
package fsys

import (
	stderrors "errors"
	"fmt"
	"io/fs"
	"os"

	"github.com/yodelconfig/yodel/pkg/errors"
)

// FS is the loader's view of a filesystem.
type FS interface {
	ReadFile(path string) ([]byte, error)
	ReadDir(path string) ([]fs.DirEntry, error)
	Stat(path string) (fs.FileInfo, error)
}

type osFS struct{}

// OS returns an FS backed by the process filesystem. Relative paths
// resolve against the working directory.
func OS() FS {
	return osFS{}
}

func (osFS) ReadFile(path string) ([]byte, error) {
	return os.ReadFile(path)
}

func (osFS) ReadDir(path string) ([]fs.DirEntry, error) {
	return os.ReadDir(path)
}

func (osFS) Stat(path string) (fs.FileInfo, error) {
	return os.Stat(path)
}

type ioFS struct {
	fsys fs.FS
}

// FromFS adapts an io/fs filesystem. Leading slashes are stripped, since
// io/fs paths are unrooted.
func FromFS(fsys fs.FS) FS {
	return ioFS{fsys: fsys}
}

func (f ioFS) ReadFile(path string) ([]byte, error) {
	return fs.ReadFile(f.fsys, convertToFS(path))
}

func (f ioFS) ReadDir(path string) ([]fs.DirEntry, error) {
	return fs.ReadDir(f.fsys, convertToFS(path))
}

func (f ioFS) Stat(path string) (fs.FileInfo, error) {
	return fs.Stat(f.fsys, convertToFS(path))
}

func convertToFS(path string) string {
	for len(path) > 0 && path[0] == '/' {
		path = path[1:]
	}

	if path == "" {
		return "."
	}

	return path
}

// Read loads a file's bytes, mapping the failure onto the error taxonomy.
func Read(f FS, path string) ([]byte, error) {
	info, err := f.Stat(path)
	if err == nil && info.IsDir() {
		return nil, fmt.Errorf("%s: %w", path, errors.ErrIsDirectory)
	}

	b, err := f.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, WrapError(err))
	}

	return b, nil
}

// WrapError maps an os/io error onto the file-error taxonomy.
func WrapError(err error) error {
	switch {
	case stderrors.Is(err, fs.ErrNotExist):
		return errors.ErrMissingFile
	case stderrors.Is(err, fs.ErrPermission):
		return errors.ErrPermission
	default:
		return fmt.Errorf("%v (%w)", err, errors.ErrFileRead)
	}
}
