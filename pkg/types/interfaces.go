package types

import (
	"io/fs"
)

// FS is the filesystem interface required for slink operations
type FS interface {
	// File operations
	Open(name string) (fs.File, error)
	Stat(name string) (fs.FileInfo, error)
	ReadFile(name string) ([]byte, error)
	WriteFile(name string, data []byte, perm fs.FileMode) error

	// Directory operations
	MkdirAll(path string, perm fs.FileMode) error
	ReadDir(name string) ([]fs.DirEntry, error)

	// Symlink operations
	Symlink(oldname, newname string) error
	Readlink(name string) (string, error)

	// Lstat reports on a path without following symlinks, which is how
	// conflicts at the link location are detected
	Lstat(name string) (fs.FileInfo, error)

	// Other operations
	Remove(name string) error
	RemoveAll(path string) error
	Rename(oldpath, newpath string) error
}
