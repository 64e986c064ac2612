// Package diskmanager provides the file abstraction the pager performs its
// I/O through. The store uses exactly one backing file per table.
package diskmanager

import (
	"os"
)

// FileHandle abstracts random-access file operations with syncing.
type FileHandle interface {
	// ReadAt reads len(b) bytes from the file starting at byte offset off.
	// It returns the number of bytes read and any error encountered.
	ReadAt(b []byte, off int64) (int, error)
	// WriteAt writes len(b) bytes to the file starting at byte offset off.
	// It returns the number of bytes written and any error encountered.
	WriteAt(b []byte, off int64) (int, error)
	// Sync commits the current contents of the file to stable storage.
	Sync() error
	// Stat returns the file stat
	Stat() (os.FileInfo, error)
	// Close closes the file handle, rendering it unusable for I/O.
	Close() error
}

type fileHandle struct {
	file *os.File
}

// NewFileHandle wraps an *os.File into a FileHandle implementation.
func NewFileHandle(file *os.File) FileHandle { return &fileHandle{file: file} }

func (fh *fileHandle) ReadAt(b []byte, off int64) (int, error) { return fh.file.ReadAt(b, off) }

func (fh *fileHandle) WriteAt(b []byte, off int64) (int, error) { return fh.file.WriteAt(b, off) }

func (fh *fileHandle) Sync() error { return fh.file.Sync() }

func (fh *fileHandle) Stat() (os.FileInfo, error) { return fh.file.Stat() }

func (fh *fileHandle) Close() error { return fh.file.Close() }

// OpenFile opens the file at path for reading and writing, creating it if it
// does not exist, and wraps it in a FileHandle.
func OpenFile(path string) (FileHandle, error) {
	file, err := os.OpenFile(path, os.O_RDWR|os.O_CREATE, 0644)
	if err != nil {
		return nil, err
	}
	return NewFileHandle(file), nil
}
