package provider

import (
	"os"

	"github.com/joshuapare/heapkit/internal/mmfile"
)

// File is a Provider backed by a growable, memory-mapped file, giving the
// heap arena persistence across process restarts. Reserved is preferred for
// throwaway in-process heaps; File is for the case where the arena itself
// needs to survive a crash or be reopened later.
type File struct {
	f    *os.File
	data []byte
}

// OpenFile opens or creates the backing file at path with an initial size of
// initialBytes and maps it for the heap to grow into. A fresh file starts
// zero-filled; a pre-existing one is reopened as-is, letting a caller resume
// an arena a prior process created.
func OpenFile(path string, initialBytes int) (*File, error) {
	if initialBytes < 0 {
		initialBytes = 0
	}
	f, data, err := mmfile.OpenWritable(path, int64(initialBytes))
	if err != nil {
		return nil, err
	}
	return &File{f: f, data: data}, nil
}

// Bytes implements Provider.
func (fp *File) Bytes() []byte {
	return fp.data
}

// Grow implements Provider by truncating and remapping the backing file.
func (fp *File) Grow(n int) (int, error) {
	if n < 0 {
		return 0, ErrExhausted
	}
	off := len(fp.data)
	data, err := mmfile.Remap(fp.f, fp.data, int64(off+n))
	if err != nil {
		return 0, err
	}
	fp.data = data
	return off, nil
}

// Close unmaps the arena and closes the backing file.
func (fp *File) Close() error {
	return mmfile.Close(fp.f, fp.data)
}
