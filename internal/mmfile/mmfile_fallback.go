//go:build !unix

// Package mmfile memory-maps a heap arena's backing file so a provider can
// give the allocator persistent, disk-backed storage instead of anonymous
// memory.
package mmfile

import "os"

// OpenWritable opens (creating if needed) the file at path and reads it into
// a plain buffer of size bytes, since a true shared mapping is not available
// on this platform. Writes only reach disk on Close or Remap.
func OpenWritable(path string, size int64) (*os.File, []byte, error) {
	f, err := os.OpenFile(path, os.O_RDWR|os.O_CREATE, 0o644)
	if err != nil {
		return nil, nil, err
	}
	buf := make([]byte, size)
	// A short read (including io.EOF on an empty or smaller file) is
	// expected here; whatever wasn't read stays zeroed.
	_, _ = f.ReadAt(buf, 0)
	return f, buf, nil
}

// Remap flushes the current buffer to disk and returns a resized copy.
func Remap(f *os.File, old []byte, newSize int64) ([]byte, error) {
	if _, err := f.WriteAt(old, 0); err != nil {
		return nil, err
	}
	buf := make([]byte, newSize)
	copy(buf, old)
	return buf, nil
}

// Close flushes data to disk and closes f.
func Close(f *os.File, data []byte) error {
	if data != nil {
		if _, err := f.WriteAt(data, 0); err != nil {
			f.Close()
			return err
		}
	}
	return f.Close()
}
