//go:build unix

// Package mmfile memory-maps a heap arena's backing file so a provider can
// give the allocator persistent, disk-backed storage instead of anonymous
// memory.
package mmfile

import (
	"os"
	"syscall"
)

// OpenWritable opens (creating if needed) the file at path and maps it
// read-write. The file is truncated up to size bytes first if it is smaller.
func OpenWritable(path string, size int64) (*os.File, []byte, error) {
	f, err := os.OpenFile(path, os.O_RDWR|os.O_CREATE, 0o644)
	if err != nil {
		return nil, nil, err
	}
	info, err := f.Stat()
	if err != nil {
		f.Close()
		return nil, nil, err
	}
	if info.Size() < size {
		if err := f.Truncate(size); err != nil {
			f.Close()
			return nil, nil, err
		}
	}
	if size == 0 {
		return f, []byte{}, nil
	}
	data, err := syscall.Mmap(int(f.Fd()), 0, int(size), syscall.PROT_READ|syscall.PROT_WRITE, syscall.MAP_SHARED)
	if err != nil {
		f.Close()
		return nil, nil, err
	}
	return f, data, nil
}

// Remap unmaps the current mapping, truncates the file to newSize, and maps
// it again. Any prior data slice returned by OpenWritable or Remap becomes
// invalid once this returns.
func Remap(f *os.File, old []byte, newSize int64) ([]byte, error) {
	if len(old) > 0 {
		if err := syscall.Munmap(old); err != nil {
			return nil, err
		}
	}
	if err := f.Truncate(newSize); err != nil {
		return nil, err
	}
	if newSize == 0 {
		return []byte{}, nil
	}
	return syscall.Mmap(int(f.Fd()), 0, int(newSize), syscall.PROT_READ|syscall.PROT_WRITE, syscall.MAP_SHARED)
}

// Close unmaps data and closes f.
func Close(f *os.File, data []byte) error {
	var err error
	if len(data) > 0 {
		err = syscall.Munmap(data)
	}
	if cerr := f.Close(); cerr != nil && err == nil {
		err = cerr
	}
	return err
}
