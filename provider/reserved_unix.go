//go:build linux || darwin

package provider

import (
	"fmt"

	"golang.org/x/sys/unix"
)

// Reserved is a Provider backed by a single anonymous mmap reservation.
// The whole reservation is made PROT_NONE up front; Grow commits pages
// on demand with mprotect. Because the reservation never moves and is
// never handed to Go's allocator, the address range behaves like a
// classic sbrk-style heap: offsets into Bytes() stay valid for the life
// of the Reserved value.
type Reserved struct {
	mmap        []byte
	pageSize    int
	committed   int
	protectedTo int
}

// NewReserved reserves maxBytes of address space without committing any of
// it. maxBytes is rounded up to a page boundary.
func NewReserved(maxBytes int) (*Reserved, error) {
	if maxBytes <= 0 {
		return nil, fmt.Errorf("provider: reservation size must be positive, got %d", maxBytes)
	}
	pageSize := unix.Getpagesize()
	reserveLen := alignUp(maxBytes, pageSize)

	data, err := unix.Mmap(-1, 0, reserveLen, unix.PROT_NONE, unix.MAP_ANON|unix.MAP_PRIVATE)
	if err != nil {
		return nil, fmt.Errorf("provider: reserve %d bytes: %w", reserveLen, err)
	}
	return &Reserved{mmap: data, pageSize: pageSize}, nil
}

// Bytes implements Provider.
func (r *Reserved) Bytes() []byte {
	return r.mmap[:r.committed]
}

// Grow implements Provider.
func (r *Reserved) Grow(n int) (int, error) {
	if n <= 0 {
		return r.committed, nil
	}
	newCommitted := r.committed + n
	if newCommitted > len(r.mmap) {
		return 0, ErrExhausted
	}
	pageEnd := alignUp(newCommitted, r.pageSize)
	if pageEnd > len(r.mmap) {
		pageEnd = len(r.mmap)
	}
	if pageEnd > r.protectedTo {
		if err := unix.Mprotect(r.mmap[r.protectedTo:pageEnd], unix.PROT_READ|unix.PROT_WRITE); err != nil {
			return 0, fmt.Errorf("provider: mprotect commit: %w", err)
		}
		r.protectedTo = pageEnd
	}
	off := r.committed
	r.committed = newCommitted
	return off, nil
}

// Close releases the entire reservation. The Reserved value must not be
// used afterward.
func (r *Reserved) Close() error {
	if r.mmap == nil {
		return nil
	}
	err := unix.Munmap(r.mmap)
	r.mmap = nil
	return err
}

func alignUp(n, align int) int {
	return (n + align - 1) &^ (align - 1)
}
