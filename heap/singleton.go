package heap

import "github.com/joshuapare/heapkit/provider"

// std is the package-level allocator used by the free functions below,
// per the design notes' guidance that a rewrite should encapsulate global
// state in an instance struct while still exposing the classic C-style
// free-function API for callers that only ever need one heap.
var std *Heap

// Init installs p as the package-level heap. It must be called once
// before Allocate/Release/Reallocate/ZeroedAllocate/Check.
func Init(p provider.Provider, cfg Config) error {
	h, err := New(p, cfg)
	if err != nil {
		return err
	}
	std = h
	return nil
}

// Allocate delegates to the package-level heap.
func Allocate(size int) (Ref, error) {
	if std == nil {
		return 0, ErrNotInitialized
	}
	return std.Allocate(size)
}

// Release delegates to the package-level heap.
func Release(ref Ref) error {
	if std == nil {
		return ErrNotInitialized
	}
	return std.Release(ref)
}

// Reallocate delegates to the package-level heap.
func Reallocate(ref Ref, size int) (Ref, error) {
	if std == nil {
		return 0, ErrNotInitialized
	}
	return std.Reallocate(ref, size)
}

// ZeroedAllocate delegates to the package-level heap.
func ZeroedAllocate(count, size int) (Ref, error) {
	if std == nil {
		return 0, ErrNotInitialized
	}
	return std.ZeroedAllocate(count, size)
}

// Check delegates to the package-level heap.
func Check(verbose bool) error {
	if std == nil {
		return ErrNotInitialized
	}
	return std.Check(verbose)
}

// Bytes delegates to the package-level heap. It returns nil if Init has
// not been called.
func Bytes(ref Ref, size int) []byte {
	if std == nil {
		return nil
	}
	return std.Bytes(ref, size)
}
