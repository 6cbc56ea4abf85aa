//go:build unix

package mmfile

import (
	"path/filepath"
	"testing"
)

func TestOpenWritableRoundTrip(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping mmap test in short mode")
	}
	path := filepath.Join(t.TempDir(), "arena.bin")
	f, data, err := OpenWritable(path, 64)
	if err != nil {
		t.Fatalf("OpenWritable: %v", err)
	}
	defer Close(f, data)

	if len(data) != 64 {
		t.Fatalf("len mismatch: got %d want 64", len(data))
	}
	data[0] = 0xAB
	data[63] = 0xCD
	if data[0] != 0xAB || data[63] != 0xCD {
		t.Fatalf("write to mapping did not stick")
	}
}

func TestRemapGrowsAndPreservesPrefix(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping mmap test in short mode")
	}
	path := filepath.Join(t.TempDir(), "arena.bin")
	f, data, err := OpenWritable(path, 16)
	if err != nil {
		t.Fatalf("OpenWritable: %v", err)
	}
	copy(data, []byte("hello world!!!!!"))

	grown, err := Remap(f, data, 32)
	if err != nil {
		t.Fatalf("Remap: %v", err)
	}
	defer Close(f, grown)

	if len(grown) != 32 {
		t.Fatalf("len mismatch: got %d want 32", len(grown))
	}
	if string(grown[:12]) != "hello world!" {
		t.Fatalf("prefix not preserved: got %q", grown[:12])
	}
}

func TestOpenWritableZeroSize(t *testing.T) {
	path := filepath.Join(t.TempDir(), "empty.bin")
	f, data, err := OpenWritable(path, 0)
	if err != nil {
		t.Fatalf("OpenWritable: %v", err)
	}
	defer Close(f, data)
	if len(data) != 0 {
		t.Fatalf("expected zero-length mapping, got %d", len(data))
	}
}
