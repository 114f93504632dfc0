// Package gpu defines the boundary between particle simulation and the
// device-visible memory that rendering reads from.
package gpu

// A linear device-visible memory region.
type Buffer interface {
	// Allocated size in bytes.
	Size() int

	// Copy data into the buffer starting at the given byte offset. Bytes
	// outside [offset, offset+len(data)) are left untouched.
	WriteData(data []byte, offset int) error

	// Release the underlying device allocation.
	Release()
}

// A Provider allocates device buffers. Providers are passed explicitly to
// whatever needs device memory.
type Provider interface {
	// Provider name used in logs and stat tables.
	Name() string

	// Allocate a named buffer of size bytes.
	NewBuffer(name string, size int) (Buffer, error)

	// Shut down the provider. Buffers must be released before calling Close.
	Close()
}
