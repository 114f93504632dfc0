package opencl

import (
	"fmt"
	"unsafe"

	"github.com/achilleasa/emberfx/gpu"
	"github.com/achilleasa/gopencl/v1.2/cl"
)

// A device buffer. Writes are blocking so the host slice can be reused as
// soon as WriteData returns.
type Buffer struct {
	bufHandle cl.Mem

	device *Device

	// A name for identifying the buffer.
	name string

	// Allocated size in bytes.
	size int
}

func (b *Buffer) Size() int {
	return b.size
}

// Allocate a buffer with the given size and flags, releasing any previous
// allocation.
func (b *Buffer) Allocate(size int, flags cl.MemFlags) error {
	var errCode cl.ErrorCode

	if size <= 0 {
		return fmt.Errorf("opencl device (%s): buffer %s: %w (got %d)", b.device.Name, b.name, gpu.ErrInvalidSize, size)
	}

	b.Release()

	b.bufHandle = cl.CreateBuffer(
		*b.device.ctx,
		flags,
		cl.MemFlags(size),
		nil,
		(*int32)(&errCode),
	)
	if errCode != cl.SUCCESS {
		b.bufHandle = nil
		return fmt.Errorf("opencl device (%s): could not allocate buffer %s of size %d (error: %s; code %d)", b.device.Name, b.name, size, ErrorName(errCode), errCode)
	}

	b.size = size
	return nil
}

// Copy data to the device buffer at the given byte offset.
func (b *Buffer) WriteData(data []byte, offset int) error {
	if b.bufHandle == nil {
		return fmt.Errorf("opencl device (%s): buffer %s: %w", b.device.Name, b.name, gpu.ErrBufferReleased)
	}
	if offset < 0 || offset+len(data) > b.size {
		return fmt.Errorf("opencl device (%s): buffer %s: %w (offset %d, len %d, size %d)", b.device.Name, b.name, gpu.ErrOutOfBounds, offset, len(data), b.size)
	}
	if len(data) == 0 {
		return nil
	}

	errCode := cl.EnqueueWriteBuffer(
		b.device.cmdQueue,
		b.bufHandle,
		cl.TRUE,
		uint64(offset),
		uint64(len(data)),
		unsafe.Pointer(&data[0]),
		0,
		nil,
		nil,
	)
	if errCode != cl.SUCCESS {
		return fmt.Errorf("opencl device (%s): error copying host data to device buffer %s (error: %s; code %d)", b.device.Name, b.name, ErrorName(errCode), errCode)
	}

	return nil
}

// Read len(dst) bytes starting at the given byte offset into dst.
func (b *Buffer) ReadData(offset int, dst []byte) error {
	if b.bufHandle == nil {
		return fmt.Errorf("opencl device (%s): buffer %s: %w", b.device.Name, b.name, gpu.ErrBufferReleased)
	}
	if offset < 0 || offset+len(dst) > b.size {
		return fmt.Errorf("opencl device (%s): buffer %s: %w (offset %d, len %d, size %d)", b.device.Name, b.name, gpu.ErrOutOfBounds, offset, len(dst), b.size)
	}
	if len(dst) == 0 {
		return nil
	}

	errCode := cl.EnqueueReadBuffer(
		b.device.cmdQueue,
		b.bufHandle,
		cl.TRUE,
		uint64(offset),
		uint64(len(dst)),
		unsafe.Pointer(&dst[0]),
		0,
		nil,
		nil,
	)
	if errCode != cl.SUCCESS {
		return fmt.Errorf("opencl device (%s): error copying device buffer %s to host (error: %s; code %d)", b.device.Name, b.name, ErrorName(errCode), errCode)
	}

	return nil
}

func (b *Buffer) Release() {
	if b.bufHandle != nil {
		cl.ReleaseMemObject(b.bufHandle)
		b.bufHandle = nil
	}
	b.size = 0
}

// Get opencl buffer handle.
func (b *Buffer) Handle() cl.Mem {
	return b.bufHandle
}
