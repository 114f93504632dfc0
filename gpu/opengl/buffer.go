// Package opengl allocates particle buffers as opengl array buffers. All
// calls must be made from the goroutine that owns the current GL context.
package opengl

import (
	"fmt"
	"unsafe"

	"github.com/achilleasa/emberfx/gpu"
	"github.com/go-gl/gl/v2.1/gl"
)

// An opengl array buffer.
type Buffer struct {
	handle uint32
	name   string
	size   int

	// Orphan the buffer store before each write starting at offset 0 so
	// the driver can hand out fresh memory instead of stalling on frames
	// still reading the old contents.
	orphan bool
}

func (b *Buffer) Size() int {
	return b.size
}

func (b *Buffer) WriteData(data []byte, offset int) error {
	if b.handle == 0 {
		return fmt.Errorf("opengl buffer %s: %w", b.name, gpu.ErrBufferReleased)
	}
	if offset < 0 || offset+len(data) > b.size {
		return fmt.Errorf("opengl buffer %s: %w (offset %d, len %d, size %d)", b.name, gpu.ErrOutOfBounds, offset, len(data), b.size)
	}
	if len(data) == 0 {
		return nil
	}

	gl.BindBuffer(gl.ARRAY_BUFFER, b.handle)
	if b.orphan && offset == 0 {
		gl.BufferData(gl.ARRAY_BUFFER, b.size, nil, gl.STREAM_DRAW)
	}
	gl.BufferSubData(gl.ARRAY_BUFFER, offset, len(data), unsafe.Pointer(&data[0]))
	gl.BindBuffer(gl.ARRAY_BUFFER, 0)

	if errCode := gl.GetError(); errCode != gl.NO_ERROR {
		return fmt.Errorf("opengl buffer %s: write failed (error 0x%x)", b.name, errCode)
	}
	return nil
}

// Get the opengl buffer name for binding.
func (b *Buffer) Handle() uint32 {
	return b.handle
}

func (b *Buffer) Release() {
	if b.handle != 0 {
		gl.DeleteBuffers(1, &b.handle)
		b.handle = 0
	}
}
