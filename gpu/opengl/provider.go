package opengl

import (
	"fmt"

	"github.com/achilleasa/emberfx/gpu"
	"github.com/go-gl/gl/v2.1/gl"
)

// A gpu.Provider allocating opengl array buffers. It expects gl.Init to
// have been called with a current context.
type Provider struct {
	// Orphan buffer stores on every full rewrite.
	Orphan bool
}

func NewProvider(orphan bool) *Provider {
	return &Provider{Orphan: orphan}
}

func (p *Provider) Name() string {
	return "opengl"
}

func (p *Provider) NewBuffer(name string, size int) (gpu.Buffer, error) {
	if size <= 0 {
		return nil, fmt.Errorf("opengl buffer %s: %w (got %d)", name, gpu.ErrInvalidSize, size)
	}

	buf := &Buffer{
		name:   name,
		size:   size,
		orphan: p.Orphan,
	}
	gl.GenBuffers(1, &buf.handle)
	gl.BindBuffer(gl.ARRAY_BUFFER, buf.handle)
	gl.BufferData(gl.ARRAY_BUFFER, size, nil, gl.STREAM_DRAW)
	gl.BindBuffer(gl.ARRAY_BUFFER, 0)

	if errCode := gl.GetError(); errCode != gl.NO_ERROR {
		buf.Release()
		return nil, fmt.Errorf("opengl buffer %s: could not allocate %d bytes (error 0x%x)", name, size, errCode)
	}
	return buf, nil
}

// Buffers are owned by the GL context; nothing to release here.
func (p *Provider) Close() {}
