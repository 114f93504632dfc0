package gpu

import (
	"fmt"
	"sync"
)

// A Provider backed by host memory. It is used for headless runs and as a
// readback target in tests.
type HostProvider struct {
	mu      sync.Mutex
	closed  bool
	buffers map[string]*HostBuffer
}

// Create a new host memory provider.
func NewHostProvider() *HostProvider {
	return &HostProvider{
		buffers: make(map[string]*HostBuffer),
	}
}

func (p *HostProvider) Name() string {
	return "host"
}

func (p *HostProvider) NewBuffer(name string, size int) (Buffer, error) {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.closed {
		return nil, ErrProviderClosed
	}
	if size <= 0 {
		return nil, fmt.Errorf("host buffer %s: %w (got %d)", name, ErrInvalidSize, size)
	}

	buf := &HostBuffer{
		name: name,
		data: make([]byte, size),
	}
	p.buffers[name] = buf
	return buf, nil
}

// Lookup a previously allocated buffer by name.
func (p *HostProvider) Buffer(name string) (*HostBuffer, bool) {
	p.mu.Lock()
	defer p.mu.Unlock()

	buf, ok := p.buffers[name]
	return buf, ok
}

func (p *HostProvider) Close() {
	p.mu.Lock()
	defer p.mu.Unlock()

	p.closed = true
	p.buffers = make(map[string]*HostBuffer)
}

// A Buffer living in host memory.
type HostBuffer struct {
	name string
	data []byte

	// Number of WriteData calls; lets callers verify skipped uploads.
	writes int
}

func (b *HostBuffer) Size() int {
	return len(b.data)
}

func (b *HostBuffer) WriteData(data []byte, offset int) error {
	if b.data == nil {
		return fmt.Errorf("host buffer %s: %w", b.name, ErrBufferReleased)
	}
	if offset < 0 || offset+len(data) > len(b.data) {
		return fmt.Errorf("host buffer %s: %w (offset %d, len %d, size %d)", b.name, ErrOutOfBounds, offset, len(data), len(b.data))
	}

	copy(b.data[offset:], data)
	b.writes++
	return nil
}

// Get the buffer contents. The returned slice aliases the buffer storage.
func (b *HostBuffer) Bytes() []byte {
	return b.data
}

// Get the number of successful writes.
func (b *HostBuffer) Writes() int {
	return b.writes
}

func (b *HostBuffer) Release() {
	b.data = nil
}
