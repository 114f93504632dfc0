// Package opencl allocates particle buffers on opencl devices.
package opencl

import (
	"fmt"

	"github.com/achilleasa/emberfx/gpu"
	"github.com/achilleasa/gopencl/v1.2/cl"
)

// A gpu.Provider backed by a single opencl device.
type Provider struct {
	device *Device
}

// Select the first device matching typeMask and matchName, initialize it and
// wrap it in a Provider.
func NewProvider(typeMask DeviceType, matchName string) (*Provider, error) {
	devices, err := SelectDevices(typeMask, matchName)
	if err != nil {
		return nil, err
	}
	if len(devices) == 0 {
		return nil, fmt.Errorf("%w (type %s, name %q)", ErrNoDevices, typeMask, matchName)
	}

	dev := devices[0]
	if err = dev.Init(); err != nil {
		return nil, err
	}

	return &Provider{device: dev}, nil
}

func (p *Provider) Name() string {
	return "opencl:" + p.device.Name
}

// Get the device backing this provider.
func (p *Provider) Device() *Device {
	return p.device
}

// Allocate a read-only (from the kernel's point of view) device buffer.
func (p *Provider) NewBuffer(name string, size int) (gpu.Buffer, error) {
	buf := p.device.Buffer(name)
	if err := buf.Allocate(size, cl.MEM_READ_ONLY); err != nil {
		return nil, err
	}
	return buf, nil
}

func (p *Provider) Close() {
	p.device.Close()
}
