package opencl

import (
	"fmt"
	"strings"
	"unsafe"

	"github.com/achilleasa/gopencl/v1.2/cl"
)

type DeviceType uint8

// Supported device types.
const (
	CpuDevice DeviceType = 1 << iota
	GpuDevice
	OtherDevice
	AllDevices DeviceType = 0xFF
)

func (dt DeviceType) String() string {
	switch dt {
	case CpuDevice:
		return "CPU"
	case GpuDevice:
		return "GPU"
	case OtherDevice:
		return "Other"
	}
	return fmt.Sprintf("DeviceType(%d)", uint8(dt))
}

// Parse a device type name (cpu, gpu, all).
func ParseDeviceType(name string) (DeviceType, error) {
	switch strings.ToLower(name) {
	case "cpu":
		return CpuDevice, nil
	case "gpu":
		return GpuDevice, nil
	case "", "all", "any":
		return AllDevices, nil
	}
	return 0, fmt.Errorf("opencl: unknown device type %q", name)
}

// An opencl device that particle buffers can be allocated on.
type Device struct {
	Name string
	Id   cl.DeviceId
	Type DeviceType

	compUnits  uint32
	clockSpeed uint32

	// Speed estimate in GFlops.
	Speed uint32

	// Allocated by Init.
	ctx      *cl.Context
	cmdQueue cl.CommandQueue
}

func (d *Device) String() string {
	return fmt.Sprintf("%s (%s, %d compute units @ %d Mhz)", d.Name, d.Type, d.compUnits, d.clockSpeed)
}

// Create the device context and command queue. Calling Init on an
// initialized device is a no-op.
func (d *Device) Init() error {
	var errCode cl.ErrorCode

	if d.ctx != nil {
		return nil
	}

	d.ctx = cl.CreateContext(nil, 1, &d.Id, nil, nil, (*int32)(&errCode))
	if errCode != cl.SUCCESS {
		d.ctx = nil
		return fmt.Errorf("opencl device (%s): %w (error: %s; code %d)", d.Name, ErrContextCreationFailed, ErrorName(errCode), errCode)
	}

	d.cmdQueue = cl.CreateCommandQueue(*d.ctx, d.Id, 0, (*int32)(&errCode))
	if errCode != cl.SUCCESS {
		defer d.Close()
		return fmt.Errorf("opencl device (%s): %w (error: %s; code %d)", d.Name, ErrCmdQueueCreationFailed, ErrorName(errCode), errCode)
	}

	return nil
}

// Wait for all enqueued commands to complete.
func (d *Device) Finish() error {
	if errCode := cl.Finish(d.cmdQueue); errCode != cl.SUCCESS {
		return fmt.Errorf("opencl device (%s): could not flush command queue (error: %s; code %d)", d.Name, ErrorName(errCode), errCode)
	}
	return nil
}

// Shut down the device.
func (d *Device) Close() {
	if d.cmdQueue != nil {
		cl.ReleaseCommandQueue(d.cmdQueue)
		d.cmdQueue = nil
	}

	if d.ctx != nil {
		cl.ReleaseContext(d.ctx)
		d.ctx = nil
	}
}

// Create an unallocated buffer.
func (d *Device) Buffer(name string) *Buffer {
	return &Buffer{
		device: d,
		name:   name,
	}
}

// Estimate device speed as compute units * 2ops/cycle * clock speed.
func (d *Device) detectSpeed() error {
	errCode := cl.GetDeviceInfo(d.Id, cl.DEVICE_MAX_COMPUTE_UNITS, 4, unsafe.Pointer(&d.compUnits), nil)
	if errCode != cl.SUCCESS {
		return fmt.Errorf("opencl device (%s): could not query MAX_COMPUTE_UNITS (error: %s; code %d)", d.Name, ErrorName(errCode), errCode)
	}
	errCode = cl.GetDeviceInfo(d.Id, cl.DEVICE_MAX_CLOCK_FREQUENCY, 4, unsafe.Pointer(&d.clockSpeed), nil)
	if errCode != cl.SUCCESS {
		return fmt.Errorf("opencl device (%s): could not query MAX_CLOCK_FREQUENCY (error: %s; code %d)", d.Name, ErrorName(errCode), errCode)
	}
	d.Speed = d.compUnits * d.clockSpeed / 1000

	return nil
}
