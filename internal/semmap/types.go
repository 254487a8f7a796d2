package semmap

import (
	"errors"
	"fmt"
)

// Point is a 3D point. For camera-frame observations Y is the vertical axis
// and -Z is the forward depth.
type Point struct {
	X, Y, Z float64
}

// Pose is a planar position plus heading (radians). It is used both for
// relative (egocentric step) and absolute (world frame) poses.
type Pose struct {
	X, Z, Yaw float64
}

// Device names the memory space that a tensor or point set lives in.
type Device string

// DeviceCPU is the default host device.
const DeviceCPU Device = "cpu"

// ExecContext is threaded explicitly through every operation. All inputs
// participating in one call must live on ctx.Device.
type ExecContext struct {
	Device Device
}

// CPU returns an execution context bound to the host device.
func CPU() ExecContext {
	return ExecContext{Device: DeviceCPU}
}

// Sentinel errors shared by every layer.
var (
	ErrDeviceMismatch  = errors.New("device mismatch")
	ErrLengthMismatch  = errors.New("parallel array length mismatch")
	ErrShapeMismatch   = errors.New("shape mismatch")
	ErrInvalidDim      = errors.New("invalid grid dimension")
	ErrInvalidCellSize = errors.New("cell size must be positive")
)

// Check verifies that every given device equals the context device. An
// empty device is treated as the context device.
func (c ExecContext) Check(devices ...Device) error {
	want := c.device()
	for _, d := range devices {
		if d == "" {
			d = DeviceCPU
		}
		if d != want {
			return fmt.Errorf("%w: context on %q, input on %q", ErrDeviceMismatch, want, d)
		}
	}
	return nil
}

// Resolve returns the context device, defaulting to the host.
func (c ExecContext) Resolve() Device {
	return c.device()
}

func (c ExecContext) device() Device {
	if c.Device == "" {
		return DeviceCPU
	}
	return c.Device
}
