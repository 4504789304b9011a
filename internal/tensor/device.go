package tensor

import "fmt"

// DeviceKind identifies a class of compute device.
type DeviceKind int

// Supported device kinds.
const (
	CPU DeviceKind = iota
	CUDA
	Vulkan
	Metal
	WebGPU
)

// String returns a human-readable device-kind name.
func (k DeviceKind) String() string {
	switch k {
	case CPU:
		return "cpu"
	case CUDA:
		return "cuda"
	case Vulkan:
		return "vulkan"
	case Metal:
		return "metal"
	case WebGPU:
		return "webgpu"
	default:
		return "unknown"
	}
}

// Device identifies where a tensor's storage lives. Kind selects the device
// class, Index distinguishes multiple devices of the same class.
//
// Device is a comparable value type: two Device values are the same device
// exactly when both fields are equal.
type Device struct {
	Kind  DeviceKind
	Index int
}

// String returns a human-readable device name such as "cpu:0" or "cuda:1".
func (d Device) String() string {
	return fmt.Sprintf("%s:%d", d.Kind, d.Index)
}
