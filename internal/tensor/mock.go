package tensor

import (
	"fmt"
	"math"
)

// Verify that MockBackend implements Backend.
var _ Backend = (*MockBackend)(nil)

// MockBackend is a test backend simulating an accelerator with several
// devices. Storage is ordinary host memory regardless of the device a tensor
// claims to live on, which makes device-transfer semantics observable without
// real hardware. Arithmetic is implemented naively for float32 only.
type MockBackend struct {
	devices []Device
}

// NewMockBackend creates a mock backend managing numDevices fake CUDA
// devices. The default device is cuda:0.
func NewMockBackend(numDevices int) *MockBackend {
	if numDevices < 1 {
		panic("mock: need at least one device")
	}
	devices := make([]Device, numDevices)
	for i := range devices {
		devices[i] = Device{Kind: CUDA, Index: i}
	}
	return &MockBackend{devices: devices}
}

// Name returns the backend name.
func (m *MockBackend) Name() string {
	return "mock"
}

// Device returns the default device.
func (m *MockBackend) Device() Device {
	return m.devices[0]
}

// Devices returns every device this backend manages.
func (m *MockBackend) Devices() []Device {
	return append([]Device(nil), m.devices...)
}

func (m *MockBackend) manages(device Device) bool {
	for _, d := range m.devices {
		if d == device {
			return true
		}
	}
	return false
}

// Transfer returns a copy of t whose storage claims residence on device.
func (m *MockBackend) Transfer(t *RawTensor, device Device) *RawTensor {
	if !m.manages(device) {
		panic(fmt.Sprintf("mock: device %s not managed", device))
	}
	out := t.Clone()
	out.device = device
	return out
}

// FromData materializes a tensor from its serialized form on device.
func (m *MockBackend) FromData(d Data, device Device) *RawTensor {
	if !m.manages(device) {
		panic(fmt.Sprintf("mock: device %s not managed", device))
	}
	raw, err := NewRaw(d.Shape, d.DType, device)
	if err != nil {
		panic(fmt.Sprintf("mock: %v", err))
	}
	copy(raw.data, d.Bytes)
	return raw
}

// ToData returns the serialized form of t with an independent byte copy.
func (m *MockBackend) ToData(t *RawTensor) Data {
	b := make([]byte, len(t.data))
	copy(b, t.data)
	return Data{DType: t.dtype, Shape: t.shape.Clone(), Bytes: b}
}

// Add performs element-wise addition with broadcasting.
func (m *MockBackend) Add(a, b *RawTensor) *RawTensor {
	return m.elementWise(a, b, func(x, y float32) float32 { return x + y })
}

// Sub performs element-wise subtraction with broadcasting.
func (m *MockBackend) Sub(a, b *RawTensor) *RawTensor {
	return m.elementWise(a, b, func(x, y float32) float32 { return x - y })
}

// Mul performs element-wise multiplication with broadcasting.
func (m *MockBackend) Mul(a, b *RawTensor) *RawTensor {
	return m.elementWise(a, b, func(x, y float32) float32 { return x * y })
}

// Div performs element-wise division with broadcasting.
func (m *MockBackend) Div(a, b *RawTensor) *RawTensor {
	return m.elementWise(a, b, func(x, y float32) float32 { return x / y })
}

// AddScalar adds a scalar to every element.
func (m *MockBackend) AddScalar(x *RawTensor, scalar float64) *RawTensor {
	return m.unary(x, func(v float32) float32 { return v + float32(scalar) })
}

// MulScalar multiplies every element by a scalar.
func (m *MockBackend) MulScalar(x *RawTensor, scalar float64) *RawTensor {
	return m.unary(x, func(v float32) float32 { return v * float32(scalar) })
}

// Sqrt computes the element-wise square root.
func (m *MockBackend) Sqrt(x *RawTensor) *RawTensor {
	return m.unary(x, func(v float32) float32 { return float32(math.Sqrt(float64(v))) })
}

// Relu computes the element-wise rectified linear unit.
func (m *MockBackend) Relu(x *RawTensor) *RawTensor {
	return m.unary(x, func(v float32) float32 { return max(v, 0) })
}

// MatMul performs 2D matrix multiplication.
func (m *MockBackend) MatMul(a, b *RawTensor) *RawTensor {
	aShape, bShape := a.Shape(), b.Shape()
	if len(aShape) != 2 || len(bShape) != 2 || aShape[1] != bShape[0] {
		panic(fmt.Sprintf("mock: incompatible shapes for MatMul: %v @ %v", aShape, bShape))
	}

	rows, inner, cols := aShape[0], aShape[1], bShape[1]
	out, err := NewRaw(Shape{rows, cols}, Float32, a.Device())
	if err != nil {
		panic(fmt.Sprintf("mock: %v", err))
	}

	aData, bData, outData := a.AsFloat32(), b.AsFloat32(), out.AsFloat32()
	for i := 0; i < rows; i++ {
		for j := 0; j < cols; j++ {
			var sum float32
			for k := 0; k < inner; k++ {
				sum += aData[i*inner+k] * bData[k*cols+j]
			}
			outData[i*cols+j] = sum
		}
	}
	return out
}

func (m *MockBackend) unary(x *RawTensor, op func(float32) float32) *RawTensor {
	out := x.Clone()
	data := out.AsFloat32()
	for i, v := range data {
		data[i] = op(v)
	}
	return out
}

func (m *MockBackend) elementWise(a, b *RawTensor, op func(float32, float32) float32) *RawTensor {
	outShape, _, err := BroadcastShapes(a.Shape(), b.Shape())
	if err != nil {
		panic(fmt.Sprintf("mock: %v", err))
	}

	out, err := NewRaw(outShape, Float32, a.Device())
	if err != nil {
		panic(fmt.Sprintf("mock: %v", err))
	}

	aData, bData, outData := a.AsFloat32(), b.AsFloat32(), out.AsFloat32()
	for i := range outData {
		outData[i] = op(aData[broadcastIndex(i, outShape, a.Shape())], bData[broadcastIndex(i, outShape, b.Shape())])
	}
	return out
}

// broadcastIndex maps a flat index in the broadcast output shape back to a
// flat index in the (possibly smaller) input shape.
func broadcastIndex(flatIdx int, outShape, inShape Shape) int {
	outStrides := outShape.ComputeStrides()
	indices := make([]int, len(outShape))

	temp := flatIdx
	for i := range outShape {
		indices[i] = temp / outStrides[i]
		temp %= outStrides[i]
	}

	inStrides := inShape.ComputeStrides()
	inIdx := 0
	offset := len(outShape) - len(inShape)
	for i := range inShape {
		idx := indices[offset+i]
		if inShape[i] == 1 {
			idx = 0
		}
		inIdx += idx * inStrides[i]
	}
	return inIdx
}
