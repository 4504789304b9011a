// Package cpu implements the pure-Go CPU backend.
package cpu

import (
	"fmt"
	"math"

	"github.com/ember-ml/ember/internal/parallel"
	"github.com/ember-ml/ember/internal/tensor"
)

// Backend implements tensor operations on the host CPU. It manages a single
// device, cpu:0. Arithmetic supports float32; other dtypes round-trip
// through FromData/ToData but panic in compute operations.
type Backend struct {
	device   tensor.Device
	parallel parallel.Config
}

// Verify that the CPU backend satisfies the backend contract.
var _ tensor.Backend = (*Backend)(nil)

// New creates a new CPU backend.
func New() *Backend {
	return &Backend{
		device:   tensor.Device{Kind: tensor.CPU, Index: 0},
		parallel: parallel.DefaultConfig(),
	}
}

// Name returns the backend name.
func (b *Backend) Name() string {
	return "cpu"
}

// Device returns the backend's only device, cpu:0.
func (b *Backend) Device() tensor.Device {
	return b.device
}

// Devices returns the single managed device.
func (b *Backend) Devices() []tensor.Device {
	return []tensor.Device{b.device}
}

// Transfer returns a copy of t. The CPU backend manages one device; a
// transfer anywhere else is unrecoverable and panics.
func (b *Backend) Transfer(t *tensor.RawTensor, device tensor.Device) *tensor.RawTensor {
	if device != b.device {
		panic(fmt.Sprintf("cpu: device %s not managed", device))
	}
	return t.Clone()
}

// FromData materializes a tensor from its serialized form.
func (b *Backend) FromData(d tensor.Data, device tensor.Device) *tensor.RawTensor {
	if device != b.device {
		panic(fmt.Sprintf("cpu: device %s not managed", device))
	}
	raw, err := tensor.NewRaw(d.Shape, d.DType, device)
	if err != nil {
		panic(fmt.Sprintf("cpu: %v", err))
	}
	copy(raw.Bytes(), d.Bytes)
	return raw
}

// ToData returns the serialized form of t with an independent byte copy.
func (b *Backend) ToData(t *tensor.RawTensor) tensor.Data {
	bytes := make([]byte, len(t.Bytes()))
	copy(bytes, t.Bytes())
	return tensor.Data{DType: t.DType(), Shape: t.Shape().Clone(), Bytes: bytes}
}

// Add performs element-wise addition with broadcasting.
func (b *Backend) Add(x, y *tensor.RawTensor) *tensor.RawTensor {
	return b.elementWise("add", x, y, func(a, c float32) float32 { return a + c })
}

// Sub performs element-wise subtraction with broadcasting.
func (b *Backend) Sub(x, y *tensor.RawTensor) *tensor.RawTensor {
	return b.elementWise("sub", x, y, func(a, c float32) float32 { return a - c })
}

// Mul performs element-wise multiplication with broadcasting.
func (b *Backend) Mul(x, y *tensor.RawTensor) *tensor.RawTensor {
	return b.elementWise("mul", x, y, func(a, c float32) float32 { return a * c })
}

// Div performs element-wise division with broadcasting.
func (b *Backend) Div(x, y *tensor.RawTensor) *tensor.RawTensor {
	return b.elementWise("div", x, y, func(a, c float32) float32 { return a / c })
}

// AddScalar adds a scalar to every element.
func (b *Backend) AddScalar(x *tensor.RawTensor, scalar float64) *tensor.RawTensor {
	return b.unary(x, func(v float32) float32 { return v + float32(scalar) })
}

// MulScalar multiplies every element by a scalar.
func (b *Backend) MulScalar(x *tensor.RawTensor, scalar float64) *tensor.RawTensor {
	return b.unary(x, func(v float32) float32 { return v * float32(scalar) })
}

// Sqrt computes the element-wise square root.
func (b *Backend) Sqrt(x *tensor.RawTensor) *tensor.RawTensor {
	return b.unary(x, func(v float32) float32 { return float32(math.Sqrt(float64(v))) })
}

// Relu computes the element-wise rectified linear unit.
func (b *Backend) Relu(x *tensor.RawTensor) *tensor.RawTensor {
	return b.unary(x, func(v float32) float32 { return max(v, 0) })
}

// MatMul performs 2D matrix multiplication.
func (b *Backend) MatMul(x, y *tensor.RawTensor) *tensor.RawTensor {
	xShape, yShape := x.Shape(), y.Shape()
	if len(xShape) != 2 || len(yShape) != 2 {
		panic(fmt.Sprintf("cpu: MatMul expects 2D tensors, got %v @ %v", xShape, yShape))
	}
	if xShape[1] != yShape[0] {
		panic(fmt.Sprintf("cpu: incompatible shapes for MatMul: %v @ %v", xShape, yShape))
	}

	rows, inner, cols := xShape[0], xShape[1], yShape[1]
	out := b.newFloat32(tensor.Shape{rows, cols})

	// Rows are independent, so the outer loop splits across workers.
	xData, yData, outData := x.AsFloat32(), y.AsFloat32(), out.AsFloat32()
	parallel.For(rows, func(i int) {
		for k := 0; k < inner; k++ {
			xv := xData[i*inner+k]
			if xv == 0 {
				continue
			}
			for j := 0; j < cols; j++ {
				outData[i*cols+j] += xv * yData[k*cols+j]
			}
		}
	}, b.parallel)
	return out
}

func (b *Backend) newFloat32(shape tensor.Shape) *tensor.RawTensor {
	out, err := tensor.NewRaw(shape, tensor.Float32, b.device)
	if err != nil {
		panic(fmt.Sprintf("cpu: %v", err))
	}
	return out
}

func (b *Backend) unary(x *tensor.RawTensor, op func(float32) float32) *tensor.RawTensor {
	out := x.Clone()
	data := out.AsFloat32()
	for i, v := range data {
		data[i] = op(v)
	}
	return out
}

func (b *Backend) elementWise(name string, x, y *tensor.RawTensor, op func(float32, float32) float32) *tensor.RawTensor {
	outShape, needsBroadcast, err := tensor.BroadcastShapes(x.Shape(), y.Shape())
	if err != nil {
		panic(fmt.Sprintf("cpu: %s: %v", name, err))
	}

	out := b.newFloat32(outShape)
	xData, yData, outData := x.AsFloat32(), y.AsFloat32(), out.AsFloat32()

	if !needsBroadcast {
		for i := range outData {
			outData[i] = op(xData[i], yData[i])
		}
		return out
	}

	xStrides := broadcastStrides(outShape, x.Shape())
	yStrides := broadcastStrides(outShape, y.Shape())
	outStrides := outShape.ComputeStrides()
	for i := range outData {
		xIdx, yIdx := 0, 0
		temp := i
		for dim := range outShape {
			idx := temp / outStrides[dim]
			temp %= outStrides[dim]
			xIdx += idx * xStrides[dim]
			yIdx += idx * yStrides[dim]
		}
		outData[i] = op(xData[xIdx], yData[yIdx])
	}
	return out
}

// broadcastStrides computes per-output-dimension strides into an input
// shape, with zero stride on broadcast dimensions.
func broadcastStrides(outShape, inShape tensor.Shape) []int {
	strides := make([]int, len(outShape))
	inStrides := inShape.ComputeStrides()
	offset := len(outShape) - len(inShape)
	for i := range inShape {
		if inShape[i] != 1 {
			strides[offset+i] = inStrides[i]
		}
	}
	return strides
}
