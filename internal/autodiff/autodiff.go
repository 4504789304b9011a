// Package autodiff carries the differentiation capability of the Ember
// runtime: the gradient bag optimizers consume, and the decorator backend
// that marks a base backend as gradient-capable.
//
// Gradient computation itself is the business of an external engine; this
// package defines how its results flow into parameter updates and how a
// gradient-capable module is stripped back down to its inference-only form.
package autodiff

import "github.com/ember-ml/ember/internal/tensor"

// Gradients is an opaque bag of gradients keyed by tensor identity.
// The parameter runtime passes it through untouched; optimizers index it
// by the raw tensor they are updating.
type Gradients map[*tensor.RawTensor]*tensor.RawTensor

// Get returns the gradient recorded for t, or nil if t did not participate
// in the backward pass.
func (g Gradients) Get(t *tensor.RawTensor) *tensor.RawTensor {
	return g[t]
}

// Backend decorates a base backend with the differentiation capability.
// Modules instantiated over *Backend[B] are trainable; their inference-only
// counterparts live on the wrapped base backend B and are produced by the
// module package's Inner conversions.
//
// All tensor operations delegate to the wrapped backend. Gradient bags are
// accumulated from whatever engine drives the backward pass.
type Backend[B tensor.Backend] struct {
	inner B
	grads Gradients
}

// Verify that the decorator satisfies the backend contract.
var _ tensor.Backend = (*Backend[*tensor.MockBackend])(nil)

// New creates an autodiff backend wrapping the given base backend.
func New[B tensor.Backend](inner B) *Backend[B] {
	return &Backend[B]{
		inner: inner,
		grads: make(Gradients),
	}
}

// Inner returns the wrapped base backend.
func (b *Backend[B]) Inner() B {
	return b.inner
}

// AccumulateGrad records (or sums into) the gradient for t.
func (b *Backend[B]) AccumulateGrad(t, grad *tensor.RawTensor) {
	if existing, ok := b.grads[t]; ok {
		b.grads[t] = b.inner.Add(existing, grad)
		return
	}
	b.grads[t] = grad
}

// Gradients returns the currently accumulated gradient bag.
func (b *Backend[B]) Gradients() Gradients {
	return b.grads
}

// ZeroGrad discards all accumulated gradients.
func (b *Backend[B]) ZeroGrad() {
	b.grads = make(Gradients)
}

// Name returns the backend name.
func (b *Backend[B]) Name() string {
	return "autodiff(" + b.inner.Name() + ")"
}

// Device returns the wrapped backend's default device.
func (b *Backend[B]) Device() tensor.Device {
	return b.inner.Device()
}

// Devices returns the devices the wrapped backend manages.
func (b *Backend[B]) Devices() []tensor.Device {
	return b.inner.Devices()
}

// Transfer delegates to the wrapped backend.
func (b *Backend[B]) Transfer(t *tensor.RawTensor, device tensor.Device) *tensor.RawTensor {
	return b.inner.Transfer(t, device)
}

// FromData delegates to the wrapped backend.
func (b *Backend[B]) FromData(d tensor.Data, device tensor.Device) *tensor.RawTensor {
	return b.inner.FromData(d, device)
}

// ToData delegates to the wrapped backend.
func (b *Backend[B]) ToData(t *tensor.RawTensor) tensor.Data {
	return b.inner.ToData(t)
}

// Add delegates to the wrapped backend.
func (b *Backend[B]) Add(x, y *tensor.RawTensor) *tensor.RawTensor {
	return b.inner.Add(x, y)
}

// Sub delegates to the wrapped backend.
func (b *Backend[B]) Sub(x, y *tensor.RawTensor) *tensor.RawTensor {
	return b.inner.Sub(x, y)
}

// Mul delegates to the wrapped backend.
func (b *Backend[B]) Mul(x, y *tensor.RawTensor) *tensor.RawTensor {
	return b.inner.Mul(x, y)
}

// Div delegates to the wrapped backend.
func (b *Backend[B]) Div(x, y *tensor.RawTensor) *tensor.RawTensor {
	return b.inner.Div(x, y)
}

// AddScalar delegates to the wrapped backend.
func (b *Backend[B]) AddScalar(x *tensor.RawTensor, scalar float64) *tensor.RawTensor {
	return b.inner.AddScalar(x, scalar)
}

// MulScalar delegates to the wrapped backend.
func (b *Backend[B]) MulScalar(x *tensor.RawTensor, scalar float64) *tensor.RawTensor {
	return b.inner.MulScalar(x, scalar)
}

// Sqrt delegates to the wrapped backend.
func (b *Backend[B]) Sqrt(x *tensor.RawTensor) *tensor.RawTensor {
	return b.inner.Sqrt(x)
}

// Relu delegates to the wrapped backend.
func (b *Backend[B]) Relu(x *tensor.RawTensor) *tensor.RawTensor {
	return b.inner.Relu(x)
}

// MatMul delegates to the wrapped backend.
func (b *Backend[B]) MatMul(x, y *tensor.RawTensor) *tensor.RawTensor {
	return b.inner.MatMul(x, y)
}
