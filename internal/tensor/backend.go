package tensor

// Backend is the capability contract every leaf tensor is bound to.
//
// A backend owns a set of devices and knows how to move tensor storage
// between them and to and from the backend-agnostic Data representation.
// On top of that it carries the small arithmetic surface the in-repo
// collaborators (optimizers, example layers) need.
//
// Backends are free to panic on conditions they consider unrecoverable,
// such as a transfer to a device they do not manage; the parameter runtime
// never catches or translates those failures.
type Backend interface {
	// Name returns the backend name (e.g., "cpu", "mock").
	Name() string

	// Device returns the backend's default device.
	Device() Device

	// Devices returns every device this backend manages.
	Devices() []Device

	// Transfer returns a copy of t whose storage lives on device.
	// The input tensor is not modified.
	Transfer(t *RawTensor, device Device) *RawTensor

	// FromData materializes a tensor from its serialized form on device.
	FromData(d Data, device Device) *RawTensor

	// ToData returns the serialized form of t. The returned Data owns an
	// independent copy of the tensor's bytes.
	ToData(t *RawTensor) Data

	// Element-wise binary operations with NumPy-style broadcasting.
	Add(a, b *RawTensor) *RawTensor
	Sub(a, b *RawTensor) *RawTensor
	Mul(a, b *RawTensor) *RawTensor
	Div(a, b *RawTensor) *RawTensor

	// Scalar operations.
	AddScalar(x *RawTensor, scalar float64) *RawTensor
	MulScalar(x *RawTensor, scalar float64) *RawTensor

	// Element-wise math.
	Sqrt(x *RawTensor) *RawTensor
	Relu(x *RawTensor) *RawTensor

	// MatMul performs 2D matrix multiplication.
	MatMul(a, b *RawTensor) *RawTensor
}
