package tensor

import "bytes"

// Data is the backend-agnostic serialized form of a tensor: element type,
// shape and the raw little-endian element bytes. It carries no device or
// backend identity, which makes it the leaf payload of a persisted parameter
// tree: any backend can materialize a tensor from it on any of its devices.
type Data struct {
	DType DataType
	Shape Shape
	Bytes []byte
}

// NumElements returns the number of elements described by the data's shape.
func (d Data) NumElements() int {
	return d.Shape.NumElements()
}

// Clone returns a deep copy of the data.
func (d Data) Clone() Data {
	b := make([]byte, len(d.Bytes))
	copy(b, d.Bytes)
	return Data{
		DType: d.DType,
		Shape: d.Shape.Clone(),
		Bytes: b,
	}
}

// Equal reports whether two data values have the same dtype, shape and
// bit-identical contents.
func (d Data) Equal(other Data) bool {
	return d.DType == other.DType &&
		d.Shape.Equal(other.Shape) &&
		bytes.Equal(d.Bytes, other.Bytes)
}
