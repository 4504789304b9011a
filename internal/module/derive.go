package module

import (
	"fmt"

	"github.com/ember-ml/ember/internal/autodiff"
	"github.com/ember-ml/ember/internal/tensor"
)

// Field is one entry of a structure's ordered field list: the declared name
// (which becomes the state key) and the Module-conforming value behind it.
// The value is typically a pointer to one of the container shapes or to
// another derived structure, so that mutating operations reach the owning
// structure's storage.
type Field[B tensor.Backend] struct {
	Name   string
	Module Module[B]
}

// Def is a derived Module implementation: given a structure's field list it
// synthesizes the five aggregate operations plus the diagnostic name. A
// structure builds its Def once at construction and delegates to it.
//
// Field types conform to Module by construction: a non-conforming field is
// a compile error at the registration site, never a runtime failure.
type Def[B tensor.Backend] struct {
	name   string
	fields []Field[B]
}

// Verify that derived aggregates satisfy the Module contract.
var _ Module[*tensor.MockBackend] = (*Def[*tensor.MockBackend])(nil)

// Define registers a structure's ordered field list and returns its derived
// Module implementation. Registration invariants (a non-empty structure
// name, non-empty unique field names, non-nil field modules) are checked
// here, at the earliest point the language offers, and violations panic.
func Define[B tensor.Backend](name string, fields ...Field[B]) *Def[B] {
	if name == "" {
		panic("module: Define requires a structure name")
	}
	seen := make(map[string]struct{}, len(fields))
	for _, f := range fields {
		if f.Name == "" {
			panic(fmt.Sprintf("module: %s has a field with an empty name", name))
		}
		if _, dup := seen[f.Name]; dup {
			panic(fmt.Sprintf("module: %s declares field %q twice", name, f.Name))
		}
		seen[f.Name] = struct{}{}
		if f.Module == nil {
			panic(fmt.Sprintf("module: %s field %q has no module", name, f.Name))
		}
	}
	return &Def[B]{name: name, fields: fields}
}

// Name returns the structure's declared name.
func (d *Def[B]) Name() string {
	return d.name
}

// Fields returns the registered field list in declaration order.
func (d *Def[B]) Fields() []Field[B] {
	return append([]Field[B](nil), d.fields...)
}

// NumParams sums each field's parameter count.
func (d *Def[B]) NumParams() int {
	total := 0
	for _, f := range d.fields {
		total += f.Module.NumParams()
	}
	return total
}

// UpdateParams calls each field sequentially, in declaration order.
func (d *Def[B]) UpdateParams(grads autodiff.Gradients, optim Optimizer[B]) {
	for _, f := range d.fields {
		f.Module.UpdateParams(grads, optim)
	}
}

// Devices concatenates each field's device list, in declaration order.
func (d *Def[B]) Devices() []tensor.Device {
	var devices []tensor.Device
	for _, f := range d.fields {
		devices = append(devices, f.Module.Devices()...)
	}
	return devices
}

// ToDevice calls each field sequentially.
func (d *Def[B]) ToDevice(device tensor.Device) {
	for _, f := range d.fields {
		f.Module.ToDevice(device)
	}
}

// State returns a named node with one entry per field, keyed by the field's
// declared name.
func (d *Def[B]) State() *State {
	state := NamedState()
	for _, f := range d.fields {
		state.Register(f.Name, f.Module.State())
	}
	return state
}

// Load looks up each field's name and recurses. A missing key, or a data
// leaf where a named node is expected, leaves the affected fields unchanged.
func (d *Def[B]) Load(state *State) {
	if state == nil || state.IsData() {
		return
	}
	for _, f := range d.fields {
		if child, ok := state.Get(f.Name); ok {
			f.Module.Load(child)
		}
	}
}
