// Copyright 2025 The Ember Authors. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

package module

import (
	"github.com/ember-ml/ember/internal/autodiff"
	"github.com/ember-ml/ember/internal/module"
	"github.com/ember-ml/ember/internal/serialization"
	"github.com/ember-ml/ember/tensor"
)

// Module is the contract every trainable structure satisfies: parameter
// counting, gradient updates, device enumeration and placement, and state
// serialize/load.
type Module[B tensor.Backend] = module.Module[B]

// ADModule is a Module bound to an autodiff backend that can produce its
// inference-only counterpart on the wrapped base backend.
type ADModule[B tensor.Backend, Inner Module[B]] = module.ADModule[B, Inner]

// Optimizer is the update-rule capability the runtime delegates to during
// UpdateParams.
type Optimizer[B tensor.Backend] = module.Optimizer[B]

// State is the persisted form of a parameter tree: a data leaf or a named
// node of child trees.
type State = module.State

// DataState creates a leaf node holding d.
func DataState(d tensor.Data) *State {
	return module.DataState(d)
}

// NamedState creates an empty named node.
func NamedState() *State {
	return module.NamedState()
}

// Param is the leaf container shape owning one parameter tensor.
type Param[B tensor.Backend] = module.Param[B]

// OptionalParam is the optional-leaf container shape.
type OptionalParam[B tensor.Backend] = module.OptionalParam[B]

// Nested is the container shape holding one sub-module.
type Nested[B tensor.Backend, M Module[B]] = module.Nested[B, M]

// List is the container shape holding an ordered sequence of sub-modules.
type List[B tensor.Backend, M Module[B]] = module.List[B, M]

// NewParam creates a leaf container owning t.
func NewParam[B tensor.Backend](t *tensor.Tensor[float32, B]) *Param[B] {
	return module.NewParam[B](t)
}

// NewOptionalParam creates an optional leaf container; nil means absent.
func NewOptionalParam[B tensor.Backend](t *tensor.Tensor[float32, B]) *OptionalParam[B] {
	return module.NewOptionalParam[B](t)
}

// NewNested creates a container forwarding to m.
func NewNested[B tensor.Backend, M Module[B]](m M) *Nested[B, M] {
	return module.NewNested[B, M](m)
}

// NewList creates a container owning the given sequence.
func NewList[B tensor.Backend, M Module[B]](values ...M) *List[B, M] {
	return module.NewList[B, M](values...)
}

// Field is one entry of a structure's ordered field list.
type Field[B tensor.Backend] = module.Field[B]

// Def is a derived Module implementation synthesized from a field list.
type Def[B tensor.Backend] = module.Def[B]

// Define registers a structure's ordered field list and returns its derived
// Module implementation.
func Define[B tensor.Backend](name string, fields ...Field[B]) *Def[B] {
	return module.Define[B](name, fields...)
}

// Derive builds a Def by scanning the exported fields of a struct.
func Derive[B tensor.Backend](name string, v any) (*Def[B], error) {
	return module.Derive[B](name, v)
}

// InnerParam converts a leaf container to its inference-mode counterpart.
func InnerParam[B tensor.Backend](p *Param[*autodiff.Backend[B]]) *Param[B] {
	return module.InnerParam[B](p)
}

// InnerOptionalParam converts an optional leaf container to its
// inference-mode counterpart.
func InnerOptionalParam[B tensor.Backend](p *OptionalParam[*autodiff.Backend[B]]) *OptionalParam[B] {
	return module.InnerOptionalParam[B](p)
}

// InnerNested converts a nested container with the held type's conversion.
func InnerNested[B tensor.Backend, M Module[*autodiff.Backend[B]], I Module[B]](
	n *Nested[*autodiff.Backend[B], M],
	conv func(M) I,
) *Nested[B, I] {
	return module.InnerNested[B, M, I](n, conv)
}

// InnerList converts a sequence container element-wise.
func InnerList[B tensor.Backend, M Module[*autodiff.Backend[B]], I Module[B]](
	l *List[*autodiff.Backend[B], M],
	conv func(M) I,
) *List[B, I] {
	return module.InnerList[B, M, I](l, conv)
}

// Header is the metadata header of a .ember checkpoint file.
type Header = serialization.Header

// Save writes a module's state tree to a .ember file.
//
// Example:
//
//	model := nn.NewLinear(nn.LinearConfig{In: 784, Out: 10}, backend)
//	err := module.Save(model, "model.ember", "Linear", nil)
func Save[B tensor.Backend](m Module[B], path, modelName string, metadata map[string]string) error {
	return serialization.Write(path, m.State(), modelName, metadata)
}

// Load reads a .ember file and restores its state tree into m, following
// the runtime's lenient load semantics.
func Load[B tensor.Backend](path string, m Module[B]) (Header, error) {
	state, header, err := serialization.Read(path)
	if err != nil {
		return Header{}, err
	}
	m.Load(state)
	return header, nil
}
