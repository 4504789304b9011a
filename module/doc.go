// Copyright 2025 The Ember Authors. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

// Package module provides the parameter-tree runtime: container shapes for
// parameters, the Module contract they all satisfy, structure derivation,
// and checkpoint save/load.
//
// A model is a tree of containers. Leaves own tensors (Param,
// OptionalParam), inner nodes own modules (Nested, List), and Define or
// Derive stitches a struct's fields into one Module.
//
//	type mlp[B tensor.Backend] struct {
//		Hidden *nn.Linear[B]
//		Out    *nn.Linear[B]
//	}
//
//	def, err := module.Derive[B]("MLP", &mlp[B]{Hidden: h, Out: o})
//	fmt.Println(def.NumParams())
package module
