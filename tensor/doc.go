// Copyright 2025 The Ember Authors. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

// Package tensor provides the tensor values the Ember parameter runtime is
// built on: shapes, devices, the raw byte-level representation, the typed
// generic wrapper, and the Backend capability contract.
//
// Example:
//
//	backend := cpu.New()
//	w := tensor.Randn[float32](tensor.Shape{784, 128}, backend)
//	b := tensor.Zeros[float32](tensor.Shape{128}, backend)
//
// Tensors are bound to a backend through a type parameter, so code written
// against one backend cannot accidentally mix tensors from another.
package tensor
