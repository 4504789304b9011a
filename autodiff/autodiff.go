// Copyright 2025 The Ember Authors. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

// Package autodiff decorates a base backend with gradient tracking.
//
// Wrap any backend to train, unwrap with Inner to deploy:
//
//	ad := autodiff.New(cpu.New())
//	model := nn.NewLinear[*autodiff.Backend[*cpu.Backend]](cfg, ad)
//	// ... training ...
//	inference := nn.InnerLinear(model)
package autodiff

import (
	"github.com/ember-ml/ember/internal/autodiff"
	"github.com/ember-ml/ember/tensor"
)

// Backend wraps a base backend B and records gradients for the tensors it
// creates.
type Backend[B tensor.Backend] = autodiff.Backend[B]

// Gradients maps parameter tensors to their accumulated gradients.
type Gradients = autodiff.Gradients

// New wraps base with gradient tracking.
func New[B tensor.Backend](base B) *Backend[B] {
	return autodiff.New[B](base)
}
