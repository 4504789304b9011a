// Copyright 2025 The Ember Authors. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

// Package optim provides gradient-descent optimizers that plug into
// module.UpdateParams.
//
//	opt := optim.NewSGD[B](optim.SGDConfig{LR: 0.1})
//	model.UpdateParams(ad.Gradients(), opt)
package optim

import (
	"github.com/ember-ml/ember/internal/optim"
	"github.com/ember-ml/ember/tensor"
)

// SGD implements stochastic gradient descent with optional momentum.
type SGD[B tensor.Backend] = optim.SGD[B]

// SGDConfig configures SGD. Zero values take defaults.
type SGDConfig = optim.SGDConfig

// NewSGD creates an SGD optimizer.
func NewSGD[B tensor.Backend](config SGDConfig) *SGD[B] {
	return optim.NewSGD[B](config)
}

// Adam implements the Adam update rule.
type Adam[B tensor.Backend] = optim.Adam[B]

// AdamConfig configures Adam. Zero values take defaults.
type AdamConfig = optim.AdamConfig

// NewAdam creates an Adam optimizer.
func NewAdam[B tensor.Backend](config AdamConfig) *Adam[B] {
	return optim.NewAdam[B](config)
}
