// Copyright 2025 The Ember Authors. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

// Package nn provides neural network layers built on the parameter-tree
// runtime: each layer is a Module whose state serializes, loads, and moves
// across devices like any other.
package nn

import (
	"github.com/ember-ml/ember/internal/autodiff"
	"github.com/ember-ml/ember/internal/nn"
	"github.com/ember-ml/ember/tensor"
)

// Layer is a Module with a forward pass.
type Layer[B tensor.Backend] = nn.Layer[B]

// Linear applies a learned affine transform y = xW + b.
type Linear[B tensor.Backend] = nn.Linear[B]

// LinearConfig configures a Linear layer.
type LinearConfig = nn.LinearConfig

// NewLinear creates a Linear layer with Xavier-initialized weights.
func NewLinear[B tensor.Backend](config LinearConfig, backend B) *Linear[B] {
	return nn.NewLinear[B](config, backend)
}

// ReLU applies the rectified linear unit element-wise.
type ReLU[B tensor.Backend] = nn.ReLU[B]

// NewReLU creates a ReLU activation.
func NewReLU[B tensor.Backend]() *ReLU[B] {
	return nn.NewReLU[B]()
}

// Embedding is a learned lookup table from integer ids to vectors.
type Embedding[B tensor.Backend] = nn.Embedding[B]

// EmbeddingConfig configures an Embedding layer.
type EmbeddingConfig = nn.EmbeddingConfig

// NewEmbedding creates an Embedding with random-normal initialized rows.
func NewEmbedding[B tensor.Backend](config EmbeddingConfig, backend B) *Embedding[B] {
	return nn.NewEmbedding[B](config, backend)
}

// FFN is a two-layer feed-forward block with a ReLU between.
type FFN[B tensor.Backend] = nn.FFN[B]

// FFNConfig configures an FFN block.
type FFNConfig = nn.FFNConfig

// NewFFN creates a feed-forward block.
func NewFFN[B tensor.Backend](config FFNConfig, backend B) *FFN[B] {
	return nn.NewFFN[B](config, backend)
}

// Sequential chains layers, feeding each one's output to the next.
type Sequential[B tensor.Backend] = nn.Sequential[B]

// NewSequential creates a Sequential from the given layers.
func NewSequential[B tensor.Backend](layers ...Layer[B]) *Sequential[B] {
	return nn.NewSequential[B](layers...)
}

// InnerLinear converts a Linear on an autodiff backend to its
// inference-mode counterpart.
func InnerLinear[B tensor.Backend](l *Linear[*autodiff.Backend[B]]) *Linear[B] {
	return nn.InnerLinear[B](l)
}

// InnerReLU converts a ReLU to its inference-mode counterpart.
func InnerReLU[B tensor.Backend](r *ReLU[*autodiff.Backend[B]]) *ReLU[B] {
	return nn.InnerReLU[B](r)
}

// InnerEmbedding converts an Embedding to its inference-mode counterpart.
func InnerEmbedding[B tensor.Backend](e *Embedding[*autodiff.Backend[B]]) *Embedding[B] {
	return nn.InnerEmbedding[B](e)
}

// InnerFFN converts an FFN to its inference-mode counterpart.
func InnerFFN[B tensor.Backend](f *FFN[*autodiff.Backend[B]]) *FFN[B] {
	return nn.InnerFFN[B](f)
}

// InnerSequential converts a Sequential element-wise using conv for each
// held layer.
func InnerSequential[B tensor.Backend](
	s *Sequential[*autodiff.Backend[B]],
	conv func(Layer[*autodiff.Backend[B]]) Layer[B],
) *Sequential[B] {
	return nn.InnerSequential[B](s, conv)
}
