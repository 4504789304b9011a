package nn

import (
	"fmt"

	"github.com/ember-ml/ember/internal/autodiff"
	"github.com/ember-ml/ember/internal/module"
	"github.com/ember-ml/ember/internal/tensor"
)

// Embedding is a lookup table mapping integer indices to dense vectors.
// The table is a single [numEmbeddings, dim] parameter.
type Embedding[B tensor.Backend] struct {
	Weight *module.Param[B]

	config EmbeddingConfig
	def    *module.Def[B]
}

// EmbeddingConfig holds construction options for Embedding.
type EmbeddingConfig struct {
	NumEmbeddings int // Vocabulary size
	Dim           int // Embedding dimension
}

// NewEmbedding creates an Embedding with N(0, 1)-initialized table.
func NewEmbedding[B tensor.Backend](config EmbeddingConfig, backend B) *Embedding[B] {
	weight := module.NewParam(Randn(tensor.Shape{config.NumEmbeddings, config.Dim}, backend))
	return newEmbedding(config, weight)
}

func newEmbedding[B tensor.Backend](config EmbeddingConfig, weight *module.Param[B]) *Embedding[B] {
	e := &Embedding[B]{Weight: weight, config: config}
	e.def = module.Define("Embedding",
		module.Field[B]{Name: "weight", Module: e.Weight},
	)
	return e
}

// Lookup gathers the rows for indices into a [len(indices), dim] tensor.
func (e *Embedding[B]) Lookup(indices []int) *tensor.Tensor[float32, B] {
	dim := e.config.Dim
	table := e.Weight.Value().Data()

	out := make([]float32, len(indices)*dim)
	for i, idx := range indices {
		if idx < 0 || idx >= e.config.NumEmbeddings {
			panic(fmt.Sprintf("Embedding.Lookup: index %d out of range [0, %d)", idx, e.config.NumEmbeddings))
		}
		copy(out[i*dim:(i+1)*dim], table[idx*dim:(idx+1)*dim])
	}

	t, err := tensor.FromSlice(out, tensor.Shape{len(indices), dim}, e.Weight.Value().Backend())
	if err != nil {
		panic(fmt.Sprintf("Embedding.Lookup: %v", err))
	}
	return t
}

// Name returns the layer's diagnostic name.
func (e *Embedding[B]) Name() string { return e.def.Name() }

// NumParams returns the table's element count.
func (e *Embedding[B]) NumParams() int { return e.def.NumParams() }

// UpdateParams applies the optimizer to the table.
func (e *Embedding[B]) UpdateParams(grads autodiff.Gradients, optim module.Optimizer[B]) {
	e.def.UpdateParams(grads, optim)
}

// Devices returns the table's device.
func (e *Embedding[B]) Devices() []tensor.Device { return e.def.Devices() }

// ToDevice moves the table to device.
func (e *Embedding[B]) ToDevice(device tensor.Device) { e.def.ToDevice(device) }

// State returns the layer's parameter tree.
func (e *Embedding[B]) State() *module.State { return e.def.State() }

// Load restores the table from state.
func (e *Embedding[B]) Load(state *module.State) { e.def.Load(state) }

// InnerEmbedding returns the layer's inference-mode counterpart.
func InnerEmbedding[B tensor.Backend](e *Embedding[*autodiff.Backend[B]]) *Embedding[B] {
	return newEmbedding(e.config, module.InnerParam(e.Weight))
}
