package module_test

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ember-ml/ember/autodiff"
	"github.com/ember-ml/ember/backend/cpu"
	"github.com/ember-ml/ember/module"
	"github.com/ember-ml/ember/nn"
	"github.com/ember-ml/ember/optim"
	"github.com/ember-ml/ember/tensor"
)

type adBackend = *autodiff.Backend[*cpu.Backend]

func TestSaveLoad_EndToEnd(t *testing.T) {
	backend := cpu.New()
	path := filepath.Join(t.TempDir(), "ffn.ember")

	trained := nn.NewFFN(nn.FFNConfig{In: 4, Hidden: 8, Out: 2}, backend)
	require.NoError(t, module.Save(trained, path, "FFN", map[string]string{"epoch": "10"}))

	fresh := nn.NewFFN(nn.FFNConfig{In: 4, Hidden: 8, Out: 2}, backend)
	header, err := module.Load(path, fresh)
	require.NoError(t, err)

	assert.Equal(t, "FFN", header.ModelName)
	assert.Equal(t, "10", header.Metadata["epoch"])
	assert.True(t, trained.State().Equal(fresh.State()))

	// Both models now produce identical outputs.
	input, err := tensor.FromSlice([]float32{1, 2, 3, 4}, tensor.Shape{1, 4}, backend)
	require.NoError(t, err)
	assert.Equal(t, trained.Forward(input).Data(), fresh.Forward(input).Data())
}

func TestLoad_ArchitectureMismatchLeniency(t *testing.T) {
	backend := cpu.New()
	path := filepath.Join(t.TempDir(), "linear.ember")

	donor := nn.NewLinear(nn.LinearConfig{In: 2, Out: 2}, backend)
	require.NoError(t, module.Save(donor, path, "Linear", nil))

	// An FFN shares no keys with a Linear: loading must leave it untouched.
	ffn := nn.NewFFN(nn.FFNConfig{In: 2, Hidden: 2, Out: 2}, backend)
	before := ffn.State()

	_, err := module.Load(path, ffn)
	require.NoError(t, err)
	assert.True(t, before.Equal(ffn.State()))
}

func TestTrainThenDeploy(t *testing.T) {
	ad := autodiff.New(cpu.New())
	model := nn.NewLinear(nn.LinearConfig{In: 2, Out: 1}, ad)

	// One hand-computed gradient step on the weight.
	grad, err := tensor.FromSlice([]float32{0.5, -0.5}, tensor.Shape{2, 1}, ad)
	require.NoError(t, err)
	ad.AccumulateGrad(model.Weight.Value().Raw(), grad.Raw())

	before := append([]float32(nil), model.Weight.Value().Data()...)
	sgd := optim.NewSGD[adBackend](optim.SGDConfig{LR: 0.1})
	model.UpdateParams(ad.Gradients(), sgd)

	after := model.Weight.Value().Data()
	assert.InDelta(t, before[0]-0.05, after[0], 1e-6)
	assert.InDelta(t, before[1]+0.05, after[1], 1e-6)

	// Strip the gradient capability for deployment.
	deployed := nn.InnerLinear(model)
	assert.Equal(t, model.NumParams(), deployed.NumParams())
	assert.True(t, model.State().Equal(deployed.State()))

	input, err := tensor.FromSlice([]float32{1, 1}, tensor.Shape{1, 2}, cpu.New())
	require.NoError(t, err)
	output := deployed.Forward(input)
	assert.Equal(t, tensor.Shape{1, 1}, output.Shape())
}

func TestDerive_PublicFacade(t *testing.T) {
	backend := cpu.New()

	type twoTower struct {
		Query *nn.Linear[*cpu.Backend]
		Doc   *nn.Linear[*cpu.Backend] `module:"document"`
	}
	m := &twoTower{
		Query: nn.NewLinear(nn.LinearConfig{In: 4, Out: 2}, backend),
		Doc:   nn.NewLinear(nn.LinearConfig{In: 4, Out: 2}, backend),
	}

	def, err := module.Derive[*cpu.Backend]("TwoTower", m)
	require.NoError(t, err)

	assert.Equal(t, m.Query.NumParams()+m.Doc.NumParams(), def.NumParams())
	assert.Equal(t, []string{"query", "document"}, def.State().Keys())
}
