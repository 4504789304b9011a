// Package nn provides neural network layers built on the Ember parameter
// runtime.
//
// Every layer registers its parameter fields with the module derivation
// subsystem at construction time, which gives it the full Module behavior:
// parameter counting, gradient updates, device placement and state
// serialization all walk the registered field tree.
//
//	backend := cpu.New()
//	model := nn.NewSequential[*cpu.Backend](
//	    nn.NewLinear(nn.LinearConfig{In: 784, Out: 128}, backend),
//	    nn.NewReLU[*cpu.Backend](),
//	    nn.NewLinear(nn.LinearConfig{In: 128, Out: 10}, backend),
//	)
//	fmt.Println(model.NumParams())
//
// Layers constructed over an autodiff backend convert to their
// inference-only counterparts with the Inner* functions.
package nn
