// Package module implements the parameter-tree runtime of the Ember
// framework: a uniform way to treat heterogeneous, arbitrarily nested
// structures (single tensors, optional tensors, sub-modules, ordered
// collections of sub-modules) as one Module abstraction supporting
// parameter counting, gradient updates, device placement, state
// serialization and inference-mode conversion.
//
// The four container shapes are explicit types rather than one generic
// walker:
//
//   - Param: a leaf tensor, the recursion's base case.
//   - OptionalParam: a leaf tensor that may be absent (e.g. a disabled bias).
//   - Nested: one held sub-module, pure forwarding.
//   - List: an ordered homogeneous sequence of sub-modules.
//
// User structures obtain aggregate Module behavior through the derivation
// subsystem: Define registers an ordered field list at construction time and
// the resulting Def synthesizes all five operations plus a diagnostic name.
// Derive does the same by reflecting over a struct's exported fields.
//
//	type Linear[B tensor.Backend] struct {
//	    Weight *module.Param[B]
//	    Bias   *module.OptionalParam[B]
//	    def    *module.Def[B]
//	}
//
//	func NewLinear[B tensor.Backend](...) *Linear[B] {
//	    l := &Linear[B]{...}
//	    l.def = module.Define("Linear",
//	        module.Field[B]{Name: "weight", Module: l.Weight},
//	        module.Field[B]{Name: "bias", Module: l.Bias},
//	    )
//	    return l
//	}
//
// The runtime is purely sequential. Each container exclusively owns its held
// value; callers must not invoke UpdateParams, ToDevice or Load on the same
// container from multiple goroutines without external exclusion.
package module
