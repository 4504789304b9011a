// Copyright 2025 The Ember Authors. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

package tensor

import "github.com/ember-ml/ember/internal/tensor"

// Backend is the capability contract every leaf tensor is bound to: device
// identity and transfer, serialization to and from the backend-agnostic Data
// representation, and a small arithmetic surface.
//
// Implementations:
//   - backend/cpu: pure Go on the host CPU
//
// Decorator backends:
//   - autodiff: marks a backend as gradient-capable (wraps any backend)
type Backend = tensor.Backend
