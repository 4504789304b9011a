// Copyright 2025 The Ember Authors. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

// Package cpu provides the pure-Go CPU backend.
package cpu

import (
	"github.com/ember-ml/ember/internal/backend/cpu"
)

// Backend computes on the host CPU with a single device.
type Backend = cpu.Backend

// New creates a CPU backend.
func New() *Backend {
	return cpu.New()
}
