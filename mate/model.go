// Copyright 2021 The AsFem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package mate

import (
	"github.com/cpmech/gosl/chk"
	"github.com/cpmech/gosl/fun/dbf"

	"github.com/walkandthinker/asfem/ele"
)

// Model defines the capability set of material constitutive laws
type Model interface {

	// Init initialises this law with parameters read from configuration.
	// Missing or unexpected parameters are configuration errors and must be
	// reported here, before any solve begins.
	Init(ndim int, prms dbf.Params) error

	// InitMaterialProperties seeds the "old" (committed) state at the first
	// evaluation of a simulation
	InitMaterialProperties(info *ele.Info, soln *ele.Solution, mate *Materials)

	// ComputeMaterialProperties computes the current properties from the
	// local solution values and the committed old state. The old state is
	// read-only during a step.
	ComputeMaterialProperties(info *ele.Info, soln *ele.Solution, old, mate *Materials) error
}

// New returns a new material law of the given kind
func New(name string) (model Model, err error) {
	allocator, ok := allocators[name]
	if !ok {
		return nil, chk.Err("material law %q is not available in 'mate' database", name)
	}
	return allocator(), nil
}

// allocators holds all available material laws
var allocators = map[string]func() Model{}
