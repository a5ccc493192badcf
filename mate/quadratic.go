// Copyright 2021 The AsFem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package mate

import (
	"github.com/cpmech/gosl/chk"
	"github.com/cpmech/gosl/fun/dbf"

	"github.com/walkandthinker/asfem/ele"
)

// Quadratic implements a single-well quadratic free energy law:
//
//   F(c) = 0.5 * kc * (c-cref)²
//
// It gives a linear chemical potential and a constant tangent; useful both as
// a material in its own right and as a linear reference when testing the
// nonlinear solver.
type Quadratic struct {
	kc, cref float64
}

// add law to factory
func init() {
	allocators["quadratic"] = func() Model { return new(Quadratic) }
}

// Init initialises this law
func (o *Quadratic) Init(ndim int, prms dbf.Params) (err error) {
	names := []string{"kc", "cref"}
	if len(prms) != len(names) {
		return chk.Err("quadratic law requires exactly %d parameters %v; %d given", len(names), names, len(prms))
	}
	for _, name := range names {
		if prms.Find(name) == nil {
			return chk.Err("quadratic law requires parameter %q in database of material parameters", name)
		}
	}
	prms.Connect(&o.kc, "kc", "kc quadratic law")
	prms.Connect(&o.cref, "cref", "cref quadratic law")
	return
}

// F computes the free energy at concentration c
func (o *Quadratic) F(c float64) float64 {
	d := c - o.cref
	return 0.5 * o.kc * d * d
}

// DFdc computes dF/dc
func (o *Quadratic) DFdc(c float64) float64 {
	return o.kc * (c - o.cref)
}

// D2Fdc2 computes d²F/dc²
func (o *Quadratic) D2Fdc2(c float64) float64 {
	return o.kc
}

// InitMaterialProperties seeds the "old" state with zero history
func (o *Quadratic) InitMaterialProperties(info *ele.Info, soln *ele.Solution, mate *Materials) {
	mate.Scalars["F"] = 0
	mate.Scalars["dFdc"] = 0
	mate.Scalars["d2Fdc2"] = 0
}

// ComputeMaterialProperties computes energy and derivatives at the current
// local concentration
func (o *Quadratic) ComputeMaterialProperties(info *ele.Info, soln *ele.Solution, old, mate *Materials) (err error) {
	if len(soln.U) < 1 {
		return chk.Err("quadratic law needs at least one local dof; element %d has none", info.Id)
	}
	c := soln.U[0]
	mate.Scalars["F"] = o.F(c)
	mate.Scalars["dFdc"] = o.DFdc(c)
	mate.Scalars["d2Fdc2"] = o.D2Fdc2(c)
	return
}
