// Copyright 2021 The AsFem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package mate

import (
	"github.com/cpmech/gosl/chk"
	"github.com/cpmech/gosl/fun/dbf"

	"github.com/walkandthinker/asfem/ele"
)

// DoubleWell implements the double-well free energy law for a two-component
// mixture:
//
//   F(c)  = factor * (c-ca)² * (c-cb)²
//
// with minima at the two well locations ca and cb. The first derivative
// (chemical potential) and the second derivative are the exact analytic
// derivatives of F; consistency between the three is an invariant of this
// law. The law is evaluated at whatever c the current iterate holds, without
// clamping, because Newton iterates may transiently leave the admissible
// range.
type DoubleWell struct {
	ca, cb, factor float64
}

// add law to factory
func init() {
	allocators["doublewell"] = func() Model { return new(DoubleWell) }
}

// Init initialises this law
func (o *DoubleWell) Init(ndim int, prms dbf.Params) (err error) {
	names := []string{"ca", "cb", "factor"}
	if len(prms) != len(names) {
		return chk.Err("doublewell law requires exactly %d parameters %v; %d given", len(names), names, len(prms))
	}
	for _, name := range names {
		if prms.Find(name) == nil {
			return chk.Err("doublewell law requires parameter %q in database of material parameters", name)
		}
	}
	prms.Connect(&o.ca, "ca", "ca doublewell law")
	prms.Connect(&o.cb, "cb", "cb doublewell law")
	prms.Connect(&o.factor, "factor", "factor doublewell law")
	return
}

// F computes the free energy at concentration c
func (o *DoubleWell) F(c float64) float64 {
	a, b := c-o.ca, c-o.cb
	return o.factor * a * a * b * b
}

// DFdc computes dF/dc, the chemical potential
func (o *DoubleWell) DFdc(c float64) float64 {
	a, b := c-o.ca, c-o.cb
	return 2.0 * o.factor * a * b * (a + b)
}

// D2Fdc2 computes d²F/dc²
func (o *DoubleWell) D2Fdc2(c float64) float64 {
	a, b := c-o.ca, c-o.cb
	return 2.0 * o.factor * (a*a + 4.0*a*b + b*b)
}

// InitMaterialProperties seeds the "old" state with zero history
func (o *DoubleWell) InitMaterialProperties(info *ele.Info, soln *ele.Solution, mate *Materials) {
	mate.Scalars["F"] = 0
	mate.Scalars["dFdc"] = 0
	mate.Scalars["d2Fdc2"] = 0
}

// ComputeMaterialProperties computes energy and derivatives at the current
// local concentration
func (o *DoubleWell) ComputeMaterialProperties(info *ele.Info, soln *ele.Solution, old, mate *Materials) (err error) {
	if len(soln.U) < 1 {
		return chk.Err("doublewell law needs at least one local dof; element %d has none", info.Id)
	}
	c := soln.U[0]
	mate.Scalars["F"] = o.F(c)
	mate.Scalars["dFdc"] = o.DFdc(c)
	mate.Scalars["d2Fdc2"] = o.D2Fdc2(c)
	return
}
