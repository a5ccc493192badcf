// Copyright 2021 The AsFem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package bcs

import (
	"github.com/cpmech/gosl/chk"

	"github.com/walkandthinker/asfem/ele"
)

// Cyclic implements a Dirichlet boundary condition whose prescribed value is
// driven by an ordered (time,value) table: the value at the element's current
// simulation time is linearly interpolated between the bracketing samples.
// Query times before the first or after the last sample clamp to the nearest
// boundary sample; there is no extrapolation beyond the table.
type Cyclic struct {
	Penalty float64 // penalty coefficient; DefaultPenalty if not set

	tspan []float64 // sample times; strictly increasing
	yspan []float64 // sample values; one per time
}

// NewCyclic returns a new cyclic condition from a (time,value) table. The
// times must be strictly increasing with one value per time; this is
// validated here, at construction, and not re-checked per call.
func NewCyclic(times, values []float64, penalty float64) (o *Cyclic, err error) {
	if len(times) == 0 {
		return nil, chk.Err("cyclic boundary condition needs at least one (time,value) sample")
	}
	if len(times) != len(values) {
		return nil, chk.Err("cyclic boundary condition needs one value per time: %d times, %d values", len(times), len(values))
	}
	for i := 1; i < len(times); i++ {
		if times[i] <= times[i-1] {
			return nil, chk.Err("cyclic boundary condition times must be strictly increasing: t[%d]=%g, t[%d]=%g", i-1, times[i-1], i, times[i])
		}
	}
	o = &Cyclic{Penalty: penalty}
	o.tspan = make([]float64, len(times))
	o.yspan = make([]float64, len(values))
	copy(o.tspan, times)
	copy(o.yspan, values)
	return
}

// computeU interpolates the prescribed value at time t from the table; the
// table overrides bcvalue entirely
func (o *Cyclic) computeU(bcvalue float64, info *ele.Info, coords []float64) float64 {
	t := info.T
	n := len(o.tspan)
	if n == 1 {
		return o.yspan[0]
	}
	if t <= o.tspan[0] {
		return o.yspan[0]
	}
	if t >= o.tspan[n-1] {
		return o.yspan[n-1]
	}
	for i := 1; i < n; i++ {
		if t <= o.tspan[i] {
			λ := (t - o.tspan[i-1]) / (o.tspan[i] - o.tspan[i-1])
			return o.yspan[i-1] + λ*(o.yspan[i]-o.yspan[i-1])
		}
	}
	return o.yspan[n-1]
}

// ComputeBCValue folds the time-interpolated prescribed value into the
// global system
func (o *Cyclic) ComputeBCValue(calctype CalcType, bcvalue float64, info *ele.Info, dofids []int, coords []float64, K [][]float64, rhs, u []float64) error {
	p := o.Penalty
	if p <= 0 {
		p = DefaultPenalty
	}
	return applyPenalty(calctype, p, o.computeU(bcvalue, info, coords), dofids, K, rhs, u)
}
