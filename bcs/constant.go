// Copyright 2021 The AsFem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package bcs

import (
	"github.com/walkandthinker/asfem/ele"
)

// Constant implements a Dirichlet boundary condition with a constant
// prescribed value
type Constant struct {
	Penalty float64 // penalty coefficient; DefaultPenalty if not set
}

// computeU returns the prescribed value; constant in time
func (o *Constant) computeU(bcvalue float64, info *ele.Info, coords []float64) float64 {
	return bcvalue
}

// ComputeBCValue folds the constant prescribed value into the global system
func (o *Constant) ComputeBCValue(calctype CalcType, bcvalue float64, info *ele.Info, dofids []int, coords []float64, K [][]float64, rhs, u []float64) error {
	p := o.Penalty
	if p <= 0 {
		p = DefaultPenalty
	}
	return applyPenalty(calctype, p, o.computeU(bcvalue, info, coords), dofids, K, rhs, u)
}
