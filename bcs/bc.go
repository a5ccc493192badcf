// Copyright 2021 The AsFem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// package bcs implements Dirichlet boundary conditions enforced with the
// penalty method. Each variant computes a prescribed value for a set of
// constrained dofs and folds it into the global Jacobian/residual rows passed
// in by the assembly loop.
package bcs

import (
	"github.com/cpmech/gosl/chk"

	"github.com/walkandthinker/asfem/ele"
)

// CalcType selects which part of the global system a boundary-condition call
// modifies
type CalcType int

const (
	// Residual selects modification of the residual vector
	Residual CalcType = iota

	// Jacobian selects modification of the Jacobian matrix
	Jacobian
)

// DefaultPenalty is the penalty coefficient used when configuration does not
// set one. Larger values enforce the prescribed value more tightly, with the
// constrained dof within O(1/penalty) of the target, but worsen the
// conditioning of the Jacobian; the default trades roughly ten orders of
// magnitude of enforcement accuracy against the scale of typical stiffness
// entries.
const DefaultPenalty = 1e10

// Dirichlet defines the capability set of Dirichlet boundary conditions
type Dirichlet interface {

	// ComputeBCValue computes the prescribed value for the constrained dofs
	// and folds it into the global system with the penalty method:
	//
	//   calctype == Residual:  rhs[dof] = penalty * (u[dof] - prescribed)
	//   calctype == Jacobian:  row/column of dof zeroed, diagonal = penalty
	//
	// K, rhs and u are mutable views of the global system owned by the
	// assembly/solve driver; they are modified in place. Dof ids start from
	// 1, following the node/dof numbering convention of the assembly code.
	// Callers must serialize calls touching the same rows; this function
	// never spawns concurrent work itself.
	ComputeBCValue(calctype CalcType, bcvalue float64, info *ele.Info, dofids []int, coords []float64, K [][]float64, rhs, u []float64) error
}

// New returns a new Dirichlet boundary condition of the given kind.
//  "const"  -- constant prescribed value; times/values are ignored
//  "cyclic" -- value linearly interpolated from a (time,value) table
func New(kind string, times, values []float64, penalty float64) (bc Dirichlet, err error) {
	if penalty <= 0 {
		penalty = DefaultPenalty
	}
	switch kind {
	case "const":
		return &Constant{Penalty: penalty}, nil
	case "cyclic":
		return NewCyclic(times, values, penalty)
	}
	return nil, chk.Err("boundary condition %q is not available in 'bcs' database", kind)
}

// applyPenalty folds a prescribed value into the global system rows of the
// given (1-based) dofs. A dof id outside [1,len(u)] is a configuration error.
func applyPenalty(calctype CalcType, penalty, prescribed float64, dofids []int, K [][]float64, rhs, u []float64) (err error) {
	for _, id := range dofids {
		if id < 1 || id > len(u) {
			return chk.Err("constrained dof id %d is out of range [1,%d]", id, len(u))
		}
		r := id - 1
		switch calctype {
		case Residual:
			rhs[r] = penalty * (u[r] - prescribed)
		case Jacobian:
			for j := range K[r] {
				K[r][j] = 0
			}
			for i := range K {
				K[i][r] = 0
			}
			K[r][r] = penalty
		}
	}
	return
}
