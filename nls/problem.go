// Copyright 2021 The AsFem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package nls

import (
	"github.com/cpmech/gosl/chk"
	"gonum.org/v1/gonum/mat"
)

// Problem defines the callbacks through which the (external) assembly loop
// provides the discrete system: the residual r(y) and its Jacobian K = dr/dy.
// Both are called once per iteration; the solver never caches across calls.
type Problem interface {
	Resid(r, y []float64) error             // computes r := r(y)
	Jacob(K [][]float64, y []float64) error // computes K := dr/dy (y)
}

// LinSolver defines the external linear-algebra backend answering
// "solve K*x = b for x" requests. A failure (singular or ill-conditioned
// system) is returned as an error and surfaced by the orchestrator as a
// distinct solver failure; it is never silently retried.
type LinSolver interface {
	Solve(x []float64, K [][]float64, b []float64) error
}

// DenseLU is the default linear solver: a dense direct LU factorisation
type DenseLU struct{}

// Solve solves K*x = b with a dense LU factorisation
func (o *DenseLU) Solve(x []float64, K [][]float64, b []float64) (err error) {
	n := len(b)
	A := mat.NewDense(n, n, nil)
	for i := 0; i < n; i++ {
		for j := 0; j < n; j++ {
			A.Set(i, j, K[i][j])
		}
	}
	var xv mat.VecDense
	if err = xv.SolveVec(A, mat.NewVecDense(n, b)); err != nil {
		return chk.Err("dense LU solve failed: %v", err)
	}
	for i := 0; i < n; i++ {
		x[i] = xv.AtVec(i)
	}
	return
}
