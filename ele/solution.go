// Copyright 2021 The AsFem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package ele

// Solution holds the element-local solution values for the current and the
// previous (converged) solve step, indexed by local dof order. It is owned by
// the assembly loop; material and boundary-condition evaluators must treat it
// as read-only.
type Solution struct {
	U    []float64 // [ndof] current values
	Uold []float64 // [ndof] values at the previous converged step
}

// NewSolution returns a new solution holder with ndof local dofs
func NewSolution(ndof int) (o *Solution) {
	o = new(Solution)
	o.U = make([]float64, ndof)
	o.Uold = make([]float64, ndof)
	return
}
