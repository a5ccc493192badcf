// Copyright 2021 The AsFem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package nls

// Status reports how a nonlinear solve ended
type Status int

const (
	// Converged means one of the convergence criteria was satisfied:
	// absolute residual, relative residual, or step size
	Converged Status = iota

	// Diverged means the residual grew between iterations, or the line
	// search could not find a decreasing step
	Diverged

	// MaxItReached means the iteration budget was exhausted without
	// convergence. Not fatal: the external time-stepping driver decides
	// whether to cut back and retry.
	MaxItReached

	// LinFailure means the linear-algebra backend reported a singular or
	// ill-conditioned system
	LinFailure
)

// String returns a human readable status name
func (o Status) String() string {
	switch o {
	case Converged:
		return "converged"
	case Diverged:
		return "diverged"
	case MaxItReached:
		return "max-iterations-reached"
	case LinFailure:
		return "linear-solve-failure"
	}
	return "unknown"
}

// Results holds the outcome of one nonlinear solve, including the residual
// norm history for diagnostics on non-convergence
type Results struct {
	Status Status    // how the solve ended
	It     int       // number of iterations performed
	Resids []float64 // residual norm at each iteration, starting with the initial one
}
