// Copyright 2021 The AsFem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package nls

import (
	"github.com/cpmech/gosl/chk"
	"github.com/cpmech/gosl/io"
	"github.com/cpmech/gosl/la"
	"github.com/cpmech/gosl/utl"
)

// Solver drives a Newton-family iteration over a Problem. It starts
// unconfigured; Init transitions it to ready and the same handle is then
// reused across all solve steps of a simulation phase.
type Solver struct {

	// configuration
	cfg  *Config
	prob Problem
	lin  LinSolver
	n    int
	ls   string // resolved concrete line search

	// workspaces
	r    la.Vector   // residual at current iterate
	rt   la.Vector   // residual at trial points
	dy   la.Vector   // search direction / step
	yt   la.Vector   // trial iterate
	zero la.Vector   // reference for RMS step-size norms
	K    [][]float64 // Jacobian

	ready bool
}

// Init initialises the solver for systems of dimension n. The linear solver
// may be nil, in which case a dense direct LU factorisation is used. Init
// validates the configuration; on error the solver stays unconfigured.
func (o *Solver) Init(n int, cfg *Config, prob Problem, lin LinSolver) (err error) {
	if err = cfg.Validate(); err != nil {
		return
	}
	if n < 1 {
		return chk.Err("system dimension must be positive; %d given", n)
	}
	o.cfg = cfg
	o.prob = prob
	o.lin = lin
	if o.lin == nil {
		o.lin = new(DenseLU)
	}
	o.n = n
	o.ls = cfg.resolveLs()
	o.r = la.NewVector(n)
	o.rt = la.NewVector(n)
	o.dy = la.NewVector(n)
	o.yt = la.NewVector(n)
	o.zero = la.NewVector(n)
	o.K = utl.Alloc(n, n)
	o.ready = true
	return
}

// Solve runs the configured nonlinear iteration, updating y in place.
// Non-convergence (max iterations, divergence) is reported through
// res.Status with the residual history attached, and is not an error;
// linear-solve failures return both res.Status == LinFailure and the
// backend error.
func (o *Solver) Solve(y []float64) (res *Results, err error) {
	if !o.ready {
		return nil, chk.Err("solver is not initialised: call Init first")
	}
	if len(y) != o.n {
		return nil, chk.Err("solution vector has wrong dimension: %d given, %d expected", len(y), o.n)
	}
	switch o.cfg.Type {
	case NewtonTr:
		return o.solveTrustRegion(y)
	case QnLbfgs, QnBroyden, QnBadBroyden:
		return o.solveQuasiNewton(y)
	case NewtonCg:
		return o.solveNewton(y, o.cgDirection)
	case NewtonGmres:
		return o.solveNewton(y, o.gmresDirection)
	}
	return o.solveNewton(y, o.newtonDirection)
}

// solveNewton runs the line-search Newton iteration; direction computes the
// search direction dy from the assembled Jacobian and current residual
func (o *Solver) solveNewton(y []float64, direction func(dy, y, r []float64) error) (res *Results, err error) {

	res = new(Results)
	var nrm, nrm0, prev float64

	if o.cfg.ShowR {
		io.Pf("%4s%23s%23s\n", "it", "‖r‖", "λ")
	}

	for it := 0; it < o.cfg.NmaxIt; it++ {

		// residual at current iterate
		res.It = it
		if err = o.prob.Resid(o.r, y); err != nil {
			return
		}
		nrm = o.r.Norm()
		res.Resids = append(res.Resids, nrm)

		// convergence on residual norm
		if it == 0 {
			nrm0 = nrm
		}
		if nrm < o.cfg.Atol || (it > 0 && nrm < o.cfg.Rtol*nrm0) {
			res.Status = Converged
			return
		}

		// divergence control
		if o.cfg.DvgCtrl && it > 1 && nrm > prev {
			res.Status = Diverged
			return
		}
		prev = nrm

		// search direction
		if err = direction(o.dy, y, o.r); err != nil {
			res.Status = LinFailure
			return
		}

		// step length and update
		λ := o.lineSearch(y, o.dy, nrm)
		if o.cfg.ShowR {
			io.Pf("%4d%23.15e%23.15e\n", it, nrm, λ)
		}
		for i := 0; i < o.n; i++ {
			o.yt[i] = λ * o.dy[i]
			y[i] += o.yt[i]
		}

		// convergence on step size
		if o.cfg.Stol > 0 {
			if la.VecRmsError(o.yt, o.zero, o.cfg.Atol, o.cfg.Rtol, y) < o.cfg.Stol {
				res.It = it + 1
				res.Status = Converged
				return
			}
		}
	}

	res.It = o.cfg.NmaxIt
	res.Status = MaxItReached
	return
}

// newtonDirection assembles the Jacobian and solves K*dy = -r exactly
func (o *Solver) newtonDirection(dy, y, r []float64) (err error) {
	if err = o.prob.Jacob(o.K, y); err != nil {
		return
	}
	for i := 0; i < o.n; i++ {
		o.rt[i] = -r[i]
	}
	return o.lin.Solve(dy, o.K, o.rt)
}

// cgDirection assembles the Jacobian and solves K*dy = -r with the inner
// conjugate-gradient method; K must be symmetric
func (o *Solver) cgDirection(dy, y, r []float64) (err error) {
	if err = o.prob.Jacob(o.K, y); err != nil {
		return
	}
	for i := 0; i < o.n; i++ {
		o.rt[i] = -r[i]
	}
	return cgSolve(dy, o.K, o.rt, o.cfg.LinAtol, o.cfg.LinRtol, o.cfg.LinNmaxIt)
}

// gmresDirection assembles the Jacobian and solves K*dy = -r with the inner
// GMRES method
func (o *Solver) gmresDirection(dy, y, r []float64) (err error) {
	if err = o.prob.Jacob(o.K, y); err != nil {
		return
	}
	for i := 0; i < o.n; i++ {
		o.rt[i] = -r[i]
	}
	return gmresSolve(dy, o.K, o.rt, o.cfg.LinAtol, o.cfg.LinRtol, o.cfg.LinNmaxIt)
}
