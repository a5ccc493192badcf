// Copyright 2021 The AsFem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// package nls implements the nonlinear solver orchestrator: a Newton-family
// iteration paired with a line-search strategy, driving the residual/Jacobian
// produced by the (external) assembly loop toward equilibrium.
package nls

import (
	"github.com/cpmech/gosl/chk"
)

// nonlinear solver kinds
const (
	NewtonRaphson = "newtonraphson" // classical Newton-Raphson
	NewtonLs      = "newtonls"      // Newton with line search emphasised
	NewtonTr      = "newtontr"      // trust-region Newton
	QnLbfgs       = "lbfgs"         // quasi-Newton L-BFGS
	QnBroyden     = "broyden"       // quasi-Newton Broyden
	QnBadBroyden  = "badbroyden"    // quasi-Newton "bad" Broyden
	NewtonCg      = "ncg"           // Newton with inner conjugate-gradient solve
	NewtonGmres   = "ngmres"        // Newton with inner GMRES solve
)

// line search kinds
const (
	LsDefault   = "default" // each solver kind has its own default
	LsBasic     = "basic"   // full step
	LsBackTrack = "bt"      // backtracking with Armijo condition
	LsCritPoint = "cp"      // secant search on the directional derivative
	LsL2        = "l2"      // quadratic minimisation of the residual norm
)

// defaultLs maps each solver kind to the line search used when the
// configuration asks for "default"
var defaultLs = map[string]string{
	NewtonRaphson: LsBasic,
	NewtonLs:      LsBackTrack,
	NewtonTr:      LsBasic, // ignored: trust region has its own acceptance rule
	QnLbfgs:       LsCritPoint,
	QnBroyden:     LsBasic,
	QnBadBroyden:  LsL2,
	NewtonCg:      LsCritPoint,
	NewtonGmres:   LsL2,
}

// Config holds the nonlinear solver configuration. It is fixed for a
// simulation phase: the solver handle created from it is reused across all
// solve steps.
type Config struct {

	// solver and line search selection
	Type       string `json:"type"`       // solver kind; e.g. "newtonraphson"
	LineSearch string `json:"linesearch"` // line search kind; "default" resolves per solver kind
	LsOrder    int    `json:"lsorder"`    // interpolation order for backtracking; 1, 2 or 3

	// convergence control
	Atol    float64 `json:"atol"`    // absolute residual tolerance
	Rtol    float64 `json:"rtol"`    // relative residual tolerance
	Stol    float64 `json:"stol"`    // step-size tolerance; 0 disables the check
	NmaxIt  int     `json:"nmaxit"`  // maximum number of iterations
	DvgCtrl bool    `json:"dvgctrl"` // stop early on growing residual
	ShowR   bool    `json:"showr"`   // print residual history during iterations

	// inner (linear) solve control
	LinAtol   float64 `json:"linatol"`   // absolute tolerance of iterative inner solves
	LinRtol   float64 `json:"linrtol"`   // relative tolerance of iterative inner solves
	LinNmaxIt int     `json:"linnmaxit"` // inner iteration budget; 0 = unbounded
}

// SetDefaults sets default values
func (o *Config) SetDefaults() {
	o.Type = NewtonRaphson
	o.LineSearch = LsDefault
	o.LsOrder = 2
	o.Atol = 1e-8
	o.Rtol = 1e-10
	o.Stol = 0
	o.NmaxIt = 25
	o.LinAtol = 1e-10
	o.LinRtol = 1e-10
	o.LinNmaxIt = 0
}

// Validate checks solver and line-search names and numeric fields. Malformed
// configuration never reaches a partially initialised solver.
func (o *Config) Validate() (err error) {
	if _, ok := defaultLs[o.Type]; !ok {
		return chk.Err("nonlinear solver type %q is unavailable", o.Type)
	}
	switch o.LineSearch {
	case LsDefault, LsBasic, LsBackTrack, LsCritPoint, LsL2:
	default:
		return chk.Err("line search type %q is unavailable", o.LineSearch)
	}
	if o.LsOrder < 1 || o.LsOrder > 3 {
		return chk.Err("line search order must be 1, 2 or 3; %d given", o.LsOrder)
	}
	if o.NmaxIt < 1 {
		return chk.Err("maximum number of iterations must be positive; %d given", o.NmaxIt)
	}
	if o.Atol < 0 || o.Rtol < 0 || o.Stol < 0 {
		return chk.Err("tolerances must be non-negative: atol=%g rtol=%g stol=%g", o.Atol, o.Rtol, o.Stol)
	}
	return
}

// resolveLs returns the concrete line search for this configuration,
// applying the per-solver default mapping
func (o *Config) resolveLs() string {
	if o.LineSearch == LsDefault {
		return defaultLs[o.Type]
	}
	return o.LineSearch
}
