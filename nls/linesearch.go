// Copyright 2021 The AsFem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package nls

import (
	"math"

	"github.com/cpmech/gosl/la"
)

// line search bounds
const (
	lsMinLambda  = 0.05 // smallest accepted step length
	lsMaxLambda  = 2.0  // largest accepted step length
	lsMaxReduces = 8    // backtracking budget
	lsArmijoC    = 1e-4 // sufficient-decrease constant
)

// lineSearch returns the step length λ for the direction d at iterate y,
// according to the configured strategy. rnrm is the residual norm at y.
func (o *Solver) lineSearch(y, d []float64, rnrm float64) float64 {
	switch o.ls {
	case LsBackTrack:
		return o.lsBackTrack(y, d, rnrm)
	case LsCritPoint:
		return o.lsCritPoint(y, d)
	case LsL2:
		return o.lsL2(y, d, rnrm)
	}
	return 1.0 // basic: full step
}

// merit evaluates φ(λ) = ½‖r(y+λd)‖² using the trial workspaces
func (o *Solver) merit(λ float64, y, d []float64) float64 {
	for i := 0; i < o.n; i++ {
		o.yt[i] = y[i] + λ*d[i]
	}
	if err := o.prob.Resid(o.rt, o.yt); err != nil {
		return math.Inf(1)
	}
	nrm := o.rt.Norm()
	return 0.5 * nrm * nrm
}

// meritSlope evaluates φ'(λ) = r(y+λd)·d
func (o *Solver) meritSlope(λ float64, y, d []float64) float64 {
	for i := 0; i < o.n; i++ {
		o.yt[i] = y[i] + λ*d[i]
	}
	if err := o.prob.Resid(o.rt, o.yt); err != nil {
		return math.Inf(1)
	}
	return la.VecDot(o.rt, d)
}

// lsBackTrack backtracks from the full step until the Armijo condition
// holds. For an exact Newton direction the initial slope of the merit
// function is -2φ(0); that value is used for the sufficient-decrease test.
// If no decreasing step is found within the budget, the best sampled step is
// returned and the divergence control of the outer loop takes over.
func (o *Solver) lsBackTrack(y, d []float64, rnrm float64) float64 {
	f0 := 0.5 * rnrm * rnrm
	slope := -2.0 * f0
	λ, λbest := 1.0, 1.0
	fbest := math.Inf(1)
	for k := 0; k < lsMaxReduces; k++ {
		f := o.merit(λ, y, d)
		if f <= f0+lsArmijoC*λ*slope {
			return λ
		}
		if f < fbest {
			fbest, λbest = f, λ
		}
		if o.cfg.LsOrder >= 2 {
			// quadratic interpolation of φ through φ(0), φ'(0), φ(λ)
			den := 2.0 * (f - f0 - slope*λ)
			λnew := -slope * λ * λ / den
			λ = math.Min(math.Max(λnew, 0.1*λ), 0.5*λ)
		} else {
			λ *= 0.5
		}
		if λ < lsMinLambda {
			break
		}
	}
	return λbest
}

// lsCritPoint performs one secant step toward the critical point of the
// merit function along d, i.e. the root of φ'(λ) = r(y+λd)·d
func (o *Solver) lsCritPoint(y, d []float64) float64 {
	g0 := o.meritSlope(0, y, d)
	g1 := o.meritSlope(1, y, d)
	den := g1 - g0
	if den == 0 || math.IsNaN(den) || math.IsInf(den, 0) {
		return 1.0
	}
	λ := -g0 / den
	if math.IsNaN(λ) || λ < lsMinLambda || λ > lsMaxLambda {
		return 1.0
	}
	return λ
}

// lsL2 minimises the quadratic fit of φ through λ = 0, ½ and 1
func (o *Solver) lsL2(y, d []float64, rnrm float64) float64 {
	f0 := 0.5 * rnrm * rnrm
	fh := o.merit(0.5, y, d)
	f1 := o.merit(1.0, y, d)
	// φ(λ) ≈ aλ² + bλ + c with c = f0
	a := 2.0*f1 + 2.0*f0 - 4.0*fh
	b := f1 - f0 - a
	if a <= 0 || math.IsNaN(a) || math.IsInf(a, 0) {
		if fh < f1 {
			return 0.5
		}
		return 1.0
	}
	λ := -b / (2.0 * a)
	if math.IsNaN(λ) || λ < lsMinLambda {
		return lsMinLambda
	}
	if λ > lsMaxLambda {
		return lsMaxLambda
	}
	return λ
}
