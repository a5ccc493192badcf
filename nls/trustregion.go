// Copyright 2021 The AsFem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package nls

import (
	"math"

	"github.com/cpmech/gosl/io"
	"github.com/cpmech/gosl/la"
)

// trust-region constants
const (
	trEtaAccept = 0.001 // minimum reduction ratio to accept a step
	trEtaShrink = 0.25  // below this ratio the radius shrinks
	trEtaGrow   = 0.75  // above this ratio the radius may grow
)

// solveTrustRegion runs the Newton trust-region iteration with a dogleg
// step. Any configured line search is ignored; the radius update plays the
// globalisation role instead.
func (o *Solver) solveTrustRegion(y []float64) (res *Results, err error) {

	res = new(Results)

	dn := la.NewVector(o.n) // Newton step
	dc := la.NewVector(o.n) // Cauchy step
	g := la.NewVector(o.n)  // gradient Kᵀr
	kg := la.NewVector(o.n) // K·g
	kd := la.NewVector(o.n) // K·d

	var nrm, nrm0, prev, radius float64

	if o.cfg.ShowR {
		io.Pf("%4s%23s%23s\n", "it", "‖r‖", "Δ")
	}

	if err = o.prob.Resid(o.r, y); err != nil {
		return
	}
	radius = 0.2 * math.Max(1.0, la.Vector(y).Norm())

	for it := 0; it < o.cfg.NmaxIt; it++ {

		res.It = it
		nrm = o.r.Norm()
		res.Resids = append(res.Resids, nrm)

		if it == 0 {
			nrm0 = nrm
		}
		if nrm < o.cfg.Atol || (it > 0 && nrm < o.cfg.Rtol*nrm0) {
			res.Status = Converged
			return
		}
		if o.cfg.DvgCtrl && it > 1 && nrm > prev {
			res.Status = Diverged
			return
		}
		prev = nrm

		if err = o.prob.Jacob(o.K, y); err != nil {
			return
		}

		// full Newton step
		for i := 0; i < o.n; i++ {
			o.rt[i] = -o.r[i]
		}
		if err = o.lin.Solve(dn, o.K, o.rt); err != nil {
			res.Status = LinFailure
			return
		}

		// Cauchy step: steepest descent with exact line minimisation
		// dc = -(‖g‖²/‖Kg‖²) g with g = Kᵀr
		for i := 0; i < o.n; i++ {
			g[i] = 0
			for j := 0; j < o.n; j++ {
				g[i] += o.K[j][i] * o.r[j]
			}
		}
		matVec(kg, o.K, g)
		gg := la.VecDot(g, g)
		kgkg := la.VecDot(kg, kg)
		if kgkg < 1e-30 {
			res.Status = LinFailure
			return
		}
		for i := 0; i < o.n; i++ {
			dc[i] = -gg / kgkg * g[i]
		}

		// dogleg step within the radius
		dogleg(o.dy, dn, dc, radius)

		// reduction ratio: actual vs predicted by the linear model
		for i := 0; i < o.n; i++ {
			o.yt[i] = y[i] + o.dy[i]
		}
		if err = o.prob.Resid(o.rt, o.yt); err != nil {
			return
		}
		matVec(kd, o.K, o.dy)
		ared := 0.5*nrm*nrm - 0.5*sqNorm(o.rt)
		pred := 0.5 * nrm * nrm
		for i := 0; i < o.n; i++ {
			v := o.r[i] + kd[i]
			pred -= 0.5 * v * v
		}
		ρ := -1.0
		if pred > 0 {
			ρ = ared / pred
		}

		// radius update
		dlen := o.dy.Norm()
		if ρ < trEtaShrink {
			radius = 0.25 * dlen
		} else if ρ > trEtaGrow && dlen > 0.99*radius {
			radius *= 2.0
		}
		if o.cfg.ShowR {
			io.Pf("%4d%23.15e%23.15e\n", it, nrm, radius)
		}

		// accept or reject
		if ρ > trEtaAccept {
			copy(y, o.yt)
			copy(o.r, o.rt)
			if o.cfg.Stol > 0 {
				if la.VecRmsError(o.dy, o.zero, o.cfg.Atol, o.cfg.Rtol, y) < o.cfg.Stol {
					res.It = it + 1
					res.Status = Converged
					return
				}
			}
		} else if radius < 1e-14 {
			res.Status = Diverged
			return
		}
	}

	res.It = o.cfg.NmaxIt
	res.Status = MaxItReached
	return
}

// dogleg selects the step d within the trust radius: the full Newton step if
// it fits, the scaled Cauchy step if even that leaves the region, and the
// blend along the dogleg path otherwise
func dogleg(d []float64, dn, dc la.Vector, radius float64) {
	n := len(d)
	if dn.Norm() <= radius {
		copy(d, dn)
		return
	}
	nc := dc.Norm()
	if nc >= radius {
		for i := 0; i < n; i++ {
			d[i] = radius / nc * dc[i]
		}
		return
	}
	// ‖dc + τ(dn-dc)‖ = radius with τ ∈ (0,1)
	a, b, c := 0.0, 0.0, 0.0
	for i := 0; i < n; i++ {
		w := dn[i] - dc[i]
		a += w * w
		b += 2.0 * dc[i] * w
		c += dc[i] * dc[i]
	}
	c -= radius * radius
	τ := (-b + math.Sqrt(b*b-4.0*a*c)) / (2.0 * a)
	for i := 0; i < n; i++ {
		d[i] = dc[i] + τ*(dn[i]-dc[i])
	}
}

// matVec computes w = K·v
func matVec(w []float64, K [][]float64, v []float64) {
	n := len(v)
	for i := 0; i < n; i++ {
		w[i] = 0
		for j := 0; j < n; j++ {
			w[i] += K[i][j] * v[j]
		}
	}
}

// sqNorm returns ‖v‖²
func sqNorm(v []float64) (s float64) {
	for _, x := range v {
		s += x * x
	}
	return
}
