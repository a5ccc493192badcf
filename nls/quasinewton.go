// Copyright 2021 The AsFem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package nls

import (
	"math"

	"github.com/cpmech/gosl/io"
	"github.com/cpmech/gosl/la"
	"github.com/cpmech/gosl/utl"
	"gonum.org/v1/gonum/mat"
)

// qnMemory is the number of (s,y) pairs kept by the L-BFGS update
const qnMemory = 10

// solveQuasiNewton runs the quasi-Newton iteration. The inverse Jacobian is
// seeded from one exact assembly and factorisation at the initial iterate
// and then kept up to date with the Broyden, bad-Broyden or L-BFGS formula;
// the Jacobian is never reassembled.
func (o *Solver) solveQuasiNewton(y []float64) (res *Results, err error) {

	res = new(Results)

	// seed H = J(y0)⁻¹
	if err = o.prob.Jacob(o.K, y); err != nil {
		return
	}
	H, err := invertDense(o.K)
	if err != nil {
		res.Status = LinFailure
		return
	}

	// L-BFGS pair storage
	var S, Y [][]float64

	d := make([]float64, o.n)
	s := make([]float64, o.n)
	yk := make([]float64, o.n)
	rnew := make([]float64, o.n)

	var nrm, nrm0, prev float64

	if o.cfg.ShowR {
		io.Pf("%4s%23s%23s\n", "it", "‖r‖", "λ")
	}

	if err = o.prob.Resid(o.r, y); err != nil {
		return
	}

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

		// direction d = -H·r (two-loop recursion for L-BFGS)
		if o.cfg.Type == QnLbfgs {
			lbfgsDirection(d, o.r, H, S, Y)
		} else {
			matVecNeg(d, H, o.r)
		}

		// step
		λ := o.lineSearch(y, d, nrm)
		if o.cfg.ShowR {
			io.Pf("%4d%23.15e%23.15e\n", it, nrm, λ)
		}
		for i := 0; i < o.n; i++ {
			s[i] = λ * d[i]
			y[i] += s[i]
		}

		// convergence on step size
		if o.cfg.Stol > 0 {
			if la.VecRmsError(s, o.zero, o.cfg.Atol, o.cfg.Rtol, y) < o.cfg.Stol {
				res.It = it + 1
				res.Status = Converged
				return
			}
		}

		// residual change for the update
		if err = o.prob.Resid(rnew, y); err != nil {
			return
		}
		for i := 0; i < o.n; i++ {
			yk[i] = rnew[i] - o.r[i]
		}
		copy(o.r, rnew)

		// inverse-Jacobian update
		switch o.cfg.Type {
		case QnLbfgs:
			if la.VecDot(s, yk) > 1e-20 {
				S = append(S, cloneVec(s))
				Y = append(Y, cloneVec(yk))
				if len(S) > qnMemory {
					S, Y = S[1:], Y[1:]
				}
			}
		case QnBroyden:
			broydenUpdate(H, s, yk)
		case QnBadBroyden:
			badBroydenUpdate(H, s, yk)
		}
	}

	res.It = o.cfg.NmaxIt
	res.Status = MaxItReached
	return
}

// broydenUpdate applies the "good" Broyden update to the inverse Jacobian:
//   H += (s - H·yk) (sᵀH) / (sᵀ H yk)
func broydenUpdate(H [][]float64, s, yk []float64) {
	n := len(s)
	hy := make([]float64, n)  // H·yk
	sth := make([]float64, n) // sᵀH
	for i := 0; i < n; i++ {
		for j := 0; j < n; j++ {
			hy[i] += H[i][j] * yk[j]
			sth[i] += s[j] * H[j][i]
		}
	}
	den := la.VecDot(s, hy)
	if math.Abs(den) < 1e-20 {
		return
	}
	for i := 0; i < n; i++ {
		c := (s[i] - hy[i]) / den
		for j := 0; j < n; j++ {
			H[i][j] += c * sth[j]
		}
	}
}

// badBroydenUpdate applies the "bad" Broyden update to the inverse Jacobian:
//   H += (s - H·yk) ykᵀ / (ykᵀ yk)
func badBroydenUpdate(H [][]float64, s, yk []float64) {
	n := len(s)
	hy := make([]float64, n)
	for i := 0; i < n; i++ {
		for j := 0; j < n; j++ {
			hy[i] += H[i][j] * yk[j]
		}
	}
	den := la.VecDot(yk, yk)
	if den < 1e-20 {
		return
	}
	for i := 0; i < n; i++ {
		c := (s[i] - hy[i]) / den
		for j := 0; j < n; j++ {
			H[i][j] += c * yk[j]
		}
	}
}

// lbfgsDirection computes d = -H·r with the two-loop recursion over the
// stored (s,y) pairs, using H0 as the base inverse Jacobian
func lbfgsDirection(d, r []float64, H0 [][]float64, S, Y [][]float64) {
	n := len(r)
	m := len(S)
	q := cloneVec(r)
	α := make([]float64, m)
	ρ := make([]float64, m)
	for i := m - 1; i >= 0; i-- {
		ρ[i] = 1.0 / la.VecDot(Y[i], S[i])
		α[i] = ρ[i] * la.VecDot(S[i], q)
		for k := 0; k < n; k++ {
			q[k] -= α[i] * Y[i][k]
		}
	}
	z := make([]float64, n)
	for i := 0; i < n; i++ {
		for j := 0; j < n; j++ {
			z[i] += H0[i][j] * q[j]
		}
	}
	for i := 0; i < m; i++ {
		β := ρ[i] * la.VecDot(Y[i], z)
		for k := 0; k < n; k++ {
			z[k] += (α[i] - β) * S[i][k]
		}
	}
	for k := 0; k < n; k++ {
		d[k] = -z[k]
	}
}

// matVecNeg computes d = -H·r
func matVecNeg(d []float64, H [][]float64, r []float64) {
	n := len(r)
	for i := 0; i < n; i++ {
		d[i] = 0
		for j := 0; j < n; j++ {
			d[i] -= H[i][j] * r[j]
		}
	}
}

// invertDense inverts K with a dense LU factorisation
func invertDense(K [][]float64) (H [][]float64, err error) {
	n := len(K)
	A := mat.NewDense(n, n, nil)
	for i := 0; i < n; i++ {
		for j := 0; j < n; j++ {
			A.Set(i, j, K[i][j])
		}
	}
	var Ai mat.Dense
	if err = Ai.Inverse(A); err != nil {
		return
	}
	H = utl.Alloc(n, n)
	for i := 0; i < n; i++ {
		for j := 0; j < n; j++ {
			H[i][j] = Ai.At(i, j)
		}
	}
	return
}

// cloneVec returns a copy of v
func cloneVec(v []float64) (w []float64) {
	w = make([]float64, len(v))
	copy(w, v)
	return
}
