// Copyright 2021 The AsFem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package nls

import (
	"math"

	"github.com/cpmech/gosl/chk"
	"github.com/cpmech/gosl/la"
	"github.com/cpmech/gosl/utl"
)

// cgSolve solves K*x = b with the (unpreconditioned) conjugate-gradient
// method, assuming K symmetric positive definite. Convergence is declared
// when ‖b - K x‖ drops below atol or rtol·‖b‖; maxit == 0 means up to n
// iterations.
func cgSolve(x []float64, K [][]float64, b []float64, atol, rtol float64, maxit int) (err error) {

	n := len(b)
	if maxit < 1 {
		maxit = n
	}

	la.Vector(x).Fill(0)
	r := cloneVec(b)
	p := cloneVec(b)
	kp := make([]float64, n)

	bnrm := la.Vector(b).Norm()
	if bnrm < atol {
		return
	}
	rr := la.VecDot(r, r)

	for it := 0; it < maxit; it++ {
		matVec(kp, K, p)
		den := la.VecDot(p, kp)
		if den <= 0 {
			return chk.Err("cg: matrix is not positive definite (pᵀKp = %g)", den)
		}
		α := rr / den
		for i := 0; i < n; i++ {
			x[i] += α * p[i]
			r[i] -= α * kp[i]
		}
		rrNew := la.VecDot(r, r)
		if nrm := math.Sqrt(rrNew); nrm < atol || nrm < rtol*bnrm {
			return
		}
		β := rrNew / rr
		for i := 0; i < n; i++ {
			p[i] = r[i] + β*p[i]
		}
		rr = rrNew
	}
	return chk.Err("cg did not converge in %d iterations", maxit)
}

// gmresSolve solves K*x = b with the full (unrestarted) GMRES method:
// an Arnoldi process builds the Krylov basis and Givens rotations keep the
// least-squares problem triangular. maxit == 0 means up to n iterations.
func gmresSolve(x []float64, K [][]float64, b []float64, atol, rtol float64, maxit int) (err error) {

	n := len(b)
	if maxit < 1 || maxit > n {
		maxit = n
	}

	la.Vector(x).Fill(0)
	bnrm := la.Vector(b).Norm()
	if bnrm < atol {
		return
	}

	// Arnoldi basis, Hessenberg matrix, Givens rotations
	V := utl.Alloc(maxit+1, n)
	H := utl.Alloc(maxit+1, maxit)
	cs := make([]float64, maxit)
	sn := make([]float64, maxit)
	g := make([]float64, maxit+1)

	for i := 0; i < n; i++ {
		V[0][i] = b[i] / bnrm
	}
	g[0] = bnrm

	w := make([]float64, n)
	k := 0
	for ; k < maxit; k++ {

		// Arnoldi step with modified Gram-Schmidt
		matVec(w, K, V[k])
		for j := 0; j <= k; j++ {
			H[j][k] = la.VecDot(w, V[j])
			for i := 0; i < n; i++ {
				w[i] -= H[j][k] * V[j][i]
			}
		}
		H[k+1][k] = la.Vector(w).Norm()
		if H[k+1][k] > 1e-30 {
			for i := 0; i < n; i++ {
				V[k+1][i] = w[i] / H[k+1][k]
			}
		}

		// apply previous rotations, then form the new one
		for j := 0; j < k; j++ {
			t := cs[j]*H[j][k] + sn[j]*H[j+1][k]
			H[j+1][k] = -sn[j]*H[j][k] + cs[j]*H[j+1][k]
			H[j][k] = t
		}
		ρ := math.Hypot(H[k][k], H[k+1][k])
		if ρ < 1e-30 {
			return chk.Err("gmres: breakdown at iteration %d", k)
		}
		cs[k] = H[k][k] / ρ
		sn[k] = H[k+1][k] / ρ
		H[k][k] = ρ
		H[k+1][k] = 0
		g[k+1] = -sn[k] * g[k]
		g[k] *= cs[k]

		if nrm := math.Abs(g[k+1]); nrm < atol || nrm < rtol*bnrm {
			k++
			break
		}
	}
	if k == maxit && math.Abs(g[k]) >= atol && math.Abs(g[k]) >= rtol*bnrm {
		return chk.Err("gmres did not converge in %d iterations", maxit)
	}

	// back substitution and solution update
	ymin := make([]float64, k)
	for i := k - 1; i >= 0; i-- {
		s := g[i]
		for j := i + 1; j < k; j++ {
			s -= H[i][j] * ymin[j]
		}
		ymin[i] = s / H[i][i]
	}
	for j := 0; j < k; j++ {
		for i := 0; i < n; i++ {
			x[i] += ymin[j] * V[j][i]
		}
	}
	return
}
