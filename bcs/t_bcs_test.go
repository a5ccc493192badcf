// Copyright 2021 The AsFem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package bcs

import (
	"math"
	"testing"

	"github.com/cpmech/gosl/chk"
	"github.com/cpmech/gosl/io"
	"github.com/cpmech/gosl/utl"

	"github.com/walkandthinker/asfem/ele"
)

func verbose() {
	io.Verbose = true
	chk.Verbose = true
}

func Test_cyclic01(tst *testing.T) {

	//verbose()
	chk.PrintTitle("cyclic01. table interpolation")

	bc, err := NewCyclic([]float64{0, 1, 2}, []float64{0, 10, 0}, 0)
	if err != nil {
		tst.Errorf("NewCyclic failed: %v\n", err)
		return
	}

	info := &ele.Info{}
	for _, tc := range []struct{ t, u float64 }{
		{0.0, 0}, {0.5, 5}, {1.0, 10}, {1.5, 5}, {2.0, 0},
		{-1.0, 0}, // clamped before the table
		{3.0, 0},  // clamped after the table
	} {
		info.T = tc.t
		chk.Float64(tst, io.Sf("u(%g)", tc.t), 1e-15, bc.computeU(123, info, nil), tc.u)
	}
}

func Test_cyclic02(tst *testing.T) {

	//verbose()
	chk.PrintTitle("cyclic02. table validation")

	if _, err := NewCyclic([]float64{0, 1}, []float64{1}, 0); err == nil {
		tst.Errorf("NewCyclic must fail for tables of different lengths\n")
		return
	}
	if _, err := NewCyclic([]float64{0, 2, 1}, []float64{1, 2, 3}, 0); err == nil {
		tst.Errorf("NewCyclic must fail for non-increasing times\n")
		return
	}
	if _, err := NewCyclic(nil, nil, 0); err == nil {
		tst.Errorf("NewCyclic must fail for an empty table\n")
		return
	}

	// single sample holds its value at any time
	bc, err := NewCyclic([]float64{1}, []float64{7}, 0)
	if err != nil {
		tst.Errorf("NewCyclic failed: %v\n", err)
		return
	}
	chk.Float64(tst, "u(-5)", 1e-15, bc.computeU(0, &ele.Info{T: -5}, nil), 7)
	chk.Float64(tst, "u(+5)", 1e-15, bc.computeU(0, &ele.Info{T: +5}, nil), 7)
}

func Test_penalty01(tst *testing.T) {

	//verbose()
	chk.PrintTitle("penalty01. constrained linear system")

	// 2-dof system K u = f with u1 prescribed to 5
	K := [][]float64{
		{2, -1},
		{-1, 2},
	}
	f := []float64{0, 1}
	u := []float64{0, 0}
	r := make([]float64, 2)

	bc, err := New("const", nil, nil, 0)
	if err != nil {
		tst.Errorf("New failed: %v\n", err)
		return
	}
	info := &ele.Info{}

	// one Newton iteration of the linear problem: assemble, constrain, solve
	Kc := utl.Alloc(2, 2)
	for it := 0; it < 3; it++ {
		for i := 0; i < 2; i++ {
			r[i] = -f[i]
			for j := 0; j < 2; j++ {
				Kc[i][j] = K[i][j]
				r[i] += K[i][j] * u[j]
			}
		}
		if err = bc.ComputeBCValue(Residual, 5, info, []int{1}, nil, nil, r, u); err != nil {
			tst.Errorf("ComputeBCValue failed: %v\n", err)
			return
		}
		if err = bc.ComputeBCValue(Jacobian, 5, info, []int{1}, nil, Kc, nil, u); err != nil {
			tst.Errorf("ComputeBCValue failed: %v\n", err)
			return
		}
		// solve Kc d = -r by hand (2x2, decoupled by the constraint)
		u[0] += -r[0] / Kc[0][0]
		u[1] += -r[1] / Kc[1][1]
	}

	// constrained dof hits the prescribed value; free dof balances
	chk.Float64(tst, "u1", 1e-9, u[0], 5)
	chk.Float64(tst, "u2", 1e-9, u[1], 3)
}

func Test_penalty03(tst *testing.T) {

	//verbose()
	chk.PrintTitle("penalty03. enforcement tightens with larger penalties")

	// same 2-dof system as penalty01; the constrained dof must land within
	// O(1/penalty) of the prescribed value, so each larger penalty admits a
	// strictly smaller gap
	K := [][]float64{
		{2, -1},
		{-1, 2},
	}
	f := []float64{0, 1}
	info := &ele.Info{}
	prescribed := 5.0

	for _, p := range []float64{1e6, 1e8, 1e10, 1e12} {

		bc, err := New("const", nil, nil, p)
		if err != nil {
			tst.Errorf("New failed: %v\n", err)
			return
		}

		u := []float64{0, 0}
		r := make([]float64, 2)
		Kc := utl.Alloc(2, 2)
		for it := 0; it < 3; it++ {
			for i := 0; i < 2; i++ {
				r[i] = -f[i]
				for j := 0; j < 2; j++ {
					Kc[i][j] = K[i][j]
					r[i] += K[i][j] * u[j]
				}
			}
			if err = bc.ComputeBCValue(Residual, prescribed, info, []int{1}, nil, nil, r, u); err != nil {
				tst.Errorf("ComputeBCValue failed: %v\n", err)
				return
			}
			if err = bc.ComputeBCValue(Jacobian, prescribed, info, []int{1}, nil, Kc, nil, u); err != nil {
				tst.Errorf("ComputeBCValue failed: %v\n", err)
				return
			}
			u[0] += -r[0] / Kc[0][0]
			u[1] += -r[1] / Kc[1][1]
		}

		gap := math.Abs(u[0] - prescribed)
		bound := prescribed / p
		io.Pf("penalty = %8.1e  gap = %13.6e  bound = %13.6e\n", p, gap, bound)
		if gap > bound {
			tst.Errorf("penalty %g: gap %g exceeds bound %g\n", p, gap, bound)
			return
		}
	}
}

func Test_penalty02(tst *testing.T) {

	//verbose()
	chk.PrintTitle("penalty02. errors")

	if _, err := New("unknownbc", nil, nil, 0); err == nil {
		tst.Errorf("New must fail for an unknown kind\n")
		return
	}

	bc, err := New("const", nil, nil, 0)
	if err != nil {
		tst.Errorf("New failed: %v\n", err)
		return
	}
	u := make([]float64, 2)
	r := make([]float64, 2)
	if err = bc.ComputeBCValue(Residual, 1, &ele.Info{}, []int{3}, nil, nil, r, u); err == nil {
		tst.Errorf("out-of-range dof id must be an error\n")
		return
	}
	if err = bc.ComputeBCValue(Residual, 1, &ele.Info{}, []int{0}, nil, nil, r, u); err == nil {
		tst.Errorf("dof ids start from 1; id 0 must be an error\n")
		return
	}
}
