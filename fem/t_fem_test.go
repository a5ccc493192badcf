// Copyright 2021 The AsFem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package fem

import (
	"math"
	"testing"

	"github.com/cpmech/gosl/chk"
	"github.com/cpmech/gosl/io"

	"github.com/walkandthinker/asfem/ele"
	"github.com/walkandthinker/asfem/inp"
)

func verbose() {
	io.Verbose = true
	chk.Verbose = true
}

// gradientFlowAsm assembles the backward-Euler residual of a gradient flow:
//   r₁ = (u₁ - uold₁)/Δt + dF/dc(u₁)
//   r₂ = (u₂ - uold₂)/Δt
// dof 2 is fully prescribed by a boundary condition; its base row only keeps
// the Jacobian regular before the penalty is folded in.
type gradientFlowAsm struct{}

func (o *gradientFlowAsm) AddToRhs(r []float64, soln *ele.Solution, states []*IpState, info *ele.Info) error {
	r[0] = (soln.U[0]-soln.Uold[0])/info.Dt + states[0].Cur.Scalars["dFdc"]
	r[1] = (soln.U[1] - soln.Uold[1]) / info.Dt
	return nil
}

func (o *gradientFlowAsm) AddToKb(K [][]float64, soln *ele.Solution, states []*IpState, info *ele.Info) error {
	K[0][0] = 1.0/info.Dt + states[0].Cur.Scalars["d2Fdc2"]
	K[1][1] = 1.0 / info.Dt
	return nil
}

func Test_stepper01(tst *testing.T) {

	//verbose()
	chk.PrintTitle("stepper01. transient double-well relaxation")

	sim, err := inp.ReadSim("data/dwell.sim")
	if err != nil {
		tst.Errorf("ReadSim failed: %v\n", err)
		return
	}

	stp, err := NewStepper(sim, new(gradientFlowAsm))
	if err != nil {
		tst.Errorf("NewStepper failed: %v\n", err)
		return
	}
	if err = stp.SetInitial([]float64{0.9, 0}); err != nil {
		tst.Errorf("SetInitial failed: %v\n", err)
		return
	}

	// record output steps and the history of dof 1
	var outIdx []int
	var history []float64
	stp.Output = func(idx int, t float64, u []float64) error {
		outIdx = append(outIdx, idx)
		history = append(history, u[0])
		if chk.Verbose {
			io.Pf("step %2d  t=%5.2f  u = %v\n", idx, t, u)
		}
		return nil
	}

	if err = stp.Run(); err != nil {
		tst.Errorf("Run failed: %v\n", err)
		return
	}

	// dof 1 relaxes into the well at c = 1
	u := stp.Soln.U
	if math.Abs(u[0]-1.0) > 1e-2 {
		tst.Errorf("dof 1 must relax into the well at 1; got %g\n", u[0])
		return
	}
	for i := 1; i < len(history); i++ {
		if history[i] < history[i-1] {
			tst.Errorf("relaxation toward the well must be monotone\n")
			return
		}
	}

	// dof 2 follows the cyclic table: back to 0 at t = 2
	chk.Float64(tst, "u2(tfin)", 1e-9, u[1], 0)

	// output cadence: every 2nd accepted step over 8 steps
	chk.Ints(tst, "output steps", outIdx, []int{0, 2, 4, 6, 8})
}

func Test_stepper02(tst *testing.T) {

	//verbose()
	chk.PrintTitle("stepper02. prescribed value follows the table mid-run")

	sim, err := inp.ReadSim("data/dwell.sim")
	if err != nil {
		tst.Errorf("ReadSim failed: %v\n", err)
		return
	}
	sim.Output.Interval = 1
	sim.Cadence.Interval = 1

	stp, err := NewStepper(sim, new(gradientFlowAsm))
	if err != nil {
		tst.Errorf("NewStepper failed: %v\n", err)
		return
	}
	if err = stp.SetInitial([]float64{1.0, 0}); err != nil {
		tst.Errorf("SetInitial failed: %v\n", err)
		return
	}

	// dof 2 must track the (time,value) table at every accepted step:
	// ramp up to 10 at t=1, back down to 0 at t=2
	stp.Output = func(idx int, t float64, u []float64) error {
		want := 10.0 - math.Abs(t-1.0)*10.0
		if t <= 0 || t >= 2 {
			want = 0
		}
		if idx > 0 {
			chk.Float64(tst, io.Sf("u2(t=%g)", t), 1e-9, u[1], want)
		}
		return nil
	}

	if err = stp.Run(); err != nil {
		tst.Errorf("Run failed: %v\n", err)
		return
	}
}

func Test_stepper03(tst *testing.T) {

	//verbose()
	chk.PrintTitle("stepper03. initial solution dimension check")

	sim, err := inp.ReadSim("data/dwell.sim")
	if err != nil {
		tst.Errorf("ReadSim failed: %v\n", err)
		return
	}
	stp, err := NewStepper(sim, new(gradientFlowAsm))
	if err != nil {
		tst.Errorf("NewStepper failed: %v\n", err)
		return
	}
	if err = stp.SetInitial([]float64{1.0}); err == nil {
		tst.Errorf("SetInitial must fail for the wrong dimension\n")
		return
	}
}
