// Copyright 2021 The AsFem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// package fem drives transient equilibrium solves: it owns the global
// solution vectors and the material state, wraps the assembly callbacks and
// boundary conditions into a nonlinear problem, and runs the time loop with
// divergence-controlled step cutbacks.
package fem

import (
	"github.com/cpmech/gosl/chk"
	"github.com/cpmech/gosl/io"

	"github.com/walkandthinker/asfem/bcs"
	"github.com/walkandthinker/asfem/ele"
	"github.com/walkandthinker/asfem/inp"
	"github.com/walkandthinker/asfem/mate"
	"github.com/walkandthinker/asfem/nls"
)

// IpState pairs a material model with its committed (old) and current
// property sets at one integration point
type IpState struct {
	Mdl mate.Model
	Old *mate.Materials
	Cur *mate.Materials
}

// NewIpState returns the state holder of one integration point with both
// property sets seeded by the model
func NewIpState(mdl mate.Model, info *ele.Info, soln *ele.Solution) (o *IpState) {
	o = new(IpState)
	o.Mdl = mdl
	o.Old = mate.NewMaterials()
	o.Cur = mate.NewMaterials()
	mdl.InitMaterialProperties(info, soln, o.Old)
	o.Old.CopyInto(o.Cur)
	return
}

// Assembler defines the callbacks through which the caller adds element
// contributions to the global residual and Jacobian. Both are called with the
// material properties already evaluated at the trial solution.
type Assembler interface {
	AddToRhs(r []float64, soln *ele.Solution, states []*IpState, info *ele.Info) error
	AddToKb(K [][]float64, soln *ele.Solution, states []*IpState, info *ele.Info) error
}

// Stepper runs the transient solve: one nonlinear solve per time step, with
// accepted steps committing the solution and material state and rejected
// steps restored and retried with a halved time increment.
type Stepper struct {

	// input
	Sim *inp.Simulation
	Asm Assembler

	// state
	Soln   *ele.Solution // global U and Uold
	Info   *ele.Info     // time/step data shared with materials and bcs
	States []*IpState

	// optional callback invoked for steps selected by the output cadence
	Output func(idx int, t float64, u []float64) error

	// derived
	solver nls.Solver

	// divergence control
	maxCutbacks int
}

// NewStepper builds a stepper for the given simulation and assembler. One
// integration point state is created per material in the simulation.
func NewStepper(sim *inp.Simulation, asm Assembler) (o *Stepper, err error) {
	o = new(Stepper)
	o.Sim = sim
	o.Asm = asm
	ndof := sim.Data.Ndof
	o.Soln = ele.NewSolution(ndof)
	o.Info = &ele.Info{Ndim: sim.Data.Ndim, Ndof: ndof, Ip: 1, T: sim.Data.Tini, Dt: sim.Data.Dt}
	for _, mdl := range sim.Models {
		o.States = append(o.States, NewIpState(mdl, o.Info, o.Soln))
	}
	o.maxCutbacks = 20
	err = o.solver.Init(ndof, &sim.Solver, &stepProblem{o}, nil)
	return
}

// SetInitial sets the initial solution values; both U and Uold are set
func (o *Stepper) SetInitial(u []float64) error {
	if len(u) != len(o.Soln.U) {
		return chk.Err("initial solution has wrong dimension: %d given, %d expected", len(u), len(o.Soln.U))
	}
	copy(o.Soln.U, u)
	copy(o.Soln.Uold, u)
	return nil
}

// Run executes the time loop from tini to tfin. It returns an error if a
// step cannot be completed even after all cutbacks, or on any linear-solve
// or evaluation failure.
func (o *Stepper) Run() (err error) {

	// auxiliary
	md := 1.0    // time step multiplier under divergence control
	ndiverg := 0 // number of consecutive cutbacks

	// time control
	t := o.Sim.Data.Tini
	tf := o.Sim.Data.Tfin
	dt := o.Sim.Data.Dt
	idx := 0

	// initial output
	if err = o.writeStep(idx, t); err != nil {
		return
	}

	// time loop
	var Δt float64
	for t < tf {

		// check for continued divergence
		if ndiverg >= o.maxCutbacks {
			return chk.Err("continuous divergence after %d cutbacks at t=%g", ndiverg, t)
		}

		// time increment
		Δt = dt * md
		if t+Δt >= tf {
			Δt = tf - t
		}
		o.Info.T = t + Δt
		o.Info.Dt = Δt

		// nonlinear solve for this step
		res, serr := o.solver.Solve(o.Soln.U)
		if serr != nil {
			return chk.Err("step %d (t=%g) failed:\n%v", idx+1, o.Info.T, serr)
		}

		// divergence control: restore and retry with smaller step
		if res.Status != nls.Converged {
			if o.Sim.Solver.DvgCtrl && res.Status != nls.LinFailure {
				if o.Sim.Solver.ShowR {
					io.Pf(". . . iterations %v (%2d) . . .\n", res.Status, ndiverg+1)
				}
				o.restore()
				md *= 0.5
				ndiverg++
				continue
			}
			return chk.Err("step %d (t=%g): solver %v after %d iterations", idx+1, o.Info.T, res.Status, res.It)
		}

		// accept: commit solution and material state
		t += Δt
		idx++
		md = 1.0
		ndiverg = 0
		copy(o.Soln.Uold, o.Soln.U)
		for _, s := range o.States {
			s.Cur.CopyInto(s.Old)
		}

		// output
		if err = o.writeStep(idx, t); err != nil {
			return
		}
	}
	return
}

// restore resets the trial solution and current material state back to the
// last committed step
func (o *Stepper) restore() {
	copy(o.Soln.U, o.Soln.Uold)
	for _, s := range o.States {
		s.Old.CopyInto(s.Cur)
	}
}

// writeStep consults the output cadence and invokes the output callback
func (o *Stepper) writeStep(idx int, t float64) (err error) {
	if o.Output == nil {
		return
	}
	if o.Sim.Cadence.StepAccepted(idx) {
		return o.Output(idx, t, o.Soln.U)
	}
	if t >= o.Sim.Data.Tfin && o.Sim.Cadence.Last(idx) {
		return o.Output(idx, t, o.Soln.U)
	}
	return
}

// stepProblem adapts the assembler, material evaluation and boundary
// conditions into the nonlinear problem of one time step
type stepProblem struct {
	stp *Stepper
}

// Resid computes the positive residual at the trial solution y
func (o *stepProblem) Resid(r, y []float64) (err error) {
	s := o.stp
	copy(s.Soln.U, y)
	for _, st := range s.States {
		if err = st.Mdl.ComputeMaterialProperties(s.Info, s.Soln, st.Old, st.Cur); err != nil {
			return
		}
	}
	for i := range r {
		r[i] = 0
	}
	if err = s.Asm.AddToRhs(r, s.Soln, s.States, s.Info); err != nil {
		return
	}
	for i, bc := range s.Sim.Dirichlets {
		if err = bc.ComputeBCValue(bcs.Residual, s.Sim.Bcs[i].Value, s.Info, s.Sim.Bcs[i].Dofs, nil, nil, r, y); err != nil {
			return
		}
	}
	return
}

// Jacob computes the Jacobian at the trial solution y
func (o *stepProblem) Jacob(K [][]float64, y []float64) (err error) {
	s := o.stp
	copy(s.Soln.U, y)
	for _, st := range s.States {
		if err = st.Mdl.ComputeMaterialProperties(s.Info, s.Soln, st.Old, st.Cur); err != nil {
			return
		}
	}
	for i := range K {
		for j := range K[i] {
			K[i][j] = 0
		}
	}
	if err = s.Asm.AddToKb(K, s.Soln, s.States, s.Info); err != nil {
		return
	}
	for i, bc := range s.Sim.Dirichlets {
		if err = bc.ComputeBCValue(bcs.Jacobian, s.Sim.Bcs[i].Value, s.Info, s.Sim.Bcs[i].Dofs, nil, K, nil, y); err != nil {
			return
		}
	}
	return
}
