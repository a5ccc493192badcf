// Copyright 2021 The AsFem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// package inp implements the input data read from a (.sim) JSON file
package inp

import (
	"encoding/json"
	"os"
	"path/filepath"

	"github.com/cpmech/gosl/chk"
	"github.com/cpmech/gosl/fun/dbf"
	"github.com/cpmech/gosl/io"

	"github.com/walkandthinker/asfem/bcs"
	"github.com/walkandthinker/asfem/mate"
	"github.com/walkandthinker/asfem/nls"
	"github.com/walkandthinker/asfem/out"
)

// Data holds global data for simulations
type Data struct {
	Desc string  `json:"desc"` // description of simulation
	Ndim int     `json:"ndim"` // space dimension
	Ndof int     `json:"ndof"` // number of degrees of freedom of the global system
	Tini float64 `json:"tini"` // initial time
	Tfin float64 `json:"tfin"` // final time
	Dt   float64 `json:"dt"`   // time step size
}

// MatData holds material definition: a model name from the materials database
// and its parameters
type MatData struct {
	Name  string     `json:"name"`  // name of this material. ex: "phase"
	Model string     `json:"model"` // model name. ex: doublewell, quadratic
	Prms  dbf.Params `json:"prms"`  // model parameters
}

// BcData holds one boundary condition definition
type BcData struct {
	Type    string    `json:"type"`    // "const" or "cyclic"
	Dofs    []int     `json:"dofs"`    // constrained dof ids (1-based)
	Value   float64   `json:"value"`   // prescribed value ("const")
	Penalty float64   `json:"penalty"` // penalty coefficient; 0 => default
	Times   []float64 `json:"times"`   // time samples ("cyclic")
	Values  []float64 `json:"values"`  // value samples ("cyclic")
}

// OutData holds output control data
type OutData struct {
	Interval int `json:"interval"` // write results every Interval accepted steps; 0 => every step
}

// Simulation holds all simulation data
type Simulation struct {

	// input data
	Data   Data       `json:"data"`   // global simulation data
	Solver nls.Config `json:"solver"` // nonlinear solver configuration
	Mats   []*MatData `json:"mats"`   // materials
	Bcs    []*BcData  `json:"bcs"`    // boundary conditions
	Output OutData    `json:"output"` // output control

	// derived
	Key        string          // simulation filename key
	Models     []mate.Model    // initialised material models, one per Mats entry
	Dirichlets []bcs.Dirichlet // built boundary conditions, one per Bcs entry
	Cadence    *out.Cadence    // output cadence controller
}

// ReadSim reads and validates all simulation data from a .sim JSON file.
// Every name and table is checked here, before any solve starts; an invalid
// input never produces a partially initialised Simulation.
func ReadSim(simfilepath string) (o *Simulation, err error) {

	// read file
	if _, serr := os.Stat(simfilepath); serr != nil {
		return nil, chk.Err("cannot read simulation file %q", simfilepath)
	}
	b := io.ReadFile(simfilepath)

	// set default values
	o = new(Simulation)
	o.Solver.SetDefaults()

	// decode
	if err = json.Unmarshal(b, o); err != nil {
		return nil, chk.Err("cannot unmarshal simulation file %q: %v", simfilepath, err)
	}

	// filename key
	fn := filepath.Base(os.ExpandEnv(simfilepath))
	o.Key = io.FnKey(fn)

	// global data
	if o.Data.Ndof < 1 {
		return nil, chk.Err("ndof must be at least 1; %d given", o.Data.Ndof)
	}
	if o.Data.Ndim < 1 || o.Data.Ndim > 3 {
		return nil, chk.Err("ndim must be 1, 2 or 3; %d given", o.Data.Ndim)
	}
	if o.Data.Dt <= 0 {
		return nil, chk.Err("dt must be positive; %g given", o.Data.Dt)
	}
	if o.Data.Tfin <= o.Data.Tini {
		return nil, chk.Err("tfin=%g must be greater than tini=%g", o.Data.Tfin, o.Data.Tini)
	}

	// solver configuration
	if err = o.Solver.Validate(); err != nil {
		return nil, err
	}

	// materials
	if len(o.Mats) < 1 {
		return nil, chk.Err("at least one material must be defined")
	}
	names := make(map[string]bool)
	for _, m := range o.Mats {
		if m.Name == "" {
			return nil, chk.Err("material must have a name")
		}
		if names[m.Name] {
			return nil, chk.Err("material name %q is defined twice", m.Name)
		}
		names[m.Name] = true
		mdl, e := mate.New(m.Model)
		if e != nil {
			return nil, chk.Err("material %q: %v", m.Name, e)
		}
		if e = mdl.Init(o.Data.Ndim, m.Prms); e != nil {
			return nil, chk.Err("material %q: %v", m.Name, e)
		}
		o.Models = append(o.Models, mdl)
	}

	// boundary conditions
	for i, d := range o.Bcs {
		if len(d.Dofs) < 1 {
			return nil, chk.Err("boundary condition # %d constrains no dofs", i)
		}
		for _, id := range d.Dofs {
			if id < 1 || id > o.Data.Ndof {
				return nil, chk.Err("boundary condition # %d: dof id %d is out of range [1,%d]", i, id, o.Data.Ndof)
			}
		}
		bc, e := bcs.New(d.Type, d.Times, d.Values, d.Penalty)
		if e != nil {
			return nil, chk.Err("boundary condition # %d: %v", i, e)
		}
		o.Dirichlets = append(o.Dirichlets, bc)
	}

	// output control
	if o.Output.Interval < 0 {
		return nil, chk.Err("output interval must be non-negative; %d given", o.Output.Interval)
	}
	o.Cadence = out.NewCadence(o.Output.Interval)
	return
}

// GetModel returns the initialised model of the material with the given name
func (o *Simulation) GetModel(name string) (mate.Model, error) {
	for i, m := range o.Mats {
		if m.Name == name {
			return o.Models[i], nil
		}
	}
	return nil, chk.Err("cannot find material named %q", name)
}
