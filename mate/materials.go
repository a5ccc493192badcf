// Copyright 2021 The AsFem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// package mate implements free-energy based material laws. Each law computes
// the energy, its first derivative (the driving/chemical potential) and its
// second derivative (the local tangent stiffness contribution) at one
// integration point.
package mate

// Materials maps property names to the values computed by a material law at
// one integration point. Two instances exist per integration point per step:
// the "old" (committed) one and the "current" one being computed, because
// history-dependent laws need both.
type Materials struct {
	Scalars map[string]float64   // scalar properties; e.g. "F", "dFdc"
	Vectors map[string][]float64 // small vector properties; e.g. fluxes
}

// NewMaterials returns a new empty property container
func NewMaterials() (o *Materials) {
	o = new(Materials)
	o.Scalars = make(map[string]float64)
	o.Vectors = make(map[string][]float64)
	return
}

// CopyInto copies all properties of this container into b; used when a solve
// step is accepted and "current" becomes "old"
func (o *Materials) CopyInto(b *Materials) {
	for key, val := range o.Scalars {
		b.Scalars[key] = val
	}
	for key, vals := range o.Vectors {
		v := make([]float64, len(vals))
		copy(v, vals)
		b.Vectors[key] = v
	}
}
