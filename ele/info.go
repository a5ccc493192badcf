// Copyright 2021 The AsFem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// package ele implements the element-local context passed from the assembly
// loop into material and boundary-condition evaluators
package ele

// Info holds read-only data describing one element evaluation call. It is
// built by the assembly loop (external to this core) for each integration
// point visit.
type Info struct {
	Id    int     // element id
	Ndim  int     // space dimension
	Nnode int     // number of nodes of this element
	Ndof  int     // number of local degrees of freedom
	Vol   float64 // measure of the element: length, area or volume
	Ip    int     // index of the current integration point; starts from 1
	T     float64 // current simulation time
	Dt    float64 // current time increment
}

// Ipoint holds the real coordinates of one integration point
type Ipoint struct {
	X []float64 // [ndim] real coordinates
	W float64   // integration weight
}
