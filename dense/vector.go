// Copyright 2021 The AsFem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package dense

import (
	"math"

	"github.com/cpmech/gosl/chk"
)

// Vector implements a resizeable dense vector of real scalars with 1-based
// element access; a special case of Matrix with a single column.
type Vector struct {
	n    int
	vals []float64
}

// NewVector returns a new vector of length n filled with zeros
func NewVector(n int) (o *Vector) {
	o = new(Vector)
	o.Resize(n)
	return
}

// Resize reallocates the vector with the given length and zeroes all entries
func (o *Vector) Resize(n int) {
	o.n = n
	o.vals = make([]float64, n)
}

// Len returns the length of the vector
func (o *Vector) Len() int { return o.n }

// At returns the value at i. The first valid index is 1, not 0
func (o *Vector) At(i int) float64 { return o.vals[i-1] }

// Set sets the value at i. The first valid index is 1, not 0
func (o *Vector) Set(i int, v float64) { o.vals[i-1] = v }

// Fill sets all entries to v
func (o *Vector) Fill(v float64) {
	for k := range o.vals {
		o.vals[k] = v
	}
}

// Clone returns a deep copy of this vector
func (o *Vector) Clone() (b *Vector) {
	b = NewVector(o.n)
	copy(b.vals, o.vals)
	return
}

// Add returns a new vector equal to this vector plus b
func (o *Vector) Add(b *Vector) (c *Vector) {
	if o.n != b.n {
		chk.Panic("vector addition needs same-length operands: (%d) + (%d)", o.n, b.n)
	}
	c = NewVector(o.n)
	for k := range o.vals {
		c.vals[k] = o.vals[k] + b.vals[k]
	}
	return
}

// Sub returns a new vector equal to this vector minus b
func (o *Vector) Sub(b *Vector) (c *Vector) {
	if o.n != b.n {
		chk.Panic("vector subtraction needs same-length operands: (%d) - (%d)", o.n, b.n)
	}
	c = NewVector(o.n)
	for k := range o.vals {
		c.vals[k] = o.vals[k] - b.vals[k]
	}
	return
}

// Scale returns a new vector with every entry multiplied by v
func (o *Vector) Scale(v float64) (b *Vector) {
	b = NewVector(o.n)
	for k := range o.vals {
		b.vals[k] = o.vals[k] * v
	}
	return
}

// Dot returns the inner product of this vector with b
func (o *Vector) Dot(b *Vector) (s float64) {
	if o.n != b.n {
		chk.Panic("dot product needs same-length operands: (%d) . (%d)", o.n, b.n)
	}
	for k := range o.vals {
		s += o.vals[k] * b.vals[k]
	}
	return
}

// Norm returns the Euclidean norm of this vector
func (o *Vector) Norm() float64 {
	return math.Sqrt(o.Dot(o))
}
