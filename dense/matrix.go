// Copyright 2021 The AsFem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// package dense implements the local dense matrix and vector types used to
// store element-local Jacobian/residual contributions. Element access is
// 1-based, following the node/dof numbering convention of the assembly code;
// this convention is part of the contract with callers and is never
// renumbered at the boundary.
package dense

import (
	"github.com/cpmech/gosl/chk"
	"gonum.org/v1/gonum/mat"
)

// Matrix implements a resizeable dense matrix of real scalars with 1-based
// element access. Shape mismatches in binary operations indicate an assembly
// bug and cause a panic; they are not recoverable runtime conditions.
type Matrix struct {
	m, n int
	vals []float64
}

// NewMatrix returns a new (m x n) matrix filled with zeros
func NewMatrix(m, n int) (o *Matrix) {
	o = new(Matrix)
	o.Resize(m, n)
	return
}

// Resize reallocates the matrix with the given dimensions and zeroes all entries
func (o *Matrix) Resize(m, n int) {
	o.m, o.n = m, n
	o.vals = make([]float64, m*n)
}

// M returns the number of rows
func (o *Matrix) M() int { return o.m }

// N returns the number of columns
func (o *Matrix) N() int { return o.n }

// At returns the value at (i,j). The first valid index is 1, not 0
func (o *Matrix) At(i, j int) float64 {
	return o.vals[(i-1)*o.n+j-1]
}

// Set sets the value at (i,j). The first valid index is 1, not 0
func (o *Matrix) Set(i, j int, v float64) {
	o.vals[(i-1)*o.n+j-1] = v
}

// Fill sets all entries to v
func (o *Matrix) Fill(v float64) {
	for k := range o.vals {
		o.vals[k] = v
	}
}

// Clone returns a deep copy of this matrix
func (o *Matrix) Clone() (b *Matrix) {
	b = NewMatrix(o.m, o.n)
	copy(b.vals, o.vals)
	return
}

// AddScalar returns a new matrix with v added to every entry
func (o *Matrix) AddScalar(v float64) (b *Matrix) {
	b = NewMatrix(o.m, o.n)
	for k := range o.vals {
		b.vals[k] = o.vals[k] + v
	}
	return
}

// Add returns a new matrix equal to this matrix plus b
func (o *Matrix) Add(b *Matrix) (c *Matrix) {
	if o.m != b.m || o.n != b.n {
		chk.Panic("matrix addition needs same-shaped operands: (%d x %d) + (%d x %d)", o.m, o.n, b.m, b.n)
	}
	c = NewMatrix(o.m, o.n)
	for k := range o.vals {
		c.vals[k] = o.vals[k] + b.vals[k]
	}
	return
}

// Sub returns a new matrix equal to this matrix minus b
func (o *Matrix) Sub(b *Matrix) (c *Matrix) {
	if o.m != b.m || o.n != b.n {
		chk.Panic("matrix subtraction needs same-shaped operands: (%d x %d) - (%d x %d)", o.m, o.n, b.m, b.n)
	}
	c = NewMatrix(o.m, o.n)
	for k := range o.vals {
		c.vals[k] = o.vals[k] - b.vals[k]
	}
	return
}

// AddInPlace adds b to this matrix
func (o *Matrix) AddInPlace(b *Matrix) {
	if o.m != b.m || o.n != b.n {
		chk.Panic("matrix addition needs same-shaped operands: (%d x %d) += (%d x %d)", o.m, o.n, b.m, b.n)
	}
	for k := range o.vals {
		o.vals[k] += b.vals[k]
	}
}

// Scale returns a new matrix with every entry multiplied by v
func (o *Matrix) Scale(v float64) (b *Matrix) {
	b = NewMatrix(o.m, o.n)
	for k := range o.vals {
		b.vals[k] = o.vals[k] * v
	}
	return
}

// Div returns a new matrix with every entry divided by v
func (o *Matrix) Div(v float64) (b *Matrix) {
	return o.Scale(1.0 / v)
}

// MulVec returns this matrix times vector v. The number of columns must
// equal the length of v
func (o *Matrix) MulVec(v *Vector) (w *Vector) {
	if o.n != v.n {
		chk.Panic("matrix-vector multiplication needs matching inner dimensions: (%d x %d) * (%d)", o.m, o.n, v.n)
	}
	w = NewVector(o.m)
	for i := 1; i <= o.m; i++ {
		s := 0.0
		for j := 1; j <= o.n; j++ {
			s += o.At(i, j) * v.At(j)
		}
		w.Set(i, s)
	}
	return
}

// Mul returns this matrix times b. The number of columns of this matrix must
// equal the number of rows of b
func (o *Matrix) Mul(b *Matrix) (c *Matrix) {
	if o.n != b.m {
		chk.Panic("matrix-matrix multiplication needs matching inner dimensions: (%d x %d) * (%d x %d)", o.m, o.n, b.m, b.n)
	}
	c = NewMatrix(o.m, b.n)
	for i := 1; i <= o.m; i++ {
		for j := 1; j <= b.n; j++ {
			s := 0.0
			for k := 1; k <= o.n; k++ {
				s += o.At(i, k) * b.At(k, j)
			}
			c.Set(i, j, s)
		}
	}
	return
}

// Transpose returns the transpose of this matrix; this matrix is not changed
func (o *Matrix) Transpose() (b *Matrix) {
	b = NewMatrix(o.n, o.m)
	for i := 1; i <= o.m; i++ {
		for j := 1; j <= o.n; j++ {
			b.Set(j, i, o.At(i, j))
		}
	}
	return
}

// TransposeInPlace replaces this matrix by its transpose
func (o *Matrix) TransposeInPlace() {
	b := o.Transpose()
	o.m, o.n, o.vals = b.m, b.n, b.vals
}

// Det returns the determinant of this matrix, delegating to a dense LU
// factorisation. The matrix must be square; this is a precondition on the
// caller and is only asserted, not recovered from.
func (o *Matrix) Det() float64 {
	if o.m != o.n {
		chk.Panic("determinant requires a square matrix; this one is (%d x %d)", o.m, o.n)
	}
	var lu mat.LU
	lu.Factorize(o.toDense())
	return lu.Det()
}

// Inv returns the inverse of this matrix, delegating to a dense LU
// factorisation. The matrix must be square and non-singular; singular input
// is a precondition violation by the caller.
func (o *Matrix) Inv() (b *Matrix) {
	if o.m != o.n {
		chk.Panic("inverse requires a square matrix; this one is (%d x %d)", o.m, o.n)
	}
	var ai mat.Dense
	if err := ai.Inverse(o.toDense()); err != nil {
		chk.Panic("inverse of singular matrix: %v", err)
	}
	b = NewMatrix(o.m, o.n)
	for i := 1; i <= o.m; i++ {
		for j := 1; j <= o.n; j++ {
			b.Set(i, j, ai.At(i-1, j-1))
		}
	}
	return
}

// toDense copies this matrix into a 0-based gonum dense matrix
func (o *Matrix) toDense() *mat.Dense {
	a := mat.NewDense(o.m, o.n, nil)
	for i := 1; i <= o.m; i++ {
		for j := 1; j <= o.n; j++ {
			a.Set(i-1, j-1, o.At(i, j))
		}
	}
	return a
}
