// Copyright 2021 The AsFem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// package out controls when results of accepted steps are written.
// It decides cadence only; file formats are a concern of the caller.
package out

// Cadence decides which accepted steps produce output. Interval = n means
// every n-th accepted step is written, with step 0 (the initial state) and
// the final step always included.
type Cadence struct {
	Interval int   // write every Interval accepted steps; <= 1 => every step
	Steps    []int // indices of the steps selected so far
}

// NewCadence returns a cadence controller with the given interval
func NewCadence(interval int) (o *Cadence) {
	o = new(Cadence)
	o.Interval = interval
	return
}

// StepAccepted tells the controller that step idx was accepted and reports
// whether its results should be written
func (o *Cadence) StepAccepted(idx int) bool {
	if o.Interval <= 1 || idx%o.Interval == 0 {
		o.Steps = append(o.Steps, idx)
		return true
	}
	return false
}

// Last reports whether the final step must be written regardless of the
// interval, and records it
func (o *Cadence) Last(idx int) bool {
	if len(o.Steps) > 0 && o.Steps[len(o.Steps)-1] == idx {
		return false
	}
	o.Steps = append(o.Steps, idx)
	return true
}
