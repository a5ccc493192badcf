// Copyright 2021 The AsFem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package out

import (
	"testing"

	"github.com/cpmech/gosl/chk"
	"github.com/cpmech/gosl/io"
)

func verbose() {
	io.Verbose = true
	chk.Verbose = true
}

func Test_cadence01(tst *testing.T) {

	//verbose()
	chk.PrintTitle("cadence01. interval selection")

	o := NewCadence(3)
	var written []int
	for idx := 0; idx <= 10; idx++ {
		if o.StepAccepted(idx) {
			written = append(written, idx)
		}
	}
	chk.Ints(tst, "written", written, []int{0, 3, 6, 9})

	// final step forced in even off-interval
	if !o.Last(10) {
		tst.Errorf("final step must be written when off the interval\n")
		return
	}
	chk.Ints(tst, "steps", o.Steps, []int{0, 3, 6, 9, 10})

	// final step not duplicated when already written
	o2 := NewCadence(2)
	for idx := 0; idx <= 4; idx++ {
		o2.StepAccepted(idx)
	}
	if o2.Last(4) {
		tst.Errorf("final step already on the interval must not be written twice\n")
		return
	}
	chk.Ints(tst, "steps2", o2.Steps, []int{0, 2, 4})
}

func Test_cadence02(tst *testing.T) {

	//verbose()
	chk.PrintTitle("cadence02. every step")

	for _, interval := range []int{0, 1} {
		o := NewCadence(interval)
		for idx := 0; idx <= 3; idx++ {
			if !o.StepAccepted(idx) {
				tst.Errorf("interval %d must select every step\n", interval)
				return
			}
		}
		chk.Ints(tst, io.Sf("steps(%d)", interval), o.Steps, []int{0, 1, 2, 3})
	}
}
