// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package solver

import (
	"testing"

	"github.com/cpmech/gosl/chk"
)

func TestSolveSingleEquation(tst *testing.T) {
	SeedGlobalRNG(4321)
	residual := func(x []float64) ([]float64, error) {
		return []float64{x[0]*x[0] - 4}, nil
	}
	axes := []Axis{{Min: 0, Max: 10}}
	roots, err := Solve([]float64{1}, axes, residual, DefaultOptions())
	if err != nil {
		tst.Fatalf("unexpected error: %v", err)
	}
	if len(roots) == 0 {
		tst.Fatal("expected at least one root")
	}
	chk.Scalar(tst, "x", 1e-6, roots[0][0], 2)
}

func TestSolveNoSolutionIsEmptyNotError(tst *testing.T) {
	SeedGlobalRNG(1)
	residual := func(x []float64) ([]float64, error) {
		return []float64{x[0]*x[0] + 1}, nil // never zero for real x
	}
	axes := []Axis{{Min: -10, Max: 10}}
	opts := DefaultOptions()
	opts.MaxRestarts = 3
	roots, err := Solve([]float64{0}, axes, residual, opts)
	if err != nil {
		tst.Fatalf("expected no error, got %v", err)
	}
	if len(roots) != 0 {
		tst.Fatalf("expected empty solution list, got %d", len(roots))
	}
}
