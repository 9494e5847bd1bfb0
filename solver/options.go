// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package solver is the numerical heart of gohkl (spec.md §4.6): given a
// Mode's residual functions and a seed, it performs a hybrid multi-root
// solve with random restarts, lifts converged rotations into their
// canonical range, and expands each root into every 2π-shifted
// representative still inside its axis bounds. The nonlinear solve
// itself is gosl/num.NlSolver, used exactly as msolid/hyperelast1.go
// uses it; random restarts draw from gosl/rnd, the same process-wide
// RNG the teacher's stochastic-parameter machinery (inp/sim.go) already
// requires, reused here for a different purpose.
package solver

import "github.com/cpmech/gosl/rnd"

// Options tunes the solve: residual tolerance, iteration cap, and how
// many times to restart from a fresh random point. RestartEvery is not
// read by Solve: a restart happens only after an attempt fails to
// converge within MaxIter.
type Options struct {
	Tol          float64 `json:"tol"`
	MaxIter      int     `json:"maxIter"`
	RestartEvery int     `json:"restartEvery"`
	MaxRestarts  int     `json:"maxRestarts"`
}

// DefaultOptions mirrors the values spec.md §4.6 names: tolerance ε,
// ~1000 iterations, RestartEvery 100 (stored, not read by Solve).
func DefaultOptions() Options {
	return Options{Tol: 1e-10, MaxIter: 1000, RestartEvery: 100, MaxRestarts: 10}
}

// SeedGlobalRNG seeds the process-wide random source every solver in
// this process draws restart points from. Spec.md §5 requires this
// documented entry point for reproducible tests.
func SeedGlobalRNG(seed int64) {
	rnd.Init(int(seed))
}
