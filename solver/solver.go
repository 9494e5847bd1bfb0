// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package solver

import (
	"math"

	"github.com/cpmech/gosl/num"
	"github.com/cpmech/gosl/rnd"

	"github.com/cpmech/gohkl"
	"github.com/cpmech/gohkl/la3"
	"github.com/cpmech/gohkl/xerr"
)

// Residual is a small pure function from (x) to a residual vector: no
// hidden mutable state besides the solver's own workspace, per spec.md
// §9 design notes.
type Residual func(x []float64) ([]float64, error)

// Axis describes one write-axis's bounds and kind, everything the
// solver needs to canonicalize and permute a converged root without
// reaching back into geom.Parameter.
type Axis struct {
	Min, Max   float64
	IsRotation bool
	// Permutable is true iff IsRotation and Max-Min > 2π: multiple
	// 2π-shifted representatives may coexist (spec.md glossary).
	Permutable bool
}

// Solve runs the multi-root solve described by spec.md §4.6 steps 1-5:
// seed from x0, hybrid Newton-like iteration to convergence with random
// restarts, canonicalize rotations, then expand each converged root into
// every permutable 2π-shifted representative still within bounds.
//
// It returns zero or more distinct solutions (each a full write-axis
// vector); an empty, non-error result is the normal NoSolution outcome
// of spec.md §7, not a failure.
func Solve(x0 []float64, axes []Axis, residual Residual, opts Options) ([][]float64, error) {
	n := len(x0)
	if len(axes) != n {
		return nil, xerr.E(xerr.BadInput, "", "solver: %d axes but seed has %d components", len(axes), n)
	}

	root, found, err := tryFrom(x0, n, axes, residual, opts)
	if err != nil {
		return nil, err
	}

	restarts, attempts := 0, 0
	for !found && restarts < opts.MaxRestarts && attempts < opts.MaxRestarts*3 {
		attempts++
		seed := make([]float64, n)
		for i, a := range axes {
			lo, hi := a.Min, a.Max
			if a.IsRotation && a.Permutable {
				// restrict the restart seed to one 2π period to keep the
				// underlying solver's search local; multiplicity expansion
				// below recovers the other periods.
				hi = lo + 2*math.Pi
				if hi > a.Max {
					hi = a.Max
				}
			}
			seed[i] = rnd.Float64(lo, hi)
		}
		restarts++
		root, found, err = tryFrom(seed, n, axes, residual, opts)
		if err != nil {
			return nil, err
		}
	}
	if restarts > 0 {
		gohkl.Logger().Debug().Int("restarts", restarts).Bool("found", found).Msg("solver: random restarts")
	}

	if !found {
		return nil, nil // NoSolution: empty list, not an error (spec.md §7)
	}
	return expandMultiplicity(root, axes), nil
}

// tryFrom runs one hybrid Newton-like solve starting at seed, then
// validates and canonicalizes the result against axes's bounds.
func tryFrom(seed []float64, n int, axes []Axis, residual Residual, opts Options) (x []float64, ok bool, err error) {
	x = append([]float64{}, seed...)
	var nls num.NlSolver
	ffcn := func(fx, xv []float64) error {
		r, ferr := residual(xv)
		if ferr != nil {
			return ferr
		}
		copy(fx, r)
		return nil
	}
	nls.Init(n, ffcn, nil, nil, false, true, map[string]float64{"lSearch": 0})
	nls.SetTols(opts.Tol, opts.Tol, 1e-14, num.EPS)
	if opts.MaxIter > 0 {
		nls.MaxIt = opts.MaxIter
	}
	if serr := nls.Solve(x, true); serr != nil {
		return nil, false, nil // failed to converge from this seed; caller may restart
	}
	for _, v := range x {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return nil, false, nil
		}
	}
	for i, a := range axes {
		if a.IsRotation {
			x[i] = la3.AngleRestrictPos(x[i])
			lifted, okLift := liftIntoRange(x[i], a.Min, a.Max)
			if !okLift {
				return nil, false, nil
			}
			x[i] = lifted
		} else if x[i] < a.Min || x[i] > a.Max {
			return nil, false, nil
		}
	}
	return x, true, nil
}

func liftIntoRange(v, min, max float64) (float64, bool) {
	base := min + math.Mod(v-min, 2*math.Pi)
	if base < min {
		base += 2 * math.Pi
	}
	if base > max && base-2*math.Pi >= min {
		base -= 2 * math.Pi
	}
	if base < min || base > max {
		return 0, false
	}
	return base, true
}

// expandMultiplicity enumerates every 2π-shifted representative of each
// permutable write-axis of root that still falls inside its bounds,
// emitting each distinct combination (spec.md §4.6 step 5).
func expandMultiplicity(root []float64, axes []Axis) [][]float64 {
	choices := make([][]float64, len(axes))
	for i, a := range axes {
		if !a.Permutable {
			choices[i] = []float64{root[i]}
			continue
		}
		var vals []float64
		for k := -4; k <= 4; k++ {
			v := root[i] + float64(k)*2*math.Pi
			if v >= a.Min && v <= a.Max {
				vals = append(vals, v)
			}
		}
		if len(vals) == 0 {
			vals = []float64{root[i]}
		}
		choices[i] = vals
	}
	var out [][]float64
	var rec func(i int, cur []float64)
	rec = func(i int, cur []float64) {
		if i == len(choices) {
			out = append(out, append([]float64{}, cur...))
			return
		}
		for _, v := range choices[i] {
			rec(i+1, append(cur, v))
		}
	}
	rec(0, nil)
	return out
}
