// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package engine

// Mode is a choice of which axes the solver may vary (WriteAxes), which
// axes it reads as fixed context (ReadAxes), the residual system that
// makes the problem square, and any mode-local parameters (spec.md §3).
//
// At most one of Residual or ClosedForm is set: auto modes (the hkl
// modes, q, q2, qper_qpar) go through solver.Solve via Residual;
// analytical writable modes (tth, tth2, eulerians) compute their answer
// directly via ClosedForm, with no iterative solve (spec.md §4.4
// dispatch); read-only modes (psi, incidence/emergence) set neither.
type Mode struct {
	Name      string
	ReadAxes  []string
	WriteAxes []string
	Params    *ParamBag

	Capabilities Capabilities

	// Get computes the pseudo-axis values from the current (forward)
	// state of ctx.Geometry.
	Get func(ctx *Context) ([]float64, error)

	// Residual computes the solver's residual vector for a trial
	// write-axis vector x, given the pseudo-axis targets already copied
	// into ctx.Params under reserved names by the Engine (see
	// targetNames in engine.go). |Residual's output| == len(WriteAxes),
	// the square-system invariant of spec.md §3.
	Residual func(ctx *Context, x []float64) ([]float64, error)

	// ClosedForm computes 0 or more write-axis vectors directly, with no
	// iterative solve, for modes that admit an exact inversion.
	ClosedForm func(ctx *Context) ([][]float64, error)
}

// IsAuto reports whether this mode dispatches to the generic solver.
func (m *Mode) IsAuto() bool { return m.Residual != nil }
