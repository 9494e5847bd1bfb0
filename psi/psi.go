// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package psi implements the "psi" engine (spec.md §4.5): the single
// pseudo-axis psi, the angle of the current UB·(1,0,0) direction around
// Q, measured from a fixed direction perpendicular to Q (lab z projected
// off Q, or lab y when Q is nearly along z). Get requires a prior
// InitializedSet(true), but the snapshot it captures is not used in the
// computation. It is read-only: psi is reported, never solved for.
package psi

import (
	"math"

	"github.com/cpmech/gohkl/engine"
	"github.com/cpmech/gohkl/la3"
	"github.com/cpmech/gohkl/param"
	"github.com/cpmech/gohkl/unit"
	"github.com/cpmech/gohkl/xerr"
)

// Config has no fields and names no axes: Get takes Q from ctx.Geometry's
// Ki and Kf (kf direction from ctx.Detector) and the reference direction
// from ctx.Sample's UB.
type Config struct{}

// NewEngine builds the "psi" Engine. Capabilities include Initializable:
// Get fails with xerr.NotInitialized until the Engine's
// InitializedSet(true) has been called.
func NewEngine(_ Config) *engine.Engine {
	pseudo := []*param.Parameter{param.New("psi", 0, unit.Degree)}
	e := engine.NewEngine("psi", pseudo, engine.DepAxes|engine.DepSample)

	e.AddMode(&engine.Mode{
		Name:         "psi",
		Capabilities: engine.Readable | engine.Initializable,
		Get: func(ctx *engine.Context) ([]float64, error) {
			if ctx.Sample == nil || ctx.Detector == nil {
				return nil, xerr.E(xerr.NotInitialized, "psi", "psi engine requires a Sample and Detector")
			}
			q := ctx.Geometry.Kf(ctx.Detector.KfDirection()).Sub(ctx.Geometry.Ki())
			if q.Norm() < 1e-12 {
				return nil, xerr.E(xerr.Degenerate, "psi", "Q is zero; psi undefined")
			}
			ref := ctx.Sample.UB().MulVec(la3.Vec3{1, 0, 0})
			angle, err := azimuthAround(q, ref)
			if err != nil {
				return nil, err
			}
			return []float64{angle}, nil
		},
	})
	return e
}

// azimuthAround mirrors hkl.azimuthAround (the two packages compute the
// same "angle of a vector around an axis" quantity for different
// reference vectors, and neither imports the other).
func azimuthAround(axis, v la3.Vec3) (float64, error) {
	n := axis.Normalized()
	vPerp := v.Sub(n.Scale(v.Dot(n)))
	if vPerp.Norm() < 1e-12 {
		return 0, xerr.E(xerr.Degenerate, "psi", "reference vector is parallel to Q")
	}
	ref := la3.Vec3{0, 0, 1}
	if math.Abs(n.Dot(ref)) > 0.999 {
		ref = la3.Vec3{0, 1, 0}
	}
	e1 := ref.Sub(n.Scale(ref.Dot(n))).Normalized()
	e2 := n.Cross(e1)
	return math.Atan2(vPerp.Dot(e2), vPerp.Dot(e1)), nil
}
