// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package hkl implements the "hkl" engine (spec.md §4.5): pseudo-axes
// h, k, l, related to the real axes through R.U.B.(h,k,l)ᵀ = Q(geometry),
// where R is the sample holder's cumulative rotation, U.B is the
// Sample's orientation matrix, and Q = kf − ki. Each mode adds exactly
// one extra scalar constraint on top of the three hkl equations, closing
// the n=4 (bissector-family) write-axis system the way ele/factory.go
// closes a four-circle's degrees of freedom through its residual
// function table.
package hkl

import (
	"math"

	"github.com/cpmech/gohkl/engine"
	"github.com/cpmech/gohkl/geom"
	"github.com/cpmech/gohkl/la3"
	"github.com/cpmech/gohkl/param"
	"github.com/cpmech/gohkl/unit"
	"github.com/cpmech/gohkl/xerr"
)

// Config names the four real axes this engine drives: a vertical
// four-circle's omega/chi/phi (sample holder) and tth (detector holder).
// Diffractometers lacking one of these (e.g. kappa geometries) register
// a different engine; see the eulerians conversion in eulerians.go for
// the kappa case.
type Config struct {
	Omega, Chi, Phi, Tth string
}

func setAxes(g *geom.Geometry, names []string, x []float64) error {
	for i, n := range names {
		if err := g.AxisSet(n, x[i], unit.Default); err != nil {
			return err
		}
	}
	g.Update()
	return nil
}

// hklForward returns the current (h,k,l) of ctx.Geometry/Detector/Sample.
func hklForward(ctx *engine.Context) (la3.Vec3, error) {
	if ctx.Sample == nil {
		return la3.Vec3{}, xerr.E(xerr.NotInitialized, "hkl", "hkl engine requires a Sample")
	}
	if ctx.Detector == nil {
		return la3.Vec3{}, xerr.E(xerr.NotInitialized, "hkl", "hkl engine requires a Detector")
	}
	q := ctx.Geometry.Kf(ctx.Detector.KfDirection()).Sub(ctx.Geometry.Ki())
	return ctx.Geometry.ProjectToSampleBasis(ctx.Sample.UB(), q)
}

// NewEngine builds the hkl Engine bound to cfg's four real axes, with the
// bissector family of modes registered.
func NewEngine(cfg Config) *engine.Engine {
	pseudo := []*param.Parameter{
		param.New("h", 0, unit.RLU),
		param.New("k", 0, unit.RLU),
		param.New("l", 0, unit.RLU),
	}
	e := engine.NewEngine("hkl", pseudo, engine.DepAxes|engine.DepEnergy|engine.DepSample)
	writeAxes := []string{cfg.Omega, cfg.Chi, cfg.Phi, cfg.Tth}

	getFn := func(ctx *engine.Context) ([]float64, error) {
		v, err := hklForward(ctx)
		if err != nil {
			return nil, err
		}
		return []float64{v[0], v[1], v[2]}, nil
	}

	targets := func(ctx *engine.Context) (la3.Vec3, error) {
		h, err := ctx.Params.Get("target0")
		if err != nil {
			return la3.Vec3{}, err
		}
		k, err := ctx.Params.Get("target1")
		if err != nil {
			return la3.Vec3{}, err
		}
		l, err := ctx.Params.Get("target2")
		if err != nil {
			return la3.Vec3{}, err
		}
		return la3.Vec3{h.Value(unit.Default), k.Value(unit.Default), l.Value(unit.Default)}, nil
	}

	hklResidual := func(ctx *engine.Context, x []float64) ([]float64, float64, error) {
		if err := setAxes(ctx.Geometry, writeAxes, x); err != nil {
			return nil, 0, err
		}
		cur, err := hklForward(ctx)
		if err != nil {
			return nil, 0, err
		}
		want, err := targets(ctx)
		if err != nil {
			return nil, 0, err
		}
		return []float64{cur[0] - want[0], cur[1] - want[1], cur[2] - want[2]}, x[0], nil
	}

	e.AddMode(&engine.Mode{
		Name:         "bissector",
		ReadAxes:     writeAxes,
		WriteAxes:    writeAxes,
		Capabilities: engine.Readable | engine.Writable,
		Get:          getFn,
		Residual: func(ctx *engine.Context, x []float64) ([]float64, error) {
			r, omega, err := hklResidual(ctx, x)
			if err != nil {
				return nil, err
			}
			tth, _ := ctx.Geometry.AxisGet(writeAxes[3], unit.Default)
			return append(r, tth-2*omega), nil
		},
	})

	for _, fixedIdx := range []int{0, 1, 2} { // omega, chi, phi
		name := []string{"constant_omega", "constant_chi", "constant_phi"}[fixedIdx]
		axisIdx := fixedIdx
		e.AddMode(&engine.Mode{
			Name:         name,
			ReadAxes:     writeAxes,
			WriteAxes:    writeAxes,
			Capabilities: engine.Readable | engine.Writable,
			Get:          getFn,
			Residual: func(ctx *engine.Context, x []float64) ([]float64, error) {
				// the held value is read once, while ctx.Geometry still has
				// the reference values, and kept in ctx.Params from then on
				fixedName := "fixed_" + writeAxes[axisIdx]
				fixed, err := ctx.Params.Get(fixedName)
				if err != nil {
					v, gerr := ctx.Geometry.AxisGet(writeAxes[axisIdx], unit.Default)
					if gerr != nil {
						return nil, gerr
					}
					fixed = param.New(fixedName, v, unit.Radian)
					ctx.Params.Add(fixed)
				}
				r, _, err := hklResidual(ctx, x)
				if err != nil {
					return nil, err
				}
				return append(r, x[axisIdx]-fixed.Value(unit.Default)), nil
			},
		})
	}

	e.AddMode(&engine.Mode{
		Name:         "double_diffraction",
		ReadAxes:     writeAxes,
		WriteAxes:    writeAxes,
		Capabilities: engine.Readable | engine.Writable,
		Get:          getFn,
		Params: func() *engine.ParamBag {
			b := engine.NewParamBag()
			b.Add(param.New("h2", 0, unit.RLU))
			b.Add(param.New("k2", 0, unit.RLU))
			b.Add(param.New("l2", 0, unit.RLU))
			return b
		}(),
		// Second equation: (h2,k2,l2), rotated through the same sample
		// holder, also satisfies the Bragg/Ewald-sphere condition
		// |Q2| = |ki+kf2|, approximated here by requiring the
		// UB-transformed second reflection to have the same modulus as
		// the primary Q -- both reflections are simultaneously on the
		// same-radius sphere around the origin of reciprocal space, the
		// defining feature of simultaneous/double diffraction.
		Residual: func(ctx *engine.Context, x []float64) ([]float64, error) {
			r, _, err := hklResidual(ctx, x)
			if err != nil {
				return nil, err
			}
			h2, _ := ctx.Params.Get("h2")
			k2, _ := ctx.Params.Get("k2")
			l2, _ := ctx.Params.Get("l2")
			hkl2 := la3.Vec3{h2.Value(unit.Default), k2.Value(unit.Default), l2.Value(unit.Default)}
			q2 := ctx.Sample.UB().MulVec(hkl2)
			qLab := ctx.Geometry.Kf(ctx.Detector.KfDirection()).Sub(ctx.Geometry.Ki())
			return append(r, q2.Norm()-qLab.Norm()), nil
		},
	})

	e.AddMode(&engine.Mode{
		Name:         "psi_constant",
		ReadAxes:     writeAxes,
		WriteAxes:    writeAxes,
		Capabilities: engine.Readable | engine.Writable,
		Get:          getFn,
		Params: func() *engine.ParamBag {
			b := engine.NewParamBag()
			b.Add(param.New("psi", 0, unit.Degree))
			b.Add(param.New("ref_h", 1, unit.RLU))
			b.Add(param.New("ref_k", 0, unit.RLU))
			b.Add(param.New("ref_l", 0, unit.RLU))
			return b
		}(),
		// Fixes the azimuthal angle (psi) of a chosen reference vector
		// around Q, closing the system the same way tth-2*omega closes
		// bissector.
		Residual: func(ctx *engine.Context, x []float64) ([]float64, error) {
			r, _, err := hklResidual(ctx, x)
			if err != nil {
				return nil, err
			}
			want, _ := ctx.Params.Get("psi")
			refH, _ := ctx.Params.Get("ref_h")
			refK, _ := ctx.Params.Get("ref_k")
			refL, _ := ctx.Params.Get("ref_l")
			ref := la3.Vec3{refH.Value(unit.Default), refK.Value(unit.Default), refL.Value(unit.Default)}
			q := ctx.Geometry.Kf(ctx.Detector.KfDirection()).Sub(ctx.Geometry.Ki())
			psi, err := azimuthAround(q, ctx.Sample.UB().MulVec(ref))
			if err != nil {
				return nil, err
			}
			return append(r, psi-want.Value(unit.Default)), nil
		},
	})

	surfaceNormalParams := func(nz float64) *engine.ParamBag {
		b := engine.NewParamBag()
		b.Add(param.New("normal_x", 0, unit.RLU))
		b.Add(param.New("normal_y", 0, unit.RLU))
		b.Add(param.New("normal_z", nz, unit.RLU))
		return b
	}
	emergenceAngle := func(ctx *engine.Context) (float64, error) {
		n := la3.Vec3{
			mustGet(ctx, "normal_x"),
			mustGet(ctx, "normal_y"),
			mustGet(ctx, "normal_z"),
		}
		rotated := la3.RotateVec3(ctx.Geometry.Holders[0].Q, n.Normalized())
		kf := ctx.Geometry.Kf(ctx.Detector.KfDirection()).Normalized()
		return math.Asin(clamp(kf.Dot(rotated))), nil
	}

	emergenceFixedParams := surfaceNormalParams(1)
	emergenceFixedParams.Add(param.New("alpha_e", 0, unit.Degree))
	e.AddMode(&engine.Mode{
		Name:         "emergence_fixed",
		ReadAxes:     writeAxes,
		WriteAxes:    writeAxes,
		Capabilities: engine.Readable | engine.Writable,
		Get:          getFn,
		Params:       emergenceFixedParams,
		// Fourth equation: the emergence angle α_e equals a fixed target
		// value, the surface-sensitive-diffraction analogue of
		// constant_omega/chi/phi.
		Residual: func(ctx *engine.Context, x []float64) ([]float64, error) {
			r, _, err := hklResidual(ctx, x)
			if err != nil {
				return nil, err
			}
			alphaE, err := emergenceAngle(ctx)
			if err != nil {
				return nil, err
			}
			fixed, _ := ctx.Params.Get("alpha_e")
			return append(r, alphaE-fixed.Value(unit.Default)), nil
		},
	})

	e.AddMode(&engine.Mode{
		Name:         "reflectivity",
		ReadAxes:     writeAxes,
		WriteAxes:    writeAxes,
		Capabilities: engine.Readable | engine.Writable,
		Get:          getFn,
		Params:       surfaceNormalParams(1),
		// Fourth equation: specular reflectivity condition, incidence
		// equals emergence (α_i = α_e) about the surface normal.
		Residual: func(ctx *engine.Context, x []float64) ([]float64, error) {
			r, _, err := hklResidual(ctx, x)
			if err != nil {
				return nil, err
			}
			n := la3.Vec3{mustGet(ctx, "normal_x"), mustGet(ctx, "normal_y"), mustGet(ctx, "normal_z")}
			rotated := la3.RotateVec3(ctx.Geometry.Holders[0].Q, n.Normalized())
			alphaI := math.Asin(clamp(ctx.Geometry.Ki().Normalized().Dot(rotated)))
			alphaE, err := emergenceAngle(ctx)
			if err != nil {
				return nil, err
			}
			return append(r, alphaE-alphaI), nil
		},
	})

	return e
}

func mustGet(ctx *engine.Context, name string) float64 {
	p, err := ctx.Params.Get(name)
	if err != nil {
		return 0
	}
	return p.Value(unit.Default)
}

func clamp(v float64) float64 {
	if v > 1 {
		return 1
	}
	if v < -1 {
		return -1
	}
	return v
}

// azimuthAround returns the signed angle of v's component perpendicular
// to axis, measured from an arbitrary but fixed perpendicular reference,
// used by psi_constant to express "the angle of a reference vector
// around Q" (spec.md §4.5).
func azimuthAround(axis, v la3.Vec3) (float64, error) {
	n := axis.Normalized()
	vPerp := v.Sub(n.Scale(v.Dot(n)))
	if vPerp.Norm() < 1e-12 {
		return 0, xerr.E(xerr.Degenerate, "psi_constant", "reference vector is parallel to Q")
	}
	ref := la3.Vec3{0, 0, 1}
	if math.Abs(n.Dot(ref)) > 0.999 {
		ref = la3.Vec3{0, 1, 0}
	}
	e1 := ref.Sub(n.Scale(ref.Dot(n))).Normalized()
	e2 := n.Cross(e1)
	return math.Atan2(vPerp.Dot(e2), vPerp.Dot(e1)), nil
}
