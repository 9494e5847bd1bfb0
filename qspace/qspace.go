// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package qspace implements the "q", "q2" and "qper_qpar" engines
// (spec.md §4.5): momentum-transfer pseudo-axes derived directly from
// ki/kf, with no dependency on the Sample's orientation.
package qspace

import (
	"math"

	"github.com/cpmech/gohkl/engine"
	"github.com/cpmech/gohkl/la3"
	"github.com/cpmech/gohkl/param"
	"github.com/cpmech/gohkl/unit"
	"github.com/cpmech/gohkl/xerr"
)

// Config names the single real write-axis this family drives directly
// (the detector-holder's 2θ axis) plus, for qper_qpar, the sample
// surface normal in the sample's local frame.
type Config struct {
	Tth           string
	SurfaceNormal la3.Vec3 // sample-local frame; rotated by Holders[0].Q
}

func qLab(ctx *engine.Context) (la3.Vec3, error) {
	if ctx.Detector == nil {
		return la3.Vec3{}, xerr.E(xerr.NotInitialized, "qspace", "requires a Detector")
	}
	return ctx.Geometry.Kf(ctx.Detector.KfDirection()).Sub(ctx.Geometry.Ki()), nil
}

// qMagnitudeSigned implements spec.md §4.5's q convention: magnitude
// q_max·sin(θ) with θ = ∠(ki,kf)/2, negated when kf's lab-frame y or z
// component is negative (an explicit, preserved-as-is convention per
// spec.md §9, not a derivation).
func qMagnitudeSigned(ctx *engine.Context) (float64, la3.Vec3, error) {
	if ctx.Detector == nil {
		return 0, la3.Vec3{}, xerr.E(xerr.NotInitialized, "qspace", "requires a Detector")
	}
	ki := ctx.Geometry.Ki()
	kfDir := ctx.Detector.KfDirection()
	kf := ctx.Geometry.Kf(kfDir)
	cosTheta2 := ki.Normalized().Dot(kf.Normalized())
	if cosTheta2 > 1 {
		cosTheta2 = 1
	} else if cosTheta2 < -1 {
		cosTheta2 = -1
	}
	theta := math.Acos(cosTheta2) / 2
	qMax := 2 * ki.Norm()
	mag := qMax * math.Sin(theta)
	if kf[1] < 0 || kf[2] < 0 {
		mag = -mag
	}
	return mag, kf, nil
}

// NewQEngine builds the single-pseudo-axis "q" engine.
func NewQEngine(cfg Config) *engine.Engine {
	pseudo := []*param.Parameter{param.New("q", 0, unit.InverseNanometer)}
	e := engine.NewEngine("q", pseudo, engine.DepAxes|engine.DepEnergy)
	e.AddMode(&engine.Mode{
		Name:         "q",
		ReadAxes:     []string{cfg.Tth},
		WriteAxes:    []string{cfg.Tth},
		Capabilities: engine.Readable | engine.Writable,
		Get: func(ctx *engine.Context) ([]float64, error) {
			q, _, err := qMagnitudeSigned(ctx)
			return []float64{q}, err
		},
		Residual: func(ctx *engine.Context, x []float64) ([]float64, error) {
			if err := ctx.Geometry.AxisSet(cfg.Tth, x[0], unit.Default); err != nil {
				return nil, err
			}
			ctx.Geometry.Update()
			q, _, err := qMagnitudeSigned(ctx)
			if err != nil {
				return nil, err
			}
			target, _ := ctx.Params.Get("target0")
			return []float64{q - target.Value(unit.Default)}, nil
		},
	})
	return e
}

// NewQ2Engine builds the two-pseudo-axis "q2" engine: q plus alpha, the
// atan2(kf_z, kf_y) azimuth of kf's projection on the yOz plane.
func NewQ2Engine(cfg Config) *engine.Engine {
	pseudo := []*param.Parameter{
		param.New("q", 0, unit.InverseNanometer),
		param.New("alpha", 0, unit.Degree),
	}
	e := engine.NewEngine("q2", pseudo, engine.DepAxes|engine.DepEnergy)
	e.AddMode(&engine.Mode{
		Name:         "q2",
		ReadAxes:     []string{cfg.Tth},
		WriteAxes:    []string{cfg.Tth},
		Capabilities: engine.Readable | engine.Writable,
		Get: func(ctx *engine.Context) ([]float64, error) {
			q, kf, err := qMagnitudeSigned(ctx)
			if err != nil {
				return nil, err
			}
			return []float64{q, math.Atan2(kf[2], kf[1])}, nil
		},
		Residual: func(ctx *engine.Context, x []float64) ([]float64, error) {
			if err := ctx.Geometry.AxisSet(cfg.Tth, x[0], unit.Default); err != nil {
				return nil, err
			}
			ctx.Geometry.Update()
			q, _, err := qMagnitudeSigned(ctx)
			if err != nil {
				return nil, err
			}
			target, _ := ctx.Params.Get("target0")
			return []float64{q - target.Value(unit.Default)}, nil
		},
	})
	return e
}

// NewQperQparEngine builds the "qper_qpar" engine: Q decomposed into a
// component along the sample surface normal (rotated with the sample
// holder) and an into-plane component, signed by the scalar products'
// signbit (spec.md §4.5).
func NewQperQparEngine(cfg Config) *engine.Engine {
	pseudo := []*param.Parameter{
		param.New("qper", 0, unit.InverseNanometer),
		param.New("qpar", 0, unit.InverseNanometer),
	}
	e := engine.NewEngine("qper_qpar", pseudo, engine.DepAxes|engine.DepEnergy)
	e.AddMode(&engine.Mode{
		Name:         "qper_qpar",
		ReadAxes:     []string{cfg.Tth},
		WriteAxes:    []string{cfg.Tth},
		Capabilities: engine.Readable | engine.Writable,
		Get: func(ctx *engine.Context) ([]float64, error) {
			qper, qpar, err := decompose(ctx, cfg.SurfaceNormal)
			return []float64{qper, qpar}, err
		},
		Residual: func(ctx *engine.Context, x []float64) ([]float64, error) {
			if err := ctx.Geometry.AxisSet(cfg.Tth, x[0], unit.Default); err != nil {
				return nil, err
			}
			ctx.Geometry.Update()
			qper, _, err := decompose(ctx, cfg.SurfaceNormal)
			if err != nil {
				return nil, err
			}
			target, _ := ctx.Params.Get("target0")
			return []float64{qper - target.Value(unit.Default)}, nil
		},
	})
	return e
}

func decompose(ctx *engine.Context, normalLocal la3.Vec3) (qper, qpar float64, err error) {
	q, err := qLab(ctx)
	if err != nil {
		return 0, 0, err
	}
	n := la3.RotateVec3(ctx.Geometry.Holders[0].Q, normalLocal.Normalized())
	perp := q.Dot(n)
	parVec := q.Sub(n.Scale(perp))
	par := parVec.Norm()
	if parVec.Dot(la3.Vec3{0, 1, 0}) < 0 {
		par = -par
	}
	return perp, par, nil
}
