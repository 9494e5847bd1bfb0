// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package tth implements the "tth"/"tth2" engines (spec.md §4.5): the
// closed-form angle between ki and kf, with no dependency on the Sample.
package tth

import (
	"math"

	"github.com/cpmech/gohkl/engine"
	"github.com/cpmech/gohkl/la3"
	"github.com/cpmech/gohkl/param"
	"github.com/cpmech/gohkl/unit"
	"github.com/cpmech/gohkl/xerr"
)

// Config names the single real write-axis (2θ) this engine drives.
type Config struct {
	Tth string
}

func angle(ctx *engine.Context) (float64, la3.Vec3, error) {
	if ctx.Detector == nil {
		return 0, la3.Vec3{}, xerr.E(xerr.NotInitialized, "tth", "requires a Detector")
	}
	ki := ctx.Geometry.Ki()
	kf := ctx.Geometry.Kf(ctx.Detector.KfDirection())
	c := ki.Normalized().Dot(kf.Normalized())
	if c > 1 {
		c = 1
	} else if c < -1 {
		c = -1
	}
	return math.Acos(c), kf, nil
}

// NewEngine builds the "tth" engine (single pseudo-axis, closed form).
// ClosedForm returns the requested tth target verbatim as the tth axis
// value: it takes the bound tth axis to equal the ki/kf angle and does
// not solve an angle-to-axis relation.
func NewEngine(cfg Config) *engine.Engine {
	pseudo := []*param.Parameter{param.New("tth", 0, unit.Degree)}
	e := engine.NewEngine("tth", pseudo, engine.DepAxes)
	e.AddMode(&engine.Mode{
		Name:         "default",
		ReadAxes:     []string{cfg.Tth},
		WriteAxes:    []string{cfg.Tth},
		Capabilities: engine.Readable | engine.Writable,
		Get: func(ctx *engine.Context) ([]float64, error) {
			a, _, err := angle(ctx)
			return []float64{a}, err
		},
		ClosedForm: func(ctx *engine.Context) ([][]float64, error) {
			target, err := ctx.Params.Get("target0")
			if err != nil {
				return nil, err
			}
			return [][]float64{{target.Value(unit.Default)}}, nil
		},
	})
	return e
}

// NewEngine2 builds the "tth2" engine: tth plus the alpha azimuth of kf
// on the detector yOz plane, mirroring qspace's q2.
func NewEngine2(cfg Config) *engine.Engine {
	pseudo := []*param.Parameter{
		param.New("tth", 0, unit.Degree),
		param.New("alpha", 0, unit.Degree),
	}
	e := engine.NewEngine("tth2", pseudo, engine.DepAxes)
	e.AddMode(&engine.Mode{
		Name:         "default",
		ReadAxes:     []string{cfg.Tth},
		WriteAxes:    []string{cfg.Tth},
		Capabilities: engine.Readable | engine.Writable,
		Get: func(ctx *engine.Context) ([]float64, error) {
			a, kf, err := angle(ctx)
			if err != nil {
				return nil, err
			}
			return []float64{a, math.Atan2(kf[2], kf[1])}, nil
		},
		ClosedForm: func(ctx *engine.Context) ([][]float64, error) {
			target, err := ctx.Params.Get("target0")
			if err != nil {
				return nil, err
			}
			return [][]float64{{target.Value(unit.Default)}}, nil
		},
	})
	return e
}
