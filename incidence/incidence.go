// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package incidence implements the "incidence"/"emergence" engines
// (spec.md §4.5): read-only pseudo-axes giving the signed angle between
// ki (incidence) or kf (emergence) and the sample surface normal,
// rotated with the sample holder.
package incidence

import (
	"math"

	"github.com/cpmech/gohkl/engine"
	"github.com/cpmech/gohkl/la3"
	"github.com/cpmech/gohkl/param"
	"github.com/cpmech/gohkl/unit"
	"github.com/cpmech/gohkl/xerr"
)

// Config holds the sample surface normal in the sample's local frame,
// rotated by Holders[0].Q before use.
type Config struct {
	SurfaceNormal la3.Vec3
}

func rotatedNormal(ctx *engine.Context, local la3.Vec3) la3.Vec3 {
	return la3.RotateVec3(ctx.Geometry.Holders[0].Q, local.Normalized())
}

// NewIncidenceEngine builds the read-only "incidence" engine: α_i =
// asin of the signed projection of ki onto the rotated surface normal.
func NewIncidenceEngine(cfg Config) *engine.Engine {
	pseudo := []*param.Parameter{param.New("incidence", 0, unit.Degree)}
	e := engine.NewEngine("incidence", pseudo, engine.DepAxes)
	e.AddMode(&engine.Mode{
		Name:         "default",
		Capabilities: engine.Readable,
		Get: func(ctx *engine.Context) ([]float64, error) {
			n := rotatedNormal(ctx, cfg.SurfaceNormal)
			ki := ctx.Geometry.Ki().Normalized()
			s := clamp(ki.Dot(n))
			return []float64{math.Asin(s)}, nil
		},
	})
	return e
}

// NewEmergenceEngine builds the read-only "emergence" engine: α_e =
// asin of the signed projection of kf onto the rotated surface normal.
func NewEmergenceEngine(cfg Config) *engine.Engine {
	pseudo := []*param.Parameter{param.New("emergence", 0, unit.Degree)}
	e := engine.NewEngine("emergence", pseudo, engine.DepAxes)
	e.AddMode(&engine.Mode{
		Name:         "default",
		Capabilities: engine.Readable,
		Get: func(ctx *engine.Context) ([]float64, error) {
			if ctx.Detector == nil {
				return nil, xerr.E(xerr.NotInitialized, "emergence", "requires a Detector")
			}
			n := rotatedNormal(ctx, cfg.SurfaceNormal)
			kf := ctx.Geometry.Kf(ctx.Detector.KfDirection()).Normalized()
			s := clamp(kf.Dot(n))
			return []float64{math.Asin(s)}, nil
		},
	})
	return e
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
