// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package hkl

import (
	"math"

	"github.com/cpmech/gohkl/engine"
	"github.com/cpmech/gohkl/param"
	"github.com/cpmech/gohkl/unit"
	"github.com/cpmech/gohkl/xerr"
)

// EuleriansConfig names a kappa geometry's three sample-holder real axes
// (komega, kappa, kphi) and its fixed kappa angle Alpha (radians): the
// half-angle between the kappa axis and the omega/phi axes, a mechanical
// constant of the goniometer head. 50° is the kappa angle of the K4CV/
// K6C family and is used wherever a diffractometer catalog does not
// override it.
type EuleriansConfig struct {
	KOmega, Kappa, KPhi string
	Alpha               float64
}

// DefaultAlpha is the kappa angle shared by the K4CV/K6C catalogs.
const DefaultAlpha = 50 * math.Pi / 180

// kappaToEuler converts (komega,kappa,kphi) to the conventional
// (omega,chi,phi) triplet, closed-form (no solver involved): the
// well-known kappa-geometry relation parameterized by the goniometer
// head's fixed half-angle alpha.
func kappaToEuler(komega, kappa, kphi, alpha float64) (omega, chi, phi float64) {
	chi = 2 * math.Asin(math.Sin(kappa/2)*math.Sin(alpha))
	p := math.Atan2(math.Tan(kappa/2), math.Cos(alpha))
	omega = komega + p
	phi = kphi + p
	return
}

// eulerToKappa is the algebraic inverse of kappaToEuler: given
// (omega,chi,phi) it returns every (komega,kappa,kphi) that maps back to
// it. Except on the chi=0 singularity (kappa=0, p undefined, phi/omega
// interchangeable), this is exactly two solutions, one per sign of
// kappa/2 ∈ (0,π) vs (−π,0) (spec.md §9 "eulerians degenerate").
func eulerToKappa(omega, chi, phi, alpha float64) ([][3]float64, error) {
	sinA := math.Sin(alpha)
	if math.Abs(sinA) < 1e-12 {
		return nil, xerr.E(xerr.Degenerate, "eulerians", "kappa angle alpha must not be 0 or π")
	}
	x := math.Sin(chi/2) / sinA
	if x < -1 || x > 1 {
		return nil, nil // NoSolution: chi unreachable with this alpha
	}
	base := math.Asin(x)
	var out [][3]float64
	for _, halfKappa := range []float64{base, math.Pi - base} {
		kappa := 2 * halfKappa
		p := math.Atan2(math.Tan(halfKappa), math.Cos(alpha))
		komega := omega - p
		kphi := phi - p
		out = append(out, [3]float64{komega, kappa, kphi})
	}
	return out, nil
}

// NewEuleriansEngine builds the "eulerians" Engine: pseudo-axes
// (omega,chi,phi) derived from a kappa geometry's three real axes.
func NewEuleriansEngine(cfg EuleriansConfig) *engine.Engine {
	alpha := cfg.Alpha
	if alpha == 0 {
		alpha = DefaultAlpha
	}
	pseudo := []*param.Parameter{
		param.New("omega", 0, unit.Degree),
		param.New("chi", 0, unit.Degree),
		param.New("phi", 0, unit.Degree),
	}
	e := engine.NewEngine("eulerians", pseudo, engine.DepAxes)
	realAxes := []string{cfg.KOmega, cfg.Kappa, cfg.KPhi}

	e.AddMode(&engine.Mode{
		Name:         "eulerians",
		ReadAxes:     realAxes,
		WriteAxes:    realAxes,
		Capabilities: engine.Readable | engine.Writable,
		Get: func(ctx *engine.Context) ([]float64, error) {
			komega, err := ctx.Geometry.AxisGet(cfg.KOmega, unit.Default)
			if err != nil {
				return nil, err
			}
			kappa, err := ctx.Geometry.AxisGet(cfg.Kappa, unit.Default)
			if err != nil {
				return nil, err
			}
			kphi, err := ctx.Geometry.AxisGet(cfg.KPhi, unit.Default)
			if err != nil {
				return nil, err
			}
			omega, chi, phi := kappaToEuler(komega, kappa, kphi, alpha)
			return []float64{omega, chi, phi}, nil
		},
		ClosedForm: func(ctx *engine.Context) ([][]float64, error) {
			omega, err := ctx.Params.Get("target0")
			if err != nil {
				return nil, err
			}
			chi, err := ctx.Params.Get("target1")
			if err != nil {
				return nil, err
			}
			phi, err := ctx.Params.Get("target2")
			if err != nil {
				return nil, err
			}
			triplets, err := eulerToKappa(omega.Value(unit.Default), chi.Value(unit.Default), phi.Value(unit.Default), alpha)
			if err != nil {
				return nil, err
			}
			out := make([][]float64, len(triplets))
			for i, t := range triplets {
				out[i] = []float64{t[0], t[1], t[2]}
			}
			return out, nil
		},
	})
	return e
}
