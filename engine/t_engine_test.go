// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package engine

import (
	"math"
	"testing"

	"github.com/cpmech/gohkl/geom"
	"github.com/cpmech/gohkl/la3"
	"github.com/cpmech/gohkl/param"
	"github.com/cpmech/gohkl/solver"
	"github.com/cpmech/gohkl/unit"
)

// twoAxisGeometry builds a toy single-holder Geometry with two rotation
// axes "a" and "b" around the Z and Y axes, in lieu of a full
// diffractometer catalog.
func twoAxisGeometry() *geom.Geometry {
	g := geom.New(geom.Descriptor{Name: "toy", AxisNames: []string{"a", "b"}})
	h := g.AddHolder()
	ia := g.AddRotation("a", la3.Vec3{0, 0, 1}, la3.Vec3{}, -math.Pi, math.Pi, unit.Degree)
	ib := g.AddRotation("b", la3.Vec3{0, 1, 0}, la3.Vec3{}, -math.Pi, math.Pi, unit.Degree)
	g.AddToHolder(h, ia)
	g.AddToHolder(h, ib)
	g.Update()
	return g
}

// TestEngineGetAndSetRoundTrip exercises an auto-mode engine with a
// trivial residual (pseudo-axis = a+b, squared up with a second equation
// a=b) and checks that Get after a PseudoAxisValuesSet-produced solution
// reproduces the requested value.
func TestEngineGetAndSetRoundTrip(t *testing.T) {
	g := twoAxisGeometry()
	el := NewEngineList(g, nil, nil)

	pseudo := param.New("sum", 0, unit.Radian)
	e := NewEngine("toy", []*param.Parameter{pseudo}, DepAxes)
	mode := &Mode{
		Name:         "default",
		WriteAxes:    []string{"a", "b"},
		Capabilities: Readable | Writable,
		Get: func(ctx *Context) ([]float64, error) {
			a, _ := ctx.Geometry.AxisGet("a", unit.Default)
			b, _ := ctx.Geometry.AxisGet("b", unit.Default)
			return []float64{a + b}, nil
		},
		Residual: func(ctx *Context, x []float64) ([]float64, error) {
			target, _ := ctx.Params.Get("target0")
			return []float64{x[0] + x[1] - target.Value(unit.Default), x[0] - x[1]}, nil
		},
	}
	e.AddMode(mode)
	el.AddEngine(e)

	sols, err := e.PseudoAxisValuesSet([]float64{1.0}, solver.DefaultOptions())
	if err != nil {
		t.Fatalf("PseudoAxisValuesSet failed: %v", err)
	}
	if sols.Size() == 0 {
		t.Fatalf("expected at least one solution")
	}

	item := sols.Items()[0]
	a, _ := item.Geometry().AxisGet("a", unit.Default)
	b, _ := item.Geometry().AxisGet("b", unit.Default)
	if math.Abs((a+b)-1.0) > 1e-6 {
		t.Fatalf("a+b = %g, want 1.0", a+b)
	}

	// the original bound Geometry must be untouched
	a0, _ := g.AxisGet("a", unit.Default)
	b0, _ := g.AxisGet("b", unit.Default)
	if a0 != 0 || b0 != 0 {
		t.Fatalf("PseudoAxisValuesSet mutated the bound geometry: a=%g b=%g", a0, b0)
	}
}

// TestEngineNotWritableRejected checks that a read-only mode refuses
// PseudoAxisValuesSet.
func TestEngineNotWritableRejected(t *testing.T) {
	g := twoAxisGeometry()
	el := NewEngineList(g, nil, nil)
	pseudo := param.New("sum", 0, unit.Radian)
	e := NewEngine("toy", []*param.Parameter{pseudo}, DepAxes)
	e.AddMode(&Mode{
		Name:         "ro",
		Capabilities: Readable,
		Get: func(ctx *Context) ([]float64, error) {
			return []float64{0}, nil
		},
	})
	el.AddEngine(e)

	if _, err := e.PseudoAxisValuesSet([]float64{1}, solver.DefaultOptions()); err == nil {
		t.Fatalf("expected an error setting a read-only mode")
	}
}
