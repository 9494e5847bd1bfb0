// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package tth

import (
	"math"
	"testing"

	"github.com/cpmech/gohkl/engine"
	"github.com/cpmech/gohkl/geom"
	"github.com/cpmech/gohkl/la3"
	"github.com/cpmech/gohkl/solver"
	"github.com/cpmech/gohkl/unit"
	"github.com/cpmech/gohkl/xray"
)

func detectorGeometry(t *testing.T, tthDeg float64) (*geom.Geometry, *xray.Detector) {
	t.Helper()
	g := geom.New(geom.Descriptor{
		Name:      "tth-test",
		AxisNames: []string{"tth"},
	})
	detector := g.AddHolder()
	iTth := g.AddRotation("tth", la3.Vec3{0, -1, 0}, la3.Vec3{}, -math.Pi, math.Pi, unit.Degree)
	g.AddToHolder(detector, iTth)
	if err := g.WavelengthSet(1.0, unit.User); err != nil {
		t.Fatalf("WavelengthSet: %v", err)
	}
	if err := g.AxisSet("tth", tthDeg*math.Pi/180, unit.Default); err != nil {
		t.Fatalf("AxisSet: %v", err)
	}
	g.Update()
	return g, xray.New0D()
}

// TestAngleMatchesTthAxis checks that the ki/kf angle equals the tth
// axis value for a single-axis detector holder (the assumption
// NewEngine's ClosedForm relies on).
func TestAngleMatchesTthAxis(t *testing.T) {
	for _, deg := range []float64{0, 30, 90, 150} {
		g, d := detectorGeometry(t, deg)
		ctx := &engine.Context{Geometry: g, Detector: d}
		a, _, err := angle(ctx)
		if err != nil {
			t.Fatalf("angle: %v", err)
		}
		want := deg * math.Pi / 180
		if math.Abs(a-want) > 1e-6 {
			t.Fatalf("tth=%g deg: got angle %g rad, want %g rad", deg, a, want)
		}
	}
}

// TestNewEngineClosedFormRoundTrip checks that setting the tth pseudo-
// axis through the Engine returns exactly the requested target (the
// assumption documented on NewEngine that the real tth axis equals the
// ki/kf angle).
func TestNewEngineClosedFormRoundTrip(t *testing.T) {
	g, d := detectorGeometry(t, 45)
	e := NewEngine(Config{Tth: "tth"})
	el := engine.NewEngineList(g, d, nil)
	el.AddEngine(e)

	target := 37 * math.Pi / 180
	sols, err := e.PseudoAxisValuesSet([]float64{target}, solver.DefaultOptions())
	if err != nil {
		t.Fatalf("PseudoAxisValuesSet: %v", err)
	}
	if sols.Size() != 1 {
		t.Fatalf("expected exactly one solution, got %d", sols.Size())
	}
	got, err := sols.Items()[0].Geometry().AxisGet("tth", unit.Default)
	if err != nil {
		t.Fatalf("AxisGet: %v", err)
	}
	if math.Abs(got-target) > 1e-9 {
		t.Fatalf("tth = %g, want %g", got, target)
	}
}
