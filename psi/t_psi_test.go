// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package psi

import (
	"math"
	"testing"

	"github.com/cpmech/gohkl/engine"
	"github.com/cpmech/gohkl/geom"
	"github.com/cpmech/gohkl/la3"
	"github.com/cpmech/gohkl/unit"
	"github.com/cpmech/gohkl/xray"
)

func bentGeometry(t *testing.T, tthDeg float64) (*geom.Geometry, *xray.Detector, *xray.Sample) {
	t.Helper()
	g := geom.New(geom.Descriptor{
		Name:      "psi-test",
		AxisNames: []string{"omega", "chi", "phi", "tth"},
	})
	sample := g.AddHolder()
	detector := g.AddHolder()
	iOmega := g.AddRotation("omega", la3.Vec3{0, -1, 0}, la3.Vec3{}, -math.Pi, math.Pi, unit.Degree)
	iChi := g.AddRotation("chi", la3.Vec3{-1, 0, 0}, la3.Vec3{}, -math.Pi, math.Pi, unit.Degree)
	iPhi := g.AddRotation("phi", la3.Vec3{0, -1, 0}, la3.Vec3{}, -math.Pi, math.Pi, unit.Degree)
	iTth := g.AddRotation("tth", la3.Vec3{0, -1, 0}, la3.Vec3{}, -math.Pi, math.Pi, unit.Degree)
	g.AddToHolder(sample, iOmega)
	g.AddToHolder(sample, iChi)
	g.AddToHolder(sample, iPhi)
	g.AddToHolder(detector, iTth)
	if err := g.WavelengthSet(1.54, unit.User); err != nil {
		t.Fatalf("WavelengthSet: %v", err)
	}
	if err := g.AxisSet("tth", tthDeg*math.Pi/180, unit.Default); err != nil {
		t.Fatalf("AxisSet: %v", err)
	}
	g.Update()

	lat, err := xray.NewLattice(0.54, 0.54, 0.54, math.Pi/2, math.Pi/2, math.Pi/2)
	if err != nil {
		t.Fatalf("NewLattice: %v", err)
	}
	s := xray.NewSample("cubic", lat)
	return g, xray.New0D(), s
}

// TestPsiRequiresInitialized checks psi's Initializable contract: Get
// fails with xerr.NotInitialized until InitializedSet(true) has run.
func TestPsiRequiresInitialized(t *testing.T) {
	g, d, s := bentGeometry(t, 60)
	e := NewEngine(Config{})
	el := engine.NewEngineList(g, d, s)
	el.AddEngine(e)

	if err := e.Get(); err == nil {
		t.Fatalf("expected NotInitialized before InitializedSet(true)")
	}
	if err := e.InitializedSet(true); err != nil {
		t.Fatalf("InitializedSet: %v", err)
	}
	if err := e.Get(); err != nil {
		t.Fatalf("Get after InitializedSet(true): %v", err)
	}
}

// TestPsiRejectsZeroQ checks the Degenerate contract when ki and kf
// coincide (tth=0, so Q=0).
func TestPsiRejectsZeroQ(t *testing.T) {
	g, d, s := bentGeometry(t, 0)
	e := NewEngine(Config{})
	el := engine.NewEngineList(g, d, s)
	el.AddEngine(e)
	if err := e.InitializedSet(true); err != nil {
		t.Fatalf("InitializedSet: %v", err)
	}
	if err := e.Get(); err == nil {
		t.Fatalf("expected a Degenerate error for Q=0")
	}
}
