// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package hkl

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

func TestAzimuthAroundRejectsParallelVector(t *testing.T) {
	axis := la3.Vec3{0, 0, 1}
	if _, err := azimuthAround(axis, la3.Vec3{0, 0, 2}); err == nil {
		t.Fatalf("expected a degenerate error for a reference vector parallel to the axis")
	}
}

func TestAzimuthAroundOrthogonalVectors(t *testing.T) {
	axis := la3.Vec3{0, 0, 1}
	a0, err := azimuthAround(axis, la3.Vec3{1, 0, 0})
	if err != nil {
		t.Fatalf("azimuthAround: %v", err)
	}
	a1, err := azimuthAround(axis, la3.Vec3{0, 1, 0})
	if err != nil {
		t.Fatalf("azimuthAround: %v", err)
	}
	diff := math.Abs(a1 - a0)
	if diff > math.Pi {
		diff = 2*math.Pi - diff
	}
	if math.Abs(diff-math.Pi/2) > 1e-9 {
		t.Fatalf("expected a quarter-turn between perpendicular vectors, got %g rad", diff)
	}
}

func TestClamp(t *testing.T) {
	if clamp(2) != 1 {
		t.Fatalf("clamp(2) = %g, want 1", clamp(2))
	}
	if clamp(-2) != -1 {
		t.Fatalf("clamp(-2) = %g, want -1", clamp(-2))
	}
	if clamp(0.5) != 0.5 {
		t.Fatalf("clamp(0.5) = %g, want 0.5", clamp(0.5))
	}
}

// TestKappaEulerRoundTrip checks that eulerToKappa's two returned
// triplets both map back to the original (omega,chi,phi) under
// kappaToEuler, for a chi value safely away from the chi=0 singularity.
func TestKappaEulerRoundTrip(t *testing.T) {
	alpha := DefaultAlpha
	omega := 12 * math.Pi / 180
	chi := 30 * math.Pi / 180
	phi := -8 * math.Pi / 180

	triplets, err := eulerToKappa(omega, chi, phi, alpha)
	if err != nil {
		t.Fatalf("eulerToKappa: %v", err)
	}
	if len(triplets) != 2 {
		t.Fatalf("expected exactly 2 kappa triplets, got %d", len(triplets))
	}
	for _, tr := range triplets {
		gotOmega, gotChi, gotPhi := kappaToEuler(tr[0], tr[1], tr[2], alpha)
		if math.Abs(gotOmega-omega) > 1e-9 || math.Abs(gotChi-chi) > 1e-9 || math.Abs(gotPhi-phi) > 1e-9 {
			t.Fatalf("round trip mismatch: got (%g,%g,%g), want (%g,%g,%g)", gotOmega, gotChi, gotPhi, omega, chi, phi)
		}
	}
}

// TestEulerToKappaUnreachableChi checks the NoSolution (nil,nil) contract
// for a chi magnitude beyond what the fixed alpha can reach.
func TestEulerToKappaUnreachableChi(t *testing.T) {
	alpha := 1 * math.Pi / 180 // a very small kappa angle narrows the reachable chi range
	triplets, err := eulerToKappa(0, math.Pi, 0, alpha)
	if err != nil {
		t.Fatalf("eulerToKappa: %v", err)
	}
	if triplets != nil {
		t.Fatalf("expected no solution for an unreachable chi, got %v", triplets)
	}
}

// TestBissectorConstraint checks the defining tth=2*omega invariant of
// the bissector mode holds for every accepted solution (spec.md §4.5).
func TestBissectorConstraint(t *testing.T) {
	solver.SeedGlobalRNG(7)
	g := geom.New(geom.Descriptor{
		Name:      "E4CV-test",
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
	g.Update()

	lat, err := xray.NewLattice(0.54, 0.54, 0.54, math.Pi/2, math.Pi/2, math.Pi/2)
	if err != nil {
		t.Fatalf("NewLattice: %v", err)
	}
	s := xray.NewSample("cubic", lat)
	d := xray.New0D()

	eng := NewEngine(Config{Omega: "omega", Chi: "chi", Phi: "phi", Tth: "tth"})
	el := engine.NewEngineList(g, d, s)
	el.AddEngine(eng)
	if err := eng.CurrentModeSet("bissector"); err != nil {
		t.Fatalf("CurrentModeSet: %v", err)
	}

	sols, err := eng.PseudoAxisValuesSet([]float64{1, 0, 0.3}, solver.DefaultOptions())
	if err != nil {
		t.Fatalf("PseudoAxisValuesSet: %v", err)
	}
	if sols.Size() == 0 {
		t.Fatalf("expected at least one solution")
	}
	for _, item := range sols.Items() {
		omega, _ := item.Geometry().AxisGet("omega", unit.Default)
		tth, _ := item.Geometry().AxisGet("tth", unit.Default)
		if math.Abs(tth-2*omega) > 1e-6 {
			t.Fatalf("bissector invariant violated: tth=%g, omega=%g", tth, omega)
		}
	}
}
