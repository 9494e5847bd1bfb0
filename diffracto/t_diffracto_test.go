// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package diffracto

import (
	"math"
	"testing"

	"github.com/cpmech/gohkl/solver"
	"github.com/cpmech/gohkl/unit"
	"github.com/cpmech/gohkl/xray"
)

func cubicSample(t *testing.T, a float64) *xray.Sample {
	t.Helper()
	lat, err := xray.NewLattice(a, a, a, math.Pi/2, math.Pi/2, math.Pi/2)
	if err != nil {
		t.Fatalf("NewLattice: %v", err)
	}
	return xray.NewSample("cubic", lat)
}

// TestE4CVBissectorRoundTrip exercises spec.md §8's invariant 1
// (get-after-set round trip) on the E4CV "hkl" engine's bissector mode.
func TestE4CVBissectorRoundTrip(t *testing.T) {
	solver.SeedGlobalRNG(1)
	g := NewE4CVGeometry()
	d := xray.New0D()
	s := cubicSample(t, 0.54)
	if err := g.WavelengthSet(1.54, unit.User); err != nil {
		t.Fatalf("WavelengthSet: %v", err)
	}
	el := NewE4CVEngines(g, d, s)

	hklEngine, err := el.EngineGet("hkl")
	if err != nil {
		t.Fatalf("EngineGet: %v", err)
	}
	if err := hklEngine.CurrentModeSet("bissector"); err != nil {
		t.Fatalf("CurrentModeSet: %v", err)
	}

	target := []float64{1, 0.1, -0.2}
	sols, err := hklEngine.PseudoAxisValuesSet(target, solver.DefaultOptions())
	if err != nil {
		t.Fatalf("PseudoAxisValuesSet: %v", err)
	}
	if sols.Size() == 0 {
		t.Fatalf("expected at least one bissector solution")
	}

	el2 := NewE4CVEngines(sols.Items()[0].Geometry(), d, s)
	hklEngine2, _ := el2.EngineGet("hkl")
	hklEngine2.CurrentModeSet("bissector")
	if err := hklEngine2.Get(); err != nil {
		t.Fatalf("Get: %v", err)
	}
	got := hklEngine2.PseudoAxesValuesGet(unit.Default)
	for i := range target {
		if math.Abs(got[i]-target[i]) > 1e-6 {
			t.Fatalf("round trip mismatch at %d: got %g, want %g", i, got[i], target[i])
		}
	}
}

// TestE4CVGGammaZeroDegeneratesToE4CV exercises the literal scenario of
// spec.md §8: E4CVG with gamma=0 behaves exactly like E4CV. The cubic
// lattice constant equals the wavelength (0.154 nm), so the (1,0,0)
// reflection sits at tth=60°.
func TestE4CVGGammaZeroDegeneratesToE4CV(t *testing.T) {
	g := NewE4CVGGeometry()
	d := xray.New0D()
	s := cubicSample(t, 0.154)
	if err := g.WavelengthSet(1.54, unit.User); err != nil {
		t.Fatalf("WavelengthSet: %v", err)
	}
	if err := g.AllAxisValuesSet([]float64{
		30 * math.Pi / 180, 0, 90 * math.Pi / 180, 60 * math.Pi / 180, 0,
	}, unit.Default); err != nil {
		t.Fatalf("AllAxisValuesSet: %v", err)
	}

	el := NewE4CVGEngines(g, d, s)
	hklEngine, _ := el.EngineGet("hkl")
	hklEngine.CurrentModeSet("bissector")
	if err := hklEngine.Get(); err != nil {
		t.Fatalf("Get: %v", err)
	}
	got := hklEngine.PseudoAxesValuesGet(unit.Default)
	want := []float64{1, 0, 0}
	for i := range want {
		if math.Abs(got[i]-want[i]) > 1e-6 {
			t.Fatalf("hkl[%d] = %g, want %g", i, got[i], want[i])
		}
	}
}

// TestK4CVEuleriansRoundTrip checks that converting (omega,chi,phi) to
// kappa angles and back recovers the original triplet, the closed-form
// analogue of spec.md §8 invariant 1 for a ClosedForm (not Residual)
// mode.
func TestK4CVEuleriansRoundTrip(t *testing.T) {
	g := NewK4CVGeometry()
	d := xray.New0D()
	s := cubicSample(t, 0.54)
	el := NewK4CVEngines(g, d, s)

	eng, err := el.EngineGet("eulerians")
	if err != nil {
		t.Fatalf("EngineGet: %v", err)
	}

	target := []float64{10 * math.Pi / 180, 90 * math.Pi / 180, -5 * math.Pi / 180}
	sols, err := eng.PseudoAxisValuesSet(target, solver.DefaultOptions())
	if err != nil {
		t.Fatalf("PseudoAxisValuesSet: %v", err)
	}
	if sols.Size() == 0 {
		t.Fatalf("expected at least one eulerians solution")
	}

	el2 := NewK4CVEngines(sols.Items()[0].Geometry(), d, s)
	eng2, _ := el2.EngineGet("eulerians")
	if err := eng2.Get(); err != nil {
		t.Fatalf("Get: %v", err)
	}
	got := eng2.PseudoAxesValuesGet(unit.Default)
	for i := range target {
		if math.Abs(got[i]-target[i]) > 1e-6 {
			t.Fatalf("eulerians round trip mismatch at %d: got %g, want %g", i, got[i], target[i])
		}
	}
}

// TestRegistryUnknownName checks the not-found contract of spec.md
// §4.7.
func TestRegistryUnknownName(t *testing.T) {
	if _, err := Get("NOPE"); err == nil {
		t.Fatalf("expected an error for an unregistered diffractometer name")
	}
}
