// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package incidence

import (
	"math"
	"testing"

	"github.com/cpmech/gohkl/engine"
	"github.com/cpmech/gohkl/geom"
	"github.com/cpmech/gohkl/la3"
	"github.com/cpmech/gohkl/unit"
	"github.com/cpmech/gohkl/xray"
)

func flatGeometry(t *testing.T, tthDeg float64) (*geom.Geometry, *xray.Detector) {
	t.Helper()
	g := geom.New(geom.Descriptor{
		Name:      "incidence-test",
		AxisNames: []string{"omega", "tth"},
	})
	sample := g.AddHolder()
	detector := g.AddHolder()
	iOmega := g.AddRotation("omega", la3.Vec3{0, -1, 0}, la3.Vec3{}, -math.Pi, math.Pi, unit.Degree)
	iTth := g.AddRotation("tth", la3.Vec3{0, -1, 0}, la3.Vec3{}, -math.Pi, math.Pi, unit.Degree)
	g.AddToHolder(sample, iOmega)
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

// TestIncidenceZeroOmegaGrazesTheSurface checks that with the sample
// holder untouched (omega=0) and the surface normal along z, ki (along
// x) is perpendicular to the normal, so incidence is zero.
func TestIncidenceZeroOmegaGrazesTheSurface(t *testing.T) {
	g, d := flatGeometry(t, 60)
	e := NewIncidenceEngine(Config{SurfaceNormal: la3.Vec3{0, 0, 1}})
	el := engine.NewEngineList(g, d, nil)
	el.AddEngine(e)

	if err := e.Get(); err != nil {
		t.Fatalf("Get: %v", err)
	}
	got := e.PseudoAxesValuesGet(unit.Default)
	if math.Abs(got[0]) > 1e-9 {
		t.Fatalf("expected zero incidence, got %g", got[0])
	}
}

// TestEmergenceRequiresDetector checks emergence's NotInitialized
// contract when no Detector is bound.
func TestEmergenceRequiresDetector(t *testing.T) {
	g, _ := flatGeometry(t, 60)
	e := NewEmergenceEngine(Config{SurfaceNormal: la3.Vec3{0, 0, 1}})
	el := engine.NewEngineList(g, nil, nil)
	el.AddEngine(e)

	if err := e.Get(); err == nil {
		t.Fatalf("expected an error with no Detector bound")
	}
}

func TestClampIncidence(t *testing.T) {
	if clamp(5) != 1 {
		t.Fatalf("clamp(5) = %g, want 1", clamp(5))
	}
	if clamp(-5) != -1 {
		t.Fatalf("clamp(-5) = %g, want -1", clamp(-5))
	}
}
