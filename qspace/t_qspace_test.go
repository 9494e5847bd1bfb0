// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package qspace

import (
	"math"
	"testing"

	"github.com/cpmech/gohkl/engine"
	"github.com/cpmech/gohkl/geom"
	"github.com/cpmech/gohkl/la3"
	"github.com/cpmech/gohkl/unit"
	"github.com/cpmech/gohkl/xray"
)

func straightThroughGeometry(t *testing.T, tthDeg float64) (*geom.Geometry, *xray.Detector) {
	t.Helper()
	g := geom.New(geom.Descriptor{
		Name:      "qspace-test",
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

// TestQMagnitudeSignedZeroAtZeroTth checks that q vanishes when kf
// coincides with ki (tth=0).
func TestQMagnitudeSignedZeroAtZeroTth(t *testing.T) {
	g, d := straightThroughGeometry(t, 0)
	ctx := &engine.Context{Geometry: g, Detector: d}
	q, _, err := qMagnitudeSigned(ctx)
	if err != nil {
		t.Fatalf("qMagnitudeSigned: %v", err)
	}
	if math.Abs(q) > 1e-9 {
		t.Fatalf("expected q=0 at tth=0, got %g", q)
	}
}

// TestQMagnitudeSignedMaxAtStraightBack checks that |q| reaches q_max =
// 2|ki| at tth=180 degrees.
func TestQMagnitudeSignedMaxAtStraightBack(t *testing.T) {
	g, d := straightThroughGeometry(t, 180)
	ctx := &engine.Context{Geometry: g, Detector: d}
	q, _, err := qMagnitudeSigned(ctx)
	if err != nil {
		t.Fatalf("qMagnitudeSigned: %v", err)
	}
	qMax := 2 * g.Ki().Norm()
	if math.Abs(math.Abs(q)-qMax) > 1e-6 {
		t.Fatalf("expected |q|=%g at tth=180, got %g", qMax, q)
	}
}

// TestDecomposeRecombinesToQLab checks that qper*n + qpar*(in-plane unit
// vector) recombines to the same magnitude as the lab-frame Q, i.e. the
// decomposition doesn't lose or add momentum transfer.
func TestDecomposeRecombinesToQLab(t *testing.T) {
	g, d := straightThroughGeometry(t, 90)
	ctx := &engine.Context{Geometry: g, Detector: d}
	qper, qpar, err := decompose(ctx, la3.Vec3{0, 0, 1})
	if err != nil {
		t.Fatalf("decompose: %v", err)
	}
	q, err := qLab(ctx)
	if err != nil {
		t.Fatalf("qLab: %v", err)
	}
	recombined := math.Sqrt(qper*qper + qpar*qpar)
	if math.Abs(recombined-q.Norm()) > 1e-6 {
		t.Fatalf("decomposition magnitude mismatch: got %g, want %g", recombined, q.Norm())
	}
}
