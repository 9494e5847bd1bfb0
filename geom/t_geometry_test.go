// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package geom

import (
	"math"
	"testing"

	"github.com/cpmech/gosl/chk"

	"github.com/cpmech/gohkl/la3"
	"github.com/cpmech/gohkl/unit"
)

func simpleGeometry() *Geometry {
	g := New(Descriptor{Name: "test", AxisNames: []string{"omega"}})
	h0 := g.AddHolder()
	h1 := g.AddHolder()
	omega := g.AddRotation("omega", la3.Vec3{0, 0, 1}, la3.Vec3{}, -math.Pi, math.Pi, unit.Degree)
	g.AddToHolder(h0, omega)
	_ = h1
	return g
}

func TestAxisIdempotent(tst *testing.T) {
	g := simpleGeometry()
	n := len(g.Axes())
	g.AddRotation("omega", la3.Vec3{0, 0, 1}, la3.Vec3{}, -math.Pi, math.Pi, unit.Degree)
	if len(g.Axes()) != n {
		tst.Fatalf("axis insertion must be idempotent: got %d axes, want %d", len(g.Axes()), n)
	}
}

func TestUpdateRecomputesHolder(tst *testing.T) {
	g := simpleGeometry()
	g.AxisSet("omega", 90, unit.User)
	g.Update()
	v := la3.RotateVec3(g.Holders[0].Q, la3.Vec3{1, 0, 0})
	chk.Scalar(tst, "x", 1e-12, v[0], 0)
	chk.Scalar(tst, "y", 1e-12, v[1], 1)
}

func TestWavelengthRejectsNonPositive(tst *testing.T) {
	g := simpleGeometry()
	if err := g.WavelengthSet(0, unit.Default); err == nil {
		tst.Fatal("expected error for wavelength <= 0")
	}
	if err := g.WavelengthSet(-1, unit.Default); err == nil {
		tst.Fatal("expected error for wavelength <= 0")
	}
}

func TestCloneIsIndependent(tst *testing.T) {
	g := simpleGeometry()
	c := g.Clone()
	c.AxisSet("omega", 30, unit.User)
	v, _ := g.AxisGet("omega", unit.User)
	chk.Scalar(tst, "original unaffected", 1e-12, v, 0)
}
