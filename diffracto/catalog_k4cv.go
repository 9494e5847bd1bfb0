// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package diffracto

import (
	"math"

	"github.com/cpmech/gohkl/engine"
	"github.com/cpmech/gohkl/geom"
	"github.com/cpmech/gohkl/hkl"
	"github.com/cpmech/gohkl/la3"
	"github.com/cpmech/gohkl/qspace"
	"github.com/cpmech/gohkl/tth"
	"github.com/cpmech/gohkl/unit"
	"github.com/cpmech/gohkl/xray"
)

// NewK4CVGeometry builds the 4-circle kappa vertical geometry: sample
// holder (komega, kappa, kphi) and a single-axis detector holder (tth).
// The kappa axis is tilted by hkl.DefaultAlpha from -y in the xy-plane,
// the mechanical direction of a real kappa head; the "eulerians" engine
// (see catalog registration below) converts to/from the conventional
// (omega,chi,phi) triplet through the closed-form relation in
// hkl.EuleriansConfig, independent of this 3D axis choice.
func NewK4CVGeometry() *geom.Geometry {
	alpha := hkl.DefaultAlpha
	g := geom.New(geom.Descriptor{
		Name:        "K4CV",
		AxisNames:   []string{"komega", "kappa", "kphi", "tth"},
		Description: "4-circle vertical kappa: komega,kappa,kphi around the sample (kappa tilted by alpha from -y), tth around the detector.",
	})
	sample := g.AddHolder()
	detector := g.AddHolder()

	kappaAxis := la3.Vec3{-math.Sin(alpha), -math.Cos(alpha), 0}

	iKOmega := g.AddRotation("komega", la3.Vec3{0, -1, 0}, la3.Vec3{}, -math.Pi, math.Pi, unit.Degree)
	iKappa := g.AddRotation("kappa", kappaAxis, la3.Vec3{}, -math.Pi, math.Pi, unit.Degree)
	iKPhi := g.AddRotation("kphi", la3.Vec3{0, -1, 0}, la3.Vec3{}, -math.Pi, math.Pi, unit.Degree)
	iTth := g.AddRotation("tth", la3.Vec3{0, -1, 0}, la3.Vec3{}, -math.Pi, math.Pi, unit.Degree)

	g.AddToHolder(sample, iKOmega)
	g.AddToHolder(sample, iKappa)
	g.AddToHolder(sample, iKPhi)
	g.AddToHolder(detector, iTth)

	g.Update()
	return g
}

// NewK4CVEngines builds the EngineList for K4CV: eulerians (the
// kappa<->conventional-angle conversion), q, and tth. The hkl and psi
// sample-orientation engines are not registered for this geometry: their
// bissector-family residuals assume a direct (omega,chi,phi) holder,
// which K4CV's real axes are not (see DESIGN.md).
func NewK4CVEngines(g *geom.Geometry, d *xray.Detector, s *xray.Sample) *engine.EngineList {
	el := engine.NewEngineList(g, d, s)
	el.AddEngine(hkl.NewEuleriansEngine(hkl.EuleriansConfig{KOmega: "komega", Kappa: "kappa", KPhi: "kphi", Alpha: hkl.DefaultAlpha}))
	el.AddEngine(qspace.NewQEngine(qspace.Config{Tth: "tth"}))
	el.AddEngine(tth.NewEngine(tth.Config{Tth: "tth"}))
	return el
}

func init() {
	Register(&Entry{
		Name:        "K4CV",
		AxisNames:   []string{"komega", "kappa", "kphi", "tth"},
		Description: "4-circle vertical kappa diffractometer",
		NewGeometry: NewK4CVGeometry,
		NewEngines:  NewK4CVEngines,
	})
}
