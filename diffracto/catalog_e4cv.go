// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package diffracto

import (
	"math"

	"github.com/cpmech/gohkl/engine"
	"github.com/cpmech/gohkl/geom"
	"github.com/cpmech/gohkl/hkl"
	"github.com/cpmech/gohkl/incidence"
	"github.com/cpmech/gohkl/la3"
	"github.com/cpmech/gohkl/psi"
	"github.com/cpmech/gohkl/qspace"
	"github.com/cpmech/gohkl/tth"
	"github.com/cpmech/gohkl/unit"
	"github.com/cpmech/gohkl/xray"
)

// NewE4CVGeometry builds the 4-circle Eulerian vertical geometry: sample
// holder (omega, chi, phi, each right-hand around the stated axis) and a
// single-axis detector holder (tth), the canonical axis order and
// rotation directions of the E4CV diffractometer family.
//
//	omega: rotation around -y, through the origin
//	chi:   rotation around -x (in omega's rotated frame), through the origin
//	phi:   rotation around -y (in chi's rotated frame), through the origin
//	tth:   detector holder, rotation around -y, through the origin
func NewE4CVGeometry() *geom.Geometry {
	g := geom.New(geom.Descriptor{
		Name:        "E4CV",
		AxisNames:   []string{"omega", "chi", "phi", "tth"},
		Description: "4-circle vertical Eulerian: omega,chi,phi around the sample, tth around the detector, all right-hand around -y/-x/-y/-y.",
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

	g.Update()
	return g
}

// NewE4CVEngines builds the EngineList of every engine the E4CV geometry
// supports: hkl, psi, q, q2, qper_qpar, tth, tth2, incidence, emergence.
func NewE4CVEngines(g *geom.Geometry, d *xray.Detector, s *xray.Sample) *engine.EngineList {
	el := engine.NewEngineList(g, d, s)
	el.AddEngine(hkl.NewEngine(hkl.Config{Omega: "omega", Chi: "chi", Phi: "phi", Tth: "tth"}))
	el.AddEngine(psi.NewEngine(psi.Config{}))
	el.AddEngine(qspace.NewQEngine(qspace.Config{Tth: "tth"}))
	el.AddEngine(qspace.NewQ2Engine(qspace.Config{Tth: "tth"}))
	el.AddEngine(qspace.NewQperQparEngine(qspace.Config{Tth: "tth", SurfaceNormal: la3.Vec3{0, 0, 1}}))
	el.AddEngine(tth.NewEngine(tth.Config{Tth: "tth"}))
	el.AddEngine(tth.NewEngine2(tth.Config{Tth: "tth"}))
	el.AddEngine(incidence.NewIncidenceEngine(incidence.Config{SurfaceNormal: la3.Vec3{0, 0, 1}}))
	el.AddEngine(incidence.NewEmergenceEngine(incidence.Config{SurfaceNormal: la3.Vec3{0, 0, 1}}))
	return el
}

func init() {
	Register(&Entry{
		Name:        "E4CV",
		AxisNames:   []string{"omega", "chi", "phi", "tth"},
		Description: "4-circle vertical Eulerian diffractometer",
		NewGeometry: NewE4CVGeometry,
		NewEngines:  NewE4CVEngines,
	})
}
