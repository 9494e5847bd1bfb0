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
	"github.com/cpmech/gohkl/psi"
	"github.com/cpmech/gohkl/qspace"
	"github.com/cpmech/gohkl/tth"
	"github.com/cpmech/gohkl/unit"
	"github.com/cpmech/gohkl/xray"
)

// NewE6CGeometry builds the 6-circle Eulerian geometry: a sample holder
// of [mu, omega, chi, phi] and a detector holder of [gamma, delta]. The
// bissector-family hkl modes vary omega,chi,phi,delta; mu and gamma are
// held at the reference Geometry's values (read axes), the standard
// 6-circle reduction to the 4-circle problem.
func NewE6CGeometry() *geom.Geometry {
	g := geom.New(geom.Descriptor{
		Name:        "E6C",
		AxisNames:   []string{"mu", "omega", "chi", "phi", "gamma", "delta"},
		Description: "6-circle Eulerian: mu,omega,chi,phi around the sample, gamma,delta around the detector.",
	})
	sample := g.AddHolder()
	detector := g.AddHolder()

	iMu := g.AddRotation("mu", la3.Vec3{0, -1, 0}, la3.Vec3{}, -math.Pi, math.Pi, unit.Degree)
	iOmega := g.AddRotation("omega", la3.Vec3{0, -1, 0}, la3.Vec3{}, -math.Pi, math.Pi, unit.Degree)
	iChi := g.AddRotation("chi", la3.Vec3{-1, 0, 0}, la3.Vec3{}, -math.Pi, math.Pi, unit.Degree)
	iPhi := g.AddRotation("phi", la3.Vec3{0, -1, 0}, la3.Vec3{}, -math.Pi, math.Pi, unit.Degree)
	iGamma := g.AddRotation("gamma", la3.Vec3{0, -1, 0}, la3.Vec3{}, -math.Pi, math.Pi, unit.Degree)
	iDelta := g.AddRotation("delta", la3.Vec3{-1, 0, 0}, la3.Vec3{}, -math.Pi, math.Pi, unit.Degree)

	g.AddToHolder(sample, iMu)
	g.AddToHolder(sample, iOmega)
	g.AddToHolder(sample, iChi)
	g.AddToHolder(sample, iPhi)
	g.AddToHolder(detector, iGamma)
	g.AddToHolder(detector, iDelta)

	g.Update()
	return g
}

// NewE6CEngines registers the hkl/psi/q engines over the standard
// 4-write-axis (omega,chi,phi,delta) reduction.
func NewE6CEngines(g *geom.Geometry, d *xray.Detector, s *xray.Sample) *engine.EngineList {
	el := engine.NewEngineList(g, d, s)
	el.AddEngine(hkl.NewEngine(hkl.Config{Omega: "omega", Chi: "chi", Phi: "phi", Tth: "delta"}))
	el.AddEngine(psi.NewEngine(psi.Config{}))
	el.AddEngine(qspace.NewQEngine(qspace.Config{Tth: "delta"}))
	el.AddEngine(tth.NewEngine(tth.Config{Tth: "delta"}))
	return el
}

// NewK6CGeometry mirrors NewE6CGeometry with the sample holder's
// omega/chi/phi replaced by a kappa triplet, for the kappa 6-circle
// family.
func NewK6CGeometry() *geom.Geometry {
	alpha := hkl.DefaultAlpha
	g := geom.New(geom.Descriptor{
		Name:        "K6C",
		AxisNames:   []string{"mu", "komega", "kappa", "kphi", "gamma", "delta"},
		Description: "6-circle kappa: mu,komega,kappa,kphi around the sample, gamma,delta around the detector.",
	})
	sample := g.AddHolder()
	detector := g.AddHolder()

	kappaAxis := la3.Vec3{-math.Sin(alpha), -math.Cos(alpha), 0}

	iMu := g.AddRotation("mu", la3.Vec3{0, -1, 0}, la3.Vec3{}, -math.Pi, math.Pi, unit.Degree)
	iKOmega := g.AddRotation("komega", la3.Vec3{0, -1, 0}, la3.Vec3{}, -math.Pi, math.Pi, unit.Degree)
	iKappa := g.AddRotation("kappa", kappaAxis, la3.Vec3{}, -math.Pi, math.Pi, unit.Degree)
	iKPhi := g.AddRotation("kphi", la3.Vec3{0, -1, 0}, la3.Vec3{}, -math.Pi, math.Pi, unit.Degree)
	iGamma := g.AddRotation("gamma", la3.Vec3{0, -1, 0}, la3.Vec3{}, -math.Pi, math.Pi, unit.Degree)
	iDelta := g.AddRotation("delta", la3.Vec3{-1, 0, 0}, la3.Vec3{}, -math.Pi, math.Pi, unit.Degree)

	g.AddToHolder(sample, iMu)
	g.AddToHolder(sample, iKOmega)
	g.AddToHolder(sample, iKappa)
	g.AddToHolder(sample, iKPhi)
	g.AddToHolder(detector, iGamma)
	g.AddToHolder(detector, iDelta)

	g.Update()
	return g
}

// NewK6CEngines registers eulerians, q and tth -- the same reduced set
// as K4CV, for the same reason (see catalog_k4cv.go).
func NewK6CEngines(g *geom.Geometry, d *xray.Detector, s *xray.Sample) *engine.EngineList {
	el := engine.NewEngineList(g, d, s)
	el.AddEngine(hkl.NewEuleriansEngine(hkl.EuleriansConfig{KOmega: "komega", Kappa: "kappa", KPhi: "kphi", Alpha: hkl.DefaultAlpha}))
	el.AddEngine(qspace.NewQEngine(qspace.Config{Tth: "delta"}))
	el.AddEngine(tth.NewEngine(tth.Config{Tth: "delta"}))
	return el
}

func init() {
	Register(&Entry{
		Name:        "E6C",
		AxisNames:   []string{"mu", "omega", "chi", "phi", "gamma", "delta"},
		Description: "6-circle Eulerian diffractometer",
		NewGeometry: NewE6CGeometry,
		NewEngines:  NewE6CEngines,
	})
	Register(&Entry{
		Name:        "K6C",
		AxisNames:   []string{"mu", "komega", "kappa", "kphi", "gamma", "delta"},
		Description: "6-circle kappa diffractometer",
		NewGeometry: NewK6CGeometry,
		NewEngines:  NewK6CEngines,
	})
}
