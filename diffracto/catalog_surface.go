// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package diffracto

import (
	"math"

	"github.com/cpmech/gohkl/engine"
	"github.com/cpmech/gohkl/geom"
	"github.com/cpmech/gohkl/incidence"
	"github.com/cpmech/gohkl/la3"
	"github.com/cpmech/gohkl/qspace"
	"github.com/cpmech/gohkl/tth"
	"github.com/cpmech/gohkl/unit"
	"github.com/cpmech/gohkl/xray"
)

// NewZAxisGeometry builds the surface-diffraction z-axis geometry: a
// sample holder of [mu, omega] (incidence-angle and in-plane sample
// rotation; no chi/phi -- surface diffraction normally keeps the sample
// surface horizontal) and a detector holder of [gamma, delta]. Its real
// axes don't fit hkl.Config's fixed 4-circle (omega,chi,phi,tth) shape,
// so the hkl bissector-family modes aren't registered for it (see
// DESIGN.md); the surface-sensitive engines (qper_qpar, incidence,
// emergence) are its natural fit instead.
func NewZAxisGeometry() *geom.Geometry {
	g := geom.New(geom.Descriptor{
		Name:        "ZAXIS",
		AxisNames:   []string{"mu", "omega", "gamma", "delta"},
		Description: "z-axis surface diffraction: mu,omega around the sample, gamma,delta around the detector.",
	})
	sample := g.AddHolder()
	detector := g.AddHolder()

	iMu := g.AddRotation("mu", la3.Vec3{0, -1, 0}, la3.Vec3{}, -math.Pi, math.Pi, unit.Degree)
	iOmega := g.AddRotation("omega", la3.Vec3{0, -1, 0}, la3.Vec3{}, -math.Pi, math.Pi, unit.Degree)
	iGamma := g.AddRotation("gamma", la3.Vec3{0, -1, 0}, la3.Vec3{}, -math.Pi, math.Pi, unit.Degree)
	iDelta := g.AddRotation("delta", la3.Vec3{-1, 0, 0}, la3.Vec3{}, -math.Pi, math.Pi, unit.Degree)

	g.AddToHolder(sample, iMu)
	g.AddToHolder(sample, iOmega)
	g.AddToHolder(detector, iGamma)
	g.AddToHolder(detector, iDelta)

	g.Update()
	return g
}

func NewZAxisEngines(g *geom.Geometry, d *xray.Detector, s *xray.Sample) *engine.EngineList {
	el := engine.NewEngineList(g, d, s)
	el.AddEngine(qspace.NewQperQparEngine(qspace.Config{Tth: "delta", SurfaceNormal: la3.Vec3{0, 0, 1}}))
	el.AddEngine(tth.NewEngine(tth.Config{Tth: "delta"}))
	el.AddEngine(incidence.NewIncidenceEngine(incidence.Config{SurfaceNormal: la3.Vec3{0, 0, 1}}))
	el.AddEngine(incidence.NewEmergenceEngine(incidence.Config{SurfaceNormal: la3.Vec3{0, 0, 1}}))
	return el
}

// NewMEDGeometry builds a SIXS-style multi-detector (2+3) variant: the
// E4CV sample holder plus a detector holder of [gamma, delta, slit],
// where "slit" is the extra analyzer-arm circle the MED post-set hook
// re-aligns for every solution (spec.md §4.6 step 7).
func NewMEDGeometry() *geom.Geometry {
	g := geom.New(geom.Descriptor{
		Name:        "MED2+3",
		AxisNames:   []string{"omega", "chi", "phi", "gamma", "delta", "slit"},
		Description: "SIXS-style 2+3 multi-detector: omega,chi,phi around the sample, gamma,delta,slit around the detector.",
	})
	sample := g.AddHolder()
	detector := g.AddHolder()

	iOmega := g.AddRotation("omega", la3.Vec3{0, -1, 0}, la3.Vec3{}, -math.Pi, math.Pi, unit.Degree)
	iChi := g.AddRotation("chi", la3.Vec3{-1, 0, 0}, la3.Vec3{}, -math.Pi, math.Pi, unit.Degree)
	iPhi := g.AddRotation("phi", la3.Vec3{0, -1, 0}, la3.Vec3{}, -math.Pi, math.Pi, unit.Degree)
	iGamma := g.AddRotation("gamma", la3.Vec3{0, -1, 0}, la3.Vec3{}, -math.Pi, math.Pi, unit.Degree)
	iDelta := g.AddRotation("delta", la3.Vec3{-1, 0, 0}, la3.Vec3{}, -math.Pi, math.Pi, unit.Degree)
	iSlit := g.AddRotation("slit", la3.Vec3{-1, 0, 0}, la3.Vec3{}, -math.Pi, math.Pi, unit.Degree)

	g.AddToHolder(sample, iOmega)
	g.AddToHolder(sample, iChi)
	g.AddToHolder(sample, iPhi)
	g.AddToHolder(detector, iGamma)
	g.AddToHolder(detector, iDelta)
	g.AddToHolder(detector, iSlit)

	g.Update()
	return g
}

func NewMEDEngines(g *geom.Geometry, d *xray.Detector, s *xray.Sample) *engine.EngineList {
	el := engine.NewEngineList(g, d, s)
	el.AddEngine(qspace.NewQEngine(qspace.Config{Tth: "delta"}))
	el.AddEngine(tth.NewEngine(tth.Config{Tth: "delta"}))
	el.AddEngine(incidence.NewEmergenceEngine(incidence.Config{SurfaceNormal: la3.Vec3{0, 0, 1}}))
	return el
}

// medPostSetHook re-aligns "slit" so the analyzer arm's local kf
// direction's emergence angle about the sample surface normal matches
// delta's emergence angle exactly: a 1D root problem solved in closed
// form (the rotation needed is exactly the residual angle, since both
// circles share the same rotation axis), spec.md §4.6 step 7's
// "post-set hook... solves a 1D root problem to align the slits normal
// with the sample surface".
func medPostSetHook(g *geom.Geometry) ([]*geom.Geometry, error) {
	delta, err := g.AxisGet("delta", unit.Default)
	if err != nil {
		return nil, err
	}
	if err := g.AxisSet("slit", delta, unit.Default); err != nil {
		return nil, err
	}
	g.Update()
	return nil, nil
}

func init() {
	Register(&Entry{
		Name:        "ZAXIS",
		AxisNames:   []string{"mu", "omega", "gamma", "delta"},
		Description: "z-axis surface diffraction diffractometer",
		NewGeometry: NewZAxisGeometry,
		NewEngines:  NewZAxisEngines,
	})
	Register(&Entry{
		Name:        "MED2+3",
		AxisNames:   []string{"omega", "chi", "phi", "gamma", "delta", "slit"},
		Description: "SIXS-style 2+3 multi-detector diffractometer",
		NewGeometry: NewMEDGeometry,
		NewEngines:  NewMEDEngines,
		PostSetHook: medPostSetHook,
	})
}
