// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package diffracto is the process-wide registry/factory of spec.md
// §4.7: a name -> (axis names, description, Geometry constructor,
// EngineList constructor, optional post-set hook) directory, built the
// way ele/factory.go and mdl/retention/lin.go register concrete
// implementations under a string key via init().
package diffracto

import (
	"github.com/cpmech/gohkl"
	"github.com/cpmech/gohkl/engine"
	"github.com/cpmech/gohkl/geom"
	"github.com/cpmech/gohkl/xerr"
	"github.com/cpmech/gohkl/xray"
)

// Entry is one diffractometer catalog entry.
type Entry struct {
	Name        string
	AxisNames   []string
	Description string

	NewGeometry func() *geom.Geometry
	NewEngines  func(g *geom.Geometry, d *xray.Detector, s *xray.Sample) *engine.EngineList
	PostSetHook engine.PostSetHook
}

var registry = make(map[string]*Entry)

// Register adds e to the process-wide registry, keyed by e.Name.
// Registering the same name twice is a construction-time bug (mirrors
// ele/factory.go's duplicate-registration guard).
func Register(e *Entry) {
	if _, ok := registry[e.Name]; ok {
		panic("diffracto: duplicate registration of " + e.Name)
	}
	registry[e.Name] = e
	gohkl.Logger().Debug().Str("diffractometer", e.Name).Msg("registered")
}

// Get looks up a diffractometer by exact name.
func Get(name string) (*Entry, error) {
	e, ok := registry[name]
	if !ok {
		return nil, xerr.E(xerr.BadInput, name, "no such diffractometer %q", name)
	}
	return e, nil
}

// Names returns every registered diffractometer name.
func Names() []string {
	out := make([]string, 0, len(registry))
	for n := range registry {
		out = append(out, n)
	}
	return out
}

// New builds a bound Geometry+EngineList pair for the named
// diffractometer, applying e.PostSetHook to every engine's EngineList.
func New(name string) (*geom.Geometry, *engine.EngineList, error) {
	e, err := Get(name)
	if err != nil {
		return nil, nil, err
	}
	g := e.NewGeometry()
	d := xray.New0D()
	lat, latErr := xray.NewLattice(1, 1, 1, 1.5707963267948966, 1.5707963267948966, 1.5707963267948966)
	if latErr != nil {
		return nil, nil, latErr
	}
	s := xray.NewSample(name+"-sample", lat)
	el := e.NewEngines(g, d, s)
	el.PostSetHook = e.PostSetHook
	return g, el, nil
}
