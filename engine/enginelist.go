// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package engine

import (
	"github.com/cpmech/gohkl/geom"
	"github.com/cpmech/gohkl/xerr"
	"github.com/cpmech/gohkl/xray"
)

// PostSetHook runs on every solution Geometry of the list produced by an
// engine's PseudoAxisValuesSet, before the caller sees it; it may rewrite
// the Geometry in place and/or return extra ones (e.g. the MED2+3
// catalog entry's slit re-alignment; spec.md §4.7).
type PostSetHook func(g *geom.Geometry) (extra []*geom.Geometry, err error)

// EngineList is one diffractometer instance: the Geometry/Detector/
// Sample triple and the family of Engines sharing them (spec.md §3).
// Mirrors ele/factory.go's registry shape, but as an instance-level
// container rather than a process-wide one -- the process-wide registry
// is the diffracto package's registry, whose entries build EngineLists.
type EngineList struct {
	Geometry *geom.Geometry
	Detector *xray.Detector
	Sample   *xray.Sample

	GlobalParams *ParamBag
	PostSetHook  PostSetHook

	engines     map[string]*Engine
	engineOrder []string
}

// NewEngineList binds an EngineList to a concrete Geometry/Detector/
// Sample triple.
func NewEngineList(g *geom.Geometry, d *xray.Detector, s *xray.Sample) *EngineList {
	return &EngineList{
		Geometry:     g,
		Detector:     d,
		Sample:       s,
		GlobalParams: NewParamBag(),
		engines:      make(map[string]*Engine),
	}
}

// AddEngine registers e and binds it to this list (e's Context calls will
// see this list's Geometry/Detector/Sample).
func (el *EngineList) AddEngine(e *Engine) {
	if _, ok := el.engines[e.Name]; !ok {
		el.engineOrder = append(el.engineOrder, e.Name)
	}
	e.owner = el
	el.engines[e.Name] = e
}

// EnginesNamesGet returns the registered engine names, in registration
// order.
func (el *EngineList) EnginesNamesGet() []string { return el.engineOrder }

// EngineGet looks up a registered engine by name.
func (el *EngineList) EngineGet(name string) (*Engine, error) {
	e, ok := el.engines[name]
	if !ok {
		return nil, xerr.E(xerr.BadInput, name, "no such engine %q", name)
	}
	return e, nil
}
