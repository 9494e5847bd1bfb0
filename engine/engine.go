// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package engine

import (
	"fmt"

	"github.com/cpmech/gohkl"
	"github.com/cpmech/gohkl/geom"
	"github.com/cpmech/gohkl/glist"
	"github.com/cpmech/gohkl/param"
	"github.com/cpmech/gohkl/solver"
	"github.com/cpmech/gohkl/unit"
	"github.com/cpmech/gohkl/xerr"
	"github.com/cpmech/gohkl/xray"
)

// Engine is a family of pseudo-axes sharing modes (spec.md §3). Engines
// never own a Geometry/Detector/Sample: those are supplied by the
// enclosing EngineList at init time, an indexed/weak back-reference
// rather than an owning pointer, exactly the cycle-breaking spec.md §9
// calls for.
type Engine struct {
	Name       string
	pseudoAxes []*param.Parameter

	modes     map[string]*Mode
	modeOrder []string
	current   *Mode

	Dependencies Dependency
	initialized  bool
	refSnapshot  *geom.Geometry

	owner *EngineList
}

// NewEngine builds an Engine with the given pseudo-axis Parameters
// (order matters: it is the order Get/Set operate on).
func NewEngine(name string, pseudoAxes []*param.Parameter, deps Dependency) *Engine {
	return &Engine{
		Name:         name,
		pseudoAxes:   pseudoAxes,
		modes:        make(map[string]*Mode),
		Dependencies: deps,
	}
}

// AddMode registers a mode under its own name.
func (e *Engine) AddMode(m *Mode) {
	if _, ok := e.modes[m.Name]; !ok {
		e.modeOrder = append(e.modeOrder, m.Name)
	}
	e.modes[m.Name] = m
	if e.current == nil {
		e.current = m
	}
}

// ModesNamesGet returns the available mode names, in registration order.
func (e *Engine) ModesNamesGet() []string { return e.modeOrder }

// CurrentModeSet switches the active mode. The mode's mode-local
// parameters keep the values they were last set to; they are not reset
// to the values they had at AddMode time.
func (e *Engine) CurrentModeSet(name string) error {
	m, ok := e.modes[name]
	if !ok {
		return xerr.E(xerr.BadInput, name, "engine %q has no mode %q", e.Name, name)
	}
	e.current = m
	gohkl.Logger().Debug().Str("engine", e.Name).Str("mode", name).Msg("mode switch")
	return nil
}

// CurrentMode returns the active mode.
func (e *Engine) CurrentMode() *Mode { return e.current }

// Capabilities returns the active mode's capability bitset.
func (e *Engine) Capabilities() Capabilities {
	if e.current == nil {
		return 0
	}
	return e.current.Capabilities
}

// ParametersValuesGet returns the active mode's mode-local parameter
// values, in the requested unit.
func (e *Engine) ParametersValuesGet(u unit.Kind) []float64 {
	if e.current == nil || e.current.Params == nil {
		return nil
	}
	return e.current.Params.Values(u)
}

// ParametersValuesSet sets the active mode's mode-local parameter values.
func (e *Engine) ParametersValuesSet(values []float64, u unit.Kind) error {
	if e.current == nil || e.current.Params == nil {
		return xerr.E(xerr.BadInput, e.Name, "engine %q's current mode has no parameters", e.Name)
	}
	return e.current.Params.SetValues(values, u)
}

// PseudoAxesValuesGet returns the current pseudo-axis values -- only
// meaningful after a successful Get or PseudoAxisValuesSet (spec.md
// §4.4).
func (e *Engine) PseudoAxesValuesGet(u unit.Kind) []float64 {
	out := make([]float64, len(e.pseudoAxes))
	for i, p := range e.pseudoAxes {
		out[i] = p.Value(u)
	}
	return out
}

// InitializedGet reports whether Initialized(true) has captured a
// reference snapshot.
func (e *Engine) InitializedGet() bool { return e.initialized }

// InitializedSet(true) captures the current (geometry, sample, detector)
// snapshot as the reference required by stateful read-only modes (e.g.
// psi). InitializedSet(false) clears it. Failure leaves the previous
// state untouched (spec.md §7 rollback-on-failure pattern).
func (e *Engine) InitializedSet(v bool) error {
	if !v {
		e.initialized = false
		e.refSnapshot = nil
		return nil
	}
	if e.owner == nil || e.owner.Geometry == nil {
		return xerr.E(xerr.NotInitialized, e.Name, "engine %q has no bound geometry to snapshot", e.Name)
	}
	e.refSnapshot = e.owner.Geometry.Clone()
	e.initialized = true
	return nil
}

// Get forward-computes the pseudo-axis values from the current state of
// the bound Geometry/Detector/Sample and stores them onto the Engine's
// pseudo-axis Parameters.
func (e *Engine) Get() error {
	if e.current == nil {
		return xerr.E(xerr.BadInput, e.Name, "engine %q has no current mode", e.Name)
	}
	if e.current.Get == nil {
		return xerr.E(xerr.BadInput, e.Name, "mode %q of engine %q is not readable", e.current.Name, e.Name)
	}
	if e.current.Capabilities.Has(Initializable) && !e.initialized {
		return xerr.E(xerr.NotInitialized, e.Name, "engine %q requires Initialized(true) before Get", e.Name)
	}
	ctx := e.context(e.owner.Geometry)
	vals, err := e.current.Get(ctx)
	if err != nil {
		return err
	}
	for i, v := range vals {
		e.pseudoAxes[i].SetValue(v, unit.Default)
	}
	return nil
}

// PseudoAxisValuesSet is the inversion entry point: it returns a
// GeometryList of 0 or more solutions realizing values on the Engine's
// current mode, without mutating the bound Geometry (spec.md §4.4).
func (e *Engine) PseudoAxisValuesSet(values []float64, opts solver.Options) (*glist.List, error) {
	if e.current == nil {
		return nil, xerr.E(xerr.BadInput, e.Name, "engine %q has no current mode", e.Name)
	}
	if !e.current.Capabilities.Has(Writable) {
		return nil, xerr.E(xerr.BadInput, e.Name, "mode %q of engine %q is not writable", e.current.Name, e.Name)
	}
	if len(values) != len(e.pseudoAxes) {
		return nil, xerr.E(xerr.BadInput, e.Name, "expected %d pseudo-axis values, got %d", len(e.pseudoAxes), len(values))
	}
	if e.owner == nil || e.owner.Geometry == nil {
		return nil, xerr.E(xerr.NotInitialized, e.Name, "engine %q has no bound geometry", e.Name)
	}

	reference := e.owner.Geometry
	work := reference.Clone()

	ctx := e.context(work)
	if ctx.Params == nil {
		ctx.Params = NewParamBag()
	}
	for i, name := range targetNames(len(values)) {
		ctx.Params.Add(param.New(name, values[i], unit.Radian))
	}

	var rawSolutions [][]float64
	if e.current.ClosedForm != nil {
		sols, err := e.current.ClosedForm(ctx)
		if err != nil {
			return nil, err
		}
		rawSolutions = sols
	} else if e.current.Residual != nil {
		axes, x0, err := e.writeAxes(work)
		if err != nil {
			return nil, err
		}
		residual := func(x []float64) ([]float64, error) {
			return e.current.Residual(ctx, x)
		}
		sols, err := solver.Solve(x0, axes, residual, opts)
		if err != nil {
			return nil, err
		}
		rawSolutions = sols
	} else {
		return nil, xerr.E(xerr.BadInput, e.Name, "mode %q has neither Residual nor ClosedForm", e.current.Name)
	}

	out := glist.New(1e-9)
	for _, x := range rawSolutions {
		g := reference.Clone()
		if err := setWriteAxes(g, e.current.WriteAxes, x); err != nil {
			return nil, err
		}
		g.Update()
		out.Insert(g)
	}

	if e.owner.PostSetHook != nil {
		if err := out.ApplyMultiplyHook(glist.MultiplyHook(e.owner.PostSetHook)); err != nil {
			return nil, err
		}
	}
	out.DropInvalid(true)
	out.SortByDistanceTo(reference)
	return out, nil
}

func (e *Engine) context(g *geom.Geometry) *Context {
	var det *xray.Detector
	var sam *xray.Sample
	if e.owner != nil {
		det, sam = e.owner.Detector, e.owner.Sample
	}
	var params *ParamBag
	if e.current != nil && e.current.Params != nil {
		params = e.current.Params.Clone()
	} else {
		params = NewParamBag()
	}
	return &Context{Geometry: g, Detector: det, Sample: sam, Params: params}
}

func (e *Engine) writeAxes(g *geom.Geometry) ([]solver.Axis, []float64, error) {
	axes := make([]solver.Axis, len(e.current.WriteAxes))
	x0 := make([]float64, len(e.current.WriteAxes))
	for i, name := range e.current.WriteAxes {
		p, err := g.AxisByName(name)
		if err != nil {
			return nil, nil, err
		}
		min, max, _ := p.MinMax(unit.Default)
		axes[i] = solver.Axis{
			Min: min, Max: max,
			IsRotation: p.Kind == param.Rotation,
			Permutable: p.Kind == param.Rotation && (max-min) > 2*piConst,
		}
		x0[i] = p.Value(unit.Default)
	}
	return axes, x0, nil
}

func setWriteAxes(g *geom.Geometry, names []string, x []float64) error {
	for i, name := range names {
		if err := g.AxisSet(name, x[i], unit.Default); err != nil {
			return err
		}
	}
	return nil
}

func targetNames(n int) []string {
	names := make([]string, n)
	for i := range names {
		names[i] = fmt.Sprintf("target%d", i)
	}
	return names
}

const piConst = 3.14159265358979323846
