// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package geom implements Geometry and Holder: the two kinematic chains
// (sample-side, detector-side) of Parameters that a diffractometer is
// built from. The recompute-on-dirty-bit pattern mirrors
// fem/dyncoefs.go's coefficient cache and fem/domain.go's cached
// Domain state, adapted from FEM assembly state to cumulative
// orientation quaternions.
package geom

import (
	"math"

	"github.com/cpmech/gosl/chk"
	"gonum.org/v1/gonum/num/quat"

	"github.com/cpmech/gohkl/la3"
	"github.com/cpmech/gohkl/param"
	"github.com/cpmech/gohkl/unit"
	"github.com/cpmech/gohkl/xerr"
)

// Descriptor is the factory-level description of a diffractometer kind:
// its canonical axis ordering and a human-readable description.
type Descriptor struct {
	Name        string
	AxisNames   []string
	Description string
}

// Source holds the incident-beam data: wavelength (nm, internal unit)
// and the ki direction in lab coordinates before any pre-sample axis is
// applied.
type Source struct {
	Wavelength float64
	KiLocal    la3.Vec3
}

// Holder is one kinematic chain: an ordered list of axis indices into
// the owning Geometry, plus the cached cumulative quaternion of those
// axes that carry a rotation.
//
// Open question (spec.md §9): quaternion accumulation stops at the
// first non-rotation axis. That is preserved here exactly;
// param.Parameter.Apply is the seam a future generalization (continuing the product through
// translations by switching to a rotation+translation accumulator)
// would replace.
type Holder struct {
	AxisIdx []int
	Q       la3.Quat
}

// Geometry is a factory descriptor, a source, an ordered set of
// de-duplicated Parameters (the axes) and an ordered set of Holders.
// By convention Holders[0] carries the sample, Holders[len-1] the
// detector.
type Geometry struct {
	Descriptor Descriptor
	Source     Source

	axes    []*param.Parameter
	nameIdx map[string]int
	Holders []*Holder
}

// New creates an empty Geometry for the given descriptor.
func New(desc Descriptor) *Geometry {
	return &Geometry{
		Descriptor: desc,
		Source:     Source{Wavelength: 0.154, KiLocal: la3.Vec3{1, 0, 0}},
		nameIdx:    make(map[string]int),
	}
}

// AddHolder appends a new, empty Holder and returns its index.
func (g *Geometry) AddHolder() int {
	g.Holders = append(g.Holders, &Holder{Q: la3.IdentityQuat})
	return len(g.Holders) - 1
}

// addAxis inserts p as a new axis unless an axis with the same name
// already exists, in which case it is returned instead -- axis insertion
// is idempotent (spec.md §3 Geometry invariant). If a same-named axis
// exists with an incompatible transformation, construction aborts via
// chk.Panic: this is the fatal, non-recoverable Incompatible condition
// of spec.md §7 (mirrors ele/factory.go panicking on duplicate
// registration).
func (g *Geometry) addAxis(p *param.Parameter) int {
	if idx, ok := g.nameIdx[p.Name]; ok {
		existing := g.axes[idx]
		if !existing.CompatibleWith(p) {
			chk.Panic("geom: axis %q already exists with an incompatible transformation", p.Name)
		}
		return idx
	}
	g.axes = append(g.axes, p)
	idx := len(g.axes) - 1
	g.nameIdx[p.Name] = idx
	return idx
}

// AddRotation adds (or reuses) a rotation axis named name, around axisV
// through the origin, bounded to [min,max] radians, and returns its
// index.
func (g *Geometry) AddRotation(name string, axisV, origin la3.Vec3, min, max float64, display unit.Unit) int {
	return g.addAxis(param.NewRotation(name, axisV, origin, min, max, display))
}

// AddTranslation adds (or reuses) a translation axis named name along
// axisV, bounded to [min,max] (internal unit), and returns its index.
func (g *Geometry) AddTranslation(name string, axisV la3.Vec3, min, max float64, display unit.Unit) int {
	return g.addAxis(param.NewTranslation(name, axisV, min, max, display))
}

// AddToHolder appends axis axisIdx to the given holder's chain.
func (g *Geometry) AddToHolder(holderIdx, axisIdx int) {
	h := g.Holders[holderIdx]
	h.AxisIdx = append(h.AxisIdx, axisIdx)
}

// Axes returns the ordered slice of axis Parameters. Callers must not
// mutate the slice itself, though mutating a *Parameter's value through
// SetValue is the normal way to drive the Geometry.
func (g *Geometry) Axes() []*param.Parameter { return g.axes }

// AxisByName looks up an axis by name.
func (g *Geometry) AxisByName(name string) (*param.Parameter, error) {
	idx, ok := g.nameIdx[name]
	if !ok {
		return nil, xerr.E(xerr.BadInput, name, "no such axis")
	}
	return g.axes[idx], nil
}

// AxisGet returns the named axis's current value in the requested unit.
func (g *Geometry) AxisGet(name string, u unit.Kind) (float64, error) {
	p, err := g.AxisByName(name)
	if err != nil {
		return 0, err
	}
	return p.Value(u), nil
}

// AxisSet sets the named axis's value in the requested unit.
func (g *Geometry) AxisSet(name string, v float64, u unit.Kind) error {
	p, err := g.AxisByName(name)
	if err != nil {
		return err
	}
	return p.SetValue(v, u)
}

// AllAxisValuesGet returns every axis's value, in Geometry.Descriptor's
// canonical axis order, in the requested unit.
func (g *Geometry) AllAxisValuesGet(u unit.Kind) []float64 {
	out := make([]float64, len(g.axes))
	for i, p := range g.axes {
		out[i] = p.Value(u)
	}
	return out
}

// AllAxisValuesSet sets every axis's value, in axis-slice order.
func (g *Geometry) AllAxisValuesSet(values []float64, u unit.Kind) error {
	if len(values) != len(g.axes) {
		return xerr.E(xerr.BadInput, "", "expected %d axis values, got %d", len(g.axes), len(values))
	}
	for i, v := range values {
		if err := g.axes[i].SetValue(v, u); err != nil {
			return err
		}
	}
	return nil
}

// WavelengthGet returns the source wavelength in the requested unit.
func (g *Geometry) WavelengthGet(u unit.Kind) float64 {
	if u == unit.User {
		return unit.Convert(g.Source.Wavelength, unit.Nanometer, unit.Angstrom)
	}
	return g.Source.Wavelength
}

// WavelengthSet sets the source wavelength; wavelength <= 0 is rejected
// (spec.md §4.1 Failure list).
func (g *Geometry) WavelengthSet(v float64, u unit.Kind) error {
	wl := v
	if u == unit.User {
		wl = unit.Convert(v, unit.Angstrom, unit.Nanometer)
	}
	if wl <= 0 {
		return xerr.E(xerr.BadInput, "wavelength", "wavelength must be > 0, got %g", wl)
	}
	g.Source.Wavelength = wl
	return nil
}

// Update recomputes every Holder's cumulative quaternion if any of its
// axes has its changed bit set, then clears those bits -- the same
// recompute-if-dirty shape as fem/dyncoefs.go.
func (g *Geometry) Update() {
	for _, h := range g.Holders {
		dirty := false
		for _, idx := range h.AxisIdx {
			if g.axes[idx].Changed() {
				dirty = true
			}
		}
		if !dirty {
			continue
		}
		h.Q = la3.IdentityQuat
		for _, idx := range h.AxisIdx {
			p := g.axes[idx]
			q, ok := p.Quaternion()
			if !ok {
				break // accumulation stops at first non-rotation axis, spec.md §9
			}
			h.Q = quat.Mul(h.Q, q)
		}
		for _, idx := range h.AxisIdx {
			g.axes[idx].ClearChanged()
		}
	}
}

// Clone deep-copies the Geometry: every axis Parameter is copied by
// value, so mutating the clone never touches the original. This backs
// the "pseudo_axis_values_set never mutates the input Geometry"
// contract (spec.md §4.4) and glist's GeometryListItem storage.
func (g *Geometry) Clone() *Geometry {
	out := &Geometry{
		Descriptor: g.Descriptor,
		Source:     g.Source,
		nameIdx:    make(map[string]int, len(g.nameIdx)),
	}
	for k, v := range g.nameIdx {
		out.nameIdx[k] = v
	}
	out.axes = make([]*param.Parameter, len(g.axes))
	for i, p := range g.axes {
		cp := *p
		out.axes[i] = &cp
	}
	out.Holders = make([]*Holder, len(g.Holders))
	for i, h := range g.Holders {
		idx := make([]int, len(h.AxisIdx))
		copy(idx, h.AxisIdx)
		out.Holders[i] = &Holder{AxisIdx: idx, Q: h.Q}
	}
	return out
}

// Distance returns sum_i |v_i - v'_i| over every axis's current value.
func (g *Geometry) Distance(o *Geometry) float64 {
	sum := 0.0
	for i := range g.axes {
		sum += math.Abs(g.axes[i].Value(unit.Default) - o.axes[i].Value(unit.Default))
	}
	return sum
}

// DistanceOrthodromic returns the sum of per-axis shortest-arc angular
// distances (rotations) and linear distances (everything else).
func (g *Geometry) DistanceOrthodromic(o *Geometry) float64 {
	sum := 0.0
	for i := range g.axes {
		sum += g.axes[i].OrthodromicDistanceTo(o.axes[i])
	}
	return sum
}

// ClosestFrom lifts every axis of g to its 2π-equivalent representative
// closest to the matching axis of reference, atomically: if any axis has
// no representative in range, nothing is mutated and an error is
// returned (spec.md §4.2).
func (g *Geometry) ClosestFrom(reference *Geometry) error {
	lifted := make([]float64, len(g.axes))
	for i, p := range g.axes {
		v, ok := p.ClosestTo(reference.axes[i].Value(unit.Default))
		if !ok {
			return xerr.E(xerr.BadInput, p.Name, "no representative of %q in range near reference", p.Name)
		}
		lifted[i] = v
	}
	for i, v := range lifted {
		g.axes[i].SetValue(v, unit.Default)
	}
	return nil
}

// ProjectToSampleBasis projects v into the sample's reciprocal basis:
// (R_sample . UB)^-1 . v, where R_sample is Holders[0].Q (spec.md §4.2).
func (g *Geometry) ProjectToSampleBasis(ub la3.Mat3, v la3.Vec3) (la3.Vec3, error) {
	r := la3.ToMat3(g.Holders[0].Q)
	rub := r.Mul(ub)
	inv, err := rub.Inverse()
	if err != nil {
		return la3.Vec3{}, xerr.E(xerr.Degenerate, "", "sample basis (R.UB) is singular: %v", err)
	}
	return inv.MulVec(v), nil
}

// Ki returns the incident wavevector in the lab frame: the source's
// local ki direction scaled by 2π/λ and rotated by any pre-sample
// Holder axes (there are none before Holders[0] in every catalog in
// this module, so this is the source direction as-is, exposed as a
// named operation for symmetry with Kf and for diffractometers with
// pre-sample axes added in the future).
func (g *Geometry) Ki() la3.Vec3 {
	k := 2 * math.Pi / g.Source.Wavelength
	return g.Source.KiLocal.Normalized().Scale(k)
}

// Kf returns the outgoing wavevector in the lab frame: kfLocal (the
// Detector's local kf direction) scaled to |ki| and rotated through
// Holders[last].Q.
func (g *Geometry) Kf(kfLocal la3.Vec3) la3.Vec3 {
	k := 2 * math.Pi / g.Source.Wavelength
	last := g.Holders[len(g.Holders)-1]
	return la3.RotateVec3(last.Q, kfLocal.Normalized().Scale(k))
}
