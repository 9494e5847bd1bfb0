// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package param

import (
	"math"

	"github.com/cpmech/gosl/rnd"

	"github.com/cpmech/gohkl/la3"
	"github.com/cpmech/gohkl/unit"
	"github.com/cpmech/gohkl/xerr"
)

// Parameter is a named, bounded scalar, optionally carrying a geometric
// transformation. Value, Min and Max are always stored in the default
// (internal) unit: radians for rotations, nm for translations.
type Parameter struct {
	Name        string
	Description string
	Kind        Kind
	Transform   Transform // only meaningful if Kind != Scalar

	value float64
	min   float64
	max   float64

	hasRange bool // false means unbounded (any finite value is valid)
	fit      bool // whether a fit/refinement routine may vary this parameter
	changed  bool // dirty bit; cleared by the owning Geometry/Holder on Update

	Display unit.Unit // the unit Value()/SetValue() use with unit.User
}

// New builds an unbounded scalar Parameter.
func New(name string, value float64, display unit.Unit) *Parameter {
	return &Parameter{Name: name, value: value, Display: display}
}

// NewRotation builds a rotation Parameter around axisV (through origin),
// bounded to [min,max] radians.
func NewRotation(name string, axisV, origin la3.Vec3, min, max float64, display unit.Unit) *Parameter {
	return &Parameter{
		Name:      name,
		Kind:      Rotation,
		Transform: Transform{AxisV: axisV.Normalized(), Origin: origin},
		value:     0, min: min, max: max, hasRange: true,
		Display: display,
	}
}

// NewTranslation builds a translation Parameter along axisV, bounded to
// [min,max] (internal unit, typically nm).
func NewTranslation(name string, axisV la3.Vec3, min, max float64, display unit.Unit) *Parameter {
	return &Parameter{
		Name:      name,
		Kind:      Translation,
		Transform: Transform{AxisV: axisV.Normalized()},
		value:     0, min: min, max: max, hasRange: true,
		Display: display,
	}
}

// Value returns the current value in the requested unit.
func (p *Parameter) Value(u unit.Kind) float64 {
	if u == unit.User {
		return unit.Convert(p.value, unit.Radian, p.Display)
	}
	return p.value
}

// SetValue sets the current value, given in the requested unit. NaN is
// always rejected (spec.md §4.1: "Setting NaN fails"). A Translation
// with a range fails atomically (the previous value is untouched) if
// the new value falls outside [min,max]; a Rotation accepts any finite
// value (range is only enforced by IsValidRange / ClosestTo).
func (p *Parameter) SetValue(v float64, u unit.Kind) error {
	if math.IsNaN(v) {
		return xerr.E(xerr.BadInput, p.Name, "parameter value cannot be NaN")
	}
	dv := v
	if u == unit.User {
		dv = unit.Convert(v, p.Display, unit.Radian)
	}
	if p.Kind == Translation && p.hasRange && (dv < p.min || dv > p.max) {
		return xerr.E(xerr.OutOfRange, p.Name, "value %g is outside [%g,%g]", dv, p.min, p.max)
	}
	if p.value != dv {
		p.changed = true
	}
	p.value = dv
	return nil
}

// MinMax returns the bounds in the requested unit; ok is false if the
// parameter is unbounded.
func (p *Parameter) MinMax(u unit.Kind) (min, max float64, ok bool) {
	if !p.hasRange {
		return 0, 0, false
	}
	if u == unit.User {
		return unit.Convert(p.min, unit.Radian, p.Display), unit.Convert(p.max, unit.Radian, p.Display), true
	}
	return p.min, p.max, true
}

// SetMinMax sets the bounds, given in the requested unit.
func (p *Parameter) SetMinMax(min, max float64, u unit.Kind) {
	if u == unit.User {
		min = unit.Convert(min, p.Display, unit.Radian)
		max = unit.Convert(max, p.Display, unit.Radian)
	}
	p.min, p.max = min, max
	p.hasRange = true
}

// Fit reports whether a refinement routine may vary this parameter.
func (p *Parameter) Fit() bool { return p.fit }

// SetFit sets the fit flag.
func (p *Parameter) SetFit(f bool) { p.fit = f }

// Changed reports the dirty bit.
func (p *Parameter) Changed() bool { return p.changed }

// ClearChanged resets the dirty bit; called by the owning Holder after
// it has recomputed its cached quaternion.
func (p *Parameter) ClearChanged() { p.changed = false }

// IsValid reports whether the current value satisfies the Parameter's
// validity rule: translations must lie within [min,max]; rotations are
// always individually valid (any real angle is a legal rotation), unless
// requireRange is set, in which case the value must additionally admit
// a 2π-shifted representative inside [min,max].
func (p *Parameter) IsValid(requireRange bool) bool {
	if math.IsNaN(p.value) {
		return false
	}
	switch p.Kind {
	case Translation:
		if p.hasRange {
			return p.value >= p.min && p.value <= p.max
		}
		return true
	case Rotation:
		if requireRange && p.hasRange {
			_, ok := p.SmallestInRange()
			return ok
		}
		return true
	default:
		if p.hasRange {
			return p.value >= p.min && p.value <= p.max
		}
		return true
	}
}

// SmallestInRange lifts the current value into [min, min+2π) for a
// ranged rotation Parameter ("smallest-in-range value", spec.md §4.1).
// ok is false if the parameter is not a ranged rotation or if the lifted
// value still lies above max, which can happen whenever max-min < 2π;
// NewRotation does not check the range.
func (p *Parameter) SmallestInRange() (float64, bool) {
	if p.Kind != Rotation || !p.hasRange {
		return 0, false
	}
	v := p.min + math.Mod(p.value-p.min, 2*math.Pi)
	if v < p.min {
		v += 2 * math.Pi
	}
	if v > p.max && v-2*math.Pi >= p.min {
		v -= 2 * math.Pi
	}
	if v < p.min || v > p.max {
		return 0, false
	}
	return v, true
}

// ClosestTo returns the 2π-equivalent representative of the current
// value that lies inside [min,max] and is nearest to ref ("closest
// value to a reference", spec.md §4.1). ok is false ("NaN if none" in
// the spec's terms) if no representative falls inside the range.
func (p *Parameter) ClosestTo(ref float64) (best float64, ok bool) {
	if p.Kind != Rotation || !p.hasRange {
		if p.value >= p.min && p.value <= p.max {
			return p.value, true
		}
		return math.NaN(), false
	}
	base, exists := p.SmallestInRange()
	if !exists {
		return math.NaN(), false
	}
	bestDist := math.Inf(1)
	found := false
	for k := -4; k <= 4; k++ {
		v := base + float64(k)*2*math.Pi
		if v < p.min || v > p.max {
			continue
		}
		d := math.Abs(v - ref)
		if d < bestDist {
			bestDist = d
			best = v
			found = true
		}
	}
	if !found {
		return math.NaN(), false
	}
	return best, true
}

// OrthodromicDistanceTo returns the shortest-arc distance (rotations) or
// the absolute linear distance (everything else) between p's current
// value and o's.
func (p *Parameter) OrthodromicDistanceTo(o *Parameter) float64 {
	if p.Kind == Rotation && o.Kind == Rotation {
		return la3.OrthodromicDistance(p.value, o.value)
	}
	return math.Abs(p.value - o.value)
}

// Quaternion returns the rotation this Parameter currently represents.
// Translations and plain scalars have no quaternion; ok is false.
func (p *Parameter) Quaternion() (q la3.Quat, ok bool) {
	if p.Kind != Rotation {
		return la3.IdentityQuat, false
	}
	return la3.FromAxisAngle(p.Transform.AxisV, p.value), true
}

// Apply applies the Parameter's current transformation to v: a rotation
// rotates v by its current angle around AxisV about Origin; a
// translation adds AxisV*value to v; a plain scalar leaves v unchanged.
func (p *Parameter) Apply(v la3.Vec3) la3.Vec3 {
	switch p.Kind {
	case Rotation:
		q, _ := p.Quaternion()
		return p.Transform.Origin.Add(la3.RotateVec3(q, v.Sub(p.Transform.Origin)))
	case Translation:
		return v.Add(p.Transform.AxisV.Scale(p.value))
	default:
		return v
	}
}

// Randomize sets the value to a uniform random point within [min,max],
// drawing from the process-wide RNG (gosl/rnd) so restart sampling
// across the whole module shares one seedable source (spec.md §5).
func (p *Parameter) Randomize() error {
	if !p.hasRange {
		return xerr.E(xerr.BadInput, p.Name, "cannot randomize an unbounded parameter")
	}
	p.value = rnd.Float64(p.min, p.max)
	p.changed = true
	return nil
}

// CompatibleWith reports whether p and o can share one axis slot in a
// Geometry: same Kind and identical Transform ("transformation-cmp").
func (p *Parameter) CompatibleWith(o *Parameter) bool {
	if p.Kind != o.Kind {
		return false
	}
	if p.Kind == Scalar {
		return true
	}
	return p.Transform.SameAs(o.Transform)
}
