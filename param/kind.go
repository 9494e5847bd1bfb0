// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package param implements Parameter: a named, bounded scalar with an
// optional geometric transformation (rotation around an axis through an
// origin, or translation along an axis), modelled after the
// gosl/fun.Prm{N,V} parameter-record shape used throughout the teacher's
// material models (mdl/retention, mdl/solid).
package param

import "github.com/cpmech/gohkl/la3"

// Kind discriminates how a Parameter's value maps to a geometric effect.
type Kind int

const (
	Scalar Kind = iota // no geometric effect; a plain bounded number
	Rotation
	Translation
)

// Transform holds the geometric data a Rotation or Translation Parameter
// carries: the axis direction (always) and, for rotations, the origin
// the rotation is taken about.
type Transform struct {
	AxisV  la3.Vec3
	Origin la3.Vec3
}

// SameAs reports whether two transforms are bit-for-bit compatible, the
// "transformation-cmp" operation of spec.md §4.1. Two Rotation
// Parameters sharing a name must have bit-equal AxisV/Origin or geometry
// construction aborts (Incompatible).
func (t Transform) SameAs(o Transform) bool {
	return t.AxisV == o.AxisV && t.Origin == o.Origin
}
