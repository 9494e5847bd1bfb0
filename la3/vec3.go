// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package la3 is the small vector/matrix/quaternion kernel every other
// gohkl package builds on: 3-vectors, 3x3 matrices, unit quaternions,
// angle reductions, rotation-around-axis and projections. Vector and
// matrix arithmetic is hand-written on fixed-size arrays (Mat3.ToLa
// converts to gosl/la's form); quaternion algebra
// reuses gonum/num/quat, the same package the kinematic-chain reference
// code in the pack (viamrobotics-rdk referenceframe/spatialmath) builds on.
package la3

import (
	"math"
)

// Vec3 is a 3-component vector in the lab or sample frame.
type Vec3 [3]float64

// Add returns a+b.
func (a Vec3) Add(b Vec3) Vec3 { return Vec3{a[0] + b[0], a[1] + b[1], a[2] + b[2]} }

// Sub returns a-b.
func (a Vec3) Sub(b Vec3) Vec3 { return Vec3{a[0] - b[0], a[1] - b[1], a[2] - b[2]} }

// Scale returns s*a.
func (a Vec3) Scale(s float64) Vec3 { return Vec3{s * a[0], s * a[1], s * a[2]} }

// Dot returns the scalar product a.b.
func (a Vec3) Dot(b Vec3) float64 { return a[0]*b[0] + a[1]*b[1] + a[2]*b[2] }

// Cross returns a x b.
func (a Vec3) Cross(b Vec3) Vec3 {
	return Vec3{
		a[1]*b[2] - a[2]*b[1],
		a[2]*b[0] - a[0]*b[2],
		a[0]*b[1] - a[1]*b[0],
	}
}

// Norm returns the Euclidean length of a.
func (a Vec3) Norm() float64 { return math.Sqrt(a.Dot(a)) }

// Normalized returns a/||a||; the zero vector is returned unchanged.
func (a Vec3) Normalized() Vec3 {
	n := a.Norm()
	if n < 1e-300 {
		return a
	}
	return a.Scale(1 / n)
}

// AngleTo returns the unsigned angle, in radians, between a and b.
func (a Vec3) AngleTo(b Vec3) float64 {
	na, nb := a.Norm(), b.Norm()
	if na < 1e-300 || nb < 1e-300 {
		return 0
	}
	c := a.Dot(b) / (na * nb)
	if c > 1 {
		c = 1
	}
	if c < -1 {
		c = -1
	}
	return math.Acos(c)
}

// ToLa converts a Vec3 into a gosl/la-compatible []float64, for code
// that needs to feed it into a general la.MatAlloc-based routine.
func (a Vec3) ToLa() []float64 { return []float64{a[0], a[1], a[2]} }

// VecFromLa builds a Vec3 from a 3-element []float64.
func VecFromLa(v []float64) Vec3 { return Vec3{v[0], v[1], v[2]} }
