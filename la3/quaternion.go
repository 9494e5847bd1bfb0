// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package la3

import (
	"math"

	"gonum.org/v1/gonum/num/quat"
)

// Quat is a unit quaternion representing a rotation. It is a thin alias
// over gonum/num/quat.Number so every arithmetic op (Mul, Conj, Abs)
// already has a correct, tested implementation upstream.
type Quat = quat.Number

// IdentityQuat is the no-rotation quaternion.
var IdentityQuat = Quat{Real: 1}

// FromAxisAngle builds the unit quaternion that rotates by angle
// (radians) around axis, following the right-hand rule, as spec.md §4.5
// requires for every geometry's rotation convention.
func FromAxisAngle(axis Vec3, angle float64) Quat {
	a := axis.Normalized()
	s := math.Sin(angle / 2)
	c := math.Cos(angle / 2)
	return Quat{Real: c, Imag: a[0] * s, Jmag: a[1] * s, Kmag: a[2] * s}
}

// RotateVec3 rotates v by the unit quaternion q: v' = q * v * q^-1.
func RotateVec3(q Quat, v Vec3) Vec3 {
	p := Quat{Imag: v[0], Jmag: v[1], Kmag: v[2]}
	r := quat.Mul(quat.Mul(q, p), quat.Conj(q))
	return Vec3{r.Imag, r.Jmag, r.Kmag}
}

// ToMat3 converts a unit quaternion to its equivalent 3x3 rotation matrix.
func ToMat3(q Quat) Mat3 {
	w, x, y, z := q.Real, q.Imag, q.Jmag, q.Kmag
	return Mat3{
		{1 - 2*(y*y+z*z), 2 * (x*y - z*w), 2 * (x*z + y*w)},
		{2 * (x*y + z*w), 1 - 2*(x*x+z*z), 2 * (y*z - x*w)},
		{2 * (x*z - y*w), 2 * (y*z + x*w), 1 - 2*(x*x+y*y)},
	}
}

// AngleRestrictPos lifts angle into the canonical [0, 2π) range, the
// "angle_restrict_pos" operation spec.md §4.6 uses to canonicalize a
// converged rotation before multiplicity expansion.
func AngleRestrictPos(angle float64) float64 {
	const twoPi = 2 * math.Pi
	a := math.Mod(angle, twoPi)
	if a < 0 {
		a += twoPi
	}
	return a
}

// OrthodromicDistance returns the shortest-arc angular distance, modulo
// 2π, between two angles expressed in radians. It is always in [0, π].
func OrthodromicDistance(a, b float64) float64 {
	d := math.Mod(math.Abs(a-b), 2*math.Pi)
	if d > math.Pi {
		d = 2*math.Pi - d
	}
	return d
}
