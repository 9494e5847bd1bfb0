// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package xray

import (
	"math"

	"gonum.org/v1/gonum/optimize"

	"github.com/cpmech/gohkl/la3"
	"github.com/cpmech/gohkl/param"
	"github.com/cpmech/gohkl/unit"
	"github.com/cpmech/gohkl/xerr"
)

// Reflection binds one measured (h,k,l) to the sample-frame momentum
// transfer Q observed for it (Q is computed by the engine layer from a
// Geometry+Detector snapshot and handed in here, keeping xray free of a
// dependency on geom and avoiding the cyclic reference spec.md §9 warns
// against).
type Reflection struct {
	HKL la3.Vec3
	Q   la3.Vec3
}

// Sample owns a Lattice and an orientation U expressed as three
// Euler-like angles (ux,uy,uz), caches UB, and keeps the reflections
// used by the closed-form and least-squares UB helpers.
type Sample struct {
	Name    string
	Lattice *Lattice

	Ux, Uy, Uz *param.Parameter

	reflections []Reflection

	ub    la3.Mat3
	uMat  la3.Mat3
	valid bool
}

// NewSample builds a Sample around the given Lattice with an initially
// identity U.
func NewSample(name string, lat *Lattice) *Sample {
	s := &Sample{
		Name:    name,
		Lattice: lat,
		Ux:      param.New("ux", 0, unit.Degree),
		Uy:      param.New("uy", 0, unit.Degree),
		Uz:      param.New("uz", 0, unit.Degree),
	}
	s.recomputeU()
	return s
}

func (s *Sample) recomputeU() {
	qx := la3.FromAxisAngle(la3.Vec3{1, 0, 0}, s.Ux.Value(unit.Default))
	qy := la3.FromAxisAngle(la3.Vec3{0, 1, 0}, s.Uy.Value(unit.Default))
	qz := la3.FromAxisAngle(la3.Vec3{0, 0, 1}, s.Uz.Value(unit.Default))
	s.uMat = la3.ToMat3(qz).Mul(la3.ToMat3(qy)).Mul(la3.ToMat3(qx))
	s.ub = s.uMat.Mul(s.Lattice.Bmatrix())
	s.valid = true
}

// U returns the cached orientation matrix.
func (s *Sample) U() la3.Mat3 {
	return s.uMat
}

// UB returns the cached U.B matrix.
func (s *Sample) UB() la3.Mat3 {
	return s.ub
}

// SetUMatrix sets U directly from a rotation matrix (e.g. the result of
// ComputeUBFromTwoReflections). Ux,Uy,Uz are left as they were: the
// matrix is not decomposed back into angles.
func (s *Sample) SetUMatrix(u la3.Mat3) {
	s.uMat = u
	s.ub = u.Mul(s.Lattice.Bmatrix())
	s.valid = true
}

// AddReflection records a (h,k,l) <-> measured-Q pair for later UB
// determination/refinement.
func (s *Sample) AddReflection(r Reflection) {
	s.reflections = append(s.reflections, r)
}

// Reflections returns the recorded reflections.
func (s *Sample) Reflections() []Reflection { return s.reflections }

// ComputeUBFromTwoReflections implements the Busing & Levy (1967)
// closed-form two-reflection orientation determination: given two
// non-collinear reflections, it builds an orthonormal triad from each
// reflection's B-transformed (h,k,l) and from its measured Q, then sets
// U as the rotation mapping one triad onto the other (spec.md §4.3).
func (s *Sample) ComputeUBFromTwoReflections(r1, r2 Reflection) error {
	h1c := s.Lattice.Bmatrix().MulVec(r1.HKL)
	h2c := s.Lattice.Bmatrix().MulVec(r2.HKL)

	t1c := h1c.Normalized()
	n3c := h1c.Cross(h2c)
	if n3c.Norm() < 1e-12 {
		return xerr.E(xerr.Degenerate, "sample", "reflections are collinear in reciprocal space")
	}
	t3c := n3c.Normalized()
	t2c := t3c.Cross(t1c)

	t1p := r1.Q.Normalized()
	n3p := r1.Q.Cross(r2.Q)
	if n3p.Norm() < 1e-12 {
		return xerr.E(xerr.Degenerate, "sample", "measured Q vectors are collinear")
	}
	t3p := n3p.Normalized()
	t2p := t3p.Cross(t1p)

	// Tc columns are (t1c,t2c,t3c); Tc is orthonormal so its inverse is
	// its transpose. U = Tphi . Tc^T.
	tc := la3.Mat3{
		{t1c[0], t2c[0], t3c[0]},
		{t1c[1], t2c[1], t3c[1]},
		{t1c[2], t2c[2], t3c[2]},
	}
	tphi := la3.Mat3{
		{t1p[0], t2p[0], t3p[0]},
		{t1p[1], t2p[1], t3p[1]},
		{t1p[2], t2p[2], t3p[2]},
	}
	u := tphi.Mul(tc.Transpose())
	s.SetUMatrix(u)
	s.AddReflection(r1)
	s.AddReflection(r2)
	return nil
}

// RefineU runs a Nelder-Mead simplex (gonum/optimize) over ux,uy,uz,
// minimizing the sum of squared residuals between each recorded
// reflection's B-transformed (h,k,l), rotated by the candidate U, and
// its measured Q direction. The simplex is unbounded: ux,uy,uz are not
// held to any range. The returned fit-quality scalar is the
// root-mean-square residual, sqrt(final cost / number of reflections).
func (s *Sample) RefineU() (fitQuality float64, err error) {
	if len(s.reflections) == 0 {
		return 0, xerr.E(xerr.BadInput, "sample", "no reflections recorded to refine against")
	}
	cost := func(x []float64) float64 {
		qx := la3.FromAxisAngle(la3.Vec3{1, 0, 0}, x[0])
		qy := la3.FromAxisAngle(la3.Vec3{0, 1, 0}, x[1])
		qz := la3.FromAxisAngle(la3.Vec3{0, 0, 1}, x[2])
		u := la3.ToMat3(qz).Mul(la3.ToMat3(qy)).Mul(la3.ToMat3(qx))
		ub := u.Mul(s.Lattice.Bmatrix())
		sum := 0.0
		for _, r := range s.reflections {
			pred := ub.MulVec(r.HKL).Normalized()
			meas := r.Q.Normalized()
			d := pred.Sub(meas)
			sum += d.Dot(d)
		}
		return sum
	}
	x0 := []float64{s.Ux.Value(unit.Default), s.Uy.Value(unit.Default), s.Uz.Value(unit.Default)}
	problem := optimize.Problem{Func: cost}
	result, optErr := optimize.Minimize(problem, x0, nil, &optimize.NelderMead{})
	if optErr != nil {
		return 0, xerr.E(xerr.SolveFailed, "sample", "U refinement failed: %v", optErr)
	}
	s.Ux.SetValue(result.X[0], unit.Default)
	s.Uy.SetValue(result.X[1], unit.Default)
	s.Uz.SetValue(result.X[2], unit.Default)
	s.recomputeU()
	return math.Sqrt(result.F / float64(len(s.reflections))), nil
}
