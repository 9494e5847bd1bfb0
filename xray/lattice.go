// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package xray implements the crystallographic data a Sample owns: the
// direct Lattice (a,b,c,alpha,beta,gamma), its derived B matrix, and the
// Detector's local kf direction. Modelled after the parameter-set +
// Init/GetPrms shape of mdl/solid.Model, adapted to a fixed six-scalar
// record instead of a registry of interchangeable models.
package xray

import (
	"math"

	"github.com/cpmech/gohkl/la3"
	"github.com/cpmech/gohkl/param"
	"github.com/cpmech/gohkl/unit"
	"github.com/cpmech/gohkl/xerr"
)

// Lattice holds the six direct-cell Parameters (a,b,c in nm; alpha,
// beta,gamma in radians) plus a derived volume Parameter, and caches B
// and its inverse.
type Lattice struct {
	A, B, C          *param.Parameter
	Alpha, Beta, Gam *param.Parameter
	Volume           *param.Parameter

	bMat    la3.Mat3
	bInv    la3.Mat3
	haveInv bool
}

// NewLattice builds a Lattice from direct-cell parameters (a,b,c in nm;
// alpha,beta,gamma in radians), validating the positive-cell-volume
// invariant of spec.md §3:
// 1 - cos^2(alpha) - cos^2(beta) - cos^2(gamma) + 2 cos(alpha) cos(beta) cos(gamma) > 0.
func NewLattice(a, b, c, alpha, beta, gamma float64) (*Lattice, error) {
	ca, cb, cg := math.Cos(alpha), math.Cos(beta), math.Cos(gamma)
	d := 1 - ca*ca - cb*cb - cg*cg + 2*ca*cb*cg
	if d <= 0 {
		return nil, xerr.E(xerr.Degenerate, "lattice", "non-positive cell volume factor %g for a=%g b=%g c=%g alpha=%g beta=%g gamma=%g", d, a, b, c, alpha, beta, gamma)
	}
	l := &Lattice{
		A:     param.New("a", a, unit.Angstrom),
		B:     param.New("b", b, unit.Angstrom),
		C:     param.New("c", c, unit.Angstrom),
		Alpha: param.New("alpha", alpha, unit.Degree),
		Beta:  param.New("beta", beta, unit.Degree),
		Gam:   param.New("gamma", gamma, unit.Degree),
	}
	l.recompute()
	return l, nil
}

func (l *Lattice) recompute() {
	a, b, c := l.A.Value(unit.Default), l.B.Value(unit.Default), l.C.Value(unit.Default)
	alpha, beta, gamma := l.Alpha.Value(unit.Default), l.Beta.Value(unit.Default), l.Gam.Value(unit.Default)
	sa, sb, sg := math.Sin(alpha), math.Sin(beta), math.Sin(gamma)
	ca, cb, cg := math.Cos(alpha), math.Cos(beta), math.Cos(gamma)

	vol := a * b * c * math.Sqrt(1-ca*ca-cb*cb-cg*cg+2*ca*cb*cg)
	l.Volume = param.New("volume", vol, unit.Unit{Name: "Å³", ToUser: 1000})

	as := 2 * math.Pi * b * c * sa / vol
	bs := 2 * math.Pi * a * c * sb / vol
	cs := 2 * math.Pi * a * b * sg / vol

	cosAlphaS := (cb*cg - ca) / (sb * sg)
	cosBetaS := (ca*cg - cb) / (sa * sg)
	cosGammaS := (ca*cb - cg) / (sa * sb)
	sinBetaS := math.Sqrt(1 - cosBetaS*cosBetaS)
	sinGammaS := math.Sqrt(1 - cosGammaS*cosGammaS)

	l.bMat = la3.Mat3{
		{as, bs * cosGammaS, cs * cosBetaS},
		{0, bs * sinGammaS, -cs * sinBetaS * ca},
		{0, 0, 2 * math.Pi / c},
	}
	if inv, err := l.bMat.Inverse(); err == nil {
		l.bInv = inv
		l.haveInv = true
	} else {
		l.haveInv = false
	}
}

// Recompute refreshes B/Binv/Volume after any of a,b,c,alpha,beta,gamma
// has been mutated directly through its Parameter.
func (l *Lattice) Recompute() error {
	alpha, beta, gamma := l.Alpha.Value(unit.Default), l.Beta.Value(unit.Default), l.Gam.Value(unit.Default)
	ca, cb, cg := math.Cos(alpha), math.Cos(beta), math.Cos(gamma)
	d := 1 - ca*ca - cb*cb - cg*cg + 2*ca*cb*cg
	if d <= 0 {
		return xerr.E(xerr.Degenerate, "lattice", "non-positive cell volume factor %g", d)
	}
	l.recompute()
	return nil
}

// Bmatrix returns the cached reciprocal-basis B matrix (maps (h,k,l) to
// a sample-frame vector, in rad/nm).
func (l *Lattice) Bmatrix() la3.Mat3 { return l.bMat }

// BmatrixInverse returns the cached inverse of B.
func (l *Lattice) BmatrixInverse() (la3.Mat3, bool) { return l.bInv, l.haveInv }
