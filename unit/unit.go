// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package unit implements the unit descriptors used to convert between
// the internal ("default") representation of a scalar and the unit a
// caller wants to see it in (e.g. radians vs degrees, nm vs Å).
package unit

import "math"

// Kind selects which of a Parameter's two units a get/set call targets.
type Kind int

const (
	Default Kind = iota // the internal unit (radians for angles, nm for wavelength, ...)
	User                // the caller-facing display unit
)

// Unit holds the conversion factor between the internal unit and a
// user-facing one: user_value = default_value * ToUser, and
// default_value = user_value / ToUser.
type Unit struct {
	Name   string  // display name, e.g. "degree", "Å"
	ToUser float64 // multiply a default-unit value by this to get the user value
}

// Convert maps a value expressed in `from` into the equivalent value in
// `to`. Both units must share the same underlying quantity (the caller
// is responsible for that; Unit does no dimensional analysis).
func Convert(v float64, from, to Unit) float64 {
	if from.ToUser == 0 {
		return v
	}
	return v / from.ToUser * to.ToUser
}

// Radian is the internal unit for every rotation Parameter.
var Radian = Unit{Name: "radian", ToUser: 1}

// Degree is the common display unit for rotation Parameters.
var Degree = Unit{Name: "degree", ToUser: 180 / math.Pi}

// Nanometer is the internal unit for wavelength and translations.
var Nanometer = Unit{Name: "nm", ToUser: 1}

// Angstrom is the common display unit for wavelength and lattice lengths.
var Angstrom = Unit{Name: "Å", ToUser: 10}

// RLU ("reciprocal lattice unit") is both the internal and display unit
// for dimensionless pseudo-axes (h, k, l, ...): ToUser is 1, so
// Convert is the identity.
var RLU = Unit{Name: "rlu", ToUser: 1}

// InverseNanometer is the internal unit for momentum-transfer pseudo-axes
// (q, qper, qpar): nm⁻¹.
var InverseNanometer = Unit{Name: "nm⁻¹", ToUser: 1}

// InverseAngstrom is the common display unit for momentum-transfer
// pseudo-axes.
var InverseAngstrom = Unit{Name: "Å⁻¹", ToUser: 0.1}
