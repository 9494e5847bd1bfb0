// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package engine implements the abstract pseudo-axis Engine/Mode
// framework of spec.md §4.4: modes, mode-local parameters, dependencies,
// and the auto/closed-form dispatch that drives solver.Solve or an
// analytical routine. Opaque polymorphism is modelled the way
// ele/element.go models it -- narrow, separately-composable capability
// contracts (here: Capabilities/Dependency bitsets plus function-valued
// Mode fields) instead of a class hierarchy.
package engine

// Capabilities declares which of {readable, writable, initializable} the
// current mode supports (spec.md §4.4).
type Capabilities uint8

const (
	Readable Capabilities = 1 << iota
	Writable
	Initializable
)

// Has reports whether c includes flag.
func (c Capabilities) Has(flag Capabilities) bool { return c&flag != 0 }

// Dependency declares what external state a Mode's residual/get
// functions read: the current axis snapshot, the source energy
// (wavelength), and/or the Sample (lattice + U).
type Dependency uint8

const (
	DepAxes Dependency = 1 << iota
	DepEnergy
	DepSample
)

// Has reports whether d includes flag.
func (d Dependency) Has(flag Dependency) bool { return d&flag != 0 }
