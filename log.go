// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package gohkl is the root of a diffractometer pseudo-axis kinematics
// engine: direct (axes -> pseudo-axes) and inverse (pseudo-axes -> axes)
// computation for X-ray diffraction geometries, built from the packages
// under this module (xerr, unit, la3, param, geom, xray, solver, glist,
// engine, the concrete engines, and diffracto). This file only wires the
// module-wide logger; see SPEC_FULL.md for the full package map.
package gohkl

import (
	"os"

	"github.com/rs/zerolog"
)

// log is silent by default -- callers embedding gohkl in a larger program
// opt in with SetLogger, mirroring how a library logger should behave
// (never write to stderr/stdout unless asked).
var log = zerolog.Nop()

// SetLogger installs l as the module-wide logger used by solver restarts,
// engine mode switches, and diffractometer registration.
func SetLogger(l zerolog.Logger) {
	log = l
}

// Logger returns the module-wide logger, for packages under this module
// that need to emit structured log events without importing zerolog
// themselves for the default.
func Logger() zerolog.Logger {
	return log
}

// NewConsoleLogger is a convenience constructor for a human-readable
// logger writing to stderr, the shape every gofem command-line tool
// wires up via its own flags.
func NewConsoleLogger(debug bool) zerolog.Logger {
	level := zerolog.InfoLevel
	if debug {
		level = zerolog.DebugLevel
	}
	return zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr}).
		Level(level).
		With().Timestamp().Logger()
}
