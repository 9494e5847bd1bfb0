// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package xerr declares the error taxonomy shared by every fallible
// operation in gohkl: BadInput, OutOfRange, Degenerate, NotInitialized,
// NoSolution, SolveFailed and Incompatible.
package xerr

import (
	"errors"
	"fmt"
)

// Kind is one of the taxonomy sentinels below. Callers use errors.Is
// against these to classify a failure without parsing messages.
type Kind error

var (
	BadInput       Kind = errors.New("bad input")
	OutOfRange     Kind = errors.New("out of range")
	Degenerate     Kind = errors.New("degenerate")
	NotInitialized Kind = errors.New("not initialized")
	NoSolution     Kind = errors.New("no solution")
	SolveFailed    Kind = errors.New("solve failed")
	Incompatible   Kind = errors.New("incompatible")
)

// Error carries the taxonomy kind, the offending name (axis, mode,
// parameter, ...) and a formatted message.
type Error struct {
	Kind Kind
	Name string
	Msg  string
}

func (e *Error) Error() string {
	if e.Name == "" {
		return e.Msg
	}
	return fmt.Sprintf("%s (%s): %s", e.Msg, e.Name, e.Kind)
}

func (e *Error) Unwrap() error { return e.Kind }

// E builds a structured error of the given kind, naming the offending
// entity, with a gosl/chk-style format string.
func E(kind Kind, name, format string, args ...interface{}) error {
	return &Error{Kind: kind, Name: name, Msg: fmt.Sprintf(format, args...)}
}

// Is reports whether err's kind matches kind, via errors.Is.
func Is(err error, kind Kind) bool {
	return errors.Is(err, kind)
}
