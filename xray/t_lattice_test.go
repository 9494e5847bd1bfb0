// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package xray

import (
	"math"
	"testing"

	"github.com/cpmech/gosl/chk"

	"github.com/cpmech/gohkl/la3"
)

func TestDegenerateLatticeRejected(tst *testing.T) {
	_, err := NewLattice(0.1, 0.1, 0.1, math.Pi, math.Pi, math.Pi)
	if err == nil {
		tst.Fatal("expected Degenerate error for a=b=c, alpha=beta=gamma=180deg")
	}
}

func TestCubicLatticeBInverse(tst *testing.T) {
	a := 0.54
	lat, err := NewLattice(a, a, a, math.Pi/2, math.Pi/2, math.Pi/2)
	if err != nil {
		tst.Fatalf("unexpected error: %v", err)
	}
	b := lat.Bmatrix()
	inv, ok := lat.BmatrixInverse()
	if !ok {
		tst.Fatal("expected invertible B for cubic lattice")
	}
	prod := b.Mul(inv)
	id := la3.Identity()
	for i := 0; i < 3; i++ {
		for j := 0; j < 3; j++ {
			chk.Scalar(tst, "B.Binv=I", 1e-10, prod[i][j], id[i][j])
		}
	}
	chk.Scalar(tst, "b*=2pi/a", 1e-10, b[0][0], 2*math.Pi/a)
}
