// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package la3

import (
	"math"
	"testing"

	"github.com/cpmech/gosl/chk"
)

func TestRotateVec3(tst *testing.T) {
	q := FromAxisAngle(Vec3{0, 0, 1}, math.Pi/2)
	v := RotateVec3(q, Vec3{1, 0, 0})
	chk.Scalar(tst, "x", 1e-14, v[0], 0)
	chk.Scalar(tst, "y", 1e-14, v[1], 1)
	chk.Scalar(tst, "z", 1e-14, v[2], 0)
}

func TestAngleRestrictPos(tst *testing.T) {
	chk.Scalar(tst, "restrict -π/2", 1e-14, AngleRestrictPos(-math.Pi/2), 3*math.Pi/2)
	chk.Scalar(tst, "restrict 0", 1e-14, AngleRestrictPos(0), 0)
	chk.Scalar(tst, "restrict 2π+0.1", 1e-14, AngleRestrictPos(2*math.Pi+0.1), 0.1)
}

func TestOrthodromicDistance(tst *testing.T) {
	chk.Scalar(tst, "same", 1e-14, OrthodromicDistance(0.1, 0.1), 0)
	chk.Scalar(tst, "wrap", 1e-12, OrthodromicDistance(0.1, 2*math.Pi+0.1-1e-13), 0)
	d := OrthodromicDistance(0, math.Pi)
	chk.Scalar(tst, "opposite", 1e-14, d, math.Pi)
}

func TestMat3Inverse(tst *testing.T) {
	m := Mat3{{2, 0, 0}, {0, 2, 0}, {0, 0, 2}}
	inv, err := m.Inverse()
	if err != nil {
		tst.Fatalf("unexpected error: %v", err)
	}
	prod := m.Mul(inv)
	id := Identity()
	for i := 0; i < 3; i++ {
		for j := 0; j < 3; j++ {
			chk.Scalar(tst, "I", 1e-14, prod[i][j], id[i][j])
		}
	}
}
