// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package engine

import (
	"github.com/cpmech/gohkl/geom"
	"github.com/cpmech/gohkl/xray"
)

// Context bundles everything a Mode's Get/Residual/ClosedForm function
// needs: the working Geometry (read axes already set to the reference
// snapshot's values; write axes are the solver's scratch variables),
// the Detector and Sample, and the Mode's own parameter bag.
type Context struct {
	Geometry *geom.Geometry
	Detector *xray.Detector
	Sample   *xray.Sample
	Params   *ParamBag
}
