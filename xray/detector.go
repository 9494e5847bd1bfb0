// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package xray

import "github.com/cpmech/gohkl/la3"

// DetectorKind discriminates the three detector variants of spec.md §3.
type DetectorKind int

const (
	Detector0D DetectorKind = iota
	Detector1D
	Detector2D
)

// Pixel describes the pixel geometry of a 1D or 2D detector: pixel
// pitch (nm) and pixel counts along each axis (Ny is unused for 1D).
type Pixel struct {
	SizeX, SizeY float64
	Nx, Ny       int
}

// Detector exposes its local kf direction, before any Holder rotation.
type Detector struct {
	Kind  DetectorKind
	Pixel Pixel

	// KfLocal is the nominal kf direction in detector-local coordinates,
	// typically {1,0,0} (straight-through beam direction before the
	// detector holder's axes rotate it into the lab frame).
	KfLocal la3.Vec3
}

// New0D builds a point (0D) detector.
func New0D() *Detector {
	return &Detector{Kind: Detector0D, KfLocal: la3.Vec3{1, 0, 0}}
}

// New1D builds a 1D (strip) detector with the given pixel pitch and count.
func New1D(pixelSize float64, n int) *Detector {
	return &Detector{Kind: Detector1D, KfLocal: la3.Vec3{1, 0, 0}, Pixel: Pixel{SizeX: pixelSize, Nx: n}}
}

// New2D builds a 2D (area) detector with the given pixel pitch and counts.
func New2D(pixelSizeX, pixelSizeY float64, nx, ny int) *Detector {
	return &Detector{Kind: Detector2D, KfLocal: la3.Vec3{1, 0, 0}, Pixel: Pixel{SizeX: pixelSizeX, SizeY: pixelSizeY, Nx: nx, Ny: ny}}
}

// KfDirection returns the detector-local kf direction (unit vector).
func (d *Detector) KfDirection() la3.Vec3 { return d.KfLocal.Normalized() }

// PixelDirection returns the kf direction for the pixel at (ix,iy),
// offsetting KfLocal by the pixel pitch times the pixel index measured
// from the detector center. Only meaningful for 1D/2D detectors.
func (d *Detector) PixelDirection(ix, iy int) la3.Vec3 {
	if d.Kind == Detector0D {
		return d.KfDirection()
	}
	cx := float64(d.Pixel.Nx) / 2
	cy := float64(d.Pixel.Ny) / 2
	dy := (float64(ix) - cx) * d.Pixel.SizeX
	dz := (float64(iy) - cy) * d.Pixel.SizeY
	return d.KfLocal.Add(la3.Vec3{0, dy, dz}).Normalized()
}
