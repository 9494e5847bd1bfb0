// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package glist implements GeometryList and GeometryListItem: the
// solution container spec.md §3/§4.6 describes — a doubly linked list of
// deep-copied Geometries, de-duplicated by orthodromic distance, with
// optional sorting and a "multiply" expansion hook. container/list is
// the one stdlib-justified container in this module: no third-party
// linked-list package appears anywhere in the pack (see DESIGN.md).
package glist

import (
	"container/list"
	"sort"

	"github.com/cpmech/gohkl/geom"
)

// Item wraps one solution Geometry as stored in a GeometryList.
type Item struct {
	g *geom.Geometry
}

// Geometry returns the item's Geometry.
func (it *Item) Geometry() *geom.Geometry { return it.g }

// List is the doubly linked, de-duplicated container of solutions.
type List struct {
	l   *list.List
	eps float64
}

// New creates an empty GeometryList with the given de-duplication
// epsilon (orthodromic distance below which two items are the same
// solution).
func New(eps float64) *List {
	return &List{l: list.New(), eps: eps}
}

// Size returns the number of items currently stored.
func (gl *List) Size() int { return gl.l.Len() }

// Items returns every stored Item, in list order.
func (gl *List) Items() []*Item {
	out := make([]*Item, 0, gl.l.Len())
	for e := gl.l.Front(); e != nil; e = e.Next() {
		out = append(out, e.Value.(*Item))
	}
	return out
}

// Insert adds g (already a fresh, owned copy) unless an existing item is
// within eps orthodromic distance of it, in which case it is dropped
// (spec.md §3 GeometryList invariant: items are pairwise separated by
// orthodromic distance >= eps).
func (gl *List) Insert(g *geom.Geometry) bool {
	for e := gl.l.Front(); e != nil; e = e.Next() {
		existing := e.Value.(*Item).g
		if existing.DistanceOrthodromic(g) < gl.eps {
			return false
		}
	}
	gl.l.PushBack(&Item{g: g})
	return true
}

// MultiplyHook expands one accepted solution into additional ones (e.g.
// the SIXS MED 2+3 slit-orientation fit of spec.md §4.6 step 7). It may
// rewrite g in place and/or return extra Geometries to insert.
type MultiplyHook func(g *geom.Geometry) (extra []*geom.Geometry, err error)

// ApplyMultiplyHook runs hook over every currently-stored item and
// inserts whatever extra Geometries it returns, honoring the same
// de-duplication rule as Insert.
func (gl *List) ApplyMultiplyHook(hook MultiplyHook) error {
	if hook == nil {
		return nil
	}
	for _, it := range gl.Items() {
		extra, err := hook(it.g)
		if err != nil {
			return err
		}
		for _, g := range extra {
			gl.Insert(g)
		}
	}
	return nil
}

// DropInvalid removes every item whose Geometry has at least one axis
// that fails IsValid(requireRange) (spec.md §4.6 step 8).
func (gl *List) DropInvalid(requireRange bool) {
	for e := gl.l.Front(); e != nil; {
		next := e.Next()
		g := e.Value.(*Item).g
		invalid := false
		for _, p := range g.Axes() {
			if !p.IsValid(requireRange) {
				invalid = true
				break
			}
		}
		if invalid {
			gl.l.Remove(e)
		}
		e = next
	}
}

// SortByDistanceTo reorders items by ascending sum-of-|delta-axis|
// distance to reference (spec.md §4.6 step 9), stable at ties within
// eps.
func (gl *List) SortByDistanceTo(reference *geom.Geometry) {
	items := gl.Items()
	dist := make([]float64, len(items))
	for i, it := range items {
		dist[i] = it.g.Distance(reference)
	}
	idx := make([]int, len(items))
	for i := range idx {
		idx[i] = i
	}
	sort.SliceStable(idx, func(a, b int) bool {
		da, db := dist[idx[a]], dist[idx[b]]
		if db-da > gl.eps || da-db > gl.eps {
			return da < db
		}
		return false
	})
	gl.l.Init()
	for _, i := range idx {
		gl.l.PushBack(items[i])
	}
}
