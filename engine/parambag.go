// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package engine

import (
	"github.com/cpmech/gohkl/param"
	"github.com/cpmech/gohkl/unit"
	"github.com/cpmech/gohkl/xerr"
)

// ParamBag is a named, ordered bag of scalars -- the heterogeneous,
// mode-keyed parameter set spec.md §9 calls for (e.g. "h2,k2,l2" for
// double-diffraction, surface-normal components, fixed axis values).
type ParamBag struct {
	order  []string
	byName map[string]*param.Parameter
}

// NewParamBag builds an empty bag.
func NewParamBag() *ParamBag {
	return &ParamBag{byName: make(map[string]*param.Parameter)}
}

// Add registers p under its own name; re-adding the same name replaces
// the previous Parameter and keeps its original position in the order.
func (b *ParamBag) Add(p *param.Parameter) {
	if _, ok := b.byName[p.Name]; !ok {
		b.order = append(b.order, p.Name)
	}
	b.byName[p.Name] = p
}

// Names returns the bag's parameter names in insertion order.
func (b *ParamBag) Names() []string { return b.order }

// Get returns the named parameter.
func (b *ParamBag) Get(name string) (*param.Parameter, error) {
	p, ok := b.byName[name]
	if !ok {
		return nil, xerr.E(xerr.BadInput, name, "no such mode parameter")
	}
	return p, nil
}

// Values returns every parameter's value, in bag order, in the
// requested unit.
func (b *ParamBag) Values(u unit.Kind) []float64 {
	out := make([]float64, len(b.order))
	for i, n := range b.order {
		out[i] = b.byName[n].Value(u)
	}
	return out
}

// SetValues sets every parameter's value, in bag order.
func (b *ParamBag) SetValues(values []float64, u unit.Kind) error {
	if len(values) != len(b.order) {
		return xerr.E(xerr.BadInput, "", "expected %d mode parameter values, got %d", len(b.order), len(values))
	}
	for i, v := range values {
		if err := b.byName[b.order[i]].SetValue(v, u); err != nil {
			return err
		}
	}
	return nil
}

// Clone deep-copies the bag.
func (b *ParamBag) Clone() *ParamBag {
	out := NewParamBag()
	for _, n := range b.order {
		cp := *b.byName[n]
		out.Add(&cp)
	}
	return out
}
