/*
 * params.go, part of pmx
 *
 * Copyright 2025 Raul Mera A. (rmeraaatacademicosdotutadotcl)
 *
 * This program is free software; you can redistribute it and/or modify
 * it under the terms of the GNU Lesser General Public License as
 * published by the Free Software Foundation; either version 2.1 of the
 * License, or (at your option) any later version.
 *
 * This program is distributed in the hope that it will be useful,
 * but WITHOUT ANY WARRANTY; without even the implied warranty of
 * MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
 * GNU General Public License for more details.
 *
 * You should have received a copy of the GNU Lesser General
 * Public License along with this program.  If not, see
 * <http://www.gnu.org/licenses/>.
 *
 */

package pmx

import (
	"fmt"
	"slices"
)

// Gromacs dihedral function types.
const (
	DihProper         = 1
	DihImproper       = 2
	DihRB             = 3
	DihPeriodicImprop = 4
	DihProperMulti    = 9
)

// AngleUB is the Gromacs Urey-Bradley angle function type.
const AngleUB = 5

// Params is one parameter set for a bonded term. Func is the Gromacs function
// type, V the values in the order they appear in a topology:
//
//	bonds:               b0 kb
//	angles:              theta k  (Urey-Bradley: theta k ub0 kub)
//	dihedrals 1, 4, 9:   phi k multiplicity
//	dihedrals 2:         xi k
//	dihedrals 3:         c0 c1 c2 c3 c4 c5
type Params struct {
	Func int
	V    []float64
}

// NewParams returns a Params with the given function type and values.
func NewParams(f int, v ...float64) Params {
	return Params{Func: f, V: v}
}

// Copy returns a deep copy of the receiver.
func (P Params) Copy() Params {
	return Params{Func: P.Func, V: slices.Clone(P.V)}
}

// Equal returns true if both parameter sets have the same function type and values.
func (P Params) Equal(o Params) bool {
	return P.Func == o.Func && slices.Equal(P.V, o.V)
}

// Multiplicity returns the multiplicity of a periodic dihedral, or 0
// for other forms.
func (P Params) Multiplicity() int {
	switch P.Func {
	case DihProper, DihPeriodicImprop, DihProperMulti:
		if len(P.V) == 3 {
			return int(P.V[2])
		}
	}
	return 0
}

// Zeroed returns the neutral counterpart of a dihedral parameter set: the same
// form with no torsional energy. R-B terms get all coefficients set to zero,
// harmonic impropers keep their equilibrium angle and periodic forms keep
// both phase and multiplicity.
func (P Params) Zeroed() Params {
	switch {
	case P.Func == DihRB:
		return Params{Func: P.Func, V: make([]float64, 6)}
	case P.Func == DihImproper && len(P.V) > 0:
		return Params{Func: P.Func, V: []float64{P.V[0], 0}}
	case len(P.V) > 1:
		return Params{Func: P.Func, V: []float64{P.V[0], 0, P.V[len(P.V)-1]}}
	}
	//nothing sensible to keep
	return Params{Func: P.Func, V: make([]float64, len(P.V))}
}

// WithoutForce returns a copy of a bond or angle parameter set with the force
// constant(s) set to zero and the geometry kept. For Urey-Bradley angles
// both constants are zeroed.
func (P Params) WithoutForce() Params {
	r := P.Copy()
	if len(r.V) > 1 {
		r.V[1] = 0
	}
	if len(r.V) > 3 {
		r.V[3] = 0
	}
	return r
}

func (P Params) String() string {
	return fmt.Sprintf("[%d %v]", P.Func, P.V)
}

// SlotState tells what kind of content a parameter slot has.
type SlotState int

const (
	//Unresolved slots were never touched by the resolver, the
	//term is written with its original parameters, if any.
	Unresolved SlotState = iota
	//Concrete slots hold parameters for a physical interaction.
	Concrete
	//Zeroed slots hold the neutral counterpart of the other state.
	Zeroed
	//Deferred slots are to be filled by the generic dihedral resolver.
	Deferred
	//Inert slots mark terms that are not meaningful in either state.
	Inert
)

func (s SlotState) String() string {
	switch s {
	case Concrete:
		return "concrete"
	case Zeroed:
		return "zeroed"
	case Deferred:
		return "deferred"
	case Inert:
		return "inert"
	}
	return "unresolved"
}

// Slot is the parameter set of a bonded term in one state.
type Slot struct {
	State SlotState
	P     Params
}

// ConcreteSlot returns a slot with a copy of p.
func ConcreteSlot(p Params) Slot {
	return Slot{State: Concrete, P: p.Copy()}
}

// ZeroedSlot returns a slot with the neutral counterpart of p.
func ZeroedSlot(p Params) Slot {
	return Slot{State: Zeroed, P: p.Zeroed()}
}

// InertSlot returns a slot marking a term with no meaning.
func InertSlot() Slot {
	return Slot{State: Inert}
}

// Filled returns true if the slot holds parameters (concrete or zeroed).
func (S Slot) Filled() bool {
	return S.State == Concrete || S.State == Zeroed
}

// Open returns true if the slot still needs to be assigned.
func (S Slot) Open() bool {
	return S.State == Unresolved || S.State == Deferred
}

func (S Slot) copySlot() Slot {
	return Slot{State: S.State, P: S.P.Copy()}
}
