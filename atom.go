/*
 * atom.go, part of pmx
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

import "strings"

// DummyPrefix starts the name of every dummy atom type.
const DummyPrefix = "DUM"

// State is one of the two end states of a perturbation.
type State int

const (
	StateA State = iota
	StateB
)

func (s State) String() string {
	if s == StateB {
		return "B"
	}
	return "A"
}

// Other returns the opposite end state.
func (s State) Other() State {
	if s == StateA {
		return StateB
	}
	return StateA
}

// Atom contains the A and B state data of one topology atom.
// Type and TypeB are the bonded types (the ones used to look up
// bonded parameters), AtomType and AtomTypeB the non-bonded ones.
type Atom struct {
	ID       int
	Name     string
	ResName  string
	ResNr    int
	CGNr     int
	AtomType string
	Type     string
	Q        float64
	M        float64
	//HasB is false if the atom has no B state at all, which is not
	//the same as a B state identical to the A state.
	HasB      bool
	AtomTypeB string
	TypeB     string
	QB        float64
	MB        float64
}

// AtomTypeIn returns the non-bonded type of the atom in state s.
func (A *Atom) AtomTypeIn(s State) string {
	if s == StateB && A.HasB {
		return A.AtomTypeB
	}
	return A.AtomType
}

// TypeIn returns the bonded type of the atom in state s.
func (A *Atom) TypeIn(s State) string {
	if s == StateB && A.HasB {
		if A.TypeB == "" {
			return A.AtomTypeB
		}
		return A.TypeB
	}
	if A.Type == "" {
		return A.AtomType
	}
	return A.Type
}

// ChargeIn returns the charge of the atom in state s.
func (A *Atom) ChargeIn(s State) float64 {
	if s == StateB && A.HasB {
		return A.QB
	}
	return A.Q
}

// IsDummy returns true if the atom is a dummy in state s. An atom without
// B state is never a dummy in state B.
func (A *Atom) IsDummy(s State) bool {
	if s == StateB && !A.HasB {
		return false
	}
	return IsDummyType(A.AtomTypeIn(s))
}

// IsDummyType returns true if the atom type name is a dummy type.
func IsDummyType(atomtype string) bool {
	return strings.HasPrefix(atomtype, DummyPrefix)
}

// Morphs returns true if the atom has a B state that differs from the A state
// in type, charge or mass.
func (A *Atom) Morphs() bool {
	if !A.HasB {
		return false
	}
	return A.Q != A.QB || A.M != A.MB || A.AtomType != A.AtomTypeB
}

// TypeMorphs returns true if the non-bonded type changes between states.
func (A *Atom) TypeMorphs() bool {
	return A.HasB && A.AtomType != A.AtomTypeB
}
