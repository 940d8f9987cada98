/*
 * terms.go, part of pmx
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

import "slices"

// Bond is a 2-atom bonded term. Raw contains the parameter columns
// as read from the topology, and is only used for terms whose slots were never
// resolved.
type Bond struct {
	Atoms [2]int
	Func  int
	Raw   []string
	A, B  Slot
}

// Angle is a 3-atom bonded term.
type Angle struct {
	Atoms [3]int
	Func  int
	Raw   []string
	A, B  Slot
}

// Dihedral is a 4-atom bonded term, proper or improper.
type Dihedral struct {
	Atoms [4]int
	Func  int
	Raw   []string
	//Macro is the #define name given as parameter in the topology, if any
	//(e.g. the torsion_ and dih_ entries of ILDN and OPLS force fields).
	Macro string
	//Block is the index of the [ dihedrals ] section the term belongs to.
	Block int
	A, B  Slot
}

// Slot returns a pointer to the slot for state s.
func (B *Bond) Slot(s State) *Slot {
	if s == StateB {
		return &B.B
	}
	return &B.A
}

// Has returns true if the atom with the given id is part of the bond.
func (B *Bond) Has(id int) bool {
	return B.Atoms[0] == id || B.Atoms[1] == id
}

// Perturbed returns true if any slot of the term was resolved.
func (B *Bond) Perturbed() bool {
	return B.A.State != Unresolved || B.B.State != Unresolved
}

func (B *Bond) copyBond() *Bond {
	return &Bond{Atoms: B.Atoms, Func: B.Func, Raw: slices.Clone(B.Raw), A: B.A.copySlot(), B: B.B.copySlot()}
}

// Slot returns a pointer to the slot for state s.
func (A *Angle) Slot(s State) *Slot {
	if s == StateB {
		return &A.B
	}
	return &A.A
}

// Has returns true if the atom with the given id is part of the angle.
func (A *Angle) Has(id int) bool {
	return slices.Contains(A.Atoms[:], id)
}

// Perturbed returns true if any slot of the term was resolved.
func (A *Angle) Perturbed() bool {
	return A.A.State != Unresolved || A.B.State != Unresolved
}

func (A *Angle) copyAngle() *Angle {
	return &Angle{Atoms: A.Atoms, Func: A.Func, Raw: slices.Clone(A.Raw), A: A.A.copySlot(), B: A.B.copySlot()}
}

// DihedralKey identifies a dihedral by its ordered atom ids. Note that
// A-B-C-D and D-C-B-A are the same dihedral but different keys.
type DihedralKey [4]int

// Key returns the DihedralKey of the term.
func (D *Dihedral) Key() DihedralKey {
	return DihedralKey(D.Atoms)
}

// Slot returns a pointer to the slot for state s.
func (D *Dihedral) Slot(s State) *Slot {
	if s == StateB {
		return &D.B
	}
	return &D.A
}

// Has returns true if the atom with the given id is part of the dihedral.
func (D *Dihedral) Has(id int) bool {
	return slices.Contains(D.Atoms[:], id)
}

// Matches returns true if the dihedral is made of the atoms ids, in
// the same or the reverse order.
func (D *Dihedral) Matches(ids [4]int) bool {
	if D.Atoms == ids {
		return true
	}
	return D.Atoms[0] == ids[3] && D.Atoms[1] == ids[2] && D.Atoms[2] == ids[1] && D.Atoms[3] == ids[0]
}

// Inert returns true if the term was marked as meaningless in both states.
func (D *Dihedral) Inert() bool {
	return D.A.State == Inert || D.B.State == Inert
}

// Perturbed returns true if any slot of the term was resolved.
func (D *Dihedral) Perturbed() bool {
	return D.A.State != Unresolved || D.B.State != Unresolved
}

// Derive returns a new dihedral on the same atoms and in the same
// section as the receiver, with the given slots. The function type is taken
// from the first filled slot.
func (D *Dihedral) Derive(a, b Slot) *Dihedral {
	f := D.Func
	if a.Filled() {
		f = a.P.Func
	} else if b.Filled() {
		f = b.P.Func
	}
	return &Dihedral{Atoms: D.Atoms, Func: f, Block: D.Block, A: a.copySlot(), B: b.copySlot()}
}

// Set assigns both slots, updating the function type as in Derive.
func (D *Dihedral) Set(a, b Slot) {
	if a.Filled() {
		D.Func = a.P.Func
	} else if b.Filled() {
		D.Func = b.P.Func
	}
	D.A = a.copySlot()
	D.B = b.copySlot()
}

func (D *Dihedral) copyDihedral() *Dihedral {
	return &Dihedral{Atoms: D.Atoms, Func: D.Func, Raw: slices.Clone(D.Raw), Macro: D.Macro, Block: D.Block, A: D.A.copySlot(), B: D.B.copySlot()}
}
