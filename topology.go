/*
 * topology.go, part of pmx
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

	"gonum.org/v1/gonum/floats"
)

// Section is a piece of a topology file. Sections that the model understands
// (atoms, bonds, angles, dihedrals) are regenerated from the Topology
// when writing, everything else is kept verbatim in Lines.
type Section struct {
	Header string //normalized header name, "" for the lines before the first header
	Title  string //the header line as read
	Block  int    //index among the sections with the same header
	Lines  []string
	//Model is true for the sections whose content is in the Topology
	//and is regenerated on writing.
	Model bool
}

// Topology owns the atoms and bonded terms of one molecule type. Atoms are
// stored in file order and addressed by their id.
type Topology struct {
	Name      string
	Atoms     []*Atom
	Bonds     []*Bond
	Angles    []*Angle
	Dihedrals []*Dihedral
	Sections  []Section
	index     map[int]int
}

// NewTopology returns a topology with the given atoms. It returns an error if
// two atoms share an id.
func NewTopology(ats []*Atom) (*Topology, error) {
	T := &Topology{Atoms: ats}
	if err := T.Reindex(); err != nil {
		return nil, err
	}
	return T, nil
}

// Reindex rebuilds the id->position index. It needs to be called after
// the Atoms slice is modified directly.
func (T *Topology) Reindex() error {
	T.index = make(map[int]int, len(T.Atoms))
	for i, a := range T.Atoms {
		if _, ok := T.index[a.ID]; ok {
			return fmt.Errorf("pmx/Topology.Reindex: repeated atom id %d", a.ID)
		}
		T.index[a.ID] = i
	}
	return nil
}

// AddAtom appends an atom to the topology.
func (T *Topology) AddAtom(a *Atom) error {
	if T.index == nil {
		if err := T.Reindex(); err != nil {
			return err
		}
	}
	if _, ok := T.index[a.ID]; ok {
		return fmt.Errorf("pmx/Topology.AddAtom: repeated atom id %d", a.ID)
	}
	T.index[a.ID] = len(T.Atoms)
	T.Atoms = append(T.Atoms, a)
	return nil
}

// Atom returns the atom with the given id, or nil if there is no such atom.
func (T *Topology) Atom(id int) *Atom {
	if T.index == nil {
		if err := T.Reindex(); err != nil {
			panic(err.Error())
		}
	}
	i, ok := T.index[id]
	if !ok {
		return nil
	}
	return T.Atoms[i]
}

// MustAtom is like Atom but panics if the id is not in the topology.
// Bonded terms only refer to existing atoms, so this is a programming error.
func (T *Topology) MustAtom(id int) *Atom {
	a := T.Atom(id)
	if a == nil {
		panic(fmt.Sprintf("pmx/Topology: no atom with id %d", id))
	}
	return a
}

// Len returns the number of atoms in the topology.
func (T *Topology) Len() int {
	return len(T.Atoms)
}

// Morphs returns true if any of the atoms with the given ids morphs.
func (T *Topology) Morphs(ids ...int) bool {
	for _, id := range ids {
		if T.MustAtom(id).Morphs() {
			return true
		}
	}
	return false
}

// TypeMorphs returns true if the non-bonded type of any of the atoms with the
// given ids changes between states.
func (T *Topology) TypeMorphs(ids ...int) bool {
	for _, id := range ids {
		if T.MustAtom(id).TypeMorphs() {
			return true
		}
	}
	return false
}

// HasB returns true if any of the atoms with the given ids has a B state.
func (T *Topology) HasB(ids ...int) bool {
	for _, id := range ids {
		if T.MustAtom(id).HasB {
			return true
		}
	}
	return false
}

// Charge returns the total charge of the topology in state s.
func (T *Topology) Charge(s State) float64 {
	q := make([]float64, len(T.Atoms))
	for i, a := range T.Atoms {
		q[i] = a.ChargeIn(s)
	}
	return floats.Sum(q)
}

// Copy returns a deep copy of the topology.
func (T *Topology) Copy() *Topology {
	ret := &Topology{Name: T.Name}
	ret.Atoms = make([]*Atom, len(T.Atoms))
	for i, a := range T.Atoms {
		na := *a
		ret.Atoms[i] = &na
	}
	ret.Bonds = make([]*Bond, len(T.Bonds))
	for i, b := range T.Bonds {
		ret.Bonds[i] = b.copyBond()
	}
	ret.Angles = make([]*Angle, len(T.Angles))
	for i, a := range T.Angles {
		ret.Angles[i] = a.copyAngle()
	}
	ret.Dihedrals = make([]*Dihedral, len(T.Dihedrals))
	for i, d := range T.Dihedrals {
		ret.Dihedrals[i] = d.copyDihedral()
	}
	ret.Sections = make([]Section, len(T.Sections))
	for i, s := range T.Sections {
		s.Lines = slices.Clone(s.Lines)
		ret.Sections[i] = s
	}
	if err := ret.Reindex(); err != nil {
		panic(err.Error()) //can't happen, the original was indexed.
	}
	return ret
}

// LastBlock returns the index of the last [ dihedrals ] section, or 0 if
// there is none.
func (T *Topology) LastBlock() int {
	b := 0
	for _, s := range T.Sections {
		if s.Model && s.Header == "dihedrals" && s.Block > b {
			b = s.Block
		}
	}
	return b
}

// Residues groups the atoms of the topology into residues. A new residue starts
// each time the residue number or name changes.
func (T *Topology) Residues() []*Residue {
	ret := make([]*Residue, 0, 10)
	var cur *Residue
	for _, a := range T.Atoms {
		if cur == nil || a.ResNr != cur.Nr || a.ResName != cur.Name {
			cur = &Residue{Name: a.ResName, Nr: a.ResNr, Index: len(ret), top: T}
			ret = append(ret, cur)
		}
		cur.IDs = append(cur.IDs, a.ID)
	}
	return ret
}

// Residue is a view of a set of consecutive atoms in a topology.
type Residue struct {
	Name  string
	Nr    int
	Index int //position of the residue in the topology's sequence
	IDs   []int
	top   *Topology
}

// Fetch returns the first atom in the residue with the given name.
func (R *Residue) Fetch(name string) (*Atom, bool) {
	for _, id := range R.IDs {
		a := R.top.MustAtom(id)
		if a.Name == name {
			return a, true
		}
	}
	return nil, false
}

// FetchMany returns the atoms with the given names, in the same order.
// It returns an error naming the first atom not found.
func (R *Residue) FetchMany(names ...string) ([]*Atom, error) {
	ret := make([]*Atom, 0, len(names))
	for _, n := range names {
		a, ok := R.Fetch(n)
		if !ok {
			return nil, fmt.Errorf("pmx/Residue.FetchMany: atom %s not found in residue %d-%s", n, R.Nr, R.Name)
		}
		ret = append(ret, a)
	}
	return ret, nil
}

// Atoms returns the atoms of the residue.
func (R *Residue) Atoms() []*Atom {
	ret := make([]*Atom, len(R.IDs))
	for i, id := range R.IDs {
		ret[i] = R.top.MustAtom(id)
	}
	return ret
}

// Charge returns the total charge of the residue in state s.
func (R *Residue) Charge(s State) float64 {
	q := make([]float64, len(R.IDs))
	for i, a := range R.Atoms() {
		q[i] = a.ChargeIn(s)
	}
	return floats.Sum(q)
}
