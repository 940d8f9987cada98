/*
 * pmx_test.go, part of pmx
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
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testTopology(t *testing.T) *Topology {
	t.Helper()
	ats := []*Atom{
		{ID: 1, Name: "N", ResName: "ALA", ResNr: 1, AtomType: "N", Q: -0.4},
		{ID: 2, Name: "CA", ResName: "ALA", ResNr: 1, AtomType: "CT", Q: 0.4},
		{ID: 3, Name: "N", ResName: "A2G", ResNr: 2, AtomType: "N", Q: -0.4},
		{ID: 4, Name: "CB", ResName: "A2G", ResNr: 2, AtomType: "CT", Q: -0.2, M: 12, HasB: true, AtomTypeB: "DUM_CT", QB: 0, MB: 12},
		{ID: 5, Name: "HA", ResName: "A2G", ResNr: 2, AtomType: "H1", Type: "HC", Q: 0.1, M: 1, HasB: true, AtomTypeB: "H1", QB: 0.1, MB: 1},
		{ID: 6, Name: "N", ResName: "ALA", ResNr: 3, AtomType: "N", Q: 0.5},
	}
	T, err := NewTopology(ats)
	require.NoError(t, err)
	return T
}

func TestAtomStates(t *testing.T) {
	T := testTopology(t)
	cb, ha, n := T.Atom(4), T.Atom(5), T.Atom(1)
	assert.True(t, cb.Morphs())
	assert.True(t, cb.TypeMorphs())
	assert.True(t, cb.IsDummy(StateB))
	assert.False(t, cb.IsDummy(StateA))
	assert.False(t, ha.Morphs(), "B state identical to A")
	assert.False(t, n.IsDummy(StateB))
	assert.Equal(t, "HC", ha.TypeIn(StateA))
	assert.Equal(t, "H1", ha.TypeIn(StateB))
	assert.Equal(t, "N", n.TypeIn(StateB))
	assert.Equal(t, -0.4, n.ChargeIn(StateB))
	assert.Equal(t, StateB, StateA.Other())
	assert.Equal(t, "B", StateB.String())
}

func TestClassify(t *testing.T) {
	T := testTopology(t)
	a, b := Classify(T, 2, 4, 5)
	assert.Equal(t, "AAA", a)
	assert.Equal(t, "ADA", b)
	assert.True(t, AllReal(a))
	assert.False(t, AllReal(b))
	T.Atom(1).AtomType = "DUM_N"
	a, b = Classify(T, 1, 2)
	assert.Equal(t, "DA", a)
	assert.Equal(t, "AA", b, "atoms without B state are never dummies in B")
}

func TestZeroed(t *testing.T) {
	cases := []struct {
		in, want Params
	}{
		{NewParams(DihRB, 1, 2, 3, 4, 5, 6), NewParams(DihRB, 0, 0, 0, 0, 0, 0)},
		{NewParams(DihImproper, 35, 300), NewParams(DihImproper, 35, 0)},
		{NewParams(DihProperMulti, 180, 4.6, 2), NewParams(DihProperMulti, 180, 0, 2)},
		{NewParams(DihPeriodicImprop, 105.4, 0.75, 1), NewParams(DihPeriodicImprop, 105.4, 0, 1)},
	}
	for _, c := range cases {
		got := c.in.Zeroed()
		assert.Truef(t, got.Equal(c.want), "%v: got %v want %v", c.in, got, c.want)
	}
	p := NewParams(DihProperMulti, 0, 1, 3)
	assert.Equal(t, 3, p.Multiplicity())
	assert.Equal(t, 0, NewParams(DihRB, 1, 2, 3, 4, 5, 6).Multiplicity())
}

func TestWithoutForce(t *testing.T) {
	p := NewParams(1, 0.15, 250000)
	z := p.WithoutForce()
	assert.Equal(t, NewParams(1, 0.15, 0), z)
	assert.Equal(t, 250000.0, p.V[1], "original untouched")
	assert.Equal(t, NewParams(AngleUB, 109, 0, 0.2, 0), NewParams(AngleUB, 109, 300, 0.2, 20).WithoutForce())
}

func TestSlots(t *testing.T) {
	p := NewParams(9, 0, 1, 2)
	s := ConcreteSlot(p)
	p.V[1] = 5
	assert.Equal(t, 1.0, s.P.V[1])
	assert.True(t, s.Filled())
	assert.False(t, s.Open())
	assert.True(t, Slot{State: Deferred}.Open())
	assert.False(t, InertSlot().Filled())
	assert.Equal(t, "zeroed", ZeroedSlot(p).State.String())
}

func TestDihedral(t *testing.T) {
	d := &Dihedral{Atoms: [4]int{1, 2, 3, 4}, Func: 9, Block: 2}
	assert.True(t, d.Matches([4]int{4, 3, 2, 1}))
	assert.True(t, d.Matches([4]int{1, 2, 3, 4}))
	assert.False(t, d.Matches([4]int{1, 3, 2, 4}))
	x := d.Derive(ZeroedSlot(NewParams(4, 180, 1, 2)), ConcreteSlot(NewParams(4, 180, 1, 2)))
	assert.Equal(t, 4, x.Func)
	assert.Equal(t, 2, x.Block)
	assert.Equal(t, d.Key(), x.Key())
	d.Set(InertSlot(), InertSlot())
	assert.True(t, d.Inert())
	assert.Equal(t, 9, d.Func)
}

func TestTopology(t *testing.T) {
	T := testTopology(t)
	_, err := NewTopology([]*Atom{{ID: 1}, {ID: 1}})
	assert.Error(t, err)
	assert.Error(t, T.AddAtom(&Atom{ID: 3}))
	require.NoError(t, T.AddAtom(&Atom{ID: 7, ResName: "ALA", ResNr: 3}))
	assert.Nil(t, T.Atom(42))
	assert.Panics(t, func() { T.MustAtom(42) })

	res := T.Residues()
	require.Len(t, res, 3)
	assert.Equal(t, "A2G", res[1].Name)
	assert.Equal(t, []int{3, 4, 5}, res[1].IDs)
	assert.Equal(t, 1, res[1].Index)
	ats, err := res[1].FetchMany("CB", "N")
	require.NoError(t, err)
	assert.Equal(t, 4, ats[0].ID)
	_, err = res[1].FetchMany("CG")
	assert.ErrorContains(t, err, "atom CG not found in residue 2-A2G")
	assert.InDelta(t, -0.5, res[1].Charge(StateA), 1e-9)
	assert.InDelta(t, -0.3, res[1].Charge(StateB), 1e-9)

	assert.InDelta(t, 0.0, T.Charge(StateA), 1e-9)
	assert.True(t, T.Morphs(1, 4))
	assert.False(t, T.Morphs(1, 5))
	assert.True(t, T.HasB(1, 5))
	assert.True(t, T.TypeMorphs(4))
}

func TestTopologyCopy(t *testing.T) {
	T := testTopology(t)
	T.Bonds = []*Bond{{Atoms: [2]int{1, 2}, Func: 1, Raw: []string{"0.1", "100"}, A: ConcreteSlot(NewParams(1, 0.1, 100))}}
	T.Dihedrals = []*Dihedral{{Atoms: [4]int{1, 2, 3, 4}, Func: 9, Macro: "torsion_x"}}
	T.Sections = []Section{{Header: "dihedrals", Block: 1, Lines: []string{"; c"}, Model: true}}
	C := T.Copy()
	C.Atom(1).Q = 3
	C.Bonds[0].A.P.V[0] = 9
	C.Bonds[0].Raw[0] = "x"
	C.Sections[0].Lines[0] = "x"
	assert.Equal(t, -0.4, T.Atom(1).Q)
	assert.Equal(t, 0.1, T.Bonds[0].A.P.V[0])
	assert.Equal(t, "0.1", T.Bonds[0].Raw[0])
	assert.Equal(t, "; c", T.Sections[0].Lines[0])
	assert.Equal(t, "torsion_x", C.Dihedrals[0].Macro)
	assert.Equal(t, 1, C.LastBlock())
}

func TestHybridNames(t *testing.T) {
	for _, n := range []string{"A2G", "DAT", "RUG", "C2CM", "CM2C", "P2A"} {
		assert.True(t, IsHybridName(n), n)
	}
	for _, n := range []string{"ALA", "DA", "PRO", "HIE"} {
		assert.False(t, IsHybridName(n), n)
	}
	assert.True(t, IsProlineHybrid("A2P"))
	assert.True(t, IsProlineHybrid("P2A"))
	assert.False(t, IsProlineHybrid("A2G"))
	assert.Equal(t, StateB, ProlineState("A2P"))
	assert.Equal(t, StateA, ProlineState("P2A"))
}

func TestParseScheme(t *testing.T) {
	cases := map[string]struct {
		kind   SchemeKind
		family Family
		form   int
	}{
		"default-A":              {DefaultA, NoFamily, 0},
		"default-B":              {DefaultB, NoFamily, 0},
		"default-star":           {DefaultStar, NoFamily, 0},
		"torsion_ILE_N_CA_CB_CG": {Named, FamilyILDN, DihProperMulti},
		"dih_SER_chi1":           {Named, FamilyOPLS, DihRB},
		"improper_Z_N_X_Y":       {Named, FamilyOPLS, DihProper},
		"undefined":              {SchemeDeferred, NoFamily, 0},
	}
	for label, c := range cases {
		s, err := ParseScheme(label)
		require.NoError(t, err, label)
		assert.Equal(t, c.kind, s.Kind, label)
		assert.Equal(t, c.family, s.Family(), label)
		assert.Equal(t, c.form, s.Form(), label)
		assert.Equal(t, label, s.Name)
	}
	_, err := ParseScheme("whatever")
	assert.Error(t, err)
	assert.Equal(t, FamilyILDN, MacroFamily("torsion_PRO_N_CA_C_O"))
	assert.Equal(t, NoFamily, MacroFamily(""))
}
