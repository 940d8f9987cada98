/*
 * dihedrals.go, part of pmx
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

package resolve

import (
	"fmt"
	"strings"

	"github.com/etiur/pmx"
	"go.uber.org/zap"
)

// claim records a dihedral that was assigned by the predefined
// matcher. A deferred side still needs the generic parameters, obtained
// with the given form.
type claim struct {
	deferA, deferB bool
	form           int
}

// generic returns true if the template defers both sides, so the record
// is derived as any other, provided the A side has proper candidates.
func (c claim) generic() bool {
	return c.deferA && c.deferB
}

// deferred returns the state left to the generic resolver, and false if
// none is.
func (c claim) deferred() (pmx.State, bool) {
	switch {
	case c.deferA:
		return pmx.StateA, true
	case c.deferB:
		return pmx.StateB, true
	}
	return pmx.StateA, false
}

func (st *State) dihedralTypes(d *pmx.Dihedral, s pmx.State) [4]string {
	var t [4]string
	for i, id := range d.Atoms {
		t[i] = st.Top.MustAtom(id).TypeIn(s)
	}
	return t
}

func (st *State) dihedralParams(d *pmx.Dihedral, s pmx.State, form int) []pmx.Params {
	t := st.dihedralTypes(d, s)
	return st.params.DihedralParams(t[0], t[1], t[2], t[3], form)
}

func (st *State) missingDihedral(d *pmx.Dihedral, s pmx.State, form int) *Error {
	t := st.dihedralTypes(d, s)
	msg := fmt.Sprintf("no dihedral entry of type %d for state %s (%s)", form, s, strings.Join(t[:], "-"))
	return newError(st.Top, msg, d.Atoms[:]...)
}

// place writes terms, which are the parameters of state s, as concrete slots
// paired with zeroed slots for the other state. The first term goes into
// d if first is true, the rest into new records, which are returned.
func place(d *pmx.Dihedral, s pmx.State, terms []pmx.Params, first bool) []*pmx.Dihedral {
	var extra []*pmx.Dihedral
	for _, p := range terms {
		a, b := pmx.ConcreteSlot(p), pmx.ZeroedSlot(p)
		if s == pmx.StateB {
			a, b = b, a
		}
		if first {
			d.Set(a, b)
			first = false
			continue
		}
		extra = append(extra, d.Derive(a, b))
	}
	return extra
}

// sameTerms returns true if both sets of terms are identical.
func sameTerms(a, b []pmx.Params) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if !a[i].Equal(b[i]) {
			return false
		}
	}
	return true
}

// Dihedrals resolves all the dihedrals with morphing atoms that the predefined
// matcher did not assign. Dihedrals that are not all-real in any state are
// marked inert. If only one state is all-real, its parameters are paired with
// zeroed counterparts in the other state. If both are, the A parameters vanish
// and the B parameters appear, unless they are identical. Every periodicity
// after the first gets its own record, appended after the pass.
func Dihedrals(st *State) error {
	T := st.Top
	seen := make(map[pmx.DihedralKey]bool)
	var extra []*pmx.Dihedral
	count, fake, dups := 0, 0, 0
	for _, d := range T.Dihedrals {
		key := d.Key()
		c, claimed := st.claims[key]
		if claimed && !c.generic() {
			if seen[key] {
				continue
			}
			seen[key] = true
			ex, err := st.deferredSide(d, c)
			if err != nil {
				return err
			}
			extra = append(extra, ex...)
			continue
		}
		ids := d.Atoms[:]
		if !T.Morphs(ids...) {
			continue
		}
		if seen[key] {
			d.Set(pmx.InertSlot(), pmx.InertSlot())
			dups++
			continue
		}
		seen[key] = true
		ca, cb := pmx.Classify(T, ids...)
		realA, realB := pmx.AllReal(ca), pmx.AllReal(cb)
		if !realA && !realB {
			d.Set(pmx.InertSlot(), pmx.InertSlot())
			fake++
			continue
		}
		count++
		var aterms, bterms []pmx.Params
		if realA {
			aterms = st.dihedralParams(d, pmx.StateA, d.Func)
			//a template that defers both sides only gets the generic
			//parameters if state A has proper candidates.
			if claimed && realB && improperOrNone(aterms) {
				st.skipDeferred(d, pmx.StateA, len(aterms))
				continue
			}
			if len(aterms) == 0 {
				return st.missingDihedral(d, pmx.StateA, d.Func)
			}
		}
		if realB {
			if bterms = st.dihedralParams(d, pmx.StateB, d.Func); len(bterms) == 0 {
				return st.missingDihedral(d, pmx.StateB, d.Func)
			}
		}
		if realA && realB && sameTerms(aterms, bterms) {
			for i, p := range aterms {
				if i == 0 {
					d.Set(pmx.ConcreteSlot(p), pmx.ConcreteSlot(p))
					continue
				}
				extra = append(extra, d.Derive(pmx.ConcreteSlot(p), pmx.ConcreteSlot(p)))
			}
			continue
		}
		extra = append(extra, place(d, pmx.StateA, aterms, true)...)
		extra = append(extra, place(d, pmx.StateB, bterms, len(aterms) == 0)...)
	}
	T.Dihedrals = append(T.Dihedrals, extra...)
	st.Summary.Dihedrals = count
	st.Summary.FakeDihedrals = fake
	st.Summary.Duplicates = dups
	st.Summary.Expanded += len(extra)
	st.log.Info("dihedrals for state B",
		zap.Int("perturbed", count),
		zap.Int("fake_removed", fake),
		zap.Int("duplicates", dups),
		zap.Int("skipped_deferred", st.Summary.SkippedDeferred))
	return nil
}

// deferredSide obtains the generic parameters for the deferred side of a
// predefined dihedral. The record itself is already complete, so the
// terms go to new records. If the only candidates are missing or are
// improper forms (2 or 4) the side is skipped and counted.
func (st *State) deferredSide(d *pmx.Dihedral, c claim) ([]*pmx.Dihedral, error) {
	s, ok := c.deferred()
	if !ok {
		return nil, nil
	}
	ca, cb := pmx.Classify(st.Top, d.Atoms[:]...)
	cl := ca
	if s == pmx.StateB {
		cl = cb
	}
	if !pmx.AllReal(cl) {
		return nil, nil
	}
	terms := st.dihedralParams(d, s, c.form)
	if improperOrNone(terms) {
		st.skipDeferred(d, s, len(terms))
		return nil, nil
	}
	return place(d, s, terms, false), nil
}

// improperOrNone returns true if there are no candidate terms or the
// candidates are impropers (forms 2 and 4). Those are not derived for a
// deferred side.
func improperOrNone(terms []pmx.Params) bool {
	return len(terms) == 0 || terms[0].Func == pmx.DihImproper || terms[0].Func == pmx.DihPeriodicImprop
}

func (st *State) skipDeferred(d *pmx.Dihedral, s pmx.State, candidates int) {
	st.Summary.SkippedDeferred++
	st.log.Debug("deferred dihedral side skipped",
		zap.Ints("atoms", d.Atoms[:]), zap.Stringer("state", s), zap.Int("candidates", candidates))
}
