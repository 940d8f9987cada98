/*
 * predefined.go, part of pmx
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

// usedKey marks a named scheme already applied to a dihedral.
type usedKey struct {
	key    pmx.DihedralKey
	scheme string
}

// Predefined applies the dihedral parameters that the templates of the
// hybrid residues give explicitly, before the generic resolver runs.
// Template impropers are processed first, then dihedrals. Each entry is matched,
// forward or reverse, against the topology dihedrals by atom id.
// Every record assigned here is claimed, so Dihedrals will only add the
// generic parameters for a side that the template defers.
func Predefined(st *State) error {
	T := st.Top
	used := make(map[usedKey]struct{})
	var extra []*pmx.Dihedral
	count := 0
	for _, r := range st.Hybrids {
		t := st.Templates[r.Name]
		entries := make([]pmx.TemplateTerm, 0, len(t.Impropers)+len(t.Dihedrals))
		entries = append(entries, t.Impropers...)
		entries = append(entries, t.Dihedrals...)
		for _, e := range entries {
			ids, ok, err := st.templateAtoms(r, e.Atoms)
			if err != nil {
				return err
			}
			if !ok {
				st.log.Debug("template dihedral without neighbour residue",
					zap.String("residue", r.Name), zap.Strings("atoms", e.Atoms))
				continue
			}
			for _, d := range T.Dihedrals {
				if !d.Matches(ids) {
					continue
				}
				//a default-star improper never replaces a multiple proper.
				if e.A.Kind == pmx.DefaultStar && d.Func == pmx.DihProperMulti {
					continue
				}
				if d.A.Filled() || d.B.Filled() {
					continue
				}
				_, usedA := used[usedKey{d.Key(), e.A.Name}]
				_, usedB := used[usedKey{d.Key(), e.B.Name}]
				if usedA || usedB || !macroAccepts(e.A, d.Macro) {
					continue
				}
				ex, err := st.applyScheme(d, e)
				if err != nil {
					return err
				}
				extra = append(extra, ex...)
				for _, s := range []pmx.Scheme{e.A, e.B} {
					if s.Kind == pmx.Named {
						used[usedKey{d.Key(), s.Name}] = struct{}{}
					}
				}
				if c, ok := st.claims[d.Key()]; ok && !c.generic() {
					count++
				}
			}
		}
	}
	T.Dihedrals = append(T.Dihedrals, extra...)
	st.Summary.Predefined = count
	st.Summary.Expanded += len(extra)
	st.log.Info("predefined dihedrals", zap.Int("assigned", count), zap.Int("extra_records", len(extra)))
	return nil
}

// macroAccepts returns false if s is an ILDN torsion or an OPLS proper and the
// topology record was not written with a macro of the same kind.
func macroAccepts(s pmx.Scheme, macro string) bool {
	if s.Kind != pmx.Named {
		return true
	}
	switch {
	case s.Family() == pmx.FamilyILDN:
		return pmx.MacroFamily(macro) == pmx.FamilyILDN
	case strings.HasPrefix(s.Name, "dih_"):
		return strings.HasPrefix(macro, "dih_")
	}
	return true
}

// templateAtoms returns the ids of the atoms named in a template term.
// Names starting with '+' or '-' are looked for in the next or
// previous residue. It returns false if such residue doesn't exist.
func (st *State) templateAtoms(r *pmx.Residue, names []string) ([4]int, bool, error) {
	var ids [4]int
	if len(names) != 4 {
		return ids, false, fmt.Errorf("resolve/templateAtoms: residue %s: dihedral with %d atoms", r.Name, len(names))
	}
	for i, n := range names {
		res := r
		switch {
		case strings.HasPrefix(n, "+"):
			if r.Index+1 >= len(st.Residues) {
				return ids, false, nil
			}
			res = st.Residues[r.Index+1]
			n = n[1:]
		case strings.HasPrefix(n, "-"):
			if r.Index == 0 {
				return ids, false, nil
			}
			res = st.Residues[r.Index-1]
			n = n[1:]
		}
		a, ok := res.Fetch(n)
		if !ok {
			return ids, false, fmt.Errorf("resolve/templateAtoms: atom %s not found in residue %d-%s", n, res.Nr, res.Name)
		}
		ids[i] = a.ID
	}
	return ids, true, nil
}

// schemeParams returns the parameters that a scheme gives for d. It returns
// nil for deferred schemes.
func (st *State) schemeParams(d *pmx.Dihedral, s pmx.Scheme) ([]pmx.Params, error) {
	var ret []pmx.Params
	switch s.Kind {
	case pmx.SchemeDeferred:
		return nil, nil
	case pmx.DefaultA:
		ret = st.dihedralParams(d, pmx.StateA, d.Func)
	case pmx.DefaultB:
		ret = st.dihedralParams(d, pmx.StateB, d.Func)
	case pmx.DefaultStar:
		ret = []pmx.Params{pmx.DefaultStarParams.Copy()}
	case pmx.Named:
		p, ok := st.opts.Defines[s.Name]
		if !ok {
			return nil, newError(st.Top, fmt.Sprintf("dihedral constant %s is not defined in the force field", s.Name), d.Atoms[:]...)
		}
		ret = []pmx.Params{p.Copy()}
	}
	if len(ret) == 0 {
		return nil, newError(st.Top, fmt.Sprintf("no parameters for predefined dihedral (%s)", s.Name), d.Atoms[:]...)
	}
	return ret, nil
}

// applyScheme writes the parameters of a template entry into d. The A terms
// come first, each with a zeroed B counterpart, then the B terms, with zeroed
// A counterparts. Terms that don't fit in d are returned as new records.
func (st *State) applyScheme(d *pmx.Dihedral, e pmx.TemplateTerm) ([]*pmx.Dihedral, error) {
	aterms, err := st.schemeParams(d, e.A)
	if err != nil {
		return nil, err
	}
	bterms, err := st.schemeParams(d, e.B)
	if err != nil {
		return nil, err
	}
	deferA, deferB := e.A.Kind == pmx.SchemeDeferred, e.B.Kind == pmx.SchemeDeferred
	c := claim{deferA: deferA, deferB: deferB, form: d.Func}
	if c.generic() {
		d.A = pmx.Slot{State: pmx.Deferred}
		d.B = pmx.Slot{State: pmx.Deferred}
		st.claims[d.Key()] = c
		return nil, nil
	}
	//the generic side of an ILDN torsion is a multiple proper.
	if e.A.Form() == pmx.DihProperMulti || e.B.Form() == pmx.DihProperMulti {
		c.form = pmx.DihProperMulti
	}
	st.claims[d.Key()] = c
	extra := place(d, pmx.StateA, aterms, true)
	extra = append(extra, place(d, pmx.StateB, bterms, len(aterms) == 0)...)
	return extra, nil
}
