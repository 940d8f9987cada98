/*
 * proline.go, part of pmx
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

	"github.com/etiur/pmx"
	"github.com/etiur/pmx/chemgraph"
	"go.uber.org/zap"
)

// prolineAtoms are the ids of the proline ring atoms of a hybrid residue.
type prolineAtoms struct {
	ring       pmx.State //the state with the intact ring
	cd, cg, cb int
	ca, n      int
}

func (st *State) prolineAtoms(r *pmx.Residue) (prolineAtoms, error) {
	p := prolineAtoms{ring: pmx.ProlineState(r.Name)}
	names := []string{"CD", "CG", "CB", "CA", "N"}
	if p.ring == pmx.StateB {
		names = []string{"DCD", "DCG", "DCB", "CA", "N"}
	}
	ats, err := r.FetchMany(names...)
	if err != nil {
		return p, newError(st.Top, fmt.Sprintf("proline residue %d-%s without ring atoms: %v", r.Nr, r.Name, err), r.IDs...)
	}
	p.cd, p.cg, p.cb, p.ca, p.n = ats[0].ID, ats[1].ID, ats[2].ID, ats[3].ID, ats[4].ID
	return p, nil
}

func (st *State) prolines() []*pmx.Residue {
	var ret []*pmx.Residue
	for _, r := range st.Hybrids {
		if pmx.IsProlineHybrid(r.Name) {
			ret = append(ret, r)
		}
	}
	return ret
}

// ProlineRing breaks the CD-CG bond of proline hybrids in the state without
// the ring: the bond and the angles that contain both atoms lose their force
// constants, and the dihedrals that contain both get zeroed. The state with
// the ring keeps its parameters.
func ProlineRing(st *State) error {
	T := st.Top
	var g *chemgraph.Topology
	for _, r := range st.prolines() {
		p, err := st.prolineAtoms(r)
		if err != nil {
			return err
		}
		if g == nil {
			if g, err = chemgraph.New(T); err != nil {
				return fmt.Errorf("resolve/ProlineRing: %w", err)
			}
		}
		if !g.RingBond(p.cd, p.cg) {
			st.log.Warn("proline ring is not closed", zap.Int("resnr", r.Nr), zap.String("resname", r.Name))
		} else {
			st.log.Debug("proline ring", zap.Int("resnr", r.Nr), zap.Int("size", g.RingSize(p.cd, p.cg)))
		}
		free := p.ring.Other()
		for _, b := range T.Bonds {
			if !b.Has(p.cd) || !b.Has(p.cg) {
				continue
			}
			if !b.Slot(p.ring).Filled() {
				pr, err := st.bondParam(b, p.ring)
				if err != nil {
					return err
				}
				b.Func = pr.Func
				*b.Slot(p.ring) = pmx.ConcreteSlot(pr)
			}
			*b.Slot(free) = pmx.ConcreteSlot(decoupled(*b.Slot(free), *b.Slot(p.ring)))
		}
		for _, a := range T.Angles {
			if !a.Has(p.cd) || !a.Has(p.cg) {
				continue
			}
			if !a.Slot(p.ring).Filled() {
				pr, err := st.angleParam(a, p.ring)
				if err != nil {
					return err
				}
				a.Func = pr.Func
				*a.Slot(p.ring) = pmx.ConcreteSlot(pr)
			}
			*a.Slot(free) = pmx.ConcreteSlot(decoupled(*a.Slot(free), *a.Slot(p.ring)))
		}
		if err := st.zeroDihedrals(p, p.cd, p.cg); err != nil {
			return err
		}
		st.Summary.Prolines++
		st.log.Info("proline ring decoupled", zap.Int("resnr", r.Nr), zap.String("resname", r.Name), zap.Stringer("ring_state", p.ring))
	}
	return nil
}

// ProlineAxes zeroes, in the state without the ring, the dihedrals
// around the CD-N and CB-CA axes of proline hybrids.
func ProlineAxes(st *State) error {
	for _, r := range st.prolines() {
		p, err := st.prolineAtoms(r)
		if err != nil {
			return err
		}
		if err := st.zeroDihedrals(p, p.cd, p.n); err != nil {
			return err
		}
		if err := st.zeroDihedrals(p, p.cb, p.ca); err != nil {
			return err
		}
	}
	return nil
}

// decoupled returns the parameters of own, or of ring if own has none, without
// force constants.
func decoupled(own, ring pmx.Slot) pmx.Params {
	if own.Filled() {
		return own.P.WithoutForce()
	}
	return ring.P.WithoutForce()
}

// zeroDihedrals sets the slot of the state without ring to the zeroed
// counterpart, for all the dihedrals that contain both atoms. Inert dihedrals
// are left alone. Dihedrals no stage resolved get the parameters of the ring
// state first.
func (st *State) zeroDihedrals(p prolineAtoms, id1, id2 int) error {
	T := st.Top
	free := p.ring.Other()
	var extra []*pmx.Dihedral
	for _, d := range T.Dihedrals {
		if !d.Has(id1) || !d.Has(id2) || d.Inert() {
			continue
		}
		ring, own := d.Slot(p.ring), d.Slot(free)
		switch {
		case own.Filled():
			*own = pmx.ZeroedSlot(own.P)
		case ring.Filled():
			*own = pmx.ZeroedSlot(ring.P)
		default:
			terms := st.dihedralParams(d, p.ring, d.Func)
			if len(terms) == 0 {
				return st.missingDihedral(d, p.ring, d.Func)
			}
			extra = append(extra, place(d, p.ring, terms, true)...)
		}
	}
	T.Dihedrals = append(T.Dihedrals, extra...)
	st.Summary.Expanded += len(extra)
	return nil
}
