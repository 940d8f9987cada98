/*
 * bonds.go, part of pmx
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
	"go.uber.org/zap"
)

// Bonds assigns A and B parameters to every bond with at least one atom
// that has a B state. If both atoms are real in both states, each state gets
// its own parameters. If one of the states has a dummy, both states get the
// parameters of the other one. A bond with dummies in both states is an error.
func Bonds(st *State) error {
	T := st.Top
	count := 0
	for _, b := range T.Bonds {
		ids := b.Atoms[:]
		if !T.HasB(ids...) {
			continue
		}
		count++
		ca, cb := pmx.Classify(T, ids...)
		realA, realB := pmx.AllReal(ca), pmx.AllReal(cb)
		if !realA && !realB {
			return newError(T, "fake bond", ids...)
		}
		var pa, pb pmx.Params
		var err error
		if realA {
			if pa, err = st.bondParam(b, pmx.StateA); err != nil {
				return err
			}
		}
		if realB {
			if pb, err = st.bondParam(b, pmx.StateB); err != nil {
				return err
			}
		}
		switch {
		case !realA:
			pa = pb
		case !realB:
			pb = pa
		}
		b.Func = pa.Func
		b.A = pmx.ConcreteSlot(pa)
		b.B = pmx.ConcreteSlot(pb)
	}
	st.Summary.Bonds = count
	st.log.Info("bonds for state B", zap.Int("perturbed", count))
	return nil
}

func (st *State) bondParam(b *pmx.Bond, s pmx.State) (pmx.Params, error) {
	a1, a2 := st.Top.MustAtom(b.Atoms[0]), st.Top.MustAtom(b.Atoms[1])
	p, ok := st.params.BondParam(a1.TypeIn(s), a2.TypeIn(s))
	if !ok {
		return p, newError(st.Top, fmt.Sprintf("no bond entry for state %s (%s-%s)", s, a1.TypeIn(s), a2.TypeIn(s)), b.Atoms[:]...)
	}
	return p, nil
}
