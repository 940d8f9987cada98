/*
 * angles.go, part of pmx
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

// fakeAngle returns the parameters for an angle with dummies in both states:
// a harmonic angle with no force, whatever the form of the record.
func fakeAngle() pmx.Params {
	return pmx.NewParams(1, 0, 0)
}

// Angles assigns A and B parameters to every angle with at least one atom
// that has a B state. Angles with dummies in both states get zero
// parameters. When only one state is all-real, both states get its
// parameters.
func Angles(st *State) error {
	T := st.Top
	count := 0
	for _, a := range T.Angles {
		ids := a.Atoms[:]
		if !T.HasB(ids...) {
			continue
		}
		count++
		ca, cb := pmx.Classify(T, ids...)
		realA, realB := pmx.AllReal(ca), pmx.AllReal(cb)
		var pa, pb pmx.Params
		var err error
		switch {
		case !realA && !realB:
			pa = fakeAngle()
			pb = fakeAngle()
		case realA && !realB:
			if pa, err = st.angleParam(a, pmx.StateA); err != nil {
				return err
			}
			pb = pa
		case !realA && realB:
			if pb, err = st.angleParam(a, pmx.StateB); err != nil {
				return err
			}
			pa = pb
		case T.TypeMorphs(ids...):
			if pa, err = st.angleParam(a, pmx.StateA); err != nil {
				return err
			}
			if pb, err = st.angleParam(a, pmx.StateB); err != nil {
				return err
			}
		default:
			if pa, err = st.angleParam(a, pmx.StateA); err != nil {
				return err
			}
			pb = pa
		}
		a.Func = pa.Func
		a.A = pmx.ConcreteSlot(pa)
		a.B = pmx.ConcreteSlot(pb)
	}
	st.Summary.Angles = count
	st.log.Info("angles for state B", zap.Int("perturbed", count))
	return nil
}

func (st *State) angleParam(a *pmx.Angle, s pmx.State) (pmx.Params, error) {
	T := st.Top
	t := [3]string{}
	for i, id := range a.Atoms {
		t[i] = T.MustAtom(id).TypeIn(s)
	}
	p, ok := st.params.AngleParam(t[0], t[1], t[2])
	if !ok {
		return p, newError(T, fmt.Sprintf("no angle entry for state %s (%s-%s-%s)", s, t[0], t[1], t[2]), a.Atoms[:]...)
	}
	return p, nil
}
