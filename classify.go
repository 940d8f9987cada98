/*
 * classify.go, part of pmx
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

// Classify returns, for state A and state B, a string with one character
// per atom: 'D' if the atom is a dummy in that state, 'A' otherwise.
// So, a bond with a dummy second atom in state B gives "AA", "AD".
func Classify(T *Topology, ids ...int) (a, b string) {
	var sa, sb strings.Builder
	for _, id := range ids {
		at := T.MustAtom(id)
		sa.WriteByte(caseChar(at.IsDummy(StateA)))
		sb.WriteByte(caseChar(at.IsDummy(StateB)))
	}
	return sa.String(), sb.String()
}

func caseChar(dummy bool) byte {
	if dummy {
		return 'D'
	}
	return 'A'
}

// AllReal returns true if a Classify string has no dummies.
func AllReal(c string) bool {
	return !strings.Contains(c, "D")
}
