/*
 * errors.go, part of pmx
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
	"text/tabwriter"

	"github.com/etiur/pmx"
)

// Error is returned for inconsistencies in the data (a bond between atoms that
// are dummies in both states, missing parameters). It keeps a copy of the
// atoms involved, so the problem can be reported. No partial result is usable
// after one of these.
type Error struct {
	message string
	atoms   []pmx.Atom
	deco    []string
}

func newError(T *pmx.Topology, message string, ids ...int) *Error {
	E := &Error{message: message}
	for _, id := range ids {
		E.atoms = append(E.atoms, *T.MustAtom(id))
	}
	return E
}

func (E *Error) Error() string {
	names := make([]string, 0, len(E.atoms))
	for _, a := range E.atoms {
		names = append(names, fmt.Sprintf("%d-%s/%s", a.ResNr, a.ResName, a.Name))
	}
	if len(names) == 0 {
		return "resolve: " + E.message
	}
	return fmt.Sprintf("resolve: %s (%s)", E.message, strings.Join(names, " "))
}

// Decorate adds information to the error (normally, the function or stage
// through which it passed) and returns the current decorations. An empty string
// only returns the decorations.
func (E *Error) Decorate(deco string) []string {
	if deco != "" {
		E.deco = append(E.deco, deco)
	}
	return E.deco
}

// Atoms returns copies of the atoms implicated in the error.
func (E *Error) Atoms() []pmx.Atom {
	return E.atoms
}

// Dump returns a table with the data of the atoms implicated in the error.
func (E *Error) Dump() string {
	var b strings.Builder
	fmt.Fprintf(&b, "err_> %s\n", E.message)
	if len(E.deco) > 0 {
		fmt.Fprintf(&b, "err_> in: %s\n", strings.Join(E.deco, " <- "))
	}
	w := tabwriter.NewWriter(&b, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "err_>\tname\tresname\tatomtype\tatomtypeB\tbondtype\tbondtypeB\tq\tqB")
	for _, a := range E.atoms {
		tb, ttb := "None", "None"
		qb := "None"
		if a.HasB {
			tb, ttb = a.AtomTypeB, a.TypeIn(pmx.StateB)
			qb = fmt.Sprintf("%.4f", a.QB)
		}
		fmt.Fprintf(w, "err_>\t%s\t%s\t%s\t%s\t%s\t%s\t%.4f\t%s\n", a.Name, a.ResName, a.AtomType, tb, a.TypeIn(pmx.StateA), ttb, a.Q, qb)
	}
	w.Flush()
	b.WriteString("err_> Exiting\n")
	return b.String()
}
