/*
 * nucleotide.go, part of pmx
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
	"slices"

	"github.com/etiur/pmx"
	"go.uber.org/zap"
)

// NucleotideImproper holds the fixed parameters of the impropers
// added to keep the bases of mutated nucleotides planar.
var NucleotideImproper = pmx.NewParams(pmx.DihProper, 180, 40, 2)

var (
	purinePyrimidineImpropers = [][]string{{"C1'", "N9", "C8", "DC2"}, {"C1'", "N9", "C4", "DC6"}}
	pyrimidinePurineImpropers = [][]string{{"C1'", "N1", "C6", "DC4"}, {"C1'", "N1", "C2", "DC8"}}
)

// NucleotideImpropers adds two impropers, with the same parameters in both
// states, to each hybrid nucleotide that changes a purine into a pyrimidine
// or vice versa. They go to the last dihedral section of the topology.
// Existing terms are not modified.
func NucleotideImpropers(st *State) error {
	T := st.Top
	block := T.LastBlock()
	for _, r := range st.Hybrids {
		var quads [][]string
		switch {
		case slices.Contains(pmx.PurineToPyrimidine, r.Name):
			quads = purinePyrimidineImpropers
		case slices.Contains(pmx.PyrimidineToPurine, r.Name):
			quads = pyrimidinePurineImpropers
		default:
			continue
		}
		for _, q := range quads {
			ats, err := r.FetchMany(q...)
			if err != nil {
				return fmt.Errorf("resolve/NucleotideImpropers: %w", err)
			}
			d := &pmx.Dihedral{Func: NucleotideImproper.Func, Block: block}
			for i, a := range ats {
				d.Atoms[i] = a.ID
			}
			d.Set(pmx.ConcreteSlot(NucleotideImproper), pmx.ConcreteSlot(NucleotideImproper))
			T.Dihedrals = append(T.Dihedrals, d)
			st.Summary.Impropers++
		}
		st.log.Info("extra improper dihedrals", zap.Int("resnr", r.Nr), zap.String("resname", r.Name))
	}
	return nil
}
