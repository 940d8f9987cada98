/*
 * hybrid.go, part of pmx
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
	"slices"
	"strings"
)

// PerturbedNucleotides are the names of the hybrid DNA (D prefix) and RNA
// (R prefix) residues. The second letter is the base in state A, the third
// the base in state B.
var PerturbedNucleotides = []string{
	"DAT", "DAC", "DAG", "DCT", "DCG", "DCA", "DGT", "DGC", "DGA", "DTA", "DTG", "DTC",
	"RAU", "RAC", "RAG", "RCU", "RCG", "RCA", "RGU", "RGC", "RGA", "RUA", "RUG", "RUC",
}

// Purine to pyrimidine and pyrimidine to purine mutations. These need
// extra impropers to keep the base planar.
var (
	PurineToPyrimidine = []string{"DAT", "DAC", "DGC", "DGT", "RAU", "RAC", "RGC", "RGU"}
	PyrimidineToPurine = []string{"DTA", "DTG", "DCG", "DCA", "RUA", "RUG", "RCG", "RCA"}
)

// IsHybridName returns true if name follows one of the hybrid residue naming
// conventions: a perturbed nucleotide, a two-letter code with a '2' in the middle
// (A2P is alanine in state A and proline in state B) or one of the special
// methylated-cytosine names.
func IsHybridName(name string) bool {
	if slices.Contains(PerturbedNucleotides, name) {
		return true
	}
	if len(name) > 1 && name[1] == '2' {
		return true
	}
	return strings.Contains(name, "2CM") || strings.Contains(name, "CM2")
}

// IsProlineHybrid returns true if the hybrid residue has proline in one of its
// states.
func IsProlineHybrid(name string) bool {
	return IsHybridName(name) && !slices.Contains(PerturbedNucleotides, name) && strings.Contains(name, "P")
}

// ProlineState returns the state in which a proline hybrid has the intact
// ring (B for X2P residues, A otherwise).
func ProlineState(name string) State {
	if strings.Contains(name, "2P") {
		return StateB
	}
	return StateA
}
