/*
 * template.go, part of pmx
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
	"fmt"
	"strings"
)

// SchemeKind says where the parameters for one state of a predefined
// dihedral come from.
type SchemeKind int

const (
	//DefaultA takes the parameters derived from the A-state types.
	DefaultA SchemeKind = iota
	//DefaultB takes the parameters derived from the B-state types.
	DefaultB
	//DefaultStar is the fixed improper of the amber99sb* force fields.
	DefaultStar
	//Named takes a #define'd constant from the force field.
	Named
	//SchemeDeferred leaves the state to the generic dihedral resolver.
	SchemeDeferred
)

// Family groups the named schemes by force-field convention.
type Family int

const (
	NoFamily Family = iota
	FamilyILDN
	FamilyOPLS
)

// Scheme is a parsed parameter label of a template dihedral.
type Scheme struct {
	Kind SchemeKind
	Name string //the label, as given in the database.
}

// DefaultStarParams is the fixed improper used by the default-star scheme.
var DefaultStarParams = NewParams(DihPeriodicImprop, 105.4, 0.75, 1)

// ParseScheme parses a dihedral parameter label of the mutation database.
func ParseScheme(label string) (Scheme, error) {
	switch {
	case label == "default-A":
		return Scheme{Kind: DefaultA, Name: label}, nil
	case label == "default-B":
		return Scheme{Kind: DefaultB, Name: label}, nil
	case label == "default-star":
		return Scheme{Kind: DefaultStar, Name: label}, nil
	case strings.HasPrefix(label, "torsion_"), strings.HasPrefix(label, "dih_"), strings.HasPrefix(label, "improper_"):
		return Scheme{Kind: Named, Name: label}, nil
	case strings.HasPrefix(label, "un"):
		return Scheme{Kind: SchemeDeferred, Name: label}, nil
	}
	return Scheme{}, fmt.Errorf("pmx/ParseScheme: unknown dihedral scheme %q", label)
}

// Family returns the force-field family of a named scheme, NoFamily for
// other kinds.
func (S Scheme) Family() Family {
	if S.Kind != Named {
		return NoFamily
	}
	return MacroFamily(S.Name)
}

// Form returns the Gromacs dihedral type that a named scheme implies, or 0
// for the other kinds.
func (S Scheme) Form() int {
	if S.Kind != Named {
		return 0
	}
	switch {
	case strings.HasPrefix(S.Name, "torsion_"):
		return DihProperMulti
	case strings.HasPrefix(S.Name, "dih_"):
		return DihRB
	case strings.HasPrefix(S.Name, "improper_"):
		return DihProper
	}
	return 0
}

// MacroFamily returns the family of a #define name as written in a topology.
func MacroFamily(macro string) Family {
	switch {
	case strings.HasPrefix(macro, "torsion"):
		return FamilyILDN
	case strings.HasPrefix(macro, "dih_"), strings.HasPrefix(macro, "improper_"):
		return FamilyOPLS
	}
	return NoFamily
}

// TemplateAtom is the atom data of a hybrid residue in the mutation
// database.
type TemplateAtom struct {
	Name      string
	AtomType  string
	AtomTypeB string
	Q, QB     float64
	M, MB     float64
}

// TemplateTerm is a bonded term of a residue template. Atom names with a
// '+' or '-' prefix belong to the next or previous residue.
type TemplateTerm struct {
	Atoms []string
	A, B  Scheme
}

// Template is the mutation-database entry for one hybrid residue.
type Template struct {
	Name      string
	Version   string
	Atoms     []TemplateAtom
	Bonds     [][]string
	Angles    [][]string
	Impropers []TemplateTerm
	Dihedrals []TemplateTerm
}
