/*
 * templates.go, part of pmx
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
	"math"

	"github.com/etiur/pmx"
	"go.uber.org/zap"
)

// ApplyTemplates finds the hybrid residues of the topology, obtains their
// templates and copies the B-state type, charge and mass of each template atom
// onto the topology. All the templates are obtained before any atom is
// modified, so a missing residue leaves the topology untouched.
// If the options carry a TypeAssigner, bonded types are assigned afterwards.
func ApplyTemplates(st *State) error {
	st.Residues = st.Top.Residues()
	st.Hybrids = st.Hybrids[:0]
	for _, r := range st.Residues {
		if pmx.IsHybridName(r.Name) {
			st.Hybrids = append(st.Hybrids, r)
		}
	}
	for _, r := range st.Hybrids {
		if _, ok := st.Templates[r.Name]; ok {
			continue
		}
		if st.source == nil {
			return fmt.Errorf("resolve/ApplyTemplates: hybrid residue %d-%s but no mutation database given", r.Nr, r.Name)
		}
		t, err := st.source.Lookup(r.Name, st.opts.Version)
		if err != nil {
			return fmt.Errorf("resolve/ApplyTemplates: residue %d-%s: %w", r.Nr, r.Name, err)
		}
		st.Templates[r.Name] = t
	}
	for _, r := range st.Hybrids {
		t := st.Templates[r.Name]
		names := make([]string, len(t.Atoms))
		for i, ta := range t.Atoms {
			names[i] = ta.Name
		}
		ats, err := r.FetchMany(names...)
		if err != nil {
			return fmt.Errorf("resolve/ApplyTemplates: %w", err)
		}
		for i, ta := range t.Atoms {
			ats[i].HasB = true
			ats[i].AtomTypeB = ta.AtomTypeB
			ats[i].TypeB = ""
			ats[i].QB = ta.QB
			ats[i].MB = ta.MB
		}
		st.Summary.Hybrids = append(st.Summary.Hybrids, fmt.Sprintf("%d-%s", r.Nr, r.Name))
		st.log.Info("hybrid residue", zap.Int("resnr", r.Nr), zap.String("resname", r.Name))
	}
	if st.opts.Types != nil {
		return AssignTypes(st.Top, st.opts.Types)
	}
	return nil
}

// AssignTypes sets the bonded types of all atoms from their non-bonded
// types. Dummy types are their own bonded types if the assigner doesn't know them.
func AssignTypes(T *pmx.Topology, types TypeAssigner) error {
	bt := func(at string) (string, error) {
		t, ok := types.BondType(at)
		if ok {
			return t, nil
		}
		if pmx.IsDummyType(at) {
			return at, nil
		}
		return "", fmt.Errorf("resolve/AssignTypes: unknown atom type %s", at)
	}
	var err error
	for _, a := range T.Atoms {
		if a.Type, err = bt(a.AtomType); err != nil {
			return err
		}
		if !a.HasB {
			continue
		}
		if a.TypeB, err = bt(a.AtomTypeB); err != nil {
			return err
		}
	}
	return nil
}

// Charges logs the total charge of both states, rounded to the nearest integer,
// and stores it in the summary.
func Charges(st *State) error {
	st.Summary.QA = st.Top.Charge(pmx.StateA)
	st.Summary.QB = st.Top.Charge(pmx.StateB)
	st.log.Info("total charge",
		zap.Float64("qA", math.Round(st.Summary.QA)),
		zap.Float64("qB", math.Round(st.Summary.QB)))
	return nil
}
