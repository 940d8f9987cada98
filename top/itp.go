/*
 * itp.go, part of pmx
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

package top

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/etiur/pmx"
)

// modelHeaders are the sections of the first molecule type that are read
// into the Topology.
var modelHeaders = map[string]int{"atoms": 0, "bonds": 2, "angles": 3, "dihedrals": 4}

// ReadTopology reads a Gromacs itp or top file. Only the first
// [ moleculetype ] is modeled. All the other sections, the preprocessor
// lines and whatever comes before the first header are kept verbatim in
// the Sections of the returned topology, so it can be written back.
// Comments inside the modeled sections are not kept.
func ReadTopology(r StringReader) (*pmx.Topology, error) {
	T := new(pmx.Topology)
	h := newTopHeader()
	blocks := make(map[string]int)
	molecules := 0
	T.Sections = append(T.Sections, pmx.Section{})
	cur := 0
	nline := 0
	for {
		s, err := r.ReadString('\n')
		if s != "" {
			nline++
			raw := strings.TrimRight(s, "\r\n")
			c := cleanString(raw)
			sec := &T.Sections[cur]
			switch {
			case h.Is(c):
				name := h.Which(c)
				if name == "moleculetype" {
					molecules++
				}
				_, model := modelHeaders[name]
				T.Sections = append(T.Sections, pmx.Section{Header: name, Title: raw, Block: blocks[name], Model: model && molecules <= 1})
				blocks[name]++
				cur = len(T.Sections) - 1
			case !sec.Model:
				if sec.Header == "moleculetype" && molecules == 1 && T.Name == "" && c != "" && !strings.HasPrefix(c, "#") {
					T.Name = strings.Fields(c)[0]
				}
				sec.Lines = append(sec.Lines, raw)
			case c == "":
			case strings.HasPrefix(c, "#"):
				//the molecule continues, but we can't model what comes
				//after a preprocessor line.
				T.Sections = append(T.Sections, pmx.Section{Lines: []string{raw}})
				cur = len(T.Sections) - 1
			default:
				if perr := readModelLine(T, sec, c); perr != nil {
					return nil, fmt.Errorf("top/ReadTopology: couldn't read header %s, line %d: %s: %w", sec.Header, nline, raw, perr)
				}
			}
		}
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("top/ReadTopology: %w", err)
		}
	}
	if len(T.Sections[0].Lines) == 0 {
		T.Sections = T.Sections[1:]
	}
	if len(T.Atoms) == 0 {
		return nil, fmt.Errorf("top/ReadTopology: no atoms found")
	}
	if err := T.Reindex(); err != nil {
		return nil, fmt.Errorf("top/ReadTopology: %w", err)
	}
	if err := checkIDs(T); err != nil {
		return nil, fmt.Errorf("top/ReadTopology: %w", err)
	}
	return T, nil
}

func readModelLine(T *pmx.Topology, sec *pmx.Section, s string) error {
	if sec.Header == "atoms" {
		a, err := atomFromGro(s)
		if err != nil {
			return err
		}
		T.Atoms = append(T.Atoms, a)
		return nil
	}
	ids, f, raw, err := termFromGro(s, modelHeaders[sec.Header])
	if err != nil {
		return err
	}
	switch sec.Header {
	case "bonds":
		T.Bonds = append(T.Bonds, &pmx.Bond{Atoms: [2]int(ids), Func: f, Raw: raw})
	case "angles":
		T.Angles = append(T.Angles, &pmx.Angle{Atoms: [3]int(ids), Func: f, Raw: raw})
	case "dihedrals":
		d := &pmx.Dihedral{Atoms: [4]int(ids), Func: f, Raw: raw, Block: sec.Block}
		if len(raw) == 1 && !isNumber(raw[0]) {
			d.Macro = raw[0]
		}
		T.Dihedrals = append(T.Dihedrals, d)
	}
	return nil
}

// atomFromGro parses a line of an [ atoms ] section. The mass and the
// B-state columns are optional. B-state columns not given are taken from
// the A state.
func atomFromGro(s string) (a *pmx.Atom, err error) {
	defer func() {
		if r := recover(); r != nil {
			a = nil
			err = fmt.Errorf("%s", r)
		}
	}()
	l := strings.Fields(s)
	if len(l) < 7 || len(l) > 11 {
		return nil, fmt.Errorf("%d fields in atom line", len(l))
	}
	a = &pmx.Atom{AtomType: l[1], ResName: l[3], Name: l[4]}
	a.ID, err = strconv.Atoi(l[0])
	qerr(err)
	a.ResNr, err = strconv.Atoi(l[2])
	qerr(err)
	a.CGNr, err = strconv.Atoi(l[5])
	qerr(err)
	a.Q, err = strconv.ParseFloat(l[6], 64)
	qerr(err)
	if len(l) > 7 {
		a.M, err = strconv.ParseFloat(l[7], 64)
		qerr(err)
	}
	if len(l) > 8 {
		a.HasB = true
		a.AtomTypeB = l[8]
		a.QB, a.MB = a.Q, a.M
	}
	if len(l) > 9 {
		a.QB, err = strconv.ParseFloat(l[9], 64)
		qerr(err)
	}
	if len(l) > 10 {
		a.MB, err = strconv.ParseFloat(l[10], 64)
		qerr(err)
	}
	return a, nil
}

// termFromGro parses a bonded term with nat atoms. The parameters are
// returned as they are in the line.
func termFromGro(s string, nat int) (ids []int, f int, raw []string, err error) {
	l := strings.Fields(s)
	if len(l) < nat+1 {
		return nil, 0, nil, fmt.Errorf("expected at least %d fields, got %d", nat+1, len(l))
	}
	ids, err = parseints(l[:nat]...)
	if err != nil {
		return nil, 0, nil, err
	}
	f, err = strconv.Atoi(l[nat])
	if err != nil {
		return nil, 0, nil, err
	}
	if len(l) > nat+1 {
		raw = l[nat+1:]
	}
	return ids, f, raw, nil
}

func checkIDs(T *pmx.Topology) error {
	check := func(ids []int) error {
		for _, id := range ids {
			if T.Atom(id) == nil {
				return fmt.Errorf("bonded term %v refers to an atom not in [ atoms ]", ids)
			}
		}
		return nil
	}
	for _, b := range T.Bonds {
		if err := check(b.Atoms[:]); err != nil {
			return err
		}
	}
	for _, a := range T.Angles {
		if err := check(a.Atoms[:]); err != nil {
			return err
		}
	}
	for _, d := range T.Dihedrals {
		if err := check(d.Atoms[:]); err != nil {
			return err
		}
	}
	return nil
}

// WriteTopology writes T in Gromacs format, in the order its sections were
// read. Terms with both slots filled get the A and B parameters, terms
// never resolved keep the parameters they were read with, and dihedrals
// that are meaningless in both states are written commented out.
func WriteTopology(w io.Writer, T *pmx.Topology) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("top/WriteTopology: %s", r)
		}
	}()
	b := bufio.NewWriter(w)
	for _, s := range T.Sections {
		if s.Title != "" {
			_, err = b.WriteString(s.Title + "\n")
			qerr(err)
		}
		if !s.Model {
			for _, l := range s.Lines {
				_, err = b.WriteString(l + "\n")
				qerr(err)
			}
			continue
		}
		switch s.Header {
		case "atoms":
			for _, a := range T.Atoms {
				_, err = b.WriteString(atom2Gro(a))
				qerr(err)
			}
		case "bonds":
			for _, t := range T.Bonds {
				_, err = b.WriteString(term2Gro(t.Atoms[:], t.Func, t.A, t.B, t.Raw, false))
				qerr(err)
			}
		case "angles":
			for _, t := range T.Angles {
				_, err = b.WriteString(term2Gro(t.Atoms[:], t.Func, t.A, t.B, t.Raw, false))
				qerr(err)
			}
		case "dihedrals":
			for _, t := range T.Dihedrals {
				if t.Block != s.Block {
					continue
				}
				_, err = b.WriteString(term2Gro(t.Atoms[:], t.Func, t.A, t.B, t.Raw, t.Inert()))
				qerr(err)
			}
		}
		_, err = b.WriteString("\n")
		qerr(err)
	}
	return b.Flush()
}

func atom2Gro(a *pmx.Atom) string {
	s := fmt.Sprintf("%6d %10s %6d %6s %6s %6d %10.6f %10.4f", a.ID, a.AtomType, a.ResNr, a.ResName, a.Name, a.CGNr, a.Q, a.M)
	if a.HasB {
		s += fmt.Sprintf(" %10s %10.6f %10.4f", a.AtomTypeB, a.QB, a.MB)
	}
	return s + "\n"
}

func term2Gro(ids []int, f int, A, B pmx.Slot, raw []string, commented bool) string {
	ret := make([]string, 0, 20)
	for _, id := range ids {
		ret = append(ret, fmt.Sprintf("%6d", id))
	}
	ret = append(ret, fmt.Sprintf("%2d", f))
	if A.Filled() && B.Filled() {
		ret = append(ret, floats2Gro(A.P.V)...)
		vb := B.P.V
		//the multiplicity can't change between states, so it is written once.
		switch B.P.Func {
		case pmx.DihProper, pmx.DihPeriodicImprop, pmx.DihProperMulti:
			if len(ids) == 4 && len(vb) == 3 {
				vb = vb[:2]
			}
		}
		ret = append(ret, floats2Gro(vb)...)
	} else {
		ret = append(ret, raw...)
	}
	s := strings.Join(ret, " ")
	if commented {
		s = ";" + s
	}
	return s + "\n"
}

func floats2Gro(v []float64) []string {
	ret := make([]string, len(v))
	for i, f := range v {
		ret[i] = fmt.Sprintf("%12s", strconv.FormatFloat(f, 'f', -1, 64))
	}
	return ret
}
