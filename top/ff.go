/*
 * ff.go, part of pmx
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
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"slices"
	"strconv"
	"strings"

	"github.com/etiur/pmx"
)

// Wildcard matches any type in [ dihedraltypes ].
const Wildcard = "X"

type dihedralType struct {
	types [4]string
	form  int
	terms []pmx.Params
}

// match returns the number of non-wildcard positions if the entry matches
// the types in the given order, or -1.
func (D *dihedralType) match(t [4]string) int {
	n := 0
	for i, v := range D.types {
		if v == Wildcard {
			continue
		}
		if v != t[i] {
			return -1
		}
		n++
	}
	return n
}

// BondedDB contains the bonded parameters and the bonded types of a
// Gromacs force field.
type BondedDB struct {
	btypes    map[string]string
	bonds     map[[2]string]pmx.Params
	angles    map[[3]string]pmx.Params
	dihedrals []*dihedralType
}

// NewBondedDB returns an empty database.
func NewBondedDB() *BondedDB {
	return &BondedDB{
		btypes: make(map[string]string),
		bonds:  make(map[[2]string]pmx.Params),
		angles: make(map[[3]string]pmx.Params),
	}
}

// ReadForceField reads the [ atomtypes ], [ bondtypes ], [ angletypes ] and
// [ dihedraltypes ] sections in r into a new BondedDB.
func ReadForceField(r StringReader, defines ...string) (*BondedDB, error) {
	F := NewBondedDB()
	if err := F.Read(r, defines...); err != nil {
		return nil, err
	}
	return F, nil
}

// LoadForceField reads the bonded and non-bonded files of the force field
// directory dir (ffnonbonded.itp and ffbonded.itp, or their zstd-compressed
// versions) and returns the bonded database and the #define'd dihedral
// constants. The force field name is taken from the directory name.
func LoadForceField(dir string) (*BondedDB, Defines, error) {
	F := NewBondedDB()
	for _, name := range []string{"ffnonbonded.itp", "ffbonded.itp"} {
		if err := readFile(filepath.Join(dir, name), F.Read); err != nil {
			return nil, nil, fmt.Errorf("top/LoadForceField: %w", err)
		}
	}
	ff := strings.TrimSuffix(filepath.Base(dir), ".ff")
	var defs Defines
	err := readFile(filepath.Join(dir, "ffbonded.itp"), func(r StringReader, _ ...string) error {
		var err error
		defs, err = ReadDefines(r, ff)
		return err
	})
	if err != nil {
		return nil, nil, fmt.Errorf("top/LoadForceField: %w", err)
	}
	return F, defs, nil
}

// readFile reads the file name, or its compressed version if only that
// one exists.
func readFile(name string, read func(StringReader, ...string) error) error {
	if _, err := os.Stat(name); err != nil {
		if _, zerr := os.Stat(name + Ext); zerr == nil {
			name += Ext
		}
	}
	f, err := Open(name)
	if err != nil {
		return err
	}
	defer f.Close()
	if err := read(f); err != nil {
		return fmt.Errorf("%s: %w", name, err)
	}
	return nil
}

type cond struct {
	reading bool
}

func newCond() *cond {
	return &cond{reading: true}
}

// read returns false for the lines that are not to be read, given the
// defined flags. Nested conditionals are not supported.
func (c *cond) read(line string, defines []string) bool {
	switch {
	case strings.HasPrefix(line, "#ifdef"), strings.HasPrefix(line, "#ifndef"):
		f := strings.Fields(line)
		def := len(f) > 1 && slices.Contains(defines, f[1])
		c.reading = def == (f[0] == "#ifdef")
		return false
	case strings.HasPrefix(line, "#else"):
		c.reading = !c.reading
		return false
	case strings.HasPrefix(line, "#endif"):
		c.reading = true
		return false
	}
	return c.reading
}

// Read adds the data in r to the receiver. Entries already present are
// overwritten, except for consecutive type 9 dihedral entries with the same
// types, which are the terms of one multi-term dihedral.
// #include statements are not followed.
func (F *BondedDB) Read(r StringReader, defines ...string) error {
	var err error
	var s string
	read := newCond()
	h := newTopHeader()
	header := ""
	var last *dihedralType
	for {
		s, err = r.ReadString('\n')
		line := cleanString(s)
		if line != "" && read.read(line, defines) && !strings.HasPrefix(line, "#") {
			if h.Is(line) {
				header = h.Which(line)
				last = nil
			} else {
				var perr error
				switch header {
				case "atomtypes":
					perr = F.atomTypeFromGro(line)
				case "bondtypes":
					perr = F.bondTypeFromGro(line)
				case "angletypes":
					perr = F.angleTypeFromGro(line)
				case "dihedraltypes":
					last, perr = F.dihedralTypeFromGro(line, last)
				}
				if perr != nil {
					return fmt.Errorf("top/BondedDB.Read: couldn't read header %s. Line: %s. Error: %w", header, line, perr)
				}
			}
		}
		if err != nil {
			break
		}
	}
	if errors.Is(err, io.EOF) {
		err = nil
	}
	return err
}

// atomtypes lines have the bonded type as second field in some
// force fields (OPLS, CHARMM). Otherwise the bonded type is the
// atom type itself.
func (F *BondedDB) atomTypeFromGro(s string) error {
	f := strings.Fields(s)
	if len(f) < 6 {
		return fmt.Errorf("%d fields in atomtypes line", len(f))
	}
	bt := f[0]
	if len(f) >= 8 && !isNumber(f[1]) {
		bt = f[1]
	}
	F.btypes[f[0]] = bt
	return nil
}

func paramsFromGro(f []string) (pmx.Params, error) {
	ft, err := strconv.Atoi(f[0])
	if err != nil {
		return pmx.Params{}, err
	}
	v, err := parsefloats(f[1:]...)
	if err != nil {
		return pmx.Params{}, err
	}
	return pmx.NewParams(ft, v...), nil
}

func (F *BondedDB) bondTypeFromGro(s string) error {
	f := strings.Fields(s)
	if len(f) < 4 {
		return fmt.Errorf("%d fields in bondtypes line", len(f))
	}
	p, err := paramsFromGro(f[2:])
	if err != nil {
		return err
	}
	F.bonds[[2]string{f[0], f[1]}] = p
	return nil
}

func (F *BondedDB) angleTypeFromGro(s string) error {
	f := strings.Fields(s)
	if len(f) < 5 {
		return fmt.Errorf("%d fields in angletypes line", len(f))
	}
	p, err := paramsFromGro(f[3:])
	if err != nil {
		return err
	}
	F.angles[[3]string{f[0], f[1], f[2]}] = p
	return nil
}

// dihedraltypes lines give either the four types, or only two. In the
// latter case, they are the central atoms of proper dihedrals and the
// outer atoms of impropers.
func (F *BondedDB) dihedralTypeFromGro(s string, last *dihedralType) (*dihedralType, error) {
	f := strings.Fields(s)
	var types [4]string
	var rest []string
	switch {
	case len(f) >= 5 && !isNumber(f[2]) && !isNumber(f[3]):
		copy(types[:], f[:4])
		rest = f[4:]
	case len(f) >= 3:
		rest = f[2:]
		types = [4]string{Wildcard, f[0], f[1], Wildcard}
		if rest[0] == "2" || rest[0] == "4" {
			types = [4]string{f[0], Wildcard, Wildcard, f[1]}
		}
	default:
		return nil, fmt.Errorf("%d fields in dihedraltypes line", len(f))
	}
	p, err := paramsFromGro(rest)
	if err != nil {
		return nil, err
	}
	if p.Func == pmx.DihProperMulti && last != nil && last.form == p.Func && last.types == types {
		last.terms = append(last.terms, p)
		return last, nil
	}
	d := &dihedralType{types: types, form: p.Func, terms: []pmx.Params{p}}
	for i, v := range F.dihedrals {
		if v.types == types && v.form == p.Func {
			F.dihedrals[i] = d
			return d, nil
		}
	}
	F.dihedrals = append(F.dihedrals, d)
	return d, nil
}

// BondType returns the bonded type for the given atom type.
func (F *BondedDB) BondType(atomtype string) (string, bool) {
	t, ok := F.btypes[atomtype]
	return t, ok
}

// BondParam returns the parameters for a bond between the given bonded
// types, in any order.
func (F *BondedDB) BondParam(t1, t2 string) (pmx.Params, bool) {
	p, ok := F.bonds[[2]string{t1, t2}]
	if !ok {
		p, ok = F.bonds[[2]string{t2, t1}]
	}
	return p.Copy(), ok
}

// AngleParam returns the parameters for an angle between the given bonded
// types, in the given or the reverse order.
func (F *BondedDB) AngleParam(t1, t2, t3 string) (pmx.Params, bool) {
	p, ok := F.angles[[3]string{t1, t2, t3}]
	if !ok {
		p, ok = F.angles[[3]string{t3, t2, t1}]
	}
	return p.Copy(), ok
}

// DihedralParams returns the terms of the dihedraltypes entry of function
// type form that best matches the given types, in the given or the reverse
// order. The best match is the one with the fewest wildcards, and the first
// one in the file among those. It returns nil if no entry matches.
func (F *BondedDB) DihedralParams(t1, t2, t3, t4 string, form int) []pmx.Params {
	fw := [4]string{t1, t2, t3, t4}
	rv := [4]string{t4, t3, t2, t1}
	var best *dihedralType
	score := -1
	for _, d := range F.dihedrals {
		if d.form != form {
			continue
		}
		n := max(d.match(fw), d.match(rv))
		if n > score {
			best, score = d, n
		}
	}
	if best == nil {
		return nil
	}
	ret := make([]pmx.Params, len(best.terms))
	for i, p := range best.terms {
		ret[i] = p.Copy()
	}
	return ret
}

// Defines are the #define'd parameter sets of a force field, by name.
type Defines map[string]pmx.Params

// ReadDefines reads the #define lines of a force-field file. ff is the force
// field name, which determines how the values are interpreted: AMBER
// constants are type 9 dihedrals (phase, constant, multiplicity), OPLS ones are
// R-B dihedrals if they have 6 values and proper dihedrals if they
// have 3. Defines without values, or with values that can't be interpreted,
// are ignored, as are all defines of other force fields.
func ReadDefines(r StringReader, ff string) (Defines, error) {
	ret := make(Defines)
	ff = strings.ToLower(ff)
	for {
		s, err := r.ReadString('\n')
		f := strings.Fields(cleanString(s))
		if len(f) > 2 && f[0] == "#define" {
			if v, perr := parsefloats(f[2:]...); perr == nil {
				switch {
				case strings.HasPrefix(ff, "amber") && len(v) == 3:
					ret[f[1]] = pmx.NewParams(pmx.DihProperMulti, v...)
				case strings.HasPrefix(ff, "opls") && len(v) == 6:
					ret[f[1]] = pmx.NewParams(pmx.DihRB, v...)
				case strings.HasPrefix(ff, "opls") && len(v) == 3:
					ret[f[1]] = pmx.NewParams(pmx.DihProper, v...)
				}
			}
		}
		if errors.Is(err, io.EOF) {
			return ret, nil
		}
		if err != nil {
			return nil, fmt.Errorf("top/ReadDefines: %w", err)
		}
	}
}
