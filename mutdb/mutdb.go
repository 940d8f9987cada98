/*
 * mutdb.go, part of pmx
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

// Package mutdb is the mutation database: the templates of the hybrid
// residues, with the B-state data of their atoms and the parameter
// schemes of their predefined dihedrals. The database is a YAML file.
package mutdb

import (
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/etiur/pmx"
	"github.com/etiur/pmx/top"
	"gopkg.in/yaml.v3"
)

// ErrNotFound is returned by Lookup when there is no entry for a residue.
var ErrNotFound = errors.New("residue not in mutation database")

type rawAtom struct {
	Name      string  `yaml:"name"`
	AtomType  string  `yaml:"type"`
	AtomTypeB string  `yaml:"typeB"`
	Q         float64 `yaml:"q"`
	QB        float64 `yaml:"qB"`
	M         float64 `yaml:"m"`
	MB        float64 `yaml:"mB"`
}

type rawTerm struct {
	Atoms []string `yaml:"atoms"`
	A     string   `yaml:"A"`
	B     string   `yaml:"B"`
}

type rawEntry struct {
	Name      string     `yaml:"name"`
	Version   string     `yaml:"version,omitempty"`
	Atoms     []rawAtom  `yaml:"atoms"`
	Bonds     [][]string `yaml:"bonds,omitempty"`
	Angles    [][]string `yaml:"angles,omitempty"`
	Impropers []rawTerm  `yaml:"impropers,omitempty"`
	Dihedrals []rawTerm  `yaml:"dihedrals,omitempty"`
}

type rawDB struct {
	Version string     `yaml:"version,omitempty"`
	Entries []rawEntry `yaml:"residues"`
}

// DB is a mutation database. It is not modified after loading, so it
// can be shared by concurrent pipelines.
type DB struct {
	entries map[string][]*pmx.Template
}

// Load reads a database in YAML format. Entries without version take the
// version given at the top level, if any.
func Load(r io.Reader) (*DB, error) {
	var raw rawDB
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(&raw); err != nil {
		return nil, fmt.Errorf("mutdb/Load: %w", err)
	}
	D := &DB{entries: make(map[string][]*pmx.Template)}
	for i, e := range raw.Entries {
		if e.Version == "" {
			e.Version = raw.Version
		}
		t, err := e.template()
		if err != nil {
			return nil, fmt.Errorf("mutdb/Load: entry %d (%s): %w", i, e.Name, err)
		}
		for _, v := range D.entries[t.Name] {
			if v.Version == t.Version {
				return nil, fmt.Errorf("mutdb/Load: repeated entry %s, version %q", t.Name, t.Version)
			}
		}
		D.entries[t.Name] = append(D.entries[t.Name], t)
	}
	return D, nil
}

// Open reads the database in the file name, which can be compressed.
func Open(name string) (*DB, error) {
	f, err := top.Open(name)
	if err != nil {
		return nil, fmt.Errorf("mutdb/Open: %w", err)
	}
	defer f.Close()
	D, err := Load(f)
	if err != nil {
		return nil, fmt.Errorf("mutdb/Open: %s: %w", name, err)
	}
	return D, nil
}

func (e rawEntry) template() (*pmx.Template, error) {
	if e.Name == "" {
		return nil, fmt.Errorf("no residue name")
	}
	if !pmx.IsHybridName(e.Name) {
		return nil, fmt.Errorf("%s is not a hybrid residue name", e.Name)
	}
	if len(e.Atoms) == 0 {
		return nil, fmt.Errorf("no atoms")
	}
	t := &pmx.Template{Name: e.Name, Version: e.Version, Bonds: e.Bonds, Angles: e.Angles}
	names := make(map[string]bool, len(e.Atoms))
	for _, a := range e.Atoms {
		if a.Name == "" || a.AtomType == "" || a.AtomTypeB == "" {
			return nil, fmt.Errorf("atom %q lacks name or types", a.Name)
		}
		if names[a.Name] {
			return nil, fmt.Errorf("repeated atom %s", a.Name)
		}
		names[a.Name] = true
		t.Atoms = append(t.Atoms, pmx.TemplateAtom(a))
	}
	var err error
	if t.Impropers, err = terms(e.Impropers); err != nil {
		return nil, fmt.Errorf("impropers: %w", err)
	}
	if t.Dihedrals, err = terms(e.Dihedrals); err != nil {
		return nil, fmt.Errorf("dihedrals: %w", err)
	}
	return t, nil
}

func terms(raw []rawTerm) ([]pmx.TemplateTerm, error) {
	ret := make([]pmx.TemplateTerm, 0, len(raw))
	for _, r := range raw {
		if len(r.Atoms) != 4 {
			return nil, fmt.Errorf("term %s has %d atoms", strings.Join(r.Atoms, "-"), len(r.Atoms))
		}
		a, err := pmx.ParseScheme(r.A)
		if err != nil {
			return nil, err
		}
		b, err := pmx.ParseScheme(r.B)
		if err != nil {
			return nil, err
		}
		ret = append(ret, pmx.TemplateTerm{Atoms: r.Atoms, A: a, B: b})
	}
	return ret, nil
}

// Lookup returns the entry for the residue name and the force field
// version. An entry without version matches all versions, but one for the
// exact version is preferred. The error wraps ErrNotFound if there is no
// matching entry.
func (D *DB) Lookup(name, version string) (*pmx.Template, error) {
	var generic *pmx.Template
	for _, t := range D.entries[name] {
		if t.Version == version {
			return t, nil
		}
		if t.Version == "" {
			generic = t
		}
	}
	if generic != nil {
		return generic, nil
	}
	return nil, fmt.Errorf("mutdb/DB.Lookup: %s, version %q: %w", name, version, ErrNotFound)
}
