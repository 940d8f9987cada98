/*
 * pipeline.go, part of pmx
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
	"errors"
	"fmt"

	"github.com/etiur/pmx"
	"go.uber.org/zap"
)

// BondedParams is the bonded-parameter database. Lookups are by bonded type.
type BondedParams interface {
	BondParam(t1, t2 string) (pmx.Params, bool)
	AngleParam(t1, t2, t3 string) (pmx.Params, bool)
	//DihedralParams returns all the terms (one per periodicity, for type 9)
	//for the given types and function type, or nil if there is no entry.
	DihedralParams(t1, t2, t3, t4 string, form int) []pmx.Params
}

// TemplateSource returns the mutation-database entry for a hybrid residue.
type TemplateSource interface {
	Lookup(resname, version string) (*pmx.Template, error)
}

// TypeAssigner maps non-bonded atom types to bonded types.
type TypeAssigner interface {
	BondType(atomtype string) (string, bool)
}

// Options for a Pipeline.
type Options struct {
	//Version of the mutation database entries to use.
	Version string
	//Defines are the #define'd dihedral constants of the force field,
	//needed for ILDN and OPLS predefined torsions.
	Defines map[string]pmx.Params
	//Types, if not nil, is used to assign bonded types to all atoms before
	//resolving.
	Types  TypeAssigner
	Logger *zap.Logger
}

// Summary collects the counts that the stages report.
type Summary struct {
	Hybrids         []string
	Bonds           int
	Angles          int
	Predefined      int
	Dihedrals       int
	FakeDihedrals   int
	Duplicates      int
	SkippedDeferred int
	Expanded        int
	Impropers       int
	Prolines        int
	QA, QB          float64
}

// State is what the stages of a pipeline work on. Each run of a
// Pipeline gets its own State, with its own copy of the topology and its own
// template cache.
type State struct {
	Top       *pmx.Topology
	Residues  []*pmx.Residue
	Hybrids   []*pmx.Residue
	Templates map[string]*pmx.Template
	Summary   Summary

	params BondedParams
	source TemplateSource
	opts   Options
	claims map[pmx.DihedralKey]claim
	log    *zap.Logger
}

// NewState returns a State for the topology T. T is used as is, not copied.
func NewState(T *pmx.Topology, params BondedParams, source TemplateSource, opts Options) *State {
	log := opts.Logger
	if log == nil {
		log = zap.NewNop()
	}
	return &State{
		Top:       T,
		Templates: make(map[string]*pmx.Template),
		params:    params,
		source:    source,
		opts:      opts,
		claims:    make(map[pmx.DihedralKey]claim),
		log:       log,
	}
}

// Stage is one step of the resolution. Stages run in order, each one
// over the whole topology.
type Stage struct {
	Name string
	Run  func(*State) error
}

// Stages returns the resolution stages in the order they must run.
// The proline decoupling must come after all the dihedral parameters exist,
// as it overwrites them.
func Stages() []Stage {
	return []Stage{
		{"templates", ApplyTemplates},
		{"bonds", Bonds},
		{"angles", Angles},
		{"predefined", Predefined},
		{"dihedrals", Dihedrals},
		{"proline-ring", ProlineRing},
		{"proline-axes", ProlineAxes},
		{"nucleotides", NucleotideImpropers},
		{"charges", Charges},
	}
}

// Pipeline fills the B state of topologies with hybrid residues.
type Pipeline struct {
	params BondedParams
	source TemplateSource
	opts   Options
	stages []Stage
}

// NewPipeline returns a pipeline with the default stages.
func NewPipeline(params BondedParams, source TemplateSource, opts Options) *Pipeline {
	if opts.Logger == nil {
		opts.Logger = zap.NewNop()
	}
	return &Pipeline{params: params, source: source, opts: opts, stages: Stages()}
}

// Run resolves the B state of a copy of T, and returns the copy. T is not
// modified. On error, no partial result is returned.
func (P *Pipeline) Run(T *pmx.Topology) (*pmx.Topology, Summary, error) {
	st := NewState(T.Copy(), P.params, P.source, P.opts)
	for _, s := range P.stages {
		if err := s.Run(st); err != nil {
			var rerr *Error
			if errors.As(err, &rerr) {
				rerr.Decorate(s.Name)
			}
			return nil, st.Summary, fmt.Errorf("resolve/Pipeline.Run: stage %s: %w", s.Name, err)
		}
		st.log.Debug("stage done", zap.String("stage", s.Name))
	}
	return st.Top, st.Summary, nil
}
