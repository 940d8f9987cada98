/*
 * graph.go, part of pmx
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

package chemgraph

import (
	"fmt"

	"github.com/etiur/pmx"
	"gonum.org/v1/gonum/graph"
	"gonum.org/v1/gonum/graph/simple"
	"gonum.org/v1/gonum/graph/topo"
	"gonum.org/v1/gonum/graph/traverse"
)

// Atom is a graph node for a topology atom.
type Atom struct {
	*pmx.Atom
}

func (A *Atom) ID() int64 {
	return int64(A.Atom.ID)
}

// Bond is an undirected graph edge for a topology bond.
type Bond struct {
	*pmx.Bond
	At1, At2 *Atom
}

func (B *Bond) From() graph.Node {
	return B.At1
}

func (B *Bond) To() graph.Node {
	return B.At2
}

// ReversedEdge returns a new bond with the ends switched. The topology bond
// is shared.
func (B *Bond) ReversedEdge() graph.Edge {
	return &Bond{Bond: B.Bond, At1: B.At2, At2: B.At1}
}

// Topology is the bond graph of a pmx topology. It implements
// gonum's graph.Undirected.
type Topology struct {
	*simple.UndirectedGraph
}

// New builds the bond graph of T. Bonds whose atoms are not in T, and bonds
// of an atom with itself, are an error.
func New(T *pmx.Topology) (*Topology, error) {
	g := simple.NewUndirectedGraph()
	for _, a := range T.Atoms {
		g.AddNode(&Atom{a})
	}
	for _, b := range T.Bonds {
		a1, a2 := T.Atom(b.Atoms[0]), T.Atom(b.Atoms[1])
		if a1 == nil || a2 == nil {
			return nil, fmt.Errorf("chemgraph/New: bond %d-%d refers to missing atoms", b.Atoms[0], b.Atoms[1])
		}
		if a1.ID == a2.ID {
			return nil, fmt.Errorf("chemgraph/New: atom %d bonded to itself", a1.ID)
		}
		g.SetEdge(&Bond{Bond: b, At1: &Atom{a1}, At2: &Atom{a2}})
	}
	return &Topology{g}, nil
}

// without returns a copy of the graph without the edge between id1 and id2.
func (T *Topology) without(id1, id2 int64) *simple.UndirectedGraph {
	g := simple.NewUndirectedGraph()
	graph.Copy(g, T.UndirectedGraph)
	g.RemoveEdge(id1, id2)
	return g
}

// RingBond returns true if the atoms with the given ids are bonded and
// the bond is part of a ring, i.e. both atoms stay connected when the bond
// is removed.
func (T *Topology) RingBond(id1, id2 int) bool {
	i1, i2 := int64(id1), int64(id2)
	if !T.HasEdgeBetween(i1, i2) {
		return false
	}
	g := T.without(i1, i2)
	return topo.PathExistsIn(g, g.Node(i1), g.Node(i2))
}

// RingSize returns the number of atoms in the smallest ring containing the
// bond between the atoms with the given ids, or 0 if there is no such ring.
func (T *Topology) RingSize(id1, id2 int) int {
	i1, i2 := int64(id1), int64(id2)
	if !T.HasEdgeBetween(i1, i2) {
		return 0
	}
	g := T.without(i1, i2)
	var bfs traverse.BreadthFirst
	depth := -1
	found := bfs.Walk(g, g.Node(i1), func(n graph.Node, d int) bool {
		if n.ID() == i2 {
			depth = d
			return true
		}
		return false
	})
	if found == nil {
		return 0
	}
	return depth + 1
}
