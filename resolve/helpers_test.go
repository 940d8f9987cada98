package resolve

import (
	"errors"
	"fmt"
	"strings"
	"testing"

	"github.com/etiur/pmx"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

// fakeFF is a bonded-parameter database keyed by joined types. Lookups
// also try the reverse order.
type fakeFF struct {
	bonds     map[string]pmx.Params
	angles    map[string]pmx.Params
	dihedrals map[string][]pmx.Params //key "t1-t2-t3-t4/form"
	calls     map[string]int
}

func newFF() *fakeFF {
	return &fakeFF{
		bonds: map[string]pmx.Params{
			"CT-CT": pmx.NewParams(1, 0.1526, 259408),
			"CT-CX": pmx.NewParams(1, 0.1510, 265000),
			"CT-HC": pmx.NewParams(1, 0.1090, 284512),
			"CX-HC": pmx.NewParams(1, 0.1080, 290000),
			"CT-N":  pmx.NewParams(1, 0.1449, 282001),
			"CT-C":  pmx.NewParams(1, 0.1522, 265265),
		},
		angles: map[string]pmx.Params{
			"CT-CT-HC": pmx.NewParams(1, 109.5, 292.88),
			"CT-CX-CT": pmx.NewParams(1, 112.0, 400.0),
			"CT-CT-CT": pmx.NewParams(1, 109.5, 334.72),
			"CT-CT-N":  pmx.NewParams(1, 109.7, 669.44),
			"CT-N-CT":  pmx.NewParams(1, 118.0, 418.4),
			"HC-CX-HC": pmx.NewParams(1, 107.8, 276.14),
		},
		dihedrals: map[string][]pmx.Params{},
		calls:     map[string]int{},
	}
}

func reversed(t []string) []string {
	r := make([]string, len(t))
	for i, v := range t {
		r[len(t)-1-i] = v
	}
	return r
}

func (F *fakeFF) BondParam(t1, t2 string) (pmx.Params, bool) {
	F.calls["bond"]++
	for _, k := range []string{t1 + "-" + t2, t2 + "-" + t1} {
		if p, ok := F.bonds[k]; ok {
			return p.Copy(), true
		}
	}
	return pmx.Params{}, false
}

func (F *fakeFF) AngleParam(t1, t2, t3 string) (pmx.Params, bool) {
	F.calls["angle"]++
	for _, k := range []string{t1 + "-" + t2 + "-" + t3, t3 + "-" + t2 + "-" + t1} {
		if p, ok := F.angles[k]; ok {
			return p.Copy(), true
		}
	}
	return pmx.Params{}, false
}

func (F *fakeFF) DihedralParams(t1, t2, t3, t4 string, form int) []pmx.Params {
	F.calls["dihedral"]++
	t := []string{t1, t2, t3, t4}
	for _, k := range [][]string{t, reversed(t)} {
		if ps, ok := F.dihedrals[fmt.Sprintf("%s/%d", strings.Join(k, "-"), form)]; ok {
			ret := make([]pmx.Params, len(ps))
			for i, p := range ps {
				ret[i] = p.Copy()
			}
			return ret
		}
	}
	return nil
}

var errNoResidue = errors.New("residue not in database")

// templates is a mutation database in memory.
type templates map[string]*pmx.Template

func (T templates) Lookup(name, version string) (*pmx.Template, error) {
	t, ok := T[name]
	if !ok {
		return nil, fmt.Errorf("%s: %w", name, errNoResidue)
	}
	return t, nil
}

func at(id int, name, res string, nr int, typ string) *pmx.Atom {
	return &pmx.Atom{ID: id, Name: name, ResName: res, ResNr: nr, AtomType: typ, M: 12.01}
}

// morph gives a B state to a.
func morph(a *pmx.Atom, typB string, qB float64) *pmx.Atom {
	a.HasB = true
	a.AtomTypeB = typB
	a.QB = qB
	a.MB = a.M
	return a
}

func build(t *testing.T, ats ...*pmx.Atom) *pmx.Topology {
	t.Helper()
	T, err := pmx.NewTopology(ats)
	require.NoError(t, err)
	return T
}

func bonds(pairs ...[2]int) []*pmx.Bond {
	ret := make([]*pmx.Bond, len(pairs))
	for i, p := range pairs {
		ret[i] = &pmx.Bond{Atoms: p, Func: 1}
	}
	return ret
}

func angle(f int, ids ...int) *pmx.Angle {
	return &pmx.Angle{Atoms: [3]int{ids[0], ids[1], ids[2]}, Func: f}
}

func dihedral(f int, ids ...int) *pmx.Dihedral {
	return &pmx.Dihedral{Atoms: [4]int{ids[0], ids[1], ids[2], ids[3]}, Func: f}
}

// newTestState returns a State whose hybrids (and their templates) are already
// known. The templates don't need atoms.
func newTestState(t *testing.T, T *pmx.Topology, ff BondedParams, tpls templates, defines map[string]pmx.Params) *State {
	t.Helper()
	st := NewState(T, ff, tpls, Options{Defines: defines, Logger: zap.NewNop()})
	require.NoError(t, ApplyTemplates(st))
	return st
}

// withKey returns the dihedrals of T with the given atoms, in order.
func withKey(T *pmx.Topology, ids ...int) []*pmx.Dihedral {
	var ret []*pmx.Dihedral
	key := pmx.DihedralKey{ids[0], ids[1], ids[2], ids[3]}
	for _, d := range T.Dihedrals {
		if d.Key() == key {
			ret = append(ret, d)
		}
	}
	return ret
}
