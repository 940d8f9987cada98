package resolve

import (
	"errors"
	"math"
	"testing"

	"github.com/etiur/pmx"
	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// hybridProline returns a P2A proline without B states, and the template
// that gives them.
func hybridProline(t *testing.T) (*pmx.Topology, templates) {
	T := prolineTop(t, true)
	tpl := &pmx.Template{Name: "P2A"}
	for _, a := range T.Atoms {
		a.Q = -0.1
		if !a.HasB {
			continue
		}
		tpl.Atoms = append(tpl.Atoms, pmx.TemplateAtom{
			Name: a.Name, AtomType: a.AtomType, AtomTypeB: a.AtomTypeB,
			Q: a.Q, QB: a.QB, M: a.M, MB: a.MB,
		})
		a.HasB, a.AtomTypeB, a.QB, a.MB = false, "", 0, 0
	}
	return T, templates{"P2A": tpl}
}

func TestPipeline(t *testing.T) {
	T, tpls := hybridProline(t)
	orig := T.Copy()
	P := NewPipeline(prolineFF(), tpls, Options{})
	out, sum, err := P.Run(T)
	require.NoError(t, err)

	if diff := cmp.Diff(orig, T, cmpopts.IgnoreUnexported(pmx.Topology{}), cmpopts.EquateEmpty()); diff != "" {
		t.Errorf("input topology modified (-want +got):\n%s", diff)
	}
	assert.Equal(t, []string{"1-P2A"}, sum.Hybrids)
	assert.Equal(t, 5, sum.Bonds)
	assert.Equal(t, 2, sum.Angles)
	assert.Equal(t, 1, sum.Prolines)
	assert.InDelta(t, -0.8, sum.QA, 1e-9)
	assert.InDelta(t, -0.1*4+0.1, sum.QB, 1e-9)
	assert.Equal(t, math.Round(out.Charge(pmx.StateA)), math.Round(sum.QA))

	//every term with a morphing atom is complete.
	for _, b := range out.Bonds {
		if out.Morphs(b.Atoms[:]...) {
			assert.Truef(t, b.A.Filled() && b.B.Filled(), "bond %v", b.Atoms)
			assert.Equal(t, b.A.P.Func, b.B.P.Func)
		}
	}
	for _, d := range out.Dihedrals {
		if !out.Morphs(d.Atoms[:]...) {
			continue
		}
		if d.Inert() {
			assert.Equal(t, pmx.Inert, d.A.State)
			assert.Equal(t, pmx.Inert, d.B.State)
			continue
		}
		assert.Truef(t, d.A.Filled() && d.B.Filled(), "dihedral %v", d.Atoms)
		assert.Equal(t, d.A.P.Func, d.B.P.Func)
	}
	assert.Equal(t, "DUM_CT", out.Atom(5).AtomTypeB)
}

func TestPipelineMissingTemplate(t *testing.T) {
	T, _ := hybridProline(t)
	orig := T.Copy()
	out, _, err := NewPipeline(prolineFF(), templates{}, Options{}).Run(T)
	require.ErrorIs(t, err, errNoResidue)
	assert.Nil(t, out)
	assert.Empty(t, cmp.Diff(orig, T, cmpopts.IgnoreUnexported(pmx.Topology{}), cmpopts.EquateEmpty()))
}

func TestPipelineDecoratesErrors(t *testing.T) {
	T, tpls := hybridProline(t)
	ff := prolineFF()
	delete(ff.bonds, "CT-N")
	_, _, err := NewPipeline(ff, tpls, Options{}).Run(T)
	var rerr *Error
	require.True(t, errors.As(err, &rerr))
	assert.Equal(t, []string{"bonds"}, rerr.Decorate(""))
	assert.Contains(t, rerr.Dump(), "err_> in: bonds")
}

type bondTypes map[string]string

func (b bondTypes) BondType(at string) (string, bool) {
	t, ok := b[at]
	return t, ok
}

func TestAssignTypes(t *testing.T) {
	T := build(t,
		morph(at(1, "CB", "A2X", 1, "CT1"), "DUM_CT", 0),
		at(2, "CA", "A2X", 1, "CT2"),
	)
	require.NoError(t, AssignTypes(T, bondTypes{"CT1": "CT", "CT2": "CT"}))
	assert.Equal(t, "CT", T.Atom(1).Type)
	assert.Equal(t, "DUM_CT", T.Atom(1).TypeB)
	assert.Equal(t, "CT", T.Atom(2).Type)
	assert.Error(t, AssignTypes(T, bondTypes{"CT1": "CT"}))
}
