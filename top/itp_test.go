package top

import (
	"bufio"
	"bytes"
	"strings"
	"testing"

	"github.com/etiur/pmx"
	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const hybridItp = `; generated for a test
#include "amber99sb-ildn.ff/forcefield.itp"

[ moleculetype ]
; Name            nrexcl
Protein             3

[ atoms ]
;   nr       type  resnr residue  atom   cgnr     charge       mass  typeB    chargeB      massB
     1         N3      1    A2G      N      1     0.1414      14.01
     2         CT      1    A2G     CA      2     0.0962     12.01
     3         CT      1    A2G     CB      3    -0.0597     12.01   DUM_CT        0.0      12.01
     4         HC      1    A2G    HB1      4     0.0300      1.008       HC
     5          C      1    A2G      C      5     0.6163      12.01

[ bonds ]
;  ai    aj funct            c0            c1            c2            c3
    1     2     1
    2     3     1
    3     4     1
    2     5     1    0.1522   265265.6

[ angles ]
    1     2     3     1
    2     3     4     5

[ dihedrals ]
    1     2     3     4     9
    5     2     3     4     9    torsion_ILE_N_CA_CB_HB

[ dihedrals ]
    1     3     2     5     4

#ifdef POSRES
#include "posre.itp"
#endif

[ moleculetype ]
SOL  2

[ atoms ]
  1  OW  1  SOL  OW  1  -0.834  16.0
`

func readString(t *testing.T, s string) *pmx.Topology {
	t.Helper()
	T, err := ReadTopology(bufio.NewReader(strings.NewReader(s)))
	require.NoError(t, err)
	return T
}

func TestReadTopology(t *testing.T) {
	T := readString(t, hybridItp)
	assert.Equal(t, "Protein", T.Name)
	require.Len(t, T.Atoms, 5)
	assert.False(t, T.Atom(2).HasB)
	cb := T.Atom(3)
	assert.True(t, cb.HasB)
	assert.Equal(t, "DUM_CT", cb.AtomTypeB)
	assert.Equal(t, 0.0, cb.QB)
	hb := T.Atom(4)
	assert.True(t, hb.HasB)
	assert.Equal(t, 0.03, hb.QB)
	assert.Equal(t, 1.008, hb.MB)

	require.Len(t, T.Bonds, 4)
	assert.Empty(t, T.Bonds[0].Raw)
	assert.Equal(t, []string{"0.1522", "265265.6"}, T.Bonds[3].Raw)
	require.Len(t, T.Angles, 2)
	assert.Equal(t, 5, T.Angles[1].Func)
	require.Len(t, T.Dihedrals, 3)
	assert.Equal(t, "torsion_ILE_N_CA_CB_HB", T.Dihedrals[1].Macro)
	assert.Equal(t, 0, T.Dihedrals[1].Block)
	assert.Equal(t, 1, T.Dihedrals[2].Block)
	assert.Equal(t, 1, T.LastBlock())

	var model, raw []string
	for _, s := range T.Sections {
		if s.Model {
			model = append(model, s.Header)
		} else {
			raw = append(raw, s.Header)
		}
	}
	assert.Equal(t, []string{"atoms", "bonds", "angles", "dihedrals", "dihedrals"}, model)
	//preamble, first moleculetype, the posre lines and the second molecule
	assert.Equal(t, []string{"", "moleculetype", "", "moleculetype", "atoms"}, raw)
	assert.Equal(t, "; generated for a test", T.Sections[0].Lines[0])
}

func TestWriteTopologyRoundTrip(t *testing.T) {
	T := readString(t, hybridItp)
	var b bytes.Buffer
	require.NoError(t, WriteTopology(&b, T))
	out := b.String()
	assert.Contains(t, out, "#include \"posre.itp\"\n")
	assert.Contains(t, out, "torsion_ILE_N_CA_CB_HB")
	T2 := readString(t, out)
	if diff := cmp.Diff(T, T2, cmpopts.IgnoreUnexported(pmx.Topology{})); diff != "" {
		t.Errorf("topology changed after writing and reading (-first +second):\n%s", diff)
	}
}

func lineOf(t *testing.T, out, prefix string) []string {
	t.Helper()
	for _, l := range strings.Split(out, "\n") {
		if strings.HasPrefix(strings.Join(strings.Fields(l), " "), prefix) {
			return strings.Fields(l)
		}
	}
	t.Fatalf("no line starting with %q in:\n%s", prefix, out)
	return nil
}

func TestWriteTopologyResolved(t *testing.T) {
	T := readString(t, hybridItp)
	T.Bonds[1].A = pmx.ConcreteSlot(pmx.NewParams(1, 0.1526, 259408))
	T.Bonds[1].B = pmx.ConcreteSlot(pmx.NewParams(1, 0.1526, 0))
	T.Angles[1].A = pmx.ConcreteSlot(pmx.NewParams(5, 109.5, 292.88, 0.2, 10))
	T.Angles[1].B = pmx.ConcreteSlot(pmx.NewParams(5, 109.5, 0, 0.2, 0))
	tor := pmx.NewParams(9, 0, 0.65084, 3)
	T.Dihedrals[0].Set(pmx.ConcreteSlot(tor), pmx.ZeroedSlot(tor))
	T.Dihedrals[1].Set(pmx.InertSlot(), pmx.InertSlot())
	rb := pmx.NewParams(3, 1, 2, 3, 4, 5, 6)
	T.Dihedrals = append(T.Dihedrals, &pmx.Dihedral{Atoms: [4]int{2, 3, 4, 5}, Block: 1})
	T.Dihedrals[3].Set(pmx.ZeroedSlot(rb), pmx.ConcreteSlot(rb))

	var b bytes.Buffer
	require.NoError(t, WriteTopology(&b, T))
	out := b.String()
	assert.Equal(t, []string{"2", "3", "1", "0.1526", "259408", "0.1526", "0"}, lineOf(t, out, "2 3 1"))
	assert.Equal(t, []string{"2", "3", "4", "5", "109.5", "292.88", "0.2", "10", "109.5", "0", "0.2", "0"}, lineOf(t, out, "2 3 4 5"))
	//no multiplicity for state B
	assert.Equal(t, []string{"1", "2", "3", "4", "9", "0", "0.65084", "3", "0", "0"}, lineOf(t, out, "1 2 3 4 9"))
	assert.Equal(t, []string{";", "5", "2", "3", "4", "9", "torsion_ILE_N_CA_CB_HB"}, lineOf(t, out, "; 5 2"))
	//the R-B term goes to the second block.
	tail := out[strings.LastIndex(out, "[ dihedrals ]"):]
	assert.Equal(t, []string{"2", "3", "4", "5", "3", "0", "0", "0", "0", "0", "0", "1", "2", "3", "4", "5", "6"}, lineOf(t, tail, "2 3 4 5 3"))
}

func TestWriteTopologyMultiplicityOnce(t *testing.T) {
	T := readString(t, hybridItp)
	flat := pmx.NewParams(9, 0, 0, 0)
	T.Dihedrals[0].Set(pmx.ConcreteSlot(flat), pmx.ZeroedSlot(flat))
	imp := pmx.NewParams(4, 180, 4.6, 2)
	T.Dihedrals[2].Set(pmx.ConcreteSlot(imp), pmx.ZeroedSlot(imp))

	var b bytes.Buffer
	require.NoError(t, WriteTopology(&b, T))
	out := b.String()
	//a zero multiplicity is still a multiplicity.
	assert.Equal(t, []string{"1", "2", "3", "4", "9", "0", "0", "0", "0", "0"}, lineOf(t, out, "1 2 3 4 9"))
	assert.Equal(t, []string{"1", "3", "2", "5", "4", "180", "4.6", "2", "180", "0"}, lineOf(t, out, "1 3 2 5 4"))
}

func TestReadTopologyErrors(t *testing.T) {
	cases := map[string]string{
		"short atom line":  "[ atoms ]\n 1 CT 1 ALA\n",
		"bad charge":       "[ atoms ]\n 1 CT 1 ALA CA 1 q 12.01\n",
		"missing atom":     "[ atoms ]\n 1 CT 1 ALA CA 1 0.0 12.01\n[ bonds ]\n 1 2 1\n",
		"no function type": "[ atoms ]\n 1 CT 1 ALA CA 1 0.0 12.01\n[ bonds ]\n 1\n",
		"repeated id":      "[ atoms ]\n 1 CT 1 ALA CA 1 0.0 12.01\n 1 CT 1 ALA CB 1 0.0 12.01\n",
		"no atoms":         "[ moleculetype ]\nX 3\n",
	}
	for name, s := range cases {
		t.Run(name, func(t *testing.T) {
			_, err := ReadTopology(bufio.NewReader(strings.NewReader(s)))
			assert.Error(t, err)
		})
	}
}
