package top

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCompressedRoundTrip(t *testing.T) {
	dir := t.TempDir()
	for _, name := range []string{"hybrid.itp", "hybrid.itp" + Ext} {
		t.Run(name, func(t *testing.T) {
			path := filepath.Join(dir, name)
			w, err := Create(path)
			require.NoError(t, err)
			T := readString(t, hybridItp)
			require.NoError(t, WriteTopology(w, T))
			require.NoError(t, w.Close())

			r, err := Open(path)
			require.NoError(t, err)
			defer r.Close()
			T2, err := ReadTopology(r)
			require.NoError(t, err)
			assert.Equal(t, T.Name, T2.Name)
			assert.Len(t, T2.Dihedrals, len(T.Dihedrals))
		})
	}
	plain, err := os.ReadFile(filepath.Join(dir, "hybrid.itp"))
	require.NoError(t, err)
	packed, err := os.ReadFile(filepath.Join(dir, "hybrid.itp"+Ext))
	require.NoError(t, err)
	assert.NotEqual(t, plain, packed)
	assert.Contains(t, string(plain), "[ moleculetype ]")
}

func TestOpenMissing(t *testing.T) {
	_, err := Open(filepath.Join(t.TempDir(), "nothere.itp"))
	assert.ErrorIs(t, err, os.ErrNotExist)
}
