package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const validConfigYAML = `
forcefield: amber99sb-star-ildn-mut
ffdir: /opt/gromacs/top
log:
  level: debug
`

func writeConfig(t *testing.T, s string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "pmx.yaml")
	require.NoError(t, os.WriteFile(path, []byte(s), 0o644))
	return path
}

func TestLoad(t *testing.T) {
	cfg, err := Load(writeConfig(t, validConfigYAML))
	require.NoError(t, err)
	ApplyDefaults(cfg)
	require.NoError(t, cfg.Validate())
	assert.Equal(t, "amber99sb-star-ildn-mut", cfg.ForceField)
	assert.Equal(t, "amber99sb-star-ildn-mut", cfg.Version)
	assert.Equal(t, "/opt/gromacs/top/amber99sb-star-ildn-mut.ff", cfg.ForceFieldPath())
	assert.Equal(t, "/opt/gromacs/top/amber99sb-star-ildn-mut.ff/mutres.yaml", cfg.MutDB)
	assert.Equal(t, "debug", cfg.Log.Level)
	assert.Equal(t, DefaultLogFormat, cfg.Log.Format)
	assert.Equal(t, DefaultWorkers, cfg.Workers)
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nothere.yaml"))
	assert.Error(t, err)
}

func TestEnvOverrides(t *testing.T) {
	t.Setenv("PMX_FORCEFIELD", "oplsaa-mut")
	t.Setenv("PMX_LOG_LEVEL", "warn")
	t.Setenv("PMX_WORKERS", "2")
	cfg, err := Load(writeConfig(t, validConfigYAML))
	require.NoError(t, err)
	assert.Equal(t, "oplsaa-mut", cfg.ForceField)
	assert.Equal(t, "warn", cfg.Log.Level)
	assert.Equal(t, 2, cfg.Workers)

	cfg, err = LoadFromEnv()
	require.NoError(t, err)
	assert.Equal(t, "oplsaa-mut", cfg.ForceField)
	assert.Empty(t, cfg.FFDir)
}

func TestApplyDefaultsKeepsValues(t *testing.T) {
	cfg := &Config{ForceField: "amber99sb", Version: "v2", MutDB: "db.yaml", Workers: 1}
	ApplyDefaults(cfg)
	assert.Equal(t, "v2", cfg.Version)
	assert.Equal(t, "db.yaml", cfg.MutDB)
	assert.Equal(t, 1, cfg.Workers)
	assert.Equal(t, DefaultFFDir, cfg.FFDir)
	ApplyDefaults(nil)
}

func TestValidate(t *testing.T) {
	valid := func() *Config {
		cfg := &Config{ForceField: "amber99sb"}
		ApplyDefaults(cfg)
		return cfg
	}
	require.NoError(t, valid().Validate())
	cases := map[string]func(*Config){
		"no forcefield":  func(c *Config) { c.ForceField = "" },
		"path as name":   func(c *Config) { c.ForceField = "top/amber99sb" },
		"no workers":     func(c *Config) { c.Workers = -1 },
		"bad log level":  func(c *Config) { c.Log.Level = "loud" },
		"bad log format": func(c *Config) { c.Log.Format = "xml" },
	}
	for name, mod := range cases {
		t.Run(name, func(t *testing.T) {
			cfg := valid()
			mod(cfg)
			assert.Error(t, cfg.Validate())
		})
	}
}
