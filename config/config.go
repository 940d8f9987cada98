/*
 * config.go, part of pmx
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

// Package config loads the settings of the fillbstate command from a YAML
// file and PMX_* environment variables.
package config

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/spf13/viper"
)

// envPrefix is the prefix of the environment variables read.
const envPrefix = "PMX"

const (
	DefaultFFDir     = "."
	DefaultLogLevel  = "info"
	DefaultLogFormat = "console"
	DefaultWorkers   = 4
	//DefaultMutDB is the name of the mutation database in the
	//force field directory.
	DefaultMutDB = "mutres.yaml"
)

// LogConfig selects the zap logger.
type LogConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"` //json or console
}

// Config contains the settings of a fillbstate run.
type Config struct {
	//ForceField is the name of the force field, without the .ff extension.
	ForceField string `mapstructure:"forcefield"`
	//FFDir is the directory that contains the force field directory.
	FFDir string `mapstructure:"ffdir"`
	//MutDB is the mutation database file. By default, DefaultMutDB in the
	//force field directory.
	MutDB string `mapstructure:"mutdb"`
	//Version of the mutation-database entries. By default, the force field
	//name.
	Version string    `mapstructure:"version"`
	Workers int       `mapstructure:"workers"`
	Log     LogConfig `mapstructure:"log"`
}

// ForceFieldPath returns the force field directory.
func (c *Config) ForceFieldPath() string {
	return filepath.Join(c.FFDir, c.ForceField+".ff")
}

func newViper() *viper.Viper {
	v := viper.New()
	v.SetConfigType("yaml")
	v.SetEnvPrefix(envPrefix)
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	//keys need to be known to viper for Unmarshal to see the environment.
	for _, k := range []string{"forcefield", "ffdir", "mutdb", "version", "log.level", "log.format"} {
		v.SetDefault(k, "")
	}
	v.SetDefault("workers", 0)
	return v
}

// Load reads the YAML file at configPath, merges the PMX_* environment
// variables, applies the defaults and validates the result.
func Load(configPath string) (*Config, error) {
	v := newViper()
	v.SetConfigFile(configPath)
	if err := v.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("config: failed to read config file %q: %w", configPath, err)
	}
	return unmarshal(v)
}

// LoadFromEnv builds a Config from the PMX_* environment variables only,
// e.g. PMX_FORCEFIELD or PMX_LOG_LEVEL. It is not validated, as the
// command line may complete it.
func LoadFromEnv() (*Config, error) {
	cfg := &Config{}
	if err := newViper().Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("config: failed to unmarshal configuration: %w", err)
	}
	return cfg, nil
}

func unmarshal(v *viper.Viper) (*Config, error) {
	cfg := &Config{}
	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("config: failed to unmarshal configuration: %w", err)
	}
	return cfg, nil
}

// ApplyDefaults fills the zero-value fields of cfg. Fields already set
// are left unchanged.
func ApplyDefaults(cfg *Config) {
	if cfg == nil {
		return
	}
	if cfg.FFDir == "" {
		cfg.FFDir = DefaultFFDir
	}
	if cfg.Version == "" {
		cfg.Version = cfg.ForceField
	}
	if cfg.MutDB == "" && cfg.ForceField != "" {
		cfg.MutDB = filepath.Join(cfg.ForceFieldPath(), DefaultMutDB)
	}
	if cfg.Workers == 0 {
		cfg.Workers = DefaultWorkers
	}
	if cfg.Log.Level == "" {
		cfg.Log.Level = DefaultLogLevel
	}
	if cfg.Log.Format == "" {
		cfg.Log.Format = DefaultLogFormat
	}
}

// Validate returns the first problem found in cfg.
func (c *Config) Validate() error {
	if c.ForceField == "" {
		return fmt.Errorf("config: forcefield is required")
	}
	if strings.ContainsRune(c.ForceField, filepath.Separator) {
		return fmt.Errorf("config: forcefield %q must be a name, use ffdir for its location", c.ForceField)
	}
	if c.Workers < 1 {
		return fmt.Errorf("config: workers must be at least 1, got %d", c.Workers)
	}
	switch c.Log.Level {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("config: log.level %q is invalid; expected debug|info|warn|error", c.Log.Level)
	}
	switch c.Log.Format {
	case "json", "console":
	default:
		return fmt.Errorf("config: log.format %q is invalid; expected json|console", c.Log.Format)
	}
	return nil
}
