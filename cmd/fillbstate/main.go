/*
 * main.go, part of pmx
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

// Command fillbstate completes the B state of Gromacs topologies that
// contain hybrid residues.
package main

import (
	"fmt"
	"io"
	"os"

	"github.com/etiur/pmx/config"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

type options struct {
	configFile string
	output     string
	verbose    bool
	plot       bool
	table      bool
	cfg        config.Config //values given as flags
}

func newRootCmd(stdout, stderr io.Writer) *cobra.Command {
	o := &options{}
	cmd := &cobra.Command{
		Use:   "fillbstate [flags] topology.itp...",
		Short: "Fill the B state of the bonded terms of topologies with hybrid residues",
		Long: `fillbstate reads Gromacs topologies (itp or top, optionally zstd-compressed)
with hybrid residues, takes the B-state types, charges and masses of those
residues from the mutation database, and writes the topologies with the
bonded parameters of both states.

Several topologies can be given; they are processed concurrently.`,
		Args:          cobra.MinimumNArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(cmd, o, args, stdout, stderr)
		},
	}
	f := cmd.Flags()
	f.StringVarP(&o.configFile, "config", "c", "", "YAML configuration file (PMX_* environment variables are always read)")
	f.StringVarP(&o.output, "output", "o", "", "output topology (only with one input; by default <input>_B<ext>)")
	f.BoolVarP(&o.verbose, "verbose", "v", false, "enable debug logging")
	f.BoolVar(&o.plot, "plot", false, "save a chart of the charges of the hybrid residues next to each output")
	f.BoolVar(&o.table, "charges", false, "print the charges of the hybrid residues")
	f.StringVar(&o.cfg.ForceField, "ff", "", "force field name, without the .ff extension")
	f.StringVar(&o.cfg.FFDir, "ffdir", "", "directory containing the force field directory")
	f.StringVar(&o.cfg.MutDB, "mutdb", "", "mutation database (by default mutres.yaml in the force field directory)")
	f.StringVar(&o.cfg.Version, "db-version", "", "version of the mutation database entries (by default, the force field name)")
	f.IntVarP(&o.cfg.Workers, "workers", "j", 0, "topologies processed at the same time")
	f.StringVar(&o.cfg.Log.Format, "log-format", "", "log format, json or console")
	return cmd
}

// configure merges the configuration file, the environment and the flags,
// in increasing order of precedence.
func configure(cmd *cobra.Command, o *options) (*config.Config, error) {
	var cfg *config.Config
	var err error
	if o.configFile != "" {
		cfg, err = config.Load(o.configFile)
	} else {
		cfg, err = config.LoadFromEnv()
	}
	if err != nil {
		return nil, err
	}
	f := cmd.Flags()
	set := func(name string, dst *string, v string) {
		if f.Changed(name) {
			*dst = v
		}
	}
	set("ff", &cfg.ForceField, o.cfg.ForceField)
	set("ffdir", &cfg.FFDir, o.cfg.FFDir)
	set("mutdb", &cfg.MutDB, o.cfg.MutDB)
	set("db-version", &cfg.Version, o.cfg.Version)
	set("log-format", &cfg.Log.Format, o.cfg.Log.Format)
	if f.Changed("workers") {
		cfg.Workers = o.cfg.Workers
	}
	if o.verbose {
		cfg.Log.Level = "debug"
	}
	config.ApplyDefaults(cfg)
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func newLogger(c config.LogConfig, w io.Writer) (*zap.Logger, error) {
	level, err := zapcore.ParseLevel(c.Level)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize logger: %w", err)
	}
	var enc zapcore.Encoder
	if c.Format == "json" {
		enc = zapcore.NewJSONEncoder(zap.NewProductionEncoderConfig())
	} else {
		enc = zapcore.NewConsoleEncoder(zap.NewDevelopmentEncoderConfig())
	}
	return zap.New(zapcore.NewCore(enc, zapcore.Lock(zapcore.AddSync(w)), level)), nil
}

func main() {
	if err := newRootCmd(os.Stdout, os.Stderr).Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "fillbstate:", err)
		os.Exit(1)
	}
}
