/*
 * run.go, part of pmx
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

package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"path/filepath"
	"strings"
	"sync"

	"github.com/etiur/pmx"
	"github.com/etiur/pmx/mutdb"
	"github.com/etiur/pmx/report"
	"github.com/etiur/pmx/resolve"
	"github.com/etiur/pmx/top"
	"github.com/google/uuid"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

// stem returns name without its extension, and the extension, which
// includes the compression one, if any.
func stem(name string) (string, string) {
	base := strings.TrimSuffix(name, top.Ext)
	ext := filepath.Ext(base) + strings.TrimPrefix(name, base)
	return strings.TrimSuffix(name, ext), ext
}

// outputName returns the default output for the input in: the same name with
// _B before the extension.
func outputName(in string) string {
	s, ext := stem(in)
	return s + "_B" + ext
}

func run(cmd *cobra.Command, o *options, inputs []string, stdout, stderr io.Writer) error {
	cfg, err := configure(cmd, o)
	if err != nil {
		return err
	}
	if o.output != "" && len(inputs) > 1 {
		return fmt.Errorf("--output can only be used with one input topology")
	}
	log, err := newLogger(cfg.Log, stderr)
	if err != nil {
		return err
	}
	defer log.Sync()
	log = log.With(zap.String("run", uuid.NewString()))
	log.Debug("configuration", zap.String("forcefield", cfg.ForceFieldPath()), zap.String("mutdb", cfg.MutDB), zap.String("version", cfg.Version))

	ff, defs, err := top.LoadForceField(cfg.ForceFieldPath())
	if err != nil {
		return err
	}
	db, err := mutdb.Open(cfg.MutDB)
	if err != nil {
		return err
	}
	cache := mutdb.NewCache(db)
	var outMu sync.Mutex
	g, ctx := errgroup.WithContext(cmd.Context())
	g.SetLimit(cfg.Workers)
	for _, in := range inputs {
		in := in
		out := o.output
		if out == "" {
			out = outputName(in)
		}
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			flog := log.With(zap.String("file", in))
			opts := resolve.Options{Version: cfg.Version, Defines: defs, Types: ff, Logger: flog}
			charges, err := processFile(ctx, in, out, resolve.NewPipeline(ff, cache, opts), flog)
			if err != nil {
				var rerr *resolve.Error
				if errors.As(err, &rerr) {
					outMu.Lock()
					fmt.Fprint(stderr, rerr.Dump())
					outMu.Unlock()
				}
				return fmt.Errorf("%s: %w", in, err)
			}
			if o.plot {
				s, _ := stem(out)
				name := s + "_charges.png"
				if err := charges.SavePlot(filepath.Base(in), name); err != nil {
					flog.Warn("charge chart not saved", zap.Error(err))
				}
			}
			if o.table {
				outMu.Lock()
				defer outMu.Unlock()
				fmt.Fprintf(stdout, "# %s\n", in)
				return charges.Write(stdout)
			}
			return nil
		})
	}
	err = g.Wait()
	log.Debug("mutation database", zap.Int("cache_hits", cache.Hits()))
	return err
}

// processFile resolves the B state of the topology in the file in, and
// writes it to out. Nothing is written if the resolution fails.
func processFile(ctx context.Context, in, out string, P *resolve.Pipeline, log *zap.Logger) (report.Charges, error) {
	r, err := top.Open(in)
	if err != nil {
		return report.Charges{}, err
	}
	T, err := top.ReadTopology(r)
	r.Close()
	if err != nil {
		return report.Charges{}, err
	}
	if err := ctx.Err(); err != nil {
		return report.Charges{}, err
	}
	res, sum, err := P.Run(T)
	if err != nil {
		return report.Charges{}, err
	}
	if len(sum.Hybrids) == 0 {
		log.Warn("no hybrid residues found")
	}
	charges := report.Summarize(res)
	if !charges.Integral(1e-3) {
		log.Warn("total charge is not integral", zap.Float64("qA", charges.QA), zap.Float64("qB", charges.QB))
	}
	if err := write(out, res); err != nil {
		return report.Charges{}, err
	}
	log.Info("topology written",
		zap.String("output", out),
		zap.Strings("hybrids", sum.Hybrids),
		zap.Int("bonds", sum.Bonds),
		zap.Int("angles", sum.Angles),
		zap.Int("predefined", sum.Predefined),
		zap.Int("dihedrals", sum.Dihedrals),
		zap.Int("expanded", sum.Expanded),
		zap.Float64("max_residue_change", charges.MaxChange()))
	return charges, nil
}

func write(out string, T *pmx.Topology) error {
	w, err := top.Create(out)
	if err != nil {
		return err
	}
	if err := top.WriteTopology(w, T); err != nil {
		w.Close()
		return err
	}
	return w.Close()
}
