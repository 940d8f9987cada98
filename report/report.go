/*
 * report.go, part of pmx
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

/*
Package report summarizes the charges of a dual-state topology, per
hybrid residue and total, as a table or as a bar chart.
*/
package report

import (
	"fmt"
	"io"
	"math"
	"text/tabwriter"

	"github.com/etiur/pmx"
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/floats/scalar"
	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/plotutil"
	"gonum.org/v1/plot/vg"
)

// ResidueCharge is the charge of one residue in both states.
type ResidueCharge struct {
	Residue string //nr-name
	QA, QB  float64
}

// Charges is the charge summary of a topology.
type Charges struct {
	Residues []ResidueCharge //only the hybrid residues
	QA, QB   float64
}

// Summarize returns the charges of the hybrid residues of T and
// the total charges.
func Summarize(T *pmx.Topology) Charges {
	var c Charges
	for _, r := range T.Residues() {
		if !pmx.IsHybridName(r.Name) {
			continue
		}
		c.Residues = append(c.Residues, ResidueCharge{Residue: fmt.Sprintf("%d-%s", r.Nr, r.Name), QA: r.Charge(pmx.StateA), QB: r.Charge(pmx.StateB)})
	}
	c.QA = T.Charge(pmx.StateA)
	c.QB = T.Charge(pmx.StateB)
	return c
}

func (C Charges) split() (qa, qb []float64) {
	qa = make([]float64, len(C.Residues))
	qb = make([]float64, len(C.Residues))
	for i, r := range C.Residues {
		qa[i], qb[i] = r.QA, r.QB
	}
	return qa, qb
}

// MaxChange returns the largest change of charge of a hybrid residue
// between states, in absolute value.
func (C Charges) MaxChange() float64 {
	if len(C.Residues) == 0 {
		return 0
	}
	qa, qb := C.split()
	floats.Sub(qb, qa)
	return floats.Norm(qb, math.Inf(1))
}

// Integral returns false if the total charge of either state is not an
// integer, within tol.
func (C Charges) Integral(tol float64) bool {
	return scalar.EqualWithinAbs(C.QA, math.Round(C.QA), tol) && scalar.EqualWithinAbs(C.QB, math.Round(C.QB), tol)
}

// Write writes the summary as a table.
func (C Charges) Write(w io.Writer) error {
	t := tabwriter.NewWriter(w, 0, 4, 2, ' ', tabwriter.AlignRight)
	fmt.Fprintln(t, "residue\tqA\tqB\t")
	for _, r := range C.Residues {
		fmt.Fprintf(t, "%s\t%.4f\t%.4f\t\n", r.Residue, r.QA, r.QB)
	}
	fmt.Fprintf(t, "total\t%.4f\t%.4f\t\n", C.QA, C.QB)
	return t.Flush()
}

// Plot returns a bar chart with the charges of the hybrid residues in
// both states.
func (C Charges) Plot(title string) (*plot.Plot, error) {
	if len(C.Residues) == 0 {
		return nil, fmt.Errorf("report/Charges.Plot: no hybrid residues to plot")
	}
	p := plot.New()
	p.Title.Padding = 3 * vg.Millimeter
	p.Title.Text = title
	p.Y.Label.Text = "Charge (e)"
	p.Add(plotter.NewGrid())
	qa, qb := C.split()
	w := vg.Points(12)
	names := make([]string, len(C.Residues))
	for i, r := range C.Residues {
		names[i] = r.Residue
	}
	for i, q := range []plotter.Values{qa, qb} {
		b, err := plotter.NewBarChart(q, w)
		if err != nil {
			return nil, fmt.Errorf("report/Charges.Plot: %w", err)
		}
		b.Color = plotutil.Color(i)
		b.LineStyle.Width = vg.Length(0)
		b.Offset = vg.Length(2*i-1) * w / 2
		p.Add(b)
		p.Legend.Add(pmx.State(i).String(), b)
	}
	p.Legend.Top = true
	p.NominalX(names...)
	return p, nil
}

// SavePlot saves the charge chart to filename. The format is given by the
// extension (png, svg, pdf...).
func (C Charges) SavePlot(title, filename string) error {
	p, err := C.Plot(title)
	if err != nil {
		return err
	}
	if err := p.Save(6*vg.Inch, 4*vg.Inch, filename); err != nil {
		return fmt.Errorf("report/Charges.SavePlot: %w", err)
	}
	return nil
}
