/*
 * plot.go, part of goshower.
 *
 *
 * Copyright 2025 Jonas Schaefer <jschaefer{at}posteoDOTde>
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

// Package showerplot renders the numeric outputs of package shower. The
// analysis itself never draws or persists anything; everything here
// consumes plain tables and derived-metric sequences.
package showerplot

import (
	"fmt"
	"image/color"

	shower "github.com/jschaefer-hub/goshower"
	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"
)

// SideProfile draws the particle tracks of the table as faint segments in
// the x-z plane (km), with the vertical axis clamped to the shower-start
// altitude. maxTraces limits the number of segments drawn; 0 draws all.
// The plot is saved as a PNG under plotname.
func SideProfile(T *shower.TrackTable, maxTraces int, plotname string) error {
	start := shower.StartAltitude(T)
	p := plot.New()
	p.Title.Padding = 3 * vg.Millimeter
	p.Title.Text = "Shower side profile"
	p.X.Label.Text = "x [km]"
	p.Y.Label.Text = "Height a.s.l. [km]"
	p.Y.Min = 0
	p.Y.Max = start
	recs := T.Records()
	if maxTraces <= 0 || maxTraces > len(recs) {
		maxTraces = len(recs)
	}
	faint := color.RGBA{A: 26} //roughly the 0.1 alpha of a printed trace
	for _, rec := range recs[:maxTraces] {
		seg := plotter.XYs{
			{X: float64(rec.XStart()) * shower.CmToKm, Y: float64(rec.ZStart()) * shower.CmToKm},
			{X: float64(rec.XEnd()) * shower.CmToKm, Y: float64(rec.ZEnd()) * shower.CmToKm},
		}
		l, err := plotter.NewLine(seg)
		if err != nil {
			return err
		}
		l.LineStyle.Color = faint
		l.LineStyle.Width = vg.Points(0.1)
		p.Add(l)
	}
	filename := fmt.Sprintf("%s.png", plotname)
	return p.Save(3*vg.Inch, 8*vg.Inch, filename)
}

// RadialProfile draws a radial photon density profile on a logarithmic
// radius axis and saves it as a PNG under plotname.
func RadialProfile(profile []shower.DensityPoint, plotname string) error {
	p := plot.New()
	p.Title.Padding = 3 * vg.Millimeter
	p.Title.Text = "Radial photon density"
	p.X.Label.Text = "r [cm]"
	p.Y.Label.Text = "Photons per unit area"
	p.X.Scale = plot.LogScale{}
	p.X.Tick.Marker = plot.LogTicks{Prec: -1}
	pts := make(plotter.XYs, len(profile))
	for i, d := range profile {
		pts[i].X = d.R
		pts[i].Y = d.Density
	}
	l, err := plotter.NewLine(pts)
	if err != nil {
		return err
	}
	p.Add(l, plotter.NewGrid())
	filename := fmt.Sprintf("%s.png", plotname)
	return p.Save(5*vg.Inch, 5*vg.Inch, filename)
}

// LateralDistribution draws the photon impact positions of the bunch
// table on the observation plane (km) and saves the scatter as a PNG
// under plotname.
func LateralDistribution(B *shower.BunchTable, plotname string) error {
	p := plot.New()
	p.Title.Padding = 3 * vg.Millimeter
	p.Title.Text = "Cherenkov photon distribution"
	p.X.Label.Text = "x [km]"
	p.Y.Label.Text = "y [km]"
	pts := make(plotter.XYs, B.Len())
	for i, rec := range B.Records() {
		pts[i].X = float64(rec.XImpact()) * shower.CmToKm
		pts[i].Y = float64(rec.YImpact()) * shower.CmToKm
	}
	s, err := plotter.NewScatter(pts)
	if err != nil {
		return err
	}
	s.GlyphStyle.Radius = vg.Points(0.5)
	s.GlyphStyle.Color = color.RGBA{A: 255}
	p.Add(s)
	filename := fmt.Sprintf("%s.png", plotname)
	return p.Save(5*vg.Inch, 5*vg.Inch, filename)
}
