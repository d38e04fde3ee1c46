/*
 * metrics.go, part of goshower.
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

package shower

import (
	"log"
	"math"
	"sort"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"
)

//CmToKm rescales the centimeter positions of the simulation output into
//the kilometer display unit used by every height histogram here.
const CmToKm = 1e-5

const (
	//heights above this (km) are outside every height histogram
	heightRange = 40
	//a height bin with more than this many particles marks shower development
	startThreshold = 10
	//bin width (km) of the height-binned particle counts
	heightBinWidth = 0.1
)

//radial density profile constants: log-spaced radii from 1 to 800 cm in
//200 steps, paired off into 100 rings
const (
	densityRMin  = 1
	densityRMax  = 800
	densitySteps = 200
)

// StartAltitude estimates the altitude (km a.s.l.) at which shower
// development starts: z_start is histogrammed into unit-width bins over
// [0, 40) km, the bins are scanned from the highest altitude down, and the
// reported altitude is the bin boundary immediately above the first bin
// whose particle count exceeds 10. If the very first scanned bin already
// exceeds the threshold, or no bin does, the result is clamped to the
// 40 km top of range. The value is a visualization bound: deterministic
// for a given table, not a physical constant.
func StartAltitude(T *TrackTable) float64 {
	zs := make([]float64, T.Len())
	for i, rec := range T.Records() {
		zs[i] = float64(rec.ZStart()) * CmToKm
	}
	edges := floats.Span(make([]float64, heightRange), 0, heightRange-1)
	counts := histogram(edges, zs)
	for i := len(counts) - 1; i >= 0; i-- {
		if counts[i] > startThreshold {
			return math.Min(edges[i+1]+1, heightRange)
		}
	}
	return heightRange
}

// Polar converts a Cartesian impact position to polar coordinates, with
// theta in (-pi, pi].
func Polar(x, y float64) (r, theta float64) {
	return math.Hypot(x, y), math.Atan2(y, x)
}

// RingArea returns the area of the annulus between the radii inner and
// outer, which must satisfy outer >= inner >= 0. Coincident radii give
// area 0; the caller must guard any division by it.
func RingArea(inner, outer float64) (float64, error) {
	if inner < 0 || outer < inner {
		return 0, &DataError{message: "ill-formed ring radii", deco: []string{"RingArea"}, critical: false}
	}
	return math.Pi * (outer*outer - inner*inner), nil
}

// A DensityPoint is one ring of the radial photon density profile: the
// ring center radius (cm) and the photon count per unit ring area.
type DensityPoint struct {
	R       float64
	Density float64
}

// RadialDensity computes the radial photon density profile of the bunch
// table: 200 logarithmically spaced radii from 1 to 800 cm are paired off
// into 100 (inner, outer) rings, and each ring counts the photons whose
// polar impact radius falls in [inner, outer), divided by the ring area.
// The profile is ordered by increasing radius, ready for a logarithmic
// radial axis.
func RadialDensity(B *BunchTable) []DensityPoint {
	rs := make([]float64, B.Len())
	for i, rec := range B.Records() {
		rs[i], _ = Polar(float64(rec.XImpact()), float64(rec.YImpact()))
	}
	sort.Float64s(rs)
	radii := make([]float64, densitySteps)
	floats.LogSpan(radii, densityRMin, densityRMax)
	profile := make([]DensityPoint, 0, densitySteps/2)
	for i := 0; i+1 < len(radii); i += 2 {
		inner, outer := radii[i], radii[i+1]
		count := float64(sort.SearchFloat64s(rs, outer) - sort.SearchFloat64s(rs, inner))
		area, err := RingArea(inner, outer)
		if err != nil || area == 0 {
			//LogSpan is strictly increasing, so this cannot happen
			continue
		}
		profile = append(profile, DensityPoint{R: (inner + outer) / 2, Density: count / area})
	}
	return profile
}

// A HeightProfile is a height-binned particle count: bin centers (km
// a.s.l.) and the number of track starts in each bin.
type HeightProfile struct {
	Centers []float64
	Counts  []float64
}

// HeightCounts histograms z_start into 0.1 km bins from ground up to the
// shower-start altitude. With no arguments every track counts; otherwise
// the given particle names form a group and only their species are
// counted, summed together. A name without a catalog entry is logged and
// skipped rather than aborting the computation; if not a single name of a
// requested group is known, HeightCounts returns an
// *UnknownSpeciesError.
func HeightCounts(T *TrackTable, species ...string) (*HeightProfile, error) {
	var ids map[int]bool
	if len(species) > 0 {
		ids = make(map[int]bool, len(species))
		for _, name := range species {
			id, err := ParticleID(name)
			if err != nil {
				log.Printf("goshower: %v, skipping it", err)
				continue
			}
			ids[id] = true
		}
		if len(ids) == 0 {
			return nil, errDecorate(NewUnknownSpeciesError(species[0]), "HeightCounts")
		}
	}
	var zs []float64
	for _, rec := range T.Records() {
		if ids != nil && !ids[rec.ParticleID()] {
			continue
		}
		zs = append(zs, float64(rec.ZStart())*CmToKm)
	}
	top := StartAltitude(T)
	nbins := int(math.Round(top / heightBinWidth))
	edges := floats.Span(make([]float64, nbins+1), 0, top)
	counts := histogram(edges, zs)
	centers := make([]float64, nbins)
	for i := range centers {
		centers[i] = (edges[i] + edges[i+1]) / 2
	}
	return &HeightProfile{Centers: centers, Counts: counts}, nil
}

//histogram bins xs into the given left-closed bins, with the final bin
//closed on both ends. NaN and out-of-range values are removed before the
//call, as stat.Histogram just panics on them; it also rejects values on
//the last edge, so those are split off first and added to the final bin
//afterwards.
func histogram(edges []float64, xs []float64) []float64 {
	data := make([]float64, 0, len(xs))
	for _, x := range xs {
		if !math.IsNaN(x) {
			data = append(data, x)
		}
	}
	sort.Float64s(data)
	lo := sort.SearchFloat64s(data, edges[0])
	last := edges[len(edges)-1]
	hi := sort.SearchFloat64s(data, last)
	atTop := 0
	for i := hi; i < len(data) && data[i] == last; i++ {
		atTop++
	}
	counts := stat.Histogram(nil, edges, data[lo:hi], nil)
	counts[len(counts)-1] += float64(atTop)
	return counts
}
