/*
 * bunches.go, part of goshower.
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
	"github.com/jschaefer-hub/goshower/iact"
	"gonum.org/v1/gonum/mat"
)

//column indices of a photon-bunch record
const (
	ColXImpact = iota
	ColYImpact
	ColCosX
	ColCosY
	ColTime
	ColEmissionHeight
	ColWavelength
	NumBunchCols
)

//BunchColumns names the columns of a photon-bunch record, in record
//order. The raw container carries an 8th field (the photon count of the
//bunch) which the current reader mis-decodes; it is discarded on ingest
//and never appears here.
var BunchColumns = [NumBunchCols]string{
	"x_impact_cm", "y_impact_cm",
	"cos_incident_x", "cos_incident_y",
	"time_since_first_interaction_ns",
	"emission_height_asl_cm",
	"wavelength_nm",
}

// A BunchRecord is one Cherenkov photon bunch at the observation plane:
// impact position (cm), incident direction cosines, arrival time relative
// to the first interaction (ns), emission height a.s.l. (cm) and
// wavelength (nm).
type BunchRecord [NumBunchCols]float32

func (r BunchRecord) XImpact() float32 { return r[ColXImpact] }

func (r BunchRecord) YImpact() float32 { return r[ColYImpact] }

// BunchTable is the photon-bunch table of the first event and first
// telescope in one container file. The container may hold more events and
// telescopes; they are intentionally ignored. Immutable after
// construction.
type BunchTable struct {
	records []BunchRecord
}

// ReadBunches extracts the first event's first telescope's bunches from
// the container at path. An empty path fails before anything is opened; a
// container with no event, or an event with no bunches, is an
// *iact.EmptyContainerError. There are no partial results.
func ReadBunches(path string) (*BunchTable, error) {
	if path == "" {
		return nil, errDecorate(NewMissingInputError("cherenkov container"), "ReadBunches")
	}
	f, err := iact.Open(path)
	if err != nil {
		return nil, errDecorate(err, "ReadBunches")
	}
	event, err := f.FirstEvent()
	if err != nil {
		return nil, errDecorate(err, "ReadBunches")
	}
	raw, err := event.FirstBunches()
	if err != nil {
		return nil, errDecorate(err, "ReadBunches")
	}
	B := &BunchTable{records: make([]BunchRecord, len(raw))}
	for i, b := range raw {
		B.records[i] = BunchRecord{
			b[iact.BunchXImpact], b[iact.BunchYImpact],
			b[iact.BunchCosX], b[iact.BunchCosY],
			b[iact.BunchTime],
			b[iact.BunchEmissionHeight],
			//iact.BunchPhotons is skipped here on purpose
			b[iact.BunchWavelength],
		}
	}
	return B, nil
}

// Len returns the number of photon bunches in the table.
func (B *BunchTable) Len() int { return len(B.records) }

// Records returns a view of the records. Callers must not modify it.
func (B *BunchTable) Records() []BunchRecord { return B.records }

// Columns returns the 7 column names of the table, in record order.
func (B *BunchTable) Columns() []string { return BunchColumns[:] }

// Dense returns the table as a gonum matrix, one row per bunch.
func (B *BunchTable) Dense() *mat.Dense {
	if len(B.records) == 0 {
		return nil
	}
	m := mat.NewDense(len(B.records), NumBunchCols, nil)
	for i, rec := range B.records {
		for j := 0; j < NumBunchCols; j++ {
			m.Set(i, j, float64(rec[j]))
		}
	}
	return m
}
