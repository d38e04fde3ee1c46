/*
 * tracks.go, part of goshower.
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

	"github.com/jschaefer-hub/goshower/fortran"
	"gonum.org/v1/gonum/mat"
)

//column indices of a particle-track record
const (
	ColParticleID = iota
	ColEnergyGeV
	ColXStart
	ColYStart
	ColZStart
	ColTStart
	ColXEnd
	ColYEnd
	ColZEnd
	ColTEnd
	NumTrackCols
)

//TrackColumns names the columns of a particle-track record, in record
//order.
var TrackColumns = [NumTrackCols]string{
	"particle_id", "energy_gev",
	"x_start", "y_start", "z_start", "t_start",
	"x_end", "y_end", "z_end", "t_end",
}

// A TrackRecord is one particle track: species id, kinetic energy (GeV),
// start position (cm) and time, end position (cm) and time.
type TrackRecord [NumTrackCols]float32

// ParticleID returns the numeric species id of the track. Use
// ParticleName for display.
func (r TrackRecord) ParticleID() int { return int(r[ColParticleID]) }

func (r TrackRecord) XStart() float32 { return r[ColXStart] }

func (r TrackRecord) ZStart() float32 { return r[ColZStart] }

func (r TrackRecord) XEnd() float32 { return r[ColXEnd] }

func (r TrackRecord) ZEnd() float32 { return r[ColZEnd] }

// TrackTable is the concatenated particle-track table of one simulation
// output directory. It is built once and never modified afterward; record
// order is file read order, with files concatenated in the fixed
// electromagnetic, muon, hadronic order.
type TrackTable struct {
	records []TrackRecord
	dropped [NumTrackCols]bool
}

// ReadTracks decodes every present particle-track file in files and
// concatenates the results. A file that yields no records contributes
// nothing. A record whose field count is not 10, or a record-marker
// mismatch in any file, aborts the whole build with an error naming the
// offending file: a corrupt member means the output directory cannot be
// trusted as a unit. After concatenation, columns that are NaN in every
// record are dropped from the table schema; each drop is logged, not an
// error.
func ReadTracks(files Files) (*TrackTable, error) {
	T := new(TrackTable)
	for _, fname := range files.Tracks() {
		if fname == "" {
			continue
		}
		if err := T.readFile(fname); err != nil {
			return nil, errDecorate(err, "ReadTracks")
		}
	}
	T.dropEmptyColumns()
	return T, nil
}

func (T *TrackTable) readFile(fname string) error {
	d, err := fortran.NewDecoder(fname)
	if err != nil {
		return err
	}
	defer d.Close()
	for {
		fields, err := d.Next()
		if err != nil {
			if fortran.IsEnd(err) {
				return nil
			}
			return err
		}
		if len(fields) != NumTrackCols {
			return &DataError{WrongFieldCount, fname, []string{"readFile"}, true}
		}
		var rec TrackRecord
		copy(rec[:], fields)
		T.records = append(T.records, rec)
	}
}

//dropEmptyColumns removes columns that are unrepresentable (NaN) in every
//record of the concatenated table. This is a single explicit cleanup pass,
//not a per-file one.
func (T *TrackTable) dropEmptyColumns() {
	if len(T.records) == 0 {
		return
	}
	for col := 0; col < NumTrackCols; col++ {
		empty := true
		for _, rec := range T.records {
			if !math.IsNaN(float64(rec[col])) {
				empty = false
				break
			}
		}
		if empty {
			T.dropped[col] = true
			log.Printf("goshower: column %s has no value in any input file, dropping it from the table", TrackColumns[col])
		}
	}
}

// Len returns the number of track records in the table.
func (T *TrackTable) Len() int { return len(T.records) }

// Records returns a view of the records. Callers must not modify it.
func (T *TrackTable) Records() []TrackRecord { return T.records }

// Columns returns the names of the columns still present after the
// all-empty cleanup, in record order.
func (T *TrackTable) Columns() []string {
	cols := make([]string, 0, NumTrackCols)
	for i, name := range TrackColumns {
		if !T.dropped[i] {
			cols = append(cols, name)
		}
	}
	return cols
}

// HasColumn returns true if the named column survived the cleanup.
func (T *TrackTable) HasColumn(name string) bool {
	for i, n := range TrackColumns {
		if n == name {
			return !T.dropped[i]
		}
	}
	return false
}

// Column returns the named column as float64, for the analysis functions.
// Asking for a dropped or unknown column is an error.
func (T *TrackTable) Column(name string) ([]float64, error) {
	for i, n := range TrackColumns {
		if n != name {
			continue
		}
		if T.dropped[i] {
			break
		}
		out := make([]float64, len(T.records))
		for j, rec := range T.records {
			out[j] = float64(rec[i])
		}
		return out, nil
	}
	return nil, &DataError{NoSuchColumn + ": " + name, "", []string{"Column"}, false}
}

// Dense returns the table as a gonum matrix with one row per record and
// one column per surviving schema column, for downstream consumers.
func (T *TrackTable) Dense() *mat.Dense {
	cols := make([]int, 0, NumTrackCols)
	for i := 0; i < NumTrackCols; i++ {
		if !T.dropped[i] {
			cols = append(cols, i)
		}
	}
	if len(T.records) == 0 || len(cols) == 0 {
		return nil
	}
	m := mat.NewDense(len(T.records), len(cols), nil)
	for i, rec := range T.records {
		for j, c := range cols {
			m.Set(i, j, float64(rec[c]))
		}
	}
	return m
}
