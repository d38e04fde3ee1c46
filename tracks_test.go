/*
 * tracks_test.go, part of goshower.
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
	"bytes"
	"encoding/binary"
	"math"
	"os"
	"path/filepath"
	"testing"
)

//writeTrackFile frames the given records the way the Fortran runtime
//does and writes them under name in dir.
func writeTrackFile(t *testing.T, dir, name string, recs []TrackRecord) string {
	t.Helper()
	buf := new(bytes.Buffer)
	for _, rec := range recs {
		binary.Write(buf, binary.LittleEndian, int32(4*NumTrackCols))
		binary.Write(buf, binary.LittleEndian, rec)
		binary.Write(buf, binary.LittleEndian, int32(4*NumTrackCols))
	}
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, buf.Bytes(), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func testRecord(id, z float32) TrackRecord {
	var rec TrackRecord
	rec[ColParticleID] = id
	rec[ColEnergyGeV] = 1
	rec[ColZStart] = z
	rec[ColZEnd] = z / 2
	return rec
}

//TestConcatWithEmptyFile: concatenating over an empty file and a
//non-empty file yields the same table as the non-empty file alone.
func TestConcatWithEmptyFile(t *testing.T) {
	dir := t.TempDir()
	recs := []TrackRecord{testRecord(2, 1e5), testRecord(3, 2e5)}
	em := writeTrackFile(t, dir, "sim.track_em", nil)
	mu := writeTrackFile(t, dir, "sim.track_mu", recs)

	both, err := ReadTracks(Files{EM: em, Muon: mu})
	if err != nil {
		t.Fatal(err)
	}
	alone, err := ReadTracks(Files{Muon: mu})
	if err != nil {
		t.Fatal(err)
	}
	if both.Len() != alone.Len() || both.Len() != len(recs) {
		t.Fatalf("got %d and %d records, want %d in both tables", both.Len(), alone.Len(), len(recs))
	}
	for i := range recs {
		if both.Records()[i] != alone.Records()[i] {
			t.Errorf("record %d differs between the two tables", i)
		}
	}
}

//TestConcatOrder: electromagnetic records come before muon records, which
//come before hadronic ones, in file read order.
func TestConcatOrder(t *testing.T) {
	dir := t.TempDir()
	em := writeTrackFile(t, dir, "sim.track_em", []TrackRecord{testRecord(2, 1e5)})
	mu := writeTrackFile(t, dir, "sim.track_mu", []TrackRecord{testRecord(5, 2e5)})
	hd := writeTrackFile(t, dir, "sim.track_hd", []TrackRecord{testRecord(14, 3e5)})

	T, err := ReadTracks(Files{EM: em, Muon: mu, Hadron: hd})
	if err != nil {
		t.Fatal(err)
	}
	want := []int{2, 5, 14}
	if T.Len() != len(want) {
		t.Fatalf("got %d records, want %d", T.Len(), len(want))
	}
	for i, id := range want {
		if got := T.Records()[i].ParticleID(); got != id {
			t.Errorf("record %d: species %d, want %d", i, got, id)
		}
	}
}

//TestEmptyTrackSet: a fully empty particle-track input set is tolerated
//and yields an empty table.
func TestEmptyTrackSet(t *testing.T) {
	T, err := ReadTracks(Files{})
	if err != nil {
		t.Fatal(err)
	}
	if T.Len() != 0 {
		t.Fatalf("got %d records from no files", T.Len())
	}
}

//TestDropEmptyColumn: a column that is NaN in every record disappears
//from the schema after concatenation; partially filled columns stay.
func TestDropEmptyColumn(t *testing.T) {
	nan := float32(math.NaN())
	a := testRecord(2, 1e5)
	a[ColTEnd] = nan
	a[ColTStart] = nan
	b := testRecord(3, 2e5)
	b[ColTEnd] = nan
	b[ColTStart] = 7 //t_start is only missing sometimes

	dir := t.TempDir()
	em := writeTrackFile(t, dir, "sim.track_em", []TrackRecord{a, b})
	T, err := ReadTracks(Files{EM: em})
	if err != nil {
		t.Fatal(err)
	}
	if T.HasColumn("t_end") {
		t.Error("t_end is missing everywhere and should have been dropped")
	}
	if !T.HasColumn("t_start") {
		t.Error("t_start has values and must stay")
	}
	if _, err := T.Column("t_end"); err == nil {
		t.Error("asking for a dropped column should fail")
	}
	if len(T.Columns()) != NumTrackCols-1 {
		t.Errorf("got %d columns, want %d", len(T.Columns()), NumTrackCols-1)
	}
	//the dense view must only carry the surviving columns
	if _, c := T.Dense().Dims(); c != NumTrackCols-1 {
		t.Errorf("dense view has %d columns, want %d", c, NumTrackCols-1)
	}
}

//TestCorruptFileAborts: a record-marker mismatch in one file aborts the
//whole table build, naming the offending file.
func TestCorruptFileAborts(t *testing.T) {
	dir := t.TempDir()
	em := writeTrackFile(t, dir, "sim.track_em", []TrackRecord{testRecord(2, 1e5)})

	buf := new(bytes.Buffer)
	binary.Write(buf, binary.LittleEndian, int32(4*NumTrackCols))
	binary.Write(buf, binary.LittleEndian, testRecord(5, 2e5))
	binary.Write(buf, binary.LittleEndian, int32(4*NumTrackCols+4)) //corrupt trailing marker
	mu := filepath.Join(dir, "sim.track_mu")
	if err := os.WriteFile(mu, buf.Bytes(), 0o644); err != nil {
		t.Fatal(err)
	}

	_, err := ReadTracks(Files{EM: em, Muon: mu})
	if err == nil {
		t.Fatal("expected the corrupt file to abort the build")
	}
	ferr, ok := err.(FileError)
	if !ok {
		t.Fatalf("expected a FileError, got %T", err)
	}
	if !ferr.Critical() {
		t.Error("a corrupt track file must be critical")
	}
	if ferr.FileName() != mu {
		t.Errorf("error names %q, want %q", ferr.FileName(), mu)
	}
}

//TestWrongFieldCount: a record with a field count other than 10 is a
//decode failure, not a partial record.
func TestWrongFieldCount(t *testing.T) {
	buf := new(bytes.Buffer)
	short := make([]float32, 8)
	binary.Write(buf, binary.LittleEndian, int32(4*len(short)))
	binary.Write(buf, binary.LittleEndian, short)
	binary.Write(buf, binary.LittleEndian, int32(4*len(short)))
	path := filepath.Join(t.TempDir(), "sim.track_em")
	if err := os.WriteFile(path, buf.Bytes(), 0o644); err != nil {
		t.Fatal(err)
	}
	_, err := ReadTracks(Files{EM: path})
	if err == nil {
		t.Fatal("expected an error for an 8-field record")
	}
}
