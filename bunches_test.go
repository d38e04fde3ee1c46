/*
 * bunches_test.go, part of goshower.
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
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/jschaefer-hub/goshower/iact"
)

//putEvent writes a minimal one-event, one-telescope container object
//around the given raw 8-field bunches.
func putEvent(buf *bytes.Buffer, bunches [][8]float32) {
	sub := new(bytes.Buffer)
	binary.Write(sub, binary.LittleEndian, int16(0))
	binary.Write(sub, binary.LittleEndian, int16(0))
	binary.Write(sub, binary.LittleEndian, float32(len(bunches)))
	binary.Write(sub, binary.LittleEndian, int32(len(bunches)))
	for _, b := range bunches {
		binary.Write(sub, binary.LittleEndian, b)
	}
	payload := new(bytes.Buffer)
	binary.Write(payload, binary.LittleEndian, uint32(1205))
	binary.Write(payload, binary.LittleEndian, int32(0))
	binary.Write(payload, binary.LittleEndian, uint32(sub.Len()))
	payload.Write(sub.Bytes())

	buf.Write([]byte{0x37, 0x8A, 0x1F, 0xD4}) //sync marker
	binary.Write(buf, binary.LittleEndian, uint32(1204))
	binary.Write(buf, binary.LittleEndian, int32(1)) //event number
	binary.Write(buf, binary.LittleEndian, uint32(payload.Len()))
	buf.Write(payload.Bytes())
}

func writeContainerFile(t *testing.T, raw []byte) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "sim.cherenkov_iact")
	if err := os.WriteFile(path, raw, 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

//TestReadBunches checks the extraction of the first event's first
//telescope and, above all, that the mis-decoded 8th raw field (the photon
//weight) never reaches the table.
func TestReadBunches(t *testing.T) {
	raw := [][8]float32{
		{120.5, -33.25, 0.01, -0.02, 11.5, 8.25e5, 99, 432},
		{-77, 15.75, 0.03, 0.04, 12.5, 9.5e5, 99, 389},
	}
	buf := new(bytes.Buffer)
	putEvent(buf, raw)
	B, err := ReadBunches(writeContainerFile(t, buf.Bytes()))
	if err != nil {
		t.Fatal(err)
	}
	if B.Len() != len(raw) {
		t.Fatalf("got %d bunches, want %d", B.Len(), len(raw))
	}
	if got := len(B.Columns()); got != NumBunchCols {
		t.Fatalf("table exposes %d fields, must never exceed %d", got, NumBunchCols)
	}
	for i, b := range raw {
		rec := B.Records()[i]
		if rec.XImpact() != b[0] || rec.YImpact() != b[1] {
			t.Errorf("bunch %d: impact (%g,%g), want (%g,%g)", i, rec.XImpact(), rec.YImpact(), b[0], b[1])
		}
		if rec[ColWavelength] != b[7] {
			t.Errorf("bunch %d: wavelength %g, want %g", i, rec[ColWavelength], b[7])
		}
		//the weight value 99 must not appear anywhere in the record
		for j := 0; j < NumBunchCols; j++ {
			if rec[j] == 99 {
				t.Fatalf("bunch %d still carries the discarded photon weight", i)
			}
		}
	}
	if _, c := B.Dense().Dims(); c != NumBunchCols {
		t.Errorf("dense view has %d columns, want %d", c, NumBunchCols)
	}
}

//TestReadBunchesNoPath: a missing path is a precondition failure,
//reported before anything is opened.
func TestReadBunchesNoPath(t *testing.T) {
	_, err := ReadBunches("")
	var missing *MissingInputError
	if !errors.As(err, &missing) {
		t.Fatalf("expected *MissingInputError, got %v", err)
	}
}

//TestReadBunchesNoEvents: a container without events cannot be analyzed.
func TestReadBunchesNoEvents(t *testing.T) {
	_, err := ReadBunches(writeContainerFile(t, nil))
	var empty *iact.EmptyContainerError
	if !errors.As(err, &empty) {
		t.Fatalf("expected *iact.EmptyContainerError, got %v", err)
	}
}
