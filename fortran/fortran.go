/*
 * fortran.go, part of goshower.
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

// Package fortran reads Fortran sequential unformatted binary files, the
// framing CORSIKA uses for its particle-track output: each record is a
// 4-byte little-endian length marker, the payload, and a trailing marker
// that must match the leading one. The payload is reinterpreted as
// consecutive 32-bit floats, however many the marker declared.
package fortran

import (
	"encoding/binary"
	"errors"
	"io"
	"math"
	"os"
)

// Decoder reads one Fortran sequential file record by record. It holds no
// state beyond its cursor in the byte source, so re-opening the same file
// restarts the sequence from the beginning.
type Decoder struct {
	f        *os.File
	h        io.Reader //f, possibly behind a decompressor
	z        io.Closer //the decompressor, if any
	filename string
	readable bool
}

// NewDecoder opens the named file for record-wise reading. Files ending in
// .gz or .zst are decompressed transparently; anything else is read as a
// plain sequential file.
func NewDecoder(name string) (*Decoder, error) {
	D := new(Decoder)
	if err := D.prepSource(name); err != nil {
		return nil, errDecorate(err, "NewDecoder")
	}
	D.readable = true
	return D, nil
}

// Readable returns true if the decoder can still be read from. It does not
// guarantee that another record is actually present.
func (D *Decoder) Readable() bool {
	return D.readable
}

// Next returns the next record as a slice of float32. A truncated file, at
// any point of the framing, terminates the sequence cleanly: Next returns a
// non-critical error satisfying LastRecordError and every record returned
// before it stays valid. A trailing marker that disagrees with the leading
// one means the byte stream is corrupt and yields a critical *Error; no
// record is fabricated from the corrupt region.
func (D *Decoder) Next() ([]float32, error) {
	if !D.readable {
		return nil, &Error{TrajUnIniRead, D.filename, []string{"Next"}, true}
	}
	var prefix int32
	if err := binary.Read(D.h, binary.LittleEndian, &prefix); err != nil {
		//fewer than 4 bytes left where a length marker should start:
		//the end of the stream, not a problem.
		D.Close()
		return nil, newLastRecordError(D.filename, "Next")
	}
	if prefix < 0 {
		D.Close()
		return nil, &Error{NegativeMarker, D.filename, []string{"Next"}, true}
	}
	payload := make([]byte, int(prefix))
	if _, err := io.ReadFull(D.h, payload); err != nil {
		//truncated tail, also a clean end of stream.
		D.Close()
		return nil, newLastRecordError(D.filename, "Next")
	}
	var suffix int32
	if err := binary.Read(D.h, binary.LittleEndian, &suffix); err != nil {
		D.Close()
		return nil, newLastRecordError(D.filename, "Next")
	}
	if suffix != prefix {
		D.Close()
		return nil, &Error{MarkerMismatch, D.filename, []string{"Next"}, true}
	}
	record := make([]float32, int(prefix)/4)
	for i := range record {
		record[i] = math.Float32frombits(binary.LittleEndian.Uint32(payload[4*i:]))
	}
	return record, nil
}

// Close releases the underlying file and marks the decoder unreadable.
// Next calls Close itself once the stream ends, so most callers only need
// it for early termination.
func (D *Decoder) Close() {
	if !D.readable {
		return
	}
	if D.z != nil {
		D.z.Close()
	}
	D.f.Close()
	D.readable = false
}

// IsEnd returns true if err only signals the normal end of the record
// stream.
func IsEnd(err error) bool {
	var last LastRecordError
	return errors.As(err, &last)
}
