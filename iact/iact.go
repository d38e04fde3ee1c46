/*
 * iact.go, part of goshower.
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

// Package iact reads the eventio-style telescope container CORSIKA's IACT
// extension writes: per-event, per-telescope arrays of Cherenkov photon
// bunches, plus the telescope positions. Only the little-endian,
// non-compact subset produced by the particle-tracks input card is
// supported; compact (16-bit) bunch blocks and extended object headers are
// rejected with a typed error.
//
// The container is decoded fully into memory on Open; the file handle is
// released before Open returns.
package iact

import (
	"bufio"
	"bytes"
	"compress/gzip"
	"encoding/binary"
	"io"
	"math"
	"os"
	"strings"

	"github.com/klauspost/compress/zstd"
)

//object type numbers of the IACT extension
const (
	typeTelescopePositions = 1201
	typeTelescopeEvent     = 1204
	typePhotonBunches      = 1205
)

//The sync marker 0xD41F8A37 as it appears at the start of every top-level
//object in a little-endian container. The reversed order means the file
//was written big-endian.
var syncMarker = [4]byte{0x37, 0x8A, 0x1F, 0xD4}

// A Bunch is one compressed Cherenkov-photon record: impact position x, y
// (cm), direction cosines x, y, arrival time (ns), emission height a.s.l.
// (cm), photon weight and wavelength (nm), in that order.
type Bunch [8]float32

//indices of the raw bunch fields
const (
	BunchXImpact = iota
	BunchYImpact
	BunchCosX
	BunchCosY
	BunchTime
	BunchEmissionHeight
	BunchPhotons
	BunchWavelength
	BunchFields
)

// Telescope is the position and radius of one telescope sphere, in cm.
type Telescope struct {
	X, Y, Z, R float32
}

// Event holds the photon-bunch arrays of one telescope event, one array
// per telescope, in the order they appear in the container. It remembers
// the file it came from, for error reporting.
type Event struct {
	number   int32
	filename string
	bunches  [][]Bunch
}

// Number returns the event number the container assigned to this event.
func (e *Event) Number() int32 { return e.number }

// NTelescopes returns the number of per-telescope bunch arrays.
func (e *Event) NTelescopes() int { return len(e.bunches) }

// Bunches returns the bunch array of the tel-th telescope.
func (e *Event) Bunches(tel int) []Bunch { return e.bunches[tel] }

// FirstBunches returns the first telescope's bunch array, or an
// *EmptyContainerError if the event carries none.
func (e *Event) FirstBunches() ([]Bunch, error) {
	if len(e.bunches) == 0 || len(e.bunches[0]) == 0 {
		return nil, &EmptyContainerError{message: NoBunchesFound, filename: e.filename, deco: []string{"FirstBunches"}}
	}
	return e.bunches[0], nil
}

// File is one fully decoded telescope container.
type File struct {
	filename   string
	telescopes []Telescope
	events     []*Event
}

// Open reads and decodes the whole container. Files ending in .gz or
// .zst are decompressed transparently. The underlying file is consumed and
// closed before Open returns.
func Open(name string) (*File, error) {
	raw, err := readSource(name)
	if err != nil {
		return nil, err
	}
	F := &File{filename: name}
	r := bytes.NewReader(raw)
	for {
		if err := F.readObject(r); err != nil {
			if err == io.EOF {
				break
			}
			return nil, err
		}
	}
	return F, nil
}

// FileName returns the name of the decoded container file.
func (F *File) FileName() string { return F.filename }

// TelescopePositions returns the telescope spheres declared in the
// container, or nil if it declared none.
func (F *File) TelescopePositions() []Telescope { return F.telescopes }

// Events returns every telescope event in the container, in file order.
func (F *File) Events() []*Event { return F.events }

// FirstEvent returns the first event, or an *EmptyContainerError if the
// container holds none.
func (F *File) FirstEvent() (*Event, error) {
	if len(F.events) == 0 {
		return nil, &EmptyContainerError{message: NoEventFound, filename: F.filename, deco: []string{"FirstEvent"}}
	}
	return F.events[0], nil
}

//readObject reads one top-level object (sync marker plus header plus
//payload) from r. io.EOF is returned untouched when the marker read hits
//the end of the stream.
func (F *File) readObject(r *bytes.Reader) error {
	var marker [4]byte
	if _, err := io.ReadFull(r, marker[:]); err != nil {
		if err == io.EOF {
			return io.EOF
		}
		return &Error{TruncatedObject, F.filename, []string{"readObject"}, true}
	}
	if marker != syncMarker {
		if marker == [4]byte{syncMarker[3], syncMarker[2], syncMarker[1], syncMarker[0]} {
			return &Error{BigEndianFile, F.filename, []string{"readObject"}, true}
		}
		return &Error{WrongSyncMarker, F.filename, []string{"readObject"}, true}
	}
	objType, _, ident, payload, err := F.readHeader(r)
	if err != nil {
		return err
	}
	switch objType {
	case typeTelescopePositions:
		return F.readTelescopePositions(payload)
	case typeTelescopeEvent:
		return F.readTelescopeEvent(ident, payload)
	default:
		//not part of the supported subset, skipped by length
		return nil
	}
}

//readHeader reads the three header words and the payload of one object.
//The event number travels in the ident word.
func (F *File) readHeader(r io.Reader) (objType, version int, ident int32, payload []byte, err error) {
	var words [3]uint32
	if err = binary.Read(r, binary.LittleEndian, &words); err != nil {
		return 0, 0, 0, nil, &Error{TruncatedObject, F.filename, []string{"readHeader"}, true}
	}
	objType = int(words[0] & 0xFFFF)
	version = int(words[0] >> 20 & 0xFFF)
	ident = int32(words[1])
	if words[2]>>31 != 0 {
		return 0, 0, 0, nil, &Error{ExtensionHeader, F.filename, []string{"readHeader"}, true}
	}
	length := int(words[2] & 0x3FFFFFFF)
	payload = make([]byte, length)
	if _, err = io.ReadFull(r, payload); err != nil {
		return 0, 0, 0, nil, &Error{TruncatedObject, F.filename, []string{"readHeader"}, true}
	}
	return objType, version, ident, payload, nil
}

func (F *File) readTelescopePositions(payload []byte) error {
	r := bytes.NewReader(payload)
	var ntel int32
	if err := binary.Read(r, binary.LittleEndian, &ntel); err != nil || ntel < 0 {
		return &Error{TruncatedObject, F.filename, []string{"readTelescopePositions"}, true}
	}
	//planar arrays: all x, then all y, all z, all r
	planar := make([]float32, 4*int(ntel))
	if err := binary.Read(r, binary.LittleEndian, planar); err != nil {
		return &Error{TruncatedObject, F.filename, []string{"readTelescopePositions"}, true}
	}
	n := int(ntel)
	F.telescopes = make([]Telescope, n)
	for i := 0; i < n; i++ {
		F.telescopes[i] = Telescope{planar[i], planar[n+i], planar[2*n+i], planar[3*n+i]}
	}
	return nil
}

//readTelescopeEvent walks the sub-objects of a telescope event. Sub-object
//headers carry no sync marker. The event number travels in the ident word
//of the enclosing object.
func (F *File) readTelescopeEvent(number int32, payload []byte) error {
	r := bytes.NewReader(payload)
	ev := &Event{number: number, filename: F.filename}
	for r.Len() > 0 {
		objType, subVersion, _, sub, err := F.readHeader(r)
		if err != nil {
			return err
		}
		if objType != typePhotonBunches {
			continue
		}
		bunches, err := F.readBunches(subVersion, sub)
		if err != nil {
			return err
		}
		ev.bunches = append(ev.bunches, bunches)
	}
	F.events = append(F.events, ev)
	return nil
}

func (F *File) readBunches(version int, payload []byte) ([]Bunch, error) {
	if version >= 1000 {
		//compact bunches scale everything into int16, which the
		//particle-tracks card never asks for
		return nil, &Error{CompactBunches, F.filename, []string{"readBunches"}, true}
	}
	r := bytes.NewReader(payload)
	var head struct {
		Array    int16
		Tel      int16
		Photons  float32
		NBunches int32
	}
	if err := binary.Read(r, binary.LittleEndian, &head); err != nil || head.NBunches < 0 {
		return nil, &Error{TruncatedObject, F.filename, []string{"readBunches"}, true}
	}
	raw := make([]byte, BunchFields*4*int(head.NBunches))
	if _, err := io.ReadFull(r, raw); err != nil {
		return nil, &Error{TruncatedObject, F.filename, []string{"readBunches"}, true}
	}
	bunches := make([]Bunch, int(head.NBunches))
	for i := range bunches {
		for j := 0; j < BunchFields; j++ {
			bits := binary.LittleEndian.Uint32(raw[4*(BunchFields*i+j):])
			bunches[i][j] = math.Float32frombits(bits)
		}
	}
	return bunches, nil
}

//readSource slurps the whole file, decompressing by extension first.
func readSource(name string) ([]byte, error) {
	f, err := os.Open(name)
	if err != nil {
		return nil, &Error{UnableToOpen + ": " + err.Error(), name, []string{"readSource"}, true}
	}
	defer f.Close()
	reader := bufio.NewReader(f)
	temp := strings.Split(name, ".")
	var raw []byte
	switch strings.ToLower(temp[len(temp)-1]) {
	case "gz":
		zr, err := gzip.NewReader(reader)
		if err != nil {
			return nil, &Error{UnableToOpen + ": " + err.Error(), name, []string{"readSource"}, true}
		}
		defer zr.Close()
		raw, err = io.ReadAll(zr)
		if err != nil {
			return nil, &Error{TruncatedObject, name, []string{"readSource"}, true}
		}
	case "zst", "zstd":
		zr, err := zstd.NewReader(reader)
		if err != nil {
			return nil, &Error{UnableToOpen + ": " + err.Error(), name, []string{"readSource"}, true}
		}
		defer zr.Close()
		raw, err = io.ReadAll(zr)
		if err != nil {
			return nil, &Error{TruncatedObject, name, []string{"readSource"}, true}
		}
	default:
		raw, err = io.ReadAll(reader)
		if err != nil {
			return nil, &Error{TruncatedObject, name, []string{"readSource"}, true}
		}
	}
	return raw, nil
}
