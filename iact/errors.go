/*
 * errors.go, part of goshower.
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

package iact

import "fmt"

// Error is the general structure for container decoding errors. It
// fulfills shower.Error and shower.FileError.
type Error struct {
	message  string
	filename string //the input file that has problems, or empty string if none.
	deco     []string
	critical bool
}

func (err *Error) Error() string {
	return fmt.Sprintf("iact container %s error: %s", err.filename, err.message)
}

//Decorate adds new information to the error
func (err *Error) Decorate(deco string) []string {
	if deco != "" {
		err.deco = append(err.deco, deco)
	}
	return err.deco
}

//FileName returns the file to which the failing decode was associated
func (err *Error) FileName() string { return err.filename }

//Format returns the format of the file associated to the error
func (err *Error) Format() string { return "iact" }

//Critical returns true if the error is critical, false otherwise
func (err *Error) Critical() bool { return err.critical }

const (
	UnableToOpen    = "unable to open file"
	WrongSyncMarker = "top-level object does not start with the sync marker"
	BigEndianFile   = "file is big-endian, only little-endian containers are supported"
	ExtensionHeader = "extended object headers are not supported"
	TruncatedObject = "object payload is truncated"
	CompactBunches  = "compact photon bunches are not supported"
	NoEventFound    = "cannot parse: no event found"
	NoBunchesFound  = "cannot parse: no photon bunches found"
)

// EmptyContainerError signals a container that holds no event, or an event
// that holds no photon bunches. There is nothing to analyze in either
// case, so it is always critical.
type EmptyContainerError struct {
	message  string
	filename string
	deco     []string
}

func (err *EmptyContainerError) Error() string {
	return fmt.Sprintf("iact container %s error: %s", err.filename, err.message)
}

func (err *EmptyContainerError) Decorate(deco string) []string {
	if deco != "" {
		err.deco = append(err.deco, deco)
	}
	return err.deco
}

func (err *EmptyContainerError) FileName() string { return err.filename }

func (err *EmptyContainerError) Format() string { return "iact" }

func (err *EmptyContainerError) Critical() bool { return true }
