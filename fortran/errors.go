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

package fortran

import "fmt"

//decorable is the little contract shared by all errors in this library,
//kept structural so this package doesn't need to import the root one.
type decorable interface {
	Error() string
	Decorate(string) []string
}

//errDecorate asserts that the error implements the library's Error
//interface and decorates it with the caller's name before returning it.
func errDecorate(err error, caller string) error {
	err2 := err.(decorable)
	err2.Decorate(caller)
	return err2
}

// Error is the general structure for sequential-file errors. It fulfills
// shower.Error and shower.FileError. A critical Error means the byte
// stream itself is corrupt; the whole file must be discarded.
type Error struct {
	message  string
	filename string //the input file that has problems, or empty string if none.
	deco     []string
	critical bool
}

func (err *Error) Error() string {
	return fmt.Sprintf("sequential file %s error: %s", err.filename, err.message)
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
func (err *Error) Format() string { return "fortran" }

//Critical returns true if the error is critical, false otherwise
func (err *Error) Critical() bool { return err.critical }

const (
	TrajUnIniRead  = "decoder uninitialized to read"
	UnableToOpen   = "unable to open file"
	MarkerMismatch = "record markers do not match"
	NegativeMarker = "negative record marker"
)

// LastRecordError is implemented by the harmless error returned after the
// final record, so it can be filtered in a type switch that looks for this
// interface.
type LastRecordError interface {
	Error() string
	Decorate(string) []string
	Critical() bool
	FileName() string
	Format() string
	NormalLastRecordTermination() //does nothing, just to separate this interface from other errors
}

//lastRecordError implements LastRecordError
type lastRecordError struct {
	deco     []string
	fileName string
}

//lastRecordError does nothing
func (err *lastRecordError) NormalLastRecordTermination() {}

func (err *lastRecordError) FileName() string { return err.fileName }

func (err *lastRecordError) Error() string { return "EOF" }

func (err *lastRecordError) Critical() bool { return false }

func (err *lastRecordError) Format() string { return "fortran" }

func (err *lastRecordError) Decorate(deco string) []string {
	if deco != "" {
		err.deco = append(err.deco, deco)
	}
	return err.deco
}

func newLastRecordError(filename string, caller string) *lastRecordError {
	return &lastRecordError{fileName: filename, deco: []string{caller}}
}
