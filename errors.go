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

package shower

import "fmt"

// Error is the interface implemented by the errors of this library and its
// subpackages. The Decorate method allows to add and retrieve info from the
// error, without changing its type or wrapping it around something else.
// Each call appends the caller's name (plus any relevant extra info) to the
// decoration slice and returns the current slice; an empty string only
// queries the current value.
type Error interface {
	Error() string
	Decorate(string) []string
}

// FileError is the interface for errors tied to one input file.
type FileError interface {
	Error
	Critical() bool
	FileName() string
	Format() string
}

// errDecorate asserts that err implements Error and decorates it with the
// caller's name before returning it.
func errDecorate(err error, caller string) error {
	err2 := err.(Error)
	err2.Decorate(caller)
	return err2
}

// MissingInputError signals that no recognizable simulation output was
// found at all. It is always critical and is reported before any decoding
// begins.
type MissingInputError struct {
	dir  string
	deco []string
}

func NewMissingInputError(dir string) *MissingInputError {
	return &MissingInputError{dir: dir}
}

func (err *MissingInputError) Error() string {
	return fmt.Sprintf("no CORSIKA files found in %s", err.dir)
}

func (err *MissingInputError) Decorate(deco string) []string {
	if deco != "" {
		err.deco = append(err.deco, deco)
	}
	return err.deco
}

func (err *MissingInputError) FileName() string { return err.dir }

func (err *MissingInputError) Format() string { return "corsika" }

func (err *MissingInputError) Critical() bool { return true }

// UnknownSpeciesError signals that a particle name has no catalog entry.
// It is never critical: callers are expected to skip the offending name
// and continue with the remaining valid ones.
type UnknownSpeciesError struct {
	name string
	deco []string
}

func NewUnknownSpeciesError(name string) *UnknownSpeciesError {
	return &UnknownSpeciesError{name: name}
}

func (err *UnknownSpeciesError) Error() string {
	return fmt.Sprintf("unknown particle name: %q", err.name)
}

func (err *UnknownSpeciesError) Decorate(deco string) []string {
	if deco != "" {
		err.deco = append(err.deco, deco)
	}
	return err.deco
}

// Name returns the particle name that failed the lookup.
func (err *UnknownSpeciesError) Name() string { return err.name }

func (err *UnknownSpeciesError) Critical() bool { return false }

// DataError is the general structure for table-building errors in the root
// package. It fulfills Error and FileError.
type DataError struct {
	message  string
	filename string //the input file that has problems, or empty string if none.
	deco     []string
	critical bool
}

func (err *DataError) Error() string {
	if err.filename == "" {
		return err.message
	}
	return fmt.Sprintf("file %s error: %s", err.filename, err.message)
}

func (err *DataError) Decorate(deco string) []string {
	if deco != "" {
		err.deco = append(err.deco, deco)
	}
	return err.deco
}

func (err *DataError) FileName() string { return err.filename }

func (err *DataError) Format() string { return "corsika" }

func (err *DataError) Critical() bool { return err.critical }

const (
	WrongFieldCount = "record does not have the expected number of fields"
	NoSuchColumn    = "no such column in the table"
)
