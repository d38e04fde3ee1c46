/*
 * files.go, part of goshower.
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
	"os"
	"path/filepath"
	"strings"
)

// Files holds the classified paths of one simulation output directory.
// Any subset may be empty; the decoding functions skip empty entries.
type Files struct {
	EM        string //electromagnetic tracks, suffix track_em
	Muon      string //muon tracks, suffix track_mu
	Hadron    string //hadronic tracks, suffix track_hd
	Cherenkov string //photon-bunch container, suffix cherenkov_iact
}

// Empty returns true if no path at all is set.
func (f Files) Empty() bool {
	return f.EM == "" && f.Muon == "" && f.Hadron == "" && f.Cherenkov == ""
}

// Tracks returns the particle-track paths in their fixed concatenation
// order: electromagnetic, muon, hadronic.
func (f Files) Tracks() []string {
	return []string{f.EM, f.Muon, f.Hadron}
}

// Discover scans dir for CORSIKA output files and classifies them by
// filename suffix. A trailing compression extension (.gz, .zst, .zstd) is
// ignored for classification, so compressed outputs are picked up too.
// If no recognizable file is found at all, Discover returns a
// *MissingInputError before any decoding can begin.
func Discover(dir string) (Files, error) {
	var found Files
	entries, err := os.ReadDir(dir)
	if err != nil {
		e := NewMissingInputError(dir)
		e.Decorate("Discover: " + err.Error())
		return found, e
	}
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		full := filepath.Join(dir, entry.Name())
		switch classify(entry.Name()) {
		case "track_em":
			found.EM = full
		case "track_mu":
			found.Muon = full
		case "track_hd":
			found.Hadron = full
		case "cherenkov_iact":
			found.Cherenkov = full
		}
	}
	if found.Empty() {
		return found, errDecorate(NewMissingInputError(dir), "Discover")
	}
	return found, nil
}

//classify returns the recognized suffix of a file name, or the empty
//string. Compression extensions are stripped first.
func classify(name string) string {
	lower := strings.ToLower(name)
	for _, ext := range []string{".gz", ".zst", ".zstd"} {
		lower = strings.TrimSuffix(lower, ext)
	}
	for _, suffix := range []string{"track_em", "track_mu", "track_hd", "cherenkov_iact"} {
		if strings.HasSuffix(lower, suffix) {
			return suffix
		}
	}
	return ""
}
