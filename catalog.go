/*
 * catalog.go, part of goshower.
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
	"sort"
	"strconv"
	"strings"
)

//A map for assigning CORSIKA species ids to particle names.
//Nuclei follow the A*100+Z convention, up to iron.
var speciesID = map[string]int{
	"gamma":      1,
	"electron":   2,
	"positron":   3,
	"muon":       5,
	"antimuon":   6,
	"proton":     14,
	"helium":     402,
	"lithium":    703,
	"beryllium":  904,
	"boron":      1105,
	"carbon":     1206,
	"nitrogen":   1407,
	"oxygen":     1608,
	"fluorine":   1909,
	"neon":       2010,
	"sodium":     2311,
	"magnesium":  2412,
	"aluminium":  2713,
	"silicon":    2814,
	"phosphorus": 3115,
	"sulfur":     3216,
	"chlorine":   3517,
	"argon":      3618,
	"potassium":  3919,
	"calcium":    4020,
	"scandium":   4321,
	"titanium":   4422,
	"vanadium":   4723,
	"chromium":   4824,
	"manganese":  5125,
	"iron":       5626,
}

//the inverse table, built once at startup. No two names share an id.
var speciesName = func() map[int]string {
	m := make(map[int]string, len(speciesID))
	for name, id := range speciesID {
		m[id] = name
	}
	return m
}()

// ParticleID returns the CORSIKA species id for the given particle name.
// The lookup is case-insensitive and ignores surrounding whitespace. An
// unknown name returns an *UnknownSpeciesError.
func ParticleID(name string) (int, error) {
	id, ok := speciesID[strings.ToLower(strings.TrimSpace(name))]
	if !ok {
		return 0, NewUnknownSpeciesError(name)
	}
	return id, nil
}

// ParticleName is the inverse lookup, for display purposes. Ids without a
// catalog entry come back as their plain numeric label.
func ParticleName(id int) string {
	if name, ok := speciesName[id]; ok {
		return name
	}
	return strconv.Itoa(id)
}

// SpeciesNames returns all known particle names, sorted, mostly for help
// and error messages.
func SpeciesNames() []string {
	names := make([]string, 0, len(speciesID))
	for name := range speciesID {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
